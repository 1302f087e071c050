package document

import (
	"context"
	"fmt"

	"meeting-minutes-go/internal/record"
)

// Renderer writes a meeting record snapshot into a shareable document.
type Renderer interface {
	// Render produces the minutes document and returns its path. An
	// empty filename selects a timestamp-based default.
	Render(ctx context.Context, rec *record.MeetingRecord, filename string) (string, error)
}

// RenderError means the document could not be written to the target
// location.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render document %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
