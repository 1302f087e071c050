package transcriber

import (
	"context"
	"fmt"

	"meeting-minutes-go/internal/record"
)

// Transcriber converts a normalized audio track into text plus
// time-aligned segments. Language "auto" (or empty) lets the engine
// detect the spoken language.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (*Result, error)
}

// Result is the output of one transcription run.
type Result struct {
	Text     string
	Language string
	Segments []record.Segment
}

// TranscriptionError means the input is missing or the recognition run
// failed.
type TranscriptionError struct {
	Path string
	Err  error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcribe %s: %v", e.Path, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
