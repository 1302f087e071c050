package analyzer

import (
	"context"
	"fmt"

	"meeting-minutes-go/internal/record"
)

// Analyzer derives structured meeting data from a transcript. All three
// capabilities are independent; a failure in one does not affect the
// others.
type Analyzer interface {
	Summarize(ctx context.Context, transcript string, meta Meta) (*Summary, error)
	ExtractActionItems(ctx context.Context, transcript string) ([]record.ActionItem, error)
	IdentifyParticipants(ctx context.Context, transcript string) ([]string, error)
}

// Meta is optional context handed to the summarizer.
type Meta struct {
	Title    string
	Filename string
	Duration float64
}

// Summary is the structured summarization result. The model returns these
// fields directly as JSON rather than free text that would need
// re-parsing.
type Summary struct {
	Text             string   `json:"summary"`
	Decisions        []string `json:"decisions"`
	DiscussionPoints []string `json:"discussion_points"`
	OpenIssues       []string `json:"open_issues"`
}

// AnalysisError wraps model or parsing failures. The pipeline treats
// these as non-fatal.
type AnalysisError struct {
	Op  string
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze (%s): %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
