package store

import (
	"context"
	"errors"

	"meeting-minutes-go/internal/record"
)

var (
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyProcessing is returned by ClaimProcessing when another run
	// has already moved the record into processing status.
	ErrAlreadyProcessing = errors.New("record is already processing")
)

// ListOptions filters and paginates List results.
type ListOptions struct {
	Status  record.Status
	Page    int
	PerPage int
}

// Store is durable storage for meeting records. Save is last-write-wins;
// ClaimProcessing is the one compare-and-swap operation, used by the
// pipeline to guarantee a single in-flight run per record id.
type Store interface {
	Get(ctx context.Context, id string) (*record.MeetingRecord, error)
	Save(ctx context.Context, rec *record.MeetingRecord) error

	// ClaimProcessing atomically transitions the record from any
	// non-processing status to processing with progress 0 and a cleared
	// error, returning the claimed snapshot.
	ClaimProcessing(ctx context.Context, id string) (*record.MeetingRecord, error)

	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]*record.MeetingRecord, int, error)
}
