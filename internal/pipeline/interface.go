package pipeline

import (
	"context"
	"errors"
)

var (
	// ErrAlreadyRunning is returned when a run for the id is already in
	// flight in this process.
	ErrAlreadyRunning = errors.New("record is already being processed")

	// ErrQueueFull is returned when the task queue cannot accept more
	// work.
	ErrQueueFull = errors.New("processing queue is full")

	// ErrStopped is returned after Shutdown.
	ErrStopped = errors.New("orchestrator is shut down")
)

// Orchestrator drives meeting records through the processing pipeline.
// Start enqueues a run for a record id; the actual work happens on the
// worker pool.
type Orchestrator interface {
	Start(ctx context.Context, id string) error
	StartWorkers(ctx context.Context)
	Shutdown()
}
