package watcher

import "context"

// Watcher monitors an inbox directory and hands new media files to the
// ingest handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler receives the path of a newly dropped media file.
type EventHandler func(ctx context.Context, filePath string) error
