package executor

import "context"

// Executor runs external commands (ffmpeg, ffprobe, whisper) and returns
// their stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
