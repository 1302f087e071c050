package transcriber

import (
	"meeting-minutes-go/internal/config"
	"meeting-minutes-go/internal/logger"
	"meeting-minutes-go/pkg/executor"
)

type implTranscriber struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcriber backed by a whisper.cpp binary.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
