package media

import (
	"meeting-minutes-go/internal/config"
	"meeting-minutes-go/internal/logger"
	"meeting-minutes-go/pkg/executor"
)

type implProber struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Prober that shells out to ffprobe/ffmpeg.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Prober {
	return &implProber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
