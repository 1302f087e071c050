package document

import (
	"meeting-minutes-go/internal/logger"
)

type implRenderer struct {
	outputDir string
	logger    logger.Logger
}

// New creates a Renderer that writes docx minutes into outputDir.
func New(outputDir string, log logger.Logger) Renderer {
	return &implRenderer{
		outputDir: outputDir,
		logger:    log,
	}
}
