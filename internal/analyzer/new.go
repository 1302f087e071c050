package analyzer

import (
	"sync"

	"meeting-minutes-go/internal/logger"
)

type implAnalyzer struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// New creates an Analyzer that rotates through the supplied Gemini API
// keys when one is rate limited.
func New(apiKeys []string, model string, log logger.Logger) Analyzer {
	return &implAnalyzer{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}
