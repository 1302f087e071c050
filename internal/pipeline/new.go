package pipeline

import (
	"sync"
	"time"

	"meeting-minutes-go/internal/analyzer"
	"meeting-minutes-go/internal/config"
	"meeting-minutes-go/internal/document"
	"meeting-minutes-go/internal/logger"
	"meeting-minutes-go/internal/media"
	"meeting-minutes-go/internal/store"
	"meeting-minutes-go/internal/transcriber"
)

type implOrchestrator struct {
	cfg          *config.Config
	store        store.Store
	prober       media.Prober
	transcriber  transcriber.Transcriber
	analyzer     analyzer.Analyzer
	renderer     document.Renderer
	logger       logger.Logger
	stageTimeout time.Duration

	tasks chan string
	wg    sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]bool
	closed   bool
}

// New wires the Orchestrator with its stage collaborators. Workers are
// not started until StartWorkers.
func New(
	cfg *config.Config,
	st store.Store,
	prober media.Prober,
	tr transcriber.Transcriber,
	an analyzer.Analyzer,
	rn document.Renderer,
	log logger.Logger,
) Orchestrator {
	return &implOrchestrator{
		cfg:          cfg,
		store:        st,
		prober:       prober,
		transcriber:  tr,
		analyzer:     an,
		renderer:     rn,
		logger:       log,
		stageTimeout: cfg.StageTimeout(),
		tasks:        make(chan string, cfg.Pipeline.QueueSize),
		inflight:     make(map[string]bool),
	}
}
