package server

import (
	"meeting-minutes-go/internal/config"
	"meeting-minutes-go/internal/logger"
	"meeting-minutes-go/internal/media"
	"meeting-minutes-go/internal/pipeline"
	"meeting-minutes-go/internal/store"
)

// Server owns the HTTP surface: uploads, record queries, pipeline
// triggers and document downloads.
type Server struct {
	cfg    *config.Config
	store  store.Store
	orch   pipeline.Orchestrator
	prober media.Prober
	logger logger.Logger
}

func New(cfg *config.Config, st store.Store, orch pipeline.Orchestrator, prober media.Prober, log logger.Logger) *Server {
	return &Server{
		cfg:    cfg,
		store:  st,
		orch:   orch,
		prober: prober,
		logger: log,
	}
}
