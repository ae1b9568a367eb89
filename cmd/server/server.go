package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/promptiverse/internal/config"
	"github.com/JaimeStill/promptiverse/internal/infrastructure"
	"github.com/JaimeStill/promptiverse/pkg/lifecycle"
)

// Server owns the infrastructure, the mounted modules, and the HTTP listener
// for one process.
type Server struct {
	logger    *slog.Logger
	lifecycle *lifecycle.Coordinator
	infra     *infrastructure.Infrastructure
	http      *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra.Lifecycle)
	modules.Mount(router)

	infra.Logger.Info("server initialized",
		"version", cfg.Version,
		"addr", cfg.Server.Addr(),
		"env", cfg.Env(),
		"modules", router.Prefixes(),
	)

	return &Server{
		logger:    infra.Logger,
		lifecycle: infra.Lifecycle,
		infra:     infra,
		http:      newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start registers every subsystem with the lifecycle and begins serving.
// Readiness is reported asynchronously once the startup hooks return.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return fmt.Errorf("start infrastructure: %w", err)
	}
	if err := s.http.Start(s.lifecycle); err != nil {
		return err
	}

	go s.reportReadiness()
	return nil
}

func (s *Server) reportReadiness() {
	if err := s.lifecycle.WaitForStartup(); err != nil {
		s.logger.Error("startup incomplete, readiness withheld", "error", err)
		return
	}
	s.logger.Info("all subsystems ready")
}

// Run starts the server, blocks until ctx is cancelled, then shuts down
// within timeout.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	if err := s.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	s.logger.Info("shutdown requested", "timeout", timeout)

	if err := s.lifecycle.Shutdown(timeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("promptiverse stopped")
	return nil
}
