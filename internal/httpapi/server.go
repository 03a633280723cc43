// Package httpapi exposes proof sessions over HTTP. Each session holds one
// proof behind its own mutex and is persisted to the store after every
// successful mutation, so a restart restores the full session set.
package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitchkit/fitch/internal/config"
	"github.com/fitchkit/fitch/internal/proof"
	"github.com/fitchkit/fitch/internal/store"
)

// session serializes access to one live proof.
type session struct {
	mu    sync.Mutex
	proof *proof.Proof
}

// Server is the HTTP proof service.
type Server struct {
	cfg    config.HTTPConfig
	store  *store.Store
	logger *slog.Logger
	engine *gin.Engine

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewServer wires the routes. Call Restore to load persisted sessions and
// Run to serve.
func NewServer(cfg config.HTTPConfig, st *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		logger:   logger,
		sessions: make(map[string]*session),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), metricsMiddleware())

	v1 := engine.Group("/v1")
	{
		v1.POST("/proofs", s.handleCreate)
		v1.GET("/proofs", s.handleList)
		v1.GET("/proofs/:id", s.handleGet)
		v1.DELETE("/proofs/:id", s.handleDelete)

		v1.POST("/proofs/:id/premises", s.handlePremise)
		v1.POST("/proofs/:id/blocks/open", s.handleOpenBlock)
		v1.POST("/proofs/:id/blocks/close", s.handleCloseBlock)
		v1.POST("/proofs/:id/rules/:rule", s.handleRule)

		v1.GET("/proofs/:id/render", s.handleRender)
		v1.GET("/proofs/:id/table", s.handleTable)

		v1.GET("/healthz", s.handleHealthz)
		v1.GET("/readyz", s.handleReadyz)
	}
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine = engine
	return s
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Restore loads every persisted proof into a live session. Entries that no
// longer decode are skipped with a warning rather than failing startup.
func (s *Server) Restore(ctx context.Context) error {
	entries, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		snap, err := s.store.Load(ctx, entry.ID)
		if err != nil {
			s.logger.Warn("skipping stored proof", "id", entry.ID, "error", err)
			continue
		}
		p, err := proof.FromSnapshot(snap)
		if err != nil {
			s.logger.Warn("skipping corrupt proof", "id", entry.ID, "error", err)
			continue
		}
		s.sessions[entry.ID] = &session{proof: p}
	}
	activeSessions.Set(float64(len(s.sessions)))
	s.logger.Info("sessions restored", "count", len(s.sessions))
	return nil
}

// Run serves until ctx is canceled, then drains in-flight requests for at
// most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("http server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server draining", "timeout", s.cfg.ShutdownTimeout)
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// persist writes the proof to the store. The in-memory session is already
// mutated at this point, so a storage failure is logged instead of being
// surfaced as a request error; retrying the request would apply the rule a
// second time.
func (s *Server) persist(ctx context.Context, id string, p *proof.Proof) {
	snap, err := p.Snapshot()
	if err != nil {
		s.logger.Error("snapshot failed", "id", id, "error", err)
		return
	}
	if err := s.store.Save(ctx, id, snap); err != nil {
		s.logger.Error("persist failed", "id", id, "error", err)
	}
}
