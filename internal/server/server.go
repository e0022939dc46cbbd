// Package server exposes the planners over HTTP for a planar workspace with
// no-fly zones.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"go.uber.org/multierr"

	"rrt-motion-planner/world"
)

const shutdownTimeout = 5 * time.Second

// Server plans paths through the current set of no-fly zones. Zones can be
// replaced while requests are in flight; each request plans against the
// snapshot it started with.
type Server struct {
	cfg    Config
	logger golog.Logger

	mu    sync.RWMutex
	world *world.World
}

// New creates a server over cfg's bounds holding zones.
func New(cfg Config, zones []orb.Polygon, logger golog.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger}
	s.SetZones(zones)
	return s
}

// SetZones drops zones nested in other zones, simplifies the rest as
// configured and makes them the current world. It returns the number of
// zones kept.
func (s *Server) SetZones(zones []orb.Polygon) int {
	pruned := world.RemoveContained(zones)

	epsilon := s.cfg.SimplifyEpsilon
	if epsilon < 0 {
		epsilon = world.EstimateEpsilon(pruned, s.cfg.Bounds.bound())
	}
	simplified := world.Simplify(pruned, epsilon)
	w := world.New(s.cfg.Bounds.bound(), simplified)

	s.logger.Infow("no-fly zones updated",
		"zones", w.Len(),
		"removedContained", len(zones)-len(pruned),
		"verticesBefore", world.VertexCount(pruned),
		"verticesAfter", world.VertexCount(simplified),
		"epsilon", epsilon,
	)

	s.mu.Lock()
	s.world = w
	s.mu.Unlock()
	return w.Len()
}

func (s *Server) currentWorld() *world.World {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world
}

// Handler returns the HTTP routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", s.planHandler)
	mux.HandleFunc("/obstacles", s.obstaclesHandler)
	mux.HandleFunc("/health", s.healthHandler)

	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Infow("server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) {
		err = multierr.Combine(err, serveErr)
	}
	return err
}
