// Package api serves the HBnB REST API under /api/v1 on top of a
// types.Engine.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/juju/loggo/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

var logger = loggo.GetLogger("hbnb.api")

// Server routes API requests to the storage engine. Reads run concurrently;
// each mutating request runs alone so that its read-modify-save sequence is
// not interleaved with another.
type Server struct {
	engine  types.Engine
	cfg     Config
	mu      sync.RWMutex
	handler http.Handler
}

// NewServer builds the router for engine. The engine stays owned by the
// caller.
func NewServer(engine types.Engine, cfg Config) *Server {
	s := &Server{engine: engine, cfg: cfg}
	s.handler = Chain(s.routes(),
		RecoverPanic(),
		AccessLog(),
		StripTrailingSlash(),
		CORS(cfg.CORSOrigins),
	)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves until ctx
// ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down, letting
// in-flight requests finish within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Infof("server stopped")
		return nil
	})
	return g.Wait()
}

// serialize takes the read lock for GET and HEAD and the write lock for
// everything else.
func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			s.mu.RLock()
			defer s.mu.RUnlock()
		} else {
			s.mu.Lock()
			defer s.mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}
