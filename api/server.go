package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/angelmondragon/shoppingcart/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Server runs the HTTP handler until its context is cancelled, then drains in-flight requests.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logg            *logger.Logger
}

// NewServer binds handler to addr.
func NewServer(addr string, handler http.Handler, shutdownTimeout time.Duration, logg *logger.Logger) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		logg:            logg,
	}
}

// Run listens on the configured address and blocks until ctx is done or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if s.logg != nil {
			s.logg.Info(s.logg.WithField(ctx, "addr", ln.Addr().String()), "http.listening")
		}
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if s.logg != nil {
			s.logg.Info(ctx, "http.shutdown")
		}
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
