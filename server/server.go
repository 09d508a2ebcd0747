package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"fabsim/calculator"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	calc     calculator.Calculator
	metrics  *Metrics
	handler  http.Handler
}

// NewServer wires the web surface around calc. Metrics are registered on a
// registry of their own so several servers can coexist in one process.
func NewServer(addr string, upgrader websocket.Upgrader, calc calculator.Calculator) (*Server, error) {
	if _, err := loadOpenAPI(); err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		addr:     addr,
		upgrader: upgrader,
		calc:     calc,
		metrics:  NewMetrics(reg),
	}
	s.handler = s.routes(reg)
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("err", err).Warn("websocket upgrade")
		return
	}
	log.WithField("remote", r.RemoteAddr).Info("live page connected")
	NewHub(s.calc, conn, s.metrics).Run()
	log.WithField("remote", r.RemoteAddr).Info("live page disconnected")
}

// Serve listens until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}
