// Package server owns the HTTP listener lifecycle. Binding is separated
// from serving so that a port already held by another process surfaces as
// an immediate startup error instead of a goroutine crash after the
// process reports itself started.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/avendel/catalog-api/internal/config"
)

var (
	// ErrBind is returned when the listen address cannot be bound,
	// typically because the port is already held by another process.
	ErrBind = errors.New("failed to bind listen address")
)

// Server wraps an http.Server with an explicitly bound listener
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// New creates a server for the given handler using the configured
// listen address and timeouts
func New(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		},
	}
}

// Listen binds the configured address. Port contention is an external
// resource conflict the application does not retry; the operator either
// stops the conflicting process or remaps the published port.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrBind, s.httpServer.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound listener address. Valid only after Listen.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

// Serve accepts connections on the bound listener until Shutdown.
// Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Serve() error {
	if s.listener == nil {
		return fmt.Errorf("%w: Serve called before Listen", ErrBind)
	}
	return s.httpServer.Serve(s.listener)
}

// Shutdown gracefully stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
