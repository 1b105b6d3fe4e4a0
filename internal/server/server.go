// Package server wraps http.Server with the gateway's timeouts and the
// start/shutdown lifecycle Run drives.
package server

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"fantasy-gateway/internal/common/logging"
)

// Server is the gateway's HTTP listener.
type Server struct {
	srv     *http.Server
	tlsCert string
	tlsKey  string
}

// New creates a server on the given port. TLS is enabled when both cert and
// key paths are set.
func New(handler http.Handler, port, tlsCert, tlsKey string) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		tlsCert: tlsCert,
		tlsKey:  tlsKey,
	}
}

// Start launches the listener in the background. A listener failure other
// than a graceful Shutdown panics.
func (s *Server) Start() error {
	if s.tlsCert != "" && s.tlsKey != "" {
		s.srv.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}

		logging.Info("HTTP server listening",
			logging.Field{Key: "addr", Value: s.srv.Addr},
			logging.Field{Key: "tls", Value: true},
		)
		go func() {
			if err := s.srv.ListenAndServeTLS(s.tlsCert, s.tlsKey); err != nil && err != http.ErrServerClosed {
				logging.Error("HTTP server terminated", err)
				panic(err)
			}
		}()
		return nil
	}

	logging.Info("HTTP server listening",
		logging.Field{Key: "addr", Value: s.srv.Addr},
		logging.Field{Key: "tls", Value: false},
	)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server terminated", err)
			panic(err)
		}
	}()
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests
// to finish, up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
