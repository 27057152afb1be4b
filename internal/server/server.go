// Package server hosts virtboard's embeddable HTTP/HTTPS server. The same
// Server type backs the production binary and the test-support kit: it can
// be constructed in-process, started on a background goroutine, and waited
// on until its listeners are bound.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"virtboard/internal/config"
	"virtboard/internal/objectstore"
	"virtboard/internal/services/guests"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// Server serves the management API on an HTTP listener and, when SSLPort is
// configured, a TLS listener backed by the same Fiber app.
type Server struct {
	cfg   config.Config
	log   *slog.Logger
	app   *fiber.App
	store *objectstore.Store // nil when a custom repository was injected

	started      chan struct{}
	startOnce    sync.Once
	shutdownOnce sync.Once
	shutdownErr  error
}

type options struct {
	repo guests.Repository
}

// Option customizes server construction.
type Option func(*options)

// WithGuestsRepo injects a caller-supplied repository instead of the
// SQLite-backed default. Tests use it to run against canned data.
func WithGuestsRepo(repo guests.Repository) Option {
	return func(o *options) {
		o.repo = repo
	}
}

// New validates cfg and builds a server ready to Start. When no repository
// option is given it opens the object store at cfg.StorePath.
func New(cfg config.Config, log *slog.Logger, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		cfg:     cfg,
		log:     log,
		started: make(chan struct{}),
	}

	repo := o.repo
	if repo == nil {
		store, err := objectstore.Open(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open object store: %w", err)
		}
		s.store = store
		repo = objectstore.NewGuestsRepo(store)
	}

	svc := guests.NewService(repo, log)
	s.app = s.setupRouter(svc)

	return s, nil
}

// storePing returns the health probe for the object store, or nil when the
// server runs on an injected repository.
func (s *Server) storePing() func(context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Ping
}

// Start binds the listeners, flips the started flag, and serves until
// Shutdown. It is the blocking call callers run on a background goroutine;
// WaitStarted reports when the listeners are accepting.
func (s *Server) Start() error {
	var startErr error
	ran := false

	s.startOnce.Do(func() {
		ran = true
		startErr = s.run()
	})
	if !ran {
		return fmt.Errorf("server already started")
	}
	return startErr
}

func (s *Server) run() error {
	httpLn, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port))
	if err != nil {
		return fmt.Errorf("bind http listener: %w", err)
	}
	listeners := []net.Listener{httpLn}

	if s.cfg.SSLPort > 0 {
		tlsCfg, err := s.tlsConfig()
		if err != nil {
			_ = httpLn.Close()
			return err
		}
		raw, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.SSLPort))
		if err != nil {
			_ = httpLn.Close()
			return fmt.Errorf("bind https listener: %w", err)
		}
		listeners = append(listeners, tls.NewListener(raw, tlsCfg))
	}

	var g errgroup.Group
	for _, ln := range listeners {
		g.Go(func() error {
			return s.app.Listener(ln)
		})
	}

	// Listeners are bound; connections queue in the kernel backlog from
	// here on, so the server counts as started.
	close(s.started)
	s.log.Info("server started", "host", s.cfg.Host, "port", s.cfg.Port, "ssl_port", s.cfg.SSLPort)

	return g.Wait()
}

// tlsConfig loads the configured certificate pair, or self-signs one in
// test mode.
func (s *Server) tlsConfig() (*tls.Config, error) {
	if s.cfg.SSLCert != "" {
		cert, err := tls.LoadX509KeyPair(s.cfg.SSLCert, s.cfg.SSLKey)
		if err != nil {
			return nil, fmt.Errorf("load ssl key pair: %w", err)
		}
		return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
	}

	cert, err := selfSignedCert("localhost", "127.0.0.1", s.cfg.Host)
	if err != nil {
		return nil, err
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
}

// WaitStarted blocks until the listeners are bound or ctx expires.
func (s *Server) WaitStarted(ctx context.Context) error {
	select {
	case <-s.started:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown gracefully stops the listeners and closes the object store. It
// is idempotent; later calls return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		err := s.app.ShutdownWithContext(ctx)
		if s.store != nil {
			if cerr := s.store.Close(); err == nil {
				err = cerr
			}
		}
		s.shutdownErr = err
		s.log.Info("server stopped")
	})
	return s.shutdownErr
}
