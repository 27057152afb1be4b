package testsupport

import (
	"context"
	"io"
	"log/slog"
	"time"

	"virtboard/internal/config"
	"virtboard/internal/server"
	"virtboard/internal/services/guests"
)

// startTimeout bounds how long RunServer waits for the listeners to bind.
const startTimeout = 10 * time.Second

// SilenceServer routes the process-wide default logger to io.Discard so
// request-level warnings from an embedded server stay out of test output.
// The singleton set by logger.Init is unaffected.
func SilenceServer() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ServerOptions tunes the embedded server RunServer boots. Zero values get
// test defaults: loopback host, FreePort-allocated ports, in-memory store.
type ServerOptions struct {
	Host    string
	Port    int
	SSLPort int

	// Repo overrides the SQLite-backed guests repository, the equivalent
	// of handing the server a canned model.
	Repo guests.Repository

	// Logger defaults to a discard logger so test output stays quiet.
	Logger *slog.Logger
}

// RunServer boots an embeddable server in test mode on a background
// goroutine and blocks until its listeners are accepting. Callers own the
// shutdown; register it with a Rollback:
//
//	srv, err := testsupport.RunServer(testsupport.ServerOptions{})
//	...
//	r.PrependDefer(func() error { return srv.Shutdown(ctx) })
func RunServer(opts ServerOptions) (*server.Server, error) {
	host := opts.Host
	if host == "" {
		host = "127.0.0.1"
	}

	port := opts.Port
	if port == 0 {
		p, err := FreePort("http")
		if err != nil {
			return nil, err
		}
		port = p
	}

	sslPort := opts.SSLPort
	if sslPort == 0 {
		p, err := FreePort("https")
		if err != nil {
			return nil, err
		}
		sslPort = p
	}

	logg := opts.Logger
	if logg == nil {
		// the silence-the-server default
		logg = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg := config.Config{
		Host:            host,
		Port:            port,
		SSLPort:         sslPort,
		TestMode:        true,
		StorePath:       ":memory:",
		LogLevel:        "debug",
		LogFormat:       "text",
		BcryptCost:      10,
		JWTSecret:       "virtboard-test-secret-with-32-plus-characters",
		SessionMinutes:  30,
		LoginRatePerMin: 1000, // tests hammer the login endpoint
		AdminUser:       TestUser,
	}

	var srvOpts []server.Option
	if opts.Repo != nil {
		srvOpts = append(srvOpts, server.WithGuestsRepo(opts.Repo))
	}

	srv, err := server.New(cfg, logg, srvOpts...)
	if err != nil {
		return nil, err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	if err := srv.WaitStarted(ctx); err != nil {
		// Prefer the bind error when Start already failed.
		select {
		case startErr := <-errCh:
			return nil, startErr
		default:
		}
		return nil, err
	}

	return srv, nil
}
