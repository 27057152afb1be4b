package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtboard/internal/auth"
	"virtboard/internal/config"
	"virtboard/internal/logger"
	"virtboard/internal/server"
	"virtboard/internal/utils/crypto"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Create bootstrap logger for early errors
	bootstrapLog := log.New(os.Stderr, "bootstrap: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		bootstrapLog.Printf("config load failed: %v", err)
		os.Exit(1)
	}

	logg, err := logger.Init(cfg)
	if err != nil {
		bootstrapLog.Printf("logger init failed: %v", err)
		os.Exit(1)
	}

	provider := auth.NewLocalProvider(cfg.BcryptCost)
	if cfg.AdminPassword != "" {
		if !crypto.IsStrong(cfg.AdminPassword) {
			logg.Warn("ADMIN_PASSWORD does not meet strength requirements", "user", cfg.AdminUser)
		}
		if err := provider.AddUser(cfg.AdminUser, cfg.AdminPassword); err != nil {
			logg.Error("seed admin user", "err", err)
			os.Exit(1)
		}
	} else {
		logg.Warn("ADMIN_PASSWORD not set; no users can authenticate")
	}
	auth.SetProvider(provider)

	srv, err := server.New(cfg, logg)
	if err != nil {
		logg.Error("server init", "err", err)
		os.Exit(1)
	}

	logg.Info("starting virtboard", "port", cfg.Port, "ssl_port", cfg.SSLPort)

	g.Go(srv.Start)

	// Graceful shutdown
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	// Wait and exit
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error("fatal", "err", err)
		os.Exit(1)
	}
	logg.Info("graceful shutdown complete")
}
