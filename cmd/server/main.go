package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/todosync/internal/config"
	"github.com/iudanet/todosync/internal/logger"
	"github.com/iudanet/todosync/internal/server"
	"github.com/iudanet/todosync/internal/server/handlers"
	"github.com/iudanet/todosync/internal/server/middleware"
	"github.com/iudanet/todosync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const tokenJanitorInterval = time.Hour

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("Server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closer := logger.New(cfg.Log)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst, log,
		middleware.WithTrustedProxy(cfg.RateLimit.TrustProxy))
	defer limiter.Stop()

	router := server.NewRouter(server.RouterConfig{
		Logger:      log,
		Store:       store,
		CodeSender:  handlers.LogCodeSender{Logger: log},
		RateLimiter: limiter,
		Version:     Version,
		CORSOrigins: cfg.CORS.Origins(),
		Auth: handlers.AuthConfig{
			JWT: handlers.JWTConfig{
				Issuer:          cfg.Auth.JWTIssuer,
				Secret:          []byte(cfg.Auth.JWTSecret),
				AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
				RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
			},
			BcryptCost:   cfg.Auth.BcryptCost,
			ResetCodeTTL: cfg.Auth.ResetCodeTTL,
		},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", Version),
			slog.String("database", cfg.Database.Path),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		server.RunTokenJanitor(gctx, log, store, tokenJanitorInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}

func printVersion() {
	fmt.Printf("todosync server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
