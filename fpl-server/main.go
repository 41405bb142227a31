package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/cache"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/config"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fdr"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fetch"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/logger"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/store"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/ticker"
)

const version = "0.3.0"

func main() {
	var (
		envFile = flag.String("env-file", ".env", "dotenv file loaded before reading FPLTICKER_* variables")
		usage   = flag.Bool("usage", false, "print the recognised environment variables and exit")
	)
	flag.Parse()

	if *usage {
		if err := config.Usage(); err != nil {
			log.Fatal().Err(err).Msg("failed to print usage")
		}
		return
	}

	cfg, err := config.Parse(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Configure(logger.Options{DevMode: cfg.DevMode, Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Stack().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	adj, err := config.LoadAdjustments(cfg.AdjustmentsFile)
	if err != nil {
		return err
	}

	c, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	client := fetch.NewClient(c)
	client.HTTP.Timeout = cfg.FetchTimeout
	client.BaseURL = cfg.FPLBaseURL
	client.StandingsURL = cfg.StandingsURL
	client.Attempts = cfg.FetchAttempts
	client.RetryDelay = cfg.FetchRetryDelay
	client.CacheTTL = cfg.CacheTTL
	if cfg.RawRoot != "" {
		client.Store = store.NewJSONStore(cfg.RawRoot)
	}

	svc := ticker.NewService(client, fdr.NewScorer(adj), cfg.DefaultWindow)
	srv := newServer(serverConfig{
		MCPPath:     cfg.MCPPath,
		APIKey:      cfg.APIKey,
		AuthHeader:  cfg.AuthHeader,
		CORSOrigins: cfg.CORSOrigins,
	}, svc)

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Address).
			Str("mcp_path", cfg.MCPPath).
			Bool("auth", cfg.APIKey != "").
			Msg("fixture ticker listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(cfg.CacheTTL), func() {}, nil
	}
	r, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("using redis response cache")
	return r, func() {
		if err := r.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}, nil
}
