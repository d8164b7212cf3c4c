package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/cardforge/cache"
	"github.com/pthm/cardforge/config"
	"github.com/pthm/cardforge/editor"
	"github.com/pthm/cardforge/generation"
	"github.com/pthm/cardforge/server"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var (
		addr    string
		envFile string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return a.serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides CARDFORGE_ADDR)")
	cmd.Flags().StringVar(&envFile, "env-file", "", ".env file to load")
	return cmd
}

func (a *app) serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := a.logger
	if cfg.EphemeralSecret {
		logger.Warn("CARDFORGE_SECRET not set; using an ephemeral secret")
	}

	store, closeStore, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var client generation.Client
	if cfg.Gemini.Enabled() {
		gemini, err := generation.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		client = gemini
		logger.Info("generation enabled", zap.String("client", gemini.Name()))
	} else {
		logger.Info("generation disabled; set GEMINI_API_KEY to enable")
	}

	srv := server.New(server.Deps{
		Secret:    cfg.Secret,
		Logger:    logger,
		Cards:     editor.NewMemoryStore(),
		Generator: generation.NewService(client, store, logger),
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start(cfg.Addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openCache returns the memory cache, backed by Postgres when a database
// URL is configured.
func openCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Store, func(), error) {
	memory, err := cache.NewMemoryStore(cfg.CacheSize)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return memory, func() {}, nil
	}

	pg, err := cache.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open result cache: %w", err)
	}
	logger.Info("result cache backed by postgres")
	closeFn := func() {
		if err := pg.Close(); err != nil {
			logger.Warn("close result cache", zap.Error(err))
		}
	}
	return cache.NewCachedStore(memory, pg, logger), closeFn, nil
}
