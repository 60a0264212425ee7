package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"recruit/internal/platform/config"
	"recruit/internal/platform/httpserver"
	"recruit/internal/platform/tracing"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot and its HTTP endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			if err := cfg.ValidateBot(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, overrides HTTP_ADDR")
	return cmd
}

// serve runs until ctx is cancelled, then drains in-flight work.
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.ErrorContext(flushCtx, "tracing shutdown failed", "error", err)
		}
	}()

	a, err := wireApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("wire app: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.ErrorContext(ctx, "closing resources failed", "error", err)
		}
	}()

	srv := httpserver.New(cfg.HTTPAddr, a.handler)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "http server listening", "addr", cfg.HTTPAddr, "telegram_mode", cfg.TelegramMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if a.poller != nil {
		g.Go(func() error {
			return a.poller.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	a.dispatcher.Wait()
	logger.InfoContext(ctx, "shutdown complete")
	return err
}
