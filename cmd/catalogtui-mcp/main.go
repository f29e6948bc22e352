package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/qyinm/catalogtui/config"
	"github.com/qyinm/catalogtui/logging"
	"github.com/qyinm/catalogtui/mcpsrv"
	"github.com/qyinm/catalogtui/provider"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	mcpCfg, err := mcpsrv.LoadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source := provider.New(cfg.Provider, logger.Named("provider"))
	server := mcpsrv.NewServer(source, version, &mcpsrv.ServerOptions{
		EnableAdmin: mcpCfg.AdminEnabled(),
		PageSize:    cfg.View.PageSize,
		Currency:    cfg.View.Currency,
	}, logger.Named("mcp"))

	go mcpsrv.ClearCachePeriodically(ctx, source, mcpCfg.CacheClearInterval, logger)

	httpServer := &http.Server{
		Addr:              ":" + mcpCfg.Port,
		Handler:           mcpsrv.NewMux(server, mcpCfg, logger.Named("http")),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("catalogtui-mcp listening",
		zap.String("addr", httpServer.Addr),
		zap.String("provider", cfg.Provider.BaseURL),
		zap.Bool("admin", mcpCfg.AdminEnabled()))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
