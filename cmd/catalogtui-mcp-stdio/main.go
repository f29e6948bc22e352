package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qyinm/catalogtui/config"
	"github.com/qyinm/catalogtui/logging"
	"github.com/qyinm/catalogtui/mcpsrv"
	"github.com/qyinm/catalogtui/provider"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stdio mcp server failed: %v\n", err)
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
	// stdout carries the protocol.
	logger, err := logging.New(cfg.Log, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source := provider.New(cfg.Provider, logger.Named("provider"))
	// The stdio client is the local user, so no API key guards the admin tool.
	server := mcpsrv.NewServer(source, version, &mcpsrv.ServerOptions{
		EnableAdmin: mcpCfg.EnableAdmin,
		PageSize:    cfg.View.PageSize,
		Currency:    cfg.View.Currency,
	}, logger.Named("mcp"))

	go mcpsrv.ClearCachePeriodically(ctx, source, mcpCfg.CacheClearInterval, logger)

	return server.Run(ctx, &mcp.StdioTransport{})
}
