package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qyinm/catalogtui/config"
	"github.com/qyinm/catalogtui/logging"
	"github.com/qyinm/catalogtui/provider"
	"github.com/qyinm/catalogtui/ui"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type flagValues struct {
	baseURL  string
	pageSize int
	debounce time.Duration
	logFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var flags flagValues

	cmd := &cobra.Command{
		Use:           "catalogtui",
		Short:         "Browse a product catalog in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg, flags); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.baseURL, "base-url", "", "data provider base URL (overrides CATALOG_PROVIDER_BASE_URL)")
	f.IntVar(&flags.pageSize, "page-size", 0, "products added per page (overrides CATALOG_VIEW_PAGE_SIZE)")
	f.DurationVar(&flags.debounce, "debounce", 0, "quiet period before a filter change applies (overrides CATALOG_VIEW_DEBOUNCE)")
	f.StringVar(&flags.logFile, "log-file", "", "write JSON logs to this file (overrides CATALOG_LOG_FILE)")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides CATALOG_LOG_LEVEL)")
	return cmd
}

// applyFlags overrides cfg with the flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags flagValues) error {
	f := cmd.Flags()
	if f.Changed("base-url") {
		cfg.Provider.BaseURL = flags.baseURL
	}
	if f.Changed("page-size") {
		cfg.View.PageSize = flags.pageSize
	}
	if f.Changed("debounce") {
		cfg.View.Debounce = flags.debounce
	}
	if f.Changed("log-file") {
		cfg.Log.File = flags.logFile
	}
	if f.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	return cfg.Validate()
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.New(cfg.Log, "")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting catalogtui",
		zap.String("version", version),
		zap.String("provider", cfg.Provider.BaseURL),
		zap.Int("page_size", cfg.View.PageSize),
		zap.Duration("debounce", cfg.View.Debounce))

	source := provider.New(cfg.Provider, logger.Named("provider"))
	model := ui.NewModel(ctx, source, cfg.View, logger.Named("ui"))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
