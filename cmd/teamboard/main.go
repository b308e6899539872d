package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"teamboard/internal/config"
	"teamboard/internal/report"
	"teamboard/internal/server"
	"teamboard/internal/storage"
	"teamboard/internal/storage/postgres"
	"teamboard/internal/storage/sqlite"
	"teamboard/internal/tracker"
	"teamboard/internal/util"
)

var configPath string

func main() {
	if _, err := util.LoadEnvFiles(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "teamboard",
		Short:        "Team, user, board and task tracking backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", util.EnvOrDefault("TEAMBOARD_CONFIG", ""), "path to a config file (yaml, toml or json)")
	root.AddCommand(serveCmd(), exportCmd())
	return root
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	return cmd
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <board-id>",
		Short: "Write a board report and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			tr, err := tracker.New(ctx, store, report.NewWriter(afero.NewOsFs(), cfg.Export.Dir), logger)
			if err != nil {
				return err
			}
			resp, err := tr.Boards.ExportBoard(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.OutFile)
			return nil
		},
	}
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.NewLogger(os.Stdout), nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.Storage.DSN, logger)
	default:
		return sqlite.Open(cfg.Storage.DSN, logger)
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("unable to open storage", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		return err
	}
	defer store.Close()

	tr, err := tracker.New(ctx, store, report.NewWriter(afero.NewOsFs(), cfg.Export.Dir), logger)
	if err != nil {
		logger.Error("unable to load collections", slog.String("error", err.Error()))
		return err
	}

	srv := server.New(tr, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}
