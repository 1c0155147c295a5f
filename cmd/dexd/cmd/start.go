package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/algoswap/algoswap/api"
	"github.com/algoswap/algoswap/app"
)

// StartCmd runs the engine and its HTTP listeners until interrupted.
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the pool engine and HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := homeDir(cmd)
			cfg, err := loadConfig(cmd, home)
			if err != nil {
				return err
			}

			logger, err := cfg.Log.NewLogger(os.Stdout)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runNode(ctx, home, cfg, logger)
		},
	}
	cmd.Flags().String(flagChainID, "", "override the configured chain-id")
	return cmd
}

func runNode(ctx context.Context, home string, cfg app.Config, logger log.Logger) error {
	db, err := cfg.OpenDB(home)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	dexApp, err := app.NewDexApp(logger, db, cfg.ChainID)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		// a fresh store has no genesis yet and must stay at version 0
		if !dexApp.IsFresh() {
			commitID := dexApp.Commit()
			logger.Info("state committed", "version", commitID.Version)
		}
		if err := dexApp.Close(); err != nil {
			logger.Error("close database", "err", err)
		}
	}()

	if dexApp.IsFresh() {
		doc, gs, err := app.LoadGenesisFile(genesisPath(home))
		if err != nil {
			return fmt.Errorf("load genesis: %w", err)
		}
		if doc.ChainID != cfg.ChainID {
			return fmt.Errorf("genesis chain-id %q does not match configured %q", doc.ChainID, cfg.ChainID)
		}
		if err := dexApp.InitChain(gs); err != nil {
			return err
		}
	}

	server, err := api.NewServer(dexApp, &cfg.API, logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Start(gctx) })
	if cfg.Metrics.Enabled {
		g.Go(func() error { return startPrometheusServer(gctx, cfg.Metrics.Address, logger) })
	}

	logger.Info("node started", "chain_id", cfg.ChainID, "version", dexApp.LastCommitID().Version)
	return g.Wait()
}

// startPrometheusServer serves /metrics on addr until ctx is done.
func startPrometheusServer(ctx context.Context, addr string, logger log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting prometheus server", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("prometheus server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
