package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"salarydash/internal/api"
	"salarydash/internal/config"
	"salarydash/internal/engine"
	"salarydash/internal/logger"
)

const shutdownTimeout = 30 * time.Second

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long: `Serve starts the HTTP server immediately and loads the dataset in the
background. Data routes answer 503 until loading finishes. A failed load
stops the server and exits non-zero.

Example:
  salarydash serve --config salarydash.yaml --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Override listen port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	h := api.NewHandler(cfg.Dashboard, log)
	e := api.NewServer(cfg, log, h)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	g.Go(func() error {
		log.Infow("HTTP server starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := loadDataset(gctx, cfg, log, h)
		if err != nil && ctx.Err() != nil {
			// interrupted while loading
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorw("server stopped", "error", err)
		return err
	}
	log.Info("salarydash stopped")
	return nil
}

// loadDataset retrieves the configured source and publishes it to h.
func loadDataset(ctx context.Context, cfg *config.Config, log *logger.Logger, h *api.Handler) error {
	log = log.WithSource(cfg.Data.Source)
	log.Info("loading dataset")
	t0 := time.Now()

	cs, err := retrieve(ctx, cfg)
	if err != nil {
		return err
	}
	h.SetStore(cs)

	log.WithFields(map[string]interface{}{
		"rows":    cs.Len(),
		"skipped": cs.Skipped,
		"elapsed": time.Since(t0),
	}).Info("dataset ready")
	return nil
}

// retrieve loads the configured source. A zero timeout means no limit.
func retrieve(ctx context.Context, cfg *config.Config) (*engine.ColumnStore, error) {
	if cfg.Data.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Data.Timeout)
		defer cancel()
	}
	client := &http.Client{Timeout: cfg.Data.Timeout}
	return engine.Load(ctx, client, cfg.Data.Source)
}
