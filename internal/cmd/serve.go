package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seekr-dev/seekr/internal/api"
	"github.com/seekr-dev/seekr/internal/config"
	"github.com/seekr-dev/seekr/internal/history"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis API",
	Long: `Start the HTTP server exposing the analysis API.

Endpoints:
  POST /analyze                    Upload a ZIP and requirement, get a report
  POST /analyze-with-verification  Same, plus the simulated verification section
  GET  /health                     Health check
  GET  /                           Service description

Uploads use multipart form fields problem_description (text) and
code_zip (file). The server stops cleanly on SIGINT or SIGTERM.

Examples:
  seekr serve
  seekr serve --addr :9000
  curl -F problem_description="用户登录" -F code_zip=@shop.zip localhost:8080/analyze`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	logger := buildLogger(cfg)

	hist := openHistoryStore(cfg, logger)
	if hist != nil {
		defer hist.Close()
	}

	srv := api.NewServer(cfg, hist, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("signal received, shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-errCh
}

// openHistoryStore opens the history database when history is enabled and
// a .seekr directory exists. Returns nil when analyses should not be
// recorded.
func openHistoryStore(cfg *config.Config, logger *slog.Logger) *history.Store {
	if cfg.History.Disabled {
		return nil
	}

	seekrDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil
	}

	hist, err := history.Open(seekrDir)
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return nil
	}

	fmt.Fprintf(os.Stderr, "recording analyses to %s\n", hist.Path())
	return hist
}
