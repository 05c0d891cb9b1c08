// Package main provides the ContactDeck backend server.
// Clients communicate via REST plus a WebSocket feed of contact changes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/contactdeck/backend/internal/broadcast"
	"github.com/contactdeck/backend/internal/config"
	"github.com/contactdeck/backend/internal/contacts"
	"github.com/contactdeck/backend/internal/db"
	"github.com/contactdeck/backend/internal/logging"
	"github.com/contactdeck/backend/internal/metrics"
)

// Version information (set via ldflags during build)
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "contactdeck",
	Short:   "ContactDeck - contact manager with version history and live updates",
	Version: Version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API and websocket server",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return serve(configPath)
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"ContactDeck version %s\nCommit: %s\n", Version, Commit,
	))

	serveCmd.Flags().String("config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:      logging.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
	})
	metrics.Register()

	database, err := db.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.EnsureSchema(database.DB); err != nil {
		return err
	}

	broker := broadcast.NewBroker()
	broker.Start()
	defer broker.Stop()

	repo := db.NewRepository(database.DB)
	svc := contacts.NewService(repo, broker)

	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: newRouter(cfg, svc, broker),
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info().Str("listen", cfg.Listen).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logging.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
