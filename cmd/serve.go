package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ewhitt/promptlab/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run over HTTP",
	Long:  `Starts an HTTP server exposing the cost ledger, the prompt history, and a websocket tail of new cost entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}

		historyDir := ""
		if cfg.EnablePromptHistory {
			historyDir = filepath.Join(cfg.OutputDir, "prompt-history")
		}

		srv := server.New(server.Config{
			Port:      port,
			OutputDir: cfg.OutputDir,
			AllowAll:  cfg.Server.AllowAll,
		}, historyDir)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-stop:
			fmt.Println("\nShutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
