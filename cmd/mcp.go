package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ewhitt/promptlab/internal/history"
	mcpserver "github.com/ewhitt/promptlab/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing prompt history search and cost lookup tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var (
			store *history.Store
			index *history.Index
		)
		if cfg.EnablePromptHistory {
			store, err = history.NewStore(filepath.Join(cfg.OutputDir, "prompt-history"))
			if err != nil {
				return fmt.Errorf("opening prompt history: %w", err)
			}

			embedder, err := newEmbedder(cfg)
			if err != nil {
				return fmt.Errorf("creating embedder: %w", err)
			}
			index, err = history.NewIndex(embedder)
			if err != nil {
				return fmt.Errorf("creating history index: %w", err)
			}

			records, err := store.List(0)
			if err != nil {
				return fmt.Errorf("listing history: %w", err)
			}
			if err := index.Add(context.Background(), records); err != nil {
				// Log warning but continue; list and cost tools still work.
				fmt.Fprintf(os.Stderr, "Warning: could not index history: %v\n", err)
				index = nil
			}
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "promptlab MCP server started on stdio (output=%s)\n", cfg.OutputDir)

		srv := mcpserver.NewServer(cfg.OutputDir, store, index)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
