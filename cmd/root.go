package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "promptlab",
	Short: "Run reproducible prompt experiments against LLM APIs",
	Long: `Promptlab runs prompt experiments against inference APIs with completion
caching, rate limiting, cost accounting, and searchable prompt history.
It handles text, image, and audio prompts across OpenAI, Anthropic,
Google, and local models.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".promptlab.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
