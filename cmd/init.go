package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ewhitt/promptlab/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize promptlab configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure promptlab for your experiments and generates a .promptlab.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
