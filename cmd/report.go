package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewhitt/promptlab/internal/report"
)

var reportTitle string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the run into a standalone HTML report",
	Long:  `Reads the cost ledger and prompt history under the output directory and writes report.md and report.html next to them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		gen := report.NewGenerator(cfg.OutputDir, reportTitle)
		path, err := gen.Generate()
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "report title (defaults to the output directory name)")
	rootCmd.AddCommand(reportCmd)
}
