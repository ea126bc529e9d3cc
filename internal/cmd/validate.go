package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/dataset"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a dataset without generating a report",
	Long: `Run every producer's validation over the dataset and print all findings.
Unlike a report run, validation does not stop at the first invalid section.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		datasetPath, _ := cmd.Flags().GetString("dataset")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)

		ds, err := dataset.Load(datasetPath)
		if err != nil {
			return err
		}

		svc, err := buildReportService(logger, cfg)
		if err != nil {
			return err
		}

		findings := svc.Validate(ds)
		if findings == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: dataset is valid\n", datasetPath)
			return nil
		}
		for _, finding := range findings {
			fmt.Fprintf(cmd.OutOrStdout(), "invalid: %v\n", finding)
		}
		return fmt.Errorf("dataset %s failed validation with %d finding(s)", datasetPath, len(findings))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("dataset", "", "dataset file to validate")
	validateCmd.MarkFlagRequired("dataset")
}
