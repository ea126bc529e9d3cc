package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kpi-engine",
	Short: "IT service governance KPI engine",
	Long: `kpi-engine computes IT service governance KPIs from incident, availability,
maturity, and continuity inputs and joins them into one integrated report.
Policy constants (SLA penalties, uptime targets, cost rates, dashboards) come
from a YAML configuration file; datasets are YAML files or generated samples.`,
	SilenceUsage: true,
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the policy configuration file")
}
