package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via
// -ldflags "-X github.com/cloudcoreops/kpi-engine/internal/cmd.version=v1.2.3".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "kpi-engine %s\n", version)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
