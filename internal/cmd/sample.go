package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/dataset"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Emit the deterministic sample dataset",
	Long: `Generate the seeded demonstration dataset and write it as YAML. The same
seed and policy always produce the same dataset, so samples can be versioned
and compared across runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetInt64("seed")
		outPath, _ := cmd.Flags().GetString("out")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		ds := dataset.Sample(seed, cfg)

		if outPath == "" {
			data, err := yaml.Marshal(ds)
			if err != nil {
				return utils.NewAppError("cmd.sample", "marshal dataset", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if err := dataset.Write(ds, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sample dataset written to %s\n", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().Int64("seed", 42, "seed for the generated dataset")
	sampleCmd.Flags().String("out", "", "file to write; omit for stdout")
}
