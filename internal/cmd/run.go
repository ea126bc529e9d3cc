package cmd

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/dataset"
	"github.com/cloudcoreops/kpi-engine/internal/engine"
	"github.com/cloudcoreops/kpi-engine/internal/metrics"
	"github.com/cloudcoreops/kpi-engine/internal/producers"
	"github.com/cloudcoreops/kpi-engine/internal/render"
	"github.com/cloudcoreops/kpi-engine/internal/services"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate the integrated KPI report",
	Long: `Run the full reporting pipeline: load the policy configuration, load the
dataset (or generate the seeded sample when none is given), run the metric
producers, aggregate their outputs, and write the configured artifacts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		datasetPath, _ := cmd.Flags().GetString("dataset")
		seed, _ := cmd.Flags().GetInt64("seed")
		outDir, _ := cmd.Flags().GetString("out")
		formats, _ := cmd.Flags().GetStringSlice("format")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if outDir != "" {
			cfg.Output.Dir = outDir
		}
		if len(formats) > 0 {
			cfg.Output.Formats = formats
		}

		logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
		if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
			return utils.NewAppError("cmd.run", "register metrics", err)
		}
		defer func() {
			if err := metrics.Push(cfg.Metrics.PushgatewayURL, cfg.Metrics.JobName); err != nil {
				logger.Warn("metrics push failed",
					slog.String("pushgateway", cfg.Metrics.PushgatewayURL), slog.Any("error", err))
			}
		}()

		var ds *dataset.Dataset
		if datasetPath != "" {
			ds, err = dataset.Load(datasetPath)
			if err != nil {
				return err
			}
			logger.Info("dataset loaded", slog.String("path", datasetPath))
		} else {
			ds = dataset.Sample(seed, cfg)
			logger.Info("no dataset supplied, generated sample", slog.Int64("seed", seed))
		}

		svc, err := buildReportService(logger, cfg)
		if err != nil {
			return err
		}

		report, err := svc.Generate(cmd.Context(), ds)
		if err != nil {
			return err
		}

		for _, format := range cfg.Output.Formats {
			switch format {
			case "json":
				path, err := render.WriteJSON(report, cfg.Output.Dir)
				if err != nil {
					return err
				}
				logger.Info("artifact written", slog.String("path", path))
			case "text":
				path, err := render.NewTextRenderer().WriteText(report, cfg.Output.Dir)
				if err != nil {
					return err
				}
				logger.Info("artifact written", slog.String("path", path))
			case "csv":
				paths, err := render.WriteCSV(report, cfg.Output.Dir)
				if err != nil {
					return err
				}
				for _, path := range paths {
					logger.Info("artifact written", slog.String("path", path))
				}
			case "console":
				if err := render.WriteConsole(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		}
		return nil
	},
}

// buildReportService wires producers and the aggregator from the policy.
func buildReportService(logger *slog.Logger, cfg *config.Config) (*services.ReportService, error) {
	rules, err := engine.NewRuleEngine(cfg.Rules.Path, logger)
	if err != nil {
		return nil, utils.NewAppError("cmd.run", "load rule pack", err)
	}
	aggregator, err := engine.NewAggregator(logger, cfg, rules)
	if err != nil {
		return nil, utils.NewAppError("cmd.run", "compile governance policy", err)
	}
	return services.NewReportService(
		logger,
		producers.NewIncidentProducer(cfg.SLA),
		producers.NewAvailabilityProducer(cfg.Availability, cfg.Costs),
		producers.NewMaturityProducer(cfg.Maturity),
		producers.NewContinuityProducer(cfg.Costs),
		producers.NewRiskEvaluator(cfg.Risk),
		aggregator,
	), nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("dataset", "", "dataset file to report on; omit to generate a sample")
	runCmd.Flags().Int64("seed", 42, "seed for the generated sample dataset")
	runCmd.Flags().String("out", "", "output directory (overrides output.dir)")
	runCmd.Flags().StringSlice("format", nil, "artifact formats: json, text, csv, console (overrides output.formats)")
}
