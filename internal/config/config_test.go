package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudcoreops/kpi-engine/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KPI_ENGINE_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := cfg.SLA.PenaltiesUSD[models.SeverityCritical]; got != 5000 {
		t.Errorf("critical penalty: got %v, want 5000", got)
	}
	if got := cfg.SLA.TargetMinutes[models.SeverityLow]; got != 1440 {
		t.Errorf("low severity target: got %v, want 1440", got)
	}
	if cfg.SLA.StatusThresholdPct != 95 {
		t.Errorf("status threshold: got %v, want 95", cfg.SLA.StatusThresholdPct)
	}
	if cfg.Availability.TargetPct != 99.9 {
		t.Errorf("availability target: got %v, want 99.9", cfg.Availability.TargetPct)
	}
	if cfg.Costs.DowntimeCostPerMinuteUSD != 250 {
		t.Errorf("downtime cost: got %v, want 250", cfg.Costs.DowntimeCostPerMinuteUSD)
	}
	if cfg.Risk.AppetiteUSD != 50000 {
		t.Errorf("risk appetite: got %v, want 50000", cfg.Risk.AppetiteUSD)
	}
	if len(cfg.Governance.KPIs) != 5 {
		t.Errorf("governance KPIs: got %d, want 5", len(cfg.Governance.KPIs))
	}
	if len(cfg.Assessment.Criteria) != 5 {
		t.Errorf("assessment criteria: got %d, want 5", len(cfg.Assessment.Criteria))
	}
	if len(cfg.Continuity.Catalog) != 5 {
		t.Errorf("scenario catalog: got %d, want 5", len(cfg.Continuity.Catalog))
	}
	if cfg.Rules.Path != "configs/rules/default.yaml" {
		t.Errorf("rules path: got %q", cfg.Rules.Path)
	}
	if cfg.Output.Dir != "reports" {
		t.Errorf("output dir: got %q", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.JSON {
		t.Errorf("logging defaults: got level=%q json=%v", cfg.Logging.Level, cfg.Logging.JSON)
	}
	if cfg.Metrics.JobName != "kpi_engine" {
		t.Errorf("metrics job: got %q", cfg.Metrics.JobName)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
availability:
  targetPct: 99.5
sla:
  statusThresholdPct: 90
governance:
  alertTolerance: 2
output:
  dir: out
  formats: [csv]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Availability.TargetPct != 99.5 {
		t.Errorf("availability target: got %v, want 99.5", cfg.Availability.TargetPct)
	}
	if cfg.SLA.StatusThresholdPct != 90 {
		t.Errorf("status threshold: got %v, want 90", cfg.SLA.StatusThresholdPct)
	}
	if cfg.Governance.AlertTolerance != 2 {
		t.Errorf("alert tolerance: got %d, want 2", cfg.Governance.AlertTolerance)
	}
	if cfg.Output.Dir != "out" || len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "csv" {
		t.Errorf("output override: got dir=%q formats=%v", cfg.Output.Dir, cfg.Output.Formats)
	}
	// Sections the file does not mention keep their defaults.
	if got := cfg.SLA.PenaltiesUSD[models.SeverityHigh]; got != 2000 {
		t.Errorf("high penalty after partial override: got %v, want 2000", got)
	}
	if cfg.Costs.DowntimeCostPerMinuteUSD != 250 {
		t.Errorf("downtime cost after partial override: got %v, want 250", cfg.Costs.DowntimeCostPerMinuteUSD)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing config file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "availability: [broken")

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadEnvConfigPath(t *testing.T) {
	path := writeConfig(t, `
availability:
  targetPct: 98.0
`)
	t.Setenv("KPI_ENGINE_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Availability.TargetPct != 98.0 {
		t.Errorf("availability target from env path: got %v, want 98.0", cfg.Availability.TargetPct)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KPI_ENGINE_CONFIG", "")
	t.Setenv("KPI_ENGINE_LOG_LEVEL", "debug")
	t.Setenv("KPI_ENGINE_LOG_FORMAT", "json")
	t.Setenv("KPI_ENGINE_OUTPUT_FORMATS", "csv, json")
	t.Setenv("KPI_ENGINE_AVAILABILITY_TARGET", "99.5")
	t.Setenv("KPI_ENGINE_ALERT_TOLERANCE", "3")
	t.Setenv("KPI_ENGINE_PUSHGATEWAY_URL", "http://pushgateway:9091")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.JSON {
		t.Errorf("logging overrides: got level=%q json=%v", cfg.Logging.Level, cfg.Logging.JSON)
	}
	if len(cfg.Output.Formats) != 2 || cfg.Output.Formats[0] != "csv" || cfg.Output.Formats[1] != "json" {
		t.Errorf("formats override: got %v", cfg.Output.Formats)
	}
	if cfg.Availability.TargetPct != 99.5 {
		t.Errorf("availability override: got %v", cfg.Availability.TargetPct)
	}
	if cfg.Governance.AlertTolerance != 3 {
		t.Errorf("tolerance override: got %d", cfg.Governance.AlertTolerance)
	}
	if cfg.Metrics.PushgatewayURL != "http://pushgateway:9091" {
		t.Errorf("pushgateway override: got %q", cfg.Metrics.PushgatewayURL)
	}
}

func TestLoadIgnoresUnparsableNumericEnv(t *testing.T) {
	t.Setenv("KPI_ENGINE_CONFIG", "")
	t.Setenv("KPI_ENGINE_RISK_APPETITE", "plenty")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Risk.AppetiteUSD != 50000 {
		t.Errorf("risk appetite: got %v, want default 50000", cfg.Risk.AppetiteUSD)
	}
}

func TestLoadRejectsInvalidEnvOverride(t *testing.T) {
	t.Setenv("KPI_ENGINE_CONFIG", "")
	t.Setenv("KPI_ENGINE_SLA_STATUS_THRESHOLD", "150")

	if _, err := Load(""); err == nil {
		t.Fatal("expected validation error for threshold above 100")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"negative penalty", func(cfg *Config) {
			cfg.SLA.PenaltiesUSD[models.SeverityLow] = -1
		}},
		{"missing severity target", func(cfg *Config) {
			delete(cfg.SLA.TargetMinutes, models.SeverityMedium)
		}},
		{"status threshold above 100", func(cfg *Config) {
			cfg.SLA.StatusThresholdPct = 120
		}},
		{"zero pattern support", func(cfg *Config) {
			cfg.SLA.PatternMinSupport = 0
		}},
		{"zero availability target", func(cfg *Config) {
			cfg.Availability.TargetPct = 0
		}},
		{"negative downtime cost", func(cfg *Config) {
			cfg.Costs.DowntimeCostPerMinuteUSD = -5
		}},
		{"partial maturity weights", func(cfg *Config) {
			cfg.Maturity.Weights = map[models.Domain]float64{models.DomainEDM: 1}
		}},
		{"negative alert tolerance", func(cfg *Config) {
			cfg.Governance.AlertTolerance = -1
		}},
		{"kpi without field", func(cfg *Config) {
			cfg.Governance.KPIs[0].Field = ""
		}},
		{"criterion without condition", func(cfg *Config) {
			cfg.Assessment.Criteria[0].When = ""
		}},
		{"zero default rto", func(cfg *Config) {
			cfg.Continuity.DefaultRTOTargetHours = 0
		}},
		{"catalog probability above 1", func(cfg *Config) {
			cfg.Continuity.Catalog[0].Probability = 1.5
		}},
		{"non-ascending risk thresholds", func(cfg *Config) {
			cfg.Risk.LevelThresholdsUSD = RiskLevelThresholds{Low: 30000, Medium: 10000, High: 60000}
		}},
		{"empty output dir", func(cfg *Config) {
			cfg.Output.Dir = ""
		}},
		{"unknown output format", func(cfg *Config) {
			cfg.Output.Formats = []string{"json", "pdf"}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// writeConfig writes yaml content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
