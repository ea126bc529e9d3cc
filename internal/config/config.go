package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cloudcoreops/kpi-engine/internal/models"
)

// Config captures every policy constant used by the producers and the
// aggregator, plus the operational settings of the engine itself.
type Config struct {
	SLA          SLAConfig          `yaml:"sla"`
	Availability AvailabilityConfig `yaml:"availability"`
	Costs        CostConfig         `yaml:"costs"`
	Maturity     MaturityConfig     `yaml:"maturity"`
	Governance   GovernanceConfig   `yaml:"governance"`
	Assessment   AssessmentConfig   `yaml:"assessment"`
	Continuity   ContinuityConfig   `yaml:"continuity"`
	Risk         RiskConfig         `yaml:"risk"`
	Rules        RulesConfig        `yaml:"rules"`
	Output       OutputConfig       `yaml:"output"`
	Logging      LoggingConfig      `yaml:"logging"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

// SLAConfig holds incident SLA policy.
type SLAConfig struct {
	PenaltiesUSD       map[models.Severity]float64 `yaml:"penaltiesUSD"`
	TargetMinutes      map[models.Severity]float64 `yaml:"targetMinutes"`
	StatusThresholdPct float64                     `yaml:"statusThresholdPct"`
	PatternMinSupport  int                         `yaml:"patternMinSupport"`
}

// AvailabilityConfig holds the monthly uptime objective.
type AvailabilityConfig struct {
	TargetPct float64 `yaml:"targetPct"`
}

// CostConfig holds the financial conversion knobs shared across frames.
type CostConfig struct {
	DowntimeCostPerMinuteUSD float64 `yaml:"downtimeCostPerMinuteUSD"`
}

// MaturityConfig holds per-domain weights for the capability average.
// Empty weights mean a simple average.
type MaturityConfig struct {
	Weights map[models.Domain]float64 `yaml:"weights"`
}

// KPISpec declares one governance dashboard indicator.
type KPISpec struct {
	Name           string  `yaml:"name"`
	Field          string  `yaml:"field"`
	Threshold      float64 `yaml:"threshold"`
	Unit           string  `yaml:"unit"`
	Framework      string  `yaml:"framework"`
	HigherIsBetter bool    `yaml:"higherIsBetter"`
}

// GovernanceConfig holds the dashboard definition and alert tolerance.
type GovernanceConfig struct {
	KPIs           []KPISpec `yaml:"kpis"`
	AlertTolerance int       `yaml:"alertTolerance"`
}

// CriterionSpec declares one integrated-assessment criterion as a
// "<field> <op> <value>" condition over report numbers.
type CriterionSpec struct {
	Name string `yaml:"name"`
	When string `yaml:"when"`
}

// AssessmentConfig holds the integrated maturity criteria.
type AssessmentConfig struct {
	Criteria []CriterionSpec `yaml:"criteria"`
}

// ScenarioSpec declares one continuity scenario of the sample catalog.
type ScenarioSpec struct {
	ID             string                `yaml:"id"`
	Name           string                `yaml:"name"`
	Disruption     models.DisruptionType `yaml:"disruption"`
	Probability    float64               `yaml:"probability"`
	ImpactUSD      float64               `yaml:"impactUSD"`
	RTOTargetHours float64               `yaml:"rtoTargetHours"`
	RPOTargetHours float64               `yaml:"rpoTargetHours"`
}

// ContinuityConfig holds recovery objectives and the scenario catalog used by
// sample generation.
type ContinuityConfig struct {
	DefaultRTOTargetHours float64        `yaml:"defaultRTOTargetHours"`
	DefaultRPOTargetHours float64        `yaml:"defaultRPOTargetHours"`
	Catalog               []ScenarioSpec `yaml:"catalog"`
}

// RiskLevelThresholds buckets residual exposure; an amount below Low is a low
// risk, below Medium a medium one, below High a high one, critical otherwise.
type RiskLevelThresholds struct {
	Low    float64 `yaml:"low"`
	Medium float64 `yaml:"medium"`
	High   float64 `yaml:"high"`
}

// RiskConfig holds risk register policy.
type RiskConfig struct {
	AppetiteUSD        float64             `yaml:"appetiteUSD"`
	LevelThresholdsUSD RiskLevelThresholds `yaml:"levelThresholdsUSD"`
}

// RulesConfig controls rule-pack loading for the recommender.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig controls where and how reports are written.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// MetricsConfig controls Pushgateway delivery of run metrics. An empty URL
// disables pushing.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgatewayURL"`
	JobName        string `yaml:"jobName"`
}

// knownFormats lists the renderers the engine can drive.
var knownFormats = map[string]struct{}{
	"json":    {},
	"text":    {},
	"csv":     {},
	"console": {},
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("KPI_ENGINE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		SLA: SLAConfig{
			PenaltiesUSD: map[models.Severity]float64{
				models.SeverityCritical: 5000,
				models.SeverityHigh:     2000,
				models.SeverityMedium:   500,
				models.SeverityLow:      100,
			},
			TargetMinutes: map[models.Severity]float64{
				models.SeverityCritical: 60,
				models.SeverityHigh:     240,
				models.SeverityMedium:   480,
				models.SeverityLow:      1440,
			},
			StatusThresholdPct: 95,
			PatternMinSupport:  2,
		},
		Availability: AvailabilityConfig{TargetPct: 99.9},
		Costs:        CostConfig{DowntimeCostPerMinuteUSD: 250},
		Maturity:     MaturityConfig{},
		Governance: GovernanceConfig{
			AlertTolerance: 1,
			KPIs: []KPISpec{
				{Name: "Service Availability", Field: "availability_avg_pct", Threshold: 99.9, Unit: "%", Framework: "ISO/IEC 20000", HigherIsBetter: true},
				{Name: "SLA Compliance", Field: "incident_compliance_rate", Threshold: 95, Unit: "%", Framework: "ITIL 4", HigherIsBetter: true},
				{Name: "Critical Incidents", Field: "incident_critical_count", Threshold: 5, Unit: "incidents", Framework: "COBIT 2019", HigherIsBetter: false},
				{Name: "RTO Compliance", Field: "rto_compliance_pct", Threshold: 60, Unit: "%", Framework: "ISO 22301", HigherIsBetter: true},
				{Name: "Governance Maturity", Field: "maturity_level", Threshold: 3, Unit: "level", Framework: "COBIT 2019", HigherIsBetter: true},
			},
		},
		Assessment: AssessmentConfig{
			Criteria: []CriterionSpec{
				{Name: "availability at target", When: "availability_avg_pct >= 99.9"},
				{Name: "sla compliance strong", When: "incident_compliance_rate >= 90"},
				{Name: "governance maturity defined", When: "maturity_level >= 3"},
				{Name: "recovery objectives mostly met", When: "rto_compliance_pct >= 60"},
				{Name: "sla compliance acceptable", When: "incident_compliance_rate >= 80"},
			},
		},
		Continuity: ContinuityConfig{
			DefaultRTOTargetHours: 4,
			DefaultRPOTargetHours: 0.25,
			Catalog: []ScenarioSpec{
				{ID: "ESC-01", Name: "Primary database failure", Disruption: models.DisruptionDatabaseFailure, Probability: 0.15, ImpactUSD: 80000},
				{ID: "ESC-02", Name: "Ransomware on build infrastructure", Disruption: models.DisruptionRansomware, Probability: 0.08, ImpactUSD: 150000},
				{ID: "ESC-03", Name: "Cloud region outage", Disruption: models.DisruptionCloudOutage, Probability: 0.10, ImpactUSD: 90000},
				{ID: "ESC-04", Name: "Backbone network loss", Disruption: models.DisruptionNetworkLoss, Probability: 0.12, ImpactUSD: 45000},
				{ID: "ESC-05", Name: "Failed production deploy", Disruption: models.DisruptionDeployFailure, Probability: 0.25, ImpactUSD: 30000},
			},
		},
		Risk: RiskConfig{
			AppetiteUSD: 50000,
			LevelThresholdsUSD: RiskLevelThresholds{
				Low:    10000,
				Medium: 30000,
				High:   60000,
			},
		},
		Rules:   RulesConfig{Path: "configs/rules/default.yaml"},
		Output:  OutputConfig{Dir: "reports", Formats: []string{"json", "text", "console"}},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Metrics: MetricsConfig{JobName: "kpi_engine"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KPI_ENGINE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("KPI_ENGINE_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("KPI_ENGINE_RULES_PATH"); v != "" {
		cfg.Rules.Path = v
	}
	if v := os.Getenv("KPI_ENGINE_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("KPI_ENGINE_OUTPUT_FORMATS"); v != "" {
		cfg.Output.Formats = splitList(v)
	}
	if v := os.Getenv("KPI_ENGINE_AVAILABILITY_TARGET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Availability.TargetPct = f
		}
	}
	if v := os.Getenv("KPI_ENGINE_DOWNTIME_COST_PER_MINUTE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Costs.DowntimeCostPerMinuteUSD = f
		}
	}
	if v := os.Getenv("KPI_ENGINE_SLA_STATUS_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.SLA.StatusThresholdPct = f
		}
	}
	if v := os.Getenv("KPI_ENGINE_ALERT_TOLERANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Governance.AlertTolerance = n
		}
	}
	if v := os.Getenv("KPI_ENGINE_RISK_APPETITE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.AppetiteUSD = f
		}
	}
	if v := os.Getenv("KPI_ENGINE_PUSHGATEWAY_URL"); v != "" {
		cfg.Metrics.PushgatewayURL = v
	}
	if v := os.Getenv("KPI_ENGINE_PUSH_JOB"); v != "" {
		cfg.Metrics.JobName = v
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks structural policy invariants. Condition syntax and resolver
// field names are checked by the engine when it compiles the policy.
func (c *Config) Validate() error {
	for _, sev := range models.Severities {
		penalty, ok := c.SLA.PenaltiesUSD[sev]
		if !ok {
			return fmt.Errorf("sla.penaltiesUSD: missing severity %q", sev)
		}
		if penalty < 0 {
			return fmt.Errorf("sla.penaltiesUSD[%s]: must not be negative", sev)
		}
		target, ok := c.SLA.TargetMinutes[sev]
		if !ok {
			return fmt.Errorf("sla.targetMinutes: missing severity %q", sev)
		}
		if target <= 0 {
			return fmt.Errorf("sla.targetMinutes[%s]: must be positive", sev)
		}
	}
	if c.SLA.StatusThresholdPct <= 0 || c.SLA.StatusThresholdPct > 100 {
		return fmt.Errorf("sla.statusThresholdPct: must be in (0,100], got %v", c.SLA.StatusThresholdPct)
	}
	if c.SLA.PatternMinSupport < 1 {
		return fmt.Errorf("sla.patternMinSupport: must be at least 1, got %d", c.SLA.PatternMinSupport)
	}
	if c.Availability.TargetPct <= 0 || c.Availability.TargetPct > 100 {
		return fmt.Errorf("availability.targetPct: must be in (0,100], got %v", c.Availability.TargetPct)
	}
	if c.Costs.DowntimeCostPerMinuteUSD < 0 {
		return fmt.Errorf("costs.downtimeCostPerMinuteUSD: must not be negative")
	}
	if len(c.Maturity.Weights) > 0 {
		for _, domain := range models.Domains {
			w, ok := c.Maturity.Weights[domain]
			if !ok {
				return fmt.Errorf("maturity.weights: missing domain %q", domain)
			}
			if w <= 0 {
				return fmt.Errorf("maturity.weights[%s]: must be positive", domain)
			}
		}
	}
	if c.Governance.AlertTolerance < 0 {
		return fmt.Errorf("governance.alertTolerance: must not be negative")
	}
	for i, kpi := range c.Governance.KPIs {
		if kpi.Name == "" {
			return fmt.Errorf("governance.kpis[%d]: name is required", i)
		}
		if kpi.Field == "" {
			return fmt.Errorf("governance.kpis[%d]: field is required", i)
		}
	}
	for i, crit := range c.Assessment.Criteria {
		if crit.Name == "" {
			return fmt.Errorf("assessment.criteria[%d]: name is required", i)
		}
		if crit.When == "" {
			return fmt.Errorf("assessment.criteria[%d]: when is required", i)
		}
	}
	if c.Continuity.DefaultRTOTargetHours <= 0 {
		return fmt.Errorf("continuity.defaultRTOTargetHours: must be positive")
	}
	if c.Continuity.DefaultRPOTargetHours < 0 {
		return fmt.Errorf("continuity.defaultRPOTargetHours: must not be negative")
	}
	for i, spec := range c.Continuity.Catalog {
		if spec.ID == "" || spec.Name == "" {
			return fmt.Errorf("continuity.catalog[%d]: id and name are required", i)
		}
		if spec.Probability < 0 || spec.Probability > 1 {
			return fmt.Errorf("continuity.catalog[%d]: probability must be in [0,1]", i)
		}
		if spec.ImpactUSD < 0 {
			return fmt.Errorf("continuity.catalog[%d]: impactUSD must not be negative", i)
		}
	}
	if c.Risk.AppetiteUSD < 0 {
		return fmt.Errorf("risk.appetiteUSD: must not be negative")
	}
	t := c.Risk.LevelThresholdsUSD
	if t.Low <= 0 || t.Medium <= t.Low || t.High <= t.Medium {
		return fmt.Errorf("risk.levelThresholdsUSD: thresholds must be ascending and positive")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir: must not be empty")
	}
	for i, format := range c.Output.Formats {
		if _, ok := knownFormats[format]; !ok {
			return fmt.Errorf("output.formats[%d]: unknown format %q", i, format)
		}
	}
	return nil
}
