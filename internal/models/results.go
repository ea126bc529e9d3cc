package models

// SLAStatus flags whether a metrics frame met its service-level target.
type SLAStatus string

const (
	SLAStatusMet      SLAStatus = "met"
	SLAStatusBreached SLAStatus = "breached"
)

// SeverityBreakdown aggregates incident outcomes for one severity.
type SeverityBreakdown struct {
	Severity             Severity `json:"severity"`
	Total                int      `json:"total"`
	Met                  int      `json:"met"`
	Breached             int      `json:"breached"`
	ComplianceRate       float64  `json:"compliance_rate"`
	PenaltyTotal         float64  `json:"penalty_total"`
	AvgResolutionMinutes float64  `json:"avg_resolution_minutes"`
	P95ResolutionMinutes float64  `json:"p95_resolution_minutes"`
}

// BreachPattern is a recurring SLA-breach cluster mined from incident history.
type BreachPattern struct {
	Service   string   `json:"service"`
	Severity  Severity `json:"severity"`
	Count     int      `json:"count"`
	SampleIDs []string `json:"sample_ids,omitempty"`
}

// IncidentMetrics is the incident producer output for one reporting batch.
type IncidentMetrics struct {
	ComplianceRate       float64             `json:"compliance_rate"`
	PenaltyTotal         float64             `json:"penalty_total"`
	MetCount             int                 `json:"met_count"`
	BreachedCount        int                 `json:"breached_count"`
	TotalCount           int                 `json:"total_count"`
	CriticalCount        int                 `json:"critical_count"`
	Status               SLAStatus           `json:"status"`
	AvgResolutionMinutes float64             `json:"avg_resolution_minutes"`
	P95ResolutionMinutes float64             `json:"p95_resolution_minutes"`
	BySeverity           []SeverityBreakdown `json:"by_severity"`
	BreachPatterns       []BreachPattern     `json:"breach_patterns,omitempty"`
}

// MonthlyAvailability is the availability outcome of one calendar month.
type MonthlyAvailability struct {
	Month           int     `json:"month"`
	MonthName       string  `json:"month_name"`
	UptimePct       float64 `json:"uptime_pct"`
	DowntimeMinutes float64 `json:"downtime_minutes"`
	DowntimeCostUSD float64 `json:"downtime_cost_usd"`
	Compliant       bool    `json:"compliant"`
}

// AvailabilityMetrics is the availability producer output for a 12-month window.
type AvailabilityMetrics struct {
	MonthlyUptimePct      []float64             `json:"monthly_uptime_pct"`
	AvgUptimePct          float64               `json:"avg_uptime_pct"`
	MonthsCompliantCount  int                   `json:"months_compliant_count"`
	AnnualDowntimeMinutes float64               `json:"annual_downtime_minutes"`
	TargetPct             float64               `json:"target_pct"`
	Status                SLAStatus             `json:"status"`
	Monthly               []MonthlyAvailability `json:"monthly"`
	NonCompliantMonths    []string              `json:"non_compliant_months,omitempty"`
}

// DomainScore is the weighted capability score of one governance domain.
type DomainScore struct {
	Domain          Domain  `json:"domain"`
	CapabilityScore float64 `json:"capability_score"`
	Weight          float64 `json:"weight"`
}

// MaturityResult is the governance maturity producer output.
type MaturityResult struct {
	Level           int           `json:"level"`
	Description     string        `json:"description"`
	WeightedScore   float64       `json:"weighted_score"`
	PerDomainScores []DomainScore `json:"per_domain_scores"`
}

// MaturityDescription maps a capability level to its standard name.
func MaturityDescription(level int) string {
	switch level {
	case 5:
		return "Optimized"
	case 4:
		return "Quantitatively Managed"
	case 3:
		return "Defined"
	case 2:
		return "Managed"
	case 1:
		return "Initial"
	}
	return "Nonexistent"
}

// ScenarioResult is the evaluated outcome of one continuity scenario.
type ScenarioResult struct {
	ID                string         `json:"id,omitempty"`
	Name              string         `json:"name"`
	Disruption        DisruptionType `json:"disruption,omitempty"`
	RTOTargetHours    float64        `json:"rto_target_hours"`
	RTOObservedHours  float64        `json:"rto_observed_hours"`
	MeetsRTO          bool           `json:"meets_rto"`
	RTOGapHours       float64        `json:"rto_gap_hours"`
	MeetsRPO          bool           `json:"meets_rpo"`
	ResidualRiskUSD   float64        `json:"residual_risk_usd"`
	RecoveryImpactUSD float64        `json:"recovery_impact_usd"`
}

// ContinuityMetrics is the continuity producer output for one scenario set.
type ContinuityMetrics struct {
	ScenariosMetCount int              `json:"scenarios_met_count"`
	TotalCount        int              `json:"total_count"`
	PerScenarioResult []ScenarioResult `json:"per_scenario_result"`
	WorstGapHours     float64          `json:"worst_gap_hours"`
	RTOCompliancePct  float64          `json:"rto_compliance_pct"`
	RPOCompliancePct  float64          `json:"rpo_compliance_pct"`
	TotalResidualUSD  float64          `json:"total_residual_risk_usd"`
	TotalRecoveryUSD  float64          `json:"total_recovery_impact_usd"`
	CriticalScenarios []string         `json:"critical_scenarios,omitempty"`
}

// RiskLevel buckets residual exposure into reporting bands.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// RiskResult is the evaluated outcome of one risk register entry.
type RiskResult struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	InherentUSD          float64   `json:"inherent_usd"`
	ControlEffectiveness float64   `json:"control_effectiveness"`
	ResidualUSD          float64   `json:"residual_usd"`
	Level                RiskLevel `json:"level"`
	ExceedsAppetite      bool      `json:"exceeds_appetite"`
}

// RiskSummary is the risk register evaluation output.
type RiskSummary struct {
	Items             []RiskResult `json:"items"`
	TotalInherentUSD  float64      `json:"total_inherent_usd"`
	TotalResidualUSD  float64      `json:"total_residual_usd"`
	ExceedingAppetite int          `json:"exceeding_appetite"`
	AppetiteUSD       float64      `json:"appetite_usd"`
	Highest           string       `json:"highest,omitempty"`
}
