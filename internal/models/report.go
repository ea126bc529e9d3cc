package models

// KPIStatus flags a governance KPI as on target or alerting.
type KPIStatus string

const (
	KPIStatusOK    KPIStatus = "ok"
	KPIStatusAlert KPIStatus = "alert"
)

// GovernanceKPI is one dashboard indicator resolved against the report.
// Gap is positive when the KPI clears its threshold.
type GovernanceKPI struct {
	Name           string    `json:"name"`
	Field          string    `json:"field"`
	Value          float64   `json:"value"`
	Threshold      float64   `json:"threshold"`
	Unit           string    `json:"unit"`
	Framework      string    `json:"framework"`
	HigherIsBetter bool      `json:"higher_is_better"`
	Status         KPIStatus `json:"status"`
	Gap            float64   `json:"gap"`
}

// GovernanceStatus is the conformity verdict derived from KPI alerts.
type GovernanceStatus string

const (
	GovernanceConforming    GovernanceStatus = "conforming"
	GovernanceObservation   GovernanceStatus = "observation"
	GovernanceNonConforming GovernanceStatus = "non_conforming"
)

// GovernanceSummary is the KPI dashboard section of the integrated report.
type GovernanceSummary struct {
	KPIs       []GovernanceKPI  `json:"kpis"`
	AlertCount int              `json:"alert_count"`
	Status     GovernanceStatus `json:"status"`
}

// Assessment is the integrated maturity verdict across all frames.
type Assessment struct {
	Score       int      `json:"score"`
	Description string   `json:"description"`
	Notes       []string `json:"notes,omitempty"`
}

// IntegratedReport joins all producer outputs into the governance deliverable.
// It is built in one pass by the aggregator and never mutated afterwards; two
// aggregations over identical inputs yield identical reports.
type IntegratedReport struct {
	IncidentComplianceRate float64 `json:"incident_compliance_rate"`
	AvailabilityAvgPct     float64 `json:"availability_avg_pct"`
	MonthsCompliantCount   int     `json:"months_compliant_count"`
	AnnualFinancialImpact  float64 `json:"annual_financial_impact"`
	SLAPenaltyTotal        float64 `json:"sla_penalty_total"`
	RTOScenariosMetCount   int     `json:"rto_scenarios_met_count"`
	MaturityLevel          int     `json:"maturity_level"`

	Incidents       IncidentMetrics     `json:"incidents"`
	Availability    AvailabilityMetrics `json:"availability"`
	Maturity        MaturityResult      `json:"maturity"`
	Continuity      ContinuityMetrics   `json:"continuity"`
	Risk            *RiskSummary        `json:"risk,omitempty"`
	Governance      GovernanceSummary   `json:"governance"`
	Assessment      Assessment          `json:"assessment"`
	Decisions       []string            `json:"decisions,omitempty"`
	Recommendations []string            `json:"recommendations,omitempty"`
}
