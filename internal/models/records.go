package models

import "time"

// Severity captures incident impact levels, highest first.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all severities in reporting order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Valid reports whether the severity is one of the known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Label returns the operational priority label for the severity.
func (s Severity) Label() string {
	switch s {
	case SeverityCritical:
		return "P1"
	case SeverityHigh:
		return "P2"
	case SeverityMedium:
		return "P3"
	case SeverityLow:
		return "P4"
	}
	return "P?"
}

// IncidentRecord is a resolved incident evaluated against its SLA target.
type IncidentRecord struct {
	ID               string    `json:"id" yaml:"id"`
	Severity         Severity  `json:"severity" yaml:"severity"`
	Service          string    `json:"service,omitempty" yaml:"service,omitempty"`
	OpenedAt         time.Time `json:"opened_at" yaml:"opened_at"`
	ResolvedAt       time.Time `json:"resolved_at" yaml:"resolved_at"`
	SLATargetMinutes float64   `json:"sla_target_minutes" yaml:"sla_target_minutes"`
}

// ResolutionMinutes returns the time taken to resolve the incident.
// Negative when the timestamps are reversed; callers validate ordering.
func (r IncidentRecord) ResolutionMinutes() float64 {
	return r.ResolvedAt.Sub(r.OpenedAt).Minutes()
}

// Compliant reports whether the incident met its SLA target.
func (r IncidentRecord) Compliant() bool {
	return r.ResolutionMinutes() <= r.SLATargetMinutes
}

// AvailabilityRecord is one calendar month of downtime accounting.
type AvailabilityRecord struct {
	Month               int     `json:"month" yaml:"month"`
	DowntimeMinutes     float64 `json:"downtime_minutes" yaml:"downtime_minutes"`
	TotalMinutesInMonth float64 `json:"total_minutes_in_month" yaml:"total_minutes_in_month"`
}

// UptimePct returns the month's uptime percentage clamped to [0,100].
func (r AvailabilityRecord) UptimePct() float64 {
	if r.TotalMinutesInMonth <= 0 {
		return 0
	}
	pct := (r.TotalMinutesInMonth - r.DowntimeMinutes) / r.TotalMinutesInMonth * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Domain enumerates governance capability domains.
type Domain string

const (
	DomainEDM Domain = "EDM"
	DomainAPO Domain = "APO"
	DomainBAI Domain = "BAI"
	DomainDSS Domain = "DSS"
	DomainMEA Domain = "MEA"
)

// Domains lists all governance domains in reporting order.
var Domains = []Domain{DomainEDM, DomainAPO, DomainBAI, DomainDSS, DomainMEA}

// Valid reports whether the domain is one of the known domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainEDM, DomainAPO, DomainBAI, DomainDSS, DomainMEA:
		return true
	}
	return false
}

// MaturityAssessment scores one governance domain on the 0-5 capability scale.
type MaturityAssessment struct {
	Domain          Domain  `json:"domain" yaml:"domain"`
	CapabilityScore float64 `json:"capability_score" yaml:"capability_score"`
}

// DisruptionType enumerates the disaster classes exercised by continuity scenarios.
type DisruptionType string

const (
	DisruptionDatabaseFailure DisruptionType = "database_failure"
	DisruptionRansomware      DisruptionType = "ransomware"
	DisruptionCloudOutage     DisruptionType = "cloud_outage"
	DisruptionNetworkLoss     DisruptionType = "network_loss"
	DisruptionDeployFailure   DisruptionType = "deploy_failure"
)

// ContinuityScenario is one disaster-recovery exercise with observed outcomes.
type ContinuityScenario struct {
	ID               string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name             string         `json:"name" yaml:"name"`
	Disruption       DisruptionType `json:"disruption,omitempty" yaml:"disruption,omitempty"`
	Probability      float64        `json:"probability,omitempty" yaml:"probability,omitempty"`
	ImpactUSD        float64        `json:"impact_usd,omitempty" yaml:"impact_usd,omitempty"`
	RTOTargetHours   float64        `json:"rto_target_hours" yaml:"rto_target_hours"`
	RTOObservedHours float64        `json:"rto_observed_hours" yaml:"rto_observed_hours"`
	RPOTargetHours   float64        `json:"rpo_target_hours,omitempty" yaml:"rpo_target_hours,omitempty"`
	RPOObservedHours float64        `json:"rpo_observed_hours,omitempty" yaml:"rpo_observed_hours,omitempty"`
}

// MeetsRTO reports whether the observed recovery time met the objective.
func (s ContinuityScenario) MeetsRTO() bool {
	return s.RTOObservedHours <= s.RTOTargetHours
}

// MeetsRPO reports whether the observed data loss met the objective.
// Scenarios without an RPO target count as met.
func (s ContinuityScenario) MeetsRPO() bool {
	if s.RPOTargetHours <= 0 {
		return true
	}
	return s.RPOObservedHours <= s.RPOTargetHours
}

// RTOGapHours returns how far the observed recovery overshot the objective.
func (s ContinuityScenario) RTOGapHours() float64 {
	gap := s.RTOObservedHours - s.RTOTargetHours
	if gap < 0 {
		return 0
	}
	return gap
}

// RiskControl is a mitigating control applied to a registered risk.
type RiskControl struct {
	Name          string  `json:"name" yaml:"name"`
	Effectiveness float64 `json:"effectiveness" yaml:"effectiveness"`
}

// RiskItem is one entry of the enterprise risk register.
type RiskItem struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Probability float64       `json:"probability" yaml:"probability"`
	ImpactUSD   float64       `json:"impact_usd" yaml:"impact_usd"`
	Controls    []RiskControl `json:"controls,omitempty" yaml:"controls,omitempty"`
}

// InherentUSD returns the risk exposure before controls.
func (r RiskItem) InherentUSD() float64 {
	return r.Probability * r.ImpactUSD
}

// CombinedEffectiveness folds all controls into a single mitigation factor in [0,1].
func (r RiskItem) CombinedEffectiveness() float64 {
	remaining := 1.0
	for _, c := range r.Controls {
		remaining *= 1 - c.Effectiveness
	}
	return 1 - remaining
}

// ResidualUSD returns the exposure left after controls.
func (r RiskItem) ResidualUSD() float64 {
	return r.InherentUSD() * (1 - r.CombinedEffectiveness())
}
