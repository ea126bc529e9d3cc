package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudcoreops/kpi-engine/internal/models"
)

// Condition is one compiled "<field> <op> <value>" clause over report numbers.
type Condition struct {
	Field string
	Op    string
	Value float64
}

var conditionOps = map[string]struct{}{
	"<": {}, "<=": {}, ">": {}, ">=": {}, "==": {}, "!=": {},
}

// reportFields lists every numeric field a condition or KPI may reference.
var reportFields = map[string]struct{}{
	"incident_compliance_rate":      {},
	"availability_avg_pct":          {},
	"months_compliant_count":        {},
	"annual_financial_impact":       {},
	"sla_penalty_total":             {},
	"rto_scenarios_met_count":       {},
	"maturity_level":                {},
	"incident_breached_count":       {},
	"incident_critical_count":       {},
	"annual_downtime_minutes":       {},
	"worst_gap_hours":               {},
	"rto_compliance_pct":            {},
	"rpo_compliance_pct":            {},
	"governance_alert_count":        {},
	"risk_exceeding_appetite_count": {},
	"total_residual_risk":           {},
}

func knownField(name string) bool {
	_, ok := reportFields[name]
	return ok
}

// parseCondition compiles a clause like "maturity_level >= 3". Unknown fields
// and operators are rejected here so a bad policy fails at load time rather
// than mid-aggregation.
func parseCondition(expr string) (Condition, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return Condition{}, fmt.Errorf("condition %q: want \"<field> <op> <value>\"", expr)
	}
	field, op, raw := parts[0], parts[1], parts[2]
	if !knownField(field) {
		return Condition{}, fmt.Errorf("condition %q: unknown field %q", expr, field)
	}
	if _, ok := conditionOps[op]; !ok {
		return Condition{}, fmt.Errorf("condition %q: unknown operator %q", expr, op)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Condition{}, fmt.Errorf("condition %q: not a number: %q", expr, raw)
	}
	return Condition{Field: field, Op: op, Value: value}, nil
}

// Holds reports whether the report satisfies the condition. A field that
// resolves to an absent optional section never holds.
func (c Condition) Holds(report *models.IntegratedReport) bool {
	v, ok := resolveField(report, c.Field)
	if !ok {
		return false
	}
	switch c.Op {
	case "<":
		return v < c.Value
	case "<=":
		return v <= c.Value
	case ">":
		return v > c.Value
	case ">=":
		return v >= c.Value
	case "==":
		return v == c.Value
	case "!=":
		return v != c.Value
	}
	return false
}

// resolveField reads one numeric report field by its wire name. The second
// return is false when the field lives in an optional section the report does
// not carry.
func resolveField(r *models.IntegratedReport, field string) (float64, bool) {
	switch field {
	case "incident_compliance_rate":
		return r.IncidentComplianceRate, true
	case "availability_avg_pct":
		return r.AvailabilityAvgPct, true
	case "months_compliant_count":
		return float64(r.MonthsCompliantCount), true
	case "annual_financial_impact":
		return r.AnnualFinancialImpact, true
	case "sla_penalty_total":
		return r.SLAPenaltyTotal, true
	case "rto_scenarios_met_count":
		return float64(r.RTOScenariosMetCount), true
	case "maturity_level":
		return float64(r.MaturityLevel), true
	case "incident_breached_count":
		return float64(r.Incidents.BreachedCount), true
	case "incident_critical_count":
		return float64(r.Incidents.CriticalCount), true
	case "annual_downtime_minutes":
		return r.Availability.AnnualDowntimeMinutes, true
	case "worst_gap_hours":
		return r.Continuity.WorstGapHours, true
	case "rto_compliance_pct":
		return r.Continuity.RTOCompliancePct, true
	case "rpo_compliance_pct":
		return r.Continuity.RPOCompliancePct, true
	case "governance_alert_count":
		return float64(r.Governance.AlertCount), true
	case "risk_exceeding_appetite_count":
		if r.Risk == nil {
			return 0, false
		}
		return float64(r.Risk.ExceedingAppetite), true
	case "total_residual_risk":
		if r.Risk == nil {
			return 0, false
		}
		return r.Risk.TotalResidualUSD, true
	}
	return 0, false
}
