package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

// Inputs carries the producer outputs to be joined into one report. Risk is
// the only optional input; every other frame must be present.
type Inputs struct {
	Incidents    *models.IncidentMetrics
	Availability *models.AvailabilityMetrics
	Maturity     *models.MaturityResult
	Continuity   *models.ContinuityMetrics
	Risk         *models.RiskSummary
}

// Aggregator joins producer outputs into an IntegratedReport. Aggregation is
// a pure function of its inputs: identical inputs yield identical reports.
type Aggregator struct {
	logger        *slog.Logger
	costPerMinute float64
	kpis          []config.KPISpec
	tolerance     int
	assessor      *Assessor
	rules         *RuleEngine
}

// NewAggregator compiles the governance policy. KPI fields and assessment
// criteria are resolved eagerly so a bad policy fails before any report is
// built. A nil rule engine is allowed; recommendations then fall back to the
// defaults.
func NewAggregator(logger *slog.Logger, cfg *config.Config, rules *RuleEngine) (*Aggregator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	for i, kpi := range cfg.Governance.KPIs {
		if !knownField(kpi.Field) {
			return nil, fmt.Errorf("governance.kpis[%d] (%s): unknown field %q", i, kpi.Name, kpi.Field)
		}
		if strings.HasPrefix(kpi.Field, "governance_") {
			return nil, fmt.Errorf("governance.kpis[%d] (%s): field %q is derived from the dashboard itself", i, kpi.Name, kpi.Field)
		}
	}

	assessor, err := NewAssessor(cfg.Assessment)
	if err != nil {
		return nil, err
	}

	return &Aggregator{
		logger:        logger,
		costPerMinute: cfg.Costs.DowntimeCostPerMinuteUSD,
		kpis:          cfg.Governance.KPIs,
		tolerance:     cfg.Governance.AlertTolerance,
		assessor:      assessor,
		rules:         rules,
	}, nil
}

// Aggregate validates the joined inputs and builds the report in one pass.
// A missing or malformed frame aborts with an AggregationError; no section
// is ever substituted with defaults.
func (a *Aggregator) Aggregate(in Inputs) (*models.IntegratedReport, error) {
	if err := checkInputs(in); err != nil {
		return nil, err
	}

	report := &models.IntegratedReport{
		IncidentComplianceRate: in.Incidents.ComplianceRate,
		AvailabilityAvgPct:     in.Availability.AvgUptimePct,
		MonthsCompliantCount:   in.Availability.MonthsCompliantCount,
		AnnualFinancialImpact:  utils.Round2(in.Availability.AnnualDowntimeMinutes * a.costPerMinute),
		SLAPenaltyTotal:        in.Incidents.PenaltyTotal,
		RTOScenariosMetCount:   in.Continuity.ScenariosMetCount,
		MaturityLevel:          in.Maturity.Level,

		Incidents:    *in.Incidents,
		Availability: *in.Availability,
		Maturity:     *in.Maturity,
		Continuity:   *in.Continuity,
	}
	if in.Risk != nil {
		risk := *in.Risk
		report.Risk = &risk
	}

	governance, err := a.buildDashboard(report)
	if err != nil {
		return nil, err
	}
	report.Governance = governance

	report.Assessment = a.assessor.Evaluate(report)
	report.Decisions = decisionsFromAlerts(governance.KPIs)

	recommendations := a.rules.Recommend(report)
	if len(recommendations) == 0 {
		recommendations = defaultRecommendations()
	}
	report.Recommendations = recommendations

	a.logger.Debug("report aggregated",
		slog.Int("governance_alerts", governance.AlertCount),
		slog.String("governance_status", string(governance.Status)),
		slog.Int("assessment_score", report.Assessment.Score),
	)
	return report, nil
}

// checkInputs enforces presence and well-formedness of every mandatory frame.
func checkInputs(in Inputs) error {
	if in.Incidents == nil {
		return models.NewAggregationError("incident metrics are missing")
	}
	if in.Availability == nil {
		return models.NewAggregationError("availability metrics are missing")
	}
	if in.Maturity == nil {
		return models.NewAggregationError("maturity result is missing")
	}
	if in.Continuity == nil {
		return models.NewAggregationError("continuity metrics are missing")
	}

	if badNumber(in.Incidents.ComplianceRate) || badNumber(in.Incidents.PenaltyTotal) {
		return models.NewAggregationError("incident metrics carry a non-finite number")
	}
	if in.Incidents.ComplianceRate < 0 || in.Incidents.ComplianceRate > 100 {
		return models.NewAggregationError(fmt.Sprintf("incident compliance rate %v is outside 0..100", in.Incidents.ComplianceRate))
	}
	if in.Incidents.PenaltyTotal < 0 {
		return models.NewAggregationError("incident penalty total is negative")
	}
	if in.Incidents.TotalCount <= 0 {
		return models.NewAggregationError("incident metrics cover no records")
	}
	if in.Incidents.MetCount+in.Incidents.BreachedCount != in.Incidents.TotalCount {
		return models.NewAggregationError("incident met and breached counts do not sum to the total")
	}

	if badNumber(in.Availability.AvgUptimePct) || badNumber(in.Availability.AnnualDowntimeMinutes) {
		return models.NewAggregationError("availability metrics carry a non-finite number")
	}
	if in.Availability.AvgUptimePct < 0 || in.Availability.AvgUptimePct > 100 {
		return models.NewAggregationError(fmt.Sprintf("average uptime %v is outside 0..100", in.Availability.AvgUptimePct))
	}
	if got := len(in.Availability.MonthlyUptimePct); got != 12 {
		return models.NewAggregationError(fmt.Sprintf("availability carries %d monthly values, want 12", got))
	}
	if in.Availability.MonthsCompliantCount < 0 || in.Availability.MonthsCompliantCount > 12 {
		return models.NewAggregationError(fmt.Sprintf("months compliant count %d is outside 0..12", in.Availability.MonthsCompliantCount))
	}
	if in.Availability.AnnualDowntimeMinutes < 0 {
		return models.NewAggregationError("annual downtime is negative")
	}

	if in.Maturity.Level < 1 || in.Maturity.Level > 5 {
		return models.NewAggregationError(fmt.Sprintf("maturity level %d is outside 1..5", in.Maturity.Level))
	}

	if in.Continuity.TotalCount <= 0 {
		return models.NewAggregationError("continuity metrics cover no scenarios")
	}
	if in.Continuity.ScenariosMetCount < 0 || in.Continuity.ScenariosMetCount > in.Continuity.TotalCount {
		return models.NewAggregationError(fmt.Sprintf("scenarios met count %d is outside 0..%d", in.Continuity.ScenariosMetCount, in.Continuity.TotalCount))
	}
	return nil
}

// buildDashboard resolves every configured KPI against the report under
// construction. A KPI bound to an absent optional section is a hard error
// rather than a silent zero.
func (a *Aggregator) buildDashboard(report *models.IntegratedReport) (models.GovernanceSummary, error) {
	kpis := make([]models.GovernanceKPI, 0, len(a.kpis))
	alerts := 0

	for _, spec := range a.kpis {
		value, ok := resolveField(report, spec.Field)
		if !ok {
			return models.GovernanceSummary{}, models.NewAggregationError(
				fmt.Sprintf("kpi %q reads %s but the report has no risk section", spec.Name, spec.Field))
		}

		gap := value - spec.Threshold
		alert := value < spec.Threshold
		if !spec.HigherIsBetter {
			gap = spec.Threshold - value
			alert = value > spec.Threshold
		}
		status := models.KPIStatusOK
		if alert {
			status = models.KPIStatusAlert
			alerts++
		}

		kpis = append(kpis, models.GovernanceKPI{
			Name:           spec.Name,
			Field:          spec.Field,
			Value:          value,
			Threshold:      spec.Threshold,
			Unit:           spec.Unit,
			Framework:      spec.Framework,
			HigherIsBetter: spec.HigherIsBetter,
			Status:         status,
			Gap:            utils.Round2(gap),
		})
	}

	status := models.GovernanceConforming
	switch {
	case alerts == 0:
	case alerts <= a.tolerance:
		status = models.GovernanceObservation
	default:
		status = models.GovernanceNonConforming
	}

	return models.GovernanceSummary{KPIs: kpis, AlertCount: alerts, Status: status}, nil
}

// decisionsFromAlerts phrases one management decision per alerting KPI.
func decisionsFromAlerts(kpis []models.GovernanceKPI) []string {
	decisions := make([]string, 0)
	for _, k := range kpis {
		if k.Status != models.KPIStatusAlert {
			continue
		}
		decisions = append(decisions, fmt.Sprintf("Remediate %s: %g %s misses the target of %g %s (%s)",
			k.Name, k.Value, k.Unit, k.Threshold, k.Unit, k.Framework))
	}
	if len(decisions) == 0 {
		return nil
	}
	return decisions
}

func defaultRecommendations() []string {
	return []string{
		"Review the breached service-level objectives with their owning teams",
		"Re-run the continuity exercises that missed their recovery objectives",
	}
}

func badNumber(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
