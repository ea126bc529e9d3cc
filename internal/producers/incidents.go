package producers

import (
	"fmt"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/patterns"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

const incidentProducerName = "incidents"

// IncidentProducer computes SLA compliance metrics over resolved incidents.
type IncidentProducer struct {
	penalties          map[models.Severity]float64
	statusThresholdPct float64
	patternMinSupport  int
}

// NewIncidentProducer constructs a producer bound to the given SLA policy.
func NewIncidentProducer(cfg config.SLAConfig) *IncidentProducer {
	return &IncidentProducer{
		penalties:          cfg.PenaltiesUSD,
		statusThresholdPct: cfg.StatusThresholdPct,
		patternMinSupport:  cfg.PatternMinSupport,
	}
}

// Compute validates the batch and derives compliance, penalty, and
// resolution-time metrics. The first invalid record aborts the run with a
// ValidationError and no partial output.
func (p *IncidentProducer) Compute(records []models.IncidentRecord) (*models.IncidentMetrics, error) {
	if len(records) == 0 {
		return nil, models.NewValidationError(incidentProducerName, "records", "at least one record is required")
	}
	for i, r := range records {
		if err := validateIncident(i, r); err != nil {
			return nil, err
		}
	}

	type severityTally struct {
		total       int
		met         int
		penalty     float64
		resolutions []float64
	}

	tallies := make(map[models.Severity]*severityTally)
	allResolutions := make([]float64, 0, len(records))
	met := 0
	critical := 0
	penaltyTotal := 0.0

	for _, r := range records {
		tally, ok := tallies[r.Severity]
		if !ok {
			tally = &severityTally{}
			tallies[r.Severity] = tally
		}
		resolution := r.ResolutionMinutes()
		tally.total++
		tally.resolutions = append(tally.resolutions, resolution)
		allResolutions = append(allResolutions, resolution)

		if r.Severity == models.SeverityCritical {
			critical++
		}
		if r.Compliant() {
			tally.met++
			met++
			continue
		}
		penalty := p.penalties[r.Severity]
		tally.penalty += penalty
		penaltyTotal += penalty
	}

	total := len(records)
	rate := float64(met) / float64(total) * 100

	bySeverity := make([]models.SeverityBreakdown, 0, len(tallies))
	for _, sev := range models.Severities {
		tally, ok := tallies[sev]
		if !ok {
			continue
		}
		bySeverity = append(bySeverity, models.SeverityBreakdown{
			Severity:             sev,
			Total:                tally.total,
			Met:                  tally.met,
			Breached:             tally.total - tally.met,
			ComplianceRate:       utils.Round2(float64(tally.met) / float64(tally.total) * 100),
			PenaltyTotal:         utils.Round2(tally.penalty),
			AvgResolutionMinutes: utils.Round2(utils.Mean(tally.resolutions)),
			P95ResolutionMinutes: utils.Round2(utils.Percentile(tally.resolutions, 95)),
		})
	}

	status := models.SLAStatusBreached
	if rate >= p.statusThresholdPct {
		status = models.SLAStatusMet
	}

	return &models.IncidentMetrics{
		ComplianceRate:       utils.Round2(rate),
		PenaltyTotal:         utils.Round2(penaltyTotal),
		MetCount:             met,
		BreachedCount:        total - met,
		TotalCount:           total,
		CriticalCount:        critical,
		Status:               status,
		AvgResolutionMinutes: utils.Round2(utils.Mean(allResolutions)),
		P95ResolutionMinutes: utils.Round2(utils.Percentile(allResolutions, 95)),
		BySeverity:           bySeverity,
		BreachPatterns:       patterns.MineBreaches(records, p.patternMinSupport),
	}, nil
}

func validateIncident(i int, r models.IncidentRecord) error {
	if r.ID == "" {
		return models.NewValidationError(incidentProducerName, fmt.Sprintf("records[%d].id", i), "id is required")
	}
	if !r.Severity.Valid() {
		return models.NewValidationError(incidentProducerName, fmt.Sprintf("records[%d].severity", i), fmt.Sprintf("unknown severity %q", r.Severity))
	}
	if r.OpenedAt.IsZero() {
		return models.NewValidationError(incidentProducerName, fmt.Sprintf("records[%d].opened_at", i), "opened_at is required")
	}
	if r.ResolvedAt.IsZero() {
		return models.NewValidationError(incidentProducerName, fmt.Sprintf("records[%d].resolved_at", i), "resolved_at is required")
	}
	if r.ResolvedAt.Before(r.OpenedAt) {
		return models.NewValidationError(incidentProducerName, fmt.Sprintf("records[%d].resolved_at", i), "resolved_at precedes opened_at")
	}
	if r.SLATargetMinutes <= 0 {
		return models.NewValidationError(incidentProducerName, fmt.Sprintf("records[%d].sla_target_minutes", i), "sla_target_minutes must be positive")
	}
	return nil
}
