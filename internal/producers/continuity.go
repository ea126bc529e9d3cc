package producers

import (
	"fmt"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

const continuityProducerName = "continuity"

// ContinuityProducer evaluates disaster-recovery exercises against their
// recovery time and recovery point objectives.
type ContinuityProducer struct {
	costPerMinute float64
}

// NewContinuityProducer constructs a producer bound to the downtime cost
// policy used to price recovery impact.
func NewContinuityProducer(costs config.CostConfig) *ContinuityProducer {
	return &ContinuityProducer{costPerMinute: costs.DowntimeCostPerMinuteUSD}
}

// Compute validates the scenario set and derives per-scenario outcomes plus
// compliance aggregates. Scenario order is preserved in the output.
func (p *ContinuityProducer) Compute(scenarios []models.ContinuityScenario) (*models.ContinuityMetrics, error) {
	if len(scenarios) == 0 {
		return nil, models.NewValidationError(continuityProducerName, "scenarios", "no scenarios provided")
	}

	for i, s := range scenarios {
		if s.Name == "" {
			return nil, models.NewValidationError(continuityProducerName, fmt.Sprintf("scenarios[%d].name", i),
				"name is required")
		}
		if s.RTOTargetHours <= 0 {
			return nil, models.NewValidationError(continuityProducerName, fmt.Sprintf("scenarios[%d].rto_target_hours", i),
				"rto_target_hours must be positive")
		}
		if s.RTOObservedHours < 0 {
			return nil, models.NewValidationError(continuityProducerName, fmt.Sprintf("scenarios[%d].rto_observed_hours", i),
				"rto_observed_hours must not be negative")
		}
		if s.Probability < 0 || s.Probability > 1 {
			return nil, models.NewValidationError(continuityProducerName, fmt.Sprintf("scenarios[%d].probability", i),
				fmt.Sprintf("probability must be in 0..1, got %v", s.Probability))
		}
		if s.ImpactUSD < 0 {
			return nil, models.NewValidationError(continuityProducerName, fmt.Sprintf("scenarios[%d].impact_usd", i),
				"impact_usd must not be negative")
		}
		if s.RPOTargetHours < 0 {
			return nil, models.NewValidationError(continuityProducerName, fmt.Sprintf("scenarios[%d].rpo_target_hours", i),
				"rpo_target_hours must not be negative")
		}
		if s.RPOObservedHours < 0 {
			return nil, models.NewValidationError(continuityProducerName, fmt.Sprintf("scenarios[%d].rpo_observed_hours", i),
				"rpo_observed_hours must not be negative")
		}
	}

	results := make([]models.ScenarioResult, 0, len(scenarios))
	critical := make([]string, 0)
	rtoMet, rpoMet := 0, 0
	worstGap := 0.0
	totalResidual, totalRecovery := 0.0, 0.0

	for _, s := range scenarios {
		gap := s.RTOGapHours()
		if gap > worstGap {
			worstGap = gap
		}
		if s.MeetsRTO() {
			rtoMet++
		} else {
			critical = append(critical, scenarioIdentifier(s))
		}
		if s.MeetsRPO() {
			rpoMet++
		}

		residual := s.Probability * s.ImpactUSD
		recovery := s.RTOObservedHours * 60 * p.costPerMinute
		totalResidual += residual
		totalRecovery += recovery

		results = append(results, models.ScenarioResult{
			ID:                s.ID,
			Name:              s.Name,
			Disruption:        s.Disruption,
			RTOTargetHours:    s.RTOTargetHours,
			RTOObservedHours:  s.RTOObservedHours,
			MeetsRTO:          s.MeetsRTO(),
			RTOGapHours:       utils.Round2(gap),
			MeetsRPO:          s.MeetsRPO(),
			ResidualRiskUSD:   utils.Round2(residual),
			RecoveryImpactUSD: utils.Round2(recovery),
		})
	}

	total := len(scenarios)
	if len(critical) == 0 {
		critical = nil
	}

	return &models.ContinuityMetrics{
		ScenariosMetCount: rtoMet,
		TotalCount:        total,
		PerScenarioResult: results,
		WorstGapHours:     utils.Round2(worstGap),
		RTOCompliancePct:  utils.Round2(float64(rtoMet) / float64(total) * 100),
		RPOCompliancePct:  utils.Round2(float64(rpoMet) / float64(total) * 100),
		TotalResidualUSD:  utils.Round2(totalResidual),
		TotalRecoveryUSD:  utils.Round2(totalRecovery),
		CriticalScenarios: critical,
	}, nil
}

// scenarioIdentifier prefers the catalog ID over the display name.
func scenarioIdentifier(s models.ContinuityScenario) string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}
