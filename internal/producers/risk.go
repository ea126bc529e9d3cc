package producers

import (
	"fmt"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

const riskProducerName = "risk"

// RiskEvaluator scores risk register entries against the configured risk
// appetite and level thresholds.
type RiskEvaluator struct {
	appetiteUSD float64
	thresholds  config.RiskLevelThresholds
}

// NewRiskEvaluator constructs an evaluator from the risk policy.
func NewRiskEvaluator(cfg config.RiskConfig) *RiskEvaluator {
	return &RiskEvaluator{
		appetiteUSD: cfg.AppetiteUSD,
		thresholds:  cfg.LevelThresholdsUSD,
	}
}

// Evaluate validates the register and computes residual exposure per entry.
// An empty register is not an error; the summary then carries only the
// configured appetite.
func (e *RiskEvaluator) Evaluate(items []models.RiskItem) (*models.RiskSummary, error) {
	summary := &models.RiskSummary{AppetiteUSD: e.appetiteUSD}
	if len(items) == 0 {
		return summary, nil
	}

	ids := make(map[string]bool, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, models.NewValidationError(riskProducerName, fmt.Sprintf("risks[%d].id", i), "id is required")
		}
		if ids[item.ID] {
			return nil, models.NewValidationError(riskProducerName, fmt.Sprintf("risks[%d].id", i),
				fmt.Sprintf("duplicate risk id %q", item.ID))
		}
		ids[item.ID] = true
		if item.Name == "" {
			return nil, models.NewValidationError(riskProducerName, fmt.Sprintf("risks[%d].name", i), "name is required")
		}
		if item.Probability < 0 || item.Probability > 1 {
			return nil, models.NewValidationError(riskProducerName, fmt.Sprintf("risks[%d].probability", i),
				fmt.Sprintf("probability must be in 0..1, got %v", item.Probability))
		}
		if item.ImpactUSD < 0 {
			return nil, models.NewValidationError(riskProducerName, fmt.Sprintf("risks[%d].impact_usd", i),
				"impact_usd must not be negative")
		}
		for j, c := range item.Controls {
			if c.Effectiveness < 0 || c.Effectiveness > 1 {
				return nil, models.NewValidationError(riskProducerName,
					fmt.Sprintf("risks[%d].controls[%d].effectiveness", i, j),
					fmt.Sprintf("effectiveness must be in 0..1, got %v", c.Effectiveness))
			}
		}
	}

	results := make([]models.RiskResult, 0, len(items))
	totalInherent, totalResidual := 0.0, 0.0
	highestResidual := -1.0

	for _, item := range items {
		inherent := item.InherentUSD()
		residual := item.ResidualUSD()
		totalInherent += inherent
		totalResidual += residual

		exceeds := residual > e.appetiteUSD
		if exceeds {
			summary.ExceedingAppetite++
		}
		if residual > highestResidual {
			highestResidual = residual
			summary.Highest = item.Name
		}

		results = append(results, models.RiskResult{
			ID:                   item.ID,
			Name:                 item.Name,
			InherentUSD:          utils.Round2(inherent),
			ControlEffectiveness: utils.Round2(item.CombinedEffectiveness()),
			ResidualUSD:          utils.Round2(residual),
			Level:                e.levelFor(residual),
			ExceedsAppetite:      exceeds,
		})
	}

	summary.Items = results
	summary.TotalInherentUSD = utils.Round2(totalInherent)
	summary.TotalResidualUSD = utils.Round2(totalResidual)
	return summary, nil
}

func (e *RiskEvaluator) levelFor(residualUSD float64) models.RiskLevel {
	switch {
	case residualUSD < e.thresholds.Low:
		return models.RiskLevelLow
	case residualUSD < e.thresholds.Medium:
		return models.RiskLevelMedium
	case residualUSD < e.thresholds.High:
		return models.RiskLevelHigh
	}
	return models.RiskLevelCritical
}
