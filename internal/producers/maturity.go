package producers

import (
	"fmt"
	"math"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

const maturityProducerName = "maturity"

// maxCapabilityScore bounds a per-domain capability assessment.
const maxCapabilityScore = 5.0

// MaturityProducer derives a governance maturity level from per-domain
// capability assessments.
type MaturityProducer struct {
	weights map[models.Domain]float64
}

// NewMaturityProducer constructs a producer with the configured domain
// weights. An empty weight map means all domains count equally.
func NewMaturityProducer(cfg config.MaturityConfig) *MaturityProducer {
	return &MaturityProducer{weights: cfg.Weights}
}

// Compute validates that every governance domain was assessed exactly once
// and folds the capability scores into a single maturity level. The level is
// the weighted mean rounded to the nearest integer and clamped to 1..5.
func (p *MaturityProducer) Compute(assessments []models.MaturityAssessment) (*models.MaturityResult, error) {
	if len(assessments) == 0 {
		return nil, models.NewValidationError(maturityProducerName, "assessments", "no assessments provided")
	}

	scores := make(map[models.Domain]float64, len(models.Domains))
	for i, a := range assessments {
		if !a.Domain.Valid() {
			return nil, models.NewValidationError(maturityProducerName, fmt.Sprintf("assessments[%d].domain", i),
				fmt.Sprintf("unknown domain %q", a.Domain))
		}
		if _, dup := scores[a.Domain]; dup {
			return nil, models.NewValidationError(maturityProducerName, fmt.Sprintf("assessments[%d].domain", i),
				fmt.Sprintf("domain %s assessed more than once", a.Domain))
		}
		if a.CapabilityScore < 0 || a.CapabilityScore > maxCapabilityScore {
			return nil, models.NewValidationError(maturityProducerName, fmt.Sprintf("assessments[%d].capability_score", i),
				fmt.Sprintf("capability_score must be in 0..%.0f, got %v", maxCapabilityScore, a.CapabilityScore))
		}
		scores[a.Domain] = a.CapabilityScore
	}
	for _, d := range models.Domains {
		if _, ok := scores[d]; !ok {
			return nil, models.NewValidationError(maturityProducerName, "assessments",
				fmt.Sprintf("domain %s was not assessed", d))
		}
	}

	totalWeight := 0.0
	for _, d := range models.Domains {
		totalWeight += p.domainWeight(d)
	}
	if totalWeight <= 0 {
		return nil, models.NewValidationError(maturityProducerName, "weights",
			"domain weights must sum to a positive value")
	}

	weighted := 0.0
	perDomain := make([]models.DomainScore, 0, len(models.Domains))
	for _, d := range models.Domains {
		norm := p.domainWeight(d) / totalWeight
		weighted += scores[d] * norm
		perDomain = append(perDomain, models.DomainScore{
			Domain:          d,
			CapabilityScore: utils.Round2(scores[d]),
			Weight:          utils.Round2(norm),
		})
	}

	level := int(math.Round(weighted))
	if level < 1 {
		level = 1
	} else if level > 5 {
		level = 5
	}

	return &models.MaturityResult{
		Level:           level,
		Description:     models.MaturityDescription(level),
		WeightedScore:   utils.Round2(weighted),
		PerDomainScores: perDomain,
	}, nil
}

func (p *MaturityProducer) domainWeight(d models.Domain) float64 {
	if len(p.weights) == 0 {
		return 1
	}
	return p.weights[d]
}
