package engine

import (
	"fmt"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
)

// Assessor scores the integrated report against the configured criteria.
// Every satisfied criterion contributes one point, so with the standard five
// criteria the score doubles as a 0-5 maturity verdict across all frames.
type Assessor struct {
	criteria []criterion
}

type criterion struct {
	name string
	cond Condition
}

// NewAssessor compiles the assessment criteria. A criterion that references
// an unknown report field is rejected here.
func NewAssessor(cfg config.AssessmentConfig) (*Assessor, error) {
	criteria := make([]criterion, 0, len(cfg.Criteria))
	for i, spec := range cfg.Criteria {
		cond, err := parseCondition(spec.When)
		if err != nil {
			return nil, fmt.Errorf("assessment.criteria[%d] (%s): %w", i, spec.Name, err)
		}
		criteria = append(criteria, criterion{name: spec.Name, cond: cond})
	}
	return &Assessor{criteria: criteria}, nil
}

// Evaluate scores the report and records one note per criterion in
// configuration order.
func (a *Assessor) Evaluate(report *models.IntegratedReport) models.Assessment {
	score := 0
	notes := make([]string, 0, len(a.criteria))
	for _, c := range a.criteria {
		if c.cond.Holds(report) {
			score++
			notes = append(notes, "met: "+c.name)
			continue
		}
		notes = append(notes, "unmet: "+c.name)
	}

	level := score
	if level > 5 {
		level = 5
	}
	return models.Assessment{
		Score:       score,
		Description: models.MaturityDescription(level),
		Notes:       notes,
	}
}
