package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

// sampleServices are the service names used for generated incidents.
var sampleServices = []string{
	"payments-api",
	"auth-service",
	"billing-db",
	"edge-gateway",
	"notifications",
}

// nonLeapMonthMinutes holds the minutes of each calendar month, January first.
var nonLeapMonthMinutes = []float64{
	44640, 40320, 44640, 43200, 44640, 43200,
	44640, 44640, 43200, 44640, 43200, 44640,
}

// degradedMonths are the months the generator gives a real outage.
var degradedMonths = map[int]bool{2: true, 7: true, 10: true}

// Sample generates a full-year demonstration dataset. The same seed and
// policy always produce the same dataset, so sample runs are reproducible.
func Sample(seed int64, cfg *config.Config) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	return &Dataset{
		Incidents:    sampleIncidents(rng, base, cfg.SLA),
		Availability: sampleAvailability(rng),
		Maturity:     sampleMaturity(rng),
		Continuity:   sampleContinuity(rng, cfg.Continuity),
		Risks:        sampleRisks(),
	}
}

func sampleIncidents(rng *rand.Rand, base time.Time, sla config.SLAConfig) []models.IncidentRecord {
	const count = 24

	records := make([]models.IncidentRecord, 0, count)
	for i := 0; i < count; i++ {
		severity := pickSeverity(rng)
		target := sla.TargetMinutes[severity]

		// Roughly one incident per two weeks, at a random time of day.
		opened := base.AddDate(0, 0, i*13).Add(time.Duration(rng.Intn(1440)) * time.Minute)

		// About 30% of incidents blow their SLA.
		var resolution float64
		if rng.Float64() < 0.3 {
			resolution = target * (1.1 + rng.Float64()*1.5)
		} else {
			resolution = target * (0.2 + rng.Float64()*0.7)
		}

		records = append(records, models.IncidentRecord{
			ID:               fmt.Sprintf("INC-%03d", i+1),
			Severity:         severity,
			Service:          sampleServices[rng.Intn(len(sampleServices))],
			OpenedAt:         opened,
			ResolvedAt:       opened.Add(time.Duration(resolution * float64(time.Minute))),
			SLATargetMinutes: target,
		})
	}
	return records
}

func pickSeverity(rng *rand.Rand) models.Severity {
	r := rng.Float64()
	switch {
	case r < 0.10:
		return models.SeverityCritical
	case r < 0.35:
		return models.SeverityHigh
	case r < 0.70:
		return models.SeverityMedium
	}
	return models.SeverityLow
}

func sampleAvailability(rng *rand.Rand) []models.AvailabilityRecord {
	records := make([]models.AvailabilityRecord, 0, 12)
	for m := 1; m <= 12; m++ {
		downtime := 0.0
		if degradedMonths[m] {
			downtime = 60 + rng.Float64()*420
		} else if rng.Float64() < 0.5 {
			downtime = rng.Float64() * 40
		}
		records = append(records, models.AvailabilityRecord{
			Month:               m,
			DowntimeMinutes:     utils.Round2(downtime),
			TotalMinutesInMonth: nonLeapMonthMinutes[m-1],
		})
	}
	return records
}

func sampleMaturity(rng *rand.Rand) []models.MaturityAssessment {
	assessments := make([]models.MaturityAssessment, 0, len(models.Domains))
	for _, d := range models.Domains {
		assessments = append(assessments, models.MaturityAssessment{
			Domain:          d,
			CapabilityScore: utils.Round2(2.5 + rng.Float64()*2.0),
		})
	}
	return assessments
}

func sampleContinuity(rng *rand.Rand, cont config.ContinuityConfig) []models.ContinuityScenario {
	scenarios := make([]models.ContinuityScenario, 0, len(cont.Catalog))
	for _, spec := range cont.Catalog {
		rtoTarget := spec.RTOTargetHours
		if rtoTarget <= 0 {
			rtoTarget = cont.DefaultRTOTargetHours
		}
		rpoTarget := spec.RPOTargetHours
		if rpoTarget <= 0 {
			rpoTarget = cont.DefaultRPOTargetHours
		}

		scenarios = append(scenarios, models.ContinuityScenario{
			ID:               spec.ID,
			Name:             spec.Name,
			Disruption:       spec.Disruption,
			Probability:      spec.Probability,
			ImpactUSD:        spec.ImpactUSD,
			RTOTargetHours:   rtoTarget,
			RTOObservedHours: utils.Round2(rtoTarget * (0.4 + rng.Float64()*1.3)),
			RPOTargetHours:   rpoTarget,
			RPOObservedHours: utils.Round2(rpoTarget * (0.3 + rng.Float64()*1.2)),
		})
	}
	return scenarios
}

func sampleRisks() []models.RiskItem {
	return []models.RiskItem{
		{
			ID: "RSK-001", Name: "Unpatched internet-facing services",
			Probability: 0.4, ImpactUSD: 120000,
			Controls: []models.RiskControl{
				{Name: "Monthly patch window", Effectiveness: 0.5},
				{Name: "WAF virtual patching", Effectiveness: 0.3},
			},
		},
		{
			ID: "RSK-002", Name: "Single-region primary datastore",
			Probability: 0.2, ImpactUSD: 400000,
			Controls: []models.RiskControl{
				{Name: "Cross-region read replicas", Effectiveness: 0.6},
			},
		},
		{
			ID: "RSK-003", Name: "Untested backup restores",
			Probability: 0.35, ImpactUSD: 250000,
			Controls: []models.RiskControl{
				{Name: "Quarterly restore drills", Effectiveness: 0.4},
			},
		},
		{
			ID: "RSK-004", Name: "Key-person dependency in release engineering",
			Probability: 0.5, ImpactUSD: 60000,
		},
	}
}
