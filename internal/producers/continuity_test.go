package producers

import (
	"errors"
	"testing"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
)

func continuityProducer() *ContinuityProducer {
	return NewContinuityProducer(config.CostConfig{DowntimeCostPerMinuteUSD: 250})
}

func TestContinuityComputePartitionsScenarios(t *testing.T) {
	scenarios := []models.ContinuityScenario{
		{
			ID: "ESC-01", Name: "Primary database failure",
			Disruption: models.DisruptionDatabaseFailure,
			Probability: 0.1, ImpactUSD: 50000,
			RTOTargetHours: 4, RTOObservedHours: 3,
			RPOTargetHours: 0.25, RPOObservedHours: 0.1,
		},
		{
			ID: "ESC-02", Name: "Ransomware on build infrastructure",
			Disruption: models.DisruptionRansomware,
			Probability: 0.2, ImpactUSD: 100000,
			RTOTargetHours: 4, RTOObservedHours: 6,
			RPOTargetHours: 0.25, RPOObservedHours: 1,
		},
		{
			ID: "ESC-03", Name: "Cloud region outage",
			Disruption: models.DisruptionCloudOutage,
			RTOTargetHours: 2, RTOObservedHours: 2,
		},
	}

	m, err := continuityProducer().Compute(scenarios)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if m.ScenariosMetCount != 2 || m.TotalCount != 3 {
		t.Errorf("unexpected counts: met=%d total=%d", m.ScenariosMetCount, m.TotalCount)
	}
	if m.WorstGapHours != 2.0 {
		t.Errorf("expected worst gap 2.0, got %v", m.WorstGapHours)
	}
	if m.RTOCompliancePct != 66.67 {
		t.Errorf("expected RTO compliance 66.67, got %v", m.RTOCompliancePct)
	}
	if m.RPOCompliancePct != 66.67 {
		t.Errorf("expected RPO compliance 66.67, got %v", m.RPOCompliancePct)
	}
	if len(m.CriticalScenarios) != 1 || m.CriticalScenarios[0] != "ESC-02" {
		t.Errorf("expected ESC-02 as the only critical scenario, got %v", m.CriticalScenarios)
	}
	if m.TotalResidualUSD != 25000 {
		t.Errorf("expected total residual 25000, got %v", m.TotalResidualUSD)
	}
	if m.TotalRecoveryUSD != 165000 {
		t.Errorf("expected total recovery impact 165000, got %v", m.TotalRecoveryUSD)
	}

	first := m.PerScenarioResult[0]
	if !first.MeetsRTO || first.RTOGapHours != 0 {
		t.Errorf("unexpected first scenario result: %+v", first)
	}
	if first.ResidualRiskUSD != 5000 {
		t.Errorf("expected first residual 5000, got %v", first.ResidualRiskUSD)
	}
	if first.RecoveryImpactUSD != 45000 {
		t.Errorf("expected first recovery impact 45000, got %v", first.RecoveryImpactUSD)
	}

	second := m.PerScenarioResult[1]
	if second.MeetsRTO || second.RTOGapHours != 2.0 {
		t.Errorf("unexpected second scenario result: %+v", second)
	}
	if second.MeetsRPO {
		t.Error("second scenario should miss its RPO")
	}

	third := m.PerScenarioResult[2]
	if !third.MeetsRTO {
		t.Error("an observed recovery equal to the target meets the objective")
	}
	if !third.MeetsRPO {
		t.Error("a scenario without an RPO target counts as met")
	}
}

func TestContinuityComputeEmptySet(t *testing.T) {
	_, err := continuityProducer().Compute(nil)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Producer != "continuity" {
		t.Errorf("expected producer continuity, got %q", verr.Producer)
	}
}

func TestContinuityComputeRejectsZeroRTOTarget(t *testing.T) {
	scenarios := []models.ContinuityScenario{
		{ID: "ESC-01", Name: "Primary database failure", RTOTargetHours: 0, RTOObservedHours: 1},
	}

	_, err := continuityProducer().Compute(scenarios)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "scenarios[0].rto_target_hours" {
		t.Errorf("expected field scenarios[0].rto_target_hours, got %q", verr.Field)
	}
}

func TestContinuityComputeRejectsBadProbability(t *testing.T) {
	scenarios := []models.ContinuityScenario{
		{ID: "ESC-01", Name: "Primary database failure", Probability: 1.5, RTOTargetHours: 4, RTOObservedHours: 1},
	}

	_, err := continuityProducer().Compute(scenarios)
	if err == nil {
		t.Fatal("expected error for probability above 1")
	}
}

func TestContinuityComputeFallsBackToScenarioName(t *testing.T) {
	scenarios := []models.ContinuityScenario{
		{Name: "Unscripted exercise", RTOTargetHours: 1, RTOObservedHours: 5},
	}

	m, err := continuityProducer().Compute(scenarios)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(m.CriticalScenarios) != 1 || m.CriticalScenarios[0] != "Unscripted exercise" {
		t.Errorf("expected scenario name as identifier, got %v", m.CriticalScenarios)
	}
}
