package patterns

import (
	"testing"
	"time"

	"github.com/cloudcoreops/kpi-engine/internal/models"
)

func breachedIncident(id, service string, sev models.Severity) models.IncidentRecord {
	opened := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	return models.IncidentRecord{
		ID:               id,
		Severity:         sev,
		Service:          service,
		OpenedAt:         opened,
		ResolvedAt:       opened.Add(5 * time.Hour),
		SLATargetMinutes: 60,
	}
}

func compliantIncident(id, service string, sev models.Severity) models.IncidentRecord {
	opened := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
	return models.IncidentRecord{
		ID:               id,
		Severity:         sev,
		Service:          service,
		OpenedAt:         opened,
		ResolvedAt:       opened.Add(30 * time.Minute),
		SLATargetMinutes: 60,
	}
}

func TestMineBreachesGroupsByServiceAndSeverity(t *testing.T) {
	records := []models.IncidentRecord{
		breachedIncident("INC-1", "payments-api", models.SeverityCritical),
		breachedIncident("INC-2", "payments-api", models.SeverityCritical),
		breachedIncident("INC-3", "payments-api", models.SeverityCritical),
		breachedIncident("INC-4", "auth-service", models.SeverityHigh),
		breachedIncident("INC-5", "auth-service", models.SeverityHigh),
		compliantIncident("INC-6", "payments-api", models.SeverityCritical),
	}

	mined := MineBreaches(records, 2)
	if len(mined) != 2 {
		t.Fatalf("expected 2 patterns, got %d: %+v", len(mined), mined)
	}
	if mined[0].Service != "payments-api" || mined[0].Count != 3 {
		t.Fatalf("expected payments-api pattern first, got %+v", mined[0])
	}
	if mined[1].Service != "auth-service" || mined[1].Count != 2 {
		t.Fatalf("expected auth-service pattern second, got %+v", mined[1])
	}
	if len(mined[0].SampleIDs) != 3 {
		t.Fatalf("expected 3 sample ids, got %v", mined[0].SampleIDs)
	}
}

func TestMineBreachesHonoursMinSupport(t *testing.T) {
	records := []models.IncidentRecord{
		breachedIncident("INC-1", "edge-gateway", models.SeverityMedium),
	}
	if mined := MineBreaches(records, 2); mined != nil {
		t.Fatalf("expected no patterns below support, got %+v", mined)
	}
}

func TestMineBreachesIgnoresCompliantRecords(t *testing.T) {
	records := []models.IncidentRecord{
		compliantIncident("INC-1", "billing-db", models.SeverityLow),
		compliantIncident("INC-2", "billing-db", models.SeverityLow),
	}
	if mined := MineBreaches(records, 1); mined != nil {
		t.Fatalf("expected no patterns from compliant batch, got %+v", mined)
	}
}
