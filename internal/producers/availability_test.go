package producers

import (
	"errors"
	"testing"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
)

var monthMinutes = map[int]float64{
	1: 44640, 2: 40320, 3: 44640, 4: 43200, 5: 44640, 6: 43200,
	7: 44640, 8: 44640, 9: 43200, 10: 44640, 11: 43200, 12: 44640,
}

func fullYear(downtime map[int]float64) []models.AvailabilityRecord {
	records := make([]models.AvailabilityRecord, 0, 12)
	for m := 1; m <= 12; m++ {
		records = append(records, models.AvailabilityRecord{
			Month:               m,
			DowntimeMinutes:     downtime[m],
			TotalMinutesInMonth: monthMinutes[m],
		})
	}
	return records
}

func availabilityProducer() *AvailabilityProducer {
	return NewAvailabilityProducer(
		config.AvailabilityConfig{TargetPct: 99.9},
		config.CostConfig{DowntimeCostPerMinuteUSD: 250},
	)
}

func TestAvailabilityComputeOneDegradedMonth(t *testing.T) {
	m, err := availabilityProducer().Compute(fullYear(map[int]float64{4: 2000}))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if m.AvgUptimePct != 99.61 {
		t.Errorf("expected average uptime 99.61, got %v", m.AvgUptimePct)
	}
	if m.MonthsCompliantCount != 11 {
		t.Errorf("expected 11 compliant months, got %d", m.MonthsCompliantCount)
	}
	if m.Status != models.SLAStatusBreached {
		t.Errorf("expected breached status, got %q", m.Status)
	}
	if m.AnnualDowntimeMinutes != 2000 {
		t.Errorf("expected 2000 annual downtime minutes, got %v", m.AnnualDowntimeMinutes)
	}
	if len(m.NonCompliantMonths) != 1 || m.NonCompliantMonths[0] != "April" {
		t.Errorf("expected April as the only non-compliant month, got %v", m.NonCompliantMonths)
	}

	april := m.Monthly[3]
	if april.UptimePct != 95.37 {
		t.Errorf("expected April uptime 95.37, got %v", april.UptimePct)
	}
	if april.DowntimeCostUSD != 500000 {
		t.Errorf("expected April downtime cost 500000, got %v", april.DowntimeCostUSD)
	}
	if april.Compliant {
		t.Error("April should not be compliant")
	}
}

func TestAvailabilityComputePerfectYear(t *testing.T) {
	m, err := availabilityProducer().Compute(fullYear(nil))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if m.AvgUptimePct != 100.0 {
		t.Errorf("expected average uptime 100.0, got %v", m.AvgUptimePct)
	}
	if m.MonthsCompliantCount != 12 {
		t.Errorf("expected 12 compliant months, got %d", m.MonthsCompliantCount)
	}
	if m.Status != models.SLAStatusMet {
		t.Errorf("expected met status, got %q", m.Status)
	}
	if m.NonCompliantMonths != nil {
		t.Errorf("expected no non-compliant months, got %v", m.NonCompliantMonths)
	}
}

func TestAvailabilityComputeOrdersByMonth(t *testing.T) {
	records := fullYear(nil)
	records[0], records[11] = records[11], records[0]
	records[3], records[7] = records[7], records[3]

	m, err := availabilityProducer().Compute(records)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	for i, row := range m.Monthly {
		if row.Month != i+1 {
			t.Fatalf("monthly rows out of order at %d: got month %d", i, row.Month)
		}
	}
}

func TestAvailabilityComputeRequiresTwelveMonths(t *testing.T) {
	_, err := availabilityProducer().Compute(fullYear(nil)[:11])
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Producer != "availability" {
		t.Errorf("expected producer availability, got %q", verr.Producer)
	}
}

func TestAvailabilityComputeRejectsDuplicateMonth(t *testing.T) {
	records := fullYear(nil)
	records[5].Month = 3

	_, err := availabilityProducer().Compute(records)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "records[5].month" {
		t.Errorf("expected field records[5].month, got %q", verr.Field)
	}
}

func TestAvailabilityComputeRejectsDowntimeBeyondMonth(t *testing.T) {
	records := fullYear(map[int]float64{2: 40321})

	_, err := availabilityProducer().Compute(records)
	if err == nil {
		t.Fatal("expected error when downtime exceeds the month length")
	}
}

func TestAvailabilityComputeRejectsNegativeDowntime(t *testing.T) {
	records := fullYear(map[int]float64{7: -5})

	_, err := availabilityProducer().Compute(records)
	if err == nil {
		t.Fatal("expected error for negative downtime")
	}
}
