package producers

import (
	"fmt"
	"sort"

	"github.com/cloudcoreops/kpi-engine/internal/config"
	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

const availabilityProducerName = "availability"

// monthsPerYear is the fixed window of the availability frame.
const monthsPerYear = 12

// AvailabilityProducer computes monthly uptime metrics for a 12-month window.
type AvailabilityProducer struct {
	targetPct     float64
	costPerMinute float64
}

// NewAvailabilityProducer constructs a producer bound to the uptime objective
// and the downtime cost policy.
func NewAvailabilityProducer(cfg config.AvailabilityConfig, costs config.CostConfig) *AvailabilityProducer {
	return &AvailabilityProducer{
		targetPct:     cfg.TargetPct,
		costPerMinute: costs.DowntimeCostPerMinuteUSD,
	}
}

// Compute validates a full calendar year of records and derives uptime
// percentages, compliant month counts, and downtime cost. Threshold
// comparisons use unrounded values; stored figures are rounded.
func (p *AvailabilityProducer) Compute(records []models.AvailabilityRecord) (*models.AvailabilityMetrics, error) {
	if len(records) != monthsPerYear {
		return nil, models.NewValidationError(availabilityProducerName, "records",
			fmt.Sprintf("exactly %d monthly records are required, got %d", monthsPerYear, len(records)))
	}

	seen := make(map[int]bool, monthsPerYear)
	for i, r := range records {
		if r.Month < 1 || r.Month > monthsPerYear {
			return nil, models.NewValidationError(availabilityProducerName, fmt.Sprintf("records[%d].month", i),
				fmt.Sprintf("month must be in 1..%d, got %d", monthsPerYear, r.Month))
		}
		if seen[r.Month] {
			return nil, models.NewValidationError(availabilityProducerName, fmt.Sprintf("records[%d].month", i),
				fmt.Sprintf("duplicate month %d", r.Month))
		}
		seen[r.Month] = true
		if r.TotalMinutesInMonth <= 0 {
			return nil, models.NewValidationError(availabilityProducerName, fmt.Sprintf("records[%d].total_minutes_in_month", i),
				"total_minutes_in_month must be positive")
		}
		if r.DowntimeMinutes < 0 {
			return nil, models.NewValidationError(availabilityProducerName, fmt.Sprintf("records[%d].downtime_minutes", i),
				"downtime_minutes must not be negative")
		}
		if r.DowntimeMinutes > r.TotalMinutesInMonth {
			return nil, models.NewValidationError(availabilityProducerName, fmt.Sprintf("records[%d].downtime_minutes", i),
				"downtime_minutes exceeds total_minutes_in_month")
		}
	}

	ordered := append([]models.AvailabilityRecord(nil), records...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Month < ordered[j].Month })

	uptimes := make([]float64, 0, monthsPerYear)
	monthlyStored := make([]float64, 0, monthsPerYear)
	monthly := make([]models.MonthlyAvailability, 0, monthsPerYear)
	nonCompliant := make([]string, 0)
	annualDowntime := 0.0
	compliantMonths := 0

	for _, r := range ordered {
		uptime := r.UptimePct()
		uptimes = append(uptimes, uptime)
		monthlyStored = append(monthlyStored, utils.Round2(uptime))
		annualDowntime += r.DowntimeMinutes

		compliant := uptime >= p.targetPct
		if compliant {
			compliantMonths++
		} else {
			nonCompliant = append(nonCompliant, utils.MonthName(r.Month))
		}

		monthly = append(monthly, models.MonthlyAvailability{
			Month:           r.Month,
			MonthName:       utils.MonthName(r.Month),
			UptimePct:       utils.Round2(uptime),
			DowntimeMinutes: r.DowntimeMinutes,
			DowntimeCostUSD: utils.Round2(r.DowntimeMinutes * p.costPerMinute),
			Compliant:       compliant,
		})
	}

	avg := utils.Mean(uptimes)
	status := models.SLAStatusBreached
	if avg >= p.targetPct {
		status = models.SLAStatusMet
	}
	if len(nonCompliant) == 0 {
		nonCompliant = nil
	}

	return &models.AvailabilityMetrics{
		MonthlyUptimePct:      monthlyStored,
		AvgUptimePct:          utils.Round2(avg),
		MonthsCompliantCount:  compliantMonths,
		AnnualDowntimeMinutes: utils.Round2(annualDowntime),
		TargetPct:             p.targetPct,
		Status:                status,
		Monthly:               monthly,
		NonCompliantMonths:    nonCompliant,
	}, nil
}
