package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

// WriteCSV writes one CSV file per tabular report section and returns the
// written paths. The risk register file is only written when the report
// carries a risk section.
func WriteCSV(report *models.IntegratedReport, dir string) ([]string, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	paths := make([]string, 0, 5)

	files := []struct {
		name    string
		rows    [][]string
		present bool
	}{
		{"incidents_by_severity.csv", severityRows(report), true},
		{"availability_monthly.csv", monthlyRows(report), true},
		{"continuity_scenarios.csv", scenarioRows(report), true},
		{"governance_kpis.csv", kpiRows(report), true},
		{"risk_register.csv", riskRows(report), report.Risk != nil},
	}
	for _, f := range files {
		if !f.present {
			continue
		}
		path := filepath.Join(dir, f.name)
		if err := writeCSVFile(path, f.rows); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return utils.NewAppError("render.csv", fmt.Sprintf("create %s", path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return utils.NewAppError("render.csv", fmt.Sprintf("write %s", path), err)
	}
	return nil
}

func severityRows(report *models.IntegratedReport) [][]string {
	rows := [][]string{{
		"severity", "total", "met", "breached",
		"compliance_rate", "penalty_total", "avg_resolution_minutes", "p95_resolution_minutes",
	}}
	for _, b := range report.Incidents.BySeverity {
		rows = append(rows, []string{
			string(b.Severity),
			strconv.Itoa(b.Total),
			strconv.Itoa(b.Met),
			strconv.Itoa(b.Breached),
			formatFloat(b.ComplianceRate),
			formatFloat(b.PenaltyTotal),
			formatFloat(b.AvgResolutionMinutes),
			formatFloat(b.P95ResolutionMinutes),
		})
	}
	return rows
}

func monthlyRows(report *models.IntegratedReport) [][]string {
	rows := [][]string{{
		"month", "month_name", "uptime_pct", "downtime_minutes", "downtime_cost_usd", "compliant",
	}}
	for _, m := range report.Availability.Monthly {
		rows = append(rows, []string{
			strconv.Itoa(m.Month),
			m.MonthName,
			formatFloat(m.UptimePct),
			formatFloat(m.DowntimeMinutes),
			formatFloat(m.DowntimeCostUSD),
			strconv.FormatBool(m.Compliant),
		})
	}
	return rows
}

func scenarioRows(report *models.IntegratedReport) [][]string {
	rows := [][]string{{
		"id", "name", "disruption", "rto_target_hours", "rto_observed_hours",
		"meets_rto", "rto_gap_hours", "meets_rpo", "residual_risk_usd", "recovery_impact_usd",
	}}
	for _, s := range report.Continuity.PerScenarioResult {
		rows = append(rows, []string{
			s.ID,
			s.Name,
			string(s.Disruption),
			formatFloat(s.RTOTargetHours),
			formatFloat(s.RTOObservedHours),
			strconv.FormatBool(s.MeetsRTO),
			formatFloat(s.RTOGapHours),
			strconv.FormatBool(s.MeetsRPO),
			formatFloat(s.ResidualRiskUSD),
			formatFloat(s.RecoveryImpactUSD),
		})
	}
	return rows
}

func kpiRows(report *models.IntegratedReport) [][]string {
	rows := [][]string{{
		"name", "field", "value", "threshold", "unit", "framework", "status", "gap",
	}}
	for _, k := range report.Governance.KPIs {
		rows = append(rows, []string{
			k.Name,
			k.Field,
			formatFloat(k.Value),
			formatFloat(k.Threshold),
			k.Unit,
			k.Framework,
			string(k.Status),
			formatFloat(k.Gap),
		})
	}
	return rows
}

func riskRows(report *models.IntegratedReport) [][]string {
	rows := [][]string{{
		"id", "name", "inherent_usd", "control_effectiveness", "residual_usd", "level", "exceeds_appetite",
	}}
	if report.Risk == nil {
		return rows
	}
	for _, r := range report.Risk.Items {
		rows = append(rows, []string{
			r.ID,
			r.Name,
			formatFloat(r.InherentUSD),
			formatFloat(r.ControlEffectiveness),
			formatFloat(r.ResidualUSD),
			string(r.Level),
			strconv.FormatBool(r.ExceedsAppetite),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
