package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

// WriteConsole prints a compact dashboard to w, aligned for terminals.
func WriteConsole(w io.Writer, report *models.IntegratedReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "GOVERNANCE\t%s\t(%d alerting)\n", report.Governance.Status, report.Governance.AlertCount)
	fmt.Fprintf(tw, "ASSESSMENT\t%d (%s)\t\n", report.Assessment.Score, report.Assessment.Description)
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "KPI\tVALUE\tTARGET\tSTATUS")
	for _, k := range report.Governance.KPIs {
		fmt.Fprintf(tw, "%s\t%v %s\t%v %s\t%s\n", k.Name, k.Value, k.Unit, k.Threshold, k.Unit, k.Status)
	}

	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintln(tw, "FRAME\tHEADLINE\t\t")
	fmt.Fprintf(tw, "incidents\t%v%% compliant, %v USD penalties\t\t\n",
		report.IncidentComplianceRate, report.SLAPenaltyTotal)
	fmt.Fprintf(tw, "availability\t%v%% average, %d/12 months at target\t\t\n",
		report.AvailabilityAvgPct, report.MonthsCompliantCount)
	fmt.Fprintf(tw, "continuity\t%d/%d scenarios met\t\t\n",
		report.RTOScenariosMetCount, report.Continuity.TotalCount)
	fmt.Fprintf(tw, "maturity\tlevel %d (%s)\t\t\n",
		report.MaturityLevel, report.Maturity.Description)
	if report.Risk != nil {
		fmt.Fprintf(tw, "risk\t%v USD residual, %d above appetite\t\t\n",
			report.Risk.TotalResidualUSD, report.Risk.ExceedingAppetite)
	}

	if err := tw.Flush(); err != nil {
		return utils.NewAppError("render.console", "flush dashboard", err)
	}
	return nil
}
