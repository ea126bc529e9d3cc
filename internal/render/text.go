package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

// TextRenderer produces the executive text summary. Now is injectable so the
// generated-at stamp can be fixed in tests; the report itself carries no
// wall-clock data.
type TextRenderer struct {
	Now func() time.Time
}

// NewTextRenderer returns a renderer stamping with the system clock.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{Now: time.Now}
}

const textTemplate = `==================================================
 IT SERVICE GOVERNANCE - INTEGRATED KPI REPORT
==================================================
Generated: {{.GeneratedAt}}

CONTRACT SUMMARY
  Incident SLA compliance:  {{.R.IncidentComplianceRate}}%
  SLA penalty total:        {{.R.SLAPenaltyTotal}} USD
  Average availability:     {{.R.AvailabilityAvgPct}}%
  Months at target:         {{.R.MonthsCompliantCount}}/12
  Annual financial impact:  {{.R.AnnualFinancialImpact}} USD
  RTO scenarios met:        {{.R.RTOScenariosMetCount}}/{{.R.Continuity.TotalCount}}
  Maturity level:           {{.R.MaturityLevel}} ({{.R.Maturity.Description}})

GOVERNANCE DASHBOARD ({{.R.Governance.Status}}, {{.R.Governance.AlertCount}} alerting)
{{- range .R.Governance.KPIs}}
  [{{.Status}}] {{.Name}}: {{.Value}} {{.Unit}} against {{.Threshold}} {{.Unit}} ({{.Framework}})
{{- end}}

INTEGRATED ASSESSMENT: {{.R.Assessment.Score}}/{{len .R.Assessment.Notes}} ({{.R.Assessment.Description}})
{{- range .R.Assessment.Notes}}
  - {{.}}
{{- end}}
{{- if .R.Decisions}}

DECISIONS
{{- range .R.Decisions}}
  - {{.}}
{{- end}}
{{- end}}
{{- if .R.Recommendations}}

RECOMMENDATIONS
{{- range .R.Recommendations}}
  - {{.}}
{{- end}}
{{- end}}
{{- if .R.Risk}}

RISK REGISTER
  Residual exposure: {{.R.Risk.TotalResidualUSD}} USD against an appetite of {{.R.Risk.AppetiteUSD}} USD
  Risks above appetite: {{.R.Risk.ExceedingAppetite}}
{{- if .R.Risk.Highest}}
  Highest residual risk: {{.R.Risk.Highest}}
{{- end}}
{{- end}}
`

var summaryTmpl = template.Must(template.New("summary").Parse(textTemplate))

// Render produces the text summary as a string.
func (r *TextRenderer) Render(report *models.IntegratedReport) (string, error) {
	now := time.Now
	if r != nil && r.Now != nil {
		now = r.Now
	}

	var sb strings.Builder
	data := struct {
		GeneratedAt string
		R           *models.IntegratedReport
	}{
		GeneratedAt: now().UTC().Format(time.RFC3339),
		R:           report,
	}
	if err := summaryTmpl.Execute(&sb, data); err != nil {
		return "", utils.NewAppError("render.text", "execute summary template", err)
	}
	return sb.String(), nil
}

// WriteText writes the text summary to <dir>/report.txt and returns the
// written path.
func (r *TextRenderer) WriteText(report *models.IntegratedReport, dir string) (string, error) {
	out, err := r.Render(report)
	if err != nil {
		return "", err
	}
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return "", utils.NewAppError("render.text", fmt.Sprintf("write %s", path), err)
	}
	return path, nil
}
