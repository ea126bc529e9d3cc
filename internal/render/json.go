package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

// MarshalReport renders the report as indented JSON. The seven contract
// fields appear as stable snake_case keys at the top level, no envelope.
func MarshalReport(report *models.IntegratedReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, utils.NewAppError("render.json", "marshal report", err)
	}
	return append(data, '\n'), nil
}

// WriteJSON writes the JSON rendering to <dir>/report.json and returns the
// written path.
func WriteJSON(report *models.IntegratedReport, dir string) (string, error) {
	data, err := MarshalReport(report)
	if err != nil {
		return "", err
	}
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", utils.NewAppError("render.json", fmt.Sprintf("write %s", path), err)
	}
	return path, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return utils.NewAppError("render.write", fmt.Sprintf("create directory %s", dir), err)
	}
	return nil
}
