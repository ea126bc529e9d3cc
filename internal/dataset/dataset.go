package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cloudcoreops/kpi-engine/internal/models"
	"github.com/cloudcoreops/kpi-engine/internal/utils"
)

// Dataset is the full input bundle of one reporting run. The risk register is
// the only optional section.
type Dataset struct {
	Incidents    []models.IncidentRecord     `yaml:"incidents" json:"incidents"`
	Availability []models.AvailabilityRecord `yaml:"availability" json:"availability"`
	Maturity     []models.MaturityAssessment `yaml:"maturity" json:"maturity"`
	Continuity   []models.ContinuityScenario `yaml:"continuity" json:"continuity"`
	Risks        []models.RiskItem           `yaml:"risks,omitempty" json:"risks,omitempty"`
}

// Load reads a YAML dataset. Unknown keys are rejected so a typo in a section
// name fails loudly instead of silently dropping records.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, utils.NewAppError("dataset.load", fmt.Sprintf("open dataset %s", path), err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, utils.NewAppError("dataset.load", fmt.Sprintf("parse dataset %s", path), err)
	}
	return &ds, nil
}

// Write marshals the dataset to a YAML file, creating parent directories as
// needed.
func Write(ds *Dataset, path string) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return utils.NewAppError("dataset.write", "marshal dataset", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return utils.NewAppError("dataset.write", fmt.Sprintf("create directory %s", dir), err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return utils.NewAppError("dataset.write", fmt.Sprintf("write dataset %s", path), err)
	}
	return nil
}
