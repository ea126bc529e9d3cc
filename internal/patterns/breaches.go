package patterns

import (
	"sort"

	"github.com/cloudcoreops/kpi-engine/internal/models"
)

const defaultMinSupport = 2

// maxSampleIDs bounds how many incident IDs a pattern carries as evidence.
const maxSampleIDs = 3

// MineBreaches groups SLA-breaching incidents by service and severity and
// returns the clusters reaching the minimum support, ordered by count
// descending, then service, then severity rank.
func MineBreaches(records []models.IncidentRecord, minSupport int) []models.BreachPattern {
	if len(records) == 0 {
		return nil
	}
	if minSupport <= 0 {
		minSupport = defaultMinSupport
	}

	type key struct {
		service  string
		severity models.Severity
	}
	groups := make(map[key]*models.BreachPattern)
	for _, r := range records {
		if r.Compliant() {
			continue
		}
		service := r.Service
		if service == "" {
			service = "unknown"
		}
		k := key{service: service, severity: r.Severity}
		pattern, ok := groups[k]
		if !ok {
			pattern = &models.BreachPattern{Service: service, Severity: r.Severity}
			groups[k] = pattern
		}
		pattern.Count++
		if len(pattern.SampleIDs) < maxSampleIDs {
			pattern.SampleIDs = append(pattern.SampleIDs, r.ID)
		}
	}

	mined := make([]models.BreachPattern, 0, len(groups))
	for _, pattern := range groups {
		if pattern.Count < minSupport {
			continue
		}
		mined = append(mined, *pattern)
	}

	sort.Slice(mined, func(i, j int) bool {
		if mined[i].Count != mined[j].Count {
			return mined[i].Count > mined[j].Count
		}
		if mined[i].Service != mined[j].Service {
			return mined[i].Service < mined[j].Service
		}
		return severityRank(mined[i].Severity) < severityRank(mined[j].Severity)
	})

	if len(mined) == 0 {
		return nil
	}
	return mined
}

func severityRank(s models.Severity) int {
	for i, sev := range models.Severities {
		if sev == s {
			return i
		}
	}
	return len(models.Severities)
}
