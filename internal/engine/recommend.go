package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cloudcoreops/kpi-engine/internal/models"
)

// RuleEngine turns report findings into remediation recommendations using a
// YAML rule pack.
type RuleEngine struct {
	rules  []compiledRule
	logger *slog.Logger
}

// Rule fires when every one of its conditions holds against the finished
// report. Higher-priority rules are applied first.
type Rule struct {
	Name            string   `yaml:"name"`
	Priority        int      `yaml:"priority"`
	When            []string `yaml:"when"`
	Recommendations []string `yaml:"recommendations"`
}

// RuleFile is the YAML root structure of a rule pack.
type RuleFile struct {
	Rules []Rule `yaml:"rules"`
}

type compiledRule struct {
	name            string
	priority        int
	conditions      []Condition
	recommendations []string
}

// NewRuleEngine loads and compiles a rule pack. An empty or missing path
// returns a nil engine; callers fall back to default recommendations.
func NewRuleEngine(path string, logger *slog.Logger) (*RuleEngine, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rule pack %s: %w", path, err)
	}

	compiled := make([]compiledRule, 0, len(file.Rules))
	for i, rule := range file.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule pack %s: rules[%d]: name is required", path, i)
		}
		conditions := make([]Condition, 0, len(rule.When))
		for _, expr := range rule.When {
			cond, err := parseCondition(expr)
			if err != nil {
				return nil, fmt.Errorf("rule pack %s: rule %q: %w", path, rule.Name, err)
			}
			conditions = append(conditions, cond)
		}
		compiled = append(compiled, compiledRule{
			name:            rule.Name,
			priority:        rule.Priority,
			conditions:      conditions,
			recommendations: rule.Recommendations,
		})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		if compiled[i].priority != compiled[j].priority {
			return compiled[i].priority > compiled[j].priority
		}
		return compiled[i].name < compiled[j].name
	})

	if logger == nil {
		logger = slog.Default()
	}
	return &RuleEngine{rules: compiled, logger: logger}, nil
}

// Recommend collects the recommendations of every rule whose conditions all
// hold. Duplicates across rules are dropped, first occurrence wins.
func (e *RuleEngine) Recommend(report *models.IntegratedReport) []string {
	if e == nil {
		return nil
	}

	matched := make([]string, 0)
	for _, rule := range e.rules {
		if !ruleHolds(rule, report) {
			continue
		}
		e.logger.Debug("recommendation rule matched", slog.String("rule", rule.name))
		matched = appendUnique(matched, rule.recommendations...)
	}
	return matched
}

func ruleHolds(rule compiledRule, report *models.IntegratedReport) bool {
	for _, cond := range rule.conditions {
		if !cond.Holds(report) {
			return false
		}
	}
	return true
}

func appendUnique(existing []string, additions ...string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		seen[rec] = struct{}{}
	}
	for _, item := range additions {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		existing = append(existing, item)
		seen[item] = struct{}{}
	}
	return existing
}
