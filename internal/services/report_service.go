package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cloudcoreops/kpi-engine/internal/dataset"
	"github.com/cloudcoreops/kpi-engine/internal/engine"
	"github.com/cloudcoreops/kpi-engine/internal/metrics"
	"github.com/cloudcoreops/kpi-engine/internal/models"
)

// IncidentProducer computes the incident SLA frame.
type IncidentProducer interface {
	Compute(records []models.IncidentRecord) (*models.IncidentMetrics, error)
}

// AvailabilityProducer computes the monthly uptime frame.
type AvailabilityProducer interface {
	Compute(records []models.AvailabilityRecord) (*models.AvailabilityMetrics, error)
}

// MaturityProducer computes the governance maturity frame.
type MaturityProducer interface {
	Compute(assessments []models.MaturityAssessment) (*models.MaturityResult, error)
}

// ContinuityProducer computes the continuity frame.
type ContinuityProducer interface {
	Compute(scenarios []models.ContinuityScenario) (*models.ContinuityMetrics, error)
}

// RiskEvaluator scores the optional risk register.
type RiskEvaluator interface {
	Evaluate(items []models.RiskItem) (*models.RiskSummary, error)
}

// Aggregator joins the frames into the integrated report.
type Aggregator interface {
	Aggregate(in engine.Inputs) (*models.IntegratedReport, error)
}

// ReportService orchestrates one reporting run: producers fan out over the
// dataset sections, then the aggregator joins their outputs.
type ReportService struct {
	logger       *slog.Logger
	incidents    IncidentProducer
	availability AvailabilityProducer
	maturity     MaturityProducer
	continuity   ContinuityProducer
	risk         RiskEvaluator
	aggregator   Aggregator
}

// NewReportService constructs the reporting facade.
func NewReportService(
	logger *slog.Logger,
	incidents IncidentProducer,
	availability AvailabilityProducer,
	maturity MaturityProducer,
	continuity ContinuityProducer,
	risk RiskEvaluator,
	aggregator Aggregator,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		logger:       logger,
		incidents:    incidents,
		availability: availability,
		maturity:     maturity,
		continuity:   continuity,
		risk:         risk,
		aggregator:   aggregator,
	}
}

// Generate runs every producer concurrently and aggregates their outputs.
// The risk register is only evaluated when the dataset carries one; the
// report then has no risk section otherwise.
func (s *ReportService) Generate(ctx context.Context, ds *dataset.Dataset) (*models.IntegratedReport, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("report run started",
		slog.Int("incidents", len(ds.Incidents)),
		slog.Int("availability_months", len(ds.Availability)),
		slog.Int("assessments", len(ds.Maturity)),
		slog.Int("scenarios", len(ds.Continuity)),
		slog.Int("risks", len(ds.Risks)),
	)

	start := time.Now()

	var (
		incidents    *models.IncidentMetrics
		availability *models.AvailabilityMetrics
		maturity     *models.MaturityResult
		continuity   *models.ContinuityMetrics
		risk         *models.RiskSummary
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		incidents, err = s.incidents.Compute(ds.Incidents)
		return err
	})
	g.Go(func() error {
		var err error
		availability, err = s.availability.Compute(ds.Availability)
		return err
	})
	g.Go(func() error {
		var err error
		maturity, err = s.maturity.Compute(ds.Maturity)
		return err
	})
	g.Go(func() error {
		var err error
		continuity, err = s.continuity.Compute(ds.Continuity)
		return err
	})
	if len(ds.Risks) > 0 {
		g.Go(func() error {
			var err error
			risk, err = s.risk.Evaluate(ds.Risks)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return s.fail(start, err)
	}
	if err := ctx.Err(); err != nil {
		return s.fail(start, err)
	}

	report, err := s.aggregator.Aggregate(engine.Inputs{
		Incidents:    incidents,
		Availability: availability,
		Maturity:     maturity,
		Continuity:   continuity,
		Risk:         risk,
	})
	if err != nil {
		return s.fail(start, err)
	}

	duration := time.Since(start)
	metrics.ObserveReportBuild(duration, metrics.OutcomeSuccess)
	s.logger.Info("report generated",
		slog.Duration("took", duration),
		slog.String("governance_status", string(report.Governance.Status)),
		slog.Int("governance_alerts", report.Governance.AlertCount),
		slog.Int("maturity_level", report.MaturityLevel),
	)
	return report, nil
}

// Validate runs every producer over the dataset and collects the failures
// instead of stopping at the first. A nil return means the dataset is clean.
func (s *ReportService) Validate(ds *dataset.Dataset) []error {
	if ds == nil {
		return []error{fmt.Errorf("dataset cannot be nil")}
	}

	findings := make([]error, 0)
	if _, err := s.incidents.Compute(ds.Incidents); err != nil {
		findings = append(findings, err)
	}
	if _, err := s.availability.Compute(ds.Availability); err != nil {
		findings = append(findings, err)
	}
	if _, err := s.maturity.Compute(ds.Maturity); err != nil {
		findings = append(findings, err)
	}
	if _, err := s.continuity.Compute(ds.Continuity); err != nil {
		findings = append(findings, err)
	}
	if len(ds.Risks) > 0 {
		if _, err := s.risk.Evaluate(ds.Risks); err != nil {
			findings = append(findings, err)
		}
	}
	if len(findings) == 0 {
		return nil
	}
	return findings
}

func (s *ReportService) fail(start time.Time, err error) (*models.IntegratedReport, error) {
	metrics.ObserveReportBuild(time.Since(start), metrics.OutcomeError)
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		metrics.IncValidationFailure(verr.Producer)
	}
	s.logger.Error("report run failed", slog.Any("error", err))
	return nil, err
}
