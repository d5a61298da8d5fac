package report

import (
	"context"
	"time"

	"github.com/sitebuild/backend/internal/domain/report"
	"github.com/sitebuild/backend/internal/infrastructure/telemetry"
)

// DashboardService computes the analytics dashboard. Nothing is cached: every
// call reads the store afresh.
type DashboardService struct {
	figures  report.FiguresRepository
	currency string
	now      func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(figures report.FiguresRepository, currency string) *DashboardService {
	return &DashboardService{
		figures:  figures,
		currency: currency,
		now:      time.Now,
	}
}

// Compute loads current figures and derives the snapshot
func (s *DashboardService) Compute(ctx context.Context) (*DashboardResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "compute")
	defer span.End()

	f, err := s.figures.LoadFigures(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	response := ToDashboardResponse(report.BuildDashboard(*f, s.currency, s.now().UTC()))
	return &response, nil
}
