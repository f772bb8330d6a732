package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phonedesk/phonedesk-backend/pkg/config"
	"github.com/phonedesk/phonedesk-backend/pkg/db"
	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
)

// Service computes the aggregated sales report for one owner.
type Service interface {
	SalesReport(ctx context.Context, ownerID uuid.UUID, rng DateRange) (*SalesReport, error)
}

type repository interface {
	AllSold(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]models.Phone, error)
}

type service struct {
	repo repository
	cfg  config.ReportsConfig
	logg *logger.Logger

	// now is swappable so the trend windows are testable.
	now func() time.Time
}

// ServiceParams bundles the dependencies required to build a report service.
type ServiceParams struct {
	Repo   repository
	Config config.ReportsConfig
	Logger *logger.Logger
}

// NewService constructs the report service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("phone repository is required")
	}
	cfg := params.Config
	if cfg.DailyLookbackDays <= 0 {
		cfg.DailyLookbackDays = 30
	}
	if cfg.MonthlyLookbackMonths <= 0 {
		cfg.MonthlyLookbackMonths = 12
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	return &service{repo: params.Repo, cfg: cfg, logg: params.Logger, now: time.Now}, nil
}

// SalesReport builds all five sub-reports from a single point-in-time
// snapshot of the owner's sold set. The optional range bounds the
// snapshot by sold date; the trend windows are then carved from it.
func (s *service) SalesReport(ctx context.Context, ownerID uuid.UUID, rng DateRange) (*SalesReport, error) {
	start, end, err := s.resolveRange(rng)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.AllSold(ctx, ownerID, start, end)
	if err != nil {
		if db.IsUnavailable(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "db: load sold set")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load sold set")
	}

	trendEnd := s.now().UTC()
	if end != nil {
		trendEnd = *end
	}
	dailyFrom := startOfDayUTC(trendEnd.AddDate(0, 0, -(s.cfg.DailyLookbackDays - 1)))
	if start != nil && start.After(dailyFrom) {
		dailyFrom = *start
	}
	monthlyFrom := startOfMonthUTC(trendEnd.AddDate(0, -(s.cfg.MonthlyLookbackMonths - 1), 0))
	if start != nil && start.After(monthlyFrom) {
		monthlyFrom = startOfMonthUTC(*start)
	}

	report := &SalesReport{
		Overall:      summarize(rows),
		Daily:        dailyTrend(rows, dailyFrom, trendEnd),
		ByModel:      rollupByModel(rows, s.cfg.TopN),
		TopCustomers: topCustomers(rows, s.cfg.TopN),
		Monthly:      monthlyTrend(rows, monthlyFrom, trendEnd),
	}
	if s.logg != nil {
		s.logg.Debug(s.logg.WithOwnerID(ctx, ownerID.String()), "sales report computed")
	}
	return report, nil
}

// resolveRange validates the caller-supplied bounds and widens the end
// date to the last instant of its UTC day.
func (s *service) resolveRange(rng DateRange) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if rng.Start != nil {
		at := rng.Start.UTC()
		start = &at
	}
	if rng.End != nil {
		at := endOfDayUTC(rng.End.UTC())
		end = &at
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "startDate must not be after endDate").
			WithDetails(map[string]string{"field": "startDate"})
	}
	return start, end, nil
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

func startOfMonthUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
