package finance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"gorm.io/gorm"
)

// initialCapitalKey is the config entry holding the owner's starting capital.
const initialCapitalKey = "initial_capital"

type financeRepository interface {
	SalesTotalsBetween(ctx context.Context, start, end time.Time) (float64, int64, int64, error)
	SalesByPaymentBetween(ctx context.Context, start, end time.Time) ([]PaymentBreakdown, error)
	TotalInvested(ctx context.Context) (float64, error)
	ItemCostAggregates(ctx context.Context) ([]itemCostRow, error)
	RevenueSince(ctx context.Context, start time.Time) (float64, error)
	RevenueBetween(ctx context.Context, start, end time.Time) (float64, error)
	FindInvoiceData(ctx context.Context, saleID string) (*InvoiceData, error)
}

type settingsReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// Service computes the read-only financial views.
type Service interface {
	WeeklyReport(ctx context.Context) (*WeeklyReportResponse, error)
	Summary(ctx context.Context) (*SummaryResponse, error)
	InvoiceData(ctx context.Context, saleID string) (*InvoiceData, error)
}

// ServiceParams configure the finance service.
type ServiceParams struct {
	Repo     financeRepository
	Settings settingsReader
	Logger   *logger.Logger
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	repo     financeRepository
	settings settingsReader
	logg     *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewService builds a finance service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("finance repository required")
	}
	if params.Settings == nil {
		return nil, fmt.Errorf("settings reader required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		settings: params.Settings,
		logg:     params.Logger,
		loc:      loc,
		now:      now,
	}, nil
}

// WeeklyReport aggregates the sales of the current local week, Monday 00:00
// inclusive to the next Monday exclusive.
func (s *service) WeeklyReport(ctx context.Context) (*WeeklyReportResponse, error) {
	start := weekStart(s.now().In(s.loc))
	end := start.AddDate(0, 0, 7)

	total, count, units, err := s.repo.SalesTotalsBetween(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to aggregate weekly sales")
	}
	breakdown, err := s.repo.SalesByPaymentBetween(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to aggregate payment methods")
	}
	if breakdown == nil {
		breakdown = []PaymentBreakdown{}
	}

	return &WeeklyReportResponse{
		Start:     start,
		End:       end,
		Total:     total,
		Count:     count,
		Units:     units,
		ByPayment: breakdown,
	}, nil
}

func (s *service) Summary(ctx context.Context) (*SummaryResponse, error) {
	initial := s.initialCapital(ctx)

	invested, err := s.repo.TotalInvested(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to sum purchases")
	}

	rows, err := s.repo.ItemCostAggregates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to aggregate item costs")
	}
	gain := 0.0
	for _, row := range rows {
		gain += (row.Price - row.CostUnit) * float64(row.UnitsSold)
	}

	capital := initial + invested + gain
	margin := 0.0
	if capital > 0 {
		margin, _ = decimal.NewFromFloat(gain / capital * 100).Round(2).Float64()
	}

	now := s.now().In(s.loc)
	today := midnight(now)

	gainToday, err := s.repo.RevenueBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to sum today's revenue")
	}
	gainWeek, err := s.repo.RevenueSince(ctx, midnight(now.AddDate(0, 0, -7)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to sum weekly revenue")
	}
	gainMonth, err := s.repo.RevenueSince(ctx, midnight(now.AddDate(0, 0, -30)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to sum monthly revenue")
	}

	return &SummaryResponse{
		InitialCapital: initial,
		TotalInvested:  invested,
		TotalGain:      gain,
		CapitalActual:  capital,
		MarginPercent:  margin,
		GainToday:      gainToday,
		GainWeek:       gainWeek,
		GainMonth:      gainMonth,
	}, nil
}

func (s *service) InvoiceData(ctx context.Context, saleID string) (*InvoiceData, error) {
	data, err := s.repo.FindInvoiceData(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load invoice data")
	}
	return data, nil
}

// initialCapital reads the configured starting capital. A missing or
// unparsable value counts as zero, never an error.
func (s *service) initialCapital(ctx context.Context) float64 {
	value, err := s.settings.Get(ctx, initialCapitalKey)
	if err != nil {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "value", value), "unparsable initial capital setting")
		return 0
	}
	return parsed
}

// weekStart returns the most recent Monday 00:00 in t's location.
func weekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return midnight(t.AddDate(0, 0, -daysSinceMonday))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
