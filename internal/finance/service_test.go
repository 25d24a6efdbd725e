package finance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSettings struct {
	values map[string]string
}

func (f *fakeSettings) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return value, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.Sale{}, &models.Purchase{}))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, settings map[string]string, now time.Time) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(db),
		Settings: &fakeSettings{values: settings},
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		Location: time.UTC,
		Now:      func() time.Time { return now },
	})
	require.NoError(t, err)
	return svc
}

func seedItem(t *testing.T, db *gorm.DB, price float64) *models.Item {
	t.Helper()

	item := &models.Item{
		ID:       uuid.NewString(),
		Name:     "Miel de abeja",
		SKU:      "MIE-" + uuid.NewString()[:8],
		Quantity: 100,
		Location: "bodega",
		Price:    price,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func seedSale(t *testing.T, db *gorm.DB, itemID string, qty int, price float64, method string, at time.Time) *models.Sale {
	t.Helper()

	sale := &models.Sale{
		ID:            uuid.NewString(),
		ItemID:        itemID,
		Quantity:      qty,
		Price:         price,
		Total:         float64(qty) * price,
		PaymentMethod: method,
		CreatedAt:     at,
	}
	require.NoError(t, db.Create(sale).Error)
	return sale
}

func seedPurchase(t *testing.T, db *gorm.DB, itemID string, qty int, costUnit float64, at time.Time) {
	t.Helper()

	require.NoError(t, db.Create(&models.Purchase{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		Quantity:  qty,
		CostUnit:  costUnit,
		TotalCost: float64(qty) * costUnit,
		CreatedAt: at,
	}).Error)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"monday maps to its own midnight",
			time.Date(2025, time.June, 2, 15, 30, 0, 0, time.UTC),
			time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"midweek maps back to monday",
			time.Date(2025, time.June, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday still belongs to the week that started six days earlier",
			time.Date(2025, time.June, 8, 23, 59, 0, 0, time.UTC),
			time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, weekStart(tt.now))
		})
	}
}

func TestWeeklyReport(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)

	// week under test: Monday 2025-06-02 through Sunday 2025-06-08
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, nil, now)

	inWeek := time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC)
	seedSale(t, db, item.ID, 2, 5, "efectivo", inWeek)
	seedSale(t, db, item.ID, 1, 5, "efectivo", inWeek.Add(time.Hour))
	seedSale(t, db, item.ID, 4, 5, "tarjeta", inWeek.Add(2*time.Hour))

	// the Monday boundary is inclusive, the next Monday exclusive
	seedSale(t, db, item.ID, 10, 5, "efectivo", time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, item.ID, 99, 5, "efectivo", time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, item.ID, 99, 5, "efectivo", time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC))

	report, err := svc.WeeklyReport(context.Background())
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), report.Start)
	require.Equal(t, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), report.End)
	require.Equal(t, 85.0, report.Total)
	require.Equal(t, int64(4), report.Count)
	require.Equal(t, int64(17), report.Units)

	require.Len(t, report.ByPayment, 2)
	require.Equal(t, "efectivo", report.ByPayment[0].Method, "largest revenue first")
	require.Equal(t, 65.0, report.ByPayment[0].Total)
	require.Equal(t, "tarjeta", report.ByPayment[1].Method)
	require.Equal(t, 20.0, report.ByPayment[1].Total)
}

func TestWeeklyReportEmptyWeek(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, nil, now)

	report, err := svc.WeeklyReport(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0.0, report.Total)
	require.Equal(t, int64(0), report.Count)
	require.Equal(t, int64(0), report.Units)
	require.NotNil(t, report.ByPayment)
	require.Empty(t, report.ByPayment)
}

func TestSummary(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)

	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, map[string]string{"initial_capital": "100"}, now)

	seedPurchase(t, db, item.ID, 10, 2.0, now.Add(-48*time.Hour))
	seedPurchase(t, db, item.ID, 10, 4.0, now.Add(-24*time.Hour))
	seedSale(t, db, item.ID, 4, 5, "efectivo", now.Add(-time.Hour))

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 100.0, summary.InitialCapital)
	require.Equal(t, 60.0, summary.TotalInvested)
	// weighted cost 3.0, price 5.0, four units sold
	require.Equal(t, 8.0, summary.TotalGain)
	require.Equal(t, 168.0, summary.CapitalActual)
	require.Equal(t, 4.76, summary.MarginPercent)
	require.Equal(t, 20.0, summary.GainToday)
	require.Equal(t, 20.0, summary.GainWeek)
	require.Equal(t, 20.0, summary.GainMonth)
}

func TestSummaryPeriodCutoffs(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, nil, now)

	seedSale(t, db, item.ID, 1, 10, "efectivo", now.Add(-time.Hour))                              // today
	seedSale(t, db, item.ID, 1, 20, "efectivo", time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC))  // this week
	seedSale(t, db, item.ID, 1, 40, "efectivo", time.Date(2025, time.May, 25, 9, 0, 0, 0, time.UTC))   // this month
	seedSale(t, db, item.ID, 1, 80, "efectivo", time.Date(2025, time.January, 5, 9, 0, 0, 0, time.UTC)) // ancient

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10.0, summary.GainToday)
	require.Equal(t, 30.0, summary.GainWeek)
	require.Equal(t, 70.0, summary.GainMonth)
}

func TestSummaryEmptyAndUnparsableCapital(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)

	svc := newTestService(t, db, nil, now)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, &SummaryResponse{}, summary)

	svc = newTestService(t, db, map[string]string{"initial_capital": "mucho"}, now)
	summary, err = svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0.0, summary.InitialCapital)
}

func TestSummaryItemWithoutPurchasesUsesZeroCost(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)

	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, nil, now)

	seedSale(t, db, item.ID, 2, 5, "efectivo", now.Add(-time.Hour))

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10.0, summary.TotalGain, "zero cost basis when no purchases exist")
}

func TestInvoiceData(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)

	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, nil, now)
	ctx := context.Background()

	sale := seedSale(t, db, item.ID, 3, 5, "tarjeta", now)

	data, err := svc.InvoiceData(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, sale.ID, data.SaleID)
	require.Equal(t, item.Name, data.ItemName)
	require.Equal(t, item.SKU, data.SKU)
	require.Equal(t, 3, data.Quantity)
	require.Equal(t, 15.0, data.Total)
	require.Equal(t, "tarjeta", data.PaymentMethod)

	_, err = svc.InvoiceData(ctx, uuid.NewString())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// the sale survives its item; display fields degrade to empty
	require.NoError(t, db.Delete(&models.Item{}, "id = ?", item.ID).Error)
	data, err = svc.InvoiceData(ctx, sale.ID)
	require.NoError(t, err)
	require.Empty(t, data.ItemName)
	require.Empty(t, data.SKU)
}
