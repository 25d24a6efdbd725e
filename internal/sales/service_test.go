package sales

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
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

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.Sale{}))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(db),
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
	require.NoError(t, err)
	return svc
}

func seedItem(t *testing.T, db *gorm.DB, quantity int, costUnit float64) *models.Item {
	t.Helper()

	item := &models.Item{
		ID:       uuid.NewString(),
		Name:     "Veladora",
		SKU:      "VEL-" + uuid.NewString()[:8],
		Quantity: quantity,
		Location: "bodega",
		Price:    5,
		CostUnit: costUnit,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func itemQuantity(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()

	var item models.Item
	require.NoError(t, db.First(&item, "id = ?", id).Error)
	return item.Quantity
}

func TestRecordComputesTotalAndGain(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	item := seedItem(t, db, 10, 3.0)

	sale, err := svc.Record(context.Background(), SaleRequest{
		ItemID:        item.ID,
		Quantity:      4,
		Price:         5.0,
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 20.0, sale.Total)
	require.Equal(t, 8.0, sale.Gain)
	require.Equal(t, 6, itemQuantity(t, db, item.ID))
}

func TestRecordValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	item := seedItem(t, db, 10, 0)
	ctx := context.Background()

	for _, input := range []SaleRequest{
		{Quantity: 1, Price: 1, PaymentMethod: "efectivo"},
		{ItemID: item.ID, Quantity: 0, Price: 1, PaymentMethod: "efectivo"},
		{ItemID: item.ID, Quantity: -2, Price: 1, PaymentMethod: "efectivo"},
		{ItemID: item.ID, Quantity: 1, Price: -1, PaymentMethod: "efectivo"},
		{ItemID: item.ID, Quantity: 1, Price: 1, PaymentMethod: "  "},
	} {
		_, err := svc.Record(ctx, input)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, pkgerrors.CodeValidation, typed.Code())
		require.Equal(t, "Invalid sale data.", typed.Message())
	}

	require.Equal(t, 10, itemQuantity(t, db, item.ID), "rejected sales leave stock untouched")
}

func TestRecordUnknownItem(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Record(context.Background(), SaleRequest{
		ItemID:        uuid.NewString(),
		Quantity:      1,
		Price:         1,
		PaymentMethod: "efectivo",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRecordNeverOverdraws(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	item := seedItem(t, db, 3, 0)
	ctx := context.Background()

	_, err := svc.Record(ctx, SaleRequest{ItemID: item.ID, Quantity: 4, Price: 1, PaymentMethod: "efectivo"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	require.Equal(t, "Not enough stock.", typed.Message())
	require.Equal(t, 3, itemQuantity(t, db, item.ID))

	// draining the stock exactly is fine, one more unit is not
	_, err = svc.Record(ctx, SaleRequest{ItemID: item.ID, Quantity: 3, Price: 1, PaymentMethod: "efectivo"})
	require.NoError(t, err)
	require.Equal(t, 0, itemQuantity(t, db, item.ID))

	_, err = svc.Record(ctx, SaleRequest{ItemID: item.ID, Quantity: 1, Price: 1, PaymentMethod: "efectivo"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	require.Equal(t, 0, itemQuantity(t, db, item.ID))
}

func TestReverseRestoresStockExactly(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	item := seedItem(t, db, 10, 0)
	ctx := context.Background()

	sale, err := svc.Record(ctx, SaleRequest{ItemID: item.ID, Quantity: 7, Price: 2, PaymentMethod: "tarjeta"})
	require.NoError(t, err)
	require.Equal(t, 3, itemQuantity(t, db, item.ID))

	require.NoError(t, svc.Reverse(ctx, sale.ID))
	require.Equal(t, 10, itemQuantity(t, db, item.ID))

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	require.Equal(t, int64(0), count)

	err = svc.Reverse(ctx, sale.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	require.Equal(t, 10, itemQuantity(t, db, item.ID), "second reversal must not double-restore")
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 100, 0)

	base := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(db),
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
	})
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.Record(ctx, SaleRequest{ItemID: item.ID, Quantity: 1, Price: 1, PaymentMethod: "efectivo"})
	require.NoError(t, err)
	second, err := svc.Record(ctx, SaleRequest{ItemID: item.ID, Quantity: 1, Price: 1, PaymentMethod: "tarjeta"})
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, second.ID, rows[0].ID)
	require.Equal(t, first.ID, rows[1].ID)
}

func TestRecordConcurrentSalesNeverOverdraw(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	item := seedItem(t, db, 10, 3.0)

	// sqlite allows one writer at a time; cap the pool so parallel requests
	// queue on the connection instead of tripping table locks
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	const buyers = 8
	var (
		wg        sync.WaitGroup
		successes atomic.Int64
	)
	failures := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Record(context.Background(), SaleRequest{
				ItemID:        item.ID,
				Quantity:      2,
				Price:         5,
				PaymentMethod: "cash",
			})
			if err != nil {
				failures <- err
				return
			}
			successes.Add(1)
		}()
	}
	wg.Wait()
	close(failures)

	require.Equal(t, int64(5), successes.Load(), "exactly the seeded stock sells")
	require.Equal(t, 0, itemQuantity(t, db, item.ID))

	for err := range failures {
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	}
}
