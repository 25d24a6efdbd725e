package finance

import (
	"context"
	"database/sql"
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
)

// itemCostRow carries the per-item figures behind the gain calculation:
// the current list price, the purchase-weighted unit cost, and the units
// sold over all time.
type itemCostRow struct {
	ID        string
	Price     float64
	CostUnit  float64
	UnitsSold int64
}

const itemCostQuery = `
SELECT i.id,
       i.price,
       COALESCE(
           (SELECT SUM(p.cost_unit * p.quantity) FROM purchases p WHERE p.item_id = i.id) /
           NULLIF((SELECT SUM(p.quantity) FROM purchases p WHERE p.item_id = i.id), 0),
           0
       ) AS cost_unit,
       COALESCE((SELECT SUM(s.quantity) FROM sales s WHERE s.item_id = i.id), 0) AS units_sold
FROM items i
`

// Repository runs the read-only aggregation queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SalesTotalsBetween sums sales with created_at in [start, end).
func (r *Repository) SalesTotalsBetween(ctx context.Context, start, end time.Time) (total float64, count, units int64, err error) {
	var row struct {
		Total sql.NullFloat64
		Count int64
		Units sql.NullInt64
	}
	err = r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("SUM(total) AS total, COUNT(*) AS count, SUM(quantity) AS units").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.Total.Float64, row.Count, row.Units.Int64, nil
}

// SalesByPaymentBetween groups the window's sales per payment method,
// largest revenue first.
func (r *Repository) SalesByPaymentBetween(ctx context.Context, start, end time.Time) ([]PaymentBreakdown, error) {
	var rows []PaymentBreakdown
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("payment_method AS method, SUM(total) AS total, COUNT(*) AS count, SUM(quantity) AS units").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("payment_method").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

// TotalInvested sums every purchase ever recorded.
func (r *Repository) TotalInvested(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Select("SUM(total_cost)").
		Scan(&total).Error
	return total.Float64, err
}

// ItemCostAggregates returns the weighted cost and lifetime units sold for
// every item in the catalog.
func (r *Repository) ItemCostAggregates(ctx context.Context) ([]itemCostRow, error) {
	var rows []itemCostRow
	err := r.db.WithContext(ctx).Raw(itemCostQuery).Scan(&rows).Error
	return rows, err
}

// RevenueSince sums sale totals with created_at >= start.
func (r *Repository) RevenueSince(ctx context.Context, start time.Time) (float64, error) {
	var revenue sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("SUM(total)").
		Where("created_at >= ?", start).
		Scan(&revenue).Error
	return revenue.Float64, err
}

// RevenueBetween sums sale totals with created_at in [start, end).
func (r *Repository) RevenueBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var revenue sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("SUM(total)").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&revenue).Error
	return revenue.Float64, err
}

// FindInvoiceData loads a sale joined with its item's display fields.
func (r *Repository) FindInvoiceData(ctx context.Context, saleID string) (*InvoiceData, error) {
	var row struct {
		ID            string
		ItemName      sql.NullString
		SKU           sql.NullString
		Quantity      int
		Price         float64
		Total         float64
		PaymentMethod string
		CreatedAt     time.Time
	}
	res := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("sales.id, items.name AS item_name, items.sku AS sku, sales.quantity, sales.price, sales.total, sales.payment_method, sales.created_at").
		Joins("LEFT JOIN items ON items.id = sales.item_id").
		Where("sales.id = ?", saleID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &InvoiceData{
		SaleID:        row.ID,
		ItemName:      row.ItemName.String,
		SKU:           row.SKU.String,
		Quantity:      row.Quantity,
		Price:         row.Price,
		Total:         row.Total,
		PaymentMethod: row.PaymentMethod,
		CreatedAt:     row.CreatedAt,
	}, nil
}
