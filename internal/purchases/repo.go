package purchases

import (
	"context"
	"database/sql"
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
)

// purchaseRow is the scan target for the list query's item join.
type purchaseRow struct {
	ID        string
	ItemID    string
	ItemName  sql.NullString
	Quantity  int
	CostUnit  float64
	TotalCost float64
	CreatedAt time.Time
}

// Repository persists purchases and keeps the derived item cost in step.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAndRecomputeCost appends the purchase row and rewrites the item's
// cached cost with the quantity-weighted average over the item's whole
// purchase history, all inside one transaction. Purchases never touch the
// item's quantity.
func (r *Repository) CreateAndRecomputeCost(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, "id = ?", purchase.ItemID).Error; err != nil {
			return err
		}

		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		var avg sql.NullFloat64
		err := tx.Model(&models.Purchase{}).
			Select("SUM(cost_unit * quantity) / SUM(quantity)").
			Where("item_id = ?", purchase.ItemID).
			Scan(&avg).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Item{}).
			Where("id = ?", purchase.ItemID).
			Update("cost_unit", avg.Float64).Error
	})
}

// ListWithItemName returns every purchase joined with its item's name,
// newest first. Items deleted after the fact leave a NULL name.
func (r *Repository) ListWithItemName(ctx context.Context) ([]PurchaseListEntry, error) {
	var rows []purchaseRow
	err := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Select("purchases.id, purchases.item_id, items.name AS item_name, purchases.quantity, purchases.cost_unit, purchases.total_cost, purchases.created_at").
		Joins("LEFT JOIN items ON items.id = purchases.item_id").
		Order("purchases.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]PurchaseListEntry, 0, len(rows))
	for _, row := range rows {
		name := row.ItemName.String
		if !row.ItemName.Valid || name == "" {
			name = "Unknown Item"
		}
		out = append(out, PurchaseListEntry{
			ID:        row.ID,
			ItemID:    row.ItemID,
			ItemName:  name,
			Quantity:  row.Quantity,
			CostUnit:  row.CostUnit,
			TotalCost: row.TotalCost,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
