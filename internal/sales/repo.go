package sales

import (
	"context"
	"errors"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ErrInsufficientStock reports that the conditional stock decrement matched
// no row: the item exists but holds fewer units than the sale asks for.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository persists sales and the stock movements tied to them.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithDecrement records the sale and decrements the item's stock in a
// single transaction. The decrement is conditional on quantity >= sale
// quantity so two concurrent sales can never overdraw the item. Total and
// Gain are filled in from the item row read inside the transaction.
func (r *Repository) CreateWithDecrement(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, "id = ?", sale.ItemID).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Item{}).
			Where("id = ? AND quantity >= ?", sale.ItemID, sale.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", sale.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		sale.Total = float64(sale.Quantity) * sale.Price
		sale.Gain = (sale.Price - item.CostUnit) * float64(sale.Quantity)
		return tx.Create(sale).Error
	})
}

// Reverse restores the stock a sale removed and deletes the sale row, both
// in one transaction. A missing item row is tolerated: the stock restore
// then simply matches nothing.
func (r *Repository) Reverse(ctx context.Context, saleID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Item{}).
			Where("id = ?", sale.ItemID).
			Update("quantity", gorm.Expr("quantity + ?", sale.Quantity)).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Sale{}, "id = ?", saleID).Error
	})
}

// ListByCreatedDesc returns every sale, newest first.
func (r *Repository) ListByCreatedDesc(ctx context.Context) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
