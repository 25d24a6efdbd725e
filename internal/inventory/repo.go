package inventory

import (
	"context"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertColumns are the writable item columns. cost_unit is excluded so an
// upsert over an existing row never clobbers the derived purchase average.
var upsertColumns = []string{
	"name", "sku", "quantity", "location", "price",
	"threshold", "description", "image_url", "status", "updated_at",
}

// Repository provides item persistence on top of GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a single item.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBySKUExcept returns the item owning the sku, ignoring the given id.
func (r *Repository) FindBySKUExcept(ctx context.Context, sku, id string) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		First(&item, "sku = ? AND id <> ?", sku, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert inserts the item or replaces the row with the same id.
func (r *Repository) Upsert(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(item).Error
}

// Update rewrites the writable columns of an existing row.
func (r *Repository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", item.ID).
		Select(upsertColumns).
		Updates(item).Error
}

// Delete removes the item; deleting an absent id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}

// DeleteAll empties the items table.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Item{}).Error
}

// ReplaceAll atomically swaps the whole table for the given rows.
func (r *Repository) ReplaceAll(ctx context.Context, items []models.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Item{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// ListByUpdatedDesc returns every item, most recently updated first.
func (r *Repository) ListByUpdatedDesc(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&items).Error
	return items, err
}

// ListInStockByName returns items with stock on hand, alphabetically.
func (r *Repository) ListInStockByName(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("quantity > 0").
		Order("name ASC").
		Find(&items).Error
	return items, err
}
