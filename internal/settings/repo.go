package settings

import (
	"context"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists key/value configuration entries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Replace deletes any row under the key and inserts the new value, in one
// transaction.
func (r *Repository) Replace(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Setting{}, "key = ?", setting.Key).Error; err != nil {
			return err
		}
		return tx.Create(setting).Error
	})
}

// FindByKey loads the entry for a key.
func (r *Repository) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
