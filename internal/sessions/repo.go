package sessions

import (
	"context"
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles user and session persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to session operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindUserByUsername loads a user by its unique username.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserWithSession persists a new user and its initial session in one
// transaction; registration either yields both rows or neither.
func (r *Repository) CreateUserWithSession(ctx context.Context, user *models.User, session *models.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

// CreateSession persists a new session row.
func (r *Repository) CreateSession(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindSession loads a session by token.
func (r *Repository) FindSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session row; deleting an absent token is a no-op.
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteCreatedBefore purges sessions older than the cutoff and reports how
// many rows went away.
func (r *Repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
