package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	dbmodels "github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"gorm.io/gorm"
)

type itemRepository interface {
	FindByID(ctx context.Context, id string) (*dbmodels.Item, error)
	FindBySKUExcept(ctx context.Context, sku, id string) (*dbmodels.Item, error)
	Upsert(ctx context.Context, item *dbmodels.Item) error
	Update(ctx context.Context, item *dbmodels.Item) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	ReplaceAll(ctx context.Context, items []dbmodels.Item) error
	ListByUpdatedDesc(ctx context.Context) ([]dbmodels.Item, error)
	ListInStockByName(ctx context.Context) ([]dbmodels.Item, error)
}

// Service manages the item catalog.
type Service interface {
	CreateOrReplace(ctx context.Context, input ItemRequest) (*ItemResponse, error)
	Update(ctx context.Context, id string, input ItemRequest) (*ItemResponse, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	BulkReplace(ctx context.Context, inputs []ItemRequest) ([]ItemResponse, error)
	List(ctx context.Context) ([]ItemResponse, error)
	PublicList(ctx context.Context) ([]PublicItemResponse, error)
}

// ServiceParams configure the inventory service.
type ServiceParams struct {
	Repo   itemRepository
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	repo itemRepository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds an inventory service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, logg: params.Logger, now: now}, nil
}

func (s *service) CreateOrReplace(ctx context.Context, input ItemRequest) (*ItemResponse, error) {
	item, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	if err := s.checkSKU(ctx, item.SKU, item.ID); err != nil {
		return nil, err
	}

	// preserve the derived cost when replacing an existing row
	if existing, err := s.repo.FindByID(ctx, item.ID); err == nil {
		item.CostUnit = existing.CostUnit
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "SKU already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to save item")
	}
	return toItemResponse(item), nil
}

func (s *service) Update(ctx context.Context, id string, input ItemRequest) (*ItemResponse, error) {
	input.ID = id
	item, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Item not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load item")
	}

	if err := s.checkSKU(ctx, item.SKU, id); err != nil {
		return nil, err
	}

	item.CostUnit = existing.CostUnit
	if err := s.repo.Update(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "SKU already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update item")
	}
	return toItemResponse(item), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete item")
	}
	return nil
}

func (s *service) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to clear items")
	}
	return nil
}

// BulkReplace swaps the entire catalog for the given batch in one
// transaction. Invalid records are dropped from the batch and logged, never
// surfaced to the caller.
func (s *service) BulkReplace(ctx context.Context, inputs []ItemRequest) ([]ItemResponse, error) {
	cleaned := make([]dbmodels.Item, 0, len(inputs))
	seenSKU := make(map[string]struct{}, len(inputs))
	dropped := 0

	for i, input := range inputs {
		item, err := s.normalize(input)
		if err != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"index": i, "reason": err.Error()}), "bulk item dropped")
			dropped++
			continue
		}
		if _, dup := seenSKU[item.SKU]; dup {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"index": i, "sku": item.SKU, "reason": "duplicate sku in batch"}), "bulk item dropped")
			dropped++
			continue
		}
		seenSKU[item.SKU] = struct{}{}
		cleaned = append(cleaned, *item)
	}

	if err := s.repo.ReplaceAll(ctx, cleaned); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to replace items")
	}
	if dropped > 0 {
		s.logg.Info(s.logg.WithField(ctx, "dropped", dropped), "bulk replace dropped invalid records")
	}
	return toItemResponses(cleaned), nil
}

func (s *service) List(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.repo.ListByUpdatedDesc(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list items")
	}
	return toItemResponses(items), nil
}

func (s *service) PublicList(ctx context.Context) ([]PublicItemResponse, error) {
	items, err := s.repo.ListInStockByName(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list items")
	}
	return toPublicItemResponses(items), nil
}

// normalize trims the identifying fields, fills generated values, and clamps
// negative numerics to zero.
func (s *service) normalize(input ItemRequest) (*dbmodels.Item, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(input.SKU)
	location := strings.TrimSpace(input.Location)
	if name == "" || sku == "" || location == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing name, sku, or location.")
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	}

	updatedAt := s.now()
	if input.UpdatedAt != nil && !input.UpdatedAt.IsZero() {
		updatedAt = *input.UpdatedAt
	}

	return &dbmodels.Item{
		ID:          id,
		Name:        name,
		SKU:         sku,
		Quantity:    max(input.Quantity, 0),
		Location:    location,
		Price:       math.Max(input.Price, 0),
		Threshold:   max(input.Threshold, 0),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Status:      strings.TrimSpace(input.Status),
		UpdatedAt:   updatedAt,
	}, nil
}

func (s *service) checkSKU(ctx context.Context, sku, id string) error {
	_, err := s.repo.FindBySKUExcept(ctx, sku, id)
	switch {
	case err == nil:
		return pkgerrors.New(pkgerrors.CodeConflict, "SKU already exists.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check sku")
	}
}
