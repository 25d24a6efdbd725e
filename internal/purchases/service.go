package purchases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	dbmodels "github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"gorm.io/gorm"
)

type purchaseRepository interface {
	CreateAndRecomputeCost(ctx context.Context, purchase *dbmodels.Purchase) error
	ListWithItemName(ctx context.Context) ([]PurchaseListEntry, error)
}

// Service runs the purchase side of the transaction engine. Purchases are
// append-only cost-basis events.
type Service interface {
	Record(ctx context.Context, input PurchaseRequest) (*PurchaseResponse, error)
	List(ctx context.Context) ([]PurchaseListEntry, error)
}

// ServiceParams configure the purchases service.
type ServiceParams struct {
	Repo   purchaseRepository
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	repo purchaseRepository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a purchases service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("purchase repository required")
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

func (s *service) Record(ctx context.Context, input PurchaseRequest) (*PurchaseResponse, error) {
	if input.ItemID == "" || input.Quantity <= 0 || input.CostUnit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid purchase data.")
	}

	purchase := &dbmodels.Purchase{
		ID:        uuid.NewString(),
		ItemID:    input.ItemID,
		Quantity:  input.Quantity,
		CostUnit:  input.CostUnit,
		TotalCost: float64(input.Quantity) * input.CostUnit,
		CreatedAt: s.now(),
	}

	if err := s.repo.CreateAndRecomputeCost(ctx, purchase); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Item not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to record purchase")
	}
	return toPurchaseResponse(purchase), nil
}

func (s *service) List(ctx context.Context) ([]PurchaseListEntry, error) {
	rows, err := s.repo.ListWithItemName(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list purchases")
	}
	return rows, nil
}
