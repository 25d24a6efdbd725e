package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	dbmodels "github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"gorm.io/gorm"
)

type saleRepository interface {
	CreateWithDecrement(ctx context.Context, sale *dbmodels.Sale) error
	Reverse(ctx context.Context, saleID string) error
	ListByCreatedDesc(ctx context.Context) ([]dbmodels.Sale, error)
}

// Service runs the sale side of the transaction engine.
type Service interface {
	Record(ctx context.Context, input SaleRequest) (*SaleResponse, error)
	Reverse(ctx context.Context, saleID string) error
	List(ctx context.Context) ([]SaleResponse, error)
}

// ServiceParams configure the sales service.
type ServiceParams struct {
	Repo   saleRepository
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	repo saleRepository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a sales service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("sale repository required")
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

func (s *service) Record(ctx context.Context, input SaleRequest) (*SaleResponse, error) {
	method := strings.TrimSpace(input.PaymentMethod)
	if input.ItemID == "" || input.Quantity <= 0 || input.Price < 0 || method == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid sale data.")
	}

	sale := &dbmodels.Sale{
		ID:            uuid.NewString(),
		ItemID:        input.ItemID,
		Quantity:      input.Quantity,
		Price:         input.Price,
		PaymentMethod: method,
		CreatedAt:     s.now(),
	}

	if err := s.repo.CreateWithDecrement(ctx, sale); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Item not found.")
		case errors.Is(err, ErrInsufficientStock):
			return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "Not enough stock.")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to record sale")
		}
	}
	return toSaleResponse(sale), nil
}

func (s *service) Reverse(ctx context.Context, saleID string) error {
	if err := s.repo.Reverse(ctx, saleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Sale not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to reverse sale")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]SaleResponse, error) {
	rows, err := s.repo.ListByCreatedDesc(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list sales")
	}
	return toSaleResponses(rows), nil
}
