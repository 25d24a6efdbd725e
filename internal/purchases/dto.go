package purchases

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// PurchaseRequest is the wire payload for recording a stock purchase.
type PurchaseRequest struct {
	ItemID   string  `json:"itemId" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	CostUnit float64 `json:"costUnit" validate:"gte=0"`
}

func (PurchaseRequest) ValidationMessage(string, string) string {
	return "Invalid purchase data."
}

// PurchaseResponse mirrors the persisted purchase row.
type PurchaseResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Quantity  int       `json:"quantity"`
	CostUnit  float64   `json:"costUnit"`
	TotalCost float64   `json:"totalCost"`
	CreatedAt time.Time `json:"createdAt"`
}

// PurchaseListEntry is a purchase joined with its item's display name.
type PurchaseListEntry struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Quantity  int       `json:"quantity"`
	CostUnit  float64   `json:"costUnit"`
	TotalCost float64   `json:"totalCost"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPurchaseResponse(p *models.Purchase) *PurchaseResponse {
	return &PurchaseResponse{
		ID:        p.ID,
		ItemID:    p.ItemID,
		Quantity:  p.Quantity,
		CostUnit:  p.CostUnit,
		TotalCost: p.TotalCost,
		CreatedAt: p.CreatedAt,
	}
}
