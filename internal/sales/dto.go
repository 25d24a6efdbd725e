package sales

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// SaleRequest is the wire payload for recording a sale.
type SaleRequest struct {
	ItemID        string  `json:"itemId" validate:"required"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	Price         float64 `json:"price" validate:"gte=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
}

func (SaleRequest) ValidationMessage(string, string) string {
	return "Invalid sale data."
}

// SaleResponse mirrors the persisted sale row.
type SaleResponse struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	Quantity      int       `json:"quantity"`
	Price         float64   `json:"price"`
	Total         float64   `json:"total"`
	Gain          float64   `json:"gain"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toSaleResponse(sale *models.Sale) *SaleResponse {
	return &SaleResponse{
		ID:            sale.ID,
		ItemID:        sale.ItemID,
		Quantity:      sale.Quantity,
		Price:         sale.Price,
		Total:         sale.Total,
		Gain:          sale.Gain,
		PaymentMethod: sale.PaymentMethod,
		CreatedAt:     sale.CreatedAt,
	}
}

func toSaleResponses(rows []models.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toSaleResponse(&rows[i]))
	}
	return out
}
