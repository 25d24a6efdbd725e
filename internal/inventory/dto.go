package inventory

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// ItemRequest is the wire payload for creating, replacing, or updating an
// item. CostUnit is accepted so clients can echo a full item back, but it is
// derived from the purchase history and never applied from a request.
type ItemRequest struct {
	ID          string     `json:"id"`
	Name        string     `json:"name" validate:"required"`
	SKU         string     `json:"sku" validate:"required"`
	Quantity    int        `json:"quantity"`
	Location    string     `json:"location" validate:"required"`
	Price       float64    `json:"price"`
	CostUnit    float64    `json:"costUnit"`
	Threshold   int        `json:"threshold"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	Status      string     `json:"status"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func (ItemRequest) ValidationMessage(string, string) string {
	return "Missing name, sku, or location."
}

// BulkRequest wraps the whole-table replacement payload. Items are not
// validated per element here: bulk replacement drops invalid records instead
// of rejecting the batch.
type BulkRequest struct {
	Items []ItemRequest `json:"items"`
}

// ItemResponse is the full item view returned to authenticated callers.
type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	CostUnit    float64   `json:"costUnit"`
	Threshold   int       `json:"threshold"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PublicItemResponse is the storefront projection. Location, cost, and
// reorder threshold never leave the back office.
type PublicItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Status      string  `json:"status"`
}

func toItemResponse(item *models.Item) *ItemResponse {
	return &ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		SKU:         item.SKU,
		Quantity:    item.Quantity,
		Location:    item.Location,
		Price:       item.Price,
		CostUnit:    item.CostUnit,
		Threshold:   item.Threshold,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Status:      item.Status,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemResponses(items []models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *toItemResponse(&items[i]))
	}
	return out
}

func toPublicItemResponses(items []models.Item) []PublicItemResponse {
	out := make([]PublicItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, PublicItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			Status:      item.Status,
		})
	}
	return out
}
