package models

import "time"

// Sale records a completed sale. Its existence implies the item's quantity
// was decremented by Quantity at creation time; deleting the sale restores
// exactly that amount. Gain snapshots the item's weighted-average cost at
// the moment of sale.
type Sale struct {
	ID            string    `gorm:"column:id;type:text;primaryKey"`
	ItemID        string    `gorm:"column:item_id;type:text;not null;index"`
	Quantity      int       `gorm:"column:quantity;not null"`
	Price         float64   `gorm:"column:price;not null"`
	Total         float64   `gorm:"column:total;not null"`
	Gain          float64   `gorm:"column:gain;not null;default:0"`
	PaymentMethod string    `gorm:"column:payment_method;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;index"`
}
