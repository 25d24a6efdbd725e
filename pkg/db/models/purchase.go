package models

import "time"

// Purchase is an append-only cost-basis event. It feeds the weighted-average
// cost for its item and never increments stock; quantity-in is bookkept on
// the item itself.
type Purchase struct {
	ID        string    `gorm:"column:id;type:text;primaryKey"`
	ItemID    string    `gorm:"column:item_id;type:text;not null;index"`
	Quantity  int       `gorm:"column:quantity;not null"`
	CostUnit  float64   `gorm:"column:cost_unit;not null"`
	TotalCost float64   `gorm:"column:total_cost;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index"`
}
