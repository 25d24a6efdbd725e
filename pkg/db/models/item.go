package models

import "time"

// Item is a stock-keeping unit. Quantity is mutated only by the transaction
// engine (sales decrement it, reversals restore it). CostUnit is derived
// state: the quantity-weighted average over the item's purchase history,
// recomputed inside the same transaction as every recorded purchase.
type Item struct {
	ID          string    `gorm:"column:id;type:text;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	SKU         string    `gorm:"column:sku;not null;uniqueIndex"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	Location    string    `gorm:"column:location;not null"`
	Price       float64   `gorm:"column:price;not null;default:0"`
	CostUnit    float64   `gorm:"column:cost_unit;not null;default:0"`
	Threshold   int       `gorm:"column:threshold;not null;default:0"`
	Description string    `gorm:"column:description;not null;default:''"`
	ImageURL    string    `gorm:"column:image_url;not null;default:''"`
	Status      string    `gorm:"column:status;not null;default:''"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}
