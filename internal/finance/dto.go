package finance

import "time"

// PaymentBreakdown aggregates one payment method inside the weekly window.
type PaymentBreakdown struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
	Count  int64   `json:"count"`
	Units  int64   `json:"units"`
}

// WeeklyReportResponse covers the current Monday-to-Monday window.
type WeeklyReportResponse struct {
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Total     float64            `json:"total"`
	Count     int64              `json:"count"`
	Units     int64              `json:"units"`
	ByPayment []PaymentBreakdown `json:"byPayment"`
}

// SummaryResponse is the capital and margin overview.
type SummaryResponse struct {
	InitialCapital float64 `json:"initialCapital"`
	TotalInvested  float64 `json:"totalInvested"`
	TotalGain      float64 `json:"totalGain"`
	CapitalActual  float64 `json:"capitalActual"`
	MarginPercent  float64 `json:"marginPercent"`
	GainToday      float64 `json:"gainToday"`
	GainWeek       float64 `json:"gainWeek"`
	GainMonth      float64 `json:"gainMonth"`
}

// InvoiceData is a sale joined with its item, ready for rendering.
type InvoiceData struct {
	SaleID        string
	ItemName      string
	SKU           string
	Quantity      int
	Price         float64
	Total         float64
	PaymentMethod string
	CreatedAt     time.Time
}
