package models

// ReceiptItemInput is a raw line item as supplied by OCR or manual entry,
// before conversion into a canonical Item.
type ReceiptItemInput struct {
	Name     string   `json:"name" binding:"required"`
	Price    float64  `json:"price" binding:"gte=0"`
	Quantity int      `json:"quantity" binding:"omitempty,gt=0"` // defaults to 1
	HasTax   bool     `json:"has_tax"`
	Discount *float64 `json:"discount" binding:"omitempty,gte=0"`
	Deposit  *float64 `json:"deposit" binding:"omitempty,gte=0"`
}

// ReceiptSummary totals a batch of raw items before a split exists. Tax here
// is an estimate at the region rate, not authoritative.
type ReceiptSummary struct {
	Subtotal      float64 `json:"subtotal"`
	TotalTax      float64 `json:"total_tax"`
	TotalDiscount float64 `json:"total_discount"`
	TotalDeposit  float64 `json:"total_deposit"`
	GrandTotal    float64 `json:"grand_total"`
}

type ReceiptPreviewRequest struct {
	Region string             `json:"region"`
	Items  []ReceiptItemInput `json:"items" binding:"required"`
}
