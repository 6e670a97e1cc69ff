// Package services holds the glue between handlers and external concerns:
// raw-receipt ingestion, the totals cache, and member notifications.
package services

import (
	"github.com/google/uuid"

	"receiptsplit-backend/config"
	"receiptsplit-backend/engine"
	"receiptsplit-backend/models"
	"receiptsplit-backend/utils"
)

// ResolveTaxRate returns the estimation percentage for a region, falling back
// to the configured default when the region is unknown or empty.
func ResolveTaxRate(regionID string) float64 {
	if region, ok := models.RegionByID(regionID); ok {
		return region.CombinedRate()
	}
	return config.AppConfig.DefaultTaxRate
}

// ConvertReceiptItem maps a raw OCR or manually entered line into a canonical
// Item: fresh ID, quantity defaulted to 1, split mode equal, no assignments.
// A taxable line without an explicit tax amount gets an estimate at taxRate
// percent of the effective price; the estimate is provisional until the user
// confirms it.
func ConvertReceiptItem(raw models.ReceiptItemInput, taxRate float64) models.Item {
	quantity := raw.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item := models.Item{
		ID:          uuid.New(),
		Name:        raw.Name,
		Price:       raw.Price,
		Quantity:    quantity,
		HasTax:      raw.HasTax,
		Discount:    raw.Discount,
		Deposit:     raw.Deposit,
		SplitMode:   models.SplitModeEqual,
		Assignments: []models.Assignment{},
	}

	if raw.HasTax {
		taxAmount := utils.Percentage(engine.EffectivePrice(item), taxRate)
		item.TaxAmount = &taxAmount
	}

	return item
}

// ConvertReceiptItems converts a whole raw receipt.
func ConvertReceiptItems(raws []models.ReceiptItemInput, taxRate float64) []models.Item {
	items := make([]models.Item, len(raws))
	for i, raw := range raws {
		items[i] = ConvertReceiptItem(raw, taxRate)
	}
	return items
}

// SummarizeReceiptItems totals a raw receipt before conversion. Tax is
// estimated at taxRate percent of the taxable lines.
func SummarizeReceiptItems(raws []models.ReceiptItemInput, taxRate float64) models.ReceiptSummary {
	var summary models.ReceiptSummary
	var taxableAmount float64

	for _, raw := range raws {
		quantity := raw.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lineTotal := raw.Price * float64(quantity)

		summary.Subtotal += lineTotal
		if raw.Discount != nil {
			summary.TotalDiscount += *raw.Discount
		}
		if raw.Deposit != nil {
			summary.TotalDeposit += *raw.Deposit
		}
		if raw.HasTax {
			taxableAmount += lineTotal
		}
	}

	summary.TotalTax = utils.Percentage(taxableAmount, taxRate)
	summary.GrandTotal = summary.Subtotal + summary.TotalTax + summary.TotalDeposit - summary.TotalDiscount

	return summary
}
