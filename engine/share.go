// Package engine computes per-member allocations for a receipt split. All
// functions are pure over in-memory items and fail closed: any missing
// assignment, unknown mode, or zero denominator yields a zero share rather
// than an error.
package engine

import (
	"github.com/google/uuid"

	"receiptsplit-backend/models"
)

// EffectivePrice is the amount actually divided among members:
// price - discount + deposit. Every downstream calculation uses this, never
// the raw price.
func EffectivePrice(item models.Item) float64 {
	price := item.Price
	if item.Discount != nil {
		price -= *item.Discount
	}
	if item.Deposit != nil {
		price += *item.Deposit
	}
	return price
}

// MemberShare computes one member's monetary share of one item according to
// the item's split mode.
//
//   - equal: effectivePrice / number of assignments
//   - ratio: effectivePrice * memberRatio / sum of all ratios
//   - quantity: effectivePrice * memberQuantity / sum of assigned quantities
//
// Ratios are relative weights, not normalized. The quantity denominator is
// the sum of assignment quantities, which may differ from the item's declared
// quantity; the declared quantity acts only as an existence guard.
func MemberShare(item models.Item, memberID uuid.UUID) float64 {
	if len(item.Assignments) == 0 {
		return 0
	}

	assignment, ok := findAssignment(item.Assignments, memberID)
	if !ok {
		return 0
	}

	effectivePrice := EffectivePrice(item)
	if effectivePrice <= 0 {
		return 0
	}

	switch item.SplitMode {
	case models.SplitModeEqual:
		return effectivePrice / float64(len(item.Assignments))

	case models.SplitModeRatio:
		if assignment.Ratio == nil {
			return 0
		}
		var totalRatio float64
		for _, a := range item.Assignments {
			if a.Ratio != nil {
				totalRatio += *a.Ratio
			}
		}
		if totalRatio <= 0 {
			return 0
		}
		return effectivePrice * *assignment.Ratio / totalRatio

	case models.SplitModeQuantity:
		if assignment.Quantity == nil || item.Quantity <= 0 {
			return 0
		}
		var totalQuantity int
		for _, a := range item.Assignments {
			if a.Quantity != nil {
				totalQuantity += *a.Quantity
			}
		}
		if totalQuantity <= 0 {
			return 0
		}
		return effectivePrice * float64(*assignment.Quantity) / float64(totalQuantity)

	default:
		return 0
	}
}

// MemberTaxShare apportions each taxable item's fixed tax amount across its
// assignees in proportion to their share of the item, and sums the member's
// portions. It distributes the tax already attached to the item; it does not
// recompute tax as a rate on the member's subtotal.
func MemberTaxShare(items []models.Item, memberID uuid.UUID) float64 {
	var total float64
	for _, item := range items {
		if !item.HasTax || item.TaxAmount == nil || len(item.Assignments) == 0 {
			continue
		}
		if _, ok := findAssignment(item.Assignments, memberID); !ok {
			continue
		}

		effectivePrice := EffectivePrice(item)
		if effectivePrice == 0 {
			continue
		}

		share := MemberShare(item, memberID)
		total += share / effectivePrice * *item.TaxAmount
	}
	return total
}

func findAssignment(assignments []models.Assignment, memberID uuid.UUID) (models.Assignment, bool) {
	for _, a := range assignments {
		if a.MemberID == memberID {
			return a, true
		}
	}
	return models.Assignment{}, false
}
