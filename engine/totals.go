package engine

import (
	"github.com/google/uuid"

	"receiptsplit-backend/models"
)

// ComputeMemberTotals aggregates per-item shares into one MemberTotal per
// member, in the order memberIDs were given. Each member's item list carries
// their share in place of the item subtotal. Tax is the sum of the member's
// per-item tax apportionments; no flat rate is applied here. paid echoes
// externally tracked payment status and may be nil.
func ComputeMemberTotals(items []models.Item, memberIDs []uuid.UUID, paid map[uuid.UUID]bool) []models.MemberTotal {
	totals := make([]models.MemberTotal, 0, len(memberIDs))

	for _, memberID := range memberIDs {
		shares := make([]models.ItemShare, 0)
		var subtotal float64

		for _, item := range items {
			if _, ok := findAssignment(item.Assignments, memberID); !ok {
				continue
			}
			share := MemberShare(item, memberID)
			subtotal += share
			shares = append(shares, models.ItemShare{
				ItemID: item.ID,
				Name:   item.Name,
				Amount: share,
			})
		}

		tax := MemberTaxShare(items, memberID)

		totals = append(totals, models.MemberTotal{
			MemberID: memberID,
			Items:    shares,
			Subtotal: subtotal,
			Tax:      tax,
			Total:    subtotal + tax,
			IsPaid:   paid[memberID],
		})
	}

	return totals
}

// AssignedCount is the number of items with at least one assignment.
func AssignedCount(items []models.Item) int {
	count := 0
	for _, item := range items {
		if len(item.Assignments) > 0 {
			count++
		}
	}
	return count
}

// UnassignedAmount sums the effective price of items nobody has claimed yet.
func UnassignedAmount(items []models.Item) float64 {
	var sum float64
	for _, item := range items {
		if len(item.Assignments) == 0 {
			sum += EffectivePrice(item)
		}
	}
	return sum
}

// ProgressPercentage is the share of items assigned, 0-100. Empty input is 0,
// not a division error.
func ProgressPercentage(items []models.Item) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(AssignedCount(items)) / float64(len(items)) * 100
}

// Progress bundles the whole-receipt metrics into one snapshot.
func Progress(items []models.Item) models.SplitProgress {
	return models.SplitProgress{
		ItemCount:          len(items),
		AssignedCount:      AssignedCount(items),
		UnassignedAmount:   UnassignedAmount(items),
		ProgressPercentage: ProgressPercentage(items),
	}
}
