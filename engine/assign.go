package engine

import (
	"github.com/google/uuid"

	"receiptsplit-backend/models"
)

// Assign adds a member's claim to an item. A member already assigned is a
// no-op, not an error; the existing assignment is left untouched and false is
// returned.
func Assign(item *models.Item, assignment models.Assignment) bool {
	if _, ok := findAssignment(item.Assignments, assignment.MemberID); ok {
		return false
	}
	item.Assignments = append(item.Assignments, assignment)
	return true
}

// Unassign removes a member's claim from an item. Returns false if the member
// was not assigned.
func Unassign(item *models.Item, memberID uuid.UUID) bool {
	for i, a := range item.Assignments {
		if a.MemberID == memberID {
			item.Assignments = append(item.Assignments[:i], item.Assignments[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle assigns the member if absent, unassigns if present. Returns true if
// the member is assigned after the call.
func Toggle(item *models.Item, memberID uuid.UUID) bool {
	if Unassign(item, memberID) {
		return false
	}
	Assign(item, models.Assignment{ItemID: item.ID, MemberID: memberID})
	return true
}

// SetSplitMode changes how the item is divided. The assigned member list is
// preserved; the mode-specific weights are cleared so a stale ratio or
// quantity from the previous mode can never leak into the new arithmetic.
func SetSplitMode(item *models.Item, mode string) {
	if item.SplitMode == mode {
		return
	}
	item.SplitMode = mode
	for i := range item.Assignments {
		item.Assignments[i].Ratio = nil
		item.Assignments[i].Quantity = nil
	}
}

// SplitEvenly assigns every member to every item in equal mode. Totals after
// this are identical to assigning each member to each item one at a time.
func SplitEvenly(items []models.Item, memberIDs []uuid.UUID) {
	for i := range items {
		items[i].SplitMode = models.SplitModeEqual
		items[i].Assignments = make([]models.Assignment, 0, len(memberIDs))
		for _, memberID := range memberIDs {
			items[i].Assignments = append(items[i].Assignments, models.Assignment{
				ItemID:   items[i].ID,
				MemberID: memberID,
			})
		}
	}
}
