package models

import "github.com/google/uuid"

// ItemShare is one item as seen from a single member's perspective: the
// item's subtotal is replaced by that member's share of it.
type ItemShare struct {
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
}

// MemberTotal is one member's computed share of a whole split. Derived, never
// stored; recomputed from items on demand.
type MemberTotal struct {
	MemberID uuid.UUID   `json:"member_id"`
	Items    []ItemShare `json:"items"`
	Subtotal float64     `json:"subtotal"`
	Tax      float64     `json:"tax"`
	Total    float64     `json:"total"`
	IsPaid   bool        `json:"is_paid"`
}

// SplitProgress reports how much of a split has been assigned.
type SplitProgress struct {
	ItemCount          int     `json:"item_count"`
	AssignedCount      int     `json:"assigned_count"`
	UnassignedAmount   float64 `json:"unassigned_amount"`
	ProgressPercentage float64 `json:"progress_percentage"`
}
