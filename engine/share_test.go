package engine

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"receiptsplit-backend/models"
)

const tolerance = 1e-9

var (
	alice   = uuid.New()
	bob     = uuid.New()
	charlie = uuid.New()
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func assigned(members ...uuid.UUID) []models.Assignment {
	assignments := make([]models.Assignment, len(members))
	for i, m := range members {
		assignments[i] = models.Assignment{MemberID: m}
	}
	return assignments
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name string
		item models.Item
		want float64
	}{
		{
			name: "raw price only",
			item: models.Item{Price: 10},
			want: 10,
		},
		{
			name: "discount subtracted and deposit added",
			item: models.Item{Price: 20.99, Discount: fptr(4), Deposit: fptr(0.2)},
			want: 17.19,
		},
		{
			name: "discount exceeding price goes negative",
			item: models.Item{Price: 5, Discount: fptr(8)},
			want: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectivePrice(tt.item); math.Abs(got-tt.want) > tolerance {
				t.Errorf("EffectivePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemberShare(t *testing.T) {
	tests := []struct {
		name   string
		item   models.Item
		member uuid.UUID
		want   float64
	}{
		{
			name:   "equal mode two members",
			item:   models.Item{Price: 10, SplitMode: models.SplitModeEqual, Assignments: assigned(alice, bob)},
			member: alice,
			want:   5,
		},
		{
			name:   "equal mode uses effective price",
			item:   models.Item{Price: 20.99, Discount: fptr(4), Deposit: fptr(0.2), SplitMode: models.SplitModeEqual, Assignments: assigned(alice)},
			member: alice,
			want:   17.19,
		},
		{
			name:   "no assignments",
			item:   models.Item{Price: 10, SplitMode: models.SplitModeEqual},
			member: alice,
			want:   0,
		},
		{
			name:   "member not assigned",
			item:   models.Item{Price: 10, SplitMode: models.SplitModeEqual, Assignments: assigned(bob)},
			member: alice,
			want:   0,
		},
		{
			name: "ratio mode normalizes weights",
			item: models.Item{Price: 30, SplitMode: models.SplitModeRatio, Assignments: []models.Assignment{
				{MemberID: alice, Ratio: fptr(1)},
				{MemberID: bob, Ratio: fptr(2)},
			}},
			member: bob,
			want:   20,
		},
		{
			name: "ratio mode missing member ratio",
			item: models.Item{Price: 30, SplitMode: models.SplitModeRatio, Assignments: []models.Assignment{
				{MemberID: alice},
				{MemberID: bob, Ratio: fptr(2)},
			}},
			member: alice,
			want:   0,
		},
		{
			name: "ratio mode zero ratio sum",
			item: models.Item{Price: 30, SplitMode: models.SplitModeRatio, Assignments: []models.Assignment{
				{MemberID: alice, Ratio: fptr(0)},
				{MemberID: bob, Ratio: fptr(0)},
			}},
			member: alice,
			want:   0,
		},
		{
			name: "quantity mode divides by assigned quantities",
			item: models.Item{Price: 9, Quantity: 3, SplitMode: models.SplitModeQuantity, Assignments: []models.Assignment{
				{MemberID: alice, Quantity: iptr(1)},
				{MemberID: bob, Quantity: iptr(2)},
			}},
			member: alice,
			want:   3,
		},
		{
			name: "quantity mode second member",
			item: models.Item{Price: 9, Quantity: 3, SplitMode: models.SplitModeQuantity, Assignments: []models.Assignment{
				{MemberID: alice, Quantity: iptr(1)},
				{MemberID: bob, Quantity: iptr(2)},
			}},
			member: bob,
			want:   6,
		},
		{
			name: "quantity mode missing item quantity",
			item: models.Item{Price: 9, SplitMode: models.SplitModeQuantity, Assignments: []models.Assignment{
				{MemberID: alice, Quantity: iptr(1)},
			}},
			member: alice,
			want:   0,
		},
		{
			name: "quantity mode missing member quantity",
			item: models.Item{Price: 9, Quantity: 3, SplitMode: models.SplitModeQuantity, Assignments: []models.Assignment{
				{MemberID: alice},
				{MemberID: bob, Quantity: iptr(2)},
			}},
			member: alice,
			want:   0,
		},
		{
			name: "overclaimed quantities still divide by assignment sum",
			item: models.Item{Price: 10, Quantity: 2, SplitMode: models.SplitModeQuantity, Assignments: []models.Assignment{
				{MemberID: alice, Quantity: iptr(3)},
				{MemberID: bob, Quantity: iptr(2)},
			}},
			member: alice,
			want:   6,
		},
		{
			name:   "unknown split mode",
			item:   models.Item{Price: 10, SplitMode: "percentage", Assignments: assigned(alice)},
			member: alice,
			want:   0,
		},
		{
			name:   "zero effective price",
			item:   models.Item{Price: 5, Discount: fptr(5), SplitMode: models.SplitModeEqual, Assignments: assigned(alice, bob)},
			member: alice,
			want:   0,
		},
		{
			name:   "negative effective price",
			item:   models.Item{Price: 5, Discount: fptr(8), SplitMode: models.SplitModeEqual, Assignments: assigned(alice)},
			member: alice,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemberShare(tt.item, tt.member); math.Abs(got-tt.want) > tolerance {
				t.Errorf("MemberShare() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemberShareConservation(t *testing.T) {
	items := []models.Item{
		{Price: 10, SplitMode: models.SplitModeEqual, Assignments: assigned(alice, bob, charlie)},
		{Price: 33.33, Discount: fptr(1.5), SplitMode: models.SplitModeEqual, Assignments: assigned(alice, bob)},
		{Price: 30, SplitMode: models.SplitModeRatio, Assignments: []models.Assignment{
			{MemberID: alice, Ratio: fptr(0.5)},
			{MemberID: bob, Ratio: fptr(1.5)},
			{MemberID: charlie, Ratio: fptr(3)},
		}},
		{Price: 9, Quantity: 3, SplitMode: models.SplitModeQuantity, Assignments: []models.Assignment{
			{MemberID: alice, Quantity: iptr(1)},
			{MemberID: bob, Quantity: iptr(2)},
		}},
	}

	for i, item := range items {
		var sum float64
		for _, member := range []uuid.UUID{alice, bob, charlie} {
			sum += MemberShare(item, member)
		}
		if want := EffectivePrice(item); math.Abs(sum-want) > 1e-6 {
			t.Errorf("item %d: shares sum to %v, want effective price %v", i, sum, want)
		}
	}
}

func TestMemberTaxShare(t *testing.T) {
	t.Run("apportions tax by fractional claim", func(t *testing.T) {
		items := []models.Item{
			{Price: 100, HasTax: true, TaxAmount: fptr(13), SplitMode: models.SplitModeEqual, Assignments: assigned(alice, bob)},
		}

		for _, member := range []uuid.UUID{alice, bob} {
			if got := MemberTaxShare(items, member); math.Abs(got-6.5) > tolerance {
				t.Errorf("MemberTaxShare(%v) = %v, want 6.5", member, got)
			}
		}
	})

	t.Run("unequal shares get unequal tax", func(t *testing.T) {
		items := []models.Item{
			{Price: 30, HasTax: true, TaxAmount: fptr(3), SplitMode: models.SplitModeRatio, Assignments: []models.Assignment{
				{MemberID: alice, Ratio: fptr(1)},
				{MemberID: bob, Ratio: fptr(2)},
			}},
		}

		if got := MemberTaxShare(items, alice); math.Abs(got-1) > tolerance {
			t.Errorf("alice tax = %v, want 1", got)
		}
		if got := MemberTaxShare(items, bob); math.Abs(got-2) > tolerance {
			t.Errorf("bob tax = %v, want 2", got)
		}
	})

	t.Run("skips non-taxable and unassigned items", func(t *testing.T) {
		items := []models.Item{
			{Price: 10, SplitMode: models.SplitModeEqual, Assignments: assigned(alice)},
			{Price: 10, HasTax: true, SplitMode: models.SplitModeEqual, Assignments: assigned(alice)}, // no tax amount
			{Price: 10, HasTax: true, TaxAmount: fptr(1.3), SplitMode: models.SplitModeEqual},         // no assignments
		}

		if got := MemberTaxShare(items, alice); got != 0 {
			t.Errorf("MemberTaxShare() = %v, want 0", got)
		}
	})

	t.Run("zero effective price contributes nothing", func(t *testing.T) {
		items := []models.Item{
			{Price: 5, Discount: fptr(5), HasTax: true, TaxAmount: fptr(0.65), SplitMode: models.SplitModeEqual, Assignments: assigned(alice)},
			{Price: 100, HasTax: true, TaxAmount: fptr(13), SplitMode: models.SplitModeEqual, Assignments: assigned(alice)},
		}

		if got := MemberTaxShare(items, alice); math.Abs(got-13) > tolerance {
			t.Errorf("MemberTaxShare() = %v, want 13", got)
		}
	})
}
