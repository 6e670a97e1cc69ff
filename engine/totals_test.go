package engine

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"receiptsplit-backend/models"
)

func TestComputeMemberTotals(t *testing.T) {
	milk := models.Item{ID: uuid.New(), Name: "Milk", Price: 10, SplitMode: models.SplitModeEqual, Assignments: assigned(alice, bob)}
	cheese := models.Item{ID: uuid.New(), Name: "Cheese", Price: 100, HasTax: true, TaxAmount: fptr(13), SplitMode: models.SplitModeEqual, Assignments: assigned(alice, bob)}
	bread := models.Item{ID: uuid.New(), Name: "Bread", Price: 4, SplitMode: models.SplitModeEqual, Assignments: assigned(bob)}
	items := []models.Item{milk, cheese, bread}

	totals := ComputeMemberTotals(items, []uuid.UUID{alice, bob, charlie}, map[uuid.UUID]bool{bob: true})

	if len(totals) != 3 {
		t.Fatalf("got %d totals, want 3", len(totals))
	}

	// Output order must match input order, not amount order.
	if totals[0].MemberID != alice || totals[1].MemberID != bob || totals[2].MemberID != charlie {
		t.Fatalf("totals out of member order: %v", totals)
	}

	aliceTotal := totals[0]
	if math.Abs(aliceTotal.Subtotal-55) > tolerance {
		t.Errorf("alice subtotal = %v, want 55", aliceTotal.Subtotal)
	}
	if math.Abs(aliceTotal.Tax-6.5) > tolerance {
		t.Errorf("alice tax = %v, want 6.5", aliceTotal.Tax)
	}
	if math.Abs(aliceTotal.Total-61.5) > tolerance {
		t.Errorf("alice total = %v, want 61.5", aliceTotal.Total)
	}
	if len(aliceTotal.Items) != 2 {
		t.Errorf("alice has %d items, want 2", len(aliceTotal.Items))
	}
	if aliceTotal.IsPaid {
		t.Error("alice should not be marked paid")
	}

	bobTotal := totals[1]
	if math.Abs(bobTotal.Subtotal-59) > tolerance {
		t.Errorf("bob subtotal = %v, want 59", bobTotal.Subtotal)
	}
	if !bobTotal.IsPaid {
		t.Error("bob paid flag not echoed")
	}

	// Item shares are substituted for item subtotals.
	for _, share := range aliceTotal.Items {
		if share.ItemID == cheese.ID && math.Abs(share.Amount-50) > tolerance {
			t.Errorf("alice cheese share = %v, want 50", share.Amount)
		}
	}

	charlieTotal := totals[2]
	if charlieTotal.Subtotal != 0 || charlieTotal.Tax != 0 || charlieTotal.Total != 0 {
		t.Errorf("unassigned member has nonzero totals: %+v", charlieTotal)
	}
	if len(charlieTotal.Items) != 0 {
		t.Errorf("unassigned member has %d items, want 0", len(charlieTotal.Items))
	}
}

func TestComputeMemberTotalsNilPaidMap(t *testing.T) {
	items := []models.Item{{ID: uuid.New(), Price: 10, SplitMode: models.SplitModeEqual, Assignments: assigned(alice)}}

	totals := ComputeMemberTotals(items, []uuid.UUID{alice}, nil)
	if totals[0].IsPaid {
		t.Error("IsPaid must default to false")
	}
}

func TestAssignedCountAndUnassignedAmount(t *testing.T) {
	items := []models.Item{
		{Price: 5, SplitMode: models.SplitModeEqual, Assignments: assigned(alice)},
		{Price: 8, SplitMode: models.SplitModeEqual},
	}

	if got := AssignedCount(items); got != 1 {
		t.Errorf("AssignedCount() = %d, want 1", got)
	}
	if got := UnassignedAmount(items); math.Abs(got-8) > tolerance {
		t.Errorf("UnassignedAmount() = %v, want 8", got)
	}

	// Unassigned amount uses effective price, not raw price.
	items[1].Discount = fptr(2)
	if got := UnassignedAmount(items); math.Abs(got-6) > tolerance {
		t.Errorf("UnassignedAmount() with discount = %v, want 6", got)
	}
}

func TestProgressPercentage(t *testing.T) {
	if got := ProgressPercentage(nil); got != 0 {
		t.Errorf("ProgressPercentage(nil) = %v, want 0", got)
	}

	items := []models.Item{
		{Price: 5, SplitMode: models.SplitModeEqual, Assignments: assigned(alice)},
		{Price: 8, SplitMode: models.SplitModeEqual},
	}
	if got := ProgressPercentage(items); math.Abs(got-50) > tolerance {
		t.Errorf("ProgressPercentage() = %v, want 50", got)
	}

	items[1].Assignments = assigned(bob)
	if got := ProgressPercentage(items); math.Abs(got-100) > tolerance {
		t.Errorf("ProgressPercentage() all assigned = %v, want 100", got)
	}
}

func TestProgressSnapshot(t *testing.T) {
	items := []models.Item{
		{Price: 5, SplitMode: models.SplitModeEqual, Assignments: assigned(alice)},
		{Price: 8, SplitMode: models.SplitModeEqual},
	}

	progress := Progress(items)
	if progress.ItemCount != 2 || progress.AssignedCount != 1 {
		t.Errorf("Progress() counts = %+v", progress)
	}
	if math.Abs(progress.UnassignedAmount-8) > tolerance {
		t.Errorf("Progress().UnassignedAmount = %v, want 8", progress.UnassignedAmount)
	}
	if math.Abs(progress.ProgressPercentage-50) > tolerance {
		t.Errorf("Progress().ProgressPercentage = %v, want 50", progress.ProgressPercentage)
	}
}

func TestSplitEvenlyMatchesPerItemAssignment(t *testing.T) {
	members := []uuid.UUID{alice, bob, charlie}

	bulk := []models.Item{
		{ID: uuid.New(), Name: "Milk", Price: 4.99, HasTax: true, TaxAmount: fptr(0.35), SplitMode: models.SplitModeRatio},
		{ID: uuid.New(), Name: "Bread", Price: 3.49, SplitMode: models.SplitModeEqual},
		{ID: uuid.New(), Name: "Eggs", Price: 5.99, Discount: fptr(0.5), SplitMode: models.SplitModeQuantity},
	}
	oneByOne := make([]models.Item, len(bulk))
	copy(oneByOne, bulk)

	SplitEvenly(bulk, members)

	for i := range oneByOne {
		oneByOne[i].SplitMode = models.SplitModeEqual
		oneByOne[i].Assignments = nil
		for _, m := range members {
			Assign(&oneByOne[i], models.Assignment{ItemID: oneByOne[i].ID, MemberID: m})
		}
	}

	bulkTotals := ComputeMemberTotals(bulk, members, nil)
	manualTotals := ComputeMemberTotals(oneByOne, members, nil)

	for i := range bulkTotals {
		if math.Abs(bulkTotals[i].Total-manualTotals[i].Total) > tolerance {
			t.Errorf("member %d: bulk total %v != manual total %v", i, bulkTotals[i].Total, manualTotals[i].Total)
		}
	}

	if got := ProgressPercentage(bulk); math.Abs(got-100) > tolerance {
		t.Errorf("ProgressPercentage() after SplitEvenly = %v, want 100", got)
	}
}
