package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptsplit-backend/config"
	"receiptsplit-backend/models"
)

func fptr(v float64) *float64 { return &v }

func TestMain(m *testing.M) {
	config.Load()
	m.Run()
}

func TestConvertReceiptItemDefaults(t *testing.T) {
	item := ConvertReceiptItem(models.ReceiptItemInput{Name: "Bread", Price: 3.49}, 13)

	assert.NotEqual(t, "", item.ID.String())
	assert.Equal(t, "Bread", item.Name)
	assert.Equal(t, 1, item.Quantity, "missing quantity defaults to 1")
	assert.Equal(t, models.SplitModeEqual, item.SplitMode)
	assert.NotNil(t, item.Assignments)
	assert.Len(t, item.Assignments, 0)
	assert.False(t, item.HasTax)
	assert.Nil(t, item.TaxAmount, "no tax estimate for non-taxable items")
}

func TestConvertReceiptItemEstimatesTax(t *testing.T) {
	item := ConvertReceiptItem(models.ReceiptItemInput{
		Name:     "Cheese",
		Price:    20.99,
		HasTax:   true,
		Discount: fptr(4),
		Deposit:  fptr(0.2),
	}, 13)

	require.NotNil(t, item.TaxAmount)
	// Estimate applies to the effective price (20.99 - 4 + 0.2 = 17.19).
	assert.InDelta(t, 2.2347, *item.TaxAmount, 1e-9)
	assert.Equal(t, 20.99, item.Price, "raw price preserved alongside discount/deposit")
}

func TestConvertReceiptItemsFreshIDs(t *testing.T) {
	raws := []models.ReceiptItemInput{
		{Name: "Milk", Price: 4.99, Quantity: 2},
		{Name: "Eggs", Price: 5.99},
	}

	items := ConvertReceiptItems(raws, 13)
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestSummarizeReceiptItems(t *testing.T) {
	raws := []models.ReceiptItemInput{
		{Name: "Milk", Price: 4.99, Quantity: 2, HasTax: true},
		{Name: "Bread", Price: 3.49},
		{Name: "Pop", Price: 2, HasTax: true, Deposit: fptr(0.2)},
		{Name: "Chips", Price: 4, Discount: fptr(1)},
	}

	summary := SummarizeReceiptItems(raws, 13)

	assert.InDelta(t, 19.47, summary.Subtotal, 1e-9)        // 9.98 + 3.49 + 2 + 4
	assert.InDelta(t, 1.5574, summary.TotalTax, 1e-9)       // 13% of 11.98
	assert.InDelta(t, 1, summary.TotalDiscount, 1e-9)
	assert.InDelta(t, 0.2, summary.TotalDeposit, 1e-9)
	assert.InDelta(t, 20.2274, summary.GrandTotal, 1e-9)
}

func TestSummarizeReceiptItemsEmpty(t *testing.T) {
	summary := SummarizeReceiptItems(nil, 13)
	assert.Equal(t, models.ReceiptSummary{}, summary)
}

func TestResolveTaxRate(t *testing.T) {
	assert.Equal(t, 13.0, ResolveTaxRate("on"))
	assert.Equal(t, 12.0, ResolveTaxRate("bc")) // 5 GST + 7 PST
	assert.Equal(t, config.AppConfig.DefaultTaxRate, ResolveTaxRate(""))
	assert.Equal(t, config.AppConfig.DefaultTaxRate, ResolveTaxRate("zz"))
}
