package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptsplit-backend/config"
	"receiptsplit-backend/models"
)

func TestMain(m *testing.M) {
	config.Load()
	m.Run()
}

func fptr(v float64) *float64 { return &v }

// A taxable item without an explicit tax amount gets the regional estimate on
// create and on update alike, from the effective price.
func TestEstimateItemTax(t *testing.T) {
	req := models.ItemRequest{
		Name:     "Sparkling Water",
		Price:    20.99,
		HasTax:   true,
		Discount: fptr(4.00),
		Deposit:  fptr(0.20),
	}

	got := estimateItemTax(req, "on")
	require.NotNil(t, got)
	assert.InDelta(t, 17.19*0.13, *got, 1e-9)

	got = estimateItemTax(req, "bc")
	require.NotNil(t, got)
	assert.InDelta(t, 17.19*0.12, *got, 1e-9)

	// Unknown region falls back to the configured default rate.
	got = estimateItemTax(req, "")
	require.NotNil(t, got)
	assert.InDelta(t, 17.19*config.AppConfig.DefaultTaxRate/100, *got, 1e-9)
}
