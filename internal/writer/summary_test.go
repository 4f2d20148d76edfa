package writer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamledger/amex-extract/internal/models"
)

func TestVendorTotals(t *testing.T) {
	records := []models.Transaction{
		{Description: "STARBUCKS BANGKOK TH", Amount: decimal.RequireFromString("125.50")},
		{Description: "STARBUCKS SIAM", Amount: decimal.RequireFromString("110.00")},
		{Description: "7-ELEVEN", Amount: decimal.RequireFromString("89.00")},
		{Description: "", Amount: decimal.RequireFromString("10.00")},
	}

	totals := VendorTotals(records)
	require.Len(t, totals, 3)

	// Sorted by descending total.
	assert.Equal(t, "STARBUCKS", totals[0].Vendor)
	assert.Equal(t, 2, totals[0].Count)
	assert.True(t, totals[0].Total.Equal(decimal.RequireFromString("235.50")))

	assert.Equal(t, "7-ELEVEN", totals[1].Vendor)
	assert.Equal(t, "(unknown)", totals[2].Vendor)
}

func TestGrandTotal(t *testing.T) {
	records := sampleRecords(t)
	assert.True(t, GrandTotal(records).Equal(decimal.RequireFromString("214.50")))
	assert.True(t, GrandTotal(nil).IsZero())
}
