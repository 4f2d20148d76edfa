package writer

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/siamledger/amex-extract/internal/models"
)

// VendorTotals aggregates records per merchant, keyed by the first word of
// the description (the primary merchant name as the parser assembles it).
// Results are sorted by descending total, ties broken by vendor name.
func VendorTotals(records []models.Transaction) []models.VendorTotal {
	totals := make(map[string]*models.VendorTotal)
	for _, r := range records {
		vendor := vendorKey(r.Description)
		vt, ok := totals[vendor]
		if !ok {
			vt = &models.VendorTotal{Vendor: vendor}
			totals[vendor] = vt
		}
		vt.Count++
		vt.Total = vt.Total.Add(r.Amount)
	}

	out := make([]models.VendorTotal, 0, len(totals))
	for _, vt := range totals {
		out = append(out, *vt)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Vendor < out[j].Vendor
	})
	return out
}

// GrandTotal sums all record amounts.
func GrandTotal(records []models.Transaction) decimal.Decimal {
	var total decimal.Decimal
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

func vendorKey(description string) string {
	fields := strings.Fields(description)
	if len(fields) == 0 {
		return "(unknown)"
	}
	return fields[0]
}
