// Package normalize turns raw parser output into the consolidated record
// set: statement dates carry no year at parse time, so the year is injected
// here, and records are sorted for the final CSV/workbook.
package normalize

import (
	"fmt"
	"sort"
	"time"

	"github.com/siamledger/amex-extract/internal/models"
)

// Date converts a raw date token like "Jun 15" into "2025-06-15" using the
// given year. Tokens that don't parse pass through unchanged — the lenient
// policy of the parser carries over here.
func Date(raw string, year int) string {
	t, err := time.Parse("Jan 2 2006", fmt.Sprintf("%s %d", raw, year))
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

// Records normalizes the date of every record in place.
func Records(records []models.Transaction, year int) {
	for i := range records {
		records[i].Date = Date(records[i].Date, year)
	}
}

// SortByDate orders records by their (normalized) date string, keeping the
// source order of records that share a date.
func SortByDate(records []models.Transaction) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
}
