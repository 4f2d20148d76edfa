package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamledger/amex-extract/internal/models"
)

func sampleRecords(t *testing.T) []models.Transaction {
	t.Helper()
	return []models.Transaction{
		{
			Date:        "2025-06-15",
			Description: "STARBUCKS BANGKOK TH",
			Amount:      decimal.RequireFromString("125.50"),
			SourceFile:  "jun-2025.pdf",
		},
		{
			Date:        "2025-06-16",
			Description: "7-ELEVEN",
			Amount:      decimal.RequireFromString("89"),
			SourceFile:  "jun-2025.pdf",
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, sampleRecords(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Date,Description,Amount (THB),Source File", lines[0])
	assert.Equal(t, "2025-06-15,STARBUCKS BANGKOK TH,125.50,jun-2025.pdf", lines[1])
	// Two-decimal formatting is the writer's job, even for whole amounts.
	assert.Equal(t, "2025-06-16,7-ELEVEN,89.00,jun-2025.pdf", lines[2])
}

func TestCSVWriter_WriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, nil))

	// Header row only.
	assert.Equal(t, "Date,Description,Amount (THB),Source File", strings.TrimSpace(buf.String()))
}

func TestCSVWriter_QuotesCommas(t *testing.T) {
	records := []models.Transaction{
		{
			Date:        "2025-06-20",
			Description: "AIRASIA BANGKOK, TH",
			Amount:      decimal.RequireFromString("2050"),
			SourceFile:  "jun-2025.pdf",
		},
	}

	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, records))

	assert.Contains(t, buf.String(), `"AIRASIA BANGKOK, TH"`)
}
