package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/siamledger/amex-extract/internal/models"
)

// csvRow is the consolidated CSV schema. Amounts carry two-decimal
// formatting; dates are written as-is (normalization happens upstream).
type csvRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount (THB)"`
	SourceFile  string `csv:"Source File"`
}

// CSVWriter writes transaction records as consolidated CSV.
type CSVWriter struct{}

// WriteToFile writes records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, records []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, records)
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, records []models.Transaction) error {
	rows := make([]csvRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, csvRow{
			Date:        r.Date,
			Description: r.Description,
			Amount:      r.Amount.StringFixed(2),
			SourceFile:  r.SourceFile,
		})
	}

	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
