package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/siamledger/amex-extract/internal/extractor"
	"github.com/siamledger/amex-extract/internal/models"
)

const (
	sheetTransactions = "Transactions"
	sheetVendors      = "Vendor Summary"
	sheetScreenshots  = "Screenshots"

	amountNumFmt = "#,##0.00"
)

// ExcelWriter assembles the consolidated workbook: a Transactions sheet, a
// Vendor Summary sheet, and — when ScreenshotDir is set — a Screenshots sheet
// with the rendered first page of each source statement embedded.
type ExcelWriter struct {
	// ScreenshotDir holds the rendered page PNGs keyed by source file stem.
	// Empty means no Screenshots sheet.
	ScreenshotDir string
}

// WriteToFile builds the workbook and saves it at the given path.
func (w *ExcelWriter) WriteToFile(path string, records []models.Transaction) error {
	f, err := w.Build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Build assembles the workbook in memory. The caller owns the returned file
// and must Close it.
func (w *ExcelWriter) Build(records []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := w.writeTransactions(f, records); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeVendorSummary(f, records); err != nil {
		f.Close()
		return nil, err
	}
	if w.ScreenshotDir != "" {
		if err := w.writeScreenshots(f, records); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func (w *ExcelWriter) writeTransactions(f *excelize.File, records []models.Transaction) error {
	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return fmt.Errorf("failed to rename transactions sheet: %w", err)
	}

	headers := []string{"Date", "Description", "Amount (THB)", "Source File"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetTransactions, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, r := range records {
		row := i + 2
		cells := []any{r.Date, r.Description, r.Amount.InexactFloat64(), r.SourceFile}
		for col, v := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetTransactions, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if len(records) > 0 {
		if err := w.applyAmountFormat(f, sheetTransactions, "C", 2, len(records)+1); err != nil {
			return err
		}
	}

	// Column widths sized for typical merchant strings.
	f.SetColWidth(sheetTransactions, "A", "A", 12)
	f.SetColWidth(sheetTransactions, "B", "B", 40)
	f.SetColWidth(sheetTransactions, "C", "C", 15)
	f.SetColWidth(sheetTransactions, "D", "D", 35)
	return nil
}

func (w *ExcelWriter) writeVendorSummary(f *excelize.File, records []models.Transaction) error {
	if _, err := f.NewSheet(sheetVendors); err != nil {
		return fmt.Errorf("failed to create vendor summary sheet: %w", err)
	}

	headers := []string{"Vendor", "Transactions", "Total (THB)"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetVendors, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	totals := VendorTotals(records)
	for i, vt := range totals {
		row := i + 2
		cells := []any{vt.Vendor, vt.Count, vt.Total.InexactFloat64()}
		for col, v := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetVendors, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	// Grand total row, one blank row below the vendors.
	totalRow := len(totals) + 3
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(3, totalRow)
	if err := f.SetCellValue(sheetVendors, labelCell, "Total:"); err != nil {
		return fmt.Errorf("failed to write total label: %w", err)
	}
	if err := f.SetCellValue(sheetVendors, totalCell, GrandTotal(records).InexactFloat64()); err != nil {
		return fmt.Errorf("failed to write grand total: %w", err)
	}

	if err := w.applyAmountFormat(f, sheetVendors, "C", 2, totalRow); err != nil {
		return err
	}
	f.SetColWidth(sheetVendors, "A", "A", 30)
	f.SetColWidth(sheetVendors, "C", "C", 15)
	return nil
}

func (w *ExcelWriter) writeScreenshots(f *excelize.File, records []models.Transaction) error {
	if _, err := f.NewSheet(sheetScreenshots); err != nil {
		return fmt.Errorf("failed to create screenshots sheet: %w", err)
	}

	if err := f.SetCellValue(sheetScreenshots, "A1", "Source File"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellValue(sheetScreenshots, "B1", "Page 1"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	f.SetColWidth(sheetScreenshots, "A", "A", 35)
	f.SetColWidth(sheetScreenshots, "B", "B", 55)

	row := 2
	for _, source := range uniqueSourceFiles(records) {
		nameCell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheetScreenshots, nameCell, source); err != nil {
			return fmt.Errorf("failed to write source name: %w", err)
		}

		imgPath := filepath.Join(w.ScreenshotDir, extractor.ScreenshotName(source))
		if _, err := os.Stat(imgPath); err == nil {
			imgCell, _ := excelize.CoordinatesToCellName(2, row)
			if err := f.AddPicture(sheetScreenshots, imgCell, imgPath, nil); err != nil {
				return fmt.Errorf("failed to embed screenshot %q: %w", imgPath, err)
			}
			// Tall rows so the floating images don't stack on each other.
			f.SetRowHeight(sheetScreenshots, row, 320)
		}
		row++
	}
	return nil
}

func (w *ExcelWriter) applyAmountFormat(f *excelize.File, sheet, col string, firstRow, lastRow int) error {
	numFmt := amountNumFmt
	styleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	top := fmt.Sprintf("%s%d", col, firstRow)
	bottom := fmt.Sprintf("%s%d", col, lastRow)
	if err := f.SetCellStyle(sheet, top, bottom, styleID); err != nil {
		return fmt.Errorf("failed to apply amount style: %w", err)
	}
	return nil
}

func uniqueSourceFiles(records []models.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.SourceFile == "" || seen[r.SourceFile] {
			continue
		}
		seen[r.SourceFile] = true
		out = append(out, r.SourceFile)
	}
	return out
}
