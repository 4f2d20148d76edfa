package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/siamledger/amex-extract/internal/api"
	"github.com/siamledger/amex-extract/internal/config"
	"github.com/siamledger/amex-extract/internal/extractor"
	"github.com/siamledger/amex-extract/internal/logger"
	"github.com/siamledger/amex-extract/internal/models"
	"github.com/siamledger/amex-extract/internal/normalize"
	"github.com/siamledger/amex-extract/internal/parser"
	"github.com/siamledger/amex-extract/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of batch conversion")
	screenshotsFlag := flag.Bool("screenshots", true, "Render page screenshots and embed them in the workbook")
	excelFlag := flag.Bool("excel", true, "Write the consolidated .xlsx workbook")
	yearFlag := flag.Int("year", 0, "Statement year for date normalization (defaults to STATEMENT_YEAR)")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Extraction Toolkit

Extracts transaction line items from Amex PDF card statements and
consolidates them into a CSV file and an Excel workbook with
per-vendor totals and page screenshots.

Usage:
  amex-extract [flags] [statement.pdf ...]

With no arguments, every *.pdf in the statements directory
(STATEMENTS_DIR, default "invoices") is processed.

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Consolidate every statement in the invoices directory
  amex-extract

  # Convert specific files with an explicit year
  amex-extract -year=2025 jun.pdf jul.pdf

  # Run the upload API on LISTEN_ADDR (default :8080)
  amex-extract -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("amex-extract v%s\n", version)
		os.Exit(0)
	}

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if *yearFlag != 0 {
		cfg.StatementYear = *yearFlag
	}

	if *serveFlag {
		app := api.NewApp()
		log.Info().Str("addr", cfg.ListenAddr).Msg("starting HTTP API")
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	inputFiles, err := resolveInputs(flag.Args(), cfg.StatementsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("no input statements")
	}
	log.Info().Int("files", len(inputFiles)).Msg("processing statements")

	var records []models.Transaction
	failed := 0
	for _, path := range inputFiles {
		txns, err := processFile(path, log)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping statement")
			failed++
			continue
		}
		records = append(records, txns...)
	}

	normalize.Records(records, cfg.StatementYear)
	normalize.SortByDate(records)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output directory")
	}

	csvPath := filepath.Join(cfg.OutputDir, "consolidated.csv")
	csvWriter := &writer.CSVWriter{}
	if err := csvWriter.WriteToFile(csvPath, records); err != nil {
		log.Fatal().Err(err).Msg("CSV write failed")
	}
	log.Info().Str("path", csvPath).Int("records", len(records)).Msg("wrote consolidated CSV")

	screenshotDir := ""
	if *screenshotsFlag {
		screenshotDir = filepath.Join(cfg.OutputDir, "screenshot")
		renderScreenshots(inputFiles, screenshotDir, cfg.RenderDPI, log)
	}

	if *excelFlag {
		xlsxPath := filepath.Join(cfg.OutputDir, "consolidated.xlsx")
		excelWriter := &writer.ExcelWriter{ScreenshotDir: screenshotDir}
		if err := excelWriter.WriteToFile(xlsxPath, records); err != nil {
			log.Fatal().Err(err).Msg("workbook write failed")
		}
		log.Info().Str("path", xlsxPath).Msg("wrote consolidated workbook")
	}

	log.Info().
		Int("files", len(inputFiles)).
		Int("failed", failed).
		Int("records", len(records)).
		Msg("done")
}

// resolveInputs returns the explicit file arguments, or every PDF in the
// statements directory when no arguments were given.
func resolveInputs(args []string, statementsDir string) ([]string, error) {
	if len(args) > 0 {
		for _, path := range args {
			if strings.ToLower(filepath.Ext(path)) != ".pdf" {
				return nil, fmt.Errorf("expected .pdf file, got %q", path)
			}
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("input file not found: %s", path)
			}
		}
		return args, nil
	}

	matches, err := filepath.Glob(filepath.Join(statementsDir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", statementsDir)
	}
	sort.Strings(matches)
	return matches, nil
}

// processFile extracts and parses one statement, stamping file provenance
// on each record.
func processFile(path string, log zerolog.Logger) ([]models.Transaction, error) {
	pages, err := extractor.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("PDF extraction failed: %w", err)
	}

	format, err := parser.AutoDetect(pages)
	if err != nil {
		return nil, err
	}
	p, err := parser.New(format)
	if err != nil {
		return nil, err
	}

	records := p.Parse(pages)
	for i := range records {
		records[i].SourceFile = filepath.Base(path)
	}

	log.Info().
		Str("file", filepath.Base(path)).
		Int("pages", len(pages)).
		Int("records", len(records)).
		Msg("parsed statement")
	if len(records) == 0 {
		log.Warn().Str("file", filepath.Base(path)).Msg("no transactions found; the layout may not match the expected format")
	}

	return records, nil
}

func renderScreenshots(inputFiles []string, dir string, dpi int, log zerolog.Logger) {
	for _, path := range inputFiles {
		outPath := filepath.Join(dir, extractor.ScreenshotName(path))
		if err := extractor.RenderFirstPage(path, outPath, dpi); err != nil {
			// Screenshots are best effort; the workbook simply omits them.
			log.Warn().Err(err).Str("file", path).Msg("screenshot render failed")
			continue
		}
		log.Info().Str("path", outPath).Msg("rendered screenshot")
	}
}
