package parser

import (
	"fmt"
	"strings"

	"github.com/siamledger/amex-extract/internal/models"
)

// Parser defines the interface for statement line-item parsers.
//
// Parsers are lenient by design: malformed input yields fewer records, never
// an error. True failures (unreadable PDF, no text layer) are reported by the
// extractor before a parser ever runs.
type Parser interface {
	// Parse takes raw text from PDF pages and returns the line items found,
	// in source order, with the page number stamped on each record.
	Parse(pages []string) []models.Transaction
	// FormatName returns the human-readable statement format name.
	FormatName() string
}

// New returns the appropriate parser for the given statement format.
func New(format models.StatementFormat) (Parser, error) {
	switch format {
	case models.FormatAmexTH:
		return NewAmexParser(DefaultProfile()), nil
	default:
		return nil, fmt.Errorf("unsupported statement format: %q", format)
	}
}

// AutoDetect tries to identify the statement format from the PDF text content.
func AutoDetect(pages []string) (models.StatementFormat, error) {
	combined := strings.Join(pages, "\n")

	if containsAny(combined, []string{"American Express", "AMERICAN EXPRESS", "americanexpress.com"}) {
		return models.FormatAmexTH, nil
	}
	// A Baht marker alone is a strong enough signal for the THB card layout.
	if strings.Contains(combined, "฿") {
		return models.FormatAmexTH, nil
	}

	return "", fmt.Errorf("could not auto-detect statement format from content; specify the format explicitly")
}

func containsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, needle := range needles {
		if needle != "" && strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
