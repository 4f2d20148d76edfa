package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/siamledger/amex-extract/internal/models"
)

// AmexParser extracts transaction line items from the text of Amex card
// statement pages.
//
// The extracted text stream is noisy: dates can wrap across two lines, the
// currency marker can land on its own line with the amount on the next, and
// legal boilerplate is interleaved with merchant text. The parser runs a
// single forward scan with two states: scanning for a date token, then
// collecting description fragments until the currency marker resolves an
// amount. A date with no resolvable amount is dropped silently.
type AmexParser struct {
	profile Profile
	// amountPattern matches the marker followed by a numeric amount,
	// e.g. "฿ 1,234.56" or "฿125.50".
	amountPattern *regexp.Regexp
}

// NewAmexParser returns a parser using the given layout profile.
func NewAmexParser(profile Profile) *AmexParser {
	return &AmexParser{
		profile:       profile,
		amountPattern: regexp.MustCompile(regexp.QuoteMeta(profile.CurrencyMarker) + `\s*([\d,]+\.?\d*)`),
	}
}

func (p *AmexParser) FormatName() string {
	return "American Express (TH)"
}

// Parse splits each page into lines, scans them, and stamps the 1-based page
// number on every record. Record order follows source order.
func (p *AmexParser) Parse(pages []string) []models.Transaction {
	var records []models.Transaction
	for pageNum, page := range pages {
		txns := p.ParsePage(strings.Split(page, "\n"))
		for i := range txns {
			txns[i].Page = pageNum + 1
		}
		records = append(records, txns...)
	}
	return records
}

// ParsePage scans the text lines of a single page and returns the line items
// found, in source order. It is a pure function: same input, same output, no
// errors raised for malformed input.
func (p *AmexParser) ParsePage(lines []string) []models.Transaction {
	var records []models.Transaction

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		var date string
		switch {
		case isFullDate(line):
			date = line
			i++
		case isBareMonth(line):
			// Split date token: day wrapped onto the next line.
			if i+1 < len(lines) && isBareDay(strings.TrimSpace(lines[i+1])) {
				date = line + " " + strings.TrimSpace(lines[i+1])
				i += 2
			} else {
				// Month name with no day following is not a date context.
				i++
				continue
			}
		default:
			i++
			continue
		}

		// Got a date: collect description fragments until the currency
		// marker terminates collection.
		var fragments []string
		amount, next, ok := p.collectEntry(lines, i, &fragments)
		i = next
		if !ok {
			continue
		}

		records = append(records, models.Transaction{
			Date:        date,
			Description: p.assembleDescription(fragments),
			Amount:      amount,
		})
	}

	return records
}

// collectEntry consumes lines starting at cursor until the currency marker is
// found and an amount resolves. It returns the amount, the cursor position
// where the outer scan should resume, and whether an amount was resolved.
func (p *AmexParser) collectEntry(lines []string, cursor int, fragments *[]string) (decimal.Decimal, int, bool) {
	for cursor < len(lines) {
		line := strings.TrimSpace(lines[cursor])

		if strings.Contains(line, p.profile.CurrencyMarker) {
			// Amount on the marker line itself.
			if m := p.amountPattern.FindStringSubmatch(line); m != nil {
				if amt, err := parseAmount(m[1]); err == nil {
					return amt, cursor + 1, true
				}
				return decimal.Decimal{}, cursor + 1, false
			}
			// Marker alone: the amount may sit on the next line.
			if line == p.profile.CurrencyMarker && cursor+1 < len(lines) {
				next := strings.TrimSpace(lines[cursor+1])
				if bareNumberPattern.MatchString(next) {
					if amt, err := parseAmount(next); err == nil {
						return amt, cursor + 2, true
					}
					return decimal.Decimal{}, cursor + 2, false
				}
			}
			// Marker found but no amount resolvable: drop the entry.
			return decimal.Decimal{}, cursor + 1, false
		}

		if line != "" && !p.profile.isBoilerplate(line) {
			*fragments = append(*fragments, line)
		}
		cursor++
	}

	// Input exhausted before any marker: no partial record.
	return decimal.Decimal{}, cursor, false
}

// assembleDescription builds the merchant text: the first fragment is the
// primary name, and the first later fragment that is non-numeric, longer than
// two characters, and not excluded context is appended once. Remaining
// fragments are discarded.
func (p *AmexParser) assembleDescription(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	desc := fragments[0]
	for _, frag := range fragments[1:] {
		if frag == "" || isDigits(frag) || len([]rune(frag)) <= 2 {
			continue
		}
		if p.profile.excludedContext(frag) {
			continue
		}
		desc += " " + frag
		break
	}
	return desc
}
