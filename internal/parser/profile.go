package parser

import "strings"

// Profile describes the issuer-specific parts of a statement layout: the
// currency marker that terminates description collection, and the boilerplate
// phrases that must never end up in a description. Injecting a Profile lets
// the same scan be retargeted to another issuer without code changes.
type Profile struct {
	// CurrencyMarker is the symbol that flags an amount line, e.g. "฿".
	CurrencyMarker string
	// SkipPrefixes lists line prefixes excluded from description collection
	// (disclaimers, cardholder name rows). Matching is case-sensitive.
	SkipPrefixes []string
	// SkipExact lists whole lines excluded from description collection
	// (card/account metadata labels). Matching is case-sensitive.
	SkipExact []string
	// ContextExcludes lists lower-cased substrings that disqualify a fragment
	// from being appended as supplementary location context.
	ContextExcludes []string
}

// DefaultProfile returns the profile for the Amex Thailand card layout.
func DefaultProfile() Profile {
	return Profile{
		CurrencyMarker: "฿",
		SkipPrefixes:   []string{"Will appear", "FOREIGN", "TOTRAKOOL"},
		SkipExact:      []string{"CARD", "ACCOUNT_ENDING", "CARD_MEMBER"},
		ContextExcludes: []string{
			"will appear", "statement", "foreign", "card", "account", "00001",
		},
	}
}

// isBoilerplate reports whether a line is statement filler that must be kept
// out of description collection. A boilerplate line is skipped, it never
// terminates collection.
func (p Profile) isBoilerplate(line string) bool {
	for _, prefix := range p.SkipPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	for _, exact := range p.SkipExact {
		if line == exact {
			return true
		}
	}
	return false
}

// excludedContext reports whether a fragment is disqualified from use as
// supplementary location context.
func (p Profile) excludedContext(fragment string) bool {
	lower := strings.ToLower(fragment)
	for _, sub := range p.ContextExcludes {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
