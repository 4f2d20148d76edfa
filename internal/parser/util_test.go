package parser

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"1,234.56", "1234.56", false},
		{"1,234,567.89", "1234567.89", false},
		{"89.00", "89", false},
		{"2050", "2050", false},
		{" 125.50 ", "125.50", false},
		{"", "", true},
		{",,", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(mustDecimal(t, tt.expected)) {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDateTokenPatterns(t *testing.T) {
	tests := []struct {
		input     string
		fullDate  bool
		bareMonth bool
		bareDay   bool
	}{
		{"Jun 15", true, false, false},
		{"Dec 1", true, false, false},
		{"Jun", false, true, false},
		{"15", false, false, true},
		{"5", false, false, true},
		{"Jun 15 2025", false, false, false},
		{"June 15", false, false, false},
		{"jun 15", false, false, false},
		{"155", false, false, false},
		{"STARBUCKS", false, false, false},
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isFullDate(tt.input); got != tt.fullDate {
				t.Errorf("isFullDate(%q): got %v, want %v", tt.input, got, tt.fullDate)
			}
			if got := isBareMonth(tt.input); got != tt.bareMonth {
				t.Errorf("isBareMonth(%q): got %v, want %v", tt.input, got, tt.bareMonth)
			}
			if got := isBareDay(tt.input); got != tt.bareDay {
				t.Errorf("isBareDay(%q): got %v, want %v", tt.input, got, tt.bareDay)
			}
		})
	}
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"12345", true},
		{"0", true},
		{"12a", false},
		{"12.5", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isDigits(tt.input); got != tt.expected {
			t.Errorf("isDigits(%q): got %v, want %v", tt.input, got, tt.expected)
		}
	}
}
