package parser

import (
	"testing"

	"github.com/siamledger/amex-extract/internal/models"
)

func TestAutoDetect(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected models.StatementFormat
		wantErr  bool
	}{
		{
			name:     "detects Amex by issuer name",
			pages:    []string{"American Express\nStatement of Account\nJun 15"},
			expected: models.FormatAmexTH,
		},
		{
			name:     "detects Amex by currency marker",
			pages:    []string{"Jun 15\nSTARBUCKS\n฿125.50"},
			expected: models.FormatAmexTH,
		},
		{
			name:    "unknown format returns error",
			pages:   []string{"Some Other Issuer\nStatement"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AutoDetect(tt.pages)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format   models.StatementFormat
		wantName string
		wantErr  bool
	}{
		{models.FormatAmexTH, "American Express (TH)", false},
		{"unknown", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			p, err := New(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.FormatName() != tt.wantName {
				t.Errorf("got %q, want %q", p.FormatName(), tt.wantName)
			}
		})
	}
}
