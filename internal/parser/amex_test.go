package parser

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestAmexParser_ParsePage(t *testing.T) {
	type want struct {
		date        string
		description string
		amount      string
	}

	tests := []struct {
		name  string
		lines []string
		want  []want
	}{
		{
			name:  "single line date with merchant and location",
			lines: []string{"Jun 15", "STARBUCKS", "BANGKOK TH", "฿125.50"},
			want:  []want{{"Jun 15", "STARBUCKS BANGKOK TH", "125.50"}},
		},
		{
			name:  "split date and marker alone with amount on next line",
			lines: []string{"Jun", "16", "7-ELEVEN", "฿", "89.00"},
			want:  []want{{"Jun 16", "7-ELEVEN", "89.00"}},
		},
		{
			name:  "boilerplate only description emits empty description",
			lines: []string{"Jun 17", "Will appear on your next statement", "฿50.00"},
			want:  []want{{"Jun 17", "", "50.00"}},
		},
		{
			name:  "date with no amount is dropped",
			lines: []string{"Jun 18", "SHOP X"},
			want:  nil,
		},
		{
			name:  "no date token yields nothing",
			lines: []string{"Random note", "Another line"},
			want:  nil,
		},
		{
			name:  "amount with thousands separator",
			lines: []string{"Jul 1", "CENTRAL DEPARTMENT", "฿1,234.56"},
			want:  []want{{"Jul 1", "CENTRAL DEPARTMENT", "1234.56"}},
		},
		{
			name:  "amount attached to marker without space",
			lines: []string{"Jul 2", "GRAB", "฿45.00"},
			want:  []want{{"Jul 2", "GRAB", "45.00"}},
		},
		{
			name: "scan resumes after consumed amount line",
			lines: []string{
				"Jun 15", "STARBUCKS", "฿125.50",
				"Jun 16", "7-ELEVEN", "฿", "89.00",
				"Jun 17", "GRAB", "฿45.00",
			},
			want: []want{
				{"Jun 15", "STARBUCKS", "125.50"},
				{"Jun 16", "7-ELEVEN", "89.00"},
				{"Jun 17", "GRAB", "45.00"},
			},
		},
		{
			name: "unresolvable marker drops entry and scanning continues",
			lines: []string{
				"Jun 15", "STARBUCKS", "฿",
				"Jun 16", "7-ELEVEN", "฿89.00",
			},
			want: []want{{"Jun 16", "7-ELEVEN", "89.00"}},
		},
		{
			name:  "month not followed by day is not a date",
			lines: []string{"Jun", "STARBUCKS", "฿125.50"},
			want:  nil,
		},
		{
			name:  "month at end of input is not a date",
			lines: []string{"some text", "Jun"},
			want:  nil,
		},
		{
			name: "only first qualifying fragment appended",
			lines: []string{
				"Jun 20", "AIRASIA", "DON MUEANG", "TERMINAL 1", "฿2,050.00",
			},
			want: []want{{"Jun 20", "AIRASIA DON MUEANG", "2050.00"}},
		},
		{
			name: "numeric and short fragments skipped for context",
			lines: []string{
				"Jun 21", "BTS", "12345", "TH", "SIAM STATION", "฿44.00",
			},
			want: []want{{"Jun 21", "BTS SIAM STATION", "44.00"}},
		},
		{
			name: "metadata labels never join the description",
			lines: []string{
				"Jun 22", "CARD", "LAZADA", "ACCOUNT_ENDING", "BANGKOK TH", "฿310.00",
			},
			want: []want{{"Jun 22", "LAZADA BANGKOK TH", "310.00"}},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  nil,
		},
		{
			name:  "whitespace padded lines",
			lines: []string{"  Jun 15  ", "  STARBUCKS  ", "", "  ฿125.50  "},
			want:  []want{{"Jun 15", "STARBUCKS", "125.50"}},
		},
	}

	p := NewAmexParser(DefaultProfile())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParsePage(tt.lines)
			if len(got) != len(tt.want) {
				t.Fatalf("records: got %d, want %d (%+v)", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if got[i].Date != w.date {
					t.Errorf("record[%d].Date: got %q, want %q", i, got[i].Date, w.date)
				}
				if got[i].Description != w.description {
					t.Errorf("record[%d].Description: got %q, want %q", i, got[i].Description, w.description)
				}
				if !got[i].Amount.Equal(mustDecimal(t, w.amount)) {
					t.Errorf("record[%d].Amount: got %s, want %s", i, got[i].Amount, w.amount)
				}
			}
		})
	}
}

func TestAmexParser_SplitDateNormalizesLikeSingleLine(t *testing.T) {
	p := NewAmexParser(DefaultProfile())

	single := p.ParsePage([]string{"Jun 16", "7-ELEVEN", "฿89.00"})
	split := p.ParsePage([]string{"Jun", "16", "7-ELEVEN", "฿89.00"})

	if len(single) != 1 || len(split) != 1 {
		t.Fatalf("expected one record each, got %d and %d", len(single), len(split))
	}
	if single[0].Date != split[0].Date {
		t.Errorf("dates differ: %q vs %q", single[0].Date, split[0].Date)
	}
}

func TestAmexParser_Idempotent(t *testing.T) {
	p := NewAmexParser(DefaultProfile())
	lines := []string{
		"Jun 15", "STARBUCKS", "BANGKOK TH", "฿125.50",
		"Jun", "16", "7-ELEVEN", "฿", "89.00",
	}

	first := p.ParsePage(lines)
	second := p.ParsePage(lines)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parse is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAmexParser_ParseStampsPageNumbers(t *testing.T) {
	p := NewAmexParser(DefaultProfile())
	pages := []string{
		"Jun 15\nSTARBUCKS\n฿125.50",
		"Jun 16\n7-ELEVEN\n฿89.00",
	}

	records := p.Parse(pages)
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
	if records[0].Page != 1 {
		t.Errorf("record[0].Page: got %d, want 1", records[0].Page)
	}
	if records[1].Page != 2 {
		t.Errorf("record[1].Page: got %d, want 2", records[1].Page)
	}
}

func TestAmexParser_CustomProfile(t *testing.T) {
	profile := Profile{
		CurrencyMarker:  "€",
		SkipPrefixes:    []string{"Exchange rate"},
		ContextExcludes: []string{"statement"},
	}
	p := NewAmexParser(profile)

	records := p.ParsePage([]string{
		"Aug 3", "BACKHAUS", "Exchange rate applied", "BERLIN DE", "€12.40",
	})
	if len(records) != 1 {
		t.Fatalf("records: got %d, want 1", len(records))
	}
	if records[0].Description != "BACKHAUS BERLIN DE" {
		t.Errorf("description: got %q, want %q", records[0].Description, "BACKHAUS BERLIN DE")
	}
	if !records[0].Amount.Equal(mustDecimal(t, "12.40")) {
		t.Errorf("amount: got %s, want 12.40", records[0].Amount)
	}
}
