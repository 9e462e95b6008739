package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{name: "AED prefix", text: "Thank you for your payment of AED 55.00.", want: 55.0, ok: true},
		{name: "AED suffix", text: "You were charged 25.00 AED today", want: 25.0, ok: true},
		{name: "AED lowercase", text: "payment of aed 120", want: 120.0, ok: true},
		{name: "dollar symbol", text: "Your card was charged $9.99", want: 9.99, ok: true},
		{name: "USD suffix", text: "Total: 15.99 USD", want: 15.99, ok: true},
		{name: "dirham spelled out", text: "A charge of 299 dirhams was made", want: 299.0, ok: true},
		{name: "dhs abbreviation", text: "monthly fee 150 dhs", want: 150.0, ok: true},
		{name: "thousands separator", text: "annual plan AED 1,299.00", want: 1299.0, ok: true},
		{name: "AED wins over dollar", text: "AED 55.00 (approx $15)", want: 55.0, ok: true},
		{name: "integer amount", text: "AED 16", want: 16.0, ok: true},
		{name: "no amount", text: "your subscription has been renewed", want: 0, ok: false},
		{name: "bare number", text: "invoice 12345 is ready", want: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{name: "slashed day first", text: "renews on 15/02/2024", want: "2024-02-15", ok: true},
		{name: "slashed single digits", text: "due 5/3/2024", want: "2024-03-05", ok: true},
		{name: "iso date", text: "Renewal date: 2024-02-25", want: "2024-02-25", ok: true},
		{name: "textual date", text: "next billing date is February 15, 2024", want: "2024-02-15", ok: true},
		{name: "textual without comma", text: "renews March 1 2024", want: "2024-03-01", ok: true},
		{name: "textual case insensitive", text: "expires JANUARY 31, 2025", want: "2025-01-31", ok: true},
		{name: "no date", text: "thank you for your payment", want: "", ok: false},
		{name: "month-first slashed is rejected", text: "billed 02/20/2024", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateFallsThroughInvalidCandidates(t *testing.T) {
	// The slashed candidate is not a real date, so the later textual
	// pattern still gets a chance.
	got, ok := Date("charged on 31/02/2024, renews March 5, 2024")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-05", got)
}
