// Package extract pulls billing amounts and dates out of free-form email
// text. Billing emails arrive in several regional conventions, so each
// extractor tries an ordered list of patterns speculatively; the ordering
// is a policy decision and determines which convention wins when more
// than one could match.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var amountPatterns = []*regexp.Regexp{
	// AED amounts, symbol on either side.
	regexp.MustCompile(`(?i)AED\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s*AED`),
	// USD amounts.
	regexp.MustCompile(`\$\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s*USD`),
	// Spelled-out currency names.
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s*(?:dirham|dhs|dollar)`),
}

// Amount finds the first currency amount in text. The second return value
// is false when no pattern matches; absence is expected, not an error.
func Amount(text string) (float64, bool) {
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "."), 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

var (
	slashedDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	isoDateRe     = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	textualDateRe = regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2}),?\s+(\d{4})`)
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// Date finds the first calendar date in text and normalizes it to
// YYYY-MM-DD. Slashed dates are read day-first (15/01/2024). A candidate
// that fails calendar validation is discarded and the remaining patterns
// are still tried.
func Date(text string) (string, bool) {
	if m := slashedDateRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if s, ok := validDate(year, month, day); ok {
			return s, true
		}
	}

	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if s, ok := validDate(year, month, day); ok {
			return s, true
		}
	}

	if m := textualDateRe.FindStringSubmatch(text); m != nil {
		month := monthNumbers[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if s, ok := validDate(year, month, day); ok {
			return s, true
		}
	}

	return "", false
}

func validDate(year, month, day int) (string, bool) {
	s := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}
