// =============================================================================
// S&P Global Statutory Filing Parser - Value Normalizer
// =============================================================================
//
// This module cleans raw cell text into typed values. Statutory exports
// format numbers for display: thousands separators, parenthesised negatives,
// and a handful of placeholder tokens for cells that carry no value.
//
// Zero and "missing" are semantically distinct in the filings and must stay
// distinct, so every function here returns a pointer: nil means the cell
// had no usable value. A cell that fails to parse after cleaning is nil,
// never coerced to zero.
//
// =============================================================================

package normalize

import (
	"strconv"
	"strings"
)

// Numeric cleans a raw cell value and parses it as a number.
//
// Cleaning rules, in order:
//  1. Trim surrounding whitespace.
//  2. Placeholders map to nil: empty string, "NA", "N/A", "-", and any
//     value containing "XXX" (the export's cross-out marker).
//  3. "(x)" becomes "-x" (accounting-style negatives).
//  4. Thousands separators (commas) are stripped.
//
// Anything that still fails to parse returns nil.
func Numeric(value string) *float64 {
	value = strings.TrimSpace(value)
	if isPlaceholder(value) {
		return nil
	}

	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		value = "-" + value[1:len(value)-1]
	}
	value = strings.ReplaceAll(value, ",", "")

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Int cleans a raw cell value and parses it as an integer. Used for year
// labels, where a fractional value is as meaningless as a placeholder.
func Int(value string) (int, bool) {
	f := Numeric(value)
	if f == nil || *f != float64(int(*f)) {
		return 0, false
	}
	return int(*f), true
}

// SumNullable adds nullable values, treating nil as zero, and returns nil
// only when every input is nil. This keeps a partially reported total
// distinguishable from a wholly unreported one.
func SumNullable(values ...*float64) *float64 {
	var sum float64
	seen := false
	for _, v := range values {
		if v != nil {
			sum += *v
			seen = true
		}
	}
	if !seen {
		return nil
	}
	return &sum
}

// isPlaceholder reports whether the trimmed value is one of the export's
// no-value tokens.
func isPlaceholder(value string) bool {
	if value == "" || value == "-" {
		return true
	}
	upper := strings.ToUpper(value)
	if upper == "NA" || upper == "N/A" {
		return true
	}
	return strings.Contains(upper, "XXX")
}
