package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const amountConfidence = 0.95

var (
	// keywordAmountRe finds amounts qualified by a money keyword, e.g.
	// "Total: $1,250.00" or "fee 300".
	keywordAmountRe = regexp.MustCompile(
		`(?i)(total|subtotal|amount|tax|vat|due|balance|price|fee)\s*:?\s*\$?\s*([\d,]+\.?\d{0,2})`)

	// bareAmountRe finds unqualified amounts behind a currency marker.
	bareAmountRe = regexp.MustCompile(
		`(?i)(?:\$|USD|KES|EUR|GBP)\s*([\d,]+(?:\.\d{1,2})?)`)
)

// ExtractAmounts scans every line for monetary amounts. The seen set spans
// the whole invocation, so the same amount string is reported once no matter
// how many lines or regex families produce it. Non-positive or unparsable
// captures are dropped silently.
func ExtractAmounts(lines []Line) []AmountField {
	seen := map[string]bool{}
	var fields []AmountField

	for _, line := range lines {
		for _, m := range keywordAmountRe.FindAllStringSubmatch(line.Value, -1) {
			if f, ok := newAmountField(m[2], line, seen); ok {
				fields = append(fields, f)
			}
		}
		for _, m := range bareAmountRe.FindAllStringSubmatch(line.Value, -1) {
			if f, ok := newAmountField(m[1], line, seen); ok {
				fields = append(fields, f)
			}
		}
	}
	return fields
}

// newAmountField normalizes a captured amount string and validates it is a
// positive, unseen number. Decimal parsing keeps the positivity check exact
// for captures float64 would mangle.
func newAmountField(raw string, line Line, seen map[string]bool) (AmountField, bool) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	d, err := decimal.NewFromString(value)
	if err != nil || !d.IsPositive() {
		return AmountField{}, false
	}
	if seen[value] {
		return AmountField{}, false
	}
	seen[value] = true

	return AmountField{
		Line: Line{
			Value:      value,
			Page:       line.Page,
			Position:   line.Position,
			Confidence: amountConfidence,
			Source:     SourceAmount,
		},
		FieldType: FieldTotal,
	}, true
}
