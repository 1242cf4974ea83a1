package extract

import (
	"regexp"
	"strings"
)

const patternConfidence = 0.85

// fieldRule binds one field type to its ordered list of recognizers.
type fieldRule struct {
	fieldType FieldType
	patterns  []*regexp.Regexp
}

// fieldRules is the fixed dispatch table for the pattern matcher. Order
// matters twice: field types are tried in this order on every line, and
// within a type the first matching pattern wins and ends the search for that
// type on that line. A single line may still satisfy several field types.
var fieldRules = []fieldRule{
	{FieldInvoiceNumber, compileAll(
		`(?i)invoice\s*(?:number|no\.?|#)\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]*)`,
		`(?i)^inv\s*#?\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]*)`,
	)},
	{FieldDate, compileAll(
		`(?i)^(?:invoice\s+)?date\s*:?\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`,
		`(?i)^(?:invoice\s+)?date\s*:?\s*(\d{4}[/.-]\d{1,2}[/.-]\d{1,2})`,
		`(?i)^dated?\s*:\s*(\w+\s+\d{1,2},?\s+\d{4})`,
	)},
	{FieldDueDate, compileAll(
		`(?i)due\s*date\s*:?\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`,
		`(?i)payment\s+due\s*:?\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`,
		`(?i)due\s*(?:by|on)\s*:?\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`,
	)},
	{FieldTotal, compileAll(
		`(?i)^total\s*(?:amount|due)?\s*:?\s*\$?\s*([\d,]+\.?\d{0,2})`,
		`(?i)amount\s+due\s*:?\s*\$?\s*([\d,]+\.?\d{0,2})`,
		`(?i)^grand\s+total\s*:?\s*\$?\s*([\d,]+\.?\d{0,2})`,
	)},
	{FieldSubtotal, compileAll(
		`(?i)sub\s*-?\s*total\s*:?\s*\$?\s*([\d,]+\.?\d{0,2})`,
	)},
	{FieldTax, compileAll(
		`(?i)(?:tax|vat|gst)\s*(?:\([\d.]+\s*%\))?\s*:?\s*\$?\s*([\d,]+\.?\d{0,2})`,
	)},
	{FieldClientName, compileAll(
		`(?i)bill(?:ed)?\s*to\s*:?\s*(.+)`,
		`(?i)^client\s*(?:name)?\s*:\s*(.+)`,
		`(?i)^customer\s*(?:name)?\s*:\s*(.+)`,
	)},
	{FieldCompanyName, compileAll(
		`(?i)^from\s*:\s*(.+)`,
		`(?i)^company\s*(?:name)?\s*:\s*(.+)`,
		`(?i)^vendor\s*:\s*(.+)`,
	)},
	{FieldEmail, compileAll(
		`([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`,
	)},
	{FieldPhone, compileAll(
		`(?i)(?:phone|tel|mobile|fax)\s*\.?\s*:?\s*(\+?[\d][\d\s().-]{6,})`,
		`(\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})`,
	)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// MatchPatterns applies the field-rule table to every line. Absence of any
// field type is not an error; unmatched lines simply contribute nothing.
func MatchPatterns(lines []Line) []PatternField {
	var fields []PatternField
	for _, line := range lines {
		for _, rule := range fieldRules {
			for _, re := range rule.patterns {
				m := re.FindStringSubmatch(line.Value)
				if m == nil {
					continue
				}
				value := m[0]
				if len(m) > 1 && m[1] != "" {
					value = m[1]
				}
				value = strings.TrimSpace(value)
				if value != "" {
					fields = append(fields, PatternField{
						Line: Line{
							Value:      value,
							Page:       line.Page,
							Position:   line.Position,
							Confidence: patternConfidence,
							Source:     SourcePattern,
						},
						FieldType:    rule.fieldType,
						OriginalLine: line.Value,
					})
				}
				// First matching pattern settles this field type for
				// this line; remaining field types still get their turn.
				break
			}
		}
	}
	return fields
}
