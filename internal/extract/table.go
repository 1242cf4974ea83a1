package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const tableConfidence = 0.8

const monthAlt = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*`

var (
	// ordinalDaySuffixRe matches a dangling day-of-month tail such as
	// " 25th" left over from a date column bleeding into the description.
	ordinalDaySuffixRe = regexp.MustCompile(`(?i)\s*\d{1,2}(?:st|nd|rd|th)$`)

	// monthCompleteSuffixRe matches a trailing "<day>? <Month> COMPLETE"
	// status tail, e.g. " 25th Nov COMPLETE" or " NovCOMPLETE".
	monthCompleteSuffixRe = regexp.MustCompile(
		`(?i)\s*(?:\d{1,2}(?:st|nd|rd|th)?\s*)?` + monthAlt + `\s*complete$`)

	// junkOnlyRe matches labels that consist solely of date/status noise.
	junkOnlyRe = regexp.MustCompile(
		`(?i)^(?:(?:\d{1,2}(?:st|nd|rd|th)?\s*)?` + monthAlt + `\s*)?complete$`)

	// thMonthJunkRe catches the mangled "th Nov COMPLETE" remnant produced
	// when the day digits land on a different physical line.
	thMonthJunkRe = regexp.MustCompile(`(?i)^th\s*` + monthAlt + `\s*complete$`)
)

// ExtractTableRows converts numbered deliverable rows into structured table
// fields. The leading number is kept as row metadata only; quantity is
// always "1" in this heuristic model. Rows whose cleaned description is pure
// date/status noise are dropped.
func ExtractTableRows(lines []Line) []TableField {
	var fields []TableField
	for _, line := range lines {
		m := numberedRowRe.FindStringSubmatch(line.Value)
		if m == nil {
			continue
		}
		description := strings.TrimSpace(m[3])
		if len(description) < 2 {
			continue
		}

		if isDateStatusJunk(description) {
			continue
		}
		label := cleanItemLabel(description)
		if isDateStatusJunk(label) {
			continue
		}

		rowIndex, _ := strconv.Atoi(m[1])
		fields = append(fields, TableField{
			Line: Line{
				Value:      label,
				Page:       line.Page,
				Position:   line.Position,
				Confidence: tableConfidence,
				Source:     SourceTable,
			},
			Data: TableRow{
				{Column: "index", Value: m[1]},
				{Column: "quantity", Value: "1"},
				{Column: "code", Value: m[2]},
				{Column: "description", Value: label},
				{Column: "label", Value: label},
			},
			TableIndex: 0,
			RowIndex:   rowIndex,
		})
	}
	return fields
}

// cleanItemLabel strips trailing date/status noise off a row description:
// first a dangling ordinal day, then a "<day>? <Month> COMPLETE" tail.
func cleanItemLabel(description string) string {
	label := ordinalDaySuffixRe.ReplaceAllString(description, "")
	label = monthCompleteSuffixRe.ReplaceAllString(label, "")
	return strings.TrimSpace(label)
}

// isDateStatusJunk reports whether a label is leftover date/status noise
// rather than real content.
func isDateStatusJunk(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return true
	}
	if strings.EqualFold(label, "complete") {
		return true
	}
	return junkOnlyRe.MatchString(label) || thMonthJunkRe.MatchString(label)
}
