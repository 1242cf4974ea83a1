package extract

import (
	"regexp"
	"sort"
	"strings"
)

const (
	minLayoutLineLength  = 4
	minTableValueLength  = 4
	shortHeaderMaxLength = 25
)

// layoutHeaderTokens are header-looking prefixes; short layout lines that
// start with one of these are column headings, not content.
var layoutHeaderTokens = []string{"deliverable", "#", "date", "description", "due", "status", "index"}

// numericPunctOnlyRe matches lines carrying no words at all.
var numericPunctOnlyRe = regexp.MustCompile(`^[\d\s[:punct:]]+$`)

// AggregateFields merges the stage outputs and residual layout lines into
// one deduplicated field list. Duplicate text is resolved by source
// priority: pattern beats table beats amount beats layout. Within a source
// the higher confidence comes first; the sort is stable so equal entries
// keep their production order.
func AggregateFields(pattern []PatternField, table []TableField, amounts []AmountField, layout []Line) ([]Field, Stats) {
	seen := map[string]bool{}
	var fields []Field

	take := func(value string) bool {
		norm := strings.ToLower(strings.TrimSpace(value))
		if norm == "" || seen[norm] {
			return false
		}
		seen[norm] = true
		return true
	}

	for _, f := range pattern {
		if take(f.Value) {
			fields = append(fields, f)
		}
	}
	for _, f := range table {
		if len(strings.TrimSpace(f.Value)) < minTableValueLength {
			continue
		}
		if take(f.Value) {
			fields = append(fields, f)
		}
	}
	for _, f := range amounts {
		if take(f.Value) {
			fields = append(fields, f)
		}
	}
	for _, line := range layout {
		if !includeLayoutLine(line.Value) {
			continue
		}
		if take(line.Value) {
			fields = append(fields, line)
		}
	}

	sort.SliceStable(fields, func(i, j int) bool {
		a, b := fields[i].Meta(), fields[j].Meta()
		if pa, pb := a.Source.priority(), b.Source.priority(); pa != pb {
			return pa < pb
		}
		return a.Confidence > b.Confidence
	})

	stats := Stats{TotalFields: len(fields)}
	for _, f := range fields {
		switch f.Meta().Source {
		case SourcePattern:
			stats.PatternFields++
		case SourceTable:
			stats.TableFields++
		case SourceAmount:
			stats.AmountFields++
		case SourceLayout:
			stats.LayoutIncluded++
		}
	}
	return fields, stats
}

// includeLayoutLine filters residual layout lines: too-short fragments,
// word-free number/punctuation runs and short header-looking fragments are
// dropped. Longer lines that merely start with a header token still pass.
func includeLayoutLine(value string) bool {
	if len(value) < minLayoutLineLength {
		return false
	}
	if numericPunctOnlyRe.MatchString(value) {
		return false
	}
	if len(value) < shortHeaderMaxLength {
		lower := strings.ToLower(value)
		for _, tok := range layoutHeaderTokens {
			if strings.HasPrefix(lower, tok) {
				return false
			}
		}
	}
	return true
}
