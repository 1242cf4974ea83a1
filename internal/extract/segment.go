package extract

import (
	"regexp"
	"strings"
)

const (
	layoutConfidence = 0.9

	// maxContinuationLength bounds how long a wrapped description line may
	// be before it is treated as standalone content.
	maxContinuationLength = 120
)

// numberedRowRe recognizes a numbered deliverable row: a leading row number,
// an optional dot, an optional secondary number (item code), then the
// description text.
var numberedRowRe = regexp.MustCompile(`^(\d+)\.?\s*(\d*)\s*(.+)$`)

// continuationStopTokens are header-looking prefixes that end a continuation
// merge; a line starting with one of these is never glued onto the row above.
var continuationStopTokens = []string{"deliverable", "#", "date", "for:", "name:"}

// SegmentLines splits raw extracted text into trimmed, non-empty layout
// lines. Each line gets a synthetic page number proportional to its position
// in the line stream, so page is always within [1, numPages] (or 1 when the
// page count is unknown).
func SegmentLines(text string, numPages int) []Line {
	var values []string
	for _, raw := range strings.Split(text, "\n") {
		if v := strings.TrimSpace(raw); v != "" {
			values = append(values, v)
		}
	}

	lines := make([]Line, 0, len(values))
	for i, v := range values {
		page := 1
		if numPages > 0 {
			page = i*numPages/len(values) + 1
			if page > numPages {
				page = numPages
			}
		}
		lines = append(lines, Line{
			Value:      v,
			Page:       page,
			Position:   Position{X: 0, Y: float64(i)},
			Confidence: layoutConfidence,
			Source:     SourceLayout,
		})
	}
	return lines
}

// MergeContinuations joins a numbered row to a following short wrapped
// description line. The look-ahead is a single line: at most one merge per
// row per pass, so chains longer than two physical lines stay split.
func MergeContinuations(lines []Line) []Line {
	merged := make([]Line, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		cur := lines[i]
		if numberedRowRe.MatchString(cur.Value) && i+1 < len(lines) && isContinuation(lines[i+1].Value) {
			cur.Value = cur.Value + " " + lines[i+1].Value
			i++
		}
		merged = append(merged, cur)
	}
	return merged
}

// isContinuation reports whether a line looks like the wrapped tail of the
// numbered row above it rather than standalone content.
func isContinuation(value string) bool {
	if value == "" || len(value) > maxContinuationLength {
		return false
	}
	if numberedRowRe.MatchString(value) {
		return false
	}
	if isDateStatusJunk(value) {
		return false
	}
	// Summary lines like "Subtotal: $1,000.00" close the item list; glue
	// them only when the money keyword appears mid-line.
	if loc := keywordAmountRe.FindStringIndex(value); loc != nil && loc[0] == 0 {
		return false
	}
	lower := strings.ToLower(value)
	for _, tok := range continuationStopTokens {
		if strings.HasPrefix(lower, tok) {
			return false
		}
	}
	return true
}
