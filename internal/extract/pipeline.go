package extract

import (
	"fmt"
	"runtime/debug"
)

// ExtractedText is what the external text-extraction capability yields for
// one document buffer.
type ExtractedText struct {
	Text      string
	PageCount int
}

// TextExtractor is the external collaborator that recovers raw text from a
// binary document buffer. It may fail on corrupt or unsupported input; that
// failure is the pipeline's only error boundary.
type TextExtractor interface {
	ExtractText(buf []byte) (*ExtractedText, error)
}

// TextExtractorFunc adapts a plain function to the TextExtractor interface.
type TextExtractorFunc func(buf []byte) (*ExtractedText, error)

func (f TextExtractorFunc) ExtractText(buf []byte) (*ExtractedText, error) { return f(buf) }

// Parser runs the full extraction pipeline. It holds no per-call state, so
// one Parser may serve concurrent Parse calls; every invocation builds its
// result from scratch and two runs over the same bytes produce identical
// output.
type Parser struct {
	extractor TextExtractor
}

// NewParser creates a parser around the given text-extraction capability.
func NewParser(extractor TextExtractor) *Parser {
	return &Parser{extractor: extractor}
}

// Parse extracts text from the document buffer and runs every pipeline
// stage over it. Empty or unparsable-but-valid text is not an error: the
// result is simply sparse. The returned error, when non-nil, is always a
// *ParseError.
func (p *Parser) Parse(buf []byte) (result *ParseResult, err error) {
	// Underlying PDF libraries are known to panic on malformed input;
	// convert that into the same error shape as an extraction failure.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ParseError{
				Message: fmt.Sprintf("document parsing panicked: %v", r),
				Trace:   string(debug.Stack()),
			}
		}
	}()

	extracted, extractErr := p.extractor.ExtractText(buf)
	if extractErr != nil {
		return nil, &ParseError{
			Message: fmt.Sprintf("text extraction failed: %v", extractErr),
			err:     extractErr,
		}
	}

	layout := SegmentLines(extracted.Text, extracted.PageCount)
	merged := MergeContinuations(layout)

	pattern := MatchPatterns(merged)
	amounts := ExtractAmounts(merged)
	table := ExtractTableRows(merged)

	fields, stats := AggregateFields(pattern, table, amounts, layout)
	document := BuildDocument(layout, pattern, table)

	if fields == nil {
		fields = []Field{}
	}

	return &ParseResult{
		Fields:   fields,
		Document: document,
		Stats:    stats,
		Pages:    extracted.PageCount,
	}, nil
}
