package extract

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

const invoiceText = `FOR: Acme Corp
Invoice Number: INV-2024-001
Date: 01/15/2024
Due Date: 02/15/2024
Bill To: John Doe
1. 100 Consulting Services
2. 200 Design Work
Subtotal: $1,000.00
Tax: $100.00
Total: $1,100.00`

func stubExtractor(text string, pages int) TextExtractor {
	return TextExtractorFunc(func(buf []byte) (*ExtractedText, error) {
		return &ExtractedText{Text: text, PageCount: pages}, nil
	})
}

func TestParseInvoiceEndToEnd(t *testing.T) {
	parser := NewParser(stubExtractor(invoiceText, 1))

	result, err := parser.Parse([]byte("%PDF-stub"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ast := result.Document
	if got := ast.Meta.ReferenceNumbers["invoice_number"]; got != "INV-2024-001" {
		t.Errorf("expected invoice number INV-2024-001, got %q", got)
	}
	if ast.Dates.Signed != "01/15/2024" {
		t.Errorf("expected signed date 01/15/2024, got %q", ast.Dates.Signed)
	}
	if ast.Dates.Due != "02/15/2024" {
		t.Errorf("expected due date 02/15/2024, got %q", ast.Dates.Due)
	}
	if ast.Parties.Recipient != "John Doe" {
		t.Errorf("expected recipient John Doe, got %q", ast.Parties.Recipient)
	}
	if ast.Parties.Issuer != "Acme Corp" {
		t.Errorf("expected issuer Acme Corp, got %q", ast.Parties.Issuer)
	}

	if len(ast.Items) != 2 {
		t.Fatalf("expected 2 items, got %+v", ast.Items)
	}
	wantItems := []struct{ label string }{{"Consulting Services"}, {"Design Work"}}
	for i, want := range wantItems {
		if ast.Items[i].Label != want.label {
			t.Errorf("item %d: expected label %q, got %q", i, want.label, ast.Items[i].Label)
		}
		if ast.Items[i].Quantity != 1 {
			t.Errorf("item %d: expected quantity 1, got %d", i, ast.Items[i].Quantity)
		}
	}

	values := map[string]Source{}
	for _, f := range result.Fields {
		if _, ok := values[f.Meta().Value]; !ok {
			values[f.Meta().Value] = f.Meta().Source
		}
	}
	for _, amount := range []string{"1000.00", "1100.00"} {
		if src, ok := values[amount]; !ok || src != SourceAmount {
			t.Errorf("expected amount field %q, got source %q present=%v", amount, src, ok)
		}
	}
	// The tax amount collides with the pattern-extracted tax value, so the
	// pattern stage owns it in the final list.
	if src := values["100.00"]; src != SourcePattern {
		t.Errorf("expected pattern source to win for 100.00, got %q", src)
	}

	if len(ast.RawLines) != 10 {
		t.Errorf("expected 10 raw lines, got %d", len(ast.RawLines))
	}
	if result.Stats.TotalFields != len(result.Fields) {
		t.Errorf("stats total %d disagrees with field count %d", result.Stats.TotalFields, len(result.Fields))
	}
	if result.Stats.PatternFields != 7 {
		t.Errorf("expected 7 pattern fields, got %d", result.Stats.PatternFields)
	}
	if result.Stats.TableFields != 2 {
		t.Errorf("expected 2 table fields, got %d", result.Stats.TableFields)
	}
	if result.Pages != 1 {
		t.Errorf("expected 1 page, got %d", result.Pages)
	}
}

func TestParseFieldOrderBySourcePriority(t *testing.T) {
	parser := NewParser(stubExtractor(invoiceText, 1))
	result, err := parser.Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	lastPriority := -1
	for i, f := range result.Fields {
		p := f.Meta().Source.priority()
		if p < lastPriority {
			t.Fatalf("field %d (%q) out of order: source %s after higher-priority group",
				i, f.Meta().Value, f.Meta().Source)
		}
		lastPriority = p
	}
}

func TestParseDeterminism(t *testing.T) {
	parser := NewParser(stubExtractor(invoiceText, 3))

	first, err := parser.Parse([]byte("same bytes"))
	if err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := parser.Parse([]byte("same bytes"))
		if err != nil {
			t.Fatalf("repeat Parse failed: %v", err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d produced a different result", i)
		}
	}
}

func TestParseEmptyTextIsSuccess(t *testing.T) {
	parser := NewParser(stubExtractor("", 0))

	result, err := parser.Parse([]byte("scanned image, no text layer"))
	if err != nil {
		t.Fatalf("empty text must not fail: %v", err)
	}
	if len(result.Fields) != 0 {
		t.Errorf("expected no fields, got %d", len(result.Fields))
	}
	if result.Stats != (Stats{}) {
		t.Errorf("expected zeroed stats, got %+v", result.Stats)
	}
	if result.Document.Meta.ReferenceNumbers == nil || result.Document.Items == nil {
		t.Error("document AST must stay fully shaped")
	}
}

func TestParseExtractionFailure(t *testing.T) {
	extractErr := errors.New("startxref not found")
	parser := NewParser(TextExtractorFunc(func(buf []byte) (*ExtractedText, error) {
		return nil, extractErr
	}))

	result, err := parser.Parse([]byte("not a pdf"))
	if result != nil {
		t.Fatalf("expected no result on extraction failure, got %+v", result)
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Message == "" {
		t.Error("expected a non-empty error message")
	}
	if !errors.Is(err, extractErr) {
		t.Error("expected the extraction cause to stay unwrappable")
	}
}

func TestParseRecoversExtractorPanic(t *testing.T) {
	parser := NewParser(TextExtractorFunc(func(buf []byte) (*ExtractedText, error) {
		panic(fmt.Sprintf("malformed xref at %d", len(buf)))
	}))

	result, err := parser.Parse([]byte("garbage"))
	if result != nil {
		t.Fatal("expected no result from a panicking extractor")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Trace == "" {
		t.Error("expected a stack trace for the recovered panic")
	}
}
