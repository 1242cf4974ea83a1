package extract

import (
	"testing"
)

func TestAggregateFieldsDedupPriority(t *testing.T) {
	// The same text produced by the pattern matcher and present as a raw
	// layout line must survive only once, attributed to the pattern stage.
	pattern := []PatternField{{
		Line:      Line{Value: "INV-2024-001", Page: 1, Confidence: 0.85, Source: SourcePattern},
		FieldType: FieldInvoiceNumber,
	}}
	layout := []Line{
		{Value: "INV-2024-001", Page: 1, Confidence: 0.9, Source: SourceLayout},
		{Value: "Some other content", Page: 1, Confidence: 0.9, Source: SourceLayout},
	}

	fields, stats := AggregateFields(pattern, nil, nil, layout)

	if stats.PatternFields != 1 || stats.LayoutIncluded != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Meta().Source != SourcePattern {
		t.Errorf("expected the pattern field to win, got %s", fields[0].Meta().Source)
	}
}

func TestAggregateFieldsSourceOrdering(t *testing.T) {
	pattern := []PatternField{{
		Line: Line{Value: "pattern value", Confidence: 0.85, Source: SourcePattern}, FieldType: FieldTotal,
	}}
	table := []TableField{{
		Line: Line{Value: "table value", Confidence: 0.8, Source: SourceTable},
	}}
	amounts := []AmountField{{
		Line: Line{Value: "123.45", Confidence: 0.95, Source: SourceAmount}, FieldType: FieldTotal,
	}}
	layout := []Line{{Value: "layout value", Confidence: 0.9, Source: SourceLayout}}

	// Hand the stages over in scrambled argument content to prove the final
	// order comes from source priority, not insertion luck.
	fields, stats := AggregateFields(pattern, table, amounts, layout)

	wantSources := []Source{SourcePattern, SourceTable, SourceAmount, SourceLayout}
	if len(fields) != len(wantSources) {
		t.Fatalf("expected %d fields, got %d", len(wantSources), len(fields))
	}
	for i, want := range wantSources {
		if got := fields[i].Meta().Source; got != want {
			t.Errorf("field %d: expected source %s, got %s", i, want, got)
		}
	}
	if stats.TotalFields != 4 {
		t.Errorf("expected total 4, got %d", stats.TotalFields)
	}
}

func TestAggregateFieldsLayoutFilters(t *testing.T) {
	tests := []struct {
		name string
		line string
		keep bool
	}{
		{"too short", "abc", false},
		{"numeric punctuation only", "12. 34 -- 56", false},
		{"short header fragment", "Date", false},
		{"short header with colon", "Status:", false},
		{"long line starting with header token", "Description of all deliverables in this statement", true},
		{"ordinary content", "Monthly retainer services", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := []Line{{Value: tt.line, Page: 1, Confidence: 0.9, Source: SourceLayout}}
			fields, _ := AggregateFields(nil, nil, nil, layout)

			if tt.keep && len(fields) != 1 {
				t.Errorf("expected %q to be kept", tt.line)
			}
			if !tt.keep && len(fields) != 0 {
				t.Errorf("expected %q to be dropped", tt.line)
			}
		})
	}
}

func TestAggregateFieldsShortTableValuesDropped(t *testing.T) {
	table := []TableField{
		{Line: Line{Value: "abc", Confidence: 0.8, Source: SourceTable}},
		{Line: Line{Value: "abcd", Confidence: 0.8, Source: SourceTable}},
	}

	fields, stats := AggregateFields(nil, table, nil, nil)
	if stats.TableFields != 1 {
		t.Fatalf("expected 1 table field, got %+v", stats)
	}
	if fields[0].Meta().Value != "abcd" {
		t.Errorf("expected the longer value to survive, got %q", fields[0].Meta().Value)
	}
}
