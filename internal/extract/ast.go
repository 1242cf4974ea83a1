package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// titleSkipTokens are prefixes a document title can never start with.
var titleSkipTokens = []string{"deliverable", "#", "date"}

// taskOrderRefRe captures the "#TO-123" style reference on a task-order line.
var taskOrderRefRe = regexp.MustCompile(`#([A-Za-z0-9-]+)`)

// BuildDocument assembles the normalized document summary from the raw
// layout lines and the pattern/table fields. Every assignment is
// first-occurrence-wins so repeated matches never churn earlier values.
func BuildDocument(layout []Line, pattern []PatternField, table []TableField) DocumentAST {
	ast := NewDocumentAST()

	for _, f := range pattern {
		switch f.FieldType {
		case FieldInvoiceNumber:
			setRef(ast.Meta.ReferenceNumbers, "invoice_number", f.Value)
		case FieldTotal, FieldSubtotal, FieldTax:
			setRef(ast.Meta.ReferenceNumbers, string(f.FieldType), f.Value)
		case FieldDate:
			setIfEmpty(&ast.Dates.Signed, f.Value)
		case FieldDueDate:
			setIfEmpty(&ast.Dates.Due, f.Value)
		case FieldClientName:
			setIfEmpty(&ast.Parties.Recipient, f.Value)
		case FieldCompanyName:
			setIfEmpty(&ast.Parties.Issuer, f.Value)
		}
	}

	for _, line := range layout {
		scanReferenceLine(&ast, line.Value)

		if ast.Meta.Title == "" && len(line.Value) > 2 && !startsWithAny(line.Value, titleSkipTokens) {
			ast.Meta.Title = line.Value
		}
		if len(ast.RawLines) < 50 {
			ast.RawLines = append(ast.RawLines, line.Value)
		}
	}

	for _, f := range table {
		if item, ok := buildItem(f.Data); ok {
			ast.Items = append(ast.Items, item)
		}
	}

	return ast
}

// scanReferenceLine recognizes reference numbers and party lines that only
// show up in free text, not in the pattern-field vocabulary.
func scanReferenceLine(ast *DocumentAST, value string) {
	lower := strings.ToLower(value)

	if strings.Contains(lower, "task order") || strings.Contains(lower, "t.o") {
		// Lines without a "#<ref>" are skipped outright so the bare word
		// "Task" never becomes the reference.
		if m := taskOrderRefRe.FindStringSubmatch(value); m != nil {
			setRef(ast.Meta.ReferenceNumbers, "task_order", m[1])
		}
	}

	if strings.Contains(lower, "contract") && strings.Contains(lower, "number") {
		if idx := strings.Index(value, ":"); idx >= 0 {
			if ref := strings.TrimSpace(value[idx+1:]); ref != "" {
				setRef(ast.Meta.ReferenceNumbers, "contract", ref)
			}
		}
	}

	if strings.HasPrefix(lower, "for:") {
		if party := strings.TrimSpace(value[len("for:"):]); party != "" {
			if ast.Parties.Issuer == "" {
				ast.Parties.Issuer = party
			} else {
				ast.Parties.Recipient = party
			}
		}
	}
}

// buildItem converts one table row into a line item. The label gets the
// same date/status cleanup as row detection so rows fed in from elsewhere
// stay consistent; junk-only labels drop the whole row.
func buildItem(row TableRow) (LineItem, bool) {
	label := cleanItemLabel(row.Get("label", "description", "Deliverable"))
	if isDateStatusJunk(label) {
		return LineItem{}, false
	}

	item := LineItem{Label: label, Quantity: 1, Status: row.Get("status")}
	if qty, err := strconv.Atoi(strings.TrimSpace(row.Get("quantity", "qty", "index"))); err == nil && qty > 0 {
		item.Quantity = qty
	}
	if price, err := strconv.ParseFloat(strings.TrimSpace(row.Get("price", "amount")), 64); err == nil {
		item.UnitPrice = &price
	}
	return item, true
}

func setRef(refs map[string]string, key, value string) {
	if _, ok := refs[key]; !ok {
		refs[key] = value
	}
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func startsWithAny(value string, tokens []string) bool {
	lower := strings.ToLower(value)
	for _, tok := range tokens {
		if strings.HasPrefix(lower, tok) {
			return true
		}
	}
	return false
}
