package extract

// Source identifies which pipeline stage produced an extracted field.
type Source string

const (
	SourceLayout  Source = "layout"
	SourcePattern Source = "pattern"
	SourceTable   Source = "table"
	SourceAmount  Source = "amount"
)

// priority returns the dedup/ordering rank of a source. Lower ranks win when
// the same text is produced by more than one stage.
func (s Source) priority() int {
	switch s {
	case SourcePattern:
		return 0
	case SourceTable:
		return 1
	case SourceAmount:
		return 2
	default:
		return 3
	}
}

// FieldType names a known invoice field recognized by the pattern matcher.
type FieldType string

const (
	FieldInvoiceNumber FieldType = "invoice_number"
	FieldDate          FieldType = "date"
	FieldDueDate       FieldType = "due_date"
	FieldTotal         FieldType = "total"
	FieldSubtotal      FieldType = "subtotal"
	FieldTax           FieldType = "tax"
	FieldClientName    FieldType = "client_name"
	FieldCompanyName   FieldType = "company_name"
	FieldEmail         FieldType = "email"
	FieldPhone         FieldType = "phone"
)

// Position is a synthetic coordinate for a segmented line. No true layout
// coordinates are available from plain-text extraction, so X is always 0 and
// Y is the ordinal index of the line within the document.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is one trimmed, non-empty segment of raw extracted text. It is the
// common base of every extracted field and doubles as the layout variant.
// Value is never empty or all-whitespace once stored.
type Line struct {
	Value      string   `json:"value"`
	Page       int      `json:"page"`
	Position   Position `json:"position"`
	Confidence float64  `json:"confidence"`
	Source     Source   `json:"source"`
}

// Meta implements Field for the plain layout variant.
func (l Line) Meta() Line { return l }

// PatternField is a value extracted by a named regex rule.
type PatternField struct {
	Line
	FieldType    FieldType `json:"field_type"`
	OriginalLine string    `json:"original_line,omitempty"`
}

// AmountField is a monetary value found by the amount scanner. All amounts
// are tagged as "total" at this stage; distinguishing subtotal vs tax is
// only reliable from the pattern matcher.
type AmountField struct {
	Line
	FieldType FieldType `json:"field_type"`
}

// TableCell is one synthetic column of a detected table row. Cells keep
// their insertion order so that row rendering is deterministic.
type TableCell struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// TableRow is an ordered set of synthetic columns for a detected row.
type TableRow []TableCell

// Get returns the value of the first listed column present in the row.
func (r TableRow) Get(columns ...string) string {
	for _, col := range columns {
		for _, cell := range r {
			if cell.Column == col {
				return cell.Value
			}
		}
	}
	return ""
}

// TableField is a structured row synthesized from the numbered-line
// heuristic, representing a deliverable/line item.
type TableField struct {
	Line
	Data       TableRow `json:"table_data"`
	TableIndex int      `json:"table_index"`
	RowIndex   int      `json:"row_index"`
}

// Field is the closed union of extracted-field variants. Concrete types are
// Line, PatternField, AmountField and TableField; the Source carried on the
// embedded Line is the discriminant.
type Field interface {
	Meta() Line
}

// Stats counts what each stage contributed to the final field list.
type Stats struct {
	TotalFields    int `json:"total_fields"`
	PatternFields  int `json:"pattern_fields"`
	TableFields    int `json:"table_fields"`
	AmountFields   int `json:"amount_fields"`
	LayoutIncluded int `json:"layout_included"`
}

// DocumentMeta holds the document title and any recognized reference numbers
// (invoice number, contract, task order, monetary summary values).
type DocumentMeta struct {
	Title            string            `json:"title"`
	ReferenceNumbers map[string]string `json:"reference_numbers"`
}

// Parties names the two sides of the document.
type Parties struct {
	Issuer    string `json:"issuer"`
	Recipient string `json:"recipient"`
}

// Dates holds the recognized document dates.
type Dates struct {
	Due    string `json:"due"`
	Signed string `json:"signed"`
}

// LineItem is one normalized deliverable/line item.
type LineItem struct {
	Label     string   `json:"label"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
	Status    string   `json:"status"`
}

// DocumentAST is the normalized document summary. It is always fully shaped:
// string fields default to "" and collections are non-nil, even when nothing
// was found.
type DocumentAST struct {
	Meta     DocumentMeta `json:"meta"`
	Parties  Parties      `json:"parties"`
	Dates    Dates        `json:"dates"`
	Items    []LineItem   `json:"items"`
	RawLines []string     `json:"raw_lines"`
}

// NewDocumentAST returns an empty but fully shaped AST.
func NewDocumentAST() DocumentAST {
	return DocumentAST{
		Meta: DocumentMeta{
			ReferenceNumbers: map[string]string{},
		},
		Items:    []LineItem{},
		RawLines: []string{},
	}
}

// ParseResult is the output of a successful pipeline run. A sparse result is
// still a success: best-effort extraction never fails merely because it
// found nothing.
type ParseResult struct {
	Fields   []Field     `json:"fields"`
	Document DocumentAST `json:"document_ast"`
	Stats    Stats       `json:"stats"`
	Pages    int         `json:"pages"`
}

// ParseError is the only error type the pipeline returns. It is produced at
// the text-extraction boundary or from a recovered panic; every internal
// stage is total.
type ParseError struct {
	Message string `json:"error"`
	Trace   string `json:"trace,omitempty"`

	err error
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() error { return e.err }
