package descriptions

import "sort"

// Comprehensive tool descriptions with practical examples and use cases

const (
	InvoiceParseFileDescription = `Parse a PDF invoice into structured fields and a document summary.

**When to use:** Need the meaningful data out of an invoice, statement, or similar billing document: reference numbers, parties, dates, amounts, and line items.

**Why it's useful:** Runs the full extraction pipeline (line segmentation, pattern matching, amount detection, table heuristics) and returns ranked, deduplicated fields plus a structured document summary, instead of a wall of raw text.

**Examples:**
• Invoice intake: "Parse invoice-2024-001.pdf and give me the invoice number, total, and due date"
• Bookkeeping: "Extract the line items and amounts from acme-march.pdf"
• Contract billing: "Pull the task order and contract numbers out of deliverable-3.pdf"

**Common workflows:**
1. Intake: Parse invoice → Review extracted fields → Post to accounting system
2. Reconciliation: Parse invoice → Compare totals against ledger → Flag mismatches
3. Archiving: Parse invoice → Index reference numbers → File by issuer and date

**Best practices:** Validate the file first with invoice_validate_file; check each field's confidence and source before trusting it blindly.`

	InvoiceExtractTextDescription = `Extract the raw text layer from a PDF file.

**When to use:** Need the plain text of a document without any field interpretation, or want to inspect what the parser actually sees.

**Why it's useful:** Handles different PDF text encodings and concatenates page text cleanly; a scanned document with no text layer yields empty text rather than an error.

**Examples:**
• Debugging extraction: "Show me the raw text of odd-invoice.pdf to see why a field was missed"
• Full-text search: "Get the text of statement.pdf for indexing"
• Manual review: "Read the text of contract-invoice.pdf before parsing it"

**Common workflows:**
1. Inspection: Extract text → Eyeball the layout → Decide whether parsing will work
2. Indexing: Extract text → Store in search index → Query later
3. Fallback: Parse misses a field → Extract text → Locate the value manually

**Best practices:** Empty text usually means a scanned document; this server does not perform OCR.`

	InvoiceValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before attempting to parse any PDF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted files early, and reports a verdict instead of failing.

**Examples:**
• Batch safety: "Validate all PDFs in /invoices/ before bulk parsing"
• Upload verification: "Check user-uploaded invoice.pdf is a real PDF before processing"
• Quality control: "Verify exported-invoice.pdf is readable before sending to the client"

**Common workflows:**
1. Automated Processing: Validate → Parse if valid → Handle errors gracefully
2. File Quality Check: Validate → Report issues → Fix or reject bad files
3. Pre-processing Pipeline: Validate → Route valid files into parsing

**Best practices:** Always run this first in automated workflows handling unknown PDFs.`

	InvoiceSearchDirectoryDescription = `Discover and filter PDF files across directories with filename matching.

**When to use:** Need to find specific invoices by name patterns, explore a document directory, or build a processing queue.

**Why it's useful:** Quickly locates relevant documents without manual browsing; the query matches substrings and individual words, so "acme 2024" finds "acme_invoice_2024.pdf".

**Examples:**
• Find invoices: "Search /documents/ for files containing 'invoice' or '2024'"
• Vendor lookup: "Find all PDFs with 'acme' in the invoices directory"
• Queue building: "List all PDFs in /inbox/ to plan a parsing run"

**Common workflows:**
1. Targeted Processing: Search for a pattern → Validate matches → Parse each file
2. Content Discovery: Explore directory → Identify candidates → Plan extraction
3. Batch Operations: Find files → Process in sequence → Collect results

**Best practices:** Leave the directory empty to search the configured default directory; hidden directories and non-PDF files are skipped automatically.`

	InvoiceServerInfoDescription = `Get real-time server status, available tools, and system capabilities.

**When to use:** Starting work with the invoice parser, troubleshooting issues, or checking available functionality.

**Why it's useful:** Provides the server's configuration, tool catalog, and a bounded listing of the default directory for informed decision-making.

**Examples:**
• System check: "Verify the server is ready before a batch parsing run"
• Troubleshooting: "Check server info to diagnose why files aren't being found"
• Capability discovery: "See all available tools and their parameters"

**Common workflows:**
1. Session Startup: Check server info → Verify directory → Plan processing approach
2. Debugging: Review server status → Check directory paths → Verify tool availability
3. Planning: Review available tools → Choose appropriate methods → Execute workflow

**Best practices:** Run at the start of a session; the directory listing is capped at 100 files.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"invoice_parse_file":       InvoiceParseFileDescription,
	"invoice_extract_text":     InvoiceExtractTextDescription,
	"invoice_validate_file":    InvoiceValidateFileDescription,
	"invoice_search_directory": InvoiceSearchDirectoryDescription,
	"invoice_server_info":      InvoiceServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns all available tool names in sorted order.
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
