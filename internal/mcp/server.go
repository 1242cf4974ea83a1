package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docfield/mcp-invoice-parser/internal/config"
	"github.com/docfield/mcp-invoice-parser/internal/extract"
	"github.com/docfield/mcp-invoice-parser/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	parseFileTool := mcp.NewTool(
		"invoice_parse_file",
		mcp.WithDescription("Parse a PDF invoice into structured fields and a document summary"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(parseFileTool, s.handleParseFile)

	extractTextTool := mcp.NewTool(
		"invoice_extract_text",
		mcp.WithDescription("Extract the raw text layer from a PDF file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(extractTextTool, s.handleExtractText)

	validateFileTool := mcp.NewTool(
		"invoice_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	searchDirectoryTool := mcp.NewTool(
		"invoice_search_directory",
		mcp.WithDescription("Search for PDF files in a directory with optional filename matching"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query matched against filenames"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)

	serverInfoTool := mcp.NewTool(
		"invoice_server_info",
		mcp.WithDescription("Get server information, available tools, and directory contents"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleParseFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.ParseFileRequest{Path: path}
	result, err := s.pdfService.ParseFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatParseFileResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleExtractText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.ExtractTextRequest{Path: path}
	result, err := s.pdfService.ExtractText(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extracted text from: %s\n", result.Path)
	responseText += fmt.Sprintf("Pages: %d\n", result.Pages)
	responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)
	if result.Text == "" {
		responseText += "\nWARNING: No text layer found. This is likely a scanned document; OCR is not supported.\n"
	} else {
		responseText += "\nText:\n"
		responseText += result.Text
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.ValidateFileRequest{Path: path}
	result, err := s.pdfService.ValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.InvoiceDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	req := pdf.SearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	}

	result, err := s.pdfService.SearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := pdf.ServerInfoRequest{}
	result, err := s.pdfService.ServerInfo(req, s.config.ServerName, s.config.Version, s.config.InvoiceDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatServerInfoResult(result)
	return mcp.NewToolResultText(responseText), nil
}

// Formatting methods
func (s *Server) formatParseFileResult(result *pdf.ParseFileResult) string {
	text := fmt.Sprintf("Parsed invoice: %s\n", result.Path)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)

	parse := result.Result
	text += "\nDocument Summary:\n"
	text += s.formatDocument(&parse.Document)

	text += "\nExtracted Fields:\n"
	if len(parse.Fields) == 0 {
		text += "  (none)\n"
	}
	for i, field := range parse.Fields {
		text += fmt.Sprintf("%d. %s\n", i+1, s.formatField(field))
	}

	stats := parse.Stats
	text += fmt.Sprintf("\nStats: %d fields total (%d pattern, %d table, %d amount, %d layout)\n",
		stats.TotalFields, stats.PatternFields, stats.TableFields, stats.AmountFields, stats.LayoutIncluded)

	return text
}

func (s *Server) formatDocument(doc *extract.DocumentAST) string {
	text := ""
	if doc.Meta.Title != "" {
		text += fmt.Sprintf("  Title: %s\n", doc.Meta.Title)
	}

	// Sorted keys keep the rendering stable run to run.
	if len(doc.Meta.ReferenceNumbers) > 0 {
		keys := make([]string, 0, len(doc.Meta.ReferenceNumbers))
		for key := range doc.Meta.ReferenceNumbers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		text += "  Reference Numbers:\n"
		for _, key := range keys {
			text += fmt.Sprintf("    %s: %s\n", key, doc.Meta.ReferenceNumbers[key])
		}
	}

	if doc.Parties.Issuer != "" {
		text += fmt.Sprintf("  Issuer: %s\n", doc.Parties.Issuer)
	}
	if doc.Parties.Recipient != "" {
		text += fmt.Sprintf("  Recipient: %s\n", doc.Parties.Recipient)
	}
	if doc.Dates.Signed != "" {
		text += fmt.Sprintf("  Signed: %s\n", doc.Dates.Signed)
	}
	if doc.Dates.Due != "" {
		text += fmt.Sprintf("  Due: %s\n", doc.Dates.Due)
	}

	if len(doc.Items) > 0 {
		text += fmt.Sprintf("  Line Items (%d):\n", len(doc.Items))
		for i, item := range doc.Items {
			line := fmt.Sprintf("    %d. %s (qty %d", i+1, item.Label, item.Quantity)
			if item.UnitPrice != nil {
				line += fmt.Sprintf(", unit price %.2f", *item.UnitPrice)
			}
			line += ")"
			if item.Status != "" {
				line += fmt.Sprintf(" [%s]", item.Status)
			}
			text += line + "\n"
		}
	}

	if text == "" {
		text = "  (nothing recognized)\n"
	}
	return text
}

func (s *Server) formatField(field extract.Field) string {
	meta := field.Meta()

	switch f := field.(type) {
	case extract.PatternField:
		return fmt.Sprintf("[%s] %s = %q (page %d, confidence %.2f)",
			meta.Source, f.FieldType, meta.Value, meta.Page, meta.Confidence)
	case extract.AmountField:
		return fmt.Sprintf("[%s] %s = %q (page %d, confidence %.2f)",
			meta.Source, f.FieldType, meta.Value, meta.Page, meta.Confidence)
	case extract.TableField:
		return fmt.Sprintf("[%s] row %d = %q (page %d, confidence %.2f)",
			meta.Source, f.RowIndex, meta.Value, meta.Page, meta.Confidence)
	default:
		return fmt.Sprintf("[%s] %q (page %d, confidence %.2f)",
			meta.Source, meta.Value, meta.Page, meta.Confidence)
	}
}

func (s *Server) formatSearchDirectoryResult(result *pdf.SearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatServerInfoResult(result *pdf.ServerInfoResult) string {
	text := fmt.Sprintf("%s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	// Directory contents
	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("Directory Contents (%d PDF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "Directory Contents: No PDF files found in default directory\n\n"
	}

	// Available tools
	text += "Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting invoice parser MCP server in stdio mode")
		log.Printf("Invoice directory: %s", s.config.InvoiceDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs library only drives stdio transport here.
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
