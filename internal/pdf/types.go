package pdf

import "github.com/docfield/mcp-invoice-parser/internal/extract"

// FileInfo describes one invoice PDF found on disk.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// ParseFileRequest asks for the full extraction pipeline over one PDF file.
type ParseFileRequest struct {
	Path string `json:"path"`
}

// ExtractTextRequest asks for the raw text layer of a PDF file.
type ExtractTextRequest struct {
	Path string `json:"path"`
}

// ValidateFileRequest asks whether a file is a structurally sound PDF.
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// SearchDirectoryRequest asks for PDF files under a directory, optionally
// filtered by a filename query.
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ServerInfoRequest asks for server metadata and usage guidance.
type ServerInfoRequest struct{}

// Response Types

// ParseFileResult is the pipeline output for one file.
type ParseFileResult struct {
	Path   string               `json:"path"`
	Size   int64                `json:"size"`
	Pages  int                  `json:"pages"`
	Result *extract.ParseResult `json:"result"`
}

// ExtractTextResult is the raw text layer of one file.
type ExtractTextResult struct {
	Path  string `json:"path"`
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Size  int64  `json:"size"`
}

// ValidateFileResult is the validation verdict for one file.
type ValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// SearchDirectoryResult lists the PDFs found under a directory.
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// ToolInfo describes one MCP tool for server-info output.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  string `json:"parameters"`
}

// ServerInfoResult carries server metadata and discovery output.
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
}
