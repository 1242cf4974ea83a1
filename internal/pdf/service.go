package pdf

import (
	"fmt"
	"time"

	"github.com/docfield/mcp-invoice-parser/internal/descriptions"
	"github.com/docfield/mcp-invoice-parser/internal/extract"
	"github.com/docfield/mcp-invoice-parser/internal/pdf/security"
)

// Service orchestrates the PDF components behind the invoice tools.
type Service struct {
	maxFileSize   int64
	reader        *Reader
	validator     *Validator
	search        *Search
	parser        *extract.Parser
	pathValidator *security.PathValidator
}

// NewService creates a service rooted at the configured directory.
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	reader := NewReader(maxFileSize)
	return &Service{
		maxFileSize:   maxFileSize,
		reader:        reader,
		validator:     NewValidator(maxFileSize),
		search:        NewSearch(maxFileSize),
		parser:        extract.NewParser(reader),
		pathValidator: pathValidator,
	}, nil
}

// ParseFile runs the full extraction pipeline over one PDF file.
func (s *Service) ParseFile(req ParseFileRequest) (*ParseFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	info, buf, err := s.reader.ReadBytes(req.Path)
	if err != nil {
		return nil, err
	}

	result, err := s.parser.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", req.Path, err)
	}

	return &ParseFileResult{
		Path:   req.Path,
		Size:   info.Size(),
		Pages:  result.Pages,
		Result: result,
	}, nil
}

// ParseBuffer runs the extraction pipeline over an in-memory PDF.
func (s *Service) ParseBuffer(buf []byte) (*extract.ParseResult, error) {
	return s.parser.Parse(buf)
}

// ExtractText returns the raw text layer of a PDF file.
func (s *Service) ExtractText(req ExtractTextRequest) (*ExtractTextResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.reader.ReadFile(req)
}

// ValidateFile checks whether a file is a structurally sound PDF.
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// SearchDirectory finds PDF files under a directory, defaulting to the
// configured directory when none is given.
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}
	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.search.SearchDirectory(req)
}

// GetMaxFileSize returns the maximum file size limit.
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidPDF performs a quick validation check on a file.
func (s *Service) IsValidPDF(path string) bool {
	return s.validator.IsValidPDF(path)
}

// ServerInfo returns server metadata, the tool catalog, and a bounded
// listing of the default directory.
func (s *Service) ServerInfo(_ ServerInfoRequest, serverName, version, defaultDirectory string) (*ServerInfoResult, error) {
	validatedDir := defaultDirectory
	if err := s.pathValidator.ValidateDirectory(defaultDirectory); err != nil {
		validatedDir = s.pathValidator.GetConfiguredDirectory()
	}

	// Scan with a timeout so a huge or slow directory cannot stall the
	// info call. Contents stay empty on timeout or error.
	directoryContents := []FileInfo{}
	resultChan := make(chan []FileInfo, 1)
	errorChan := make(chan error, 1)
	go func() {
		files, err := s.search.FindPDFsLimited(validatedDir, 100)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- files
	}()
	select {
	case files := <-resultChan:
		directoryContents = files
	case <-errorChan:
	case <-time.After(5 * time.Second):
	}

	availableTools := []ToolInfo{
		{
			Name:        "invoice_parse_file",
			Description: descriptions.GetToolDescription("invoice_parse_file"),
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "invoice_extract_text",
			Description: descriptions.GetToolDescription("invoice_extract_text"),
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "invoice_validate_file",
			Description: descriptions.GetToolDescription("invoice_validate_file"),
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "invoice_search_directory",
			Description: descriptions.GetToolDescription("invoice_search_directory"),
			Parameters: "directory (optional): Directory path to search (uses default if empty), " +
				"query (optional): Search query matched against filenames",
		},
		{
			Name:        "invoice_server_info",
			Description: descriptions.GetToolDescription("invoice_server_info"),
			Parameters:  "none",
		},
	}

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  validatedDir,
		MaxFileSize:       s.maxFileSize,
		AvailableTools:    availableTools,
		DirectoryContents: directoryContents,
	}, nil
}
