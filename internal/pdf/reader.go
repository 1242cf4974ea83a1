package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docfield/mcp-invoice-parser/internal/extract"
)

// Reader recovers the text layer of invoice PDFs. It reads either from
// disk or from an in-memory buffer, which also makes it the
// text-extraction collaborator of the extraction pipeline.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a reader with the specified size constraints.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ExtractText implements extract.TextExtractor over an in-memory buffer.
// A PDF without a text layer (scanned images) yields empty text, not an
// error; only a structurally unreadable buffer fails.
func (r *Reader) ExtractText(buf []byte) (*extract.ExtractedText, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("document buffer is empty")
	}
	if r.maxFileSize > 0 && int64(len(buf)) > r.maxFileSize {
		return nil, fmt.Errorf("document too large: %d bytes (max: %d bytes)", len(buf), r.maxFileSize)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &extract.ExtractedText{
		Text:      r.collectText(pdfReader),
		PageCount: pdfReader.NumPage(),
	}, nil
}

// ReadFile extracts the text layer from a PDF file on disk.
func (r *Reader) ReadFile(req ExtractTextRequest) (*ExtractTextResult, error) {
	fileInfo, buf, err := r.readValidatedFile(req.Path)
	if err != nil {
		return nil, err
	}

	extracted, err := r.ExtractText(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	return &ExtractTextResult{
		Path:  req.Path,
		Text:  extracted.Text,
		Pages: extracted.PageCount,
		Size:  fileInfo.Size(),
	}, nil
}

// ReadBytes loads a PDF file into memory after basic validation.
func (r *Reader) ReadBytes(path string) (os.FileInfo, []byte, error) {
	return r.readValidatedFile(path)
}

func (r *Reader) readValidatedFile(path string) (os.FileInfo, []byte, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() > r.maxFileSize {
		return nil, nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), r.maxFileSize)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read file: %w", err)
	}
	return fileInfo, buf, nil
}

// collectText walks every page and concatenates its plain text. Pages that
// fail to decode are skipped so one bad page never loses the document.
func (r *Reader) collectText(pdfReader *pdf.Reader) string {
	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
