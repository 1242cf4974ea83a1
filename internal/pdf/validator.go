package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator checks that a file or buffer is a structurally sound PDF
// before it is fed into the extraction pipeline.
type Validator struct {
	maxFileSize int64
	conf        *model.Configuration
}

// NewValidator creates a validator with the specified size constraint.
// Validation is relaxed: invoices from the wild are frequently produced by
// sloppy generators and strict mode would reject readable documents.
func NewValidator(maxFileSize int64) *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Validator{
		maxFileSize: maxFileSize,
		conf:        conf,
	}
}

// ValidateFile validates a PDF file on disk. A failed validation is a
// result, not a processing error.
func (v *Validator) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	result := &ValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	if err := v.validatePDFFile(req.Path); err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // validation verdict, not a processing error
	}

	result.Valid = true
	return result, nil
}

// ValidateBuffer checks an in-memory document without touching disk.
func (v *Validator) ValidateBuffer(buf []byte) error {
	if len(buf) == 0 {
		return fmt.Errorf("document buffer is empty")
	}
	if v.maxFileSize > 0 && int64(len(buf)) > v.maxFileSize {
		return fmt.Errorf("document too large: %d bytes (max: %d bytes)", len(buf), v.maxFileSize)
	}

	ctx, err := api.ReadContext(bytes.NewReader(buf), v.conf)
	if err != nil {
		return fmt.Errorf("failed to read PDF structure: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("failed to determine page count: %w", err)
	}
	return nil
}

// ValidateFileInfo performs the cheap checks that do not require opening
// the file; directory walks use it to skip obvious non-candidates.
func (v *Validator) ValidateFileInfo(path string, info os.FileInfo) error {
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if info.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), v.maxFileSize)
	}
	return nil
}

// IsValidPDF reports whether a file passes full validation.
func (v *Validator) IsValidPDF(path string) bool {
	return v.validatePDFFile(path) == nil
}

func (v *Validator) validatePDFFile(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if err := v.ValidateFileInfo(path, info); err != nil {
		return err
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}
	return v.ValidateBuffer(buf)
}
