package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewReader(t *testing.T) {
	reader := NewReader(100 * 1024 * 1024)
	if reader.maxFileSize != 100*1024*1024 {
		t.Errorf("NewReader() maxFileSize = %v, want %v", reader.maxFileSize, 100*1024*1024)
	}
	if reader.maxTextSize != 10*1024*1024 {
		t.Errorf("NewReader() maxTextSize = %v, want %v", reader.maxTextSize, 10*1024*1024)
	}
}

func TestReader_ReadFile(t *testing.T) {
	reader := NewReader(1024 * 1024)
	tempDir := t.TempDir()

	txtPath := filepath.Join(tempDir, "invoice.txt")
	dirPath := filepath.Join(tempDir, "invoices")
	largePath := filepath.Join(tempDir, "large.pdf")
	fakePath := filepath.Join(tempDir, "fake.pdf")

	if err := os.WriteFile(txtPath, []byte("This is not a PDF"), 0o644); err != nil {
		t.Fatalf("Failed to create txt file: %v", err)
	}
	if err := os.Mkdir(dirPath, 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(largePath, make([]byte, 1024*1024+1), 0o644); err != nil {
		t.Fatalf("Failed to create large file: %v", err)
	}
	if err := os.WriteFile(fakePath, []byte("not really a pdf"), 0o644); err != nil {
		t.Fatalf("Failed to create fake pdf: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		errPart string
	}{
		{
			name:    "empty path",
			path:    "",
			errPart: "path cannot be empty",
		},
		{
			name:    "non-existent file",
			path:    filepath.Join(tempDir, "missing.pdf"),
			errPart: "does not exist",
		},
		{
			name:    "wrong extension",
			path:    txtPath,
			errPart: "not a PDF",
		},
		{
			name:    "directory",
			path:    dirPath,
			errPart: "directory",
		},
		{
			name:    "over size limit",
			path:    largePath,
			errPart: "too large",
		},
		{
			name:    "unreadable PDF content",
			path:    fakePath,
			errPart: "failed to extract text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := reader.ReadFile(ExtractTextRequest{Path: tt.path})
			if err == nil {
				t.Fatalf("expected error but got result: %+v", result)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.errPart)
			}
		})
	}
}

func TestReader_ExtractText(t *testing.T) {
	reader := NewReader(1024)

	t.Run("empty buffer", func(t *testing.T) {
		if _, err := reader.ExtractText(nil); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("oversized buffer", func(t *testing.T) {
		if _, err := reader.ExtractText(make([]byte, 2048)); err == nil {
			t.Error("expected error but got none")
		}
	})

	t.Run("non-PDF bytes", func(t *testing.T) {
		if _, err := reader.ExtractText([]byte("plain text pretending")); err == nil {
			t.Error("expected error but got none")
		}
	})
}

func TestReader_ReadBytes(t *testing.T) {
	reader := NewReader(1024 * 1024)
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "invoice.pdf")
	content := []byte("%PDF-1.4 placeholder bytes")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	info, buf, err := reader.ReadBytes(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Size() != int64(len(content)) {
		t.Errorf("size = %d, want %d", info.Size(), len(content))
	}
	if string(buf) != string(content) {
		t.Error("buffer does not match file content")
	}
}
