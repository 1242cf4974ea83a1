package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name      string
		dir       string
		wantError bool
	}{
		{
			name:      "valid directory",
			dir:       tempDir,
			wantError: false,
		},
		{
			name:      "empty directory",
			dir:       "",
			wantError: true,
		},
		{
			name:      "non-existent directory",
			dir:       "/non/existent/path",
			wantError: false, // placeholder paths are allowed
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator, err := NewPathValidator(tt.dir)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if validator == nil {
				t.Error("Expected validator but got nil")
			}
		})
	}
}

func TestPathValidator_ValidatePath(t *testing.T) {
	tempDir := t.TempDir()

	subDir := filepath.Join(tempDir, "invoices")
	if err := os.Mkdir(subDir, 0o755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	validFile := filepath.Join(tempDir, "invoice.pdf")
	subFile := filepath.Join(subDir, "march.pdf")
	for _, path := range []string{validFile, subFile} {
		if err := os.WriteFile(path, []byte("test"), 0o644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{
			name:      "file in configured directory",
			path:      validFile,
			wantError: false,
		},
		{
			name:      "file in subdirectory",
			path:      subFile,
			wantError: false,
		},
		{
			name:      "configured directory itself",
			path:      tempDir,
			wantError: false,
		},
		{
			name:      "empty path",
			path:      "",
			wantError: true,
		},
		{
			name:      "outside directory",
			path:      "/etc/passwd",
			wantError: true,
		},
		{
			name:      "traversal escape",
			path:      filepath.Join(tempDir, "..", "escape.pdf"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePath(tt.path)
			if tt.wantError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestPathValidator_NormalizePath(t *testing.T) {
	tempDir := t.TempDir()

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	t.Run("relative path joins configured directory", func(t *testing.T) {
		got, err := validator.NormalizePath("invoice.pdf")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := filepath.Join(tempDir, "invoice.pdf")
		if got != want {
			t.Errorf("NormalizePath() = %q, want %q", got, want)
		}
	})

	t.Run("absolute path inside directory passes through", func(t *testing.T) {
		want := filepath.Join(tempDir, "sub", "invoice.pdf")
		got, err := validator.NormalizePath(want)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("NormalizePath() = %q, want %q", got, want)
		}
	})

	t.Run("escape attempt rejected", func(t *testing.T) {
		if _, err := validator.NormalizePath("../outside.pdf"); err == nil {
			t.Error("Expected error but got none")
		}
	})

	t.Run("empty path rejected", func(t *testing.T) {
		if _, err := validator.NormalizePath(""); err == nil {
			t.Error("Expected error but got none")
		}
	})
}

func TestPathValidator_ValidateDirectory(t *testing.T) {
	tempDir := t.TempDir()

	subDir := filepath.Join(tempDir, "archive")
	if err := os.Mkdir(subDir, 0o755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	file := filepath.Join(tempDir, "invoice.pdf")
	if err := os.WriteFile(file, []byte("test"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	if err := validator.ValidateDirectory(subDir); err != nil {
		t.Errorf("Unexpected error for subdirectory: %v", err)
	}
	if err := validator.ValidateDirectory(filepath.Join(tempDir, "missing")); err != nil {
		t.Errorf("Unexpected error for not-yet-created directory: %v", err)
	}
	if err := validator.ValidateDirectory(file); err == nil {
		t.Error("Expected error for file path but got none")
	}
	if err := validator.ValidateDirectory("/etc"); err == nil {
		t.Error("Expected error for outside directory but got none")
	}
}
