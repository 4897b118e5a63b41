package pathguard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewGuard(t *testing.T) {
	if _, err := NewGuard(""); err == nil {
		t.Error("expected error for empty root")
	}

	g, err := NewGuard("/some/dir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Root() != "/some/dir" {
		t.Errorf("expected root preserved, got %s", g.Root())
	}
}

func TestGuard_ValidatePath(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "pathguard_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	inside := filepath.Join(tempDir, "doc.pdf")
	if err := os.WriteFile(inside, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	g, err := NewGuard(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{"empty path", "", true},
		{"path inside root", inside, false},
		{"root itself", tempDir, false},
		{"path outside root", "/etc/passwd", true},
		{"traversal outside root", filepath.Join(tempDir, "..", "escape.pdf"), true},
		{"nonexistent path inside root", filepath.Join(tempDir, "missing.pdf"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.ValidatePath(tt.path)
			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGuard_ValidatePath_NonexistentRoot(t *testing.T) {
	g, err := NewGuard("/nonexistent/root/dir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Validation is skipped until the root exists
	if err := g.ValidatePath("/anywhere/at/all.pdf"); err != nil {
		t.Errorf("expected no error for nonexistent root, got %v", err)
	}
}

func TestGuard_ValidateDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "pathguard_dir_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	subDir := filepath.Join(tempDir, "sub")
	if err := os.Mkdir(subDir, 0o750); err != nil {
		t.Fatalf("failed to create sub dir: %v", err)
	}

	file := filepath.Join(tempDir, "file.pdf")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	g, err := NewGuard(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.ValidateDirectory(subDir); err != nil {
		t.Errorf("unexpected error for valid directory: %v", err)
	}
	if err := g.ValidateDirectory(file); err == nil {
		t.Error("expected error for file path")
	}
	if err := g.ValidateDirectory(filepath.Join(tempDir, "missing")); err != nil {
		t.Errorf("nonexistent directory inside root should pass, got %v", err)
	}
}

func TestGuard_Resolve(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "pathguard_resolve_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	g, err := NewGuard(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Relative paths resolve against the root
	resolved, err := g.Resolve("doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != filepath.Join(tempDir, "doc.pdf") {
		t.Errorf("unexpected resolution: %s", resolved)
	}

	// Null bytes are stripped before resolution
	resolved, err = g.Resolve("doc\x00.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != filepath.Join(tempDir, "doc.pdf") {
		t.Errorf("unexpected resolution: %s", resolved)
	}

	// Escapes are rejected
	if _, err := g.Resolve("../escape.pdf"); err == nil {
		t.Error("expected error for traversal escape")
	}

	if _, err := g.Resolve(""); err == nil {
		t.Error("expected error for empty path")
	}
}
