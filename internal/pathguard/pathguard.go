// Package pathguard confines file access to a configured documents
// directory. Every path the server touches on behalf of a client passes
// through a Guard first.
package pathguard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Guard validates that file paths stay within a configured root directory
type Guard struct {
	root string
}

// NewGuard creates a guard for the given root directory. The directory does
// not need to exist yet; validation is skipped until it does, which allows
// configuring a directory that is created later.
func NewGuard(root string) (*Guard, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory cannot be empty")
	}
	return &Guard{root: root}, nil
}

// Root returns the configured root directory
func (g *Guard) Root() string {
	return g.root
}

// ValidatePath checks that a path resolves inside the root directory
func (g *Guard) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if _, err := os.Stat(g.root); os.IsNotExist(err) {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	within, err := g.contains(absPath)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}

	return nil
}

// ValidateDirectory checks that a directory path is inside the root and, if
// it exists, actually is a directory
func (g *Guard) ValidateDirectory(dirPath string) error {
	if err := g.ValidatePath(dirPath); err != nil {
		return err
	}

	if _, err := os.Stat(g.root); os.IsNotExist(err) {
		return nil
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}

	return nil
}

// Resolve normalizes a path to an absolute path under the root, treating
// relative paths as relative to the root, and validates the result. Null
// bytes are stripped before resolution.
func (g *Guard) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(g.root, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := g.ValidatePath(absPath); err != nil {
		return "", err
	}

	return absPath, nil
}

// contains reports whether a path lies within the root, comparing both the
// literal and symlink-resolved forms so a link cannot escape the directory
func (g *Guard) contains(path string) (bool, error) {
	absRoot, err := filepath.Abs(g.root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve root directory: %w", err)
	}

	cleanPath := filepath.Clean(path)
	cleanRoot := filepath.Clean(absRoot)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}

	realRoot := cleanRoot
	if resolved, err := filepath.EvalSymlinks(cleanRoot); err == nil {
		realRoot = resolved
	}

	return underDir(cleanPath, cleanRoot, realRoot) &&
		underDir(realPath, cleanRoot, realRoot), nil
}

// underDir reports whether path equals or is nested below either directory
func underDir(path, dir, realDir string) bool {
	sep := string(filepath.Separator)

	dirPrefix := dir
	if !strings.HasSuffix(dirPrefix, sep) {
		dirPrefix += sep
	}
	realPrefix := realDir
	if !strings.HasSuffix(realPrefix, sep) {
		realPrefix += sep
	}

	return strings.HasPrefix(path, dirPrefix) || path == dir ||
		strings.HasPrefix(path, realPrefix) || path == realDir
}
