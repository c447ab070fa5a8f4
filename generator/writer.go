package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openapitor/openapitor/internal/fileutil"
)

// WriteFiles flushes every staged file to outputDir, creating directories as
// needed. Grounded on the teacher's GenerateResult.WriteFiles, adapted from
// flat-only output (the teacher rejects any file name containing a path
// separator) to a real package tree: this generator stages files into
// subdirectories on purpose (types/, one per tag, internal/utils/), so the
// safety check here instead rejects ".." path components and absolute
// paths, the actual traversal hazards, while still permitting legitimate
// subdirectories.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("generator: creating output directory: %w", err)
	}

	for _, file := range r.Files {
		relPath, err := safeRelPath(file.Name)
		if err != nil {
			return err
		}
		fullPath := filepath.Join(outputDir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return fmt.Errorf("generator: creating directory for %s: %w", file.Name, err)
		}
		if err := os.WriteFile(fullPath, file.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("generator: writing %s: %w", file.Name, err)
		}
	}

	return nil
}

// WriteFile writes a single generated file to path, creating parent
// directories as needed.
func (f *GeneratedFile) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("generator: creating directory: %w", err)
	}
	if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("generator: writing file: %w", err)
	}
	return nil
}

// safeRelPath validates a staged file name is a relative path with no ".."
// traversal component and returns it cleaned, ready to Join onto an output
// directory.
func safeRelPath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("generator: empty file name")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("generator: invalid file name %q: must be relative", name)
	}
	clean := filepath.Clean(name)
	for _, part := range strings.Split(clean, string(filepath.Separator)) {
		if part == ".." {
			return "", fmt.Errorf("generator: invalid file name %q: must not traverse out of the output directory", name)
		}
	}
	return clean, nil
}
