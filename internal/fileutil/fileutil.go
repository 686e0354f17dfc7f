// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var ErrNotMarkdown = errors.New("file must have .md or .markdown extension")

// IsMarkdownPath reports whether the path has a Markdown extension.
func IsMarkdownPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// ValidateMarkdownPath returns ErrNotMarkdown for non-Markdown paths.
func ValidateMarkdownPath(path string) error {
	if !IsMarkdownPath(path) {
		return fmt.Errorf("%w: got %q", ErrNotMarkdown, filepath.Ext(path))
	}
	return nil
}

// ReplaceExtension swaps a path's extension, keeping directory and base.
func ReplaceExtension(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}

// FileExists reports whether the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
