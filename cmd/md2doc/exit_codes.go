package main

import (
	"errors"
	"os"

	md2doc "github.com/rvoss/go-md2doc"
	"github.com/rvoss/go-md2doc/docxsink"
	"github.com/rvoss/go-md2doc/internal/config"
	"github.com/rvoss/go-md2doc/internal/fileutil"
)

// Exit codes for the md2doc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error (including parse failures)
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitSink    = 4 // Document sink/write errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Sink errors (exit 4)
	if errors.Is(err, md2doc.ErrSink) ||
		errors.Is(err, docxsink.ErrWrite) {
		return ExitSink
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, md2doc.ErrEmptyMarkdown) ||
		errors.Is(err, md2doc.ErrInvalidIndentWidth) ||
		errors.Is(err, md2doc.ErrInvalidColor) ||
		errors.Is(err, fileutil.ErrNotMarkdown) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
