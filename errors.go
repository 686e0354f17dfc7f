package md2doc

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// ErrParse indicates the Markdown source could not be rendered to a
	// markup tree. Fatal: no partial output is attempted.
	ErrParse = errors.New("markdown parsing failed")

	// ErrSink indicates the document host rejected a structural insertion
	// or the final commit. Fatal: the walk stops and the document is left
	// in whatever state was already committed.
	ErrSink = errors.New("document sink operation failed")

	// Projection settings validation errors.
	ErrInvalidIndentWidth = errors.New("invalid indent width")
	ErrInvalidColor       = errors.New("invalid color")
)
