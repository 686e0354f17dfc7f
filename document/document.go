// Package document defines the vocabulary shared between the conversion
// pipeline and document sinks: the Sink capability interface, element
// handles, table grids, and the style/border/color constants the
// projection emits.
//
// A Sink is an append-only view of a host document. Insertions return
// opaque handles; formatting calls against a handle are buffered by the
// sink and take effect at the next Commit. Handles are write-only: no
// read-back of document structure is possible before a commit boundary.
package document

import (
	"context"
	"errors"
)

// ErrCapabilityUnavailable indicates an optional cosmetic operation is not
// supported by the host. Callers treat it as non-fatal.
var ErrCapabilityUnavailable = errors.New("document: capability unavailable")

// ParagraphHandle is an opaque reference to an appended paragraph.
type ParagraphHandle int

// TableHandle is an opaque reference to an appended table.
type TableHandle int

// StyleID identifies a named paragraph style in the host document.
type StyleID string

// Paragraph styles emitted by the projection.
const (
	StyleNormal        StyleID = "Normal"
	StyleHeading1      StyleID = "Heading1"
	StyleHeading2      StyleID = "Heading2"
	StyleHeading3      StyleID = "Heading3"
	StyleListParagraph StyleID = "ListParagraph"
)

// BorderEdge identifies one of the six table border positions.
type BorderEdge string

// Table border edges.
const (
	EdgeTop     BorderEdge = "top"
	EdgeBottom  BorderEdge = "bottom"
	EdgeLeft    BorderEdge = "left"
	EdgeRight   BorderEdge = "right"
	EdgeInsideH BorderEdge = "insideH"
	EdgeInsideV BorderEdge = "insideV"
)

// Edges lists all six border positions in application order.
var Edges = []BorderEdge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight, EdgeInsideH, EdgeInsideV}

// Color is an RRGGBB hex color without the leading "#".
type Color string

// Grid is a rectangular table of cell strings. Producers guarantee every
// row has the same length and no cell is the empty string.
type Grid [][]string

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of columns, or 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// SpacingKeep is passed to SetSpacing/SetTableSpacing for a side that
// should be left unchanged.
const SpacingKeep = -1

// Sink is the append-only capability a host document exposes to the
// conversion pipeline. All formatting calls are buffered; Commit applies
// them. Implementations may reject SetSpacing/SetTableSpacing with
// ErrCapabilityUnavailable; every other error is treated as fatal by
// callers.
type Sink interface {
	// AppendParagraph appends a plain-text paragraph.
	AppendParagraph(text string) (ParagraphHandle, error)

	// AppendEmptyParagraph appends an empty paragraph placeholder,
	// typically followed by ReplaceContent.
	AppendEmptyParagraph() (ParagraphHandle, error)

	// ReplaceContent replaces a paragraph's content with an inline HTML
	// fragment, preserving bold/italic/links/code formatting.
	ReplaceContent(h ParagraphHandle, fragment string) error

	// AppendTable appends a table with the given rectangular grid.
	AppendTable(g Grid) (TableHandle, error)

	// SetStyle applies a named paragraph style.
	SetStyle(h ParagraphHandle, style StyleID) error

	// SetSpacing adjusts paragraph spacing in twentieths of a point.
	// Pass SpacingKeep for a side to leave it unchanged.
	// May return ErrCapabilityUnavailable.
	SetSpacing(h ParagraphHandle, before, after int) error

	// SetTableSpacing adjusts spacing around a table's occupied range.
	// May return ErrCapabilityUnavailable.
	SetTableSpacing(t TableHandle, before, after int) error

	// SetBorderColor colors one border edge of a table.
	SetBorderColor(t TableHandle, edge BorderEdge, color Color) error

	// SetCellShading fills a cell background. Row and col are 0-based.
	SetCellShading(t TableHandle, row, col int, color Color) error

	// Commit applies all buffered mutations to the host document. It must
	// be called at least once after the last operation of a conversion.
	Commit(ctx context.Context) error
}
