// Package docxsink implements document.Sink by writing OOXML .docx
// files. All operations buffer into an in-memory document model;
// Commit assembles the package (content types, relationships, styles,
// document body) and writes it out as a zip archive.
package docxsink

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rvoss/go-md2doc/document"
)

// Sentinel errors for sink operations.
var (
	ErrUnknownHandle    = errors.New("docxsink: unknown handle")
	ErrInvalidGrid      = errors.New("docxsink: grid is empty or not rectangular")
	ErrWrite            = errors.New("docxsink: writing archive failed")
	ErrAlreadyCommitted = errors.New("docxsink: writer sink already committed")
)

// paragraph is a buffered paragraph awaiting commit.
type paragraph struct {
	text        string
	fragment    string
	hasFragment bool
	style       document.StyleID
	// document.SpacingKeep leaves the style's own spacing in place.
	spacingBefore int
	spacingAfter  int
}

// table is a buffered table awaiting commit.
type table struct {
	grid    document.Grid
	borders map[document.BorderEdge]document.Color
	shading map[cellKey]document.Color
}

type cellKey struct{ row, col int }

// block preserves document order across paragraphs and tables.
type block struct {
	para *paragraph
	tab  *table
}

// Sink buffers document operations and writes a .docx on Commit.
// Handles stay valid across commits; a path-backed sink rewrites the
// file on every Commit, a writer-backed sink may commit only once.
type Sink struct {
	path      string
	w         io.Writer
	committed bool

	blocks []block
	paras  []*paragraph
	tables []*table
}

var _ document.Sink = (*Sink)(nil)

// New creates a sink that writes the document to path on Commit.
func New(path string) *Sink {
	return &Sink{path: path}
}

// NewWriter creates a sink that writes the document to w on Commit.
// Only a single Commit is allowed.
func NewWriter(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) AppendParagraph(text string) (document.ParagraphHandle, error) {
	return s.appendPara(&paragraph{
		text:          text,
		spacingBefore: document.SpacingKeep,
		spacingAfter:  document.SpacingKeep,
	}), nil
}

func (s *Sink) AppendEmptyParagraph() (document.ParagraphHandle, error) {
	return s.appendPara(&paragraph{
		spacingBefore: document.SpacingKeep,
		spacingAfter:  document.SpacingKeep,
	}), nil
}

func (s *Sink) appendPara(p *paragraph) document.ParagraphHandle {
	h := document.ParagraphHandle(len(s.paras))
	s.paras = append(s.paras, p)
	s.blocks = append(s.blocks, block{para: p})
	return h
}

func (s *Sink) ReplaceContent(h document.ParagraphHandle, fragment string) error {
	p, err := s.para(h)
	if err != nil {
		return err
	}
	p.text = ""
	p.fragment = fragment
	p.hasFragment = true
	return nil
}

func (s *Sink) AppendTable(g document.Grid) (document.TableHandle, error) {
	if g.Rows() == 0 || g.Cols() == 0 {
		return 0, ErrInvalidGrid
	}
	for _, row := range g {
		if len(row) != g.Cols() {
			return 0, ErrInvalidGrid
		}
	}
	t := &table{
		grid:    g,
		borders: make(map[document.BorderEdge]document.Color),
		shading: make(map[cellKey]document.Color),
	}
	h := document.TableHandle(len(s.tables))
	s.tables = append(s.tables, t)
	s.blocks = append(s.blocks, block{tab: t})
	return h, nil
}

func (s *Sink) SetStyle(h document.ParagraphHandle, style document.StyleID) error {
	p, err := s.para(h)
	if err != nil {
		return err
	}
	p.style = style
	return nil
}

func (s *Sink) SetSpacing(h document.ParagraphHandle, before, after int) error {
	p, err := s.para(h)
	if err != nil {
		return err
	}
	if before != document.SpacingKeep {
		p.spacingBefore = before
	}
	if after != document.SpacingKeep {
		p.spacingAfter = after
	}
	return nil
}

// SetTableSpacing is not representable in WordprocessingML: a table has
// no spacing properties of its own, only its neighboring paragraphs do.
func (s *Sink) SetTableSpacing(t document.TableHandle, before, after int) error {
	if _, err := s.table(t); err != nil {
		return err
	}
	return document.ErrCapabilityUnavailable
}

func (s *Sink) SetBorderColor(h document.TableHandle, edge document.BorderEdge, color document.Color) error {
	t, err := s.table(h)
	if err != nil {
		return err
	}
	t.borders[edge] = color
	return nil
}

func (s *Sink) SetCellShading(h document.TableHandle, row, col int, color document.Color) error {
	t, err := s.table(h)
	if err != nil {
		return err
	}
	if row < 0 || row >= t.grid.Rows() || col < 0 || col >= t.grid.Cols() {
		return fmt.Errorf("%w: cell [%d,%d] outside %dx%d grid",
			ErrUnknownHandle, row, col, t.grid.Rows(), t.grid.Cols())
	}
	t.shading[cellKey{row, col}] = color
	return nil
}

// Commit assembles the OOXML package and writes it to the destination.
func (s *Sink) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.path != "" {
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		if err := s.writeArchive(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		return nil
	}

	if s.committed {
		return ErrAlreadyCommitted
	}
	if err := s.writeArchive(s.w); err != nil {
		return err
	}
	s.committed = true
	return nil
}

func (s *Sink) writeArchive(w io.Writer) error {
	zw := zip.NewWriter(w)

	entries := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", mustPart(partContentTypes)},
		{"_rels/.rels", mustPart(partRels)},
		{"word/_rels/document.xml.rels", mustPart(partDocumentRels)},
		{"word/styles.xml", mustPart(partStyles)},
		{"word/document.xml", s.documentXML()},
	}

	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		if _, err := io.WriteString(f, e.content); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (s *Sink) para(h document.ParagraphHandle) (*paragraph, error) {
	if int(h) < 0 || int(h) >= len(s.paras) {
		return nil, fmt.Errorf("%w: paragraph %d", ErrUnknownHandle, h)
	}
	return s.paras[h], nil
}

func (s *Sink) table(h document.TableHandle) (*table, error) {
	if int(h) < 0 || int(h) >= len(s.tables) {
		return nil, fmt.Errorf("%w: table %d", ErrUnknownHandle, h)
	}
	return s.tables[h], nil
}
