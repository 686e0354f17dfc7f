package document

import (
	"context"
	"fmt"
	"strings"
)

// OpKind identifies a recorded sink operation.
type OpKind string

// Recorded operation kinds.
const (
	OpAppendParagraph      OpKind = "AppendParagraph"
	OpAppendEmptyParagraph OpKind = "AppendEmptyParagraph"
	OpReplaceContent       OpKind = "ReplaceContent"
	OpAppendTable          OpKind = "AppendTable"
	OpSetStyle             OpKind = "SetStyle"
	OpSetSpacing           OpKind = "SetSpacing"
	OpSetTableSpacing      OpKind = "SetTableSpacing"
	OpSetBorderColor       OpKind = "SetBorderColor"
	OpSetCellShading       OpKind = "SetCellShading"
	OpCommit               OpKind = "Commit"
)

// Op is a single recorded sink operation.
type Op struct {
	Kind     OpKind
	Text     string
	Fragment string
	Grid     Grid
	Style    StyleID
	Edge     BorderEdge
	Color    Color
	Row, Col int
	Before   int
	After    int
	Para     ParagraphHandle
	Table    TableHandle
}

// String renders the op for dry-run output.
func (o Op) String() string {
	switch o.Kind {
	case OpAppendParagraph:
		return fmt.Sprintf("%s %q", o.Kind, o.Text)
	case OpReplaceContent:
		return fmt.Sprintf("%s p%d %q", o.Kind, o.Para, o.Fragment)
	case OpAppendTable:
		return fmt.Sprintf("%s %dx%d", o.Kind, o.Grid.Rows(), o.Grid.Cols())
	case OpSetStyle:
		return fmt.Sprintf("%s p%d %s", o.Kind, o.Para, o.Style)
	case OpSetSpacing:
		return fmt.Sprintf("%s p%d before=%d after=%d", o.Kind, o.Para, o.Before, o.After)
	case OpSetTableSpacing:
		return fmt.Sprintf("%s t%d before=%d after=%d", o.Kind, o.Table, o.Before, o.After)
	case OpSetBorderColor:
		return fmt.Sprintf("%s t%d %s #%s", o.Kind, o.Table, o.Edge, o.Color)
	case OpSetCellShading:
		return fmt.Sprintf("%s t%d [%d,%d] #%s", o.Kind, o.Table, o.Row, o.Col, o.Color)
	default:
		return string(o.Kind)
	}
}

// Recorder is a Sink that records every operation instead of writing to a
// host document. It backs the CLI dry-run mode and tests.
//
// DenySpacing makes SetSpacing and SetTableSpacing return
// ErrCapabilityUnavailable, simulating a host without spacing support.
type Recorder struct {
	Ops         []Op
	DenySpacing bool

	paragraphs int
	tables     int
	commits    int
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) AppendParagraph(text string) (ParagraphHandle, error) {
	h := ParagraphHandle(r.paragraphs)
	r.paragraphs++
	r.Ops = append(r.Ops, Op{Kind: OpAppendParagraph, Text: text, Para: h})
	return h, nil
}

func (r *Recorder) AppendEmptyParagraph() (ParagraphHandle, error) {
	h := ParagraphHandle(r.paragraphs)
	r.paragraphs++
	r.Ops = append(r.Ops, Op{Kind: OpAppendEmptyParagraph, Para: h})
	return h, nil
}

func (r *Recorder) ReplaceContent(h ParagraphHandle, fragment string) error {
	r.Ops = append(r.Ops, Op{Kind: OpReplaceContent, Para: h, Fragment: fragment})
	return nil
}

func (r *Recorder) AppendTable(g Grid) (TableHandle, error) {
	t := TableHandle(r.tables)
	r.tables++
	r.Ops = append(r.Ops, Op{Kind: OpAppendTable, Grid: g, Table: t})
	return t, nil
}

func (r *Recorder) SetStyle(h ParagraphHandle, style StyleID) error {
	r.Ops = append(r.Ops, Op{Kind: OpSetStyle, Para: h, Style: style})
	return nil
}

func (r *Recorder) SetSpacing(h ParagraphHandle, before, after int) error {
	if r.DenySpacing {
		return ErrCapabilityUnavailable
	}
	r.Ops = append(r.Ops, Op{Kind: OpSetSpacing, Para: h, Before: before, After: after})
	return nil
}

func (r *Recorder) SetTableSpacing(t TableHandle, before, after int) error {
	if r.DenySpacing {
		return ErrCapabilityUnavailable
	}
	r.Ops = append(r.Ops, Op{Kind: OpSetTableSpacing, Table: t, Before: before, After: after})
	return nil
}

func (r *Recorder) SetBorderColor(t TableHandle, edge BorderEdge, color Color) error {
	r.Ops = append(r.Ops, Op{Kind: OpSetBorderColor, Table: t, Edge: edge, Color: color})
	return nil
}

func (r *Recorder) SetCellShading(t TableHandle, row, col int, color Color) error {
	r.Ops = append(r.Ops, Op{Kind: OpSetCellShading, Table: t, Row: row, Col: col, Color: color})
	return nil
}

func (r *Recorder) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.commits++
	r.Ops = append(r.Ops, Op{Kind: OpCommit})
	return nil
}

// Commits reports how many times Commit was called.
func (r *Recorder) Commits() int { return r.commits }

// Kinds returns the sequence of recorded op kinds, for compact assertions.
func (r *Recorder) Kinds() []OpKind {
	kinds := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Summary renders one line per recorded op.
func (r *Recorder) Summary() string {
	var sb strings.Builder
	for _, op := range r.Ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
