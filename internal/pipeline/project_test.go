package pipeline

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rvoss/go-md2doc/document"
)

func projectMarkdown(t *testing.T, markdown string, cfg ProjectorConfig) (*document.Recorder, []Warning) {
	t.Helper()
	rec := &document.Recorder{}
	warnings, err := Project(rec, renderNodes(t, markdown), cfg)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	return rec, warnings
}

func projectHTML(t *testing.T, raw string, cfg ProjectorConfig) (*document.Recorder, []Warning) {
	t.Helper()
	nodes, err := parseFragment(raw)
	if err != nil {
		t.Fatalf("parseFragment() error = %v", err)
	}
	rec := &document.Recorder{}
	warnings, err := Project(rec, nodes, cfg)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	return rec, warnings
}

func opsOfKind(rec *document.Recorder, kind document.OpKind) []document.Op {
	var out []document.Op
	for _, op := range rec.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func paragraphTexts(rec *document.Recorder) []string {
	var out []string
	for _, op := range opsOfKind(rec, document.OpAppendParagraph) {
		out = append(out, op.Text)
	}
	return out
}

func TestProject_HeadingStyles(t *testing.T) {
	t.Parallel()

	rec, warnings := projectMarkdown(t, "# One\n\n## Two\n\n### Three", ProjectorConfig{})
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if got, want := paragraphTexts(rec), []string{"One", "Two", "Three"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("paragraph texts = %v, want %v", got, want)
	}

	styles := opsOfKind(rec, document.OpSetStyle)
	want := []document.StyleID{document.StyleHeading1, document.StyleHeading2, document.StyleHeading3}
	if len(styles) != len(want) {
		t.Fatalf("got %d style ops, want %d", len(styles), len(want))
	}
	for i, op := range styles {
		if op.Style != want[i] {
			t.Errorf("style[%d] = %s, want %s", i, op.Style, want[i])
		}
	}

	// Trailing spacing zeroed on each heading, leading spacing untouched.
	for _, op := range opsOfKind(rec, document.OpSetSpacing) {
		if op.After != 0 || op.Before != document.SpacingKeep {
			t.Errorf("spacing op = before %d after %d, want before %d after 0", op.Before, op.After, document.SpacingKeep)
		}
	}
}

// Empty headings must not appear in output: no paragraph, one warning.
func TestProject_EmptyHeadingSkipped(t *testing.T) {
	t.Parallel()

	rec, warnings := projectHTML(t, "<h1>   </h1><h2></h2>", ProjectorConfig{})

	if n := len(rec.Ops); n != 0 {
		t.Errorf("got %d ops, want 0: %v", n, rec.Kinds())
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want 2 structural", warnings)
	}
	for _, w := range warnings {
		if w.Kind != WarnStructural {
			t.Errorf("warning kind = %s, want %s", w.Kind, WarnStructural)
		}
	}
}

// Nested list content interleaves in document order: parent item first,
// nested items as deeper-indented siblings, then the next parent item.
func TestProject_NestedListInterleaving(t *testing.T) {
	t.Parallel()

	md := "- a\n    1. x\n    2. y\n- b"
	rec, warnings := projectMarkdown(t, md, ProjectorConfig{})
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	want := []string{"• a", "    1. x", "    2. y", "• b"}
	if got := paragraphTexts(rec); !reflect.DeepEqual(got, want) {
		t.Fatalf("paragraph texts = %v, want %v", got, want)
	}

	for _, op := range opsOfKind(rec, document.OpSetStyle) {
		if op.Style != document.StyleListParagraph {
			t.Errorf("list item style = %s, want %s", op.Style, document.StyleListParagraph)
		}
	}
}

// Ordinals are 1-based and reset per list, regardless of nesting level.
func TestProject_OrderedPrefixes(t *testing.T) {
	t.Parallel()

	rec, _ := projectMarkdown(t, "1. x\n2. y\n3. z", ProjectorConfig{})
	want := []string{"1. x", "2. y", "3. z"}
	if got := paragraphTexts(rec); !reflect.DeepEqual(got, want) {
		t.Errorf("paragraph texts = %v, want %v", got, want)
	}
}

func TestProject_CustomBulletAndIndent(t *testing.T) {
	t.Parallel()

	cfg := ProjectorConfig{Bullet: "-", IndentWidth: 2}
	rec, _ := projectMarkdown(t, "- a\n    - b", cfg)

	want := []string{"- a", "  - b"}
	if got := paragraphTexts(rec); !reflect.DeepEqual(got, want) {
		t.Errorf("paragraph texts = %v, want %v", got, want)
	}
}

func TestProject_EmptyListSkipped(t *testing.T) {
	t.Parallel()

	rec, warnings := projectHTML(t, "<ul>\n   \n</ul>", ProjectorConfig{})
	if n := len(rec.Ops); n != 0 {
		t.Errorf("got %d ops, want 0: %v", n, rec.Kinds())
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnStructural {
		t.Errorf("warnings = %v, want one structural", warnings)
	}
}

func TestProject_Table(t *testing.T) {
	t.Parallel()

	cfg := ProjectorConfig{
		BorderColor: "336699",
		HeaderShade: "EEEEEE",
	}
	rec, warnings := projectMarkdown(t, "| x | y |\n|---|---|\n| 1 | 2 |", cfg)
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	tables := opsOfKind(rec, document.OpAppendTable)
	if len(tables) != 1 {
		t.Fatalf("got %d AppendTable ops, want 1", len(tables))
	}
	wantGrid := [][]string{{"x", "y"}, {"1", "2"}}
	if !reflect.DeepEqual([][]string(tables[0].Grid), wantGrid) {
		t.Errorf("grid = %v, want %v", tables[0].Grid, wantGrid)
	}

	borders := opsOfKind(rec, document.OpSetBorderColor)
	if len(borders) != len(document.Edges) {
		t.Fatalf("got %d border ops, want %d", len(borders), len(document.Edges))
	}
	seen := map[document.BorderEdge]bool{}
	for _, op := range borders {
		if op.Color != "336699" {
			t.Errorf("border color = %s, want 336699", op.Color)
		}
		seen[op.Edge] = true
	}
	for _, edge := range document.Edges {
		if !seen[edge] {
			t.Errorf("edge %s not set", edge)
		}
	}

	shading := opsOfKind(rec, document.OpSetCellShading)
	if len(shading) != 2 {
		t.Fatalf("got %d shading ops, want 2 (header row)", len(shading))
	}
	for i, op := range shading {
		if op.Row != 0 || op.Col != i || op.Color != "EEEEEE" {
			t.Errorf("shading[%d] = row %d col %d %s, want row 0 col %d EEEEEE", i, op.Row, op.Col, op.Color, i)
		}
	}

	if len(opsOfKind(rec, document.OpSetTableSpacing)) != 1 {
		t.Error("table spacing adjustment not attempted")
	}
}

func TestProject_HeaderShadingDisabled(t *testing.T) {
	t.Parallel()

	rec, _ := projectMarkdown(t, "| x |\n|---|\n| 1 |", ProjectorConfig{})
	if n := len(opsOfKind(rec, document.OpSetCellShading)); n != 0 {
		t.Errorf("got %d shading ops, want 0", n)
	}
}

// A malformed table is skipped whole; surrounding blocks still insert.
func TestProject_MalformedTableSkipped(t *testing.T) {
	t.Parallel()

	raw := "<p>before</p>" +
		"<table><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr><tr><td>e</td><td>f</td><td>g</td></tr></table>" +
		"<p>after</p>"
	rec, warnings := projectHTML(t, raw, ProjectorConfig{})

	if n := len(opsOfKind(rec, document.OpAppendTable)); n != 0 {
		t.Errorf("got %d AppendTable ops, want 0", n)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnStructural {
		t.Fatalf("warnings = %v, want one structural", warnings)
	}
	if n := len(opsOfKind(rec, document.OpAppendEmptyParagraph)); n != 2 {
		t.Errorf("surrounding paragraphs = %d, want 2", n)
	}
}

func TestProject_RichParagraph(t *testing.T) {
	t.Parallel()

	rec, _ := projectMarkdown(t, "some **bold** and `code` text", ProjectorConfig{})

	if n := len(opsOfKind(rec, document.OpAppendEmptyParagraph)); n != 1 {
		t.Fatalf("got %d placeholder paragraphs, want 1", n)
	}
	replaced := opsOfKind(rec, document.OpReplaceContent)
	if len(replaced) != 1 {
		t.Fatalf("got %d ReplaceContent ops, want 1", len(replaced))
	}
	frag := replaced[0].Fragment
	for _, want := range []string{"<strong>bold</strong>", "<code>code</code>"} {
		if !strings.Contains(frag, want) {
			t.Errorf("fragment = %q, want containing %q", frag, want)
		}
	}
}

// Paragraphs that reduce to line breaks and non-breaking spaces are noise.
func TestProject_EmptyParagraphSkipped(t *testing.T) {
	t.Parallel()

	rec, warnings := projectHTML(t, "<p> <br/> &nbsp; <br> </p>", ProjectorConfig{})
	if n := len(rec.Ops); n != 0 {
		t.Errorf("got %d ops, want 0: %v", n, rec.Kinds())
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestProject_CodeBlock(t *testing.T) {
	t.Parallel()

	rec, _ := projectMarkdown(t, "```\nfirst line\nsecond line\n```", ProjectorConfig{})

	texts := paragraphTexts(rec)
	if len(texts) != 1 {
		t.Fatalf("got %d paragraphs, want 1: %v", len(texts), texts)
	}
	if want := "first line\nsecond line"; texts[0] != want {
		t.Errorf("code paragraph = %q, want %q", texts[0], want)
	}
}

// Containers carry no visual semantics: children project at the same
// nesting level, stray text becomes its own paragraph.
func TestProject_GenericContainers(t *testing.T) {
	t.Parallel()

	rec, _ := projectHTML(t, "<div><section><p>hi</p></section>stray</div>", ProjectorConfig{})

	if n := len(opsOfKind(rec, document.OpAppendEmptyParagraph)); n != 1 {
		t.Errorf("rich paragraphs = %d, want 1", n)
	}
	if got := paragraphTexts(rec); !reflect.DeepEqual(got, []string{"stray"}) {
		t.Errorf("plain paragraphs = %v, want [stray]", got)
	}
}

func TestProject_Blockquote(t *testing.T) {
	t.Parallel()

	rec, _ := projectMarkdown(t, "> quoted text", ProjectorConfig{})

	replaced := opsOfKind(rec, document.OpReplaceContent)
	if len(replaced) != 1 || !strings.Contains(replaced[0].Fragment, "quoted text") {
		t.Errorf("ReplaceContent ops = %v, want one containing %q", replaced, "quoted text")
	}
}

func TestProject_Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantTexts []string
	}{
		{
			name:      "childless element with text",
			raw:       "<kbd>Ctrl</kbd>",
			wantTexts: []string{"Ctrl"},
		},
		{
			name:      "empty element dropped silently",
			raw:       "<wbr/>",
			wantTexts: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, warnings := projectHTML(t, tt.raw, ProjectorConfig{})
			if got := paragraphTexts(rec); !reflect.DeepEqual(got, tt.wantTexts) {
				t.Errorf("paragraphs = %v, want %v", got, tt.wantTexts)
			}
			if len(warnings) != 0 {
				t.Errorf("warnings = %v, want none", warnings)
			}
		})
	}
}

// Missing spacing support is cosmetic: recorded as a warning, the block
// still inserts.
func TestProject_CapabilityWarnings(t *testing.T) {
	t.Parallel()

	rec := &document.Recorder{DenySpacing: true}
	warnings, err := Project(rec, renderNodes(t, "# Title\n\n| x |\n|---|\n| 1 |"), ProjectorConfig{})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	var capability int
	for _, w := range warnings {
		if w.Kind == WarnCapability {
			capability++
		}
	}
	if capability != 2 {
		t.Errorf("capability warnings = %d, want 2 (heading + table spacing)", capability)
	}
	if len(paragraphTexts(rec)) != 1 || len(opsOfKind(rec, document.OpAppendTable)) != 1 {
		t.Error("blocks missing despite only cosmetic failures")
	}
}

// failingSink rejects structural insertions after a threshold.
type failingSink struct {
	document.Recorder
	failAfter int
	appends   int
	err       error
}

func (f *failingSink) AppendParagraph(text string) (document.ParagraphHandle, error) {
	f.appends++
	if f.appends > f.failAfter {
		return 0, f.err
	}
	return f.Recorder.AppendParagraph(text)
}

func TestProject_SinkFailureAborts(t *testing.T) {
	t.Parallel()

	sinkErr := errors.New("host rejected insert")
	sink := &failingSink{failAfter: 1, err: sinkErr}

	_, err := Project(sink, renderNodes(t, "# One\n\n# Two\n\n# Three"), ProjectorConfig{})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("Project() error = %v, want %v", err, sinkErr)
	}

	// The walk stops at the failure.
	if got := paragraphTexts(&sink.Recorder); !reflect.DeepEqual(got, []string{"One"}) {
		t.Errorf("paragraphs before failure = %v, want [One]", got)
	}
}
