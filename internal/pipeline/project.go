package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rvoss/go-md2doc/document"
	"golang.org/x/net/html"
)

// WarningKind classifies a non-fatal conversion diagnostic.
type WarningKind string

// Warning kinds.
const (
	// WarnStructural marks a malformed or empty block skipped rather than
	// rendered incorrectly.
	WarnStructural WarningKind = "structural"
	// WarnCapability marks an optional cosmetic host operation the current
	// host does not support.
	WarnCapability WarningKind = "capability"
)

// Warning is a non-fatal diagnostic recorded during projection. The walk
// continues past every warning; only host failures on structural
// insertions abort a conversion.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return string(w.Kind) + ": " + w.Message
}

// ProjectorConfig controls visual choices made during projection.
// Zero values select the defaults.
type ProjectorConfig struct {
	Bullet      string         // glyph for unordered list items
	IndentWidth int            // spaces per list nesting level
	BorderColor document.Color // table border color, all six edges
	HeaderShade document.Color // table header row fill; empty disables
}

// Default projection settings.
const (
	DefaultBullet      = "•"
	DefaultIndentWidth = 4
	DefaultBorderColor = document.Color("999999")
	DefaultHeaderShade = document.Color("D9D9D9")
)

func (c ProjectorConfig) withDefaults() ProjectorConfig {
	if c.Bullet == "" {
		c.Bullet = DefaultBullet
	}
	if c.IndentWidth <= 0 {
		c.IndentWidth = DefaultIndentWidth
	}
	if c.BorderColor == "" {
		c.BorderColor = DefaultBorderColor
	}
	return c
}

// listContext is the ephemeral state threaded through recursive list
// processing. It is passed by value; each recursive call gets its own.
type listContext struct {
	ordered bool
	level   int
}

// Project walks each top-level markup node in document order, emitting
// document operations against sink. It returns the accumulated non-fatal
// warnings; a non-nil error means a host failure aborted the walk and the
// document is left in whatever state was already issued.
func Project(sink document.Sink, nodes []*html.Node, cfg ProjectorConfig) ([]Warning, error) {
	p := &projector{sink: sink, cfg: cfg.withDefaults()}
	for _, n := range nodes {
		if err := p.project(n, listContext{}); err != nil {
			return p.warnings, err
		}
	}
	return p.warnings, nil
}

// projector is the recursive core of the conversion: a depth-first walk
// over the markup tree that decides, node by node, how to map block-level
// constructs onto the sink's sequential insertion API.
type projector struct {
	sink     document.Sink
	cfg      ProjectorConfig
	warnings []Warning
}

func (p *projector) warn(kind WarningKind, format string, args ...any) {
	p.warnings = append(p.warnings, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// bestEffort swallows failures of optional cosmetic host operations.
// The error is recorded as a warning, never propagated, so a missing
// capability can never abort the enclosing block's insertion.
func (p *projector) bestEffort(err error, what string) {
	if err == nil {
		return
	}
	p.warn(WarnCapability, "%s: %v", what, err)
}

func (p *projector) project(n *html.Node, lc listContext) error {
	switch n.Type {
	case html.TextNode:
		// Stray text adjacent to block elements becomes its own
		// paragraph rather than merging with a neighbor.
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return nil
		}
		_, err := p.sink.AppendParagraph(text)
		return err

	case html.ElementNode:
		switch n.Data {
		case "h1", "h2", "h3":
			return p.projectHeading(n)
		case "ul", "ol":
			return p.projectList(n, lc)
		case "table":
			return p.projectTable(n)
		case "p":
			return p.projectParagraph(n)
		case "pre":
			return p.projectCodeBlock(n)
		case "div", "section", "article":
			return p.projectChildren(n, lc)
		default:
			if hasElementChild(n) {
				// Unrecognized container: no visual semantics of its own.
				return p.projectChildren(n, lc)
			}
			return p.projectFallback(n)
		}

	default:
		// Comments, doctypes: nothing to project.
		return nil
	}
}

// projectChildren recurses into each child in document order with the
// nesting level unchanged.
func (p *projector) projectChildren(n *html.Node, lc listContext) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := p.project(c, lc); err != nil {
			return err
		}
	}
	return nil
}

var headingStyles = map[string]document.StyleID{
	"h1": document.StyleHeading1,
	"h2": document.StyleHeading2,
	"h3": document.StyleHeading3,
}

func (p *projector) projectHeading(n *html.Node) error {
	text := strings.TrimSpace(textContent(n))
	if text == "" {
		p.warn(WarnStructural, "empty %s heading skipped", n.Data)
		return nil
	}
	h, err := p.sink.AppendParagraph(text)
	if err != nil {
		return err
	}
	if err := p.sink.SetStyle(h, headingStyles[n.Data]); err != nil {
		return err
	}
	// Cosmetic only: remove the trailing gap below the heading.
	p.bestEffort(p.sink.SetSpacing(h, document.SpacingKeep, 0), "heading spacing")
	return nil
}

func (p *projector) projectList(n *html.Node, lc listContext) error {
	ordered := n.Data == "ol"
	items := childElements(n, "li")
	if len(items) == 0 {
		p.warn(WarnStructural, "empty %s list skipped", n.Data)
		return nil
	}

	indent := strings.Repeat(" ", p.cfg.IndentWidth*lc.level)
	for i, li := range items {
		// Ordinals reset per list, not per nesting level.
		prefix := p.cfg.Bullet
		if ordered {
			prefix = strconv.Itoa(i+1) + "."
		}
		line := strings.TrimRight(indent+prefix+" "+itemText(li), " ")

		h, err := p.sink.AppendParagraph(line)
		if err != nil {
			return err
		}
		if err := p.sink.SetStyle(h, document.StyleListParagraph); err != nil {
			return err
		}

		// Nested lists become additional sibling paragraphs at a deeper
		// indent, emitted after the parent item's own line. This keeps
		// document order without true host-level list nesting.
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
				nested := listContext{ordered: c.Data == "ol", level: lc.level + 1}
				if err := p.projectList(c, nested); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// itemText returns a list item's own text: everything before the first
// nested list, so a nested list's text is never absorbed into the parent
// item's line. Internal whitespace is collapsed.
func itemText(li *html.Node) string {
	var sb strings.Builder
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			break
		}
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode:
			sb.WriteString(textContent(c))
		}
		sb.WriteByte(' ')
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func (p *projector) projectTable(n *html.Node) error {
	grid, err := extractTable(n)
	if err != nil {
		p.warn(WarnStructural, "table skipped: %v", err)
		return nil
	}
	t, err := p.sink.AppendTable(grid)
	if err != nil {
		return err
	}
	for _, edge := range document.Edges {
		if err := p.sink.SetBorderColor(t, edge, p.cfg.BorderColor); err != nil {
			return err
		}
	}
	if p.cfg.HeaderShade != "" {
		for col := 0; col < grid.Cols(); col++ {
			if err := p.sink.SetCellShading(t, 0, col, p.cfg.HeaderShade); err != nil {
				return err
			}
		}
	}
	p.bestEffort(p.sink.SetTableSpacing(t, document.SpacingKeep, 0), "table spacing")
	return nil
}

var (
	brTag  = regexp.MustCompile(`(?i)<br\s*/?>`)
	nbspRE = regexp.MustCompile(`&nbsp;|\x{00a0}`)
)

func (p *projector) projectParagraph(n *html.Node) error {
	fragment, err := renderFragment(n)
	if err != nil {
		return err
	}
	// A paragraph of only line breaks and non-breaking spaces is noise.
	stripped := brTag.ReplaceAllString(fragment, "")
	stripped = nbspRE.ReplaceAllString(stripped, "")
	if strings.TrimSpace(stripped) == "" {
		return nil
	}
	// The one path where inline formatting is preserved verbatim: the raw
	// inner markup replaces an empty placeholder paragraph.
	h, err := p.sink.AppendEmptyParagraph()
	if err != nil {
		return err
	}
	return p.sink.ReplaceContent(h, fragment)
}

// projectCodeBlock flattens a fenced or indented code block to a single
// plain paragraph. The highlighter wraps tokens in span elements; taking
// the subtree text here keeps the code as one block instead of letting
// the container recursion split it per span.
func (p *projector) projectCodeBlock(n *html.Node) error {
	text := strings.TrimRight(textContent(n), "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_, err := p.sink.AppendParagraph(text)
	return err
}

// projectFallback handles incidental markup noise: any element with no
// block structure of its own. Non-empty text becomes a plain paragraph;
// empty elements are dropped without a warning.
func (p *projector) projectFallback(n *html.Node) error {
	text := strings.TrimSpace(textContent(n))
	if text == "" {
		return nil
	}
	_, err := p.sink.AppendParagraph(text)
	return err
}
