package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrRender indicates the Markdown source could not be rendered to a
// markup tree. This is fatal: no partial output is attempted.
var ErrRender = errors.New("markup rendering failed")

// Precompiled patterns for preprocessing.
var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes Markdown before rendering.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings and compresses runs of blank
// lines to at most two.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return content
}

// MarkupRenderer abstracts Markdown to markup-tree rendering.
type MarkupRenderer interface {
	Render(ctx context.Context, content string) ([]*html.Node, error)
}

// GoldmarkRenderer renders Markdown to a markup tree using goldmark
// (pure Go) and x/net/html fragment parsing.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions
// (tables, strikethrough, autolinks, task lists) and syntax highlighting.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					// Class-annotated spans pass through the rich-fragment
					// path untouched; sinks that understand them may style
					// code, others strip to plain text.
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(), // Treat newlines as <br>
			gmhtml.WithXHTML(),     // Self-closing tags
		),
	)
	return &GoldmarkRenderer{md: md}
}

// Render converts Markdown content to a sequence of top-level markup
// nodes in document order. Supports context cancellation via the
// goroutine + select pattern since goldmark doesn't natively take a
// context.
func (r *GoldmarkRenderer) Render(ctx context.Context, content string) ([]*html.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		nodes []*html.Node
		err   error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		nodes, err := parseFragment(buf.String())
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{nodes: nodes}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.nodes, res.err
	}
}

// parseFragment parses an HTML fragment with body context so block
// elements are not rewrapped into a full document.
func parseFragment(content string) ([]*html.Node, error) {
	bodyCtx := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(content), bodyCtx)
}

// renderFragment renders a node's children back to an HTML string,
// preserving inline markup verbatim.
func renderFragment(n *html.Node) (string, error) {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// textContent returns the concatenated text of a node's subtree.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// hasElementChild reports whether n has at least one element child.
func hasElementChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

// childElements returns direct element children matching tag.
func childElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}

// descendantElements returns all elements with the given tag in the
// subtree, in document order.
func descendantElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return // no nested matches inside a match
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}
