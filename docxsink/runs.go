package docxsink

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// run is one formatted span of paragraph text.
type run struct {
	text      string
	br        bool
	bold      bool
	italic    bool
	mono      bool
	strike    bool
	underline bool
}

// runFormat is the inline formatting state threaded through the fragment
// walk.
type runFormat struct {
	bold      bool
	italic    bool
	mono      bool
	strike    bool
	underline bool
}

func (f runFormat) apply(text string) run {
	return run{
		text:      text,
		bold:      f.bold,
		italic:    f.italic,
		mono:      f.mono,
		strike:    f.strike,
		underline: f.underline,
	}
}

// fragmentRuns converts an inline HTML fragment to formatted runs.
// Recognized tags: b/strong, i/em, code, del/s/strike, u/ins, a, br,
// img (alt text). Unknown tags contribute their children unformatted.
// A fragment that fails to parse degrades to a single plain run of the
// raw text; the paragraph is never lost.
func fragmentRuns(fragment string) []run {
	bodyCtx := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyCtx)
	if err != nil {
		return []run{{text: fragment}}
	}

	var runs []run
	for _, n := range nodes {
		runs = appendRuns(runs, n, runFormat{})
	}
	return runs
}

func appendRuns(runs []run, n *html.Node, f runFormat) []run {
	switch n.Type {
	case html.TextNode:
		if n.Data != "" {
			runs = append(runs, f.apply(n.Data))
		}
		return runs

	case html.ElementNode:
		switch n.Data {
		case "b", "strong":
			f.bold = true
		case "i", "em":
			f.italic = true
		case "code":
			f.mono = true
		case "del", "s", "strike":
			f.strike = true
		case "u", "ins":
			f.underline = true
		case "br":
			return append(runs, run{br: true})
		case "img":
			if alt := attrVal(n, "alt"); alt != "" {
				runs = append(runs, f.apply(alt))
			}
			return runs
		case "a":
			return appendLinkRuns(runs, n, f)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			runs = appendRuns(runs, c, f)
		}
		return runs

	default:
		return runs
	}
}

// appendLinkRuns renders an anchor as underlined text followed by the
// target in parentheses. The sink writes no relationship parts, so a
// live hyperlink is not available; keeping the URL visible preserves the
// information.
func appendLinkRuns(runs []run, n *html.Node, f runFormat) []run {
	f.underline = true
	before := len(runs)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		runs = appendRuns(runs, c, f)
	}

	href := attrVal(n, "href")
	if href == "" || strings.HasPrefix(href, "#") {
		return runs
	}
	if len(runs) == before+1 && runs[before].text == href {
		return runs // autolink: text already is the URL
	}
	return append(runs, run{text: " (" + href + ")"})
}

func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
