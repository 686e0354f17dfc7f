package docxsink

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/rvoss/go-md2doc/document"
	"github.com/rvoss/go-md2doc/internal/assets"
)

// Embedded part names, re-exported locally for the archive assembly.
const (
	partContentTypes = assets.PartContentTypes
	partRels         = assets.PartRels
	partDocumentRels = assets.PartDocumentRels
	partStyles       = assets.PartStyles
)

// mustPart loads an embedded package part. The names are compile-time
// constants; a missing part is a broken build, not a runtime condition.
func mustPart(name string) string {
	content, err := assets.Part(name)
	if err != nil {
		panic(err)
	}
	return content
}

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `</w:body></w:document>`

// borderTags maps sink border edges to WordprocessingML border elements.
var borderTags = map[document.BorderEdge]string{
	document.EdgeTop:     "w:top",
	document.EdgeBottom:  "w:bottom",
	document.EdgeLeft:    "w:left",
	document.EdgeRight:   "w:right",
	document.EdgeInsideH: "w:insideH",
	document.EdgeInsideV: "w:insideV",
}

// borderOrder fixes the element order inside <w:tblBorders>; the schema
// requires top, left, bottom, right, insideH, insideV.
var borderOrder = []document.BorderEdge{
	document.EdgeTop, document.EdgeLeft, document.EdgeBottom,
	document.EdgeRight, document.EdgeInsideH, document.EdgeInsideV,
}

// documentXML renders the buffered blocks as word/document.xml.
func (s *Sink) documentXML() string {
	var sb strings.Builder
	sb.WriteString(documentHeader)
	for _, b := range s.blocks {
		if b.para != nil {
			writeParagraph(&sb, b.para)
		} else {
			writeTable(&sb, b.tab)
		}
	}
	sb.WriteString(documentFooter)
	return sb.String()
}

func writeParagraph(sb *strings.Builder, p *paragraph) {
	sb.WriteString("<w:p>")
	writeParagraphProps(sb, p)

	switch {
	case p.hasFragment:
		for _, r := range fragmentRuns(p.fragment) {
			writeRun(sb, r)
		}
	case p.text != "":
		// Embedded newlines become explicit line breaks.
		for i, line := range strings.Split(p.text, "\n") {
			if i > 0 {
				sb.WriteString("<w:r><w:br/></w:r>")
			}
			writeRun(sb, run{text: line})
		}
	}
	sb.WriteString("</w:p>")
}

func writeParagraphProps(sb *strings.Builder, p *paragraph) {
	hasSpacing := p.spacingBefore != document.SpacingKeep || p.spacingAfter != document.SpacingKeep
	if p.style == "" && !hasSpacing {
		return
	}
	sb.WriteString("<w:pPr>")
	if p.style != "" {
		sb.WriteString(`<w:pStyle w:val="` + string(p.style) + `"/>`)
	}
	if hasSpacing {
		sb.WriteString("<w:spacing")
		if p.spacingBefore != document.SpacingKeep {
			sb.WriteString(` w:before="` + strconv.Itoa(p.spacingBefore) + `"`)
		}
		if p.spacingAfter != document.SpacingKeep {
			sb.WriteString(` w:after="` + strconv.Itoa(p.spacingAfter) + `"`)
		}
		sb.WriteString("/>")
	}
	sb.WriteString("</w:pPr>")
}

func writeRun(sb *strings.Builder, r run) {
	if r.br {
		sb.WriteString("<w:r><w:br/></w:r>")
		return
	}
	if r.text == "" {
		return
	}
	sb.WriteString("<w:r>")
	writeRunProps(sb, r)
	sb.WriteString(`<w:t xml:space="preserve">`)
	sb.WriteString(escape(r.text))
	sb.WriteString("</w:t></w:r>")
}

func writeRunProps(sb *strings.Builder, r run) {
	if !r.bold && !r.italic && !r.strike && !r.underline && !r.mono {
		return
	}
	sb.WriteString("<w:rPr>")
	if r.mono {
		sb.WriteString(`<w:rFonts w:ascii="Consolas" w:hAnsi="Consolas"/>`)
	}
	if r.bold {
		sb.WriteString("<w:b/>")
	}
	if r.italic {
		sb.WriteString("<w:i/>")
	}
	if r.strike {
		sb.WriteString("<w:strike/>")
	}
	if r.underline {
		sb.WriteString(`<w:u w:val="single"/>`)
	}
	sb.WriteString("</w:rPr>")
}

func writeTable(sb *strings.Builder, t *table) {
	sb.WriteString("<w:tbl><w:tblPr>")
	sb.WriteString(`<w:tblW w:w="0" w:type="auto"/>`)
	if len(t.borders) > 0 {
		sb.WriteString("<w:tblBorders>")
		for _, edge := range borderOrder {
			color, ok := t.borders[edge]
			if !ok {
				continue
			}
			sb.WriteString("<" + borderTags[edge] + ` w:val="single" w:sz="4" w:space="0" w:color="` + string(color) + `"/>`)
		}
		sb.WriteString("</w:tblBorders>")
	}
	sb.WriteString("</w:tblPr>")

	for ri, row := range t.grid {
		sb.WriteString("<w:tr>")
		for ci, cell := range row {
			sb.WriteString("<w:tc><w:tcPr>")
			if shade, ok := t.shading[cellKey{ri, ci}]; ok {
				sb.WriteString(`<w:shd w:val="clear" w:fill="` + string(shade) + `"/>`)
			}
			sb.WriteString("</w:tcPr><w:p><w:r>")
			sb.WriteString(`<w:t xml:space="preserve">` + escape(cell) + `</w:t>`)
			sb.WriteString("</w:r></w:p></w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
}

// escape encodes text content for embedding in WordprocessingML.
func escape(s string) string {
	var sb strings.Builder
	// EscapeText only fails on writer errors; strings.Builder can't fail.
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
