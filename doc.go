// Package md2doc converts Markdown documents into structured rich
// documents through an append-only insertion API.
//
// The conversion walks the parsed markup tree and maps each block-level
// construct (headings, paragraphs, nested lists, tables) onto a
// document.Sink: a capability object exposing append/insert operations
// whose formatting effects are buffered until a commit boundary.
// Malformed input such as ragged tables or empty headings is skipped
// with a warning rather than aborting the whole conversion.
//
// # Quick Start
//
// Create a converter and project into a sink, here a .docx file:
//
//	conv, err := md2doc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sink := docxsink.New("output.docx")
//	outcome, err := conv.Convert(ctx, md2doc.Input{
//	    Markdown: "# Hello\n\nWorld",
//	}, sink)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range outcome.Warnings {
//	    log.Println(w)
//	}
//
// # Architecture
//
// The package is organized as a pipeline:
//
//	markdown source
//	    ↓ preprocess (line endings, blank-line compression)
//	    ↓ render to markup tree (goldmark + x/net/html)
//	    ↓ project blocks onto the sink (recursive tree walk)
//	    ↓ commit
//
// Sinks implement document.Sink. The docxsink package writes OOXML .docx
// files; document.Recorder records operations for inspection and dry
// runs. Conversions are single-threaded and forward-only: operations are
// applied in exactly the order they are issued, and nothing is ever
// retracted. For converting many documents concurrently, see
// ConverterPool.
package md2doc
