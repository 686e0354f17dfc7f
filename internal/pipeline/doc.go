// Package pipeline implements the Markdown-to-document conversion stages:
//   - Markdown preprocessing (line normalization, blank-line compression)
//   - Markdown to markup-tree rendering via Goldmark + x/net/html
//   - Table extraction and validation
//   - Block projection onto a document.Sink
//
// Orchestration and the public API live in the root md2doc package; host
// document adapters (docxsink, the document.Recorder) implement the sink
// side. This separation keeps the pipeline focused on tree walking and
// structural decisions, independent of any particular host document.
package pipeline
