package md2doc

import (
	"context"
	"errors"
	"fmt"

	"github.com/rvoss/go-md2doc/document"
	"github.com/rvoss/go-md2doc/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.MarkupRenderer       = (*pipeline.GoldmarkRenderer)(nil)
	_ document.Sink                 = (*document.Recorder)(nil)
)

// Converter drives a markdown-to-document conversion: render the source
// to a markup tree, project every top-level block onto the sink in
// document order, then commit. Create with NewConverter; a Converter is
// safe for sequential reuse across documents.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.MarkdownPreprocessor
	renderer     pipeline.MarkupRenderer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize projection (e.g., WithBullet, WithBorderColor).
// Returns an error if an option carries an invalid value.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		renderer:     pipeline.NewGoldmarkRenderer(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	// Header shading defaults on unless explicitly configured away.
	if !c.cfg.headerShadeSet {
		c.cfg.projector.HeaderShade = document.Color(DefaultHeaderShade)
	}

	return c, nil
}

// Convert runs a single forward-only pass: parse, project, commit.
// Non-fatal problems (malformed tables, empty headings, unsupported host
// capabilities) are collected as warnings in the Outcome and never stop
// the walk. A parse failure or a rejected structural insertion is fatal;
// the returned Outcome still carries the warnings accumulated up to that
// point, and the sink is left in whatever state was already committed.
// No retries are attempted at this layer.
//
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (c *Converter) Convert(ctx context.Context, input Input, sink document.Sink) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	nodes, err := c.renderer.Render(ctx, mdContent)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	warnings, perr := pipeline.Project(sink, nodes, c.cfg.projector)
	outcome = &Outcome{Warnings: toPublicWarnings(warnings)}
	if perr != nil {
		return outcome, fmt.Errorf("%w: %v", ErrSink, perr)
	}

	if err := sink.Commit(ctx); err != nil {
		return outcome, fmt.Errorf("%w: commit: %v", ErrSink, err)
	}
	return outcome, nil
}
