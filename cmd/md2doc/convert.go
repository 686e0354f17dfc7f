package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2doc "github.com/rvoss/go-md2doc"
	"github.com/rvoss/go-md2doc/document"
	"github.com/rvoss/go-md2doc/docxsink"
	"github.com/rvoss/go-md2doc/internal/config"
	"github.com/rvoss/go-md2doc/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrConverterInit      = errors.New("failed to initialize converter")
)

// File permission constants.
const dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute

// CLIConverter is the interface for the conversion library.
type CLIConverter interface {
	Convert(ctx context.Context, input md2doc.Input, sink document.Sink) (*md2doc.Outcome, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2doc.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// libraryPool adapts md2doc.ConverterPool to the CLI Pool interface.
type libraryPool struct {
	pool *md2doc.ConverterPool
}

func (p *libraryPool) Acquire() (CLIConverter, error) { return p.pool.Acquire() }
func (p *libraryPool) Release(c CLIConverter)         { p.pool.Release(c.(*md2doc.Converter)) }
func (p *libraryPool) Size() int                      { return p.pool.Size() }
func (p *libraryPool) Close() error                   { return p.pool.Close() }

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Warnings   []md2doc.Warning
	DryRunOps  string
	Err        error
	Duration   time.Duration
}

// run orchestrates the conversion process.
func run(ctx context.Context, flags *cliFlags, inputs []string, env *Environment) error {
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, flags.workers)
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}

	if flags.common.config != "" {
		cfg, err := config.Load(flags.common.config)
		if err != nil {
			return err
		}
		env.Config = cfg
	}

	files, err := resolveFiles(inputs, flags, env.Config)
	if err != nil {
		return err
	}

	opts := buildOptions(env.Config, flags)
	// Invalid style values are a usage error, rejected before any file work.
	if _, err := md2doc.NewConverter(opts...); err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = env.Config.Convert.Workers
	}
	poolSize := md2doc.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := &libraryPool{pool: md2doc.NewConverterPool(poolSize, opts...)}
	defer func() { _ = pool.Close() }()

	results := convertBatch(ctx, pool, files, flags.dryRun)
	failed := printResults(results, flags, env)
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(results))
	}
	return nil
}

// resolveFiles validates inputs and pairs each with its output path.
func resolveFiles(inputs []string, flags *cliFlags, cfg *config.Config) ([]FileToConvert, error) {
	outDir := flags.output
	if outDir == "" {
		outDir = cfg.Output.DefaultDir
	}

	// A single input with an explicit .docx output path is a direct
	// file-to-file conversion; anything else treats --output as a
	// directory.
	if len(inputs) == 1 && strings.EqualFold(filepath.Ext(flags.output), ".docx") {
		if err := fileutil.ValidateMarkdownPath(inputs[0]); err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputs[0], OutputPath: flags.output}}, nil
	}

	files := make([]FileToConvert, 0, len(inputs))
	for _, in := range inputs {
		if err := fileutil.ValidateMarkdownPath(in); err != nil {
			return nil, err
		}
		files = append(files, FileToConvert{
			InputPath:  in,
			OutputPath: outputPath(in, outDir),
		})
	}
	return files, nil
}

// outputPath derives the .docx path for an input file.
func outputPath(inputPath, outDir string) string {
	out := fileutil.ReplaceExtension(inputPath, ".docx")
	if outDir == "" {
		return out
	}
	return filepath.Join(outDir, filepath.Base(out))
}

// buildOptions merges config file and flags into converter options.
// Flags win over the config file.
func buildOptions(cfg *config.Config, flags *cliFlags) []md2doc.Option {
	var opts []md2doc.Option

	if b := firstNonEmpty(flags.style.bullet, cfg.Style.Bullet); b != "" {
		opts = append(opts, md2doc.WithBullet(b))
	}
	if w := firstNonZero(flags.style.indentWidth, cfg.Style.IndentWidth); w != 0 {
		opts = append(opts, md2doc.WithIndentWidth(w))
	}
	if c := firstNonEmpty(flags.style.borderColor, cfg.Style.BorderColor); c != "" {
		opts = append(opts, md2doc.WithBorderColor(c))
	}
	switch {
	case flags.style.noHeaderShading || cfg.Style.NoHeaderShading:
		opts = append(opts, md2doc.WithHeaderShading(""))
	default:
		if c := firstNonEmpty(flags.style.headerShading, cfg.Style.HeaderShading); c != "" {
			opts = append(opts, md2doc.WithHeaderShading(c))
		}
	}
	return opts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, dryRun bool) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrConverterInit, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], dryRun)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, dryRun bool) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- user-provided path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	var sink document.Sink
	var recorder *document.Recorder
	if dryRun {
		recorder = &document.Recorder{}
		sink = recorder
	} else {
		if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
			result.Err = fmt.Errorf("creating output directory: %w", err)
			result.Duration = time.Since(start)
			return result
		}
		sink = docxsink.New(f.OutputPath)
	}

	outcome, err := conv.Convert(ctx, md2doc.Input{Markdown: string(content)}, sink)
	if outcome != nil {
		result.Warnings = outcome.Warnings
	}
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	if recorder != nil {
		result.DryRunOps = recorder.Summary()
	}

	result.Duration = time.Since(start)
	return result
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, flags *cliFlags, env *Environment) int {
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stderr, "WARNING %s: %s\n", r.InputPath, w)
		}

		if r.DryRunOps != "" {
			fmt.Fprintf(env.Stdout, "# %s\n%s", r.InputPath, r.DryRunOps)
			continue
		}

		if flags.common.quiet {
			continue
		}
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !flags.common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed
}
