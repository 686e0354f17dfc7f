package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds projection appearance flags.
type styleFlags struct {
	bullet          string
	indentWidth     int
	borderColor     string
	headerShading   string
	noHeaderShading bool
}

// cliFlags holds all flags for the md2doc CLI.
type cliFlags struct {
	common  commonFlags
	style   styleFlags
	output  string
	workers int
	dryRun  bool
	version bool
}

// addCommonFlags adds shared flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress non-error output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
}

// addStyleFlags adds projection appearance flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.bullet, "bullet", "", "unordered list glyph")
	fs.IntVar(&f.indentWidth, "indent-width", 0, "spaces per list nesting level")
	fs.StringVar(&f.borderColor, "border-color", "", "table border color (RRGGBB)")
	fs.StringVar(&f.headerShading, "header-shading", "", "table header row fill (RRGGBB)")
	fs.BoolVar(&f.noHeaderShading, "no-header-shading", false, "disable header row shading")
}

// parseFlags parses CLI flags and returns the positional input paths.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2doc", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print document operations instead of writing files")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes CLI usage to w.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: md2doc [flags] <input.md> [input2.md ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Converts Markdown files to .docx documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
