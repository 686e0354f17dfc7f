package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rvoss/go-md2doc/document"
	"golang.org/x/net/html"
)

// Table rejection errors. A rejected table is skipped with a warning;
// the grid is never truncated or padded to fit.
var (
	ErrTableNoRows = errors.New("table has no rows")
	ErrTableRagged = errors.New("table rows have inconsistent lengths")
)

// extractTable scans a table node and produces a rectangular grid of
// trimmed cell strings. Rows with zero cells are dropped (tolerating
// stray non-cell rows in malformed markup). Empty cells are normalized
// to a single space so the host never receives a zero-length cell.
// Pure function of its input.
func extractTable(n *html.Node) (document.Grid, error) {
	trs := descendantElements(n, "tr")
	if len(trs) == 0 {
		return nil, ErrTableNoRows
	}

	var grid document.Grid
	for _, tr := range trs {
		row := extractRow(tr)
		if len(row) == 0 {
			continue
		}
		grid = append(grid, row)
	}
	if len(grid) == 0 {
		return nil, ErrTableNoRows
	}

	// All rows must match the first row's width; reshaping tabular data
	// silently is worse than omitting it.
	width := len(grid[0])
	for i, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrTableRagged, i, len(row), width)
		}
	}
	return grid, nil
}

// extractRow collects th and td cells that are direct children of a row.
func extractRow(tr *html.Node) []string {
	var row []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data != "th" && c.Data != "td" {
			continue
		}
		text := strings.TrimSpace(textContent(c))
		if text == "" {
			text = " "
		}
		row = append(row, text)
	}
	return row
}
