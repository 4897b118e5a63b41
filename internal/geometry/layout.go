package geometry

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/accessdocs/pdf-remediator/internal/model"
)

const (
	// rowTolerance is the maximum vertical distance between two text
	// fragments considered part of the same line
	rowTolerance = 2.0

	// wordGapFactor scales a span's font size into the horizontal gap that
	// separates two words within the same span
	wordGapFactor = 0.3

	// columnGapFactor scales font size into the larger gap that separates
	// table columns
	columnGapFactor = 2.0

	// columnAlignTolerance is the horizontal slack allowed when matching
	// column start positions across consecutive rows
	columnAlignTolerance = 5.0

	// minTableRows is the minimum run of aligned multi-column rows treated
	// as a table
	minTableRows = 2
)

// row is an intermediate grouping of text fragments sharing a baseline
type row struct {
	y         float64
	fragments []pdf.Text
}

// groupIntoRows buckets raw text fragments by baseline Y, then orders rows
// top-to-bottom and fragments left-to-right. PDF page space has its origin at
// the bottom left, so higher Y values come first.
func groupIntoRows(fragments []pdf.Text) []row {
	var rows []row

	for _, frag := range fragments {
		if frag.S == "" {
			continue
		}

		matched := false
		for i := range rows {
			if math.Abs(rows[i].y-frag.Y) <= rowTolerance {
				rows[i].fragments = append(rows[i].fragments, frag)
				matched = true
				break
			}
		}
		if !matched {
			rows = append(rows, row{y: frag.Y, fragments: []pdf.Text{frag}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].y > rows[j].y
	})
	for i := range rows {
		frags := rows[i].fragments
		sort.SliceStable(frags, func(a, b int) bool {
			return frags[a].X < frags[b].X
		})
	}

	return rows
}

// buildSpans merges a row's fragments into spans. A new span starts when the
// font size changes or the horizontal gap exceeds the column threshold;
// smaller gaps within a span become single spaces. The second return value
// holds the starting X coordinate of each span, used for column alignment.
func buildSpans(frags []pdf.Text) ([]Span, []float64) {
	var spans []Span
	var starts []float64
	var cur strings.Builder
	var curSize float64
	var curStart float64
	var prevEnd float64

	flush := func() {
		text := strings.TrimSpace(cur.String())
		if text != "" {
			spans = append(spans, Span{Text: text, FontSize: curSize})
			starts = append(starts, curStart)
		}
		cur.Reset()
	}

	for i, frag := range frags {
		gap := frag.X - prevEnd
		newSpan := i == 0 ||
			frag.FontSize != curSize ||
			gap > columnGapFactor*math.Max(curSize, 1)

		if newSpan {
			flush()
			curSize = frag.FontSize
			curStart = frag.X
		} else if gap > wordGapFactor*math.Max(curSize, 1) {
			cur.WriteString(" ")
		}

		cur.WriteString(frag.S)
		prevEnd = frag.X + frag.W
	}
	flush()

	return spans, starts
}

// rowBox computes the bounding box of a row. Fragment height is approximated
// by font size.
func rowBox(r row) model.BoundingBox {
	box := model.BoundingBox{
		X0: math.Inf(1), Y0: math.Inf(1),
		X1: math.Inf(-1), Y1: math.Inf(-1),
	}
	for _, frag := range r.fragments {
		box.X0 = math.Min(box.X0, frag.X)
		box.Y0 = math.Min(box.Y0, frag.Y)
		box.X1 = math.Max(box.X1, frag.X+frag.W)
		box.Y1 = math.Max(box.Y1, frag.Y+frag.FontSize)
	}
	return box
}

// splitLinesAndTables converts rows into text lines and table grids. Runs of
// consecutive rows whose spans align into the same columns are consumed as
// tables; everything else becomes a plain line.
func splitLinesAndTables(rows []row) ([]Line, []TableGrid) {
	var lines []Line
	var tables []TableGrid

	type spanRow struct {
		spans []Span
		box   model.BoundingBox
		cols  []float64
	}

	spanRows := make([]spanRow, 0, len(rows))
	for _, r := range rows {
		spans, starts := buildSpans(r.fragments)
		if len(spans) == 0 {
			continue
		}
		sr := spanRow{spans: spans, box: rowBox(r)}
		if len(spans) >= 2 {
			sr.cols = starts
		}
		spanRows = append(spanRows, sr)
	}

	i := 0
	for i < len(spanRows) {
		// Look for a run of rows with matching column layout
		run := 1
		for i+run < len(spanRows) &&
			columnsAligned(spanRows[i].cols, spanRows[i+run].cols) {
			run++
		}

		if len(spanRows[i].cols) >= 2 && run >= minTableRows {
			grid := TableGrid{Box: spanRows[i].box}
			for j := i; j < i+run; j++ {
				cells := make([]*Cell, 0, len(spanRows[j].spans))
				for _, sp := range spanRows[j].spans {
					cells = append(cells, &Cell{Text: sp.Text, Box: spanRows[j].box})
				}
				grid.Rows = append(grid.Rows, cells)
				grid.Box = mergeBoxes(grid.Box, spanRows[j].box)
			}
			tables = append(tables, grid)
			i += run
			continue
		}

		lines = append(lines, Line{Spans: spanRows[i].spans, Box: spanRows[i].box})
		i++
	}

	return lines, tables
}

// columnsAligned reports whether two rows share the same column layout
func columnsAligned(a, b []float64) bool {
	if len(a) < 2 || len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > columnAlignTolerance {
			return false
		}
	}
	return true
}

// mergeBoxes returns the union of two bounding boxes
func mergeBoxes(a, b model.BoundingBox) model.BoundingBox {
	return model.BoundingBox{
		X0: math.Min(a.X0, b.X0),
		Y0: math.Min(a.Y0, b.Y0),
		X1: math.Max(a.X1, b.X1),
		Y1: math.Max(a.Y1, b.Y1),
	}
}
