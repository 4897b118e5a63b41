// Package structure converts raw page geometry into typed content blocks and
// assembles them into a complete document model.
package structure

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/accessdocs/pdf-remediator/internal/geometry"
	"github.com/accessdocs/pdf-remediator/internal/model"
)

// headingFontSize is the fixed threshold above which a line is classified as
// a heading
const headingFontSize = 12.0

// bulletPrefixes are the characters that mark a bulleted list item
var bulletPrefixes = []string{"•", "-", "*"}

// numberedItemPattern matches numbered list items such as "1." or "12."
var numberedItemPattern = regexp.MustCompile(`^\d+\.`)

// Classifier turns one page's raw content items into an ordered sequence of
// typed content blocks
type Classifier struct{}

// NewClassifier creates a new content classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// ClassifyPage produces the content blocks for a single page in extraction
// order: text lines first, then images, then tables. A page with no content
// yields an empty sequence.
func (c *Classifier) ClassifyPage(page geometry.Page) []model.ContentBlock {
	var blocks []model.ContentBlock

	appendBlock := func(b model.ContentBlock) {
		b.PageIndex = page.Index
		b.OrderInPage = len(blocks)
		blocks = append(blocks, b)
	}

	for _, line := range page.Lines {
		// Lines with no spans are dropped, not emitted as empty blocks
		if len(line.Spans) == 0 {
			continue
		}
		appendBlock(model.ContentBlock{
			Kind:        c.classifyLine(line),
			Text:        lineText(line),
			BoundingBox: line.Box,
		})
	}

	for _, img := range page.Images {
		appendBlock(model.ContentBlock{
			Kind:        model.KindImage,
			BoundingBox: img.Box,
			ImageSize:   model.ImageSize{Width: img.Width, Height: img.Height},
			AltText:     altTextLabel(img.Ordinal, page.Index),
			SourceIndex: img.Ordinal,
		})
	}

	for _, table := range page.Tables {
		grid, cols := cellTextGrid(table)
		appendBlock(model.ContentBlock{
			Kind:         model.KindTable,
			BoundingBox:  table.Box,
			RowCount:     len(grid),
			ColCount:     cols,
			CellTextGrid: grid,
		})
	}

	return blocks
}

// classifyLine applies the classification rules in order: heading by font
// size, then list item by prefix, then paragraph.
func (c *Classifier) classifyLine(line geometry.Line) model.BlockKind {
	for _, span := range line.Spans {
		if span.FontSize > headingFontSize {
			return model.KindHeading
		}
	}

	text := strings.TrimSpace(lineText(line))
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(text, prefix) {
			return model.KindListItem
		}
	}
	if numberedItemPattern.MatchString(text) {
		return model.KindListItem
	}

	return model.KindParagraph
}

// lineText joins a line's span texts with single spaces and trims the result
func lineText(line geometry.Line) string {
	parts := make([]string, 0, len(line.Spans))
	for _, span := range line.Spans {
		parts = append(parts, span.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// altTextLabel derives the placeholder alt text for an image. Numbering is
// 1-based for human readers. This is a generated label, not descriptive alt
// text; the auditor treats it accordingly.
func altTextLabel(sourceIndex, pageIndex int) string {
	return fmt.Sprintf("Image %d on page %d", sourceIndex+1, pageIndex+1)
}

// cellTextGrid flattens a table grid into row-major cell text, substituting
// an empty string for any missing cell reference. Returns the grid and the
// widest row's column count.
func cellTextGrid(table geometry.TableGrid) ([][]string, int) {
	grid := make([][]string, 0, len(table.Rows))
	cols := 0
	for _, row := range table.Rows {
		texts := make([]string, 0, len(row))
		for _, cell := range row {
			if cell == nil {
				texts = append(texts, "")
				continue
			}
			texts = append(texts, cell.Text)
		}
		if len(texts) > cols {
			cols = len(texts)
		}
		grid = append(grid, texts)
	}
	return grid, cols
}
