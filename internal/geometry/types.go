// Package geometry reads raw page-level content from PDF files: text lines
// with font metrics, embedded images, and table cell grids. It produces the
// untyped input the structure classifier turns into a document model.
package geometry

import (
	"errors"

	"github.com/accessdocs/pdf-remediator/internal/model"
)

// ErrSourceUnreadable indicates the input document could not be opened or
// parsed. The pipeline halts before classification when this occurs.
var ErrSourceUnreadable = errors.New("source document unreadable")

// Span is a run of text sharing one font size within a line
type Span struct {
	Text     string
	FontSize float64
}

// Line is one extracted text line with its spans in left-to-right order
type Line struct {
	Spans []Span
	Box   model.BoundingBox
}

// ImageItem is one embedded image found on a page. Ordinal is the zero-based
// position among images on that page.
type ImageItem struct {
	Width   int64
	Height  int64
	Box     model.BoundingBox
	Ordinal int
}

// Cell is a single table cell. A nil cell in a grid row marks a missing or
// merged cell.
type Cell struct {
	Text string
	Box  model.BoundingBox
}

// TableGrid is a detected table as a row-major grid of cells
type TableGrid struct {
	Box  model.BoundingBox
	Rows [][]*Cell
}

// Page holds everything extracted from one page, in extraction order:
// top-to-bottom, then left-to-right within a line.
type Page struct {
	Index  int
	Lines  []Line
	Images []ImageItem
	Tables []TableGrid
}

// Info holds raw document-level metadata. Title, Author, and Language are
// empty strings when the source provides none; defaults are applied later by
// the model builder. PageCount of zero means the count could not be
// determined.
type Info struct {
	Title         string
	Author        string
	Language      string
	PageCount     int
	FileSizeBytes int64
	Permissions   model.Permissions
}

// Document is the full raw extraction of one source file
type Document struct {
	Info  Info
	Pages []Page
}
