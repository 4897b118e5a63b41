// Package model defines the structured document representation shared by the
// classification, audit, and remediation components.
package model

// BlockKind identifies the semantic type of a content block
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindListItem  BlockKind = "list_item"
	KindImage     BlockKind = "image"
	KindTable     BlockKind = "table"
)

// BoundingBox represents a rectangle in page space
type BoundingBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// ImageSize holds pixel dimensions of an embedded image
type ImageSize struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// ContentBlock is one classified unit of document content. Text is empty for
// image and table blocks. Image and table fields are only populated for their
// respective kinds.
type ContentBlock struct {
	Kind        BlockKind   `json:"kind"`
	PageIndex   int         `json:"page_index"`
	OrderInPage int         `json:"order_in_page"`
	Text        string      `json:"text,omitempty"`
	BoundingBox BoundingBox `json:"bounding_box"`

	// Image fields
	ImageSize   ImageSize `json:"image_size,omitempty"`
	AltText     string    `json:"alt_text,omitempty"`
	SourceIndex int       `json:"source_index,omitempty"`

	// Table fields
	RowCount     int        `json:"row_count,omitempty"`
	ColCount     int        `json:"col_count,omitempty"`
	CellTextGrid [][]string `json:"cell_text_grid,omitempty"`
}

// DocumentMetadata holds document-level properties. Title, Author, and
// Language default to placeholder strings when the source provides none.
type DocumentMetadata struct {
	Title           string      `json:"title"`
	Author          string      `json:"author"`
	Language        string      `json:"language"`
	PageCount       int         `json:"page_count"`
	FileSizeBytes   int64       `json:"file_size_bytes"`
	PermissionFlags Permissions `json:"permission_flags"`
}

// DocumentModel is the complete in-memory representation of one source
// document. Blocks are in global reading order: page index ascending, then
// order within the page. The sequence is never reordered after construction.
type DocumentModel struct {
	Metadata DocumentMetadata `json:"metadata"`
	Blocks   []ContentBlock   `json:"blocks"`
}

// BlocksOnPage returns the blocks belonging to the given page, preserving
// reading order.
func (m *DocumentModel) BlocksOnPage(pageIndex int) []ContentBlock {
	var blocks []ContentBlock
	for _, b := range m.Blocks {
		if b.PageIndex == pageIndex {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
