// Package remediate drives the external remediation of a document model:
// rendering the model into linear text, submitting it to a pluggable backend,
// and parsing the response into a remediated document.
package remediate

import (
	"fmt"
	"strings"

	"github.com/accessdocs/pdf-remediator/internal/model"
)

// Renderer serializes a document model into the single linear text
// representation submitted to the remediation service. Rendering is pure and
// deterministic: the same model always yields byte-identical output.
type Renderer struct{}

// NewRenderer creates a new text renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the linear text: three metadata lines, an overview marker,
// then one entry per block in reading order. Headings get a blank line before
// them; images render as a bare marker without their alt text; tables render
// as a page-referenced marker.
func (r *Renderer) Render(m *model.DocumentModel) string {
	parts := make([]string, 0, len(m.Blocks)+4)

	parts = append(parts,
		fmt.Sprintf("Document Title: %s", m.Metadata.Title),
		fmt.Sprintf("Author: %s", m.Metadata.Author),
		fmt.Sprintf("Language: %s", m.Metadata.Language),
		"\nDocument Overview:",
	)

	for _, block := range m.Blocks {
		switch block.Kind {
		case model.KindHeading:
			parts = append(parts, fmt.Sprintf("\n## %s", block.Text))
		case model.KindParagraph:
			parts = append(parts, block.Text)
		case model.KindListItem:
			parts = append(parts, fmt.Sprintf("  • %s", block.Text))
		case model.KindImage:
			parts = append(parts, "[Image]")
		case model.KindTable:
			parts = append(parts, fmt.Sprintf("[Table on page %d]", block.PageIndex+1))
		}
	}

	return strings.Join(parts, "\n")
}
