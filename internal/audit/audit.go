// Package audit evaluates a document model against accessibility criteria.
//
// The checks are deliberately crude proxies carried over from the original
// analysis rules: text shorter than five characters stands in for a contrast
// check, and reading order is never actually verified. They are placeholders
// for real accessibility analysis, not the thing itself.
package audit

import (
	"strings"
	"unicode/utf8"

	"github.com/accessdocs/pdf-remediator/internal/model"
)

// lowContrastThreshold is the trimmed text length below which a text block is
// counted as a potential contrast problem
const lowContrastThreshold = 5

// Report holds the accessibility findings for one document
type Report struct {
	MissingAltTextCount  int  `json:"missing_alt_text_count"`
	LowContrastTextCount int  `json:"low_contrast_text_count"`
	ImproperReadingOrder bool `json:"improper_reading_order"`
	HasDocumentStructure bool `json:"has_document_structure"`
}

// Auditor walks a document model and produces an accessibility report
type Auditor struct{}

// NewAuditor creates a new accessibility auditor
func NewAuditor() *Auditor {
	return &Auditor{}
}

// Audit performs a single linear pass over the document's blocks. It never
// fails, never mutates the model, and is idempotent: auditing the same model
// twice yields identical reports.
func (a *Auditor) Audit(m *model.DocumentModel) Report {
	var report Report

	for _, block := range m.Blocks {
		switch block.Kind {
		case model.KindHeading, model.KindParagraph, model.KindListItem:
			// Character count, not bytes: multi-byte runes such as
			// bullet glyphs must not inflate the length
			if utf8.RuneCountInString(strings.TrimSpace(block.Text)) < lowContrastThreshold {
				report.LowContrastTextCount++
			}
		case model.KindImage:
			// Alt text is always derivable today; this counter exists
			// for future derivation that may fail
			if block.AltText == "" {
				report.MissingAltTextCount++
			}
		}

		report.HasDocumentStructure = true
	}

	// No cross-block ordering consistency check is implemented, so this
	// is always false
	report.ImproperReadingOrder = false

	return report
}
