package structure

import (
	"errors"

	"github.com/accessdocs/pdf-remediator/internal/geometry"
	"github.com/accessdocs/pdf-remediator/internal/model"
)

// ErrMetadataUnavailable indicates the document's page count could not be
// determined. Page count is the only mandatory metadata field; everything
// else falls back to a default.
var ErrMetadataUnavailable = errors.New("document metadata unavailable: page count undetermined")

// Metadata defaults substituted for absent source fields
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Unknown"
	DefaultLanguage = "Unknown"
)

// Builder aggregates per-page content blocks and raw metadata into one
// document model. It performs no I/O.
type Builder struct{}

// NewBuilder creates a new document model builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Build concatenates the per-page block sequences in page order, preserving
// each block's position within its page, and attaches metadata with defaults
// applied. Fails only when the page count is undetermined.
func (b *Builder) Build(info geometry.Info, pages [][]model.ContentBlock) (*model.DocumentModel, error) {
	if info.PageCount <= 0 {
		return nil, ErrMetadataUnavailable
	}

	total := 0
	for _, page := range pages {
		total += len(page)
	}

	blocks := make([]model.ContentBlock, 0, total)
	for _, page := range pages {
		blocks = append(blocks, page...)
	}

	return &model.DocumentModel{
		Metadata: model.DocumentMetadata{
			Title:           orDefault(info.Title, DefaultTitle),
			Author:          orDefault(info.Author, DefaultAuthor),
			Language:        orDefault(info.Language, DefaultLanguage),
			PageCount:       info.PageCount,
			FileSizeBytes:   info.FileSizeBytes,
			PermissionFlags: info.Permissions,
		},
		Blocks: blocks,
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
