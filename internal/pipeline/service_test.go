package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accessdocs/pdf-remediator/internal/geometry"
	"github.com/accessdocs/pdf-remediator/internal/model"
	"github.com/accessdocs/pdf-remediator/internal/remediate"
	"github.com/accessdocs/pdf-remediator/internal/structure"
)

// staticDocument returns a two-page synthetic document: a heading and short
// paragraph on page one, an image on page two
func staticDocument() *geometry.Document {
	return &geometry.Document{
		Info: geometry.Info{
			Title:       "Sample",
			PageCount:   2,
			Permissions: model.FullPermissions(),
		},
		Pages: []geometry.Page{
			{
				Index: 0,
				Lines: []geometry.Line{
					{Spans: []geometry.Span{{Text: "Welcome", FontSize: 18}}},
					{Spans: []geometry.Span{{Text: "hi", FontSize: 10}}},
				},
			},
			{
				Index:  1,
				Images: []geometry.ImageItem{{Width: 10, Height: 10, Ordinal: 0}},
			},
		},
	}
}

func newTestService(backend remediate.Backend) *Service {
	s := NewService(1024*1024, backend, nil)
	s.openDocument = func(string, int64) (*geometry.Document, error) {
		return staticDocument(), nil
	}
	return s
}

// failingBackend always reports the external service as unreachable
type failingBackend struct{}

func (failingBackend) Remediate(context.Context, remediate.Request) (string, error) {
	return "", fmt.Errorf("%w: connection refused", remediate.ErrUnavailable)
}

// cannedBackend returns a fixed raw response
type cannedBackend struct {
	response string
	lastReq  remediate.Request
}

func (b *cannedBackend) Remediate(_ context.Context, req remediate.Request) (string, error) {
	b.lastReq = req
	return b.response, nil
}

func TestExtractModel(t *testing.T) {
	s := newTestService(remediate.NewNoopBackend())

	m, err := s.ExtractModel("sample.pdf")
	require.NoError(t, err)

	assert.Equal(t, "Sample", m.Metadata.Title)
	assert.Equal(t, structure.DefaultAuthor, m.Metadata.Author)
	require.Len(t, m.Blocks, 3)
	assert.Equal(t, model.KindHeading, m.Blocks[0].Kind)
	assert.Equal(t, model.KindParagraph, m.Blocks[1].Kind)
	assert.Equal(t, model.KindImage, m.Blocks[2].Kind)
	assert.Equal(t, "Image 1 on page 2", m.Blocks[2].AltText)
}

func TestExtractModel_SourceUnreadable(t *testing.T) {
	s := NewService(1024*1024, remediate.NewNoopBackend(), nil)

	_, err := s.ExtractModel("/nonexistent/file.pdf")
	assert.ErrorIs(t, err, geometry.ErrSourceUnreadable)
}

func TestExtractModel_MetadataUnavailable(t *testing.T) {
	s := newTestService(remediate.NewNoopBackend())
	s.openDocument = func(string, int64) (*geometry.Document, error) {
		doc := staticDocument()
		doc.Info.PageCount = 0
		return doc, nil
	}

	_, err := s.ExtractModel("sample.pdf")
	assert.ErrorIs(t, err, structure.ErrMetadataUnavailable)
}

func TestAudit(t *testing.T) {
	s := newTestService(remediate.NewNoopBackend())

	result, err := s.Audit("sample.pdf")
	require.NoError(t, err)

	// "hi" is below the length threshold; the derived alt text is present
	assert.Equal(t, 1, result.Report.LowContrastTextCount)
	assert.Equal(t, 0, result.Report.MissingAltTextCount)
	assert.True(t, result.Report.HasDocumentStructure)
	assert.False(t, result.Report.ImproperReadingOrder)
	assert.NotNil(t, result.Model)
}

func TestRender(t *testing.T) {
	s := newTestService(remediate.NewNoopBackend())

	text, err := s.Render("sample.pdf")
	require.NoError(t, err)

	assert.Contains(t, text, "Document Title: Sample")
	assert.Contains(t, text, "\n## Welcome")
	assert.Contains(t, text, "[Image]")
}

func TestRun_FullPipeline(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "out.docx")

	s := newTestService(remediate.NewNoopBackend())

	result, err := s.Run(context.Background(), RunRequest{
		InputPath:  "sample.pdf",
		OutputPath: outputPath,
	})
	require.NoError(t, err)
	require.NoError(t, result.RemediationErr)

	assert.NotNil(t, result.Model)
	assert.NotEmpty(t, result.RenderedText)
	require.NotNil(t, result.Remediated)
	// Noop backend echoes the rendered text back
	assert.Equal(t, result.RenderedText, result.Remediated.CompliantText)
	assert.Equal(t, outputPath, result.OutputPath)

	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}

func TestRun_DefaultPromptsApplied(t *testing.T) {
	backend := &cannedBackend{response: `{"compliant_content": "done"}`}
	s := newTestService(backend)

	_, err := s.Run(context.Background(), RunRequest{
		InputPath:  "sample.pdf",
		OutputPath: filepath.Join(t.TempDir(), "out.docx"),
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultSystemInstructions, backend.lastReq.SystemInstructions)
	assert.Equal(t, DefaultUserInstructions, backend.lastReq.UserInstructionsTemplate)
	assert.Contains(t, backend.lastReq.MetadataJSON, `"page_count":2`)
}

func TestRun_CustomPromptsPassedThrough(t *testing.T) {
	backend := &cannedBackend{response: `{"compliant_content": "done"}`}
	s := newTestService(backend)

	_, err := s.Run(context.Background(), RunRequest{
		InputPath:          "sample.pdf",
		OutputPath:         filepath.Join(t.TempDir(), "out.docx"),
		SystemInstructions: "custom system",
		UserInstructions:   "custom user",
	})
	require.NoError(t, err)

	assert.Equal(t, "custom system", backend.lastReq.SystemInstructions)
	assert.Equal(t, "custom user", backend.lastReq.UserInstructionsTemplate)
}

func TestRun_BackendFailureIsPartialSuccess(t *testing.T) {
	s := newTestService(failingBackend{})

	result, err := s.Run(context.Background(), RunRequest{
		InputPath:  "sample.pdf",
		OutputPath: filepath.Join(t.TempDir(), "out.docx"),
	})
	require.NoError(t, err)

	// Earlier artifacts survive the remediation failure
	assert.NotNil(t, result.Model)
	assert.NotEmpty(t, result.RenderedText)
	assert.True(t, result.Report.HasDocumentStructure)

	assert.ErrorIs(t, result.RemediationErr, remediate.ErrUnavailable)
	assert.Nil(t, result.Remediated)
	assert.Empty(t, result.OutputPath)
}

func TestRun_MalformedResponseIsPartialSuccess(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected error
	}{
		{"not json", "not json", remediate.ErrResponseMalformed},
		{"missing content", "{}", remediate.ErrContentMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(&cannedBackend{response: tt.response})

			result, err := s.Run(context.Background(), RunRequest{
				InputPath:  "sample.pdf",
				OutputPath: filepath.Join(t.TempDir(), "out.docx"),
			})
			require.NoError(t, err)

			assert.ErrorIs(t, result.RemediationErr, tt.expected)
			assert.Nil(t, result.Remediated)
			assert.NotNil(t, result.Model)
		})
	}
}

func TestRun_WriteFailure(t *testing.T) {
	s := newTestService(remediate.NewNoopBackend())

	result, err := s.Run(context.Background(), RunRequest{
		InputPath:  "sample.pdf",
		OutputPath: "/nonexistent/dir/out.docx",
	})
	require.NoError(t, err)

	assert.Error(t, result.RemediationErr)
	assert.NotNil(t, result.Remediated)
	assert.Empty(t, result.OutputPath)
}

func TestRun_NoBackend(t *testing.T) {
	s := NewService(1024*1024, nil, nil)

	_, err := s.Run(context.Background(), RunRequest{InputPath: "sample.pdf"})
	assert.Error(t, err)
}

func TestRun_ReadingOrderInvariant(t *testing.T) {
	s := newTestService(remediate.NewNoopBackend())

	m, err := s.ExtractModel("sample.pdf")
	require.NoError(t, err)

	for i := 1; i < len(m.Blocks); i++ {
		prev, cur := m.Blocks[i-1], m.Blocks[i]
		ok := cur.PageIndex > prev.PageIndex ||
			(cur.PageIndex == prev.PageIndex && cur.OrderInPage > prev.OrderInPage)
		assert.True(t, ok, "blocks %d and %d out of reading order", i-1, i)
	}
}

func TestAudit_ErrorDoesNotPanicOnUnreadable(t *testing.T) {
	s := NewService(1024*1024, remediate.NewNoopBackend(), nil)

	result, err := s.Audit("/missing.pdf")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, geometry.ErrSourceUnreadable))
}
