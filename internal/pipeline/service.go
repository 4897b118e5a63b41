// Package pipeline orchestrates the remediation flow: geometry extraction,
// structure classification, model building, accessibility audit, external
// remediation, and document generation.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/accessdocs/pdf-remediator/internal/audit"
	"github.com/accessdocs/pdf-remediator/internal/generate"
	"github.com/accessdocs/pdf-remediator/internal/geometry"
	"github.com/accessdocs/pdf-remediator/internal/model"
	"github.com/accessdocs/pdf-remediator/internal/remediate"
	"github.com/accessdocs/pdf-remediator/internal/structure"
)

// Service runs the remediation pipeline over single documents. Each call
// operates on its own document model; the service holds no per-run mutable
// state, so one instance may serve concurrent runs.
type Service struct {
	maxFileSize int64
	classifier  *structure.Classifier
	builder     *structure.Builder
	auditor     *audit.Auditor
	renderer    *remediate.Renderer
	applier     *remediate.Applier
	generator   *generate.DocxWriter
	backend     remediate.Backend
	obs         Observer

	// openDocument is swapped in tests to feed synthetic geometry
	openDocument func(path string, maxFileSize int64) (*geometry.Document, error)
}

// NewService creates a pipeline service using the given remediation backend
func NewService(maxFileSize int64, backend remediate.Backend, obs Observer) *Service {
	if obs == nil {
		obs = NopObserver{}
	}

	return &Service{
		maxFileSize:  maxFileSize,
		classifier:   structure.NewClassifier(),
		builder:      structure.NewBuilder(),
		auditor:      audit.NewAuditor(),
		renderer:     remediate.NewRenderer(),
		applier:      remediate.NewApplier(),
		generator:    generate.NewDocxWriter(),
		backend:      backend,
		obs:          obs,
		openDocument: geometry.OpenFile,
	}
}

// AuditResult pairs a document model with its accessibility report
type AuditResult struct {
	Model  *model.DocumentModel
	Report audit.Report
}

// RunRequest describes one full remediation run. Instruction fields default
// to the built-in prompts when empty.
type RunRequest struct {
	InputPath          string
	OutputPath         string
	SystemInstructions string
	UserInstructions   string
}

// RunResult carries every artifact a run produced. When remediation or
// generation fails, RemediationErr is set and the earlier artifacts remain
// valid; OutputPath is empty unless a document was written.
type RunResult struct {
	Model          *model.DocumentModel
	Report         audit.Report
	RenderedText   string
	Remediated     *remediate.RemediatedDocument
	OutputPath     string
	RemediationErr error
}

// ExtractModel builds the structured document model for a file
func (s *Service) ExtractModel(path string) (*model.DocumentModel, error) {
	doc, err := s.openDocument(path, s.maxFileSize)
	if err != nil {
		return nil, err
	}

	pages := make([][]model.ContentBlock, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		pages = append(pages, s.classifier.ClassifyPage(page))
	}

	m, err := s.builder.Build(doc.Info, pages)
	if err != nil {
		return nil, err
	}

	s.obs.Debugf("extracted model: %d pages, %d blocks", m.Metadata.PageCount, len(m.Blocks))
	return m, nil
}

// Audit extracts the document model and evaluates it against the
// accessibility criteria
func (s *Service) Audit(path string) (*AuditResult, error) {
	m, err := s.ExtractModel(path)
	if err != nil {
		return nil, err
	}

	report := s.auditor.Audit(m)
	s.obs.Infof("audit of %s: %d low contrast, %d missing alt text",
		path, report.LowContrastTextCount, report.MissingAltTextCount)

	return &AuditResult{Model: m, Report: report}, nil
}

// Render produces the linear remediation text for a file without calling the
// external service
func (s *Service) Render(path string) (string, error) {
	m, err := s.ExtractModel(path)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(m), nil
}

// Run executes the full pipeline. Extraction and model-building failures
// abort the run. Remediation-stage failures are recovered: the returned
// result still carries the model, report, and rendered text, with
// RemediationErr describing what was skipped.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("no remediation backend configured")
	}

	m, err := s.ExtractModel(req.InputPath)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Model:        m,
		Report:       s.auditor.Audit(m),
		RenderedText: s.renderer.Render(m),
	}

	metadataJSON, err := json.Marshal(m.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	remReq := remediate.Request{
		SystemInstructions:       orDefault(req.SystemInstructions, DefaultSystemInstructions),
		UserInstructionsTemplate: orDefault(req.UserInstructions, DefaultUserInstructions),
		DocumentText:             result.RenderedText,
		MetadataJSON:             string(metadataJSON),
	}

	s.obs.Debugf("calling remediation backend for %s", req.InputPath)
	raw, err := s.backend.Remediate(ctx, remReq)
	if err != nil {
		s.obs.Warnf("remediation call failed, skipping generation: %v", err)
		result.RemediationErr = err
		return result, nil
	}

	remediated, err := s.applier.Apply(raw)
	if err != nil {
		s.obs.Warnf("remediation response rejected, skipping generation: %v", err)
		result.RemediationErr = err
		return result, nil
	}
	result.Remediated = remediated

	if err := s.generator.Write(remediated.CompliantText, req.OutputPath); err != nil {
		s.obs.Warnf("document generation failed: %v", err)
		result.RemediationErr = err
		return result, nil
	}
	result.OutputPath = req.OutputPath

	s.obs.Infof("wrote remediated document to %s", req.OutputPath)
	return result, nil
}

// MaxFileSize returns the configured maximum input file size
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
