package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/accessdocs/pdf-remediator/internal/config"
	"github.com/accessdocs/pdf-remediator/internal/descriptions"
	"github.com/accessdocs/pdf-remediator/internal/model"
	"github.com/accessdocs/pdf-remediator/internal/pathguard"
	"github.com/accessdocs/pdf-remediator/internal/pipeline"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *pipeline.Service
	guard     *pathguard.Guard
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *pipeline.Service) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	guard, err := pathguard.NewGuard(cfg.DocsDirectory)
	if err != nil {
		return nil, fmt.Errorf("invalid document directory: %w", err)
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		service:   service,
		guard:     guard,
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register audit tool
	auditTool := mcp.NewTool(
		"pdf_audit_file",
		mcp.WithDescription("Audit a PDF file for accessibility issues"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, relative paths resolve against the document directory"),
		),
	)
	s.mcpServer.AddTool(auditTool, s.handleAuditFile)

	// Register model extraction tool
	extractModelTool := mcp.NewTool(
		"pdf_extract_model",
		mcp.WithDescription("Extract the structured document model from a PDF file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, relative paths resolve against the document directory"),
		),
	)
	s.mcpServer.AddTool(extractModelTool, s.handleExtractModel)

	// Register remediation tool
	remediateTool := mcp.NewTool(
		"pdf_remediate_file",
		mcp.WithDescription("Run the full accessibility remediation pipeline and write an accessible document"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, relative paths resolve against the document directory"),
		),
		mcp.WithString("output",
			mcp.Description("Output document path (defaults to the input path with a .docx extension)"),
		),
		mcp.WithString("system_instructions",
			mcp.Description("Optional override for the remediation system prompt"),
		),
		mcp.WithString("user_instructions",
			mcp.Description("Optional override for the remediation user prompt"),
		),
	)
	s.mcpServer.AddTool(remediateTool, s.handleRemediateFile)

	// Register server info tool
	serverInfoTool := mcp.NewTool(
		"pdf_server_info",
		mcp.WithDescription("Get server information, available tools, and usage guidance"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// resolvePath turns a tool path argument into a validated absolute path
func (s *Server) resolvePath(path string) (string, error) {
	resolved, err := s.guard.Resolve(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return resolved, nil
}

// Handler functions
func (s *Server) handleAuditFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.resolvePath(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.Audit(resolved)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatAuditResult(resolved, result)), nil
}

func (s *Server) handleExtractModel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.resolvePath(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := s.service.ExtractModel(resolved)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText, err := s.formatModelResult(resolved, m)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRemediateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.resolvePath(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	output := defaultOutputPath(resolved)
	if o, ok := args["output"].(string); ok && o != "" {
		if output, err = s.resolvePath(o); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	req := pipeline.RunRequest{
		InputPath:  resolved,
		OutputPath: output,
	}
	if v, ok := args["system_instructions"].(string); ok {
		req.SystemInstructions = v
	}
	if v, ok := args["user_instructions"].(string); ok {
		req.UserInstructions = v
	}

	result, err := s.service.Run(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatRunResult(resolved, result)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// defaultOutputPath derives the remediated document path from the input path
func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".docx"
}

// Formatting methods
func (s *Server) formatAuditResult(path string, result *pipeline.AuditResult) string {
	text := "Accessibility Audit Report\n"
	text += fmt.Sprintf("File: %s\n", path)
	text += fmt.Sprintf("Pages: %d\n", result.Model.Metadata.PageCount)
	text += fmt.Sprintf("Content blocks: %d\n\n", len(result.Model.Blocks))

	text += fmt.Sprintf("Missing alt text: %d image(s)\n", result.Report.MissingAltTextCount)
	text += fmt.Sprintf("Low contrast text candidates: %d\n", result.Report.LowContrastTextCount)
	text += fmt.Sprintf("Has document structure: %t\n", result.Report.HasDocumentStructure)
	text += fmt.Sprintf("Improper reading order: %t\n", result.Report.ImproperReadingOrder)

	if result.Model.Metadata.PermissionFlags.IsRestricted() {
		text += fmt.Sprintf("\nPermissions: %s\n", result.Model.Metadata.PermissionFlags.String())
	}

	return text
}

func (s *Server) formatModelResult(path string, m *model.DocumentModel) (string, error) {
	counts := map[model.BlockKind]int{}
	for _, block := range m.Blocks {
		counts[block.Kind]++
	}

	text := "Document Model\n"
	text += fmt.Sprintf("File: %s\n", path)
	text += fmt.Sprintf("Title: %s\n", m.Metadata.Title)
	text += fmt.Sprintf("Author: %s\n", m.Metadata.Author)
	text += fmt.Sprintf("Language: %s\n", m.Metadata.Language)
	text += fmt.Sprintf("Pages: %d\n", m.Metadata.PageCount)
	text += fmt.Sprintf("Blocks: %d (%d headings, %d paragraphs, %d list items, %d images, %d tables)\n",
		len(m.Blocks),
		counts[model.KindHeading],
		counts[model.KindParagraph],
		counts[model.KindListItem],
		counts[model.KindImage],
		counts[model.KindTable])

	encoded, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode document model: %w", err)
	}
	text += "\nModel:\n"
	text += string(encoded)

	return text, nil
}

func (s *Server) formatRunResult(path string, result *pipeline.RunResult) string {
	text := "Remediation Result\n"
	text += fmt.Sprintf("File: %s\n", path)
	text += fmt.Sprintf("Pages: %d\n", result.Model.Metadata.PageCount)
	text += fmt.Sprintf("Content blocks: %d\n\n", len(result.Model.Blocks))

	text += "Audit:\n"
	text += fmt.Sprintf("  Missing alt text: %d image(s)\n", result.Report.MissingAltTextCount)
	text += fmt.Sprintf("  Low contrast text candidates: %d\n", result.Report.LowContrastTextCount)
	text += fmt.Sprintf("  Has document structure: %t\n\n", result.Report.HasDocumentStructure)

	if result.RemediationErr != nil {
		text += fmt.Sprintf("⚠️  Remediation incomplete: %v\n", result.RemediationErr)
		text += "The document model, audit report, and rendered text were still produced.\n\n"
		text += "Rendered text:\n"
		text += result.RenderedText
		return text
	}

	text += fmt.Sprintf("Remediated document written to: %s\n", result.OutputPath)
	text += fmt.Sprintf("Remediated content length: %d characters\n", len(result.Remediated.CompliantText))

	return text
}

func (s *Server) formatServerInfo() string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("📁 Document Directory: %s\n", s.config.DocsDirectory)
	text += fmt.Sprintf("🤖 Remediation Backend: %s\n", s.config.Backend)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", s.service.MaxFileSize()/(1024*1024))

	text += "🛠️  Available Tools:\n"
	for _, name := range []string{"pdf_audit_file", "pdf_extract_model", "pdf_remediate_file", "pdf_server_info"} {
		text += fmt.Sprintf("\n• %s\n", name)
		text += descriptions.GetToolDescription(name) + "\n"
	}

	return text
}

// Run starts the MCP server in stdio mode
func (s *Server) Run(ctx context.Context) error {
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting PDF remediation server in stdio mode")
		log.Printf("Document directory: %s", s.config.DocsDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
