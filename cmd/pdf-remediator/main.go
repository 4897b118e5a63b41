package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/accessdocs/pdf-remediator/internal/config"
	"github.com/accessdocs/pdf-remediator/internal/mcp"
	"github.com/accessdocs/pdf-remediator/internal/pipeline"
	"github.com/accessdocs/pdf-remediator/internal/remediate"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering with MCP protocol
		log.SetOutput(os.Stderr)
		// Reduce log verbosity in stdio mode unless debug is enabled
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		// In run mode, use normal stdout logging with more detail
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// newBackend builds the configured remediation backend, reading API keys
// from the environment
func newBackend(ctx context.Context, cfg *config.Config) (remediate.Backend, error) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		return remediate.NewOpenAIBackend(os.Getenv("OPENAI_API_KEY"), cfg.Model)
	case config.BackendGemini:
		return remediate.NewGeminiBackend(ctx, os.Getenv("GEMINI_API_KEY"), cfg.Model)
	case config.BackendNoop:
		return remediate.NewNoopBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

// runStdioMode handles stdio mode execution
func runStdioMode(ctx context.Context, server *mcp.Server) {
	// In stdio mode, the parent process controls our lifecycle
	// We should exit cleanly when stdin is closed or we get an error
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// runPipelineMode performs a one-shot remediation of the configured input
func runPipelineMode(ctx context.Context, cfg *config.Config, service *pipeline.Service) {
	result, err := service.Run(ctx, pipeline.RunRequest{
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
	})
	if err != nil {
		log.Fatalf("Remediation failed: %v", err)
	}

	fmt.Printf("Audited %s: %d missing alt text, %d low contrast candidates\n",
		cfg.InputPath, result.Report.MissingAltTextCount, result.Report.LowContrastTextCount)

	if result.RemediationErr != nil {
		log.Fatalf("Remediation incomplete: %v", result.RemediationErr)
	}

	fmt.Printf("Wrote remediated document to %s\n", result.OutputPath)
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging based on mode
	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsRunMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create remediation backend: %v", err)
	}

	service := pipeline.NewService(cfg.MaxFileSize, backend, pipeline.NewLogObserver(cfg.IsDebug()))

	// Handle different modes
	if cfg.IsRunMode() {
		runPipelineMode(ctx, cfg, service)
		return
	}

	server, err := mcp.NewServer(cfg, service)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	runStdioMode(ctx, server)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("PDF Remediator\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
