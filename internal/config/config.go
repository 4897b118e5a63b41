package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio = "stdio"
	ModeRun   = "run"

	// Backend constants
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
	BackendNoop   = "noop"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the PDF remediation server
type Config struct {
	// Mode selects between MCP stdio serving and a one-shot pipeline run
	Mode string // "stdio" or "run"

	// Document configuration
	DocsDirectory string
	InputPath     string // run mode: PDF to remediate
	OutputPath    string // run mode: where the remediated document is written

	// Remediation backend configuration
	Backend string // "openai", "gemini" or "noop"
	Model   string // backend model override; empty means the backend default

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:          ModeStdio, // Default to stdio mode for MCP compatibility
		DocsDirectory: currentDir,
		Backend:       BackendOpenAI,
		Version:       "1.0.0",
		ServerName:    "pdf-remediator",
		LogLevel:      DefaultLogLevel,
		MaxFileSize:   DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DocsDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocsDirectory); err == nil {
			cfg.DocsDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("PDF_REMEDIATOR")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.DocsDirectory)
	viper.SetDefault("input", cfg.InputPath)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("backend", cfg.Backend)
	viper.SetDefault("model", cfg.Model)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for MCP standard I/O, 'run' for a one-shot remediation")
	pflag.String("dir", cfg.DocsDirectory, "Directory containing PDF files")
	pflag.String("input", cfg.InputPath, "Input PDF path (run mode only)")
	pflag.String("output", cfg.OutputPath, "Output document path (run mode only)")
	pflag.String("backend", cfg.Backend, "Remediation backend: 'openai', 'gemini' or 'noop'")
	pflag.String("model", cfg.Model, "Backend model name (empty uses the backend default)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("backend", pflag.Lookup("backend"))
	_ = viper.BindPFlag("model", pflag.Lookup("model"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPDF Remediator - An accessibility remediation pipeline for PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                         "+
			"# stdio MCP mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs                     "+
			"# stdio MCP mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=run --input=doc.pdf --output=doc.docx # one-shot remediation\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=run --backend=gemini --input=doc.pdf --output=doc.docx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDF_REMEDIATOR_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  PDF_REMEDIATOR_DIR         PDF directory\n")
		fmt.Fprintf(os.Stderr, "  PDF_REMEDIATOR_BACKEND     Remediation backend\n")
		fmt.Fprintf(os.Stderr, "  PDF_REMEDIATOR_MODEL       Backend model name\n")
		fmt.Fprintf(os.Stderr, "  PDF_REMEDIATOR_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  PDF_REMEDIATOR_MAXFILESIZE Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY             API key for the openai backend\n")
		fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY             API key for the gemini backend\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.DocsDirectory = viper.GetString("dir")
	cfg.InputPath = viper.GetString("input")
	cfg.OutputPath = viper.GetString("output")
	cfg.Backend = viper.GetString("backend")
	cfg.Model = viper.GetString("model")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeRun {
		return errors.New("mode must be either 'stdio' or 'run'")
	}

	// Run mode needs an input and output path
	if c.Mode == ModeRun {
		if c.InputPath == "" {
			return errors.New("input path is required in run mode")
		}
		if c.OutputPath == "" {
			return errors.New("output path is required in run mode")
		}
	}

	// Validate backend
	switch c.Backend {
	case BackendOpenAI, BackendGemini, BackendNoop:
	default:
		return fmt.Errorf("invalid backend: %s (must be one of: openai, gemini, noop)", c.Backend)
	}

	// Validate document directory
	if c.DocsDirectory == "" {
		return errors.New("document directory cannot be empty")
	}

	// Check if document directory exists, create if it doesn't
	if _, err := os.Stat(c.DocsDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DocsDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create document directory %s: %w", c.DocsDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access document directory %s: %w", c.DocsDirectory, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, DocsDirectory: %s, Backend: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.DocsDirectory, c.Backend, c.LogLevel, c.MaxFileSize)
}

// IsRunMode returns true when configured for a one-shot pipeline run
func (c *Config) IsRunMode() bool {
	return c.Mode == ModeRun
}

// IsStdioMode returns true when configured as an MCP stdio server
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
