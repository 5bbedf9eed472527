package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"log/slog"
)

// Settings holds all catalogue configuration
type Settings struct {
	// Output settings
	OutputDir string
	DryRun    bool

	// Scan behavior
	IncludePatterns []string
	ExcludeDirs     []string
	Verbose         bool
	Debug           bool // tree-style progress output

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Optional: write logs to file instead of stderr
}

// DefaultOutputDir is where the artifacts land when nothing else is configured.
const DefaultOutputDir = "repo-report"

// DefaultSettings returns default configuration
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:       DefaultOutputDir,
		DryRun:          false,
		IncludePatterns: []string{},
		ExcludeDirs:     []string{},
		Verbose:         false,
		Debug:           false,
		LogLevel:        slog.LevelError, // Only errors by default
		LogFormat:       "text",
		LogFile:         "", // Empty = stderr
	}
}

// LoadSettings creates settings from defaults and applies environment
// variable overrides
func LoadSettings() *Settings {
	settings := DefaultSettings()

	if outputDir := os.Getenv("FILE_SUMMARY_OUTPUT_DIR"); outputDir != "" {
		settings.OutputDir = outputDir
	}

	if include := os.Getenv("FILE_SUMMARY_INCLUDE"); include != "" {
		settings.IncludePatterns = splitList(include)
	}

	if excludeDirs := os.Getenv("FILE_SUMMARY_EXCLUDE_DIRS"); excludeDirs != "" {
		settings.ExcludeDirs = splitList(excludeDirs)
	}

	if dryRun := os.Getenv("FILE_SUMMARY_DRY_RUN"); dryRun != "" {
		settings.DryRun = strings.ToLower(dryRun) == "true"
	}

	if verbose := os.Getenv("FILE_SUMMARY_VERBOSE"); verbose != "" {
		settings.Verbose = strings.ToLower(verbose) == "true"
	}

	if debug := os.Getenv("FILE_SUMMARY_DEBUG"); debug != "" {
		settings.Debug = strings.ToLower(debug) == "true"
	}

	// Logging settings
	if logLevel := os.Getenv("FILE_SUMMARY_LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}

	if logFormat := os.Getenv("FILE_SUMMARY_LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}

	if logFile := os.Getenv("FILE_SUMMARY_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	return settings
}

// splitList splits a comma-separated environment value into trimmed parts.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// ParseLogLevel converts string log level to slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "fatal":
		return slog.LevelError, nil // slog doesn't have fatal, use error
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger sets up a logger based on settings
func (s *Settings) ConfigureLogger() *slog.Logger {
	var handler slog.Handler

	// Set output destination
	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stderr if file can't be opened
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	// Set log format and level
	opts := &slog.HandlerOptions{
		Level: s.LogLevel,
	}

	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Validate checks if settings are valid
func (s *Settings) Validate() error {
	if s.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be \"text\" or \"json\"", s.LogFormat)
	}
	return nil
}
