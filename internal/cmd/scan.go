package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/petrarca/file-summary/internal/config"
	"github.com/petrarca/file-summary/internal/detect"
	"github.com/petrarca/file-summary/internal/git"
	"github.com/petrarca/file-summary/internal/progress"
	"github.com/petrarca/file-summary/internal/report"
	"github.com/spf13/cobra"
)

var (
	settings *config.Settings
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Catalogue the files of a repository",
	Long: `Scan walks a repository tree, classifies every matching file by name,
extension and path, and writes file-summaries.md and file-summaries.json
into the output directory. The output directory must already exist.

Examples:
  file-summary scan /path/to/project
  file-summary scan --include "*.py" --include "*.go" /path/to/project
  file-summary scan --exclude-dir vendor,node_modules /path/to/project
  file-summary scan --dry-run /path/to/project
  file-summary scan -c .file-summary.yml /path/to/project`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Initialize settings with defaults and environment variables
	settings = config.LoadSettings()

	// Store environment variable values for flag defaults
	outputDir := settings.OutputDir
	dryRun := settings.DryRun
	verbose := settings.Verbose
	debug := settings.Debug
	logLevel := settings.LogLevel.String()
	logFormat := settings.LogFormat
	logFile := settings.LogFile

	scanCmd.Flags().StringVarP(&settings.OutputDir, "output-dir", "o", outputDir, "Directory the summaries are written into (must exist)")
	scanCmd.Flags().BoolVarP(&settings.DryRun, "dry-run", "n", dryRun, "Render the summaries without writing any files")
	scanCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", verbose, "Show progress with simple output")
	scanCmd.Flags().BoolVarP(&settings.Debug, "debug", "d", debug, "Show progress with tree structure (cannot be used with --verbose)")
	scanCmd.Flags().Bool("trace-timings", false, "Show timing information for each directory (requires --verbose or --debug)")

	// Include patterns and exclude dirs - support multiple flags or comma-separated values
	scanCmd.Flags().StringSliceVar(&settings.IncludePatterns, "include", settings.IncludePatterns, "File name patterns to include, leading or trailing * only (can be specified multiple times)")
	scanCmd.Flags().StringSliceVar(&settings.ExcludeDirs, "exclude-dir", settings.ExcludeDirs, "Directory names to prune entirely (can be specified multiple times)")

	scanCmd.Flags().StringP("config", "c", "", "Config file path or inline JSON (default: .file-summary.yml at the scan root)")

	// Logging flags - use defaults from environment variables
	scanCmd.Flags().String("log-level", logLevel, "Log level: debug, info, warn, error")
	scanCmd.Flags().String("log-format", logFormat, "Log format: text or json")
	scanCmd.Flags().String("log-file", logFile, "Log file path (default: stderr)")
}

// configureLogging sets up logging based on command flags. The configured
// logger becomes the slog default so package-level logging honors the flags.
func configureLogging(cmd *cobra.Command) *slog.Logger {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	if level, err := config.ParseLogLevel(logLevel); err == nil {
		settings.LogLevel = level
	}
	settings.LogFormat = logFormat
	settings.LogFile = logFile

	logger := settings.ConfigureLogger()
	slog.SetDefault(logger)
	return logger
}

// resolveScanRoot resolves the scan root from args. Existence is checked by
// the scanner itself so invalid roots surface as the wrapped report error.
func resolveScanRoot(args []string, logger *slog.Logger) string {
	path := "."
	if len(args) > 0 {
		path = strings.TrimSpace(args[0])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		logger.Error("Invalid path", "error", err)
		os.Exit(1)
	}
	return absPath
}

// loadConfigFile loads the config named by -c, or the project config
// discovered at the scan root when the flag is unset.
func loadConfigFile(cmd *cobra.Command, root string) (*config.ScanConfigFile, error) {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		return config.LoadScanConfig(configFlag)
	}
	return config.LoadProjectConfig(root)
}

// resolveIncludePatterns turns the config's languages section into include
// patterns, unless explicit patterns already won. A nil enabled list means
// the languages found in the repository decide.
func resolveIncludePatterns(root string, cfg *config.ScanConfigFile, logger *slog.Logger) {
	if cfg == nil || cfg.Languages == nil || len(settings.IncludePatterns) > 0 {
		return
	}

	var census *detect.Census
	if cfg.Languages.Enabled == nil {
		detector, err := detect.New(root, detect.Options{})
		if err != nil {
			logger.Error("Failed to detect repository languages", "error", err)
			os.Exit(1)
		}
		census, err = detector.Detect()
		if err != nil {
			logger.Error("Failed to detect repository languages", "error", err)
			os.Exit(1)
		}
		logger.Debug("Repository language census",
			"languages", census.Languages(),
			"files_seen", census.FilesSeen,
			"truncated", census.Truncated)
	}

	enabled := detect.AutoEnable(cfg.Languages.Enabled, census)
	enabled = removeDisabled(enabled, cfg.Languages.Disabled)

	patterns := detect.IncludePatterns(enabled)
	if len(patterns) > 0 {
		settings.IncludePatterns = patterns
		noticef("Languages: %s", strings.Join(enabled, ", "))
	}
}

// removeDisabled filters languages by name, preserving order.
func removeDisabled(languages, disabled []string) []string {
	if len(disabled) == 0 {
		return languages
	}

	drop := make(map[string]bool, len(disabled))
	for _, lang := range disabled {
		drop[lang] = true
	}

	kept := make([]string, 0, len(languages))
	for _, lang := range languages {
		if !drop[lang] {
			kept = append(kept, lang)
		}
	}
	return kept
}

// buildProgress wires the progress reporter the flags ask for.
func buildProgress(traceTimings bool) *progress.Progress {
	var prog *progress.Progress
	switch {
	case settings.Debug:
		prog = progress.New(true, progress.NewTreeHandler(os.Stderr))
	case settings.Verbose:
		prog = progress.New(true, progress.NewSimpleHandler(os.Stderr))
	default:
		return progress.Discard()
	}

	if traceTimings {
		prog.EnableTimings()
	}
	return prog
}

// reportOutcome prints the user-facing confirmation lines.
func reportOutcome(result *report.Result) {
	if result.TotalFiles == 0 {
		if result.DryRun {
			noticef("[DRY RUN] No files found matching criteria")
		} else {
			noticef("No files found matching criteria")
		}
		return
	}

	if result.DryRun {
		noticef("[DRY RUN] Would write file-summaries.md to: %s", result.Markdown.Path)
		noticef("[DRY RUN] Content length: %d bytes", result.Markdown.Size)
		noticef("[DRY RUN] Total files: %d", result.TotalFiles)
		noticef("[DRY RUN] Would write file-summaries.json to: %s", result.JSON.Path)
		noticef("[DRY RUN] JSON entries: %d", result.JSON.Entries)
		return
	}

	successf("File summaries written: %s", result.Markdown.Path)
	successf("File summaries JSON written: %s", result.JSON.Path)
}

func runScan(cmd *cobra.Command, args []string) {
	logger := configureLogging(cmd)
	root := resolveScanRoot(args, logger)

	// Check for mutually exclusive flags
	if settings.Verbose && settings.Debug {
		logger.Error("Cannot use --verbose and --debug together. Choose one.")
		os.Exit(1)
	}

	// Auto-enable debug mode when trace timings are requested without an
	// explicit output mode
	traceTimings, _ := cmd.Flags().GetBool("trace-timings")
	if traceTimings && !settings.Verbose && !settings.Debug {
		settings.Debug = true
		logger.Debug("Auto-enabled --debug mode for trace output")
	}

	if err := settings.Validate(); err != nil {
		logger.Error("Invalid settings", "error", err)
		os.Exit(1)
	}

	cfg, err := loadConfigFile(cmd, root)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.MergeWithSettings(settings)
	resolveIncludePatterns(root, cfg, logger)

	noticef("Scanning: %s", root)
	logger.Debug("Starting scan",
		"root", root,
		"output_dir", settings.OutputDir,
		"include_patterns", settings.IncludePatterns,
		"exclude_dirs", settings.ExcludeDirs,
		"dry_run", settings.DryRun)

	// Worktree status is too expensive to probe unless debug logging asks.
	if settings.LogLevel <= slog.LevelDebug {
		if info := git.Get(root); info != nil {
			logger.Debug("Repository info",
				"branch", info.Branch,
				"commit", info.Commit,
				"dirty", info.IsDirty)
		}
	}

	result, err := report.Generate(root, settings.OutputDir, report.Options{
		IncludePatterns: settings.IncludePatterns,
		ExcludeDirs:     settings.ExcludeDirs,
		DryRun:          settings.DryRun,
		Progress:        buildProgress(traceTimings),
	})
	if err != nil {
		logger.Error("Scan failed", "error", err)
		os.Exit(1)
	}

	reportOutcome(result)
}
