package cmd

import (
	"errors"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/harrison/zipfinder/internal/config"
	"github.com/harrison/zipfinder/internal/display"
	"github.com/harrison/zipfinder/internal/logger"
	"github.com/harrison/zipfinder/internal/scanner"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type rootFlags struct {
	pattern       string
	verbose       bool
	exclude       []string
	summaryFormat string
	logLevel      string
	noColor       bool
}

// NewRootCommand creates and returns the root cobra command for zipfinder
func NewRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "zipfinder <root>",
		Short: "Search for zip files and optionally find files within them matching a pattern",
		Long: `Zipfinder walks a directory tree, finds every file ending in .zip
(case-insensitive) and lists the entries stored in each archive.

With --pattern, only entries whose name matches the regular expression are
printed as "<archive>: <entry>". With --verbose, every archive gets a header
and either a full numbered listing or a per-archive match count.

Malformed or unreadable archives are reported and skipped; they never stop
the scan.`,
		Example: `  zipfinder ./backups
  zipfinder ./backups -p '\.csv$'
  zipfinder ./backups -v -p report --exclude node_modules/`,
		Version: Version,
		Args:    cobra.ExactArgs(1),
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()

			var logLevel, summaryFormat *string
			if cmd.Flags().Changed("log-level") {
				logLevel = &flags.logLevel
			}
			if cmd.Flags().Changed("summary-format") {
				summaryFormat = &flags.summaryFormat
			}
			cfg.MergeWithFlags(logLevel, summaryFormat, &flags.noColor, flags.exclude)

			if err := cfg.Validate(); err != nil {
				return err
			}

			req := scanner.Request{
				Root:    args[0],
				Pattern: flags.pattern,
				Verbose: flags.verbose,
				Exclude: cfg.Exclude,
			}
			return runScan(osfs.Default, req, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&flags.pattern, "pattern", "p", "", "Regular expression pattern to search for within zip files")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose mode - show detailed listings of zip contents")
	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "Skip paths matching a gitignore-style pattern (repeatable)")
	cmd.Flags().StringVar(&flags.summaryFormat, "summary-format", config.SummaryText, "Format of the closing totals: text or yaml")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "Diagnostic log level on stderr: trace, debug, info, warn, error")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// runScan executes one scan and prints the closing totals.
// A missing root is reported on out and is not an error.
func runScan(fsys billy.Filesystem, req scanner.Request, cfg *config.Config, out, errOut io.Writer) error {
	var reporter *display.Reporter
	var log *logger.ConsoleLogger
	if cfg.Color {
		reporter = display.NewReporter(out)
		log = logger.NewConsoleLogger(errOut, cfg.LogLevel)
	} else {
		reporter = display.NewReporterWithColor(out, false)
		log = logger.NewConsoleLoggerWithColor(errOut, cfg.LogLevel, false)
	}

	summary, err := scanner.New(fsys, reporter, log).Scan(req)
	if errors.Is(err, scanner.ErrPathNotFound) {
		reporter.PathNotFound(req.Root)
		return nil
	}
	if err != nil {
		return err
	}

	if cfg.SummaryFormat == config.SummaryYAML {
		return reporter.Document(summary)
	}
	reporter.Totals(summary.ArchivesFound, summary.TotalMatches, summary.Pattern)
	return nil
}
