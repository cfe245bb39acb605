// Package scanner finds zip archives under a directory tree, lists their
// entries and optionally filters entry names by a regular expression.
//
// Output is streamed through a Reporter while the tree is walked. A Scan is
// strictly sequential: one archive handle is open at a time and the counters
// belong to the call that created them.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"github.com/go-git/go-billy/v5"

	"github.com/harrison/zipfinder/internal/fileutil"
)

// ArchiveSuffix identifies candidate files, compared case-insensitively.
const ArchiveSuffix = ".zip"

// Request describes a single scan. An empty Pattern means no filtering.
type Request struct {
	Root    string
	Pattern string
	Verbose bool
	Exclude []string
}

// Summary holds the aggregate counts of a finished scan.
type Summary struct {
	ArchivesFound int    `yaml:"archives_found"`
	TotalMatches  int    `yaml:"total_matches"`
	BadArchives   int    `yaml:"bad_archives"`
	ReadErrors    int    `yaml:"read_errors"`
	Pattern       string `yaml:"pattern,omitempty"`
}

// Reporter receives scan output in the order it is produced.
type Reporter interface {
	ArchiveHeader(path string)
	SearchHeader(pattern string)
	Entry(index int, name string)
	Match(path, name string)
	EmptyArchive()
	ArchiveTrailer(matches int)
	BadArchive(path string)
	ReadError(path string, cause error)
}

// Logger receives diagnostics that are not part of the report.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// Scanner walks a filesystem for zip archives.
type Scanner struct {
	fsys     billy.Filesystem
	reporter Reporter
	logger   Logger
}

// New creates a Scanner reading from fsys.
func New(fsys billy.Filesystem, reporter Reporter, logger Logger) *Scanner {
	return &Scanner{
		fsys:     fsys,
		reporter: reporter,
		logger:   logger,
	}
}

// Scan runs req to completion. It fails only with ErrPathNotFound,
// ErrPatternInvalid or an unexpected error on the root itself; archive
// level failures are reported and counted in the Summary instead.
func (s *Scanner) Scan(req Request) (*Summary, error) {
	if _, err := s.fsys.Stat(req.Root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, req.Root)
		}
		s.logger.LogError(fmt.Sprintf("cannot access %s: %v", req.Root, err))
		return nil, fmt.Errorf("failed to access %s: %w", req.Root, err)
	}

	var re *regexp.Regexp
	if req.Pattern != "" {
		compiled, err := regexp.Compile(req.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrPatternInvalid, req.Pattern, err)
		}
		re = compiled
	}

	summary := &Summary{Pattern: req.Pattern}
	s.logger.LogDebug(fmt.Sprintf("scanning %s (pattern=%q verbose=%t)", req.Root, req.Pattern, req.Verbose))

	walked, err := fileutil.Walk(s.fsys, req.Root, fileutil.WalkOptions{
		Extensions: []string{ArchiveSuffix},
		Exclude:    req.Exclude,
	}, func(path string) error {
		result := s.scanArchive(path, req.Verbose, re, summary)
		if result.Err == nil {
			s.logger.LogTrace(fmt.Sprintf("%s: %d entries, %d matches", path, len(result.Entries), len(result.Matches)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, walkErr := range walked.Errors {
		s.logger.LogWarn(walkErr.Error())
	}
	s.logger.LogInfo(fmt.Sprintf("scanned %d archives under %s (%d bad, %d unreadable, %d skipped directories)",
		summary.ArchivesFound, req.Root, summary.BadArchives, summary.ReadErrors, len(walked.Errors)))

	return summary, nil
}

func (s *Scanner) scanArchive(path string, verbose bool, re *regexp.Regexp, summary *Summary) *ArchiveResult {
	summary.ArchivesFound++
	result := &ArchiveResult{Path: path}

	if verbose {
		s.reporter.ArchiveHeader(path)
	}

	entries, archiveErr := s.listEntries(path)
	if archiveErr != nil {
		result.Err = archiveErr
		s.logger.LogDebug(fmt.Sprintf("skipping %s (%s): %v", path, Reason(archiveErr), archiveErr.Err))
		if IsBadArchive(archiveErr) {
			summary.BadArchives++
			s.reporter.BadArchive(path)
		} else {
			summary.ReadErrors++
			s.reporter.ReadError(path, archiveErr.Err)
		}
		return result
	}
	result.Entries = entries

	if len(entries) == 0 {
		if verbose {
			s.reporter.EmptyArchive()
		}
		return result
	}

	if re != nil && verbose {
		s.reporter.SearchHeader(re.String())
	}

	for i, name := range entries {
		if re == nil {
			if verbose {
				s.reporter.Entry(i+1, name)
			}
			continue
		}
		if re.MatchString(name) {
			result.Matches = append(result.Matches, name)
			summary.TotalMatches++
			s.reporter.Match(path, name)
		}
	}

	if re != nil && verbose {
		s.reporter.ArchiveTrailer(len(result.Matches))
	}

	return result
}
