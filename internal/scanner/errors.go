package scanner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// Fatal conditions abort a scan before any archive is processed.
var (
	// ErrPathNotFound is returned when the scan root does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrPatternInvalid is returned when the entry pattern does not compile.
	ErrPatternInvalid = errors.New("invalid pattern")
)

// Per-archive conditions are reported and the scan moves on.
var (
	// ErrBadArchive marks a candidate that is not a structurally valid zip archive.
	ErrBadArchive = errors.New("not a valid zip file")
	// ErrArchiveRead marks any other failure while opening or listing a candidate.
	ErrArchiveRead = errors.New("archive read failed")
)

// ArchiveError describes why a single candidate could not be listed.
// It unwraps to both its Kind sentinel and the underlying cause.
type ArchiveError struct {
	Path string // Candidate path as displayed in the report
	Kind error  // ErrBadArchive or ErrArchiveRead
	Err  error  // Underlying cause
}

func newArchiveError(path string, kind, err error) *ArchiveError {
	return &ArchiveError{Path: path, Kind: kind, Err: err}
}

// Error implements the error interface for ArchiveError.
func (e *ArchiveError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("archive %s: %v", e.Path, e.Kind))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the kind sentinel and the cause for errors.Is/As support.
func (e *ArchiveError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// IsBadArchive reports whether err marks a structurally invalid archive.
func IsBadArchive(err error) bool {
	return errors.Is(err, ErrBadArchive)
}

// Reason gives a coarse classification of a read failure for diagnostics.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrBadArchive):
		return "malformed"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	case errors.Is(err, fs.ErrNotExist):
		return "not found"
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return "truncated"
	default:
		return "I/O"
	}
}
