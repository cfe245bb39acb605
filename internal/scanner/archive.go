package scanner

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"
)

// utf8NameFlag is general purpose bit 11: the entry name is stored as UTF-8.
const utf8NameFlag = 0x800

// ArchiveResult is the outcome of processing one candidate.
type ArchiveResult struct {
	Path    string
	Entries []string
	Matches []string
	Err     *ArchiveError
}

// listEntries opens path and returns its entry names in archive order.
// The handle is closed before returning on every path.
func (s *Scanner) listEntries(path string) ([]string, *ArchiveError) {
	info, err := s.fsys.Stat(path)
	if err != nil {
		return nil, newArchiveError(path, ErrArchiveRead, err)
	}

	f, err := s.fsys.Open(path)
	if err != nil {
		return nil, newArchiveError(path, ErrArchiveRead, err)
	}
	defer f.Close()

	zr, err := zip.NewReader(f, info.Size())
	// ErrInsecurePath still yields a usable reader; names are only listed, never extracted
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		if errors.Is(err, zip.ErrFormat) {
			s.logContentType(path, f)
			return nil, newArchiveError(path, ErrBadArchive, err)
		}
		return nil, newArchiveError(path, ErrArchiveRead, err)
	}

	names := make([]string, 0, len(zr.File))
	for _, entry := range zr.File {
		names = append(names, entryName(entry))
	}
	return names, nil
}

// entryName returns the display name of entry. Names stored without the UTF-8
// flag are legacy IBM code page 437.
func entryName(entry *zip.File) string {
	if entry.Flags&utf8NameFlag != 0 {
		return entry.Name
	}
	decoded, err := charmap.CodePage437.NewDecoder().String(entry.Name)
	if err != nil {
		return entry.Name
	}
	return decoded
}

// logContentType records what a malformed candidate actually contains.
func (s *Scanner) logContentType(path string, r io.ReadSeeker) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return
	}
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		s.logger.LogDebug(fmt.Sprintf("content type of %s unknown: %v", path, err))
		return
	}
	s.logger.LogDebug(fmt.Sprintf("%s is not a zip archive (detected %s)", path, mt.String()))
}
