package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// BannerWidth is the width of the "=" and "-" rows framing verbose sections.
const BannerWidth = 50

// Reporter writes the scan report. Color is applied only when the writer is
// a terminal; otherwise the output is plain and byte-stable across runs.
type Reporter struct {
	out         io.Writer
	colorOutput bool
}

// NewReporter creates a Reporter writing to out, detecting color support.
func NewReporter(out io.Writer) *Reporter {
	return NewReporterWithColor(out, isTerminal(out))
}

// NewReporterWithColor creates a Reporter with color forced on or off.
func NewReporterWithColor(out io.Writer, colorOutput bool) *Reporter {
	return &Reporter{out: out, colorOutput: colorOutput}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Reporter) paint(s string, attrs ...color.Attribute) string {
	if !r.colorOutput {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// ArchiveHeader frames the archive path between two "=" rows, preceded by a blank line.
func (r *Reporter) ArchiveHeader(path string) {
	rule := strings.Repeat("=", BannerWidth)
	fmt.Fprintf(r.out, "\n%s\nContents of: %s\n%s\n", rule, r.paint(path, color.Bold), rule)
}

// SearchHeader announces the pattern and separates it from the entries with a "-" row.
func (r *Reporter) SearchHeader(pattern string) {
	fmt.Fprintf(r.out, "Searching for files matching pattern: '%s'\n", pattern)
	fmt.Fprintln(r.out, strings.Repeat("-", BannerWidth))
}

// Entry prints one entry of a full listing, numbered from 1.
func (r *Reporter) Entry(index int, name string) {
	fmt.Fprintf(r.out, "%d. %s\n", index, name)
}

// Match prints a matching entry as "<archive>: <entry>".
func (r *Reporter) Match(path, name string) {
	fmt.Fprintf(r.out, "%s: %s\n", r.paint(path, color.FgCyan), r.paint(name, color.FgGreen))
}

// EmptyArchive notes an archive with no entries.
func (r *Reporter) EmptyArchive() {
	fmt.Fprintln(r.out, "(empty zip file)")
}

// ArchiveTrailer closes a verbose pattern search over one archive.
func (r *Reporter) ArchiveTrailer(matches int) {
	if matches == 0 {
		fmt.Fprintln(r.out, "No matching files found in this archive.")
		return
	}
	fmt.Fprintf(r.out, "\nFound %d matching files in this archive.\n", matches)
}

// BadArchive reports a candidate that is not a zip archive.
func (r *Reporter) BadArchive(path string) {
	fmt.Fprintln(r.out, r.paint(fmt.Sprintf("Error: '%s' is not a valid zip file.", path), color.FgRed))
}

// ReadError reports a candidate that could not be read.
func (r *Reporter) ReadError(path string, cause error) {
	fmt.Fprintln(r.out, r.paint(fmt.Sprintf("Error reading '%s': %v", path, cause), color.FgRed))
}

// PathNotFound reports a missing scan root.
func (r *Reporter) PathNotFound(root string) {
	fmt.Fprintln(r.out, r.paint(fmt.Sprintf("Error: The path '%s' does not exist.", root), color.FgRed))
}

// Totals prints the closing counts. The pattern line appears only when a
// pattern was supplied.
func (r *Reporter) Totals(archivesFound, totalMatches int, pattern string) {
	fmt.Fprintf(r.out, "\nTotal zip files found: %d\n", archivesFound)
	if pattern != "" {
		fmt.Fprintf(r.out, "Total files matching pattern '%s': %d\n", pattern, totalMatches)
	}
}

// Document writes v as a YAML document, preceded by a blank line like Totals.
func (r *Reporter) Document(v interface{}) error {
	fmt.Fprintln(r.out)
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}
