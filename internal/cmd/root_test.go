package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harrison/zipfinder/internal/scanner"
)

func writeZip(t *testing.T, path string, names ...string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range names {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func sampleTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeZip(t, filepath.Join(root, "a.zip"), "a/b.txt", "readme.md", "a/report.csv")
	writeZip(t, filepath.Join(root, "sub", "data.ZIP"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "broken.zip"), []byte("not a zip"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("skip me"), 0644))
	return root
}

func TestRootCommand(t *testing.T) {
	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "zipfinder")
	assert.Contains(t, stdout, "--pattern")
	assert.Contains(t, stdout, "--verbose")
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "version")
}

func TestRootCommandRequiresRoot(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)

	_, _, err = execute(t, "one", "two")
	require.Error(t, err)
}

func TestScanWithPattern(t *testing.T) {
	root := sampleTree(t)

	stdout, _, err := execute(t, root, "-p", `\.csv$`)
	require.NoError(t, err)

	want := filepath.Join(root, "a.zip") + ": a/report.csv\n" +
		"Error: '" + filepath.Join(root, "sub", "broken.zip") + "' is not a valid zip file.\n" +
		"\nTotal zip files found: 3\n" +
		"Total files matching pattern '\\.csv$': 1\n"
	assert.Equal(t, want, stdout)
}

func TestScanWithoutPatternPrintsOnlyTotals(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "a.zip"), "x.txt")
	writeZip(t, filepath.Join(root, "b.zip"), "y.txt")

	stdout, _, err := execute(t, root)
	require.NoError(t, err)
	assert.Equal(t, "\nTotal zip files found: 2\n", stdout)
}

func TestScanEmptyTree(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "--pattern", "x")
	require.NoError(t, err)
	assert.Equal(t, "\nTotal zip files found: 0\nTotal files matching pattern 'x': 0\n", stdout)
}

func TestScanVerbose(t *testing.T) {
	root := sampleTree(t)

	stdout, _, err := execute(t, root, "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Contents of: "+filepath.Join(root, "a.zip"))
	assert.Contains(t, stdout, "1. a/b.txt\n2. readme.md\n3. a/report.csv\n")
	assert.Contains(t, stdout, "Contents of: "+filepath.Join(root, "sub", "data.ZIP")+"\n"+strings.Repeat("=", 50)+"\n(empty zip file)\n")
	assert.True(t, strings.HasSuffix(stdout, "\nTotal zip files found: 3\n"))
}

func TestScanIsByteStable(t *testing.T) {
	root := sampleTree(t)

	first, _, err := execute(t, root, "-v", "-p", "a")
	require.NoError(t, err)
	second, _, err := execute(t, root, "-v", "-p", "a")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScanMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	stdout, _, err := execute(t, missing, "-p", "x")
	require.NoError(t, err)
	assert.Equal(t, "Error: The path '"+missing+"' does not exist.\n", stdout)
}

func TestScanInvalidPattern(t *testing.T) {
	root := sampleTree(t)

	stdout, _, err := execute(t, root, "-p", "(unbalanced")
	require.Error(t, err)
	assert.ErrorIs(t, err, scanner.ErrPatternInvalid)
	assert.Empty(t, stdout)
}

func TestScanExclude(t *testing.T) {
	root := sampleTree(t)

	stdout, _, err := execute(t, root, "--exclude", "sub/")
	require.NoError(t, err)
	assert.Equal(t, "\nTotal zip files found: 1\n", stdout)
}

func TestScanYAMLSummary(t *testing.T) {
	root := sampleTree(t)

	stdout, _, err := execute(t, root, "-p", "csv", "--summary-format", "yaml")
	require.NoError(t, err)

	lines := strings.SplitN(stdout, "\n\n", 2)
	require.Len(t, lines, 2, "expected match lines followed by a YAML document, got %q", stdout)

	var summary scanner.Summary
	require.NoError(t, yaml.Unmarshal([]byte(lines[1]), &summary))
	assert.Equal(t, scanner.Summary{
		ArchivesFound: 3,
		TotalMatches:  1,
		BadArchives:   1,
		Pattern:       "csv",
	}, summary)
}

func TestInvalidFlags(t *testing.T) {
	root := t.TempDir()

	_, _, err := execute(t, root, "--summary-format", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary_format")

	_, _, err = execute(t, root, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestDebugLogGoesToStderr(t *testing.T) {
	root := sampleTree(t)

	stdout, stderr, err := execute(t, root, "--log-level", "debug", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[DEBUG]")
	assert.Contains(t, stderr, "broken.zip")
	assert.NotContains(t, stdout, "[DEBUG]")
}

func TestNoColorDoesNotLeakBetweenRuns(t *testing.T) {
	original := color.NoColor
	t.Cleanup(func() { color.NoColor = original })
	color.NoColor = false

	root := sampleTree(t)

	_, stderr, err := execute(t, root, "--no-color", "--log-level", "debug")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "\x1b[")
	assert.False(t, color.NoColor, "--no-color must not change process-wide color state")

	// A second command built in the same process starts from a clean slate
	_, _, err = execute(t, root)
	require.NoError(t, err)
	assert.False(t, color.NoColor)
}

func TestInfoLogReportsScanTotals(t *testing.T) {
	root := sampleTree(t)

	_, stderr, err := execute(t, root, "--log-level", "info")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[INFO] scanned 3 archives under "+root+" (1 bad, 0 unreadable, 0 skipped directories)")
	assert.NotContains(t, stderr, "[DEBUG]")
}
