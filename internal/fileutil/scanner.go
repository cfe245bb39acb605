package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	ignore "github.com/sabhiram/go-gitignore"
)

// WalkOptions configures the directory walk
type WalkOptions struct {
	// Extensions is a list of file suffixes to visit (e.g., ".zip"); empty visits every file
	Extensions []string
	// Exclude holds gitignore-style patterns relative to the walk root
	Exclude []string
}

// WalkResult contains the outcome of a directory walk
type WalkResult struct {
	// Visited is the number of files handed to the visit callback
	Visited int
	// Errors contains non-fatal errors such as unreadable subdirectories
	Errors []error
}

// VisitFunc is called for every matching file, in walk order.
// Returning an error aborts the walk and the error is returned by Walk.
type VisitFunc func(path string) error

type walker struct {
	fsys     billy.Filesystem
	root     string
	suffixes []string
	excludes *ignore.GitIgnore
	visit    VisitFunc
	result   *WalkResult
}

// Walk traverses root on fsys and calls visit for each file matching opts.
// A root that is a regular file yields no visits.
func Walk(fsys billy.Filesystem, root string, opts WalkOptions, visit VisitFunc) (*WalkResult, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}

	w := &walker{
		fsys:   fsys,
		root:   root,
		visit:  visit,
		result: &WalkResult{Errors: make([]error, 0)},
	}

	for _, ext := range opts.Extensions {
		// Ensure extensions start with a dot
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.suffixes = append(w.suffixes, strings.ToLower(ext))
	}

	if len(opts.Exclude) > 0 {
		w.excludes = ignore.CompileIgnoreLines(opts.Exclude...)
	}

	if !info.IsDir() {
		return w.result, nil
	}

	if err := w.walkDir(root); err != nil {
		return nil, err
	}

	return w.result, nil
}

func (w *walker) walkDir(dir string) error {
	entries, err := w.fsys.ReadDir(dir)
	if err != nil {
		w.result.Errors = append(w.result.Errors, fmt.Errorf("failed to read directory %s: %w", dir, err))
		return nil
	}

	var files, dirs []string
	for _, entry := range entries {
		path := w.fsys.Join(dir, entry.Name())
		if entry.IsDir() {
			if !w.excluded(path, true) {
				dirs = append(dirs, path)
			}
			continue
		}
		// Symlinked directories are neither descended into nor treated as files
		if w.isLinkedDir(path, entry) {
			continue
		}
		if w.matches(entry.Name()) && !w.excluded(path, false) {
			files = append(files, path)
		}
	}

	sort.Strings(files)
	sort.Strings(dirs)

	for _, path := range files {
		w.result.Visited++
		if err := w.visit(path); err != nil {
			return err
		}
	}

	for _, path := range dirs {
		if err := w.walkDir(path); err != nil {
			return err
		}
	}

	return nil
}

// isLinkedDir reports whether entry is a symlink resolving to a directory.
func (w *walker) isLinkedDir(path string, entry os.FileInfo) bool {
	if entry.Mode()&os.ModeSymlink == 0 {
		return false
	}
	target, err := w.fsys.Stat(path)
	return err == nil && target.IsDir()
}

func (w *walker) matches(name string) bool {
	if len(w.suffixes) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, suffix := range w.suffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func (w *walker) excluded(path string, isDir bool) bool {
	if w.excludes == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		rel += "/"
	}
	return w.excludes.MatchesPath(rel)
}
