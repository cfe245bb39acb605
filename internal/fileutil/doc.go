// Package fileutil provides the directory traversal used to discover candidate files.
//
// Traversal runs over a go-billy filesystem so the same code walks the real disk
// (osfs) and in-memory fixtures (memfs).
//
// # Ordering
//
// Walk is top-down. Within a directory the files are visited first, sorted by
// name, followed by the subdirectories, also sorted by name. A fixed tree always
// produces the same visit sequence regardless of the order the underlying
// filesystem returns entries in.
//
// # Filtering
//
//   - Extensions: case-insensitive suffix match on the base name only
//     (".zip" matches "data.ZIP" but never a directory called "x.zip")
//   - Exclude: gitignore-style patterns evaluated against the path relative
//     to the walk root; an excluded directory is not descended into
//
// # Error Tolerance
//
// A directory that cannot be listed is recorded in WalkResult.Errors and
// skipped. Only a root that cannot be stat'ed, or an error returned by the
// visit callback, stops the walk.
//
// Usage:
//
//	result, err := fileutil.Walk(osfs.Default, "/srv/backups", fileutil.WalkOptions{
//	    Extensions: []string{".zip"},
//	    Exclude:    []string{"node_modules/"},
//	}, func(path string) error {
//	    fmt.Println(path)
//	    return nil
//	})
package fileutil
