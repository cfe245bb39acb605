// Package display renders the zipfinder report.
//
// All user-facing report lines are produced here so their exact wording lives
// in one place. The scanner drives a Reporter through the scanner.Reporter
// interface; the command layer prints the fatal path error and the totals.
//
// # Verbose Listing
//
//	==================================================
//	Contents of: backups/site.zip
//	==================================================
//	1. index.html
//	2. assets/logo.png
//
// # Pattern Search
//
// Match lines are printed with or without verbose mode:
//
//	backups/site.zip: assets/report.csv
//
// Verbose mode wraps them in a search header and a per-archive trailer.
//
// # Color
//
// Colors (fatih/color) are enabled only when the destination is a terminal
// according to go-isatty and NO_COLOR is unset. Piped output is plain text.
package display
