// Package diff provides an Engine that picks an installed diff program and renders the
// changes between the downloaded object and the edited working copy.
//
// Whitespace-amount changes are ignored by both supported programs: git diff --no-index
// with --ignore-space-change, and diff -u -b.
package diff
