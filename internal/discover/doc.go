// Package discover finds previewable data files below a directory.
//
// It walks directory trees using fastwalk for parallel traversal and
// collects regular files whose extension the previewer supports.
package discover
