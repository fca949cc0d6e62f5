// Package preview loads a tabular data file and summarizes it.
//
// A preview runs as a linear chain: Validate resolves and checks the path,
// Parse reads CSV or JSON (optionally gzip or zstd compressed) into a Table,
// and Summarize derives file information, per-column statistics and the
// first rows of the table for display.
package preview
