package preview

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// Format is the tabular format of a source file.
type Format string

const (
	// FormatCSV is delimited text with a header row.
	FormatCSV Format = "CSV"
	// FormatJSON is an arbitrary JSON document.
	FormatJSON Format = "JSON"
)

// Compression is the stream compression wrapped around a source file.
type Compression string

const (
	// CompressionNone is a plain file.
	CompressionNone Compression = ""
	// CompressionGzip is a gzip stream (.gz).
	CompressionGzip Compression = "gzip"
	// CompressionZstd is a zstandard stream (.zst).
	CompressionZstd Compression = "zstd"
)

// Source is a validated data file.
type Source struct {
	// Raw is the path as supplied by the caller.
	Raw string
	// Path is the absolute path, with symlinks resolved when requested.
	Path string
	// Format is the detected tabular format.
	Format Format
	// Compression is the detected compression, if any.
	Compression Compression
	// Size is the file size in bytes.
	Size int64
}

// Supported reports whether path has an extension the previewer can read.
func Supported(path string) bool {
	_, _, ok := detect(path)

	return ok
}

// detect derives format and compression from the file name, case-insensitively.
func detect(path string) (Format, Compression, bool) {
	name := strings.ToLower(filepath.Base(path))

	compression := CompressionNone

	switch {
	case strings.HasSuffix(name, ".gz"):
		compression = CompressionGzip
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		compression = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	}

	switch filepath.Ext(name) {
	case ".csv":
		return FormatCSV, compression, true
	case ".json":
		return FormatJSON, compression, true
	default:
		return "", "", false
	}
}

// Validate resolves path and checks that it names a regular, supported file
// within the configured size ceiling. The file is not opened.
func Validate(path string, opt Options) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, newError(KindNotFound, path, "resolving absolute path %q: %w", path, err)
	}

	if opt.ResolveSymlinks {
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, statError(abs, err)
		}

		abs = resolved
	}

	// Without resolution the path keeps its link name, but the checks below
	// still apply to the file it points to.
	info, err := os.Stat(abs)
	if err != nil {
		return nil, statError(abs, err)
	}

	if !info.Mode().IsRegular() {
		return nil, newError(KindNotRegularFile, abs, "not a regular file: %s", abs)
	}

	size := info.Size()

	if opt.EnforceMaxSize && size > opt.MaxSize {
		return nil, newError(KindTooLarge, abs,
			"file too large (%s): maximum allowed size is %s", FormatSize(size), FormatSize(opt.MaxSize))
	}

	format, compression, ok := detect(abs)
	if !ok {
		return nil, newError(KindUnsupportedType, abs,
			"unsupported file type %q: please use .csv or .json files", filepath.Ext(abs))
	}

	return &Source{
		Raw:         path,
		Path:        abs,
		Format:      format,
		Compression: compression,
		Size:        size,
	}, nil
}

// statError classifies a failure to stat or resolve path.
func statError(path string, err error) *Error {
	if errors.Is(err, fs.ErrNotExist) {
		return newError(KindNotFound, path, "file not found: %s", path)
	}

	return newError(KindNotFound, path, "accessing path %q: %w", path, err)
}

// ParseSize parses a human-readable byte size such as "100MiB" or "2 GB".
func ParseSize(s string) (int64, error) {
	size, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}

	if size > math.MaxInt64 {
		return 0, fmt.Errorf("size %q exceeds the largest supported size of %s", s, humanize.IBytes(math.MaxInt64))
	}

	return int64(size), nil
}
