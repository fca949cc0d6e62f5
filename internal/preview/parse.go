package preview

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse reads src into a table. Every failure, including a panic while
// flattening, is reported as a parse failure with a diagnostic trace; a
// decompressed stream above the size ceiling is reported as too large.
func Parse(src *Source, opt Options) (table *Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			table = nil
			err = &Error{
				Kind:  KindParseFailure,
				Path:  src.Path,
				Err:   fmt.Errorf("failed to process file: %v", r),
				Trace: string(debug.Stack()),
			}
		}
	}()

	data, err := read(src, opt)
	if err != nil {
		return nil, parseFailure(src.Path, err)
	}

	switch src.Format {
	case FormatCSV:
		table, err = parseCSV(data)
	case FormatJSON:
		table, err = parseJSON(data)
	default:
		return nil, newError(KindUnsupportedType, src.Path, "unsupported format %q", src.Format)
	}

	if err != nil {
		return nil, parseFailure(src.Path, err)
	}

	return table, nil
}

// read returns the decoded content of src. The file handle is released
// before read returns.
func read(src *Source, opt Options) ([]byte, error) {
	file, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file

	switch src.Compression {
	case CompressionGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()

		reader = gz
	case CompressionZstd:
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()

		reader = zr
	case CompressionNone:
	}

	limited := opt.EnforceMaxSize && src.Compression != CompressionNone
	if limited {
		reader = io.LimitReader(reader, opt.MaxSize+1)
	}

	// Strip a byte order mark; UTF-16 input with a BOM is transcoded to UTF-8.
	reader = transform.NewReader(reader, unicode.BOMOverride(transform.Nop))

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Path, err)
	}

	if limited && int64(len(data)) > opt.MaxSize {
		return nil, newError(KindTooLarge, src.Path,
			"decompressed content too large: maximum allowed size is %s", FormatSize(opt.MaxSize))
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("invalid UTF-8: cannot decode byte 0x%02x at position %d",
			data[invalidOffset(data)], invalidOffset(data))
	}

	return data, nil
}

// invalidOffset returns the offset of the first byte that is not part of a
// valid UTF-8 sequence.
func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}

		i += size
	}

	return len(data)
}
