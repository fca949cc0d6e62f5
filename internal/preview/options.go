package preview

// DefaultMaxSize is the largest file accepted when the size limit is enforced.
const DefaultMaxSize int64 = 100 * 1024 * 1024

const (
	// DefaultPreviewRows is the number of rows shown in the data preview.
	DefaultPreviewRows = 5
	// DefaultSampleValues is the number of non-null sample values per column.
	DefaultSampleValues = 3
)

// Options configures validation, parsing and output of a preview.
type Options struct {
	// EnforceMaxSize rejects files larger than MaxSize.
	EnforceMaxSize bool
	// MaxSize is the size ceiling in bytes, applied to the file on disk and
	// to the decompressed stream.
	MaxSize int64
	// ResolveSymlinks follows symlinks before validating the path.
	ResolveSymlinks bool
	// ExitNonZeroOnError makes any preview failure terminate with exit status 1.
	ExitNonZeroOnError bool
	// PreviewRows is the number of rows included in the data preview.
	PreviewRows int
	// SampleValues is the number of sample values collected per column.
	SampleValues int
	// Output represents output format (table or json).
	Output string
	// Color controls colored output (auto, always or never).
	Color string
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// DefaultOptions returns the strict preset: size ceiling, symlink resolution
// and a non-zero exit status on failure.
func DefaultOptions() Options {
	return Options{
		EnforceMaxSize:     true,
		MaxSize:            DefaultMaxSize,
		ResolveSymlinks:    true,
		ExitNonZeroOnError: true,
		PreviewRows:        DefaultPreviewRows,
		SampleValues:       DefaultSampleValues,
		Output:             "table",
		Color:              "auto",
	}
}

// LenientOptions returns the lenient preset: no size ceiling, paths used as
// given, and failures reported without a non-zero exit status.
func LenientOptions() Options {
	opt := DefaultOptions()

	opt.EnforceMaxSize = false
	opt.ResolveSymlinks = false
	opt.ExitNonZeroOnError = false

	return opt
}
