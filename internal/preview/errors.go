package preview

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a preview failure.
type Kind int

const (
	// KindUsage is a wrong number of command-line arguments.
	KindUsage Kind = iota + 1
	// KindNotFound is a path that does not exist.
	KindNotFound
	// KindNotRegularFile is a directory, device, socket or unresolved symlink.
	KindNotRegularFile
	// KindTooLarge is a file above the configured size ceiling.
	KindTooLarge
	// KindUnsupportedType is a file whose extension is neither CSV nor JSON.
	KindUnsupportedType
	// KindParseFailure is malformed content, an encoding problem or any
	// other failure while reading and flattening the file.
	KindParseFailure
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "UsageError"
	case KindNotFound:
		return "NotFound"
	case KindNotRegularFile:
		return "NotRegularFile"
	case KindTooLarge:
		return "TooLarge"
	case KindUnsupportedType:
		return "UnsupportedType"
	case KindParseFailure:
		return "ParseFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is comparisons.
//
//nolint:gochecknoglobals // Sentinel errors
var (
	ErrUsage           = &Error{Kind: KindUsage}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrNotRegularFile  = &Error{Kind: KindNotRegularFile}
	ErrTooLarge        = &Error{Kind: KindTooLarge}
	ErrUnsupportedType = &Error{Kind: KindUnsupportedType}
	ErrParseFailure    = &Error{Kind: KindParseFailure}
)

// Error is a classified preview failure.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Path is the path the failure refers to, if any.
	Path string
	// Err is the underlying cause.
	Err error
	// Trace is a multi-line diagnostic trace, set for parse failures.
	Trace string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}

	return e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind && t.Err == nil && t.Path == ""
}

// KindOf returns the kind of err, or 0 if err is not a preview error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// TraceOf returns the diagnostic trace carried by err, if any.
func TraceOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Trace
	}

	return ""
}

// newError builds a classified error with a formatted cause.
func newError(kind Kind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Err: fmt.Errorf(format, args...)}
}

// parseFailure wraps err as a parse failure and records its cause chain.
func parseFailure(path string, err error) *Error {
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}

	return &Error{
		Kind:  KindParseFailure,
		Path:  path,
		Err:   fmt.Errorf("failed to process file: %w", err),
		Trace: chain(err),
	}
}

// chain renders the wrapped causes of err, outermost first.
func chain(err error) string {
	var sb strings.Builder

	sb.WriteString("Trace (most recent cause last):\n")

	for depth := 0; err != nil; depth++ {
		fmt.Fprintf(&sb, "  %d: %T: %v\n", depth, err, err)

		switch wrapped := err.(type) { //nolint:errorlint // Walking the chain by hand
		case interface{ Unwrap() []error }:
			for _, inner := range wrapped.Unwrap() {
				fmt.Fprintf(&sb, "     joined %T: %v\n", inner, inner)
			}

			err = nil
		default:
			err = errors.Unwrap(err)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
