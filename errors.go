package trustdocs

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by LayoutError and IOError.
var (
	ErrInvalidGeometry = errors.New("invalid page geometry")
	ErrZeroWidthColumn = errors.New("column width must be positive")
	ErrRaggedTable     = errors.New("table rows must match column count")
	ErrEmptyTable      = errors.New("table has no rows or columns")
	ErrTableTooWide    = errors.New("table wider than frame")
	ErrRuleOutOfRange  = errors.New("table style rule out of range")
	ErrUnknownStyle    = errors.New("unknown style")
	ErrInvalidStyle    = errors.New("invalid style")
	ErrNegativeSpacer  = errors.New("spacer height must not be negative")
	ErrBlockTooTall    = errors.New("content taller than frame")
	ErrBadMarkup       = errors.New("malformed inline markup")
	ErrInvalidUTF8     = errors.New("invalid utf-8 text")
	ErrControlChar     = errors.New("control character in text")
	ErrNilBlock        = errors.New("nil block")

	ErrOutputDir   = errors.New("output directory not writable")
	ErrOutputWrite = errors.New("output file not writable")
)

// LayoutError reports content that cannot be placed in the configured page
// geometry. Block is the index of the offending block, or -1 when the error
// concerns the document as a whole.
type LayoutError struct {
	Block  int
	Reason string
	Err    error
}

func (e *LayoutError) Error() string {
	msg := "layout"
	if e.Block >= 0 {
		msg = fmt.Sprintf("layout: block %d", e.Block)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LayoutError) Unwrap() error { return e.Err }

// NewLayoutError returns a LayoutError for block wrapping err.
func NewLayoutError(block int, err error, format string, args ...any) *LayoutError {
	return &LayoutError{Block: block, Reason: fmt.Sprintf(format, args...), Err: err}
}

// IOError reports an output directory or file that cannot be created or
// written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsLayoutError reports whether err is, or wraps, a *LayoutError.
func IsLayoutError(err error) bool {
	var le *LayoutError
	return errors.As(err, &le)
}

// IsIOError reports whether err is, or wraps, an *IOError.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}
