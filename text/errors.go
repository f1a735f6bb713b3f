package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownParser is returned when a FontSource is created with a parser
	// name that was never registered.
	ErrUnknownParser = errors.New("text: unknown font parser")
)

// FontError represents a font-related error.
type FontError struct {
	Reason string
	Err    error
}

func (e *FontError) Error() string {
	if e.Err != nil {
		return "text: " + e.Reason + ": " + e.Err.Error()
	}
	return "text: " + e.Reason
}

func (e *FontError) Unwrap() error {
	return e.Err
}
