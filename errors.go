package bmfont

import (
	"errors"
	"fmt"

	"github.com/gogpu/bmfont/text/msdf"
)

// Sentinel errors for bmfont package.
var (
	// ErrEmptyCharset is returned when the charset has no runes.
	ErrEmptyCharset = errors.New("bmfont: empty charset")

	// ErrNoGlyphs is returned when no rune of the charset has a visible glyph.
	ErrNoGlyphs = errors.New("bmfont: charset has no printable glyphs")

	// ErrUnknownCharset is returned by LoadCharset for a name that is neither
	// a built-in charset nor a readable file.
	ErrUnknownCharset = errors.New("bmfont: unknown charset")
)

// ConfigError reports invalid parameters or inputs. It is returned before
// any glyph work starts.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "bmfont: invalid " + e.Field + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// GeometryError reports a glyph whose outline could not be read.
type GeometryError struct {
	Rune rune
	Err  error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("bmfont: outline of %q (%U): %v", e.Rune, e.Rune, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// FieldGenerationError reports a failed or malformed distance field.
type FieldGenerationError struct {
	Rune rune
	Type msdf.FieldType
	Err  error
}

func (e *FieldGenerationError) Error() string {
	return fmt.Sprintf("bmfont: %s field of %q (%U): %v", e.Type, e.Rune, e.Rune, e.Err)
}

func (e *FieldGenerationError) Unwrap() error { return e.Err }

// PackingError reports a glyph that fits no atlas page.
type PackingError struct {
	Rune rune
	Err  error
}

func (e *PackingError) Error() string {
	return fmt.Sprintf("bmfont: packing %q (%U): %v", e.Rune, e.Rune, e.Err)
}

func (e *PackingError) Unwrap() error { return e.Err }

// IOError reports a failed file operation on the output.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return "bmfont: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }
