package text

import "sync"

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (e.g., golang.org/x/image/font/opentype vs a pure Go implementation).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// Sizes are given as ppem (pixels per em). Implementations must be safe
// for concurrent use.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// Subfamily returns the style name ("Regular", "Bold Italic", ...).
	Subfamily() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// GlyphIndex returns the glyph index for a rune, 0 if not mapped.
	GlyphIndex(r rune) GlyphID

	// GlyphAdvance returns the unhinted advance width of a glyph.
	GlyphAdvance(gid GlyphID, ppem float64) float64

	// GlyphSegments returns the outline of a glyph in pixels, +Y down.
	// A glyph without contours yields an empty slice and no error.
	GlyphSegments(gid GlyphID, ppem float64) ([]OutlineSegment, error)

	// Kern returns the 'kern' table adjustment between two glyphs,
	// 0 when the font has no such table or pair.
	Kern(left, right GlyphID, ppem float64) float64

	// Metrics returns the font metrics at the given size.
	Metrics(ppem float64) Metrics
}

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

var (
	parserMu sync.RWMutex

	// parserRegistry holds registered font parsers.
	parserRegistry = map[string]FontParser{
		defaultParserName: &ximageParser{},
	}
)

// RegisterParser registers a custom font parser.
// This allows users to provide their own parsing implementation.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser registered under name.
func getParser(name string) (FontParser, bool) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	p, ok := parserRegistry[name]
	return p, ok
}
