package text

import (
	"math"
	"strings"
)

// Face is a font at a fixed pixel size: the narrow capability set the
// atlas generator needs from a font rendering library.
// Face is safe for concurrent use.
type Face interface {
	// Name returns the face name written to BMFont files.
	Name() string

	// Bold reports whether the face is a bold style.
	Bold() bool

	// Italic reports whether the face is an italic or oblique style.
	Italic() bool

	// Size returns the size of this face in pixels per em.
	Size() float64

	// Metrics returns the font metrics at this face's size.
	Metrics() Metrics

	// HasGlyph reports whether the font maps r to a real glyph.
	HasGlyph(r rune) bool

	// Outline returns the outline of r. Runes the font does not map and
	// glyphs without contours return an empty outline, not an error.
	Outline(r rune) (*GlyphOutline, error)

	// Advance returns the horizontal advance of r in pixels.
	Advance(r rune) float64

	// Kerning returns the signed pixel adjustment between left and right,
	// rounded to the nearest integer. Zero means no adjustment.
	Kerning(left, right rune) int
}

// sourceFace is the internal implementation of Face.
type sourceFace struct {
	source  *FontSource
	size    float64
	config  faceConfig
	metrics Metrics
}

// Name implements Face.Name.
func (f *sourceFace) Name() string {
	return f.source.Name()
}

// Bold implements Face.Bold.
func (f *sourceFace) Bold() bool {
	return hasStyleWord(f.source.parsed.Subfamily(), "bold", "black", "heavy")
}

// Italic implements Face.Italic.
func (f *sourceFace) Italic() bool {
	return hasStyleWord(f.source.parsed.Subfamily(), "italic", "oblique")
}

// Size implements Face.Size.
func (f *sourceFace) Size() float64 {
	return f.size
}

// Metrics implements Face.Metrics.
func (f *sourceFace) Metrics() Metrics {
	return f.metrics
}

// HasGlyph implements Face.HasGlyph.
func (f *sourceFace) HasGlyph(r rune) bool {
	return f.source.parsed.GlyphIndex(r) != 0
}

// Outline implements Face.Outline.
func (f *sourceFace) Outline(r rune) (*GlyphOutline, error) {
	parsed := f.source.parsed
	gid := parsed.GlyphIndex(r)
	if gid == 0 {
		return &GlyphOutline{}, nil
	}

	segments, err := parsed.GlyphSegments(gid, f.size)
	if err != nil {
		return nil, err
	}

	return &GlyphOutline{
		Segments: segments,
		Bounds:   OutlineBounds(segments),
		Advance:  parsed.GlyphAdvance(gid, f.size),
		GID:      gid,
	}, nil
}

// Advance implements Face.Advance.
func (f *sourceFace) Advance(r rune) float64 {
	parsed := f.source.parsed
	return parsed.GlyphAdvance(parsed.GlyphIndex(r), f.size)
}

// Kerning implements Face.Kerning.
func (f *sourceFace) Kerning(left, right rune) int {
	switch f.config.kerning {
	case KerningNone:
		return 0
	case KerningShaped:
		if k, err := f.source.shaped(); err == nil {
			return int(math.Round(k.kern(left, right, f.size)))
		}
	}

	parsed := f.source.parsed
	l, r := parsed.GlyphIndex(left), parsed.GlyphIndex(right)
	if l == 0 || r == 0 {
		return 0
	}
	return int(math.Round(parsed.Kern(l, r, f.size)))
}

// hasStyleWord reports whether the subfamily name contains one of words.
func hasStyleWord(subfamily string, words ...string) bool {
	for _, field := range strings.Fields(strings.ToLower(subfamily)) {
		for _, w := range words {
			if field == w {
				return true
			}
		}
	}
	return false
}
