package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &FontError{Reason: "failed to parse font", Err: err}
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
// sfnt.Font is safe for concurrent use, sfnt.Buffer is not, so buffers
// come from a pool.
type ximageParsedFont struct {
	font    *opentype.Font
	buffers sync.Pool
}

func (f *ximageParsedFont) buffer() *sfnt.Buffer {
	if b, ok := f.buffers.Get().(*sfnt.Buffer); ok {
		return b
	}
	return &sfnt.Buffer{}
}

func (f *ximageParsedFont) name(id sfnt.NameID) string {
	buf := f.buffer()
	defer f.buffers.Put(buf)
	s, err := f.font.Name(buf, id)
	if err != nil {
		return ""
	}
	return s
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	return f.name(sfnt.NameIDFamily)
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	return f.name(sfnt.NameIDFull)
}

// Subfamily implements ParsedFont.Subfamily.
func (f *ximageParsedFont) Subfamily() string {
	return f.name(sfnt.NameIDSubfamily)
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) GlyphID {
	buf := f.buffer()
	defer f.buffers.Put(buf)
	idx, err := f.font.GlyphIndex(buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	buf := f.buffer()
	defer f.buffers.Put(buf)
	advance, err := f.font.GlyphAdvance(buf, sfnt.GlyphIndex(gid), floatToFixed(ppem), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(advance)
}

// GlyphSegments implements ParsedFont.GlyphSegments.
func (f *ximageParsedFont) GlyphSegments(gid GlyphID, ppem float64) ([]OutlineSegment, error) {
	buf := f.buffer()
	defer f.buffers.Put(buf)

	segments, err := f.font.LoadGlyph(buf, sfnt.GlyphIndex(gid), floatToFixed(ppem), nil)
	if err != nil {
		return nil, &FontError{Reason: fmt.Sprintf("failed to load glyph %d", gid), Err: err}
	}

	// The buffer owns the returned segments, so they are converted before
	// it goes back to the pool.
	out := make([]OutlineSegment, 0, len(segments))
	for _, seg := range segments {
		var s OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
			s.Points[0] = fixedPointToOutline(seg.Args[0])
		case sfnt.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
			s.Points[0] = fixedPointToOutline(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
			s.Points[0] = fixedPointToOutline(seg.Args[0]) // Control
			s.Points[1] = fixedPointToOutline(seg.Args[1]) // Target
		case sfnt.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
			s.Points[0] = fixedPointToOutline(seg.Args[0]) // Control 1
			s.Points[1] = fixedPointToOutline(seg.Args[1]) // Control 2
			s.Points[2] = fixedPointToOutline(seg.Args[2]) // Target
		default:
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Kern implements ParsedFont.Kern.
func (f *ximageParsedFont) Kern(left, right GlyphID, ppem float64) float64 {
	buf := f.buffer()
	defer f.buffers.Put(buf)
	k, err := f.font.Kern(buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), floatToFixed(ppem), font.HintingNone)
	if err != nil {
		// sfnt.ErrNotFound: no 'kern' table or no entry for the pair.
		return 0
	}
	return fixedToFloat64(k)
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics(ppem float64) Metrics {
	buf := f.buffer()
	defer f.buffers.Put(buf)

	m, err := f.font.Metrics(buf, floatToFixed(ppem), font.HintingNone)
	if err != nil {
		return Metrics{}
	}

	ascent := fixedToFloat64(m.Ascent)
	descent := fixedToFloat64(m.Descent)
	return Metrics{
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   max(fixedToFloat64(m.Height)-ascent-descent, 0),
		XHeight:   fixedToFloat64(m.XHeight),
		CapHeight: fixedToFloat64(m.CapHeight),
	}
}

// floatToFixed converts a float64 size to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// fixedPointToOutline converts a fixed.Point26_6 to OutlinePoint.
func fixedPointToOutline(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{
		X: float64(p.X) / 64.0,
		Y: float64(p.Y) / 64.0,
	}
}
