package msdf

import (
	"fmt"
	"math"

	"github.com/gogpu/bmfont/text"
)

// Extraction is the result of ExtractShape: either BlankGlyph or OutlineGlyph.
type Extraction interface {
	extraction()
}

// BlankGlyph is a rune with nothing to draw: a space, a control character,
// or a rune the font does not map.
type BlankGlyph struct {
	Rune   rune
	Mapped bool // false when the font has no glyph for Rune
}

// OutlineGlyph is a drawable rune converted to msdfgen space.
type OutlineGlyph struct {
	Rune rune

	// Bounds is the tight outline bounds in device space (+Y down),
	// relative to the pen origin on the baseline.
	Bounds text.Rect

	// Advance is the horizontal advance in pixels.
	Advance float64

	// Shape is the padded, Y-flipped outline.
	Shape Shape
}

func (BlankGlyph) extraction()   {}
func (OutlineGlyph) extraction() {}

// Width returns the bitmap width for the glyph with pad pixels on each side.
func (g OutlineGlyph) Width(pad float64) int {
	return int(math.Ceil(g.Bounds.Width() + 2*pad))
}

// Height returns the bitmap height for the glyph with pad pixels on each side.
func (g OutlineGlyph) Height(pad float64) int {
	return int(math.Ceil(g.Bounds.Height() + 2*pad))
}

// ExtractShape converts the outline of r into a Shape.
//
// The outline is translated so that its bounds start at (pad, pad) and is
// flipped vertically: the glyph occupies [pad, w+pad] x [pad, h+pad] in
// the Y-up space msdfgen works in. Runes whose bounds have no area yield
// a BlankGlyph.
func ExtractShape(face text.Face, r rune, pad float64) (Extraction, error) {
	outline, err := face.Outline(r)
	if err != nil {
		return nil, fmt.Errorf("msdf: outline of %U: %w", r, err)
	}
	if outline.IsEmpty() {
		return BlankGlyph{Rune: r, Mapped: outline != nil && outline.GID != 0}, nil
	}

	b := outline.Bounds
	tx := -b.MinX + pad
	ty := -b.MaxY - pad

	return OutlineGlyph{
		Rune:    r,
		Bounds:  b,
		Advance: outline.Advance,
		Shape:   buildShape(outline.Segments, tx, ty),
	}, nil
}

// buildShape splits segments into contours at each move-to. Every point is
// translated by (tx, ty) and its Y negated.
func buildShape(segments []text.OutlineSegment, tx, ty float64) Shape {
	var shape Shape
	var cur Contour

	pt := func(p text.OutlinePoint) (float64, float64) {
		return p.X + tx, -(p.Y + ty)
	}

	for _, seg := range segments {
		switch seg.Op {
		case text.OutlineOpMoveTo:
			if len(cur) > 0 {
				shape = append(shape, cur)
			}
			x, y := pt(seg.Points[0])
			cur = Contour{LinearPoint{X: x, Y: y}}
		case text.OutlineOpLineTo:
			x, y := pt(seg.Points[0])
			cur = append(cur, LinearPoint{X: x, Y: y})
		case text.OutlineOpQuadTo:
			x1, y1 := pt(seg.Points[0])
			x2, y2 := pt(seg.Points[1])
			cur = append(cur, QuadraticPoint{X1: x1, Y1: y1, X2: x2, Y2: y2})
		case text.OutlineOpCubicTo:
			x1, y1 := pt(seg.Points[0])
			x2, y2 := pt(seg.Points[1])
			x3, y3 := pt(seg.Points[2])
			cur = append(cur, CubicPoint{X1: x1, Y1: y1, X2: x2, Y2: y2, X3: x3, Y3: y3})
		}
	}
	if len(cur) > 0 {
		shape = append(shape, cur)
	}
	return shape
}
