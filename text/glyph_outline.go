package text

import "math"

// OutlinePoint represents a point in a glyph outline, in pixels.
type OutlinePoint struct {
	X, Y float64
}

// OutlineSegment represents a segment of a glyph outline.
type OutlineSegment struct {
	// Op is the segment operation type.
	Op OutlineOp

	// Points contains the control and end points for this segment.
	// - MoveTo: Points[0] is the target point
	// - LineTo: Points[0] is the target point
	// - QuadTo: Points[0] is control, Points[1] is target
	// - CubicTo: Points[0], Points[1] are controls, Points[2] is target
	Points [3]OutlinePoint
}

// End returns the on-curve point the segment ends at.
func (s OutlineSegment) End() OutlinePoint {
	switch s.Op {
	case OutlineOpQuadTo:
		return s.Points[1]
	case OutlineOpCubicTo:
		return s.Points[2]
	default:
		return s.Points[0]
	}
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new contour, closing the previous one.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// GlyphOutline represents the vector outline of a glyph at a given size.
// Coordinates are in pixels relative to the pen origin, +Y down.
type GlyphOutline struct {
	// Segments is the list of path segments that make up the outline.
	// Every contour starts with a MoveTo and is implicitly closed.
	Segments []OutlineSegment

	// Bounds is the visual bounding box: the tight bounds of the curves,
	// not of their control points.
	Bounds Rect

	// Advance is the horizontal advance width of the glyph.
	Advance float64

	// GID is the glyph ID this outline represents.
	GID GlyphID
}

// IsEmpty returns true if the outline has nothing to draw.
func (o *GlyphOutline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0 || o.Bounds.Empty()
}

// SegmentCount returns the number of segments in the outline.
func (o *GlyphOutline) SegmentCount() int {
	return len(o.Segments)
}

// Translate returns a new outline with all coordinates translated by (dx, dy).
func (o *GlyphOutline) Translate(dx, dy float64) *GlyphOutline {
	if o == nil {
		return nil
	}

	translated := &GlyphOutline{
		Segments: make([]OutlineSegment, len(o.Segments)),
		Bounds: Rect{
			MinX: o.Bounds.MinX + dx,
			MinY: o.Bounds.MinY + dy,
			MaxX: o.Bounds.MaxX + dx,
			MaxY: o.Bounds.MaxY + dy,
		},
		Advance: o.Advance,
		GID:     o.GID,
	}

	for i, seg := range o.Segments {
		translated.Segments[i] = OutlineSegment{
			Op: seg.Op,
			Points: [3]OutlinePoint{
				{X: seg.Points[0].X + dx, Y: seg.Points[0].Y + dy},
				{X: seg.Points[1].X + dx, Y: seg.Points[1].Y + dy},
				{X: seg.Points[2].X + dx, Y: seg.Points[2].Y + dy},
			},
		}
	}

	return translated
}

// OutlineBounds computes the tight bounding box of a segment list.
// Curve extrema are included, off-curve control points are not.
// An empty list yields the zero Rect.
func OutlineBounds(segments []OutlineSegment) Rect {
	if len(segments) == 0 {
		return Rect{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(p OutlinePoint) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	var cur OutlinePoint
	for _, seg := range segments {
		switch seg.Op {
		case OutlineOpQuadTo:
			c, end := seg.Points[0], seg.Points[1]
			for _, t := range quadExtrema(cur, c, end) {
				add(quadAt(cur, c, end, t))
			}
		case OutlineOpCubicTo:
			c1, c2, end := seg.Points[0], seg.Points[1], seg.Points[2]
			for _, t := range cubicExtrema(cur, c1, c2, end) {
				add(cubicAt(cur, c1, c2, end, t))
			}
		}
		cur = seg.End()
		add(cur)
	}

	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// quadExtrema returns the parameters in (0, 1) where the quadratic curve
// has a horizontal or vertical tangent.
func quadExtrema(p0, c, p1 OutlinePoint) []float64 {
	var ts []float64
	for _, axis := range [2][3]float64{{p0.X, c.X, p1.X}, {p0.Y, c.Y, p1.Y}} {
		den := axis[0] - 2*axis[1] + axis[2]
		if den == 0 {
			continue
		}
		if t := (axis[0] - axis[1]) / den; t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

// cubicExtrema returns the parameters in (0, 1) where the cubic curve
// has a horizontal or vertical tangent.
func cubicExtrema(p0, c1, c2, p3 OutlinePoint) []float64 {
	var ts []float64
	for _, axis := range [2][4]float64{{p0.X, c1.X, c2.X, p3.X}, {p0.Y, c1.Y, c2.Y, p3.Y}} {
		// B'(t)/3 = a t^2 + b t + c
		a := axis[3] - 3*axis[2] + 3*axis[1] - axis[0]
		b := 2 * (axis[2] - 2*axis[1] + axis[0])
		c := axis[1] - axis[0]
		for _, t := range solveQuadratic(a, b, c) {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

// solveQuadratic returns the real roots of a t^2 + b t + c = 0.
func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func quadAt(p0, c, p1 OutlinePoint, t float64) OutlinePoint {
	mt := 1 - t
	return OutlinePoint{
		X: mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
		Y: mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
	}
}

func cubicAt(p0, c1, c2, p3 OutlinePoint, t float64) OutlinePoint {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return OutlinePoint{
		X: a*p0.X + b*c1.X + c*c2.X + d*p3.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p3.Y,
	}
}
