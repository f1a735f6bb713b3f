package msdf

import (
	"strconv"
	"strings"
)

// Point is one vertex of a Contour together with the curve leading to it.
// The variants are LinearPoint, QuadraticPoint and CubicPoint.
type Point interface {
	appendTo(b []byte) []byte
}

// LinearPoint is an on-curve point reached by a straight edge.
type LinearPoint struct {
	X, Y float64
}

// QuadraticPoint is a quadratic Bézier edge: control (X1, Y1), end (X2, Y2).
type QuadraticPoint struct {
	X1, Y1 float64
	X2, Y2 float64
}

// CubicPoint is a cubic Bézier edge: controls (X1, Y1) and (X2, Y2), end (X3, Y3).
type CubicPoint struct {
	X1, Y1 float64
	X2, Y2 float64
	X3, Y3 float64
}

func (p LinearPoint) appendTo(b []byte) []byte {
	return appendPair(b, p.X, p.Y)
}

func (p QuadraticPoint) appendTo(b []byte) []byte {
	b = append(b, '(')
	b = appendPair(b, p.X1, p.Y1)
	b = append(b, "); "...)
	return appendPair(b, p.X2, p.Y2)
}

func (p CubicPoint) appendTo(b []byte) []byte {
	b = append(b, '(')
	b = appendPair(b, p.X1, p.Y1)
	b = append(b, "; "...)
	b = appendPair(b, p.X2, p.Y2)
	b = append(b, "); "...)
	return appendPair(b, p.X3, p.Y3)
}

// Contour is a closed sequence of points.
type Contour []Point

// Shape is a glyph in msdfgen's coordinate space (+Y up).
type Shape []Contour

// String returns the shape in msdfgen's -defineshape syntax.
// Contours are written as "{ p; p; ... }" and separated by a space.
// The encoding is deterministic.
func (s Shape) String() string {
	var b strings.Builder
	buf := make([]byte, 0, 64)
	for i, c := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		buf = append(buf[:0], "{ "...)
		for j, p := range c {
			if j > 0 {
				buf = append(buf, "; "...)
			}
			buf = p.appendTo(buf)
		}
		buf = append(buf, " }"...)
		b.Write(buf)
	}
	return b.String()
}

// PointCount returns the total number of points over all contours.
func (s Shape) PointCount() int {
	n := 0
	for _, c := range s {
		n += len(c)
	}
	return n
}

func appendPair(b []byte, x, y float64) []byte {
	b = appendCoord(b, x)
	b = append(b, ", "...)
	return appendCoord(b, y)
}

// appendCoord writes v with the shortest float32 representation.
func appendCoord(b []byte, v float64) []byte {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.AppendFloat(b, v, 'f', -1, 32)
}
