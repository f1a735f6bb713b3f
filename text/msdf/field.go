package msdf

import (
	"context"
	"fmt"
	"image"
)

// FieldType selects the distance-field encoding msdfgen produces.
type FieldType uint8

const (
	// FieldNone requests no field. It is only meaningful as an alpha field type.
	FieldNone FieldType = iota

	// FieldSDF is a single-channel signed distance field.
	FieldSDF

	// FieldPSDF is a single-channel pseudo signed distance field.
	FieldPSDF

	// FieldMSDF is a three-channel multi-channel signed distance field.
	FieldMSDF
)

// String returns the msdfgen mode token for the field type.
func (t FieldType) String() string {
	switch t {
	case FieldNone:
		return "none"
	case FieldSDF:
		return "sdf"
	case FieldPSDF:
		return "psdf"
	case FieldMSDF:
		return "msdf"
	default:
		return fmt.Sprintf("FieldType(%d)", uint8(t))
	}
}

// Channels returns the number of channels msdfgen writes for the type.
func (t FieldType) Channels() int {
	switch t {
	case FieldSDF, FieldPSDF:
		return 1
	case FieldMSDF:
		return 3
	default:
		return 0
	}
}

// ParseFieldType parses a field type name as printed by String.
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "none":
		return FieldNone, nil
	case "sdf":
		return FieldSDF, nil
	case "psdf":
		return FieldPSDF, nil
	case "msdf":
		return FieldMSDF, nil
	}
	return FieldNone, fmt.Errorf("msdf: unknown field type %q", s)
}

// Request describes one field generation.
type Request struct {
	Width, Height int

	// Range is the distance range in pixels.
	Range int

	// Shape is the -defineshape description (see Shape.String).
	Shape string

	Type FieldType
}

// FieldGenerator renders a shape description into a distance-field bitmap.
// The result is Width x Height, top row first, with opaque alpha.
//
// Implementations must be safe for concurrent use.
type FieldGenerator interface {
	Generate(ctx context.Context, req Request) (*image.NRGBA, error)
}
