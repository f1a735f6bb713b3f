package bmfont

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/bmfont/atlas"
	"github.com/gogpu/bmfont/text"
	"github.com/gogpu/bmfont/text/msdf"
)

// Page size limits.
const (
	MinPageSize = 32
	MaxPageSize = 65536
)

// Parameters configures a generation run. A Parameters value is not
// modified by the generator.
type Parameters struct {
	// Msdfgen is the msdfgen executable.
	Msdfgen string

	// OutputDir receives the page images and the .fnt file.
	OutputDir string

	// FieldType is the primary field: sdf, psdf or msdf.
	FieldType msdf.FieldType

	// AlphaFieldType is stored in the alpha channel: none, sdf or psdf.
	AlphaFieldType msdf.FieldType

	// FontSize is the size in pixels per em.
	FontSize int

	// DistanceRange is the distance field range in pixels. Glyphs are
	// padded by half of it on every side.
	DistanceRange int

	// PageWidth and PageHeight are the atlas page size, each a power of
	// two in [MinPageSize, MaxPageSize].
	PageWidth, PageHeight int

	// Padding is the gap between glyphs on a page.
	Padding int

	// BorderPadding is the gap between glyphs and the page edges.
	BorderPadding int

	// Charset lists the runes to generate. NewGenerator sorts it and drops
	// duplicates.
	Charset []rune

	// CompressionLevel is the PNG recompression level, 0 (off) to 9.
	CompressionLevel int

	// Workers bounds concurrent glyph work. 0 means one per CPU.
	Workers int

	// Kerning selects where kerning pairs are read from.
	Kerning text.KerningMode
}

// DefaultParameters returns the default parameters with the ascii charset.
func DefaultParameters() Parameters {
	return Parameters{
		Msdfgen:          "msdfgen",
		OutputDir:        ".",
		FieldType:        msdf.FieldMSDF,
		AlphaFieldType:   msdf.FieldSDF,
		FontSize:         32,
		DistanceRange:    5,
		PageWidth:        512,
		PageHeight:       512,
		Padding:          2,
		BorderPadding:    2,
		Charset:          MustCharset("ascii"),
		CompressionLevel: 9,
		Workers:          0,
		Kerning:          text.KerningShaped,
	}
}

// Validate checks the parameter values. It does not touch the filesystem.
func (p *Parameters) Validate() error {
	switch p.FieldType {
	case msdf.FieldSDF, msdf.FieldPSDF, msdf.FieldMSDF:
	default:
		return &ConfigError{Field: "FieldType", Reason: fmt.Sprintf("%s is not sdf, psdf or msdf", p.FieldType)}
	}
	switch p.AlphaFieldType {
	case msdf.FieldNone, msdf.FieldSDF, msdf.FieldPSDF:
	default:
		return &ConfigError{Field: "AlphaFieldType", Reason: fmt.Sprintf("%s is not none, sdf or psdf", p.AlphaFieldType)}
	}

	switch {
	case p.Msdfgen == "":
		return &ConfigError{Field: "Msdfgen", Reason: "must not be empty"}
	case p.OutputDir == "":
		return &ConfigError{Field: "OutputDir", Reason: "must not be empty"}
	case p.FontSize < 8:
		return &ConfigError{Field: "FontSize", Reason: "must be at least 8"}
	case p.DistanceRange < 1:
		return &ConfigError{Field: "DistanceRange", Reason: "must be at least 1"}
	case !validPageSize(p.PageWidth):
		return &ConfigError{Field: "PageWidth", Reason: fmt.Sprintf("%d is not a power of two between %d and %d", p.PageWidth, MinPageSize, MaxPageSize)}
	case !validPageSize(p.PageHeight):
		return &ConfigError{Field: "PageHeight", Reason: fmt.Sprintf("%d is not a power of two between %d and %d", p.PageHeight, MinPageSize, MaxPageSize)}
	case p.Padding < 0:
		return &ConfigError{Field: "Padding", Reason: "must be at least 0"}
	case p.BorderPadding < 0:
		return &ConfigError{Field: "BorderPadding", Reason: "must be at least 0"}
	case len(p.Charset) == 0:
		return &ConfigError{Field: "Charset", Reason: "no runes", Err: ErrEmptyCharset}
	case p.CompressionLevel < 0 || p.CompressionLevel > 9:
		return &ConfigError{Field: "CompressionLevel", Reason: "must be between 0 and 9"}
	case p.Workers < 0:
		return &ConfigError{Field: "Workers", Reason: "must be at least 0"}
	}
	return nil
}

func validPageSize(n int) bool {
	return n >= MinPageSize && n <= MaxPageSize && n&(n-1) == 0
}

// pad returns the padding applied around each glyph outline.
func (p *Parameters) pad() float64 {
	return float64(p.DistanceRange) / 2
}

// packer returns the atlas packer for these parameters.
func (p *Parameters) packer() atlas.Packer {
	return atlas.Packer{
		MaxWidth:      p.PageWidth,
		MaxHeight:     p.PageHeight,
		Padding:       p.Padding,
		BorderPadding: p.BorderPadding,
	}
}

// OutputLocation is a resolved, existing output directory.
type OutputLocation struct {
	Dir string
}

// ResolveOutput creates the output directory if needed and returns its
// absolute location.
func (p *Parameters) ResolveOutput() (OutputLocation, error) {
	dir, err := filepath.Abs(p.OutputDir)
	if err != nil {
		return OutputLocation{}, &ConfigError{Field: "OutputDir", Reason: "cannot resolve path", Err: err}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return OutputLocation{}, &ConfigError{Field: "OutputDir", Reason: "cannot create directory", Err: err}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return OutputLocation{}, &ConfigError{Field: "OutputDir", Reason: "cannot stat directory", Err: err}
	}
	if !info.IsDir() {
		return OutputLocation{}, &ConfigError{Field: "OutputDir", Reason: dir + " is not a directory"}
	}
	return OutputLocation{Dir: dir}, nil
}

// FontFile returns the path of the .fnt file for name.
func (o OutputLocation) FontFile(name string) string {
	return filepath.Join(o.Dir, name+".fnt")
}

// PageFile returns the path of page image i for name.
func (o OutputLocation) PageFile(name string, i int) string {
	return filepath.Join(o.Dir, atlas.PageFileName(name, i))
}
