package bmfont

import (
	"image"
	"math"
	"slices"

	"github.com/gogpu/bmfont/fnt"
)

// Channel masks for FontGlyph.Channels.
const (
	ChannelsNone = fnt.ChannelsNone
	ChannelsRGB  = fnt.ChannelsRGB
	ChannelsRGBA = fnt.ChannelsRGBA
)

// FontGlyph is one printable rune of the generated font.
type FontGlyph struct {
	Rune rune

	// Image is the distance field bitmap. It is released once the glyph
	// has been packed.
	Image *image.NRGBA

	// Page, X and Y locate the bitmap in the atlas.
	Page int
	X, Y int

	Width, Height int

	// XOffset and YOffset place the bitmap relative to the pen position,
	// YOffset measured down from the top of the line.
	XOffset, YOffset int
	XAdvance         int

	// Channels is ChannelsRGB or ChannelsRGBA.
	Channels int

	// Kernings maps the following rune to a non-zero adjustment in pixels.
	Kernings map[rune]int
}

// fntChar converts the glyph to its .fnt entry.
func (g *FontGlyph) fntChar() fnt.Char {
	return fnt.Char{
		ID:       g.Rune,
		X:        g.X,
		Y:        g.Y,
		Width:    g.Width,
		Height:   g.Height,
		XOffset:  g.XOffset,
		YOffset:  g.YOffset,
		XAdvance: g.XAdvance,
		Page:     g.Page,
		Channels: g.Channels,
	}
}

// fntKernings returns the glyph's kerning pairs ordered by second rune.
func (g *FontGlyph) fntKernings() []fnt.Kerning {
	seconds := make([]rune, 0, len(g.Kernings))
	for r, amount := range g.Kernings {
		if amount != 0 {
			seconds = append(seconds, r)
		}
	}
	slices.Sort(seconds)

	out := make([]fnt.Kerning, len(seconds))
	for i, r := range seconds {
		out[i] = fnt.Kerning{First: g.Rune, Second: r, Amount: g.Kernings[r]}
	}
	return out
}

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
