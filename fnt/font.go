// Package fnt reads and writes the BMFont text format.
//
// Only the subset produced for distance-field atlases is modelled: one
// info, common and page block per font, char lines and kerning lines.
// The distanceRange key on the common line is an extension read by
// distance-field renderers.
package fnt

import "slices"

// Channel masks for Char.Channels.
const (
	ChannelsNone = 0
	ChannelsRGB  = 7
	ChannelsRGBA = 15
)

// Font is the content of a .fnt file.
type Font struct {
	// Face is the font name, written quoted.
	Face   string
	Size   int
	Bold   bool
	Italic bool

	LineHeight int
	Base       int
	ScaleW     int
	ScaleH     int

	// DistanceRange is the field range in pixels.
	DistanceRange int

	// Pages holds the page image file names, indexed by page id.
	Pages []string

	Chars    []Char
	Kernings []Kerning
}

// Char is one glyph entry.
type Char struct {
	ID               rune
	X, Y             int
	Width, Height    int
	XOffset, YOffset int
	XAdvance         int
	Page             int
	Channels         int
}

// Kerning is a signed adjustment between two characters.
type Kerning struct {
	First, Second rune
	Amount        int
}

// sorted returns the chars ordered by id and the non-zero kernings
// ordered by (first, second).
func (f *Font) sorted() ([]Char, []Kerning) {
	chars := slices.Clone(f.Chars)
	slices.SortStableFunc(chars, func(a, b Char) int {
		return int(a.ID) - int(b.ID)
	})

	kernings := make([]Kerning, 0, len(f.Kernings))
	for _, k := range f.Kernings {
		if k.Amount != 0 {
			kernings = append(kernings, k)
		}
	}
	slices.SortStableFunc(kernings, func(a, b Kerning) int {
		if a.First != b.First {
			return int(a.First) - int(b.First)
		}
		return int(a.Second) - int(b.Second)
	})
	return chars, kernings
}
