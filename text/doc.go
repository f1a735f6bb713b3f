// Package text loads fonts and exposes the per-glyph data an atlas
// generator needs: outlines, visual bounds, advances, font metrics and
// pair kerning.
//
// The pipeline follows a separation of concerns:
//
//   - FontSource: Heavyweight, shared font resource (parses TTF/OTF files)
//   - Face: Lightweight font instance at a specific pixel size
//   - FontParser: Pluggable font parsing backend (default: golang.org/x/image)
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	face := source.Face(32)
//	outline, err := face.Outline('A')
//	kern := face.Kerning('A', 'V')
//
// # Kerning
//
// By default kerning is measured by shaping each pair with
// github.com/go-text/typesetting, so GPOS pair adjustments are honored.
// WithKerning(KerningTable) restricts it to the legacy 'kern' table read
// through golang.org/x/image/font/sfnt.
package text
