// Package bmfont generates multi-channel signed distance field (MSDF)
// bitmap fonts from TrueType and OpenType files.
//
// # Overview
//
// For every rune of a charset the outline is extracted, padded and handed to
// the external msdfgen tool, which renders the distance field. The glyph
// bitmaps are then packed into fixed-size atlas pages and described by a
// BMFont text file (.fnt) with per-glyph metrics and kerning pairs.
//
// # Quick Start
//
//	params := bmfont.DefaultParameters()
//	params.OutputDir = "out"
//	params.Charset = bmfont.MustCharset("ascii")
//
//	gen, err := bmfont.NewGenerator(params)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	res, err := gen.Generate(ctx, "fonts/Roboto-Regular.ttf")
//	// out/Roboto-Regular.fnt, out/Roboto-Regular.png, out/Roboto-Regular2.png, ...
//
// # Output
//
// Page images are named "<name>.png", "<name>2.png", "<name>3.png" and so
// on, where name is the font file name without extension. Files left by an
// earlier run under the same name, the .fnt file included, are removed
// before any glyph is rendered.
//
// Glyphs carry an RGB distance field (chnl=7). When an alpha field type is
// set, a second single-channel field is stored in the alpha channel
// (chnl=15).
//
// # Architecture
//
// The library is organized into:
//   - text: font loading, outlines, metrics, kerning
//   - text/msdf: shape extraction and the msdfgen field generator
//   - atlas: shelf packing and page images
//   - fnt: BMFont text encoding and parsing
//   - internal/parallel, internal/pngopt: worker pool, PNG recompression
package bmfont
