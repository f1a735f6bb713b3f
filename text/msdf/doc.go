// Package msdf turns glyph outlines into distance-field bitmaps by driving
// the external msdfgen tool.
//
// MSDF (Multi-channel Signed Distance Field) is a technique that encodes
// glyph shape information into RGB texture channels. Unlike traditional SDF
// which uses a single distance value, MSDF preserves sharp corners by encoding
// directional distance information in separate channels.
//
// # Pipeline
//
//  1. ExtractShape converts the outline of one rune into a Shape, padded by
//     half the distance range and flipped into msdfgen's Y-up space.
//  2. A FieldGenerator renders the Shape. ProcessGenerator runs msdfgen with
//     -format text -stdout and decodes the pixels with DecodeText.
//  3. MergeAlpha combines a primary field with a secondary alpha field.
//
// # Usage
//
//	ext, err := msdf.ExtractShape(face, 'A', 2.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	glyph, ok := ext.(msdf.OutlineGlyph)
//	if !ok {
//	    return // blank glyph
//	}
//
//	gen := &msdf.ProcessGenerator{Path: "msdfgen"}
//	img, err := gen.Generate(ctx, msdf.Request{
//	    Width:  glyph.Width(2.5),
//	    Height: glyph.Height(2.5),
//	    Range:  5,
//	    Shape:  glyph.Shape.String(),
//	    Type:   msdf.FieldMSDF,
//	})
//
// # References
//
// - msdfgen: https://github.com/Chlumsky/msdfgen
// - MSDF paper: "Shape Decomposition for Multi-channel Distance Fields"
package msdf
