package bmfont

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/gogpu/bmfont/text"
	"github.com/gogpu/bmfont/text/msdf"
)

// assembleGlyphs renders every printable rune of the charset.
//
// Runes are processed concurrently on the worker pool. The first failure
// cancels the remaining work and is returned. The result is sorted by rune.
func (g *Generator) assembleGlyphs(ctx context.Context, face text.Face, prog *progressAggregator, log *slog.Logger) ([]*FontGlyph, error) {
	charset := g.params.Charset
	results := make([]*FontGlyph, len(charset))
	var done atomic.Int64

	prog.report(StepGlyph, 0)
	err := g.pool.Run(ctx, len(charset), func(ctx context.Context, i int) error {
		glyph, err := g.assembleGlyph(ctx, face, charset[i], log)
		if err != nil {
			return err
		}
		results[i] = glyph
		prog.count(StepGlyph, int(done.Add(1)), len(charset))
		return nil
	})
	if err != nil {
		return nil, err
	}
	prog.report(StepGlyph, 1)

	glyphs := make([]*FontGlyph, 0, len(results))
	for _, glyph := range results {
		if glyph != nil {
			glyphs = append(glyphs, glyph)
		}
	}
	slices.SortFunc(glyphs, func(a, b *FontGlyph) int {
		return int(a.Rune) - int(b.Rune)
	})
	return glyphs, nil
}

// assembleGlyph renders one rune. Blank runes yield nil.
func (g *Generator) assembleGlyph(ctx context.Context, face text.Face, r rune, log *slog.Logger) (*FontGlyph, error) {
	pad := g.params.pad()

	ext, err := msdf.ExtractShape(face, r, pad)
	if err != nil {
		return nil, &GeometryError{Rune: r, Err: err}
	}

	var outline msdf.OutlineGlyph
	switch ext := ext.(type) {
	case msdf.BlankGlyph:
		if !ext.Mapped {
			log.Warn("rune not in font, skipped", "rune", string(r), "code", fmt.Sprintf("%U", r))
		}
		return nil, nil
	case msdf.OutlineGlyph:
		outline = ext
	}

	req := msdf.Request{
		Width:  outline.Width(pad),
		Height: outline.Height(pad),
		Range:  g.params.DistanceRange,
		Shape:  outline.Shape.String(),
		Type:   g.params.FieldType,
	}

	img, err := g.field(ctx, r, req)
	if err != nil {
		return nil, err
	}
	channels := ChannelsRGB

	if g.params.AlphaFieldType != msdf.FieldNone {
		req.Type = g.params.AlphaFieldType
		alpha, err := g.field(ctx, r, req)
		if err != nil {
			return nil, err
		}
		if img, err = msdf.MergeAlpha(img, alpha); err != nil {
			return nil, &FieldGenerationError{Rune: r, Type: req.Type, Err: err}
		}
		channels = ChannelsRGBA
	}

	b := outline.Bounds
	glyph := &FontGlyph{
		Rune:     r,
		Image:    img,
		Width:    req.Width,
		Height:   req.Height,
		XOffset:  roundHalfUp(b.MinX - pad),
		YOffset:  roundHalfUp(face.Metrics().Ascent + b.MinY - pad),
		XAdvance: roundHalfUp(outline.Advance),
		Channels: channels,
		Kernings: make(map[rune]int),
	}

	// Blank runes still take part in kerning.
	for _, other := range g.params.Charset {
		if k := face.Kerning(r, other); k != 0 {
			glyph.Kernings[other] = k
		}
	}

	log.Debug("glyph generated",
		"rune", string(r),
		"size", fmt.Sprintf("%dx%d", glyph.Width, glyph.Height),
		"kernings", len(glyph.Kernings))
	return glyph, nil
}

// field runs the field generator and checks the bitmap size.
func (g *Generator) field(ctx context.Context, r rune, req msdf.Request) (*image.NRGBA, error) {
	img, err := g.fields.Generate(ctx, req)
	if err != nil {
		return nil, &FieldGenerationError{Rune: r, Type: req.Type, Err: err}
	}
	if img == nil {
		return nil, &FieldGenerationError{Rune: r, Type: req.Type, Err: msdf.ErrEmptyOutput}
	}
	if img.Rect.Dx() != req.Width || img.Rect.Dy() != req.Height {
		return nil, &FieldGenerationError{
			Rune: r,
			Type: req.Type,
			Err:  fmt.Errorf("got %dx%d bitmap, want %dx%d", img.Rect.Dx(), img.Rect.Dy(), req.Width, req.Height),
		}
	}
	return img, nil
}
