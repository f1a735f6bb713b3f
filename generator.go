package bmfont

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/bmfont/atlas"
	"github.com/gogpu/bmfont/fnt"
	"github.com/gogpu/bmfont/internal/parallel"
	"github.com/gogpu/bmfont/internal/pngopt"
	"github.com/gogpu/bmfont/text"
	"github.com/gogpu/bmfont/text/msdf"
)

// Generator turns fonts into MSDF atlas pages and a BMFont file.
//
// A Generator may be reused for several fonts. Its methods must not be
// called concurrently.
type Generator struct {
	params   Parameters
	out      OutputLocation
	fields   msdf.FieldGenerator
	progress ProgressFunc
	logger   *slog.Logger
	pool     *parallel.WorkerPool
}

// Result describes the output of one font.
type Result struct {
	// Name is the output base name, the font file name without extension.
	Name string

	// Face is the font name written to the .fnt file.
	Face string

	// FontFile is the path of the .fnt file.
	FontFile string

	// Pages are the paths of the page images in page order.
	Pages []string

	Glyphs   int
	Kernings int

	// Err is set by GenerateAll when this font failed.
	Err error
}

// NewGenerator validates params, creates the output directory and starts
// the worker pool. The charset is sorted and de-duplicated. Call Close
// when done.
func NewGenerator(params Parameters, opts ...Option) (*Generator, error) {
	params.Charset = NormalizeCharset(params.Charset)
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var o generatorOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	if o.fields == nil {
		path, err := exec.LookPath(params.Msdfgen)
		if err != nil {
			return nil, &ConfigError{Field: "Msdfgen", Reason: "executable not found", Err: err}
		}
		o.fields = &msdf.ProcessGenerator{Path: path, Logger: o.logger}
	}

	out, err := params.ResolveOutput()
	if err != nil {
		return nil, err
	}

	return &Generator{
		params:   params,
		out:      out,
		fields:   o.fields,
		progress: o.progress,
		logger:   o.logger,
		pool:     parallel.NewWorkerPool(params.Workers),
	}, nil
}

// Close stops the worker pool.
func (g *Generator) Close() {
	g.pool.Close()
}

// Output returns the resolved output location.
func (g *Generator) Output() OutputLocation {
	return g.out
}

// Generate loads the font at fontPath and generates its atlas. The output
// is named after the font file without its extension.
func (g *Generator) Generate(ctx context.Context, fontPath string) (*Result, error) {
	info, err := os.Stat(fontPath)
	if err != nil {
		return nil, &ConfigError{Field: "Font", Reason: "cannot read " + fontPath, Err: err}
	}
	if info.IsDir() {
		return nil, &ConfigError{Field: "Font", Reason: fontPath + " is a directory"}
	}

	// #nosec G304 -- font path is provided by the user
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, &ConfigError{Field: "Font", Reason: "cannot read " + fontPath, Err: err}
	}
	base := filepath.Base(fontPath)
	return g.GenerateFont(ctx, data, strings.TrimSuffix(base, filepath.Ext(base)))
}

// GenerateFont parses TTF or OTF data and generates its atlas under name.
func (g *Generator) GenerateFont(ctx context.Context, data []byte, name string) (*Result, error) {
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, &ConfigError{Field: "Font", Reason: "cannot load " + name, Err: err}
	}
	face := src.Face(float64(g.params.FontSize), text.WithKerning(g.params.Kerning))
	return g.GenerateFace(ctx, face, name)
}

// GenerateFace generates the atlas of face under name.
func (g *Generator) GenerateFace(ctx context.Context, face text.Face, name string) (*Result, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, &ConfigError{Field: "Name", Reason: fmt.Sprintf("%q is not a file name", name)}
	}

	log := g.logger.With("font", name)
	prog := newProgress(g.progress)
	start := time.Now()
	log.Info("generating font", "face", face.Name(), "size", g.params.FontSize, "runes", len(g.params.Charset))

	if err := g.removeStale(name, log); err != nil {
		return nil, err
	}

	glyphs, err := g.assembleGlyphs(ctx, face, prog, log)
	if err != nil {
		return nil, err
	}
	if len(glyphs) == 0 {
		return nil, ErrNoGlyphs
	}

	pages, err := g.packGlyphs(glyphs, name, prog, log)
	if err != nil {
		return nil, err
	}

	font := g.fontFile(face, glyphs, pages)
	fontPath := g.out.FontFile(name)
	prog.report(StepFontFile, 0)
	err = fnt.WriteFile(fontPath, font, func(p float64) {
		prog.report(StepFontFile, p)
	})
	if err != nil {
		return nil, &IOError{Op: "write", Path: fontPath, Err: err}
	}
	prog.report(StepFontFile, 1)
	log.Info("font file written", "path", fontPath, "chars", len(font.Chars), "kernings", len(font.Kernings))

	res := &Result{
		Name:     name,
		Face:     face.Name(),
		FontFile: fontPath,
		Glyphs:   len(font.Chars),
		Kernings: len(font.Kernings),
	}
	for i := range pages {
		res.Pages = append(res.Pages, g.out.PageFile(name, i))
	}

	g.compressPages(res.Pages, prog, log)

	log.Info("font done", "elapsed", time.Since(start))
	return res, nil
}

// GenerateAll generates every font in fontPaths. A failing font does not
// stop the others; its Result carries the error and the returned error
// joins all failures.
func (g *Generator) GenerateAll(ctx context.Context, fontPaths []string) ([]*Result, error) {
	results := make([]*Result, len(fontPaths))
	var errs []error
	for i, path := range fontPaths {
		res, err := g.Generate(ctx, path)
		if err != nil {
			g.logger.Error("font failed", "path", path, "err", err)
			base := filepath.Base(path)
			res = &Result{Name: strings.TrimSuffix(base, filepath.Ext(base)), Err: err}
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		results[i] = res
	}
	return results, errors.Join(errs...)
}

// removeStale deletes the .fnt file and page images of an earlier run
// under name.
func (g *Generator) removeStale(name string, log *slog.Logger) error {
	removed, err := atlas.RemoveStale(g.out.Dir, name)
	if err != nil {
		return &IOError{Op: "remove stale", Path: g.out.Dir, Err: err}
	}
	fontPath := g.out.FontFile(name)
	switch err := os.Remove(fontPath); {
	case err == nil:
		removed = append(removed, fontPath)
	case !errors.Is(err, fs.ErrNotExist):
		return &IOError{Op: "remove stale", Path: fontPath, Err: err}
	}
	if len(removed) > 0 {
		log.Debug("removed stale output", "files", removed)
	}
	return nil
}

// packGlyphs packs the glyph bitmaps, writes the pages and assigns every
// glyph its page position. Glyph images are released afterwards.
func (g *Generator) packGlyphs(glyphs []*FontGlyph, name string, prog *progressAggregator, log *slog.Logger) ([]string, error) {
	prog.report(StepPack, 0)

	items := make([]atlas.Item, len(glyphs))
	for i, glyph := range glyphs {
		items[i] = atlas.Item{Name: strconv.Itoa(int(glyph.Rune)), Image: glyph.Image}
	}

	packer := g.params.packer()
	layout, err := packer.Pack(items)
	if err != nil {
		var tooLarge *atlas.TooLargeError
		if errors.As(err, &tooLarge) {
			r, _ := strconv.Atoi(tooLarge.Name)
			return nil, &PackingError{Rune: rune(r), Err: err}
		}
		return nil, err
	}
	prog.report(StepPack, 0.25)

	pages := atlas.Compose(packer, layout, items, g.params.AlphaFieldType != msdf.FieldNone)
	prog.report(StepPack, 0.5)

	files, err := atlas.WritePages(g.out.Dir, name, pages)
	if err != nil {
		return nil, &IOError{Op: "write page", Path: g.out.Dir, Err: err}
	}

	for _, glyph := range glyphs {
		pl := layout.Placements[strconv.Itoa(int(glyph.Rune))]
		glyph.Page, glyph.X, glyph.Y = pl.Page, pl.X, pl.Y
		glyph.Image = nil
	}
	prog.report(StepPack, 1)
	log.Info("atlas packed", "pages", len(files), "glyphs", len(glyphs))
	return files, nil
}

// fontFile builds the .fnt model of the packed glyphs.
func (g *Generator) fontFile(face text.Face, glyphs []*FontGlyph, pages []string) *fnt.Font {
	m := face.Metrics()
	f := &fnt.Font{
		Face:          face.Name(),
		Size:          g.params.FontSize,
		Bold:          face.Bold(),
		Italic:        face.Italic(),
		LineHeight:    roundHalfUp(m.LineHeight()),
		Base:          roundHalfUp(m.Ascent),
		ScaleW:        g.params.PageWidth,
		ScaleH:        g.params.PageHeight,
		DistanceRange: g.params.DistanceRange,
		Pages:         pages,
		Chars:         make([]fnt.Char, 0, len(glyphs)),
	}
	for _, glyph := range glyphs {
		f.Chars = append(f.Chars, glyph.fntChar())
		f.Kernings = append(f.Kernings, glyph.fntKernings()...)
	}
	return f
}

// compressPages recompresses the written pages. Failures leave the page
// as written and are only logged.
func (g *Generator) compressPages(pages []string, prog *progressAggregator, log *slog.Logger) {
	level := g.params.CompressionLevel
	if level == 0 {
		return
	}

	prog.report(StepCompress, 0)
	for i, path := range pages {
		res, err := pngopt.Recompress(path, level)
		if err != nil {
			log.Warn("page compression failed", "path", path, "err", err)
		} else {
			log.Debug("page compressed", "path", path, "before", res.Before, "after", res.After, "replaced", res.Replaced)
		}
		prog.count(StepCompress, i+1, len(pages))
	}
}
