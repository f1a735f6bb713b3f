// Command msdfbmfont generates MSDF bitmap fonts with msdfgen.
//
// Usage:
//
//	msdfbmfont [flags] font.ttf [font2.otf ...]
//
// For every font, page images <name>.png, <name>2.png, ... and <name>.fnt
// are written to the output directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"

	"github.com/gogpu/bmfont"
	"github.com/gogpu/bmfont/fnt"
	"github.com/gogpu/bmfont/text"
	"github.com/gogpu/bmfont/text/msdf"
)

// builtinFonts are the fonts available through -font.
var builtinFonts = map[string]struct {
	name string
	data []byte
}{
	"go":        {"Go-Regular", goregular.TTF},
	"go-bold":   {"Go-Bold", gobold.TTF},
	"go-italic": {"Go-Italic", goitalic.TTF},
}

type fontJob struct {
	path string // empty for built-in fonts
	name string
	data []byte
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	def := bmfont.DefaultParameters()
	fs := flag.NewFlagSet("msdfbmfont", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		msdfgen     = fs.String("g", def.Msdfgen, "msdfgen executable")
		output      = fs.String("o", def.OutputDir, "output directory")
		fieldType   = fs.String("t", def.FieldType.String(), "field type: sdf, psdf or msdf")
		alphaType   = fs.String("a", def.AlphaFieldType.String(), "alpha field type: none, sdf or psdf")
		size        = fs.Int("s", def.FontSize, "font size in pixels per em")
		distRange   = fs.Int("r", def.DistanceRange, "distance range in pixels")
		dims        = fs.String("d", fmt.Sprintf("%dx%d", def.PageWidth, def.PageHeight), "page size WxH")
		padding     = fs.Int("p", def.Padding, "padding between glyphs")
		border      = fs.Int("border", def.BorderPadding, "padding between glyphs and page edges")
		charset     = fs.String("c", "ascii", "charset name ("+strings.Join(bmfont.BuiltinCharsets(), ", ")+") or UTF-8 file")
		compression = fs.Int("l", def.CompressionLevel, "PNG compression level 0-9, 0 disables")
		workers     = fs.Int("workers", def.Workers, "concurrent glyphs, 0 for one per CPU")
		kerning     = fs.String("kerning", def.Kerning.String(), "kerning source: shaped, table or none")
		builtin     = fs.String("font", "", "also generate a built-in font: go, go-bold or go-italic")
		verbose     = fs.Bool("v", false, "verbose logging")
		check       = fs.Bool("check", false, "re-read every written .fnt file")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	bmfont.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	params := def
	params.Msdfgen = *msdfgen
	params.OutputDir = *output
	params.FontSize = *size
	params.DistanceRange = *distRange
	params.Padding = *padding
	params.BorderPadding = *border
	params.CompressionLevel = *compression
	params.Workers = *workers

	var err error
	if params.FieldType, err = msdf.ParseFieldType(*fieldType); err != nil {
		return usage(stderr, err)
	}
	if params.AlphaFieldType, err = msdf.ParseFieldType(*alphaType); err != nil {
		return usage(stderr, err)
	}
	if params.PageWidth, params.PageHeight, err = parseDims(*dims); err != nil {
		return usage(stderr, err)
	}
	if params.Kerning, err = text.ParseKerningMode(*kerning); err != nil {
		return usage(stderr, err)
	}
	if params.Charset, err = bmfont.LoadCharset(*charset); err != nil {
		return usage(stderr, err)
	}

	jobs := make([]fontJob, 0, fs.NArg()+1)
	for _, path := range fs.Args() {
		jobs = append(jobs, fontJob{path: path})
	}
	if *builtin != "" {
		f, ok := builtinFonts[*builtin]
		if !ok {
			return usage(stderr, fmt.Errorf("unknown built-in font %q", *builtin))
		}
		jobs = append(jobs, fontJob{name: f.name, data: f.data})
	}
	if len(jobs) == 0 {
		return usage(stderr, errors.New("no font files given"))
	}

	bar := &progressBar{w: stderr, enabled: isTerminal(stderr)}
	gen, err := bmfont.NewGenerator(params, bmfont.WithProgress(bar.update))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer gen.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := 0
	for _, job := range jobs {
		start := time.Now()
		label := job.path
		if label == "" {
			label = job.name
		}
		fmt.Fprintf(stderr, "%s\n", label)

		var res *bmfont.Result
		if job.path != "" {
			res, err = gen.Generate(ctx, job.path)
		} else {
			res, err = gen.GenerateFont(ctx, job.data, job.name)
		}
		bar.finish()
		if err == nil && *check {
			err = checkFontFile(res)
		}
		if err != nil {
			fmt.Fprintf(stderr, "FAILED: %v\n", err)
			failed++
			if ctx.Err() != nil {
				break
			}
			continue
		}
		fmt.Fprintf(stderr, "DONE in %.1f s: %s, %d glyphs, %d kernings, %d pages\n",
			time.Since(start).Seconds(), res.FontFile, res.Glyphs, res.Kernings, len(res.Pages))
	}

	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d fonts failed\n", failed, len(jobs))
		return 1
	}
	return 0
}

func usage(w io.Writer, err error) int {
	fmt.Fprintf(w, "msdfbmfont: %v\n", err)
	fmt.Fprintln(w, "usage: msdfbmfont [flags] font.ttf [font2.otf ...]")
	return 2
}

// parseDims parses a page size such as "512x256".
func parseDims(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("page size %q: want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("page size %q: %w", s, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("page size %q: %w", s, err)
	}
	return w, h, nil
}

// checkFontFile parses the written .fnt file and compares it with res.
func checkFontFile(res *bmfont.Result) error {
	f, err := fnt.ParseFile(res.FontFile)
	if err != nil {
		return fmt.Errorf("check %s: %w", res.FontFile, err)
	}
	switch {
	case len(f.Chars) != res.Glyphs:
		return fmt.Errorf("check %s: %d chars, generated %d", res.FontFile, len(f.Chars), res.Glyphs)
	case len(f.Kernings) != res.Kernings:
		return fmt.Errorf("check %s: %d kernings, generated %d", res.FontFile, len(f.Kernings), res.Kernings)
	case len(f.Pages) != len(res.Pages):
		return fmt.Errorf("check %s: %d pages, generated %d", res.FontFile, len(f.Pages), len(res.Pages))
	}
	for _, c := range f.Chars {
		if c.Page < 0 || c.Page >= len(f.Pages) {
			return fmt.Errorf("check %s: char %d on page %d", res.FontFile, c.ID, c.Page)
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
