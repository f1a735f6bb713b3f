package bmfont

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/bmfont/atlas"
	"github.com/gogpu/bmfont/fnt"
	"github.com/gogpu/bmfont/text"
	"github.com/gogpu/bmfont/text/msdf"
)

// fakeFields returns solid bitmaps of the requested size.
type fakeFields struct {
	mu       sync.Mutex
	requests []msdf.Request

	err      error // returned for every request when set
	wrongDim bool  // return a bitmap one pixel too wide
	nilImage bool  // return no bitmap and no error
}

func (f *fakeFields) Generate(ctx context.Context, req msdf.Request) (*image.NRGBA, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.nilImage {
		return nil, nil
	}

	w := req.Width
	if f.wrongDim {
		w++
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, req.Height))
	c := color.NRGBA{R: uint8(req.Width), G: uint8(req.Height), B: uint8(req.Type) * 40, A: 255}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img, nil
}

func (f *fakeFields) types() map[msdf.FieldType]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[msdf.FieldType]int)
	for _, req := range f.requests {
		out[req.Type]++
	}
	return out
}

func testParameters(t *testing.T) Parameters {
	t.Helper()
	p := DefaultParameters()
	p.OutputDir = t.TempDir()
	p.Msdfgen = "msdfgen-is-not-used-in-tests"
	p.CompressionLevel = 0
	return p
}

func newTestGenerator(t *testing.T, p Parameters, opts ...Option) (*Generator, *fakeFields) {
	t.Helper()
	fields := &fakeFields{}
	opts = append([]Option{WithFieldGenerator(fields)}, opts...)
	gen, err := NewGenerator(p, opts...)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	t.Cleanup(gen.Close)
	return gen, fields
}

func generateGoRegular(t *testing.T, gen *Generator) (*Result, *fnt.Font) {
	t.Helper()
	res, err := gen.GenerateFont(context.Background(), goregular.TTF, "goregular")
	if err != nil {
		t.Fatalf("GenerateFont() error = %v", err)
	}
	f, err := fnt.ParseFile(res.FontFile)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	return res, f
}

func goRegularFace(t *testing.T, size float64) text.Face {
	t.Helper()
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	return src.Face(size)
}

func TestGenerator_GlyphSizes(t *testing.T) {
	p := testParameters(t)
	gen, fields := newTestGenerator(t, p)
	_, f := generateGoRegular(t, gen)

	face := goRegularFace(t, float64(p.FontSize))
	pad := float64(p.DistanceRange) / 2
	for _, c := range f.Chars {
		ext, err := msdf.ExtractShape(face, c.ID, pad)
		if err != nil {
			t.Fatalf("ExtractShape(%q) error = %v", c.ID, err)
		}
		og, ok := ext.(msdf.OutlineGlyph)
		if !ok {
			t.Fatalf("char %q written for a blank glyph", c.ID)
		}
		if c.Width != og.Width(pad) || c.Height != og.Height(pad) {
			t.Errorf("char %q size = %dx%d, want %dx%d", c.ID, c.Width, c.Height, og.Width(pad), og.Height(pad))
		}
		if c.XAdvance < 0 {
			t.Errorf("char %q xadvance = %d, want >= 0", c.ID, c.XAdvance)
		}
		if want := roundHalfUp(og.Bounds.MinX - pad); c.XOffset != want {
			t.Errorf("char %q xoffset = %d, want %d", c.ID, c.XOffset, want)
		}
	}

	got := fields.types()
	want := map[msdf.FieldType]int{msdf.FieldMSDF: len(f.Chars), msdf.FieldSDF: len(f.Chars)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("field requests mismatch (-want +got):\n%s", diff)
	}
	for _, req := range fields.requests {
		if req.Range != p.DistanceRange {
			t.Errorf("request range = %d, want %d", req.Range, p.DistanceRange)
		}
	}
}

func TestGenerator_FontHeader(t *testing.T) {
	p := testParameters(t)
	gen, _ := newTestGenerator(t, p)
	res, f := generateGoRegular(t, gen)

	face := goRegularFace(t, float64(p.FontSize))
	m := face.Metrics()
	if f.Face != face.Name() || res.Face != f.Face {
		t.Errorf("face = %q (result %q), want %q", f.Face, res.Face, face.Name())
	}
	if f.Size != p.FontSize || f.DistanceRange != p.DistanceRange {
		t.Errorf("size, range = %d, %d, want %d, %d", f.Size, f.DistanceRange, p.FontSize, p.DistanceRange)
	}
	if f.LineHeight != roundHalfUp(m.LineHeight()) || f.Base != roundHalfUp(m.Ascent) {
		t.Errorf("lineHeight, base = %d, %d, want %d, %d",
			f.LineHeight, f.Base, roundHalfUp(m.LineHeight()), roundHalfUp(m.Ascent))
	}
	if f.ScaleW != p.PageWidth || f.ScaleH != p.PageHeight {
		t.Errorf("scale = %dx%d, want %dx%d", f.ScaleW, f.ScaleH, p.PageWidth, p.PageHeight)
	}
	if f.Bold || f.Italic {
		t.Errorf("bold, italic = %v, %v, want false, false", f.Bold, f.Italic)
	}
	if res.Name != "goregular" || filepath.Base(res.FontFile) != "goregular.fnt" {
		t.Errorf("result name, file = %q, %q", res.Name, res.FontFile)
	}
	if res.Glyphs != len(f.Chars) || res.Kernings != len(f.Kernings) {
		t.Errorf("result counts = %d, %d, want %d, %d", res.Glyphs, res.Kernings, len(f.Chars), len(f.Kernings))
	}
}

func TestGenerator_CountsMatchLines(t *testing.T) {
	gen, _ := newTestGenerator(t, testParameters(t))
	res, f := generateGoRegular(t, gen)

	data, err := os.ReadFile(res.FontFile)
	if err != nil {
		t.Fatal(err)
	}
	var chars, kernings int
	for _, line := range strings.Split(string(data), "\n") {
		switch {
		case strings.HasPrefix(line, "char "):
			chars++
		case strings.HasPrefix(line, "kerning "):
			kernings++
		}
	}
	if !bytes.Contains(data, []byte(fmt.Sprintf("chars count=%d\n", chars))) {
		t.Errorf("chars count does not match %d char lines", chars)
	}
	if !bytes.Contains(data, []byte(fmt.Sprintf("kernings count=%d\n", kernings))) {
		t.Errorf("kernings count does not match %d kerning lines", kernings)
	}
	if chars != len(f.Chars) || chars == 0 {
		t.Errorf("char lines = %d, parsed %d", chars, len(f.Chars))
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	var outputs [2]map[string][]byte
	for i, workers := range []int{1, 4} {
		p := testParameters(t)
		p.Workers = workers
		p.PageWidth, p.PageHeight = 128, 128
		p.CompressionLevel = 9
		gen, _ := newTestGenerator(t, p)
		res, _ := generateGoRegular(t, gen)

		outputs[i] = make(map[string][]byte)
		for _, path := range append([]string{res.FontFile}, res.Pages...) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			outputs[i][filepath.Base(path)] = data
		}
	}
	if len(outputs[0]) < 3 {
		t.Fatalf("got %d output files, want a font file and several pages", len(outputs[0]))
	}
	if diff := cmp.Diff(outputs[0], outputs[1]); diff != "" {
		t.Errorf("outputs differ between runs (-first +second):\n%s", diff)
	}
}

func TestGenerator_MultiPageNoOverlap(t *testing.T) {
	p := testParameters(t)
	p.PageWidth, p.PageHeight = 128, 64
	gen, _ := newTestGenerator(t, p)
	res, f := generateGoRegular(t, gen)

	if len(f.Pages) < 2 {
		t.Fatalf("pages = %d, want overflow onto several pages", len(f.Pages))
	}
	if len(res.Pages) != len(f.Pages) {
		t.Fatalf("result pages = %d, font pages = %d", len(res.Pages), len(f.Pages))
	}
	for i, name := range f.Pages {
		if want := atlas.PageFileName("goregular", i); name != want {
			t.Errorf("page %d file = %q, want %q", i, name, want)
		}
		img := decodePNG(t, res.Pages[i])
		if b := img.Bounds(); b.Dx() != p.PageWidth || b.Dy() != p.PageHeight {
			t.Errorf("page %d size = %v, want %dx%d", i, b.Size(), p.PageWidth, p.PageHeight)
		}
	}

	rects := make(map[int][]image.Rectangle)
	for _, c := range f.Chars {
		if c.Page < 0 || c.Page >= len(f.Pages) {
			t.Fatalf("char %q page = %d, want in [0, %d)", c.ID, c.Page, len(f.Pages))
		}
		r := image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height)
		inner := image.Rect(p.BorderPadding, p.BorderPadding, p.PageWidth-p.BorderPadding, p.PageHeight-p.BorderPadding)
		if !r.In(inner) {
			t.Errorf("char %q at %v outside %v", c.ID, r, inner)
		}
		for _, o := range rects[c.Page] {
			if r.Overlaps(o) {
				t.Errorf("char %q at %v overlaps %v on page %d", c.ID, r, o, c.Page)
			}
		}
		rects[c.Page] = append(rects[c.Page], r)
	}
}

func TestGenerator_Kernings(t *testing.T) {
	p := testParameters(t)
	gen, _ := newTestGenerator(t, p)

	// Every pair of the charset, about a fifth of them zero.
	face := fixedKerningFace{
		Face:  goRegularFace(t, float64(p.FontSize)),
		pairs: make(map[[2]rune]int),
	}
	for _, a := range p.Charset {
		for _, b := range p.Charset {
			face.pairs[[2]rune{a, b}] = int(a+b)%5 - 2
		}
	}
	res, err := gen.GenerateFace(context.Background(), face, "pairs")
	if err != nil {
		t.Fatalf("GenerateFace() error = %v", err)
	}
	f, err := fnt.ParseFile(res.FontFile)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	want := 0
	for _, c := range f.Chars {
		for _, b := range p.Charset {
			if face.pairs[[2]rune{c.ID, b}] != 0 {
				want++
			}
		}
	}
	if len(f.Kernings) != want || want == 0 {
		t.Errorf("kernings = %d, want %d", len(f.Kernings), want)
	}

	inCharset := make(map[rune]bool)
	for _, r := range p.Charset {
		inCharset[r] = true
	}
	for i, k := range f.Kernings {
		if k.Amount == 0 {
			t.Errorf("kerning %q %q has zero amount", k.First, k.Second)
		}
		if !inCharset[k.First] || !inCharset[k.Second] {
			t.Errorf("kerning %q %q outside the charset", k.First, k.Second)
		}
		if amount := face.pairs[[2]rune{k.First, k.Second}]; k.Amount != amount {
			t.Errorf("kerning %q %q = %d, want %d", k.First, k.Second, k.Amount, amount)
		}
		if i > 0 {
			prev := f.Kernings[i-1]
			if prev.First > k.First || (prev.First == k.First && prev.Second >= k.Second) {
				t.Errorf("kerning %d (%q %q) out of order", i, k.First, k.Second)
			}
		}
	}
}

func TestGenerator_TwoLetters(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune("AB")
	p.DistanceRange = 4
	gen, _ := newTestGenerator(t, p)

	face := fixedKerningFace{
		Face:  goRegularFace(t, float64(p.FontSize)),
		pairs: map[[2]rune]int{{'A', 'B'}: -1, {'B', 'A'}: 0},
	}
	res, err := gen.GenerateFace(context.Background(), face, "ab")
	if err != nil {
		t.Fatalf("GenerateFace() error = %v", err)
	}
	f, err := fnt.ParseFile(res.FontFile)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if len(f.Chars) != 2 || f.Chars[0].ID != 'A' || f.Chars[1].ID != 'B' {
		t.Fatalf("chars = %+v, want A and B", f.Chars)
	}
	wantKern := []fnt.Kerning{{First: 'A', Second: 'B', Amount: -1}}
	if diff := cmp.Diff(wantKern, f.Kernings); diff != "" {
		t.Errorf("kernings mismatch (-want +got):\n%s", diff)
	}
	// Cap letters stand on the baseline and reach cap height.
	for _, c := range f.Chars {
		if c.Height < p.FontSize/2+4 || c.Height > p.FontSize+4 {
			t.Errorf("char %q height = %d, want about cap height + 4", c.ID, c.Height)
		}
	}
}

func TestGenerator_SpaceExcluded(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune(" A")
	gen, _ := newTestGenerator(t, p)
	_, f := generateGoRegular(t, gen)

	if len(f.Chars) != 1 || f.Chars[0].ID != 'A' {
		t.Errorf("chars = %+v, want only A", f.Chars)
	}
}

func TestGenerator_Channels(t *testing.T) {
	tests := []struct {
		name   string
		alpha  msdf.FieldType
		chnl   int
		opaque bool
	}{
		{"alpha none", msdf.FieldNone, ChannelsRGB, true},
		{"alpha sdf", msdf.FieldSDF, ChannelsRGBA, false},
		{"alpha psdf", msdf.FieldPSDF, ChannelsRGBA, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParameters(t)
			p.Charset = []rune("Hi.")
			p.AlphaFieldType = tt.alpha
			gen, fields := newTestGenerator(t, p)
			res, f := generateGoRegular(t, gen)

			for _, c := range f.Chars {
				if c.Channels != tt.chnl {
					t.Errorf("char %q chnl = %d, want %d", c.ID, c.Channels, tt.chnl)
				}
			}
			if tt.alpha == msdf.FieldNone && fields.types()[msdf.FieldSDF] != 0 {
				t.Error("alpha field generated with alpha type none")
			}
			if got := decodePNG(t, res.Pages[0]).Opaque(); got != tt.opaque {
				t.Errorf("page opaque = %v, want %v", got, tt.opaque)
			}
		})
	}
}

func TestGenerator_FieldFailure(t *testing.T) {
	errBoom := errors.New("boom")
	gen, err := NewGenerator(testParameters(t), WithFieldGenerator(&fakeFields{err: errBoom}))
	if err != nil {
		t.Fatal(err)
	}
	defer gen.Close()

	_, err = gen.GenerateFont(context.Background(), goregular.TTF, "goregular")
	var fieldErr *FieldGenerationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error = %v, want *FieldGenerationError", err)
	}
	if !errors.Is(err, errBoom) {
		t.Errorf("error %v does not wrap the generator error", err)
	}
	if fieldErr.Type != msdf.FieldMSDF {
		t.Errorf("failed type = %v, want msdf", fieldErr.Type)
	}
}

func TestGenerator_WrongBitmapSize(t *testing.T) {
	gen, err := NewGenerator(testParameters(t), WithFieldGenerator(&fakeFields{wrongDim: true}))
	if err != nil {
		t.Fatal(err)
	}
	defer gen.Close()

	_, err = gen.GenerateFont(context.Background(), goregular.TTF, "goregular")
	var fieldErr *FieldGenerationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error = %v, want *FieldGenerationError", err)
	}
}

func TestGenerator_NilBitmap(t *testing.T) {
	gen, err := NewGenerator(testParameters(t), WithFieldGenerator(&fakeFields{nilImage: true}))
	if err != nil {
		t.Fatal(err)
	}
	defer gen.Close()

	_, err = gen.GenerateFont(context.Background(), goregular.TTF, "goregular")
	var fieldErr *FieldGenerationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error = %v, want *FieldGenerationError", err)
	}
	if !errors.Is(err, msdf.ErrEmptyOutput) {
		t.Errorf("error %v does not wrap msdf.ErrEmptyOutput", err)
	}
}

func TestGenerator_GlyphTooLarge(t *testing.T) {
	p := testParameters(t)
	p.FontSize = 200
	p.PageWidth, p.PageHeight = 64, 64
	p.Charset = []rune("W")
	gen, _ := newTestGenerator(t, p)

	_, err := gen.GenerateFont(context.Background(), goregular.TTF, "goregular")
	var packErr *PackingError
	if !errors.As(err, &packErr) {
		t.Fatalf("error = %v, want *PackingError", err)
	}
	if packErr.Rune != 'W' {
		t.Errorf("PackingError.Rune = %q, want 'W'", packErr.Rune)
	}
	var tooLarge *atlas.TooLargeError
	if !errors.As(err, &tooLarge) {
		t.Errorf("error %v does not wrap *atlas.TooLargeError", err)
	}
}

func TestGenerator_NoGlyphs(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune{' ', 0x10fffd}
	gen, _ := newTestGenerator(t, p)

	_, err := gen.GenerateFont(context.Background(), goregular.TTF, "goregular")
	if !errors.Is(err, ErrNoGlyphs) {
		t.Errorf("error = %v, want ErrNoGlyphs", err)
	}
}

func TestGenerator_RemovesStaleOutput(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune("a")
	for _, name := range []string{"goregular2.png", "goregular3.png", "goregular.atlas", "other.png"} {
		if err := os.WriteFile(filepath.Join(p.OutputDir, name), []byte("stale"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	gen, _ := newTestGenerator(t, p)
	generateGoRegular(t, gen)

	for _, name := range []string{"goregular2.png", "goregular3.png", "goregular.atlas"} {
		if _, err := os.Stat(filepath.Join(p.OutputDir, name)); !os.IsNotExist(err) {
			t.Errorf("%s still exists (err = %v)", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(p.OutputDir, "other.png")); err != nil {
		t.Errorf("unrelated file removed: %v", err)
	}
}

func TestGenerator_RemovesStaleOutputOnFailure(t *testing.T) {
	p := testParameters(t)
	stale := []string{"goregular.fnt", "goregular.png", "goregular2.png"}
	for _, name := range stale {
		if err := os.WriteFile(filepath.Join(p.OutputDir, name), []byte("stale"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	gen, err := NewGenerator(p, WithFieldGenerator(&fakeFields{err: errors.New("boom")}))
	if err != nil {
		t.Fatal(err)
	}
	defer gen.Close()

	if _, err := gen.GenerateFont(context.Background(), goregular.TTF, "goregular"); err == nil {
		t.Fatal("GenerateFont() error = nil, want a field failure")
	}
	for _, name := range stale {
		if _, err := os.Stat(filepath.Join(p.OutputDir, name)); !os.IsNotExist(err) {
			t.Errorf("%s still exists after a failed run (err = %v)", name, err)
		}
	}
}

func TestGenerator_DuplicateRunes(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune("ABA")
	gen, fields := newTestGenerator(t, p)
	_, f := generateGoRegular(t, gen)

	var ids []rune
	for _, c := range f.Chars {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]rune("AB"), ids); diff != "" {
		t.Errorf("char ids mismatch (-want +got):\n%s", diff)
	}
	if got := fields.types()[msdf.FieldMSDF]; got != 2 {
		t.Errorf("msdf fields generated = %d, want 2", got)
	}
	if string(p.Charset) != "ABA" {
		t.Error("NewGenerator modified the caller's charset")
	}
}

// fixedKerningFace replaces the kerning of a face with a fixed table.
type fixedKerningFace struct {
	text.Face
	pairs map[[2]rune]int
}

func (f fixedKerningFace) Kerning(left, right rune) int {
	return f.pairs[[2]rune{left, right}]
}

func TestGenerator_KerningLines(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune("AV T")
	gen, _ := newTestGenerator(t, p)

	face := fixedKerningFace{
		Face: goRegularFace(t, float64(p.FontSize)),
		pairs: map[[2]rune]int{
			{'A', 'V'}: -3,
			{'V', 'A'}: -2,
			{'T', 'A'}: 0,
			{'A', ' '}: 1,  // blank second rune is kept
			{' ', 'A'}: -1, // blank first rune has no char line
			{'T', 'T'}: 0,
			{'V', 'T'}: 2,
		},
	}
	res, err := gen.GenerateFace(context.Background(), face, "kerned")
	if err != nil {
		t.Fatalf("GenerateFace() error = %v", err)
	}
	data, err := os.ReadFile(res.FontFile)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "kerning") {
			got = append(got, line)
		}
	}
	want := []string{
		"kernings count=4",
		"kerning first=65 second=32 amount=1",
		"kerning first=65 second=86 amount=-3",
		"kerning first=86 second=65 amount=-2",
		"kerning first=86 second=84 amount=2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kerning lines mismatch (-want +got):\n%s", diff)
	}
	if res.Kernings != 4 {
		t.Errorf("Result.Kernings = %d, want 4", res.Kernings)
	}
}

func TestGenerator_Cancelled(t *testing.T) {
	gen, _ := newTestGenerator(t, testParameters(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.GenerateFont(ctx, goregular.TTF, "goregular")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGenerator_BadName(t *testing.T) {
	gen, _ := newTestGenerator(t, testParameters(t))
	for _, name := range []string{"", "a/b", `a\b`} {
		_, err := gen.GenerateFont(context.Background(), goregular.TTF, name)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "Name" {
			t.Errorf("GenerateFont(name %q) error = %v, want ConfigError on Name", name, err)
		}
	}
}

func TestGenerator_GenerateFromFile(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune("xy")
	gen, _ := newTestGenerator(t, p)

	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := gen.Generate(context.Background(), path)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Name != "Go-Regular" {
		t.Errorf("Name = %q, want %q", res.Name, "Go-Regular")
	}
	if want := filepath.Join(gen.Output().Dir, "Go-Regular.fnt"); res.FontFile != want {
		t.Errorf("FontFile = %q, want %q", res.FontFile, want)
	}
}

func TestGenerator_GenerateAllIsolatesFonts(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune("ok")
	gen, _ := newTestGenerator(t, p)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.ttf")
	broken := filepath.Join(dir, "broken.ttf")
	missing := filepath.Join(dir, "missing.ttf")
	if err := os.WriteFile(good, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := gen.GenerateAll(context.Background(), []string{broken, good, missing})
	if err == nil {
		t.Fatal("GenerateAll() error = nil, want failures")
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[1].Err != nil || results[1].Glyphs != 2 {
		t.Errorf("good font result = %+v", results[1])
	}
	for _, i := range []int{0, 2} {
		var cfgErr *ConfigError
		if !errors.As(results[i].Err, &cfgErr) || cfgErr.Field != "Font" {
			t.Errorf("result %d error = %v, want ConfigError on Font", i, results[i].Err)
		}
	}
	if results[0].Name != "broken" {
		t.Errorf("failed result name = %q, want %q", results[0].Name, "broken")
	}
	if _, statErr := os.Stat(filepath.Join(p.OutputDir, "good.fnt")); statErr != nil {
		t.Errorf("good font not written: %v", statErr)
	}
}

func TestGenerator_Progress(t *testing.T) {
	p := testParameters(t)
	p.CompressionLevel = 6

	type report struct {
		step Step
		p    float64
	}
	var reports []report
	gen, _ := newTestGenerator(t, p, WithProgress(func(s Step, v float64) {
		reports = append(reports, report{s, v})
	}))
	generateGoRegular(t, gen)

	last := make(map[Step]float64)
	var order []Step
	for _, r := range reports {
		prev, seen := last[r.step]
		if !seen {
			order = append(order, r.step)
		}
		if r.p < prev || r.p < 0 || r.p > 1 {
			t.Errorf("step %v went from %v to %v", r.step, prev, r.p)
		}
		last[r.step] = r.p
	}
	if diff := cmp.Diff([]Step{StepGlyph, StepPack, StepFontFile, StepCompress}, order); diff != "" {
		t.Errorf("step order mismatch (-want +got):\n%s", diff)
	}
	for _, s := range order {
		if last[s] != 1 {
			t.Errorf("step %v ended at %v, want 1", s, last[s])
		}
	}
}

func TestGenerator_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := testParameters(t)
	p.Charset = []rune("a")
	gen, _ := newTestGenerator(t, p, WithLogger(l))
	generateGoRegular(t, gen)

	out := buf.String()
	for _, want := range []string{"font done", "atlas packed", "rune not in font", "glyph generated"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestNewGenerator_Errors(t *testing.T) {
	t.Run("invalid parameters", func(t *testing.T) {
		p := testParameters(t)
		p.FontSize = 4
		_, err := NewGenerator(p, WithFieldGenerator(&fakeFields{}))
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "FontSize" {
			t.Errorf("error = %v, want ConfigError on FontSize", err)
		}
	})

	t.Run("msdfgen not found", func(t *testing.T) {
		p := testParameters(t)
		p.Msdfgen = filepath.Join(t.TempDir(), "no-such-msdfgen")
		_, err := NewGenerator(p)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "Msdfgen" {
			t.Errorf("error = %v, want ConfigError on Msdfgen", err)
		}
	})

	t.Run("output is a file", func(t *testing.T) {
		p := testParameters(t)
		p.OutputDir = filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(p.OutputDir, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewGenerator(p, WithFieldGenerator(&fakeFields{}))
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "OutputDir" {
			t.Errorf("error = %v, want ConfigError on OutputDir", err)
		}
	})
}

func TestNewGenerator_CopiesCharset(t *testing.T) {
	p := testParameters(t)
	p.Charset = []rune("ab")
	gen, _ := newTestGenerator(t, p)
	p.Charset[0] = 'z'
	if gen.params.Charset[0] != 'a' {
		t.Error("generator shares the caller's charset slice")
	}
}

func decodePNG(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	out := image.NewNRGBA(img.Bounds())
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
