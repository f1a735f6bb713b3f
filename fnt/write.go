package fnt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Encode writes f in BMFont text format. Chars are written by id and
// kernings by (first, second); zero kernings are skipped.
//
// progress, if not nil, receives the fraction of char and kerning lines
// written so far.
func Encode(w io.Writer, f *Font, progress func(float64)) error {
	chars, kernings := f.sorted()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "info face=\"%s\" size=%d bold=%d italic=%d charset=\"\" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=0,0 outline=0\n",
		quoteSafe(f.Face), f.Size, boolInt(f.Bold), boolInt(f.Italic))
	fmt.Fprintf(bw, "common lineHeight=%d base=%d scaleW=%d scaleH=%d pages=%d packed=0 alphaChnl=0 redChnl=0 greenChnl=0 blueChnl=0 distanceRange=%d\n",
		f.LineHeight, f.Base, f.ScaleW, f.ScaleH, len(f.Pages), f.DistanceRange)
	for i, file := range f.Pages {
		fmt.Fprintf(bw, "page id=%d file=\"%s\"\n", i, quoteSafe(file))
	}

	total := len(chars) + len(kernings)
	done := 0
	step := func() {
		done++
		if progress != nil {
			progress(float64(done) / float64(total))
		}
	}

	fmt.Fprintf(bw, "chars count=%d\n", len(chars))
	for _, c := range chars {
		fmt.Fprintf(bw, "char id=%d x=%d y=%d width=%d height=%d xoffset=%d yoffset=%d xadvance=%d page=%d chnl=%d\n",
			c.ID, c.X, c.Y, c.Width, c.Height, c.XOffset, c.YOffset, c.XAdvance, c.Page, c.Channels)
		step()
	}

	fmt.Fprintf(bw, "kernings count=%d\n", len(kernings))
	for _, k := range kernings {
		fmt.Fprintf(bw, "kerning first=%d second=%d amount=%d\n", k.First, k.Second, k.Amount)
		step()
	}

	if total == 0 && progress != nil {
		progress(1)
	}
	return bw.Flush()
}

// WriteFile encodes f into the file at path, replacing it.
func WriteFile(path string, f *Font, progress func(float64)) (err error) {
	// #nosec G304 -- output path is derived from the user's output directory
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return Encode(file, f, progress)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// quoteSafe replaces characters that would end a quoted value.
func quoteSafe(s string) string {
	return strings.NewReplacer("\"", "'", "\n", " ", "\r", " ").Replace(s)
}
