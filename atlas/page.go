package atlas

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/draw"
)

// PageFileName returns the image file name of a page: "<name>.png" for
// page 0, then "<name>2.png", "<name>3.png" and so on.
func PageFileName(name string, page int) string {
	if page == 0 {
		return name + ".png"
	}
	return name + strconv.Itoa(page+1) + ".png"
}

// Compose draws every item at its placement and returns one full-size image
// per page. With transparent false the background is opaque black, so the
// pages encode as RGB; otherwise it is fully transparent.
func Compose(p Packer, layout *Layout, items []Item, transparent bool) []*image.NRGBA {
	bounds := image.Rect(0, 0, p.MaxWidth, p.MaxHeight)
	pages := make([]*image.NRGBA, layout.Pages)
	for i := range pages {
		pages[i] = image.NewNRGBA(bounds)
		if !transparent {
			draw.Draw(pages[i], bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
		}
	}

	for _, it := range items {
		pl, ok := layout.Placements[it.Name]
		if !ok {
			continue
		}
		src := it.Image.Bounds()
		dst := image.Rect(pl.X, pl.Y, pl.X+src.Dx(), pl.Y+src.Dy())
		draw.Draw(pages[pl.Page], dst, it.Image, src.Min, draw.Src)
	}
	return pages
}

// WritePages encodes pages as PNG files in dir and returns their file
// names in page order.
func WritePages(dir, name string, pages []*image.NRGBA) ([]string, error) {
	files := make([]string, len(pages))
	for i, img := range pages {
		files[i] = PageFileName(name, i)
		if err := writePNG(filepath.Join(dir, files[i]), img); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func writePNG(path string, img image.Image) (err error) {
	// #nosec G304 -- output path is derived from the user's output directory
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("atlas: encode %s: %w", filepath.Base(path), err)
	}
	return w.Flush()
}
