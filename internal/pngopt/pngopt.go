// Package pngopt losslessly recompresses PNG files in place.
package pngopt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// ErrPixelMismatch is returned when a re-encoded image does not decode to
// the original pixels.
var ErrPixelMismatch = errors.New("pngopt: re-encoded pixels differ")

// Result describes one recompression.
type Result struct {
	Before, After int64 // file sizes in bytes
	Replaced      bool
}

// CompressionLevel maps a level in 0..9 to an image/png level.
// Level 0 means no recompression and maps to png.NoCompression.
func CompressionLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// Recompress re-encodes the PNG at path with the given level (1..9).
//
// The new encoding is written to a temporary file in the same directory,
// decoded again and compared pixel by pixel with the original. The page is
// replaced by rename only when the pixels match and the file got smaller.
// On any failure the original file is left untouched. Level 0 is a no-op.
func Recompress(path string, level int) (Result, error) {
	if level <= 0 {
		return Result{}, nil
	}
	if level > 9 {
		return Result{}, fmt.Errorf("pngopt: level %d out of range 0..9", level)
	}

	// #nosec G304 -- path is one of the atlas pages just written
	orig, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	res := Result{Before: int64(len(orig)), After: int64(len(orig))}

	src, err := png.Decode(bytes.NewReader(orig))
	if err != nil {
		return res, fmt.Errorf("pngopt: decode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return res, err
	}
	tmpName := tmp.Name()
	defer func() {
		if !res.Replaced {
			_ = os.Remove(tmpName)
		}
	}()

	enc := png.Encoder{CompressionLevel: CompressionLevel(level)}
	w := bufio.NewWriter(tmp)
	if err := enc.Encode(w, src); err != nil {
		_ = tmp.Close()
		return res, err
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return res, err
	}
	if err := tmp.Close(); err != nil {
		return res, err
	}

	// #nosec G304 -- temporary file created above
	encoded, err := os.ReadFile(tmpName)
	if err != nil {
		return res, err
	}
	check, err := png.Decode(bytes.NewReader(encoded))
	if err != nil {
		return res, fmt.Errorf("pngopt: verify %s: %w", filepath.Base(path), err)
	}
	if !samePixels(src, check) {
		return res, ErrPixelMismatch
	}

	if int64(len(encoded)) >= res.Before {
		return res, nil
	}
	if err := os.Rename(tmpName, path); err != nil {
		return res, err
	}
	res.After = int64(len(encoded))
	res.Replaced = true
	return res, nil
}

// samePixels compares two images in non-premultiplied RGBA.
func samePixels(a, b image.Image) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Size() != bb.Size() {
		return false
	}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, abl, aa := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, ba := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if ar != br || ag != bg || abl != bbl || aa != ba {
				return false
			}
		}
	}
	return true
}
