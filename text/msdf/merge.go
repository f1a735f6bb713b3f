package msdf

import (
	"fmt"
	"image"
)

// MergeAlpha returns a copy of base whose alpha channel is the red channel
// of alpha. Both images must have the same size.
func MergeAlpha(base, alpha *image.NRGBA) (*image.NRGBA, error) {
	if base.Rect.Size() != alpha.Rect.Size() {
		return nil, fmt.Errorf("msdf: merge alpha: size mismatch %v vs %v", base.Rect.Size(), alpha.Rect.Size())
	}

	out := image.NewNRGBA(image.Rect(0, 0, base.Rect.Dx(), base.Rect.Dy()))
	w, h := out.Rect.Dx(), out.Rect.Dy()
	for y := 0; y < h; y++ {
		src := base.Pix[base.PixOffset(base.Rect.Min.X, base.Rect.Min.Y+y):]
		sa := alpha.Pix[alpha.PixOffset(alpha.Rect.Min.X, alpha.Rect.Min.Y+y):]
		dst := out.Pix[out.PixOffset(0, y):]
		for x := 0; x < w; x++ {
			i := x * 4
			dst[i+0] = src[i+0]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+2]
			dst[i+3] = sa[i+0]
		}
	}
	return out, nil
}
