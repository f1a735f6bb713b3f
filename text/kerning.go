package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// shapedKerner measures pair kerning by shaping two-rune runs with
// go-text/typesetting's HarfBuzz port. The kerning of (a, b) is the advance
// of a inside the pair minus its advance when shaped alone.
//
// font.Font is read-only and safe for concurrent use; font.Face and
// HarfbuzzShaper are not, so both are pooled.
type shapedKerner struct {
	font    *font.Font
	faces   sync.Pool
	shapers sync.Pool

	// solo caches the unpaired advance per rune and size.
	solo sync.Map // soloKey -> fixed.Int26_6
}

type soloKey struct {
	r    rune
	size fixed.Int26_6
}

// newShapedKerner parses data with go-text/typesetting.
func newShapedKerner(data []byte) (*shapedKerner, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &FontError{Reason: "failed to parse font for shaping", Err: err}
	}

	k := &shapedKerner{font: face.Font}
	k.faces.New = func() any {
		return font.NewFace(k.font)
	}
	k.shapers.New = func() any {
		return &shaping.HarfbuzzShaper{}
	}
	return k, nil
}

// shape returns the advances of the shaped run.
func (k *shapedKerner) shape(runes []rune, size fixed.Int26_6) []shaping.Glyph {
	face := k.faces.Get().(*font.Face)
	defer k.faces.Put(face)
	hb := k.shapers.Get().(*shaping.HarfbuzzShaper)
	defer k.shapers.Put(hb)

	out := hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      size,
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
	return out.Glyphs
}

// kern returns the pair adjustment in pixels. Pairs that shape into a
// ligature or any other glyph count than two have no kerning.
func (k *shapedKerner) kern(left, right rune, size float64) float64 {
	sz := floatToFixed(size)

	pair := k.shape([]rune{left, right}, sz)
	if len(pair) != 2 {
		return 0
	}

	key := soloKey{r: left, size: sz}
	var solo fixed.Int26_6
	if v, ok := k.solo.Load(key); ok {
		solo = v.(fixed.Int26_6)
	} else {
		alone := k.shape([]rune{left}, sz)
		if len(alone) != 1 {
			return 0
		}
		solo = alone[0].Advance
		k.solo.Store(key, solo)
	}

	return fixedToFloat64(pair[0].Advance - solo)
}
