package bmfont

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"sort"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// byteRange is an inclusive range of code page bytes.
type byteRange struct{ lo, hi byte }

// runeRange is an inclusive range of code points.
type runeRange struct{ lo, hi rune }

var printableASCII = byteRange{0x20, 0x7e}

// builtinCharsets holds the charset generators by name.
var builtinCharsets = map[string]func() []rune{
	"test":  func() []rune { return NormalizeCharset([]rune(" A@jp&ÂO!-$")) },
	"ascii": func() []rune { return fromRunes(runeRange{0x20, 0x7e}) },

	// Code page 437 without box drawing and the integral halves.
	"ascii-extended": func() []rune {
		return fromCodePage(charmap.CodePage437, printableASCII, byteRange{0x80, 0xaf},
			byteRange{0xe0, 0xf3}, byteRange{0xf6, 0xff})
	},
	"latin-0":      func() []rune { return fromCodePage(charmap.ISO8859_1, printableASCII, byteRange{0xa0, 0xff}) },
	"latin-9":      func() []rune { return fromCodePage(charmap.ISO8859_15, printableASCII, byteRange{0xa0, 0xff}) },
	"windows-1252": func() []rune { return fromCodePage(charmap.Windows1252, printableASCII, byteRange{0x80, 0xff}) },

	// Latin, Greek, Cyrillic, general punctuation and currency symbols.
	"extended": func() []rune {
		return fromRunes(
			runeRange{0x20, 0x7e}, runeRange{0xa0, 0x17f},
			runeRange{0x374, 0x375}, runeRange{0x37a, 0x37e}, runeRange{0x384, 0x38a},
			runeRange{0x38c, 0x38c}, runeRange{0x38e, 0x3a1}, runeRange{0x3a3, 0x3ce},
			runeRange{0x3d0, 0x527},
			runeRange{0x2000, 0x200f}, runeRange{0x2012, 0x2022}, runeRange{0x2026, 0x2026},
			runeRange{0x202a, 0x2030}, runeRange{0x2032, 0x2034}, runeRange{0x2039, 0x203a},
			runeRange{0x203c, 0x203c}, runeRange{0x203e, 0x203e}, runeRange{0x2044, 0x2044},
			runeRange{0x205e, 0x205e}, runeRange{0x206a, 0x206f},
			runeRange{0x20a0, 0x20a9}, runeRange{0x20ab, 0x20b5}, runeRange{0x20b9, 0x20ba},
			runeRange{0x2c60, 0x2c6d}, runeRange{0x2c71, 0x2c77},
		)
	},
}

// BuiltinCharsets returns the names of the built-in charsets, sorted.
func BuiltinCharsets() []string {
	names := make([]string, 0, len(builtinCharsets))
	for name := range builtinCharsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadCharset returns a built-in charset by name, or reads the runes of a
// UTF-8 text file. A byte order mark is honored, text is NFC-normalized
// and control characters such as line breaks are dropped.
func LoadCharset(nameOrPath string) ([]rune, error) {
	if gen, ok := builtinCharsets[nameOrPath]; ok {
		return gen(), nil
	}

	// #nosec G304 -- charset file is provided by the user
	f, err := os.Open(nameOrPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, nameOrPath)
		}
		return nil, err
	}
	defer f.Close()

	dec := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, dec))
	if err != nil {
		return nil, fmt.Errorf("bmfont: read charset %s: %w", nameOrPath, err)
	}

	var runes []rune
	for _, r := range norm.NFC.String(string(data)) {
		if !unicode.IsControl(r) && r != unicode.ReplacementChar {
			runes = append(runes, r)
		}
	}
	if len(runes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCharset, nameOrPath)
	}
	return NormalizeCharset(runes), nil
}

// MustCharset is like LoadCharset but panics on error.
// It is meant for built-in charset names.
func MustCharset(nameOrPath string) []rune {
	runes, err := LoadCharset(nameOrPath)
	if err != nil {
		panic(err)
	}
	return runes
}

// NormalizeCharset returns the runes sorted by code point without duplicates.
func NormalizeCharset(runes []rune) []rune {
	out := slices.Clone(runes)
	slices.Sort(out)
	return slices.Compact(out)
}

func fromRunes(ranges ...runeRange) []rune {
	var runes []rune
	for _, rr := range ranges {
		for r := rr.lo; r <= rr.hi; r++ {
			runes = append(runes, r)
		}
	}
	return NormalizeCharset(runes)
}

// fromCodePage decodes byte ranges of a code page, skipping undefined bytes
// and control characters.
func fromCodePage(cm *charmap.Charmap, ranges ...byteRange) []rune {
	var runes []rune
	for _, br := range ranges {
		for b := int(br.lo); b <= int(br.hi); b++ {
			if r := cm.DecodeByte(byte(b)); r != unicode.ReplacementChar && !unicode.IsControl(r) {
				runes = append(runes, r)
			}
		}
	}
	return NormalizeCharset(runes)
}
