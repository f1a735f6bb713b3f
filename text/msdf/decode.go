package msdf

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
)

// DecodeText decodes msdfgen "-format text" output into an image.
//
// The output has one line per pixel row, bottom row first. Each line holds
// hex bytes, 1 or 3 per pixel, either separated by whitespace or
// concatenated. A single channel is replicated into R, G and B. Alpha is
// always opaque.
func DecodeText(out []byte, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, &DecodeError{Row: -1, Reason: fmt.Sprintf("invalid size %dx%d", width, height)}
	}

	rows := make([][]byte, 0, height)
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		row, err := decodeHexRow(line)
		if err != nil {
			return nil, &DecodeError{Row: height - 1 - len(rows), Reason: err.Error()}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, &DecodeError{Row: -1, Reason: err.Error()}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyOutput
	}

	channels := len(rows[0]) / width
	if len(rows[0])%width != 0 || (channels != 1 && channels != 3) {
		return nil, fmt.Errorf("%w: %d bytes for %d pixels", ErrUnsupportedChannels, len(rows[0]), width)
	}
	if len(rows) != height {
		return nil, &DecodeError{Row: -1, Reason: fmt.Sprintf("got %d rows, want %d", len(rows), height)}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, row := range rows {
		y := height - 1 - i
		if len(row) != width*channels {
			return nil, &DecodeError{Row: y, Reason: fmt.Sprintf("got %d bytes, want %d", len(row), width*channels)}
		}
		for x := 0; x < width; x++ {
			p := row[x*channels:]
			c := color.NRGBA{R: p[0], G: p[0], B: p[0], A: 0xff}
			if channels == 3 {
				c.G, c.B = p[1], p[2]
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// decodeHexRow strips whitespace from line and hex-decodes the rest.
func decodeHexRow(line []byte) ([]byte, error) {
	digits := make([]byte, 0, len(line))
	for _, c := range line {
		switch c {
		case ' ', '\t', '\r':
		default:
			digits = append(digits, c)
		}
	}
	row := make([]byte, hex.DecodedLen(len(digits)))
	if _, err := hex.Decode(row, digits); err != nil {
		return nil, err
	}
	return row, nil
}
