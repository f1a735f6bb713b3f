package fnt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrCountMismatch is returned by Parse when a "chars count" or
// "kernings count" line disagrees with the number of lines that follow.
var ErrCountMismatch = errors.New("fnt: count mismatch")

// ParseError reports a malformed line.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fnt: line %d: %s", e.Line, e.Reason)
}

// ParseFile parses the BMFont text file at path.
func ParseFile(path string) (*Font, error) {
	// #nosec G304 -- path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a BMFont text file. Unknown tags and keys are ignored.
// Declared char and kerning counts are checked against the lines read.
func Parse(r io.Reader) (*Font, error) {
	f := &Font{}
	charsCount, kerningsCount := -1, -1

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tag, fields, err := splitLine(scanner.Text())
		if err != nil {
			return nil, &ParseError{Line: lineNo, Reason: err.Error()}
		}

		v := values{fields: fields}
		switch tag {
		case "":
			continue
		case "info":
			f.Face = fields["face"]
			f.Size = v.int("size")
			f.Bold = v.int("bold") != 0
			f.Italic = v.int("italic") != 0
		case "common":
			f.LineHeight = v.int("lineHeight")
			f.Base = v.int("base")
			f.ScaleW = v.int("scaleW")
			f.ScaleH = v.int("scaleH")
			f.DistanceRange = v.int("distanceRange")
		case "page":
			if id := v.int("id"); v.err == nil && id != len(f.Pages) {
				return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("page id %d out of order", id)}
			}
			f.Pages = append(f.Pages, fields["file"])
		case "chars":
			charsCount = v.int("count")
		case "char":
			f.Chars = append(f.Chars, Char{
				ID:       rune(v.int("id")),
				X:        v.int("x"),
				Y:        v.int("y"),
				Width:    v.int("width"),
				Height:   v.int("height"),
				XOffset:  v.int("xoffset"),
				YOffset:  v.int("yoffset"),
				XAdvance: v.int("xadvance"),
				Page:     v.int("page"),
				Channels: v.int("chnl"),
			})
		case "kernings":
			kerningsCount = v.int("count")
		case "kerning":
			f.Kernings = append(f.Kernings, Kerning{
				First:  rune(v.int("first")),
				Second: rune(v.int("second")),
				Amount: v.int("amount"),
			})
		}
		if v.err != nil {
			return nil, &ParseError{Line: lineNo, Reason: v.err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if charsCount >= 0 && charsCount != len(f.Chars) {
		return f, fmt.Errorf("%w: chars count=%d, %d char lines", ErrCountMismatch, charsCount, len(f.Chars))
	}
	if kerningsCount >= 0 && kerningsCount != len(f.Kernings) {
		return f, fmt.Errorf("%w: kernings count=%d, %d kerning lines", ErrCountMismatch, kerningsCount, len(f.Kernings))
	}
	return f, nil
}

// values reads integer fields, keeping the first error.
type values struct {
	fields map[string]string
	err    error
}

func (v *values) int(key string) int {
	s, ok := v.fields[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil && v.err == nil {
		v.err = fmt.Errorf("field %s: %w", key, err)
	}
	return n
}

// splitLine splits a line into its tag and key=value fields.
// Quoted values may contain spaces.
func splitLine(line string) (string, map[string]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, nil
	}
	tag, rest, _ := strings.Cut(line, " ")
	fields := make(map[string]string)

	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return tag, fields, nil
		}
		key, after, ok := strings.Cut(rest, "=")
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return tag, nil, fmt.Errorf("malformed field %q", rest)
		}
		if strings.HasPrefix(after, "\"") {
			end := strings.IndexByte(after[1:], '"')
			if end < 0 {
				return tag, nil, fmt.Errorf("unterminated quote in %s", key)
			}
			fields[key] = after[1 : end+1]
			rest = after[end+2:]
			continue
		}
		value, next, _ := strings.Cut(after, " ")
		fields[key] = value
		rest = next
	}
}
