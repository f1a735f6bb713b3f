// Package atlas packs glyph bitmaps into fixed-size texture pages and
// writes the pages as PNG files.
package atlas
