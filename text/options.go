package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName, // Default parser (ximage)
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// KerningMode selects where Face.Kerning reads pair adjustments from.
type KerningMode uint8

const (
	// KerningShaped shapes each pair with HarfBuzz (go-text/typesetting),
	// which honors both GPOS pair positioning and the legacy 'kern' table.
	KerningShaped KerningMode = iota

	// KerningTable reads the legacy 'kern' table only.
	KerningTable

	// KerningNone disables kerning.
	KerningNone
)

// String returns the mode name.
func (m KerningMode) String() string {
	switch m {
	case KerningShaped:
		return "shaped"
	case KerningTable:
		return "table"
	case KerningNone:
		return "none"
	default:
		return "unknown"
	}
}

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

// faceConfig holds configuration for Face.
type faceConfig struct {
	kerning KerningMode
}

// defaultFaceConfig returns the default face configuration.
func defaultFaceConfig() faceConfig {
	return faceConfig{
		kerning: KerningShaped,
	}
}

// WithKerning sets the kerning source for the face.
func WithKerning(m KerningMode) FaceOption {
	return func(c *faceConfig) {
		c.kerning = m
	}
}

// ParseKerningMode parses a mode name as printed by String.
func ParseKerningMode(s string) (KerningMode, error) {
	switch s {
	case "shaped":
		return KerningShaped, nil
	case "table":
		return KerningTable, nil
	case "none":
		return KerningNone, nil
	}
	return KerningNone, &FontError{Reason: "unknown kerning mode " + s}
}
