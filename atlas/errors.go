package atlas

import "fmt"

// TooLargeError reports an item that cannot fit on an empty page.
type TooLargeError struct {
	Name          string
	Width, Height int

	// MaxWidth and MaxHeight are the usable page size after border padding.
	MaxWidth, MaxHeight int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("atlas: region %q (%dx%d) does not fit a %dx%d page",
		e.Name, e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}

// ConfigError reports an invalid Packer configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid " + e.Field + ": " + e.Reason
}
