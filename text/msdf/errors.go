package msdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for msdf package.
var (
	// ErrUnsupportedChannels is returned when msdfgen output has a channel
	// count other than 1 or 3.
	ErrUnsupportedChannels = errors.New("msdf: unsupported channel count")

	// ErrEmptyOutput is returned when msdfgen exits successfully but prints nothing.
	ErrEmptyOutput = errors.New("msdf: empty generator output")
)

// DecodeError reports malformed msdfgen text output.
type DecodeError struct {
	Row    int // image row counted from the top, -1 when not row specific
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Row < 0 {
		return "msdf: decode: " + e.Reason
	}
	return fmt.Sprintf("msdf: decode row %d: %s", e.Row, e.Reason)
}

// ProcessError reports a generator process that exited with a non-zero status.
type ProcessError struct {
	Path     string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("msdf: %s exited with status %d", e.Path, e.ExitCode)
	}
	return fmt.Sprintf("msdf: %s exited with status %d: %s", e.Path, e.ExitCode, e.Stderr)
}
