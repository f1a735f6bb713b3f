package msdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// maxStderr bounds the stderr text kept in a ProcessError.
const maxStderr = 512

// ProcessGenerator runs the msdfgen executable once per request.
// It is safe for concurrent use; each call spawns its own process.
type ProcessGenerator struct {
	// Path is the msdfgen executable, resolved through PATH when it has
	// no separator.
	Path string

	// Logger receives per-invocation debug output. Nil is silent.
	Logger *slog.Logger
}

// Args returns the msdfgen command line for req, without the executable.
func Args(req Request) []string {
	return []string{
		"-format", "text",
		"-stdout",
		"-size", strconv.Itoa(req.Width), strconv.Itoa(req.Height),
		"-pxrange", strconv.Itoa(req.Range),
		"-defineshape", req.Shape,
		req.Type.String(),
	}
}

// Generate implements FieldGenerator.
func (g *ProcessGenerator) Generate(ctx context.Context, req Request) (*image.NRGBA, error) {
	if req.Type.Channels() == 0 {
		return nil, fmt.Errorf("msdf: cannot generate field type %s", req.Type)
	}

	// #nosec G204 -- the executable is chosen by the user
	cmd := exec.CommandContext(ctx, g.Path, Args(req)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if g.Logger != nil {
		g.Logger.Debug("msdfgen finished",
			"type", req.Type.String(),
			"size", strconv.Itoa(req.Width)+"x"+strconv.Itoa(req.Height),
			"elapsed", time.Since(start),
			"bytes", stdout.Len())
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ProcessError{
				Path:     g.Path,
				ExitCode: exitErr.ExitCode(),
				Stderr:   trimStderr(stderr.String()),
			}
		}
		return nil, fmt.Errorf("msdf: run %s: %w", g.Path, err)
	}

	return DecodeText(stdout.Bytes(), req.Width, req.Height)
}

func trimStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = s[:maxStderr] + "..."
	}
	return s
}
