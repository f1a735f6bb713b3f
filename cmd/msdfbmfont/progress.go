package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gogpu/bmfont"
)

const barWidth = 40

// progressBar draws one line per step:
//
//	Generating glyph images        [##########------------------------------]  25 % (0.4 s)
type progressBar struct {
	w       io.Writer
	enabled bool

	step  bmfont.Step
	start time.Time
	open  bool
}

func (b *progressBar) update(step bmfont.Step, p float64) {
	if !b.enabled {
		return
	}
	now := time.Now()
	if !b.open || step != b.step {
		if b.open {
			fmt.Fprintln(b.w)
		}
		b.step, b.start, b.open = step, now, true
	}
	fmt.Fprint(b.w, "\r"+formatBar(step, p, now.Sub(b.start)))
}

// finish ends the current line.
func (b *progressBar) finish() {
	if b.open {
		fmt.Fprintln(b.w)
		b.open = false
	}
}

func formatBar(step bmfont.Step, p float64, elapsed time.Duration) string {
	p = min(max(p, 0), 1)
	filled := int(p * barWidth)
	return fmt.Sprintf("%-30s [%s%s] %3d %% (%.1f s)",
		step.String(),
		strings.Repeat("#", filled),
		strings.Repeat("-", barWidth-filled),
		int(p*100),
		elapsed.Seconds())
}
