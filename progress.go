package bmfont

import "sync"

// Step is a stage of font generation.
type Step uint8

const (
	// StepGlyph renders the glyph distance fields.
	StepGlyph Step = iota

	// StepPack packs glyphs into atlas pages and writes the page images.
	StepPack

	// StepFontFile writes the .fnt file.
	StepFontFile

	// StepCompress recompresses the page images.
	StepCompress
)

// String returns a human-readable step name.
func (s Step) String() string {
	switch s {
	case StepGlyph:
		return "Generating glyph images"
	case StepPack:
		return "Packing glyphs into atlas"
	case StepFontFile:
		return "Generating BMFont file"
	case StepCompress:
		return "Compressing atlas pages"
	default:
		return "Unknown step"
	}
}

// ProgressFunc receives the progress of a step as a fraction in [0, 1].
// Calls are serialized and, within a step, never decrease.
type ProgressFunc func(step Step, progress float64)

// progressAggregator funnels reports from concurrent workers into one
// ProgressFunc.
type progressAggregator struct {
	mu   sync.Mutex
	fn   ProgressFunc
	step Step
	last float64
	open bool
}

func newProgress(fn ProgressFunc) *progressAggregator {
	return &progressAggregator{fn: fn}
}

// report forwards progress for step. Values lower than the last one
// reported for the same step are dropped.
func (a *progressAggregator) report(step Step, progress float64) {
	if a == nil || a.fn == nil {
		return
	}
	progress = min(max(progress, 0), 1)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.open && step == a.step && progress < a.last {
		return
	}
	a.step, a.last, a.open = step, progress, true
	a.fn(step, progress)
}

// count reports done out of total for step.
func (a *progressAggregator) count(step Step, done, total int) {
	if total <= 0 {
		a.report(step, 1)
		return
	}
	a.report(step, float64(done)/float64(total))
}
