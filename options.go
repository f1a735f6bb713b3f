package bmfont

import (
	"log/slog"

	"github.com/gogpu/bmfont/text/msdf"
)

// Option configures a Generator during creation.
//
// Example:
//
//	// msdfgen from PATH, silent
//	gen, err := bmfont.NewGenerator(params)
//
//	// custom field generator with progress output
//	gen, err := bmfont.NewGenerator(params,
//		bmfont.WithFieldGenerator(fields),
//		bmfont.WithProgress(func(s bmfont.Step, p float64) { ... }))
type Option func(*generatorOptions)

// generatorOptions holds optional configuration for Generator creation.
type generatorOptions struct {
	fields   msdf.FieldGenerator
	progress ProgressFunc
	logger   *slog.Logger
}

// WithFieldGenerator replaces the msdfgen process with fields.
// The Msdfgen parameter is then not resolved.
func WithFieldGenerator(fields msdf.FieldGenerator) Option {
	return func(o *generatorOptions) {
		o.fields = fields
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *generatorOptions) {
		o.progress = fn
	}
}

// WithLogger sets the logger used by the generator instead of the
// package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *generatorOptions) {
		o.logger = l
	}
}
