package swgl

import (
	"log/slog"

	"github.com/gogpu/swgl/shader"
)

// ContextOption configures a Context during creation.
//
// Example:
//
//	d := swgl.NewDispatcher()
//	ctx := d.CreateContext(
//	    swgl.WithProgramLoader(programs.Load),
//	    swgl.WithStrict(true),
//	)
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	strict       bool
	delayedClear bool
	loader       shader.Loader
	logger       *slog.Logger
	vendor       string
	renderer     string
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		delayedClear: true,
		vendor:       "gogpu",
		renderer:     "swgl",
	}
}

// WithStrict makes invalid calls panic with an error wrapping one of the
// package sentinels. Without it invalid calls are logged at Warn level
// and ignored.
func WithStrict(strict bool) ContextOption {
	return func(o *contextOptions) {
		o.strict = strict
	}
}

// WithDelayedClear controls whether full-surface clears are deferred until
// each row is first drawn or read. It is enabled by default.
func WithDelayedClear(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.delayedClear = enabled
	}
}

// WithProgramLoader sets the loader that ShaderSourceByName resolves
// program names with.
//
// Example:
//
//	ctx := d.CreateContext(swgl.WithProgramLoader(programs.Load))
func WithProgramLoader(l shader.Loader) ContextOption {
	return func(o *contextOptions) {
		o.loader = l
	}
}

// WithLogger gives the Context its own logger instead of the package
// logger.
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithVendor sets the string reported by GetString(VENDOR).
func WithVendor(vendor string) ContextOption {
	return func(o *contextOptions) {
		o.vendor = vendor
	}
}

// WithRenderer sets the string reported by GetString(RENDERER).
func WithRenderer(renderer string) ContextOption {
	return func(o *contextOptions) {
		o.renderer = renderer
	}
}
