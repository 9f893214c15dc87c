package swgl

import (
	"errors"
	"fmt"
)

// Sentinel errors describing invalid calls. GL entry points do not return
// errors; a strict Context panics with an error wrapping one of these, and
// a lenient one logs it and ignores the call.
var (
	// ErrInvalidEnum reports an enumerant the call does not support.
	ErrInvalidEnum = errors.New("swgl: invalid enum")

	// ErrInvalidValue reports an out-of-range argument.
	ErrInvalidValue = errors.New("swgl: invalid value")

	// ErrInvalidOperation reports a call that is not allowed in the current
	// state, such as mismatched formats.
	ErrInvalidOperation = errors.New("swgl: invalid operation")

	// ErrLocked reports an attempt to modify or destroy a locked texture.
	ErrLocked = errors.New("swgl: texture is locked")

	// ErrNoContext reports a Dispatcher call without a current Context.
	ErrNoContext = errors.New("swgl: no current context")

	// ErrForeignContext reports a Context made current on a Dispatcher
	// that did not create it.
	ErrForeignContext = errors.New("swgl: context belongs to another dispatcher")

	// ErrUnsupportedFormat reports a texture format with no GPU equivalent.
	ErrUnsupportedFormat = errors.New("swgl: unsupported format")
)

// invalid reports an invalid call to op. Strict contexts panic; others log
// and the caller abandons the call.
func (c *Context) invalid(op string, sentinel error, format string, args ...any) {
	err := fmt.Errorf("swgl: %s: %w: %s", op, sentinel, fmt.Sprintf(format, args...))
	if c.opts.strict {
		panic(err)
	}
	c.log.Warn("swgl: invalid call ignored", "op", op, "err", err)
}
