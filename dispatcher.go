package swgl

import "fmt"

// Dispatcher creates Contexts and tracks which one is current. It stands
// in for the process-wide current context of a GL library: callers own
// the Dispatcher and pass Contexts explicitly.
//
// A Dispatcher is not safe for concurrent use.
type Dispatcher struct {
	current *Context
}

// NewDispatcher returns a Dispatcher with no current Context.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// CreateContext returns a new Context holding one reference.
func (d *Dispatcher) CreateContext(opts ...ContextOption) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := newContext(d, o)
	c.log.Info("swgl: context created", "strict", o.strict, "delayedClear", o.delayedClear)
	return c
}

// ReferenceContext adds a reference to c.
func (d *Dispatcher) ReferenceContext(c *Context) {
	if c == nil {
		return
	}
	c.refs++
}

// DestroyContext drops a reference to c. The Context is released when the
// last reference is dropped, and stops being current if it was.
func (d *Dispatcher) DestroyContext(c *Context) {
	if c == nil {
		return
	}
	if c.refs <= 0 {
		c.invalid("DestroyContext", ErrInvalidOperation, "context already destroyed")
		return
	}
	c.refs--
	if c.refs > 0 {
		return
	}
	if d.current == c {
		d.current = nil
	}
	c.release()
	c.log.Info("swgl: context destroyed")
}

// MakeCurrent makes c the current Context. A nil c leaves no Context
// current.
func (d *Dispatcher) MakeCurrent(c *Context) error {
	if c != nil {
		if c.d != d {
			return ErrForeignContext
		}
		if c.refs <= 0 {
			return fmt.Errorf("swgl: MakeCurrent: %w: context destroyed", ErrInvalidOperation)
		}
	}
	d.current = c
	return nil
}

// Current returns the current Context, or nil.
func (d *Dispatcher) Current() *Context {
	return d.current
}

// MustCurrent returns the current Context or ErrNoContext.
func (d *Dispatcher) MustCurrent() (*Context, error) {
	if d.current == nil {
		return nil, ErrNoContext
	}
	return d.current, nil
}
