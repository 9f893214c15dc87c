package swgl

import (
	"errors"
	"testing"
)

func TestDispatcher_MakeCurrent(t *testing.T) {
	d := NewDispatcher()
	if _, err := d.MustCurrent(); !errors.Is(err, ErrNoContext) {
		t.Fatalf("MustCurrent() error = %v, want ErrNoContext", err)
	}

	c := d.CreateContext()
	if err := d.MakeCurrent(c); err != nil {
		t.Fatalf("MakeCurrent() = %v", err)
	}
	if got, err := d.MustCurrent(); err != nil || got != c {
		t.Fatalf("MustCurrent() = %p, %v", got, err)
	}
	if err := d.MakeCurrent(nil); err != nil {
		t.Fatalf("MakeCurrent(nil) = %v", err)
	}
	if d.Current() != nil {
		t.Error("Current() != nil after MakeCurrent(nil)")
	}
	d.DestroyContext(c)
}

func TestDispatcher_MakeCurrentErrors(t *testing.T) {
	d, other := NewDispatcher(), NewDispatcher()
	foreign := other.CreateContext()
	defer other.DestroyContext(foreign)

	destroyed := d.CreateContext()
	d.DestroyContext(destroyed)

	tests := []struct {
		name string
		c    *Context
		want error
	}{
		{"foreign", foreign, ErrForeignContext},
		{"destroyed", destroyed, ErrInvalidOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.MakeCurrent(tt.c); !errors.Is(err, tt.want) {
				t.Errorf("MakeCurrent() = %v, want %v", err, tt.want)
			}
			if d.Current() != nil {
				t.Error("failed MakeCurrent changed the current context")
			}
		})
	}
}

func TestDispatcher_ReferenceCounting(t *testing.T) {
	d := NewDispatcher()
	c := d.CreateContext()
	d.ReferenceContext(c)
	if err := d.MakeCurrent(c); err != nil {
		t.Fatal(err)
	}
	tex := c.GenTextures(1)[0]
	c.BindTexture(TEXTURE_2D, tex)
	c.TexStorage2D(TEXTURE_2D, 1, RGBA8, 4, 4)

	d.DestroyContext(c)
	if d.Current() != c {
		t.Fatal("context released while still referenced")
	}
	if c.textures.Find(tex) == nil {
		t.Fatal("texture released while context referenced")
	}

	d.DestroyContext(c)
	if d.Current() != nil {
		t.Error("released context still current")
	}
	if c.textures.Find(tex) != nil {
		t.Error("texture survived context release")
	}
}

func TestDispatcher_DestroyTwice(t *testing.T) {
	d := NewDispatcher()
	c := d.CreateContext(WithStrict(true))
	d.DestroyContext(c)
	expectPanic(t, ErrInvalidOperation, func() { d.DestroyContext(c) })

	lenient := d.CreateContext()
	d.DestroyContext(lenient)
	d.DestroyContext(lenient)
}

func TestDispatcher_NilContext(t *testing.T) {
	d := NewDispatcher()
	d.ReferenceContext(nil)
	d.DestroyContext(nil)
	if d.Current() != nil {
		t.Error("Current() != nil")
	}
}

func TestDispatcher_ContextsAreIndependent(t *testing.T) {
	d := NewDispatcher()
	a, b := d.CreateContext(), d.CreateContext()
	defer d.DestroyContext(a)
	defer d.DestroyContext(b)

	ta := a.GenTextures(1)[0]
	if b.textures.Find(ta) != nil {
		t.Error("texture visible in another context")
	}
	a.Enable(BLEND)
	if b.IsEnabled(BLEND) {
		t.Error("capability shared between contexts")
	}
}
