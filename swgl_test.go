package swgl

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/swgl/programs"
)

// newTestContext returns a strict current Context that loads the builtin
// programs. It is destroyed when the test ends.
func newTestContext(t *testing.T, opts ...ContextOption) *Context {
	t.Helper()
	d := NewDispatcher()
	opts = append([]ContextOption{WithStrict(true), WithProgramLoader(programs.Load)}, opts...)
	c := d.CreateContext(opts...)
	if err := d.MakeCurrent(c); err != nil {
		t.Fatalf("MakeCurrent() = %v", err)
	}
	t.Cleanup(func() { d.DestroyContext(c) })
	return c
}

// newColorTarget binds a framebuffer with a w by h RGBA8 color texture
// and sets the viewport to cover it.
func newColorTarget(c *Context, w, h int32) (tex, fbo uint32) {
	tex = c.GenTextures(1)[0]
	c.BindTexture(TEXTURE_2D, tex)
	c.TexStorage2D(TEXTURE_2D, 1, RGBA8, w, h)
	fbo = c.GenFramebuffers(1)[0]
	c.BindFramebuffer(FRAMEBUFFER, fbo)
	c.FramebufferTexture2D(FRAMEBUFFER, COLOR_ATTACHMENT0, TEXTURE_2D, tex, 0)
	c.SetViewport(0, 0, w, h)
	return tex, fbo
}

// useProgram links and uses the builtin program called name.
func useProgram(t *testing.T, c *Context, name string) uint32 {
	t.Helper()
	p := c.CreateProgram()
	for _, typ := range []Enum{VERTEX_SHADER, FRAGMENT_SHADER} {
		s := c.CreateShader(typ)
		c.ShaderSourceByName(s, name)
		c.AttachShader(p, s)
	}
	c.LinkProgram(p)
	if !c.GetLinkStatus(p) {
		t.Fatalf("program %q did not link", name)
	}
	c.UseProgram(p)
	return p
}

func setColor(c *Context, program uint32, r, g, b, a float32) {
	c.Uniform4fv(c.GetUniformLocation(program, "uColor"), []float32{r, g, b, a})
}

// uint16s encodes indices little-endian.
func uint16s(v ...uint16) []byte {
	b := make([]byte, 2*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint16(b[2*i:], x)
	}
	return b
}

// setQuad uploads a quad covering [x0,x1]x[y0,y1] at depth z in
// normalized device coordinates to attribute 0, with an element buffer
// indexing it as two triangles.
func setQuad(c *Context, x0, y0, x1, y1, z float32) {
	if c.arrayBuffer == 0 {
		c.BindBuffer(ARRAY_BUFFER, c.GenBuffers(1)[0])
	}
	c.BufferDataFloat32(ARRAY_BUFFER, []float32{
		x0, y0, z,
		x1, y0, z,
		x0, y1, z,
		x1, y1, z,
	}, STATIC_DRAW)
	c.VertexAttribPointer(0, 3, FLOAT, false, 0, 0)
	c.EnableVertexAttribArray(0)
	if c.vertexArray().elementBuffer == 0 {
		c.BindBuffer(ELEMENT_ARRAY_BUFFER, c.GenBuffers(1)[0])
		c.BufferData(ELEMENT_ARRAY_BUFFER, 12, uint16s(0, 1, 2, 2, 1, 3), STATIC_DRAW)
	}
}

func drawQuad(c *Context) {
	c.DrawElementsInstanced(TRIANGLES, 6, UNSIGNED_SHORT, 0, 1)
}

// readRGBA reads the whole w by h read framebuffer as RGBA bytes.
func readRGBA(c *Context, w, h int32) []byte {
	buf := make([]byte, 4*w*h)
	c.ReadPixels(0, 0, w, h, RGBA, UNSIGNED_BYTE, buf)
	return buf
}

func rgbaAt(buf []byte, w, x, y int) [4]byte {
	return [4]byte(buf[(y*w+x)*4:][:4])
}

// expectPanic runs fn and fails unless it panics with an error wrapping
// sentinel.
func expectPanic(t *testing.T, sentinel error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, sentinel) {
			t.Fatalf("panic = %v, want error wrapping %v", r, sentinel)
		}
	}()
	fn()
}

func near(a, b byte, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}
