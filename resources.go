package swgl

import (
	"github.com/gogpu/swgl/internal/store"
	"github.com/gogpu/swgl/shader"
)

// maxAttribs is the number of vertex attribute slots of a vertex array.
const maxAttribs = 16

// maxTextureUnits is the number of texture units of a Context.
const maxTextureUnits = 16

// Buffer is the record behind a buffer handle.
type Buffer struct {
	buf []byte
	// gen changes whenever buf is replaced, so that vertex attribute views
	// into the old storage are revalidated.
	gen uint32
}

// allocate resizes the buffer to size bytes. Shrinking keeps the existing
// storage. It reports whether the size changed.
func (b *Buffer) allocate(size int) bool {
	if size == len(b.buf) {
		return false
	}
	if size <= cap(b.buf) {
		b.buf = b.buf[:size]
		return true
	}
	b.buf = make([]byte, size)
	b.gen++
	return true
}

// Query is the record behind a query handle.
type Query struct {
	value uint64
}

// Framebuffer is the record behind a framebuffer handle. Attachments are
// texture handles; renderbuffers attach their backing texture.
type Framebuffer struct {
	color uint32
	layer int
	depth uint32
}

// Renderbuffer is the record behind a renderbuffer handle. Its storage is
// an ordinary texture owned by the renderbuffer.
type Renderbuffer struct {
	texture uint32
}

// Shader is the record behind a shader handle. Shader source is never
// compiled; the source names a program known to the Context's loader.
type Shader struct {
	typ  Enum
	name string
}

// Program is the record behind a program handle.
type Program struct {
	impl    shader.Program
	vs      shader.VertexShader
	fs      shader.FragmentShader
	deleted bool
}

// textureUnit holds the texture bound to each target of one unit.
type textureUnit struct {
	tex2D      uint32
	tex3D      uint32
	tex2DArray uint32
	texRect    uint32
}

func (u *textureUnit) unlink(handle uint32) {
	for _, b := range []*uint32{&u.tex2D, &u.tex3D, &u.tex2DArray, &u.texRect} {
		unlink(b, handle)
	}
}

// unlink clears a binding that refers to handle and reports whether it
// did.
func unlink(binding *uint32, handle uint32) bool {
	if *binding != handle {
		return false
	}
	*binding = 0
	return true
}

// VertexAttrib describes how one attribute is read from a buffer.
type VertexAttrib struct {
	// size is the byte size of one element.
	size       int
	components int
	typ        Enum
	normalized bool
	integer    bool
	stride     int
	offset     int
	divisor    int
	enabled    bool
	buffer     store.Ref

	// view is the buffer storage resolved by validate; viewGen is the
	// buffer generation it was taken at.
	view    []byte
	viewGen uint32
}

// VertexArray is the record behind a vertex array handle.
type VertexArray struct {
	attribs   [maxAttribs]VertexAttrib
	maxAttrib int
	// elementBuffer is part of vertex array state, as in GL.
	elementBuffer uint32
}

// validate resolves the storage of every enabled attribute. Attributes
// whose buffer has been deleted read as zero.
func (v *VertexArray) validate(buffers *store.Store[Buffer]) {
	last := -1
	for i := 0; i <= v.maxAttrib && i < maxAttribs; i++ {
		va := &v.attribs[i]
		if !va.enabled {
			continue
		}
		va.view, va.viewGen = nil, 0
		if b := buffers.Resolve(va.buffer); b != nil {
			va.view, va.viewGen = b.buf, b.gen
		}
		last = i
	}
	v.maxAttrib = last
}

// stale reports whether any enabled attribute views storage that has
// since been deleted, replaced or resized.
func (v *VertexArray) stale(buffers *store.Store[Buffer]) bool {
	for i := 0; i <= v.maxAttrib && i < maxAttribs; i++ {
		va := &v.attribs[i]
		if !va.enabled {
			continue
		}
		b := buffers.Resolve(va.buffer)
		if b == nil {
			if va.view != nil {
				return true
			}
			continue
		}
		if b.gen != va.viewGen || len(b.buf) != len(va.view) {
			return true
		}
	}
	return false
}
