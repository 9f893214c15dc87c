package swgl

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/shader"
)

// quadLanes maps the vertices of a quad to the order that forms a convex
// outline. Quads are submitted as triangles indexed 0,1,2 and 2,1,3.
var quadLanes = [4]int{0, 1, 3, 2}

// attribReader reads the attributes of one primitive from the bound vertex
// array. Disabled attributes read as zero.
type attribReader struct {
	va       *VertexArray
	start    int
	instance int
	count    int
}

var _ shader.Attribs = (*attribReader)(nil)

func (a *attribReader) reset(va *VertexArray, start, instance, count int) {
	a.va, a.start, a.instance, a.count = va, start, instance, count
}

// element returns the bytes of attribute loc for vertex i, or nil.
func (a *attribReader) element(loc, i int) (*VertexAttrib, []byte) {
	if loc < 0 || loc >= maxAttribs {
		return nil, nil
	}
	va := &a.va.attribs[loc]
	if !va.enabled || va.size == 0 {
		return nil, nil
	}
	index := a.instance
	if va.divisor == 0 {
		lane := i
		if a.count == 4 {
			lane = quadLanes[i&3]
		}
		index = a.start + lane
	}
	stride := va.stride
	if stride == 0 {
		stride = va.size
	}
	off := stride*index + va.offset
	if index < 0 || off < 0 || off+va.size > len(va.view) {
		return nil, nil
	}
	return va, va.view[off : off+va.size]
}

// component decodes component c of an attribute element as a float.
func component(va *VertexAttrib, b []byte, c int) float32 {
	switch va.typ {
	case FLOAT:
		return math.Float32frombits(binary.LittleEndian.Uint32(b[c*4:]))
	case INT:
		return float32(int32(binary.LittleEndian.Uint32(b[c*4:])))
	case UNSIGNED_INT:
		return float32(binary.LittleEndian.Uint32(b[c*4:]))
	case UNSIGNED_SHORT:
		v := float32(binary.LittleEndian.Uint16(b[c*2:]))
		if va.normalized {
			return v / 0xFFFF
		}
		return v
	case UNSIGNED_BYTE:
		v := float32(b[c])
		if va.normalized {
			return v / 0xFF
		}
		return v
	}
	return 0
}

func (a *attribReader) Float(loc, i int) mgl32.Vec4 {
	va, b := a.element(loc, i)
	if va == nil {
		return mgl32.Vec4{}
	}
	v := mgl32.Vec4{0, 0, 0, 1}
	for c := range min(va.components, 4) {
		v[c] = component(va, b, c)
	}
	return v
}

func (a *attribReader) Int(loc, i int) [4]int32 {
	va, b := a.element(loc, i)
	var v [4]int32
	if va == nil {
		return v
	}
	for c := range min(va.components, 4) {
		switch va.typ {
		case INT, UNSIGNED_INT:
			v[c] = int32(binary.LittleEndian.Uint32(b[c*4:]))
		case UNSIGNED_SHORT:
			v[c] = int32(binary.LittleEndian.Uint16(b[c*2:]))
		case UNSIGNED_BYTE:
			v[c] = int32(b[c])
		case FLOAT:
			v[c] = int32(component(va, b, c))
		}
	}
	return v
}

// bytesPerType returns the size of one attribute component, or 0.
func bytesPerType(typ Enum) int {
	switch typ {
	case INT, UNSIGNED_INT, FLOAT:
		return 4
	case UNSIGNED_SHORT:
		return 2
	case UNSIGNED_BYTE:
		return 1
	}
	return 0
}

// vertexArray returns the bound vertex array, creating the default one
// on demand.
func (c *Context) vertexArray() *VertexArray {
	return c.vertexArrays.Get(c.currentVertexArray)
}

func (c *Context) attrib(op string, index uint32) *VertexAttrib {
	if index >= maxAttribs {
		c.invalid(op, ErrInvalidValue, "attribute %d out of range", index)
		return nil
	}
	v := c.vertexArray()
	if v == nil {
		return nil
	}
	return &v.attribs[index]
}

func (c *Context) setAttribPointer(op string, index uint32, size int32, typ Enum, normalized, integer bool, stride, offset int) {
	va := c.attrib(op, index)
	if va == nil {
		return
	}
	n := bytesPerType(typ)
	if n == 0 {
		c.invalid(op, ErrInvalidEnum, "type %#x", typ)
		return
	}
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		c.invalid(op, ErrInvalidValue, "size %d stride %d offset %d", size, stride, offset)
		return
	}
	va.components = int(size)
	va.size = int(size) * n
	va.typ = typ
	va.normalized = normalized
	va.integer = integer
	va.stride = stride
	va.offset = offset
	va.buffer = c.buffers.Ref(c.arrayBuffer)
	c.validateVertexArray = true
}

// VertexAttribPointer describes a float attribute read from the buffer
// bound to ARRAY_BUFFER. Integer types are converted, scaled to [0,1]
// when normalized.
func (c *Context) VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride, offset int) {
	c.setAttribPointer("VertexAttribPointer", index, size, typ, normalized, false, stride, offset)
}

// VertexAttribIPointer describes an integer attribute read from the buffer
// bound to ARRAY_BUFFER.
func (c *Context) VertexAttribIPointer(index uint32, size int32, typ Enum, stride, offset int) {
	c.setAttribPointer("VertexAttribIPointer", index, size, typ, false, true, stride, offset)
}

// EnableVertexAttribArray enables an attribute of the bound vertex array.
func (c *Context) EnableVertexAttribArray(index uint32) {
	va := c.attrib("EnableVertexAttribArray", index)
	if va == nil {
		return
	}
	if !va.enabled {
		c.validateVertexArray = true
	}
	va.enabled = true
	v := c.vertexArray()
	v.maxAttrib = max(v.maxAttrib, int(index))
}

// DisableVertexAttribArray disables an attribute of the bound vertex array.
func (c *Context) DisableVertexAttribArray(index uint32) {
	va := c.attrib("DisableVertexAttribArray", index)
	if va == nil {
		return
	}
	if va.enabled {
		c.validateVertexArray = true
	}
	va.enabled = false
}

// VertexAttribDivisor sets whether an attribute advances per vertex (0) or
// per instance (1). Other divisors are not supported.
func (c *Context) VertexAttribDivisor(index, divisor uint32) {
	if divisor > 1 {
		c.invalid("VertexAttribDivisor", ErrInvalidValue, "divisor %d", divisor)
		return
	}
	if va := c.attrib("VertexAttribDivisor", index); va != nil {
		va.divisor = int(divisor)
	}
}

// BindVertexArray binds a vertex array. Handle 0 is the default array.
func (c *Context) BindVertexArray(handle uint32) {
	if handle != c.currentVertexArray {
		c.validateVertexArray = true
	}
	c.currentVertexArray = handle
}
