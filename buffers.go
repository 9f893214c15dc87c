package swgl

import (
	"encoding/binary"

	"golang.org/x/mobile/exp/f32"
)

// BufferData sizes the buffer bound to target to size bytes and copies
// data into it when data is non-nil. Storage is kept when the size does
// not grow past its capacity. usage is ignored.
func (c *Context) BufferData(target Enum, size int, data []byte, usage Enum) {
	if size < 0 {
		c.invalid("BufferData", ErrInvalidValue, "size %d", size)
		return
	}
	b := c.boundBuffer("BufferData", target)
	if b == nil {
		return
	}
	if b.allocate(size) {
		c.validateVertexArray = true
	}
	if data != nil {
		copy(b.buf, data[:min(len(data), size)])
	}
}

// BufferDataFloat32 stores float vertex data in the buffer bound to
// target, encoded little-endian as vertex attributes expect.
func (c *Context) BufferDataFloat32(target Enum, data []float32, usage Enum) {
	b := f32.Bytes(binary.LittleEndian, data...)
	c.BufferData(target, len(b), b, usage)
}

// BufferSubData copies data into the buffer bound to target at offset.
func (c *Context) BufferSubData(target Enum, offset int, data []byte) {
	b := c.boundBuffer("BufferSubData", target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(b.buf) {
		c.invalid("BufferSubData", ErrInvalidValue, "range %d+%d beyond %d bytes", offset, len(data), len(b.buf))
		return
	}
	copy(b.buf[offset:], data)
}

// MapBuffer returns the storage of the buffer bound to target. The slice
// stays valid until the buffer is resized or deleted.
func (c *Context) MapBuffer(target Enum, access Enum) []byte {
	if b := c.boundBuffer("MapBuffer", target); b != nil {
		return b.buf
	}
	return nil
}

// MapBufferRange returns length bytes of the buffer bound to target from
// offset, or nil if the range is empty or out of bounds.
func (c *Context) MapBufferRange(target Enum, offset, length int, access Enum) []byte {
	b := c.boundBuffer("MapBufferRange", target)
	if b == nil || b.buf == nil || offset < 0 || length <= 0 || offset+length > len(b.buf) {
		return nil
	}
	return b.buf[offset : offset+length : offset+length]
}

// UnmapBuffer reports whether the buffer bound to target has storage.
func (c *Context) UnmapBuffer(target Enum) bool {
	b := c.boundBuffer("UnmapBuffer", target)
	return b != nil && b.buf != nil
}
