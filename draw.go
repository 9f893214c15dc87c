// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swgl

import (
	"encoding/binary"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/depth"
	"github.com/gogpu/swgl/internal/texture"
)

// indexReader reads element indices of one type from a buffer.
type indexReader struct {
	buf  []byte
	size int
}

func (r indexReader) len() int { return len(r.buf) / r.size }

func (r indexReader) at(i int) uint32 {
	if r.size == 2 {
		return uint32(binary.LittleEndian.Uint16(r.buf[2*i:]))
	}
	return binary.LittleEndian.Uint32(r.buf[4*i:])
}

// depthFunc maps the GL depth function to the rasterizer's.
func depthFunc(fn Enum) depth.Func {
	switch fn {
	case LEQUAL:
		return depth.LessEqual
	case ALWAYS:
		return depth.Always
	}
	return depth.Less
}

// drawTargets resolves the color and depth textures of the draw
// framebuffer for a draw call. The depth texture is nil unless the depth
// test is on and the attachment matches the color buffer.
func (c *Context) drawTargets(op string) (color, depthTex *texture.Texture, layer int, ok bool) {
	fb := c.framebuffer(DRAW_FRAMEBUFFER)
	if fb == nil {
		return nil, nil, 0, false
	}
	color = c.textures.Find(fb.color)
	if color == nil || color.Buf() == nil {
		return nil, nil, 0, false
	}
	if color.Locked() {
		c.invalid(op, ErrLocked, "drawing into texture %d", fb.color)
		return nil, nil, 0, false
	}
	if color.Format != texture.FormatRGBA8 && color.Format != texture.FormatR8 {
		c.invalid(op, ErrUnsupportedFormat, "drawing into %v", color.Format)
		return nil, nil, 0, false
	}
	if color.Format == texture.FormatR8 && c.blend && !blend.SupportsR8(c.blendKey) {
		c.invalid(op, ErrInvalidOperation, "blend %v on an R8 target", c.blendKey)
		return nil, nil, 0, false
	}
	if c.depthTest {
		if t := c.textures.Find(fb.depth); t != nil && t.Runs() != nil {
			if t.Format != texture.FormatDepth16 || t.Width != color.Width ||
				t.Height != color.Height || t.Offset != color.Offset {
				c.invalid(op, ErrInvalidOperation, "depth attachment does not match color attachment")
				return nil, nil, 0, false
			}
			depthTex = t
		}
	}
	return color, depthTex, fb.layer, true
}

// DrawElementsInstanced draws instanceCount instances of count vertices.
//
// With UNSIGNED_SHORT or UNSIGNED_INT indices, read from the element
// buffer at byte offset, only TRIANGLES are supported and triangles must
// index consecutive vertices. A triangle indexed i, i+1, i+2 followed by
// i+2, i+1, i+3 is drawn as one quad. Other triangles are skipped.
//
// With index type NONE no element buffer is used: TRIANGLES or LINES are
// drawn from consecutive vertices starting at vertex offset.
func (c *Context) DrawElementsInstanced(mode Enum, count int32, ty Enum, offset int, instanceCount int32) {
	const op = "DrawElementsInstanced"
	if offset < 0 || count <= 0 || instanceCount <= 0 {
		return
	}
	p := c.currentImpl()
	if p == nil || p.vs == nil || p.fs == nil {
		return
	}
	color, depthTex, layer, ok := c.drawTargets(op)
	if !ok {
		return
	}
	va := c.vertexArray()
	if va == nil {
		return
	}
	if c.validateVertexArray || va.stale(c.buffers) {
		c.validateVertexArray = false
		va.validate(c.buffers)
	}

	r := &c.raster
	r.Color, r.Layer, r.Depth = color, layer, depthTex
	r.DepthFunc = depthFunc(c.depthFunc)
	r.DepthMask = c.depthMask
	r.Viewport = c.viewport
	r.Clip = c.viewport
	if c.scissorTest {
		r.Clip = c.viewport.Intersection(c.scissor)
	}
	r.Blending = c.blend
	r.BlendKey = c.blendKey
	r.BlendColor = c.blendColor
	r.ShadedRows, r.ShadedPixels = 0, 0
	r.Begin(p.vs, p.fs)
	p.impl.InitBatch(unitSamplers{c})

	switch ty {
	case UNSIGNED_SHORT, UNSIGNED_INT:
		if mode != TRIANGLES {
			c.invalid(op, ErrInvalidEnum, "mode %#x with indices", mode)
			return
		}
		size := 2
		if ty == UNSIGNED_INT {
			size = 4
		}
		c.drawElements(va, int(count), int(instanceCount), offset, size)
	case NONE:
		step := 3
		switch mode {
		case TRIANGLES:
		case LINES:
			step = 2
		default:
			c.invalid(op, ErrInvalidEnum, "mode %#x", mode)
			return
		}
		for instance := range int(instanceCount) {
			for i := 0; i+step <= int(count); i += step {
				c.attribs.reset(va, offset+i, instance, step)
				r.DrawPrimitive(&c.attribs, step)
			}
		}
	default:
		c.invalid(op, ErrInvalidEnum, "index type %#x", ty)
		return
	}

	if c.samplesPassedQuery != 0 {
		if q := c.queries.Get(c.samplesPassedQuery); q != nil {
			q.value += uint64(r.ShadedPixels)
		}
	}
	c.log.Debug("swgl: draw", "program", p.impl.Name(), "instances", instanceCount,
		"pixels", r.ShadedPixels, "rows", r.ShadedRows)
}

// drawElements draws indexed triangles and quads.
func (c *Context) drawElements(va *VertexArray, count, instances, offset, size int) {
	b := c.buffers.Find(va.elementBuffer)
	if b == nil || b.buf == nil || offset >= len(b.buf) {
		return
	}
	if offset%size != 0 {
		c.invalid("DrawElementsInstanced", ErrInvalidValue, "offset %d not aligned to index size", offset)
		return
	}
	idx := indexReader{buf: b.buf[offset:], size: size}
	count = min(count, idx.len())
	r := &c.raster
	draw := func(start, instance, n int) {
		c.attribs.reset(va, start, instance, n)
		r.DrawPrimitive(&c.attribs, n)
	}

	if count == 6 {
		i0 := idx.at(0)
		if idx.at(1) == i0+1 && idx.at(2) == i0+2 && idx.at(5) == i0+3 {
			for instance := range instances {
				draw(int(i0), instance, 4)
			}
			return
		}
	}
	for instance := range instances {
		for i := 0; i+3 <= count; i += 3 {
			i0 := idx.at(i)
			if idx.at(i+1) != i0+1 || idx.at(i+2) != i0+2 {
				continue
			}
			if i+6 <= count && idx.at(i+5) == i0+3 {
				draw(int(i0), instance, 4)
				i += 3
				continue
			}
			draw(int(i0), instance, 3)
		}
	}
}

// Finish completes all drawing. Drawing is synchronous, so there is
// nothing to wait for.
func (c *Context) Finish() {}

// Flush is a no-op for the same reason.
func (c *Context) Flush() {}
