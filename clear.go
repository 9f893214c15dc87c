package swgl

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/geom"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/internal/wide"
)

// clearValue is a decoded clear value: a color packed as R, G, B, A bytes
// from the low byte up, or a 16-bit depth.
type clearValue struct {
	color uint32
	depth uint16
}

// packRGBA rounds a normalized color to bytes, packed R first.
func packRGBA(v mgl32.Vec4) uint32 {
	p := wide.F32x4(v).RoundPixel(1)
	var b [4]byte
	for i := range b {
		b[i] = uint8(max(min(int16(p[i]), 255), 0))
	}
	return binary.LittleEndian.Uint32(b[:])
}

// bgra swaps the red and blue bytes of a packed color.
func bgra(c uint32) uint32 {
	return c&0xFF00FF00 | c<<16&0xFF0000 | c>>16&0xFF
}

// decodeClear decodes the clear data of ClearTexSubImage for a texture of
// format f.
func (c *Context) decodeClear(op string, f texture.Format, format, ty Enum, data []byte) (clearValue, bool) {
	v := clearValue{color: 0xFF000000, depth: 0xFFFF}
	if f.IsDepth() {
		if format != DEPTH_COMPONENT {
			c.invalid(op, ErrInvalidEnum, "format %#x for depth texture", format)
			return v, false
		}
		switch {
		case ty == DOUBLE && len(data) >= 8:
			v.depth = uint16(math.Float64frombits(binary.LittleEndian.Uint64(data)) * 0xFFFF)
		case ty == FLOAT && len(data) >= 4:
			v.depth = uint16(math.Float32frombits(binary.LittleEndian.Uint32(data)) * 0xFFFF)
		case ty == UNSIGNED_SHORT && len(data) >= 2:
			v.depth = binary.LittleEndian.Uint16(data)
		default:
			c.invalid(op, ErrInvalidEnum, "type %#x with %d bytes", ty, len(data))
			return v, false
		}
		return v, true
	}
	n := 0
	switch format {
	case RGBA:
		n = 4
	case RGB:
		n = 3
	case RG:
		n = 2
	case RED:
		n = 1
	default:
		c.invalid(op, ErrInvalidEnum, "format %#x", format)
		return v, false
	}
	switch ty {
	case FLOAT:
		if len(data) < 4*n {
			break
		}
		rgba := mgl32.Vec4{0, 0, 0, 1}
		for i := range n {
			rgba[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
		}
		v.color = packRGBA(rgba)
		return v, true
	case UNSIGNED_BYTE:
		if len(data) < n {
			break
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v.color)
		copy(b[:], data[:n])
		v.color = binary.LittleEndian.Uint32(b[:])
		return v, true
	}
	c.invalid(op, ErrInvalidEnum, "type %#x with %d bytes", ty, len(data))
	return v, false
}

// clearTexSubImage clears a region of t given in host surface
// coordinates. Depth textures reset their runs; color textures clear each
// layer, deferring whole-texture clears when delayed clears are enabled.
func (c *Context) clearTexSubImage(op string, t *texture.Texture, x, y, z, w, h, d int32, v clearValue) {
	if t.Locked() {
		c.invalid(op, ErrLocked, "clearing texture")
		return
	}
	layers := int32(max(t.Depth, 1))
	if z < 0 {
		d += z
		z = 0
	}
	if z+d > layers {
		d = layers - z
	}
	if w <= 0 || h <= 0 || d <= 0 {
		return
	}
	scissor := geom.Rect(x, y, x+w, y+h)
	if t.Format.IsDepth() {
		if t.IsCleared() && !scissor.Contains(t.OffsetBounds()) {
			t.FillDepthRuns(v.depth, scissor)
		} else {
			t.InitDepthRuns(v.depth)
		}
		return
	}
	var value uint32
	switch t.Format {
	case texture.FormatRGBA8:
		value = bgra(v.color)
	case texture.FormatR8:
		value = v.color & 0xFF
	case texture.FormatRG8:
		value = v.color & 0xFFFF
	default:
		c.invalid(op, ErrUnsupportedFormat, "clearing %v", t.Format)
		return
	}
	for layer := z; layer < z+d; layer++ {
		t.RequestClear(int(layer), value, scissor, c.opts.delayedClear)
	}
}

// ClearTexSubImage clears a region of a texture to a value given in data.
// Color textures accept RED, RG, RGB or RGBA as FLOAT or UNSIGNED_BYTE;
// depth textures accept DEPTH_COMPONENT as DOUBLE, FLOAT or
// UNSIGNED_SHORT. Multi-byte values are little-endian.
func (c *Context) ClearTexSubImage(handle uint32, level, x, y, z, width, height, depth int32, format, ty Enum, data []byte) {
	const op = "ClearTexSubImage"
	if level != 0 {
		c.invalid(op, ErrInvalidValue, "level %d", level)
		return
	}
	t := c.textures.Get(handle)
	if t == nil {
		return
	}
	v, ok := c.decodeClear(op, t.Format, format, ty, data)
	if !ok {
		return
	}
	c.clearTexSubImage(op, t, x, y, z, width, height, depth, v)
}

// ClearTexImage clears every layer of a texture.
func (c *Context) ClearTexImage(handle uint32, level int32, format, ty Enum, data []byte) {
	t := c.textures.Get(handle)
	if t == nil {
		return
	}
	bb := t.OffsetBounds()
	c.ClearTexSubImage(handle, level, bb.X0, bb.Y0, 0, bb.Width(), bb.Height(), int32(max(t.Depth, 1)), format, ty, data)
}

// scissorFor returns the area of t that Clear affects.
func (c *Context) scissorFor(t *texture.Texture) geom.IntRect {
	if c.scissorTest {
		return c.scissor.Intersection(t.OffsetBounds())
	}
	return t.OffsetBounds()
}

// Clear clears the attachments of the draw framebuffer selected by mask
// to the clear color and depth, limited by the scissor test.
func (c *Context) Clear(mask Enum) {
	fb := c.framebuffer(DRAW_FRAMEBUFFER)
	if fb == nil {
		return
	}
	if mask&COLOR_BUFFER_BIT != 0 && fb.color != 0 {
		if t := c.textures.Find(fb.color); t != nil {
			bb := c.scissorFor(t)
			v := clearValue{color: packRGBA(c.clearColor)}
			c.clearTexSubImage("Clear", t, bb.X0, bb.Y0, int32(fb.layer), bb.Width(), bb.Height(), 1, v)
		}
	}
	if mask&DEPTH_BUFFER_BIT != 0 && fb.depth != 0 {
		if t := c.textures.Find(fb.depth); t != nil {
			bb := c.scissorFor(t)
			v := clearValue{depth: uint16(c.clearDepth * 0xFFFF)}
			c.clearTexSubImage("Clear", t, bb.X0, bb.Y0, 0, bb.Width(), bb.Height(), 1, v)
		}
	}
}

// ClearColorRect clears a rectangle of a framebuffer's color attachment,
// given in host surface coordinates, ignoring the scissor test.
func (c *Context) ClearColorRect(fbo uint32, x, y, width, height int32, r, g, b, a float32) {
	fb := c.framebuffers.Find(fbo)
	if fb == nil || fb.color == 0 {
		return
	}
	t := c.textures.Find(fb.color)
	if t == nil {
		return
	}
	bb := geom.Rect(x, y, x+width, y+height).Intersection(t.OffsetBounds())
	v := clearValue{color: packRGBA(mgl32.Vec4{r, g, b, a})}
	c.clearTexSubImage("ClearColorRect", t, bb.X0, bb.Y0, int32(fb.layer), bb.Width(), bb.Height(), 1, v)
}
