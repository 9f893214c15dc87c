package swgl

import (
	"github.com/gogpu/swgl/internal/geom"
	"github.com/gogpu/swgl/internal/texture"
)

// attachTarget returns the framebuffer bound to target for attachment
// calls, creating its record on first use.
func (c *Context) attachTarget(op string, target Enum) *Framebuffer {
	switch target {
	case FRAMEBUFFER, READ_FRAMEBUFFER, DRAW_FRAMEBUFFER:
	default:
		c.invalid(op, ErrInvalidEnum, "target %#x", target)
		return nil
	}
	if target == FRAMEBUFFER {
		target = DRAW_FRAMEBUFFER
	}
	return c.framebuffers.Get(*c.binding(op, target))
}

// attach sets one attachment of fb.
func (c *Context) attach(op string, fb *Framebuffer, attachment Enum, handle uint32, layer int) {
	switch attachment {
	case COLOR_ATTACHMENT0:
		fb.color = handle
		fb.layer = layer
	case DEPTH_ATTACHMENT:
		if layer != 0 {
			c.invalid(op, ErrInvalidValue, "depth layer %d", layer)
			return
		}
		fb.depth = handle
	default:
		c.invalid(op, ErrInvalidEnum, "attachment %#x", attachment)
	}
}

// FramebufferTexture2D attaches a 2D or rectangle texture.
func (c *Context) FramebufferTexture2D(target, attachment, texTarget Enum, handle uint32, level int32) {
	const op = "FramebufferTexture2D"
	if texTarget != TEXTURE_2D && texTarget != TEXTURE_RECTANGLE {
		c.invalid(op, ErrInvalidEnum, "texture target %#x", texTarget)
		return
	}
	if level != 0 {
		c.invalid(op, ErrInvalidValue, "level %d", level)
		return
	}
	if fb := c.attachTarget(op, target); fb != nil {
		c.attach(op, fb, attachment, handle, 0)
	}
}

// FramebufferTextureLayer attaches one layer of an array texture.
func (c *Context) FramebufferTextureLayer(target, attachment Enum, handle uint32, level, layer int32) {
	const op = "FramebufferTextureLayer"
	if level != 0 || layer < 0 {
		c.invalid(op, ErrInvalidValue, "level %d layer %d", level, layer)
		return
	}
	if fb := c.attachTarget(op, target); fb != nil {
		c.attach(op, fb, attachment, handle, int(layer))
	}
}

// FramebufferRenderbuffer attaches the texture backing a renderbuffer.
func (c *Context) FramebufferRenderbuffer(target, attachment, rbTarget Enum, handle uint32) {
	const op = "FramebufferRenderbuffer"
	if rbTarget != RENDERBUFFER {
		c.invalid(op, ErrInvalidEnum, "renderbuffer target %#x", rbTarget)
		return
	}
	fb := c.attachTarget(op, target)
	rb := c.renderbuffers.Get(handle)
	if fb == nil || rb == nil {
		return
	}
	c.attach(op, fb, attachment, rb.texture, 0)
}

// RenderbufferStorage allocates the texture backing the bound
// renderbuffer. Depth formats are stored with 16 bits.
func (c *Context) RenderbufferStorage(target, internalFormat Enum, width, height int32) {
	const op = "RenderbufferStorage"
	if target != RENDERBUFFER {
		c.invalid(op, ErrInvalidEnum, "target %#x", target)
		return
	}
	rb := c.renderbuffers.Get(c.renderbuffer)
	if rb == nil {
		return
	}
	if rb.texture == 0 {
		rb.texture = c.textures.Insert(nil)
	}
	if texture.Format(internalFormat).IsDepth() {
		internalFormat = DEPTH_COMPONENT16
	}
	t := c.textures.Get(rb.texture)
	if t == nil {
		return
	}
	c.setTexStorage(op, t, internalFormat, int(width), int(height), nil, 0, 0, 0)
}

// CheckFramebufferStatus reports FRAMEBUFFER_COMPLETE when the framebuffer
// bound to target has a color attachment.
func (c *Context) CheckFramebufferStatus(target Enum) Enum {
	fb := c.framebuffer(target)
	if fb == nil || fb.color == 0 {
		return FRAMEBUFFER_UNSUPPORTED
	}
	return FRAMEBUFFER_COMPLETE
}

// InvalidateFramebuffer discards the contents of attachments. An
// invalidated depth attachment is reinitialized by its next clear and a
// pending color clear is dropped.
func (c *Context) InvalidateFramebuffer(target Enum, attachments ...Enum) {
	fb := c.framebuffer(target)
	if fb == nil {
		return
	}
	for _, a := range attachments {
		switch a {
		case DEPTH_ATTACHMENT:
			if t := c.textures.Find(fb.depth); t != nil {
				t.SetCleared(false)
			}
		case COLOR_ATTACHMENT0:
			if t := c.textures.Find(fb.color); t != nil {
				t.DisableDelayedClear()
			}
		}
	}
}

// InitDefaultFramebuffer points framebuffer 0 at a host-owned RGBA8
// surface of the given stride, positioned at (x, y) within the host's
// coordinate space, and sizes a matching 16-bit depth buffer. A nil buf
// allocates owned color storage.
func (c *Context) InitDefaultFramebuffer(x, y, width, height, stride int32, buf []byte) {
	const op = "InitDefaultFramebuffer"
	fb := c.framebuffers.Get(0)
	if fb.color == 0 {
		fb.color = c.textures.Insert(nil)
		fb.layer = 0
	}
	color := c.textures.Get(fb.color)
	c.setTexStorage(op, color, RGBA8, int(width), int(height), buf, int(stride), 0, 0)
	color.Offset = geom.IntPoint{X: x, Y: y}
	if fb.depth == 0 {
		fb.depth = c.textures.Insert(nil)
	}
	d := c.textures.Get(fb.depth)
	c.setTexStorage(op, d, DEPTH_COMPONENT16, int(width), int(height), nil, 0, 0, 0)
	d.Offset = geom.IntPoint{X: x, Y: y}
}

// ColorBuffer describes the color attachment of a framebuffer returned by
// GetColorBuffer. Pixels start at the attached layer.
type ColorBuffer struct {
	Pixels []byte
	Width  int
	Height int
	Stride int
}

// GetColorBuffer returns the color attachment of a framebuffer, resolving
// pending clears first when flush is set. ok is false when the
// framebuffer has no color attachment.
func (c *Context) GetColorBuffer(fbo uint32, flush bool) (cb ColorBuffer, ok bool) {
	fb := c.framebuffers.Find(fbo)
	if fb == nil || fb.color == 0 {
		return cb, false
	}
	t := c.textures.Find(fb.color)
	if t == nil {
		return cb, false
	}
	if flush {
		t.Prepare()
	}
	cb = ColorBuffer{Width: t.Width, Height: t.Height, Stride: t.Stride()}
	if t.Buf() != nil {
		cb.Pixels = t.Buf()[t.PixelOffset(0, 0, fb.layer):]
	}
	return cb, true
}

// LockFramebuffer resolves pending clears of a framebuffer's color
// attachment and locks it for reading by another goroutine. It returns
// the locked buffer; the texture cannot be resized or deleted until
// UnlockFramebuffer.
func (c *Context) LockFramebuffer(fbo uint32) (ColorBuffer, bool) {
	cb, ok := c.GetColorBuffer(fbo, true)
	if !ok {
		return cb, false
	}
	fb := c.framebuffers.Find(fbo)
	c.textures.Find(fb.color).Lock()
	return cb, true
}

// UnlockFramebuffer releases a LockFramebuffer.
func (c *Context) UnlockFramebuffer(fbo uint32) {
	fb := c.framebuffers.Find(fbo)
	if fb == nil {
		return
	}
	t := c.textures.Find(fb.color)
	if t == nil || !t.Locked() {
		c.invalid("UnlockFramebuffer", ErrInvalidOperation, "framebuffer %d is not locked", fbo)
		return
	}
	t.Unlock()
}
