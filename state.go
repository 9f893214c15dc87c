package swgl

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/geom"
	"github.com/gogpu/swgl/internal/wide"
)

// Enable turns on BLEND, DEPTH_TEST or SCISSOR_TEST.
func (c *Context) Enable(capability Enum) { c.setCapability("Enable", capability, true) }

// Disable turns off BLEND, DEPTH_TEST or SCISSOR_TEST.
func (c *Context) Disable(capability Enum) { c.setCapability("Disable", capability, false) }

func (c *Context) setCapability(op string, capability Enum, on bool) {
	switch capability {
	case BLEND:
		c.blend = on
	case DEPTH_TEST:
		c.depthTest = on
	case SCISSOR_TEST:
		c.scissorTest = on
	default:
		c.invalid(op, ErrInvalidEnum, "capability %#x", capability)
	}
}

// IsEnabled reports whether a capability is on.
func (c *Context) IsEnabled(capability Enum) bool {
	switch capability {
	case BLEND:
		return c.blend
	case DEPTH_TEST:
		return c.depthTest
	case SCISSOR_TEST:
		return c.scissorTest
	}
	c.invalid("IsEnabled", ErrInvalidEnum, "capability %#x", capability)
	return false
}

// BlendFunc sets the source and destination factors for color and alpha.
func (c *Context) BlendFunc(src, dst Enum) {
	c.BlendFuncSeparate(src, dst, src, dst)
}

// BlendFuncSeparate sets separate color and alpha blend factors. Alpha
// factors equivalent to their color counterparts are folded so that the
// state resolves to the simpler blend mode.
func (c *Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	s := c.blendState
	s.SrcRGB = blend.Factor(srcRGB)
	s.DstRGB = blend.Factor(dstRGB)
	s.SrcAlpha = blend.RemapAlpha(s.SrcRGB, blend.Factor(srcAlpha))
	s.DstAlpha = blend.RemapAlpha(s.DstRGB, blend.Factor(dstAlpha))
	c.setBlendState("BlendFuncSeparate", s)
}

// BlendEquation selects FUNC_ADD, MIN, MAX or one of the advanced KHR
// equations.
func (c *Context) BlendEquation(mode Enum) {
	if !blend.ValidEquation(blend.Equation(mode)) {
		c.invalid("BlendEquation", ErrInvalidEnum, "equation %#x", mode)
		return
	}
	if blend.Equation(mode) == c.blendState.Equation {
		return
	}
	s := c.blendState
	s.Equation = blend.Equation(mode)
	c.setBlendState("BlendEquation", s)
}

// setBlendState stores s and derives its blend key. An unsupported
// combination is reported and keeps the previous key.
func (c *Context) setBlendState(op string, s blend.State) {
	c.blendState = s
	key, err := blend.Derive(s)
	if err != nil {
		c.invalid(op, ErrInvalidOperation, "%v", err)
		return
	}
	c.blendKey = key
}

// BlendColor sets the constant color used by CONSTANT_COLOR factors.
func (c *Context) BlendColor(r, g, b, a float32) {
	v := wide.F32x4{clamp01(b), clamp01(g), clamp01(r), clamp01(a)}
	c.blendColor = wide.SplatPixel(v.RoundPixel(1))
}

func clamp01(v float32) float32 { return mgl32.Clamp(v, 0, 1) }

// DepthMask enables or disables depth writes.
func (c *Context) DepthMask(flag bool) { c.depthMask = flag }

// DepthFunc selects the depth comparison. LESS, LEQUAL and ALWAYS are
// supported.
func (c *Context) DepthFunc(fn Enum) {
	switch fn {
	case LESS, LEQUAL, ALWAYS:
		c.depthFunc = fn
	default:
		c.invalid("DepthFunc", ErrInvalidEnum, "depth func %#x", fn)
	}
}

// SetViewport sets the viewport in host surface coordinates.
func (c *Context) SetViewport(x, y, width, height int32) {
	c.viewport = geom.Rect(x, y, x+width, y+height)
}

// SetScissor sets the scissor rectangle in host surface coordinates.
func (c *Context) SetScissor(x, y, width, height int32) {
	c.scissor = geom.Rect(x, y, x+width, y+height)
}

// ClearColor sets the color written by Clear.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = mgl32.Vec4{r, g, b, a}
}

// ClearDepth sets the depth written by Clear.
func (c *Context) ClearDepth(d float64) { c.clearDepth = d }

// ActiveTexture selects the texture unit that BindTexture and
// TexParameteri operate on.
func (c *Context) ActiveTexture(unit Enum) {
	if unit < TEXTURE0 || unit >= TEXTURE0+maxTextureUnits {
		c.invalid("ActiveTexture", ErrInvalidEnum, "texture unit %#x", unit)
		return
	}
	c.activeUnit = int(unit - TEXTURE0)
}

// PixelStorei sets unpack parameters. Only an alignment of 1 is
// supported.
func (c *Context) PixelStorei(name Enum, param int32) {
	switch name {
	case UNPACK_ALIGNMENT, PACK_ALIGNMENT:
		if param != 1 {
			c.invalid("PixelStorei", ErrInvalidValue, "alignment %d", param)
		}
	case UNPACK_ROW_LENGTH:
		if param < 0 {
			c.invalid("PixelStorei", ErrInvalidValue, "row length %d", param)
			return
		}
		c.unpackRowLength = int(param)
	default:
		c.invalid("PixelStorei", ErrInvalidEnum, "parameter %#x", name)
	}
}

// BindTexture binds a texture to a target of the active unit.
func (c *Context) BindTexture(target Enum, handle uint32) {
	*c.binding("BindTexture", target) = handle
}

// BindBuffer binds a buffer to a target. ELEMENT_ARRAY_BUFFER is part of
// the bound vertex array.
func (c *Context) BindBuffer(target Enum, handle uint32) {
	*c.binding("BindBuffer", target) = handle
}

// BindFramebuffer binds a framebuffer. FRAMEBUFFER sets both the read and
// draw bindings.
func (c *Context) BindFramebuffer(target Enum, handle uint32) {
	switch target {
	case FRAMEBUFFER:
		c.readFramebuffer = handle
		c.drawFramebuffer = handle
	case READ_FRAMEBUFFER, DRAW_FRAMEBUFFER:
		*c.binding("BindFramebuffer", target) = handle
	default:
		c.invalid("BindFramebuffer", ErrInvalidEnum, "target %#x", target)
	}
}

// BindRenderbuffer binds a renderbuffer.
func (c *Context) BindRenderbuffer(target Enum, handle uint32) {
	if target != RENDERBUFFER {
		c.invalid("BindRenderbuffer", ErrInvalidEnum, "target %#x", target)
		return
	}
	c.renderbuffer = handle
}
