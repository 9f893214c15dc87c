// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swgl

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/geom"
	"github.com/gogpu/swgl/internal/raster"
	"github.com/gogpu/swgl/internal/store"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/internal/wide"
)

// Context holds the GL state and every object created through it. All
// entry points are methods on Context; the Dispatcher only tracks which
// Context is current.
//
// A Context is not safe for concurrent use. Textures locked with
// LockFramebuffer may be read from other goroutines while locked.
type Context struct {
	d    *Dispatcher
	opts contextOptions
	log  *slog.Logger
	refs int

	queries       *store.Store[Query]
	buffers       *store.Store[Buffer]
	textures      *store.Store[texture.Texture]
	vertexArrays  *store.Store[VertexArray]
	framebuffers  *store.Store[Framebuffer]
	renderbuffers *store.Store[Renderbuffer]
	shaders       *store.Store[Shader]
	programs      *store.Store[Program]

	viewport geom.IntRect

	blend      bool
	blendState blend.State
	blendKey   blend.Key
	blendColor wide.U16x16

	depthTest bool
	depthFunc Enum
	depthMask bool

	scissorTest bool
	scissor     geom.IntRect

	clearColor mgl32.Vec4
	clearDepth float64

	units      [maxTextureUnits]textureUnit
	activeUnit int

	currentProgram      uint32
	currentVertexArray  uint32
	validateVertexArray bool

	arrayBuffer        uint32
	pixelPackBuffer    uint32
	pixelUnpackBuffer  uint32
	uniformBuffer      uint32
	timeElapsedQuery   uint32
	samplesPassedQuery uint32
	renderbuffer       uint32
	drawFramebuffer    uint32
	readFramebuffer    uint32
	unknownBinding     uint32

	unpackRowLength int

	raster  raster.Rasterizer
	attribs attribReader
}

func newContext(d *Dispatcher, opts contextOptions) *Context {
	c := &Context{
		d:          d,
		opts:       opts,
		log:        opts.logger,
		refs:       1,
		blendState: blend.DefaultState,
		depthFunc:  LESS,
		depthMask:  true,
		clearDepth: 1,

		validateVertexArray: true,
	}
	if c.log == nil {
		c.log = Logger()
	}
	c.queries = store.New[Query](nil)
	c.buffers = store.New[Buffer](nil)
	c.textures = store.New[texture.Texture](nil)
	c.vertexArrays = store.New[VertexArray](nil)
	c.framebuffers = store.New[Framebuffer](nil)
	c.renderbuffers = store.New(func(_ uint32, rb *Renderbuffer) {
		c.detachTexture(rb.texture)
		c.deleteTexture(rb.texture)
	})
	c.shaders = store.New[Shader](nil)
	c.programs = store.New[Program](nil)
	return c
}

// binding returns the handle slot for a binding target. Unknown targets
// are reported and return a scratch slot.
func (c *Context) binding(op string, target Enum) *uint32 {
	switch target {
	case PIXEL_PACK_BUFFER:
		return &c.pixelPackBuffer
	case PIXEL_UNPACK_BUFFER:
		return &c.pixelUnpackBuffer
	case ARRAY_BUFFER:
		return &c.arrayBuffer
	case UNIFORM_BUFFER:
		return &c.uniformBuffer
	case ELEMENT_ARRAY_BUFFER:
		if v := c.vertexArray(); v != nil {
			return &v.elementBuffer
		}
	case TEXTURE_2D:
		return &c.units[c.activeUnit].tex2D
	case TEXTURE_3D:
		return &c.units[c.activeUnit].tex3D
	case TEXTURE_2D_ARRAY:
		return &c.units[c.activeUnit].tex2DArray
	case TEXTURE_RECTANGLE:
		return &c.units[c.activeUnit].texRect
	case TIME_ELAPSED:
		return &c.timeElapsedQuery
	case SAMPLES_PASSED:
		return &c.samplesPassedQuery
	case RENDERBUFFER:
		return &c.renderbuffer
	case DRAW_FRAMEBUFFER, FRAMEBUFFER:
		return &c.drawFramebuffer
	case READ_FRAMEBUFFER:
		return &c.readFramebuffer
	default:
		c.invalid(op, ErrInvalidEnum, "binding target %#x", target)
	}
	c.unknownBinding = 0
	return &c.unknownBinding
}

// boundTexture returns the texture bound to target on the active unit.
func (c *Context) boundTexture(op string, target Enum) (uint32, *texture.Texture) {
	h := *c.binding(op, target)
	return h, c.textures.Get(h)
}

// boundBuffer returns the buffer bound to target.
func (c *Context) boundBuffer(op string, target Enum) *Buffer {
	return c.buffers.Get(*c.binding(op, target))
}

// framebuffer returns the framebuffer bound to target, or nil if that
// handle holds no framebuffer. FRAMEBUFFER selects the draw binding.
func (c *Context) framebuffer(target Enum) *Framebuffer {
	if target == FRAMEBUFFER {
		target = DRAW_FRAMEBUFFER
	}
	return c.framebuffers.Find(*c.binding("framebuffer", target))
}

// applyScissor clips bb, given relative to origin, to the scissor rectangle
// when the scissor test is enabled.
func (c *Context) applyScissor(bb geom.IntRect, origin geom.IntPoint) geom.IntRect {
	if !c.scissorTest {
		return bb
	}
	return bb.Intersection(c.scissor.Offset(-origin.X, -origin.Y))
}

// release drops every object owned by the Context. It is called when the
// last reference is dropped.
func (c *Context) release() {
	for _, t := range c.textures.All() {
		if t.Locked() {
			c.log.Warn("swgl: context destroyed with locked texture")
		}
	}
	c.renderbuffers.Clear()
	c.framebuffers.Clear()
	c.textures.Clear()
	c.buffers.Clear()
	c.vertexArrays.Clear()
	c.programs.Clear()
	c.shaders.Clear()
	c.queries.Clear()
}
