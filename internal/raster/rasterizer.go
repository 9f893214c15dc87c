// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/depth"
	"github.com/gogpu/swgl/internal/geom"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/internal/wide"
	"github.com/gogpu/swgl/shader"
)

// maxClipPoints bounds the polygon produced by clipping a quad against
// the near plane and the guard band.
const maxClipPoints = 10

// Rasterizer turns primitives into shaded pixels of one color buffer. The
// caller configures the exported fields before a batch of draws and calls
// Begin once the program is known.
type Rasterizer struct {
	// Color is the render target. Only RGBA8 and R8 are drawable.
	Color *texture.Texture
	// Layer selects the array layer of Color to draw into.
	Layer int

	// Depth enables the depth test when non-nil.
	Depth     *texture.Texture
	DepthFunc depth.Func
	DepthMask bool

	// Viewport is the viewport rectangle in host surface coordinates.
	Viewport geom.IntRect
	// Clip is the scissor-and-viewport rectangle in host surface
	// coordinates.
	Clip geom.IntRect

	// Blending enables BlendKey and clip masks.
	Blending bool
	// BlendKey is the resolved blend state.
	BlendKey blend.Key
	// BlendColor is the constant blend color, splatted across a chunk.
	BlendColor wide.U16x16

	// ShadedRows and ShadedPixels accumulate the size of every non-empty
	// span. ShadedPixels feeds samples-passed queries.
	ShadedRows   int
	ShadedPixels int

	vs      shader.VertexShader
	fs      shader.FragmentShader
	drawer  shader.SpanDrawer
	discard bool
	nv      int

	prim shader.Primitive
	frag shader.Fragment
	span shader.Span
	w    spanWriter

	// Per-primitive state.
	key     blend.Key
	maskBuf []byte
	maskStr int
	maskOff geom.IntPoint
	z       uint16
	screenZ float32
	screenW float32
	persp   bool

	// Per-row interpolation.
	rowX0   int
	rowBase []float32
	rowStep []float32
	rowZ    float32
	rowW    float32
	zStep   float32
	wStep   float32

	cursor      depth.Cursor
	left, right edge
	pts         [maxClipPoints]mgl32.Vec4
	interp      [maxClipPoints][]float32
	clipA       clipBuf
	clipB       clipBuf
	nearest     []byte
}

// Begin binds the shaders of the program about to draw and sizes scratch
// state for its varyings.
func (r *Rasterizer) Begin(vs shader.VertexShader, fs shader.FragmentShader) {
	r.vs, r.fs = vs, fs
	r.drawer, _ = fs.(shader.SpanDrawer)
	r.discard = fs.UsesDiscard()
	nv := vs.NumVaryings()
	if nv == r.nv && r.rowBase != nil {
		return
	}
	r.nv = nv
	for i := range r.prim.Vertices {
		r.prim.Vertices[i].Varyings = make([]float32, nv)
	}
	r.frag.In = make([][4]float32, nv)
	r.span.In = make([]float32, nv)
	r.rowBase = make([]float32, nv)
	r.rowStep = make([]float32, nv)
	r.left.alloc(nv)
	r.right.alloc(nv)
	r.clipA.alloc(nv)
	r.clipB.alloc(nv)
}

// DrawPrimitive runs the vertex shader over n vertices (2 for a line, 3
// for a triangle, 4 for a quad) read from in and rasterizes the result.
// Quads must be convex with vertices in consistent winding order.
// Lines are only drawn when both vertices share one W; a line with
// differing W has no perspective form and is dropped.
func (r *Rasterizer) DrawPrimitive(in shader.Attribs, n int) {
	if r.vs == nil || r.Color == nil || n < 2 || n > 4 {
		return
	}
	r.prim.ClipMask = nil
	r.vs.RunPrimitive(in, n, &r.prim)
	v := &r.prim.Vertices
	if n == 2 {
		// Lines are rasterized as thin quads over vertices 0, 1, 1, 0.
		v[2].Position = v[1].Position
		copy(v[2].Varyings, v[1].Varyings)
		v[3].Position = v[0].Position
		copy(v[3].Varyings, v[0].Varyings)
	}

	w := v[0].Position[3]
	for i := 1; i < max(n, 3); i++ {
		if v[i].Position[3] != w {
			// Perspective clipping needs a polygon, so lines stop here.
			if n > 2 {
				r.drawPerspective(n)
			}
			return
		}
	}
	r.drawFlat(n)
}

// drawFlat rasterizes a primitive whose vertices share one W, so that
// varyings interpolate linearly in screen space and depth is constant.
func (r *Rasterizer) drawFlat(n int) {
	v := &r.prim.Vertices
	w := 1 / v[0].Position[3]
	if isNaNOrInf(w) {
		w = 0
	}
	scale := mgl32.Vec2{float32(r.Viewport.Width()), float32(r.Viewport.Height())}.Mul(0.5)
	origin := r.viewportOrigin()
	nump := max(n, 3)
	if n == 2 {
		nump = 2
	}
	for i := range 4 {
		p := v[i].Position
		r.pts[i] = mgl32.Vec4{
			(p[0]*w+1)*scale[0] + origin[0],
			(p[1]*w+1)*scale[1] + origin[1],
			0, 1,
		}
		r.interp[i] = v[i].Varyings
	}

	clip, ok := r.clipRect()
	if !ok || !clip.overlaps(r.pts[:nump]) {
		return
	}

	screenZ := (v[0].Position[2]*w + 1) * 0.5
	if screenZ < 0 || screenZ > 1 {
		return
	}
	r.persp = false
	r.screenZ, r.screenW = screenZ, w
	r.z = depth.FromFloat(screenZ)

	if nump == 2 {
		p := &r.pts
		if int(p[0][1]+0.5) == int(p[1][1]+0.5) {
			y := 1 + float32(int(p[1][1]+0.5))
			p[2][1], p[3][1] = y, y
			if int(p[0][0]+0.5) == int(p[1][0]+0.5) {
				p[1][0]++
				p[2][0]++
			}
		} else {
			p[2][0]++
			p[3][0]++
		}
		nump = 4
	}
	r.walkQuad(r.pts[:nump], r.interp[:nump], clip)
}

// viewportOrigin returns the viewport origin relative to the color
// buffer.
func (r *Rasterizer) viewportOrigin() mgl32.Vec2 {
	return mgl32.Vec2{
		float32(r.Viewport.X0 - r.Color.Offset.X),
		float32(r.Viewport.Y0 - r.Color.Offset.Y),
	}
}

// depthActive reports whether draws test against the depth buffer.
func (r *Rasterizer) depthActive() bool {
	d := r.Depth
	return d != nil && d.Runs() != nil && d.IsCleared() &&
		d.Width >= r.Color.Width && d.Height >= r.Color.Height
}

func isNaNOrInf(f float32) bool {
	x := float64(f)
	return math.IsNaN(x) || math.IsInf(x, 0)
}
