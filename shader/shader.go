// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader defines the contract between the rasterizer and the
// programs it runs.
//
// A Program pairs a VertexShader, run once per primitive, with a
// FragmentShader, run once per chunk of four horizontally adjacent pixels.
// Programs are plain Go values; swgl never compiles shader source. A
// Context obtains programs by name from a Loader.
//
// Fragment shaders may additionally implement SpanDrawer to commit whole
// runs of pixels at once (solid fills, texture copies, gradients) through
// a SpanWriter, bypassing per-chunk shading.
package shader

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/sampler"
)

// MaxVaryings is the largest number of interpolated floats a vertex
// shader may emit per vertex.
const MaxVaryings = 64

// Attribs gives a vertex shader the attributes of the vertices of the
// primitive being drawn.
type Attribs interface {
	// Float returns attribute loc of vertex i, with missing components
	// taken from (0, 0, 0, 1). Integer attributes are converted, and
	// normalized ones scaled to [0,1] or [-1,1].
	Float(loc, i int) mgl32.Vec4
	// Int returns an integer attribute of vertex i.
	Int(loc, i int) [4]int32
}

// Vertex is one transformed vertex.
type Vertex struct {
	// Position is the clip-space position.
	Position mgl32.Vec4
	// Varyings holds the interpolants, NumVaryings long.
	Varyings []float32
}

// ClipMask restricts drawing to the coverage of an R8 mask texture.
// Offset positions the mask relative to the viewport origin; Origin and
// Size bound the part of the mask that may be sampled, relative to the
// mask itself.
type ClipMask struct {
	Mask   *sampler.Sampler
	Offset mgl32.Vec2
	Origin mgl32.Vec2
	Size   mgl32.Vec2
}

// Primitive is the vertex shader output for one triangle, quad or line.
type Primitive struct {
	Vertices [4]Vertex
	// ClipMask is set by the vertex shader when the primitive is masked.
	ClipMask *ClipMask
}

// VertexShader transforms the vertices of one primitive at a time.
type VertexShader interface {
	// NumVaryings returns the number of interpolated floats per vertex.
	NumVaryings() int
	// RunPrimitive writes n vertices into p. Vertex i reads its
	// attributes from in with index i.
	RunPrimitive(in Attribs, n int, p *Primitive)
}

// Fragment is a chunk of four horizontally adjacent pixels.
type Fragment struct {
	// X and Y locate the first pixel of the chunk in the color buffer.
	X, Y int
	// Z and W are gl_FragCoord.z and gl_FragCoord.w of each pixel.
	Z, W [4]float32
	// In holds the perspective-corrected varyings, In[v][pixel].
	In [][4]float32

	// Color receives the premultiplied RGBA output of each pixel. R8
	// targets use only the red component.
	Color [4]mgl32.Vec4
	// Secondary receives the second output used by dual-source blending.
	Secondary [4]mgl32.Vec4
	// Discarded marks pixels the shader dropped. It is only honoured when
	// the shader reports UsesDiscard.
	Discarded [4]bool
}

// Varying returns varying v of pixel i.
func (f *Fragment) Varying(v, i int) float32 { return f.In[v][i] }

// Vec2 gathers varyings v and v+1 of pixel i.
func (f *Fragment) Vec2(v, i int) mgl32.Vec2 {
	return mgl32.Vec2{f.In[v][i], f.In[v+1][i]}
}

// Vec4 gathers varyings v through v+3 of pixel i.
func (f *Fragment) Vec4(v, i int) mgl32.Vec4 {
	return mgl32.Vec4{f.In[v][i], f.In[v+1][i], f.In[v+2][i], f.In[v+3][i]}
}

// FragmentShader shades chunks of pixels.
type FragmentShader interface {
	// Run shades one chunk. Color must be set for every pixel.
	Run(f *Fragment)
	// UsesDiscard reports whether Run may discard pixels. Discard forces
	// the slower per-pixel depth path.
	UsesDiscard() bool
}

// Span describes a horizontal run of pixels handed to a SpanDrawer.
type Span struct {
	// X and Y locate the first pixel.
	X, Y int
	// In holds the varyings at the center of the first pixel and Step
	// their change per pixel.
	In, Step []float32
	// Z and W are constant across a span offered to a SpanDrawer.
	Z, W float32
}

// Varying returns varying v at pixel offset i of the span.
func (s *Span) Varying(v int, i float32) float32 { return s.In[v] + s.Step[v]*i }

// Vec2 returns varyings v and v+1 at the first pixel.
func (s *Span) Vec2(v int) mgl32.Vec2 { return mgl32.Vec2{s.In[v], s.In[v+1]} }

// Vec2Step returns the per-pixel step of varyings v and v+1.
func (s *Span) Vec2Step(v int) mgl32.Vec2 { return mgl32.Vec2{s.Step[v], s.Step[v+1]} }

// Vec4 returns varyings v through v+3 at the first pixel.
func (s *Span) Vec4(v int) mgl32.Vec4 {
	return mgl32.Vec4{s.In[v], s.In[v+1], s.In[v+2], s.In[v+3]}
}

// SpanDrawer is implemented by fragment shaders with a whole-span fast
// path. DrawSpan may commit any prefix of the span through w; pixels it
// leaves uncommitted are shaded chunk by chunk with Run. DrawSpan is only
// offered spans without per-pixel depth or discard.
type SpanDrawer interface {
	DrawSpan(s *Span, w SpanWriter)
}

// Target identifies the color buffer layout a SpanWriter writes.
type Target uint8

const (
	TargetRGBA8 Target = iota
	TargetR8
)

// NoTint leaves committed colors unmodulated.
var NoTint = mgl32.Vec4{1, 1, 1, 1}

// SpanWriter commits pixels of a span to the color buffer, blending when
// blending is enabled. Commits consume pixels from the front of the span.
// Methods that consume the whole remainder are no-ops for layouts they do
// not support, leaving the pixels to the fragment shader.
type SpanWriter interface {
	// Target returns the color buffer layout.
	Target() Target
	// Remaining returns the number of uncommitted pixels.
	Remaining() int
	// CommitSolid fills the remainder with one premultiplied color.
	CommitSolid(c mgl32.Vec4)
	// CommitChunk commits up to four pixels of premultiplied colors.
	CommitChunk(c [4]mgl32.Vec4)
	// CommitTextureLinear fills the remainder with bilinear samples of s
	// starting at uv and advancing by step per pixel, modulated by tint.
	CommitTextureLinear(s *sampler.Sampler, uv, step mgl32.Vec2, layer float32, tint mgl32.Vec4)
	// CommitTextureNearest fills the remainder with a 1:1 copy of a row
	// of s starting at uv, clamped to uvRect, modulated by tint.
	CommitTextureNearest(s *sampler.Sampler, uv mgl32.Vec2, uvRect mgl32.Vec4, layer float32, tint mgl32.Vec4)
	// CommitGradient fills the remainder from the gradient table at
	// address, starting at entry and advancing by step per pixel.
	CommitGradient(s *sampler.Sampler, address int, entry, step float32, tint mgl32.Vec4)
	// CommitYUV fills the remainder with converted samples of a planar
	// YUV surface. steps gives the per-pixel UV step of each plane.
	CommitYUV(cs sampler.ColorSpace, rescale int, planes []sampler.Plane, steps []mgl32.Vec2, tint mgl32.Vec4)
}

// TextureUnits resolves a texture unit to a sampler when a draw starts.
type TextureUnits interface {
	Sampler(unit int, kind sampler.Kind) *sampler.Sampler
}

// Program is a linked vertex and fragment shader pair with its uniform
// and attribute interface.
type Program interface {
	// Name identifies the program to loaders and logs.
	Name() string
	VertexShader() VertexShader
	FragmentShader() FragmentShader

	// AttribLocation returns the location of a named attribute, or -1.
	AttribLocation(name string) int
	// BindAttribLocation assigns a location before linking.
	BindAttribLocation(name string, loc int)
	// UniformLocation returns the location of a named uniform, or -1.
	UniformLocation(name string) int
	// SetUniformInt sets an integer uniform, typically a sampler unit.
	SetUniformInt(loc int, v int32)
	// SetUniformVec4 sets a vec4 uniform.
	SetUniformVec4(loc int, v mgl32.Vec4)
	// SetUniformMat4 sets a mat4 uniform.
	SetUniformMat4(loc int, m mgl32.Mat4)

	// InitBatch is called before each draw to resolve sampler uniforms.
	InitBatch(units TextureUnits)
}

// Loader returns a new instance of the program with the given name, or
// false if the name is unknown.
type Loader func(name string) (Program, bool)
