// Package programs provides builtin shader programs for swgl.
//
// Every program transforms its aPosition attribute by the uTransform
// matrix (identity unless set) and shades premultiplied colors. Load
// returns a fresh instance by name and can be installed directly as a
// Context's program loader:
//
//	ctx := d.CreateContext(swgl.WithProgramLoader(programs.Load))
//
// The builtin programs are:
//
//	solid           uColor
//	color           per-vertex aColor
//	solid_clip      uColor masked by the R8 texture in uClipMask
//	textured        uSampler at aTexCoord, modulated by uTint
//	textured_rect   as textured, with aTexCoord in texels
//	textured_array  as textured, with the layer in aTexCoord.z
//	gradient        linear gradient along uLine from the table in uGradient
//	yuv             planar YUV surface in uPlane0..uPlane2
package programs

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/shader"
)

var registry = map[string]func() shader.Program{
	"solid":          func() shader.Program { return newSolid("solid", false) },
	"solid_clip":     func() shader.Program { return newSolid("solid_clip", true) },
	"color":          func() shader.Program { return newVertexColor() },
	"textured":       func() shader.Program { return newTextured("textured", kind2D) },
	"textured_rect":  func() shader.Program { return newTextured("textured_rect", kindRect) },
	"textured_array": func() shader.Program { return newTextured("textured_array", kindArray) },
	"gradient":       func() shader.Program { return newGradient() },
	"yuv":            func() shader.Program { return newYUV() },
}

// Load returns a new instance of the builtin program called name.
func Load(name string) (shader.Program, bool) {
	fn, ok := registry[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Names returns the names of all builtin programs in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// uniform holds the value of one uniform. Only the field matching the
// uniform's type is used.
type uniform struct {
	name string
	i    int32
	v    mgl32.Vec4
	m    mgl32.Mat4
}

// base implements the attribute and uniform interface shared by the
// builtin programs. Attribute locations default to declaration order and
// uniform locations are indices into uniforms.
type base struct {
	name     string
	attribs  map[string]int
	uniforms []uniform
}

func newBase(name string, attribs []string, uniforms ...uniform) base {
	b := base{name: name, attribs: make(map[string]int, len(attribs))}
	for i, a := range attribs {
		b.attribs[a] = i
	}
	b.uniforms = append([]uniform{{name: "uTransform", m: mgl32.Ident4()}}, uniforms...)
	return b
}

func (b *base) Name() string { return b.name }

func (b *base) AttribLocation(name string) int {
	if loc, ok := b.attribs[name]; ok {
		return loc
	}
	return -1
}

func (b *base) BindAttribLocation(name string, loc int) {
	if _, ok := b.attribs[name]; ok && loc >= 0 {
		b.attribs[name] = loc
	}
}

func (b *base) UniformLocation(name string) int {
	for i, u := range b.uniforms {
		if u.name == name {
			return i
		}
	}
	return -1
}

func (b *base) SetUniformInt(loc int, v int32) {
	if loc >= 0 && loc < len(b.uniforms) {
		b.uniforms[loc].i = v
	}
}

func (b *base) SetUniformVec4(loc int, v mgl32.Vec4) {
	if loc >= 0 && loc < len(b.uniforms) {
		b.uniforms[loc].v = v
	}
}

func (b *base) SetUniformMat4(loc int, m mgl32.Mat4) {
	if loc >= 0 && loc < len(b.uniforms) {
		b.uniforms[loc].m = m
	}
}

// lookup returns the uniform called name. Every program declares the
// uniforms it reads, so a miss is a bug.
func (b *base) lookup(name string) *uniform {
	loc := b.UniformLocation(name)
	if loc < 0 {
		panic("programs: " + b.name + " has no uniform " + name)
	}
	return &b.uniforms[loc]
}

// position returns the transformed position of vertex i.
func (b *base) position(in shader.Attribs, i int) mgl32.Vec4 {
	return b.uniforms[0].m.Mul4x1(in.Float(b.attribs["aPosition"], i))
}

// modulate multiplies two colors component-wise.
func modulate(a, b mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// fromLanes converts an 8-bit color in B, G, R, A lane order to a
// normalized RGBA color.
func fromLanes(c [4]uint16) mgl32.Vec4 {
	const k = 1.0 / 255
	return mgl32.Vec4{float32(c[2]) * k, float32(c[1]) * k, float32(c[0]) * k, float32(c[3]) * k}
}
