package programs

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/sampler"
	"github.com/gogpu/swgl/shader"
)

// solid fills primitives with the uColor uniform. With clip set it also
// attaches the uClipMask texture as the primitive's clip mask; the mask
// only applies while blending is enabled.
type solid struct {
	base
	clip  bool
	color *uniform
	mask  shader.ClipMask
}

func newSolid(name string, clip bool) *solid {
	us := []uniform{{name: "uColor", v: mgl32.Vec4{1, 1, 1, 1}}}
	if clip {
		us = append(us,
			uniform{name: "uClipMask"},
			// x, y, width, height of the usable part of the mask.
			uniform{name: "uClipRect"},
			// Position of the mask relative to the viewport origin in x, y.
			uniform{name: "uClipOffset"},
		)
	}
	p := &solid{base: newBase(name, []string{"aPosition"}, us...), clip: clip}
	p.color = p.lookup("uColor")
	return p
}

func (p *solid) VertexShader() shader.VertexShader     { return p }
func (p *solid) FragmentShader() shader.FragmentShader { return p }

func (p *solid) InitBatch(units shader.TextureUnits) {
	if !p.clip {
		return
	}
	r := p.lookup("uClipRect").v
	off := p.lookup("uClipOffset").v
	p.mask = shader.ClipMask{
		Mask:   units.Sampler(int(p.lookup("uClipMask").i), sampler.KindRect),
		Offset: mgl32.Vec2{off[0], off[1]},
		Origin: mgl32.Vec2{r[0], r[1]},
		Size:   mgl32.Vec2{r[2], r[3]},
	}
}

func (p *solid) NumVaryings() int { return 0 }

func (p *solid) RunPrimitive(in shader.Attribs, n int, prim *shader.Primitive) {
	for i := range n {
		prim.Vertices[i].Position = p.position(in, i)
	}
	prim.ClipMask = nil
	if p.clip {
		prim.ClipMask = &p.mask
	}
}

func (p *solid) Run(f *shader.Fragment) {
	c := p.color.v
	for i := range f.Color {
		f.Color[i] = c
	}
}

func (p *solid) UsesDiscard() bool { return false }

func (p *solid) DrawSpan(s *shader.Span, w shader.SpanWriter) {
	w.CommitSolid(p.color.v)
}

// vertexColor interpolates the aColor attribute.
type vertexColor struct {
	base
}

func newVertexColor() *vertexColor {
	return &vertexColor{base: newBase("color", []string{"aPosition", "aColor"})}
}

func (p *vertexColor) VertexShader() shader.VertexShader     { return p }
func (p *vertexColor) FragmentShader() shader.FragmentShader { return p }
func (p *vertexColor) InitBatch(shader.TextureUnits)         {}
func (p *vertexColor) NumVaryings() int                      { return 4 }

func (p *vertexColor) RunPrimitive(in shader.Attribs, n int, prim *shader.Primitive) {
	loc := p.attribs["aColor"]
	for i := range n {
		v := &prim.Vertices[i]
		v.Position = p.position(in, i)
		c := in.Float(loc, i)
		copy(v.Varyings, c[:])
	}
	prim.ClipMask = nil
}

func (p *vertexColor) Run(f *shader.Fragment) {
	for i := range f.Color {
		f.Color[i] = f.Vec4(0, i)
	}
}

func (p *vertexColor) UsesDiscard() bool { return false }

// DrawSpan fills spans of constant color in one commit.
func (p *vertexColor) DrawSpan(s *shader.Span, w shader.SpanWriter) {
	for _, d := range s.Step[:4] {
		if d != 0 {
			return
		}
	}
	w.CommitSolid(s.Vec4(0))
}
