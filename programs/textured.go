package programs

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/sampler"
	"github.com/gogpu/swgl/shader"
)

const (
	kind2D    = sampler.Kind2D
	kindRect  = sampler.KindRect
	kindArray = sampler.Kind2DArray

	// maxCoord bounds texel coordinates of rect samplers.
	maxCoord = 1 << 15
)

// textured samples uSampler at the interpolated aTexCoord and modulates
// the result by uTint. Spans are committed with the sampler's span
// helpers, falling back to per-chunk sampling where none applies.
type textured struct {
	base
	kind sampler.Kind
	s    *sampler.Sampler

	unit, tint, uvRect *uniform
}

func newTextured(name string, kind sampler.Kind) *textured {
	p := &textured{
		base: newBase(name, []string{"aPosition", "aTexCoord"},
			uniform{name: "uSampler"},
			uniform{name: "uTint", v: mgl32.Vec4{1, 1, 1, 1}},
			// Bounds of nearest sampling as x0, y0, x1, y1 in sampler
			// coordinates.
			uniform{name: "uUVRect", v: mgl32.Vec4{0, 0, 1, 1}},
		),
		kind: kind,
	}
	p.unit = p.lookup("uSampler")
	p.tint = p.lookup("uTint")
	p.uvRect = p.lookup("uUVRect")
	if kind == kindRect {
		p.uvRect.v = mgl32.Vec4{0, 0, maxCoord, maxCoord}
	}
	return p
}

func (p *textured) VertexShader() shader.VertexShader     { return p }
func (p *textured) FragmentShader() shader.FragmentShader { return p }

func (p *textured) InitBatch(units shader.TextureUnits) {
	p.s = units.Sampler(int(p.unit.i), p.kind)
}

// NumVaryings returns u, v and layer.
func (p *textured) NumVaryings() int { return 3 }

func (p *textured) RunPrimitive(in shader.Attribs, n int, prim *shader.Primitive) {
	loc := p.attribs["aTexCoord"]
	for i := range n {
		v := &prim.Vertices[i]
		v.Position = p.position(in, i)
		tc := in.Float(loc, i)
		copy(v.Varyings, tc[:3])
	}
	prim.ClipMask = nil
}

func (p *textured) Run(f *shader.Fragment) {
	for i := range f.Color {
		c := p.s.Texture(f.Vec2(0, i), f.Varying(2, i))
		f.Color[i] = modulate(c, p.tint.v)
	}
}

func (p *textured) UsesDiscard() bool { return false }

func (p *textured) DrawSpan(s *shader.Span, w shader.SpanWriter) {
	if p.s == nil {
		return
	}
	uv, step := s.Vec2(0), s.Vec2Step(0)
	layer := s.In[2]
	if s.Step[2] != 0 {
		return
	}
	tint := p.tint.v
	if p.s.IsLinear() {
		if p.s.Format == texture.FormatRGBA8 && p.s.AllowNearest(uv, step, w.Remaining()) {
			w.CommitTextureNearest(p.s, uv, p.uvRect.v, layer, tint)
		}
		w.CommitTextureLinear(p.s, uv, step, layer, tint)
		return
	}
	if oneTexel(p.s, step) {
		w.CommitTextureNearest(p.s, uv, p.uvRect.v, layer, tint)
	}
}

// oneTexel reports whether step advances exactly one texel per pixel along
// a row of s.
func oneTexel(s *sampler.Sampler, step mgl32.Vec2) bool {
	d := s.Scale(step)
	return d[0] == 1 && d[1] == 0
}
