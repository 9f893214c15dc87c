package programs

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/sampler"
	"github.com/gogpu/swgl/shader"
)

// gradient draws a linear gradient. aLocalPos is projected onto the line
// from (uLine.x, uLine.y) to (uLine.z, uLine.w); the projection selects an
// entry of the gradient table whose first color pair is at texel
// (uTable.x, uTable.y) of the RGBA32F texture in uGradient and which has
// uTable.z entries. Positions before the start or past the end of the
// line take the first or last color.
type gradient struct {
	base
	s       *sampler.Sampler
	address int

	unit, table, line *uniform
}

func newGradient() *gradient {
	p := &gradient{
		base: newBase("gradient", []string{"aPosition", "aLocalPos"},
			uniform{name: "uGradient"},
			uniform{name: "uTable"},
			uniform{name: "uLine"},
		),
		address: -1,
	}
	p.unit = p.lookup("uGradient")
	p.table = p.lookup("uTable")
	p.line = p.lookup("uLine")
	return p
}

func (p *gradient) VertexShader() shader.VertexShader     { return p }
func (p *gradient) FragmentShader() shader.FragmentShader { return p }

func (p *gradient) InitBatch(units shader.TextureUnits) {
	p.s = units.Sampler(int(p.unit.i), sampler.KindRect)
	t := p.table.v
	p.address = p.s.ValidateGradient(int(t[0]), int(t[1]), int(t[2]))
}

func (p *gradient) entries() float32 { return p.table.v[2] }

// NumVaryings returns the unclamped table entry.
func (p *gradient) NumVaryings() int { return 1 }

func (p *gradient) RunPrimitive(in shader.Attribs, n int, prim *shader.Primitive) {
	loc := p.attribs["aLocalPos"]
	l := p.line.v
	start := mgl32.Vec2{l[0], l[1]}
	dir := mgl32.Vec2{l[2], l[3]}.Sub(start)
	scale := float32(0)
	if d := dir.Dot(dir); d > 0 {
		scale = (p.entries() - 1) / d
	}
	for i := range n {
		v := &prim.Vertices[i]
		v.Position = p.position(in, i)
		lp := in.Float(loc, i).Vec2()
		v.Varyings[0] = lp.Sub(start).Dot(dir) * scale
	}
	prim.ClipMask = nil
}

func (p *gradient) clamp(entry float32) float32 {
	return mgl32.Clamp(entry, 0, max(p.entries()-1, 0))
}

func (p *gradient) Run(f *shader.Fragment) {
	if p.address < 0 {
		f.Color = [4]mgl32.Vec4{}
		return
	}
	for i := range f.Color {
		f.Color[i] = fromLanes(p.s.SampleGradient(p.address, p.clamp(f.Varying(0, i))))
	}
}

func (p *gradient) UsesDiscard() bool { return false }

// DrawSpan commits spans that stay inside the table.
func (p *gradient) DrawSpan(s *shader.Span, w shader.SpanWriter) {
	if p.address < 0 {
		return
	}
	first := s.Varying(0, 0)
	last := s.Varying(0, float32(w.Remaining()-1))
	if first != p.clamp(first) || last != p.clamp(last) {
		return
	}
	w.CommitGradient(p.s, p.address, first, s.Step[0], shader.NoTint)
}
