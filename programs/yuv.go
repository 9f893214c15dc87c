package programs

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/sampler"
	"github.com/gogpu/swgl/shader"
)

// yuv converts a planar YUV surface to RGB. uPlanes gives the number of
// planes (1 to 3) bound to the units in uPlane0, uPlane1 and uPlane2.
// uColorSpace selects the conversion matrix and uRescale the number of
// unused high bits of 16-bit planes. All planes are sampled at aTexCoord.
type yuv struct {
	base
	planes [3]sampler.Plane
	n      int
	cs     sampler.ColorSpace
	shift  int

	units                    [3]*uniform
	count, colorSpace, scale *uniform
}

func newYUV() *yuv {
	p := &yuv{
		base: newBase("yuv", []string{"aPosition", "aTexCoord"},
			uniform{name: "uPlane0"},
			uniform{name: "uPlane1", i: 1},
			uniform{name: "uPlane2", i: 2},
			uniform{name: "uPlanes", i: 1},
			uniform{name: "uColorSpace"},
			uniform{name: "uRescale"},
		),
	}
	for i, name := range []string{"uPlane0", "uPlane1", "uPlane2"} {
		p.units[i] = p.lookup(name)
	}
	p.count = p.lookup("uPlanes")
	p.colorSpace = p.lookup("uColorSpace")
	p.scale = p.lookup("uRescale")
	return p
}

func (p *yuv) VertexShader() shader.VertexShader     { return p }
func (p *yuv) FragmentShader() shader.FragmentShader { return p }

func (p *yuv) InitBatch(units shader.TextureUnits) {
	p.n = int(mgl32.Clamp(float32(p.count.i), 1, 3))
	for i := range p.n {
		p.planes[i] = sampler.Plane{S: units.Sampler(int(p.units[i].i), sampler.Kind2D)}
	}
	p.cs = sampler.ColorSpace(max(0, min(p.colorSpace.i, int32(sampler.Identity))))
	p.shift = int(max(0, p.scale.i))
}

func (p *yuv) NumVaryings() int { return 2 }

func (p *yuv) RunPrimitive(in shader.Attribs, n int, prim *shader.Primitive) {
	loc := p.attribs["aTexCoord"]
	for i := range n {
		v := &prim.Vertices[i]
		v.Position = p.position(in, i)
		tc := in.Float(loc, i)
		copy(v.Varyings, tc[:2])
	}
	prim.ClipMask = nil
}

func (p *yuv) Run(f *shader.Fragment) {
	planes := p.planes[:p.n]
	for i := range f.Color {
		uv := f.Vec2(0, i)
		for j := range planes {
			planes[j].UV = uv
		}
		f.Color[i] = fromLanes(sampler.SampleYUV(p.cs, p.shift, planes...))
	}
}

func (p *yuv) UsesDiscard() bool { return false }

func (p *yuv) DrawSpan(s *shader.Span, w shader.SpanWriter) {
	var steps [3]mgl32.Vec2
	planes := p.planes[:p.n]
	for j := range planes {
		planes[j].UV = s.Vec2(0)
		steps[j] = s.Vec2Step(0)
	}
	w.CommitYUV(p.cs, p.shift, planes, steps[:p.n], shader.NoTint)
}
