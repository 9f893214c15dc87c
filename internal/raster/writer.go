package raster

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/internal/wide"
	"github.com/gogpu/swgl/sampler"
	"github.com/gogpu/swgl/shader"
)

// spanWriter commits span drawer output to the color buffer through the
// same blend path as shaded chunks.
type spanWriter struct {
	r       *Rasterizer
	x, y, n int
}

var _ shader.SpanWriter = (*spanWriter)(nil)

func (w *spanWriter) reset(r *Rasterizer, x, y, n int) {
	w.r, w.x, w.y, w.n = r, x, y, n
}

func (w *spanWriter) Target() shader.Target {
	if w.r.Color.Format == texture.FormatR8 {
		return shader.TargetR8
	}
	return shader.TargetRGBA8
}

func (w *spanWriter) Remaining() int { return w.n }

func (w *spanWriter) rgba8() bool { return w.r.Color.Format == texture.FormatRGBA8 }

// commit writes the next pixels of the span from one RGBA8 chunk.
func (w *spanWriter) commit(src wide.U16x16) {
	c := min(w.n, 4)
	w.r.commitRGBA8(w.x, w.y, c, src, nil, [4]bool{})
	w.x += c
	w.n -= c
}

func (w *spanWriter) commitR8(src [4]uint16) {
	c := min(w.n, 4)
	w.r.commitR8(w.x, w.y, c, src, [4]bool{})
	w.x += c
	w.n -= c
}

func (w *spanWriter) CommitSolid(c mgl32.Vec4) {
	if !w.rgba8() {
		v := packR8(c[0])
		for w.n > 0 {
			w.commitR8([4]uint16{v, v, v, v})
		}
		return
	}
	p := packColor(c)
	if w.r.key == blend.KeyNone {
		row := w.r.Color.LayerRow(w.y, w.r.Layer)
		px := [4]byte{byte(p[0]), byte(p[1]), byte(p[2]), byte(p[3])}
		for i := w.x * 4; i < (w.x+w.n)*4; i += 4 {
			copy(row[i:i+4], px[:])
		}
		w.x += w.n
		w.n = 0
		return
	}
	src := wide.SplatPixel(p)
	for w.n > 0 {
		w.commit(src)
	}
}

func (w *spanWriter) CommitChunk(c [4]mgl32.Vec4) {
	if w.n <= 0 {
		return
	}
	if !w.rgba8() {
		var src [4]uint16
		for i := range src {
			src[i] = packR8(c[i][0])
		}
		w.commitR8(src)
		return
	}
	var src wide.U16x16
	for i := range 4 {
		src.SetPixel(i, packColor(c[i]))
	}
	w.commit(src)
}

// tinter modulates committed chunks by a constant color.
type tinter struct {
	on bool
	v  wide.U16x16
}

func newTinter(tint mgl32.Vec4) tinter {
	if tint == shader.NoTint {
		return tinter{}
	}
	return tinter{on: true, v: wide.SplatPixel(packColor(tint))}
}

func (t tinter) apply(c wide.U16x16) wide.U16x16 {
	if !t.on {
		return c
	}
	return c.MulDiv255(t.v)
}

func (t tinter) applyR8(c [4]uint16) [4]uint16 {
	if !t.on {
		return c
	}
	r := t.v[2]
	for i, v := range c {
		c[i] = (v*r + v) >> 8
	}
	return c
}

func filterable(f texture.Format) bool {
	switch f {
	case texture.FormatRGBA8, texture.FormatR8, texture.FormatRG8,
		texture.FormatYUV422, texture.FormatR16:
		return true
	}
	return false
}

func (w *spanWriter) CommitTextureLinear(s *sampler.Sampler, uv, step mgl32.Vec2, layer float32, tint mgl32.Vec4) {
	if s == nil || s.Buf == nil || !filterable(s.Format) {
		return
	}
	layerOff := s.LayerOffset(layer)
	t := newTinter(tint)
	step4 := step.Mul(4)
	for w.n > 0 {
		if w.rgba8() {
			w.commit(t.apply(s.LinearChunk(uv, step, layerOff)))
		} else {
			w.commitR8(t.applyR8(s.LinearChunkR8(uv, step, layerOff)))
		}
		uv = uv.Add(step4)
	}
}

func (w *spanWriter) CommitTextureNearest(s *sampler.Sampler, uv mgl32.Vec2, uvRect mgl32.Vec4, layer float32, tint mgl32.Vec4) {
	if s == nil || s.Buf == nil || s.Format != texture.FormatRGBA8 || !w.rgba8() || w.n <= 0 {
		return
	}
	r := w.r
	n := w.n * 4
	if cap(r.nearest) < n {
		r.nearest = make([]byte, n)
	}
	buf := r.nearest[:n]
	s.NearestRowRGBA8(uv, uvRect, s.LayerOffset(layer), buf)

	t := newTinter(tint)
	if r.key == blend.KeyNone && !t.on {
		copy(r.Color.LayerRow(w.y, r.Layer)[w.x*4:], buf)
		w.x += w.n
		w.n = 0
		return
	}
	for i := 0; w.n > 0; i += 16 {
		w.commit(t.apply(wide.Unpack(buf[i:min(i+16, n)])))
	}
}

func (w *spanWriter) CommitGradient(s *sampler.Sampler, address int, entry, step float32, tint mgl32.Vec4) {
	if s == nil || s.Buf == nil || address < 0 || !w.rgba8() {
		return
	}
	t := newTinter(tint)
	for w.n > 0 {
		var chunk wide.U16x16
		for i := range 4 {
			chunk.SetPixel(i, s.SampleGradient(address, entry+step*float32(i)))
		}
		w.commit(t.apply(chunk))
		entry += step * 4
	}
}

func (w *spanWriter) CommitYUV(cs sampler.ColorSpace, rescale int, planes []sampler.Plane, steps []mgl32.Vec2, tint mgl32.Vec4) {
	if !w.rgba8() || len(planes) == 0 || len(planes) > 3 || len(steps) != len(planes) {
		return
	}
	var local [3]sampler.Plane
	p := local[:copy(local[:], planes)]
	for _, pl := range p {
		if pl.S == nil || pl.S.Buf == nil {
			return
		}
	}
	t := newTinter(tint)
	for w.n > 0 {
		var chunk wide.U16x16
		for i := range 4 {
			chunk.SetPixel(i, sampler.SampleYUV(cs, rescale, p...))
			for j := range p {
				p[j].UV = p[j].UV.Add(steps[j])
			}
		}
		w.commit(t.apply(chunk))
	}
}
