package blend

import "github.com/gogpu/swgl/internal/wide"

// The non-separable HSL modes follow KHR_blend_equation_advanced, rearranged
// to work on premultiplied values so that no unpremultiply is needed. Colors
// here are F32x4 in B,G,R,A order; only the first three lanes are used by
// the vec3 helpers.

type vec3 [3]float32

func (v vec3) sub(s float32) vec3   { return vec3{v[0] - s, v[1] - s, v[2] - s} }
func (v vec3) add(s float32) vec3   { return vec3{v[0] + s, v[1] + s, v[2] + s} }
func (v vec3) scale(s float32) vec3 { return vec3{v[0] * s, v[1] * s, v[2] * s} }
func (v vec3) min() float32         { return min(v[0], v[1], v[2]) }
func (v vec3) max() float32         { return max(v[0], v[1], v[2]) }

// lum weights R, G, B (stored at lanes 2, 1, 0).
func (v vec3) lum() float32 {
	return v[2]*0.30 + v[1]*0.59 + v[0]*0.11
}

func recipOr(x, fallback float32) float32 {
	if x != 0 {
		return 1 / x
	}
	return fallback
}

func clipColor(v vec3, lum, alpha float32) vec3 {
	mincol := max(-v.min(), lum)
	maxcol := max(v.max(), alpha-lum)
	return v.scale(lum * (alpha - lum) * recipOr(mincol*maxcol, 0)).add(lum)
}

func setLum(base, ref vec3, alpha float32) vec3 {
	return clipColor(base.sub(base.lum()), ref.lum(), alpha)
}

// setLumSat rescales base's saturation range to sref's, then applies
// lref's luminosity. A base with no extent becomes black.
func setLumSat(base, sref, lref vec3, alpha float32) vec3 {
	diff := base.sub(base.min())
	sbase := diff.max()
	ssat := sref.max() - sref.min()
	return setLum(diff.scale(ssat*recipOr(sbase, 0)), lref, alpha)
}

// hslTerms holds the shared premultiplied terms of every HSL mode.
type hslTerms struct {
	srcV, dstV wide.F32x4
	srcDstA    float32
	srcC, dstC vec3
}

func newHSLTerms(s, d wide.F32x4) hslTerms {
	srcA := s[3] / 255
	dstA := d[3] / 255
	return hslTerms{
		srcV:    s,
		dstV:    d,
		srcDstA: s[3] * dstA,
		srcC:    vec3{s[0] * dstA, s[1] * dstA, s[2] * dstA},
		dstC:    vec3{d[0] * srcA, d[1] * srcA, d[2] * srcA},
	}
}

// finish adds back the uncovered contributions and the alpha term.
func (h hslTerms) finish(c vec3) [4]uint16 {
	var r wide.F32x4
	for i := range 3 {
		r[i] = c[i] + h.srcV[i] - h.srcC[i] + h.dstV[i] - h.dstC[i]
	}
	r[3] = h.srcV[3] + h.dstV[3] - h.srcDstA
	return r.RoundPixel(255)
}

func hue(s, d wide.F32x4) [4]uint16 {
	h := newHSLTerms(s, d)
	return h.finish(setLumSat(h.srcC, h.dstC, h.dstC, h.srcDstA))
}

func saturation(s, d wide.F32x4) [4]uint16 {
	h := newHSLTerms(s, d)
	return h.finish(setLumSat(h.dstC, h.srcC, h.dstC, h.srcDstA))
}

func color(s, d wide.F32x4) [4]uint16 {
	h := newHSLTerms(s, d)
	return h.finish(setLum(h.srcC, h.dstC, h.srcDstA))
}

func luminosity(s, d wide.F32x4) [4]uint16 {
	h := newHSLTerms(s, d)
	return h.finish(setLum(h.dstC, h.srcC, h.srcDstA))
}
