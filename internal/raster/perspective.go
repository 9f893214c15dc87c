package raster

import (
	"github.com/go-gl/mathgl/mgl32"
)

// drawPerspective rasterizes a triangle or quad whose vertices have
// differing W. Depth varies across the primitive and varyings are
// interpolated perspective-correctly. Primitives crossing the near or far
// plane are clipped first; X and Y are clipped too when a point would
// otherwise project from W <= 0.
func (r *Rasterizer) drawPerspective(n int) {
	v := &r.prim.Vertices
	scale := mgl32.Vec3{float32(r.Viewport.Width()), float32(r.Viewport.Height()), 1}.Mul(0.5)
	origin := r.viewportOrigin()
	offset := mgl32.Vec3{origin[0], origin[1], 0}.Add(scale)

	crosses := false
	for i := range n {
		p := v[i].Position
		if p[2] <= -p[3] || p[2] >= p[3] {
			crosses = true
			break
		}
	}

	for i := range n {
		r.pts[i] = v[i].Position
		r.interp[i] = v[i].Varyings
	}
	pts, interp := r.pts[:n], r.interp[:n]
	if crosses {
		nump := clipSide(2, r.pts[:n], r.interp[:n], &r.clipA)
		if nump < 3 {
			return
		}
		for i := range nump {
			if r.clipA.p[i][3] > 0 {
				continue
			}
			if nump = clipSide(0, r.clipA.p[:nump], r.clipA.interp[:nump], &r.clipB); nump < 3 {
				return
			}
			if nump = clipSide(1, r.clipB.p[:nump], r.clipB.interp[:nump], &r.clipA); nump < 3 {
				return
			}
			break
		}
		pts, interp = r.clipA.p[:nump], r.clipA.interp[:nump]
	}

	for i, p := range pts {
		w := 1 / p[3]
		if isNaNOrInf(w) {
			w = 0
		}
		pts[i] = mgl32.Vec4{
			p[0]*w*scale[0] + offset[0],
			p[1]*w*scale[1] + offset[1],
			p[2]*w*scale[2] + offset[2],
			w,
		}
	}

	clip, ok := r.clipRect()
	if !ok || !clip.overlaps(pts) {
		return
	}
	r.persp = true
	l0, r0 := polygonTop(pts)
	r.walk(pts, interp, l0, r0, clip, r.drawRow)
}
