package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// edge tracks one side of a polygon as rows advance. Points carry
// (x, y, z, w); w is the reciprocal clip W for perspective primitives and
// 1 otherwise, and interpolants are pre-multiplied by it.
type edge struct {
	p, pSlope           mgl32.Vec4
	interp, interpSlope []float32
}

func (e *edge) alloc(nv int) {
	e.interp = make([]float32, nv)
	e.interpSlope = make([]float32, nv)
}

func (e *edge) init(y float32, p0, p1 mgl32.Vec4, i0, i1 []float32) {
	yScale := 1 / max(p1[1]-p0[1], 1.0/256)
	dy := y - p0[1]
	e.pSlope = p1.Sub(p0).Mul(yScale)
	e.p = p0.Add(e.pSlope.Mul(dy))
	for v := range e.interp {
		a := i0[v] * p0[3]
		e.interpSlope[v] = (i1[v]*p1[3] - a) * yScale
		e.interp[v] = a + dy*e.interpSlope[v]
	}
}

func (e *edge) nextRow() {
	e.p = e.p.Add(e.pSlope)
	for v, s := range e.interpSlope {
		e.interp[v] += s
	}
}

// quadTop picks the starting edges of a triangle or quad: l0 begins the
// left edge, walking forward through the points, and r0 the right edge,
// walking backward.
func quadTop(p []mgl32.Vec4) (l0, r0 int) {
	n := len(p)
	y := func(i int) float32 { return p[i][1] }
	var top int
	if n > 3 && y(3) < y(2) {
		switch {
		case y(0) < y(1):
			top = pick(y(0) < y(3), 0, 3)
		default:
			top = pick(y(1) < y(3), 1, 3)
		}
	} else {
		switch {
		case y(0) < y(1):
			top = pick(y(0) < y(2), 0, 2)
		default:
			top = pick(y(1) < y(2), 1, 2)
		}
	}
	next, prev := nextPoint(top, n), prevPoint(top, n)
	switch {
	case y(next) == y(top):
		return next, top
	case y(prev) == y(top):
		return top, prev
	}
	return top, top
}

// polygonTop picks the starting edges of a clipped polygon with any number
// of points, skipping runs of points that share the top row.
func polygonTop(p []mgl32.Vec4) (l0, r0 int) {
	n := len(p)
	top := 0
	for i := 1; i < n; i++ {
		if p[i][1] < p[top][1] {
			top = i
		}
	}
	ty := p[top][1]
	l0 = top
	for i := top + 1; i < n && p[i][1] == ty; i++ {
		l0 = i
	}
	if l0 == n-1 {
		for i := 0; i <= top && p[i][1] == ty; i++ {
			l0 = i
		}
	}
	r0 = top
	for i := top - 1; i >= 0 && p[i][1] == ty; i-- {
		r0 = i
	}
	if r0 == 0 {
		for i := n - 1; i >= top && p[i][1] == ty; i-- {
			r0 = i
		}
	}
	return l0, r0
}

func pick(c bool, a, b int) int {
	if c {
		return a
	}
	return b
}

func nextPoint(i, n int) int {
	if i++; i >= n {
		return 0
	}
	return i
}

func prevPoint(i, n int) int {
	if i--; i < 0 {
		return n - 1
	}
	return i
}

// stepEdge advances an edge to the next point segment that descends. It
// reports false when the polygon is exhausted: the walk turned upward or
// reached end, the far point of the opposite edge.
func stepEdge(p []mgl32.Vec4, e0, e1 *int, step func(i, n int) int, end int) bool {
	for {
		*e0 = *e1
		*e1 = step(*e1, len(p))
		y0, y1 := p[*e0][1], p[*e1][1]
		if y1 > y0 {
			return true
		}
		if y1 < y0 || *e0 == end {
			return false
		}
	}
}

// walk scans a convex polygon top to bottom inside clip, invoking row for
// each row center y with the span bounds already clamped to clip.
func (r *Rasterizer) walk(p []mgl32.Vec4, interp [][]float32, l0, r0 int, clip clipRect,
	row func(y float32, startx, endx int, left, right *edge)) {
	n := len(p)
	l1, r1 := nextPoint(l0, n), prevPoint(r0, n)
	left, right := &r.left, &r.right

	y := float32(math.Floor(float64(max(p[l0][1], clip.y0)+0.5))) + 0.5
	if isNaNOrInf(y) {
		return
	}
	left.init(y, p[l0], p[l1], interp[l0], interp[l1])
	right.init(y, p[r0], p[r1], interp[r0], interp[r1])
	checkY := min(p[l1][1], p[r1][1], clip.y1)
	cx0, cx1 := int(clip.x0+0.5), int(clip.x1+0.5)
	for {
		if y > checkY {
			if y > clip.y1 {
				return
			}
			if y > p[l1][1] {
				for {
					if !stepEdge(p, &l0, &l1, nextPoint, r1) {
						return
					}
					if y <= p[l1][1] {
						break
					}
				}
				left.init(y, p[l0], p[l1], interp[l0], interp[l1])
			}
			if y > p[r1][1] {
				for {
					if !stepEdge(p, &r0, &r1, prevPoint, l1) {
						return
					}
					if y <= p[r1][1] {
						break
					}
				}
				right.init(y, p[r0], p[r1], interp[r0], interp[r1])
			}
			checkY = min(p[l1][1], p[r1][1], clip.y1)
		}

		lx, rx := left.p[0], right.p[0]
		startx := clampSpan(max(min(lx, rx), clip.x0)+0.5, cx0, cx1)
		endx := clampSpan(min(max(lx, rx), clip.x1)+0.5, cx0, cx1)
		if endx > startx {
			row(y, startx, endx, left, right)
		}
		y++
		left.nextRow()
		right.nextRow()
	}
}

// clampSpan truncates a span bound and confines it to [lo, hi], which
// also absorbs NaN edges.
func clampSpan(x float32, lo, hi int) int {
	if !(x >= float32(lo)) {
		return lo
	}
	if x >= float32(hi) {
		return hi
	}
	return int(x)
}

// walkQuad rasterizes a triangle or quad with constant W.
func (r *Rasterizer) walkQuad(p []mgl32.Vec4, interp [][]float32, clip clipRect) {
	l0, r0 := quadTop(p)
	r.walk(p, interp, l0, r0, clip, r.drawRow)
}
