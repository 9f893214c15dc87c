package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/geom"
	"github.com/gogpu/swgl/internal/texture"
)

// clipRect is the drawable area of the color buffer in float pixel
// coordinates.
type clipRect struct {
	x0, y0, x1, y1 float32
}

func newClipRect(r geom.IntRect) clipRect {
	return clipRect{float32(r.X0), float32(r.Y0), float32(r.X1), float32(r.Y1)}
}

func (c *clipRect) intersect(r geom.IntRect) {
	c.x0 = max(c.x0, float32(r.X0))
	c.y0 = max(c.y0, float32(r.Y0))
	c.x1 = min(c.x1, float32(r.X1))
	c.y1 = min(c.y1, float32(r.Y1))
}

// overlaps is a conservative bounding test: it fails only when every
// point lies beyond the same edge of the rectangle.
func (c clipRect) overlaps(pts []mgl32.Vec4) bool {
	sides := 0
	for _, p := range pts {
		switch {
		case p[0] >= c.x1:
			sides |= 2
		case p[0] > c.x0:
			sides |= 1 | 2
		default:
			sides |= 1
		}
		switch {
		case p[1] >= c.y1:
			sides |= 8
		case p[1] > c.y0:
			sides |= 4 | 8
		default:
			sides |= 4
		}
	}
	return sides == 0xF
}

// clipRect resolves the drawable area of the current primitive and the
// blend key it draws with. An active clip mask narrows the area to the
// mask bounds and selects the masked blend key.
func (r *Rasterizer) clipRect() (clipRect, bool) {
	off := r.Color.Offset
	bb := r.Clip.Offset(-off.X, -off.Y).Intersection(r.Color.Bounds())
	if bb.IsEmpty() {
		return clipRect{}, false
	}
	c := newClipRect(bb)

	r.key = blend.KeyNone
	r.maskBuf = nil
	if !r.Blending {
		return c, true
	}
	r.key = r.BlendKey
	m := r.prim.ClipMask
	if m == nil || m.Mask == nil || m.Mask.Format != texture.FormatR8 || m.Size == (mgl32.Vec2{}) {
		return c, true
	}
	ox, oy := int32(m.Origin[0]), int32(m.Origin[1])
	bounds := geom.Rect(ox, oy, ox+int32(m.Size[0]), oy+int32(m.Size[1])).
		Intersection(geom.Sized(int32(m.Mask.Width), int32(m.Mask.Height)))
	r.maskOff = geom.IntPoint{
		X: int32(m.Offset[0]) + r.Viewport.X0 - off.X,
		Y: int32(m.Offset[1]) + r.Viewport.Y0 - off.Y,
	}
	c.intersect(bounds.Offset(r.maskOff.X, r.maskOff.Y))
	r.maskBuf = m.Mask.Buf
	r.maskStr = m.Mask.Stride
	r.key = r.key.WithMask()
	return c, true
}

// maskAt returns the clip mask coverage of up to four pixels starting at
// (x, y) in color buffer coordinates.
func (r *Rasterizer) maskAt(x, y, n int) [4]uint8 {
	var m [4]uint8
	off := (y-int(r.maskOff.Y))*r.maskStr + x - int(r.maskOff.X)
	copy(m[:n], r.maskBuf[off:off+n])
	return m
}

// clipBuf holds one polygon produced by clipping.
type clipBuf struct {
	p      [maxClipPoints]mgl32.Vec4
	interp [maxClipPoints][]float32
}

func (b *clipBuf) alloc(nv int) {
	for i := range b.interp {
		b.interp[i] = make([]float32, nv)
	}
}

const (
	sidePositive = 1
	sideNegative = 2
)

func sideMask(coord, w float32) int {
	m := 0
	if coord < -w {
		m |= sideNegative
	}
	if coord > w {
		m |= sidePositive
	}
	return m
}

// clipSide clips the polygon against -W <= C <= W on the given axis and
// writes the result to out. A point with negative W can lie outside both
// planes at once; the crossing side is then chosen where W reaches zero.
// It returns the number of output points, or 0 if the output would
// overflow.
func clipSide(axis int, pts []mgl32.Vec4, interp [][]float32, out *clipBuf) int {
	nump := len(pts)
	limit := min(nump+2, maxClipPoints)
	n := 0
	prev := pts[nump-1]
	prevInterp := interp[nump-1]
	prevCoord := prev[axis]
	prevMask := sideMask(prevCoord, prev[3])

	emit := func(cur mgl32.Vec4, curInterp []float32, k float32) bool {
		if n >= limit {
			return false
		}
		out.p[n] = prev.Add(cur.Sub(prev).Mul(k))
		for v, a := range prevInterp {
			out.interp[n][v] = a + (curInterp[v]-a)*k
		}
		n++
		return true
	}

	for i, cur := range pts {
		curInterp := interp[i]
		curCoord := cur[axis]
		curMask := sideMask(curCoord, cur[3])
		if curMask&prevMask == 0 {
			crossesZero := prevCoord*(cur[3]-prev[3]) < prev[3]*(curCoord-prevCoord)
			if prevMask != 0 {
				side := float32(1)
				if prevMask&sideNegative != 0 && (prevMask&sidePositive == 0 || crossesZero) {
					side = -1
				}
				prevDist := prevCoord - side*prev[3]
				curDist := curCoord - side*cur[3]
				k := prevDist / (prevDist - curDist)
				if c := prev.Add(cur.Sub(prev).Mul(k)); side*c[axis] > c[3] {
					k = math.Nextafter32(k, 1)
				}
				if !emit(cur, curInterp, k) {
					return 0
				}
			}
			if curMask != 0 {
				side := float32(-1)
				if curMask&sidePositive != 0 && (curMask&sideNegative == 0 || crossesZero) {
					side = 1
				}
				prevDist := prevCoord - side*prev[3]
				curDist := curCoord - side*cur[3]
				k := prevDist / (prevDist - curDist)
				if c := prev.Add(cur.Sub(prev).Mul(k)); side*c[axis] > c[3] {
					k = math.Nextafter32(k, 0)
				}
				if !emit(cur, curInterp, k) {
					return 0
				}
			}
		}
		if curMask == 0 {
			if n >= limit {
				return 0
			}
			out.p[n] = cur
			copy(out.interp[n], curInterp)
			n++
		}
		prev, prevInterp, prevCoord, prevMask = cur, curInterp, curCoord, curMask
	}
	return n
}
