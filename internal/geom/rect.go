// Package geom provides integer rectangles and points in pixel space.
//
// IntRect does not enforce x1 >= x0 or y1 >= y0. A rectangle with a
// non-positive width or height is simply empty, so chains of intersections
// never need to special-case disjoint inputs.
package geom

// IntPoint is a point in pixel coordinates.
type IntPoint struct {
	X, Y int32
}

// IntRect is a half-open pixel rectangle [X0,X1) x [Y0,Y1).
type IntRect struct {
	X0, Y0, X1, Y1 int32
}

// Rect creates an IntRect from its corners.
func Rect(x0, y0, x1, y1 int32) IntRect {
	return IntRect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Sized creates an IntRect at the origin with the given size.
func Sized(width, height int32) IntRect {
	return IntRect{X1: width, Y1: height}
}

// Width returns x1 - x0, which may be negative.
func (r IntRect) Width() int32 { return r.X1 - r.X0 }

// Height returns y1 - y0, which may be negative.
func (r IntRect) Height() int32 { return r.Y1 - r.Y0 }

// IsEmpty reports whether the rectangle covers no pixels.
func (r IntRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// SameSize reports whether r and o have identical dimensions.
func (r IntRect) SameSize(o IntRect) bool {
	return r.Width() == o.Width() && r.Height() == o.Height()
}

// Contains reports whether o lies entirely within r.
func (r IntRect) Contains(o IntRect) bool {
	return o.X0 >= r.X0 && o.Y0 >= r.Y0 && o.X1 <= r.X1 && o.Y1 <= r.Y1
}

// ContainsPoint reports whether the pixel at p lies within r.
func (r IntRect) ContainsPoint(p IntPoint) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// Intersect clips r to o in place and reports whether anything remains.
func (r *IntRect) Intersect(o IntRect) bool {
	r.X0 = max(r.X0, o.X0)
	r.Y0 = max(r.Y0, o.Y0)
	r.X1 = min(r.X1, o.X1)
	r.Y1 = min(r.Y1, o.Y1)
	return !r.IsEmpty()
}

// Intersection returns the overlap of r and o, possibly empty.
func (r IntRect) Intersection(o IntRect) IntRect {
	r.Intersect(o)
	return r
}

// Union returns the smallest rectangle containing both r and o.
// Empty inputs are ignored.
func (r IntRect) Union(o IntRect) IntRect {
	switch {
	case o.IsEmpty():
		return r
	case r.IsEmpty():
		return o
	}
	return IntRect{min(r.X0, o.X0), min(r.Y0, o.Y0), max(r.X1, o.X1), max(r.Y1, o.Y1)}
}

// Scale maps r from a srcW x srcH space into a dstW x dstH space.
// With roundOut the far edges round up so the result covers every
// destination pixel touched by r.
func (r IntRect) Scale(srcW, srcH, dstW, dstH int32, roundOut bool) IntRect {
	if srcW == dstW && srcH == dstH {
		return r
	}
	var padW, padH int32
	if roundOut {
		padW, padH = srcW-1, srcH-1
	}
	return IntRect{
		X0: r.X0 * dstW / srcW,
		Y0: r.Y0 * dstH / srcH,
		X1: (r.X1*dstW + padW) / srcW,
		Y1: (r.Y1*dstH + padH) / srcH,
	}
}

// InvertY flips r vertically within a surface of the given height.
func (r IntRect) InvertY(height int32) IntRect {
	return IntRect{X0: r.X0, Y0: height - r.Y1, X1: r.X1, Y1: height - r.Y0}
}

// Offset translates r by (dx, dy).
func (r IntRect) Offset(dx, dy int32) IntRect {
	return IntRect{r.X0 + dx, r.Y0 + dy, r.X1 + dx, r.Y1 + dy}
}

// Origin returns the top-left corner.
func (r IntRect) Origin() IntPoint {
	return IntPoint{X: r.X0, Y: r.Y0}
}
