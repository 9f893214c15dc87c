package wide

import "math"

// F32x4 holds one pixel's four channels as floats.
type F32x4 [4]float32

// SplatF32 creates F32x4 with all elements set to n.
func SplatF32(n float32) F32x4 {
	return F32x4{n, n, n, n}
}

// PixelF32 converts one pixel of a chunk to floats.
func PixelF32(v U16x16, i int) F32x4 {
	return F32x4{float32(v[4*i]), float32(v[4*i+1]), float32(v[4*i+2]), float32(v[4*i+3])}
}

// Add performs element-wise addition.
func (v F32x4) Add(other F32x4) F32x4 {
	return F32x4{v[0] + other[0], v[1] + other[1], v[2] + other[2], v[3] + other[3]}
}

// Sub performs element-wise subtraction.
func (v F32x4) Sub(other F32x4) F32x4 {
	return F32x4{v[0] - other[0], v[1] - other[1], v[2] - other[2], v[3] - other[3]}
}

// Mul performs element-wise multiplication.
func (v F32x4) Mul(other F32x4) F32x4 {
	return F32x4{v[0] * other[0], v[1] * other[1], v[2] * other[2], v[3] * other[3]}
}

// Scale multiplies every element by s.
func (v F32x4) Scale(s float32) F32x4 {
	return F32x4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Min returns the element-wise minimum.
func (v F32x4) Min(other F32x4) F32x4 {
	return F32x4{min(v[0], other[0]), min(v[1], other[1]), min(v[2], other[2]), min(v[3], other[3])}
}

// Max returns the element-wise maximum.
func (v F32x4) Max(other F32x4) F32x4 {
	return F32x4{max(v[0], other[0]), max(v[1], other[1]), max(v[2], other[2]), max(v[3], other[3])}
}

// WithAlpha returns v with its alpha channel replaced by a.
func (v F32x4) WithAlpha(a float32) F32x4 {
	v[3] = a
	return v
}

// RecipOr returns 1/x per element, or fallback where x is zero.
func (v F32x4) RecipOr(fallback float32) F32x4 {
	var result F32x4
	for i, x := range v {
		if x != 0 {
			result[i] = 1 / x
		} else {
			result[i] = fallback
		}
	}
	return result
}

// InverseSqrt returns 1/sqrt(x) per element.
func (v F32x4) InverseSqrt() F32x4 {
	var result F32x4
	for i, x := range v {
		result[i] = float32(1 / math.Sqrt(float64(x)))
	}
	return result
}

// RoundPixel converts v, expressed in units of scale per 255, to the
// nearest integer channel value.
func (v F32x4) RoundPixel(scale float32) [4]uint16 {
	var result [4]uint16
	for i, x := range v {
		r := int32(math.Round(float64(x * 255 / scale)))
		result[i] = uint16(int16(max(min(r, math.MaxInt16), math.MinInt16)))
	}
	return result
}
