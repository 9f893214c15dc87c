package wide

// U16x16 represents 16 uint16 lanes: one chunk of four RGBA8 pixels.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
type U16x16 [16]uint16

// Lane masks selecting the color or alpha channels of every pixel, and
// the opaque alpha value in every alpha lane.
var (
	RGBMask     = U16x16{0xFFFF, 0xFFFF, 0xFFFF, 0, 0xFFFF, 0xFFFF, 0xFFFF, 0, 0xFFFF, 0xFFFF, 0xFFFF, 0, 0xFFFF, 0xFFFF, 0xFFFF, 0}
	AlphaMask   = U16x16{0, 0, 0, 0xFFFF, 0, 0, 0, 0xFFFF, 0, 0, 0, 0xFFFF, 0, 0, 0, 0xFFFF}
	AlphaOpaque = U16x16{0, 0, 0, 255, 0, 0, 0, 255, 0, 0, 0, 255, 0, 0, 0, 255}
)

// SplatU16 creates U16x16 with all elements set to n.
func SplatU16(n uint16) U16x16 {
	var result U16x16
	for i := range result {
		result[i] = n
	}
	return result
}

// SplatPixel repeats one 4-channel pixel across the chunk.
func SplatPixel(p [4]uint16) U16x16 {
	var result U16x16
	for i := range result {
		result[i] = p[i&3]
	}
	return result
}

// Unpack widens up to 16 bytes into a chunk. Missing bytes are zero.
func Unpack(b []byte) U16x16 {
	var result U16x16
	n := min(len(b), 16)
	for i := 0; i < n; i++ {
		result[i] = uint16(b[i])
	}
	return result
}

// Pack narrows the chunk into up to 16 bytes, saturating each lane as a
// signed 16-bit value to [0, 255].
func (v U16x16) Pack(b []byte) {
	n := min(len(b), 16)
	for i := 0; i < n; i++ {
		x := int16(v[i])
		switch {
		case x < 0:
			b[i] = 0
		case x > 255:
			b[i] = 255
		default:
			b[i] = byte(x)
		}
	}
}

// Add performs element-wise wrapping addition.
func (v U16x16) Add(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise wrapping subtraction.
func (v U16x16) Sub(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise wrapping multiplication.
func (v U16x16) Mul(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Div255 divides each element by 255 using fast approximation.
// Uses the formula: (x + 1 + (x >> 8)) >> 8
func (v U16x16) Div255() U16x16 {
	var result U16x16
	for i := range v {
		x := v[i]
		result[i] = (x + 1 + (x >> 8)) >> 8
	}
	return result
}

// Inv computes 255 - v for each element.
func (v U16x16) Inv() U16x16 {
	var result U16x16
	for i := range v {
		result[i] = 255 - v[i]
	}
	return result
}

// MulDiv255 approximates (v * other) / 255 as (v*other + v) >> 8.
//
// The product wraps in 16 bits, so a wrapped negative operand yields the
// negated result modulo 256, which AddLow then folds back into range.
// The result is exact at both ends: x*255 = x and x*0 = 0.
func (v U16x16) MulDiv255(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = (v[i]*other[i] + v[i]) >> 8
	}
	return result
}

// AddLow adds the low and high bytes of each lane independently, without
// carry between them.
func (v U16x16) AddLow(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		lo := uint8(v[i]) + uint8(other[i])
		hi := uint8(v[i]>>8) + uint8(other[i]>>8)
		result[i] = uint16(hi)<<8 | uint16(lo)
	}
	return result
}

// And performs element-wise bitwise AND.
func (v U16x16) And(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] & other[i]
	}
	return result
}

// Or performs element-wise bitwise OR.
func (v U16x16) Or(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] | other[i]
	}
	return result
}

// Min returns the element-wise unsigned minimum.
func (v U16x16) Min(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = min(v[i], other[i])
	}
	return result
}

// Max returns the element-wise unsigned maximum.
func (v U16x16) Max(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = max(v[i], other[i])
	}
	return result
}

// Shl shifts every lane left by n bits.
func (v U16x16) Shl(n uint) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] << n
	}
	return result
}

// LessEq returns an all-ones lane where v <= other and zero otherwise.
func (v U16x16) LessEq(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		if v[i] <= other[i] {
			result[i] = 0xFFFF
		}
	}
	return result
}

// Select picks lanes of a where mask is set and lanes of b elsewhere.
func Select(mask, a, b U16x16) U16x16 {
	var result U16x16
	for i := range mask {
		result[i] = a[i]&mask[i] | b[i]&^mask[i]
	}
	return result
}

// Alphas broadcasts each pixel's alpha lane to all four of its lanes.
func (v U16x16) Alphas() U16x16 {
	var result U16x16
	for p := 0; p < 16; p += 4 {
		a := v[p+3]
		result[p], result[p+1], result[p+2], result[p+3] = a, a, a, a
	}
	return result
}

// Pixel returns the four lanes of pixel i.
func (v U16x16) Pixel(i int) [4]uint16 {
	return [4]uint16{v[4*i], v[4*i+1], v[4*i+2], v[4*i+3]}
}

// SetPixel replaces the four lanes of pixel i.
func (v *U16x16) SetPixel(i int, p [4]uint16) {
	copy(v[4*i:4*i+4], p[:])
}

// Clamp clamps each element to [0, maxVal].
func (v U16x16) Clamp(maxVal uint16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = min(v[i], maxVal)
	}
	return result
}
