package blend

import "github.com/gogpu/swgl/internal/wide"

// Inputs carries the per-chunk values some keys consume besides the source
// and destination colors.
type Inputs struct {
	// Mask is the clip mask coverage expanded to every channel. Only read
	// by masked keys.
	Mask wide.U16x16
	// Color is the constant blend color splatted across the chunk.
	Color wide.U16x16
	// Secondary is the second fragment output for dual-source blending.
	Secondary wide.U16x16
}

// ExpandMask widens four 8-bit coverage values so each applies to all
// channels of its pixel.
func ExpandMask(m [4]uint8) wide.U16x16 {
	var v wide.U16x16
	for i, c := range m {
		x := uint16(c)
		v[4*i], v[4*i+1], v[4*i+2], v[4*i+3] = x, x, x, x
	}
	return v
}

// RGBA8 blends a chunk of premultiplied source pixels over destination
// pixels, both in B,G,R,A lane order, and returns the unsaturated result.
// The caller packs the result with saturation.
func RGBA8(k Key, src, dst wide.U16x16, in *Inputs) wide.U16x16 {
	if k.Masked() {
		if k == KeyDualSource+MaskOffset {
			secondary := in.Secondary.MulDiv255(in.Mask)
			return src.MulDiv255(in.Mask).Add(dst).Sub(dst.MulDiv255(secondary))
		}
		src = src.MulDiv255(in.Mask)
		k -= MaskOffset
	}

	switch k {
	case KeyNone:
		return src
	case KeySrcAlpha:
		// dst + src.a*(src.rgb1 - dst), folding the signed difference
		// back through the low byte.
		return dst.AddLow(src.Alphas().MulDiv255(src.Or(wide.AlphaOpaque).Sub(dst)))
	case KeySrcAlphaAll:
		// Alpha blends like color: src.a*src.a + dst.a*(1-src.a).
		return dst.AddLow(src.Alphas().MulDiv255(src.Sub(dst)))
	case KeyPremultipliedOver:
		return src.Add(dst).Sub(dst.MulDiv255(src.Alphas()))
	case KeyZeroOneMinusSrcColor:
		return dst.Sub(dst.MulDiv255(src))
	case KeyZeroOneMinusSrcColorRGB:
		return dst.Sub(dst.MulDiv255(src).And(wide.RGBMask))
	case KeyZeroOneMinusSrcAlpha:
		return dst.Sub(dst.MulDiv255(src.Alphas()))
	case KeyZeroSrcColor:
		return src.MulDiv255(dst)
	case KeyAdd:
		return src.Add(dst)
	case KeyAddOneMinusSrcAlpha:
		return src.Add(dst).Sub(dst.MulDiv255(src).And(wide.AlphaMask))
	case KeyOneMinusDstAlphaOne:
		// src*(1-dst.a) + dst, color channels only.
		return dst.Add(src.Sub(src.MulDiv255(dst.Alphas())).And(wide.RGBMask))
	case KeyConstantColor:
		// dst + src*(k - dst)
		return dst.AddLow(src.MulDiv255(in.Color.Sub(dst)))
	case KeyDualSource:
		return src.Add(dst).Sub(dst.MulDiv255(in.Secondary))
	case KeyMin:
		return src.Min(dst)
	case KeyMax:
		return src.Max(dst)

	// The advanced equations are reduced to premultiplied form so that the
	// alpha result is always As + Ad - As*Ad.
	case KeyMultiply:
		diff := src.Alphas().Sub(src.And(wide.RGBMask)).MulDiv255(dst.Alphas().Sub(dst.And(wide.RGBMask)))
		return src.Add(dst).Add(diff.And(wide.RGBMask)).Sub(diff.Alphas())
	case KeyScreen:
		return src.Add(dst).Sub(src.MulDiv255(dst))
	case KeyOverlay:
		return hardLight(src, dst, dst)
	case KeyDarken:
		return src.Add(dst).Sub(src.MulDiv255(dst.Alphas()).Max(dst.MulDiv255(src.Alphas())))
	case KeyLighten:
		return src.Add(dst).Sub(src.MulDiv255(dst.Alphas()).Min(dst.MulDiv255(src.Alphas())))
	case KeyColorDodge:
		return perPixel(src, dst, colorDodge)
	case KeyColorBurn:
		return perPixel(src, dst, colorBurn)
	case KeyHardLight:
		return hardLight(src, dst, src)
	case KeySoftLight:
		return perPixel(src, dst, softLight)
	case KeyDifference:
		diff := dst.MulDiv255(src.Alphas()).Min(src.MulDiv255(dst.Alphas()))
		return src.Add(dst).Sub(diff).Sub(diff.And(wide.RGBMask))
	case KeyExclusion:
		diff := src.MulDiv255(dst)
		return src.Add(dst).Sub(diff).Sub(diff.And(wide.RGBMask))
	case KeyHue:
		return perPixel(src, dst, hue)
	case KeySaturation:
		return perPixel(src, dst, saturation)
	case KeyColor:
		return perPixel(src, dst, color)
	case KeyLuminosity:
		return perPixel(src, dst, luminosity)
	}
	panic("blend: unreachable key " + k.String())
}

// hardLight implements overlay (sel = dst) and hard light (sel = src):
// multiply where 2*sel <= sel.a, screen otherwise.
func hardLight(src, dst, sel wide.U16x16) wide.U16x16 {
	srcA := src.Alphas()
	dstA := dst.Alphas()
	diff := src.MulDiv255(dst).Add(srcA.Sub(src).MulDiv255(dstA.Sub(dst)))
	var zero wide.U16x16
	low := diff.And(wide.RGBMask).Sub(diff.Alphas())
	high := zero.Sub(diff)
	return src.Add(dst).Add(wide.Select(sel.Shl(1).LessEq(sel.Alphas()), low, high))
}

// perPixel evaluates a float blend function on each pixel of the chunk.
func perPixel(src, dst wide.U16x16, fn func(s, d wide.F32x4) [4]uint16) wide.U16x16 {
	var out wide.U16x16
	for i := range 4 {
		out.SetPixel(i, fn(wide.PixelF32(src, i), wide.PixelF32(dst, i)))
	}
	return out
}

const scale2 = 255 * 255

// alphaOver completes a result whose color terms are in units of 255*255
// with the standard alpha term and the uncovered src/dst contributions.
func alphaOver(blended, s, d wide.F32x4) [4]uint16 {
	srcA, dstA := s[3], d[3]
	r := blended.Add(s.Scale(255 - dstA)).Add(d.Scale(255 - srcA))
	return r.RoundPixel(scale2)
}

func colorDodge(s, d wide.F32x4) [4]uint16 {
	srcA, dstA := s[3], d[3]
	var f wide.F32x4
	recip := wide.SplatF32(srcA).Sub(s).RecipOr(255)
	for c := range 3 {
		f[c] = min(dstA, d[c]*srcA*recip[c])
	}
	f[3] = d[3]
	return alphaOver(f.Scale(srcA), s, d)
}

func colorBurn(s, d wide.F32x4) [4]uint16 {
	srcA, dstA := s[3], d[3]
	var f wide.F32x4
	recip := s.RecipOr(255)
	for c := range 3 {
		f[c] = dstA - min(dstA, (dstA-d[c])*srcA*recip[c])
	}
	f[3] = d[3]
	return alphaOver(f.Scale(srcA), s, d)
}

func softLight(s, d wide.F32x4) [4]uint16 {
	srcA, dstA := s[3], d[3]
	var dstU wide.F32x4
	if dstA != 0 {
		dstU = d.Scale(1 / dstA)
	}
	var f wide.F32x4
	for c := range 3 {
		scale := s[c] + s[c] - srcA
		var k float32
		if scale < 0 {
			k = 1 - dstU[c]
		} else {
			u := dstU[c]
			k = min((16*u-12)*u+3, wide.F32x4{u}.InverseSqrt()[0]-1)
		}
		f[c] = scale * k
	}
	r := d.Mul(f.Add(wide.SplatF32(255))).Add(s.Scale(255 - dstA))
	return r.RoundPixel(scale2)
}
