package blend

// R8 blends four single-channel pixels. Only None, ZeroSrcColor and Add
// (and their masked variants) are defined for R8 targets.
func R8(k Key, src, dst, mask [4]uint16) ([4]uint16, bool) {
	if k.Masked() {
		for i := range src {
			src[i] = (src[i]*mask[i] + src[i]) >> 8
		}
		k -= MaskOffset
	}
	var out [4]uint16
	switch k {
	case KeyNone:
		return src, true
	case KeyZeroSrcColor:
		for i := range out {
			out[i] = (src[i]*dst[i] + src[i]) >> 8
		}
	case KeyAdd:
		for i := range out {
			out[i] = src[i] + dst[i]
		}
	default:
		return src, false
	}
	return out, true
}

// SupportsR8 reports whether k can be applied to an R8 target.
func SupportsR8(k Key) bool {
	switch k.Base() {
	case KeyNone, KeyZeroSrcColor, KeyAdd:
		return true
	}
	return false
}
