package sampler

import (
	"github.com/gogpu/swgl/internal/texture"
)

// ValidateGradient checks that a table of entries color pairs starts at
// texel (x, y) of an RGBA32F texture. It returns the byte address of the
// table, or -1 if the table does not fit.
func (s *Sampler) ValidateGradient(x, y, entries int) int {
	if s.Format != texture.FormatRGBA32F || y < 0 || y >= s.Height ||
		x < 0 || x >= s.Width || entries <= 0 || x+2*entries > s.Width {
		return -1
	}
	return y*s.Stride + x*16
}

// SampleGradient evaluates the gradient table at address for entry. The
// integer part of entry selects a (color, delta) pair and the fractional
// part scales the delta. The result is in lane order.
func (s *Sampler) SampleGradient(address int, entry float32) [4]uint16 {
	index := int(entry)
	frac := entry - float32(index)
	x := (address % s.Stride) / 16
	index = max(0, min(index*2, s.Width-x-2))
	base := address + index*16
	var out [4]uint16
	for c := range 4 {
		v := s.float32At(base+4*c) + s.float32At(base+16+4*c)*frac
		out[c] = uint16(max(0, min(v*255+0.5, 255)))
	}
	out[0], out[2] = out[2], out[0]
	return out
}
