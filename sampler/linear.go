package sampler

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/internal/wide"
)

// QuantizeScale is the fixed-point scale of linear texture coordinates:
// 7 fractional bits, so a weight times a signed 9-bit difference fits in
// 16 bits.
const QuantizeScale = 128

// Quantize converts p to fixed-point texel coordinates for the linear
// filter, offset so that texel centers carry a zero fraction.
func (s *Sampler) Quantize(p mgl32.Vec2) (int32, int32) {
	q := s.Scale(p)
	const bias = 0.5 - 0.5*QuantizeScale
	return int32(q[0]*QuantizeScale + bias), int32(q[1]*QuantizeScale + bias)
}

// tap locates the four texels and weights of one bilinear sample.
type tap struct {
	off00, off01, off10, off11 int
	fx, fy                     int32
	x0                         int
	x1                         int
}

// tapAt resolves quantized coordinates. Coordinates outside the texture are
// clamped and their weight toward the missing neighbour dropped.
func (s *Sampler) tapAt(ix, iy int32, layerOff int) tap {
	fx, fy := ix&0x7F, iy&0x7F
	x, y := int(ix>>7), int(iy>>7)
	row0 := layerOff + clampCoord(y, s.Height)*s.Stride
	row1 := row0
	if y >= 0 && y < s.Height-1 {
		row1 += s.Stride
	}
	return s.columnTap(row0, row1, fx, fy, x)
}

func (s *Sampler) columnTap(row0, row1 int, fx, fy int32, x int) tap {
	bpp := s.bpp()
	x0 := clampCoord(x, s.Width)
	x1 := x0
	if x >= 0 && x < s.Width-1 {
		x1++
	} else {
		fx = 0
	}
	return tap{
		off00: row0 + x0*bpp, off01: row0 + x1*bpp,
		off10: row1 + x0*bpp, off11: row1 + x1*bpp,
		fx: fx, fy: fy, x0: x0, x1: x1,
	}
}

func lerp7(a, b, f int32) int32 { return a + ((b-a)*f)>>7 }

// byte8 filters byte c of each texel.
func (t *tap) byte8(buf []byte, c int) int32 {
	top := lerp7(int32(buf[t.off00+c]), int32(buf[t.off10+c]), t.fy)
	bot := lerp7(int32(buf[t.off01+c]), int32(buf[t.off11+c]), t.fy)
	return lerp7(top, bot, t.fx)
}

// filter8 filters an 8-bit format into lane order.
func (s *Sampler) filter8(t *tap) [4]uint16 {
	b := s.Buf
	switch s.Format {
	case texture.FormatRGBA8:
		return [4]uint16{
			uint16(t.byte8(b, 0)), uint16(t.byte8(b, 1)),
			uint16(t.byte8(b, 2)), uint16(t.byte8(b, 3)),
		}
	case texture.FormatR8:
		return [4]uint16{0, 0, uint16(t.byte8(b, 0)), 255}
	case texture.FormatRG8:
		return [4]uint16{0, uint16(t.byte8(b, 1)), uint16(t.byte8(b, 0)), 255}
	case texture.FormatYUV422:
		return s.filterYUV422(t)
	case texture.FormatR16:
		v := s.filterR16(t)
		return [4]uint16{0, 0, uint16(min((v+64)>>7, 255)), 255}
	}
	return [4]uint16{}
}

func (s *Sampler) filterYUV422(t *tap) [4]uint16 {
	texel := func(off, x int) [3]int32 {
		r, g, b := s.yuv422(off, x)
		return [3]int32{int32(b), int32(g), int32(r)}
	}
	a, b := texel(t.off00, t.x0), texel(t.off01, t.x1)
	c, d := texel(t.off10, t.x0), texel(t.off11, t.x1)
	var out [4]uint16
	for i := range 3 {
		top := lerp7(a[i], c[i], t.fy)
		bot := lerp7(b[i], d[i], t.fy)
		out[i] = uint16(lerp7(top, bot, t.fx))
	}
	out[3] = 255
	return out
}

// filterR16 filters an R16 texture keeping 15 bits of precision.
func (s *Sampler) filterR16(t *tap) int32 {
	at := func(off int) int32 { return int32(binary.LittleEndian.Uint16(s.Buf[off:]) >> 1) }
	fy, fx := t.fy<<8, t.fx<<8
	lerp := func(a, b, f int32) int32 { return a + (((b-a)*f)>>16)<<1 }
	top := lerp(at(t.off00), at(t.off10), fy)
	bot := lerp(at(t.off01), at(t.off11), fy)
	return lerp(top, bot, fx)
}

// LinearBGRA filters an 8-bit or R16 texture at quantized coordinates.
func (s *Sampler) LinearBGRA(ix, iy int32, layerOff int) [4]uint16 {
	t := s.tapAt(ix, iy, layerOff)
	return s.filter8(&t)
}

// LinearR8 filters an R8 texture at quantized coordinates.
func (s *Sampler) LinearR8(ix, iy int32, layerOff int) uint16 {
	t := s.tapAt(ix, iy, layerOff)
	return uint16(t.byte8(s.Buf, 0))
}

// LinearRG8 filters an RG8 texture at quantized coordinates.
func (s *Sampler) LinearRG8(ix, iy int32, layerOff int) (r, g uint16) {
	t := s.tapAt(ix, iy, layerOff)
	return uint16(t.byte8(s.Buf, 0)), uint16(t.byte8(s.Buf, 1))
}

// LinearR16 filters an R16 texture at quantized coordinates and returns a
// 15-bit result.
func (s *Sampler) LinearR16(ix, iy int32, layerOff int) int32 {
	t := s.tapAt(ix, iy, layerOff)
	return s.filterR16(&t)
}

// Linear samples p with the bilinear filter.
func (s *Sampler) Linear(p mgl32.Vec2, layer float32) mgl32.Vec4 {
	layerOff := s.LayerOffset(layer)
	switch s.Format {
	case texture.FormatRGBA32F:
		return s.linearFloat(p, layerOff)
	case texture.FormatR16:
		ix, iy := s.Quantize(p)
		return mgl32.Vec4{float32(s.LinearR16(ix, iy, layerOff)) / 32767, 0, 0, 1}
	case texture.FormatRGBA32I:
		q := s.Scale(p)
		return s.TexelFetch(int(q[0]), int(q[1]), 0)
	}
	ix, iy := s.Quantize(p)
	return unpackBGRA(s.LinearBGRA(ix, iy, layerOff))
}

func (s *Sampler) linearFloat(p mgl32.Vec2, layerOff int) mgl32.Vec4 {
	q := s.Scale(p).Sub(mgl32.Vec2{0.5, 0.5})
	fx, fy := math.Floor(float64(q[0])), math.Floor(float64(q[1]))
	rx, ry := q[0]-float32(fx), q[1]-float32(fy)
	x, y := int(fx), int(fy)
	row0 := layerOff + clampCoord(y, s.Height)*s.Stride
	row1 := row0
	if y >= 0 && y < s.Height-1 {
		row1 += s.Stride
	}
	t := s.columnTap(row0, row1, 0, 0, x)
	if t.x0 == t.x1 {
		rx = 0
	}
	var out mgl32.Vec4
	for c := range 4 {
		a := s.float32At(t.off00 + 4*c)
		b := s.float32At(t.off01 + 4*c)
		cc := s.float32At(t.off10 + 4*c)
		d := s.float32At(t.off11 + 4*c)
		top := a + (b-a)*rx
		bot := cc + (d-cc)*rx
		out[c] = top + (bot-top)*ry
	}
	return out
}

// LinearChunk filters four consecutive pixels starting at uv and advancing
// by step per pixel, returning them as one RGBA8 chunk. When the row is
// constant the row offsets and vertical weight are computed once, and a
// magnified RGBA8 row also reuses each vertically filtered texel pair.
func (s *Sampler) LinearChunk(uv, step mgl32.Vec2, layerOff int) wide.U16x16 {
	var out wide.U16x16
	if step[1] == 0 {
		ix, iy := s.Quantize(uv)
		fy := iy & 0x7F
		y := int(iy >> 7)
		row0 := layerOff + clampCoord(y, s.Height)*s.Stride
		row1 := row0
		if y >= 0 && y < s.Height-1 {
			row1 += s.Stride
		}
		if s.Format == texture.FormatRGBA8 && mgl32.Abs(s.Scale(step)[0]) < 1 {
			return s.linearChunkUpscale(uv, step, row0, row1, fy)
		}
		for i := range 4 {
			if i > 0 {
				ix, _ = s.Quantize(uv.Add(step.Mul(float32(i))))
			}
			t := s.columnTap(row0, row1, ix&0x7F, fy, int(ix>>7))
			out.SetPixel(i, s.filter8(&t))
		}
		return out
	}
	for i := range 4 {
		ix, iy := s.Quantize(uv.Add(step.Mul(float32(i))))
		out.SetPixel(i, s.LinearBGRA(ix, iy, layerOff))
	}
	return out
}

// linearChunkUpscale filters a constant RGBA8 row stepping less than one
// texel per pixel. Pixels landing in the same texel share the vertical
// filter of its column pair; only the horizontal weight is recomputed.
func (s *Sampler) linearChunkUpscale(uv, step mgl32.Vec2, row0, row1 int, fy int32) wide.U16x16 {
	var out wide.U16x16
	var left, right [4]int32
	cur, buf := math.MinInt, s.Buf
	for i := range 4 {
		ix, _ := s.Quantize(uv.Add(step.Mul(float32(i))))
		x := int(ix >> 7)
		t := s.columnTap(row0, row1, ix&0x7F, fy, x)
		if x != cur {
			cur = x
			for c := range 4 {
				left[c] = lerp7(int32(buf[t.off00+c]), int32(buf[t.off10+c]), fy)
				right[c] = lerp7(int32(buf[t.off01+c]), int32(buf[t.off11+c]), fy)
			}
		}
		var px [4]uint16
		for c := range px {
			px[c] = uint16(lerp7(left[c], right[c], t.fx))
		}
		out.SetPixel(i, px)
	}
	return out
}

// LinearChunkR8 is LinearChunk for R8 targets, returning one value per
// pixel.
func (s *Sampler) LinearChunkR8(uv, step mgl32.Vec2, layerOff int) [4]uint16 {
	var out [4]uint16
	for i := range out {
		ix, iy := s.Quantize(uv.Add(step.Mul(float32(i))))
		out[i] = s.LinearBGRA(ix, iy, layerOff)[2]
	}
	return out
}
