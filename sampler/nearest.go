package sampler

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/texture"
)

// AllowNearest reports whether a span of n pixels starting at p and
// advancing by step per pixel can use 1:1 nearest sampling without visibly
// diverging from the linear filter: the row must be constant, the step
// must be within about 2^-7 of one texel, and p must sit near a texel
// center.
func (s *Sampler) AllowNearest(p, step mgl32.Vec2, n int) bool {
	if step[1] != 0 {
		return false
	}
	p = s.Scale(p)
	step = s.Scale(step)
	n &^= QuantizeScale - 1
	n += QuantizeScale
	if int(math.Round(float64(step[0]*float32(n)))) != n {
		return false
	}
	return int(p[0]*4+0.5)&3 == 2 && int(p[1]*4+0.5)&3 == 2
}

// NearestRowRGBA8 copies len(dst)/4 texels of an RGBA8 texture into dst,
// starting at p and stepping one texel per pixel. Samples are confined to
// uvRect (x0, y0, x1, y1 in sampler coordinates); pixels left or right of
// it repeat the nearest edge texel.
func (s *Sampler) NearestRowRGBA8(p mgl32.Vec2, uvRect mgl32.Vec4, layerOff int, dst []byte) {
	if s.Format != texture.FormatRGBA8 {
		return
	}
	i := s.Scale(p)
	lo := s.Scale(mgl32.Vec2{uvRect[0], uvRect[1]})
	hi := s.Scale(mgl32.Vec2{uvRect[2], uvRect[3]})
	minU, minV := int(lo[0]), int(lo[1])
	maxU, maxV := int(hi[0]), int(hi[1])

	y := max(minV, min(clampCoord(int(i[1]), s.Height), maxV))
	row := s.Buf[layerOff+y*s.Stride:]
	minX := max(0, min(minU, s.Width-1))
	maxX := max(minX, min(maxU, s.Width-1))

	x := int(i[0])
	span := len(dst) / 4
	out := 0
	if x < minX {
		n := min(minX-x, span)
		fillTexel(dst[:n*4], row[minX*4:minX*4+4])
		out, x = n, x+n
	}
	if n := max(0, min(maxX+1-x, span-out)); n > 0 {
		copy(dst[out*4:(out+n)*4], row[x*4:(x+n)*4])
		out += n
	}
	if out < span {
		fillTexel(dst[out*4:span*4], row[maxX*4:maxX*4+4])
	}
}

func fillTexel(dst, texel []byte) {
	for i := 0; i < len(dst); i += 4 {
		copy(dst[i:i+4], texel)
	}
}
