// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sampler reads texels from textures for fragment shaders.
//
// A Sampler is a read-only view of a texture's storage taken when a draw
// starts. It supports texel fetches, nearest filtering and a bilinear filter
// with 7-bit fixed-point weights for every color format, together with the
// span helpers used when a fragment shader commits whole rows at once:
// constant-row linear chunks, clamped 1:1 nearest rows, planar YUV
// conversion and gradient tables.
//
// Colors returned as [4]uint16 are 8-bit values in framebuffer lane order
// B, G, R, A. Colors returned as mgl32.Vec4 are normalized R, G, B, A.
package sampler

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/texture"
)

// Kind selects how texture coordinates address a sampler.
type Kind uint8

const (
	// Kind2D takes coordinates normalized to [0,1].
	Kind2D Kind = iota
	// KindRect takes coordinates in texels.
	KindRect
	// Kind2DArray takes normalized coordinates plus a layer index.
	Kind2DArray
)

// Sampler is a view of a texture's storage.
type Sampler struct {
	Kind   Kind
	Format texture.Format
	Filter texture.Filter
	Width  int
	Height int
	// Depth is the layer count, at least 1.
	Depth int
	// Stride and LayerStride are in bytes.
	Stride      int
	LayerStride int
	Buf         []byte
}

var zeroTexel [16]byte

// New returns a sampler over t. Pending delayed clears on t are resolved
// first. A texture without storage samples as a single transparent black
// texel.
func New(t *texture.Texture, kind Kind) *Sampler {
	s := &Sampler{Kind: kind}
	if t == nil || t.Buf() == nil {
		s.Format = texture.FormatRGBA8
		s.Filter = texture.Nearest
		s.Width, s.Height, s.Depth = 1, 1, 1
		s.Stride, s.LayerStride = 4, 4
		s.Buf = zeroTexel[:]
		return s
	}
	t.Prepare()
	s.Format = t.Format
	s.Width = t.Width
	s.Height = t.Height
	s.Depth = max(t.Depth, 1)
	s.Stride = t.Stride()
	s.LayerStride = s.Stride * t.Height
	s.Buf = t.Buf()
	// Linear filtering reads a neighbouring texel, so narrow textures fall
	// back to nearest.
	s.Filter = texture.Nearest
	if t.Width >= 2 {
		s.Filter = t.Mag()
	}
	return s
}

// IsLinear reports whether the sampler filters linearly.
func (s *Sampler) IsLinear() bool { return s.Filter == texture.Linear }

// Size returns the sampler dimensions in texels.
func (s *Sampler) Size() (int, int) { return s.Width, s.Height }

// Scale converts coordinates to texel units.
func (s *Sampler) Scale(p mgl32.Vec2) mgl32.Vec2 {
	if s.Kind == KindRect {
		return p
	}
	return mgl32.Vec2{p[0] * float32(s.Width), p[1] * float32(s.Height)}
}

// LayerOffset returns the byte offset of the layer nearest to layer.
func (s *Sampler) LayerOffset(layer float32) int {
	if s.Kind != Kind2DArray {
		return 0
	}
	z := int(math.RoundToEven(float64(layer)))
	return clampCoord(z, s.Depth) * s.LayerStride
}

func clampCoord(c, limit int) int {
	return max(0, min(c, limit-1))
}

func (s *Sampler) bpp() int { return s.Format.BytesPerPixel() }

// offset returns the byte offset of texel (x, y) after clamping.
func (s *Sampler) offset(x, y, layerOff int) int {
	return layerOff + clampCoord(y, s.Height)*s.Stride + clampCoord(x, s.Width)*s.bpp()
}

// TexelBGRA returns the clamped texel (x, y) of an 8-bit format.
func (s *Sampler) TexelBGRA(x, y, layerOff int) [4]uint16 {
	return s.decode8(s.offset(x, y, layerOff), clampCoord(x, s.Width))
}

// decode8 converts the texel at byte offset off to lane order.
func (s *Sampler) decode8(off, x int) [4]uint16 {
	b := s.Buf
	switch s.Format {
	case texture.FormatRGBA8:
		return [4]uint16{uint16(b[off]), uint16(b[off+1]), uint16(b[off+2]), uint16(b[off+3])}
	case texture.FormatR8:
		return [4]uint16{0, 0, uint16(b[off]), 255}
	case texture.FormatRG8:
		return [4]uint16{0, uint16(b[off+1]), uint16(b[off]), 255}
	case texture.FormatYUV422:
		r, g, bl := s.yuv422(off, x)
		return [4]uint16{bl, g, r, 255}
	case texture.FormatR16:
		v := binary.LittleEndian.Uint16(b[off:])
		return [4]uint16{0, 0, uint16((uint32(v) + 128) / 257), 255}
	}
	return [4]uint16{}
}

// yuv422 decodes one texel of a 4:2:2 surface stored as two-pixel chunks
// of G0, B, G1, R bytes.
func (s *Sampler) yuv422(off, x int) (r, g, b uint16) {
	chunk := off - (x&1)*2
	c := s.Buf[chunk : chunk+4]
	g = uint16(c[0])
	if x&1 != 0 {
		g = uint16(c[2])
	}
	return uint16(c[3]), g, uint16(c[1])
}

func (s *Sampler) float32At(off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(s.Buf[off:]))
}

// TexelFetch returns texel (x, y) of the given layer, clamped to the
// texture, as a normalized color.
func (s *Sampler) TexelFetch(x, y, layer int) mgl32.Vec4 {
	layerOff := clampCoord(layer, s.Depth) * s.LayerStride
	off := s.offset(x, y, layerOff)
	switch s.Format {
	case texture.FormatRGBA32F:
		return mgl32.Vec4{s.float32At(off), s.float32At(off + 4), s.float32At(off + 8), s.float32At(off + 12)}
	case texture.FormatRGBA32I:
		v := s.TexelFetchInt(x, y)
		return mgl32.Vec4{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
	case texture.FormatR16:
		v := binary.LittleEndian.Uint16(s.Buf[off:])
		return mgl32.Vec4{float32(v) / 65535, 0, 0, 1}
	}
	return unpackBGRA(s.decode8(off, clampCoord(x, s.Width)))
}

// TexelFetchInt returns texel (x, y) of an RGBA32I texture.
func (s *Sampler) TexelFetchInt(x, y int) [4]int32 {
	off := s.offset(x, y, 0)
	var v [4]int32
	for i := range v {
		v[i] = int32(binary.LittleEndian.Uint32(s.Buf[off+4*i:]))
	}
	return v
}

// Texture samples p with the sampler's filter. layer is ignored unless the
// sampler is an array.
func (s *Sampler) Texture(p mgl32.Vec2, layer float32) mgl32.Vec4 {
	if s.Filter == texture.Linear {
		return s.Linear(p, layer)
	}
	q := s.Scale(p)
	z := 0
	if s.Kind == Kind2DArray {
		z = int(math.RoundToEven(float64(layer)))
	}
	return s.TexelFetch(int(q[0]), int(q[1]), z)
}

func unpackBGRA(c [4]uint16) mgl32.Vec4 {
	const k = 1.0 / 255
	return mgl32.Vec4{float32(c[2]) * k, float32(c[1]) * k, float32(c[0]) * k, float32(c[3]) * k}
}
