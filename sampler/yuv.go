package sampler

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/texture"
)

// ColorSpace selects the YUV to RGB conversion matrix.
type ColorSpace uint8

const (
	Rec601 ColorSpace = iota
	Rec709
	Rec2020
	// Identity maps V, Y, U straight to R, G, B.
	Identity
)

func (c ColorSpace) String() string {
	switch c {
	case Rec601:
		return "rec601"
	case Rec709:
		return "rec709"
	case Rec2020:
		return "rec2020"
	case Identity:
		return "identity"
	}
	return fmt.Sprintf("ColorSpace(%d)", uint8(c))
}

// yuvMatrix holds limited-range conversion coefficients.
type yuvMatrix struct {
	rv, gu, gv, bu float32
}

var yuvMatrices = [...]yuvMatrix{
	Rec601:  {1.596027, 0.391762, 0.812968, 2.017232},
	Rec709:  {1.792741, 0.213249, 0.532909, 2.112402},
	Rec2020: {1.678674, 0.187326, 0.650424, 2.141772},
}

const yScale = 1.164384

// ConvertYUV converts one 8-bit limited-range YUV sample to an opaque
// color in lane order.
func ConvertYUV(cs ColorSpace, y, u, v uint16) [4]uint16 {
	if cs >= Identity {
		return [4]uint16{min(u, 255), min(y, 255), min(v, 255), 255}
	}
	m := yuvMatrices[cs]
	yy := (float32(y) - 16) * yScale
	uu := float32(u) - 128
	vv := float32(v) - 128
	r := yy + m.rv*vv
	g := yy - m.gu*uu - m.gv*vv
	b := yy + m.bu*uu
	return [4]uint16{toByte(b), toByte(g), toByte(r), 255}
}

func toByte(v float32) uint16 {
	return uint16(max(0, min(v+0.5, 255)))
}

// Plane is one sampled plane of a YUV surface.
type Plane struct {
	S     *Sampler
	UV    mgl32.Vec2
	Layer float32
}

func (p Plane) linear() [4]uint16 {
	ix, iy := p.S.Quantize(p.UV)
	return p.S.LinearBGRA(ix, iy, p.S.LayerOffset(p.Layer))
}

func (p Plane) linearR16() int32 {
	ix, iy := p.S.Quantize(p.UV)
	return p.S.LinearR16(ix, iy, p.S.LayerOffset(p.Layer))
}

// SampleYUV bilinearly samples a planar YUV surface and converts it to RGB
// in lane order. Supported layouts are one RGBA8 or YUV422 plane, an R8 Y
// plane with an RG8 or RGBA8 UV plane, and three R8 or R16 planes.
// rescale is the number of unused high bits of R16 planes. Unsupported
// layouts sample as transparent black.
func SampleYUV(cs ColorSpace, rescale int, planes ...Plane) [4]uint16 {
	switch len(planes) {
	case 1:
		switch planes[0].S.Format {
		case texture.FormatRGBA8, texture.FormatYUV422:
			c := planes[0].linear()
			return ConvertYUV(cs, c[1], c[0], c[2])
		}
	case 2:
		if planes[0].S.Format != texture.FormatR8 {
			break
		}
		y := planes[0].linear()[2]
		switch planes[1].S.Format {
		case texture.FormatRG8:
			c := planes[1].linear()
			return ConvertYUV(cs, y, c[2], c[1])
		case texture.FormatRGBA8:
			c := planes[1].linear()
			return ConvertYUV(cs, y, c[0], c[1])
		}
	case 3:
		f := planes[0].S.Format
		if planes[1].S.Format != f || planes[2].S.Format != f {
			break
		}
		switch f {
		case texture.FormatR8:
			return ConvertYUV(cs, planes[0].linear()[2], planes[1].linear()[2], planes[2].linear()[2])
		case texture.FormatR16:
			// Samples carry 15 bits; keep the top 8 of the used depth.
			shift := max(0, 16-rescale-1-8)
			at := func(p Plane) uint16 { return uint16(p.linearR16() >> shift) }
			return ConvertYUV(cs, at(planes[0]), at(planes[1]), at(planes[2]))
		}
	}
	return [4]uint16{}
}
