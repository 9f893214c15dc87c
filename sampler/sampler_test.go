package sampler

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/texture"
)

// newSampler builds a sampler over a w×h texture whose texel bytes come
// from texel.
func newSampler(t *testing.T, f texture.Format, w, h int, texel func(x, y int) []byte) *Sampler {
	t.Helper()
	tex := &texture.Texture{Format: f, Width: w, Height: h}
	if !tex.Allocate(true, 0, 0) {
		t.Fatalf("Allocate(%v %dx%d) failed", f, w, h)
	}
	bpp := f.BytesPerPixel()
	for y := range h {
		row := tex.Row(y)
		for x := range w {
			copy(row[x*bpp:(x+1)*bpp], texel(x, y))
		}
	}
	return New(tex, Kind2D)
}

func solid(b ...byte) func(x, y int) []byte {
	return func(int, int) []byte { return b }
}

func vecNear(a, b mgl32.Vec4) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1.0/512 {
			return false
		}
	}
	return true
}

func TestNew_NullSampler(t *testing.T) {
	s := New(nil, Kind2D)
	if got := s.TexelFetch(3, 3, 0); got != (mgl32.Vec4{}) {
		t.Errorf("TexelFetch() = %v, want transparent black", got)
	}
	if s.IsLinear() {
		t.Error("null sampler filters linearly")
	}
}

func TestNew_NarrowFallsBackToNearest(t *testing.T) {
	s := newSampler(t, texture.FormatR8, 1, 4, solid(9))
	if s.IsLinear() {
		t.Error("1-wide texture samples linearly")
	}
	s = newSampler(t, texture.FormatR8, 2, 4, solid(9))
	if !s.IsLinear() {
		t.Error("default mag filter is not linear")
	}
}

func TestTexelFetch_Formats(t *testing.T) {
	tests := []struct {
		name  string
		f     texture.Format
		texel []byte
		want  mgl32.Vec4
	}{
		{"rgba8", texture.FormatRGBA8, []byte{51, 102, 153, 255}, mgl32.Vec4{0.6, 0.4, 0.2, 1}},
		{"r8", texture.FormatR8, []byte{51}, mgl32.Vec4{0.2, 0, 0, 1}},
		{"rg8", texture.FormatRG8, []byte{51, 102}, mgl32.Vec4{0.2, 0.4, 0, 1}},
		{"r16", texture.FormatR16, []byte{0xFF, 0xFF}, mgl32.Vec4{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSampler(t, tt.f, 2, 2, solid(tt.texel...))
			if got := s.TexelFetch(1, 1, 0); !vecNear(got, tt.want) {
				t.Errorf("TexelFetch() = %v, want %v", got, tt.want)
			}
			if got := s.TexelFetch(-5, 9, 0); !vecNear(got, tt.want) {
				t.Errorf("clamped TexelFetch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTexelFetch_Float(t *testing.T) {
	vals := []float32{0.25, -1, 3.5, 1}
	s := newSampler(t, texture.FormatRGBA32F, 1, 1, func(int, int) []byte {
		b := make([]byte, 16)
		for i, v := range vals {
			binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
		}
		return b
	})
	want := mgl32.Vec4{0.25, -1, 3.5, 1}
	if got := s.TexelFetch(0, 0, 0); got != want {
		t.Errorf("TexelFetch() = %v, want %v", got, want)
	}
}

func TestLinear_R8(t *testing.T) {
	s := newSampler(t, texture.FormatR8, 2, 1, func(x, _ int) []byte {
		return []byte{byte(200 * x)}
	})
	tests := []struct {
		name string
		u    float32
		want uint16
	}{
		{"left center", 0.25, 0},
		{"midpoint", 0.5, 100},
		{"right center", 0.75, 200},
		{"past right edge", 1.0, 200},
		{"past left edge", -0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix, iy := s.Quantize(mgl32.Vec2{tt.u, 0.5})
			if got := s.LinearR8(ix, iy, 0); got != tt.want {
				t.Errorf("LinearR8(%v) = %d, want %d", tt.u, got, tt.want)
			}
		})
	}
}

func TestLinear_TexelCenterIsExact(t *testing.T) {
	s := newSampler(t, texture.FormatRGBA8, 4, 4, func(x, y int) []byte {
		return []byte{byte(10 * x), byte(10 * y), byte(x + y), 255}
	})
	for y := range 4 {
		for x := range 4 {
			p := mgl32.Vec2{(float32(x) + 0.5) / 4, (float32(y) + 0.5) / 4}
			ix, iy := s.Quantize(p)
			got := s.LinearBGRA(ix, iy, 0)
			want := s.TexelBGRA(x, y, 0)
			if got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestLinearChunk_MatchesPerPixel(t *testing.T) {
	s := newSampler(t, texture.FormatRGBA8, 8, 8, func(x, y int) []byte {
		return []byte{byte(x * 31), byte(y * 29), byte(x*y*7 + 3), byte(128 + x)}
	})
	steps := []mgl32.Vec2{{0.3 / 8, 0}, {1.0 / 8, 0}, {0.2 / 8, 0.1 / 8}}
	uv := mgl32.Vec2{0.17, 0.41}
	for _, step := range steps {
		chunk := s.LinearChunk(uv, step, 0)
		for i := range 4 {
			ix, iy := s.Quantize(uv.Add(step.Mul(float32(i))))
			if got, want := chunk.Pixel(i), s.LinearBGRA(ix, iy, 0); got != want {
				t.Errorf("step %v pixel %d = %v, want %v", step, i, got, want)
			}
		}
	}
}

func TestLinearChunk_UpscaleMatchesPerPixel(t *testing.T) {
	s := newSampler(t, texture.FormatRGBA8, 8, 8, func(x, y int) []byte {
		return []byte{byte(x*37 + y), byte(255 - y*23), byte(x * y * 5), byte(200 + x)}
	})
	tests := []struct {
		name string
		uv   mgl32.Vec2
		step mgl32.Vec2
	}{
		{"shared texel", mgl32.Vec2{0.3, 0.55}, mgl32.Vec2{0.05 / 8, 0}},
		{"crosses texel", mgl32.Vec2{0.3, 0.55}, mgl32.Vec2{0.45 / 8, 0}},
		{"right edge", mgl32.Vec2{7.2 / 8, 0.2}, mgl32.Vec2{0.3 / 8, 0}},
		{"left edge", mgl32.Vec2{0.1 / 8, 0.9}, mgl32.Vec2{0.2 / 8, 0}},
		{"backwards", mgl32.Vec2{0.6, 0.4}, mgl32.Vec2{-0.7 / 8, 0}},
		{"bottom row", mgl32.Vec2{0.4, 7.9 / 8}, mgl32.Vec2{0.25 / 8, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := s.LinearChunk(tt.uv, tt.step, 0)
			for i := range 4 {
				ix, iy := s.Quantize(tt.uv.Add(tt.step.Mul(float32(i))))
				if got, want := chunk.Pixel(i), s.LinearBGRA(ix, iy, 0); got != want {
					t.Errorf("pixel %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestLayerOffset(t *testing.T) {
	tex := &texture.Texture{Format: texture.FormatR8, Width: 4, Height: 2, Depth: 3}
	tex.Allocate(true, 0, 0)
	s := New(tex, Kind2DArray)
	tests := []struct {
		layer float32
		want  int
	}{
		{0, 0}, {0.5, 0}, {1, 8}, {1.5, 16}, {2.4, 16}, {9, 16}, {-1, 0},
	}
	for _, tt := range tests {
		if got := s.LayerOffset(tt.layer); got != tt.want {
			t.Errorf("LayerOffset(%v) = %d, want %d", tt.layer, got, tt.want)
		}
	}
	if New(tex, Kind2D).LayerOffset(2) != 0 {
		t.Error("non-array sampler uses layer")
	}
}

func TestAllowNearest(t *testing.T) {
	s := newSampler(t, texture.FormatRGBA8, 8, 8, solid(0, 0, 0, 255))
	center := mgl32.Vec2{3.5 / 8, 3.5 / 8}
	tests := []struct {
		name string
		p    mgl32.Vec2
		step mgl32.Vec2
		want bool
	}{
		{"one texel per pixel", center, mgl32.Vec2{1.0 / 8, 0}, true},
		{"scaled", center, mgl32.Vec2{1.1 / 8, 0}, false},
		{"varying row", center, mgl32.Vec2{1.0 / 8, 0.01}, false},
		{"texel edge", mgl32.Vec2{3.0 / 8, 3.5 / 8}, mgl32.Vec2{1.0 / 8, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.AllowNearest(tt.p, tt.step, 10); got != tt.want {
				t.Errorf("AllowNearest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNearestRowRGBA8_ClampsToRect(t *testing.T) {
	s := newSampler(t, texture.FormatRGBA8, 4, 1, func(x, _ int) []byte {
		return []byte{byte(x), byte(x), byte(x), 255}
	})
	dst := make([]byte, 8*4)
	s.NearestRowRGBA8(mgl32.Vec2{-2.0 / 4, 0}, mgl32.Vec4{0, 0, 1, 1}, 0, dst)
	want := []byte{0, 0, 0, 1, 2, 3, 3, 3}
	for i, w := range want {
		if dst[i*4] != w || dst[i*4+3] != 255 {
			t.Errorf("pixel %d = %v, want texel %d", i, dst[i*4:i*4+4], w)
		}
	}
}

func TestConvertYUV(t *testing.T) {
	tests := []struct {
		name    string
		cs      ColorSpace
		y, u, v uint16
		want    [4]uint16
	}{
		{"601 black", Rec601, 16, 128, 128, [4]uint16{0, 0, 0, 255}},
		{"601 white", Rec601, 235, 128, 128, [4]uint16{255, 255, 255, 255}},
		{"709 white", Rec709, 235, 128, 128, [4]uint16{255, 255, 255, 255}},
		{"2020 saturated red clamps", Rec2020, 81, 90, 240, [4]uint16{0, 10, 255, 255}},
		{"identity", Identity, 10, 20, 30, [4]uint16{20, 10, 30, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertYUV(tt.cs, tt.y, tt.u, tt.v)
			for i := range got {
				if d := int(got[i]) - int(tt.want[i]); d < -1 || d > 1 {
					t.Errorf("ConvertYUV() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestSampleYUV_Layouts(t *testing.T) {
	const y, u, v = 60, 70, 80
	want := [4]uint16{u, y, v, 255}
	center := mgl32.Vec2{0.5, 0.5}
	r8 := func(b byte) *Sampler { return newSampler(t, texture.FormatR8, 2, 2, solid(b)) }

	tests := []struct {
		name   string
		planes []Plane
	}{
		{"packed rgba8", []Plane{{S: newSampler(t, texture.FormatRGBA8, 2, 2, solid(u, y, v, 255)), UV: center}}},
		{"yuv422", []Plane{{S: newSampler(t, texture.FormatYUV422, 2, 2, func(x, _ int) []byte {
			if x&1 == 0 {
				return []byte{y, u}
			}
			return []byte{y, v}
		}), UV: center}}},
		{"r8 + rg8", []Plane{{S: r8(y), UV: center}, {S: newSampler(t, texture.FormatRG8, 2, 2, solid(u, v)), UV: center}}},
		{"r8 + rgba8", []Plane{{S: r8(y), UV: center}, {S: newSampler(t, texture.FormatRGBA8, 2, 2, solid(u, v, 0, 0)), UV: center}}},
		{"three r8", []Plane{{S: r8(y), UV: center}, {S: r8(u), UV: center}, {S: r8(v), UV: center}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleYUV(Identity, 0, tt.planes...); got != want {
				t.Errorf("SampleYUV() = %v, want %v", got, want)
			}
		})
	}
}

func TestSampleYUV_R16Rescale(t *testing.T) {
	// 10-bit samples stored in the low bits of 16-bit texels.
	r16 := func(v uint16) *Sampler {
		return newSampler(t, texture.FormatR16, 2, 2, func(int, int) []byte {
			return binary.LittleEndian.AppendUint16(nil, v)
		})
	}
	center := mgl32.Vec2{0.5, 0.5}
	got := SampleYUV(Identity, 6,
		Plane{S: r16(400), UV: center}, Plane{S: r16(800), UV: center}, Plane{S: r16(1020), UV: center})
	want := [4]uint16{200, 100, 255, 255}
	if got != want {
		t.Errorf("SampleYUV() = %v, want %v", got, want)
	}
}

func TestSampleYUV_Unsupported(t *testing.T) {
	s := newSampler(t, texture.FormatRG8, 2, 2, solid(1, 2))
	if got := SampleYUV(Rec601, 0, Plane{S: s}); got != ([4]uint16{}) {
		t.Errorf("SampleYUV(rg8) = %v, want zero", got)
	}
}

func TestGradient(t *testing.T) {
	table := [][4]float32{{1, 0, 0, 1}, {0, 1, 0, 0}, {0, 0, 1, 1}, {0, 0, 0, 0}}
	s := newSampler(t, texture.FormatRGBA32F, 4, 2, func(x, _ int) []byte {
		b := make([]byte, 16)
		for i, v := range table[x] {
			binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
		}
		return b
	})

	if got := s.ValidateGradient(0, 0, 3); got != -1 {
		t.Errorf("oversized table validated at %d", got)
	}
	if got := s.ValidateGradient(0, 2, 1); got != -1 {
		t.Errorf("out of bounds row validated at %d", got)
	}
	addr := s.ValidateGradient(0, 1, 2)
	if addr != s.Stride {
		t.Fatalf("ValidateGradient() = %d, want %d", addr, s.Stride)
	}

	tests := []struct {
		entry float32
		want  [4]uint16
	}{
		{0, [4]uint16{0, 0, 255, 255}},
		{0.5, [4]uint16{0, 128, 255, 255}},
		{1, [4]uint16{255, 0, 0, 255}},
		{7, [4]uint16{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := s.SampleGradient(addr, tt.entry); got != tt.want {
			t.Errorf("SampleGradient(%v) = %v, want %v", tt.entry, got, tt.want)
		}
	}

	rgba := newSampler(t, texture.FormatRGBA8, 8, 1, solid(0, 0, 0, 0))
	if rgba.ValidateGradient(0, 0, 1) != -1 {
		t.Error("RGBA8 texture validated as gradient")
	}
}
