package programs

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/raster"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/sampler"
	"github.com/gogpu/swgl/shader"
)

// units binds textures to texture units by index.
type units []*texture.Texture

func (u units) Sampler(unit int, kind sampler.Kind) *sampler.Sampler {
	var t *texture.Texture
	if unit >= 0 && unit < len(u) {
		t = u[unit]
	}
	return sampler.New(t, kind)
}

// quadAttribs supplies the corners of an axis-aligned quad in location 0
// and per-corner values in location 1.
type quadAttribs struct {
	pos, attr [4]mgl32.Vec4
}

func (a *quadAttribs) Float(loc, i int) mgl32.Vec4 {
	if loc == 0 {
		return a.pos[i]
	}
	return a.attr[i]
}

func (a *quadAttribs) Int(int, int) [4]int32 { return [4]int32{} }

// fullQuad covers the viewport, with attr0 at the left corners and attr1
// at the right ones.
func fullQuad(attr0, attr1 mgl32.Vec4) *quadAttribs {
	return &quadAttribs{
		pos:  [4]mgl32.Vec4{{-1, -1, 0, 1}, {1, -1, 0, 1}, {1, 1, 0, 1}, {-1, 1, 0, 1}},
		attr: [4]mgl32.Vec4{attr0, attr1, attr1, attr0},
	}
}

func newTexture(f texture.Format, w, h int) *texture.Texture {
	t := &texture.Texture{Format: f, Width: w, Height: h, MagFilter: texture.Nearest}
	t.Allocate(true, 0, 0)
	return t
}

func draw(t *testing.T, p shader.Program, target *texture.Texture, u units, in shader.Attribs) {
	t.Helper()
	r := &raster.Rasterizer{Color: target, Viewport: target.Bounds(), Clip: target.Bounds()}
	r.Begin(p.VertexShader(), p.FragmentShader())
	p.InitBatch(u)
	r.DrawPrimitive(in, 4)
	if r.ShadedPixels != target.Width*target.Height {
		t.Fatalf("shaded %d pixels, want %d", r.ShadedPixels, target.Width*target.Height)
	}
}

func pixel(t *texture.Texture, x, y int) [4]byte {
	return [4]byte(t.Row(y)[x*4 : x*4+4])
}

func mustLoad(t *testing.T, name string) shader.Program {
	t.Helper()
	p, ok := Load(name)
	if !ok {
		t.Fatalf("Load(%q) failed", name)
	}
	return p
}

func TestLoad(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p := mustLoad(t, name)
			if p.Name() != name {
				t.Errorf("Name() = %q, want %q", p.Name(), name)
			}
			if p.VertexShader() == nil || p.FragmentShader() == nil {
				t.Fatal("missing shader stage")
			}
			if n := p.VertexShader().NumVaryings(); n > shader.MaxVaryings {
				t.Errorf("NumVaryings() = %d", n)
			}
			if p.AttribLocation("aPosition") != 0 {
				t.Errorf("aPosition at %d, want 0", p.AttribLocation("aPosition"))
			}
			if p.UniformLocation("uTransform") < 0 {
				t.Error("uTransform not found")
			}
		})
	}
	if _, ok := Load("no_such_program"); ok {
		t.Error("Load accepted an unknown name")
	}
}

func TestLoad_FreshInstances(t *testing.T) {
	a := mustLoad(t, "solid")
	b := mustLoad(t, "solid")
	a.SetUniformVec4(a.UniformLocation("uColor"), mgl32.Vec4{1, 0, 0, 1})
	if b.(*solid).color.v != (mgl32.Vec4{1, 1, 1, 1}) {
		t.Error("instances share uniform storage")
	}
}

func TestBase_Locations(t *testing.T) {
	p := mustLoad(t, "textured")
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"aTexCoord default", p.AttribLocation("aTexCoord"), 1},
		{"unknown attribute", p.AttribLocation("aNormal"), -1},
		{"unknown uniform", p.UniformLocation("uNope"), -1},
		{"transform first", p.UniformLocation("uTransform"), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	p.BindAttribLocation("aTexCoord", 5)
	if got := p.AttribLocation("aTexCoord"); got != 5 {
		t.Errorf("after bind: aTexCoord at %d, want 5", got)
	}
	p.BindAttribLocation("aNormal", 2)
	if got := p.AttribLocation("aNormal"); got != -1 {
		t.Errorf("binding an unknown attribute created location %d", got)
	}
	// Out of range locations are ignored.
	p.SetUniformInt(99, 1)
	p.SetUniformVec4(-1, mgl32.Vec4{})
}

func TestSolid_Fill(t *testing.T) {
	target := newTexture(texture.FormatRGBA8, 8, 4)
	p := mustLoad(t, "solid")
	p.SetUniformVec4(p.UniformLocation("uColor"), mgl32.Vec4{0, 0, 1, 1})
	draw(t, p, target, nil, fullQuad(mgl32.Vec4{}, mgl32.Vec4{}))

	want := [4]byte{255, 0, 0, 255}
	for y := range 4 {
		for x := range 8 {
			if got := pixel(target, x, y); got != want {
				t.Fatalf("pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSolid_Transform(t *testing.T) {
	target := newTexture(texture.FormatRGBA8, 8, 8)
	p := mustLoad(t, "solid")
	// Shrink the quad to the left half of the viewport.
	m := mgl32.Translate3D(-0.5, 0, 0).Mul4(mgl32.Scale3D(0.5, 1, 1))
	p.SetUniformMat4(p.UniformLocation("uTransform"), m)

	r := &raster.Rasterizer{Color: target, Viewport: target.Bounds(), Clip: target.Bounds()}
	r.Begin(p.VertexShader(), p.FragmentShader())
	p.InitBatch(nil)
	r.DrawPrimitive(fullQuad(mgl32.Vec4{}, mgl32.Vec4{}), 4)

	if r.ShadedPixels != 32 {
		t.Fatalf("shaded %d pixels, want 32", r.ShadedPixels)
	}
	if got := pixel(target, 3, 0); got != [4]byte{255, 255, 255, 255} {
		t.Errorf("inside pixel = %v", got)
	}
	if got := pixel(target, 4, 0); got != [4]byte{} {
		t.Errorf("outside pixel = %v", got)
	}
}

func TestVertexColor_Interpolates(t *testing.T) {
	target := newTexture(texture.FormatRGBA8, 4, 1)
	p := mustLoad(t, "color")
	draw(t, p, target, nil, fullQuad(mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec4{1, 0, 0, 1}))

	prev := -1
	for x := range 4 {
		red := int(pixel(target, x, 0)[2])
		if red <= prev {
			t.Fatalf("red at x=%d is %d, not increasing from %d", x, red, prev)
		}
		prev = red
	}
}

func TestSolidClip_AttachesMask(t *testing.T) {
	mask := newTexture(texture.FormatR8, 4, 4)
	p := mustLoad(t, "solid_clip")
	p.SetUniformInt(p.UniformLocation("uClipMask"), 1)
	p.SetUniformVec4(p.UniformLocation("uClipRect"), mgl32.Vec4{1, 1, 2, 2})
	p.SetUniformVec4(p.UniformLocation("uClipOffset"), mgl32.Vec4{3, 4, 0, 0})
	p.InitBatch(units{nil, mask})

	var prim shader.Primitive
	p.VertexShader().RunPrimitive(fullQuad(mgl32.Vec4{}, mgl32.Vec4{}), 4, &prim)
	m := prim.ClipMask
	if m == nil || m.Mask == nil {
		t.Fatal("no clip mask attached")
	}
	if m.Mask.Format != texture.FormatR8 || m.Mask.Width != 4 {
		t.Errorf("mask sampler = %v %dx%d", m.Mask.Format, m.Mask.Width, m.Mask.Height)
	}
	if m.Origin != (mgl32.Vec2{1, 1}) || m.Size != (mgl32.Vec2{2, 2}) || m.Offset != (mgl32.Vec2{3, 4}) {
		t.Errorf("mask geometry = %v %v %v", m.Origin, m.Size, m.Offset)
	}

	solid := mustLoad(t, "solid")
	solid.VertexShader().RunPrimitive(fullQuad(mgl32.Vec4{}, mgl32.Vec4{}), 4, &prim)
	if prim.ClipMask != nil {
		t.Error("solid left a clip mask on the primitive")
	}
}

// checkerboard fills an RGBA8 texture with distinct opaque texels.
func checkerboard(w, h int) *texture.Texture {
	t := newTexture(texture.FormatRGBA8, w, h)
	for y := range h {
		row := t.Row(y)
		for x := range w {
			copy(row[x*4:], []byte{byte(x * 40), byte(y * 40), byte(x + y), 255})
		}
	}
	return t
}

func TestTextured_Copy(t *testing.T) {
	tests := []struct {
		name   string
		prog   string
		filter texture.Filter
		max    float32
	}{
		{"normalized nearest", "textured", texture.Nearest, 1},
		{"rect nearest", "textured_rect", texture.Nearest, 4},
		{"normalized linear", "textured", texture.Linear, 1},
		{"rect linear", "textured_rect", texture.Linear, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := checkerboard(4, 4)
			src.MagFilter = tt.filter
			target := newTexture(texture.FormatRGBA8, 4, 4)
			p := mustLoad(t, tt.prog)
			in := &quadAttribs{
				pos:  [4]mgl32.Vec4{{-1, -1, 0, 1}, {1, -1, 0, 1}, {1, 1, 0, 1}, {-1, 1, 0, 1}},
				attr: [4]mgl32.Vec4{{0, 0, 0, 0}, {tt.max, 0, 0, 0}, {tt.max, tt.max, 0, 0}, {0, tt.max, 0, 0}},
			}
			draw(t, p, target, units{src}, in)
			for y := range 4 {
				for x := range 4 {
					if got, want := pixel(target, x, y), pixel(src, x, y); got != want {
						t.Fatalf("pixel(%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestTextured_Tint(t *testing.T) {
	src := newTexture(texture.FormatRGBA8, 2, 2)
	for i := range src.Buf() {
		src.Buf()[i] = 255
	}
	target := newTexture(texture.FormatRGBA8, 4, 4)
	p := mustLoad(t, "textured")
	p.SetUniformVec4(p.UniformLocation("uTint"), mgl32.Vec4{0.5, 0.5, 0.5, 0.5})
	draw(t, p, target, units{src}, fullQuad(mgl32.Vec4{0, 0, 0, 0}, mgl32.Vec4{1, 1, 0, 0}))

	got := pixel(target, 1, 1)
	for c, v := range got {
		if v < 126 || v > 129 {
			t.Fatalf("component %d = %d, want about 128", c, v)
		}
	}
}

func TestTexturedArray_Layer(t *testing.T) {
	src := &texture.Texture{Format: texture.FormatRGBA8, Width: 2, Height: 2, Depth: 2, MagFilter: texture.Nearest}
	src.Allocate(true, 0, 0)
	for y := range 2 {
		copy(src.LayerRow(y, 1), []byte{1, 2, 3, 255, 1, 2, 3, 255})
	}
	target := newTexture(texture.FormatRGBA8, 2, 2)
	p := mustLoad(t, "textured_array")
	draw(t, p, target, units{src}, fullQuad(mgl32.Vec4{0, 0, 1, 0}, mgl32.Vec4{1, 1, 1, 0}))

	if got := pixel(target, 0, 0); got != [4]byte{1, 2, 3, 255} {
		t.Errorf("pixel = %v, want layer 1 texel", got)
	}
}

// gradientTable writes (color, delta) pairs for stops into row 0 of an
// RGBA32F texture.
func gradientTable(stops ...mgl32.Vec4) *texture.Texture {
	t := newTexture(texture.FormatRGBA32F, 2*len(stops), 1)
	row := t.Row(0)
	for i, c := range stops {
		var d mgl32.Vec4
		if i+1 < len(stops) {
			d = stops[i+1].Sub(c)
		}
		for k := range 4 {
			binary.LittleEndian.PutUint32(row[(2*i)*16+4*k:], math.Float32bits(c[k]))
			binary.LittleEndian.PutUint32(row[(2*i+1)*16+4*k:], math.Float32bits(d[k]))
		}
	}
	return t
}

func TestGradient_Linear(t *testing.T) {
	table := gradientTable(mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec4{0, 0, 1, 1})
	target := newTexture(texture.FormatRGBA8, 8, 1)
	p := mustLoad(t, "gradient")
	p.SetUniformVec4(p.UniformLocation("uTable"), mgl32.Vec4{0, 0, 2, 0})
	p.SetUniformVec4(p.UniformLocation("uLine"), mgl32.Vec4{0, 0, 8, 0})
	draw(t, p, target, units{table}, fullQuad(mgl32.Vec4{0, 0, 0, 0}, mgl32.Vec4{8, 0, 0, 0}))

	first, last := pixel(target, 0, 0), pixel(target, 7, 0)
	if first[2] < 200 || first[0] > 55 {
		t.Errorf("first pixel = %v, want mostly red", first)
	}
	if last[0] < 200 || last[2] > 55 {
		t.Errorf("last pixel = %v, want mostly blue", last)
	}
	for x := 1; x < 8; x++ {
		if pixel(target, x, 0)[2] > pixel(target, x-1, 0)[2] {
			t.Fatalf("red increases at x=%d", x)
		}
	}
}

func TestGradient_InvalidTable(t *testing.T) {
	table := gradientTable(mgl32.Vec4{1, 1, 1, 1})
	target := newTexture(texture.FormatRGBA8, 4, 1)
	fill := pixel(target, 0, 0)
	p := mustLoad(t, "gradient")
	// Eight entries do not fit a two texel wide table.
	p.SetUniformVec4(p.UniformLocation("uTable"), mgl32.Vec4{0, 0, 8, 0})
	p.SetUniformVec4(p.UniformLocation("uLine"), mgl32.Vec4{0, 0, 4, 0})
	draw(t, p, target, units{table}, fullQuad(mgl32.Vec4{}, mgl32.Vec4{4, 0, 0, 0}))
	if got := pixel(target, 2, 0); got != fill {
		t.Errorf("pixel = %v, want transparent black", got)
	}
}

func TestYUV_SinglePlane(t *testing.T) {
	tests := []struct {
		name string
		cs   sampler.ColorSpace
		want [4]byte
	}{
		// Identity passes V, Y, U through as R, G, B.
		{"identity", sampler.Identity, [4]byte{30, 20, 10, 255}},
		// Limited range gray.
		{"rec601 gray", sampler.Rec601, [4]byte{128, 128, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plane := newTexture(texture.FormatRGBA8, 2, 2)
			texel := []byte{30, 20, 10, 255}
			if tt.cs == sampler.Rec601 {
				texel = []byte{128, 126, 128, 255}
			}
			for i := 0; i < len(plane.Buf()); i += 4 {
				copy(plane.Buf()[i:], texel)
			}
			target := newTexture(texture.FormatRGBA8, 4, 2)
			p := mustLoad(t, "yuv")
			p.SetUniformInt(p.UniformLocation("uColorSpace"), int32(tt.cs))
			draw(t, p, target, units{plane}, fullQuad(mgl32.Vec4{0, 0, 0, 0}, mgl32.Vec4{1, 1, 0, 0}))

			got := pixel(target, 1, 1)
			for c := range got {
				if d := int(got[c]) - int(tt.want[c]); d < -2 || d > 2 {
					t.Fatalf("pixel = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
