// Command swgldemo renders a small scene with the swgl software
// rasterizer and saves it as a PNG.
package main

import (
	"encoding/binary"
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/exp/f32"

	"github.com/gogpu/swgl"
	"github.com/gogpu/swgl/programs"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo.png", "output file")
		verbose = flag.Bool("v", false, "log draw statistics")
	)
	flag.Parse()

	if *verbose {
		swgl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	d := swgl.NewDispatcher()
	ctx := d.CreateContext(swgl.WithProgramLoader(programs.Load), swgl.WithStrict(true))
	defer d.DestroyContext(ctx)
	if err := d.MakeCurrent(ctx); err != nil {
		log.Fatalf("MakeCurrent: %v", err)
	}

	w, h := int32(*width), int32(*height)
	ctx.InitDefaultFramebuffer(0, 0, w, h, 0, nil)
	ctx.BindFramebuffer(swgl.FRAMEBUFFER, 0)
	ctx.SetViewport(0, 0, w, h)
	ctx.ClearColor(0.1, 0.1, 0.15, 1)
	ctx.ClearDepth(1)
	ctx.Clear(swgl.COLOR_BUFFER_BIT | swgl.DEPTH_BUFFER_BIT)

	s := newScene(ctx)
	s.drawBackground(float32(w))
	s.drawDepthDemo()
	s.drawBlendDemo()
	s.drawTextureDemo()

	if err := savePNG(ctx, int(w), int(h), *output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, w, h)
}

// scene holds the shared vertex state of the demo draws.
type scene struct {
	ctx      *swgl.Context
	vertices uint32
}

func newScene(ctx *swgl.Context) *scene {
	s := &scene{ctx: ctx, vertices: ctx.GenBuffers(1)[0]}
	ctx.BindBuffer(swgl.ELEMENT_ARRAY_BUFFER, ctx.GenBuffers(1)[0])
	idx := make([]byte, 12)
	for i, v := range []uint16{0, 1, 2, 2, 1, 3} {
		binary.LittleEndian.PutUint16(idx[2*i:], v)
	}
	ctx.BufferData(swgl.ELEMENT_ARRAY_BUFFER, len(idx), idx, swgl.STATIC_DRAW)
	return s
}

// use links and binds a builtin program.
func (s *scene) use(name string) uint32 {
	p := s.ctx.CreateProgram()
	for _, typ := range []swgl.Enum{swgl.VERTEX_SHADER, swgl.FRAGMENT_SHADER} {
		sh := s.ctx.CreateShader(typ)
		s.ctx.ShaderSourceByName(sh, name)
		s.ctx.AttachShader(p, sh)
	}
	s.ctx.LinkProgram(p)
	s.ctx.UseProgram(p)
	return p
}

// quad uploads a unit quad at depth z whose second attribute holds
// extra, two floats per vertex, and draws it.
func (s *scene) quad(z float32, extra [4][2]float32) {
	corners := [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	data := make([]float32, 0, 4*5)
	for i, c := range corners {
		data = append(data, c[0], c[1], z, extra[i][0], extra[i][1])
	}
	ctx := s.ctx
	ctx.BindBuffer(swgl.ARRAY_BUFFER, s.vertices)
	ctx.BufferDataFloat32(swgl.ARRAY_BUFFER, data, swgl.DYNAMIC_DRAW)
	ctx.VertexAttribPointer(0, 3, swgl.FLOAT, false, 20, 0)
	ctx.VertexAttribPointer(1, 2, swgl.FLOAT, false, 20, 12)
	ctx.EnableVertexAttribArray(0)
	ctx.EnableVertexAttribArray(1)
	ctx.DrawElementsInstanced(swgl.TRIANGLES, 6, swgl.UNSIGNED_SHORT, 0, 1)
}

func (s *scene) transform(program uint32, m mgl32.Mat4) {
	s.ctx.UniformMatrix4fv(s.ctx.GetUniformLocation(program, "uTransform"), false, m)
}

func rect(x, y, sx, sy float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, 0).Mul4(mgl32.Scale3D(sx, sy, 1))
}

// drawBackground fills the surface with a three-stop horizontal gradient.
func (s *scene) drawBackground(width float32) {
	stops := []mgl32.Vec4{{0.15, 0.2, 0.45, 1}, {0.45, 0.25, 0.5, 1}, {0.1, 0.4, 0.35, 1}}
	table := make([]float32, 0, 16*len(stops))
	for i, c := range stops {
		var delta mgl32.Vec4
		if i+1 < len(stops) {
			delta = stops[i+1].Sub(c)
		}
		table = append(table, c[:]...)
		table = append(table, delta[:]...)
	}
	ctx := s.ctx
	ctx.ActiveTexture(swgl.TEXTURE0)
	ctx.BindTexture(swgl.TEXTURE_RECTANGLE, ctx.GenTextures(1)[0])
	ctx.TexImage2D(swgl.TEXTURE_RECTANGLE, 0, swgl.RGBA32F, int32(2*len(stops)), 1,
		swgl.RGBA, swgl.FLOAT, f32.Bytes(binary.LittleEndian, table...))

	p := s.use("gradient")
	ctx.Uniform4fv(ctx.GetUniformLocation(p, "uTable"), []float32{0, 0, float32(len(stops)), 0})
	ctx.Uniform4fv(ctx.GetUniformLocation(p, "uLine"), []float32{0, 0, width, 0})
	s.quad(0.99, [4][2]float32{{0, 0}, {width, 0}, {0, 0}, {width, 0}})
}

// drawDepthDemo draws overlapping quads out of depth order.
func (s *scene) drawDepthDemo() {
	ctx := s.ctx
	ctx.Enable(swgl.DEPTH_TEST)
	ctx.DepthFunc(swgl.LESS)
	defer ctx.Disable(swgl.DEPTH_TEST)

	p := s.use("solid")
	for _, q := range []struct {
		x, y, z float32
		color   []float32
	}{
		{-0.6, 0.45, 0.5, []float32{0.9, 0.3, 0.3, 1}},
		{-0.45, 0.3, -0.5, []float32{0.3, 0.9, 0.3, 1}},
		{-0.3, 0.15, 0, []float32{0.3, 0.3, 0.9, 1}},
	} {
		ctx.Uniform4fv(ctx.GetUniformLocation(p, "uColor"), q.color)
		s.transform(p, rect(q.x, q.y, 0.2, 0.2))
		s.quad(q.z, [4][2]float32{})
	}
}

// drawBlendDemo composites translucent quads with source-over blending.
func (s *scene) drawBlendDemo() {
	ctx := s.ctx
	ctx.Enable(swgl.BLEND)
	ctx.BlendFunc(swgl.SRC_ALPHA, swgl.ONE_MINUS_SRC_ALPHA)
	defer ctx.Disable(swgl.BLEND)

	p := s.use("solid")
	for i, c := range [][]float32{{1, 0.8, 0, 0.6}, {0, 0.8, 1, 0.6}, {1, 1, 1, 0.4}} {
		ctx.Uniform4fv(ctx.GetUniformLocation(p, "uColor"), c)
		s.transform(p, rect(0.3+0.15*float32(i), 0.35-0.1*float32(i), 0.2, 0.25))
		s.quad(0, [4][2]float32{})
	}
}

// drawTextureDemo draws a bilinearly magnified checkerboard.
func (s *scene) drawTextureDemo() {
	const n = 8
	pix := make([]byte, 4*n*n)
	for y := range n {
		for x := range n {
			v := byte(40)
			if (x+y)%2 == 0 {
				v = 230
			}
			copy(pix[4*(y*n+x):], []byte{v, v, v, 255})
		}
	}
	ctx := s.ctx
	ctx.ActiveTexture(swgl.TEXTURE0)
	ctx.BindTexture(swgl.TEXTURE_2D, ctx.GenTextures(1)[0])
	ctx.TexImage2D(swgl.TEXTURE_2D, 0, swgl.RGBA8, n, n, swgl.RGBA, swgl.UNSIGNED_BYTE, pix)
	ctx.TexParameteri(swgl.TEXTURE_2D, swgl.TEXTURE_MAG_FILTER, int32(swgl.LINEAR))

	p := s.use("textured")
	ctx.Uniform4fv(ctx.GetUniformLocation(p, "uTint"), []float32{1, 0.9, 0.8, 1})
	s.transform(p, rect(0, -0.5, 0.35, 0.35))
	s.quad(0, [4][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}})
}

// savePNG writes the default framebuffer with its first row at the
// bottom of the image.
func savePNG(ctx *swgl.Context, w, h int, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rows := make([]byte, 4*w*h)
	ctx.ReadPixels(0, 0, int32(w), int32(h), swgl.RGBA, swgl.UNSIGNED_BYTE, rows)
	for y := range h {
		copy(img.Pix[(h-1-y)*img.Stride:], rows[y*4*w:(y+1)*4*w])
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
