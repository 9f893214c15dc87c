package texture

import (
	"math"
	"sync/atomic"

	"github.com/gogpu/swgl/internal/depth"
	"github.com/gogpu/swgl/internal/geom"
)

// Filter selects how a texture is sampled. The zero value selects the GL
// default for the filter it is stored in.
type Filter uint8

const (
	FilterDefault Filter = iota
	Nearest
	Linear
)

// Flags record ownership and clear state of a texture's storage.
type Flags uint8

const (
	// External marks a buffer supplied by the host. External storage is
	// never reallocated or released by the texture.
	External Flags = 1 << iota
	// Cleared marks a depth texture whose rows hold valid runs.
	Cleared
)

// vectorPadding is the slack added after rows that vector loads may read
// past.
const vectorPadding = 16

// maxAllocation bounds a single texture allocation.
const maxAllocation = math.MaxInt32

// Texture is the storage record behind a texture handle. The zero value is
// an empty texture that owns its storage.
//
// Color formats keep their texels in a byte buffer of Stride bytes per row.
// The depth format keeps one depth.Run slot per pixel instead.
type Texture struct {
	Format Format
	Width  int
	Height int
	// Depth is the layer count of an array texture, 0 for a 2D texture.
	Depth int

	MinFilter Filter
	MagFilter Filter

	// Offset is the origin of the texture inside a larger host surface.
	Offset geom.IntPoint

	buf    []byte
	runs   []depth.Run
	bpp    int
	stride int
	flags  Flags
	locked atomic.Int32

	delayClear  int
	clearVal    uint32
	clearedRows []uint32
}

// Min returns the minification filter.
func (t *Texture) Min() Filter {
	if t.MinFilter == FilterDefault {
		return Nearest
	}
	return t.MinFilter
}

// Mag returns the magnification filter.
func (t *Texture) Mag() Filter {
	if t.MagFilter == FilterDefault {
		return Linear
	}
	return t.MagFilter
}

// Bpp returns the bytes per texel of the allocated storage.
func (t *Texture) Bpp() int { return t.bpp }

// Stride returns the bytes per row of the allocated storage.
func (t *Texture) Stride() int { return t.stride }

// Buf returns the color storage, or nil for depth textures.
func (t *Texture) Buf() []byte { return t.buf }

// Runs returns the depth storage, or nil for color textures.
func (t *Texture) Runs() []depth.Run { return t.runs }

// HasStorage reports whether the texture has backing memory.
func (t *Texture) HasStorage() bool { return t.buf != nil || t.runs != nil }

// ShouldFree reports whether the storage is owned by the texture.
func (t *Texture) ShouldFree() bool { return t.flags&External == 0 }

// SetShouldFree changes storage ownership. It must only be called while the
// texture has no storage.
func (t *Texture) SetShouldFree(v bool) {
	if t.HasStorage() {
		panic("texture: ownership change with live storage")
	}
	t.setFlag(External, !v)
}

// IsCleared reports whether a depth texture holds valid runs.
func (t *Texture) IsCleared() bool { return t.flags&Cleared != 0 }

// SetCleared sets the Cleared flag.
func (t *Texture) SetCleared(v bool) { t.setFlag(Cleared, v) }

func (t *Texture) setFlag(f Flags, v bool) {
	if v {
		t.flags |= f
	} else {
		t.flags &^= f
	}
}

// Lock marks the texture as referenced by an outside consumer.
func (t *Texture) Lock() { t.locked.Add(1) }

// Unlock releases one Lock.
func (t *Texture) Unlock() {
	if t.locked.Add(-1) < 0 {
		panic("texture: unbalanced unlock")
	}
}

// Locked reports whether the texture must not be reallocated or destroyed.
func (t *Texture) Locked() bool { return t.locked.Load() > 0 }

// SetBuffer attaches a host-owned buffer. stride is raised to the aligned
// row size when smaller.
func (t *Texture) SetBuffer(buf []byte, stride int) {
	if t.ShouldFree() {
		panic("texture: external buffer on owned texture")
	}
	t.buf = buf
	t.runs = nil
	t.bpp = t.Format.BytesPerPixel()
	t.stride = max(stride, AlignedStride(t.bpp*t.Width))
}

// Allocate sizes the storage for the current format and dimensions. When
// force is set the row layout is recomputed even if storage exists. minW and
// minH reserve room for a larger surface than the texture itself. Existing
// storage is reused when it is large enough. Allocate reports whether new
// storage was created; an allocation that cannot be satisfied leaves the
// texture empty.
func (t *Texture) Allocate(force bool, minW, minH int) bool {
	if t.Locked() {
		panic("texture: allocate while locked")
	}
	t.SetCleared(false)
	if !t.ShouldFree() || (t.HasStorage() && !force) {
		return false
	}
	t.bpp = t.Format.BytesPerPixel()
	t.stride = AlignedStride(t.bpp * t.Width)
	maxStride := max(t.stride, AlignedStride(t.bpp*minW))
	size := int64(maxStride) * int64(max(t.Height, minH)) * int64(max(t.Depth, 1))
	if size <= 0 {
		return false
	}
	if t.Format == FormatDepth16 || max(t.Width, minW) < 2 {
		size += vectorPadding
	}
	if size > maxAllocation {
		t.Cleanup()
		return false
	}
	if t.Format.IsDepth() {
		n := int(size) / t.bpp
		if n <= cap(t.runs) {
			t.runs = t.runs[:n]
			return false
		}
		t.runs = make([]depth.Run, n)
		t.buf = nil
		return true
	}
	if int(size) <= cap(t.buf) {
		t.buf = t.buf[:size]
		return false
	}
	t.buf = make([]byte, size)
	t.runs = nil
	return true
}

// Cleanup releases the storage and any delayed clear.
func (t *Texture) Cleanup() {
	if t.Locked() {
		panic("texture: cleanup while locked")
	}
	t.buf = nil
	t.runs = nil
	t.bpp = 0
	t.stride = 0
	t.DisableDelayedClear()
}

// Bounds returns the texture rectangle at the origin.
func (t *Texture) Bounds() geom.IntRect {
	return geom.Sized(int32(t.Width), int32(t.Height))
}

// OffsetBounds returns the texture rectangle within its host surface.
func (t *Texture) OffsetBounds() geom.IntRect {
	return t.Bounds().Offset(t.Offset.X, t.Offset.Y)
}

// SampleBounds clips req to the texture and returns it relative to req's
// origin, optionally flipped within req's height.
func (t *Texture) SampleBounds(req geom.IntRect, invertY bool) geom.IntRect {
	bb := t.Bounds().Intersection(req).Offset(-req.X0, -req.Y0)
	if invertY {
		bb = bb.InvertY(req.Height())
	}
	return bb
}

// PixelOffset returns the byte offset of texel (x, y) in layer z.
func (t *Texture) PixelOffset(x, y, z int) int {
	return (t.Height*z+y)*t.stride + x*t.bpp
}

// Row returns row y of layer 0, Width texels long.
func (t *Texture) Row(y int) []byte { return t.LayerRow(y, 0) }

// LayerRow returns row y of layer z, Width texels long.
func (t *Texture) LayerRow(y, z int) []byte {
	off := t.PixelOffset(0, y, z)
	return t.buf[off : off+t.Width*t.bpp]
}

// DepthRow returns row y of a depth texture.
func (t *Texture) DepthRow(y int) []depth.Run {
	off := y * (t.stride / t.bpp)
	return t.runs[off : off+t.Width]
}

// InitDepthRuns resets every row of a depth texture to one run of d.
func (t *Texture) InitDepthRuns(d uint16) {
	if t.runs == nil {
		return
	}
	for y := range t.Height {
		depth.InitRow(t.DepthRow(y), d)
	}
	t.SetCleared(true)
}

// FillDepthRuns writes d over the part of a cleared depth texture covered by
// scissor, given in host surface coordinates.
func (t *Texture) FillDepthRuns(d uint16, scissor geom.IntRect) {
	if t.runs == nil {
		return
	}
	bb := t.Bounds().Intersection(scissor.Offset(-t.Offset.X, -t.Offset.Y))
	if bb.IsEmpty() {
		return
	}
	for y := bb.Y0; y < bb.Y1; y++ {
		depth.FillRow(t.DepthRow(int(y)), d, int(bb.X0), int(bb.X1))
	}
}
