package texture

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/swgl/internal/depth"
	"github.com/gogpu/swgl/internal/geom"
)

func newTexture(f Format, w, h int) *Texture {
	t := &Texture{Format: f, Width: w, Height: h}
	t.Allocate(true, 0, 0)
	return t
}

func TestFormat_BytesPerPixel(t *testing.T) {
	tests := []struct {
		f    Format
		want int
	}{
		{FormatRGBA8, 4},
		{FormatR8, 1},
		{FormatRG8, 2},
		{FormatR16, 2},
		{FormatYUV422, 2},
		{FormatRGBA32F, 16},
		{FormatRGBA32I, 16},
		{FormatDepth16, 4},
		{Format(0x1234), 0},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if got := tt.f.BytesPerPixel(); got != tt.want {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemap(t *testing.T) {
	tests := []struct {
		in, want Format
	}{
		{formatRGBA, FormatRGBA8},
		{formatRed, FormatR8},
		{formatRG, FormatRG8},
		{formatDepth, FormatDepth16},
		{formatDepth24, FormatDepth16},
		{formatBGRA8, FormatRGBA8},
		{formatBGRA, FormatRGBA8},
		{formatRGB422, FormatYUV422},
		{FormatRGBA32F, FormatRGBA32F},
	}
	for _, tt := range tests {
		if got := Remap(tt.in); got != tt.want {
			t.Errorf("Remap(%#x) = %v, want %v", uint32(tt.in), got, tt.want)
		}
	}
}

func TestFormat_GPUFormat(t *testing.T) {
	if got := FormatRGBA8.GPUFormat(); got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("RGBA8 = %v, want BGRA8Unorm", got)
	}
	if got := FormatYUV422.GPUFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("YUV422 = %v, want Undefined", got)
	}
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name       string
		f          Format
		w, h, d    int
		minW, minH int
		wantStride int
		wantLen    int
	}{
		{"rgba8", FormatRGBA8, 8, 8, 0, 0, 0, 32, 256},
		{"r8 aligned", FormatR8, 5, 3, 0, 0, 0, 8, 24},
		{"narrow padded", FormatR8, 1, 4, 0, 0, 0, 4, 16 + vectorPadding},
		{"min size", FormatRGBA8, 4, 4, 0, 8, 6, 16, 192},
		{"array", FormatRGBA8, 2, 2, 3, 0, 0, 8, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := &Texture{Format: tt.f, Width: tt.w, Height: tt.h, Depth: tt.d}
			if !tex.Allocate(false, tt.minW, tt.minH) {
				t.Fatal("Allocate() = false, want true")
			}
			if tex.Stride() != tt.wantStride {
				t.Errorf("Stride() = %d, want %d", tex.Stride(), tt.wantStride)
			}
			if len(tex.Buf()) != tt.wantLen {
				t.Errorf("len(Buf()) = %d, want %d", len(tex.Buf()), tt.wantLen)
			}
		})
	}
}

func TestAllocate_ReusesLargerBuffer(t *testing.T) {
	tex := newTexture(FormatRGBA8, 8, 8)
	first := tex.Buf()
	tex.Width, tex.Height = 4, 4
	if tex.Allocate(true, 0, 0) {
		t.Error("shrinking reallocated")
	}
	if &tex.Buf()[0] != &first[0] {
		t.Error("shrinking did not reuse storage")
	}
	tex.Width, tex.Height = 16, 16
	if !tex.Allocate(true, 0, 0) {
		t.Error("growing did not reallocate")
	}
}

func TestAllocate_Overflow(t *testing.T) {
	tex := newTexture(FormatRGBA8, 8, 8)
	tex.Width, tex.Height = 1<<20, 1<<20
	tex.Allocate(true, 0, 0)
	if tex.HasStorage() || tex.Stride() != 0 {
		t.Errorf("overflowing allocation left storage: stride=%d", tex.Stride())
	}
}

func TestAllocate_LockedPanics(t *testing.T) {
	tex := newTexture(FormatRGBA8, 2, 2)
	tex.Lock()
	defer func() {
		if recover() == nil {
			t.Error("Allocate on locked texture did not panic")
		}
	}()
	tex.Allocate(true, 0, 0)
}

func TestSetBuffer(t *testing.T) {
	tex := &Texture{Format: FormatRGBA8, Width: 3, Height: 2}
	tex.SetShouldFree(false)
	buf := make([]byte, 64)
	tex.SetBuffer(buf, 8)
	if tex.Stride() != 12 {
		t.Errorf("Stride() = %d, want 12", tex.Stride())
	}
	if tex.Allocate(true, 0, 0) {
		t.Error("Allocate replaced an external buffer")
	}
	tex.Row(1)[0] = 7
	if buf[12] != 7 {
		t.Error("Row does not alias the external buffer")
	}
}

func TestSampleBounds(t *testing.T) {
	tex := &Texture{Format: FormatR8, Width: 10, Height: 10}
	got := tex.SampleBounds(geom.Rect(5, 5, 15, 15), false)
	if want := geom.Rect(0, 0, 5, 5); got != want {
		t.Errorf("SampleBounds() = %v, want %v", got, want)
	}
	got = tex.SampleBounds(geom.Rect(5, 5, 15, 15), true)
	if want := geom.Rect(0, 5, 5, 10); got != want {
		t.Errorf("SampleBounds(invert) = %v, want %v", got, want)
	}
}

func pixel(tex *Texture, x, y int) uint32 {
	return binary.LittleEndian.Uint32(tex.Row(y)[x*4:])
}

func TestDelayedClear_PaddingBits(t *testing.T) {
	tex := newTexture(FormatRGBA8, 4, 40)
	tex.EnableDelayedClear(0xFF0000FF)
	if tex.PendingRows() != 40 {
		t.Fatalf("PendingRows() = %d, want 40", tex.PendingRows())
	}
	if got := tex.clearedRows[1]; got != uint32(0xFFFFFF00) {
		t.Errorf("padding mask = %#x", got)
	}
	if !tex.ClaimRow(33) || tex.ClaimRow(33) {
		t.Error("ClaimRow did not claim exactly once")
	}
	if tex.PendingRows() != 39 {
		t.Errorf("PendingRows() = %d, want 39", tex.PendingRows())
	}
}

func TestForceClear(t *testing.T) {
	const val = 0xFF0000FF
	tex := newTexture(FormatRGBA8, 4, 40)
	tex.EnableDelayedClear(val)
	tex.ClaimRow(3)
	tex.Row(3)[0] = 9

	tex.Prepare()
	if tex.PendingRows() != 0 {
		t.Errorf("PendingRows() = %d after Prepare", tex.PendingRows())
	}
	for y := range 40 {
		for x := range 4 {
			want := uint32(val)
			if y == 3 {
				want = 0
				if x == 0 {
					want = 9
				}
			}
			if got := pixel(tex, x, y); got != want {
				t.Fatalf("pixel(%d,%d) = %#x, want %#x", x, y, got, want)
			}
		}
	}
}

func TestForceClear_Skip(t *testing.T) {
	tex := newTexture(FormatR8, 8, 8)
	tex.EnableDelayedClear(5)
	skip := geom.Rect(2, 2, 6, 6)
	tex.ForceClear(&skip)
	for y := range 8 {
		for x := range 8 {
			want := byte(5)
			if y >= 2 && y < 6 && x >= 2 && x < 6 {
				want = 0
			}
			if got := tex.Row(y)[x]; got != want {
				t.Fatalf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestRequestClear(t *testing.T) {
	t.Run("full deferred", func(t *testing.T) {
		tex := newTexture(FormatR8, 4, 4)
		tex.RequestClear(0, 3, tex.OffsetBounds(), true)
		if tex.PendingRows() != 4 {
			t.Errorf("PendingRows() = %d, want 4", tex.PendingRows())
		}
		if !bytes.Equal(tex.Row(0), []byte{0, 0, 0, 0}) {
			t.Error("deferred clear wrote eagerly")
		}
	})
	t.Run("full eager", func(t *testing.T) {
		tex := newTexture(FormatR8, 4, 4)
		tex.RequestClear(0, 3, tex.OffsetBounds(), false)
		if !bytes.Equal(tex.Row(3), []byte{3, 3, 3, 3}) {
			t.Errorf("Row(3) = %v", tex.Row(3))
		}
	})
	t.Run("scissored", func(t *testing.T) {
		tex := newTexture(FormatR8, 4, 4)
		tex.EnableDelayedClear(1)
		tex.RequestClear(0, 2, geom.Rect(1, 1, 3, 3), true)
		if tex.PendingRows() != 0 {
			t.Errorf("PendingRows() = %d, want 0", tex.PendingRows())
		}
		want := [][]byte{{1, 1, 1, 1}, {1, 2, 2, 1}, {1, 2, 2, 1}, {1, 1, 1, 1}}
		for y, row := range want {
			if !bytes.Equal(tex.Row(y), row) {
				t.Errorf("Row(%d) = %v, want %v", y, tex.Row(y), row)
			}
		}
	})
}

func TestDepthRuns(t *testing.T) {
	tex := newTexture(FormatDepth16, 6, 3)
	if tex.Runs() == nil {
		t.Fatal("depth texture has no runs")
	}
	tex.InitDepthRuns(0xFFFF)
	if !tex.IsCleared() {
		t.Error("InitDepthRuns did not mark texture cleared")
	}
	tex.FillDepthRuns(100, geom.Rect(2, 1, 4, 2))
	for y := range 3 {
		row := tex.DepthRow(y)
		if !depth.CheckCoverage(row) {
			t.Fatalf("row %d lost coverage", y)
		}
		for x := range 6 {
			want := uint16(0xFFFF)
			if y == 1 && x >= 2 && x < 4 {
				want = 100
			}
			if got := depth.At(row, x); got != want {
				t.Errorf("depth(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}
