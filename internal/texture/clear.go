package texture

import (
	"encoding/binary"
	"math/bits"

	"github.com/gogpu/swgl/internal/geom"
)

// EnableDelayedClear records that every row must be cleared to val before
// it is next touched, instead of clearing now.
func (t *Texture) EnableDelayedClear(val uint32) {
	t.delayClear = t.Height
	t.clearVal = val
	n := (t.Height + 31) / 32
	if cap(t.clearedRows) < n {
		t.clearedRows = make([]uint32, n)
	}
	t.clearedRows = t.clearedRows[:n]
	clear(t.clearedRows)
	if t.Height&31 != 0 {
		t.clearedRows[t.Height/32] = ^uint32(0) << (t.Height & 31)
	}
}

// DisableDelayedClear drops any pending delayed clear.
func (t *Texture) DisableDelayedClear() {
	t.clearedRows = nil
	t.delayClear = 0
}

// PendingRows returns the number of rows still awaiting a delayed clear.
func (t *Texture) PendingRows() int { return t.delayClear }

// ClearValue returns the value of the pending delayed clear.
func (t *Texture) ClearValue() uint32 { return t.clearVal }

// ClaimRow marks row y as no longer pending and reports whether it was
// pending. The caller is then responsible for clearing the parts of the
// row it does not overwrite.
func (t *Texture) ClaimRow(y int) bool {
	if t.delayClear <= 0 || t.clearedRows == nil {
		return false
	}
	bit := uint32(1) << (y & 31)
	mask := &t.clearedRows[y/32]
	if *mask&bit != 0 {
		return false
	}
	*mask |= bit
	t.delayClear--
	return true
}

// ClearRow writes the delayed clear value to row y outside [skipStart,
// skipEnd).
func (t *Texture) ClearRow(y, skipStart, skipEnd int) {
	row := t.Row(y)
	if skipStart > 0 {
		t.fill(row[:skipStart*t.bpp], t.clearVal)
	}
	if skipEnd < t.Width {
		t.fill(row[skipEnd*t.bpp:], t.clearVal)
	}
}

// ClearRect writes value to bb of layer, leaving columns [skipStart,
// skipEnd) untouched.
func (t *Texture) ClearRect(value uint32, layer int, bb geom.IntRect, skipStart, skipEnd int) {
	if t.buf == nil || bb.IsEmpty() {
		return
	}
	x0, x1 := int(bb.X0), int(bb.X1)
	skipStart = max(skipStart, x0)
	skipEnd = max(skipEnd, skipStart)
	for y := bb.Y0; y < bb.Y1; y++ {
		row := t.LayerRow(int(y), layer)
		if x0 < skipStart {
			t.fill(row[x0*t.bpp:min(skipStart, x1)*t.bpp], value)
		}
		if skipEnd < x1 {
			t.fill(row[skipEnd*t.bpp:x1*t.bpp], value)
		}
	}
}

// ForceClear performs every pending row clear, skipping the part of each
// row covered by skip when non-nil. A skip covering the whole texture
// cancels the delayed clear instead.
func (t *Texture) ForceClear(skip *geom.IntRect) {
	if t.delayClear <= 0 || t.clearedRows == nil {
		return
	}
	y0, y1 := 0, t.Height
	skipStart, skipEnd := 0, 0
	if skip != nil {
		y0 = clampInt(int(skip.Y0), 0, t.Height)
		y1 = clampInt(int(skip.Y1), y0, t.Height)
		skipStart = clampInt(int(skip.X0), 0, t.Width)
		skipEnd = clampInt(int(skip.X1), skipStart, t.Width)
		if skipStart <= 0 && skipEnd >= t.Width && y0 <= 0 && y1 >= t.Height {
			t.DisableDelayedClear()
			return
		}
	}
	w := int32(t.Width)
	clearRows := func(start, count int) {
		end := start + count
		bb := geom.Rect(0, int32(start), w, int32(min(end, y0)))
		t.ClearRect(t.clearVal, 0, bb, 0, 0)
		bb = geom.Rect(0, int32(max(start, y0)), w, int32(min(end, y1)))
		t.ClearRect(t.clearVal, 0, bb, skipStart, skipEnd)
		bb = geom.Rect(0, int32(max(start, y1)), w, int32(end))
		t.ClearRect(t.clearVal, 0, bb, 0, 0)
		t.delayClear -= count
	}
	numMasks := (y1 + 31) / 32
	for i := y0 / 32; i < numMasks; i++ {
		mask := t.clearedRows[i]
		if mask == ^uint32(0) {
			continue
		}
		t.clearedRows[i] = ^uint32(0)
		start := i * 32
		for mask != 0 {
			if n := bits.TrailingZeros32(mask); n > 0 {
				clearRows(start, n)
				start += n
				mask >>= n
			}
			n := bits.TrailingZeros32(mask + 1)
			start += n
			mask >>= n
		}
		if n := (i+1)*32 - start; n > 0 {
			clearRows(start, n)
		}
	}
	if t.delayClear <= 0 {
		t.DisableDelayedClear()
	}
}

// Prepare resolves any delayed clear so the buffer holds final contents.
func (t *Texture) Prepare() { t.ForceClear(nil) }

// RequestClear clears layer to value within scissor, given in host surface
// coordinates. A clear of a whole 2D texture is deferred when delayed
// clears are allowed.
func (t *Texture) RequestClear(layer int, value uint32, scissor geom.IntRect, allowDelay bool) {
	switch {
	case !scissor.Contains(t.OffsetBounds()):
		skip := scissor.Offset(-t.Offset.X, -t.Offset.Y)
		t.ForceClear(&skip)
		t.ClearRect(value, layer, skip.Intersection(t.Bounds()), 0, 0)
	case t.Depth > 1 || !allowDelay:
		t.DisableDelayedClear()
		t.ClearRect(value, layer, t.Bounds(), 0, 0)
	default:
		t.EnableDelayedClear(value)
	}
}

// fill writes value repeatedly over dst using the texture's texel size.
func (t *Texture) fill(dst []byte, value uint32) {
	if len(dst) == 0 || t.bpp == 0 {
		return
	}
	var px [4]byte
	binary.LittleEndian.PutUint32(px[:], value)
	n := copy(dst, px[:min(t.bpp, 4)])
	for n < len(dst) {
		n += copy(dst[n:], dst[:n])
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
