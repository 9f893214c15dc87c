package raster

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/depth"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/internal/wide"
)

// drawRow shades the pixels [startx, endx) of the row centered at y
// between the left and right edges.
func (r *Rasterizer) drawRow(y float32, startx, endx int, left, right *edge) {
	span := endx - startx
	r.ShadedRows++
	r.ShadedPixels += span
	row := int(y)

	var runs []depth.Run
	if r.depthActive() {
		runs = r.Depth.DepthRow(row)
	}
	var cursor *depth.Cursor
	if runs != nil {
		if r.discard || r.persp {
			// Per-pixel depth and discard need one sample per pixel.
			depth.Flatten(runs)
		} else if !runs[0].IsFlat() {
			r.cursor = depth.NewCursor(runs, startx, span)
			skipped := r.cursor.SkipFailed(r.z, r.DepthFunc)
			if skipped < 0 {
				return
			}
			startx += skipped
			span -= skipped
			cursor = &r.cursor
		}
	}
	if r.Color.PendingRows() > 0 {
		r.prepareRow(row, startx, endx, runs, cursor)
	}

	r.initRow(startx, left, right)
	switch {
	case r.discard || r.persp:
		r.drawChunks(startx, row, span, runs)
	case cursor != nil:
		r.drawDepthRuns(row, cursor)
	case runs != nil:
		r.drawChunks(startx, row, span, runs)
	default:
		if span >= 4 && r.drawer != nil {
			drawn := r.drawSpan(startx, row, span&^3)
			startx += drawn
			span -= drawn
		}
		r.drawChunks(startx, row, span, nil)
	}
}

// prepareRow finishes a delayed clear of row y before it is drawn. Only
// the parts of the row the span will not overwrite are cleared, unless
// blending or discard may read the old contents.
func (r *Rasterizer) prepareRow(y, startx, endx int, runs []depth.Run, cursor *depth.Cursor) {
	if !r.Color.ClaimRow(y) {
		return
	}
	width := r.Color.Width
	switch {
	case r.key != blend.KeyNone || r.discard:
		r.Color.ClearRow(y, 0, 0)
	case runs != nil:
		if runs[0].IsFlat() || cursor == nil {
			r.Color.ClearRow(y, 0, 0)
			return
		}
		passed := cursor.Peek(r.z, r.DepthFunc)
		if startx > 0 || startx+passed < width {
			r.Color.ClearRow(y, startx, startx+passed)
		}
	case startx > 0 || endx < width:
		r.Color.ClearRow(y, startx, endx)
	}
}

// initRow computes the varyings, Z and W at the center of pixel startx
// and their change per pixel.
func (r *Rasterizer) initRow(startx int, left, right *edge) {
	inv := 1 / (right.p[0] - left.p[0])
	dx := float32(startx) + 0.5 - left.p[0]
	for v := range r.rowBase {
		step := (right.interp[v] - left.interp[v]) * inv
		r.rowStep[v] = step
		r.rowBase[v] = left.interp[v] + step*dx
	}
	r.rowX0 = startx
	if !r.persp {
		r.rowZ, r.rowW = r.screenZ, r.screenW
		r.zStep, r.wStep = 0, 0
		return
	}
	r.zStep = (right.p[2] - left.p[2]) * inv
	r.wStep = (right.p[3] - left.p[3]) * inv
	r.rowZ = left.p[2] + r.zStep*dx
	r.rowW = left.p[3] + r.wStep*dx
}

// drawDepthRuns shades the parts of a span that pass the depth test
// against a run-form depth row.
func (r *Rasterizer) drawDepthRuns(y int, c *depth.Cursor) {
	for {
		x := c.Start()
		n := c.CheckPassed(r.z, r.DepthFunc, r.DepthMask)
		if n <= 0 {
			return
		}
		if n >= 4 && r.drawer != nil {
			drawn := r.drawSpan(x, y, n&^3)
			x += drawn
			n -= drawn
		}
		r.drawChunks(x, y, n, nil)
		if c.SkipFailed(r.z, r.DepthFunc) <= 0 {
			return
		}
	}
}

// drawSpan offers n pixels starting at x to the fragment shader's span
// drawer and returns how many it committed.
func (r *Rasterizer) drawSpan(x, y, n int) int {
	s := &r.span
	s.X, s.Y = x, y
	d := float32(x - r.rowX0)
	for v := range s.In {
		s.In[v] = r.rowBase[v] + r.rowStep[v]*d
	}
	s.Step = r.rowStep
	s.Z, s.W = r.rowZ, r.rowW
	r.w.reset(r, x, y, n)
	r.drawer.DrawSpan(s, &r.w)
	return n - r.w.n
}

// drawChunks shades n pixels starting at x in chunks of four. A non-nil
// runs is a flat depth row tested per pixel.
func (r *Rasterizer) drawChunks(x, y, n int, runs []depth.Run) {
	for n > 0 {
		c := min(n, 4)
		r.drawChunk(x, y, c, runs)
		x += c
		n -= c
	}
}

func (r *Rasterizer) drawChunk(x, y, c int, runs []depth.Run) {
	var keep [4]bool
	for i := c; i < 4; i++ {
		keep[i] = true
	}
	var z [4]uint16
	if runs != nil {
		passed := false
		for i := range c {
			z[i] = r.pixelDepth(x + i)
			if r.DepthFunc.Passes(z[i], runs[x+i].Depth) {
				passed = true
			} else {
				keep[i] = true
			}
		}
		if !passed {
			return
		}
		if !r.discard && r.DepthMask {
			for i := range c {
				if !keep[i] {
					runs[x+i] = depth.Sample(z[i])
				}
			}
		}
	}

	r.shadeChunk(x, y)

	if r.discard {
		for i := range c {
			keep[i] = keep[i] || r.frag.Discarded[i]
		}
		if runs != nil && r.DepthMask {
			for i := range c {
				if !keep[i] {
					runs[x+i] = depth.Sample(z[i])
				}
			}
		}
	}
	r.output(x, y, c, keep)
}

// pixelDepth returns the 16-bit depth of pixel x in the current row.
func (r *Rasterizer) pixelDepth(x int) uint16 {
	if !r.persp {
		return r.z
	}
	z := r.rowZ + r.zStep*float32(x-r.rowX0)
	return uint16(max(0, min(int32(z*0xFFFF), 0xFFFF)))
}

// shadeChunk fills the fragment for the four pixels starting at x and
// runs the fragment shader.
func (r *Rasterizer) shadeChunk(x, y int) {
	f := &r.frag
	f.X, f.Y = x, y
	d := float32(x - r.rowX0)
	for i := range 4 {
		k := d + float32(i)
		f.Z[i] = r.rowZ + r.zStep*k
		f.W[i] = r.rowW + r.wStep*k
	}
	for v := range f.In {
		b, s := r.rowBase[v], r.rowStep[v]
		for i := range 4 {
			f.In[v][i] = b + s*(d+float32(i))
		}
	}
	if r.persp {
		for i := range 4 {
			inv := float32(0)
			if f.W[i] != 0 {
				inv = 1 / f.W[i]
			}
			for v := range f.In {
				f.In[v][i] *= inv
			}
		}
	}
	f.Discarded = [4]bool{}
	r.fs.Run(f)
}

// output blends the shaded chunk into the color buffer, leaving pixels
// marked in keep untouched.
func (r *Rasterizer) output(x, y, c int, keep [4]bool) {
	f := &r.frag
	switch r.Color.Format {
	case texture.FormatRGBA8:
		var src wide.U16x16
		for i := range 4 {
			src.SetPixel(i, packColor(f.Color[i]))
		}
		var sec *[4]mgl32.Vec4
		if r.key.Base() == blend.KeyDualSource {
			sec = &f.Secondary
		}
		r.commitRGBA8(x, y, c, src, sec, keep)
	case texture.FormatR8:
		var src [4]uint16
		for i := range c {
			src[i] = packR8(f.Color[i][0])
		}
		r.commitR8(x, y, c, src, keep)
	}
}

// commitRGBA8 writes c pixels of a packed chunk at (x, y), blending with
// the destination when a blend key is active.
func (r *Rasterizer) commitRGBA8(x, y, c int, src wide.U16x16, sec *[4]mgl32.Vec4, keep [4]bool) {
	buf := r.Color.LayerRow(y, r.Layer)[x*4 : (x+c)*4]
	dst := wide.Unpack(buf)
	res := src
	if r.key != blend.KeyNone {
		in := blend.Inputs{Color: r.BlendColor}
		if r.key.Masked() {
			in.Mask = blend.ExpandMask(r.maskAt(x, y, c))
		}
		if sec != nil {
			for i := range 4 {
				in.Secondary.SetPixel(i, packColor(sec[i]))
			}
		}
		res = blend.RGBA8(r.key, src, dst, &in)
	}
	for i := range c {
		if keep[i] {
			res.SetPixel(i, dst.Pixel(i))
		}
	}
	res.Pack(buf)
}

// commitR8 is commitRGBA8 for single-channel targets.
func (r *Rasterizer) commitR8(x, y, c int, src [4]uint16, keep [4]bool) {
	buf := r.Color.LayerRow(y, r.Layer)[x : x+c]
	res := src
	if r.key != blend.KeyNone {
		var dst, mask [4]uint16
		for i := range c {
			dst[i] = uint16(buf[i])
		}
		if r.key.Masked() {
			m := r.maskAt(x, y, c)
			for i := range c {
				mask[i] = uint16(m[i])
			}
		}
		// Callers reject keys without an R8 form before drawing.
		res, _ = blend.R8(r.key, src, dst, mask)
	}
	for i := range c {
		if !keep[i] {
			buf[i] = byte(min(res[i], 255))
		}
	}
}

// packColor converts a premultiplied color to 8-bit lanes in B, G, R, A
// order.
func packColor(c mgl32.Vec4) [4]uint16 {
	return wide.F32x4{unorm(c[2]), unorm(c[1]), unorm(c[0]), unorm(c[3])}.RoundPixel(1)
}

func packR8(v float32) uint16 {
	return wide.F32x4{unorm(v)}.RoundPixel(1)[0]
}

// unorm clamps v to [0, 1], mapping NaN to 0.
func unorm(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
