package swgl

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/swgl/internal/geom"
	"github.com/gogpu/swgl/internal/texture"
)

// packDest returns where ReadPixels writes: the storage of the buffer
// bound to PIXEL_PACK_BUFFER when one is bound, else data.
func (c *Context) packDest(data []byte) []byte {
	if c.pixelPackBuffer != 0 {
		if b := c.buffers.Find(c.pixelPackBuffer); b != nil {
			return b.buf
		}
		return nil
	}
	return data
}

// ReadPixels copies a rectangle of the read framebuffer's color
// attachment, given in host surface coordinates, into data as tightly
// packed rows. The format and type must match the attachment's storage;
// RGBA requests swizzle RGBA8 storage back from BGRA. Parts of the
// rectangle outside the attachment are left untouched.
func (c *Context) ReadPixels(x, y, width, height int32, format, ty Enum, data []byte) {
	const op = "ReadPixels"
	dst := c.packDest(data)
	if dst == nil {
		return
	}
	fb := c.framebuffer(READ_FRAMEBUFFER)
	if fb == nil {
		return
	}
	switch format {
	case RED, RG, RGBA, BGRA, RGBA_INTEGER:
	default:
		c.invalid(op, ErrInvalidEnum, "format %#x", format)
		return
	}
	t := c.textures.Find(fb.color)
	if t == nil || t.Buf() == nil {
		return
	}
	t.Prepare()
	if f := internalFormatForData(format, ty); f != t.Format {
		c.invalid(op, ErrInvalidOperation, "data %#x/%#x does not match %v storage", format, ty, t.Format)
		return
	}
	bpp := t.Bpp()
	dstStride := int(width) * bpp
	if len(dst) < dstStride*int(height) {
		c.invalid(op, ErrInvalidValue, "%d bytes for %dx%d pixels", len(dst), width, height)
		return
	}
	req := geom.Rect(x, y, x+width, y+height).Offset(-t.Offset.X, -t.Offset.Y)
	bb := req.Intersection(t.Bounds())
	if bb.IsEmpty() {
		return
	}
	off := int(bb.Y0-req.Y0)*dstStride + int(bb.X0-req.X0)*bpp
	src := t.Buf()[t.PixelOffset(int(bb.X0), int(bb.Y0), fb.layer):]
	convertCopy(format, t.Format, dst[off:], dstStride, src, t.Stride(), int(bb.Width()), int(bb.Height()))
}

// copyTarget resolves the texture named by an image copy, mapping
// renderbuffers to their backing texture.
func (c *Context) copyTarget(name uint32, target Enum) *texture.Texture {
	if target == RENDERBUFFER {
		rb := c.renderbuffers.Find(name)
		if rb == nil {
			return nil
		}
		name = rb.texture
	}
	return c.textures.Find(name)
}

// CopyImageSubData copies a box of texels between two textures of the
// same format.
func (c *Context) CopyImageSubData(
	srcName uint32, srcTarget Enum, srcLevel, srcX, srcY, srcZ int32,
	dstName uint32, dstTarget Enum, dstLevel, dstX, dstY, dstZ int32,
	width, height, depth int32,
) {
	const op = "CopyImageSubData"
	if srcLevel != 0 || dstLevel != 0 {
		c.invalid(op, ErrInvalidValue, "levels %d, %d", srcLevel, dstLevel)
		return
	}
	src := c.copyTarget(srcName, srcTarget)
	if src == nil || src.Buf() == nil {
		return
	}
	src.Prepare()
	dst := c.copyTarget(dstName, dstTarget)
	if dst == nil || dst.Buf() == nil {
		return
	}
	if dst.Locked() {
		c.invalid(op, ErrLocked, "copy destination")
		return
	}
	skip := geom.Rect(dstX, dstY, dstX+width, dstY+height)
	dst.ForceClear(&skip)
	switch {
	case src.Format != dst.Format:
		c.invalid(op, ErrInvalidOperation, "formats %v and %v differ", src.Format, dst.Format)
		return
	case width < 0 || height < 0 || depth < 0,
		srcX < 0 || srcY < 0 || srcZ < 0 || dstX < 0 || dstY < 0 || dstZ < 0,
		int(srcX+width) > src.Width || int(srcY+height) > src.Height || int(srcZ+depth) > max(src.Depth, 1),
		int(dstX+width) > dst.Width || int(dstY+height) > dst.Height || int(dstZ+depth) > max(dst.Depth, 1):
		c.invalid(op, ErrInvalidValue, "box %dx%dx%d out of bounds", width, height, depth)
		return
	}
	rowBytes := int(width) * src.Bpp()
	for z := range int(depth) {
		for y := range int(height) {
			s := src.PixelOffset(int(srcX), int(srcY)+y, int(srcZ)+z)
			d := dst.PixelOffset(int(dstX), int(dstY)+y, int(dstZ)+z)
			copy(dst.Buf()[d:d+rowBytes], src.Buf()[s:s+rowBytes])
		}
	}
}

// CopyTexSubImage2D copies from the read framebuffer's color attachment
// into the texture bound to target.
func (c *Context) CopyTexSubImage2D(target Enum, level, xoffset, yoffset, x, y, width, height int32) {
	c.CopyTexSubImage3D(target, level, xoffset, yoffset, 0, x, y, width, height)
}

// CopyTexSubImage3D copies from the read framebuffer's color attachment
// into layer zoffset of the texture bound to target.
func (c *Context) CopyTexSubImage3D(target Enum, level, xoffset, yoffset, zoffset, x, y, width, height int32) {
	fb := c.framebuffer(READ_FRAMEBUFFER)
	if fb == nil {
		return
	}
	dst := *c.binding("CopyTexSubImage", target)
	c.CopyImageSubData(fb.color, TEXTURE_2D_ARRAY, level, x, y, int32(fb.layer),
		dst, TEXTURE_2D_ARRAY, level, xoffset, yoffset, zoffset, width, height, 1)
}

// imageView wraps one layer of a texture as an image.Image of the same
// memory. RGBA8 storage is exposed as image.RGBA with red and blue
// swapped, which scaling does not observe.
func imageView(t *texture.Texture, layer int) (draw.Image, bool) {
	pix := t.Buf()[t.PixelOffset(0, 0, layer):]
	r := image.Rect(0, 0, t.Width, t.Height)
	switch t.Format {
	case texture.FormatRGBA8:
		return &image.RGBA{Pix: pix, Stride: t.Stride(), Rect: r}, true
	case texture.FormatR8:
		return &image.Gray{Pix: pix, Stride: t.Stride(), Rect: r}, true
	}
	return nil, false
}

// BlitFramebuffer copies a rectangle of the read framebuffer's color
// attachment into a rectangle of the draw framebuffer's, scaling with
// NEAREST or LINEAR filtering. Rectangles are in texture coordinates;
// opposite y orientations of the two rectangles flip the image
// vertically. Only COLOR_BUFFER_BIT is supported.
func (c *Context) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter Enum) {
	const op = "BlitFramebuffer"
	if mask != COLOR_BUFFER_BIT {
		c.invalid(op, ErrInvalidValue, "mask %#x", mask)
		return
	}
	var scaler draw.Scaler
	switch filter {
	case NEAREST:
		scaler = draw.NearestNeighbor
	case LINEAR:
		scaler = draw.ApproxBiLinear
	default:
		c.invalid(op, ErrInvalidEnum, "filter %#x", filter)
		return
	}
	if (srcX0 > srcX1) != (dstX0 > dstX1) {
		c.invalid(op, ErrInvalidValue, "horizontal flip")
		return
	}
	readFB, drawFB := c.framebuffer(READ_FRAMEBUFFER), c.framebuffer(DRAW_FRAMEBUFFER)
	if readFB == nil || drawFB == nil {
		return
	}
	src, dst := c.textures.Find(readFB.color), c.textures.Find(drawFB.color)
	if src == nil || dst == nil || src.Buf() == nil || dst.Buf() == nil {
		return
	}
	if src.Format != dst.Format {
		c.invalid(op, ErrInvalidOperation, "formats %v and %v differ", src.Format, dst.Format)
		return
	}
	if dst.Locked() {
		c.invalid(op, ErrLocked, "blit destination")
		return
	}
	invert := (srcY0 > srcY1) != (dstY0 > dstY1)
	sr := image.Rect(int(srcX0), int(srcY0), int(srcX1), int(srcY1)).Intersect(image.Rect(0, 0, src.Width, src.Height))
	dr := image.Rect(int(dstX0), int(dstY0), int(dstX1), int(dstY1))
	if sr.Empty() || dr.Empty() {
		return
	}
	src.Prepare()
	skip := geom.Rect(int32(dr.Min.X), int32(dr.Min.Y), int32(dr.Max.X), int32(dr.Max.Y))
	dst.ForceClear(&skip)
	si, ok := imageView(src, readFB.layer)
	di, _ := imageView(dst, drawFB.layer)
	if !ok {
		c.invalid(op, ErrUnsupportedFormat, "blitting %v", src.Format)
		return
	}
	if !invert {
		if sr.Size() == dr.Size() {
			draw.Copy(di, dr.Min, si, sr, draw.Src, nil)
		} else {
			scaler.Scale(di, dr, si, sr, draw.Src, nil)
		}
		return
	}
	// Scale into a scratch image, then write its rows bottom up.
	tmp := &texture.Texture{Format: src.Format, Width: dr.Dx(), Height: dr.Dy()}
	tmp.Allocate(true, 0, 0)
	ti, _ := imageView(tmp, 0)
	scaler.Scale(ti, ti.Bounds(), si, sr, draw.Src, nil)
	row := image.Rect(0, 0, dr.Dx(), 1)
	for y := range dr.Dy() {
		draw.Copy(di, image.Pt(dr.Min.X, dr.Max.Y-1-y), ti, row.Add(image.Pt(0, y)), draw.Src, nil)
	}
}
