package swgl

import (
	"github.com/gogpu/swgl/internal/geom"
	"github.com/gogpu/swgl/internal/texture"
)

// requiresConversion reports whether pixels supplied in external layout
// must be converted for storage in internal. RGBA8 storage is BGRA, so
// RGBA input is swizzled.
func requiresConversion(external Enum, internal texture.Format) bool {
	return external == RGBA && internal == texture.FormatRGBA8
}

// convertCopy copies width by height texels between row-strided buffers,
// swapping red and blue when converting RGBA input to RGBA8 storage.
func convertCopy(external Enum, internal texture.Format, dst []byte, dstStride int, src []byte, srcStride, width, height int) {
	rowBytes := width * internal.BytesPerPixel()
	swap := requiresConversion(external, internal)
	for y := range height {
		d := dst[y*dstStride:][:rowBytes]
		s := src[y*srcStride:][:rowBytes]
		if !swap {
			copy(d, s)
			continue
		}
		for x := 0; x < rowBytes; x += 4 {
			d[x+0], d[x+1], d[x+2], d[x+3] = s[x+2], s[x+1], s[x+0], s[x+3]
		}
	}
}

// internalFormatForData returns the storage format matching pixel data
// of the given format and type, or FormatNone.
func internalFormatForData(format, ty Enum) texture.Format {
	switch {
	case format == RED && ty == UNSIGNED_BYTE:
		return texture.FormatR8
	case (format == RGBA || format == BGRA) && (ty == UNSIGNED_BYTE || ty == UNSIGNED_INT_8_8_8_8_REV):
		return texture.FormatRGBA8
	case format == RGBA && ty == FLOAT:
		return texture.FormatRGBA32F
	case format == RGBA_INTEGER && ty == INT:
		return texture.FormatRGBA32I
	case format == RG && ty == UNSIGNED_BYTE:
		return texture.FormatRG8
	case format == RGB_422_APPLE && ty == UNSIGNED_SHORT_8_8_REV_APPLE:
		return texture.FormatYUV422
	case format == RED && ty == UNSIGNED_SHORT:
		return texture.FormatR16
	}
	return texture.FormatNone
}

// sizeChanged updates the size and format of t, reporting whether any of
// them differed.
func sizeChanged(t *texture.Texture, f texture.Format, w, h, d int) bool {
	if t.Width == w && t.Height == h && t.Depth == d && t.Format == f {
		return false
	}
	t.Format, t.Width, t.Height, t.Depth = f, w, h, d
	return true
}

// setTexStorage gives t a 2D layout. A nil buf allocates owned storage.
// Otherwise buf becomes the storage, unless its layout needs conversion,
// in which case it is copied into owned storage.
func (c *Context) setTexStorage(op string, t *texture.Texture, external Enum, w, h int, buf []byte, stride, minW, minH int) {
	internal := texture.Remap(texture.Format(external))
	if !internal.Valid() {
		c.invalid(op, ErrInvalidEnum, "internal format %#x", external)
		return
	}
	if w < 0 || h < 0 {
		c.invalid(op, ErrInvalidValue, "size %dx%d", w, h)
		return
	}
	if t.Locked() {
		c.invalid(op, ErrLocked, "respecifying storage")
		return
	}
	changed := sizeChanged(t, internal, w, h, 0)
	shouldFree := buf == nil || requiresConversion(external, internal)
	if t.ShouldFree() != shouldFree {
		changed = true
		t.Cleanup()
		t.SetShouldFree(shouldFree)
	}
	if !shouldFree {
		t.SetBuffer(buf, stride)
	}
	t.DisableDelayedClear()
	if t.Allocate(changed, minW, minH) {
		c.log.Debug("swgl: texture allocated", "format", internal, "width", w, "height", h)
	}
	if buf != nil && shouldFree && t.Buf() != nil {
		convertCopy(external, internal, t.Buf(), t.Stride(), buf, stride, w, h)
	}
}

// TexStorage2D allocates storage for the texture bound to target. Only a
// single level is supported.
func (c *Context) TexStorage2D(target Enum, levels int32, internalFormat Enum, width, height int32) {
	if levels != 1 {
		c.invalid("TexStorage2D", ErrInvalidValue, "levels %d", levels)
		return
	}
	_, t := c.boundTexture("TexStorage2D", target)
	if t == nil {
		return
	}
	c.setTexStorage("TexStorage2D", t, internalFormat, int(width), int(height), nil, 0, 0, 0)
}

// TexStorage3D allocates storage for the array texture bound to target.
func (c *Context) TexStorage3D(target Enum, levels int32, internalFormat Enum, width, height, depth int32) {
	const op = "TexStorage3D"
	if levels != 1 {
		c.invalid(op, ErrInvalidValue, "levels %d", levels)
		return
	}
	_, t := c.boundTexture(op, target)
	if t == nil {
		return
	}
	internal := texture.Remap(texture.Format(internalFormat))
	if !internal.Valid() {
		c.invalid(op, ErrInvalidEnum, "internal format %#x", internalFormat)
		return
	}
	if width < 0 || height < 0 || depth < 0 {
		c.invalid(op, ErrInvalidValue, "size %dx%dx%d", width, height, depth)
		return
	}
	if t.Locked() {
		c.invalid(op, ErrLocked, "respecifying storage")
		return
	}
	changed := sizeChanged(t, internal, int(width), int(height), int(depth))
	t.DisableDelayedClear()
	if t.Allocate(changed, 0, 0) {
		c.log.Debug("swgl: texture allocated", "format", internal, "width", width, "height", height, "layers", depth)
	}
}

// TexImage2D allocates storage and uploads data, which may be nil.
func (c *Context) TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, ty Enum, data []byte) {
	if level != 0 {
		c.invalid("TexImage2D", ErrInvalidValue, "level %d", level)
		return
	}
	c.TexStorage2D(target, 1, internalFormat, width, height)
	c.TexSubImage2D(target, 0, 0, 0, width, height, format, ty, data)
}

// TexImage3D allocates array storage and uploads data, which may be nil.
func (c *Context) TexImage3D(target Enum, level int32, internalFormat Enum, width, height, depth int32, format, ty Enum, data []byte) {
	if level != 0 {
		c.invalid("TexImage3D", ErrInvalidValue, "level %d", level)
		return
	}
	c.TexStorage3D(target, 1, internalFormat, width, height, depth)
	c.TexSubImage3D(target, 0, 0, 0, 0, width, height, depth, format, ty, data)
}

// unpackSource returns the pixels an upload reads: the storage of the
// buffer bound to PIXEL_UNPACK_BUFFER when one is bound, else data.
func (c *Context) unpackSource(data []byte) []byte {
	if c.pixelUnpackBuffer != 0 {
		if b := c.buffers.Find(c.pixelUnpackBuffer); b != nil {
			return b.buf
		}
		return nil
	}
	return data
}

// checkUpload validates an upload into t and returns the source row
// stride in bytes.
func (c *Context) checkUpload(op string, t *texture.Texture, x, y, z, w, h, d int, format, ty Enum, src []byte) (int, bool) {
	if want := internalFormatForData(format, ty); want == texture.FormatNone || want != t.Format {
		c.invalid(op, ErrInvalidOperation, "data %#x/%#x does not match %v storage", format, ty, t.Format)
		return 0, false
	}
	if x < 0 || y < 0 || z < 0 || w < 0 || h < 0 || d < 0 ||
		x+w > t.Width || y+h > t.Height || z+d > max(t.Depth, 1) {
		c.invalid(op, ErrInvalidValue, "region %d,%d,%d %dx%dx%d outside %dx%dx%d", x, y, z, w, h, d, t.Width, t.Height, t.Depth)
		return 0, false
	}
	rowLength := w
	if c.unpackRowLength != 0 {
		if c.unpackRowLength < w {
			c.invalid(op, ErrInvalidValue, "row length %d below width %d", c.unpackRowLength, w)
			return 0, false
		}
		rowLength = c.unpackRowLength
	}
	stride := rowLength * t.Format.BytesPerPixel()
	if h > 0 && d > 0 && len(src) < stride*(h*d-1)+w*t.Format.BytesPerPixel() {
		c.invalid(op, ErrInvalidValue, "%d bytes for %dx%dx%d region", len(src), w, h, d)
		return 0, false
	}
	return stride, t.Buf() != nil
}

// TexSubImage2D uploads a region of the texture bound to target. RGBA
// data is swizzled into RGBA8 storage; BGRA data is copied directly.
func (c *Context) TexSubImage2D(target Enum, level, x, y, width, height int32, format, ty Enum, data []byte) {
	const op = "TexSubImage2D"
	if level != 0 {
		c.invalid(op, ErrInvalidValue, "level %d", level)
		return
	}
	src := c.unpackSource(data)
	if src == nil {
		return
	}
	_, t := c.boundTexture(op, target)
	if t == nil {
		return
	}
	skip := geom.Rect(x, y, x+width, y+height)
	t.ForceClear(&skip)
	stride, ok := c.checkUpload(op, t, int(x), int(y), 0, int(width), int(height), 1, format, ty, src)
	if !ok {
		return
	}
	convertCopy(format, t.Format, t.Buf()[t.PixelOffset(int(x), int(y), 0):], t.Stride(),
		src, stride, int(width), int(height))
}

// TexSubImage3D uploads a region of layers of the array texture bound to
// target. Layers are read consecutively from data.
func (c *Context) TexSubImage3D(target Enum, level, x, y, z, width, height, depth int32, format, ty Enum, data []byte) {
	const op = "TexSubImage3D"
	if level != 0 {
		c.invalid(op, ErrInvalidValue, "level %d", level)
		return
	}
	src := c.unpackSource(data)
	if src == nil {
		return
	}
	_, t := c.boundTexture(op, target)
	if t == nil {
		return
	}
	t.Prepare()
	stride, ok := c.checkUpload(op, t, int(x), int(y), int(z), int(width), int(height), int(depth), format, ty, src)
	if !ok {
		return
	}
	for layer := range int(depth) {
		dst := t.Buf()[t.PixelOffset(int(x), int(y), int(z)+layer):]
		convertCopy(format, t.Format, dst, t.Stride(), src[layer*stride*int(height):], stride, int(width), int(height))
	}
}

// TexParameteri sets a sampling parameter of the texture bound to target.
// Only CLAMP_TO_EDGE wrapping is supported.
func (c *Context) TexParameteri(target Enum, name Enum, param int32) {
	_, t := c.boundTexture("TexParameteri", target)
	if t == nil {
		return
	}
	switch name {
	case TEXTURE_WRAP_S, TEXTURE_WRAP_T:
		if Enum(param) != CLAMP_TO_EDGE {
			c.invalid("TexParameteri", ErrInvalidValue, "wrap mode %#x", param)
		}
	case TEXTURE_MIN_FILTER:
		t.MinFilter = filterFromEnum(Enum(param))
	case TEXTURE_MAG_FILTER:
		t.MagFilter = filterFromEnum(Enum(param))
	default:
		c.invalid("TexParameteri", ErrInvalidEnum, "parameter %#x", name)
	}
}

func filterFromEnum(e Enum) texture.Filter {
	switch e {
	case NEAREST:
		return texture.Nearest
	case LINEAR:
		return texture.Linear
	}
	return texture.FilterDefault
}

// SetTextureBuffer points a texture at a host-owned pixel buffer of the
// given layout. minWidth and minHeight reserve room so the texture can
// later grow without reallocation. A nil buf allocates owned storage.
// RGBA input is copied into owned storage since it needs swizzling.
func (c *Context) SetTextureBuffer(handle uint32, internalFormat Enum, width, height, stride int32, buf []byte, minWidth, minHeight int32) {
	t := c.textures.Get(handle)
	if t == nil {
		return
	}
	c.setTexStorage("SetTextureBuffer", t, internalFormat, int(width), int(height), buf, int(stride), int(minWidth), int(minHeight))
}
