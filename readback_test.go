package swgl

import (
	"bytes"
	"testing"
)

// blitSetup creates a 2x2 source framebuffer holding pixels and a w by h
// destination, bound for reading and drawing respectively.
func blitSetup(t *testing.T, pixels []byte, w, h int32) *Context {
	t.Helper()
	c := newTestContext(t)
	src, srcFBO := newColorTarget(c, 2, 2)
	c.BindTexture(TEXTURE_2D, src)
	c.TexSubImage2D(TEXTURE_2D, 0, 0, 0, 2, 2, RGBA, UNSIGNED_BYTE, pixels)
	_, dstFBO := newColorTarget(c, w, h)
	c.BindFramebuffer(READ_FRAMEBUFFER, srcFBO)
	c.BindFramebuffer(DRAW_FRAMEBUFFER, dstFBO)
	return c
}

// quadrants are the RGBA pixels of a 2x2 image, row by row.
var quadrants = []byte{
	255, 0, 0, 255, 0, 255, 0, 255,
	0, 0, 255, 255, 255, 255, 255, 255,
}

func quadrant(x, y int) [4]byte { return rgbaAt(quadrants, 2, x, y) }

// readDraw reads the draw framebuffer's color attachment.
func readDraw(c *Context, w, h int32) []byte {
	c.BindFramebuffer(READ_FRAMEBUFFER, c.drawFramebuffer)
	return readRGBA(c, w, h)
}

func TestBlitFramebuffer_NearestUpscale(t *testing.T) {
	c := blitSetup(t, quadrants, 4, 4)
	c.BlitFramebuffer(0, 0, 2, 2, 0, 0, 4, 4, COLOR_BUFFER_BIT, NEAREST)

	buf := readDraw(c, 4, 4)
	for y := range 4 {
		for x := range 4 {
			if got, want := rgbaAt(buf, 4, x, y), quadrant(x/2, y/2); got != want {
				t.Errorf("pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBlitFramebuffer_Copy(t *testing.T) {
	c := blitSetup(t, quadrants, 4, 4)
	c.BlitFramebuffer(0, 0, 2, 2, 1, 2, 3, 4, COLOR_BUFFER_BIT, LINEAR)

	buf := readDraw(c, 4, 4)
	for y := range 2 {
		for x := range 2 {
			if got, want := rgbaAt(buf, 4, x+1, y+2), quadrant(x, y); got != want {
				t.Errorf("pixel(%d,%d) = %v, want %v", x+1, y+2, got, want)
			}
		}
	}
	if got := rgbaAt(buf, 4, 0, 0); got != [4]byte{} {
		t.Errorf("pixel outside the blit = %v", got)
	}
}

func TestBlitFramebuffer_Invert(t *testing.T) {
	c := blitSetup(t, quadrants, 2, 2)
	c.BlitFramebuffer(0, 0, 2, 2, 0, 2, 2, 0, COLOR_BUFFER_BIT, NEAREST)

	buf := readDraw(c, 2, 2)
	for y := range 2 {
		for x := range 2 {
			if got, want := rgbaAt(buf, 2, x, y), quadrant(x, 1-y); got != want {
				t.Errorf("pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBlitFramebuffer_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		dstX0  int32
		dstX1  int32
		mask   Enum
		filter Enum
		want   error
	}{
		{"horizontal flip", 2, 0, COLOR_BUFFER_BIT, NEAREST, ErrInvalidValue},
		{"depth mask", 0, 2, COLOR_BUFFER_BIT | DEPTH_BUFFER_BIT, NEAREST, ErrInvalidValue},
		{"filter", 0, 2, COLOR_BUFFER_BIT, CLAMP_TO_EDGE, ErrInvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := blitSetup(t, quadrants, 2, 2)
			expectPanic(t, tt.want, func() {
				c.BlitFramebuffer(0, 0, 2, 2, tt.dstX0, 0, tt.dstX1, 2, tt.mask, tt.filter)
			})
		})
	}
}

func TestCopyImageSubData(t *testing.T) {
	c := newTestContext(t)
	src, _ := newColorTarget(c, 2, 2)
	c.BindTexture(TEXTURE_2D, src)
	c.TexSubImage2D(TEXTURE_2D, 0, 0, 0, 2, 2, RGBA, UNSIGNED_BYTE, quadrants)
	dst, _ := newColorTarget(c, 3, 3)

	c.CopyImageSubData(src, TEXTURE_2D, 0, 1, 0, 0, dst, TEXTURE_2D, 0, 2, 1, 0, 1, 2, 1)

	buf := readRGBA(c, 3, 3)
	if got := rgbaAt(buf, 3, 2, 1); got != quadrant(1, 0) {
		t.Errorf("pixel(2,1) = %v, want %v", got, quadrant(1, 0))
	}
	if got := rgbaAt(buf, 3, 2, 2); got != quadrant(1, 1) {
		t.Errorf("pixel(2,2) = %v, want %v", got, quadrant(1, 1))
	}
	if got := rgbaAt(buf, 3, 0, 0); got != [4]byte{} {
		t.Errorf("pixel(0,0) = %v, want untouched", got)
	}

	expectPanic(t, ErrInvalidValue, func() {
		c.CopyImageSubData(src, TEXTURE_2D, 0, 1, 1, 0, dst, TEXTURE_2D, 0, 0, 0, 0, 2, 2, 1)
	})
}

func TestCopyImageSubData_FormatMismatch(t *testing.T) {
	c := newTestContext(t)
	src, _ := newColorTarget(c, 2, 2)
	dst := c.GenTextures(1)[0]
	c.BindTexture(TEXTURE_2D, dst)
	c.TexStorage2D(TEXTURE_2D, 1, R8, 2, 2)

	expectPanic(t, ErrInvalidOperation, func() {
		c.CopyImageSubData(src, TEXTURE_2D, 0, 0, 0, 0, dst, TEXTURE_2D, 0, 0, 0, 0, 2, 2, 1)
	})
}

func TestCopyTexSubImage2D(t *testing.T) {
	c := newTestContext(t)
	src, _ := newColorTarget(c, 2, 2)
	c.BindTexture(TEXTURE_2D, src)
	c.TexSubImage2D(TEXTURE_2D, 0, 0, 0, 2, 2, RGBA, UNSIGNED_BYTE, quadrants)

	dst := c.GenTextures(1)[0]
	c.BindTexture(TEXTURE_2D, dst)
	c.TexStorage2D(TEXTURE_2D, 1, RGBA8, 2, 2)
	c.CopyTexSubImage2D(TEXTURE_2D, 0, 0, 0, 0, 0, 2, 2)

	if got := c.textures.Find(dst).Buf()[:16]; !bytes.Equal(got, bgraOf(quadrants)[:16]) {
		t.Errorf("copied row = %v", got)
	}
}

func TestReadPixels_Offset(t *testing.T) {
	c := newTestContext(t)
	host := make([]byte, 4*4*4)
	c.InitDefaultFramebuffer(10, 20, 4, 4, 16, host)
	c.BindFramebuffer(FRAMEBUFFER, 0)
	c.ClearColor(1, 0, 0, 1)
	c.Clear(COLOR_BUFFER_BIT)

	// Only the pixel at host (13, 23) overlaps the surface.
	got := bytes.Repeat([]byte{7}, 16)
	c.ReadPixels(13, 23, 2, 2, RGBA, UNSIGNED_BYTE, got)
	want := append([]byte{255, 0, 0, 255}, bytes.Repeat([]byte{7}, 12)...)
	if !bytes.Equal(got, want) {
		t.Errorf("ReadPixels() = %v, want %v", got, want)
	}

	expectPanic(t, ErrInvalidValue, func() {
		c.ReadPixels(10, 20, 4, 4, RGBA, UNSIGNED_BYTE, make([]byte, 8))
	})
	expectPanic(t, ErrInvalidEnum, func() {
		c.ReadPixels(10, 20, 1, 1, DEPTH_COMPONENT, UNSIGNED_BYTE, make([]byte, 4))
	})
}
