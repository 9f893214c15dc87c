package swgl

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureDescriptor describes a texture's storage for uploading it to a
// GPU texture of the same memory layout. Array textures map to 2D array
// textures. RGBA8 storage maps to BGRA8Unorm.
func (c *Context) TextureDescriptor(handle uint32) (gputypes.TextureDescriptor, error) {
	t := c.textures.Find(handle)
	if t == nil {
		return gputypes.TextureDescriptor{}, fmt.Errorf("swgl: TextureDescriptor: %w: texture %d", ErrInvalidValue, handle)
	}
	format := t.Format.GPUFormat()
	if format == gputypes.TextureFormatUndefined {
		return gputypes.TextureDescriptor{}, fmt.Errorf("swgl: TextureDescriptor: %w: %v", ErrUnsupportedFormat, t.Format)
	}
	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if format.HasDepth() {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	return gputypes.TextureDescriptor{
		Label: fmt.Sprintf("swgl texture %d", handle),
		Size: gputypes.Extent3D{
			Width:              uint32(t.Width),
			Height:             uint32(t.Height),
			DepthOrArrayLayers: uint32(max(t.Depth, 1)),
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	}, nil
}
