package swgl

import "time"

// extensions lists the extension strings reported by GetStringi.
var extensions = [...]string{
	"GL_ARB_blend_func_extended",
	"GL_ARB_clear_texture",
	"GL_ARB_copy_image",
	"GL_ARB_draw_instanced",
	"GL_ARB_explicit_attrib_location",
	"GL_ARB_instanced_arrays",
	"GL_ARB_invalidate_subdata",
	"GL_ARB_texture_storage",
	"GL_EXT_timer_query",
	"GL_KHR_blend_equation_advanced",
	"GL_KHR_blend_equation_advanced_coherent",
	"GL_APPLE_rgb_422",
}

// maxTextureSize bounds texture dimensions and array layers.
const maxTextureSize = 1 << 15

// GetError always reports NO_ERROR. Invalid calls panic in strict mode
// and are logged otherwise.
func (c *Context) GetError() Enum { return NO_ERROR }

// GetIntegerv returns an integer state value.
func (c *Context) GetIntegerv(name Enum) int32 {
	switch name {
	case MAX_TEXTURE_UNITS, MAX_TEXTURE_IMAGE_UNITS:
		return maxTextureUnits
	case MAX_TEXTURE_SIZE, MAX_ARRAY_TEXTURE_LAYERS:
		return maxTextureSize
	case READ_FRAMEBUFFER_BINDING:
		return int32(c.readFramebuffer)
	case DRAW_FRAMEBUFFER_BINDING:
		return int32(c.drawFramebuffer)
	case PIXEL_PACK_BUFFER_BINDING:
		return int32(c.pixelPackBuffer)
	case PIXEL_UNPACK_BUFFER_BINDING:
		return int32(c.pixelUnpackBuffer)
	case NUM_EXTENSIONS:
		return int32(len(extensions))
	case MAJOR_VERSION:
		return 3
	case MINOR_VERSION:
		return 2
	}
	c.invalid("GetIntegerv", ErrInvalidEnum, "parameter %#x", name)
	return 0
}

// GetBooleanv returns a boolean state value.
func (c *Context) GetBooleanv(name Enum) bool {
	if name == DEPTH_WRITEMASK {
		return c.depthMask
	}
	c.invalid("GetBooleanv", ErrInvalidEnum, "parameter %#x", name)
	return false
}

// GetString returns VENDOR, RENDERER or VERSION.
func (c *Context) GetString(name Enum) string {
	switch name {
	case VENDOR:
		return c.opts.vendor
	case RENDERER:
		return c.opts.renderer
	case VERSION:
		return "3.2"
	}
	c.invalid("GetString", ErrInvalidEnum, "name %#x", name)
	return ""
}

// GetStringi returns extension string i, or "" past the end.
func (c *Context) GetStringi(name Enum, i uint32) string {
	if name != EXTENSIONS {
		c.invalid("GetStringi", ErrInvalidEnum, "name %#x", name)
		return ""
	}
	if int(i) >= len(extensions) {
		return ""
	}
	return extensions[i]
}

// epoch anchors query timestamps to the monotonic clock.
var epoch = time.Now()

func timeValue() uint64 { return uint64(time.Since(epoch)) }

// BeginQuery starts a SAMPLES_PASSED or TIME_ELAPSED query.
func (c *Context) BeginQuery(target Enum, handle uint32) {
	switch target {
	case SAMPLES_PASSED, TIME_ELAPSED:
	default:
		c.invalid("BeginQuery", ErrInvalidEnum, "target %#x", target)
		return
	}
	q := c.queries.Get(handle)
	if q == nil {
		return
	}
	*c.binding("BeginQuery", target) = handle
	if target == SAMPLES_PASSED {
		q.value = 0
	} else {
		q.value = timeValue()
	}
}

// EndQuery finishes the active query of target. A TIME_ELAPSED query
// then holds the elapsed nanoseconds.
func (c *Context) EndQuery(target Enum) {
	switch target {
	case SAMPLES_PASSED, TIME_ELAPSED:
	default:
		c.invalid("EndQuery", ErrInvalidEnum, "target %#x", target)
		return
	}
	b := c.binding("EndQuery", target)
	if q := c.queries.Get(*b); q != nil && target == TIME_ELAPSED {
		q.value = timeValue() - q.value
	}
	*b = 0
}

// GetQueryObjectui64v returns the QUERY_RESULT of a query.
func (c *Context) GetQueryObjectui64v(handle uint32, name Enum) uint64 {
	if name != QUERY_RESULT {
		c.invalid("GetQueryObjectui64v", ErrInvalidEnum, "parameter %#x", name)
		return 0
	}
	if q := c.queries.Find(handle); q != nil {
		return q.value
	}
	return 0
}
