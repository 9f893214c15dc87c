package swgl

// Enum is a GL enumerant. Names and values follow the GL headers so that
// callers porting GL code can use them unchanged.
type Enum = uint32

// General.
const (
	NONE     Enum = 0
	NO_ERROR Enum = 0
	FALSE    Enum = 0
	TRUE     Enum = 1
)

// Capabilities.
const (
	BLEND        Enum = 0x0BE2
	DEPTH_TEST   Enum = 0x0B71
	SCISSOR_TEST Enum = 0x0C11
)

// Blend factors.
const (
	ZERO                     Enum = 0
	ONE                      Enum = 1
	SRC_COLOR                Enum = 0x0300
	ONE_MINUS_SRC_COLOR      Enum = 0x0301
	SRC_ALPHA                Enum = 0x0302
	ONE_MINUS_SRC_ALPHA      Enum = 0x0303
	DST_ALPHA                Enum = 0x0304
	ONE_MINUS_DST_ALPHA      Enum = 0x0305
	DST_COLOR                Enum = 0x0306
	ONE_MINUS_DST_COLOR      Enum = 0x0307
	SRC_ALPHA_SATURATE       Enum = 0x0308
	CONSTANT_COLOR           Enum = 0x8001
	ONE_MINUS_CONSTANT_COLOR Enum = 0x8002
	CONSTANT_ALPHA           Enum = 0x8003
	ONE_MINUS_CONSTANT_ALPHA Enum = 0x8004
	SRC1_ALPHA               Enum = 0x8589
	SRC1_COLOR               Enum = 0x88F9
	ONE_MINUS_SRC1_COLOR     Enum = 0x88FA
	ONE_MINUS_SRC1_ALPHA     Enum = 0x88FB
)

// Blend equations.
const (
	FUNC_ADD           Enum = 0x8006
	MIN                Enum = 0x8007
	MAX                Enum = 0x8008
	MULTIPLY_KHR       Enum = 0x9294
	SCREEN_KHR         Enum = 0x9295
	OVERLAY_KHR        Enum = 0x9296
	DARKEN_KHR         Enum = 0x9297
	LIGHTEN_KHR        Enum = 0x9298
	COLORDODGE_KHR     Enum = 0x9299
	COLORBURN_KHR      Enum = 0x929A
	HARDLIGHT_KHR      Enum = 0x929B
	SOFTLIGHT_KHR      Enum = 0x929C
	DIFFERENCE_KHR     Enum = 0x929E
	EXCLUSION_KHR      Enum = 0x92A0
	HSL_HUE_KHR        Enum = 0x92AD
	HSL_SATURATION_KHR Enum = 0x92AE
	HSL_COLOR_KHR      Enum = 0x92AF
	HSL_LUMINOSITY_KHR Enum = 0x92B0
)

// Queryable parameters.
const (
	DEPTH_WRITEMASK          Enum = 0x0B72
	MAX_TEXTURE_UNITS        Enum = 0x84E2
	MAX_TEXTURE_IMAGE_UNITS  Enum = 0x8872
	MAX_TEXTURE_SIZE         Enum = 0x0D33
	MAX_ARRAY_TEXTURE_LAYERS Enum = 0x88FF
	NUM_EXTENSIONS           Enum = 0x821D
	MAJOR_VERSION            Enum = 0x821B
	MINOR_VERSION            Enum = 0x821C
)

// Depth functions.
const (
	NEVER    Enum = 0x0200
	LESS     Enum = 0x0201
	EQUAL    Enum = 0x0202
	LEQUAL   Enum = 0x0203
	GREATER  Enum = 0x0204
	NOTEQUAL Enum = 0x0205
	GEQUAL   Enum = 0x0206
	ALWAYS   Enum = 0x0207
)

// Binding targets.
const (
	TEXTURE_2D                  Enum = 0x0DE1
	TEXTURE_3D                  Enum = 0x806F
	TEXTURE_2D_ARRAY            Enum = 0x8C1A
	TEXTURE_RECTANGLE           Enum = 0x84F5
	ARRAY_BUFFER                Enum = 0x8892
	ELEMENT_ARRAY_BUFFER        Enum = 0x8893
	PIXEL_PACK_BUFFER           Enum = 0x88EB
	PIXEL_UNPACK_BUFFER         Enum = 0x88EC
	UNIFORM_BUFFER              Enum = 0x8A11
	FRAMEBUFFER                 Enum = 0x8D40
	READ_FRAMEBUFFER            Enum = 0x8CA8
	DRAW_FRAMEBUFFER            Enum = 0x8CA9
	RENDERBUFFER                Enum = 0x8D41
	TIME_ELAPSED                Enum = 0x88BF
	SAMPLES_PASSED              Enum = 0x8914
	READ_FRAMEBUFFER_BINDING    Enum = 0x8CAA
	DRAW_FRAMEBUFFER_BINDING    Enum = 0x8CA6
	PIXEL_PACK_BUFFER_BINDING   Enum = 0x88ED
	PIXEL_UNPACK_BUFFER_BINDING Enum = 0x88EF
)

// Buffer usage and access. Both are accepted and ignored.
const (
	STREAM_DRAW  Enum = 0x88E0
	STATIC_DRAW  Enum = 0x88E4
	DYNAMIC_DRAW Enum = 0x88E8
	READ_ONLY    Enum = 0x88B8
	WRITE_ONLY   Enum = 0x88B9
	READ_WRITE   Enum = 0x88BA
)

// Texture units.
const (
	TEXTURE0 Enum = 0x84C0
)

// Texture parameters.
const (
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803
	NEAREST            Enum = 0x2600
	LINEAR             Enum = 0x2601
	CLAMP_TO_EDGE      Enum = 0x812F
)

// Pixel formats and types.
const (
	RED                          Enum = 0x1903
	RG                           Enum = 0x8227
	RGB                          Enum = 0x1907
	RGBA                         Enum = 0x1908
	BGRA                         Enum = 0x80E1
	RGBA_INTEGER                 Enum = 0x8D99
	DEPTH_COMPONENT              Enum = 0x1902
	RGB_422_APPLE                Enum = 0x8A1F
	RGBA8                        Enum = 0x8058
	BGRA8                        Enum = 0x93A1
	R8                           Enum = 0x8229
	RG8                          Enum = 0x822B
	R16                          Enum = 0x822A
	RG16                         Enum = 0x822C
	RGBA32F                      Enum = 0x8814
	RGBA32I                      Enum = 0x8D82
	RGB_RAW_422_APPLE            Enum = 0x8A51
	DEPTH_COMPONENT16            Enum = 0x81A5
	DEPTH_COMPONENT24            Enum = 0x81A6
	DEPTH_COMPONENT32            Enum = 0x81A7
	UNSIGNED_BYTE                Enum = 0x1401
	UNSIGNED_SHORT               Enum = 0x1403
	INT                          Enum = 0x1404
	UNSIGNED_INT                 Enum = 0x1405
	FLOAT                        Enum = 0x1406
	DOUBLE                       Enum = 0x140A
	UNSIGNED_INT_8_8_8_8_REV     Enum = 0x8367
	UNSIGNED_SHORT_8_8_APPLE     Enum = 0x85BA
	UNSIGNED_SHORT_8_8_REV_APPLE Enum = 0x85BB
	UNPACK_ROW_LENGTH            Enum = 0x0CF2
	UNPACK_ALIGNMENT             Enum = 0x0CF5
	PACK_ALIGNMENT               Enum = 0x0D05
)

// Framebuffers.
const (
	COLOR_ATTACHMENT0       Enum = 0x8CE0
	DEPTH_ATTACHMENT        Enum = 0x8D00
	FRAMEBUFFER_COMPLETE    Enum = 0x8CD5
	FRAMEBUFFER_UNSUPPORTED Enum = 0x8CDD
	COLOR_BUFFER_BIT        Enum = 0x00004000
	DEPTH_BUFFER_BIT        Enum = 0x00000100
)

// Primitives.
const (
	LINES     Enum = 0x0001
	TRIANGLES Enum = 0x0004
)

// Shaders.
const (
	FRAGMENT_SHADER Enum = 0x8B30
	VERTEX_SHADER   Enum = 0x8B31
)

// Queries and strings.
const (
	QUERY_RESULT Enum = 0x8866
	VENDOR       Enum = 0x1F00
	RENDERER     Enum = 0x1F01
	VERSION      Enum = 0x1F02
	EXTENSIONS   Enum = 0x1F03
)
