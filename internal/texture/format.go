// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture holds the storage record shared by color and depth
// attachments: format, size, row layout, ownership, locking and the
// delayed-clear bookkeeping.
package texture

import "github.com/gogpu/gputypes"

// Format is a sized internal format. Values are the GL enums.
type Format uint32

// Internal formats understood by the texture layer.
const (
	FormatNone    Format = 0
	FormatRGBA32F Format = 0x8814
	FormatRGBA32I Format = 0x8D82
	FormatRGBA8   Format = 0x8058
	FormatR8      Format = 0x8229
	FormatRG8     Format = 0x822B
	FormatR16     Format = 0x822A
	FormatRG16    Format = 0x822C
	FormatYUV422  Format = 0x8A51
	FormatDepth16 Format = 0x81A5
)

// Unsized and alias formats accepted from callers.
const (
	formatRGBA    Format = 0x1908
	formatBGRA8   Format = 0x93A1
	formatRed     Format = 0x1903
	formatRG      Format = 0x8227
	formatDepth   Format = 0x1902
	formatDepth24 Format = 0x81A6
	formatDepth32 Format = 0x81A7
	formatRGB422  Format = 0x8A1F
	formatBGRA    Format = 0x80E1
)

// Remap maps unsized or alias formats to the sized internal format used
// for storage. Sized formats are returned unchanged.
func Remap(f Format) Format {
	switch f {
	case formatDepth, formatDepth24, formatDepth32:
		return FormatDepth16
	case formatRGBA, formatBGRA, formatBGRA8:
		return FormatRGBA8
	case formatRed:
		return FormatR8
	case formatRG:
		return FormatRG8
	case formatRGB422:
		return FormatYUV422
	}
	return f
}

// BytesPerPixel returns the storage size of one texel, or 0 for an unknown
// format. Depth formats report the size of one depth.Run slot.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA32F, FormatRGBA32I:
		return 16
	case FormatRGBA8, formatBGRA8, formatRGBA, formatBGRA:
		return 4
	case FormatR8, formatRed:
		return 1
	case FormatRG8, formatRG, FormatR16, FormatYUV422:
		return 2
	case FormatRG16:
		return 4
	case FormatDepth16, formatDepth, formatDepth24, formatDepth32:
		return 4
	}
	return 0
}

// IsDepth reports whether f stores depth runs.
func (f Format) IsDepth() bool {
	switch f {
	case FormatDepth16, formatDepth, formatDepth24, formatDepth32:
		return true
	}
	return false
}

// Valid reports whether f is a storable format.
func (f Format) Valid() bool { return f.BytesPerPixel() > 0 }

// String returns the GL name of the format.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "NONE"
	case FormatRGBA32F:
		return "RGBA32F"
	case FormatRGBA32I:
		return "RGBA32I"
	case FormatRGBA8:
		return "RGBA8"
	case FormatR8:
		return "R8"
	case FormatRG8:
		return "RG8"
	case FormatR16:
		return "R16"
	case FormatRG16:
		return "RG16"
	case FormatYUV422:
		return "RGB_RAW_422_APPLE"
	case FormatDepth16:
		return "DEPTH_COMPONENT16"
	}
	return "unknown"
}

// GPUFormat returns the gputypes format with the same memory layout, or
// TextureFormatUndefined when there is none. RGBA8 textures are stored
// in BGRA byte order.
func (f Format) GPUFormat() gputypes.TextureFormat {
	switch f {
	case FormatRGBA8:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatR8:
		return gputypes.TextureFormatR8Unorm
	case FormatRG8:
		return gputypes.TextureFormatRG8Unorm
	case FormatR16:
		return gputypes.TextureFormatR16Unorm
	case FormatRG16:
		return gputypes.TextureFormatRG16Unorm
	case FormatRGBA32F:
		return gputypes.TextureFormatRGBA32Float
	case FormatRGBA32I:
		return gputypes.TextureFormatRGBA32Sint
	case FormatDepth16:
		return gputypes.TextureFormatDepth16Unorm
	}
	return gputypes.TextureFormatUndefined
}

// AlignedStride rounds a row size in bytes up to a multiple of 4.
func AlignedStride(rowBytes int) int { return (rowBytes + 3) &^ 3 }
