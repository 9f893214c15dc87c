// Package wide provides fixed-width lane types for chunked pixel processing.
//
// The rasterizer works on chunks of four pixels at a time. A chunk of four
// RGBA8 pixels widened to 16 bits per channel is exactly one U16x16, with
// pixel i occupying lanes 4i..4i+3 in memory (B, G, R, A) order. Blend
// equations are written as whole-chunk expressions over U16x16 so the Go
// compiler can vectorize the simple fixed-size loops.
//
// F32x4 holds one pixel's four channels as floats for the blend modes that
// need division or square roots.
//
// # Arithmetic
//
// All U16x16 arithmetic wraps modulo 2^16. Several blend formulas rely on
// that: a negative intermediate wraps around and is brought back into
// range by a later AddLow or by the saturating Pack.
//
//	src := wide.Unpack(srcBytes)
//	dst := wide.Unpack(dstBytes)
//	out := dst.AddLow(src.Alphas().MulDiv255(src.Or(wide.AlphaOpaque).Sub(dst)))
//	out.Pack(dstBytes)
package wide
