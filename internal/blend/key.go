// Package blend implements the fixed set of blend equations applied when
// fragments are written to a color buffer.
//
// The GL blend state (source and destination factors for color and alpha,
// plus the blend equation) is reduced once per state change to a Key. Only
// the combinations enumerated here are supported; every Key has a
// closed-form implementation over premultiplied 8-bit channels.
//
// All integer math uses the (x*y + x) >> 8 approximation of x*y/255
// provided by wide.U16x16.MulDiv255. Modes that need division or square
// roots (color dodge/burn, soft light and the HSL modes) convert to float,
// evaluate, and round back.
//
// When a clip mask is active, the key is offset by MaskOffset into a
// parallel range whose variants first scale the source by the mask.
package blend

import (
	"errors"
	"fmt"
)

// Factor is a GL blend factor. Values match the GL enumerants.
type Factor uint32

// Blend factors.
const (
	Zero                  Factor = 0
	One                   Factor = 1
	SrcColor              Factor = 0x0300
	OneMinusSrcColor      Factor = 0x0301
	SrcAlpha              Factor = 0x0302
	OneMinusSrcAlpha      Factor = 0x0303
	DstAlpha              Factor = 0x0304
	OneMinusDstAlpha      Factor = 0x0305
	DstColor              Factor = 0x0306
	OneMinusDstColor      Factor = 0x0307
	SrcAlphaSaturate      Factor = 0x0308
	ConstantColor         Factor = 0x8001
	OneMinusConstantColor Factor = 0x8002
	ConstantAlpha         Factor = 0x8003
	OneMinusConstantAlpha Factor = 0x8004
	Src1Alpha             Factor = 0x8589
	Src1Color             Factor = 0x88F9
	OneMinusSrc1Color     Factor = 0x88FA
	OneMinusSrc1Alpha     Factor = 0x88FB
)

// Equation is a GL blend equation. Values match the GL enumerants.
type Equation uint32

// Blend equations.
const (
	FuncAdd       Equation = 0x8006
	Min           Equation = 0x8007
	Max           Equation = 0x8008
	Multiply      Equation = 0x9294
	Screen        Equation = 0x9295
	Overlay       Equation = 0x9296
	Darken        Equation = 0x9297
	Lighten       Equation = 0x9298
	ColorDodge    Equation = 0x9299
	ColorBurn     Equation = 0x929A
	HardLight     Equation = 0x929B
	SoftLight     Equation = 0x929C
	Difference    Equation = 0x929E
	Exclusion     Equation = 0x92A0
	HSLHue        Equation = 0x92AD
	HSLSaturation Equation = 0x92AE
	HSLColor      Equation = 0x92AF
	HSLLuminosity Equation = 0x92B0
)

// ValidEquation reports whether e is one of the supported equations.
func ValidEquation(e Equation) bool {
	switch e {
	case FuncAdd, Min, Max:
		return true
	}
	return e >= Multiply && e <= HSLLuminosity
}

// Key identifies one closed-form blend implementation.
type Key uint8

// Blend keys. The order matches the masked range, so Key+MaskOffset is
// the masked variant of Key.
const (
	KeyNone                    Key = iota // ONE, ZERO
	KeySrcAlpha                           // SRC_ALPHA, ONE_MINUS_SRC_ALPHA, ONE, ONE_MINUS_SRC_ALPHA
	KeySrcAlphaAll                        // SRC_ALPHA, ONE_MINUS_SRC_ALPHA
	KeyPremultipliedOver                  // ONE, ONE_MINUS_SRC_ALPHA
	KeyZeroOneMinusSrcColor               // ZERO, ONE_MINUS_SRC_COLOR
	KeyZeroOneMinusSrcColorRGB            // ZERO, ONE_MINUS_SRC_COLOR, ZERO, ONE
	KeyZeroOneMinusSrcAlpha               // ZERO, ONE_MINUS_SRC_ALPHA
	KeyZeroSrcColor                       // ZERO, SRC_COLOR
	KeyAdd                                // ONE, ONE
	KeyAddOneMinusSrcAlpha                // ONE, ONE, ONE, ONE_MINUS_SRC_ALPHA
	KeyOneMinusDstAlphaOne                // ONE_MINUS_DST_ALPHA, ONE, ZERO, ONE
	KeyConstantColor                      // CONSTANT_COLOR, ONE_MINUS_SRC_COLOR
	KeyDualSource                         // ONE, ONE_MINUS_SRC1_COLOR
	KeyMin
	KeyMax
	KeyMultiply
	KeyScreen
	KeyOverlay
	KeyDarken
	KeyLighten
	KeyColorDodge
	KeyColorBurn
	KeyHardLight
	KeySoftLight
	KeyDifference
	KeyExclusion
	KeyHue
	KeySaturation
	KeyColor
	KeyLuminosity

	// MaskOffset separates each key from its clip-masked variant.
	MaskOffset
)

// NumKeys is the total number of keys including masked variants.
const NumKeys = 2 * MaskOffset

var keyNames = [MaskOffset]string{
	"none", "src-alpha", "src-alpha-all", "premultiplied-over", "zero-one-minus-src-color",
	"zero-one-minus-src-color-rgb", "zero-one-minus-src-alpha", "zero-src-color",
	"add", "add-one-minus-src-alpha", "one-minus-dst-alpha-one", "constant-color",
	"dual-source", "min", "max", "multiply", "screen", "overlay", "darken",
	"lighten", "color-dodge", "color-burn", "hard-light", "soft-light",
	"difference", "exclusion", "hue", "saturation", "color", "luminosity",
}

// String returns a readable name for the key.
func (k Key) String() string {
	switch {
	case k < MaskOffset:
		return keyNames[k]
	case k < NumKeys:
		return "masked-" + keyNames[k-MaskOffset]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// Masked reports whether k is a clip-masked variant.
func (k Key) Masked() bool { return k >= MaskOffset && k < NumKeys }

// WithMask returns the clip-masked variant of k.
func (k Key) WithMask() Key {
	if k.Masked() {
		return k
	}
	return k + MaskOffset
}

// Base strips the clip-mask variant.
func (k Key) Base() Key {
	if k.Masked() {
		return k - MaskOffset
	}
	return k
}

// State is the GL blend state a Key is derived from.
type State struct {
	SrcRGB, DstRGB     Factor
	SrcAlpha, DstAlpha Factor
	Equation           Equation
}

// DefaultState is the initial GL blend state: ONE, ZERO with FUNC_ADD.
var DefaultState = State{SrcRGB: One, DstRGB: Zero, SrcAlpha: One, DstAlpha: Zero, Equation: FuncAdd}

// ErrUnsupported is returned for blend states with no implementation.
var ErrUnsupported = errors.New("blend: unsupported blend state")

type tuple struct {
	a, b, c, d uint32
}

func t2(s, d Factor) tuple         { return tuple{uint32(s), uint32(d), 0, 0} }
func t4(s, d, sa, da Factor) tuple { return tuple{uint32(s), uint32(d), uint32(sa), uint32(da)} }
func t1(e Equation) tuple          { return tuple{uint32(e), 0, 0, 0} }

var keyTable = map[tuple]Key{
	t2(One, Zero): KeyNone,
	t4(SrcAlpha, OneMinusSrcAlpha, One, OneMinusSrcAlpha): KeySrcAlpha,
	t2(SrcAlpha, OneMinusSrcAlpha):                        KeySrcAlphaAll,
	t2(One, OneMinusSrcAlpha):                             KeyPremultipliedOver,
	t2(Zero, OneMinusSrcColor):                            KeyZeroOneMinusSrcColor,
	t4(Zero, OneMinusSrcColor, Zero, One):                 KeyZeroOneMinusSrcColorRGB,
	t2(Zero, OneMinusSrcAlpha):                            KeyZeroOneMinusSrcAlpha,
	t2(Zero, SrcColor):                                    KeyZeroSrcColor,
	t2(One, One):                                          KeyAdd,
	t4(One, One, One, OneMinusSrcAlpha):                   KeyAddOneMinusSrcAlpha,
	t4(OneMinusDstAlpha, One, Zero, One):                  KeyOneMinusDstAlphaOne,
	t2(ConstantColor, OneMinusSrcColor):                   KeyConstantColor,
	t2(One, OneMinusSrc1Color):                            KeyDualSource,
	t1(Min):                                               KeyMin,
	t1(Max):                                               KeyMax,
	t1(Multiply):                                          KeyMultiply,
	t1(Screen):                                            KeyScreen,
	t1(Overlay):                                           KeyOverlay,
	t1(Darken):                                            KeyDarken,
	t1(Lighten):                                           KeyLighten,
	t1(ColorDodge):                                        KeyColorDodge,
	t1(ColorBurn):                                         KeyColorBurn,
	t1(HardLight):                                         KeyHardLight,
	t1(SoftLight):                                         KeySoftLight,
	t1(Difference):                                        KeyDifference,
	t1(Exclusion):                                         KeyExclusion,
	t1(HSLHue):                                            KeyHue,
	t1(HSLSaturation):                                     KeySaturation,
	t1(HSLColor):                                          KeyColor,
	t1(HSLLuminosity):                                     KeyLuminosity,
}

// RemapAlpha folds an alpha factor onto its color counterpart when the
// color factor makes them equivalent, so that e.g. (SRC_COLOR, SRC_ALPHA)
// is treated as the non-separate SRC_COLOR.
func RemapAlpha(rgb, a Factor) Factor {
	pairs := [...][2]Factor{
		{SrcColor, SrcAlpha},
		{OneMinusSrcColor, OneMinusSrcAlpha},
		{DstColor, DstAlpha},
		{OneMinusDstColor, OneMinusDstAlpha},
		{ConstantColor, ConstantAlpha},
		{OneMinusConstantColor, OneMinusConstantAlpha},
		{Src1Color, Src1Alpha},
		{OneMinusSrc1Color, OneMinusSrc1Alpha},
	}
	for _, p := range pairs {
		color, alpha := p[0], p[1]
		switch {
		case a == alpha && rgb == color:
			return color
		case a == color && rgb == alpha:
			return alpha
		}
	}
	return a
}

// Derive reduces a blend state to its Key. Any equation other than
// FUNC_ADD ignores the factors. Otherwise the factors select a two- or
// four-argument form depending on whether alpha differs from color.
func Derive(s State) (Key, error) {
	var tp tuple
	switch {
	case s.Equation != FuncAdd:
		tp = t1(s.Equation)
	case s.SrcRGB != s.SrcAlpha || s.DstRGB != s.DstAlpha:
		tp = t4(s.SrcRGB, s.DstRGB, s.SrcAlpha, s.DstAlpha)
	default:
		tp = t2(s.SrcRGB, s.DstRGB)
	}
	k, ok := keyTable[tp]
	if !ok {
		return KeyNone, fmt.Errorf("%w: func %#x,%#x separate %#x,%#x equation %#x",
			ErrUnsupported, uint32(s.SrcRGB), uint32(s.DstRGB),
			uint32(s.SrcAlpha), uint32(s.DstAlpha), uint32(s.Equation))
	}
	return k, nil
}
