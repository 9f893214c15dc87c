package wide

import "testing"

func TestSplatU16(t *testing.T) {
	tests := []struct {
		name  string
		value uint16
	}{
		{"zero", 0},
		{"max", 255},
		{"mid", 128},
		{"one", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplatU16(tt.value)
			for i, v := range result {
				if v != tt.value {
					t.Errorf("element %d = %d, want %d", i, v, tt.value)
				}
			}
		})
	}
}

func TestU16x16_Div255(t *testing.T) {
	tests := []struct {
		name  string
		input U16x16
		want  U16x16
	}{
		{
			name:  "zero",
			input: SplatU16(0),
			want:  SplatU16(0),
		},
		{
			name:  "255",
			input: SplatU16(255),
			want:  SplatU16(1),
		},
		{
			name:  "510",
			input: SplatU16(510),
			want:  SplatU16(2),
		},
		{
			name:  "max product",
			input: SplatU16(255 * 255),
			want:  SplatU16(255),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Div255()
			if got != tt.want {
				t.Errorf("Div255() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestU16x16_MulDiv255(t *testing.T) {
	tests := []struct {
		name string
		a    U16x16
		b    U16x16
		want U16x16
	}{
		{
			name: "zero",
			a:    SplatU16(0),
			b:    SplatU16(255),
			want: SplatU16(0),
		},
		{
			name: "max",
			a:    SplatU16(255),
			b:    SplatU16(255),
			want: SplatU16(255),
		},
		{
			name: "half alpha",
			a:    SplatU16(200),
			b:    SplatU16(128),
			want: SplatU16(100), // (200 * 128) / 255 ≈ 100
		},
		{
			name: "one",
			a:    SplatU16(255),
			b:    SplatU16(1),
			want: SplatU16(1),
		},
		{
			name: "identity",
			a:    SplatU16(77),
			b:    SplatU16(255),
			want: SplatU16(77),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.MulDiv255(tt.b)
			if got != tt.want {
				t.Errorf("MulDiv255() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestU16x16_EdgeCases(t *testing.T) {
	t.Run("overflow wrapping", func(t *testing.T) {
		a := SplatU16(65535)
		b := SplatU16(1)
		got := a.Add(b)
		// Should wrap around due to uint16 overflow
		want := SplatU16(0)
		if got != want {
			t.Errorf("overflow Add() = %v, want %v", got, want)
		}
	})

	t.Run("underflow wrapping", func(t *testing.T) {
		a := SplatU16(0)
		b := SplatU16(1)
		got := a.Sub(b)
		// Should wrap around due to uint16 underflow
		want := SplatU16(65535)
		if got != want {
			t.Errorf("underflow Sub() = %v, want %v", got, want)
		}
	})
}

func TestU16x16_AddLowSignedBlend(t *testing.T) {
	// dst + a*(src-dst) with src < dst wraps through the low byte.
	dst := SplatU16(100)
	diff := SplatU16(50).Sub(dst)
	got := dst.AddLow(SplatU16(128).MulDiv255(diff))
	if want := SplatU16(75); got != want {
		t.Errorf("AddLow() = %v, want %v", got, want)
	}
}

func TestU16x16_PackSaturates(t *testing.T) {
	tests := []struct {
		name string
		in   uint16
		want byte
	}{
		{"in range", 200, 200},
		{"above", 300, 255},
		{"negative", 0xFFF0, 0},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out [16]byte
			SplatU16(tt.in).Pack(out[:])
			for i, b := range out {
				if b != tt.want {
					t.Fatalf("byte %d = %d, want %d", i, b, tt.want)
				}
			}
		})
	}
}

func TestUnpackShort(t *testing.T) {
	got := Unpack([]byte{1, 2, 3, 4, 5})
	want := U16x16{1, 2, 3, 4, 5}
	if got != want {
		t.Errorf("Unpack() = %v, want %v", got, want)
	}
}

func TestU16x16_Alphas(t *testing.T) {
	v := U16x16{1, 2, 3, 40, 5, 6, 7, 80, 9, 10, 11, 120, 13, 14, 15, 160}
	got := v.Alphas()
	for p := 0; p < 4; p++ {
		for c := 0; c < 4; c++ {
			if got[4*p+c] != v[4*p+3] {
				t.Errorf("pixel %d lane %d = %d, want %d", p, c, got[4*p+c], v[4*p+3])
			}
		}
	}
	if masked := v.And(RGBMask).Or(AlphaOpaque); masked.Pixel(0) != [4]uint16{1, 2, 3, 255} {
		t.Errorf("RGB|opaque = %v", masked.Pixel(0))
	}
}

func TestSelect(t *testing.T) {
	a := SplatU16(10)
	b := SplatU16(20)
	mask := U16x16{3: 0}.LessEq(SplatPixel([4]uint16{0, 0, 0, 0}))
	if got := Select(mask, a, b); got != a {
		t.Errorf("Select(all) = %v, want %v", got, a)
	}
	mask = SplatPixel([4]uint16{1, 0, 1, 0}).LessEq(SplatU16(0))
	got := Select(mask, a, b)
	if got.Pixel(2) != [4]uint16{20, 10, 20, 10} {
		t.Errorf("Select(alternating) = %v", got.Pixel(2))
	}
}

func TestF32x4_RoundPixel(t *testing.T) {
	v := F32x4{0, 255 * 255, 127.5 * 255, -255}
	got := v.RoundPixel(255 * 255)
	want := [4]uint16{0, 255, 128, 0xFFFF}
	if got != want {
		t.Errorf("RoundPixel() = %v, want %v", got, want)
	}
	if r := (F32x4{0, 2, 4, 0.5}).RecipOr(9); r != (F32x4{9, 0.5, 0.25, 2}) {
		t.Errorf("RecipOr() = %v", r)
	}
}
