package dxt

import "testing"

func TestMulShift8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b, want int
	}{
		{0, 31, 0},
		{255, 31, 31},
		{255, 63, 63},
		{128, 31, 16},
		{-255, 0x55, -85},
		{255, 0x55, 85},
		{255, 0xaa, 170},
	}

	for _, tc := range tests {
		if got := mulShift8(tc.a, tc.b); got != tc.want {
			t.Errorf("mulShift8(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestExpandTables(t *testing.T) {
	t.Parallel()

	tab := LookupTables()

	if tab.Expand5(0) != 0 || tab.Expand5(1) != 8 || tab.Expand5(31) != 255 {
		t.Fatalf("unexpected Expand5 endpoints: %d %d %d", tab.Expand5(0), tab.Expand5(1), tab.Expand5(31))
	}
	if tab.Expand6(0) != 0 || tab.Expand6(1) != 4 || tab.Expand6(63) != 255 {
		t.Fatalf("unexpected Expand6 endpoints: %d %d %d", tab.Expand6(0), tab.Expand6(1), tab.Expand6(63))
	}

	for i := 1; i < 32; i++ {
		if tab.Expand5(uint8(i)) <= tab.Expand5(uint8(i-1)) {
			t.Fatalf("Expand5 not increasing at %d", i)
		}
	}
	for i := 1; i < 64; i++ {
		if tab.Expand6(uint8(i)) <= tab.Expand6(uint8(i-1)) {
			t.Fatalf("Expand6 not increasing at %d", i)
		}
	}
}

func TestLookupTablesShared(t *testing.T) {
	t.Parallel()

	if LookupTables() != LookupTables() {
		t.Fatal("LookupTables returned different instances")
	}
}

func TestOptimalMatchTables(t *testing.T) {
	t.Parallel()

	tab := LookupTables()

	check := func(name string, table *[256][2]uint8, expand []uint8) {
		for v := range 256 {
			hi, lo := int(expand[table[v][0]]), int(expand[table[v][1]])
			got := abs(hi + mulShift8(lo-hi, 0x55) - v)

			best := 256
			for mn := range expand {
				for mx := range expand {
					e := abs(int(expand[mx]) + mulShift8(int(expand[mn])-int(expand[mx]), 0x55) - v)
					best = min(best, e)
				}
			}

			if got != best {
				t.Fatalf("%s[%d]: error %d, best possible %d", name, v, got, best)
			}
		}

		// Values that are exact expansions reproduce without error.
		for _, v := range expand {
			hi, lo := int(expand[table[v][0]]), int(expand[table[v][1]])
			if hi+mulShift8(lo-hi, 0x55) != int(v) {
				t.Fatalf("%s[%d] is not exact", name, v)
			}
		}
	}

	check("omatch5", &tab.omatch5, tab.expand5[:])
	check("omatch6", &tab.omatch6, tab.expand6[:])
}

func TestQuantTables(t *testing.T) {
	t.Parallel()

	tab := LookupTables()

	for v := range 256 {
		if got, want := tab.quantRB[v+8], tab.expand5[mulShift8(v, 31)]; got != want {
			t.Fatalf("quantRB[%d] = %d, want %d", v+8, got, want)
		}
		if got, want := tab.quantG[v+8], tab.expand6[mulShift8(v, 63)]; got != want {
			t.Fatalf("quantG[%d] = %d, want %d", v+8, got, want)
		}
	}

	// Headroom entries clamp to the end values.
	for i := range 8 {
		if tab.quantRB[i] != 0 || tab.quantG[i] != 0 {
			t.Fatalf("low headroom %d not clamped", i)
		}
		if tab.quantRB[quantTableSize-1-i] != 255 || tab.quantG[quantTableSize-1-i] != 255 {
			t.Fatalf("high headroom %d not clamped", i)
		}
	}
}

func TestPixelRGB565(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    Pixel
		want uint16
	}{
		{Pixel{255, 0, 0, 255}, 0xf800},
		{Pixel{0, 255, 0, 255}, 0x07e0},
		{Pixel{0, 0, 255, 255}, 0x001f},
		{Pixel{255, 255, 255, 0}, 0xffff},
		{Pixel{0, 0, 0, 0}, 0x0000},
	}

	for _, tc := range tests {
		if got := tc.p.RGB565(); got != tc.want {
			t.Errorf("%+v.RGB565() = %#04x, want %#04x", tc.p, got, tc.want)
		}
		back := PixelFrom565(tc.want)
		if back.rgb() != tc.p.rgb() || back.A != 0xff {
			t.Errorf("PixelFrom565(%#04x) = %+v", tc.want, back)
		}
	}

	p := Pixel{R: 1, G: 2, B: 3, A: 4}
	if PixelFromQuad(p.Quad()) != p || p.Quad() != 0x04030201 {
		t.Fatalf("quad round-trip failed: %#08x", p.Quad())
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
