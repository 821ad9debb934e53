// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

// AlphaRamp is the eight-entry alpha table of a BC3 alpha block.
type AlphaRamp [8]uint8

// compressAlphaBlock writes the 8-byte BC3 alpha sub-block for b into dst.
// Endpoints are (max, min) so the decoder always picks the 8-level ramp,
// except for constant alpha where every index selects a1.
func compressAlphaBlock(dst []byte, b *Block) {
	mn, mx := b[0].A, b[0].A
	for i := 1; i < 16; i++ {
		mn = min(mn, b[i].A)
		mx = max(mx, b[i].A)
	}

	dst[0] = mx
	dst[1] = mn

	dist := int(mx) - int(mn)
	bias := int(mn)*7 - dist>>1
	dist4 := dist * 4
	dist2 := dist * 2

	out := dst[2:8]
	var bits uint
	var acc, n int

	for i := range b {
		a := int(b[i].A)*7 - bias

		// Sign masks select the ramp step without branches.
		t := (dist4 - a) >> 31
		ind := t & 4
		a -= dist4 & t

		t = (dist2 - a) >> 31
		ind += t & 2
		a -= dist2 & t

		t = (dist - a) >> 31
		ind += t & 1

		// Map the linear step onto BC3 index order: 0 and 1 are the
		// endpoints, 2..7 the interior levels from max toward min.
		ind = -ind & 7
		if ind < 2 {
			ind ^= 1
		}

		acc |= ind << bits
		bits += 3
		if bits >= 8 {
			out[n] = uint8(acc)
			n++
			acc >>= 8
			bits -= 8
		}
	}
}

// DecodeAlphaRamp returns the alpha table for the endpoint pair. When
// a0 > a1 the six interior levels step in sevenths; otherwise four interior
// levels step in fifths and the last two entries are 0 and 255.
func DecodeAlphaRamp(a0, a1 uint8) AlphaRamp {
	var r AlphaRamp
	r[0], r[1] = a0, a1

	x0, x1 := int(a0), int(a1)
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			r[i+1] = uint8(((7-i)*x0 + i*x1) / 7)
		}
		return r
	}

	for i := 1; i < 5; i++ {
		r[i+1] = uint8(((5-i)*x0 + i*x1) / 5)
	}
	r[6] = 0
	r[7] = 255
	return r
}

// alphaIndices unpacks the sixteen 3-bit indices from the six index bytes.
func alphaIndices(src []byte) uint64 {
	_ = src[5]
	return uint64(src[0]) | uint64(src[1])<<8 | uint64(src[2])<<16 |
		uint64(src[3])<<24 | uint64(src[4])<<32 | uint64(src[5])<<40
}
