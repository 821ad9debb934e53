// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

var (
	// refineWeights is the weight of c0 for each 2-bit index, in thirds.
	refineWeights = [4]int{3, 0, 2, 1}
	// refineProds packs w0*w0, w1*w1 and w0*w1 per index into one accumulator.
	refineProds = [4]int{0x090000, 0x000900, 0x040102, 0x010402}
)

// refineBlock solves the least-squares endpoint pair for the current index
// assignment. It reports whether either endpoint changed; a singular system
// leaves the endpoints untouched.
func refineBlock(b *Block, max16, min16 *uint16, mask uint32) bool {
	var akku int
	var at1R, at1G, at1B int
	var at2R, at2G, at2B int

	cm := mask
	for i := range b {
		step := cm & 3
		cm >>= 2

		w1 := refineWeights[step]
		r := int(b[i].R)
		g := int(b[i].G)
		bl := int(b[i].B)

		akku += refineProds[step]
		at1R += w1 * r
		at1G += w1 * g
		at1B += w1 * bl
		at2R += r
		at2G += g
		at2B += bl
	}

	at2R = 3*at2R - at1R
	at2G = 3*at2G - at1G
	at2B = 3*at2B - at1B

	xx := akku >> 16
	yy := (akku >> 8) & 0xff
	xy := akku & 0xff

	if xx == 0 || yy == 0 || xx*yy == xy*xy {
		return false
	}

	frb := float32(3.0*31.0/255.0) / float32(xx*yy-xy*xy)
	fg := frb * 63 / 31

	oldMax, oldMin := *max16, *min16

	*max16 = uint16(sclamp(float32(at1R*yy-at2R*xy)*frb+0.5, 31)<<11 |
		sclamp(float32(at1G*yy-at2G*xy)*fg+0.5, 63)<<5 |
		sclamp(float32(at1B*yy-at2B*xy)*frb+0.5, 31))

	*min16 = uint16(sclamp(float32(at2R*xx-at1R*xy)*frb+0.5, 31)<<11 |
		sclamp(float32(at2G*xx-at1G*xy)*fg+0.5, 63)<<5 |
		sclamp(float32(at2B*xx-at1B*xy)*frb+0.5, 31))

	return oldMax != *max16 || oldMin != *min16
}

// sclamp truncates y toward zero and clamps it to [0, hi].
func sclamp(y float32, hi int) int {
	return min(max(int(y), 0), hi)
}
