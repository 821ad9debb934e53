// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

import "sync"

// quantTableSize covers an 8-bit value plus the +-8 dither error headroom.
const quantTableSize = 256 + 16

// Tables holds the immutable lookup tables shared by every encoder and decoder.
type Tables struct {
	expand5 [32]uint8
	expand6 [64]uint8

	// omatch5/omatch6 map an 8-bit value to the (max, min) endpoint pair whose
	// one-third blend reproduces it best.
	omatch5 [256][2]uint8
	omatch6 [256][2]uint8

	// quantRB/quantG quantize value+8 to the nearest 5 or 6 bit level, expanded
	// back to 8 bits. Used by the dither pre-pass.
	quantRB [quantTableSize]uint8
	quantG  [quantTableSize]uint8
}

// LookupTables returns the process-wide tables, building them on first use.
// The result must not be modified.
var LookupTables = sync.OnceValue(buildTables)

func buildTables() *Tables {
	t := &Tables{}

	for i := range t.expand5 {
		t.expand5[i] = uint8((i << 3) | (i >> 2))
	}
	for i := range t.expand6 {
		t.expand6[i] = uint8((i << 2) | (i >> 4))
	}

	for i := range quantTableSize {
		v := min(max(i-8, 0), 255)
		t.quantRB[i] = t.expand5[mulShift8(v, 31)]
		t.quantG[i] = t.expand6[mulShift8(v, 63)]
	}

	prepareOptTable(&t.omatch5, t.expand5[:])
	prepareOptTable(&t.omatch6, t.expand6[:])

	return t
}

// prepareOptTable finds for every 8-bit value the endpoint pair that best
// reproduces it at the one-third interpolation slot. Ties keep the first pair
// in (min, max) scan order.
func prepareOptTable(table *[256][2]uint8, expand []uint8) {
	for i := range 256 {
		bestErr := 256

		for mn := range expand {
			for mx := range expand {
				lo := int(expand[mn])
				hi := int(expand[mx])

				err := hi + mulShift8(lo-hi, 0x55) - i
				if err < 0 {
					err = -err
				}

				if err < bestErr {
					table[i][0] = uint8(mx)
					table[i][1] = uint8(mn)
					bestErr = err
				}
			}
		}
	}
}

// Expand5 widens a 5-bit channel value to 8 bits.
func (t *Tables) Expand5(v uint8) uint8 { return t.expand5[v&0x1f] }

// Expand6 widens a 6-bit channel value to 8 bits.
func (t *Tables) Expand6(v uint8) uint8 { return t.expand6[v&0x3f] }

// OMatch5 returns the best (max, min) 5-bit endpoint pair for a flat 8-bit value.
func (t *Tables) OMatch5(v uint8) (hi, lo uint8) {
	return t.omatch5[v][0], t.omatch5[v][1]
}

// OMatch6 returns the best (max, min) 6-bit endpoint pair for a flat 8-bit value.
func (t *Tables) OMatch6(v uint8) (hi, lo uint8) {
	return t.omatch6[v][0], t.omatch6[v][1]
}
