// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

import (
	"encoding/binary"
	"fmt"
)

// colorEndpoints runs the endpoint search for a non-flat block and returns the
// endpoints with their index mask, before ordering.
func colorEndpoints(b *Block, dither bool) (max16, min16 uint16, mask uint32) {
	src := b
	if dither {
		d := ditherBlock(b)
		src = &d
	}

	max16, min16 = optimizeColorsBlock(src)
	if max16 != min16 {
		pal := evalColors(max16, min16)
		mask = matchColorsBlock(b, &pal, dither)
	}

	if refineBlock(src, &max16, &min16, mask) {
		mask = 0
		if max16 != min16 {
			pal := evalColors(max16, min16)
			mask = matchColorsBlock(b, &pal, dither)
		}
	}

	return max16, min16, mask
}

// flatEndpoints returns the optimal endpoint pair for a single color, with
// every pixel on the one-third slot.
func flatEndpoints(p Pixel) (max16, min16 uint16, mask uint32) {
	t := LookupTables()

	max16 = uint16(t.omatch5[p.R][0])<<11 | uint16(t.omatch6[p.G][0])<<5 | uint16(t.omatch5[p.B][0])
	min16 = uint16(t.omatch5[p.R][1])<<11 | uint16(t.omatch6[p.G][1])<<5 | uint16(t.omatch5[p.B][1])

	return max16, min16, 0xaaaaaaaa
}

// orderEndpoints puts the larger packed endpoint first, remapping the mask so
// every pixel keeps its color.
func orderEndpoints(max16, min16 uint16, mask uint32) (c0, c1 uint16, m uint32) {
	if max16 < min16 {
		return min16, max16, mask ^ 0x55555555
	}
	return max16, min16, mask
}

// compressColorBlock writes the 8-byte color sub-block for b into dst.
func compressColorBlock(dst []byte, b *Block, dither bool) {
	var max16, min16 uint16
	var mask uint32

	if b.isFlat() {
		max16, min16, mask = flatEndpoints(b[0])
	} else {
		max16, min16, mask = colorEndpoints(b, dither)
	}

	c0, c1, mask := orderEndpoints(max16, min16, mask)
	putColorBlock(dst, c0, c1, mask)
}

func putColorBlock(dst []byte, c0, c1 uint16, mask uint32) {
	binary.LittleEndian.PutUint16(dst[0:], c0)
	binary.LittleEndian.PutUint16(dst[2:], c1)
	binary.LittleEndian.PutUint32(dst[4:], mask)
}

// CompressBlock encodes one block into dst, which must hold mode.BlockSize()
// bytes. BC3 writes the alpha sub-block first.
func CompressBlock(dst []byte, b *Block, mode Mode, quality Quality) error {
	if err := validateMode(mode); err != nil {
		return err
	}
	if err := validateQuality(quality); err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%w: nil block", ErrInvalidArgument)
	}
	if len(dst) < mode.BlockSize() {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrBufferSize, len(dst), mode.BlockSize())
	}

	compressBlock(dst, b, mode, quality == QualityDithered)
	return nil
}

func compressBlock(dst []byte, b *Block, mode Mode, dither bool) {
	if mode == ModeBC3 {
		compressAlphaBlock(dst[:8], b)
		dst = dst[8:]
	}
	compressColorBlock(dst[:8], b, dither)
}
