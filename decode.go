// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

import (
	"encoding/binary"
	"fmt"
)

// DecodeColorPalette expands an endpoint pair to its four colors. With
// fourColor set, or when c0 > c1, c2 and c3 are the one-third blends;
// otherwise c2 is the midpoint and c3 is transparent black.
func DecodeColorPalette(c0, c1 uint16, fourColor bool) Palette {
	var p Palette
	p[0] = PixelFrom565(c0)
	p[1] = PixelFrom565(c1)

	a, b := p[0], p[1]
	if fourColor || c0 > c1 {
		p[2] = Pixel{
			R: uint8((2*int(a.R) + int(b.R)) / 3),
			G: uint8((2*int(a.G) + int(b.G)) / 3),
			B: uint8((2*int(a.B) + int(b.B)) / 3),
			A: 0xff,
		}
		p[3] = Pixel{
			R: uint8((int(a.R) + 2*int(b.R)) / 3),
			G: uint8((int(a.G) + 2*int(b.G)) / 3),
			B: uint8((int(a.B) + 2*int(b.B)) / 3),
			A: 0xff,
		}
		return p
	}

	p[2] = Pixel{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: 0xff,
	}
	p[3] = Pixel{}
	return p
}

// DecompressBlock decodes one block from src, which must hold mode.BlockSize()
// bytes. BC3 color always uses the four-color palette.
func DecompressBlock(dst *Block, src []byte, mode Mode) error {
	if err := validateMode(mode); err != nil {
		return err
	}
	if dst == nil {
		return fmt.Errorf("%w: nil block", ErrInvalidArgument)
	}
	if len(src) < mode.BlockSize() {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrInsufficientData, len(src), mode.BlockSize())
	}

	decompressBlock(dst, src, mode)
	return nil
}

func decompressBlock(dst *Block, src []byte, mode Mode) {
	if mode == ModeBC1 {
		decodeColorBlock(dst, src[:8], false)
		return
	}

	decodeColorBlock(dst, src[8:16], true)

	ramp := DecodeAlphaRamp(src[0], src[1])
	idx := alphaIndices(src[2:8])
	for i := range dst {
		dst[i].A = ramp[idx&7]
		idx >>= 3
	}
}

func decodeColorBlock(dst *Block, src []byte, fourColor bool) {
	c0 := binary.LittleEndian.Uint16(src[0:])
	c1 := binary.LittleEndian.Uint16(src[2:])
	mask := binary.LittleEndian.Uint32(src[4:])

	pal := DecodeColorPalette(c0, c1, fourColor)
	for i := range dst {
		dst[i] = pal[mask&3]
		mask >>= 2
	}
}
