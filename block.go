// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

import "fmt"

// Block is a 4x4 pixel tile in row-major order.
type Block [16]Pixel

// ExtractBlock reads block (bx, by) from an RGBA raster of width*height pixels.
// The whole 4x4 region must lie inside the image.
func ExtractBlock(pix []byte, width, height, bx, by int) (Block, error) {
	var b Block

	size, err := rawSize(width, height)
	if err != nil {
		return b, err
	}
	if len(pix) < size {
		return b, fmt.Errorf("%w: got %d bytes, need %d", ErrBufferSize, len(pix), size)
	}
	if bx < 0 || by < 0 || bx*4+4 > width || by*4+4 > height {
		return b, fmt.Errorf("%w: block (%d,%d) in %dx%d", ErrBlockOutOfBounds, bx, by, width, height)
	}

	b.load(pix, width, height, bx, by)
	return b, nil
}

// load fills the block from the raster, replicating the right and bottom edge
// pixels for positions outside the image. Out-of-bounds pixels are never read.
func (b *Block) load(pix []byte, width, height, bx, by int) {
	x0 := bx * 4
	y0 := by * 4
	mx := width - 1
	my := height - 1

	for y := range 4 {
		row := min(y0+y, my) * width
		for x := range 4 {
			off := (row + min(x0+x, mx)) * 4
			b[y*4+x] = Pixel{R: pix[off], G: pix[off+1], B: pix[off+2], A: pix[off+3]}
		}
	}
}

// store writes the in-bounds part of the block back into the raster.
func (b *Block) store(pix []byte, width, height, bx, by int) {
	x0 := bx * 4
	y0 := by * 4
	w := min(4, width-x0)
	h := min(4, height-y0)

	for y := range h {
		off := ((y0+y)*width + x0) * 4
		for x := range w {
			p := &b[y*4+x]
			pix[off] = p.R
			pix[off+1] = p.G
			pix[off+2] = p.B
			pix[off+3] = p.A
			off += 4
		}
	}
}

// isFlat reports whether every pixel shares the first pixel's RGB value.
// Alpha does not take part; it is encoded separately.
func (b *Block) isFlat() bool {
	c := b[0].rgb()
	for i := 1; i < len(b); i++ {
		if b[i].rgb() != c {
			return false
		}
	}
	return true
}
