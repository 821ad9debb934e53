// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

// Palette is the four-entry color table of a color block.
type Palette [4]Pixel

// evalColors builds the encoder palette for the endpoint pair: c2 and c3 are
// the one-third and two-thirds blends from c0 toward c1.
func evalColors(c0, c1 uint16) Palette {
	var p Palette
	p[0] = PixelFrom565(c0)
	p[1] = PixelFrom565(c1)
	p[2] = lerpRGB(p[0], p[1], 0x55)
	p[3] = lerpRGB(p[0], p[1], 0xaa)
	return p
}

// thresholds split the projection axis between adjacent palette stops.
// Stops are ordered c1, c3, c2, c0 along the axis.
type thresholds struct {
	c0Point   int
	halfPoint int
	c3Point   int
}

func newThresholds(stops *[4]int, shift uint) thresholds {
	return thresholds{
		c0Point:   ((stops[1] + stops[3]) >> 1) << shift,
		halfPoint: ((stops[3] + stops[2]) >> 1) << shift,
		c3Point:   ((stops[2] + stops[0]) >> 1) << shift,
	}
}

func (t thresholds) index(dot int) uint32 {
	if dot < t.halfPoint {
		if dot < t.c0Point {
			return 1
		}
		return 3
	}
	if dot < t.c3Point {
		return 2
	}
	return 0
}

// matchColorsBlock assigns every pixel to a palette entry and returns the
// 2-bit index mask with pixel 0 in the lowest bits.
func matchColorsBlock(b *Block, pal *Palette, dither bool) uint32 {
	dirR := int(pal[0].R) - int(pal[1].R)
	dirG := int(pal[0].G) - int(pal[1].G)
	dirB := int(pal[0].B) - int(pal[1].B)

	var dots [16]int
	for i := range b {
		dots[i] = int(b[i].R)*dirR + int(b[i].G)*dirG + int(b[i].B)*dirB
	}

	var stops [4]int
	for i := range pal {
		stops[i] = int(pal[i].R)*dirR + int(pal[i].G)*dirG + int(pal[i].B)*dirB
	}

	var mask uint32

	if !dither {
		th := newThresholds(&stops, 0)
		for i := 15; i >= 0; i-- {
			mask = mask<<2 | th.index(dots[i])
		}
		return mask
	}

	th := newThresholds(&stops, 4)
	var prev [4]int
	for y := range 4 {
		row := [4]int(dots[y*4 : y*4+4])
		lmask, cur := ditherRow(row, &prev, &stops, th)
		mask |= lmask << (y * 8)
		prev = cur
	}

	return mask
}

// ditherRow matches one row of projected pixels with error diffusion. prev
// holds the previous row's per-column errors; the returned errors feed the
// next row. Each column's error is kept in its own slot: storing column 3 in
// slot 2 corrupts the next row's diffusion.
func ditherRow(dots [4]int, prev, stops *[4]int, th thresholds) (lmask uint32, cur [4]int) {
	for x := range 4 {
		dot := dots[x]<<4 + diffuseSum(x, &cur, prev)
		step := th.index(dot)
		cur[x] = dots[x] - stops[step]
		lmask |= step << (2 * x)
	}
	return lmask, cur
}
