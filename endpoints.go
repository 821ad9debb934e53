// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

import "math"

// powerIterations is the number of covariance multiplications applied to the
// seed direction.
const powerIterations = 4

// optimizeColorsBlock estimates the endpoint pair along the principal axis of
// the block colors and returns them as RGB565.
func optimizeColorsBlock(b *Block) (max16, min16 uint16) {
	var mu, lo, hi [3]int

	for ch := range 3 {
		v := b[0].channel(ch)
		sum, mn, mx := v, v, v

		for i := 1; i < 16; i++ {
			v = b[i].channel(ch)
			sum += v
			mn = min(mn, v)
			mx = max(mx, v)
		}

		mu[ch] = (sum + 8) >> 4
		lo[ch] = mn
		hi[ch] = mx
	}

	// Upper triangle of the RGB covariance matrix: rr rg rb gg gb bb.
	var cov [6]int
	for i := range b {
		r := int(b[i].R) - mu[0]
		g := int(b[i].G) - mu[1]
		bl := int(b[i].B) - mu[2]

		cov[0] += r * r
		cov[1] += r * g
		cov[2] += r * bl
		cov[3] += g * g
		cov[4] += g * bl
		cov[5] += bl * bl
	}

	var covf [6]float32
	for i, c := range cov {
		covf[i] = float32(c) / 255
	}

	vfr := float32(hi[0] - lo[0])
	vfg := float32(hi[1] - lo[1])
	vfb := float32(hi[2] - lo[2])

	for range powerIterations {
		r := vfr*covf[0] + vfg*covf[1] + vfb*covf[2]
		g := vfr*covf[1] + vfg*covf[3] + vfb*covf[4]
		bl := vfr*covf[2] + vfg*covf[4] + vfb*covf[5]
		vfr, vfg, vfb = r, g, bl
	}

	magn := max(abs32(vfr), abs32(vfg), abs32(vfb))

	var vr, vg, vb int
	if magn < 4 {
		// Luminance-like fallback for near-flat blocks.
		vr, vg, vb = 148, 300, 58
	} else {
		magn = 512 / magn
		vr = int(vfr * magn)
		vg = int(vfg * magn)
		vb = int(vfb * magn)
	}

	minDot, maxDot := math.MaxInt32, -math.MaxInt32
	var minP, maxP Pixel

	for i := range b {
		dot := int(b[i].R)*vr + int(b[i].G)*vg + int(b[i].B)*vb

		if dot < minDot {
			minDot = dot
			minP = b[i]
		}
		if dot > maxDot {
			maxDot = dot
			maxP = b[i]
		}
	}

	return maxP.RGB565(), minP.RGB565()
}

// ditherBlock returns a copy of the block with R, G and B quantized to their
// 5:6:5 levels using in-block error diffusion. Alpha is left at zero.
func ditherBlock(b *Block) Block {
	var out Block
	t := LookupTables()

	for ch := range 3 {
		quant := t.quantRB[:]
		if ch == 1 {
			quant = t.quantG[:]
		}

		var cur, prev [4]int
		for y := 0; y < 16; y += 4 {
			for x := range 4 {
				v := b[y+x].channel(ch)
				q := quant[8+v+diffuse(x, &cur, &prev)]
				out[y+x].setChannel(ch, q)
				cur[x] = v - int(q)
			}
			cur, prev = prev, cur
		}
	}

	return out
}

// diffuse returns the error carried into column x from the current row (7/16)
// and the previous row (3/16, 5/16 and 1/16). Values are arithmetic shifts of
// the weighted sum, so the result is floor-divided.
func diffuse(x int, cur, prev *[4]int) int {
	return diffuseSum(x, cur, prev) >> 4
}

// diffuseSum is the weighted error sum scaled by 16.
func diffuseSum(x int, cur, prev *[4]int) int {
	switch x {
	case 0:
		return 3*prev[1] + 5*prev[0]
	case 1:
		return 7*cur[0] + 3*prev[2] + 5*prev[1] + prev[0]
	case 2:
		return 7*cur[1] + 3*prev[3] + 5*prev[2] + prev[1]
	default:
		return 7*cur[2] + 5*prev[3] + prev[2]
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
