// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

// Pixel is one RGBA8 texel.
type Pixel struct {
	R, G, B, A uint8
}

// PixelFromQuad unpacks a 32-bit word with R in the low byte.
func PixelFromQuad(q uint32) Pixel {
	return Pixel{
		R: uint8(q),
		G: uint8(q >> 8),
		B: uint8(q >> 16),
		A: uint8(q >> 24),
	}
}

// Quad packs the pixel into a 32-bit word with R in the low byte, which is the
// little-endian view of an RGBA byte buffer.
func (p Pixel) Quad() uint32 {
	return uint32(p.R) | uint32(p.G)<<8 | uint32(p.B)<<16 | uint32(p.A)<<24
}

// rgb returns the packed color without alpha.
func (p Pixel) rgb() uint32 {
	return p.Quad() & 0x00ffffff
}

// channel returns R, G, B or A for i = 0..3.
func (p *Pixel) channel(i int) int {
	switch i {
	case 0:
		return int(p.R)
	case 1:
		return int(p.G)
	case 2:
		return int(p.B)
	default:
		return int(p.A)
	}
}

func (p *Pixel) setChannel(i int, v uint8) {
	switch i {
	case 0:
		p.R = v
	case 1:
		p.G = v
	case 2:
		p.B = v
	default:
		p.A = v
	}
}

// RGB565 quantizes the color to a packed 5:6:5 value using rounded 8-bit
// fixed-point scaling.
func (p Pixel) RGB565() uint16 {
	return uint16(mulShift8(int(p.R), 31)<<11 + mulShift8(int(p.G), 63)<<5 + mulShift8(int(p.B), 31))
}

// PixelFrom565 expands a packed 5:6:5 value to RGBA8 by bit replication.
// Alpha is set to 0xff.
func PixelFrom565(v uint16) Pixel {
	t := LookupTables()
	return Pixel{
		R: t.expand5[(v>>11)&0x1f],
		G: t.expand6[(v>>5)&0x3f],
		B: t.expand5[v&0x1f],
		A: 0xff,
	}
}

// mulShift8 approximates round(a*b/255) in 8-bit fixed point.
// The exact rounding is part of the format contract.
func mulShift8(a, b int) int {
	t := a*b + 128
	return (t + (t >> 8)) >> 8
}

// lerpRGB blends p1 toward p2 by f/255 per color channel.
func lerpRGB(p1, p2 Pixel, f int) Pixel {
	return Pixel{
		R: uint8(int(p1.R) + mulShift8(int(p2.R)-int(p1.R), f)),
		G: uint8(int(p1.G) + mulShift8(int(p2.G)-int(p1.G), f)),
		B: uint8(int(p1.B) + mulShift8(int(p2.B)-int(p1.B), f)),
		A: 0xff,
	}
}
