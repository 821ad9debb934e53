// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package edds

import (
	"fmt"
	"strings"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/dxt"
)

// ParseFormat maps a format name (dxt1, dxt3, dxt5, bc4, bc5, rgba8, bgra8,
// case-insensitive) to its bcn format id.
func ParseFormat(s string) (bcn.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dxt1", "bc1":
		return bcn.FormatDXT1, nil
	case "dxt3", "bc2":
		return bcn.FormatDXT3, nil
	case "dxt5", "bc3":
		return bcn.FormatDXT5, nil
	case "bc4", "ati1":
		return bcn.FormatBC4, nil
	case "bc5", "ati2":
		return bcn.FormatBC5, nil
	case "rgba8", "rgba":
		return bcn.FormatRGBA8, nil
	case "bgra8", "bgra":
		return bcn.FormatBGRA8, nil
	default:
		return bcn.FormatUnknown, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// dxtMode returns the dxt codec mode for formats the codec handles.
func dxtMode(format bcn.Format) (dxt.Mode, bool) {
	switch format {
	case bcn.FormatDXT1:
		return dxt.ModeBC1, true
	case bcn.FormatDXT5:
		return dxt.ModeBC3, true
	default:
		return 0, false
	}
}

func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (bcn.Format, string) {
	if dx10 != nil {
		return mapDxgiFormat(dx10.DXGIFormat), fmt.Sprintf("DXGI %d", dx10.DXGIFormat)
	}

	pf := header.PixelFormat
	if pf.Flags&bcn.DDSPFFourCC != 0 {
		fourCC := intToFourCC(pf.FourCC)
		switch fourCC {
		case "DXT1":
			return bcn.FormatDXT1, fourCC
		case "DXT2", "DXT3":
			return bcn.FormatDXT3, fourCC
		case "DXT4", "DXT5":
			return bcn.FormatDXT5, fourCC
		case "ATI1", "BC4U", "BC4S":
			return bcn.FormatBC4, fourCC
		case "ATI2", "BC5U", "BC5S":
			return bcn.FormatBC5, fourCC
		default:
			return bcn.FormatUnknown, fourCC
		}
	}

	if pf.Flags&bcn.DDSPFRGB != 0 && pf.Flags&bcn.DDSPFAlphaPixels != 0 && pf.RGBBitCount == 32 {
		switch {
		case pf.RBitMask == 0x000000ff && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x00ff0000 && pf.ABitMask == 0xff000000:
			return bcn.FormatRGBA8, "RGBA8"
		case pf.RBitMask == 0x00ff0000 && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x000000ff && pf.ABitMask == 0xff000000:
			return bcn.FormatBGRA8, "BGRA8"
		}
	}

	return bcn.FormatUnknown, "UNKNOWN"
}

func mapDxgiFormat(dxgiFormat uint32) bcn.Format {
	switch dxgiFormat {
	case 71, 72:
		return bcn.FormatDXT1
	case 74, 75:
		return bcn.FormatDXT3
	case 77, 78:
		return bcn.FormatDXT5
	case 80:
		return bcn.FormatBC4
	case 83:
		return bcn.FormatBC5
	case 87:
		return bcn.FormatBGRA8
	case 28:
		return bcn.FormatRGBA8
	default:
		return bcn.FormatUnknown
	}
}

func intToFourCC(value uint32) string {
	return string([]byte{byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)})
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// enfusionMagic marks EDDS files in DDSHeader.Reserved1[1].
var enfusionMagic = makeFourCC('E', 'N', 'F', '1')

// isEnfusion reports whether the header carries the EDDS marker.
func isEnfusion(header *bcn.DDSHeader) bool {
	return header.Reserved1[1] == enfusionMagic
}

// makeDDSHeader builds the DDS header for a texture with mipMapCount levels.
// enfusion sets the EDDS marker.
func makeDDSHeader(width, height, mipMapCount uint32, format bcn.Format, enfusion bool) (*bcn.DDSHeader, error) {
	flags := uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat)
	caps := uint32(bcn.DDSCapsTexture)
	if mipMapCount > 1 {
		flags |= bcn.DDSFlagMipmapCount
		caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       flags,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: mipMapCount,
		Caps:        caps,
	}
	if enfusion {
		hdr.Reserved1[1] = enfusionMagic
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize

	fourCC := ""
	switch format {
	case bcn.FormatDXT1:
		fourCC = "DXT1"
	case bcn.FormatDXT3:
		fourCC = "DXT3"
	case bcn.FormatDXT5:
		fourCC = "DXT5"
	case bcn.FormatBC4:
		fourCC = "ATI1"
	case bcn.FormatBC5:
		fourCC = "ATI2"
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		hdr.Flags |= bcn.DDSFlagPitch
		hdr.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		hdr.PixelFormat.RGBBitCount = 32
		hdr.PixelFormat.GBitMask = 0x0000ff00
		hdr.PixelFormat.ABitMask = 0xff000000
		if format == bcn.FormatRGBA8 {
			hdr.PixelFormat.RBitMask = 0x000000ff
			hdr.PixelFormat.BBitMask = 0x00ff0000
		} else {
			hdr.PixelFormat.RBitMask = 0x00ff0000
			hdr.PixelFormat.BBitMask = 0x000000ff
		}
		hdr.PitchOrLinearSize = width * 4
		return hdr, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}

	size := expectedDataLength(format, int(width), int(height))
	linear, err := u32FromInt(size)
	if err != nil {
		return nil, err
	}

	hdr.Flags |= bcn.DDSFlagLinearSize
	hdr.PitchOrLinearSize = linear
	hdr.PixelFormat.Flags = bcn.DDSPFFourCC
	hdr.PixelFormat.FourCC = makeFourCC(fourCC[0], fourCC[1], fourCC[2], fourCC[3])

	return hdr, nil
}
