// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package edds

import (
	"fmt"
	"image"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/dxt"
)

// bcnHighQuality is the bcn quality level used for dithered writes.
const bcnHighQuality = 8

// encodePayload converts img into one level of the given format.
func encodePayload(img image.Image, format bcn.Format, quality dxt.Quality, workers int) ([]byte, error) {
	if mode, ok := dxtMode(format); ok {
		return dxt.CompressImage(img, mode, &dxt.Options{Quality: quality, Workers: workers})
	}

	switch format {
	case bcn.FormatRGBA8:
		src := dxt.ToNRGBA(img)
		out := make([]byte, len(src.Pix))
		copy(out, src.Pix)
		return out, nil
	case bcn.FormatBGRA8:
		src := dxt.ToNRGBA(img)
		out := make([]byte, len(src.Pix))
		swapRB(out, src.Pix)
		return out, nil
	case bcn.FormatDXT3, bcn.FormatBC4, bcn.FormatBC5:
		opts := &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast, Workers: workers}
		if quality == dxt.QualityDithered {
			opts.QualityLevel = bcnHighQuality
		}
		data, _, _, err := bcn.EncodeImageWithOptions(img, format, opts)
		return data, err
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
}

// decodePayload converts one level of the given format into an image.
// DXT1 output is forced opaque.
func decodePayload(data []byte, width, height int, format bcn.Format, workers int) (image.Image, error) {
	if mode, ok := dxtMode(format); ok {
		img, err := dxt.DecompressImage(data, width, height, mode, &dxt.Options{Workers: workers})
		if err != nil {
			return nil, err
		}
		if mode == dxt.ModeBC1 {
			for i := 3; i < len(img.Pix); i += 4 {
				img.Pix[i] = 0xff
			}
		}
		return img, nil
	}

	switch format {
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		need := width * height * 4
		if len(data) < need {
			return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrPayloadTooShort, len(data), need)
		}
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		if format == bcn.FormatBGRA8 {
			swapRB(img.Pix, data[:need])
		} else {
			copy(img.Pix, data[:need])
		}
		return img, nil
	case bcn.FormatDXT3, bcn.FormatBC4, bcn.FormatBC5:
		return bcn.DecodeImageWithOptions(data, width, height, format, &bcn.DecodeOptions{Workers: workers})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// swapRB copies src into dst exchanging bytes 0 and 2 of every pixel.
func swapRB(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
