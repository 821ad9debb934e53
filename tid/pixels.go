// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package tid

// packPixels converts NRGBA bytes into the on-disk channel order.
func packPixels(dst, src []byte, layout pixelLayout) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		switch layout {
		case layoutARGB:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = a, r, g, b
		case layoutBGRA:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = b, g, r, a
		default:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = r, g, b, a
		}
	}
}

// unpackPixels converts on-disk pixels back into NRGBA bytes.
func unpackPixels(dst, src []byte, layout pixelLayout) {
	for i := 0; i+3 < len(src); i += 4 {
		switch layout {
		case layoutARGB:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i+1], src[i+2], src[i+3], src[i]
		case layoutBGRA:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i+2], src[i+1], src[i], src[i+3]
		default:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i], src[i+1], src[i+2], src[i+3]
		}
	}
}
