// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package edds

import (
	"github.com/woozymasta/bcn"
	"github.com/woozymasta/dxt"
)

const (
	maxInt32  = int(^uint32(0) >> 1)
	maxUint32 = uint64(^uint32(0))

	// maxMipLevels is the deepest chain the Enfusion loader accepts.
	maxMipLevels = 11
)

// i32FromInt converts an int to an int32.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, ErrSizeOverflow
	}

	return int32(n), nil
}

// u32FromInt converts an int to a uint32.
func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > maxUint32 {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}

// expectedDataLength returns the payload size of one level, or -1 for
// formats without a fixed layout.
func expectedDataLength(format bcn.Format, width, height int) int {
	if mode, ok := dxtMode(format); ok {
		n, err := dxt.CompressedSize(width, height, mode)
		if err != nil {
			return -1
		}
		return n
	}

	blocks := ((width + 3) / 4) * ((height + 3) / 4)
	switch format {
	case bcn.FormatBC4:
		return blocks * 8
	case bcn.FormatDXT3, bcn.FormatBC5:
		return blocks * 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}

// mipChainLength returns the number of levels down to 1x1, capped at maxMipLevels.
func mipChainLength(width, height int) (int, error) {
	w, err := u32FromInt(width)
	if err != nil {
		return 0, err
	}
	h, err := u32FromInt(height)
	if err != nil {
		return 0, err
	}

	count := 1
	for w > 1 || h > 1 {
		count++
		w = max(w/2, 1)
		h = max(h/2, 1)
	}

	return min(count, maxMipLevels), nil
}

// mipDimension returns the size of a base dimension at the given level.
func mipDimension(base, level int) int {
	return max(base>>level, 1)
}
