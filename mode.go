// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

import (
	"fmt"
	"strings"
)

// Mode selects the compressed block layout.
type Mode uint8

const (
	// ModeBC1 is DXT1: 8 bytes per block, color only (1-bit punch-through alpha).
	ModeBC1 Mode = iota + 1
	// ModeBC3 is DXT5: 16 bytes per block, interpolated alpha followed by color.
	ModeBC3
)

// BlockSize returns the number of bytes per 4x4 block, or 0 for an unknown mode.
func (m Mode) BlockSize() int {
	switch m {
	case ModeBC1:
		return 8
	case ModeBC3:
		return 16
	default:
		return 0
	}
}

func (m Mode) String() string {
	switch m {
	case ModeBC1:
		return "BC1"
	case ModeBC3:
		return "BC3"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts BC1/DXT1 and BC3/DXT5, case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bc1", "dxt1":
		return ModeBC1, nil
	case "bc3", "dxt5":
		return ModeBC3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Quality selects the index matching strategy.
type Quality uint8

const (
	// QualityFast matches every pixel to its nearest palette entry.
	QualityFast Quality = iota
	// QualityDithered diffuses quantization error across the block.
	QualityDithered
)

func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityDithered:
		return "dithered"
	default:
		return fmt.Sprintf("Quality(%d)", uint8(q))
	}
}

// ParseQuality accepts "fast" and "dithered" (or "dither").
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fast":
		return QualityFast, nil
	case "dither", "dithered":
		return QualityDithered, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
	}
}

// Options configures image-level compression and decompression.
// The zero value is valid: fast quality and one worker per CPU.
type Options struct {
	Quality Quality
	// Workers caps the number of goroutines. Zero means runtime.GOMAXPROCS(0).
	Workers int
}

func validateMode(m Mode) error {
	if m.BlockSize() == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidMode, m)
	}
	return nil
}

func validateQuality(q Quality) error {
	if q != QualityFast && q != QualityDithered {
		return fmt.Errorf("%w: %s", ErrInvalidQuality, q)
	}
	return nil
}

// BlockCount returns the number of 4x4 blocks across and down an image.
func BlockCount(width, height int) (bw, bh int) {
	return (width + 3) / 4, (height + 3) / 4
}

// CompressedSize returns ceil(width/4)*ceil(height/4)*mode.BlockSize().
func CompressedSize(width, height int, mode Mode) (int, error) {
	if err := validateMode(mode); err != nil {
		return 0, err
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	bw, bh := BlockCount(width, height)
	if bw > maxInt/bh/mode.BlockSize() {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimensions, width, height)
	}

	return bw * bh * mode.BlockSize(), nil
}

// rawSize returns width*height*4 with overflow checking.
func rawSize(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > maxInt/height/4 {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimensions, width, height)
	}

	return width * height * 4, nil
}

const maxInt = int(^uint(0) >> 1)
