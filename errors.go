// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a bad buffer, dimension, mode or block request.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientData indicates the compressed buffer is shorter than the image requires.
	ErrInsufficientData = errors.New("insufficient compressed data")

	// ErrInvalidDimensions indicates non-positive or overflowing image dimensions.
	ErrInvalidDimensions = fmt.Errorf("%w: invalid dimensions", ErrInvalidArgument)
	// ErrInvalidMode indicates an unknown compression mode.
	ErrInvalidMode = fmt.Errorf("%w: invalid mode", ErrInvalidArgument)
	// ErrInvalidQuality indicates an unknown quality setting.
	ErrInvalidQuality = fmt.Errorf("%w: invalid quality", ErrInvalidArgument)
	// ErrBufferSize indicates a pixel or block buffer of the wrong size.
	ErrBufferSize = fmt.Errorf("%w: buffer size mismatch", ErrInvalidArgument)
	// ErrBlockOutOfBounds indicates a block that is not fully inside the image.
	ErrBlockOutOfBounds = fmt.Errorf("%w: block out of bounds", ErrInvalidArgument)
)
