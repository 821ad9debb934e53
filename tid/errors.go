// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package tid

import "github.com/pkg/errors"

var (
	// ErrNotTID is returned when the magic bytes do not match.
	ErrNotTID = errors.New("tid: not a TID file")
	// ErrUnknownVersion is returned for version bytes outside Versions.
	ErrUnknownVersion = errors.New("tid: unknown version")
	// ErrUnknownCompression is returned for unknown compression ids.
	ErrUnknownCompression = errors.New("tid: unknown compression")
	// ErrCompressionForVersion is returned when a version cannot store the requested compression.
	ErrCompressionForVersion = errors.New("tid: compression not allowed for version")
	// ErrTruncated is returned when the header or payload is cut short.
	ErrTruncated = errors.New("tid: truncated file")
	// ErrNameTooLong is returned for names over 32 bytes.
	ErrNameTooLong = errors.New("tid: name too long")
	// ErrBadDimensions is returned for zero or oversized textures.
	ErrBadDimensions = errors.New("tid: bad dimensions")
)
