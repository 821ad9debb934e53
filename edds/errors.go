// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package edds

import "errors"

// Texture and format errors.
var (
	ErrSizeOverflow       = errors.New("edds: size does not fit the header field")
	ErrInvalidFormat      = errors.New("edds: format not writable")
	ErrUnknownFormat      = errors.New("edds: format not readable")
	ErrInvalidImage       = errors.New("edds: empty or nil image")
	ErrEmptyMipmaps       = errors.New("edds: no mipmap levels")
	ErrTooManyMipmaps     = errors.New("edds: mipmap count out of range")
	ErrMipmapSizeMismatch = errors.New("edds: mipmap payload has wrong length")
	ErrPayloadTooShort    = errors.New("edds: payload shorter than level")
)

// Block and LZ4 chunk-stream errors.
var (
	ErrInputTooLarge        = errors.New("edds: block over 2GiB")
	ErrChunkTooLarge        = errors.New("edds: LZ4 chunk over 24-bit size")
	ErrLZ4Compress          = errors.New("edds: LZ4 compress")
	ErrLZ4Decode            = errors.New("edds: LZ4 decode")
	ErrCopySizeMismatch     = errors.New("edds: COPY block has wrong length")
	ErrUnknownBlockMagic    = errors.New("edds: unknown block magic")
	ErrInvalidTargetSize    = errors.New("edds: bad uncompressed size")
	ErrChunkStreamTruncated = errors.New("edds: chunk stream truncated")
	ErrUnknownLZ4Flags      = errors.New("edds: unknown chunk flags")
	ErrInvalidChunkSize     = errors.New("edds: bad chunk size")
	ErrDecodeOverrun        = errors.New("edds: chunk stream longer than level")
	ErrDecodedSizeMismatch  = errors.New("edds: chunk stream shorter than level")
	ErrBlockLengthMismatch  = errors.New("edds: trailing bytes after last chunk")
)

// Block table errors.
var (
	ErrBlockTableUnknownMagic = errors.New("edds: unknown magic in block table")
	ErrBlockTableInvalidSize  = errors.New("edds: bad size in block table")
	ErrReadBlockTable         = errors.New("edds: read block table")
	ErrReadBlockBody          = errors.New("edds: read block body")
	ErrDecompressBlock        = errors.New("edds: decompress block")
)

// I/O errors.
var (
	ErrDDSHeaderRead   = errors.New("edds: read DDS header")
	ErrDDSDX10Read     = errors.New("edds: read DX10 header")
	ErrOpenFile        = errors.New("edds: open file")
	ErrCreateFile      = errors.New("edds: create file")
	ErrDecodeImage     = errors.New("edds: decode level")
	ErrEncodeImage     = errors.New("edds: encode level")
	ErrWriteHeader     = errors.New("edds: write header")
	ErrWriteBlockTable = errors.New("edds: write block table")
	ErrWriteBlockData  = errors.New("edds: write block data")
)
