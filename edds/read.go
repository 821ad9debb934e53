// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package edds

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/woozymasta/bcn"
)

// ReadOptions configures decoding. Nil means defaults.
type ReadOptions struct {
	// Workers caps decode goroutines. Zero means one per CPU.
	Workers int
}

// Info describes a DDS or EDDS file without its pixel data.
type Info struct {
	Header   *bcn.DDSHeader
	DX10     *bcn.DDSHeaderDX10
	Format   bcn.Format
	FourCC   string
	Enfusion bool
	// Blocks is the EDDS block table, smallest level first. Empty for plain DDS.
	Blocks []BlockInfo
}

// BlockInfo is one EDDS block table entry.
type BlockInfo struct {
	Magic string
	Size  int32
}

// ReadConfig reads the texture dimensions without decoding image data.
func ReadConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return DecodeConfig(f)
}

// DecodeConfig reads the texture dimensions from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	header, _, err := readHeaders(r)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      int(header.Width),
		Height:     int(header.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// Read reads and decodes the largest level of a DDS or EDDS file.
func Read(path string) (image.Image, error) {
	return ReadWithOptions(path, nil)
}

// ReadWithOptions is Read with explicit options.
func ReadWithOptions(path string, opts *ReadOptions) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, opts)
}

// Decode decodes the largest level from r, which must be positioned at the
// DDS magic.
func Decode(r io.ReadSeeker, opts *ReadOptions) (image.Image, error) {
	header, dx10, err := readHeaders(r)
	if err != nil {
		return nil, err
	}

	format, fourCC := detectFormat(header, dx10)
	width, height := int(header.Width), int(header.Height)
	expected := expectedDataLength(format, width, height)
	if expected <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, fourCC)
	}

	payloadStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSHeaderRead, err)
	}

	data, err := readLargestMip(r, header, format)
	if err != nil {
		data, err = readLegacyPayload(r, payloadStart, expected)
		if err != nil {
			return nil, err
		}
	}

	var workers int
	if opts != nil {
		workers = opts.Workers
	}

	img, err := decodePayload(data, width, height, format, workers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return img, nil
}

// Inspect reads the headers and, for EDDS, the block table.
func Inspect(r io.Reader) (*Info, error) {
	header, dx10, err := readHeaders(r)
	if err != nil {
		return nil, err
	}

	format, fourCC := detectFormat(header, dx10)
	info := &Info{
		Header:   header,
		DX10:     dx10,
		Format:   format,
		FourCC:   fourCC,
		Enfusion: isEnfusion(header),
	}

	if table, err := readBlockTable(r, levelCount(header)); err == nil {
		for _, h := range table {
			info.Blocks = append(info.Blocks, BlockInfo(h))
		}
	}

	return info, nil
}

func levelCount(header *bcn.DDSHeader) uint32 {
	if header.Caps&bcn.DDSCapsMipmap != 0 && header.MipMapCount > 0 {
		return header.MipMapCount
	}
	return 1
}

// readLargestMip walks the block table and inflates level 0, the last body.
func readLargestMip(r io.ReadSeeker, header *bcn.DDSHeader, format bcn.Format) ([]byte, error) {
	count := levelCount(header)

	table, err := readBlockTable(r, count)
	if err != nil {
		return nil, err
	}

	var skip int64
	for _, h := range table[:count-1] {
		skip += int64(h.Size)
	}
	if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadBlockBody, err)
	}

	block, err := readBlockBody(r, table[count-1])
	if err != nil {
		return nil, err
	}

	expected := expectedDataLength(format, int(header.Width), int(header.Height))
	data, err := decompressBlock(block, expected)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressBlock, err)
	}

	return data, nil
}

// readLegacyPayload handles files without a block table. The remaining bytes
// are tried as an LZ4 chunk stream (with or without the size prefix), then as
// a plain DDS payload whose first level is the largest.
func readLegacyPayload(r io.ReadSeeker, payloadStart int64, expected int) ([]byte, error) {
	if _, err := r.Seek(payloadStart, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadBlockBody, err)
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadBlockBody, err)
	}

	if data, err := decodeChunkStream(rest, expected); err == nil {
		return data, nil
	}
	if len(rest) >= 8 && int64(binary.LittleEndian.Uint32(rest)) == int64(expected) {
		if data, err := decodeChunkStream(rest[4:], expected); err == nil {
			return data, nil
		}
	}

	if len(rest) < expected {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrPayloadTooShort, len(rest), expected)
	}

	return rest[:expected], nil
}

// readHeaders reads the DDS magic, header and optional DX10 header.
func readHeaders(r io.Reader) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSHeaderRead, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSDX10Read, err)
	}

	return header, dx10, nil
}
