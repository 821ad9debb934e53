// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package edds

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/dxt"
)

// WriteOptions configures single-level writes. Nil means BGRA8 with LZ4.
type WriteOptions struct {
	// Format is the payload format.
	Format bcn.Format
	// Quality selects the DXT index matching strategy.
	Quality dxt.Quality
	// Workers caps encode goroutines. Zero means one per CPU.
	Workers int
	// Compress stores the EDDS block as LZ4 when it shrinks enough.
	Compress bool
}

func defaultWriteOptions() *WriteOptions {
	return &WriteOptions{Format: bcn.FormatBGRA8, Compress: true}
}

// Write writes img as a BGRA8 EDDS file with LZ4 blocks.
func Write(img image.Image, path string) error {
	return WriteWithOptions(img, path, nil)
}

// WriteWithFormat writes img as an EDDS file in the requested format.
func WriteWithFormat(img image.Image, path string, format bcn.Format) error {
	return WriteWithFormatAndCompression(img, path, format, true)
}

// WriteWithFormatAndCompression writes an EDDS file. compress=false stores COPY blocks.
func WriteWithFormatAndCompression(img image.Image, path string, format bcn.Format, compress bool) error {
	return WriteWithOptions(img, path, &WriteOptions{Format: format, Compress: compress})
}

// WriteWithOptions writes img as a single-level EDDS file.
func WriteWithOptions(img image.Image, path string, opts *WriteOptions) error {
	return createAndWrite(path, func(w io.Writer) error {
		return Encode(w, img, opts)
	})
}

// Encode writes img to w as a single-level EDDS stream.
func Encode(w io.Writer, img image.Image, opts *WriteOptions) error {
	if opts == nil {
		opts = defaultWriteOptions()
	}

	payload, width, height, err := encodeLevel(img, opts)
	if err != nil {
		return err
	}

	return EncodeFromBlocks(w, opts.Format, width, height, [][]byte{payload}, opts.Compress)
}

// WriteDDS writes img as a plain single-level DDS file. Compress is ignored.
func WriteDDS(img image.Image, path string, opts *WriteOptions) error {
	return createAndWrite(path, func(w io.Writer) error {
		return EncodeDDS(w, img, opts)
	})
}

// EncodeDDS writes img to w as a plain DDS stream.
func EncodeDDS(w io.Writer, img image.Image, opts *WriteOptions) error {
	if opts == nil {
		opts = defaultWriteOptions()
	}

	payload, width, height, err := encodeLevel(img, opts)
	if err != nil {
		return err
	}

	header, err := levelHeader(opts.Format, width, height, 1, false)
	if err != nil {
		return err
	}
	if err := writeHeader(w, header); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockData, err)
	}

	return nil
}

// WriteFromBlocks writes an EDDS file from pre-encoded mip payloads.
// The mipmaps slice must be ordered from largest to smallest.
func WriteFromBlocks(path string, format bcn.Format, width, height int, mipmaps [][]byte) error {
	return WriteFromBlocksWithCompression(path, format, width, height, mipmaps, true)
}

// WriteFromBlocksWithCompression is WriteFromBlocks with explicit LZ4 control.
// compress=false stores COPY blocks.
func WriteFromBlocksWithCompression(path string, format bcn.Format, width, height int, mipmaps [][]byte, compress bool) error {
	// Validate before touching the filesystem.
	if _, err := encodeBlocks(format, width, height, mipmaps, compress); err != nil {
		return err
	}

	return createAndWrite(path, func(w io.Writer) error {
		return EncodeFromBlocks(w, format, width, height, mipmaps, compress)
	})
}

// EncodeFromBlocks writes pre-encoded mip payloads to w as an EDDS stream.
func EncodeFromBlocks(w io.Writer, format bcn.Format, width, height int, mipmaps [][]byte, compress bool) error {
	blocks, err := encodeBlocks(format, width, height, mipmaps, compress)
	if err != nil {
		return err
	}

	header, err := levelHeader(format, width, height, len(mipmaps), true)
	if err != nil {
		return err
	}
	if err := writeHeader(w, header); err != nil {
		return err
	}

	// Table and bodies both run from the smallest level to the largest.
	for i := len(blocks) - 1; i >= 0; i-- {
		var entry [8]byte
		copy(entry[:4], blocks[i].Magic)
		binary.LittleEndian.PutUint32(entry[4:], uint32(blocks[i].Size)) // #nosec G115 -- non-negative by construction.
		if _, err := w.Write(entry[:]); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockTable, i, err)
		}
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		if err := writeBlockData(w, blocks[i]); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockData, i, err)
		}
	}

	return nil
}

func encodeLevel(img image.Image, opts *WriteOptions) ([]byte, int, int, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, 0, 0, ErrInvalidImage
	}
	if expectedDataLength(opts.Format, 1, 1) <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrInvalidFormat, opts.Format)
	}

	b := img.Bounds()
	payload, err := encodePayload(img, opts.Format, opts.Quality, opts.Workers)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrEncodeImage, err)
	}

	return payload, b.Dx(), b.Dy(), nil
}

// encodeBlocks validates the mip chain and packs each level into a block.
func encodeBlocks(format bcn.Format, width, height int, mipmaps [][]byte, compress bool) ([]*Block, error) {
	if len(mipmaps) == 0 {
		return nil, ErrEmptyMipmaps
	}
	if format == bcn.FormatUnknown {
		return nil, ErrInvalidFormat
	}

	chain, err := mipChainLength(width, height)
	if err != nil {
		return nil, err
	}
	if len(mipmaps) > chain {
		return nil, fmt.Errorf("%w: %d levels for %dx%d (max %d)", ErrTooManyMipmaps, len(mipmaps), width, height, chain)
	}

	blocks := make([]*Block, len(mipmaps))
	for i, mip := range mipmaps {
		expected := expectedDataLength(format, mipDimension(width, i), mipDimension(height, i))
		if expected <= 0 {
			return nil, ErrInvalidFormat
		}
		if len(mip) != expected {
			return nil, fmt.Errorf("%w: mipmap %d: expected %d, got %d", ErrMipmapSizeMismatch, i, expected, len(mip))
		}

		if compress {
			blocks[i], err = compressBlock(mip)
		} else {
			blocks[i], err = copyBlock(mip)
		}
		if err != nil {
			return nil, fmt.Errorf("mipmap %d: %w", i, err)
		}
	}

	return blocks, nil
}

func levelHeader(format bcn.Format, width, height, levels int, enfusion bool) (*bcn.DDSHeader, error) {
	w32, err := u32FromInt(width)
	if err != nil {
		return nil, err
	}
	h32, err := u32FromInt(height)
	if err != nil {
		return nil, err
	}
	l32, err := u32FromInt(levels)
	if err != nil {
		return nil, err
	}

	return makeDDSHeader(w32, h32, l32, format, enfusion)
}

func writeHeader(w io.Writer, header *bcn.DDSHeader) error {
	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHeader, err)
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHeader, err)
	}
	return nil
}

// createAndWrite creates path and streams fn's output into it through a buffer.
func createAndWrite(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v", ErrWriteBlockData, err)
	}

	return f.Close()
}
