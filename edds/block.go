// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package edds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4-compressed block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the Enfusion chunk size for LZ4 streams.
	ChunkSize = 64 * 1024

	// minCompressSize is the payload size below which blocks are stored as COPY.
	minCompressSize = 1024
	// maxCompressRatio is the compressed/raw ratio above which COPY is kept.
	maxCompressRatio = 0.85

	chunkFlagLast = 0x80
	maxChunkSize  = 0x7fffff

	// maxTableEntries bounds the block table read from untrusted headers.
	maxTableEntries = 32
)

// Block is one mipmap block body.
// For LZ4 blocks Data holds the chunk stream without the size prefix.
type Block struct {
	Magic            string
	Data             []byte
	Size             int32
	UncompressedSize int32
}

func copyBlock(data []byte) (*Block, error) {
	size, err := i32FromInt(len(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(data))
	}

	return &Block{Magic: BlockMagicCOPY, Size: size, Data: data}, nil
}

// compressBlock packs data into an LZ4 chunk stream, falling back to COPY when
// the payload is small or does not compress well.
func compressBlock(data []byte) (*Block, error) {
	raw, err := copyBlock(data)
	if err != nil {
		return nil, err
	}
	if len(data) < minCompressSize {
		return raw, nil
	}

	stream, ok, err := encodeChunkStream(data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return raw, nil
	}

	total := 4 + len(stream)
	if float64(total) > float64(len(data))*maxCompressRatio {
		return raw, nil
	}

	size, err := i32FromInt(total)
	if err != nil {
		return nil, err
	}

	return &Block{
		Magic:            BlockMagicLZ4,
		Size:             size,
		UncompressedSize: raw.Size,
		Data:             stream,
	}, nil
}

// encodeChunkStream compresses data in ChunkSize pieces. Each chunk is a
// 24-bit little-endian compressed size, a flags byte and the LZ4 block.
// ok is false when any chunk does not shrink enough to be worth storing.
func encodeChunkStream(data []byte) ([]byte, bool, error) {
	var stream bytes.Buffer
	buf := make([]byte, lz4.CompressBlockBound(ChunkSize))

	for start := 0; start < len(data); start += ChunkSize {
		end := min(start+ChunkSize, len(data))
		chunk := data[start:end]

		n, err := lz4.CompressBlockHC(chunk, buf, 0, nil, nil)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if n == 0 || float64(n) > float64(len(chunk))*maxCompressRatio {
			return nil, false, nil
		}
		if n > maxChunkSize {
			return nil, false, fmt.Errorf("%w: %d", ErrChunkTooLarge, n)
		}

		flags := byte(0)
		if end == len(data) {
			flags = chunkFlagLast
		}
		stream.Write([]byte{byte(n), byte(n >> 8), byte(n >> 16), flags})
		stream.Write(buf[:n])
	}

	return stream.Bytes(), true, nil
}

// writeBlockData writes the block payload (no table entry).
func writeBlockData(w io.Writer, block *Block) error {
	if block.Magic == BlockMagicLZ4 {
		if err := binary.Write(w, binary.LittleEndian, block.UncompressedSize); err != nil {
			return err
		}
	}

	_, err := w.Write(block.Data)
	return err
}

// decompressBlock inflates a block into exactly expected bytes.
func decompressBlock(block *Block, expected int) ([]byte, error) {
	switch block.Magic {
	case BlockMagicCOPY:
		if len(block.Data) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expected, len(block.Data))
		}
		out := make([]byte, len(block.Data))
		copy(out, block.Data)
		return out, nil
	case BlockMagicLZ4:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, block.Magic)
	}

	if expected <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTargetSize, expected)
	}
	if block.UncompressedSize != 0 && int(block.UncompressedSize) != expected {
		return nil, fmt.Errorf("%w: header says %d, level needs %d", ErrInvalidTargetSize, block.UncompressedSize, expected)
	}

	return decodeChunkStream(block.Data, expected)
}

// rollingDict keeps the last 64KB of decoded output for chunk back-references.
type rollingDict struct {
	buf  [ChunkSize]byte
	size int
}

func (d *rollingDict) bytes() []byte { return d.buf[:d.size] }

func (d *rollingDict) push(p []byte) {
	if len(p) >= len(d.buf) {
		copy(d.buf[:], p[len(p)-len(d.buf):])
		d.size = len(d.buf)
		return
	}

	if free := len(d.buf) - d.size; len(p) > free {
		shift := len(p) - free
		copy(d.buf[:], d.buf[shift:d.size])
		d.size -= shift
	}
	copy(d.buf[d.size:], p)
	d.size += len(p)
}

func decodeChunkStream(data []byte, targetSize int) ([]byte, error) {
	target := make([]byte, targetSize)
	dict := new(rollingDict)
	r := bytes.NewReader(data)
	out := 0

	for {
		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: chunk header: %v", ErrChunkStreamTruncated, err)
		}

		size := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		flags := hdr[3]
		if flags&^chunkFlagLast != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if size <= 0 || size > r.Len() {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, size, r.Len())
		}

		compressed := make([]byte, size)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, fmt.Errorf("%w: chunk data: %v", ErrChunkStreamTruncated, err)
		}

		remaining := targetSize - out
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		dst := target[out : out+min(ChunkSize, remaining)]

		n, err := lz4.UncompressBlockWithDict(compressed, dst, dict.bytes())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}

		dict.push(dst[:n])
		out += n

		if flags&chunkFlagLast != 0 {
			break
		}
	}

	if out != targetSize {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, targetSize, out)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Len())
	}

	return target, nil
}

type blockHeader struct {
	Magic string
	Size  int32
}

func readBlockTable(r io.Reader, count uint32) ([]blockHeader, error) {
	if count == 0 || count > maxTableEntries {
		return nil, fmt.Errorf("%w: %d entries", ErrTooManyMipmaps, count)
	}

	hdrs := make([]blockHeader, 0, count)
	for i := range count {
		var entry [8]byte
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrReadBlockTable, i, err)
		}

		magic := string(entry[:4])
		size := int32(binary.LittleEndian.Uint32(entry[4:])) // #nosec G115 -- sign checked below.

		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
			return nil, fmt.Errorf("%w: %d: %q", ErrBlockTableUnknownMagic, i, magic)
		}
		if size < 0 || (magic == BlockMagicLZ4 && size < 4) {
			return nil, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		hdrs = append(hdrs, blockHeader{Magic: magic, Size: size})
	}

	return hdrs, nil
}

// readBlockBody reads one block. LZ4 bodies start with the uncompressed size.
func readBlockBody(r io.Reader, h blockHeader) (*Block, error) {
	data := make([]byte, h.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadBlockBody, h.Magic, err)
	}

	block := &Block{Magic: h.Magic, Size: h.Size, Data: data}
	if h.Magic == BlockMagicLZ4 {
		block.UncompressedSize = int32(binary.LittleEndian.Uint32(data[:4])) // #nosec G115 -- validated by decoder.
		block.Data = data[4:]
	}

	return block, nil
}
