// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package tid

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/woozymasta/dxt"
)

// DefaultVersion is used by New when version is zero.
const DefaultVersion uint8 = 0x90

// Compression is the payload compression id stored at header offset 0x64.
type Compression uint32

const (
	CompressionNone Compression = 0
	CompressionDXT1 Compression = 0x31545844 // "DXT1"
	CompressionDXT5 Compression = 0x35545844 // "DXT5"
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionDXT1:
		return "dxt1"
	case CompressionDXT5:
		return "dxt5"
	default:
		return fmt.Sprintf("Compression(0x%08x)", uint32(c))
	}
}

// ParseCompression accepts none, raw, dxt1, bc1, dxt5 and bc3.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "raw":
		return CompressionNone, nil
	case "dxt1", "bc1":
		return CompressionDXT1, nil
	case "dxt5", "bc3":
		return CompressionDXT5, nil
	default:
		return 0, errors.Wrapf(ErrUnknownCompression, "%q", s)
	}
}

// mode maps a compression id to the block codec mode.
func (c Compression) mode() (dxt.Mode, bool) {
	switch c {
	case CompressionDXT1:
		return dxt.ModeBC1, true
	case CompressionDXT5:
		return dxt.ModeBC3, true
	default:
		return 0, false
	}
}

func (c Compression) valid() bool {
	return c == CompressionNone || c == CompressionDXT1 || c == CompressionDXT5
}

// CompressionState says which payload kinds a version may hold.
type CompressionState uint8

const (
	Both CompressionState = iota
	CompressedOnly
	UncompressedOnly
)

func (s CompressionState) String() string {
	switch s {
	case Both:
		return "both"
	case CompressedOnly:
		return "compressed-only"
	case UncompressedOnly:
		return "uncompressed-only"
	default:
		return fmt.Sprintf("CompressionState(%d)", uint8(s))
	}
}

// Allows reports whether c may be stored under this state.
func (s CompressionState) Allows(c Compression) bool {
	switch s {
	case Both:
		return true
	case CompressedOnly:
		return c != CompressionNone
	case UncompressedOnly:
		return c == CompressionNone
	default:
		return false
	}
}

// Versions lists every known version byte.
var Versions = map[uint8]CompressionState{
	0x80: Both,
	0x81: CompressedOnly,
	0x82: UncompressedOnly,
	0x88: CompressedOnly,
	0x89: CompressedOnly,
	0x90: Both,
	0x91: CompressedOnly,
	0x92: UncompressedOnly,
	0x93: UncompressedOnly,
	0x98: Both,
	0x99: CompressedOnly,
	0x9A: UncompressedOnly,
}

// byteOrder returns the header field order for a version.
func byteOrder(version uint8) binary.ByteOrder {
	if version&1 == 0 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// pixelLayout is the raw payload channel order.
type pixelLayout uint8

const (
	layoutRGBA pixelLayout = iota
	layoutARGB
	layoutBGRA
)

func layoutFor(version uint8) pixelLayout {
	switch {
	case version == 0x9A:
		return layoutBGRA
	case version&2 != 0:
		return layoutARGB
	default:
		return layoutRGBA
	}
}

func checkVersion(version uint8, c Compression) error {
	state, ok := Versions[version]
	if !ok {
		return errors.Wrapf(ErrUnknownVersion, "0x%02x", version)
	}
	if !c.valid() {
		return errors.Wrapf(ErrUnknownCompression, "0x%08x", uint32(c))
	}
	if !state.Allows(c) {
		return errors.Wrapf(ErrCompressionForVersion, "%s with version 0x%02x (%s)", c, version, state)
	}
	return nil
}
