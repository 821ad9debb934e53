// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package tid

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/woozymasta/dxt"
)

const (
	// Magic is the three byte prefix of every TID file.
	Magic = "TID"

	headerSize = 0x80
	nameSize   = 0x20

	// maxDimension bounds width and height read from untrusted headers.
	maxDimension = 1 << 14
)

func init() {
	image.RegisterFormat("tid", Magic+"?", Decode, DecodeConfig)
}

// header is the on-disk layout. Fields are stored in the version's byte order.
type header struct {
	Magic      [3]byte
	Version    uint8
	FileSize   uint32 // whole file when raw, headerSize when compressed
	HeaderSize uint32
	Unknown0C  uint32 // 1
	Unknown10  uint32 // 1
	Unknown14  uint32 // 0x20
	_          [8]byte
	Name       [nameSize]byte
	InfoSize   uint32 // 0x60
	Width      uint32
	Height     uint32
	BitDepth   uint32 // 32 when raw, 0 when compressed
	Unknown50  uint32 // 0x010001
	_          [4]byte
	DataLength uint32
	DataOffset uint32
	Unknown60  uint32 // 0 raw, 4 compressed
	FourCC     uint32
	_          [16]byte
	Unknown78  uint32 // 0x101
	_          [4]byte
}

// Texture is a decoded TID file.
type Texture struct {
	Image       *image.NRGBA
	Name        string
	Compression Compression
	Version     uint8
}

// EncodeOptions configures DXT encoding. Nil means defaults.
type EncodeOptions struct {
	Quality dxt.Quality
	Workers int
}

// New wraps img as a texture. A zero version selects DefaultVersion.
func New(img image.Image, name string, compression Compression, version uint8) (*Texture, error) {
	if version == 0 {
		version = DefaultVersion
	}
	if err := checkVersion(version, compression); err != nil {
		return nil, err
	}
	if len(name) > nameSize {
		return nil, errors.Wrapf(ErrNameTooLong, "%d bytes", len(name))
	}
	if img == nil {
		return nil, errors.Wrap(ErrBadDimensions, "nil image")
	}
	if err := checkDimensions(img.Bounds().Dx(), img.Bounds().Dy()); err != nil {
		return nil, err
	}

	return &Texture{
		Image:       dxt.ToNRGBA(img),
		Name:        name,
		Compression: compression,
		Version:     version,
	}, nil
}

// ReadFile reads a TID texture from path.
func ReadFile(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "tid: open %q", path)
	}
	defer f.Close()

	return Read(bufio.NewReader(f))
}

// Read reads a whole TID texture from r.
func Read(r io.Reader) (*Texture, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	width, height := int(h.Width), int(h.Height)
	compression := Compression(h.FourCC)

	need := width * height * 4
	if mode, ok := compression.mode(); ok {
		need, err = dxt.CompressedSize(width, height, mode)
		if err != nil {
			return nil, errors.Wrap(ErrBadDimensions, err.Error())
		}
	}
	// 0x9A ignores the stored length.
	if h.Version != 0x9A && int64(h.DataLength) < int64(need) {
		return nil, errors.Wrapf(ErrTruncated, "data length %d, need %d", h.DataLength, need)
	}

	data := make([]byte, need)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrapf(ErrTruncated, "payload: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if mode, ok := compression.mode(); ok {
		pix, err := dxt.Decompress(data, width, height, mode)
		if err != nil {
			return nil, errors.Wrap(err, "tid: decompress")
		}
		copy(img.Pix, pix)
		if compression == CompressionDXT1 {
			for i := 3; i < len(img.Pix); i += 4 {
				img.Pix[i] = 0xff
			}
		}
	} else {
		unpackPixels(img.Pix, data, layoutFor(h.Version))
	}

	return &Texture{
		Image:       img,
		Name:        string(bytes.TrimRight(h.Name[:], "\x00")),
		Compression: compression,
		Version:     h.Version,
	}, nil
}

// Decode reads a TID image from r.
func Decode(r io.Reader) (image.Image, error) {
	t, err := Read(r)
	if err != nil {
		return nil, err
	}
	return t.Image, nil
}

// DecodeConfig reads a TID image configuration from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

// WriteFile writes t to path.
func (t *Texture) WriteFile(path string, opts *EncodeOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "tid: create %q", path)
	}

	bw := bufio.NewWriter(f)
	if err := t.Encode(bw, opts); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "tid: flush")
	}
	return f.Close()
}

// Encode writes t to w. opts only affects DXT payloads and may be nil.
func (t *Texture) Encode(w io.Writer, opts *EncodeOptions) error {
	if err := checkVersion(t.Version, t.Compression); err != nil {
		return err
	}
	if len(t.Name) > nameSize {
		return errors.Wrapf(ErrNameTooLong, "%d bytes", len(t.Name))
	}
	if t.Image == nil {
		return errors.Wrap(ErrBadDimensions, "nil image")
	}

	src := dxt.ToNRGBA(t.Image)
	width, height := src.Rect.Dx(), src.Rect.Dy()
	if err := checkDimensions(width, height); err != nil {
		return err
	}

	var data []byte
	if mode, ok := t.Compression.mode(); ok {
		o := &dxt.Options{}
		if opts != nil {
			o.Quality, o.Workers = opts.Quality, opts.Workers
		}
		var err error
		data, err = dxt.CompressWithOptions(src.Pix, width, height, mode, o)
		if err != nil {
			return errors.Wrap(err, "tid: compress")
		}
	} else {
		data = make([]byte, len(src.Pix))
		packPixels(data, src.Pix, layoutFor(t.Version))
	}

	h := header{
		Magic:      [3]byte{'T', 'I', 'D'},
		Version:    t.Version,
		FileSize:   headerSize,
		HeaderSize: headerSize,
		Unknown0C:  1,
		Unknown10:  1,
		Unknown14:  0x20,
		InfoSize:   0x60,
		Width:      uint32(width),  // #nosec G115 -- checked by checkDimensions.
		Height:     uint32(height), // #nosec G115 -- checked by checkDimensions.
		Unknown50:  0x010001,
		DataLength: uint32(len(data)), // #nosec G115 -- bounded by maxDimension.
		DataOffset: headerSize,
		FourCC:     uint32(t.Compression),
		Unknown78:  0x101,
	}
	copy(h.Name[:], t.Name)
	if t.Compression == CompressionNone {
		h.FileSize = headerSize + h.DataLength
		h.BitDepth = 32
	} else {
		h.Unknown60 = 4
	}

	if err := binary.Write(w, byteOrder(t.Version), &h); err != nil {
		return errors.Wrap(err, "tid: write header")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "tid: write payload")
	}
	return nil
}

func readHeader(r io.Reader) (*header, error) {
	var raw [headerSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, errors.Wrapf(ErrTruncated, "header: %v", err)
	}
	if string(raw[:3]) != Magic {
		return nil, ErrNotTID
	}

	version := raw[3]
	if _, ok := Versions[version]; !ok {
		return nil, errors.Wrapf(ErrUnknownVersion, "0x%02x", version)
	}

	h := new(header)
	if err := binary.Read(bytes.NewReader(raw[:]), byteOrder(version), h); err != nil {
		return nil, errors.Wrap(err, "tid: parse header")
	}

	if c := Compression(h.FourCC); !c.valid() {
		return nil, errors.Wrapf(ErrUnknownCompression, "0x%08x", h.FourCC)
	}
	if err := checkDimensions(int(h.Width), int(h.Height)); err != nil {
		return nil, err
	}

	return h, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return errors.Wrapf(ErrBadDimensions, "%dx%d", width, height)
	}
	return nil
}
