package tid

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/woozymasta/dxt"
)

func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 17), //nolint:gosec // bounded
				G: uint8(y * 29), //nolint:gosec // bounded
				B: uint8(x ^ y),  //nolint:gosec // bounded
				A: uint8(200 + x),
			})
		}
	}
	return img
}

func encode(t *testing.T, tex *Texture) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := tex.Encode(&buf, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

func TestRawRoundTripAllLayouts(t *testing.T) {
	t.Parallel()

	for _, version := range []uint8{0x80, 0x82, 0x90, 0x93, 0x98, 0x9A} {
		img := testImage(5, 3)
		tex, err := New(img, "sample.tid", CompressionNone, version)
		if err != nil {
			t.Fatalf("0x%02x: New: %v", version, err)
		}

		data := encode(t, tex)
		if len(data) != headerSize+5*3*4 {
			t.Fatalf("0x%02x: file size %d", version, len(data))
		}

		got, err := Read(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("0x%02x: Read: %v", version, err)
		}
		if got.Name != "sample.tid" || got.Version != version || got.Compression != CompressionNone {
			t.Fatalf("0x%02x: header mismatch: %+v", version, got)
		}
		if !bytes.Equal(got.Image.Pix, img.Pix) {
			t.Fatalf("0x%02x: pixel mismatch", version)
		}
	}
}

func TestRawPayloadLayout(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	tests := []struct {
		version uint8
		want    []byte
	}{
		{0x90, []byte{1, 2, 3, 4}},
		{0x92, []byte{4, 1, 2, 3}},
		{0x9A, []byte{3, 2, 1, 4}},
	}

	for _, tc := range tests {
		tex, err := New(img, "", CompressionNone, tc.version)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		data := encode(t, tex)
		if got := data[headerSize:]; !bytes.Equal(got, tc.want) {
			t.Fatalf("0x%02x: payload %v, want %v", tc.version, got, tc.want)
		}
	}
}

func TestHeaderFields(t *testing.T) {
	t.Parallel()

	tex, err := New(testImage(8, 4), "abc", CompressionNone, 0x90)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := encode(t, tex)
	le := binary.LittleEndian

	checks := []struct {
		off  int
		want uint32
	}{
		{0x04, uint32(len(data))},
		{0x08, 0x80},
		{0x0C, 1},
		{0x10, 1},
		{0x14, 0x20},
		{0x40, 0x60},
		{0x44, 8},
		{0x48, 4},
		{0x4C, 0x20},
		{0x50, 0x010001},
		{0x58, 8 * 4 * 4},
		{0x5C, 0x80},
		{0x60, 0},
		{0x64, 0},
		{0x78, 0x101},
	}
	for _, c := range checks {
		if got := le.Uint32(data[c.off:]); got != c.want {
			t.Fatalf("offset 0x%02x = 0x%x, want 0x%x", c.off, got, c.want)
		}
	}
	if string(data[:3]) != Magic || data[3] != 0x90 {
		t.Fatalf("bad magic %q", data[:4])
	}
	if string(data[0x20:0x23]) != "abc" || data[0x23] != 0 {
		t.Fatalf("bad name field %q", data[0x20:0x40])
	}
}

func TestBigEndianHeader(t *testing.T) {
	t.Parallel()

	tex, err := New(testImage(8, 4), "", CompressionDXT5, 0x91)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := encode(t, tex)

	be := binary.BigEndian
	if be.Uint32(data[0x44:]) != 8 || be.Uint32(data[0x48:]) != 4 {
		t.Fatalf("dimensions not big-endian")
	}
	if be.Uint32(data[0x64:]) != uint32(CompressionDXT5) {
		t.Fatalf("fourcc not big-endian")
	}
	if be.Uint32(data[0x04:]) != headerSize || be.Uint32(data[0x60:]) != 4 {
		t.Fatalf("compressed header fields wrong")
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		compression Compression
		version     uint8
		mode        dxt.Mode
	}{
		{CompressionDXT1, 0x90, dxt.ModeBC1},
		{CompressionDXT5, 0x90, dxt.ModeBC3},
		{CompressionDXT5, 0x99, dxt.ModeBC3},
	}

	for _, tc := range tests {
		img := testImage(6, 6)
		tex, err := New(img, "c", tc.compression, tc.version)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		data := encode(t, tex)

		size, err := dxt.CompressedSize(6, 6, tc.mode)
		if err != nil {
			t.Fatalf("CompressedSize: %v", err)
		}
		if len(data) != headerSize+size {
			t.Fatalf("%s: file size %d, want %d", tc.compression, len(data), headerSize+size)
		}

		got, err := Read(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%s: Read: %v", tc.compression, err)
		}
		want, err := dxt.Decompress(data[headerSize:], 6, 6, tc.mode)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		for i := 0; i < len(want); i += 4 {
			if tc.compression == CompressionDXT1 {
				want[i+3] = 0xff
			}
		}
		if !bytes.Equal(got.Image.Pix, want) {
			t.Fatalf("%s: decoded pixels differ from codec output", tc.compression)
		}
	}
}

func TestImageDecodeRegistered(t *testing.T) {
	t.Parallel()

	tex, err := New(testImage(4, 4), "reg", CompressionNone, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := encode(t, tex)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if format != "tid" || cfg.Width != 4 || cfg.Height != 4 {
		t.Fatalf("unexpected config %q %+v", format, cfg)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestWriteReadFile(t *testing.T) {
	t.Parallel()

	img := testImage(7, 5)
	tex, err := New(img, "file", CompressionNone, 0x80)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.tid")
	if err := tex.WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got.Image.Pix, img.Pix) {
		t.Fatalf("pixel mismatch")
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	img := testImage(4, 4)
	tests := []struct {
		name        string
		img         image.Image
		label       string
		compression Compression
		version     uint8
		wantErr     error
	}{
		{"unknown-version", img, "", CompressionNone, 0x70, ErrUnknownVersion},
		{"compressed-only", img, "", CompressionNone, 0x81, ErrCompressionForVersion},
		{"uncompressed-only", img, "", CompressionDXT1, 0x9A, ErrCompressionForVersion},
		{"unknown-compression", img, "", Compression(7), 0x90, ErrUnknownCompression},
		{"long-name", img, string(make([]byte, 33)), CompressionNone, 0x90, ErrNameTooLong},
		{"empty-image", image.NewNRGBA(image.Rect(0, 0, 0, 4)), "", CompressionNone, 0x90, ErrBadDimensions},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tc.img, tc.label, tc.compression, tc.version)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	tex, err := New(testImage(4, 4), "", CompressionNone, 0x90)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	good := encode(t, tex)

	mutate := func(f func(b []byte)) []byte {
		b := bytes.Clone(good)
		f(b)
		return b
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"short-header", good[:0x40], ErrTruncated},
		{"short-payload", good[:len(good)-1], ErrTruncated},
		{"magic", mutate(func(b []byte) { b[0] = 'X' }), ErrNotTID},
		{"version", mutate(func(b []byte) { b[3] = 0x10 }), ErrUnknownVersion},
		{"compression", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[0x64:], 5) }), ErrUnknownCompression},
		{"zero-width", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[0x44:], 0) }), ErrBadDimensions},
		{"data-length", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[0x58:], 4) }), ErrTruncated},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Read(bytes.NewReader(tc.data))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseCompression(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Compression{
		"":     CompressionNone,
		"raw":  CompressionNone,
		"DXT1": CompressionDXT1,
		"bc3":  CompressionDXT5,
	} {
		got, err := ParseCompression(in)
		if err != nil || got != want {
			t.Fatalf("ParseCompression(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCompression("etc1"); !errors.Is(err, ErrUnknownCompression) {
		t.Fatalf("expected ErrUnknownCompression, got %v", err)
	}
}
