package dxt

import "testing"

// benchPixels builds a deterministic RGBA raster with mixed low/high frequencies.
func benchPixels(width, height int) []byte {
	pix := make([]byte, width*height*4)
	for y := range height {
		for x := range width {
			off := (y*width + x) * 4
			pix[off+0] = uint8((x*7 + y*3) & 0xff)        //nolint:gosec // bounded by mask
			pix[off+1] = uint8((x*13 + y*5) & 0xff)       //nolint:gosec // bounded by mask
			pix[off+2] = uint8((x ^ y ^ (x >> 2)) & 0xff) //nolint:gosec // bounded by mask
			pix[off+3] = uint8((x + y) & 0xff)            //nolint:gosec // bounded by mask
		}
	}
	return pix
}

func BenchmarkCompress(b *testing.B) {
	const size = 1024
	pix := benchPixels(size, size)

	for _, tc := range []struct {
		name    string
		mode    Mode
		quality Quality
	}{
		{"BC1-fast", ModeBC1, QualityFast},
		{"BC1-dithered", ModeBC1, QualityDithered},
		{"BC3-fast", ModeBC3, QualityFast},
	} {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(pix)))
			b.ResetTimer()

			for b.Loop() {
				if _, err := Compress(pix, size, size, tc.mode, tc.quality); err != nil {
					b.Fatalf("compress: %v", err)
				}
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	const size = 1024
	pix := benchPixels(size, size)

	for _, mode := range []Mode{ModeBC1, ModeBC3} {
		data, err := Compress(pix, size, size, mode, QualityFast)
		if err != nil {
			b.Fatalf("prepare: %v", err)
		}

		b.Run(mode.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(pix)))
			b.ResetTimer()

			for b.Loop() {
				if _, err := Decompress(data, size, size, mode); err != nil {
					b.Fatalf("decompress: %v", err)
				}
			}
		})
	}
}

func BenchmarkCompressBlock(b *testing.B) {
	pix := benchPixels(4, 4)
	blk, err := ExtractBlock(pix, 4, 4, 0, 0)
	if err != nil {
		b.Fatalf("extract: %v", err)
	}
	dst := make([]byte, 16)

	b.ReportAllocs()
	for b.Loop() {
		compressBlock(dst, &blk, ModeBC3, false)
	}
}
