package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/dxt/tid"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 128, A: 255}) //nolint:gosec // bounded
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png: %v", err)
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "in.png"), 6, 6)

	manifest := `workers: 2
jobs:
  - input: in.png
    output: out.tid
    format: dxt5
    quality: dithered
    version: 0x91
  - input: in.png
    output: out.edds
    format: dxt1
    compress: false
  - input: in.png
    output: out.dds
    format: bgra8
  - input: in.png
    output: out.dxt
    format: bc3
  - input: out.tid
    output: back.png
  - input: out.edds
    output: back2.png
`
	path := filepath.Join(dir, "jobs.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	if err := runBatch(path); err != nil {
		t.Fatalf("runBatch: %v", err)
	}

	tex, err := tid.ReadFile(filepath.Join(dir, "out.tid"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if tex.Version != 0x91 || tex.Compression != tid.CompressionDXT5 || tex.Name != "out.tid" {
		t.Fatalf("unexpected texture %q 0x%02x %s", tex.Name, tex.Version, tex.Compression)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "out.dxt"))
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if len(raw) != 4*16 {
		t.Fatalf("raw payload %d bytes, want 64", len(raw))
	}

	for _, name := range []string{"back.png", "back2.png", "out.dds"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	if err := info(filepath.Join(dir, "out.edds")); err != nil {
		t.Fatalf("info edds: %v", err)
	}
	if err := info(filepath.Join(dir, "out.tid")); err != nil {
		t.Fatalf("info tid: %v", err)
	}
}

func TestBatchErrors(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "in.png"), 4, 4)

	path := filepath.Join(dir, "jobs.yaml")
	if err := os.WriteFile(path, []byte("jobs:\n  - input: in.png\n    output: out.xyz\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := runBatch(path); !errors.Is(err, ErrBadExtension) {
		t.Fatalf("expected ErrBadExtension, got %v", err)
	}

	if err := os.WriteFile(path, []byte("jobs:\n  - input: in.png\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := runBatch(path); !errors.Is(err, ErrMissingPaths) {
		t.Fatalf("expected ErrMissingPaths, got %v", err)
	}
}
