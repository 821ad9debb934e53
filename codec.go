// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

package dxt

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"sync"
	"sync/atomic"
)

// sequentialBlocks is the block count below which work stays on the caller's
// goroutine.
const sequentialBlocks = 32

// Compress encodes an RGBA raster of width*height pixels. The result holds
// ceil(width/4)*ceil(height/4) blocks in raster order. Edge blocks replicate
// the last row and column.
func Compress(pix []byte, width, height int, mode Mode, quality Quality) ([]byte, error) {
	return CompressContext(context.Background(), pix, width, height, mode, &Options{Quality: quality})
}

// CompressWithOptions is Compress with explicit options. Nil options use defaults.
func CompressWithOptions(pix []byte, width, height int, mode Mode, opts *Options) ([]byte, error) {
	return CompressContext(context.Background(), pix, width, height, mode, opts)
}

// CompressContext is CompressWithOptions with cancellation checked between blocks.
func CompressContext(ctx context.Context, pix []byte, width, height int, mode Mode, opts *Options) ([]byte, error) {
	cfg := resolveOptions(opts)
	if err := validateQuality(cfg.Quality); err != nil {
		return nil, err
	}

	outSize, err := CompressedSize(width, height, mode)
	if err != nil {
		return nil, err
	}

	inSize, err := rawSize(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) < inSize {
		return nil, fmt.Errorf("%w: got %d pixel bytes, need %d", ErrBufferSize, len(pix), inSize)
	}

	LookupTables()

	out := make([]byte, outSize)
	bw, bh := BlockCount(width, height)
	bs := mode.BlockSize()
	dither := cfg.Quality == QualityDithered

	err = runBlocks(ctx, bw*bh, cfg.Workers, func(idx int, b *Block) {
		b.load(pix, width, height, idx%bw, idx/bw)
		compressBlock(out[idx*bs:(idx+1)*bs], b, mode, dither)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Decompress decodes width*height pixels from data into a new RGBA raster.
// data must hold at least CompressedSize(width, height, mode) bytes.
func Decompress(data []byte, width, height int, mode Mode) ([]byte, error) {
	return DecompressContext(context.Background(), data, width, height, mode, nil)
}

// DecompressWithOptions is Decompress with explicit options. Only Workers is used.
func DecompressWithOptions(data []byte, width, height int, mode Mode, opts *Options) ([]byte, error) {
	return DecompressContext(context.Background(), data, width, height, mode, opts)
}

// DecompressContext is DecompressWithOptions with cancellation checked between blocks.
func DecompressContext(ctx context.Context, data []byte, width, height int, mode Mode, opts *Options) ([]byte, error) {
	pix, err := allocRaw(data, width, height, mode)
	if err != nil {
		return nil, err
	}

	if err := decompressInto(ctx, pix, data, width, height, mode, resolveOptions(opts).Workers); err != nil {
		return nil, err
	}

	return pix, nil
}

// CompressImage encodes any image, converting it to non-premultiplied RGBA first.
func CompressImage(img image.Image, mode Mode, opts *Options) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}

	n := ToNRGBA(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	return CompressWithOptions(n.Pix, w, h, mode, opts)
}

// DecompressImage decodes data into a new NRGBA image of width x height.
func DecompressImage(data []byte, width, height int, mode Mode, opts *Options) (*image.NRGBA, error) {
	pix, err := DecompressWithOptions(data, width, height, mode, opts)
	if err != nil {
		return nil, err
	}

	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

func allocRaw(data []byte, width, height int, mode Mode) ([]byte, error) {
	need, err := CompressedSize(width, height, mode)
	if err != nil {
		return nil, err
	}
	if len(data) < need {
		return nil, fmt.Errorf("%w: got %d bytes, need %d for %dx%d %s", ErrInsufficientData, len(data), need, width, height, mode)
	}

	size, err := rawSize(width, height)
	if err != nil {
		return nil, err
	}

	return make([]byte, size), nil
}

func decompressInto(ctx context.Context, pix, data []byte, width, height int, mode Mode, workers int) error {
	bw, bh := BlockCount(width, height)
	bs := mode.BlockSize()

	return runBlocks(ctx, bw*bh, workers, func(idx int, b *Block) {
		decompressBlock(b, data[idx*bs:(idx+1)*bs], mode)
		b.store(pix, width, height, idx%bw, idx/bw)
	})
}

// ToNRGBA returns img as a zero-origin *image.NRGBA with a tight stride,
// copying only when needed.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == n.Rect.Dx()*4 {
		return n
	}

	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, img, b.Min, draw.Src)
	return n
}

func resolveOptions(opts *Options) Options {
	var cfg Options
	if opts != nil {
		cfg = *opts
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return cfg
}

// runBlocks calls fn for block indices [0, total), spreading them over up to
// workers goroutines. Each goroutine owns one scratch block. The first
// context error stops all workers and is returned.
func runBlocks(ctx context.Context, total, workers int, fn func(idx int, b *Block)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	procs := max(1, min(workers, total))

	// Small images are faster to process sequentially.
	if procs == 1 || total < sequentialBlocks {
		var b Block
		for idx := range total {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(idx, &b)
		}
		return nil
	}

	var next atomic.Int64
	var stop atomic.Bool
	var firstErr error
	var errOnce sync.Once

	var wg sync.WaitGroup
	wg.Add(procs)
	for range procs {
		go func() {
			defer wg.Done()
			var b Block
			for {
				if stop.Load() {
					return
				}
				if err := ctx.Err(); err != nil {
					errOnce.Do(func() {
						firstErr = err
						stop.Store(true)
					})
					return
				}

				idx := int(next.Add(1) - 1)
				if idx >= total {
					return
				}
				fn(idx, &b)
			}
		}()
	}
	wg.Wait()

	return firstErr
}
