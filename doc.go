// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

/*
Package dxt implements the S3TC block texture codec for BC1 (DXT1) and BC3 (DXT5).

Images are split into 4x4 pixel blocks in raster tile order. Each color block stores two
RGB565 endpoints and sixteen 2-bit palette indices (8 bytes); BC3 blocks prepend an
8-byte alpha block with two 8-bit endpoints and sixteen 3-bit indices.

The encoder estimates endpoints along the principal axis of the block colors, matches
pixels to the interpolated palette (optionally with error diffusion), refines the
endpoints once by least squares and re-matches if they moved. Flat blocks skip the
search and take their endpoints from precomputed optimal-match tables.

Pixel buffers are 4 bytes per pixel. The codec treats the bytes as R, G, B, A in that
order; any swizzling required by a container format is the caller's job.
*/
package dxt
