// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

/*
Package edds reads and writes DDS textures and their Enfusion EDDS variant.

EDDS stores a DDS header followed by a block table and block bodies per mipmap
level (smallest to largest). Blocks may be uncompressed (COPY) or LZ4
compressed using the Enfusion chunk-stream format with a rolling 64KB
dictionary. Plain DDS files carry the payload directly after the header.

DXT1 and DXT5 payloads are encoded and decoded with the dxt codec. RGBA8 and
BGRA8 are swizzled in place. DXT3, BC4 and BC5 go through bcn.

Only the largest level is decoded. Writers store a single level unless the
caller supplies a pre-encoded chain to WriteFromBlocks.
*/
package edds
