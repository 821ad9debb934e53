// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

/*
Package tid reads and writes TID textures.

A TID file is a 0x80 byte header followed by one payload. The fourth header
byte is the version; odd versions store header fields big-endian. Payloads are
either raw 32-bit pixels or DXT1/DXT5 blocks.

Raw pixel byte order depends on the version: 0x9A stores BGRA, versions with
bit 1 set store ARGB, all others store RGBA.

Importing the package registers the format with image.Decode.
*/
package tid
