// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dxt

// dxtool converts images to and from DXT1/DXT5 textures in TID, DDS, EDDS and
// raw block containers.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/dxt"
	"github.com/woozymasta/dxt/edds"
	"github.com/woozymasta/dxt/tid"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	encodeFlag   = flag.Bool("encode", false, "encode an image into a texture")
	decodeFlag   = flag.Bool("decode", false, "decode a texture into a PNG")
	infoFlag     = flag.Bool("info", false, "dump texture headers")
	batchFlag    = flag.String("batch", "", "YAML manifest of conversion jobs")
	inFlag       = flag.String("in", "", "input path")
	outFlag      = flag.String("out", "", "output path; the extension picks the container")
	formatFlag   = flag.String("format", "", "payload format: dxt1, dxt5, rgba8, bgra8")
	qualityFlag  = flag.String("quality", "fast", "index matching: fast or dithered")
	workersFlag  = flag.Int("workers", 0, "encode/decode goroutines, 0 means one per CPU")
	nameFlag     = flag.String("name", "", "TID name field, defaults to the output file name")
	versionFlag  = flag.String("version", "0x90", "TID version byte")
	compressFlag = flag.Bool("compress", true, "store EDDS blocks with LZ4")
)

const usageStr = `dxtool converts images to and from DXT1/DXT5 textures.

Usage: choose one of

    dxtool -encode -in image.png -out texture.tid [-format dxt5] [-quality dithered]
    dxtool -decode -in texture.edds -out image.png
    dxtool -info -in texture.dds
    dxtool -batch jobs.yaml

Output containers by extension: .tid, .edds, .dds, .dxt (raw blocks), .png.
Inputs: BMP, GIF, JPEG, PNG, TIFF, WEBP, TID, DDS and EDDS.

Batch manifests look like:

    workers: 4
    jobs:
      - input: a.png
        output: a.tid
        format: dxt5
        quality: dithered
        name: a.tid
        version: 0x90
      - input: b.png
        output: b.edds
        format: dxt1
        compress: false
`

var (
	ErrBadMode      = errors.New("main: must specify exactly one of -encode, -decode, -info or -batch")
	ErrMissingPaths = errors.New("main: -in and -out are required")
	ErrBadExtension = errors.New("main: unsupported file extension")
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
}

// job is one conversion, from flags or a batch manifest.
type job struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Format   string `yaml:"format"`
	Quality  string `yaml:"quality"`
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Compress *bool  `yaml:"compress"`
}

type manifest struct {
	Workers int   `yaml:"workers"`
	Jobs    []job `yaml:"jobs"`
}

func main() {
	log.SetFlags(0)
	if err := main1(); err != nil {
		log.Fatal(err)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	modes := 0
	for _, set := range []bool{*encodeFlag, *decodeFlag, *infoFlag, *batchFlag != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return ErrBadMode
	}

	switch {
	case *batchFlag != "":
		return runBatch(*batchFlag)
	case *infoFlag:
		if *inFlag == "" {
			return ErrMissingPaths
		}
		return info(*inFlag)
	default:
		if *inFlag == "" || *outFlag == "" {
			return ErrMissingPaths
		}
		compress := *compressFlag
		return convert(job{
			Input:    *inFlag,
			Output:   *outFlag,
			Format:   *formatFlag,
			Quality:  *qualityFlag,
			Name:     *nameFlag,
			Version:  *versionFlag,
			Compress: &compress,
		}, *workersFlag)
	}
}

func runBatch(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("main: parse %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, j := range m.Jobs {
		if j.Input == "" || j.Output == "" {
			return fmt.Errorf("job %d: %w", i, ErrMissingPaths)
		}
		if !filepath.IsAbs(j.Input) {
			j.Input = filepath.Join(base, j.Input)
		}
		if !filepath.IsAbs(j.Output) {
			j.Output = filepath.Join(base, j.Output)
		}

		log.Printf("[%d/%d] %s -> %s", i+1, len(m.Jobs), j.Input, j.Output)
		if err := convert(j, m.Workers); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, j.Input, err)
		}
	}

	return nil
}

func convert(j job, workers int) error {
	img, err := load(j.Input, workers)
	if err != nil {
		return err
	}

	quality, err := dxt.ParseQuality(j.Quality)
	if err != nil {
		return err
	}

	switch ext(j.Output) {
	case ".png":
		return save(j.Output, func(f *os.File) error { return png.Encode(f, img) })
	case ".tid":
		return writeTID(j, img, quality, workers)
	case ".edds", ".dds":
		return writeDDS(j, img, quality, workers)
	case ".dxt":
		mode := dxt.ModeBC1
		if j.Format != "" {
			if mode, err = dxt.ParseMode(j.Format); err != nil {
				return err
			}
		}
		data, err := dxt.CompressImage(img, mode, &dxt.Options{Quality: quality, Workers: workers})
		if err != nil {
			return err
		}
		b := img.Bounds()
		log.Printf("%dx%d %s, %d bytes", b.Dx(), b.Dy(), mode, len(data))
		return os.WriteFile(j.Output, data, 0o644)
	default:
		return fmt.Errorf("%w: %q", ErrBadExtension, j.Output)
	}
}

func writeTID(j job, img image.Image, quality dxt.Quality, workers int) error {
	compression := tid.CompressionNone
	switch strings.ToLower(j.Format) {
	case "", "rgba8", "bgra8", "none", "raw":
	default:
		var err error
		if compression, err = tid.ParseCompression(j.Format); err != nil {
			return err
		}
	}

	version := uint64(tid.DefaultVersion)
	if j.Version != "" {
		var err error
		if version, err = strconv.ParseUint(j.Version, 0, 8); err != nil {
			return fmt.Errorf("main: bad version %q: %w", j.Version, err)
		}
	}

	name := j.Name
	if name == "" {
		name = filepath.Base(j.Output)
	}

	tex, err := tid.New(img, name, compression, uint8(version))
	if err != nil {
		return err
	}
	return tex.WriteFile(j.Output, &tid.EncodeOptions{Quality: quality, Workers: workers})
}

func writeDDS(j job, img image.Image, quality dxt.Quality, workers int) error {
	format := bcn.FormatBGRA8
	if j.Format != "" {
		var err error
		if format, err = edds.ParseFormat(j.Format); err != nil {
			return err
		}
	}

	opts := &edds.WriteOptions{
		Format:   format,
		Quality:  quality,
		Workers:  workers,
		Compress: j.Compress == nil || *j.Compress,
	}
	if ext(j.Output) == ".dds" {
		return edds.WriteDDS(img, j.Output, opts)
	}
	return edds.WriteWithOptions(img, j.Output, opts)
}

func load(path string, workers int) (image.Image, error) {
	switch ext(path) {
	case ".tid":
		tex, err := tid.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return tex.Image, nil
	case ".dds", ".edds":
		return edds.ReadWithOptions(path, &edds.ReadOptions{Workers: workers})
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func info(path string) error {
	switch ext(path) {
	case ".dds", ".edds":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		inf, err := edds.Inspect(f)
		if err != nil {
			return err
		}
		spewConfig.Dump(inf)
		return nil
	case ".tid":
		tex, err := tid.ReadFile(path)
		if err != nil {
			return err
		}
		b := tex.Image.Bounds()
		spewConfig.Dump(struct {
			Name          string
			Version       string
			Compression   tid.Compression
			Width, Height int
		}{tex.Name, fmt.Sprintf("0x%02x", tex.Version), tex.Compression, b.Dx(), b.Dy()})
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrBadExtension, path)
	}
}

func save(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
