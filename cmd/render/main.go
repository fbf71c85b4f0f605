package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"target-editor/internal/editor/codec"
	"target-editor/internal/editor/mapper"
	"target-editor/internal/editor/render"
)

// ============================================================
// Target Render CLI
// ============================================================

// render -in practice.target -out practice.png
// render -in practice.svg -out practice.target
func main() {
	in := flag.String("in", "", "input .target or .svg file")
	out := flag.String("out", "", "output .svg, .png or .target file")
	width := flag.Int("width", 0, "canvas width (0: fit regions)")
	height := flag.Int("height", 0, "canvas height (0: fit regions)")
	opacity := flag.Float64("opacity", render.DefaultOptions().Opacity, "fill opacity")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*in, *out, render.Options{
		Width:   *width,
		Height:  *height,
		Title:   strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in)),
		Opacity: *opacity,
	}); err != nil {
		log.Fatalf("[RENDER] %v", err)
	}
}

func run(in, out string, opts render.Options) error {
	var (
		regions int
		buf     bytes.Buffer
	)

	switch strings.ToLower(filepath.Ext(in)) {
	case ".svg":
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()

		doc, report, err := mapper.NewImporter().Import(f)
		if err != nil {
			return err
		}
		for _, name := range report.Skipped {
			log.Printf("[RENDER] Skipped %s", name)
		}
		if strings.ToLower(filepath.Ext(out)) != codec.Extension {
			return fmt.Errorf("svg input can only be converted to %s", codec.Extension)
		}
		if err := codec.SaveFile(out, doc); err != nil {
			return err
		}
		log.Printf("[RENDER] %s: %d regions imported", out, report.Imported)
		return nil

	case codec.Extension:
		doc, err := codec.LoadFile(in)
		if err != nil {
			return err
		}
		regions = doc.Len()

		switch strings.ToLower(filepath.Ext(out)) {
		case ".svg":
			err = render.SVG(&buf, doc.Regions(), opts)
		case ".png":
			err = render.PNG(&buf, doc.Regions(), opts)
		default:
			err = fmt.Errorf("unsupported output format %q", filepath.Ext(out))
		}
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("unsupported input format %q", filepath.Ext(in))
	}

	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("[RENDER] %s: %d regions rendered", out, regions)
	return nil
}
