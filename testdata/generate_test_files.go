//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Generates sample icons for trying the CLI and the window by hand:
//
//	go run testdata/generate_test_files.go testdata
func main() {
	baseDir := filepath.Dir(os.Args[0])
	if len(os.Args) > 1 {
		baseDir = os.Args[1]
	}
	if err := os.MkdirAll(filepath.Join(baseDir, "icons"), 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("Creating sample icons...")

	createQuadrantIcon(baseDir)
	createWideJPEG(baseDir)
	createFlatIcon(baseDir)
	createTransparentIcon(baseDir)
	createNotAnImage(baseDir)

	fmt.Println("All sample icons created!")
}

func save(img image.Image, baseDir, name string, opts ...imaging.EncodeOption) {
	path := filepath.Join(baseDir, "icons", name)
	if err := imaging.Save(img, path, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", name, err)
		return
	}
	fmt.Println("  Created:", path)
}

// Square PNG with four coloured quadrants
func createQuadrantIcon(baseDir string) {
	img := imaging.New(512, 512, color.NRGBA{R: 220, G: 40, B: 40, A: 255})
	img = imaging.Paste(img, imaging.New(256, 256, color.NRGBA{G: 170, B: 80, A: 255}), image.Pt(256, 0))
	img = imaging.Paste(img, imaging.New(256, 256, color.NRGBA{R: 30, G: 90, B: 220, A: 255}), image.Pt(0, 256))
	img = imaging.Paste(img, imaging.New(256, 256, color.NRGBA{R: 250, G: 200, B: 20, A: 255}), image.Pt(256, 256))
	save(img, baseDir, "quadrants.png")
}

// Non-square JPEG; the centre crop keeps the middle square
func createWideJPEG(baseDir string) {
	img := imaging.New(800, 600, color.NRGBA{R: 90, G: 20, B: 120, A: 255})
	img = imaging.Paste(img, imaging.New(600, 600, color.NRGBA{R: 240, G: 120, B: 30, A: 255}), image.Pt(100, 0))
	save(img, baseDir, "wide.jpg", imaging.JPEGQuality(90))
}

// Single colour; Auto Color returns it exactly
func createFlatIcon(baseDir string) {
	save(imaging.New(128, 128, color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}), baseDir, "flat.png")
}

// Opaque disc on a transparent background
func createTransparentIcon(baseDir string) {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			dx, dy := x-128, y-128
			if dx*dx+dy*dy <= 100*100 {
				img.SetNRGBA(x, y, color.NRGBA{R: 16, G: 185, B: 129, A: 255})
			}
		}
	}
	save(img, baseDir, "disc.png")
}

// Text file with an image extension; loading it must fail
func createNotAnImage(baseDir string) {
	path := filepath.Join(baseDir, "icons", "not-an-image.png")
	if err := os.WriteFile(path, []byte("this is not a PNG\n"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "  not-an-image.png: %v\n", err)
		return
	}
	fmt.Println("  Created:", path)
}
