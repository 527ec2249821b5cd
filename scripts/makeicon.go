//go:build ignore
// +build ignore

package main

import (
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"

	"github.com/kacebover/icon-banner/composer"
)

func main() {
	if len(os.Args) < 2 {
		os.Args = append(os.Args, "Icon.png")
	}

	const size = 512

	// Indigo tile with a lighter banner strip and a square "icon" on it
	bgColor := color.NRGBA{R: 49, G: 46, B: 129, A: 255}
	stripColor := color.NRGBA{R: 165, G: 180, B: 252, A: 255}
	tileColor := color.NRGBA{R: 250, G: 204, B: 21, A: 255}

	img := imaging.New(size, size, bgColor)
	strip := imaging.New(size-96, 220, stripColor)
	img = imaging.Paste(img, strip, image.Pt(48, (size-220)/2))

	tile := composer.ApplyMask(imaging.New(140, 140, tileColor), composer.RoundedMask(140, 28))
	img = imaging.Overlay(img, tile, image.Pt((size-140)/2, (size-140)/2), 1.0)

	// Round the app icon itself like the banners it makes
	img = composer.ApplyMask(img, composer.RoundedMask(size, 96))

	if err := composer.SavePNG(img, os.Args[1]); err != nil {
		panic(err)
	}
}
