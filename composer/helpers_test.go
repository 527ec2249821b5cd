package composer

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

var (
	red    = color.NRGBA{R: 255, A: 255}
	green  = color.NRGBA{G: 255, A: 255}
	blue   = color.NRGBA{B: 255, A: 255}
	yellow = color.NRGBA{R: 255, G: 255, A: 255}
)

// quadrantImage builds a size×size image with a different colour in each
// quarter: red top-left, green top-right, blue bottom-left, yellow bottom-right.
func quadrantImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch {
			case x < half && y < half:
				img.SetNRGBA(x, y, red)
			case y < half:
				img.SetNRGBA(x, y, green)
			case x < half:
				img.SetNRGBA(x, y, blue)
			default:
				img.SetNRGBA(x, y, yellow)
			}
		}
	}
	return img
}

// writeImage saves img under dir; the format follows the extension of name.
func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Failed to write test image %s: %v", name, err)
	}
	return path
}

func nrgbaAt(img *image.NRGBA, x, y int) color.NRGBA {
	return img.NRGBAAt(x, y)
}
