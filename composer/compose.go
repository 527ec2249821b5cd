package composer

import (
	"image"

	"github.com/disintegration/imaging"
)

// Result is a rendered banner.
type Result struct {
	// Image is the canvas; every pixel is fully opaque.
	Image *image.NRGBA

	// IconBounds is the rectangle covered by the icon.
	IconBounds image.Rectangle
}

// Compose loads the icon named by req and renders the banner. It has no side
// effects and gives identical output for identical input.
func Compose(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	icon, err := LoadIcon(req.IconPath)
	if err != nil {
		return nil, err
	}
	return ComposeImage(icon, req)
}

// ComposeImage renders the banner from an already decoded icon; req.IconPath
// is ignored.
func ComposeImage(icon image.Image, req Request) (*Result, error) {
	if err := req.validateLayout(); err != nil {
		return nil, err
	}

	// Centre-crop to a square first so wide or tall icons are not squashed.
	square := imaging.Fill(icon, req.IconSize, req.IconSize, imaging.Center, imaging.Lanczos)
	rounded := ApplyMask(square, RoundedMask(req.IconSize, req.CornerRadius))

	canvas := imaging.New(req.CanvasWidth, req.CanvasHeight, req.Background.NRGBA())
	bounds := req.IconBounds()
	canvas = imaging.Overlay(canvas, rounded, bounds.Min, 1.0)

	return &Result{Image: canvas, IconBounds: bounds}, nil
}
