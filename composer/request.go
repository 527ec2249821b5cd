package composer

import (
	"fmt"
	"image"
)

// Defaults for the banner layout. The canvas size is fixed for the app.
const (
	DefaultCanvasWidth  = 1024
	DefaultCanvasHeight = 500
	DefaultIconSize     = 300
	DefaultCornerRadius = 20
)

// Request describes one banner to render. It is a value type: build it,
// hand it to Compose, and build a fresh one for the next banner.
type Request struct {
	IconPath     string `json:"icon_path"`
	CanvasWidth  int    `json:"canvas_width"`
	CanvasHeight int    `json:"canvas_height"`
	IconSize     int    `json:"icon_size"`
	CornerRadius int    `json:"corner_radius"`
	Background   RGB    `json:"-"`
}

// NewRequest returns a request with the default layout.
func NewRequest(iconPath string, background RGB) Request {
	return Request{
		IconPath:     iconPath,
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		IconSize:     DefaultIconSize,
		CornerRadius: DefaultCornerRadius,
		Background:   background,
	}
}

// Validate reports ErrMissingIcon for an empty icon path and
// ErrInvalidParameter for a layout that cannot be rendered.
func (r Request) Validate() error {
	if r.IconPath == "" {
		return ErrMissingIcon
	}
	return r.validateLayout()
}

func (r Request) validateLayout() error {
	if r.CanvasWidth <= 0 || r.CanvasHeight <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidParameter, r.CanvasWidth, r.CanvasHeight)
	}
	if r.IconSize <= 0 {
		return fmt.Errorf("%w: icon size %d", ErrInvalidParameter, r.IconSize)
	}
	if r.IconSize > r.CanvasWidth || r.IconSize > r.CanvasHeight {
		return fmt.Errorf("%w: icon size %d exceeds canvas %dx%d",
			ErrInvalidParameter, r.IconSize, r.CanvasWidth, r.CanvasHeight)
	}
	if r.CornerRadius < 0 {
		return fmt.Errorf("%w: negative corner radius %d", ErrInvalidParameter, r.CornerRadius)
	}
	if r.CornerRadius > r.IconSize/2 {
		return fmt.Errorf("%w: corner radius %d exceeds half the icon size %d",
			ErrInvalidParameter, r.CornerRadius, r.IconSize)
	}
	return nil
}

// IconBounds is where the icon lands on the canvas.
func (r Request) IconBounds() image.Rectangle {
	x := (r.CanvasWidth - r.IconSize) / 2
	y := (r.CanvasHeight - r.IconSize) / 2
	return image.Rect(x, y, x+r.IconSize, y+r.IconSize)
}
