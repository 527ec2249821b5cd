package composer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque background colour. Channels are bytes, so every value is
// within 0-255 by construction.
type RGB struct {
	R, G, B uint8
}

// White is the background used until the user picks something else.
var White = RGB{R: 255, G: 255, B: 255}

// FromColor converts any color.Color (for example the Fyne colour picker
// output) to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// NRGBA returns the colour as a fully opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Hex renders the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return c.Hex()
}

// ParseHex parses "#rrggbb", "rrggbb", "#rgb" or "rgb".
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex("#" + strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: colour %q: %w", ErrInvalidParameter, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
