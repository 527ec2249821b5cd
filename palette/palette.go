// Package palette finds the dominant colours of an icon.
package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/EdlinOrg/prominentcolor"

	"github.com/kacebover/icon-banner/composer"
)

// ErrExtraction is returned when no colour can be derived from an image,
// e.g. when every pixel is fully transparent.
var ErrExtraction = errors.New("cannot extract colour")

const (
	// DefaultQuality samples every pixel.
	DefaultQuality = 1

	// DefaultClusters is the number of k-means clusters used to pick the
	// dominant colour.
	DefaultClusters = 3

	// workingWidth is the width the quantiser scales the icon to at quality 1.
	workingWidth = 320
	minWorking   = 16
)

// Extractor derives background colours from icons.
type Extractor struct {
	// Quality trades accuracy for speed: 1 is the most accurate, larger
	// values shrink the image handed to the quantiser. Values below 1
	// behave like 1.
	Quality int
}

// NewExtractor creates an extractor with the given quality.
func NewExtractor(quality int) *Extractor {
	return &Extractor{Quality: quality}
}

func (e *Extractor) quality() int {
	if e == nil || e.Quality < 1 {
		return DefaultQuality
	}
	return e.Quality
}

// DominantColor loads the icon at path and returns its dominant colour.
// Load failures are reported as composer.ErrInvalidImage.
func (e *Extractor) DominantColor(path string) (composer.RGB, error) {
	img, err := composer.LoadIcon(path)
	if err != nil {
		return composer.RGB{}, err
	}
	return e.DominantColorOf(img)
}

// DominantColorOf returns the dominant colour of img. A single flat colour is
// returned as is.
func (e *Extractor) DominantColorOf(img image.Image) (composer.RGB, error) {
	colors, err := e.Palette(img, DefaultClusters)
	if err != nil {
		return composer.RGB{}, err
	}
	return colors[0], nil
}

// Palette returns up to n prominent colours of img, most frequent first.
func (e *Extractor) Palette(img image.Image, n int) ([]composer.RGB, error) {
	if n < 1 {
		n = 1
	}

	distinct := distinctColors(img, n)
	switch len(distinct) {
	case 0:
		return nil, fmt.Errorf("%w: image has no opaque pixels", ErrExtraction)
	case 1:
		return distinct, nil
	}

	// Asking k-means for more clusters than there are colours leaves empty
	// clusters behind.
	k := n
	if len(distinct) < k {
		k = len(distinct)
	}

	items, err := prominentcolor.KmeansWithAll(k, img, prominentcolor.ArgumentNoCropping,
		e.workingWidth(img), []prominentcolor.ColorBackgroundMask{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: quantiser returned no colours", ErrExtraction)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Cnt > items[j].Cnt })

	out := make([]composer.RGB, 0, len(items))
	for _, item := range items {
		out = append(out, composer.RGB{
			R: uint8(item.Color.R),
			G: uint8(item.Color.G),
			B: uint8(item.Color.B),
		})
	}
	return out, nil
}

func (e *Extractor) workingWidth(img image.Image) uint {
	w := workingWidth / e.quality()
	if w < minWorking {
		w = minWorking
	}
	if dx := img.Bounds().Dx(); dx < w {
		w = dx
	}
	return uint(w)
}

// distinctColors collects the distinct opaque colours of img, stopping once
// more than limit have been seen. Every pixel is visited so a pattern that
// repeats at a fixed stride cannot pass for a flat image.
func distinctColors(img image.Image, limit int) []composer.RGB {
	seen := make(map[composer.RGB]struct{}, limit+1)
	var out []composer.RGB

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			rgb := composer.RGB{R: c.R, G: c.G, B: c.B}
			if _, ok := seen[rgb]; ok {
				continue
			}
			seen[rgb] = struct{}{}
			out = append(out, rgb)
			if len(out) > limit {
				return out
			}
		}
	}
	return out
}
