package composer

import (
	"image"
	"image/color"
)

// RoundedMask returns a size×size alpha mask that is opaque inside a rounded
// square with quarter-circle corners of the given radius and transparent
// outside it. A pixel belongs to the shape when its centre does.
func RoundedMask(size, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if radius <= 0 {
		for i := range mask.Pix {
			mask.Pix[i] = 0xff
		}
		return mask
	}

	r := float64(radius)
	far := float64(size) - r
	for y := 0; y < size; y++ {
		dy := cornerOffset(float64(y)+0.5, r, far)
		row := mask.Pix[y*mask.Stride : y*mask.Stride+size]
		for x := range row {
			dx := cornerOffset(float64(x)+0.5, r, far)
			if dx*dx+dy*dy <= r*r {
				row[x] = 0xff
			}
		}
	}
	return mask
}

// cornerOffset is the distance from v to the band [near, far] along one axis.
func cornerOffset(v, near, far float64) float64 {
	switch {
	case v < near:
		return near - v
	case v > far:
		return v - far
	}
	return 0
}

// ApplyMask returns a copy of img whose alpha channel is replaced by mask.
// Both must have the same size; img is read relative to its own origin.
func ApplyMask(img image.Image, mask *image.Alpha) *image.NRGBA {
	b := mask.Bounds()
	out := image.NewNRGBA(b)
	src := img.Bounds().Min
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(src.X+x-b.Min.X, src.Y+y-b.Min.Y)).(color.NRGBA)
			c.A = mask.AlphaAt(x, y).A
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
