package palette

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/kacebover/icon-banner/composer"
)

// twoColorImage is mostly red with a blue band along the bottom tenth.
func twoColorImage(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{R: 220, G: 20, B: 20, A: 255})
	for y := h - h/10; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 20, G: 20, B: 220, A: 255})
		}
	}
	return img
}

func TestDominantColor_FlatImage(t *testing.T) {
	want := composer.RGB{R: 17, G: 99, B: 201}
	path := filepath.Join(t.TempDir(), "flat.png")
	if err := imaging.Save(imaging.New(64, 48, want.NRGBA()), path); err != nil {
		t.Fatal(err)
	}

	for _, quality := range []int{0, 1, 5, 100} {
		got, err := NewExtractor(quality).DominantColor(path)
		if err != nil {
			t.Fatalf("quality %d: DominantColor failed: %v", quality, err)
		}
		if got != want {
			t.Errorf("quality %d: DominantColor = %v, want %v", quality, got, want)
		}
	}
}

func TestDominantColor_MostlyRed(t *testing.T) {
	got, err := NewExtractor(DefaultQuality).DominantColorOf(twoColorImage(60, 60))
	if err != nil {
		t.Fatalf("DominantColorOf failed: %v", err)
	}
	if got.R < 150 || got.B > 100 {
		t.Errorf("Expected a red dominant colour, got %v", got)
	}
}

// A sparse grid of red pixels that lines up with a coarse sampling stride
// must not be reported as the icon's only colour.
func TestDominantColor_StridedPattern(t *testing.T) {
	img := imaging.New(100, 100, color.NRGBA{B: 255, A: 255})
	for y := 0; y < 100; y += 10 {
		for x := 0; x < 100; x += 10 {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	for _, quality := range []int{1, 10} {
		got, err := NewExtractor(quality).DominantColorOf(img)
		if err != nil {
			t.Fatalf("quality %d: DominantColorOf failed: %v", quality, err)
		}
		if got.B < 150 || got.R > 100 {
			t.Errorf("quality %d: DominantColorOf = %v, want mostly blue", quality, got)
		}
	}
}

func TestDistinctColors(t *testing.T) {
	img := imaging.New(20, 20, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(7, 13, color.NRGBA{R: 255, A: 255})

	if got := distinctColors(img, 3); len(got) != 2 {
		t.Errorf("distinctColors = %v, want 2 colours", got)
	}
	if got := distinctColors(imaging.New(8, 8, color.NRGBA{G: 9, A: 255}), 3); len(got) != 1 {
		t.Errorf("distinctColors on a flat image = %v", got)
	}
}

func TestPalette_OrderedByFrequency(t *testing.T) {
	colors, err := NewExtractor(1).Palette(twoColorImage(60, 60), 2)
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}
	if len(colors) != 2 {
		t.Fatalf("Expected 2 colours, got %d", len(colors))
	}
	if colors[0].R < colors[0].B {
		t.Errorf("Expected red first, got %v", colors[0])
	}
	if colors[1].B < colors[1].R {
		t.Errorf("Expected blue second, got %v", colors[1])
	}
}

func TestPalette_TransparentImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	_, err := NewExtractor(1).DominantColorOf(img)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("Expected ErrExtraction, got %v", err)
	}
}

func TestPalette_IgnoresTransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 5, G: 6, B: 7, A: 255})
		}
	}
	got, err := NewExtractor(1).DominantColorOf(img)
	if err != nil {
		t.Fatalf("DominantColorOf failed: %v", err)
	}
	if got != (composer.RGB{R: 5, G: 6, B: 7}) {
		t.Errorf("DominantColorOf = %v", got)
	}
}

func TestDominantColor_InvalidImage(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.jpg")
	if err := os.WriteFile(bogus, []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bogus, filepath.Join(dir, "absent.png")} {
		if _, err := NewExtractor(1).DominantColor(path); !errors.Is(err, composer.ErrInvalidImage) {
			t.Errorf("DominantColor(%s) error = %v, want ErrInvalidImage", filepath.Base(path), err)
		}
	}
}

func TestDominantColor_NoPath(t *testing.T) {
	if _, err := NewExtractor(1).DominantColor(""); !errors.Is(err, composer.ErrMissingIcon) {
		t.Errorf("Expected ErrMissingIcon, got %v", err)
	}
}

func TestExtractor_NilUsesDefaults(t *testing.T) {
	var e *Extractor
	if e.quality() != DefaultQuality {
		t.Errorf("nil extractor quality = %d", e.quality())
	}
}
