package composer

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/natefinch/atomic"
)

// EncodePNG writes img as PNG. Opaque images are stored as plain RGB.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// SavePNG writes img to path as PNG. The file is replaced atomically, so a
// failed save never leaves a truncated file behind.
func SavePNG(img image.Image, path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty output path", ErrOutputWrite)
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}

	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	// New files keep the 0600 mode of the temp file.
	if os.IsNotExist(statErr) {
		_ = os.Chmod(path, 0644)
	}
	return nil
}
