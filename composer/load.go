package composer

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoadIcon decodes the image at path. JPEG EXIF orientation is applied so
// the icon appears the way photo viewers show it. Any failure (missing file,
// permissions, unknown or corrupt data, empty image) is an ErrInvalidImage.
func LoadIcon(path string) (image.Image, error) {
	if path == "" {
		return nil, ErrMissingIcon
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidImage, path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s: image has no pixels", ErrInvalidImage, path)
	}
	return img, nil
}
