// Package composer renders banner images: a rounded icon centred on a
// uniformly coloured canvas.
package composer

import "errors"

// Common errors
var (
	ErrMissingIcon      = errors.New("no icon selected")
	ErrInvalidImage     = errors.New("invalid image")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrOutputWrite      = errors.New("cannot write output")
)
