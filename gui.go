package main

import (
	"fmt"
	"io"
)

// LaunchGUI explains how to start the desktop window. The window lives in
// its own binary so the CLI builds without a graphics driver.
func LaunchGUI(w io.Writer) {
	fmt.Fprintln(w, "To launch the desktop window, build the GUI from cmd/gui:")
	fmt.Fprintln(w, "  go build -o icon-banner-gui ./cmd/gui")
	fmt.Fprintln(w, "Then run: ./icon-banner-gui")
}
