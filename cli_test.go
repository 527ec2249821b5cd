package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexmullins/zip"
	"github.com/disintegration/imaging"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	t.Logf("stdout: %s", stdout.String())
	t.Logf("stderr: %s", stderr.String())
	return code, stdout.String(), stderr.String()
}

// createIcon writes a 200x200 icon, red on the left and blue on the right
func createIcon(t *testing.T, dir string) string {
	t.Helper()
	img := imaging.New(200, 200, color.NRGBA{R: 255, A: 255})
	blue := imaging.New(100, 200, color.NRGBA{B: 255, A: 255})
	img = imaging.Paste(img, blue, image.Pt(100, 0))

	path := filepath.Join(dir, "icon.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Failed to create icon: %v", err)
	}
	return path
}

// TestCLI_HelpFlag tests the help command
func TestCLI_HelpFlag(t *testing.T) {
	for _, arg := range []string{"help", "--help", "-h"} {
		code, stdout, _ := runCLI(t, arg)
		if code != 0 {
			t.Errorf("%s: exit code %d", arg, code)
		}
		if !strings.Contains(stdout, "compose") || !strings.Contains(stdout, "bundle") {
			t.Errorf("%s: help output missing commands", arg)
		}
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "scan")
	if code != 2 {
		t.Errorf("Exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "Unknown command") {
		t.Error("Expected an unknown command message")
	}
}

// TestCLI_Compose tests rendering a banner from the command line
func TestCLI_Compose(t *testing.T) {
	dir := t.TempDir()
	icon := createIcon(t, dir)
	out := filepath.Join(dir, "banner.png")

	code, stdout, _ := runCLI(t, "compose", "-icon", icon, "-out", out, "-color", "#336699")
	if code != 0 {
		t.Fatalf("Exit code = %d", code)
	}
	if !strings.Contains(stdout, "#336699 (manual)") {
		t.Errorf("Unexpected output: %s", stdout)
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("Cannot open banner: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 500 {
		t.Errorf("Banner size = %v", b)
	}
	r, g, bl, _ := img.At(0, 0).RGBA()
	if r>>8 != 0x33 || g>>8 != 0x66 || bl>>8 != 0x99 {
		t.Errorf("Background = %d,%d,%d", r>>8, g>>8, bl>>8)
	}
}

func TestCLI_ComposeAutoColor(t *testing.T) {
	dir := t.TempDir()
	icon := filepath.Join(dir, "flat.png")
	imaging.Save(imaging.New(32, 32, color.NRGBA{R: 10, G: 200, B: 30, A: 255}), icon)

	code, stdout, _ := runCLI(t, "compose", "-icon", icon, "-out", filepath.Join(dir, "b.png"), "-color", "auto")
	if code != 0 {
		t.Fatalf("Exit code = %d", code)
	}
	if !strings.Contains(stdout, "#0ac81e (auto)") {
		t.Errorf("Unexpected output: %s", stdout)
	}
}

func TestCLI_ComposeErrors(t *testing.T) {
	dir := t.TempDir()
	icon := createIcon(t, dir)
	bogus := filepath.Join(dir, "notes.png")
	os.WriteFile(bogus, []byte("plain text"), 0644)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing icon", []string{"compose"}, "no icon"},
		{"bad colour", []string{"compose", "-icon", icon, "-color", "#xyz"}, "invalid parameter"},
		{"not an image", []string{"compose", "-icon", bogus}, "invalid image"},
		{"unwritable", []string{"compose", "-icon", icon, "-out", filepath.Join(dir, "none", "b.png")}, "write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("Exit code = %d, want 1", code)
			}
			if !strings.Contains(strings.ToLower(stderr), tt.want) {
				t.Errorf("stderr %q does not mention %q", stderr, tt.want)
			}
		})
	}
}

// TestCLI_Color tests printing the palette
func TestCLI_Color(t *testing.T) {
	icon := createIcon(t, t.TempDir())

	code, stdout, _ := runCLI(t, "color", "-icon", icon, "-palette", "2")
	if code != 0 {
		t.Fatalf("Exit code = %d", code)
	}
	lines := strings.Fields(stdout)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 colours, got %v", lines)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "#") || len(l) != 7 {
			t.Errorf("Not a hex colour: %q", l)
		}
	}
}

// TestCLI_Bundle tests exporting an encrypted archive
func TestCLI_Bundle(t *testing.T) {
	dir := t.TempDir()
	icon := createIcon(t, dir)
	out := filepath.Join(dir, "banner.zip")

	code, stdout, _ := runCLI(t, "bundle", "-icon", icon, "-out", out, "-password", "s3cret")
	if code != 0 {
		t.Fatalf("Exit code = %d", code)
	}
	if !strings.Contains(stdout, "AES-256") {
		t.Error("Expected encryption to be reported")
	}
	if strings.Contains(stdout, "s3cret") {
		t.Error("A user supplied password must not be printed")
	}

	r, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("Cannot open archive: %v", err)
	}
	defer r.Close()

	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
		if !f.IsEncrypted() {
			t.Errorf("%s is not encrypted", f.Name)
		}
	}
	for _, want := range []string{"banner.png", "icon.png", "recipe.json"} {
		if !names[want] {
			t.Errorf("Archive is missing %s", want)
		}
	}
}

func TestCLI_BundleRejectsShortPassword(t *testing.T) {
	dir := t.TempDir()
	icon := createIcon(t, dir)
	out := filepath.Join(dir, "banner.zip")

	code, _, _ := runCLI(t, "bundle", "-icon", icon, "-out", out, "-password", "ab")
	if code != 1 {
		t.Errorf("Exit code = %d, want 1", code)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("No archive should be written")
	}
}

func TestCLI_GUI(t *testing.T) {
	code, stdout, _ := runCLI(t, "gui")
	if code != 0 || !strings.Contains(stdout, "cmd/gui") {
		t.Errorf("Unexpected gui output (%d): %s", code, stdout)
	}
}
