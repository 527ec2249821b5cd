package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kacebover/icon-banner/bundle"
	"github.com/kacebover/icon-banner/composer"
	"github.com/kacebover/icon-banner/palette"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printMainHelp(stdout)
		return 2
	}

	var err error
	switch args[0] {
	case "compose":
		err = runComposeCommand(args[1:], stdout, stderr)
	case "color":
		err = runColorCommand(args[1:], stdout, stderr)
	case "bundle":
		err = runBundleCommand(args[1:], stdout, stderr)
	case "gui":
		LaunchGUI(stdout)
		return 0
	case "help", "--help", "-h":
		printMainHelp(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printMainHelp(stderr)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printMainHelp(w io.Writer) {
	fmt.Fprintln(w, "Icon Banner - banner image generator")
	fmt.Fprintln(w, "====================================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  compose   Render a 1024x500 banner from an icon")
	fmt.Fprintln(w, "  color     Print the dominant colour of an icon")
	fmt.Fprintln(w, "  bundle    Export banner, icon and recipe as a ZIP archive")
	fmt.Fprintln(w, "  gui       Show how to start the desktop window")
	fmt.Fprintln(w, "  help      Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  icon-banner compose -icon app.png -out banner.png -color auto")
	fmt.Fprintln(w, "  icon-banner color -icon app.png -palette 5")
	fmt.Fprintln(w, "  icon-banner bundle -icon app.png -out banner.zip -generate-password")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'icon-banner <command> -h' for command options.")
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// ═══════════════════════════════════════════════════════════════════════════
// COMPOSE
// ═══════════════════════════════════════════════════════════════════════════

func runComposeCommand(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("compose", stderr)
	iconPath := fs.String("icon", "", "Path to the PNG or JPEG icon (required)")
	outPath := fs.String("out", "banner.png", "Output PNG path")
	colorArg := fs.String("color", "#ffffff", "Background colour as hex, or \"auto\"")
	quality := fs.Int("quality", palette.DefaultQuality, "Colour sampling quality for -color auto (1 = best)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	req, source, err := buildRequest(*iconPath, *colorArg, *quality)
	if err != nil {
		return err
	}

	result, err := composer.Compose(req)
	if err != nil {
		return err
	}
	if err := composer.SavePNG(result.Image, *outPath); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Background: %s (%s)\n", req.Background.Hex(), source)
	fmt.Fprintf(stdout, "Image saved to %s\n", *outPath)
	return nil
}

// buildRequest resolves the background and returns a validated request
func buildRequest(iconPath, colorArg string, quality int) (composer.Request, string, error) {
	if iconPath == "" {
		return composer.Request{}, "", composer.ErrMissingIcon
	}

	var (
		bg     composer.RGB
		source string
		err    error
	)
	if strings.EqualFold(colorArg, "auto") {
		bg, err = palette.NewExtractor(quality).DominantColor(iconPath)
		source = "auto"
	} else {
		bg, err = composer.ParseHex(colorArg)
		source = "manual"
	}
	if err != nil {
		return composer.Request{}, "", err
	}

	req := composer.NewRequest(iconPath, bg)
	return req, source, req.Validate()
}

// ═══════════════════════════════════════════════════════════════════════════
// COLOR
// ═══════════════════════════════════════════════════════════════════════════

func runColorCommand(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("color", stderr)
	iconPath := fs.String("icon", "", "Path to the PNG or JPEG icon (required)")
	quality := fs.Int("quality", palette.DefaultQuality, "Sampling quality (1 = best)")
	count := fs.Int("palette", 1, "Number of prominent colours to print")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *iconPath == "" {
		return composer.ErrMissingIcon
	}
	if *count < 1 {
		return fmt.Errorf("%w: -palette must be at least 1", composer.ErrInvalidParameter)
	}

	img, err := composer.LoadIcon(*iconPath)
	if err != nil {
		return err
	}
	colors, err := palette.NewExtractor(*quality).Palette(img, max(*count, palette.DefaultClusters))
	if err != nil {
		return err
	}
	if len(colors) > *count {
		colors = colors[:*count]
	}

	for _, c := range colors {
		fmt.Fprintln(stdout, c.Hex())
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// BUNDLE
// ═══════════════════════════════════════════════════════════════════════════

func runBundleCommand(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("bundle", stderr)
	iconPath := fs.String("icon", "", "Path to the PNG or JPEG icon (required)")
	outPath := fs.String("out", "banner.zip", "Output ZIP path")
	colorArg := fs.String("color", "#ffffff", "Background colour as hex, or \"auto\"")
	quality := fs.Int("quality", palette.DefaultQuality, "Colour sampling quality for -color auto (1 = best)")
	password := fs.String("password", "", "Encrypt the archive with AES-256 using this password")
	generatePwd := fs.Bool("generate-password", false, "Generate a random password and print it")
	pwdLength := fs.Int("password-length", 16, "Length of the generated password")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *generatePwd {
		pwd, err := bundle.GeneratePassword(*pwdLength)
		if err != nil {
			return err
		}
		*password = pwd
	}
	if *password != "" {
		if err := bundle.ValidatePassword(*password); err != nil {
			return err
		}
	}

	req, source, err := buildRequest(*iconPath, *colorArg, *quality)
	if err != nil {
		return err
	}
	result, err := composer.Compose(req)
	if err != nil {
		return err
	}

	entries, err := bundle.BannerEntries(result, req, source)
	if err != nil {
		return err
	}
	res, err := bundle.Write(bundle.Config{OutputPath: *outPath, Password: *password}, entries...)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Bundle written to %s\n", res.OutputPath)
	fmt.Fprintf(stdout, "  Files:    %d\n", res.Entries)
	fmt.Fprintf(stdout, "  Size:     %d bytes\n", res.ArchiveSize)
	if res.Encrypted {
		fmt.Fprintln(stdout, "  Encryption: AES-256")
		if *generatePwd {
			fmt.Fprintf(stdout, "  Password: %s\n", *password)
		}
	}
	return nil
}
