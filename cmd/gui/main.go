package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/kacebover/icon-banner/bundle"
	"github.com/kacebover/icon-banner/composer"
	"github.com/kacebover/icon-banner/gui/controller"
)

var iconExtensions = []string{".png", ".jpg", ".jpeg"}

// BannerGUI represents the GUI application
type BannerGUI struct {
	app    fyne.App
	window fyne.Window
	ctrl   *controller.BannerController

	// Icon
	iconLabel   *widget.Label
	iconPreview *canvas.Image

	// Colour
	colorSwatch *canvas.Rectangle
	colorLabel  *widget.Label
	paletteBox  *fyne.Container
	recentBox   *fyne.Container

	// Buttons
	browseButton   *widget.Button
	colorButton    *widget.Button
	autoButton     *widget.Button
	generateButton *widget.Button
	exportButton   *widget.Button

	// Output
	preview     *canvas.Image
	statusLabel *widget.Label
}

func main() {
	gui := NewBannerGUI(app.NewWithID("com.kacebover.iconbanner"), controller.NewBannerController())
	gui.window.ShowAndRun()
}

// NewBannerGUI creates the window for a and wires it to ctrl
func NewBannerGUI(a fyne.App, ctrl *controller.BannerController) *BannerGUI {
	cfg := ctrl.GetConfig()

	w := a.NewWindow("Image Generator")
	w.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	w.CenterOnScreen()

	bg := &BannerGUI{
		app:    a,
		window: w,
		ctrl:   ctrl,
	}

	ctrl.SetOnLogMessage(func(level controller.LogLevel, msg string) {
		log.Printf("[%s] %s", level, msg)
		bg.statusLabel.SetText(msg)
	})
	ctrl.SetOnStateChange(bg.applyState)
	ctrl.SetOnColorChange(func(c composer.RGB, source controller.ColorSource) {
		bg.showColor(c, source)
		bg.refreshRecent()
	})

	w.SetCloseIntercept(func() {
		bg.saveWindowSize()
		w.Close()
	})

	bg.buildUI()
	bg.applyState(ctrl.State())
	return bg
}

func (bg *BannerGUI) buildUI() {
	// === ICON ===
	iconHeader := widget.NewLabelWithStyle("Choose an icon:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	bg.iconLabel = widget.NewLabel("No icon selected")
	bg.iconLabel.Truncation = fyne.TextTruncateEllipsis

	bg.iconPreview = canvas.NewImageFromResource(theme.FileImageIcon())
	bg.iconPreview.FillMode = canvas.ImageFillContain
	bg.iconPreview.SetMinSize(fyne.NewSize(64, 64))

	bg.browseButton = widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), bg.onBrowse)

	iconSection := container.NewBorder(
		iconHeader, nil, bg.iconPreview, nil,
		container.NewVBox(bg.iconLabel, bg.browseButton),
	)

	// === COLOUR ===
	colorHeader := widget.NewLabelWithStyle("Choose background color:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	bg.colorSwatch = canvas.NewRectangle(composer.White.NRGBA())
	bg.colorSwatch.SetMinSize(fyne.NewSize(48, 32))
	bg.colorSwatch.StrokeColor = theme.Color(theme.ColorNameForeground)
	bg.colorSwatch.StrokeWidth = 1
	bg.colorLabel = widget.NewLabel(colorDescription(composer.White, controller.ColorDefault))

	bg.colorButton = widget.NewButtonWithIcon("Choose Color", theme.ColorPaletteIcon(), bg.onChooseColor)
	bg.autoButton = widget.NewButtonWithIcon("Auto Color", theme.ColorChromaticIcon(), bg.onAutoColor)
	bg.paletteBox = container.NewHBox()
	bg.recentBox = container.NewHBox()

	colorSection := container.NewVBox(
		colorHeader,
		container.NewHBox(bg.colorSwatch, bg.colorLabel),
		container.NewGridWithColumns(2, bg.colorButton, bg.autoButton),
		bg.paletteBox,
		bg.recentBox,
	)

	// === GENERATE ===
	bg.generateButton = widget.NewButtonWithIcon("Generate Image", theme.DocumentSaveIcon(), bg.onGenerate)
	bg.generateButton.Importance = widget.HighImportance
	bg.exportButton = widget.NewButtonWithIcon("Export Bundle", theme.UploadIcon(), bg.onExport)

	bg.preview = canvas.NewImageFromImage(nil)
	bg.preview.FillMode = canvas.ImageFillContain
	bg.preview.SetMinSize(fyne.NewSize(float32(composer.DefaultCanvasWidth)/3, float32(composer.DefaultCanvasHeight)/3))

	bg.statusLabel = widget.NewLabel("Ready")
	bg.statusLabel.Truncation = fyne.TextTruncateEllipsis

	content := container.NewVBox(
		container.NewPadded(iconSection),
		widget.NewSeparator(),
		container.NewPadded(colorSection),
		widget.NewSeparator(),
		container.NewGridWithColumns(2, bg.generateButton, bg.exportButton),
		bg.preview,
		layout.NewSpacer(),
	)

	bg.window.SetContent(container.NewBorder(nil, bg.statusLabel, nil, nil, container.NewScroll(content)))
	bg.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, u := range uris {
			if hasIconExtension(u.Path()) {
				bg.selectIcon(u.Path())
				return
			}
		}
	})
}

// applyState enables only the actions valid in the current session state
func (bg *BannerGUI) applyState(state controller.SessionState) {
	setEnabled(bg.autoButton, bg.ctrl.CanAutoColor())
	setEnabled(bg.generateButton, bg.ctrl.CanGenerate())
	setEnabled(bg.exportButton, bg.ctrl.HasResult())
	if state == controller.NoIconSelected {
		bg.paletteBox.RemoveAll()
	}
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (bg *BannerGUI) onBrowse() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, bg.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		bg.selectIcon(path)
	}, bg.window)
	d.SetFilter(storage.NewExtensionFileFilter(iconExtensions))
	bg.setDialogLocation(d, bg.ctrl.LastIconDir())
	d.Show()
}

func (bg *BannerGUI) selectIcon(path string) {
	if err := bg.ctrl.SelectIcon(path); err != nil {
		dialog.ShowError(userError(err), bg.window)
		return
	}

	bg.iconLabel.SetText(filepath.Base(path))
	bg.iconPreview.Resource = nil
	bg.iconPreview.File = path
	bg.iconPreview.Refresh()
	bg.refreshPalette()
}

// refreshPalette shows the icon's prominent colours as one-click swatches
func (bg *BannerGUI) refreshPalette() {
	bg.paletteBox.RemoveAll()

	n := bg.ctrl.GetConfig().PaletteSwatches
	if n == 0 {
		return
	}
	colors, err := bg.ctrl.Suggestions(n)
	if err != nil {
		bg.statusLabel.SetText("No colour suggestions: " + err.Error())
		return
	}

	for _, c := range colors {
		bg.paletteBox.Add(bg.swatchButton(c))
	}
	bg.paletteBox.Refresh()
}

// refreshRecent shows the colours chosen earlier in this session
func (bg *BannerGUI) refreshRecent() {
	bg.recentBox.RemoveAll()

	recent := bg.ctrl.RecentColors()
	if len(recent) == 0 {
		bg.recentBox.Refresh()
		return
	}
	bg.recentBox.Add(widget.NewLabel("Recent:"))
	for _, c := range recent {
		bg.recentBox.Add(bg.swatchButton(c))
	}
	bg.recentBox.Refresh()
}

func (bg *BannerGUI) swatchButton(c composer.RGB) fyne.CanvasObject {
	swatch := canvas.NewRectangle(c.NRGBA())
	swatch.SetMinSize(fyne.NewSize(28, 28))
	btn := widget.NewButton("", func() { bg.ctrl.ChooseColor(c) })
	return container.NewStack(btn, container.NewPadded(swatch))
}

func (bg *BannerGUI) onChooseColor() {
	picker := dialog.NewColorPicker("Background", "Choose background color", func(c color.Color) {
		bg.ctrl.ChooseColor(composer.FromColor(c))
	}, bg.window)
	picker.Advanced = true
	picker.SetColor(bg.ctrl.Session().Background.NRGBA())
	picker.Show()
}

func (bg *BannerGUI) onAutoColor() {
	if _, err := bg.ctrl.AutoColor(); err != nil {
		dialog.ShowError(userError(err), bg.window)
	}
}

func (bg *BannerGUI) showColor(c composer.RGB, source controller.ColorSource) {
	bg.colorSwatch.FillColor = c.NRGBA()
	bg.colorSwatch.Refresh()
	bg.colorLabel.SetText(colorDescription(c, source))
}

func (bg *BannerGUI) onGenerate() {
	result, err := bg.ctrl.Generate()
	if err != nil {
		dialog.ShowError(userError(err), bg.window)
		return
	}

	bg.preview.Image = result.Image
	bg.preview.Refresh()
	bg.applyState(bg.ctrl.State())

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, bg.window)
			return
		}
		if writer == nil {
			return
		}
		writer.Close()
		path, err := saveChosenFile(writer.URI().Path(), ".png", bg.ctrl.Save)
		if err != nil {
			dialog.ShowError(userError(err), bg.window)
			return
		}
		dialog.ShowInformation("Image saved", "Image saved to "+path, bg.window)
	}, bg.window)
	d.SetFileName("banner.png")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	bg.setDialogLocation(d, bg.ctrl.LastOutputDir())
	d.Show()
}

func (bg *BannerGUI) onExport() {
	password := widget.NewPasswordEntry()
	password.SetPlaceHolder("Leave empty for an unprotected archive")

	items := []*widget.FormItem{
		widget.NewFormItem("Password", password),
	}
	dialog.ShowForm("Export Bundle", "Export", "Cancel", items, func(confirm bool) {
		if !confirm {
			return
		}
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, bg.window)
				return
			}
			if writer == nil {
				return
			}
			writer.Close()

			var res *bundle.Result
			_, err = saveChosenFile(writer.URI().Path(), ".zip", func(path string) error {
				var exportErr error
				res, exportErr = bg.ctrl.ExportBundle(path, password.Text)
				return exportErr
			})
			if err != nil {
				dialog.ShowError(userError(err), bg.window)
				return
			}
			dialog.ShowInformation("Bundle exported",
				fmt.Sprintf("%d files, %s\n%s", res.Entries, controller.FormatFileSize(res.ArchiveSize), res.OutputPath),
				bg.window)
		}, bg.window)
		d.SetFileName("banner.zip")
		d.SetFilter(storage.NewExtensionFileFilter([]string{".zip"}))
		bg.setDialogLocation(d, bg.ctrl.LastOutputDir())
		d.Show()
	}, bg.window)
}

// saveChosenFile writes the output for a path picked in a save dialog. The
// dialog has already created an empty file there; it is removed when the
// output goes to a different name or nothing could be written.
func saveChosenFile(dialogPath, ext string, save func(path string) error) (string, error) {
	path := ensureExtension(dialogPath, ext)
	err := save(path)
	if err != nil || path != dialogPath {
		removeIfEmpty(dialogPath)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func removeIfEmpty(path string) {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() && info.Size() == 0 {
		os.Remove(path)
	}
}

func (bg *BannerGUI) saveWindowSize() {
	size := bg.window.Canvas().Size()
	cfg := bg.ctrl.GetConfig().Clone()
	cfg.WindowWidth = int(size.Width)
	cfg.WindowHeight = int(size.Height)
	if err := bg.ctrl.UpdateConfig(cfg); err != nil {
		log.Printf("[%s] %v", controller.LogWarning, err)
	}
}

type locatable interface {
	SetLocation(fyne.ListableURI)
}

func (bg *BannerGUI) setDialogLocation(d locatable, dir string) {
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return
	}
	d.SetLocation(lister)
}

// userError turns controller errors into messages for the error dialog
func userError(err error) error {
	switch {
	case errors.Is(err, composer.ErrMissingIcon):
		return errors.New("Please choose an icon first.")
	case errors.Is(err, composer.ErrInvalidImage):
		return fmt.Errorf("The selected file is not a readable PNG or JPEG image.\n\n%v", err)
	case errors.Is(err, composer.ErrOutputWrite):
		return fmt.Errorf("The image could not be saved.\n\n%v", err)
	case errors.Is(err, controller.ErrNothingGenerated):
		return errors.New("Generate an image first.")
	}
	return err
}

func colorDescription(c composer.RGB, source controller.ColorSource) string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(c.Hex()), source)
}

func hasIconExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range iconExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func ensureExtension(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}
