// Package controller provides the bridge between the banner window and the
// composition logic. It owns the session view-model: the chosen icon, the
// background colour and the last rendered banner.
package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/kacebover/icon-banner/bundle"
	"github.com/kacebover/icon-banner/composer"
	"github.com/kacebover/icon-banner/palette"
)

// ErrNothingGenerated is returned when saving before any banner was rendered.
var ErrNothingGenerated = errors.New("no banner generated yet")

const maxRecentColors = 10

// SessionState is the position of the session in the
// icon -> colour -> generate flow.
type SessionState int

const (
	NoIconSelected SessionState = iota
	IconSelected
	ColorResolved
)

func (s SessionState) String() string {
	switch s {
	case NoIconSelected:
		return "no icon selected"
	case IconSelected:
		return "icon selected"
	case ColorResolved:
		return "colour resolved"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

// ColorSource records where the background colour came from.
type ColorSource int

const (
	ColorDefault ColorSource = iota
	ColorManual
	ColorAuto
)

func (s ColorSource) String() string {
	switch s {
	case ColorManual:
		return "manual"
	case ColorAuto:
		return "auto"
	}
	return "default"
}

// LogLevel represents log message severity
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogWarning
	LogError
	LogDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogWarning:
		return "WARN"
	case LogError:
		return "ERROR"
	case LogDebug:
		return "DEBUG"
	}
	return "INFO"
}

// Session is a snapshot of the view-model.
type Session struct {
	IconPath   string
	Background composer.RGB
	Source     ColorSource
	State      SessionState
}

// BannerController manages one window's session and notifies the UI of
// changes through callbacks.
type BannerController struct {
	config    *AppConfig
	extractor *palette.Extractor

	// Callbacks
	onStateChange func(SessionState)
	onColorChange func(composer.RGB, ColorSource)
	onLogMessage  func(LogLevel, string)

	// State, discarded with the controller
	mu            sync.RWMutex
	session       Session
	lastRequest   composer.Request
	lastResult    *composer.Result
	recentColors  []composer.RGB
	lastIconDir   string
	lastOutputDir string
}

// NewBannerController creates a controller using the persisted configuration
func NewBannerController() *BannerController {
	return NewBannerControllerWithConfig(LoadConfig())
}

// NewBannerControllerWithConfig creates a controller with an explicit configuration
func NewBannerControllerWithConfig(config *AppConfig) *BannerController {
	if config == nil {
		config = DefaultConfig()
	}
	config.ValidateConfig()

	return &BannerController{
		config:    config,
		extractor: palette.NewExtractor(config.PaletteQuality),
		session: Session{
			Background: composer.White,
			Source:     ColorDefault,
			State:      NoIconSelected,
		},
	}
}

// SetOnStateChange sets the callback for state transitions
func (bc *BannerController) SetOnStateChange(callback func(SessionState)) {
	bc.onStateChange = callback
}

// SetOnColorChange sets the callback for background colour changes
func (bc *BannerController) SetOnColorChange(callback func(composer.RGB, ColorSource)) {
	bc.onColorChange = callback
}

// SetOnLogMessage sets the callback for log messages
func (bc *BannerController) SetOnLogMessage(callback func(LogLevel, string)) {
	bc.onLogMessage = callback
}

// GetConfig returns the current configuration
func (bc *BannerController) GetConfig() *AppConfig {
	return bc.config
}

// UpdateConfig updates and saves configuration
func (bc *BannerController) UpdateConfig(config *AppConfig) error {
	config.ValidateConfig()
	bc.mu.Lock()
	bc.config = config
	bc.extractor = palette.NewExtractor(config.PaletteQuality)
	bc.mu.Unlock()

	if err := SaveConfig(config); err != nil {
		bc.log(LogWarning, "Could not save settings: "+err.Error())
		return err
	}
	return nil
}

// RecentColors returns the colours chosen in this session, newest first
func (bc *BannerController) RecentColors() []composer.RGB {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return append([]composer.RGB(nil), bc.recentColors...)
}

// LastIconDir returns the directory of the last selected icon, or ""
func (bc *BannerController) LastIconDir() string {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.lastIconDir
}

// LastOutputDir returns the directory the last banner was saved to, or ""
func (bc *BannerController) LastOutputDir() string {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.lastOutputDir
}

// Session returns a snapshot of the current session
func (bc *BannerController) Session() Session {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.session
}

// State returns the current session state
func (bc *BannerController) State() SessionState {
	return bc.Session().State
}

// CanAutoColor reports whether a colour can be derived from the icon
func (bc *BannerController) CanAutoColor() bool {
	return bc.State() != NoIconSelected
}

// CanGenerate reports whether a banner can be rendered
func (bc *BannerController) CanGenerate() bool {
	return bc.State() != NoIconSelected
}

// HasResult reports whether a rendered banner is available for saving
func (bc *BannerController) HasResult() bool {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.lastResult != nil
}

// LastResult returns the most recently rendered banner, or nil
func (bc *BannerController) LastResult() *composer.Result {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.lastResult
}

// SelectIcon makes path the session icon. The file must decode as an image;
// otherwise the session is left untouched.
func (bc *BannerController) SelectIcon(path string) error {
	if path == "" {
		return composer.ErrMissingIcon
	}
	if _, err := composer.LoadIcon(path); err != nil {
		bc.log(LogError, "Cannot use icon: "+err.Error())
		return err
	}

	bc.mu.Lock()
	bc.session.IconPath = path
	// A colour derived from the previous icon no longer applies.
	if bc.session.Source == ColorManual {
		bc.session.State = ColorResolved
	} else {
		bc.session.State = IconSelected
	}
	bc.lastResult = nil
	state := bc.session.State
	bc.lastIconDir = filepath.Dir(path)
	bc.mu.Unlock()

	bc.log(LogInfo, "Icon selected: "+path)
	bc.notifyState(state)
	return nil
}

// ChooseColor sets a user-picked background colour. It is accepted in any
// state; the session only becomes ColorResolved once an icon is present.
func (bc *BannerController) ChooseColor(rgb composer.RGB) {
	bc.mu.Lock()
	bc.session.Background = rgb
	bc.session.Source = ColorManual
	if bc.session.State == IconSelected {
		bc.session.State = ColorResolved
	}
	state := bc.session.State
	bc.addRecentColor(rgb)
	bc.mu.Unlock()

	bc.log(LogInfo, "Background colour set to "+rgb.Hex())
	bc.notifyColor(rgb, ColorManual)
	bc.notifyState(state)
}

// addRecentColor moves rgb to the front of the recent list. Callers hold mu.
func (bc *BannerController) addRecentColor(rgb composer.RGB) {
	colors := make([]composer.RGB, 0, len(bc.recentColors)+1)
	colors = append(colors, rgb)
	for _, c := range bc.recentColors {
		if c != rgb {
			colors = append(colors, c)
		}
	}
	if len(colors) > maxRecentColors {
		colors = colors[:maxRecentColors]
	}
	bc.recentColors = colors
}

// AutoColor derives the background from the icon's dominant colour.
func (bc *BannerController) AutoColor() (composer.RGB, error) {
	bc.mu.RLock()
	path := bc.session.IconPath
	extractor := bc.extractor
	bc.mu.RUnlock()

	if path == "" {
		return composer.RGB{}, composer.ErrMissingIcon
	}

	rgb, err := extractor.DominantColor(path)
	if err != nil {
		bc.log(LogError, "Colour extraction failed: "+err.Error())
		return composer.RGB{}, err
	}

	bc.mu.Lock()
	bc.session.Background = rgb
	bc.session.Source = ColorAuto
	bc.session.State = ColorResolved
	bc.mu.Unlock()

	bc.log(LogInfo, "Dominant colour: "+rgb.Hex())
	bc.notifyColor(rgb, ColorAuto)
	bc.notifyState(ColorResolved)
	return rgb, nil
}

// Suggestions returns up to n prominent colours of the session icon.
func (bc *BannerController) Suggestions(n int) ([]composer.RGB, error) {
	bc.mu.RLock()
	path := bc.session.IconPath
	extractor := bc.extractor
	bc.mu.RUnlock()

	if path == "" {
		return nil, composer.ErrMissingIcon
	}

	img, err := composer.LoadIcon(path)
	if err != nil {
		return nil, err
	}
	return extractor.Palette(img, n)
}

// Request builds the composition request for the current session.
func (bc *BannerController) Request() (composer.Request, error) {
	s := bc.Session()
	if s.State == NoIconSelected {
		return composer.Request{}, composer.ErrMissingIcon
	}
	req := composer.NewRequest(s.IconPath, s.Background)
	return req, req.Validate()
}

// Generate renders the banner for the current session and keeps it as the
// result to save.
func (bc *BannerController) Generate() (*composer.Result, error) {
	req, err := bc.Request()
	if err != nil {
		return nil, err
	}

	result, err := composer.Compose(req)
	if err != nil {
		bc.log(LogError, "Generation failed: "+err.Error())
		return nil, err
	}

	bc.mu.Lock()
	bc.lastRequest = req
	bc.lastResult = result
	bc.mu.Unlock()

	bc.log(LogInfo, fmt.Sprintf("Banner generated: %dx%d, icon at (%d, %d)",
		req.CanvasWidth, req.CanvasHeight, result.IconBounds.Min.X, result.IconBounds.Min.Y))
	return result, nil
}

// Save writes the last generated banner to path as PNG.
func (bc *BannerController) Save(path string) error {
	bc.mu.RLock()
	result := bc.lastResult
	bc.mu.RUnlock()

	if result == nil {
		return ErrNothingGenerated
	}

	if err := composer.SavePNG(result.Image, path); err != nil {
		bc.log(LogError, "Save failed: "+err.Error())
		return err
	}

	bc.mu.Lock()
	bc.lastOutputDir = filepath.Dir(path)
	bc.mu.Unlock()

	bc.log(LogInfo, "Image saved to "+path)
	return nil
}

// ExportBundle writes the last banner, its icon and recipe to a ZIP archive.
// A non-empty password encrypts the archive.
func (bc *BannerController) ExportBundle(path, password string) (*bundle.Result, error) {
	bc.mu.RLock()
	result := bc.lastResult
	req := bc.lastRequest
	source := bc.session.Source
	bc.mu.RUnlock()

	if result == nil {
		return nil, ErrNothingGenerated
	}

	entries, err := bundle.BannerEntries(result, req, source.String())
	if err != nil {
		bc.log(LogError, "Bundle failed: "+err.Error())
		return nil, err
	}

	res, err := bundle.Write(bundle.Config{OutputPath: path, Password: password}, entries...)
	if err != nil {
		bc.log(LogError, "Bundle failed: "+err.Error())
		return nil, err
	}

	bc.log(LogInfo, fmt.Sprintf("Bundle written to %s (%s)", res.OutputPath, FormatFileSize(res.ArchiveSize)))
	return res, nil
}

// Reset returns the session to its initial state
func (bc *BannerController) Reset() {
	bc.mu.Lock()
	bc.session = Session{Background: composer.White, Source: ColorDefault, State: NoIconSelected}
	bc.lastResult = nil
	bc.lastRequest = composer.Request{}
	bc.mu.Unlock()

	bc.notifyColor(composer.White, ColorDefault)
	bc.notifyState(NoIconSelected)
}

func (bc *BannerController) notifyState(state SessionState) {
	if bc.onStateChange != nil {
		bc.onStateChange(state)
	}
}

func (bc *BannerController) notifyColor(rgb composer.RGB, source ColorSource) {
	if bc.onColorChange != nil {
		bc.onColorChange(rgb, source)
	}
}

// log emits a log message
func (bc *BannerController) log(level LogLevel, message string) {
	if bc.onLogMessage != nil {
		bc.onLogMessage(level, message)
	}
}
