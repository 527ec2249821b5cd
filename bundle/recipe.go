package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kacebover/icon-banner/composer"
)

// Archive entry names
const (
	BannerName = "banner.png"
	RecipeName = "recipe.json"
)

// Recipe records how a banner was made so it can be reproduced.
type Recipe struct {
	IconFile     string    `json:"icon_file"`
	CanvasWidth  int       `json:"canvas_width"`
	CanvasHeight int       `json:"canvas_height"`
	IconSize     int       `json:"icon_size"`
	CornerRadius int       `json:"corner_radius"`
	Background   string    `json:"background"`
	ColorSource  string    `json:"color_source,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewRecipe describes req. colorSource is free text such as "manual" or "auto".
func NewRecipe(req composer.Request, colorSource string) Recipe {
	return Recipe{
		IconFile:     "icon" + strings.ToLower(filepath.Ext(req.IconPath)),
		CanvasWidth:  req.CanvasWidth,
		CanvasHeight: req.CanvasHeight,
		IconSize:     req.IconSize,
		CornerRadius: req.CornerRadius,
		Background:   req.Background.Hex(),
		ColorSource:  colorSource,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

// BannerEntries builds the archive content for a rendered banner: the PNG,
// the source icon and the recipe.
func BannerEntries(result *composer.Result, req composer.Request, colorSource string) ([]Entry, error) {
	if result == nil || result.Image == nil {
		return nil, ErrNoEntries
	}

	var png bytes.Buffer
	if err := composer.EncodePNG(&png, result.Image); err != nil {
		return nil, fmt.Errorf("failed to encode banner: %w", err)
	}

	recipe := NewRecipe(req, colorSource)
	icon, err := FileEntry(req.IconPath, recipe.IconFile)
	if err != nil {
		return nil, err
	}

	recipeJSON, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}

	return []Entry{
		{Name: BannerName, Data: png.Bytes()},
		icon,
		{Name: RecipeName, Data: recipeJSON},
	}, nil
}

// Request rebuilds the composition request described by the recipe, using
// iconPath as the extracted icon location.
func (r Recipe) Request(iconPath string) (composer.Request, error) {
	bg, err := composer.ParseHex(r.Background)
	if err != nil {
		return composer.Request{}, err
	}
	req := composer.Request{
		IconPath:     iconPath,
		CanvasWidth:  r.CanvasWidth,
		CanvasHeight: r.CanvasHeight,
		IconSize:     r.IconSize,
		CornerRadius: r.CornerRadius,
		Background:   bg,
	}
	return req, req.Validate()
}
