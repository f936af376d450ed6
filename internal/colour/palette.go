// Package colour provides colour quantization and palette types built on the
// k-means clustering engine.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// Palette is an ordered collection of colours, optionally weighted by the
// share of pixels each colour represents.
type Palette struct {
	Colors  []color.Color
	Weights []float64
}

// NewPalette creates a Palette without weights.
func NewPalette(colors []color.Color) *Palette {
	return &Palette{Colors: colors}
}

// NewPaletteWithWeights creates a Palette whose colours carry relative
// weights. Weights are expected to sum to 1 but this is not enforced.
func NewPaletteWithWeights(colors []color.Color, weights []float64) *Palette {
	return &Palette{Colors: colors, Weights: weights}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// RGB represents a colour in 8-bit RGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the colour in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB, dropping any alpha channel.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = ToRGB(c).Hex()
	}
	return hexColors
}

// ToRGBSlice converts the palette colours to RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColors := make([]RGB, len(p.Colors))
	for i, c := range p.Colors {
		rgbColors[i] = ToRGB(c)
	}
	return rgbColors
}

// ColorJSON represents a single colour in JSON output.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON output.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		colors[i] = ColorJSON{
			Hex: rgb.Hex(),
			RGB: rgb,
		}
		if i < len(p.Weights) {
			colors[i].Weight = p.Weights[i]
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}, "", "  ")
}

// String returns a human-readable representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, rgb.Hex(), rgb.String())
	}
	return result
}

// Get returns the colour at the specified index.
func (p *Palette) Get(index int) (color.Color, error) {
	if index < 0 || index >= len(p.Colors) {
		return nil, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, color.Color) bool) {
	return func(yield func(int, color.Color) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}
