// Package palette holds the fixed set of colors goals, columns, tasks and
// events can be painted with.
package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Key names a palette entry.
type Key string

const (
	Red    Key = "red"
	Orange Key = "orange"
	Yellow Key = "yellow"
	Green  Key = "green"
	Blue   Key = "blue"
	Indigo Key = "indigo"
	Violet Key = "violet"
	Gray   Key = "gray"
)

// Swatch is the pair of hex colors drawn for a key: the saturated variant
// for borders and accents, the desaturated one for fills.
type Swatch struct {
	Saturated   string `json:"saturated" yaml:"saturated"`
	Desaturated string `json:"desaturated" yaml:"desaturated"`
}

var keys = []Key{Red, Orange, Yellow, Green, Blue, Indigo, Violet, Gray}

var swatches = map[Key]Swatch{
	Red:    {Saturated: "#ff4444", Desaturated: "#ffeeee"},
	Orange: {Saturated: "#ff8c42", Desaturated: "#fff4ec"},
	Yellow: {Saturated: "#ffd700", Desaturated: "#fffbe6"},
	Green:  {Saturated: "#4caf50", Desaturated: "#edf7ee"},
	Blue:   {Saturated: "#2196f3", Desaturated: "#e9f5fe"},
	Indigo: {Saturated: "#3f51b5", Desaturated: "#eceef8"},
	Violet: {Saturated: "#9c27b0", Desaturated: "#f6e9f8"},
	Gray:   {Saturated: "#4b5563", Desaturated: "#f3f4f6"},
}

// Keys lists every palette key in picker order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// Valid reports whether k is a palette key.
func (k Key) Valid() bool {
	_, ok := swatches[k]
	return ok
}

// Swatch returns the colors for k, falling back to gray for unknown keys.
func (k Key) Swatch() Swatch {
	if s, ok := swatches[k]; ok {
		return s
	}
	return swatches[Gray]
}

// Saturated is the accent hex for k.
func (k Key) Saturated() string { return k.Swatch().Saturated }

// Desaturated is the fill hex for k.
func (k Key) Desaturated() string { return k.Swatch().Desaturated }

// Next cycles to the following key in picker order.
func (k Key) Next() Key {
	for i, key := range keys {
		if key == k {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

// Prev is the key before k in palette order.
func (k Key) Prev() Key {
	for i, key := range keys {
		if key == k {
			return keys[(i+len(keys)-1)%len(keys)]
		}
	}
	return keys[0]
}

// Parse resolves a case-insensitive key name.
func Parse(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("palette: unknown color %q", s)
	}
	return k, nil
}

const (
	lightText = "#ffffff"
	darkText  = "#111827"
)

// TextOn returns a readable foreground hex for text drawn over background.
// Unparseable backgrounds get dark text.
func TextOn(background string) string {
	bg, err := colorful.Hex(background)
	if err != nil {
		return darkText
	}
	light, _ := colorful.Hex(lightText)
	dark, _ := colorful.Hex(darkText)
	if contrast(bg, light) >= contrast(bg, dark) {
		return lightText
	}
	return darkText
}

// Nearest maps an arbitrary hex color onto the closest palette key by
// perceptual distance, for importing colors from elsewhere.
func Nearest(hex string) (Key, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("palette: %w", err)
	}
	best, dist := Gray, math.MaxFloat64
	for _, k := range keys {
		sc, _ := colorful.Hex(swatches[k].Saturated)
		if d := c.DistanceCIEDE2000(sc); d < dist {
			best, dist = k, d
		}
	}
	return best, nil
}

func contrast(a, b colorful.Color) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
