// Package style holds named color and drawing presets for the 2D and 3D
// renderers, loadable from JSON template files.
package style

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

// RGB is a color with components in [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Style is a named rendering preset.
type Style struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Background; ignored when Transparent is set.
	Background  RGB  `json:"background"`
	Transparent bool `json:"transparent"`

	// BondColor draws bonds and, in monochrome styles, atom labels too.
	BondColor RGB `json:"bond_color"`

	// UseElementColors switches heteroatom labels and 3D spheres to the
	// per-element palette instead of BondColor.
	UseElementColors bool           `json:"use_element_colors"`
	ElementColors    map[string]RGB `json:"element_colors,omitempty"`
}

// ElementColor resolves the color for an element symbol.
func (s *Style) ElementColor(element string) RGB {
	if !s.UseElementColors {
		return s.BondColor
	}
	if c, ok := s.ElementColors[element]; ok {
		return c
	}
	if c, ok := defaultElementColors[element]; ok {
		return c
	}
	return RGB{0.5, 0.5, 0.5}
}

// defaultElementColors is the CPK-ish palette used when a style enables
// element coloring without overriding specific entries.
var defaultElementColors = map[string]RGB{
	"C": {0.25, 0.25, 0.25},
	"H": {0.85, 0.85, 0.85},
	"N": {0.0, 0.0, 1.0},
	"O": {1.0, 0.0, 0.0},
	"S": {1.0, 1.0, 0.0},
	"P": {1.0, 0.647, 0.0},

	"F":  {0.596, 0.984, 0.596},
	"Cl": {0.0, 1.0, 0.0},
	"Br": {0.698, 0.133, 0.133},
	"I":  {0.627, 0.125, 0.941},

	"Li": {0.933, 0.510, 0.933},
	"Na": {0.439, 0.502, 0.565},
	"K":  {0.933, 0.510, 0.933},
	"Mg": {0.133, 0.545, 0.133},
	"Ca": {0.133, 0.545, 0.133},

	"Fe": {1.0, 0.549, 0.0},
	"Cu": {0.824, 0.412, 0.118},
	"Zn": {0.647, 0.165, 0.165},
	"Ni": {0.133, 0.545, 0.133},
	"Co": {0.980, 0.502, 0.447},
	"Mn": {0.933, 0.510, 0.933},
	"Cr": {0.502, 0.502, 0.502},
	"Pd": {0.133, 0.545, 0.133},
	"Pt": {0.502, 0.502, 0.502},
	"Au": {1.0, 0.843, 0.0},
	"Ag": {0.7, 0.7, 0.7},

	"B":  {0.980, 0.502, 0.447},
	"Si": {0.855, 0.647, 0.125},
	"Se": {1.0, 0.647, 0.0},
	"As": {0.933, 0.510, 0.933},

	"He": {0.0, 1.0, 1.0},
	"Ne": {0.0, 1.0, 1.0},
	"Ar": {0.0, 1.0, 1.0},
	"Kr": {0.0, 1.0, 1.0},
	"Xe": {0.0, 1.0, 1.0},
}

var presets = map[string]Style{
	"wikipedia-bw": {
		Name:        "wikipedia-bw",
		Description: "Black-and-white skeletal style on a transparent background",
		Transparent: true,
		BondColor:   RGB{0, 0, 0},
	},
	"cpk-standard": {
		Name:             "cpk-standard",
		Description:      "Element-colored depiction on a white background",
		Background:       RGB{1, 1, 1},
		BondColor:        RGB{0.25, 0.25, 0.25},
		UseElementColors: true,
	},
	"dark": {
		Name:             "dark",
		Description:      "Element colors over a dark background",
		Background:       RGB{0.10, 0.10, 0.10},
		BondColor:        RGB{0.85, 0.85, 0.85},
		UseElementColors: true,
	},
}

// DefaultStyleName is used when no style is requested.
const DefaultStyleName = "wikipedia-bw"

// Get returns a named preset.
func Get(name string) (Style, error) {
	if name == "" {
		name = DefaultStyleName
	}
	s, ok := presets[strings.ToLower(name)]
	if !ok {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle, "unknown style").
			WithDetail("style=" + name)
	}
	return s, nil
}

// Names lists the preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadFromFile reads a style template from a JSON file.  File styles may
// override any preset field; Name is required.
func LoadFromFile(path string) (Style, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Style{}, errors.Wrap(err, errors.ErrCodeInvalidStyle, "failed to read style template")
	}
	var s Style
	if err := json.Unmarshal(raw, &s); err != nil {
		return Style{}, errors.Wrap(err, errors.ErrCodeInvalidStyle, "malformed style template")
	}
	if s.Name == "" {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle, "style template missing name")
	}
	return s, nil
}

// Resolve returns a preset by name, or loads a template file when name looks
// like a path.
func Resolve(nameOrPath string) (Style, error) {
	if strings.ContainsAny(nameOrPath, "/\\") || strings.HasSuffix(nameOrPath, ".json") {
		return LoadFromFile(nameOrPath)
	}
	return Get(nameOrPath)
}
