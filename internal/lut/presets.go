package lut

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const PresetSize = 33

var (
	orange = colorful.Color{R: 1.0, G: 0.62, B: 0.28}
	teal   = colorful.Color{R: 0.0, G: 0.42, B: 0.48}
)

var presets = map[string]func(c colorful.Color) colorful.Color{
	"identity": func(c colorful.Color) colorful.Color {
		return c
	},
	"warm": func(c colorful.Color) colorful.Color {
		return colorful.Color{R: c.R * 1.08, G: c.G * 1.01, B: c.B * 0.86}.Clamped()
	},
	"cool": func(c colorful.Color) colorful.Color {
		return colorful.Color{R: c.R * 0.88, G: c.G * 1.0, B: c.B * 1.10}.Clamped()
	},
	"mono": func(c colorful.Color) colorful.Color {
		l, _, _ := c.Lab()
		return colorful.Lab(l, 0, 0).Clamped()
	},
	// Shadows are pushed toward teal and highlights toward orange.
	"teal-orange": func(c colorful.Color) colorful.Color {
		l, _, _ := c.Lab()
		if l > 0.5 {
			return c.BlendRgb(orange, (l-0.5)*0.5).Clamped()
		}
		return c.BlendRgb(teal, (0.5-l)*0.5).Clamped()
	},
	"fade": func(c colorful.Color) colorful.Color {
		h, s, v := c.Hsv()
		return colorful.Hsv(h, s*0.8, 0.08+v*0.87).Clamped()
	},
}

// Presets lists the names of the built-in lookup tables.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Preset(name string) (*Cube, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("no LUT preset named %q, wanted one of %v", name, Presets())
	}
	c, err := New(PresetSize, f)
	if err != nil {
		return nil, err
	}
	c.Title = name
	return c, nil
}
