package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

/* Example settings file ...

tonemapping:
  enabled: true
  mode: aces
  exposure: 0.5
colorGrading:
  enabled: true
  temperature: 10
  contrast: 1.1
lut:
  enabled: true
  preset: teal-orange
  intensity: 0.4
bloom:
  enabled: true
  threshold: 0.8
  intensity: 0.6
  radius: 12
vignette:
  enabled: true
  intensity: 0.5
  radius: 0.6
  softness: 1.5
output:
  quality: 90
  maxWidth: 2048

*/

// EffectSettings has one optional section per stage. Absent or disabled
// sections leave the image unchanged. It is never mutated by the pipeline.
type EffectSettings struct {
	Tonemapping         *TonemappingSettings         `yaml:"tonemapping" json:"tonemapping,omitempty"`
	ColorGrading        *ColorGradingSettings        `yaml:"colorGrading" json:"colorGrading,omitempty"`
	LUT                 *LUTSettings                 `yaml:"lut" json:"lut,omitempty"`
	Bloom               *BloomSettings               `yaml:"bloom" json:"bloom,omitempty"`
	Vignette            *VignetteSettings            `yaml:"vignette" json:"vignette,omitempty"`
	ChromaticAberration *ChromaticAberrationSettings `yaml:"chromaticAberration" json:"chromaticAberration,omitempty"`
	FilmGrain           *FilmGrainSettings           `yaml:"filmGrain" json:"filmGrain,omitempty"`
	Sharpen             *SharpenSettings             `yaml:"sharpen" json:"sharpen,omitempty"`

	Output OutputSettings `yaml:"output" json:"output"`
}

type TonemappingSettings struct {
	Enabled    bool     `yaml:"enabled" json:"enabled"`
	Mode       string   `yaml:"mode" json:"mode"`
	Exposure   float64  `yaml:"exposure" json:"exposure"`
	WhitePoint *float64 `yaml:"whitePoint" json:"whitePoint,omitempty"`
}

type ColorGradingSettings struct {
	Enabled     bool     `yaml:"enabled" json:"enabled"`
	Temperature float64  `yaml:"temperature" json:"temperature"`
	Tint        float64  `yaml:"tint" json:"tint"`
	Brightness  float64  `yaml:"brightness" json:"brightness"`
	Saturation  *float64 `yaml:"saturation" json:"saturation,omitempty"`
	Contrast    *float64 `yaml:"contrast" json:"contrast,omitempty"`
	Gamma       *float64 `yaml:"gamma" json:"gamma,omitempty"`
}

// LUTSettings references a lookup table either by .cube file path or by
// built-in preset name.
type LUTSettings struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Intensity float64 `yaml:"intensity" json:"intensity"`
	Path      string  `yaml:"path" json:"path,omitempty"`
	Preset    string  `yaml:"preset" json:"preset,omitempty"`
}

type BloomSettings struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Intensity float64 `yaml:"intensity" json:"intensity"`
	Radius    float64 `yaml:"radius" json:"radius"`
}

type VignetteSettings struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Intensity float64 `yaml:"intensity" json:"intensity"`
	Radius    float64 `yaml:"radius" json:"radius"`
	Softness  float64 `yaml:"softness" json:"softness"`
}

type ChromaticAberrationSettings struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Intensity float64 `yaml:"intensity" json:"intensity"`
}

type FilmGrainSettings struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Intensity float64 `yaml:"intensity" json:"intensity"`
	Seed      *uint64 `yaml:"seed" json:"seed,omitempty"`
}

type SharpenSettings struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Amount  float64 `yaml:"amount" json:"amount"`
}

type OutputSettings struct {
	Quality  int `yaml:"quality" json:"quality,omitempty"`
	MaxWidth int `yaml:"maxWidth" json:"maxWidth,omitempty"`
}

// Parse decodes settings in the given format ("yaml" or "json").
func Parse(data []byte, format string) (*EffectSettings, error) {
	var s EffectSettings
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		if err := yaml.UnmarshalStrict(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML settings: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported settings format %q", format)
	}
	return &s, nil
}

// Load reads a settings file, choosing the format from its extension.
func Load(filename string) (*EffectSettings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", filename, err)
	}
	return Parse(data, strings.TrimPrefix(filepath.Ext(filename), "."))
}
