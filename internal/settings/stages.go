package settings

import (
	"github.com/rm-hull/render-postfx/internal/lut"
	"github.com/rm-hull/render-postfx/internal/postfx"
	"github.com/rm-hull/render-postfx/internal/postfx/stage"
)

const (
	DefaultTonemapMode = stage.ACES
	DefaultWhitePoint  = 1.0
)

// Stages builds the enabled stages in their fixed order: tonemapping, colour
// grading, LUT, bloom, vignette, chromatic aberration, film grain, sharpen.
// Every stage is validated, and any LUT is loaded, before this returns.
func (s *EffectSettings) Stages() ([]postfx.Stage, error) {
	var stages []postfx.Stage
	if s == nil {
		return stages, nil
	}

	if t := s.Tonemapping; t != nil && t.Enabled {
		ts := &stage.TonemapStage{
			Mode:       stage.TonemapMode(t.Mode),
			Exposure:   t.Exposure,
			WhitePoint: DefaultWhitePoint,
		}
		if ts.Mode == "" {
			ts.Mode = DefaultTonemapMode
		}
		if t.WhitePoint != nil {
			ts.WhitePoint = *t.WhitePoint
		}
		stages = append(stages, ts)
	}

	if c := s.ColorGrading; c != nil && c.Enabled {
		cs := stage.NewColorGradeStage()
		cs.Temperature = c.Temperature
		cs.Tint = c.Tint
		cs.Brightness = c.Brightness
		if c.Saturation != nil {
			cs.Saturation = *c.Saturation
		}
		if c.Contrast != nil {
			cs.Contrast = *c.Contrast
		}
		if c.Gamma != nil {
			cs.Gamma = *c.Gamma
		}
		stages = append(stages, cs)
	}

	if l := s.LUT; l != nil && l.Enabled {
		cube, err := loadCube(l)
		if err != nil {
			return nil, err
		}
		stages = append(stages, &stage.LUTStage{Cube: cube, Intensity: l.Intensity})
	}

	if b := s.Bloom; b != nil && b.Enabled {
		stages = append(stages, &stage.BloomStage{Threshold: b.Threshold, Intensity: b.Intensity, Radius: b.Radius})
	}

	if v := s.Vignette; v != nil && v.Enabled {
		stages = append(stages, &stage.VignetteStage{Intensity: v.Intensity, Radius: v.Radius, Softness: v.Softness})
	}

	if ca := s.ChromaticAberration; ca != nil && ca.Enabled {
		stages = append(stages, &stage.ChromaticAberrationStage{Intensity: ca.Intensity})
	}

	if g := s.FilmGrain; g != nil && g.Enabled {
		gs := &stage.FilmGrainStage{Intensity: g.Intensity}
		if g.Seed != nil {
			gs.Rand = stage.NewSeededRand(*g.Seed)
		}
		stages = append(stages, gs)
	}

	if sh := s.Sharpen; sh != nil && sh.Enabled {
		stages = append(stages, &stage.SharpenStage{Amount: sh.Amount})
	}

	for _, st := range stages {
		if v, ok := st.(stage.Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, err
			}
		}
	}

	if s.Output.Quality < 0 || s.Output.Quality > 100 {
		return nil, postfx.ConfigError("output", "quality", "%d outside [0,100]", s.Output.Quality)
	}
	if s.Output.MaxWidth < 0 {
		return nil, postfx.ConfigError("output", "maxWidth", "must not be negative, got %d", s.Output.MaxWidth)
	}

	return stages, nil
}

// Validate reports the first invalid parameter, if any.
func (s *EffectSettings) Validate() error {
	_, err := s.Stages()
	return err
}

func loadCube(l *LUTSettings) (*lut.Cube, error) {
	switch {
	case l.Path != "":
		cube, err := lut.Load(l.Path)
		if err != nil {
			return nil, postfx.ConfigError("lut", "path", "%v", err)
		}
		return cube, nil
	case l.Preset != "":
		cube, err := lut.Preset(l.Preset)
		if err != nil {
			return nil, postfx.ConfigError("lut", "preset", "%v", err)
		}
		return cube, nil
	}
	return nil, postfx.ConfigError("lut", "path", "either a path or a preset is required")
}
