package stage

import (
	"math"

	"github.com/rm-hull/render-postfx/internal/postfx"
)

type ColorGradeStage struct {
	Temperature float64 // [-100,100], warms red and cools blue
	Tint        float64 // [-100,100], shifts green
	Saturation  float64 // [0,2]
	Contrast    float64 // [0,2]
	Brightness  float64 // [-1,1]
	Gamma       float64 // (0.1,3]
}

// NewColorGradeStage returns a stage whose parameters leave every pixel unchanged.
func NewColorGradeStage() *ColorGradeStage {
	return &ColorGradeStage{
		Saturation: 1,
		Contrast:   1,
		Gamma:      1,
	}
}

func (s *ColorGradeStage) Name() string { return "colorGrading" }

func (s *ColorGradeStage) Validate() error {
	if math.IsNaN(s.Gamma) || s.Gamma <= 0.1 || s.Gamma > 3 {
		return postfx.ConfigError(s.Name(), "gamma", "%v outside (0.1,3]", s.Gamma)
	}
	checks := []struct {
		param  string
		v      float64
		lo, hi float64
	}{
		{"temperature", s.Temperature, -100, 100},
		{"tint", s.Tint, -100, 100},
		{"saturation", s.Saturation, 0, 2},
		{"contrast", s.Contrast, 0, 2},
		{"brightness", s.Brightness, -1, 1},
	}
	for _, c := range checks {
		if err := checkRange(s.Name(), c.param, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}
	return nil
}

// Process applies temperature, tint, brightness, contrast, saturation and gamma
// in that order, in normalized space, clamping only when converting back.
func (s *ColorGradeStage) Process(p *postfx.PixelBuffer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	temp := s.Temperature / 100
	tint := s.Tint / 100
	invGamma := 1 / s.Gamma

	return eachPixel(p, func(px []uint8) error {
		r := postfx.Normalize(px[0]) + temp
		g := postfx.Normalize(px[1]) + tint
		b := postfx.Normalize(px[2]) - temp

		r, g, b = r+s.Brightness, g+s.Brightness, b+s.Brightness

		r = (r-0.5)*s.Contrast + 0.5
		g = (g-0.5)*s.Contrast + 0.5
		b = (b-0.5)*s.Contrast + 0.5

		gray := 0.2989*r + 0.5870*g + 0.1140*b
		r = gray + (r-gray)*s.Saturation
		g = gray + (g-gray)*s.Saturation
		b = gray + (b-gray)*s.Saturation

		if invGamma != 1 {
			r = math.Pow(math.Max(0, r), invGamma)
			g = math.Pow(math.Max(0, g), invGamma)
			b = math.Pow(math.Max(0, b), invGamma)
		}

		if !finite(r, g, b) {
			return postfx.ProcessingError(s.Name(), "", "non-finite result (%v, %v, %v)", r, g, b)
		}
		px[0], px[1], px[2] = postfx.FromUnit(r), postfx.FromUnit(g), postfx.FromUnit(b)
		return nil
	})
}
