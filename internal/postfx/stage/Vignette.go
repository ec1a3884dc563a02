package stage

import (
	"math"

	"github.com/rm-hull/render-postfx/internal/postfx"
)

type VignetteStage struct {
	Intensity float64 // [0,1]
	Radius    float64 // [0,1] normalized distance where darkening begins
	Softness  float64 // > 0
}

func (s *VignetteStage) Name() string { return "vignette" }

func (s *VignetteStage) Validate() error {
	if err := checkRange(s.Name(), "intensity", s.Intensity, 0, 1); err != nil {
		return err
	}
	if err := checkRange(s.Name(), "radius", s.Radius, 0, 1); err != nil {
		return err
	}
	if math.IsNaN(s.Softness) || s.Softness <= 0 {
		return postfx.ConfigError(s.Name(), "softness", "must be positive, got %v", s.Softness)
	}
	return nil
}

// Factor is the RGB multiplier at normalized distance distNorm from the centre.
func (s *VignetteStage) Factor(distNorm float64) float64 {
	v := 1.0
	if s.Radius < 1 {
		v = 1 - (distNorm-s.Radius)/(1-s.Radius)
		v = math.Min(1, math.Max(0, v))
	}
	v = math.Pow(v, 1/s.Softness)
	return 1 - (1-v)*s.Intensity
}

func (s *VignetteStage) Process(p *postfx.PixelBuffer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	cx := float64(p.Width()) / 2
	cy := float64(p.Height()) / 2
	maxDist := math.Hypot(cx, cy)
	if maxDist == 0 {
		return nil
	}

	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			dist := math.Hypot(float64(x)-cx, float64(y)-cy)
			factor := s.Factor(dist / maxDist)
			i := p.Offset(x, y)
			for c := range 3 {
				p.Img.Pix[i+c] = postfx.ToByte(float64(p.Img.Pix[i+c]) * factor)
			}
		}
	}
	return nil
}
