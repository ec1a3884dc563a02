package stage

import (
	"github.com/rm-hull/render-postfx/internal/lut"
	"github.com/rm-hull/render-postfx/internal/postfx"
)

type LUTStage struct {
	Cube      *lut.Cube
	Intensity float64
}

func (s *LUTStage) Name() string { return "lut" }

func (s *LUTStage) Validate() error {
	if s.Cube == nil {
		return postfx.ConfigError(s.Name(), "path", "no lookup table supplied")
	}
	if err := s.Cube.Validate(); err != nil {
		return postfx.ConfigError(s.Name(), "path", "%v", err)
	}
	return checkRange(s.Name(), "intensity", s.Intensity, 0, 1)
}

// Process blends each pixel with its trilinear LUT sample by Intensity.
func (s *LUTStage) Process(p *postfx.PixelBuffer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Intensity == 0 {
		return nil
	}

	keep := 1 - s.Intensity
	return eachPixel(p, func(px []uint8) error {
		r, g, b := postfx.Normalize(px[0]), postfx.Normalize(px[1]), postfx.Normalize(px[2])
		lr, lg, lb := s.Cube.Sample(r, g, b)
		px[0] = postfx.FromUnit(r*keep + lr*s.Intensity)
		px[1] = postfx.FromUnit(g*keep + lg*s.Intensity)
		px[2] = postfx.FromUnit(b*keep + lb*s.Intensity)
		return nil
	})
}
