package stage

import (
	"math"

	"github.com/rm-hull/render-postfx/internal/postfx"
)

type BloomStage struct {
	Threshold float64 // [0,1] mean luminance a pixel must exceed to glow
	Intensity float64
	Radius    float64 // blur radius in pixels
}

func (s *BloomStage) Name() string { return "bloom" }

func (s *BloomStage) Validate() error {
	if err := checkFinite(s.Name(), "threshold", s.Threshold); err != nil {
		return err
	}
	if math.IsNaN(s.Intensity) || s.Intensity < 0 {
		return postfx.ConfigError(s.Name(), "intensity", "must not be negative, got %v", s.Intensity)
	}
	return checkBlurRadius(s.Name(), s.Radius)
}

// Process extracts the over-threshold pixels, blurs them and adds the glow
// back on top of the original.
func (s *BloomStage) Process(p *postfx.PixelBuffer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	bright := s.extract(p)
	blurred, err := GaussianBlur(bright, s.Radius)
	if err != nil {
		return err
	}

	for i := 0; i < len(p.Img.Pix); i += 4 {
		for c := range 3 {
			glow := float64(blurred.Img.Pix[i+c]) * s.Intensity
			p.Img.Pix[i+c] = postfx.ToByte(math.Min(255, float64(p.Img.Pix[i+c])+glow))
		}
	}
	return nil
}

func (s *BloomStage) extract(p *postfx.PixelBuffer) *postfx.PixelBuffer {
	bright := postfx.NewPixelBuffer(p.Width(), p.Height())
	for i := 0; i < len(p.Img.Pix); i += 4 {
		px := p.Img.Pix[i : i+4]
		lum := (float64(px[0]) + float64(px[1]) + float64(px[2])) / 3 / 255
		if lum > s.Threshold {
			copy(bright.Img.Pix[i:i+4], px)
		}
	}
	return bright
}
