package stage

import (
	"math"

	"github.com/rm-hull/render-postfx/internal/postfx"
)

type TonemapMode string

const (
	Filmic     TonemapMode = "filmic"
	ACES       TonemapMode = "aces"
	Reinhard   TonemapMode = "reinhard"
	Uncharted2 TonemapMode = "uncharted2"
)

var TonemapModes = []TonemapMode{Filmic, ACES, Reinhard, Uncharted2}

type TonemapStage struct {
	Mode       TonemapMode
	Exposure   float64 // stops
	WhitePoint float64
}

func (s *TonemapStage) Name() string { return "tonemapping" }

func (s *TonemapStage) Validate() error {
	if _, err := s.curve(); err != nil {
		return err
	}
	if err := checkFinite(s.Name(), "exposure", s.Exposure); err != nil {
		return err
	}
	if math.IsNaN(s.WhitePoint) || s.WhitePoint <= 0 {
		return postfx.ConfigError(s.Name(), "whitePoint", "must be positive, got %v", s.WhitePoint)
	}
	return nil
}

// Process multiplies every channel by 2^Exposure and maps it through the
// selected curve. Reinhard scales all three channels by one luminance ratio.
func (s *TonemapStage) Process(p *postfx.PixelBuffer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	curve, _ := s.curve()
	exposure := math.Exp2(s.Exposure)
	return eachPixel(p, func(px []uint8) error {
		r := postfx.Normalize(px[0]) * exposure
		g := postfx.Normalize(px[1]) * exposure
		b := postfx.Normalize(px[2]) * exposure

		if s.Mode == Reinhard {
			r, g, b = reinhard(r, g, b)
		} else {
			r, g, b = curve(r), curve(g), curve(b)
		}

		if !finite(r, g, b) {
			return postfx.ProcessingError(s.Name(), string(s.Mode), "non-finite result (%v, %v, %v)", r, g, b)
		}
		px[0], px[1], px[2] = postfx.FromUnit(r), postfx.FromUnit(g), postfx.FromUnit(b)
		return nil
	})
}

func (s *TonemapStage) curve() (func(float64) float64, error) {
	switch s.Mode {
	case Filmic:
		w := s.WhitePoint
		return func(c float64) float64 { return filmic(c / w) }, nil
	case ACES:
		return aces, nil
	case Reinhard:
		return nil, nil
	case Uncharted2:
		white := uncharted2(s.WhitePoint)
		return func(c float64) float64 { return uncharted2(c) / white }, nil
	}
	return nil, postfx.ConfigError(s.Name(), "mode", "unknown mode %q, wanted one of %v", s.Mode, TonemapModes)
}

func reinhard(r, g, b float64) (float64, float64, float64) {
	l := 0.2126*r + 0.7152*g + 0.0722*b
	if l == 0 {
		return 0, 0, 0
	}
	ratio := (l / (1 + l)) / l
	return r * ratio, g * ratio, b * ratio
}

func filmic(x float64) float64 {
	y := (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
	return math.Max(0, y)
}

// aces is the RRT+ODT curve fit.
func aces(x float64) float64 {
	y := (x*(x+0.0245786) - 0.000090537) / (x*(0.983729*x+0.432951) + 0.238081)
	return math.Min(1, math.Max(0, y))
}

func uncharted2(x float64) float64 {
	const (
		A = 0.15
		B = 0.50
		C = 0.10
		D = 0.20
		E = 0.02
		F = 0.30
	)
	return ((x*(A*x+C*B) + D*E) / (x*(A*x+B) + D*F)) - E/F
}
