package stage

import (
	"math"

	"github.com/rm-hull/render-postfx/internal/postfx"
)

// Validator is implemented by stages whose parameters can be checked before
// any pixel is touched.
type Validator interface {
	Validate() error
}

func checkRange(stage, param string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return postfx.ConfigError(stage, param, "%v outside [%v,%v]", v, lo, hi)
	}
	return nil
}

func checkFinite(stage, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return postfx.ConfigError(stage, param, "%v is not a finite number", v)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// eachPixel calls fn with the 4-byte RGBA slice of every pixel.
func eachPixel(p *postfx.PixelBuffer, fn func(px []uint8) error) error {
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			i := p.Offset(x, y)
			if err := fn(p.Img.Pix[i : i+4 : i+4]); err != nil {
				return err
			}
		}
	}
	return nil
}
