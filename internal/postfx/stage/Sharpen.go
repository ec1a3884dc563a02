package stage

import (
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/rm-hull/render-postfx/internal/postfx"
)

type SharpenStage struct {
	Amount float64
}

func (s *SharpenStage) Name() string { return "sharpen" }

func (s *SharpenStage) Validate() error {
	if math.IsNaN(s.Amount) || math.IsInf(s.Amount, 0) || s.Amount < 0 {
		return postfx.ConfigError(s.Name(), "amount", "must be a non-negative number, got %v", s.Amount)
	}
	return nil
}

// SharpenKernel is the 3x3 cross kernel: 1+4a in the centre, -a on the edges.
func SharpenKernel(amount float64) *convolution.Kernel {
	k := convolution.NewKernel(3, 3)
	k.Matrix = []float64{
		0, -amount, 0,
		-amount, 1 + 4*amount, -amount,
		0, -amount, 0,
	}
	return k
}

// Process convolves the interior; the outermost pixel ring is left as it was.
func (s *SharpenStage) Process(p *postfx.PixelBuffer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if p.Width() < 3 || p.Height() < 3 {
		return nil
	}

	k := SharpenKernel(s.Amount)
	src := p.Clone()
	for y := 1; y < p.Height()-1; y++ {
		for x := 1; x < p.Width()-1; x++ {
			var acc [3]float64
			for ky := range k.Height {
				for kx := range k.Width {
					weight := k.Matrix[ky*k.Width+kx]
					if weight == 0 {
						continue
					}
					j := src.Offset(x+kx-1, y+ky-1)
					for c := range 3 {
						acc[c] += weight * float64(src.Img.Pix[j+c])
					}
				}
			}
			i := p.Offset(x, y)
			for c := range 3 {
				p.Img.Pix[i+c] = postfx.ToByte(acc[c])
			}
		}
	}
	return nil
}
