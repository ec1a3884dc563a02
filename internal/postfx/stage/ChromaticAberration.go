package stage

import (
	"math"

	"github.com/rm-hull/render-postfx/internal/postfx"
)

// MaxAberrationShift is the horizontal channel shift in pixels at intensity 1.
const MaxAberrationShift = 5

type ChromaticAberrationStage struct {
	Intensity float64 // [0,1]
}

func (s *ChromaticAberrationStage) Name() string { return "chromaticAberration" }

func (s *ChromaticAberrationStage) Validate() error {
	return checkRange(s.Name(), "intensity", s.Intensity, 0, 1)
}

func (s *ChromaticAberrationStage) Offset() int {
	return int(math.Round(s.Intensity * MaxAberrationShift))
}

// Process samples red from x-offset and blue from x+offset, clamped to the row.
func (s *ChromaticAberrationStage) Process(p *postfx.PixelBuffer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	offset := s.Offset()
	if offset == 0 {
		return nil
	}

	w := p.Width()
	row := make([]uint8, w*4)
	for y := 0; y < p.Height(); y++ {
		start := p.Offset(0, y)
		copy(row, p.Img.Pix[start:start+w*4])
		for x := 0; x < w; x++ {
			red := min(max(x-offset, 0), w-1)
			blue := min(max(x+offset, 0), w-1)
			p.Img.Pix[start+x*4+0] = row[red*4+0]
			p.Img.Pix[start+x*4+2] = row[blue*4+2]
		}
	}
	return nil
}
