package stage

import (
	"math/rand/v2"

	"github.com/rm-hull/render-postfx/internal/postfx"
)

// MaxGrain is the largest noise amplitude, in 8-bit levels, at intensity 1.
const MaxGrain = 50

// RandomSource yields uniform values in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

type FilmGrainStage struct {
	Intensity float64 // [0,1]
	Rand      RandomSource
}

// NewSeededRand returns a deterministic source for reproducible grain.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *FilmGrainStage) Name() string { return "filmGrain" }

func (s *FilmGrainStage) Validate() error {
	return checkRange(s.Name(), "intensity", s.Intensity, 0, 1)
}

// Process adds the same noise value to R, G and B of each pixel.
func (s *FilmGrainStage) Process(p *postfx.PixelBuffer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	src := s.Rand
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	amplitude := 2 * s.Intensity * MaxGrain
	return eachPixel(p, func(px []uint8) error {
		noise := (src.Float64() - 0.5) * amplitude
		for c := range 3 {
			px[c] = postfx.ToByte(float64(px[c]) + noise)
		}
		return nil
	})
}
