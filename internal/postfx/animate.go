package postfx

import (
	"bytes"
	"errors"

	"github.com/kettek/apng"
)

// Compare builds a looping animated PNG that alternates between the given
// frames, typically the source render and its post-processed result.
func Compare(frames []*PixelBuffer, frameDelay float64) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to animate")
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	for i, p := range frames {
		if p.Bounds != frames[0].Bounds {
			return nil, errors.New("all frames must have the same dimensions")
		}
		a.Frames[i] = apng.Frame{
			Image:            p.Img,
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
