package stage

import (
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/rm-hull/render-postfx/internal/postfx"
	"gonum.org/v1/gonum/floats"
)

// MaxBlurRadius bounds the kernel at 2*MaxBlurRadius+1 taps.
const MaxBlurRadius = 256

// GaussianKernel builds a normalized 1-D kernel of 2*ceil(radius)+1 taps with
// sigma = radius/3. Callers must keep radius within (0, MaxBlurRadius].
func GaussianKernel(radius float64) *convolution.Kernel {
	half := int(math.Ceil(radius))
	size := 2*half + 1
	sigma := radius / 3
	twoSigmaSq := 2 * sigma * sigma

	k := convolution.NewKernel(size, 1)
	for i := range size {
		x := float64(i - half)
		k.Matrix[i] = math.Exp(-(x * x) / twoSigmaSq)
	}
	floats.Scale(1/floats.Sum(k.Matrix), k.Matrix)
	return k
}

func checkBlurRadius(stage string, radius float64) error {
	if math.IsNaN(radius) || radius <= 0 || radius > MaxBlurRadius {
		return postfx.ConfigError(stage, "radius", "%v outside (0,%d]", radius, MaxBlurRadius)
	}
	return nil
}

// GaussianBlur returns a blurred copy of p using a horizontal then a vertical
// pass with clamp-to-edge borders. Only RGB is convolved; alpha is copied from
// p. The intermediate pass stays in float64 so each channel is rounded once.
func GaussianBlur(p *postfx.PixelBuffer, radius float64) (*postfx.PixelBuffer, error) {
	if err := checkBlurRadius("gaussianBlur", radius); err != nil {
		return nil, err
	}

	k := GaussianKernel(radius)
	half := k.Width / 2
	w, h := p.Width(), p.Height()

	horizontal := make([]float64, w*h*3)
	for y := range h {
		for x := range w {
			var acc [3]float64
			for i, weight := range k.Matrix {
				j := p.Offset(min(max(x+i-half, 0), w-1), y)
				for c := range 3 {
					acc[c] += weight * float64(p.Img.Pix[j+c])
				}
			}
			copy(horizontal[(y*w+x)*3:], acc[:])
		}
	}

	out := p.Clone()
	for y := range h {
		for x := range w {
			var acc [3]float64
			for i, weight := range k.Matrix {
				j := (min(max(y+i-half, 0), h-1)*w + x) * 3
				for c := range 3 {
					acc[c] += weight * horizontal[j+c]
				}
			}
			o := out.Offset(x, y)
			for c := range 3 {
				out.Img.Pix[o+c] = postfx.ToByte(acc[c])
			}
		}
	}
	return out, nil
}
