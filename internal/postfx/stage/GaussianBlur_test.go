package stage

import (
	"errors"
	"math"
	"testing"

	"github.com/rm-hull/render-postfx/internal/postfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianKernel(t *testing.T) {
	for _, radius := range []float64{0.3, 1, 2, 2.5, 7, 20, 64} {
		k := GaussianKernel(radius)

		wantSize := 2*int(math.Ceil(radius)) + 1
		assert.Equal(t, wantSize, k.Width, "radius %v", radius)
		assert.Equal(t, 1, k.Height)

		sum := 0.0
		for _, w := range k.Matrix {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "radius %v", radius)

		center := wantSize / 2
		for i := 0; i < center; i++ {
			assert.InDelta(t, k.Matrix[i], k.Matrix[wantSize-1-i], 1e-12)
			assert.LessOrEqual(t, k.Matrix[i], k.Matrix[i+1])
		}
	}
}

func TestGaussianBlur(t *testing.T) {
	t.Run("uniform image stays uniform", func(t *testing.T) {
		for _, radius := range []float64{0.5, 3, 12, MaxBlurRadius} {
			for _, v := range [][3]uint8{{128, 64, 200}, {254, 37, 1}, {255, 0, 255}} {
				p := uniform(20, 20, v[0], v[1], v[2], 99)
				out, err := GaussianBlur(p, radius)
				require.NoError(t, err)
				assert.True(t, p.Equal(out), "radius %v colour %v", radius, v)
			}
		}
	})

	t.Run("rounds instead of truncating", func(t *testing.T) {
		// a two-level step: the blurred edge must round to nearest
		p := postfx.NewPixelBuffer(3, 1)
		for x, v := range []uint8{0, 0, 255} {
			i := p.Offset(x, 0)
			p.Img.Pix[i], p.Img.Pix[i+3] = v, 255
		}
		k := GaussianKernel(1)
		out, err := GaussianBlur(p, 1)
		require.NoError(t, err)

		want := postfx.ToByte(255 * k.Matrix[2])
		assert.Equal(t, want, out.Img.Pix[out.Offset(1, 0)])
	})

	t.Run("input is not modified", func(t *testing.T) {
		p := gradient(10, 10)
		before := p.Clone()
		out, err := GaussianBlur(p, 2)
		require.NoError(t, err)
		assert.True(t, before.Equal(p))
		assert.False(t, out.Equal(p))
		assert.Equal(t, alphas(p), alphas(out))
	})

	t.Run("spreads a single bright pixel", func(t *testing.T) {
		p := uniform(9, 9, 0, 0, 0, 255)
		i := p.Offset(4, 4)
		p.Img.Pix[i], p.Img.Pix[i+1], p.Img.Pix[i+2] = 255, 255, 255
		out, err := GaussianBlur(p, 2)
		require.NoError(t, err)
		assert.Less(t, out.Img.Pix[i], uint8(255))
		assert.Greater(t, out.Img.Pix[out.Offset(5, 4)], uint8(0))
		assert.Equal(t, uint8(0), out.Img.Pix[out.Offset(0, 0)])
	})

	t.Run("rejects radius outside range", func(t *testing.T) {
		for _, radius := range []float64{0, -3, math.NaN(), MaxBlurRadius + 1, 1e19, math.Inf(1)} {
			_, err := GaussianBlur(gradient(2, 2), radius)
			assert.True(t, errors.Is(err, postfx.ErrConfig), "radius %v", radius)

			var pe *postfx.Error
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "radius", pe.Param)
		}
	})
}

func TestBloomStage(t *testing.T) {
	t.Run("no-op when nothing exceeds threshold", func(t *testing.T) {
		p := gradient(16, 16)
		want := p.Clone()
		s := &BloomStage{Threshold: 1.1, Intensity: 2, Radius: 4}
		require.NoError(t, s.Process(p))
		assert.True(t, want.Equal(p))
	})

	t.Run("bright regions glow into their surroundings", func(t *testing.T) {
		p := uniform(15, 15, 10, 10, 10, 255)
		for y := 6; y <= 8; y++ {
			for x := 6; x <= 8; x++ {
				i := p.Offset(x, y)
				p.Img.Pix[i], p.Img.Pix[i+1], p.Img.Pix[i+2] = 250, 250, 250
			}
		}
		s := &BloomStage{Threshold: 0.8, Intensity: 1, Radius: 3}
		require.NoError(t, s.Process(p))

		near := p.Img.Pix[p.Offset(9, 7)]
		far := p.Img.Pix[p.Offset(0, 0)]
		assert.Greater(t, near, uint8(10))
		assert.Equal(t, uint8(10), far)
		assert.Equal(t, uint8(255), p.Img.Pix[p.Offset(7, 7)+3])
	})

	t.Run("validation", func(t *testing.T) {
		for _, s := range []*BloomStage{
			{Threshold: 0.5, Intensity: 1, Radius: 0},
			{Threshold: 0.5, Intensity: -1, Radius: 2},
			{Threshold: math.NaN(), Intensity: 1, Radius: 2},
			{Threshold: 0.5, Intensity: 1, Radius: MaxBlurRadius + 1},
			{Threshold: 0.5, Intensity: 1, Radius: 1e19},
		} {
			assert.True(t, errors.Is(s.Validate(), postfx.ErrConfig), "%+v", s)
		}

		err := (&BloomStage{Threshold: 0.5, Intensity: 1, Radius: 1e6}).Process(gradient(4, 4))
		var pe *postfx.Error
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "bloom", pe.Stage)
		assert.Equal(t, "radius", pe.Param)
	})
}
