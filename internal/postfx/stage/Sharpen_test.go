package stage

import (
	"errors"
	"testing"

	"github.com/rm-hull/render-postfx/internal/postfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharpenStage(t *testing.T) {
	t.Run("zero amount is identity", func(t *testing.T) {
		k := SharpenKernel(0)
		assert.Equal(t, []float64{0, 0, 0, 0, 1, 0, 0, 0, 0}, k.Matrix)

		p := gradient(11, 7)
		want := p.Clone()
		require.NoError(t, (&SharpenStage{Amount: 0}).Process(p))
		assert.True(t, want.Equal(p))
	})

	t.Run("border is passed through", func(t *testing.T) {
		p := gradient(10, 6)
		want := p.Clone()
		require.NoError(t, (&SharpenStage{Amount: 2}).Process(p))
		for x := 0; x < 10; x++ {
			for _, y := range []int{0, 5} {
				i := p.Offset(x, y)
				assert.Equal(t, want.Img.Pix[i:i+4], p.Img.Pix[i:i+4])
			}
		}
		for y := 0; y < 6; y++ {
			for _, x := range []int{0, 9} {
				i := p.Offset(x, y)
				assert.Equal(t, want.Img.Pix[i:i+4], p.Img.Pix[i:i+4])
			}
		}
		assert.Equal(t, alphas(want), alphas(p))
	})

	t.Run("amplifies a local peak", func(t *testing.T) {
		p := uniform(5, 5, 100, 100, 100, 255)
		i := p.Offset(2, 2)
		p.Img.Pix[i] = 120
		require.NoError(t, (&SharpenStage{Amount: 1}).Process(p))
		assert.Equal(t, uint8(200), p.Img.Pix[i])
		assert.Equal(t, uint8(80), p.Img.Pix[p.Offset(1, 2)])
		assert.Equal(t, uint8(100), p.Img.Pix[p.Offset(1, 1)])
	})

	t.Run("flat interior stays flat", func(t *testing.T) {
		for _, amount := range []float64{0.1, 0.3, 1, 2.5} {
			p := uniform(8, 8, 128, 37, 255, 200)
			want := p.Clone()
			require.NoError(t, (&SharpenStage{Amount: amount}).Process(p))
			assert.True(t, want.Equal(p), "amount %v", amount)
		}
	})

	t.Run("rounds to nearest", func(t *testing.T) {
		// 2.2*150 - 0.3*(100+101+101+102) = 208.8
		p := uniform(3, 3, 0, 0, 0, 255)
		p.Img.Pix[p.Offset(1, 1)] = 150
		p.Img.Pix[p.Offset(1, 0)] = 100
		p.Img.Pix[p.Offset(0, 1)] = 101
		p.Img.Pix[p.Offset(2, 1)] = 101
		p.Img.Pix[p.Offset(1, 2)] = 102
		require.NoError(t, (&SharpenStage{Amount: 0.3}).Process(p))
		assert.Equal(t, uint8(209), p.Img.Pix[p.Offset(1, 1)])
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		assert.True(t, errors.Is((&SharpenStage{Amount: -1}).Validate(), postfx.ErrConfig))
	})
}
