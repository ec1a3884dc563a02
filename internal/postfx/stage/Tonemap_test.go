package stage

import (
	"errors"
	"math"
	"testing"

	"github.com/rm-hull/render-postfx/internal/postfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTonemapStage_Reinhard(t *testing.T) {
	p := uniform(4, 4, 128, 128, 128, 255)
	s := &TonemapStage{Mode: Reinhard, Exposure: 0, WhitePoint: 1}
	require.NoError(t, s.Process(p))

	c := 128.0 / 255
	l := 0.2126*c + 0.7152*c + 0.0722*c
	want := postfx.FromUnit(c * (l / (1 + l)) / l)

	for i := 0; i < len(p.Img.Pix); i += 4 {
		assert.InDelta(t, int(want), int(p.Img.Pix[i+0]), 1)
		assert.InDelta(t, int(want), int(p.Img.Pix[i+1]), 1)
		assert.InDelta(t, int(want), int(p.Img.Pix[i+2]), 1)
		assert.Equal(t, uint8(255), p.Img.Pix[i+3])
	}
}

func TestTonemapStage_ReinhardBlack(t *testing.T) {
	p := uniform(2, 2, 0, 0, 0, 200)
	require.NoError(t, (&TonemapStage{Mode: Reinhard, WhitePoint: 1}).Process(p))
	assert.True(t, p.Equal(uniform(2, 2, 0, 0, 0, 200)))
}

func TestTonemapStage_Curves(t *testing.T) {
	t.Run("aces stays in range", func(t *testing.T) {
		for _, x := range []float64{0, 0.01, 0.5, 1, 4, 100} {
			y := aces(x)
			assert.GreaterOrEqual(t, y, 0.0)
			assert.LessOrEqual(t, y, 1.0)
		}
	})

	t.Run("filmic never negative", func(t *testing.T) {
		assert.Equal(t, 0.0, filmic(0))
		assert.Greater(t, filmic(1), filmic(0.5))
	})

	t.Run("uncharted2 maps white point to one", func(t *testing.T) {
		w := 11.2
		assert.InDelta(t, 1.0, uncharted2(w)/uncharted2(w), 1e-12)
		assert.InDelta(t, 0.0, uncharted2(0), 1e-12)
	})

	t.Run("exposure brightens", func(t *testing.T) {
		dark := uniform(1, 1, 60, 60, 60, 255)
		bright := dark.Clone()
		require.NoError(t, (&TonemapStage{Mode: ACES, Exposure: 0, WhitePoint: 1}).Process(dark))
		require.NoError(t, (&TonemapStage{Mode: ACES, Exposure: 2, WhitePoint: 1}).Process(bright))
		assert.Greater(t, bright.Img.Pix[0], dark.Img.Pix[0])
	})

	t.Run("every mode clamps and keeps alpha", func(t *testing.T) {
		for _, mode := range TonemapModes {
			p := gradient(16, 9)
			before := alphas(p)
			s := &TonemapStage{Mode: mode, Exposure: 6, WhitePoint: 0.5}
			require.NoError(t, s.Process(p), mode)
			assert.Equal(t, before, alphas(p), mode)
		}
	})
}

func TestTonemapStage_Validate(t *testing.T) {
	tests := []struct {
		name  string
		stage TonemapStage
		param string
	}{
		{"zero white point", TonemapStage{Mode: Filmic, WhitePoint: 0}, "whitePoint"},
		{"negative white point", TonemapStage{Mode: Uncharted2, WhitePoint: -1}, "whitePoint"},
		{"unknown mode", TonemapStage{Mode: "hable", WhitePoint: 1}, "mode"},
		{"infinite exposure", TonemapStage{Mode: ACES, Exposure: math.Inf(1), WhitePoint: 1}, "exposure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stage.Process(uniform(1, 1, 1, 2, 3, 4))
			require.Error(t, err)
			assert.True(t, errors.Is(err, postfx.ErrConfig))

			var pe *postfx.Error
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "tonemapping", pe.Stage)
			assert.Equal(t, tt.param, pe.Param)
		})
	}
}
