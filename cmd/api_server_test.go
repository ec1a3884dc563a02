package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/render-postfx/internal/postfx"
	"github.com/rm-hull/render-postfx/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(defaults *settings.EffectSettings) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerRoutes(r, defaults)
	return r
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 40), uint8(y * 60), 90, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, url string, upload []byte, settingsJSON string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if upload != nil {
		part, err := w.CreateFormFile("image", "render.png")
		require.NoError(t, err)
		_, err = part.Write(upload)
		require.NoError(t, err)
	}
	if settingsJSON != "" {
		require.NoError(t, w.WriteField("settings", settingsJSON))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestProcessHandler(t *testing.T) {
	src := pngBytes(t)

	t.Run("defaults round trip", func(t *testing.T) {
		r := newTestRouter(&settings.EffectSettings{})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, multipartRequest(t, "/v1/postfx", src, ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

		want, _, err := postfx.Decode(bytes.NewReader(src))
		require.NoError(t, err)
		got, _, err := postfx.Decode(rec.Body)
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("request settings and jpeg output", func(t *testing.T) {
		r := newTestRouter(nil)
		rec := httptest.NewRecorder()
		fx := `{"vignette": {"enabled": true, "intensity": 0.5, "radius": 0.4, "softness": 0.5}}`
		r.ServeHTTP(rec, multipartRequest(t, "/v1/postfx?format=jpg", src, fx))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	})

	tests := []struct {
		name     string
		url      string
		image    []byte
		settings string
		status   int
	}{
		{"missing image", "/v1/postfx", nil, "", http.StatusBadRequest},
		{"corrupt image", "/v1/postfx", []byte("not an image"), "", http.StatusBadRequest},
		{"bad format", "/v1/postfx?format=gif", src, "", http.StatusBadRequest},
		{"malformed settings", "/v1/postfx", src, "{", http.StatusBadRequest},
		{"out of range parameter", "/v1/postfx", src, `{"sharpen": {"enabled": true, "amount": -2}}`, http.StatusBadRequest},
		{"lut file path rejected", "/v1/postfx", src, `{"lut": {"enabled": true, "intensity": 1, "path": "/etc/passwd"}}`, http.StatusBadRequest},
		{"lut preset accepted", "/v1/postfx", src, `{"lut": {"enabled": true, "intensity": 1, "preset": "warm"}}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, multipartRequest(t, tt.url, tt.image, tt.settings))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestPresetsHandler(t *testing.T) {
	r := newTestRouter(nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/postfx/presets", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Presets []string `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Presets, "identity")
	assert.Contains(t, body.Presets, "teal-orange")
}

func TestPoolSize(t *testing.T) {
	t.Setenv("POSTFX_WORKERS", "")
	assert.Equal(t, 1, poolSize(0))
	assert.Equal(t, 3, poolSize(3))

	t.Setenv("POSTFX_WORKERS", "4")
	assert.Equal(t, 4, poolSize(0))
	assert.Equal(t, 2, poolSize(2))

	t.Setenv("POSTFX_WORKERS", "lots")
	assert.Equal(t, 1, poolSize(0))
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("POSTFX_SETTINGS", "")
	fx, err := loadSettings("")
	require.NoError(t, err)
	stages, err := fx.Stages()
	require.NoError(t, err)
	assert.Empty(t, stages)

	_, err = loadSettings("/does/not/exist.yaml")
	assert.Error(t, err)
}
