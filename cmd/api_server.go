package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/render-postfx/internal"
	"github.com/rm-hull/render-postfx/internal/lut"
	"github.com/rm-hull/render-postfx/internal/postfx"
	"github.com/rm-hull/render-postfx/internal/settings"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

const maxUploadBytes = 64 << 20

func ApiServer(settingsFile string, port int, debug bool) {
	internal.ShowVersion()
	internal.UserInfo()
	internal.EnvironmentVars()

	defaults, err := loadSettings(settingsFile)
	if err != nil {
		log.Fatalf("failed to load default settings: %v", err)
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err = healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{})
	if err != nil {
		log.Fatalf("failed to initialize healthcheck: %v", err)
	}

	registerRoutes(r, defaults)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", port, err)
	}
}

func registerRoutes(r *gin.Engine, defaults *settings.EffectSettings) {
	r.MaxMultipartMemory = maxUploadBytes

	v1 := r.Group("/v1/postfx")
	v1.POST("", processHandler(defaults))
	v1.GET("/presets", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"presets": lut.Presets()})
	})
}

// processHandler post-processes a multipart "image" upload. A "settings" form
// field, when present, replaces the server defaults for this request only.
func processHandler(defaults *settings.EffectSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		format, err := postfx.ParseFormat(c.DefaultQuery("format", "png"))
		if err != nil {
			abortWithError(c, postfx.ConfigError("output", "format", "%v", err))
			return
		}

		fx, err := requestSettings(c, defaults)
		if err != nil {
			abortWithError(c, err)
			return
		}

		data, err := readUpload(c)
		if err != nil {
			abortWithError(c, err)
			return
		}

		out, err := internal.ProcessBytes(c.Request.Context(), data, format, fx)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Data(http.StatusOK, postfx.ContentType(format), out)
	}
}

func requestSettings(c *gin.Context, defaults *settings.EffectSettings) (*settings.EffectSettings, error) {
	raw, ok := c.GetPostForm("settings")
	if !ok || raw == "" {
		return defaults, nil
	}

	fx, err := settings.Parse([]byte(raw), "json")
	if err != nil {
		return nil, &postfx.Error{Kind: postfx.ErrConfig, Err: err}
	}
	// only presets can be referenced over HTTP, never server-side files
	if fx.LUT != nil && fx.LUT.Path != "" {
		return nil, postfx.ConfigError("lut", "path", "not accepted over HTTP, use a preset")
	}
	return fx, nil
}

func readUpload(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, postfx.InputError(fmt.Errorf("missing image upload: %w", err))
	}
	if header.Size > maxUploadBytes {
		return nil, postfx.InputError(fmt.Errorf("image upload of %d bytes exceeds limit", header.Size))
	}

	f, err := header.Open()
	if err != nil {
		return nil, postfx.InputError(fmt.Errorf("failed to open upload: %w", err))
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, postfx.InputError(fmt.Errorf("failed to read upload: %w", err))
	}
	return data, nil
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, postfx.ErrInput) || errors.Is(err, postfx.ErrConfig) {
		status = http.StatusBadRequest
	} else {
		log.Printf("Request failed: %v", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
