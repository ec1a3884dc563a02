package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/rm-hull/render-postfx/internal/settings"
)

// loadSettings reads the settings file, falling back to POSTFX_SETTINGS. With
// neither set every stage is disabled.
func loadSettings(filename string) (*settings.EffectSettings, error) {
	if filename == "" {
		filename = os.Getenv("POSTFX_SETTINGS")
	}
	if filename == "" {
		log.Println("No settings file given, all stages disabled")
		return &settings.EffectSettings{}, nil
	}

	fx, err := settings.Load(filename)
	if err != nil {
		return nil, err
	}
	if err := fx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", filename, err)
	}
	log.Printf("Loaded settings from %s", filename)
	return fx, nil
}

// poolSize prefers an explicit flag value, then POSTFX_WORKERS, then 1.
func poolSize(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if env := os.Getenv("POSTFX_WORKERS"); env != "" {
		n, err := strconv.Atoi(env)
		if err == nil && n > 0 {
			return n
		}
		log.Printf("Ignoring invalid POSTFX_WORKERS value %q", env)
	}
	return 1
}
