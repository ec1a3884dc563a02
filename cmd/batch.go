package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rm-hull/render-postfx/internal"
)

func Batch(inputDir, outputDir, settingsFile, format string, workers int) error {
	internal.ShowVersion()

	fx, err := loadSettings(settingsFile)
	if err != nil {
		return err
	}

	batch, err := internal.NewBatch(context.Background(), inputDir, outputDir, poolSize(workers), format, fx)
	if errors.Is(err, internal.ErrNoImages) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to start batch: %w", err)
	}

	if errs := batch.Run(); len(errs) > 0 {
		return fmt.Errorf("%d images failed: %w", len(errs), errors.Join(errs...))
	}
	return nil
}
