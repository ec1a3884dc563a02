package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rm-hull/render-postfx/internal"
	"github.com/rm-hull/render-postfx/internal/postfx"
)

func Process(input, output, settingsFile, compareFile string) error {
	fx, err := loadSettings(settingsFile)
	if err != nil {
		return err
	}

	if err := internal.Process(context.Background(), input, output, fx); err != nil {
		return fmt.Errorf("failed to process %s: %w", input, err)
	}

	if compareFile == "" {
		return nil
	}
	return writeComparison(input, output, compareFile)
}

// writeComparison animates the source against the processed result. The
// source is scaled to match when the output was downsized.
func writeComparison(input, output, compareFile string) error {
	if internal.IsRemote(input) {
		return fmt.Errorf("comparison is only supported for local input files")
	}

	before, err := decodeFile(input)
	if err != nil {
		return err
	}
	after, err := decodeFile(output)
	if err != nil {
		return err
	}
	before = postfx.Resize(before, after.Width())

	data, err := postfx.Compare([]*postfx.PixelBuffer{before, after}, 1.0)
	if err != nil {
		return fmt.Errorf("failed to build comparison: %w", err)
	}

	if err := postfx.WriteFileAtomic(compareFile, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	}); err != nil {
		return err
	}
	log.Printf("Wrote comparison %s", compareFile)
	return nil
}

func decodeFile(filename string) (*postfx.PixelBuffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, postfx.InputError(fmt.Errorf("failed to open %s: %w", filename, err))
	}
	defer func() {
		_ = f.Close()
	}()

	p, _, err := postfx.Decode(f)
	return p, err
}
