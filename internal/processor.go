package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rm-hull/render-postfx/internal/postfx"
	"github.com/rm-hull/render-postfx/internal/settings"
)

// Apply runs the stages over buf, which it takes ownership of, and returns
// the final buffer, downscaled to maxWidth when that is set.
func Apply(ctx context.Context, buf *postfx.PixelBuffer, stages []postfx.Stage, maxWidth int) (*postfx.PixelBuffer, error) {
	pipeline := postfx.NewPipeline(stages...)
	pipeline.Observer = observeStage
	if err := pipeline.Run(ctx, buf); err != nil {
		return nil, err
	}
	return postfx.Resize(buf, maxWidth), nil
}

// Process decodes input, applies the settings and writes output. Nothing is
// written unless every step succeeds. Input may be a local path or an
// http(s) URL.
func Process(ctx context.Context, input, output string, fx *settings.EffectSettings) error {
	return ProcessWith(ctx, NewSourceClient(os.Getenv("POSTFX_SOURCE_API_KEY")), input, output, fx)
}

func ProcessWith(ctx context.Context, src SourceClient, input, output string, fx *settings.EffectSettings) (err error) {
	defer func() { countImage(err) }()

	format, err := postfx.FormatFromPath(output)
	if err != nil {
		return postfx.ConfigError("output", "path", "%v", err)
	}
	stages, err := fx.Stages()
	if err != nil {
		return err
	}

	inFile, err := openInput(src, input)
	if err != nil {
		return postfx.InputError(err)
	}
	defer func() {
		_ = inFile.Close()
	}()

	buf, _, err := postfx.Decode(inFile)
	if err != nil {
		return err
	}

	buf, err = Apply(ctx, buf, stages, maxWidth(fx))
	if err != nil {
		return err
	}

	if err := postfx.WriteFileAtomic(output, func(w io.Writer) error {
		return postfx.Encode(w, buf, format, quality(fx))
	}); err != nil {
		return err
	}

	log.Printf("Wrote %s (%dx%d)", output, buf.Width(), buf.Height())
	return nil
}

// ProcessBytes is the in-memory form of Process, returning the encoded result.
func ProcessBytes(ctx context.Context, input []byte, format string, fx *settings.EffectSettings) (_ []byte, err error) {
	defer func() { countImage(err) }()

	format, err = postfx.ParseFormat(format)
	if err != nil {
		return nil, postfx.ConfigError("output", "format", "%v", err)
	}
	stages, err := fx.Stages()
	if err != nil {
		return nil, err
	}

	buf, _, err := postfx.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}

	buf, err = Apply(ctx, buf, stages, maxWidth(fx))
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := postfx.Encode(&out, buf, format, quality(fx)); err != nil {
		return nil, postfx.IOError(fmt.Errorf("failed to encode output: %w", err))
	}
	return out.Bytes(), nil
}

func openInput(src SourceClient, input string) (io.ReadCloser, error) {
	if IsRemote(input) {
		return src.Fetch(input)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", input, err)
	}
	return f, nil
}

func quality(fx *settings.EffectSettings) int {
	if fx == nil {
		return 0
	}
	return fx.Output.Quality
}

func maxWidth(fx *settings.EffectSettings) int {
	if fx == nil {
		return 0
	}
	return fx.Output.MaxWidth
}
