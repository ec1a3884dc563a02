package postfx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

type Stage interface {
	Name() string
	Process(p *PixelBuffer) error
}

type State int

const (
	Ready State = iota
	Processing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Processing:
		return "PROCESSING"
	case Done:
		return "DONE"
	case Failed:
		return "FAILED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var ErrPipelineUsed = errors.New("pipeline has already been run")

// Pipeline applies its stages once, in order, to a single buffer.
// A failed pipeline is not resumable; build a new one to retry.
type Pipeline struct {
	stages []Stage
	state  State

	// Observer, when set, is called after each successful stage.
	Observer func(stage string, elapsed time.Duration)
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

func (pl *Pipeline) State() State { return pl.state }

func (pl *Pipeline) Stages() []Stage { return pl.stages }

func (pl *Pipeline) Run(ctx context.Context, p *PixelBuffer) error {
	if pl.state != Ready {
		return ErrPipelineUsed
	}
	pl.state = Processing

	bounds := p.Bounds
	for _, stage := range pl.stages {
		if err := ctx.Err(); err != nil {
			pl.state = Failed
			return fmt.Errorf("pipeline cancelled before stage %s: %w", stage.Name(), err)
		}

		start := time.Now()
		if err := stage.Process(p); err != nil {
			pl.state = Failed
			return attributeTo(stage.Name(), err)
		}
		if p.Bounds != bounds || len(p.Img.Pix) != bounds.Dx()*bounds.Dy()*4 {
			pl.state = Failed
			return ProcessingError(stage.Name(), "", "buffer dimensions changed from %v to %v", bounds, p.Bounds)
		}

		elapsed := time.Since(start)
		if pl.Observer != nil {
			pl.Observer(stage.Name(), elapsed)
		}
		log.Printf("Applied stage %s in %s", stage.Name(), elapsed)
	}

	pl.state = Done
	return nil
}

// Pipeline runs the given stages over the buffer with no cancellation.
func (p *PixelBuffer) Pipeline(stages ...Stage) error {
	return NewPipeline(stages...).Run(context.Background(), p)
}

func attributeTo(stage string, err error) error {
	var pe *Error
	if errors.As(err, &pe) {
		if pe.Stage == "" {
			pe.Stage = stage
		}
		return pe
	}
	return &Error{Kind: ErrProcessing, Stage: stage, Err: err}
}
