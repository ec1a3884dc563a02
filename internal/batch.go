package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rm-hull/render-postfx/internal/postfx"
	"github.com/rm-hull/render-postfx/internal/settings"
)

var ErrNoImages = errors.New("no images to process")

var inputExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".tif": true, ".tiff": true, ".webp": true, ".hdr": true, ".pic": true,
}

// Batch post-processes every image in a directory with a pool of workers.
// Each image is an independent pipeline run; the settings are only read.
type Batch struct {
	ctx       context.Context
	startTime time.Time
	endTime   time.Time
	inputDir  string
	outputDir string
	format    string
	poolSize  int
	maxJobs   int
	jobs      chan string
	results   chan error
	files     []string
	settings  *settings.EffectSettings
}

func NewBatch(ctx context.Context, inputDir, outputDir string, poolSize int, format string, fx *settings.EffectSettings) (*Batch, error) {
	if poolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}
	startTime := time.Now()

	format, err := postfx.ParseFormat(format)
	if err != nil {
		return nil, postfx.ConfigError("output", "format", "%v", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}

	files, err := listImages(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", inputDir, err)
	}

	log.Printf("Directory %s contains %d images", inputDir, len(files))
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	return &Batch{
		ctx:       ctx,
		startTime: startTime,
		inputDir:  inputDir,
		outputDir: outputDir,
		format:    format,
		poolSize:  poolSize,
		maxJobs:   -1,
		jobs:      make(chan string),
		results:   make(chan error),
		files:     files,
		settings:  fx,
	}, nil
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if inputExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// DispatchJobs sends files to the jobs channel for processing by workers.
// When maxJobs is greater than zero, it limits the number of jobs dispatched,
// hence set to -1 to dispatch all jobs.
func (b *Batch) DispatchJobs() {
	go func() {
		for n, file := range b.files {
			if b.maxJobs > 0 && n >= b.maxJobs {
				break
			}
			b.jobs <- file
		}
		close(b.jobs)
	}()
}

func (b *Batch) StartWorkers() {
	log.Printf("Starting post-processing with pool size: %d", b.poolSize)

	for i := range b.poolSize {
		go b.worker(i)
	}
}

func (b *Batch) worker(i int) {
	log.Printf("Worker %d started", i)
	for file := range b.jobs {
		b.results <- b.processFile(file)
	}
	log.Printf("Worker %d finished", i)
}

func (b *Batch) outputPath(file string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	ext := b.format
	if ext == "jpeg" {
		ext = "jpg"
	}
	return filepath.Join(b.outputDir, base+"."+ext)
}

func (b *Batch) processFile(file string) error {
	output := b.outputPath(file)

	// if the output already exists, skip processing
	if _, err := os.Stat(output); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := Process(b.ctx, filepath.Join(b.inputDir, file), output, b.settings); err != nil {
		return fmt.Errorf("failed to process %s: %w", file, err)
	}
	return nil
}

func (b *Batch) Wait() []error {
	waitFor := len(b.files)
	if b.maxJobs > 0 && b.maxJobs < waitFor {
		waitFor = b.maxJobs
	}
	log.Printf("Waiting for %d images to be processed", waitFor)

	errors := make([]error, 0, 10)
	for range waitFor {
		err := <-b.results
		if err != nil {
			errors = append(errors, err)
		}
	}
	b.endTime = time.Now()
	elapsed := b.endTime.Sub(b.startTime)
	log.Printf("All images processed in %s (errors=%d)", elapsed, len(errors))
	return errors
}

// Run processes the whole directory and returns every error encountered.
func (b *Batch) Run() []error {
	b.StartWorkers()
	b.DispatchJobs()
	return b.Wait()
}
