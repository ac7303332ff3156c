// Package engine reduces an ordered sequence of images to a lightness series
// on a fixed pool of workers.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/lightness-curve/internal/fault"
	"github.com/ironsheep/lightness-curve/internal/logger"
	"github.com/ironsheep/lightness-curve/internal/measure"
	"github.com/ironsheep/lightness-curve/internal/metric"
	"github.com/ironsheep/lightness-curve/internal/metrics"
	"github.com/ironsheep/lightness-curve/internal/ordering"
	"github.com/ironsheep/lightness-curve/internal/pixel"
)

// Series holds one value per input, index-aligned with the ordering.
type Series []float32

// Options is the immutable per-run configuration shared by all workers.
type Options struct {
	Mode metric.Mode
	// ROI restricts aggregation to a rectangle; nil means the whole image.
	ROI *pixel.Rect
	// Workers is the pool size; 0 means runtime.NumCPU().
	Workers int
}

// Source produces the pixel buffer for one item. Each call must return a
// buffer the caller may own exclusively.
type Source interface {
	Load(item ordering.Item) (*pixel.Buffer, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(item ordering.Item) (*pixel.Buffer, error)

// Load calls f(item).
func (f SourceFunc) Load(item ordering.Item) (*pixel.Buffer, error) {
	return f(item)
}

// FileSource decodes each item's path from disk.
type FileSource struct{}

// Load decodes item.Path.
func (FileSource) Load(item ordering.Item) (*pixel.Buffer, error) {
	return pixel.Load(item.Path)
}

// Engine runs the per-image reduction.
type Engine struct {
	opts    Options
	source  Source
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSource replaces the default FileSource.
func WithSource(s Source) Option {
	return func(e *Engine) {
		if s != nil {
			e.source = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records per-image outcomes in m.
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// New validates opts and builds an Engine.
func New(opts Options, options ...Option) (*Engine, error) {
	if _, err := metric.For(opts.Mode); err != nil {
		return nil, err
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must not be negative, got %d", fault.ErrConfig, opts.Workers)
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ROI != nil {
		roi := *opts.ROI
		opts.ROI = &roi
	}

	e := &Engine{
		opts:    opts,
		source:  FileSource{},
		logger:  logger.Discard(),
		metrics: metrics.NewManager(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.logger = e.logger.Named("engine")
	return e, nil
}

// Run reduces every item and returns the values in item order.
//
// Parameters:
//   - ctx: carries logging values only; a run is not cancellable.
//   - items: the ordered inputs, typically from ordering.Resolve. Item i's
//     value lands at Series[i] whichever worker computes it.
//
// Returns:
//   - Series: one value per item, or nil if any item failed.
//   - error: the errors.Join of every failed item, each wrapped as
//     "item <index> (<path>): <cause>" so errors.Is still matches the
//     fault kind.
//
// All items are processed even after one has failed. Zero items yield an
// empty Series and no error. Per-item outcomes are recorded in the
// metrics Manager and logged under a fresh run_id.
//
// # Example
//
//	eng, err := engine.New(engine.Options{Mode: metric.HSP}, engine.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	series, err := eng.Run(ctx, items)
func (e *Engine) Run(ctx context.Context, items []ordering.Item) (Series, error) {
	start := time.Now()
	log := e.logger.With(logger.String("run_id", uuid.NewString()))
	log.Info(ctx, "run started",
		logger.Int("items", len(items)),
		logger.String("mode", e.opts.Mode.String()),
		logger.Int("workers", e.opts.Workers))

	series := make(Series, len(items))
	errs := make([]error, len(items))

	jobs := make(chan int)
	workers := min(e.opts.Workers, len(items))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Each index is written by exactly one worker.
				series[i], errs[i] = e.measure(ctx, log, items[i])
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		e.metrics.RunFinished(0, time.Since(start))
		log.Error(ctx, "run failed", logger.Int("failed", len(failed)), logger.Int("items", len(items)))
		return nil, errors.Join(failed...)
	}

	e.metrics.RunFinished(len(series), time.Since(start))
	log.Info(ctx, "run finished", logger.Any("elapsed", time.Since(start)))
	return series, nil
}

// measure loads, crops and aggregates one item.
func (e *Engine) measure(ctx context.Context, log logger.Logger, item ordering.Item) (float32, error) {
	start := time.Now()

	v, err := e.reduce(ctx, log, item)
	if err != nil {
		err = fmt.Errorf("item %d (%s): %w", item.Index, item.Path, err)
		e.metrics.ImageFailed(fault.KindOf(err), time.Since(start))
		log.Warn(ctx, "item failed", logger.Int("index", item.Index), logger.Error(err))
		return 0, err
	}

	e.metrics.ImageProcessed(time.Since(start))
	return v, nil
}

func (e *Engine) reduce(ctx context.Context, log logger.Logger, item ordering.Item) (float32, error) {
	buf, err := e.source.Load(item)
	if err != nil {
		return 0, err
	}
	if buf == nil {
		return 0, fmt.Errorf("%w: source returned no buffer", fault.ErrDecode)
	}
	log.Debug(ctx, "decoded",
		logger.Int("index", item.Index),
		logger.String("format", buf.Format.String()),
		logger.Int("width", buf.Width),
		logger.Int("height", buf.Height))

	roi, err := buf.Crop(e.opts.ROI)
	if err != nil {
		return 0, err
	}
	return measure.Mean(roi, e.opts.Mode)
}
