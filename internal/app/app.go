// Package app wires one lightness run end to end: ordering, measurement,
// reports and metrics.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ironsheep/lightness-curve/internal/config"
	"github.com/ironsheep/lightness-curve/internal/engine"
	"github.com/ironsheep/lightness-curve/internal/fault"
	"github.com/ironsheep/lightness-curve/internal/logger"
	"github.com/ironsheep/lightness-curve/internal/metrics"
	"github.com/ironsheep/lightness-curve/internal/ordering"
	"github.com/ironsheep/lightness-curve/internal/report"
)

// App executes plans.
type App struct {
	log    logger.Logger
	stdout io.Writer
	source engine.Source
}

// Option applies a configuration option to the App.
type Option func(*App)

// WithStdout sets where the report goes when no output path is configured.
func WithStdout(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.stdout = w
		}
	}
}

// WithSource overrides how images are decoded.
func WithSource(s engine.Source) Option {
	return func(a *App) {
		if s != nil {
			a.source = s
		}
	}
}

// New creates an App logging to log.
func New(log logger.Logger, opts ...Option) *App {
	if log == nil {
		log = logger.Discard()
	}
	a := &App{
		log:    log,
		stdout: os.Stdout,
		source: engine.FileSource{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run orders the inputs of plan, measures them and writes the requested
// outputs. When neither a data nor a plot path is set the text report is
// written to stdout. The metrics textfile, if configured, is written even
// when the run fails.
func (a *App) Run(ctx context.Context, plan *config.Plan) (engine.Series, error) {
	items, err := ordering.Resolve(plan.InputPath, plan.OrderBy, plan.Descending)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s: no input files", fault.ErrPath, plan.InputPath)
	}
	a.log.Info(ctx, "inputs resolved",
		logger.String("path", plan.InputPath),
		logger.String("order_by", plan.OrderBy.String()),
		logger.Int("items", len(items)))

	m := metrics.NewManager(metrics.WithConstLabels(map[string]string{
		"mode": plan.Engine.Mode.String(),
	}))
	eng, err := engine.New(plan.Engine,
		engine.WithSource(a.source),
		engine.WithLogger(a.log),
		engine.WithMetrics(m))
	if err != nil {
		return nil, err
	}

	series, runErr := eng.Run(ctx, items)
	if plan.MetricsTextfile != "" {
		if err := m.WriteTextfile(plan.MetricsTextfile); err != nil {
			a.log.Warn(ctx, "metrics textfile not written",
				logger.String("path", plan.MetricsTextfile), logger.Error(err))
		}
	}
	if runErr != nil {
		return nil, runErr
	}

	if err := a.emit(ctx, plan, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (a *App) emit(ctx context.Context, plan *config.Plan, series engine.Series) error {
	if plan.OutputDataPath == "" && plan.OutputPlotPath == "" {
		if err := report.WriteText(a.stdout, series); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		_, err := io.WriteString(a.stdout, "\n")
		return err
	}

	if plan.OutputDataPath != "" {
		if err := os.WriteFile(plan.OutputDataPath, []byte(report.Text(series)), 0o644); err != nil {
			return fmt.Errorf("write data report: %w", err)
		}
		a.log.Info(ctx, "data report written", logger.String("path", plan.OutputDataPath))
	}

	if plan.OutputPlotPath != "" {
		start := time.Now()
		if err := writeChart(plan.OutputPlotPath, series); err != nil {
			return err
		}
		a.log.Info(ctx, "chart written",
			logger.String("path", plan.OutputPlotPath),
			logger.Any("elapsed", time.Since(start)))
	}
	return nil
}

func writeChart(path string, series engine.Series) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write chart: %w", cerr)
		}
	}()
	return report.WriteChart(f, series)
}
