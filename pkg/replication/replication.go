// Copyright 2025 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package replication runs independent replications of a model in parallel.
// Every replication builds its own distributions and registry, so no random
// stream is shared between goroutines.
package replication

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/mo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scylladb/simvar/pkg/distributions"
	"github.com/scylladb/simvar/pkg/metrics"
	"github.com/scylladb/simvar/pkg/model"
	"github.com/scylladb/simvar/pkg/samplelog"
	"github.com/scylladb/simvar/pkg/units"
)

// batchSize is the number of draws per distribution between two
// cancellation checks.
const batchSize = 1024

type (
	// Summary is what one distribution produced in one replication.
	Summary struct {
		Name     string
		Type     string
		Unit     units.Kind
		Values   []float64
		Stats    distributions.Stats
		Mean     float64
		StdDev   float64
		Stream   uint64
		Streams  int
		MinValue float64
		MaxValue float64
	}

	Result struct {
		Distributions []Summary
		Replication   uint64
	}

	Runner struct {
		logger      *zap.Logger
		sink        samplelog.Writer
		config      model.Config
		first       uint64
		count       uint64
		samples     uint64
		concurrency int
		keepValues  bool
	}

	Option func(*Runner)
)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency bounds the number of replications running at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithSink sends every drawn value to w.
func WithSink(w samplelog.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.sink = w
		}
	}
}

// WithFirstReplication numbers replications from n instead of 0.
func WithFirstReplication(n uint64) Option {
	return func(r *Runner) {
		r.first = n
	}
}

// WithValues keeps the drawn values in the results.
func WithValues() Option {
	return func(r *Runner) {
		r.keepValues = true
	}
}

// New prepares count replications of cfg drawing samples values from every
// distribution.
func New(cfg model.Config, count, samples uint64, opts ...Option) *Runner {
	r := &Runner{
		logger:      zap.NewNop(),
		config:      cfg,
		count:       count,
		samples:     samples,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes every replication and returns the results ordered by
// replication number. The first failing replication cancels the others.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	r.logger.Info("starting replications",
		zap.String("model", r.config.Name),
		zap.Uint64("replications", r.count),
		zap.Uint64("samples", r.samples),
		zap.Int("concurrency", r.concurrency),
	)

	outcomes := make([]mo.Result[Result], r.count)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i := range r.count {
		rep := r.first + i
		g.Go(func() error {
			outcomes[i] = r.replicate(gCtx, rep)
			return outcomes[i].Error()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(outcomes))
	for _, outcome := range outcomes {
		results = append(results, outcome.MustGet())
	}

	r.logger.Info("replications finished", zap.String("model", r.config.Name))

	return results, nil
}

func (r *Runner) replicate(ctx context.Context, rep uint64) mo.Result[Result] {
	running := metrics.ReplicationsRunning.WithLabelValues(r.config.Name)
	running.Inc()
	defer running.Dec()

	timer := metrics.ExecutionTimeStart("replication")
	defer timer.Record()

	logger := r.logger.With(zap.Uint64("replication", rep))

	res, err := r.draw(ctx, rep, logger)
	status := "ok"
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = "cancelled"
	case err != nil:
		status = "error"
	}
	metrics.Replications.WithLabelValues(r.config.Name, status).Inc()

	if err != nil {
		logger.Debug("replication stopped", zap.Error(err))
		return mo.Err[Result](errors.Wrapf(err, "replication %d", rep))
	}

	logger.Debug("replication completed")
	return mo.Ok(res)
}

func (r *Runner) draw(ctx context.Context, rep uint64, logger *zap.Logger) (Result, error) {
	m, err := model.New(r.config, logger)
	if err != nil {
		return Result{}, err
	}

	if err = m.Init(rep); err != nil {
		return Result{}, err
	}

	dists := m.Distributions()
	metrics.StreamsAssigned.WithLabelValues(r.config.Name).Set(float64(m.Streams()))

	var values [][]float64
	if r.keepValues {
		values = make([][]float64, len(dists))
		for i := range values {
			values[i] = make([]float64, 0, r.samples)
		}
	}

	for start := uint64(0); start < r.samples; start += batchSize {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}

		end := min(start+batchSize, r.samples)
		for i, d := range dists {
			for index := start; index < end; index++ {
				v := d.Sample()
				if values != nil {
					values[i] = append(values[i], v)
				}
				if r.sink == nil {
					continue
				}
				if err = r.sink.Write(samplelog.Record{
					Replication:  rep,
					Distribution: d.Name(),
					Index:        index,
					Value:        v,
				}); err != nil {
					return Result{}, errors.Wrap(err, "failed to write sample")
				}
			}
		}
	}

	res := Result{
		Replication:   rep,
		Distributions: make([]Summary, len(dists)),
	}

	for i, d := range dists {
		a := d.Assignment()
		res.Distributions[i] = Summary{
			Name:     d.Name(),
			Type:     d.Type(),
			Unit:     d.Unit(),
			Stats:    d.Stats(),
			Mean:     d.Mean(),
			StdDev:   d.StdDev(),
			Stream:   a.Base,
			Streams:  a.Count,
			MinValue: d.MinValue(),
			MaxValue: d.MaxValue(),
		}
		if values != nil {
			res.Distributions[i].Values = values[i]
		}

		metrics.SamplesDrawn.WithLabelValues(r.config.Name, d.Name()).Add(float64(d.Stats().Count))
	}

	return res, nil
}
