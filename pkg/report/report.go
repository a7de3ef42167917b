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

// Package report compares the empirical behavior of sampled distributions
// with their analytic moments.
package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/scylladb/simvar/pkg/distributions"
	"github.com/scylladb/simvar/pkg/model"
	"github.com/scylladb/simvar/pkg/replication"
	"github.com/scylladb/simvar/pkg/units"
)

type (
	// Quantiles are only available when the drawn values were kept.
	Quantiles struct {
		P5     float64
		Median float64
		P95    float64
	}

	Row struct {
		Name           string
		Type           string
		Unit           units.Kind
		Quantiles      *Quantiles
		Stats          distributions.Stats
		AnalyticMean   float64
		AnalyticStdDev float64
		Replications   int
	}
)

// MeanError is the relative difference between the empirical and the
// analytic mean.
func (r Row) MeanError() float64 {
	if r.AnalyticMean == 0 {
		return r.Stats.Mean - r.AnalyticMean
	}
	return (r.Stats.Mean - r.AnalyticMean) / math.Abs(r.AnalyticMean)
}

// Summarize pools the replications of every distribution into one row, in
// model order.
func Summarize(results []replication.Result) ([]Row, error) {
	if len(results) == 0 {
		return nil, nil
	}

	rows := make([]Row, len(results[0].Distributions))
	pooled := make([][]float64, len(rows))

	for i, s := range results[0].Distributions {
		rows[i] = Row{
			Name:           s.Name,
			Type:           s.Type,
			Unit:           s.Unit,
			AnalyticMean:   s.Mean,
			AnalyticStdDev: s.StdDev,
		}
	}

	for _, res := range results {
		if len(res.Distributions) != len(rows) {
			return nil, errors.Errorf("replication %d has %d distributions, expected %d",
				res.Replication, len(res.Distributions), len(rows))
		}

		for i, s := range res.Distributions {
			if s.Name != rows[i].Name {
				return nil, errors.Errorf("replication %d: distribution %q where %q was expected",
					res.Replication, s.Name, rows[i].Name)
			}

			rows[i].Stats = rows[i].Stats.Merge(s.Stats)
			rows[i].Replications++
			pooled[i] = append(pooled[i], s.Values...)
		}
	}

	for i, values := range pooled {
		if len(values) == 0 {
			continue
		}

		q, err := quantiles(values)
		if err != nil {
			return nil, errors.Wrapf(err, "distribution %q", rows[i].Name)
		}
		rows[i].Quantiles = &q
	}

	return rows, nil
}

func quantiles(values []float64) (Quantiles, error) {
	data := stats.LoadRawData(values)

	p5, err := data.Percentile(5)
	if err != nil {
		return Quantiles{}, err
	}

	median, err := data.Median()
	if err != nil {
		return Quantiles{}, err
	}

	p95, err := data.Percentile(95)
	if err != nil {
		return Quantiles{}, err
	}

	return Quantiles{P5: p5, Median: median, P95: p95}, nil
}

// Write prints rows as an aligned table.
func Write(w io.Writer, rows []Row) error {
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 8, 2, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(tw, "Distribution\tType\tUnit\tSamples\tMean\tAnalytic mean\tError\tStdDev\tAnalytic stddev\tMin\tP5\tMedian\tP95\tMax\t")
	for _, r := range rows {
		p5, median, p95 := "-", "-", "-"
		if r.Quantiles != nil {
			p5, median, p95 = num(r.Quantiles.P5), num(r.Quantiles.Median), num(r.Quantiles.P95)
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%+.2f%%\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Name, r.Type, r.Unit, r.Stats.Count,
			num(r.Stats.Mean), num(r.AnalyticMean), 100*r.MeanError(),
			num(r.Stats.StdDev()), num(r.AnalyticStdDev),
			num(r.Stats.Min), p5, median, p95, num(r.Stats.Max),
		)
	}

	return tw.Flush()
}

// WriteModel prints the configuration of every distribution of m.
func WriteModel(w io.Writer, m *model.Model) error {
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 8, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "Model:\t%s\n", m.Name())
	_, _ = fmt.Fprintf(tw, "Streams:\t%d\n\n", m.Streams())

	_, _ = fmt.Fprintln(tw, "Distribution\tType\tUnit\tStreams\tMin\tMax\tMean\tStdDev")
	for _, d := range m.Distributions() {
		a := d.Assignment()

		streams := "-"
		if a.Count > 0 {
			streams = fmt.Sprintf("%d-%d", a.Base, a.Base+uint64(a.Count)-1)
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Name(), d.Type(), d.Unit(), streams,
			num(d.MinValue()), num(d.MaxValue()), num(d.Mean()), num(d.StdDev()),
		)
	}

	return tw.Flush()
}

func num(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
