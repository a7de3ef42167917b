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

package replication_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/scylladb/simvar/pkg/distributions"
	"github.com/scylladb/simvar/pkg/model"
	"github.com/scylladb/simvar/pkg/replication"
	"github.com/scylladb/simvar/pkg/samplelog"
	"github.com/scylladb/simvar/pkg/simerror"
)

func config() model.Config {
	seed := uint64(20)
	zero := 0.0

	return model.Config{
		Name: "shop",
		Distributions: []model.Entry{
			{Name: "Arrivals", Type: "exponential", Unit: "time", Params: map[string]any{"mean": 2.0}},
			{
				Name:       "Service",
				Type:       "lognormal",
				Unit:       "time",
				RandomSeed: &seed,
				Params:     map[string]any{"scale": 1.0, "normal_mean": 0.5, "normal_standard_deviation": 0.3},
			},
			{Name: "Demand", Type: "normal", MinValue: &zero, Params: map[string]any{"mean": 5.0, "standard_deviation": 2.0}},
		},
	}
}

func values(t *testing.T, results []replication.Result) map[uint64]map[string][]float64 {
	t.Helper()

	out := make(map[uint64]map[string][]float64, len(results))
	for _, res := range results {
		byName := make(map[string][]float64)
		for _, s := range res.Distributions {
			byName[s.Name] = s.Values
		}
		out[res.Replication] = byName
	}
	return out
}

func TestParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	sequential, err := replication.New(config(), 6, 2000,
		replication.WithValues(),
		replication.WithLogger(zaptest.NewLogger(t)),
	).Run(ctx)
	require.NoError(t, err)

	parallel, err := replication.New(config(), 6, 2000,
		replication.WithValues(),
		replication.WithConcurrency(4),
	).Run(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(sequential, parallel, cmp.AllowUnexported(distributions.Stats{})); diff != "" {
		t.Fatalf("parallel run differs from sequential (-sequential +parallel):\n%s", diff)
	}

	for i, res := range parallel {
		assert.Equal(t, uint64(i), res.Replication)
	}
}

func TestReplicationsAreReproducibleAndIndependent(t *testing.T) {
	t.Parallel()

	first, err := replication.New(config(), 2, 500, replication.WithValues()).Run(t.Context())
	require.NoError(t, err)

	// Replication 1 alone must match replication 1 of the earlier run.
	again, err := replication.New(config(), 1, 500,
		replication.WithValues(),
		replication.WithFirstReplication(1),
	).Run(t.Context())
	require.NoError(t, err)

	a, b := values(t, first), values(t, again)
	if diff := cmp.Diff(a[1], b[1]); diff != "" {
		t.Fatalf("replication 1 is not reproducible (-first +again):\n%s", diff)
	}

	for name := range a[0] {
		assert.NotEqual(t, a[0][name], a[1][name], name)
	}
}

func TestSummaries(t *testing.T) {
	t.Parallel()

	results, err := replication.New(config(), 1, 1000).Run(t.Context())
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0].Distributions
	require.Len(t, got, 3)

	assert.Equal(t, "Arrivals", got[0].Name)
	assert.Equal(t, distributions.TypeExponential, got[0].Type)
	assert.Equal(t, uint64(1), got[0].Stream)
	assert.Equal(t, uint64(20), got[1].Stream)
	assert.Equal(t, 2, got[1].Streams)
	assert.Empty(t, got[0].Values)

	for _, s := range got {
		assert.Equal(t, int64(1000), s.Stats.Count, s.Name)
	}

	assert.GreaterOrEqual(t, got[2].Stats.Min, 0.0)
}

func TestSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink, err := samplelog.NewWriter(t.Name(), &buf, samplelog.GZIPCompression, nil)
	require.NoError(t, err)

	results, err := replication.New(config(), 3, 100,
		replication.WithSink(sink),
		replication.WithConcurrency(3),
		replication.WithValues(),
	).Run(t.Context())
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	records, err := samplelog.Read(&buf, samplelog.GZIPCompression)
	require.NoError(t, err)
	require.Len(t, records, 3*3*100)

	written := make(map[uint64]map[string][]float64)
	for _, rec := range records {
		if written[rec.Replication] == nil {
			written[rec.Replication] = make(map[string][]float64)
		}
		byName := written[rec.Replication]
		require.Equal(t, uint64(len(byName[rec.Distribution])), rec.Index)
		byName[rec.Distribution] = append(byName[rec.Distribution], rec.Value)
	}

	if diff := cmp.Diff(values(t, results), written, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("sink content differs from results (-results +sink):\n%s", diff)
	}
}

func TestCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := replication.New(config(), 4, 10_000, replication.WithConcurrency(2)).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestInvalidModel(t *testing.T) {
	t.Parallel()

	cfg := config()
	cfg.Distributions[0].Params = map[string]any{"mean": -2.0}

	_, err := replication.New(cfg, 2, 10).Run(t.Context())

	var cfgErr *simerror.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Arrivals", cfgErr.Owner)
}
