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

package distributions

import (
	"math"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scylladb/simvar/pkg/simerror"
	"github.com/scylladb/simvar/pkg/streams"
	"github.com/scylladb/simvar/pkg/units"
)

func TestNew(t *testing.T) {
	t.Parallel()

	d, err := New(Spec{
		Name:       "ServiceTime",
		Type:       "LogNormal",
		Unit:       "time",
		RandomSeed: mo.Some(uint64(7)),
		Params: map[string]any{
			"scale":                     3.0,
			"normal_mean":               5.0,
			"normal_standard_deviation": 2.0,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ServiceTime", d.Name())
	assert.Equal(t, TypeLogNormal, d.Type())
	assert.Equal(t, units.Time, d.Unit())
	assert.InEpsilon(t, 3*math.Exp(7), d.Mean(), 1e-12)

	require.NoError(t, d.Init(streams.NewRegistry()))
	assert.Equal(t, uint64(7), d.Assignment().Base)
	assert.Equal(t, 2, d.Assignment().Count)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	for _, name := range Types() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d, err := New(Spec{Name: name, Type: name})
			require.NoError(t, err)
			assert.Equal(t, name, d.Type())
			assert.Equal(t, units.Dimensionless, d.Unit())
			require.NoError(t, d.Init(streams.NewRegistry()))
			d.Sample()
		})
	}
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	t.Run("quantity object", func(t *testing.T) {
		t.Parallel()

		d, err := New(Spec{
			Name: "travel",
			Type: "weibull",
			Unit: "distance",
			Params: map[string]any{
				"scale":    map[string]any{"value": 2.0, "unit": "distance"},
				"shape":    2,
				"location": 1.5,
			},
			MinValue: mo.Some(0.0),
		})
		require.NoError(t, err)

		w := d.Family().(*Weibull)
		assert.Equal(t, units.Of(2, units.Distance), w.Scale)
		assert.Equal(t, units.Of(1.5, units.Distance), w.Location)
		assert.Equal(t, 2.0, w.Shape)
		assert.Equal(t, 0.0, d.MinValue())
	})

	t.Run("integer shape", func(t *testing.T) {
		t.Parallel()

		d, err := New(Spec{Name: "setup", Type: "erlang", Params: map[string]any{"mean": 4.0, "shape": 3.0}})
		require.NoError(t, err)
		assert.Equal(t, 3.0, d.Family().(*Erlang).Shape)
		assert.InDelta(t, 4/math.Sqrt(3), d.StdDev(), 1e-12)
	})

	t.Run("quantity string", func(t *testing.T) {
		t.Parallel()

		d, err := New(Spec{Name: "service", Type: "lognormal", Unit: "time", Params: map[string]any{"scale": "3 time"}})
		require.NoError(t, err)
		assert.Equal(t, units.Of(3, units.Time), d.Family().(*LogNormal).Scale)
	})

	t.Run("max value", func(t *testing.T) {
		t.Parallel()

		d, err := New(Spec{Name: "bounded", Type: "normal", MaxValue: mo.Some(2.0)})
		require.NoError(t, err)
		assert.Equal(t, 2.0, d.MaxValue())
		assert.True(t, math.IsInf(d.MinValue(), -1))
	})
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		spec      Spec
		parameter string
	}{
		"unknown type": {
			spec:      Spec{Name: "x", Type: "cauchy"},
			parameter: "Type",
		},
		"unknown unit": {
			spec:      Spec{Name: "x", Type: "exponential", Unit: "parsecs"},
			parameter: "Unit",
		},
		"unknown param": {
			spec:      Spec{Name: "x", Type: "exponential", Params: map[string]any{"rate": 2.0}},
			parameter: "Params",
		},
		"unit mismatch": {
			spec: Spec{
				Name:   "x",
				Type:   "lognormal",
				Unit:   "time",
				Params: map[string]any{"scale": map[string]any{"value": 2.0, "unit": "mass"}},
			},
			parameter: "Scale",
		},
		"out of range": {
			spec:      Spec{Name: "x", Type: "lognormal", Params: map[string]any{"normal_standard_deviation": -1.0}},
			parameter: "NormalStandardDeviation",
		},
		"fractional erlang shape": {
			spec:      Spec{Name: "x", Type: "erlang", Params: map[string]any{"mean": 3.0, "shape": 2.5}},
			parameter: "Shape",
		},
		"erlang shape above the cap": {
			spec:      Spec{Name: "x", Type: "erlang", Params: map[string]any{"shape": 5000.0}},
			parameter: "Shape",
		},
		"overflowing lognormal": {
			spec:      Spec{Name: "x", Type: "lognormal", Params: map[string]any{"normal_mean": 800.0}},
			parameter: "NormalMean",
		},
		"empty name": {
			spec:      Spec{Type: "constant"},
			parameter: "Name",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.spec)

			var cfgErr *simerror.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.parameter, cfgErr.Parameter)
		})
	}
}

func TestTypes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		TypeConstant,
		TypeErlang,
		TypeExponential,
		TypeGamma,
		TypeLogNormal,
		TypeNormal,
		TypeTriangular,
		TypeUniform,
		TypeWeibull,
	}, Types())
}
