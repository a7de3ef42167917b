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

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/scylladb/simvar/pkg/rng"
	"github.com/scylladb/simvar/pkg/units"
)

// Gamma is parameterized by its mean and shape. Sampling is delegated to
// gonum, which reads its randomness from the owned stream.
type Gamma struct {
	sampler distuv.Gamma

	Mean  units.Quantity `mapstructure:"mean"`
	Shape float64        `mapstructure:"shape"`
}

func defaultGamma() Family {
	return &Gamma{Mean: units.Scalar(1), Shape: 1}
}

func (g *Gamma) Type() string {
	return TypeGamma
}

func (g *Gamma) Streams() int {
	return 1
}

func (g *Gamma) Validate(owner string, unit units.Kind) error {
	c := newChecker(owner, unit)
	c.quantity("Mean", &g.Mean)
	c.positive("Mean", g.Mean.Value)
	c.positive("Shape", g.Shape)
	c.representable("Mean", "small enough for finite samples", g.Mean.Value,
		g.Mean.Value*maxExponential)
	c.representable("Shape", "large enough for finite moments and samples", g.Shape,
		g.StdDev(), g.Mean.Value/g.Shape)
	return c.err
}

func (g *Gamma) Seed(s []*rng.Stream) {
	g.sampler = distuv.Gamma{
		Alpha: g.Shape,
		Beta:  g.Shape / g.Mean.Value,
		Src:   s[0],
	}
}

func (g *Gamma) Next() float64 {
	return g.sampler.Rand()
}

func (g *Gamma) MeanValue() float64 {
	return g.Mean.Value
}

func (g *Gamma) StdDev() float64 {
	return g.Mean.Value / math.Sqrt(g.Shape)
}
