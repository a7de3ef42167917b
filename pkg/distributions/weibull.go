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

// Weibull is shifted by Location, so its samples lie in [Location, +Inf).
type Weibull struct {
	rng *rng.Stream

	Scale    units.Quantity `mapstructure:"scale"`
	Shape    float64        `mapstructure:"shape"`
	Location units.Quantity `mapstructure:"location"`
}

func defaultWeibull() Family {
	return &Weibull{
		Scale:    units.Scalar(1),
		Shape:    1,
		Location: units.Scalar(0),
	}
}

func (w *Weibull) Type() string {
	return TypeWeibull
}

func (w *Weibull) Streams() int {
	return 1
}

func (w *Weibull) Validate(owner string, unit units.Kind) error {
	c := newChecker(owner, unit)
	c.quantity("Scale", &w.Scale)
	c.quantity("Location", &w.Location)
	c.positive("Scale", w.Scale.Value)
	c.positive("Shape", w.Shape)
	c.finite("Location", w.Location.Value)
	c.representable("Shape", "large enough for finite moments and samples", w.Shape,
		w.MeanValue(), w.StdDev(), w.Location.Value+w.Scale.Value*math.Pow(maxExponential, 1/w.Shape))
	return c.err
}

func (w *Weibull) DefaultMinValue() float64 {
	return w.Location.Value
}

func (w *Weibull) Seed(s []*rng.Stream) {
	w.rng = s[0]
}

func (w *Weibull) Next() float64 {
	return w.Location.Value + w.Scale.Value*math.Pow(-math.Log(w.rng.Uniform()), 1/w.Shape)
}

func (w *Weibull) moments() distuv.Weibull {
	return distuv.Weibull{K: w.Shape, Lambda: w.Scale.Value}
}

func (w *Weibull) MeanValue() float64 {
	return w.Location.Value + w.moments().Mean()
}

func (w *Weibull) StdDev() float64 {
	return math.Sqrt(w.moments().Variance())
}
