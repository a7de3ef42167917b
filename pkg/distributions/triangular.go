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

// Triangular is sampled by inverting its CDF with a single stream.
type Triangular struct {
	rng *rng.Stream

	Lower units.Quantity `mapstructure:"lower"`
	Mode  units.Quantity `mapstructure:"mode"`
	Upper units.Quantity `mapstructure:"upper"`
}

func defaultTriangular() Family {
	return &Triangular{
		Lower: units.Scalar(0),
		Mode:  units.Scalar(0.5),
		Upper: units.Scalar(1),
	}
}

func (t *Triangular) Type() string {
	return TypeTriangular
}

func (t *Triangular) Streams() int {
	return 1
}

func (t *Triangular) Validate(owner string, unit units.Kind) error {
	c := newChecker(owner, unit)
	c.quantity("Lower", &t.Lower)
	c.quantity("Mode", &t.Mode)
	c.quantity("Upper", &t.Upper)

	lower, mode, upper := t.Lower.Value, t.Mode.Value, t.Upper.Value
	if c.finite("Lower", lower) && c.finite("Mode", mode) && c.finite("Upper", upper) {
		c.bound(lower < upper, "Upper", "> Lower", upper)
		c.bound(mode >= lower && mode <= upper, "Mode", "within [Lower, Upper]", mode)
	}
	c.representable("Upper", "close enough to Lower for finite samples", upper,
		(upper-lower)*(mode-lower), (upper-lower)*(upper-mode), t.StdDev())
	return c.err
}

func (t *Triangular) DefaultMinValue() float64 {
	return math.Inf(-1)
}

func (t *Triangular) Seed(s []*rng.Stream) {
	t.rng = s[0]
}

func (t *Triangular) Next() float64 {
	a, c, b := t.Lower.Value, t.Mode.Value, t.Upper.Value
	u := t.rng.Uniform()

	if u < (c-a)/(b-a) {
		return a + math.Sqrt(u*(b-a)*(c-a))
	}
	return b - math.Sqrt((1-u)*(b-a)*(b-c))
}

func (t *Triangular) moments() distuv.Triangle {
	return distuv.NewTriangle(t.Lower.Value, t.Upper.Value, t.Mode.Value, nil)
}

func (t *Triangular) MeanValue() float64 {
	return t.moments().Mean()
}

func (t *Triangular) StdDev() float64 {
	return math.Sqrt(t.moments().Variance())
}
