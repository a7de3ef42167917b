// Copyright 2019 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package distributions

import (
	"math"

	"github.com/scylladb/simvar/pkg/rng"
	"github.com/scylladb/simvar/pkg/units"
)

// Normal shares the polar method with LogNormal. Unlike the positive
// families it is not floored at 0 unless MinValue says so.
type Normal struct {
	rng1 *rng.Stream
	rng2 *rng.Stream

	Mean              units.Quantity `mapstructure:"mean"`
	StandardDeviation units.Quantity `mapstructure:"standard_deviation"`
}

func defaultNormal() Family {
	return &Normal{
		Mean:              units.Scalar(0),
		StandardDeviation: units.Scalar(1),
	}
}

func (n *Normal) Type() string {
	return TypeNormal
}

func (n *Normal) Streams() int {
	return 2
}

func (n *Normal) Validate(owner string, unit units.Kind) error {
	c := newChecker(owner, unit)
	c.quantity("Mean", &n.Mean)
	c.quantity("StandardDeviation", &n.StandardDeviation)
	c.finite("Mean", n.Mean.Value)
	c.nonNegative("StandardDeviation", n.StandardDeviation.Value)
	c.representable("StandardDeviation", "small enough for finite samples", n.StandardDeviation.Value,
		math.Abs(n.Mean.Value)+maxPolar*n.StandardDeviation.Value)
	return c.err
}

func (n *Normal) DefaultMinValue() float64 {
	return math.Inf(-1)
}

func (n *Normal) Seed(s []*rng.Stream) {
	n.rng1, n.rng2 = s[0], s[1]
}

func (n *Normal) Next() float64 {
	z, _ := polar(n.rng1, n.rng2)
	return n.Mean.Value + z*n.StandardDeviation.Value
}

func (n *Normal) MeanValue() float64 {
	return n.Mean.Value
}

func (n *Normal) StdDev() float64 {
	return n.StandardDeviation.Value
}
