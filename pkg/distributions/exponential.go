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

	"github.com/scylladb/simvar/pkg/rng"
	"github.com/scylladb/simvar/pkg/units"
)

type Exponential struct {
	rng *rng.Stream

	Mean units.Quantity `mapstructure:"mean"`
}

func defaultExponential() Family {
	return &Exponential{Mean: units.Scalar(1)}
}

func (e *Exponential) Type() string {
	return TypeExponential
}

func (e *Exponential) Streams() int {
	return 1
}

func (e *Exponential) Validate(owner string, unit units.Kind) error {
	c := newChecker(owner, unit)
	c.quantity("Mean", &e.Mean)
	c.positive("Mean", e.Mean.Value)
	c.representable("Mean", "small enough for finite samples", e.Mean.Value,
		e.Mean.Value*maxExponential)
	return c.err
}

func (e *Exponential) Seed(s []*rng.Stream) {
	e.rng = s[0]
}

// Next inverts the CDF. Uniform never returns 0, so the log is finite.
func (e *Exponential) Next() float64 {
	return -e.Mean.Value * math.Log(e.rng.Uniform())
}

func (e *Exponential) MeanValue() float64 {
	return e.Mean.Value
}

func (e *Exponential) StdDev() float64 {
	return e.Mean.Value
}
