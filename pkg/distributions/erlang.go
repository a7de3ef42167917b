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
	"strconv"

	"github.com/scylladb/simvar/pkg/rng"
	"github.com/scylladb/simvar/pkg/units"
)

// MaxErlangShape caps the number of uniforms one Erlang draw consumes. Larger
// shapes are better served by the gamma family.
const MaxErlangShape = 1000

// Erlang is the sum of Shape exponential variates with mean Mean/Shape.
// Shape is decoded as a float so that a fractional value is reported
// instead of truncated.
type Erlang struct {
	rng *rng.Stream

	Mean  units.Quantity `mapstructure:"mean"`
	Shape float64        `mapstructure:"shape"`
}

func defaultErlang() Family {
	return &Erlang{Mean: units.Scalar(1), Shape: 1}
}

func (e *Erlang) Type() string {
	return TypeErlang
}

func (e *Erlang) Streams() int {
	return 1
}

func (e *Erlang) Validate(owner string, unit units.Kind) error {
	c := newChecker(owner, unit)
	c.quantity("Mean", &e.Mean)
	c.positive("Mean", e.Mean.Value)
	if c.finite("Shape", e.Shape) {
		c.bound(e.Shape == math.Trunc(e.Shape), "Shape", "a whole number", e.Shape)
		c.bound(e.Shape >= 1, "Shape", ">= 1", e.Shape)
		c.bound(e.Shape <= MaxErlangShape, "Shape", "<= "+strconv.Itoa(MaxErlangShape), e.Shape)
	}
	c.representable("Mean", "small enough for finite samples", e.Mean.Value,
		e.Mean.Value*maxExponential)
	return c.err
}

func (e *Erlang) Seed(s []*rng.Stream) {
	e.rng = s[0]
}

func (e *Erlang) Next() float64 {
	// Sum of logs instead of the log of the product, which underflows for
	// large shapes.
	var sum float64
	for range int(e.Shape) {
		sum += math.Log(e.rng.Uniform())
	}
	return -e.Mean.Value / e.Shape * sum
}

func (e *Erlang) MeanValue() float64 {
	return e.Mean.Value
}

func (e *Erlang) StdDev() float64 {
	return e.Mean.Value / math.Sqrt(e.Shape)
}
