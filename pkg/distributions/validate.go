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

	"go.uber.org/multierr"

	"github.com/scylladb/simvar/pkg/rng"
	"github.com/scylladb/simvar/pkg/simerror"
	"github.com/scylladb/simvar/pkg/units"
)

var (
	// maxExponential bounds -ln(u) over every value a stream returns.
	maxExponential = -math.Log(rng.MinUniform)

	// maxPolar bounds |z| from polar. The smallest nonzero |2u-1| is
	// 2*MinUniform, so w never drops below its square, and |z| is at most
	// sqrt(-2 ln w).
	maxPolar = math.Sqrt(-4 * math.Log(2*rng.MinUniform))
)

// checker collects every parameter violation of one distribution.
type checker struct {
	err   error
	owner string
	unit  units.Kind
}

func newChecker(owner string, unit units.Kind) *checker {
	return &checker{owner: owner, unit: unit}
}

func (c *checker) fail(err error) {
	c.err = multierr.Append(c.err, err)
}

// quantity resolves q against the distribution's unit kind.
func (c *checker) quantity(param string, q *units.Quantity) {
	c.resolve(param, q, c.unit)
}

func (c *checker) dimensionless(param string, q *units.Quantity) {
	c.resolve(param, q, units.Dimensionless)
}

func (c *checker) resolve(param string, q *units.Quantity, want units.Kind) {
	resolved, err := units.Resolve(c.owner, param, *q, want)
	if err != nil {
		c.fail(err)
		return
	}
	*q = resolved
}

func (c *checker) finite(param string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.fail(simerror.OutOfRange(c.owner, param, "finite", v))
		return false
	}
	return true
}

func (c *checker) positive(param string, v float64) {
	if c.finite(param, v) && v <= 0 {
		c.fail(simerror.OutOfRange(c.owner, param, "> 0", v))
	}
}

func (c *checker) nonNegative(param string, v float64) {
	if c.finite(param, v) && v < 0 {
		c.fail(simerror.OutOfRange(c.owner, param, ">= 0", v))
	}
}

func (c *checker) bound(ok bool, param, bound string, v any) {
	if !ok {
		c.fail(simerror.OutOfRange(c.owner, param, bound, v))
	}
}

// representable fails param unless every result is a finite float64. The
// results are the analytic moments and the largest possible draw, so it only
// runs once the range checks passed.
func (c *checker) representable(param, bound string, value any, results ...float64) {
	if c.err != nil {
		return
	}

	for _, r := range results {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			c.fail(simerror.OutOfRange(c.owner, param, bound, value))
			return
		}
	}
}
