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

type Uniform struct {
	rng *rng.Stream

	Lower units.Quantity `mapstructure:"lower"`
	Upper units.Quantity `mapstructure:"upper"`
}

func defaultUniform() Family {
	return &Uniform{
		Lower: units.Scalar(0),
		Upper: units.Scalar(1),
	}
}

func (u *Uniform) Type() string {
	return TypeUniform
}

func (u *Uniform) Streams() int {
	return 1
}

func (u *Uniform) Validate(owner string, unit units.Kind) error {
	c := newChecker(owner, unit)
	c.quantity("Lower", &u.Lower)
	c.quantity("Upper", &u.Upper)
	if c.finite("Lower", u.Lower.Value) && c.finite("Upper", u.Upper.Value) {
		c.bound(u.Lower.Value < u.Upper.Value, "Upper", "> Lower", u.Upper.Value)
	}
	c.representable("Upper", "within MaxFloat64 of Lower", u.Upper.Value, u.Upper.Value-u.Lower.Value)
	return c.err
}

func (u *Uniform) DefaultMinValue() float64 {
	return math.Inf(-1)
}

func (u *Uniform) Seed(s []*rng.Stream) {
	u.rng = s[0]
}

func (u *Uniform) Next() float64 {
	return u.Lower.Value + (u.Upper.Value-u.Lower.Value)*u.rng.Uniform()
}

func (u *Uniform) MeanValue() float64 {
	return (u.Lower.Value + u.Upper.Value) / 2
}

func (u *Uniform) StdDev() float64 {
	return (u.Upper.Value - u.Lower.Value) / math.Sqrt(12)
}
