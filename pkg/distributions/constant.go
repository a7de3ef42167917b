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

// Constant always returns Value and owns no streams.
type Constant struct {
	Value units.Quantity `mapstructure:"value"`
}

func defaultConstant() Family {
	return &Constant{Value: units.Scalar(0)}
}

func (c *Constant) Type() string {
	return TypeConstant
}

func (c *Constant) Streams() int {
	return 0
}

func (c *Constant) Validate(owner string, unit units.Kind) error {
	ch := newChecker(owner, unit)
	ch.quantity("Value", &c.Value)
	ch.finite("Value", c.Value.Value)
	return ch.err
}

func (c *Constant) DefaultMinValue() float64 {
	return math.Inf(-1)
}

func (c *Constant) Seed([]*rng.Stream) {}

func (c *Constant) Next() float64 {
	return c.Value.Value
}

func (c *Constant) MeanValue() float64 {
	return c.Value.Value
}

func (c *Constant) StdDev() float64 {
	return 0
}
