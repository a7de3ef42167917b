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

// LogNormal is scale*exp(N), N normal with NormalMean and
// NormalStandardDeviation. Scale carries the unit of the samples; the normal
// parameters are dimensionless.
//
// The normal variate comes from the polar method of Marsaglia and Bray,
// following A.M. Law, "Simulation Modeling and Analysis", 4th ed., p. 454.
type LogNormal struct {
	rng1 *rng.Stream
	rng2 *rng.Stream

	Scale                   units.Quantity `mapstructure:"scale"`
	NormalMean              float64        `mapstructure:"normal_mean"`
	NormalStandardDeviation float64        `mapstructure:"normal_standard_deviation"`
}

func defaultLogNormal() Family {
	return &LogNormal{
		Scale:                   units.Scalar(1),
		NormalMean:              0,
		NormalStandardDeviation: 1,
	}
}

func (l *LogNormal) Type() string {
	return TypeLogNormal
}

func (l *LogNormal) Streams() int {
	return 2
}

func (l *LogNormal) Validate(owner string, unit units.Kind) error {
	c := newChecker(owner, unit)
	c.quantity("Scale", &l.Scale)
	c.positive("Scale", l.Scale.Value)
	c.finite("NormalMean", l.NormalMean)
	c.nonNegative("NormalStandardDeviation", l.NormalStandardDeviation)

	mu, sd := l.NormalMean, l.NormalStandardDeviation
	c.representable("NormalMean", "small enough for finite samples", mu,
		l.Scale.Value*math.Exp(mu))
	c.representable("NormalStandardDeviation", "small enough for finite moments and samples", sd,
		l.MeanValue(), l.StdDev(), l.Scale.Value*math.Exp(mu+maxPolar*sd))
	return c.err
}

func (l *LogNormal) Seed(s []*rng.Stream) {
	l.rng1, l.rng2 = s[0], s[1]
}

func (l *LogNormal) Next() float64 {
	z, _ := polar(l.rng1, l.rng2)
	return l.Scale.Value * math.Exp(l.NormalMean+z*l.NormalStandardDeviation)
}

func (l *LogNormal) MeanValue() float64 {
	sd := l.NormalStandardDeviation
	return l.Scale.Value * math.Exp(l.NormalMean+sd*sd/2)
}

func (l *LogNormal) StdDev() float64 {
	sd := l.NormalStandardDeviation
	return l.MeanValue() * math.Sqrt(math.Exp(sd*sd)-1)
}
