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

	"github.com/samber/mo"
	"go.uber.org/multierr"

	"github.com/scylladb/simvar/pkg/rng"
	"github.com/scylladb/simvar/pkg/simerror"
	"github.com/scylladb/simvar/pkg/streams"
	"github.com/scylladb/simvar/pkg/units"
	"github.com/scylladb/simvar/pkg/utils"
)

type (
	// Family is the sampling algorithm and the closed-form moments of one
	// statistical family. Validate runs once before Seed; parameters are
	// read-only afterwards.
	Family interface {
		Type() string
		// Streams is the number of independent random streams Next consumes.
		Streams() int
		Validate(owner string, unit units.Kind) error
		Seed(streams []*rng.Stream)
		Next() float64
		MeanValue() float64
		StdDev() float64
	}

	// floored is implemented by families whose natural lower bound is not 0.
	floored interface {
		DefaultMinValue() float64
	}

	// Distribution is the contract every model component samples through. It
	// owns the streams of its family exclusively and is not safe for
	// concurrent use; a replication builds its own instances.
	Distribution struct {
		family     Family
		seed       mo.Option[uint64]
		name       string
		unit       units.Kind
		assignment streams.Assignment
		stats      Stats
		minValue   float64
		maxValue   float64
		ready      bool
	}

	options struct {
		minValue mo.Option[float64]
		maxValue mo.Option[float64]
		seed     mo.Option[uint64]
		unit     units.Kind
	}

	Option func(*options)
)

// WithUnit declares the unit kind of the samples. Scale-like parameters
// without an explicit kind inherit it.
func WithUnit(kind units.Kind) Option {
	return func(o *options) {
		o.unit = kind
	}
}

// WithMinValue sets the floor samples are clamped to.
func WithMinValue(v float64) Option {
	return func(o *options) {
		o.minValue = mo.Some(v)
	}
}

// WithMaxValue sets the ceiling samples are clamped to.
func WithMaxValue(v float64) Option {
	return func(o *options) {
		o.maxValue = mo.Some(v)
	}
}

// WithRandomSeed pins the first stream number instead of taking the next
// free one from the registry.
func WithRandomSeed(stream uint64) Option {
	return func(o *options) {
		o.seed = mo.Some(stream)
	}
}

// NewDistribution validates family and wraps it. Every invalid parameter is
// reported, combined into one error.
func NewDistribution(name string, family Family, opts ...Option) (*Distribution, error) {
	o := options{unit: units.Dimensionless}
	for _, opt := range opts {
		opt(&o)
	}

	if name == "" {
		return nil, simerror.Invalid("distribution", "Name", "must not be empty")
	}

	if family == nil {
		return nil, simerror.Invalid(name, "Type", "is missing")
	}

	if o.unit == units.Unspecified {
		o.unit = units.Dimensionless
	}

	err := family.Validate(name, o.unit)

	minValue := 0.0
	if f, ok := family.(floored); ok && err == nil {
		minValue = f.DefaultMinValue()
	}
	minValue = o.minValue.OrElse(minValue)
	maxValue := o.maxValue.OrElse(math.Inf(1))

	if math.IsNaN(minValue) {
		err = multierr.Append(err, simerror.OutOfRange(name, "MinValue", "a number", minValue))
	}
	if math.IsNaN(maxValue) {
		err = multierr.Append(err, simerror.OutOfRange(name, "MaxValue", "a number", maxValue))
	}
	if minValue > maxValue {
		err = multierr.Append(err, simerror.OutOfRange(name, "MaxValue", ">= MinValue", maxValue))
	}

	if err != nil {
		return nil, err
	}

	return &Distribution{
		family:   family,
		name:     name,
		unit:     o.unit,
		minValue: minValue,
		maxValue: maxValue,
		seed:     o.seed,
	}, nil
}

// Init binds the family to its streams. It is called once when the model is
// loaded and again for every replication, with a registry that was reset and
// moved to the replication's substream. Sample statistics start over.
func (d *Distribution) Init(reg *streams.Registry) error {
	n := d.family.Streams()

	var (
		a   streams.Assignment
		err error
	)

	if base, ok := d.seed.Get(); ok {
		a, err = reg.AssignAt(d.name, base, n)
	} else {
		a, err = reg.Assign(d.name, n)
	}

	if err != nil {
		return err
	}

	d.family.Seed(a.Streams())
	d.assignment = a
	d.stats = Stats{}
	d.ready = true

	return nil
}

// Sample draws the next value, clamped to [MinValue, MaxValue]. It advances
// the state of the owned streams.
func (d *Distribution) Sample() float64 {
	if !d.ready {
		panic("distribution " + d.name + " sampled before Init")
	}

	v := utils.Clamp(d.family.Next(), d.minValue, d.maxValue)

	d.stats.add(v)
	return v
}

// Mean is the analytic mean of the family. It ignores clamping and has no
// side effects.
func (d *Distribution) Mean() float64 {
	return d.family.MeanValue()
}

// StdDev is the analytic standard deviation of the family.
func (d *Distribution) StdDev() float64 {
	return d.family.StdDev()
}

func (d *Distribution) Name() string {
	return d.name
}

func (d *Distribution) Type() string {
	return d.family.Type()
}

func (d *Distribution) Unit() units.Kind {
	return d.unit
}

func (d *Distribution) MinValue() float64 {
	return d.minValue
}

func (d *Distribution) MaxValue() float64 {
	return d.maxValue
}

func (d *Distribution) Family() Family {
	return d.family
}

// RandomSeed is the fixed first stream number, if one was configured.
func (d *Distribution) RandomSeed() mo.Option[uint64] {
	return d.seed
}

// Assignment returns the streams bound by the last Init.
func (d *Distribution) Assignment() streams.Assignment {
	return d.assignment
}

// Stats summarizes the samples drawn since the last Init.
func (d *Distribution) Stats() Stats {
	return d.stats
}
