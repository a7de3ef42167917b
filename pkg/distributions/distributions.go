// Copyright 2019 ScyllaDB
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
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/mo"

	"github.com/scylladb/simvar/pkg/simerror"
	"github.com/scylladb/simvar/pkg/units"
)

const (
	TypeConstant    = "constant"
	TypeUniform     = "uniform"
	TypeTriangular  = "triangular"
	TypeExponential = "exponential"
	TypeErlang      = "erlang"
	TypeGamma       = "gamma"
	TypeWeibull     = "weibull"
	TypeNormal      = "normal"
	TypeLogNormal   = "lognormal"
)

var families = map[string]func() Family{
	TypeConstant:    defaultConstant,
	TypeUniform:     defaultUniform,
	TypeTriangular:  defaultTriangular,
	TypeExponential: defaultExponential,
	TypeErlang:      defaultErlang,
	TypeGamma:       defaultGamma,
	TypeWeibull:     defaultWeibull,
	TypeNormal:      defaultNormal,
	TypeLogNormal:   defaultLogNormal,
}

// Spec is the configuration of one distribution as it comes from a model
// file. Params override the family defaults; keys the family does not know
// are rejected.
type Spec struct {
	Params     map[string]any
	MinValue   mo.Option[float64]
	MaxValue   mo.Option[float64]
	RandomSeed mo.Option[uint64]
	Name       string
	Type       string
	Unit       string
}

// Types lists the supported family names.
func Types() []string {
	out := make([]string, 0, len(families))
	for name := range families {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// NewFamily returns the family registered under name with its default
// parameters.
func NewFamily(name string) (Family, bool) {
	ctor, ok := families[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// New builds a validated distribution from spec.
func New(spec Spec) (*Distribution, error) {
	owner := spec.Name
	if owner == "" {
		owner = "distribution"
	}

	family, ok := NewFamily(spec.Type)
	if !ok {
		return nil, simerror.Invalid(owner, "Type", "%q is not one of %s", spec.Type, strings.Join(Types(), ", "))
	}

	unit, err := units.ParseKind(spec.Unit)
	if err != nil {
		return nil, simerror.Invalid(owner, "Unit", "%s", err)
	}

	if err = decodeParams(family, spec.Params); err != nil {
		return nil, simerror.Invalid(owner, "Params", "%s", err)
	}

	opts := []Option{WithUnit(unit)}
	if v, ok := spec.MinValue.Get(); ok {
		opts = append(opts, WithMinValue(v))
	}
	if v, ok := spec.MaxValue.Get(); ok {
		opts = append(opts, WithMaxValue(v))
	}
	if v, ok := spec.RandomSeed.Get(); ok {
		opts = append(opts, WithRandomSeed(v))
	}

	return NewDistribution(spec.Name, family, opts...)
}

func decodeParams(family Family, params map[string]any) error {
	if len(params) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(units.DecodeHook),
		ErrorUnused: true,
		Result:      family,
	})
	if err != nil {
		return err
	}

	return dec.Decode(params)
}
