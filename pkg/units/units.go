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

package units

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/scylladb/simvar/pkg/simerror"
)

type Kind string

const (
	Unspecified   Kind = ""
	Dimensionless Kind = "dimensionless"
	Time          Kind = "time"
	Distance      Kind = "distance"
	Speed         Kind = "speed"
	Rate          Kind = "rate"
	Mass          Kind = "mass"
	Volume        Kind = "volume"
	Energy        Kind = "energy"
	Power         Kind = "power"
	Cost          Kind = "cost"
)

var known = map[Kind]struct{}{
	Dimensionless: {},
	Time:          {},
	Distance:      {},
	Speed:         {},
	Rate:          {},
	Mass:          {},
	Volume:        {},
	Energy:        {},
	Power:         {},
	Cost:          {},
}

// ParseKind accepts a unit kind name case-insensitively. An empty name means
// dimensionless.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if k == Unspecified {
		return Dimensionless, nil
	}

	if _, ok := known[k]; !ok {
		return Unspecified, errors.Errorf("unknown unit kind %q", name)
	}

	return k, nil
}

// Quantity is a scalar tagged with the kind of unit it is expressed in. An
// unspecified kind inherits the kind of the distribution that owns it.
type Quantity struct {
	Kind  Kind    `mapstructure:"unit" json:"unit,omitempty"`
	Value float64 `mapstructure:"value" json:"value"`
}

func Scalar(v float64) Quantity {
	return Quantity{Value: v}
}

func Of(v float64, k Kind) Quantity {
	return Quantity{Value: v, Kind: k}
}

// ParseQuantity reads "<number>" or "<number> <kind>", the form String
// produces.
func ParseQuantity(s string) (Quantity, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Quantity{}, errors.Errorf("invalid quantity %q, expected \"<number> [unit]\"", s)
	}

	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Quantity{}, errors.Wrapf(err, "invalid quantity %q", s)
	}

	if len(fields) == 1 {
		return Scalar(v), nil
	}

	kind, err := ParseKind(fields[1])
	if err != nil {
		return Quantity{}, errors.Wrapf(err, "invalid quantity %q", s)
	}

	return Of(v, kind), nil
}

func (q Quantity) String() string {
	if q.Kind == Unspecified || q.Kind == Dimensionless {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Kind)
}

// Resolve fills in an unspecified kind with want and reports a configuration
// error when an explicit kind differs from it.
func Resolve(owner, parameter string, q Quantity, want Kind) (Quantity, error) {
	if q.Kind == Unspecified {
		q.Kind = want
		return q, nil
	}

	if q.Kind != want {
		return q, simerror.Invalid(owner, parameter, "has unit kind %s, expected %s", q.Kind, want)
	}

	return q, nil
}

// DecodeHook lets mapstructure decode a bare number or a "<number> <kind>"
// string into a Quantity. Maps fall through to the struct decoder.
func DecodeHook(_, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Quantity{}) {
		return data, nil
	}

	switch v := data.(type) {
	case float64:
		return Scalar(v), nil
	case float32:
		return Scalar(float64(v)), nil
	case int:
		return Scalar(float64(v)), nil
	case int64:
		return Scalar(float64(v)), nil
	case uint64:
		return Scalar(float64(v)), nil
	case string:
		return ParseQuantity(v)
	default:
		return data, nil
	}
}
