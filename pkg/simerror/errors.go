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

// Package simerror holds the error types raised while a model is loaded and
// initialized. Sampling itself never returns errors.
package simerror

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a model input that can not be accepted: a
// parameter outside its valid range, a unit mismatch, a duplicate stream
// assignment or an unknown distribution type.
type ConfigurationError struct {
	Value     any    `json:"value,omitempty"`
	Owner     string `json:"owner"`
	Parameter string `json:"parameter,omitempty"`
	Bound     string `json:"bound,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (e *ConfigurationError) Error() string {
	var sb strings.Builder

	if e.Owner != "" {
		sb.WriteString(e.Owner)
		sb.WriteString(": ")
	}

	switch {
	case e.Parameter != "" && e.Bound != "":
		sb.WriteString(fmt.Sprintf("%s must be %s, got %v", e.Parameter, e.Bound, e.Value))
	case e.Parameter != "":
		sb.WriteString(e.Parameter)
		sb.WriteString(" ")
		sb.WriteString(e.Reason)
	default:
		sb.WriteString(e.Reason)
	}

	return sb.String()
}

// OutOfRange builds the error for a parameter that violates bound.
func OutOfRange(owner, parameter, bound string, value any) *ConfigurationError {
	return &ConfigurationError{
		Owner:     owner,
		Parameter: parameter,
		Bound:     bound,
		Value:     value,
	}
}

// Invalid builds a free-form configuration error.
func Invalid(owner, parameter, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Owner:     owner,
		Parameter: parameter,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// StreamExhaustedError is returned when the model-wide stream counter would
// run past the addressable stream space.
type StreamExhaustedError struct {
	Owner     string `json:"owner"`
	Requested uint64 `json:"requested"`
	Next      uint64 `json:"next"`
	Max       uint64 `json:"max"`
}

func (e *StreamExhaustedError) Error() string {
	return fmt.Sprintf("%s: stream numbers exhausted, %d streams requested from %d, maximum stream number is %d",
		e.Owner, e.Requested, e.Next, e.Max)
}
