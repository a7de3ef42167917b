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

package streams

import (
	"math"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/scylladb/simvar/pkg/rng"
	"github.com/scylladb/simvar/pkg/simerror"
)

const (
	DefaultFirstStream uint64 = 1
	MaxStream          uint64 = math.MaxInt32
	MaxSubstream       uint64 = rng.MaxSubstream
)

type (
	// Assignment is the block of consecutive stream numbers handed to one
	// owner. Every stream of the block uses the same substream.
	Assignment struct {
		Owner     string
		Base      uint64
		Count     int
		Substream uint64
	}

	// Registry hands out stream coordinates for one model. Stream numbers
	// come from a counter that only moves forward until Reset; the substream
	// is the replication number.
	Registry struct {
		logger      *zap.Logger
		assignments map[string]Assignment
		first       uint64
		next        uint64
		substream   uint64
	}

	Option func(*Registry)
)

func WithFirstStream(n uint64) Option {
	return func(r *Registry) {
		r.first = n
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger:      zap.NewNop(),
		assignments: make(map[string]Assignment),
		first:       DefaultFirstStream,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.next = r.first
	return r
}

// Streams builds fresh generators positioned at the start of every stream
// of the assignment.
func (a Assignment) Streams() []*rng.Stream {
	out := make([]*rng.Stream, a.Count)
	for i := range out {
		out[i] = rng.New(a.Base+uint64(i), a.Substream)
	}
	return out
}

// Contains reports whether stream falls inside the assignment.
func (a Assignment) Contains(stream uint64) bool {
	return a.Count > 0 && stream >= a.Base && stream < a.Base+uint64(a.Count)
}

func (a Assignment) overlaps(b Assignment) bool {
	if a.Count == 0 || b.Count == 0 {
		return false
	}
	return a.Base < b.Base+uint64(b.Count) && b.Base < a.Base+uint64(a.Count)
}

// SetSubstream selects the replication. It applies to every assignment made
// after the call and to the ones already made.
func (r *Registry) SetSubstream(substream uint64) error {
	if substream > MaxSubstream {
		return simerror.OutOfRange("registry", "Substream", "<= "+strconv.FormatUint(MaxSubstream, 10), substream)
	}

	r.substream = substream
	for owner, a := range r.assignments {
		a.Substream = substream
		r.assignments[owner] = a
	}

	return nil
}

func (r *Registry) Substream() uint64 {
	return r.substream
}

// Assign hands the next count stream numbers to owner.
func (r *Registry) Assign(owner string, count int) (Assignment, error) {
	if err := r.checkOwner(owner, count); err != nil {
		return Assignment{}, err
	}

	// Skip over blocks reserved with AssignAt.
	for {
		if !fits(r.next, count) {
			return Assignment{}, &simerror.StreamExhaustedError{
				Owner:     owner,
				Requested: uint64(count),
				Next:      r.next,
				Max:       MaxStream,
			}
		}

		clash, ok := r.overlapping(Assignment{Owner: owner, Base: r.next, Count: count})
		if !ok {
			break
		}
		r.next = clash.Base + uint64(clash.Count)
	}

	a := r.record(Assignment{Owner: owner, Base: r.next, Count: count})
	r.next += uint64(count)

	return a, nil
}

// AssignAt hands the fixed stream numbers [base, base+count) to owner. It
// fails when any of them is already in use.
func (r *Registry) AssignAt(owner string, base uint64, count int) (Assignment, error) {
	if err := r.checkOwner(owner, count); err != nil {
		return Assignment{}, err
	}

	if !fits(base, count) {
		return Assignment{}, &simerror.StreamExhaustedError{
			Owner:     owner,
			Requested: uint64(count),
			Next:      base,
			Max:       MaxStream,
		}
	}

	candidate := Assignment{Owner: owner, Base: base, Count: count}
	if clash, ok := r.overlapping(candidate); ok {
		return Assignment{}, simerror.Invalid(owner, "RandomSeed",
			"stream %d is already assigned to %s", max(base, clash.Base), clash.Owner)
	}

	return r.record(candidate), nil
}

func fits(base uint64, count int) bool {
	if count == 0 {
		return true
	}
	return base <= MaxStream && MaxStream-base >= uint64(count-1)
}

func (r *Registry) checkOwner(owner string, count int) error {
	if count < 0 {
		return simerror.OutOfRange(owner, "stream count", ">= 0", count)
	}

	if prev, ok := r.assignments[owner]; ok {
		return simerror.Invalid(owner, "", "streams already assigned (%d from %d), reset the registry first",
			prev.Count, prev.Base)
	}

	return nil
}

func (r *Registry) overlapping(candidate Assignment) (Assignment, bool) {
	for _, a := range r.assignments {
		if a.overlaps(candidate) {
			return a, true
		}
	}
	return Assignment{}, false
}

func (r *Registry) record(a Assignment) Assignment {
	a.Substream = r.substream
	r.assignments[a.Owner] = a

	r.logger.Debug("streams assigned",
		zap.String("owner", a.Owner),
		zap.Uint64("base", a.Base),
		zap.Int("count", a.Count),
		zap.Uint64("substream", a.Substream),
	)

	return a
}

// Lookup returns the assignment of owner.
func (r *Registry) Lookup(owner string) (Assignment, bool) {
	a, ok := r.assignments[owner]
	return a, ok
}

// Assignments returns every assignment ordered by base stream.
func (r *Registry) Assignments() []Assignment {
	out := make([]Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Base == out[j].Base {
			return out[i].Owner < out[j].Owner
		}
		return out[i].Base < out[j].Base
	})
	return out
}

// Len returns the number of streams handed out.
func (r *Registry) Len() int {
	total := 0
	for _, a := range r.assignments {
		total += a.Count
	}
	return total
}

// Reset forgets every assignment and rewinds the counter. The substream is
// kept.
func (r *Registry) Reset() {
	clear(r.assignments)
	r.next = r.first
}
