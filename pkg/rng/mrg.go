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

// Package rng implements the MRG32k3a combined multiple-recursive generator
// of P. L'Ecuyer ("Good parameters and implementations for combined multiple
// recursive random number generators", Operations Research 47(1), 1999).
//
// A Stream is addressed by a (stream, substream) pair. Its initial state is
// the package seed advanced by stream*2^127 + substream*2^76 steps, so
// streams never overlap and every substream holds 2^76 values before running
// into the next one. All arithmetic is integer, which keeps a sequence
// identical on every platform.
package rng

import (
	"math/rand/v2"
)

const (
	m1   = 4294967087
	m2   = 4294944443
	a12  = 1403580
	a13n = 810728
	a21  = 527612
	a23n = 1370589

	norm = 1.0 / (m1 + 1)

	// MinUniform and MaxUniform are the extreme values Uniform returns.
	MinUniform = norm
	MaxUniform = m1 * norm

	// StreamJump and SubstreamJump are the log2 distances between
	// consecutive streams and consecutive substreams.
	StreamJump    = 127
	SubstreamJump = 76

	// MaxSubstream is the last substream that does not run into the next
	// stream.
	MaxSubstream = 1<<(StreamJump-SubstreamJump) - 1

	seedValue = 12345
)

var _ rand.Source = (*Stream)(nil)

var (
	// Transition matrices of both components for state (x[n-3], x[n-2], x[n-1]).
	a1 = matrix{{0, 1, 0}, {0, 0, 1}, {m1 - a13n, a12, 0}}
	a2 = matrix{{0, 1, 0}, {0, 0, 1}, {m2 - a23n, 0, a21}}

	a1Stream    = a1.pow2(StreamJump, m1)
	a2Stream    = a2.pow2(StreamJump, m2)
	a1Substream = a1.pow2(SubstreamJump, m1)
	a2Substream = a2.pow2(SubstreamJump, m2)
)

// Stream is a single MRG32k3a sequence. It is not safe for concurrent use;
// every distribution owns its streams exclusively.
type Stream struct {
	s         [6]int64
	stream    uint64
	substream uint64
}

// New returns a stream positioned at the start of (stream, substream).
func New(stream, substream uint64) *Stream {
	s := &Stream{}
	s.SetSeed(stream, substream)
	return s
}

// SetSeed rewinds the generator to the start of (stream, substream).
func (s *Stream) SetSeed(stream, substream uint64) {
	v1 := vector{seedValue, seedValue, seedValue}
	v2 := vector{seedValue, seedValue, seedValue}

	v1 = a1Stream.pow(stream, m1).apply(v1, m1)
	v2 = a2Stream.pow(stream, m2).apply(v2, m2)
	v1 = a1Substream.pow(substream, m1).apply(v1, m1)
	v2 = a2Substream.pow(substream, m2).apply(v2, m2)

	for i := range 3 {
		s.s[i] = int64(v1[i])
		s.s[i+3] = int64(v2[i])
	}

	s.stream = stream
	s.substream = substream
}

// Coordinates returns the (stream, substream) pair the generator was seeded with.
func (s *Stream) Coordinates() (uint64, uint64) {
	return s.stream, s.substream
}

// next advances both components and returns the combined value in [1, m1].
func (s *Stream) next() int64 {
	p1 := (a12*s.s[1] - a13n*s.s[0]) % m1
	if p1 < 0 {
		p1 += m1
	}
	s.s[0], s.s[1], s.s[2] = s.s[1], s.s[2], p1

	p2 := (a21*s.s[5] - a23n*s.s[3]) % m2
	if p2 < 0 {
		p2 += m2
	}
	s.s[3], s.s[4], s.s[5] = s.s[4], s.s[5], p2

	if p1 > p2 {
		return p1 - p2
	}

	return p1 - p2 + m1
}

// Uniform returns the next variate in the open interval (0, 1).
func (s *Stream) Uniform() float64 {
	return float64(s.next()) * norm
}

// Uint64 packs two consecutive outputs into 64 bits so a Stream can act as
// a math/rand/v2 Source. Each half is in [0, m1), slightly short of 2^32.
func (s *Stream) Uint64() uint64 {
	hi := uint64(s.next() - 1)
	lo := uint64(s.next() - 1)
	return hi<<32 | lo
}
