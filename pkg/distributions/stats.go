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

import "math"

// Stats is a running summary of drawn samples (Welford's update).
type Stats struct {
	Count int64   `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	m2    float64
}

func (s *Stats) add(v float64) {
	s.Count++
	if s.Count == 1 {
		s.Min, s.Max = v, v
	} else {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}

	delta := v - s.Mean
	s.Mean += delta / float64(s.Count)
	s.m2 += delta * (v - s.Mean)
}

// StdDev is the sample standard deviation, 0 for fewer than two samples.
func (s Stats) StdDev() float64 {
	if s.Count < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.Count-1))
}

// Merge combines two summaries as if every sample had been added to one.
func (s Stats) Merge(o Stats) Stats {
	switch {
	case o.Count == 0:
		return s
	case s.Count == 0:
		return o
	}

	n := s.Count + o.Count
	delta := o.Mean - s.Mean

	return Stats{
		Count: n,
		Mean:  s.Mean + delta*float64(o.Count)/float64(n),
		Min:   math.Min(s.Min, o.Min),
		Max:   math.Max(s.Max, o.Max),
		m2:    s.m2 + o.m2 + delta*delta*float64(s.Count)*float64(o.Count)/float64(n),
	}
}
