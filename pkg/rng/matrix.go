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

package rng

type (
	matrix [3][3]uint64
	vector [3]uint64
)

var identity = matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Entries stay below m < 2^32, so a single product fits in uint64.
func mulMod(a, b, m uint64) uint64 {
	return a * b % m
}

func (a matrix) mul(b matrix, m uint64) matrix {
	var c matrix
	for i := range 3 {
		for j := range 3 {
			var sum uint64
			for k := range 3 {
				sum += mulMod(a[i][k], b[k][j], m)
			}
			c[i][j] = sum % m
		}
	}
	return c
}

func (a matrix) apply(v vector, m uint64) vector {
	var out vector
	for i := range 3 {
		var sum uint64
		for k := range 3 {
			sum += mulMod(a[i][k], v[k], m)
		}
		out[i] = sum % m
	}
	return out
}

// pow2 returns a^(2^e) mod m.
func (a matrix) pow2(e int, m uint64) matrix {
	out := a
	for range e {
		out = out.mul(out, m)
	}
	return out
}

// pow returns a^n mod m.
func (a matrix) pow(n, m uint64) matrix {
	out := identity
	base := a
	for n > 0 {
		if n&1 == 1 {
			out = out.mul(base, m)
		}
		base = base.mul(base, m)
		n >>= 1
	}
	return out
}
