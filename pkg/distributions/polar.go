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
)

// polar returns a standard normal variate and the number of candidate points
// it drew. A point (v1, v2) is accepted when it lies inside the unit disk and
// is not the origin; acceptance probability is pi/4.
func polar(rng1, rng2 *rng.Stream) (float64, int) {
	for n := 1; ; n++ {
		v1 := 2*rng1.Uniform() - 1
		v2 := 2*rng2.Uniform() - 1

		w := v1*v1 + v2*v2
		if w > 1 || w == 0 {
			continue
		}

		return v1 * math.Sqrt(-2*math.Log(w)/w), n
	}
}
