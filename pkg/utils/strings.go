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

package utils

import (
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// AppendInteger appends the decimal form of integer to dst.
func AppendInteger[T constraints.Integer](dst []byte, integer T) []byte {
	if integer < 0 {
		return strconv.AppendInt(dst, int64(integer), 10)
	}
	return strconv.AppendUint(dst, uint64(integer), 10)
}

func FormatString[T constraints.Integer](dst []byte, integer T) string {
	conv := AppendInteger(dst[:0], integer)

	return unsafe.String(unsafe.SliceData(conv), len(conv))
}
