// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package quantile

import "github.com/vectorindex/quantile/hwy"

// Median3 returns the median of a, b, x under cmp's ordering, used to pick
// a pivot that tolerates an already-sorted or reverse-sorted run without
// degrading to worst-case behavior.
func Median3[T hwy.Lanes](cmp Comparator[T], a, b, x T) T {
	if cmp.Better(b, a) {
		a, b = b, a
	}
	if cmp.Better(x, b) {
		b = x
		if cmp.Better(b, a) {
			b = a
		}
	}
	return b
}
