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

// samplePrime is a prime close to but not dividing common small array
// lengths, used as a stride so repeated sampling touches scattered indices
// instead of a contiguous run that could all share one value.
const samplePrime = 6700417

// SampleThresholdMedian3 walks vals at a prime stride, collecting up to
// three values strictly inside the open bracket (inf, sup), and returns
// their median. It returns inf itself when no interior value is found,
// the sentinel PartitionFuzzyMedian3 uses to detect no further progress
// is possible.
func SampleThresholdMedian3[T hwy.Lanes](cmp Comparator[T], vals []T, inf, sup T) T {
	n := len(vals)
	if n == 0 {
		return inf
	}

	var collected [3]T
	count := 0
	for i := 0; i < n && count < 3; i++ {
		idx := (i * samplePrime) % n
		v := vals[idx]
		if cmp.Better(inf, v) && cmp.Better(v, sup) {
			collected[count] = v
			count++
		}
	}

	switch count {
	case 0:
		return inf
	case 3:
		return Median3(cmp, collected[0], collected[1], collected[2])
	default:
		return collected[0]
	}
}
