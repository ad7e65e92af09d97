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

// CountLessThanAndEqual returns the number of entries strictly better than
// thresh (nLt) and the number equal to it (nEq). These drive the bisection
// classification in PartitionFuzzyMedian3.
func CountLessThanAndEqual[T hwy.Lanes](cmp Comparator[T], vals []T, thresh T) (nLt, nEq int) {
	for _, v := range vals {
		switch {
		case cmp.Better(v, thresh):
			nLt++
		case v == thresh:
			nEq++
		}
	}
	return nLt, nEq
}

// CompressArray compacts vals and ids in place, keeping every entry
// strictly better than thresh plus up to nEq entries equal to it, and
// returns the number of entries kept. Kept entries are swapped forward, so
// the dropped ones end up in vals[wp:] and vals stays a permutation of its
// input. vals and ids must have equal length.
func CompressArray[T hwy.Lanes, I any](cmp Comparator[T], vals []T, ids []I, thresh T, nEq int) int {
	wp := 0
	budget := nEq
	for i := range vals {
		switch {
		case cmp.Better(vals[i], thresh):
			vals[wp], vals[i] = vals[i], vals[wp]
			ids[wp], ids[i] = ids[i], ids[wp]
			wp++
		case vals[i] == thresh && budget > 0:
			vals[wp], vals[i] = vals[i], vals[wp]
			ids[wp], ids[i] = ids[i], ids[wp]
			wp++
			budget--
		}
	}
	return wp
}
