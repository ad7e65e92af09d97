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

// maxBisectionIterations bounds the threshold-refinement loop in
// PartitionFuzzyMedian3. Real inputs converge in a handful of rounds;
// this is a backstop against pathological or adversarial data, not a
// performance tuning knob.
const maxBisectionIterations = 200

// PartitionFuzzyMedian3 partitions vals (and the parallel ids) in place so
// that some q in [qMin, qMax] of the best entries (per cmp) end up in
// vals[:q], and returns the threshold value that separates them. *qOut, if
// non-nil, receives the chosen q.
//
// qMin == 0 is a precondition edge case: nothing needs to be kept, so
// *qOut is set to a sentinel derived from cmp's best-possible value and
// the zero value of T is returned without touching vals. qMax >= len(vals)
// is the dual edge case: everything is kept, *qOut is set to qMax, and
// cmp.Neutral (the worst-possible value) is returned as a threshold that
// accepts every entry.
func PartitionFuzzyMedian3[T hwy.Lanes, I any](cmp Comparator[T], vals []T, ids []I, qMin, qMax int, qOut *int) T {
	n := len(vals)

	if qMin == 0 {
		if qOut != nil {
			*qOut = sentinelInt(cmp.RevNeutral)
		}
		var zero T
		return zero
	}
	if qMax >= n {
		if qOut != nil {
			*qOut = qMax
		}
		return cmp.Neutral
	}
	if n < 3 {
		panic("quantile: PartitionFuzzyMedian3 requires at least 3 elements outside the qMin==0/qMax>=n edge cases")
	}
	if qMin > qMax {
		panic("quantile: PartitionFuzzyMedian3 requires qMin <= qMax")
	}

	inf := cmp.RevNeutral
	sup := cmp.Neutral
	thresh := Median3(cmp, vals[0], vals[n/2], vals[n-1])

	q := qMin
	nLt, nEq := 0, 0

	for iter := 0; iter < maxBisectionIterations; iter++ {
		nLt, nEq = CountLessThanAndEqual(cmp, vals, thresh)

		if nLt <= qMin && nLt+nEq >= qMin {
			q = qMin
			break
		}
		if qMin < nLt && nLt <= qMax {
			q = nLt
			break
		}

		if nLt+nEq < qMin {
			inf = thresh
		} else { // nLt > qMax
			sup = thresh
		}

		next := SampleThresholdMedian3(cmp, vals, inf, sup)
		if next == inf {
			break
		}
		thresh = next
	}

	nEq1 := q - nLt
	if nEq1 < 0 {
		// More than q entries tie the chosen threshold: re-anchor on the
		// minimal valid rank and step the threshold one unit worse so the
		// tie budget matches what compress can actually deliver.
		q = qMin
		thresh = cmp.NextAfter(thresh)
		nEq1 = q
	}
	if nEq1 > nEq {
		panic("quantile: tie budget exceeds the number of ties observed")
	}

	wp := CompressArray(cmp, vals, ids, thresh, nEq1)
	if wp != q {
		panic("quantile: compress did not reach the expected rank")
	}

	if qOut != nil {
		*qOut = q
	}
	return thresh
}
