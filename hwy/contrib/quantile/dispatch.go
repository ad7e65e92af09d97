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

import (
	"unsafe"

	"github.com/vectorindex/quantile/hwy"
)

// simdAlignment is the minimum slice alignment the SIMD fast path
// requires, matching the AVX2 register width the packed-mask compress in
// SimdCompressArray was grounded on.
const simdAlignment = 32

func isAligned(p unsafe.Pointer, align uintptr) bool {
	return uintptr(p)%align == 0
}

// PartitionFuzzy partitions vals (and the parallel ids) in place so that
// some q in [qMin, qMax] of the best entries under c end up in vals[:q],
// and returns the separating threshold. *qOut, if non-nil, receives q.
//
// When T is uint16, the runtime has SIMD available, and vals is 32-byte
// aligned, this dispatches to the SIMD fast path (FindMinimax plus
// simdPartitionFuzzyWithBounds); otherwise it falls back to
// PartitionFuzzyMedian3. Both paths implement the same contract and must
// agree on (q, thresh) for identical input, aligned or not.
func PartitionFuzzy[T hwy.Lanes, I any](c Comparator[T], vals []T, ids []I, qMin, qMax int, qOut *int) T {
	if u16vals, ok := any(vals).([]uint16); ok {
		if hwy.HasSIMD() && len(u16vals) > 0 && isAligned(unsafe.Pointer(&u16vals[0]), simdAlignment) {
			u16cmp := Comparator[uint16]{
				IsMax:      c.IsMax,
				Neutral:    any(c.Neutral).(uint16),
				RevNeutral: any(c.RevNeutral).(uint16),
				better: func(a, b uint16) bool {
					return c.better(any(a).(T), any(b).(T))
				},
				nextAfter: func(t uint16) uint16 {
					return any(c.nextAfter(any(t).(T))).(uint16)
				},
			}
			thresh, q := simdPartitionFuzzyCore(u16cmp, u16vals, ids, qMin, qMax, false, 0, 0)
			if qOut != nil {
				*qOut = q
			}
			return any(thresh).(T)
		}
	}
	return PartitionFuzzyMedian3(c, vals, ids, qMin, qMax, qOut)
}
