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

// MinMax returns the minimum and maximum of vals. It is a small
// supplement to the partitioning API: callers that want to bracket a
// SimdPartitionWithBounds call themselves (rather than letting SimdPartition
// call FindMinimax internally) can reuse this instead of scanning twice.
func MinMax[T hwy.Lanes](vals []T) (T, T) {
	n := len(vals)
	if n == 0 {
		var zero T
		return zero, zero
	}

	if u16vals, ok := any(vals).([]uint16); ok && hwy.HasSIMD() {
		smin, smax := FindMinimax(u16vals)
		return any(smin).(T), any(smax).(T)
	}

	lanes := hwy.MaxLanes[T]()
	minVec := hwy.Set(vals[0])
	maxVec := hwy.Set(vals[0])

	i := 0
	for ; lanes > 0 && i+lanes <= n; i += lanes {
		v := hwy.Load(vals[i:])
		minVec = hwy.Min(minVec, v)
		maxVec = hwy.Max(maxVec, v)
	}
	lo := hwy.ReduceMin(minVec)
	hi := hwy.ReduceMax(maxVec)

	for ; i < n; i++ {
		if vals[i] < lo {
			lo = vals[i]
		}
		if vals[i] > hi {
			hi = vals[i]
		}
	}
	return lo, hi
}
