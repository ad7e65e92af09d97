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
	"math"

	"github.com/vectorindex/quantile/hwy"
)

// Comparator carries the ordering and sentinel values a fuzzy partition
// operates under. IsMax selects "top-largest" (true) or "top-smallest"
// (false) semantics; everything else is derived from it.
//
// A Comparator is built once with TopSmallest or TopLargest and passed by
// value into the partition functions; it never needs to be mutated.
type Comparator[T hwy.Lanes] struct {
	IsMax bool

	// Neutral is the worst-possible T under this comparator: +Inf for
	// top-smallest, -Inf (or 0 for unsigned types) for top-largest.
	Neutral T

	// RevNeutral is the best-possible T under this comparator, i.e. the
	// Neutral of its dual. It anchors the "good" end of a bisection
	// bracket.
	RevNeutral T

	better    func(a, b T) bool
	nextAfter func(T) T
}

// Better reports whether a is strictly preferred over b under this
// comparator (smaller for top-smallest, larger for top-largest).
func (c Comparator[T]) Better(a, b T) bool {
	return c.better(a, b)
}

// NextAfter steps t one representable unit toward the "worse" side of the
// ordering: up for top-smallest, down for top-largest.
func (c Comparator[T]) NextAfter(t T) T {
	return c.nextAfter(t)
}

// TopSmallest builds a Comparator that prefers smaller values, the
// ordering used to keep the nearest neighbors by distance.
func TopSmallest[T hwy.Lanes]() Comparator[T] {
	return newComparator[T](false)
}

// TopLargest builds a Comparator that prefers larger values, the ordering
// used to keep the highest-scoring neighbors.
func TopLargest[T hwy.Lanes]() Comparator[T] {
	return newComparator[T](true)
}

func newComparator[T hwy.Lanes](isMax bool) Comparator[T] {
	return Comparator[T]{
		IsMax:      isMax,
		Neutral:    neutralValue[T](isMax),
		RevNeutral: neutralValue[T](!isMax),
		better:     betterFunc[T](isMax),
		nextAfter: func(t T) T {
			return nextAfterValue[T](t, isMax)
		},
	}
}

func betterFunc[T hwy.Lanes](isMax bool) func(a, b T) bool {
	if isMax {
		return func(a, b T) bool { return a > b }
	}
	return func(a, b T) bool { return a < b }
}

// neutralValue returns the worst-possible T when isMax is the comparator's
// own orientation (the comparator's Neutral), or the best-possible T when
// isMax is passed inverted (used to build RevNeutral).
func neutralValue[T hwy.Lanes](isMax bool) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		if isMax {
			return any(float32(math.Inf(-1))).(T)
		}
		return any(float32(math.Inf(1))).(T)
	case float64:
		if isMax {
			return any(math.Inf(-1)).(T)
		}
		return any(math.Inf(1)).(T)
	case int8:
		if isMax {
			return any(int8(math.MinInt8)).(T)
		}
		return any(int8(math.MaxInt8)).(T)
	case int16:
		if isMax {
			return any(int16(math.MinInt16)).(T)
		}
		return any(int16(math.MaxInt16)).(T)
	case int32:
		if isMax {
			return any(int32(math.MinInt32)).(T)
		}
		return any(int32(math.MaxInt32)).(T)
	case int64:
		if isMax {
			return any(int64(math.MinInt64)).(T)
		}
		return any(int64(math.MaxInt64)).(T)
	case uint8:
		if isMax {
			return any(uint8(0)).(T)
		}
		return any(uint8(math.MaxUint8)).(T)
	case uint16:
		if isMax {
			return any(uint16(0)).(T)
		}
		return any(uint16(math.MaxUint16)).(T)
	case uint32:
		if isMax {
			return any(uint32(0)).(T)
		}
		return any(uint32(math.MaxUint32)).(T)
	case uint64:
		if isMax {
			return any(uint64(0)).(T)
		}
		return any(uint64(math.MaxUint64)).(T)
	default:
		return zero
	}
}

// nextAfterValue steps v one representable unit in the direction that is
// "worse" for a comparator oriented by isMax: up for top-smallest
// (isMax == false), down for top-largest.
func nextAfterValue[T hwy.Lanes](v T, isMax bool) T {
	switch x := any(v).(type) {
	case float32:
		if isMax {
			return any(math.Nextafter32(x, float32(math.Inf(-1)))).(T)
		}
		return any(math.Nextafter32(x, float32(math.Inf(1)))).(T)
	case float64:
		if isMax {
			return any(math.Nextafter(x, math.Inf(-1))).(T)
		}
		return any(math.Nextafter(x, math.Inf(1))).(T)
	case int8:
		if isMax {
			return any(x - 1).(T)
		}
		return any(x + 1).(T)
	case int16:
		if isMax {
			return any(x - 1).(T)
		}
		return any(x + 1).(T)
	case int32:
		if isMax {
			return any(x - 1).(T)
		}
		return any(x + 1).(T)
	case int64:
		if isMax {
			return any(x - 1).(T)
		}
		return any(x + 1).(T)
	case uint8:
		if isMax {
			if x == 0 {
				return v
			}
			return any(x - 1).(T)
		}
		return any(x + 1).(T)
	case uint16:
		if isMax {
			if x == 0 {
				return v
			}
			return any(x - 1).(T)
		}
		return any(x + 1).(T)
	case uint32:
		if isMax {
			if x == 0 {
				return v
			}
			return any(x - 1).(T)
		}
		return any(x + 1).(T)
	case uint64:
		if isMax {
			if x == 0 {
				return v
			}
			return any(x - 1).(T)
		}
		return any(x + 1).(T)
	default:
		return v
	}
}

// sentinelInt converts a T value that stands in for an out-of-range rank
// (see the q_min == 0 early-out in PartitionFuzzyMedian3) into an int,
// saturating at math.MaxInt/math.MinInt for infinities. This mirrors the
// original algorithm's reuse of the threshold type for an integer
// out-parameter, which only type-checks in a language with implicit
// numeric conversions; Go requires the conversion to be explicit.
func sentinelInt[T hwy.Lanes](v T) int {
	switch x := any(v).(type) {
	case float32:
		f := float64(x)
		if math.IsInf(f, 1) {
			return math.MaxInt
		}
		if math.IsInf(f, -1) {
			return math.MinInt
		}
		return int(x)
	case float64:
		if math.IsInf(x, 1) {
			return math.MaxInt
		}
		if math.IsInf(x, -1) {
			return math.MinInt
		}
		return int(x)
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return int(x)
	default:
		return 0
	}
}
