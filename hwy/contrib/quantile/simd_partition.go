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

// FindMinimax returns the minimum and maximum of vals, computed a vector
// at a time via hwy.Min/hwy.Max with a scalar tail for the remainder.
func FindMinimax(vals []uint16) (smin, smax uint16) {
	n := len(vals)
	if n == 0 {
		return 0, 0
	}

	lanes := hwy.MaxLanes[uint16]()
	minVec := hwy.Set(vals[0])
	maxVec := hwy.Set(vals[0])

	i := 0
	for ; lanes > 0 && i+lanes <= n; i += lanes {
		v := hwy.Load(vals[i:])
		minVec = hwy.Min(minVec, v)
		maxVec = hwy.Max(maxVec, v)
	}
	smin = hwy.ReduceMin(minVec)
	smax = hwy.ReduceMax(maxVec)

	for ; i < n; i++ {
		if vals[i] < smin {
			smin = vals[i]
		}
		if vals[i] > smax {
			smax = vals[i]
		}
	}
	return smin, smax
}

// SimdCountLtAndEq is the SIMD analog of CountLessThanAndEqual, specialized
// to uint16 so the comparisons and popcounts map directly onto hwy's mask
// primitives.
func SimdCountLtAndEq(cmp Comparator[uint16], vals []uint16, thresh uint16) (nLt, nEq int) {
	n := len(vals)
	lanes := hwy.MaxLanes[uint16]()
	threshVec := hwy.Set(thresh)

	i := 0
	for ; lanes > 0 && i+lanes <= n; i += lanes {
		v := hwy.Load(vals[i:])
		eqMask := hwy.Equal(v, threshVec)
		var betterMask hwy.Mask[uint16]
		if cmp.IsMax {
			betterMask = hwy.GreaterThan(v, threshVec)
		} else {
			betterMask = hwy.LessThan(v, threshVec)
		}
		nEq += hwy.CountTrue(eqMask)
		nLt += hwy.CountTrue(betterMask)
	}
	for ; i < n; i++ {
		switch {
		case cmp.Better(vals[i], thresh):
			nLt++
		case vals[i] == thresh:
			nEq++
		}
	}
	return nLt, nEq
}

// trailingZeroScan returns the index of the lowest set bit in packed,
// routed through hwy.TrailingZeroCount (rather than math/bits directly) so
// the scan uses the same primitive the rest of this package is grounded
// on.
func trailingZeroScan(packed uint64) int {
	v := hwy.Load([]uint64{packed})
	tz := hwy.TrailingZeroCount(v)
	return int(tz.Data()[0])
}

// SimdCompressArray compacts vals and ids in place the same way
// CompressArray does, but scans each vector's equal/better masks packed
// two bits per lane (bit 2j = equal, bit 2j+1 = strictly better) and walks
// the set bits with a trailing-zero scan instead of a per-lane branch.
//
// packed is a uint64 (not uint32) because an AVX-512 uint16 vector has up
// to 32 lanes, and 2 bits/lane needs up to 64 bits to avoid losing the top
// half of the lanes.
func SimdCompressArray[I any](cmp Comparator[uint16], vals []uint16, ids []I, thresh uint16, nEq int) int {
	n := len(vals)
	lanes := hwy.MaxLanes[uint16]()
	threshVec := hwy.Set(thresh)

	wp := 0
	budget := nEq

	i := 0
	for ; lanes > 0 && i+lanes <= n; i += lanes {
		v := hwy.Load(vals[i:])
		eqMask := hwy.Equal(v, threshVec)
		var betterMask hwy.Mask[uint16]
		if cmp.IsMax {
			betterMask = hwy.GreaterThan(v, threshVec)
		} else {
			betterMask = hwy.LessThan(v, threshVec)
		}
		eqBits := hwy.BitsFromMask(eqMask)
		betterBits := hwy.BitsFromMask(betterMask)

		var packed uint64
		for j := 0; j < lanes; j++ {
			if eqBits&(uint64(1)<<uint(j)) != 0 {
				packed |= uint64(1) << uint(2*j)
			}
			if betterBits&(uint64(1)<<uint(j)) != 0 {
				packed |= uint64(1) << uint(2*j+1)
			}
		}

		// Phase A: consume both strict and tied survivors while the tie
		// budget lasts.
		for packed != 0 && budget > 0 {
			bit := trailingZeroScan(packed)
			lane := bit / 2
			idx := i + lane
			vals[wp], vals[idx] = vals[idx], vals[wp]
			ids[wp], ids[idx] = ids[idx], ids[wp]
			wp++
			if bit%2 == 0 { // tied
				budget--
			}
			packed &^= uint64(3) << uint(2*lane)
		}
		// Phase B: budget exhausted, keep only strict survivors.
		for packed != 0 {
			bit := trailingZeroScan(packed)
			lane := bit / 2
			idx := i + lane
			if bit%2 == 1 { // strictly better
				vals[wp], vals[idx] = vals[idx], vals[wp]
				ids[wp], ids[idx] = ids[idx], ids[wp]
				wp++
			}
			packed &^= uint64(3) << uint(2*lane)
		}
	}

	for ; i < n; i++ {
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

func decSaturating(x uint16) uint16 {
	if x == 0 {
		return 0
	}
	return x - 1
}

func incSaturating(x uint16) uint16 {
	if x == 0xFFFF {
		return 0xFFFF
	}
	return x + 1
}

// simdPartitionFuzzyWithBounds bisects the integer interval [s0, s1] (the
// known min/max of vals) directly, instead of resampling thresholds from
// the data, converging in at most 16 steps. Classification and the
// degenerate tie-budget correction mirror PartitionFuzzyMedian3 exactly;
// only how the next candidate threshold is produced differs.
func simdPartitionFuzzyWithBounds[I any](cmp Comparator[uint16], vals []uint16, ids []I, qMin, qMax int, s0, s1 uint16) (uint16, int) {
	q := qMin
	var thresh uint16
	var nLt, nEq int

	for {
		if s0 == s1 {
			thresh = s0
			nLt, nEq = SimdCountLtAndEq(cmp, vals, thresh)
			if nLt <= qMin && nLt+nEq >= qMin {
				q = qMin
			} else if qMin < nLt && nLt <= qMax {
				q = nLt
			}
			break
		}

		thresh = s0 + (s1-s0)/2
		nLt, nEq = SimdCountLtAndEq(cmp, vals, thresh)

		if nLt <= qMin && nLt+nEq >= qMin {
			q = qMin
			break
		}
		if qMin < nLt && nLt <= qMax {
			q = nLt
			break
		}

		if nLt+nEq < qMin {
			if cmp.IsMax {
				s1 = decSaturating(thresh)
			} else {
				s0 = incSaturating(thresh)
			}
		} else { // nLt > qMax
			if cmp.IsMax {
				s0 = incSaturating(thresh)
			} else {
				s1 = decSaturating(thresh)
			}
		}
	}

	nEq1 := q - nLt
	if nEq1 < 0 {
		q = qMin
		if cmp.IsMax {
			thresh = decSaturating(thresh)
		} else {
			thresh = incSaturating(thresh)
		}
		nEq1 = q
	}
	if nEq1 > nEq {
		panic("quantile: simd tie budget exceeds the number of ties observed")
	}

	wp := SimdCompressArray(cmp, vals, ids, thresh, nEq1)
	if wp != q {
		panic("quantile: simd compress did not reach the expected rank")
	}
	return thresh, q
}

// simdPartitionFuzzyCore applies the qMin==0/qMax>=n edge cases shared
// with PartitionFuzzyMedian3, then either uses the caller-supplied [s0,s1]
// bounds or computes them via FindMinimax.
func simdPartitionFuzzyCore[I any](cmp Comparator[uint16], vals []uint16, ids []I, qMin, qMax int, haveBounds bool, s0, s1 uint16) (uint16, int) {
	n := len(vals)
	if qMin == 0 {
		return 0, sentinelInt(cmp.RevNeutral)
	}
	if qMax >= n {
		return cmp.Neutral, qMax
	}
	if !haveBounds {
		s0, s1 = FindMinimax(vals)
	}
	return simdPartitionFuzzyWithBounds(cmp, vals, ids, qMin, qMax, s0, s1)
}

// SimdPartitionWithBounds is the exact-rank convenience wrapper over
// simdPartitionFuzzyWithBounds (qMin == qMax == q), for callers that
// already know the value range of vals.
func SimdPartitionWithBounds[I any](cmp Comparator[uint16], vals []uint16, ids []I, q int, s0, s1 uint16) uint16 {
	thresh, _ := simdPartitionFuzzyCore(cmp, vals, ids, q, q, true, s0, s1)
	return thresh
}

// SimdPartition is SimdPartitionWithBounds with the value range computed
// from vals via FindMinimax.
func SimdPartition[I any](cmp Comparator[uint16], vals []uint16, ids []I, q int) uint16 {
	thresh, _ := simdPartitionFuzzyCore(cmp, vals, ids, q, q, false, 0, 0)
	return thresh
}
