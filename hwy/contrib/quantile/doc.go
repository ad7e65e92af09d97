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

// Package quantile implements a fuzzy quantile partitioner: given a
// window [qMin, qMax], it rearranges a slice of values (and a parallel
// slice of identifiers) so that some q in that window of the best entries
// end up in the first q positions, without needing to pin down an exact
// rank. That freedom lets it stop as soon as any valid threshold is
// found, which is the point when the caller only needs "roughly the top
// k" neighbors rather than an exact order statistic.
//
// The scalar path (PartitionFuzzyMedian3) samples candidate thresholds
// from the data via median-of-three pivoting and a prime-stride walk,
// bisecting a bracket until the window is satisfied. The SIMD fast path
// (PartitionFuzzy, SimdPartition, SimdPartitionWithBounds) specializes to
// uint16 values and bisects the known [min,max] integer range directly
// using hwy's vector comparisons and mask primitives, which converges in
// at most 16 steps and requires no resampling.
package quantile
