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

// Package histogram implements small fixed-width (8 and 16 bin) value
// histograms over uint16 data. It is a standalone package; the quantile
// partitioner does not call it.
//
// With a negative shift, each value contributes to bin data[i] & 0xF (its
// low 4 bits); Histogram8 folds the resulting 16 counts pairwise into 8
// bins (hist[b] = a[b] + a[b+8]) while Histogram16 reports them directly.
// With a non-negative shift in [0,8], each value is transformed to
// v' = (data[i] - min) >> shift (an arithmetic shift) and contributes to
// hist[v'] only when v' falls inside the bin range; values that clip out
// of range are silently dropped rather than folded.
package histogram
