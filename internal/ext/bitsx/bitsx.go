// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bitsx contains overflow-checked integer arithmetic.
package bitsx

import "golang.org/x/exp/constraints" //nolint:exptostd // No stdlib equivalent of Integer.

// CheckedAdd returns a + b, and whether the addition did not overflow.
//
// Both operands must be non-negative.
func CheckedAdd[T constraints.Integer](a, b T) (T, bool) {
	sum := a + b
	return sum, sum >= a
}

// CheckedMul returns a * b, and whether the multiplication did not overflow.
//
// Both operands must be non-negative.
func CheckedMul[T constraints.Integer](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	// For a signed T, an overflowed product may wrap negative, which the
	// division check alone does not catch when it wraps to a multiple of b.
	return product, product >= 0 && product/b == a
}

// AlignUp rounds n up to the next multiple of align, which must be a power of
// two. Returns whether the result did not overflow.
func AlignUp[T constraints.Integer](n, align T) (T, bool) {
	mask := align - 1
	sum, ok := CheckedAdd(n, mask)
	if !ok {
		return 0, false
	}
	return sum &^ mask, true
}
