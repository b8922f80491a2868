// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of
// numbers within a tolerance, for floating-point tests.
package tolassert

import (
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/constraints"
)

// Equal asserts that the two numbers are equal within a tolerance of 0.001.
func Equal[T constraints.Float](t assert.TestingT, expected, actual T, msgAndArgs ...any) bool {
	return EqualTol(t, expected, actual, 0.001, msgAndArgs...)
}

// EqualTol asserts that the two numbers are equal within the given tolerance.
func EqualTol[T constraints.Float](t assert.TestingT, expected, actual, tolerance T, msgAndArgs ...any) bool {
	return assert.InDelta(t, expected, actual, float64(tolerance), msgAndArgs...)
}
