// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package interval models a location on a biological sequence as a canonical
// set of disjoint, non-adjacent 1-based inclusive ranges, with in-place
// set-algebra mutators (union, intersection, difference, symmetric
// difference).
//
// The canonical form is what feature-table style consumers expect: ranges
// sorted ascending, and every neighboring pair separated by at least one
// excluded site, so "100..200,201..300" can never be observed in place of
// "100..300".  All four mutators preserve this form incrementally; the total
// covered length is maintained as a running value rather than recomputed.
package interval
