// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package circular provides a random-access double-ended queue backed by a
// growable circular buffer.  It is the storage substrate for the interval
// package's canonical range sequence, which inserts and removes near either
// end far more often than in the middle.
package circular
