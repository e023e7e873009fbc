package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a contiguous span [Start, End] on a biological sequence.  Both
// bounds are 1-based and inclusive, matching feature-table coordinates.
//
// The zero value (Start == 0) is the empty range.  It is accepted as a
// harmless no-op input by every RangeSet mutator; every other Range must
// come from New (or satisfy the same preconditions).
type Range struct {
	Start int
	End   int
}

// New returns the range [start, end].  Bounds must be strictly positive and
// start must not exceed end; anything else is a precondition violation
// reported as an error, never silently clamped.
func New(start, end int) (Range, error) {
	if start <= 0 || end <= 0 {
		return Range{}, fmt.Errorf("interval.New: non-positive bound in [%d, %d]", start, end)
	}
	if start > end {
		return Range{}, fmt.Errorf("interval.New: start %d beyond end %d", start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Parse parses the textual forms produced by String: "start..end" for a
// multi-site range and a bare position for a single site.
func Parse(s string) (Range, error) {
	lo, hi, found := strings.Cut(s, "..")
	start, err := strconv.Atoi(lo)
	if err != nil {
		return Range{}, fmt.Errorf("interval.Parse: bad start in %q", s)
	}
	if !found {
		return New(start, start)
	}
	end, err := strconv.Atoi(hi)
	if err != nil {
		return Range{}, fmt.Errorf("interval.Parse: bad end in %q", s)
	}
	return New(start, end)
}

// IsZero reports whether r is the empty range.
func (r Range) IsZero() bool {
	return r.Start == 0
}

// Len returns the number of sites covered by r, 0 for the empty range.
func (r Range) Len() int {
	if r.IsZero() {
		return 0
	}
	return r.End - r.Start + 1
}

// Overlaps reports whether r and r1 share at least one site.  The empty
// range overlaps nothing.
func (r Range) Overlaps(r1 Range) bool {
	return !r.IsZero() && !r1.IsZero() && r.Start <= r1.End && r1.Start <= r.End
}

// Contains reports whether pos lies inside r.
func (r Range) Contains(pos int) bool {
	return r.Start <= pos && pos <= r.End
}

// ContainsRange returns true iff (r1 ∩ r) = r1 and r1 is non-empty.
func (r Range) ContainsRange(r1 Range) bool {
	return !r1.IsZero() && r.Start <= r1.Start && r1.End <= r.End
}

// Precedes reports whether r ends at least one excluded site before r1
// begins.  Its negation means r and r1 overlap or are exactly adjacent,
// both of which require merging to keep a range set canonical.
func (r Range) Precedes(r1 Range) bool {
	return r.End+1 < r1.Start
}

// Compare returns (negative int, 0, positive int) if (r<r1, r=r1, r>r1)
// respectively, ordering by Start and breaking ties by End.
func (r Range) Compare(r1 Range) int {
	if r.Start != r1.Start {
		return r.Start - r1.Start
	}
	return r.End - r1.End
}

// LT returns true iff r < r1.
func (r Range) LT(r1 Range) bool {
	return r.Compare(r1) < 0
}

// EQ returns true iff r = r1.
func (r Range) EQ(r1 Range) bool {
	return r == r1
}

// String formats r as "start..end", or as the bare position for a
// single-site range.  The empty range formats as "".
func (r Range) String() string {
	if r.IsZero() {
		return ""
	}
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return strconv.Itoa(r.Start) + ".." + strconv.Itoa(r.End)
}
