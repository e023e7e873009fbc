package interval

import (
	"iter"
	"strings"

	"github.com/grailbio/base/log"
)

// RangeSet is a mutable set of sequence sites held in canonical form: the
// backing store contains disjoint ranges sorted ascending by Start, with at
// least one excluded site between every neighboring pair.  Each mutator is a
// single transition from one canonical state to the next; no intermediate
// state is observable between calls.
//
// RangeSet exclusively owns its store, elements are copied by value, and no
// method suspends, so there is nothing to synchronize in single-threaded
// use.  Concurrent mutation is not supported.
type RangeSet struct {
	store Store
	// length is the total number of covered sites, maintained algebraically
	// by every mutator.  It is never recomputed by a full scan outside of
	// CheckPanic.
	length int
}

// NewRangeSet returns an empty set backed by the default deque store.
func NewRangeSet() *RangeSet {
	return &RangeSet{store: NewDequeStore()}
}

// NewRangeSetStore returns an empty set backed by the given store, which
// must itself be empty.
func NewRangeSetStore(store Store) *RangeSet {
	if store.Len() != 0 {
		log.Panicf("interval.NewRangeSetStore: store holds %d ranges, want 0", store.Len())
	}
	return &RangeSet{store: store}
}

// NewRangeSetOf returns a set covering the union of the given ranges.
func NewRangeSetOf(ranges ...Range) *RangeSet {
	s := NewRangeSet()
	for _, r := range ranges {
		s.UnionWith(r)
	}
	return s
}

// Len returns the total number of covered sites.
func (s *RangeSet) Len() int { return s.length }

// NumRanges returns the number of disjoint ranges.
func (s *RangeSet) NumRanges() int { return s.store.Len() }

// Start returns the first covered site, or 0 for the empty set.
func (s *RangeSet) Start() int {
	if s.store.Len() == 0 {
		return 0
	}
	return s.store.At(0).Start
}

// End returns the last covered site, or 0 for the empty set.
func (s *RangeSet) End() int {
	if s.store.Len() == 0 {
		return 0
	}
	return s.store.At(s.store.Len() - 1).End
}

// Span returns the bounding range [Start, End], or the empty range for the
// empty set.
func (s *RangeSet) Span() Range {
	if s.store.Len() == 0 {
		return Range{}
	}
	return Range{Start: s.Start(), End: s.End()}
}

// Overlaps reports whether any covered site lies inside r.  Because the set
// is canonical, the bounding-box test suffices.
func (s *RangeSet) Overlaps(r Range) bool {
	return s.store.Len() != 0 && s.Start() <= r.End && r.Start <= s.End()
}

// IsSubsetOf reports whether every covered site lies inside r.  The empty
// set is a subset of everything.
func (s *RangeSet) IsSubsetOf(r Range) bool {
	return s.store.Len() == 0 || (r.Start <= s.Start() && s.End() <= r.End)
}

// All iterates the ranges in ascending order.  Mutating the set during the
// iteration is a fatal misuse and panics at the next step rather than
// yielding shifted or duplicated ranges.
func (s *RangeSet) All() iter.Seq[Range] {
	return s.store.All()
}

// Ranges returns the ranges as a freshly allocated ascending slice.
func (s *RangeSet) Ranges() []Range {
	rs := make([]Range, 0, s.store.Len())
	for r := range s.All() {
		rs = append(rs, r)
	}
	return rs
}

// Equal reports whether s and s1 cover exactly the same sites.  Canonical
// form makes this a positional comparison.
func (s *RangeSet) Equal(s1 *RangeSet) bool {
	if s.length != s1.length || s.store.Len() != s1.store.Len() {
		return false
	}
	for i, n := 0, s.store.Len(); i < n; i++ {
		if s.store.At(i) != s1.store.At(i) {
			return false
		}
	}
	return true
}

// String formats the set as a comma-joined list of ranges, e.g.
// "1..290,300..500".  The empty set formats as "".
func (s *RangeSet) String() string {
	var b strings.Builder
	for i, n := 0, s.store.Len(); i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s.store.At(i).String())
	}
	return b.String()
}

// UnionWith adds every site of r to the set, merging with any stored ranges
// that r overlaps or touches.
func (s *RangeSet) UnionWith(r Range) {
	if r.IsZero() {
		return
	}
	checkRange("UnionWith", r)
	n := s.store.Len()
	// Fast path: r lands past the last range with a real gap.  This keeps
	// ascending insertion workloads at O(1) amortized per call.
	if n == 0 || s.store.At(n-1).Precedes(r) {
		s.store.PushBack(r)
		s.length += r.Len()
		return
	}
	for i := s.scanStart(r); ; {
		if i == s.store.Len() {
			s.store.PushBack(r)
			s.length += r.Len()
			return
		}
		cur := s.store.At(i)
		if cur.Precedes(r) {
			i++
			continue
		}
		if r.Precedes(cur) {
			s.store.Insert(i, r)
			s.length += r.Len()
			return
		}
		// cur overlaps or touches r: fold cur into r, then keep absorbing
		// following ranges until the merged range sits clear of its
		// successor.
		if cur.Start < r.Start {
			r.Start = cur.Start
		}
		if cur.End > r.End {
			r.End = cur.End
		}
		s.length -= cur.Len()
		if i+1 == s.store.Len() || r.Precedes(s.store.At(i+1)) {
			s.store.Set(i, r)
			s.length += r.Len()
			return
		}
		s.store.RemoveAt(i)
	}
}

// IntersectWith removes every site outside r.
func (s *RangeSet) IntersectWith(r Range) {
	if r.IsZero() {
		return
	}
	checkRange("IntersectWith", r)
	if s.IsSubsetOf(r) {
		return
	}
	if !s.Overlaps(r) {
		s.store.Clear()
		s.length = 0
		return
	}
	for i := 0; i < s.store.Len(); {
		cur := s.store.At(i)
		if !cur.Overlaps(r) {
			s.length -= cur.Len()
			s.store.RemoveAt(i)
			continue
		}
		clipped := cur
		if r.Start > clipped.Start {
			clipped.Start = r.Start
		}
		if r.End < clipped.End {
			clipped.End = r.End
		}
		if clipped != cur {
			s.length -= cur.Len() - clipped.Len()
			s.store.Set(i, clipped)
		}
		i++
	}
}

// ExceptWith removes every site of r from the set, clipping or splitting
// stored ranges as needed.
func (s *RangeSet) ExceptWith(r Range) {
	if r.IsZero() {
		return
	}
	checkRange("ExceptWith", r)
	if !s.Overlaps(r) {
		return
	}
	for i := s.scanStart(r); i < s.store.Len(); {
		cur := s.store.At(i)
		if cur.End < r.Start {
			i++
			continue
		}
		if cur.Start > r.End {
			return
		}
		if cur.Start < r.Start && r.End < cur.End {
			// r punches a hole through cur; a single range can only be
			// punctured once per call, so the scan ends here.
			s.store.Set(i, Range{Start: cur.Start, End: r.Start - 1})
			s.store.Insert(i+1, Range{Start: r.End + 1, End: cur.End})
			s.length -= r.Len()
			return
		}
		if cur.Start < r.Start {
			s.store.Set(i, Range{Start: cur.Start, End: r.Start - 1})
			s.length -= cur.End - r.Start + 1
			i++
			continue
		}
		if r.End < cur.End {
			s.store.Set(i, Range{Start: r.End + 1, End: cur.End})
			s.length -= r.End - cur.Start + 1
			return
		}
		s.length -= cur.Len()
		s.store.RemoveAt(i)
	}
}

// SymmetricExceptWith toggles membership of every site in r: covered
// portions of r are removed, uncovered portions are added, and any boundary
// that lands exactly adjacent to a neighbor is coalesced so the canonical
// form survives.  Applying it twice with the same r restores the original
// set.
//
// The scan carries the still-unresolved tail of r and shrinks or shifts it
// as each stored range is processed.
func (s *RangeSet) SymmetricExceptWith(r Range) {
	if r.IsZero() {
		return
	}
	checkRange("SymmetricExceptWith", r)
	rem := r
	for i := s.scanStart(rem); i < s.store.Len(); {
		cur := s.store.At(i)
		switch {
		case rem.End+1 < cur.Start:
			// rem settles strictly before cur with a real gap.
			s.store.Insert(i, rem)
			s.length += rem.Len()
			return
		case rem.End+1 == cur.Start:
			// rem abuts cur from the left: coalesce.
			s.store.Set(i, Range{Start: rem.Start, End: cur.End})
			s.length += rem.Len()
			return
		case cur.End+1 < rem.Start:
			i++
		case cur.End+1 == rem.Start:
			// cur abuts rem from the left.  Fold cur into the pending
			// remainder instead of writing it back, so the combined block
			// can still cascade into the next stored range.
			rem.Start = cur.Start
			s.length -= cur.Len()
			s.store.RemoveAt(i)
		case rem.Start < cur.Start:
			// The prefix of rem left of cur toggles on; the overlap toggles
			// off.
			left := Range{Start: rem.Start, End: cur.Start - 1}
			switch {
			case rem.End < cur.End:
				s.store.Set(i, left)
				s.store.Insert(i+1, Range{Start: rem.End + 1, End: cur.End})
				s.length += left.Len() - (rem.End - cur.Start + 1)
				return
			case rem.End == cur.End:
				s.store.Set(i, left)
				s.length += left.Len() - cur.Len()
				return
			default:
				s.store.Set(i, left)
				s.length += left.Len() - cur.Len()
				rem = Range{Start: cur.End + 1, End: rem.End}
				i++
			}
		case rem.Start == cur.Start:
			switch {
			case rem.End < cur.End:
				s.store.Set(i, Range{Start: rem.End + 1, End: cur.End})
				s.length -= rem.Len()
				return
			case rem.End == cur.End:
				s.store.RemoveAt(i)
				s.length -= cur.Len()
				return
			default:
				s.store.RemoveAt(i)
				s.length -= cur.Len()
				rem = Range{Start: cur.End + 1, End: rem.End}
			}
		default: // rem.Start > cur.Start
			kept := Range{Start: cur.Start, End: rem.Start - 1}
			switch {
			case rem.End < cur.End:
				// Strictly interior: split cur around rem.
				s.store.Set(i, kept)
				s.store.Insert(i+1, Range{Start: rem.End + 1, End: cur.End})
				s.length -= rem.Len()
				return
			case rem.End == cur.End:
				s.store.Set(i, kept)
				s.length -= rem.Len()
				return
			default:
				s.store.Set(i, kept)
				s.length -= cur.End - rem.Start + 1
				rem = Range{Start: cur.End + 1, End: rem.End}
				i++
			}
		}
	}
	s.store.PushBack(rem)
	s.length += rem.Len()
}

// scanStart picks the index where a mutator's forward scan enters the
// store.  Comparing r against the second-to-last stored range is enough: if
// that range sits clear of r, nothing before the last element can interact
// with r and the scan starts at the tail.  Otherwise the scan starts at the
// head, where the deque store makes insertion and removal cheap, so
// descending insertion workloads stay near O(1) per call as well.
func (s *RangeSet) scanStart(r Range) int {
	if n := s.store.Len(); n >= 2 && s.store.At(n-2).Precedes(r) {
		return n - 1
	}
	return 0
}

func checkRange(op string, r Range) {
	if r.Start <= 0 || r.End < r.Start {
		log.Panicf("interval.RangeSet.%s: malformed range [%d, %d]", op, r.Start, r.End)
	}
}

// CheckPanic verifies the canonical-form invariants, panicking on failure:
// ranges sorted ascending, a gap of at least one excluded site between
// every neighboring pair, and the cached length equal to the sum of the
// per-range lengths.  Intended for tests and debugging.
func (s *RangeSet) CheckPanic(tag string) {
	sum := 0
	var prev Range
	for i, n := 0, s.store.Len(); i < n; i++ {
		cur := s.store.At(i)
		if cur.Start <= 0 || cur.End < cur.Start {
			log.Panicf("malformed range [%d, %d] at index %d, tag: %s", cur.Start, cur.End, i, tag)
		}
		if i > 0 && !prev.Precedes(cur) {
			log.Panicf("ranges [%d, %d] and [%d, %d] out of order or not distant, tag: %s",
				prev.Start, prev.End, cur.Start, cur.End, tag)
		}
		sum += cur.Len()
		prev = cur
	}
	if sum != s.length {
		log.Panicf("cached length %d != summed length %d, tag: %s", s.length, sum, tag)
	}
}
