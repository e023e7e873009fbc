package interval

import (
	"container/list"
	"iter"

	"github.com/grailbio/base/log"
	"github.com/grailbio/seqloc/circular"
)

// Store is the minimal ordered-sequence contract RangeSet needs from its
// backing storage: indexed get/set, insert-at, remove-at, and push/pop at
// both ends.  The three implementations below exist as a performance
// exploration; NewDequeStore is the default and the only one most callers
// should reach for.  See the benchmarks in rangeset_bench_test.go.
//
// All iterates in order, fails fast if the store is structurally mutated
// mid-iteration, and treats Set as a value overwrite rather than a
// structural mutation.
type Store interface {
	Len() int
	At(i int) Range
	Set(i int, r Range)
	Insert(i int, r Range)
	RemoveAt(i int)
	PushFront(r Range)
	PushBack(r Range)
	PopFront() Range
	PopBack() Range
	Clear()
	All() iter.Seq[Range]
}

// NewDequeStore returns a Store backed by a circular.Deque.  Insertion and
// removal near either end is O(1) amortized, which is what makes both
// ascending and descending union workloads cheap.
func NewDequeStore() Store {
	return &dequeStore{}
}

type dequeStore struct {
	d circular.Deque[Range]
}

func (s *dequeStore) Len() int              { return s.d.Len() }
func (s *dequeStore) At(i int) Range        { return s.d.At(i) }
func (s *dequeStore) Set(i int, r Range)    { s.d.Set(i, r) }
func (s *dequeStore) Insert(i int, r Range) { s.d.Insert(i, r) }
func (s *dequeStore) RemoveAt(i int)        { s.d.RemoveAt(i) }
func (s *dequeStore) PushFront(r Range)     { s.d.PushFront(r) }
func (s *dequeStore) PushBack(r Range)      { s.d.PushBack(r) }
func (s *dequeStore) PopFront() Range       { return s.d.PopFront() }
func (s *dequeStore) PopBack() Range        { return s.d.PopBack() }
func (s *dequeStore) Clear()                { s.d.Clear() }
func (s *dequeStore) All() iter.Seq[Range]  { return s.d.All() }

// NewSliceStore returns a Store backed by a plain growable []Range.  Every
// interior or front insertion shifts the whole tail, so it loses to the
// deque store under descending workloads but wins slightly on iteration.
func NewSliceStore() Store {
	return &sliceStore{}
}

type sliceStore struct {
	rs  []Range
	gen uint32
}

func (s *sliceStore) Len() int           { return len(s.rs) }
func (s *sliceStore) At(i int) Range     { return s.rs[i] }
func (s *sliceStore) Set(i int, r Range) { s.rs[i] = r }

func (s *sliceStore) Insert(i int, r Range) {
	s.rs = append(s.rs, Range{})
	copy(s.rs[i+1:], s.rs[i:])
	s.rs[i] = r
	s.gen++
}

func (s *sliceStore) RemoveAt(i int) {
	s.rs = append(s.rs[:i], s.rs[i+1:]...)
	s.gen++
}

func (s *sliceStore) PushFront(r Range) { s.Insert(0, r) }

func (s *sliceStore) PushBack(r Range) {
	s.rs = append(s.rs, r)
	s.gen++
}

func (s *sliceStore) PopFront() Range {
	if len(s.rs) == 0 {
		log.Panicf("interval: slice store PopFront on empty store")
	}
	r := s.rs[0]
	s.RemoveAt(0)
	return r
}

func (s *sliceStore) PopBack() Range {
	if len(s.rs) == 0 {
		log.Panicf("interval: slice store PopBack on empty store")
	}
	r := s.rs[len(s.rs)-1]
	s.rs = s.rs[:len(s.rs)-1]
	s.gen++
	return r
}

func (s *sliceStore) Clear() {
	s.rs = s.rs[:0]
	s.gen++
}

func (s *sliceStore) All() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		gen := s.gen
		for i := 0; i < len(s.rs); i++ {
			if s.gen != gen {
				log.Panicf("interval: slice store structurally mutated during iteration")
			}
			if !yield(s.rs[i]) {
				return
			}
		}
	}
}

// NewListStore returns a Store backed by a doubly-linked list.  A cached
// cursor makes the sequential index arithmetic of the mutators close to
// O(1) per step, but the per-node allocations and pointer chasing leave it
// behind both array-backed stores on every workload measured; it is kept as
// the baseline the others are compared against.
func NewListStore() Store {
	return &listStore{}
}

type listStore struct {
	l list.List
	// cur caches the element most recently located by index, so that a scan
	// advancing one position at a time does not re-walk from an end.
	cur    *list.Element
	curIdx int
	gen    uint32
}

// elem walks to the element at index i from whichever anchor is nearest:
// the front, the back, or the cached cursor.
func (s *listStore) elem(i int) *list.Element {
	n := s.l.Len()
	if i < 0 || i >= n {
		log.Panicf("interval: list store index %d out of bounds with length %d", i, n)
	}
	e, at := s.l.Front(), 0
	if n-1-i < i {
		e, at = s.l.Back(), n-1
	}
	if s.cur != nil && abs(s.curIdx-i) < abs(at-i) {
		e, at = s.cur, s.curIdx
	}
	for at < i {
		e, at = e.Next(), at+1
	}
	for at > i {
		e, at = e.Prev(), at-1
	}
	s.cur, s.curIdx = e, i
	return e
}

func (s *listStore) Len() int { return s.l.Len() }

func (s *listStore) At(i int) Range {
	return s.elem(i).Value.(Range)
}

func (s *listStore) Set(i int, r Range) {
	s.elem(i).Value = r
}

func (s *listStore) Insert(i int, r Range) {
	if i == s.l.Len() {
		s.PushBack(r)
		return
	}
	s.cur, s.curIdx = s.l.InsertBefore(r, s.elem(i)), i
	s.gen++
}

func (s *listStore) RemoveAt(i int) {
	e := s.elem(i)
	next := e.Next()
	s.l.Remove(e)
	s.cur, s.curIdx = next, i
	s.gen++
}

func (s *listStore) PushFront(r Range) {
	s.cur, s.curIdx = s.l.PushFront(r), 0
	s.gen++
}

func (s *listStore) PushBack(r Range) {
	s.cur, s.curIdx = s.l.PushBack(r), s.l.Len()-1
	s.gen++
}

func (s *listStore) PopFront() Range {
	if s.l.Len() == 0 {
		log.Panicf("interval: list store PopFront on empty store")
	}
	r := s.l.Remove(s.l.Front()).(Range)
	s.cur = nil
	s.gen++
	return r
}

func (s *listStore) PopBack() Range {
	if s.l.Len() == 0 {
		log.Panicf("interval: list store PopBack on empty store")
	}
	r := s.l.Remove(s.l.Back()).(Range)
	s.cur = nil
	s.gen++
	return r
}

func (s *listStore) Clear() {
	s.l.Init()
	s.cur = nil
	s.gen++
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (s *listStore) All() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		gen := s.gen
		for e := s.l.Front(); e != nil; e = e.Next() {
			if s.gen != gen {
				log.Panicf("interval: list store structurally mutated during iteration")
			}
			if !yield(e.Value.(Range)) {
				return
			}
		}
	}
}
