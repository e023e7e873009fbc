package circular

import (
	"iter"
	"math/bits"

	"github.com/grailbio/base/log"
)

// NextExp2 returns the next power of 2 strictly greater than x.  (Useful when
// setting circular buffer size.)
func NextExp2(x int) int {
	log2 := 63 - bits.LeadingZeros64(uint64(x))
	return 2 << uint32(log2)
}

// minCapacity is the smallest buffer allocated on growth.
const minCapacity = 4

// Deque is a random-access double-ended queue backed by a growable circular
// buffer.  Pushes and pops at either end are amortized O(1); At/Set are O(1);
// Insert and RemoveAt shift whichever side of the buffer holds fewer
// elements, so they are also cheap near both ends.
//
// The zero value is an empty deque ready for use.  Capacity does not need to
// be a power of two; indexing is plain modulo arithmetic so that SetCap can
// honor exact caller-requested sizes.
//
// Out-of-range indices and capacity shrinks below Len are programming errors
// and panic.  A deque is not safe for concurrent use.
type Deque[T any] struct {
	buf   []T
	head  int
	count int
	// gen counts structural mutations.  In-progress iterations check it on
	// every step and die on mismatch instead of silently skipping or
	// re-visiting elements.
	gen uint32
}

// NewDeque returns an empty deque with the given initial capacity.
func NewDeque[T any](capacity int) *Deque[T] {
	if capacity < 0 {
		log.Panicf("circular.NewDeque: negative capacity %d", capacity)
	}
	return &Deque[T]{buf: make([]T, capacity)}
}

// Len returns the number of stored elements.
func (d *Deque[T]) Len() int { return d.count }

// Cap returns the current buffer capacity.
func (d *Deque[T]) Cap() int { return len(d.buf) }

// SetCap resizes the buffer to exactly n slots, relinearizing the contents to
// start at buffer index 0.  It panics if n < Len().
func (d *Deque[T]) SetCap(n int) {
	if n < d.count {
		log.Panicf("circular.Deque.SetCap: capacity %d below length %d", n, d.count)
	}
	if n == len(d.buf) {
		return
	}
	d.relinearize(n)
	d.gen++
}

// At returns the element at position i.
func (d *Deque[T]) At(i int) T {
	d.checkIndex(i)
	return d.buf[d.idx(i)]
}

// Set overwrites the element at position i.  This is a value overwrite, not a
// structural mutation; it does not invalidate in-progress iteration.
func (d *Deque[T]) Set(i int, v T) {
	d.checkIndex(i)
	d.buf[d.idx(i)] = v
}

// PushFront prepends v.
func (d *Deque[T]) PushFront(v T) {
	if d.count == len(d.buf) {
		d.relinearize(d.growCap(d.count + 1))
	}
	d.head = d.wrap(d.head - 1)
	d.buf[d.head] = v
	d.count++
	d.gen++
}

// PushBack appends v.
func (d *Deque[T]) PushBack(v T) {
	if d.count == len(d.buf) {
		d.relinearize(d.growCap(d.count + 1))
	}
	d.buf[d.idx(d.count)] = v
	d.count++
	d.gen++
}

// PopFront removes and returns the first element, panicking if the deque is
// empty.
func (d *Deque[T]) PopFront() T {
	if d.count == 0 {
		log.Panicf("circular.Deque.PopFront: empty deque")
	}
	v := d.buf[d.head]
	var zero T
	d.buf[d.head] = zero
	d.head = d.wrap(d.head + 1)
	d.count--
	d.gen++
	return v
}

// PopBack removes and returns the last element, panicking if the deque is
// empty.
func (d *Deque[T]) PopBack() T {
	if d.count == 0 {
		log.Panicf("circular.Deque.PopBack: empty deque")
	}
	p := d.idx(d.count - 1)
	v := d.buf[p]
	var zero T
	d.buf[p] = zero
	d.count--
	d.gen++
	return v
}

// Insert places v at position i, shifting whichever side of the deque is
// shorter.  i == Len() appends.  When the buffer is full, the growth copy and
// the insertion happen in one pass.
func (d *Deque[T]) Insert(i int, v T) {
	if i < 0 || i > d.count {
		log.Panicf("circular.Deque.Insert: index %d out of bounds with length %d", i, d.count)
	}
	if d.count == len(d.buf) {
		buf := make([]T, d.growCap(d.count+1))
		d.copySpan(buf, 0, i)
		buf[i] = v
		d.copySpan(buf[i+1:], i, d.count-i)
		d.buf = buf
		d.head = 0
		d.count++
		d.gen++
		return
	}
	if i <= d.count/2 {
		// Shift the head-side block [0, i) one slot toward the front.
		d.head = d.wrap(d.head - 1)
		d.count++
		d.moveLeft(1, 0, i)
	} else {
		// Shift the tail-side block [i, count) one slot toward the back.
		d.moveRight(i, i+1, d.count-i)
		d.count++
	}
	d.buf[d.idx(i)] = v
	d.gen++
}

// RemoveAt deletes the element at position i, shifting whichever side of the
// deque is shorter.
func (d *Deque[T]) RemoveAt(i int) {
	d.checkIndex(i)
	var zero T
	if i <= d.count/2 {
		// Shift the head-side block [0, i) one slot toward the back.
		d.moveRight(0, 1, i)
		d.buf[d.head] = zero
		d.head = d.wrap(d.head + 1)
		d.count--
	} else {
		// Shift the tail-side block [i+1, count) one slot toward the front.
		d.moveLeft(i+1, i, d.count-i-1)
		d.count--
		d.buf[d.idx(d.count)] = zero
	}
	d.gen++
}

// InsertSlice places a copy of items at position i.  items must not alias the
// deque's own storage; use InsertRange to insert a deque's contents (its own
// included).
func (d *Deque[T]) InsertSlice(i int, items []T) {
	if i < 0 || i > d.count {
		log.Panicf("circular.Deque.InsertSlice: index %d out of bounds with length %d", i, d.count)
	}
	n := len(items)
	if n == 0 {
		return
	}
	if d.count+n > len(d.buf) {
		// Grow and insert in one pass: left block, new items, right block.
		buf := make([]T, d.growCap(d.count+n))
		d.copySpan(buf, 0, i)
		copy(buf[i:], items)
		d.copySpan(buf[i+n:], i, d.count-i)
		d.buf = buf
		d.head = 0
		d.count += n
		d.gen++
		return
	}
	if i <= d.count-i {
		d.head = d.wrap(d.head - n)
		d.count += n
		d.moveLeft(n, 0, i)
	} else {
		d.moveRight(i, i+n, d.count-i)
		d.count += n
	}
	d.writeSpan(i, items)
	d.gen++
}

// InsertRange inserts a snapshot of src's contents at position i.  src may be
// d itself; the contents are resolved before any slot is overwritten, so the
// self-insert duplicates the deque without interference.
func (d *Deque[T]) InsertRange(i int, src *Deque[T]) {
	d.InsertSlice(i, src.Slice())
}

// RemoveRange deletes the n elements at positions [i, i+n), shifting
// whichever side of the deque is shorter.
func (d *Deque[T]) RemoveRange(i, n int) {
	if i < 0 || n < 0 || i+n > d.count {
		log.Panicf("circular.Deque.RemoveRange: range [%d, %d) out of bounds with length %d", i, i+n, d.count)
	}
	if n == 0 {
		return
	}
	var zero T
	if i <= d.count-i-n {
		// The head-side block [0, i) is shorter; shift it n slots back.
		d.moveRight(0, n, i)
		for k := 0; k < n; k++ {
			d.buf[d.idx(k)] = zero
		}
		d.head = d.wrap(d.head + n)
		d.count -= n
	} else {
		// The tail-side block [i+n, count) is shorter; shift it n slots forward.
		d.moveLeft(i+n, i, d.count-i-n)
		d.count -= n
		for k := 0; k < n; k++ {
			d.buf[d.idx(d.count+k)] = zero
		}
	}
	d.gen++
}

// Clear removes all elements, retaining the buffer.
func (d *Deque[T]) Clear() {
	var zero T
	for i := 0; i < d.count; i++ {
		d.buf[d.idx(i)] = zero
	}
	d.head = 0
	d.count = 0
	d.gen++
}

// Slice returns the contents as a freshly allocated slice.
func (d *Deque[T]) Slice() []T {
	s := make([]T, d.count)
	d.copySpan(s, 0, d.count)
	return s
}

// All iterates over the elements in order.  The iteration snapshots the
// structural generation at the start of each step and panics on mismatch, so
// a caller that mutates the deque mid-iteration fails fast instead of
// observing shifted or duplicated elements.
func (d *Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		gen := d.gen
		for i := 0; i < d.count; i++ {
			if d.gen != gen {
				log.Panicf("circular.Deque: structural mutation during iteration")
			}
			if !yield(d.buf[d.idx(i)]) {
				return
			}
		}
	}
}

func (d *Deque[T]) idx(i int) int {
	return d.wrap(d.head + i)
}

// wrap reduces a position that is at most one capacity outside [0, cap).
func (d *Deque[T]) wrap(p int) int {
	c := len(d.buf)
	if p < 0 {
		p += c
	} else if p >= c {
		p -= c
	}
	return p
}

func (d *Deque[T]) checkIndex(i int) {
	if i < 0 || i >= d.count {
		log.Panicf("circular.Deque: index %d out of bounds with length %d", i, d.count)
	}
}

// growCap returns the post-growth capacity for a buffer that must hold at
// least need elements: double the current capacity (minimum 4), or the next
// power of two above need for large bulk inserts.
func (d *Deque[T]) growCap(need int) int {
	newCap := 2 * len(d.buf)
	if newCap < minCapacity {
		newCap = minCapacity
	}
	if newCap < need {
		newCap = NextExp2(need - 1)
	}
	return newCap
}

// relinearize copies the contents into a fresh buffer of capacity n,
// starting at index 0.
func (d *Deque[T]) relinearize(n int) {
	buf := make([]T, n)
	d.copySpan(buf, 0, d.count)
	d.buf = buf
	d.head = 0
}

// copySpan copies the logical elements [lo, lo+n) into dst, splitting the
// copy in two where the block wraps around the buffer end.
func (d *Deque[T]) copySpan(dst []T, lo, n int) {
	if n == 0 {
		return
	}
	p := d.idx(lo)
	if end := p + n; end <= len(d.buf) {
		copy(dst, d.buf[p:end])
	} else {
		k := copy(dst, d.buf[p:])
		copy(dst[k:], d.buf[:n-k])
	}
}

// writeSpan copies items into the logical positions [lo, lo+len(items)),
// splitting at the buffer end.
func (d *Deque[T]) writeSpan(lo int, items []T) {
	for len(items) > 0 {
		p := d.idx(lo)
		chunk := len(items)
		if c := len(d.buf) - p; c < chunk {
			chunk = c
		}
		copy(d.buf[p:p+chunk], items[:chunk])
		lo += chunk
		items = items[chunk:]
	}
}

// moveLeft copies the logical block [from, from+n) to [to, to+n), to < from,
// walking front to back so overlapping regions are never read after being
// overwritten.  Each step copies the largest span that is contiguous in both
// the source and destination, so a wrapped block needs at most a few copies.
func (d *Deque[T]) moveLeft(from, to, n int) {
	for n > 0 {
		sp := d.idx(from)
		dp := d.idx(to)
		chunk := n
		if c := len(d.buf) - sp; c < chunk {
			chunk = c
		}
		if c := len(d.buf) - dp; c < chunk {
			chunk = c
		}
		copy(d.buf[dp:dp+chunk], d.buf[sp:sp+chunk])
		from += chunk
		to += chunk
		n -= chunk
	}
}

// moveRight is the mirror of moveLeft for to > from, walking back to front.
func (d *Deque[T]) moveRight(from, to, n int) {
	for n > 0 {
		sp := d.idx(from + n - 1)
		dp := d.idx(to + n - 1)
		chunk := n
		if c := sp + 1; c < chunk {
			chunk = c
		}
		if c := dp + 1; c < chunk {
			chunk = c
		}
		copy(d.buf[dp-chunk+1:dp+1], d.buf[sp-chunk+1:sp+1])
		n -= chunk
	}
}
