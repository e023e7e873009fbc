package interval

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestNewRange(t *testing.T) {
	r, err := New(100, 200)
	expect.NoError(t, err)
	expect.EQ(t, r, Range{Start: 100, End: 200})
	expect.EQ(t, r.Len(), 101)

	for _, bad := range [][2]int{{0, 10}, {-5, 10}, {10, 0}, {10, -1}, {20, 10}} {
		_, err := New(bad[0], bad[1])
		if err == nil {
			t.Errorf("New(%d, %d): expected error", bad[0], bad[1])
		}
	}
}

func TestRangeZero(t *testing.T) {
	var z Range
	expect.EQ(t, z.IsZero(), true)
	expect.EQ(t, z.Len(), 0)
	expect.EQ(t, z.Overlaps(Range{Start: 1, End: 10}), false)
	expect.EQ(t, Range{Start: 1, End: 10}.Overlaps(z), false)
	expect.EQ(t, z.String(), "")
}

func TestRangePredicates(t *testing.T) {
	tests := []struct {
		a, b               Range
		overlaps, precedes bool
	}{
		{Range{1, 10}, Range{10, 20}, true, false},
		{Range{1, 10}, Range{11, 20}, false, false}, // exactly adjacent
		{Range{1, 10}, Range{12, 20}, false, true},  // one excluded site
		{Range{5, 8}, Range{1, 10}, true, false},
		{Range{100, 200}, Range{300, 400}, false, true},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.overlaps {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.overlaps)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.overlaps {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.overlaps)
		}
		if got := tt.a.Precedes(tt.b); got != tt.precedes {
			t.Errorf("%v.Precedes(%v) = %v, want %v", tt.a, tt.b, got, tt.precedes)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: 100, End: 200}
	expect.EQ(t, r.Contains(100), true)
	expect.EQ(t, r.Contains(200), true)
	expect.EQ(t, r.Contains(99), false)
	expect.EQ(t, r.Contains(201), false)
	expect.EQ(t, r.ContainsRange(Range{Start: 150, End: 200}), true)
	expect.EQ(t, r.ContainsRange(Range{Start: 150, End: 201}), false)
	expect.EQ(t, r.ContainsRange(Range{}), false)
}

func TestRangeCompare(t *testing.T) {
	expect.EQ(t, Range{1, 5}.LT(Range{2, 3}), true)
	expect.EQ(t, Range{2, 3}.LT(Range{2, 5}), true)
	expect.EQ(t, Range{2, 5}.Compare(Range{2, 5}), 0)
	expect.EQ(t, Range{2, 5}.EQ(Range{2, 5}), true)
	expect.EQ(t, Range{2, 5}.EQ(Range{2, 6}), false)
	expect.EQ(t, Range{3, 5}.LT(Range{2, 9}), false)
}

func TestRangeText(t *testing.T) {
	tests := []struct {
		r    Range
		text string
	}{
		{Range{Start: 340, End: 565}, "340..565"},
		{Range{Start: 467, End: 467}, "467"},
		{Range{Start: 1, End: 2}, "1..2"},
	}
	for _, tt := range tests {
		expect.EQ(t, tt.r.String(), tt.text)
		got, err := Parse(tt.text)
		expect.NoError(t, err)
		expect.EQ(t, got, tt.r)
	}

	for _, bad := range []string{"", "abc", "10..", "..10", "0..5", "20..10", "5..x"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q): expected error", bad)
		}
	}
}
