package neighbor

import (
	"fmt"
	"slices"
)

// Set is the activity of the four orthogonal neighbors of a cell.
// Out-of-grid neighbors are inactive.
type Set struct {
	N, S, E, W bool
}

func (s Set) String() string {
	b := []byte("....")
	for i, on := range []bool{s.N, s.S, s.E, s.W} {
		if on {
			b[i] = "NSEW"[i]
		}
	}
	return string(b)
}

// Count returns the number of active neighbors.
func (s Set) Count() int {
	n := 0
	for _, on := range []bool{s.N, s.S, s.E, s.W} {
		if on {
			n++
		}
	}
	return n
}

// All enumerates the 16 neighbor combinations in a stable order.
func All() []Set {
	out := make([]Set, 0, 16)
	for i := range 16 {
		out = append(out, Set{N: i&8 != 0, S: i&4 != 0, E: i&2 != 0, W: i&1 != 0})
	}
	return out
}

// Predicate is a named test over a Set. The declaration order is the
// precedence order used by [Table].
type Predicate int

const (
	TopLeftCorner     Predicate = iota // !N && !W
	TopRightCorner                     // !N && !E
	BottomLeftCorner                   // !S && !W
	BottomRightCorner                  // !S && !E

	TopBlock    // !N && S && !E && !W
	TopEnd      // !N && S
	BottomBlock // !S && N && !E && !W
	BottomEnd   // !S && N
	LeftBlock   // !W && E && !N && !S
	LeftEnd     // !W && E
	RightBlock  // !E && W && !N && !S
	RightEnd    // !E && W
	OpenBelow   // !S
	OpenRight   // !E

	Alone           // no active neighbor
	AloneVertical   // !N && !S
	AloneHorizontal // !E && !W

	numPredicates
)

var predicateNames = [numPredicates]string{
	"top-left-corner", "top-right-corner", "bottom-left-corner", "bottom-right-corner",
	"top-block", "top-end", "bottom-block", "bottom-end",
	"left-block", "left-end", "right-block", "right-end",
	"open-below", "open-right",
	"alone", "alone-vertical", "alone-horizontal",
}

func (p Predicate) String() string {
	if p < 0 || p >= numPredicates {
		return fmt.Sprintf("predicate(%d)", int(p))
	}
	return predicateNames[p]
}

// Eval reports whether the predicate holds for s.
func (p Predicate) Eval(s Set) bool {
	switch p {
	case TopLeftCorner:
		return !s.N && !s.W
	case TopRightCorner:
		return !s.N && !s.E
	case BottomLeftCorner:
		return !s.S && !s.W
	case BottomRightCorner:
		return !s.S && !s.E
	case TopBlock:
		return !s.N && s.S && !s.E && !s.W
	case TopEnd:
		return !s.N && s.S
	case BottomBlock:
		return !s.S && s.N && !s.E && !s.W
	case BottomEnd:
		return !s.S && s.N
	case LeftBlock:
		return !s.W && s.E && !s.N && !s.S
	case LeftEnd:
		return !s.W && s.E
	case RightBlock:
		return !s.E && s.W && !s.N && !s.S
	case RightEnd:
		return !s.E && s.W
	case OpenBelow:
		return !s.S
	case OpenRight:
		return !s.E
	case Alone:
		return !s.N && !s.S && !s.E && !s.W
	case AloneVertical:
		return !s.N && !s.S
	case AloneHorizontal:
		return !s.E && !s.W
	}
	return false
}

// Rule binds a predicate to the value chosen when it holds.
type Rule[T any] struct {
	When Predicate
	Then T
}

// Table selects a value by neighbor context. Rules are kept sorted by
// predicate precedence regardless of the order they were given in.
type Table[T any] struct {
	Base  T
	Rules []Rule[T]
}

// NewTable builds a table with the given base value and rules.
func NewTable[T any](base T, rules ...Rule[T]) Table[T] {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule[T]) int { return int(a.When) - int(b.When) })
	return Table[T]{Base: base, Rules: sorted}
}

// Select returns the value of the highest-precedence matching rule, or Base
// when no rule matches.
func (t Table[T]) Select(s Set) T {
	for i := len(t.Rules) - 1; i >= 0; i-- {
		if t.Rules[i].When.Eval(s) {
			return t.Rules[i].Then
		}
	}
	return t.Base
}

// Match returns the predicate that Select would use, and false when the base
// value applies.
func (t Table[T]) Match(s Set) (Predicate, bool) {
	for i := len(t.Rules) - 1; i >= 0; i-- {
		if t.Rules[i].When.Eval(s) {
			return t.Rules[i].When, true
		}
	}
	return 0, false
}

// With returns a copy of t with extra rules merged in. A rule for a predicate
// already present replaces the existing one.
func (t Table[T]) With(rules ...Rule[T]) Table[T] {
	merged := make([]Rule[T], 0, len(t.Rules)+len(rules))
	for _, r := range t.Rules {
		if !slices.ContainsFunc(rules, func(n Rule[T]) bool { return n.When == r.When }) {
			merged = append(merged, r)
		}
	}
	return NewTable(t.Base, append(merged, rules...)...)
}
