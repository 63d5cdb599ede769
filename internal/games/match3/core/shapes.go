package core

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

// ShapeKind classifies a scored group of tokens.
type ShapeKind uint8

const (
	ShapeHorizontal ShapeKind = iota
	ShapeVertical
	ShapeL
	ShapeT
	ShapeCross
)

// String returns the string representation of a shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeHorizontal:
		return "horizontal"
	case ShapeVertical:
		return "vertical"
	case ShapeL:
		return "L"
	case ShapeT:
		return "T"
	case ShapeCross:
		return "cross"
	default:
		return "unknown"
	}
}

// Composite reports whether the kind is formed from two intersecting runs.
func (k ShapeKind) Composite() bool {
	return k == ShapeL || k == ShapeT || k == ShapeCross
}

// Shape is a plain run or a composite of intersecting runs. Tokens holds the
// distinct tokens of the shape ordered bottom row first. Score is assigned by
// the scorer after detection.
type Shape struct {
	Kind   ShapeKind
	Type   TokenType
	Tokens []*Token
	Score  int
}

// Len returns the number of distinct tokens in the shape.
func (s *Shape) Len() int {
	return len(s.Tokens)
}

// Contains reports whether the shape includes the token at c.
func (s *Shape) Contains(c Coord) bool {
	return lo.ContainsBy(s.Tokens, func(t *Token) bool { return t.Pos() == c })
}

// Positions returns the positions of the shape's tokens.
func (s *Shape) Positions() []Coord {
	return lo.Map(s.Tokens, func(t *Token, _ int) Coord { return t.Pos() })
}

// Key identifies the shape by its token-position set. Two shapes with the
// same positions have the same key regardless of kind.
func (s *Shape) Key() uint64 {
	buf := make([]byte, 0, 8*len(s.Tokens))
	for _, c := range s.Positions() {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(c.Col))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(c.Row))
	}
	return xxhash.Sum64(buf)
}

// newShape builds a shape from the union of the given token lists.
func newShape(kind ShapeKind, groups ...[]*Token) *Shape {
	s := &Shape{Kind: kind}
	s.absorb(groups...)
	if len(s.Tokens) > 0 {
		s.Type = s.Tokens[0].Type
	}
	return s
}

// absorb adds tokens to the shape, keeping them distinct and ordered.
func (s *Shape) absorb(groups ...[]*Token) {
	all := slices.Concat(append([][]*Token{s.Tokens}, groups...)...)
	s.Tokens = lo.UniqBy(all, func(t *Token) Coord { return t.Pos() })
	slices.SortFunc(s.Tokens, func(a, b *Token) int {
		switch {
		case a.Pos() == b.Pos():
			return 0
		case a.Pos().Less(b.Pos()):
			return -1
		default:
			return 1
		}
	})
}

// MergeShapes combines detected runs into shapes. Each horizontal/vertical
// pair is checked in detection order; the first matching rule of Cross, L
// and T forms a composite that consumes both runs. Runs or composites that
// still share a token afterwards are folded into the earliest composite, so
// no token belongs to two shapes. Composites come first in formation order,
// followed by the remaining horizontal runs and then the remaining vertical runs.
// Candidates covering the same token set as an earlier shape are dropped.
func MergeShapes(horizontal, vertical []Run) []*Shape {
	const free = -1
	ownerH := slices.Repeat([]int{free}, len(horizontal))
	ownerV := slices.Repeat([]int{free}, len(vertical))
	var composites []*Shape
	// parent redirects a composite that was folded into another.
	var parent []int
	find := func(i int) int {
		for parent[i] != i {
			i = parent[i]
		}
		return i
	}
	form := func(kind ShapeKind, h, v Run) int {
		id := len(composites)
		composites = append(composites, newShape(kind, h.Tokens, v.Tokens))
		parent = append(parent, id)
		return id
	}

	for i, h := range horizontal {
		for j, v := range vertical {
			if ownerV[j] != free {
				continue
			}
			kind, ok := classify(h, v)
			if !ok {
				continue
			}
			id := form(kind, h, v)
			ownerH[i] = id
			ownerV[j] = id
			break
		}
	}

	for i, h := range horizontal {
		for j, v := range vertical {
			if _, ok := intersection(h, v); !ok {
				continue
			}
			switch {
			case ownerH[i] == free && ownerV[j] == free:
				kind, _ := classify(h, v)
				id := form(kind, h, v)
				ownerH[i] = id
				ownerV[j] = id
			case ownerH[i] == free:
				id := find(ownerV[j])
				composites[id].absorb(h.Tokens)
				ownerH[i] = id
			case ownerV[j] == free:
				id := find(ownerH[i])
				composites[id].absorb(v.Tokens)
				ownerV[j] = id
			default:
				a, b := find(ownerH[i]), find(ownerV[j])
				if a == b {
					continue
				}
				if b < a {
					a, b = b, a
				}
				composites[a].absorb(composites[b].Tokens)
				parent[b] = a
			}
		}
	}

	var shapes []*Shape
	seen := make(map[uint64][]*Shape)
	add := func(s *Shape) {
		key := s.Key()
		for _, other := range seen[key] {
			if slices.Equal(other.Positions(), s.Positions()) {
				return
			}
		}
		seen[key] = append(seen[key], s)
		shapes = append(shapes, s)
	}
	for id, s := range composites {
		if find(id) == id {
			add(s)
		}
	}
	for i, h := range horizontal {
		if ownerH[i] == free {
			add(newShape(ShapeHorizontal, h.Tokens))
		}
	}
	for j, v := range vertical {
		if ownerV[j] == free {
			add(newShape(ShapeVertical, v.Tokens))
		}
	}
	return shapes
}

// DetectShapes runs detection and merging on the current board.
func DetectShapes(b *Board) []*Shape {
	h, v := DetectRuns(b)
	return MergeShapes(h, v)
}

// intersection returns the cell shared by two perpendicular runs.
func intersection(a, b Run) (Coord, bool) {
	if a.Orientation == b.Orientation {
		return Coord{}, false
	}
	h, v := a, b
	if h.Orientation == Vertical {
		h, v = v, h
	}
	c := Coord{Col: v.First().Col, Row: h.First().Row}
	if h.indexOf(c) < 0 || v.indexOf(c) < 0 {
		return Coord{}, false
	}
	return c, true
}

// classify decides the composite kind for a horizontal and a vertical run.
// Returns false if the runs do not share a token.
//
// Cross: same type, shared token at the middle of both runs, both at least 5 long.
// L: shared token at an end of both runs.
// T: every other intersection, including a middle touching an end.
func classify(h, v Run) (ShapeKind, bool) {
	c, ok := intersection(h, v)
	if !ok {
		return 0, false
	}
	ih, iv := h.indexOf(c), v.indexOf(c)
	nh, nv := h.Len(), v.Len()

	switch {
	case h.Type() == v.Type() && nh >= 5 && nv >= 5 && isMiddle(ih, nh) && isMiddle(iv, nv):
		return ShapeCross, true
	case isEnd(ih, nh) && isEnd(iv, nv):
		return ShapeL, true
	default:
		return ShapeT, true
	}
}

func isEnd(i, n int) bool {
	return i == 0 || i == n-1
}

// isMiddle reports whether i is a midpoint of a run of length n. Even
// lengths have two midpoints.
func isMiddle(i, n int) bool {
	return i == n/2 || (n%2 == 0 && i == n/2-1)
}
