package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name     string
		outer    Rect
		w, h     int
		expected Rect
	}{
		{"even fit", NewRect(0, 0, 10, 10), 4, 2, NewRect(3, 4, 4, 2)},
		{"odd remainder", NewRect(0, 0, 11, 5), 4, 2, NewRect(3, 1, 4, 2)},
		{"offset outer", NewRect(2, 3, 10, 10), 10, 10, NewRect(2, 3, 10, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outer.Centered(tc.w, tc.h); got != tc.expected {
				t.Errorf("Centered(%d, %d) = %+v, expected %+v", tc.w, tc.h, got, tc.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		val, n, expected int
	}{
		{3, 9, 3},
		{9, 9, 0},
		{-1, 9, 8},
		{-10, 9, 8},
		{5, 0, 0},
	}

	for _, tc := range tests {
		if got := Wrap(tc.val, tc.n); got != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.val, tc.n, got, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
