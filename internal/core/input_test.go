package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionLeft, ActionConfirm)

	if !f.Has(ActionLeft) || !f.Has(ActionConfirm) {
		t.Error("FrameOf should set every given action")
	}
	if f.Has(ActionHint) {
		t.Error("Has(ActionHint) = true, expected false")
	}

	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should reset all actions")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionLeft, "Left"},
		{ActionHint, "Hint"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("%d.String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestColorBright(t *testing.T) {
	tests := []struct {
		in, expected Color
	}{
		{ColorRed, ColorBrightRed},
		{ColorWhite, ColorBrightWhite},
		{ColorBrightBlue, ColorBrightBlue},
		{ColorOrange, ColorOrange},
		{ColorDefault, ColorDefault},
	}
	for _, tc := range tests {
		if got := tc.in.Bright(); got != tc.expected {
			t.Errorf("Color(%d).Bright() = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}
