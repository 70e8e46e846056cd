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

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.Centered(20, 6)

	if inner.W != 20 || inner.H != 6 {
		t.Fatalf("Centered size = %dx%d, expected 20x6", inner.W, inner.H)
	}
	if inner.X != 30 || inner.Y != 9 {
		t.Errorf("Centered origin = (%d, %d), expected (30, 9)", inner.X, inner.Y)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionUsePulse)
	if !f.Has(ActionUsePulse) {
		t.Error("frame should have UsePulse after Set")
	}
	if f.Has(ActionUp) {
		t.Error("frame should not have Up")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
	if !clone.Has(ActionUsePulse) {
		t.Error("clone should be unaffected by Clear")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should report no actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionCraftShield.String() != "CraftShield" {
		t.Errorf("ActionCraftShield.String() = %q", ActionCraftShield.String())
	}
	if Action(999).String() != "Unknown" {
		t.Errorf("unknown action String() = %q", Action(999).String())
	}
}
