package components

import "testing"

func TestLaneKindForIndex(t *testing.T) {
	tests := []struct {
		index int
		want  LaneKind
	}{
		{0, LaneSafe},
		{1, LaneTraffic},
		{2, LaneSafe},
		{17, LaneTraffic},
	}

	for _, tt := range tests {
		if got := LaneKindForIndex(tt.index); got != tt.want {
			t.Errorf("LaneKindForIndex(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestLaneGeometry(t *testing.T) {
	lane := &LaneComponent{Index: 3, Kind: LaneTraffic, Y: 180, Height: 60}

	if lane.Top() != 240 {
		t.Errorf("Top() = %v, want 240", lane.Top())
	}
	if lane.CenterY() != 210 {
		t.Errorf("CenterY() = %v, want 210", lane.CenterY())
	}
	if !lane.Contains(180) || lane.Contains(240) || lane.Contains(179.9) {
		t.Error("Contains() should cover [Y, Y+Height)")
	}
}

func TestDirection(t *testing.T) {
	if DirectionRight.Sign() != 1 || DirectionLeft.Sign() != -1 {
		t.Error("unexpected direction sign")
	}
	if DirectionRight.Opposite() != DirectionLeft || DirectionLeft.Opposite() != DirectionRight {
		t.Error("unexpected opposite direction")
	}
}
