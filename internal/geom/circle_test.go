package geom

import "testing"

func TestCircle_Intersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		posA     Vec2
		posB     Vec2
		overlaps bool
	}{
		{"overlapping", NewCircle(5), NewCircle(5), V(0, 0), V(8, 0), true},
		{"separate", NewCircle(5), NewCircle(5), V(0, 0), V(20, 0), false},
		{"touching is not overlap", NewCircle(5), NewCircle(5), V(0, 0), V(10, 0), false},
		{"coincident centers", NewCircle(3), NewCircle(3), V(1, 1), V(1, 1), true},
		{"diagonal overlap", NewCircle(2), NewCircle(2), V(0, 0), V(2, 2), true},
		{"unequal radii", NewCircle(1), NewCircle(10), V(0, 0), V(10.5, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b, tt.posA, tt.posB); got != tt.overlaps {
				t.Errorf("Intersects = %v, want %v", got, tt.overlaps)
			}
			// symmetric
			if got := tt.b.Intersects(tt.a, tt.posB, tt.posA); got != tt.overlaps {
				t.Errorf("reverse Intersects = %v, want %v", got, tt.overlaps)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := NewRect(0, 0, 100, 50)
	if r.Width() != 100 || r.Height() != 50 {
		t.Errorf("size = %v x %v, want 100 x 50", r.Width(), r.Height())
	}
	if r.Center() != V(50, 25) {
		t.Errorf("Center = %v, want {50 25}", r.Center())
	}
	if !r.Contains(V(50, 25)) || r.Contains(V(-1, 25)) {
		t.Error("Contains misclassified point")
	}
}
