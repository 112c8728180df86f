package geom

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("Add = %v, want {4 -2}", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Errorf("Sub = %v, want {-2 6}", got)
	}
	if got := a.Scale(2.5); got != V(2.5, 5) {
		t.Errorf("Scale = %v, want {2.5 5}", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v, want -5", got)
	}
}

func TestVec2_Length(t *testing.T) {
	tests := []struct {
		v    Vec2
		want float64
	}{
		{V(3, 4), 5},
		{V(0, 0), 0},
		{V(-1, 0), 1},
		{V(1, 1), math.Sqrt2},
	}

	for _, tt := range tests {
		if got := tt.v.Length(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Length(%v) = %v, want %v", tt.v, got, tt.want)
		}
		if got := tt.v.LengthSquared(); math.Abs(got-tt.want*tt.want) > 1e-12 {
			t.Errorf("LengthSquared(%v) = %v, want %v", tt.v, got, tt.want*tt.want)
		}
	}
}

func TestVec2_Normalize(t *testing.T) {
	n := V(10, 0).Normalize()
	if n != V(1, 0) {
		t.Errorf("Normalize = %v, want {1 0}", n)
	}

	n = V(3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
}

func TestVec2_Normalize_Zero(t *testing.T) {
	if got := V(0, 0).Normalize(); !got.IsZero() {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestVec2_Distance(t *testing.T) {
	if got := V(1, 1).Distance(V(4, 5)); math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestVec2_IsValid(t *testing.T) {
	if !V(1, 2).IsValid() {
		t.Error("finite vector should be valid")
	}
	if (Vec2{X: math.NaN()}).IsValid() {
		t.Error("NaN vector should be invalid")
	}
	if (Vec2{Y: math.Inf(1)}).IsValid() {
		t.Error("Inf vector should be invalid")
	}
}
