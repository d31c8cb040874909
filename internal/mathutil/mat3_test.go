package mathutil

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSquareToQuadCorners(t *testing.T) {
	tests := []struct {
		name string
		quad [4][2]float64
	}{
		{"affine", [4][2]float64{{0, 0}, {10, 0}, {10, 5}, {0, 5}}},
		{"trapezoid", [4][2]float64{{30, 0}, {50, 0}, {79, 59}, {0, 59}}},
		{"skewed", [4][2]float64{{3, 4}, {40, 1}, {35, 30}, {-2, 25}}},
	}
	unit := [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := SquareToQuad(tt.quad)
			for i, u := range unit {
				x, y, ok := m.Project(u[0], u[1])
				if !ok || !near(x, tt.quad[i][0]) || !near(y, tt.quad[i][1]) {
					t.Errorf("corner %d: got (%v, %v, %v), want %v", i, x, y, ok, tt.quad[i])
				}
			}
			inv := m.Inverse()
			for i, q := range tt.quad {
				x, y, ok := inv.Project(q[0], q[1])
				if !ok || !near(x, unit[i][0]) || !near(y, unit[i][1]) {
					t.Errorf("inverse corner %d: got (%v, %v)", i, x, y)
				}
			}
		})
	}
}

func TestInverseSingular(t *testing.T) {
	var m Mat3
	if m.Inverse() != Mat3Identity() {
		t.Fatal("singular inverse should fall back to identity")
	}
}

func TestVecAngle(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 2, 0}
	if !near(a.Angle(b), math.Pi/2) {
		t.Errorf("Angle = %v, want π/2", a.Angle(b))
	}
	if !near(a.Angle(a.Scale(-3)), math.Pi) {
		t.Errorf("opposite angle = %v, want π", a.Angle(a.Scale(-3)))
	}
	c := Centroid(Vec3{0, 0, 0}, Vec3{2, 0, 0}, Vec3{2, 2, 0}, Vec3{0, 2, 4})
	if c != (Vec3{1, 1, 1}) {
		t.Errorf("Centroid = %v", c)
	}
}
