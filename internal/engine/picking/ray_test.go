package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntersectBox(t *testing.T) {
	min := mgl32.Vec3{-1, -1, -1}
	max := mgl32.Vec3{1, 1, 1}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, true, 4},
		{"inside", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}}, true, 1},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"parallel outside", Ray{mgl32.Vec3{0, 3, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"miss", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBox(min, max)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && mgl32.Abs(got-tt.wantT) > 1e-5 {
				t.Errorf("t = %g, want %g", got, tt.wantT)
			}
		})
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 10}
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(90), 16.0/9, 0.01, 1000)

	r := ScreenToRay(800, 450, 1600, 900, proj.Mul4(view).Inv())

	want := mgl32.Vec3{0, 0, -1}
	for i := range want {
		if mgl32.Abs(r.Direction[i]-want[i]) > 1e-3 {
			t.Errorf("Direction = %v, want -Z", r.Direction)
			break
		}
	}
	if _, hit := r.IntersectBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}); !hit {
		t.Error("center ray misses a box at the look target")
	}
	if p := r.At(1); mgl32.Abs(p.Z()-(r.Origin.Z()-1)) > 1e-3 {
		t.Errorf("At(1) = %v", p)
	}
}
