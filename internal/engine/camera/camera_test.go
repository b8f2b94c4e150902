package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func TestPositionDefaultAngles(t *testing.T) {
	c := NewFollowCamera(90, 16.0/9.0, 0.01, 1000)
	target := mgl32.Vec3{0, 6, 2.3}

	// Yaw -90 puts the eye behind the target on +Z.
	eye := c.Position(target, DefaultYaw, DefaultPitch)
	want := mgl32.Vec3{0, 6, 12.3}
	if !near(eye, want) {
		t.Errorf("Position = %v, want %v", eye, want)
	}
}

func TestPositionKeepsRadius(t *testing.T) {
	c := NewFollowCamera(90, 1, 0.01, 1000)
	target := mgl32.Vec3{3, -1, 7}

	tests := []struct {
		yaw, pitch float32
	}{
		{0, 0},
		{45, 30},
		{-90, -60},
		{180, 89},
	}
	for _, tt := range tests {
		d := c.Position(target, tt.yaw, tt.pitch).Sub(target).Len()
		if d < DefaultRadius-eps || d > DefaultRadius+eps {
			t.Errorf("yaw=%v pitch=%v: distance %v, want %v", tt.yaw, tt.pitch, d, DefaultRadius)
		}
	}
}

func TestPitchRaisesEye(t *testing.T) {
	c := NewFollowCamera(90, 1, 0.01, 1000)
	eye := c.Position(mgl32.Vec3{}, 0, 90)
	if !near(eye, mgl32.Vec3{0, DefaultRadius, 0}) {
		t.Errorf("Position at pitch 90 = %v", eye)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewFollowCamera(90, 1, 0.01, 1000)
	target := mgl32.Vec3{1, 2, 3}

	view := c.ViewMatrix(target, 30, 20)
	p := view.Mul4x1(target.Vec4(1))

	// Target sits on the view axis at distance Radius.
	if abs(p.X()) > eps || abs(p.Y()) > eps {
		t.Errorf("target off axis in view space: %v", p)
	}
	if abs(p.Z()+DefaultRadius) > eps {
		t.Errorf("target view depth = %v, want %v", p.Z(), -DefaultRadius)
	}
	if !near(c.Eye, c.Position(target, 30, 20)) {
		t.Error("expected cached eye to match Position")
	}
}

func TestViewProjectionComposition(t *testing.T) {
	c := NewFollowCamera(90, 16.0/9.0, 0.01, 1000)
	target := mgl32.Vec3{0, 1, 0}

	got := c.ViewProjection(target, -90, 10)
	want := c.ProjectionMatrix().Mul4(c.ViewMatrix(target, -90, 10))
	if !got.ApproxEqual(want) {
		t.Errorf("ViewProjection = %v, want %v", got, want)
	}
}

func TestDirectionsFollowCamera(t *testing.T) {
	c := NewFollowCamera(90, 1, 0.01, 1000)

	for _, yaw := range []float32{-90, 0, 37, 180} {
		eye := c.Position(mgl32.Vec3{}, yaw, 0)
		fx, fz := ForwardDirection(yaw)

		// Forward points from the eye towards the target.
		if abs(fx+eye.X()/DefaultRadius) > eps || abs(fz+eye.Z()/DefaultRadius) > eps {
			t.Errorf("yaw=%v: forward (%v, %v) not opposite eye %v", yaw, fx, fz, eye)
		}

		rx, rz := RightDirection(yaw)
		if dot := fx*rx + fz*rz; abs(dot) > eps {
			t.Errorf("yaw=%v: forward and right not perpendicular (dot %v)", yaw, dot)
		}
	}

	// At the starting yaw forward is -Z and right is +X.
	fx, fz := ForwardDirection(DefaultYaw)
	rx, rz := RightDirection(DefaultYaw)
	if abs(fx) > eps || abs(fz+1) > eps || abs(rx-1) > eps || abs(rz) > eps {
		t.Errorf("forward (%v, %v) right (%v, %v)", fx, fz, rx, rz)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// near compares per component with an absolute tolerance, so components
// that should be zero accept float noise such as cos(-90°).
func near(a, b mgl32.Vec3) bool {
	for i := range a {
		if abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
