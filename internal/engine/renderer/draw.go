package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hopper/internal/engine/scene"
)

// DrawCall is one primitive of one instance, ready to submit.
type DrawCall struct {
	Instance  scene.InstanceID
	Primitive *scene.Primitive
	// Model is instance × primitive.
	Model mgl32.Mat4
	// MVP is viewProj × instance × primitive.
	MVP mgl32.Mat4
}

// BuildDrawList appends the draw calls of every visible instance of pass to
// dst, in instance creation order.
func BuildDrawList(sc *scene.Scene, pass scene.Pass, viewProj mgl32.Mat4, dst []DrawCall) []DrawCall {
	sc.Visible(pass, func(id scene.InstanceID, inst *scene.Instance, mesh *scene.Mesh) {
		for i := range mesh.Primitives {
			p := &mesh.Primitives[i]
			m := inst.Transform.Mul4(p.Transform)
			dst = append(dst, DrawCall{
				Instance:  id,
				Primitive: p,
				Model:     m,
				MVP:       viewProj.Mul4(m),
			})
		}
	})
	return dst
}
