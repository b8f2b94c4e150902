// Package scene holds the mesh catalog and the instances placed in the world.
// It owns no GPU state; device handles are stored as plain integers.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hopper/internal/engine/model"
)

// MeshID identifies a catalog entry. Ids are assigned in load order and
// never change.
type MeshID int

// InstanceID identifies a placed instance. Ids are stable for the whole run.
type InstanceID int

// NoInstance marks an entity without a visual instance.
const NoInstance InstanceID = -1

// Pass selects which render pass draws an instance.
type Pass uint8

const (
	PassMain Pass = iota
	PassDebugBounds
)

func (p Pass) String() string {
	switch p {
	case PassMain:
		return "main"
	case PassDebugBounds:
		return "debug-bounds"
	}
	return fmt.Sprintf("pass(%d)", uint8(p))
}

// Errors returned for invalid handles.
var (
	ErrUnknownMesh     = errors.New("unknown mesh")
	ErrUnknownInstance = errors.New("unknown instance")
)

// Material references device resources for one primitive.
type Material struct {
	Color      mgl32.Vec3
	Texture    uint32
	HasTexture bool
}

// Primitive is an uploaded primitive: an index buffer into the shared vertex
// buffer, its local transform and material.
type Primitive struct {
	IndexBuffer uint32
	IndexCount  int32
	Transform   mgl32.Mat4
	Material    Material
}

// Mesh is an immutable catalog entry.
type Mesh struct {
	Name       string
	Primitives []Primitive
	Bounds     model.Bounds
}

// Instance places a mesh in the world.
type Instance struct {
	Mesh      MeshID
	Transform mgl32.Mat4
	Pass      Pass
	Visible   bool
}

// Scene is the catalog plus the instance arena. Instances are hidden,
// never removed, so their ids stay valid.
type Scene struct {
	meshes    []Mesh
	instances []Instance
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddMesh appends a mesh to the catalog and returns its id.
func (s *Scene) AddMesh(m Mesh) MeshID {
	s.meshes = append(s.meshes, m)
	return MeshID(len(s.meshes) - 1)
}

// Mesh returns the catalog entry for id.
func (s *Scene) Mesh(id MeshID) (*Mesh, error) {
	if id < 0 || int(id) >= len(s.meshes) {
		return nil, fmt.Errorf("mesh %d: %w", id, ErrUnknownMesh)
	}
	return &s.meshes[id], nil
}

// MeshCount returns the catalog size.
func (s *Scene) MeshCount() int {
	return len(s.meshes)
}

// EachMesh calls fn for every catalog entry in load order.
func (s *Scene) EachMesh(fn func(MeshID, *Mesh)) {
	for i := range s.meshes {
		fn(MeshID(i), &s.meshes[i])
	}
}

// AddInstance places a visible instance of mesh.
func (s *Scene) AddInstance(mesh MeshID, transform mgl32.Mat4, pass Pass) (InstanceID, error) {
	if _, err := s.Mesh(mesh); err != nil {
		return NoInstance, err
	}
	s.instances = append(s.instances, Instance{
		Mesh:      mesh,
		Transform: transform,
		Pass:      pass,
		Visible:   true,
	})
	return InstanceID(len(s.instances) - 1), nil
}

// Instance returns a copy of the instance.
func (s *Scene) Instance(id InstanceID) (Instance, error) {
	if id < 0 || int(id) >= len(s.instances) {
		return Instance{}, fmt.Errorf("instance %d: %w", id, ErrUnknownInstance)
	}
	return s.instances[id], nil
}

// InstanceCount returns the number of instances ever placed.
func (s *Scene) InstanceCount() int {
	return len(s.instances)
}

// SetTransform replaces the world transform of an instance.
func (s *Scene) SetTransform(id InstanceID, m mgl32.Mat4) error {
	if id < 0 || int(id) >= len(s.instances) {
		return fmt.Errorf("instance %d: %w", id, ErrUnknownInstance)
	}
	s.instances[id].Transform = m
	return nil
}

// SetVisible shows or hides an instance.
func (s *Scene) SetVisible(id InstanceID, visible bool) error {
	if id < 0 || int(id) >= len(s.instances) {
		return fmt.Errorf("instance %d: %w", id, ErrUnknownInstance)
	}
	s.instances[id].Visible = visible
	return nil
}

// Visible calls fn for every visible instance of pass in creation order.
func (s *Scene) Visible(pass Pass, fn func(InstanceID, *Instance, *Mesh)) {
	for i := range s.instances {
		inst := &s.instances[i]
		if !inst.Visible || inst.Pass != pass {
			continue
		}
		fn(InstanceID(i), inst, &s.meshes[inst.Mesh])
	}
}

// Bounds returns the world bounds of the visible instances of pass.
func (s *Scene) Bounds(pass Pass) model.Bounds {
	b := model.EmptyBounds()
	s.Visible(pass, func(_ InstanceID, inst *Instance, m *Mesh) {
		b = b.Union(m.Bounds.Transform(inst.Transform))
	})
	return b
}
