package renderer

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/engine/model"
	"github.com/Faultbox/hopper/internal/engine/scene"
	"github.com/Faultbox/hopper/internal/logger"
)

// Resource lifecycle errors.
var (
	ErrFinalized    = errors.New("models already finalized")
	ErrNotFinalized = errors.New("models not finalized")
	ErrIndexRange   = errors.New("primitive index outside vertex pool")
)

// Resources loads models into GPU memory. Every model shares one vertex
// buffer, built once by FinalizeModels; each primitive keeps its own index
// buffer.
type Resources struct {
	device   Device
	importer model.Importer
	scene    *scene.Scene
	log      *zap.Logger

	pool     model.VertexPool
	maxIndex int64
	textures map[*image.RGBA]uint32

	vao, vbo  uint32
	finalized bool
	cleaned   bool
}

// NewResources creates a resource manager that registers meshes in sc.
func NewResources(device Device, importer model.Importer, sc *scene.Scene) *Resources {
	return &Resources{
		device:   device,
		importer: importer,
		scene:    sc,
		log:      logger.Named("resources"),
		maxIndex: -1,
		textures: make(map[*image.RGBA]uint32),
	}
}

// LoadModel imports path, uploads its index buffers and textures, and
// appends a mesh to the catalog. Import problems are logged and yield a
// partial or empty mesh so catalog ids keep following load order.
func (r *Resources) LoadModel(path string) (scene.MeshID, error) {
	if r.finalized || r.cleaned {
		return -1, fmt.Errorf("load %s: %w", path, ErrFinalized)
	}

	imported, err := r.importer.Import(path, &r.pool)
	if err != nil {
		r.log.Warn("model imported with problems", zap.String("path", path), zap.Error(err))
	}
	if imported == nil {
		imported = &model.Mesh{Bounds: model.EmptyBounds()}
	}

	mesh := scene.Mesh{
		Name:   filepath.Base(path),
		Bounds: imported.Bounds,
	}
	for i := range imported.Primitives {
		p := &imported.Primitives[i]
		if len(p.Indices) == 0 {
			continue
		}
		r.maxIndex = max(r.maxIndex, p.MaxIndex())

		prim := scene.Primitive{
			IndexBuffer: r.device.CreateIndexBuffer(p.Indices),
			IndexCount:  int32(len(p.Indices)),
			Transform:   p.Transform,
			Material:    scene.Material{Color: p.Material.Color},
		}
		if p.Material.HasTexture() {
			prim.Material.Texture = r.texture(p.Material.Texture)
			prim.Material.HasTexture = true
		}
		mesh.Primitives = append(mesh.Primitives, prim)
	}

	id := r.scene.AddMesh(mesh)
	r.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("mesh", int(id)),
		zap.Int("primitives", len(mesh.Primitives)),
		zap.Int("pool", r.pool.Len()),
	)
	return id, nil
}

// texture uploads img once, however many primitives share it.
func (r *Resources) texture(img *image.RGBA) uint32 {
	if id, ok := r.textures[img]; ok {
		return id
	}
	id := r.device.CreateTexture(img)
	r.textures[img] = id
	return id
}

// FinalizeModels uploads the shared vertex pool and frees the host copy.
// No model can be loaded afterwards.
func (r *Resources) FinalizeModels() error {
	if r.finalized || r.cleaned {
		return ErrFinalized
	}
	if r.maxIndex >= int64(r.pool.Len()) {
		return fmt.Errorf("%w: index %d, pool holds %d vertices", ErrIndexRange, r.maxIndex, r.pool.Len())
	}

	r.vao, r.vbo = r.device.CreateVertexArray(r.pool.Vertices())
	r.log.Info("vertex pool uploaded",
		zap.Int("vertices", r.pool.Len()),
		zap.Int("meshes", r.scene.MeshCount()),
	)
	r.pool.Release()
	r.finalized = true
	return nil
}

// Finalized reports whether the vertex pool is on the GPU.
func (r *Resources) Finalized() bool {
	return r.finalized && !r.cleaned
}

// VertexArray returns the shared vertex array.
func (r *Resources) VertexArray() uint32 {
	return r.vao
}

// Cleanup releases every device object. Safe to call more than once.
func (r *Resources) Cleanup() {
	if r.cleaned {
		return
	}
	r.scene.EachMesh(func(_ scene.MeshID, m *scene.Mesh) {
		for _, p := range m.Primitives {
			r.device.DeleteBuffer(p.IndexBuffer)
		}
	})
	for _, id := range r.textures {
		r.device.DeleteTexture(id)
	}
	if r.finalized {
		r.device.DeleteVertexArray(r.vao)
		r.device.DeleteBuffer(r.vbo)
	}
	r.textures = nil
	r.pool.Release()
	r.cleaned = true
}
