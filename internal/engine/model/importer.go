package model

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/hopper/internal/engine/texture"
)

// Importer turns an asset file into a mesh, appending its vertices to pool.
// A non-nil error may come with a partial mesh; the mesh is never nil.
type Importer interface {
	Import(path string, pool *VertexPool) (*Mesh, error)
}

// Import errors.
var (
	ErrIndexType  = errors.New("unsupported index type")
	ErrNoIndices  = errors.New("primitive has no indices")
	ErrNoPosition = errors.New("primitive has no POSITION attribute")
	ErrIndexRange = errors.New("index out of range")
)

// GLTFImporter reads glTF 2.0 (.gltf and .glb) files.
type GLTFImporter struct{}

// NewGLTFImporter creates a glTF importer.
func NewGLTFImporter() *GLTFImporter {
	return &GLTFImporter{}
}

// Import opens a glTF file and imports every scene in it.
func (GLTFImporter) Import(path string, pool *VertexPool) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return &Mesh{Bounds: EmptyBounds()}, fmt.Errorf("open %s: %w", path, err)
	}
	return ImportDocument(doc, filepath.Dir(path), pool)
}

// ImportDocument imports an already decoded document. dir resolves
// relative image URIs.
func ImportDocument(doc *gltf.Document, dir string, pool *VertexPool) (*Mesh, error) {
	d := &docImporter{
		doc:      doc,
		dir:      dir,
		pool:     pool,
		mesh:     &Mesh{Bounds: EmptyBounds()},
		textures: make(map[int]*image.RGBA),
		visiting: make(map[int]bool),
	}

	for _, sc := range doc.Scenes {
		for _, n := range sc.Nodes {
			d.walk(n, mgl32.Ident4())
		}
	}

	return d.mesh, errors.Join(d.errs...)
}

type docImporter struct {
	doc      *gltf.Document
	dir      string
	pool     *VertexPool
	mesh     *Mesh
	errs     []error
	textures map[int]*image.RGBA
	visiting map[int]bool
}

func (d *docImporter) fail(err error) {
	d.errs = append(d.errs, err)
}

// walk visits a node with the transform inherited from its parents.
func (d *docImporter) walk(idx int, parent mgl32.Mat4) {
	if idx < 0 || idx >= len(d.doc.Nodes) {
		d.fail(fmt.Errorf("node %d: %w", idx, ErrIndexRange))
		return
	}
	if d.visiting[idx] {
		d.fail(fmt.Errorf("node %d: cycle in node hierarchy", idx))
		return
	}
	d.visiting[idx] = true
	defer delete(d.visiting, idx)

	node := d.doc.Nodes[idx]
	world := parent.Mul4(LocalTransform(node))

	if node.Mesh != nil {
		d.addMesh(*node.Mesh, world)
	}
	for _, child := range node.Children {
		d.walk(child, world)
	}
}

// LocalTransform returns the node matrix when set, otherwise T × R × S.
// Zero-valued rotation and scale are treated as identity.
func LocalTransform(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i := range m {
		m[i] = float32(n.Matrix[i])
	}
	if m != (mgl32.Mat4{}) && m != mgl32.Ident4() {
		return m
	}

	t := mgl32.Translate3D(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))

	q := mgl32.Quat{
		W: float32(n.Rotation[3]),
		V: mgl32.Vec3{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])},
	}
	r := mgl32.Ident4()
	if q != (mgl32.Quat{}) {
		r = q.Normalize().Mat4()
	}

	sv := mgl32.Vec3{float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])}
	if sv == (mgl32.Vec3{}) {
		sv = mgl32.Vec3{1, 1, 1}
	}
	s := mgl32.Scale3D(sv[0], sv[1], sv[2])

	return t.Mul4(r).Mul4(s)
}

func (d *docImporter) addMesh(idx int, world mgl32.Mat4) {
	if idx < 0 || idx >= len(d.doc.Meshes) {
		d.fail(fmt.Errorf("mesh %d: %w", idx, ErrIndexRange))
		return
	}
	for pi, p := range d.doc.Meshes[idx].Primitives {
		prim, err := d.loadPrimitive(p, world)
		if err != nil {
			d.fail(fmt.Errorf("mesh %d primitive %d: %w", idx, pi, err))
			continue
		}
		d.mesh.Primitives = append(d.mesh.Primitives, prim)
	}
}

func (d *docImporter) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(d.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: %w", idx, ErrIndexRange)
	}
	return d.doc.Accessors[idx], nil
}

func (d *docImporter) loadPrimitive(p *gltf.Primitive, world mgl32.Mat4) (Primitive, error) {
	if p.Mode != gltf.PrimitiveTriangles {
		return Primitive{}, fmt.Errorf("primitive mode %v is not triangles", p.Mode)
	}
	if p.Indices == nil {
		return Primitive{}, ErrNoIndices
	}
	idxAcc, err := d.accessor(*p.Indices)
	if err != nil {
		return Primitive{}, err
	}
	switch idxAcc.ComponentType {
	case gltf.ComponentUshort, gltf.ComponentUint:
	default:
		return Primitive{}, fmt.Errorf("%w: %v", ErrIndexType, idxAcc.ComponentType)
	}

	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return Primitive{}, ErrNoPosition
	}
	posAcc, err := d.accessor(posIdx)
	if err != nil {
		return Primitive{}, err
	}
	positions, err := modeler.ReadPosition(d.doc, posAcc, nil)
	if err != nil {
		return Primitive{}, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if i, ok := p.Attributes[gltf.NORMAL]; ok {
		acc, err := d.accessor(i)
		if err != nil {
			return Primitive{}, err
		}
		if normals, err = modeler.ReadNormal(d.doc, acc, nil); err != nil {
			return Primitive{}, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if i, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acc, err := d.accessor(i)
		if err != nil {
			return Primitive{}, err
		}
		if uvs, err = modeler.ReadTextureCoord(d.doc, acc, nil); err != nil {
			return Primitive{}, fmt.Errorf("read texcoords: %w", err)
		}
	}

	indices, err := modeler.ReadIndices(d.doc, idxAcc, nil)
	if err != nil {
		return Primitive{}, fmt.Errorf("read indices: %w", err)
	}

	base := uint32(d.pool.Len())
	for i, v := range indices {
		if int(v) >= len(positions) {
			return Primitive{}, fmt.Errorf("index %d of %d vertices: %w", v, len(positions), ErrIndexRange)
		}
		indices[i] = v + base
	}

	vertices := make([]Vertex, len(positions))
	for i, pos := range positions {
		v := Vertex{Position: pos, Normal: DefaultNormal}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.TexCoord = uvs[i]
		}
		vertices[i] = v
		d.mesh.Bounds.Extend(mgl32.TransformCoordinate(mgl32.Vec3(pos), world))
	}
	d.pool.Append(vertices...)

	return Primitive{
		Indices:   indices,
		Transform: world,
		Material:  d.material(p.Material),
	}, nil
}

func (d *docImporter) material(idx *int) Material {
	m := Material{Color: mgl32.Vec3{1, 1, 1}}
	if idx == nil {
		return m
	}
	if *idx < 0 || *idx >= len(d.doc.Materials) {
		d.fail(fmt.Errorf("material %d: %w", *idx, ErrIndexRange))
		return m
	}

	pbr := d.doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil {
		return m
	}
	if f := pbr.BaseColorFactor; f != nil {
		m.Color = mgl32.Vec3{float32(f[0]), float32(f[1]), float32(f[2])}
	}
	if pbr.BaseColorTexture != nil {
		tex, err := d.texture(pbr.BaseColorTexture.Index)
		if err != nil {
			d.fail(fmt.Errorf("material %d: %w", *idx, err))
		} else {
			m.Texture = tex
		}
	}
	return m
}

func (d *docImporter) texture(idx int) (*image.RGBA, error) {
	if idx < 0 || idx >= len(d.doc.Textures) {
		return nil, fmt.Errorf("texture %d: %w", idx, ErrIndexRange)
	}
	src := d.doc.Textures[idx].Source
	if src == nil || *src < 0 || *src >= len(d.doc.Images) {
		return nil, fmt.Errorf("texture %d has no usable image", idx)
	}
	if img, ok := d.textures[*src]; ok {
		return img, nil
	}

	data, err := d.imageData(d.doc.Images[*src])
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", *src, err)
	}
	rgba, err := texture.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", *src, err)
	}
	d.textures[*src] = rgba
	return rgba, nil
}

func (d *docImporter) imageData(img *gltf.Image) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		return d.bufferView(*img.BufferView)
	case strings.HasPrefix(img.URI, "data:"):
		comma := strings.IndexByte(img.URI, ',')
		if comma < 0 || !strings.Contains(img.URI[:comma], ";base64") {
			return nil, errors.New("unsupported data URI")
		}
		return base64.StdEncoding.DecodeString(img.URI[comma+1:])
	case img.URI != "":
		name, err := url.PathUnescape(img.URI)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(filepath.Join(d.dir, filepath.FromSlash(name)))
	}
	return nil, errors.New("image has neither buffer view nor URI")
}

func (d *docImporter) bufferView(idx int) ([]byte, error) {
	if idx < 0 || idx >= len(d.doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d: %w", idx, ErrIndexRange)
	}
	bv := d.doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(d.doc.Buffers) {
		return nil, fmt.Errorf("buffer %d: %w", bv.Buffer, ErrIndexRange)
	}
	data := d.doc.Buffers[bv.Buffer].Data
	end := bv.ByteOffset + bv.ByteLength
	if end > len(data) {
		return nil, fmt.Errorf("buffer view %d ends at %d past %d bytes: %w", idx, end, len(data), ErrIndexRange)
	}
	return data[bv.ByteOffset:end], nil
}
