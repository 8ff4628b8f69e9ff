package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single mesh vertex in model space
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	UV     mgl32.Vec2
}

// Mesh is an indexed triangle list ready for upload
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds returns the axis-aligned extent of the mesh after applying transform
func (m *Mesh) Bounds(transform mgl32.Mat4) (mgl32.Vec3, mgl32.Vec3) {
	if m == nil || len(m.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	inf := float32(math.Inf(1))
	lo := mgl32.Vec3{inf, inf, inf}
	hi := mgl32.Vec3{-inf, -inf, -inf}
	for _, v := range m.Vertices {
		p := mgl32.TransformCoordinate(v.Pos, transform)
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Cube is an axis-aligned box given by its centre and full dimensions
type Cube struct {
	Center mgl32.Vec3
	Dim    mgl32.Vec3
}

// Min returns the lowest corner of the cube
func (c Cube) Min() mgl32.Vec3 {
	return c.Center.Sub(c.Dim.Mul(0.5))
}

// Max returns the highest corner of the cube
func (c Cube) Max() mgl32.Vec3 {
	return c.Center.Add(c.Dim.Mul(0.5))
}

// MeshOffset pairs a mesh with the world-space offset it is drawn at
type MeshOffset struct {
	Offset mgl32.Vec3
	Mesh   *Mesh
}

// Transform returns the translation matrix for the offset
func (mo MeshOffset) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(mo.Offset.X(), mo.Offset.Y(), mo.Offset.Z())
}

// PointLight is an omni light used when baking lightmaps
type PointLight struct {
	Pos      mgl32.Vec3
	Strength float32
}

// MeshBuilder accumulates quads and boxes into a single mesh
type MeshBuilder struct {
	vertices []Vertex
	indices  []uint32
}

// NewMeshBuilder creates an empty mesh builder
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{}
}

// AddRectangle appends the unit quad [-0.5, 0.5]^2 at z=0 transformed by
// transform. The quad faces +Z before transformation.
func (b *MeshBuilder) AddRectangle(transform mgl32.Mat4) *MeshBuilder {
	normal := mgl32.TransformNormal(mgl32.Vec3{0, 0, 1}, transform)
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}
	corners := [4]mgl32.Vec3{
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
		{0.5, 0.5, 0},
		{-0.5, 0.5, 0},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	base := uint32(len(b.vertices))
	for i, c := range corners {
		b.vertices = append(b.vertices, Vertex{
			Pos:    mgl32.TransformCoordinate(c, transform),
			Normal: normal,
			UV:     uvs[i],
		})
	}
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	return b
}

// AddCube appends the six faces of the cube
func (b *MeshBuilder) AddCube(c Cube) *MeshBuilder {
	d := c.Dim
	// face normal, and the two in-plane axes scaled to the face size
	faces := []struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, d.Y(), 0}, mgl32.Vec3{0, 0, d.Z()}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -d.Y(), 0}, mgl32.Vec3{0, 0, d.Z()}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-d.X(), 0, 0}, mgl32.Vec3{0, 0, d.Z()}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{d.X(), 0, 0}, mgl32.Vec3{0, 0, d.Z()}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{d.X(), 0, 0}, mgl32.Vec3{0, d.Y(), 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-d.X(), 0, 0}, mgl32.Vec3{0, d.Y(), 0}},
	}
	for _, f := range faces {
		center := c.Center.Add(mgl32.Vec3{
			f.normal.X() * d.X() / 2,
			f.normal.Y() * d.Y() / 2,
			f.normal.Z() * d.Z() / 2,
		})
		hu := f.u.Mul(0.5)
		hv := f.v.Mul(0.5)
		base := uint32(len(b.vertices))
		b.vertices = append(b.vertices,
			Vertex{Pos: center.Sub(hu).Sub(hv), Normal: f.normal, UV: mgl32.Vec2{0, 0}},
			Vertex{Pos: center.Add(hu).Sub(hv), Normal: f.normal, UV: mgl32.Vec2{1, 0}},
			Vertex{Pos: center.Add(hu).Add(hv), Normal: f.normal, UV: mgl32.Vec2{1, 1}},
			Vertex{Pos: center.Sub(hu).Add(hv), Normal: f.normal, UV: mgl32.Vec2{0, 1}},
		)
		b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return b
}

// Mesh returns the accumulated mesh. The builder can keep adding afterwards
// without affecting the returned mesh.
func (b *MeshBuilder) Mesh() *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, len(b.vertices)),
		Indices:  make([]uint32, len(b.indices)),
	}
	copy(m.Vertices, b.vertices)
	copy(m.Indices, b.indices)
	return m
}
