package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Lightmap is a baked lighting image owned by the renderer that produced it
type Lightmap interface {
	// Size returns the lightmap resolution in texels
	Size() (int, int)
	// Release frees the backing storage; the lightmap must not be drawn afterwards
	Release()
}

// OcclusionQuery is a non-blocking visibility test. Results become available
// some frames after the query was issued and are polled, never waited on.
type OcclusionQuery interface {
	Ready() bool
	// Visible is only meaningful once Ready reports true
	Visible() bool
}

// Shader describes how a surface type is shaded when drawn and baked
type Shader struct {
	Name    string
	Ambient float32
	Albedo  color.RGBA
}

// Shaders holds the per-surface shaders used for room geometry
type Shaders struct {
	Floor         *Shader
	Wall          *Shader
	Ceiling       *Shader
	SkirtingBoard *Shader
}

// DefaultShaders returns the stock backrooms palette
func DefaultShaders() Shaders {
	return Shaders{
		Floor:         &Shader{Name: "floor", Ambient: 0.15, Albedo: color.RGBA{150, 120, 70, 255}},
		Wall:          &Shader{Name: "wall", Ambient: 0.2, Albedo: color.RGBA{200, 190, 120, 255}},
		Ceiling:       &Shader{Name: "ceiling", Ambient: 0.25, Albedo: color.RGBA{220, 220, 200, 255}},
		SkirtingBoard: &Shader{Name: "skirting", Ambient: 0.1, Albedo: color.RGBA{90, 70, 40, 255}},
	}
}

// Renderer is the drawing backend the room systems talk to
type Renderer interface {
	// FillMesh draws mesh with the given transform, tinted and lit by lightmap (may be nil)
	FillMesh(transform mgl32.Mat4, mesh *Mesh, lightmap Lightmap, shader *Shader, tint color.Color)
	// FillCube draws a solid box
	FillCube(cube Cube, tint color.Color)
	// BakeLights renders the static lighting of mesh into a new lightmap
	BakeLights(transform mgl32.Mat4, mesh *Mesh, shader *Shader, resolution int, lights []PointLight) Lightmap
	// QueryCubeVisible issues an occlusion query for the cube
	QueryCubeVisible(cube Cube) OcclusionQuery
}
