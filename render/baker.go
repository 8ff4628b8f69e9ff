package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// ImageLightmap is a lightmap held in CPU memory
type ImageLightmap struct {
	Image    *image.RGBA
	released bool
}

// Size implements Lightmap
func (l *ImageLightmap) Size() (int, int) {
	if l.Image == nil {
		return 0, 0
	}
	b := l.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Release implements Lightmap
func (l *ImageLightmap) Release() {
	l.Image = nil
	l.released = true
}

// Released reports whether Release has been called
func (l *ImageLightmap) Released() bool {
	return l.released
}

// BakeLightmap computes a resolution x resolution lightmap for the surface
// spanned by the transformed mesh. Texels are laid over the two largest
// extents of the mesh bounds and sampled on the mid plane of the third.
func BakeLightmap(transform mgl32.Mat4, mesh *Mesh, shader *Shader, resolution int, lights []PointLight) *image.RGBA {
	if resolution <= 0 {
		resolution = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, resolution, resolution))
	lo, hi := mesh.Bounds(transform)
	extent := hi.Sub(lo)

	// the thinnest axis is dropped, the other two span the lightmap
	w := 2
	for axis := 1; axis >= 0; axis-- {
		if extent[axis] < extent[w] {
			w = axis
		}
	}
	u, v := (w+1)%3, (w+2)%3
	if u > v {
		u, v = v, u
	}

	ambient := float32(0)
	albedo := color.RGBA{255, 255, 255, 255}
	if shader != nil {
		ambient = shader.Ambient
		albedo = shader.Albedo
	}

	for ty := 0; ty < resolution; ty++ {
		for tx := 0; tx < resolution; tx++ {
			var p mgl32.Vec3
			p[u] = lo[u] + extent[u]*(float32(tx)+0.5)/float32(resolution)
			p[v] = lo[v] + extent[v]*(float32(ty)+0.5)/float32(resolution)
			p[w] = lo[w] + extent[w]*0.5

			intensity := ambient
			for _, light := range lights {
				d := light.Pos.Sub(p)
				intensity += light.Strength / (1 + d.Dot(d))
			}
			intensity = min(intensity, 1)

			img.SetRGBA(tx, ty, color.RGBA{
				R: uint8(float32(albedo.R) * intensity),
				G: uint8(float32(albedo.G) * intensity),
				B: uint8(float32(albedo.B) * intensity),
				A: 255,
			})
		}
	}
	return img
}
