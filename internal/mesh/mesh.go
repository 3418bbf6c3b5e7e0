// Package mesh builds an indexed, vertex-colored triangle mesh from a world
// heightmap. The plane spans [-0.5, 0.5] on X and Z with Y up.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/VoidMesh/worldgen/internal/biome"
)

// ErrInvalidOptions is returned for a non-positive height scale or step.
var ErrInvalidOptions = errors.New("invalid mesh options")

// Heightmap is the view of a world the mesh builder needs.
type Heightmap interface {
	Resolution() int
	ElevationAt(x, y int) float64
	BiomeAt(x, y int) biome.Biome
}

// Options controls mesh construction.
type Options struct {
	// HeightScale divides elevation to give vertex height.
	HeightScale float64
	// Step samples every Step-th cell along each axis, always keeping the
	// last row and column. Zero means 1.
	Step int
}

// Mesh is a flat-buffer triangle mesh ready for upload to a GPU.
// Vertex i sits at sample (i % Resolution, i / Resolution).
type Mesh struct {
	Resolution int       `json:"resolution"`
	Positions  []float32 `json:"positions"`
	Colors     []float32 `json:"colors"`
	Normals    []float32 `json:"normals"`
	Indices    []uint32  `json:"indices"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Position returns vertex i as a vector.
func (m *Mesh) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]}
}

// Normal returns the unit normal of vertex i.
func (m *Mesh) Normal(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2]}
}

// Build triangulates h. Each grid quad becomes two triangles and vertex
// normals are the area-weighted average of the adjacent face normals.
func Build(h Heightmap, opts Options) (*Mesh, error) {
	if opts.HeightScale <= 0 {
		return nil, fmt.Errorf("%w: height scale must be positive, got %g", ErrInvalidOptions, opts.HeightScale)
	}
	step := opts.Step
	if step == 0 {
		step = 1
	}
	if step < 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidOptions, opts.Step)
	}

	res := h.Resolution()
	samples := sampleCells(res, step)
	n := len(samples)

	m := &Mesh{
		Resolution: n,
		Positions:  make([]float32, 0, 3*n*n),
		Colors:     make([]float32, 0, 3*n*n),
	}

	var spacing float32
	if res > 1 {
		spacing = 1 / float32(res-1)
	}

	for _, cz := range samples {
		for _, cx := range samples {
			height := float32(h.ElevationAt(cx, cz) / opts.HeightScale)

			var px, pz float32
			if res > 1 {
				px = float32(cx)*spacing - 0.5
				pz = float32(cz)*spacing - 0.5
			}
			m.Positions = append(m.Positions, px, height, pz)

			r, g, b := h.BiomeAt(cx, cz).Color().Float()
			m.Colors = append(m.Colors, r, g, b)
		}
	}

	m.Indices = triangulate(n)
	m.Normals = vertexNormals(m)
	return m, nil
}

// sampleCells lists the grid coordinates sampled along one axis: every
// step-th cell plus the last one, so the mesh always spans the full grid.
// The final quad is narrower when step does not divide res-1.
func sampleCells(res, step int) []int {
	cells := make([]int, 0, (res-1)/step+2)
	for c := 0; c < res; c += step {
		cells = append(cells, c)
	}
	if last := res - 1; len(cells) > 0 && cells[len(cells)-1] != last {
		cells = append(cells, last)
	}
	return cells
}

// triangulate emits two counter-clockwise (seen from +Y) triangles per quad.
func triangulate(n int) []uint32 {
	if n < 2 {
		return []uint32{}
	}

	indices := make([]uint32, 0, 6*(n-1)*(n-1))
	for iz := 0; iz < n-1; iz++ {
		for ix := 0; ix < n-1; ix++ {
			a := uint32(iz*n + ix)
			b := uint32((iz+1)*n + ix)
			c := uint32((iz+1)*n + ix + 1)
			d := uint32(iz*n + ix + 1)
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return indices
}

func vertexNormals(m *Mesh) []float32 {
	count := m.VertexCount()
	acc := make([]mgl32.Vec3, count)

	for t := 0; t < len(m.Indices); t += 3 {
		ia, ib, ic := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		a, b, c := m.Position(ia), m.Position(ib), m.Position(ic)

		face := b.Sub(a).Cross(c.Sub(a))
		acc[ia] = acc[ia].Add(face)
		acc[ib] = acc[ib].Add(face)
		acc[ic] = acc[ic].Add(face)
	}

	normals := make([]float32, 0, 3*count)
	up := mgl32.Vec3{0, 1, 0}
	for _, v := range acc {
		if v.Len() == 0 {
			v = up
		} else {
			v = v.Normalize()
		}
		normals = append(normals, v.X(), v.Y(), v.Z())
	}
	return normals
}
