package mesh

import (
	"fmt"

	"github.com/gomesh2d/triangulate/spatial"
	"github.com/gomesh2d/triangulate/types"
)

// Mesh represents a 2D triangle mesh with validated topology.
type Mesh struct {
	vertices  []types.Point
	triangles []types.Triangle

	// triangleRefs holds the subdomain label for each entry in triangles,
	// parallel by index. Empty when the mesh was built without classification.
	triangleRefs []int

	cfg config

	vertexIndex spatial.Index

	edgeSet map[types.Edge]struct{}

	triangleSet map[[3]types.VertexID]types.Triangle

	perimeters []types.PolygonLoop
	holes      []types.PolygonLoop
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int {
	return len(m.triangles)
}

// GetVertex returns the coordinates of a vertex by ID.
func (m *Mesh) GetVertex(id types.VertexID) types.Point {
	return m.vertices[id]
}

// GetTriangle returns a triangle by index.
func (m *Mesh) GetTriangle(idx int) types.Triangle {
	return m.triangles[idx]
}

// GetVertices returns a copy of all vertex coordinates.
func (m *Mesh) GetVertices() []types.Point {
	out := make([]types.Point, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// GetTriangles returns a copy of all triangles.
func (m *Mesh) GetTriangles() []types.Triangle {
	out := make([]types.Triangle, len(m.triangles))
	copy(out, m.triangles)
	return out
}

// GetTriangleCoords returns the coordinates of a triangle's vertices.
func (m *Mesh) GetTriangleCoords(idx int) (types.Point, types.Point, types.Point) {
	t := m.triangles[idx]
	return m.vertices[t.V1()], m.vertices[t.V2()], m.vertices[t.V3()]
}

// IsValidVertexID reports whether the supplied ID references an existing vertex.
func (m *Mesh) IsValidVertexID(id types.VertexID) bool {
	return id >= 0 && int(id) < len(m.vertices)
}

// Epsilon returns the configured epsilon tolerance.
func (m *Mesh) Epsilon() float64 {
	return m.cfg.epsilon
}

// EdgeSet exposes the set of edges currently tracked by the mesh.
func (m *Mesh) EdgeSet() map[types.Edge]struct{} {
	return m.edgeSet
}

// EdgeUsageCounts returns, for every edge appearing in any triangle, how
// many triangles use it. A well-formed manifold mesh has every interior
// edge used by exactly 2 triangles and every boundary edge by exactly 1;
// counts above 2 indicate overlapping triangles.
func (m *Mesh) EdgeUsageCounts() map[types.Edge]int {
	counts := make(map[types.Edge]int)
	for _, tri := range m.triangles {
		for _, edge := range tri.Edges() {
			counts[edge]++
		}
	}
	return counts
}

// HasTriangleWithKey reports whether the canonical key is present.
func (m *Mesh) HasTriangleWithKey(key [3]types.VertexID) (types.Triangle, bool) {
	tri, ok := m.triangleSet[key]
	return tri, ok
}

// TriangleRef returns the subdomain label for triangle idx, or 0 if the mesh
// carries no classification data.
func (m *Mesh) TriangleRef(idx int) int {
	if idx < 0 || idx >= len(m.triangleRefs) {
		return 0
	}
	return m.triangleRefs[idx]
}

// TriangleRefs returns a copy of the per-triangle subdomain labels, or nil if
// the mesh carries no classification data.
func (m *Mesh) TriangleRefs() []int {
	if len(m.triangleRefs) == 0 {
		return nil
	}
	out := make([]int, len(m.triangleRefs))
	copy(out, m.triangleRefs)
	return out
}

// SetTriangleRefs installs per-triangle subdomain labels. refs must have one
// entry per triangle currently in the mesh.
func (m *Mesh) SetTriangleRefs(refs []int) error {
	if len(refs) != len(m.triangles) {
		return fmt.Errorf("triangle ref count %d does not match triangle count %d", len(refs), len(m.triangles))
	}
	m.triangleRefs = append([]int(nil), refs...)
	return nil
}
