package spatial

import "github.com/gomesh2d/triangulate/types"

// Index provides spatial queries for vertices.
type Index interface {
	// FindVerticesNear returns candidate vertex IDs near point p. The result
	// includes every vertex within radius and may include farther ones.
	FindVerticesNear(p types.Point, radius float64) []types.VertexID
	// AddVertex adds a vertex to the index.
	AddVertex(id types.VertexID, p types.Point)
	// Build finalizes the index structure.
	Build()
}
