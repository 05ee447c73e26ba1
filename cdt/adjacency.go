package cdt

import (
	"fmt"

	"github.com/gomesh2d/triangulate/algorithm/robust"
	"github.com/gomesh2d/triangulate/types"
)

// TriSoup is a lightweight triangulation workspace with adjacency tracking.
type TriSoup struct {
	V   []types.Point // All vertices (including super-triangle vertices)
	Tri []Tri         // All triangles (some may be marked deleted)

	// Tracks which triangles use each edge (for O(1) neighbor lookup)
	edge2tri map[EdgeKey][]edgeUse

	// Free list for deleted triangle slots
	freeList []TriID

	// vertexLive tracks the deleted/null bit per vertex (nil means "all live").
	// Entries are cleared only through MarkVertexDead; the cleanup routines do
	// not call it; ExportToMesh drops cover and orphan points by keeping only
	// vertices that a live triangle uses.
	vertexLive []bool

	// memoryCap bounds the live triangle count; 0 means unbounded. AddTri
	// still performs the append (callers never see a torn TriSoup) but sets
	// allocExceeded so Build can abort with an allocation-failure error
	// after the current insertion finishes.
	memoryCap     int
	allocExceeded bool
}

// edgeUse tracks a triangle that uses a particular edge.
type edgeUse struct {
	T         TriID
	LocalEdge int // Which edge of the triangle (0, 1, or 2)
}

// NewTriSoup creates a new empty triangulation workspace.
func NewTriSoup(pts []types.Point, reserveTris int) *TriSoup {
	return &TriSoup{
		V:        pts,
		Tri:      make([]Tri, 0, reserveTris),
		edge2tri: make(map[EdgeKey][]edgeUse),
		freeList: nil,
	}
}

// AddTri adds a triangle with vertices (a, b, c) and returns its ID.
// The triangle is added with no neighbors initially.
func (ts *TriSoup) AddTri(a, b, c int) TriID {
	tri := Tri{
		V:      [3]int{a, b, c},
		N:      [3]TriID{NilTri, NilTri, NilTri},
		NLocal: [3]int8{-1, -1, -1},
	}

	var id TriID
	if len(ts.freeList) > 0 {
		// Reuse a deleted slot
		id = ts.freeList[len(ts.freeList)-1]
		ts.freeList = ts.freeList[:len(ts.freeList)-1]
		ts.Tri[id] = tri
	} else {
		// Append new triangle
		id = TriID(len(ts.Tri))
		ts.Tri = append(ts.Tri, tri)
	}

	// Register edges
	ts.registerTriEdges(id)

	if ts.memoryCap > 0 && CountTriangles(ts) > ts.memoryCap {
		ts.allocExceeded = true
	}

	return id
}

// SetMemoryCap bounds the number of live triangles the soup will grow to.
// A value <= 0 removes the cap. Exceeding the cap does not block the
// triangle that crossed it; it sets a sticky flag that Build checks after
// each vertex insertion, so a single insertion is never left half-applied.
func (ts *TriSoup) SetMemoryCap(n int) {
	ts.memoryCap = n
}

// AllocExceeded reports whether the triangle count has crossed the
// configured memory cap at any point since the cap was set.
func (ts *TriSoup) AllocExceeded() bool {
	return ts.allocExceeded
}

// MarkVertexDead clears the liveness bit for a vertex without shifting
// indices. Build and the cleanup routines do not call it.
func (ts *TriSoup) MarkVertexDead(idx int) {
	ts.ensureVertexLive()
	if idx >= 0 && idx < len(ts.vertexLive) {
		ts.vertexLive[idx] = false
	}
}

// IsVertexLive reports whether a vertex still carries its live bit.
func (ts *TriSoup) IsVertexLive(idx int) bool {
	if ts.vertexLive == nil {
		return idx >= 0 && idx < len(ts.V)
	}
	return idx >= 0 && idx < len(ts.vertexLive) && ts.vertexLive[idx]
}

func (ts *TriSoup) ensureVertexLive() {
	if ts.vertexLive == nil {
		ts.vertexLive = make([]bool, len(ts.V))
		for i := range ts.vertexLive {
			ts.vertexLive[i] = true
		}
	}
	for len(ts.vertexLive) < len(ts.V) {
		ts.vertexLive = append(ts.vertexLive, true)
	}
}

// RemoveTri marks a triangle as deleted and unregisters its edges.
func (ts *TriSoup) RemoveTri(t TriID) {
	if t < 0 || int(t) >= len(ts.Tri) {
		return
	}

	// Update all neighbors to not point to this triangle anymore
	for i := 0; i < 3; i++ {
		neighbor := ts.Tri[t].N[i]
		if neighbor != NilTri && !ts.IsDeleted(neighbor) {
			// Find and clear the reference from neighbor to this triangle
			for j := 0; j < 3; j++ {
				if ts.Tri[neighbor].N[j] == t {
					ts.clearNeighborSlot(neighbor, j)
					break
				}
			}
		}
	}

	ts.unregisterTriEdges(t)

	// Mark as deleted by setting all vertices to -1
	ts.Tri[t].V = [3]int{-1, -1, -1}
	ts.Tri[t].N = [3]TriID{NilTri, NilTri, NilTri}
	ts.Tri[t].NLocal = [3]int8{-1, -1, -1}

	// Add to free list
	ts.freeList = append(ts.freeList, t)
}

// IsDeleted returns true if the triangle has been deleted.
func (ts *TriSoup) IsDeleted(t TriID) bool {
	if t < 0 || int(t) >= len(ts.Tri) {
		return true
	}
	return ts.Tri[t].V[0] < 0
}

// SetNeighbors sets all three neighbors of a triangle at once, deriving and
// caching each neighbor's opposite local edge index along the way.
func (ts *TriSoup) SetNeighbors(t TriID, n0, n1, n2 TriID) {
	if ts.IsDeleted(t) {
		return
	}
	for i, n := range [3]TriID{n0, n1, n2} {
		local := -1
		if n != NilTri && !ts.IsDeleted(n) {
			v1, v2 := ts.Tri[t].Edge(i)
			if le, ok := ts.FindTriEdge(n, v1, v2); ok {
				local = le
			}
		}
		ts.setNeighborSlot(t, i, n, local)
	}
}

// setNeighborSlot writes t's slot-th neighbor and its cached opposite local
// index. It touches only t's own slot; callers that need the reciprocal side
// kept in sync use linkAdjacency instead.
func (ts *TriSoup) setNeighborSlot(t TriID, slot int, neighbor TriID, neighborLocal int) {
	ts.Tri[t].N[slot] = neighbor
	if neighbor == NilTri {
		ts.Tri[t].NLocal[slot] = -1
	} else {
		ts.Tri[t].NLocal[slot] = int8(neighborLocal)
	}
}

// clearNeighborSlot resets t's slot-th neighbor to NilTri, matching the
// invariant that NLocal is -1 wherever N is NilTri.
func (ts *TriSoup) clearNeighborSlot(t TriID, slot int) {
	ts.setNeighborSlot(t, slot, NilTri, -1)
}

// linkAdjacency makes triangles tA and tB mutual neighbors across their
// respective slots slotA/slotB, caching each side's opposite local index.
// This and clearNeighborSlot/setNeighborSlot are the only routines allowed to
// write Tri.N directly; every other adjacency mutation goes through them.
func (ts *TriSoup) linkAdjacency(tA TriID, slotA int, tB TriID, slotB int) {
	ts.setNeighborSlot(tA, slotA, tB, slotB)
	ts.setNeighborSlot(tB, slotB, tA, slotA)
}

// FindTriEdge finds which local edge (0, 1, or 2) connects vertices a and b.
// Returns (localEdge, true) if found, or (-1, false) if not found.
func (ts *TriSoup) FindTriEdge(t TriID, a, b int) (int, bool) {
	if ts.IsDeleted(t) {
		return -1, false
	}

	tri := &ts.Tri[t]
	for i := 0; i < 3; i++ {
		v1, v2 := tri.Edge(i)
		if (v1 == a && v2 == b) || (v1 == b && v2 == a) {
			return i, true
		}
	}
	return -1, false
}

// FlipEdge performs an edge flip on the shared edge between two triangles.
// Returns the two new triangle IDs and true if successful.
// Returns (NilTri, NilTri, false) if the flip cannot be performed.
func (ts *TriSoup) FlipEdge(tLeft TriID, eLeft int) (TriID, TriID, bool) {
	if ts.IsDeleted(tLeft) {
		return NilTri, NilTri, false
	}

	tRight := ts.Tri[tLeft].N[eLeft]
	if tRight == NilTri || ts.IsDeleted(tRight) {
		return NilTri, NilTri, false
	}

	// Find the corresponding edge in the right triangle
	leftV1, leftV2 := ts.Tri[tLeft].Edge(eLeft)
	eRight, ok := ts.FindTriEdge(tRight, leftV1, leftV2)
	if !ok {
		return NilTri, NilTri, false
	}

	// Get the four vertices of the quad
	// Left triangle: (leftV1, leftV2, apex)
	// Right triangle: (leftV1, leftV2, opposite)
	apex := ts.Tri[tLeft].V[eLeft]
	opposite := ts.Tri[tRight].V[eRight]

	// Check if the flip creates valid triangles (not inverted)
	p1 := ts.V[leftV1]
	p2 := ts.V[leftV2]
	pApex := ts.V[apex]
	pOpp := ts.V[opposite]

	// New triangles would be (apex, opposite, leftV2) and (opposite, apex, leftV1)
	if robust.Orient2D(pApex, pOpp, p2) <= 0 {
		return NilTri, NilTri, false
	}
	if robust.Orient2D(pOpp, pApex, p1) <= 0 {
		return NilTri, NilTri, false
	}

	leftVerts := ts.Tri[tLeft].V
	leftN := ts.Tri[tLeft].N
	rightVerts := ts.Tri[tRight].V
	rightN := ts.Tri[tRight].N

	ts.RemoveTri(tLeft)
	ts.RemoveTri(tRight)

	newLeft := addTriCCW(ts, apex, opposite, leftV2)
	newRight := addTriCCW(ts, opposite, apex, leftV1)

	linkTrianglesOnEdge(ts, newLeft, newRight, apex, opposite)

	for _, idx := range []int{(eLeft + 1) % 3, (eLeft + 2) % 3} {
		neighbor := leftN[idx]
		va := leftVerts[(idx+1)%3]
		vb := leftVerts[(idx+2)%3]
		if triangleHasEdge(ts, newLeft, va, vb) {
			attachNeighbor(ts, newLeft, va, vb, neighbor)
		} else {
			attachNeighbor(ts, newRight, va, vb, neighbor)
		}
	}

	for _, idx := range []int{(eRight + 1) % 3, (eRight + 2) % 3} {
		neighbor := rightN[idx]
		va := rightVerts[(idx+1)%3]
		vb := rightVerts[(idx+2)%3]
		if triangleHasEdge(ts, newLeft, va, vb) {
			attachNeighbor(ts, newLeft, va, vb, neighbor)
		} else {
			attachNeighbor(ts, newRight, va, vb, neighbor)
		}
	}

	return newLeft, newRight, true
}

// updateNeighborReference updates a neighbor's reference from oldT to newT.
func (ts *TriSoup) updateNeighborReference(neighbor, oldT, newT TriID) {
	if neighbor == NilTri || ts.IsDeleted(neighbor) {
		return
	}

	for i := 0; i < 3; i++ {
		if ts.Tri[neighbor].N[i] == oldT {
			local := -1
			v1, v2 := ts.Tri[neighbor].Edge(i)
			if le, ok := ts.FindTriEdge(newT, v1, v2); ok {
				local = le
			}
			ts.setNeighborSlot(neighbor, i, newT, local)
			return
		}
	}
}

// registerTriEdges adds the triangle's edges to the edge index.
func (ts *TriSoup) registerTriEdges(t TriID) {
	tri := &ts.Tri[t]
	for i := 0; i < 3; i++ {
		v1, v2 := tri.Edge(i)
		key := NewEdgeKey(v1, v2)
		ts.edge2tri[key] = append(ts.edge2tri[key], edgeUse{T: t, LocalEdge: i})
	}
}

// unregisterTriEdges removes the triangle's edges from the edge index.
func (ts *TriSoup) unregisterTriEdges(t TriID) {
	tri := &ts.Tri[t]
	for i := 0; i < 3; i++ {
		v1, v2 := tri.Edge(i)
		key := NewEdgeKey(v1, v2)

		uses := ts.edge2tri[key]
		for j, use := range uses {
			if use.T == t {
				ts.edge2tri[key] = append(uses[:j], uses[j+1:]...)
				break
			}
		}

		if len(ts.edge2tri[key]) == 0 {
			delete(ts.edge2tri, key)
		}
	}
}

// FindEdgeTriangles returns the triangles that share the edge (a, b).
func (ts *TriSoup) FindEdgeTriangles(a, b int) []edgeUse {
	key := NewEdgeKey(a, b)
	return ts.edge2tri[key]
}

// Validate performs sanity checks on the triangulation.
func (ts *TriSoup) Validate() error {
	for i, tri := range ts.Tri {
		if tri.V[0] < 0 {
			continue // Deleted
		}

		// Check vertex indices are valid
		for j := 0; j < 3; j++ {
			if tri.V[j] < 0 || tri.V[j] >= len(ts.V) {
				return fmt.Errorf("triangle %d has invalid vertex index %d", i, tri.V[j])
			}
		}

		// Check neighbor symmetry using the cached opposite local index -
		// an O(1) lookup instead of re-deriving it with FindTriEdge.
		for j := 0; j < 3; j++ {
			neighbor := tri.N[j]
			if neighbor == NilTri {
				continue
			}

			if ts.IsDeleted(neighbor) {
				return fmt.Errorf("triangle %d references deleted neighbor %d", i, neighbor)
			}

			eNeighbor := int(tri.NLocal[j])
			if eNeighbor < 0 || eNeighbor > 2 {
				return fmt.Errorf("triangle %d has neighbor %d but no cached local index", i, neighbor)
			}

			// Check that the neighbor points back
			if ts.Tri[neighbor].N[eNeighbor] != TriID(i) {
				return fmt.Errorf("neighbor symmetry broken between triangles %d and %d", i, neighbor)
			}
		}
	}

	// Every edge used by exactly two live triangles must link them as mutual
	// neighbors. A cavity-boundary edge left at NilTri on both sides passes
	// the symmetry loop above (nil trivially "points back" to nothing) yet
	// still misrepresents an interior edge as hull boundary, so it needs its
	// own check against the edge index, which is built independently of N.
	for key, uses := range ts.edge2tri {
		live := uses[:0:0]
		for _, u := range uses {
			if !ts.IsDeleted(u.T) {
				live = append(live, u)
			}
		}
		if len(live) != 2 {
			continue
		}
		a, b := live[0], live[1]
		if ts.Tri[a.T].N[a.LocalEdge] != b.T || ts.Tri[b.T].N[b.LocalEdge] != a.T {
			return fmt.Errorf("edge (%d, %d) is shared by triangles %d and %d but they are not linked as neighbors",
				key.A, key.B, a.T, b.T)
		}
	}

	return nil
}
