package cdt

import (
	"sort"

	"github.com/gomesh2d/triangulate/algorithm/robust"
	"github.com/gomesh2d/triangulate/types"
)

// CavityEdge is one edge of a cavity's boundary polygon, named by its two
// vertex indices in the orientation the retriangulation fan will reuse, plus
// the triangle lying outside the cavity across that edge (NilTri at the hull
// boundary) and which of that triangle's local edges faces in.
type CavityEdge struct {
	U, W       int
	Outer      TriID
	OuterLocal int
}

// Cavity is the set of triangles whose circumcircle contains the inserted
// point, together with the boundary polygon left behind once they are
// removed. The boundary is star-shaped with respect to the inserted point:
// every CavityEdge is seen under positive orientation from p.
type Cavity struct {
	Triangles []TriID
	Boundary  []CavityEdge
}

// BuildCavity breadth-first expands from seed, admitting a neighbor triangle
// when p lies inside its circumcircle, then repairs the result to be
// star-shaped around p before returning it. Seed itself must already satisfy
// InCircle(seed, p) > 0 (or contain p on an edge/vertex); callers locate it
// first via the adjacency walk.
func BuildCavity(ts *TriSoup, p types.Point, seed TriID) (*Cavity, error) {
	if ts.IsDeleted(seed) {
		return nil, newKernelError(ErrCavity, "seed triangle already deleted", nil)
	}

	inCavity := map[TriID]bool{seed: true}
	queue := []TriID{seed}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		for e := 0; e < 3; e++ {
			n := ts.Tri[t].N[e]
			if n == NilTri || ts.IsDeleted(n) || inCavity[n] {
				continue
			}
			tri := ts.Tri[n]
			a, b, c := ts.V[tri.V[0]], ts.V[tri.V[1]], ts.V[tri.V[2]]
			if robust.InCircle(a, b, c, p) > 0 {
				inCavity[n] = true
				queue = append(queue, n)
			}
		}
	}

	boundary := cavityBoundary(ts, inCavity)
	if len(boundary) == 0 {
		return nil, newKernelError(ErrCavity, "candidate cavity has no boundary", nil)
	}

	// Star-shape repair: evict any cavity triangle whose removal would leave
	// a boundary edge that p does not see under positive orientation. Evicted
	// triangles shrink the cavity, which can expose new boundary edges, so
	// the audit repeats until a pass evicts nothing.
	for {
		evicted := false
		for edge := range boundary {
			u, w := boundary[edge].U, boundary[edge].W
			if robust.Orient2D(ts.V[u], ts.V[w], p) <= 0 {
				owner, ok := cavityTriangleOwningDirectedEdge(ts, inCavity, u, w)
				if ok {
					delete(inCavity, owner)
					evicted = true
				}
			}
		}
		if !evicted {
			break
		}
		boundary = cavityBoundary(ts, inCavity)
		if len(boundary) == 0 {
			return nil, newKernelError(ErrCavity, "star-shape repair emptied the cavity", nil)
		}
	}

	tris := make([]TriID, 0, len(inCavity))
	for t := range inCavity {
		tris = append(tris, t)
	}
	sort.Slice(tris, func(i, j int) bool { return tris[i] < tris[j] })

	return &Cavity{Triangles: tris, Boundary: boundary}, nil
}

// cavityBoundary walks every triangle in the set and collects the edges whose
// opposite side is outside the set (or the hull boundary), oriented so that
// U, W runs the way the triangle itself winds the edge. It then chains those
// edges into cyclic polygon order (edge i's W is edge i+1's U) starting from
// the lowest-numbered vertex, so the result depends only on the cavity's
// shape and never on Go's randomized map iteration over inCavity.
//
// A star-shaped cavity's boundary is a single simple polygon, so every vertex
// on it has exactly one outgoing boundary edge; chaining by U therefore
// visits every edge exactly once.
func cavityBoundary(ts *TriSoup, inCavity map[TriID]bool) []CavityEdge {
	edgeByU := make(map[int]CavityEdge)
	for t := range inCavity {
		tri := ts.Tri[t]
		for e := 0; e < 3; e++ {
			n := tri.N[e]
			if n != NilTri && inCavity[n] {
				continue
			}
			u, w := tri.Edge(e)
			outerLocal := -1
			if n != NilTri {
				if le, ok := ts.FindTriEdge(n, u, w); ok {
					outerLocal = le
				}
			}
			edgeByU[u] = CavityEdge{U: u, W: w, Outer: n, OuterLocal: outerLocal}
		}
	}
	if len(edgeByU) == 0 {
		return nil
	}

	start := -1
	for u := range edgeByU {
		if start == -1 || u < start {
			start = u
		}
	}

	boundary := make([]CavityEdge, 0, len(edgeByU))
	u := start
	for i := 0; i < len(edgeByU); i++ {
		edge, ok := edgeByU[u]
		if !ok {
			// Boundary isn't a single closed loop (shouldn't happen for a
			// star-shaped cavity); signal failure so the caller treats this
			// the same as an empty boundary instead of stitching a fan from
			// a partial, non-cyclic edge list.
			return nil
		}
		boundary = append(boundary, edge)
		u = edge.W
	}
	if boundary[len(boundary)-1].W != start {
		return nil
	}
	return boundary
}

// cavityTriangleOwningDirectedEdge finds the in-cavity triangle whose local
// edge runs (u, w) in that exact order, so evicting it is the triangle that
// actually produced the offending boundary edge.
func cavityTriangleOwningDirectedEdge(ts *TriSoup, inCavity map[TriID]bool, u, w int) (TriID, bool) {
	for t := range inCavity {
		tri := ts.Tri[t]
		for e := 0; e < 3; e++ {
			a, b := tri.Edge(e)
			if a == u && b == w {
				return t, true
			}
		}
	}
	return NilTri, false
}

// RetriangulateCavity removes a cavity's triangles and fans new ones from
// vidx to each boundary edge, reattaching the outer neighbor on each new
// triangle's far side. It generalizes the fixed 1-/2-triangle splits in
// InsertPoint to the N-edge case BuildCavity produces.
func RetriangulateCavity(ts *TriSoup, cav *Cavity, vidx int) ([]TriID, []EdgeToLegalize, error) {
	if len(cav.Boundary) < 3 {
		return nil, nil, newKernelError(ErrCavity, "cavity boundary has fewer than 3 edges", nil)
	}

	for _, t := range cav.Triangles {
		ts.RemoveTri(t)
	}

	newTris := make([]TriID, 0, len(cav.Boundary))
	for _, be := range cav.Boundary {
		nt := addTriCCW(ts, be.U, be.W, vidx)
		newTris = append(newTris, nt)
	}

	for i, be := range cav.Boundary {
		nt := newTris[i]
		attachNeighbor(ts, nt, be.U, be.W, be.Outer)
	}

	edgesToLegalize := make([]EdgeToLegalize, 0, len(cav.Boundary))
	for i, t := range newTris {
		le, ok := ts.FindTriEdge(t, cav.Boundary[i].U, cav.Boundary[i].W)
		if !ok {
			continue
		}
		edgesToLegalize = append(edgesToLegalize, EdgeToLegalize{T: t, E: le})
	}

	// cavityBoundary hands back a true cyclic polygon (edge i's W equals edge
	// i+1's U), so every consecutive pair of fan triangles shares an internal
	// spoke; the equality check is a cheap assertion, not a real filter.
	n := len(newTris)
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		shared := cav.Boundary[i].W
		if shared != cav.Boundary[next].U {
			continue
		}
		linkTrianglesOnEdge(ts, newTris[i], newTris[next], shared, vidx)
	}

	return newTris, edgesToLegalize, nil
}
