package cdt

// CleanStaleNeighborsAfterPrune removes references to deleted triangles.
func CleanStaleNeighborsAfterPrune(ts *TriSoup) {
	for i := range ts.Tri {
		if ts.IsDeleted(TriID(i)) {
			continue
		}

		tri := &ts.Tri[i]
		for e := 0; e < 3; e++ {
			neighbor := tri.N[e]
			if neighbor != NilTri && ts.IsDeleted(neighbor) {
				ts.clearNeighborSlot(TriID(i), e)
			}
		}
	}
}

// ClassifySubdomains assigns a sequential Ref label to every live triangle by
// repeatedly flood-filling across non-constrained edges, starting a new
// region each time an unlabeled triangle remains. Region 1 is the region of
// the first live triangle in ts.Tri order, which is not necessarily the
// exterior; Build finds the exterior label afterwards by reading the Ref of
// a triangle that touches a cover vertex (classifyByCoverSeed). Returns the
// number of regions found.
func ClassifySubdomains(ts *TriSoup, constrained map[EdgeKey]bool) int {
	labeled := make(map[TriID]bool)
	region := 0

	for i := range ts.Tri {
		t := TriID(i)
		if ts.IsDeleted(t) || labeled[t] {
			continue
		}

		region++
		queue := []TriID{t}
		labeled[t] = true
		ts.Tri[t].Ref = region

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			tri := &ts.Tri[cur]
			for e := 0; e < 3; e++ {
				n := tri.N[e]
				if n == NilTri || ts.IsDeleted(n) || labeled[n] {
					continue
				}
				v1, v2 := tri.Edge(e)
				if constrained[NewEdgeKey(v1, v2)] {
					continue
				}
				labeled[n] = true
				ts.Tri[n].Ref = region
				queue = append(queue, n)
			}
		}
	}

	return region
}

// CountUndetermined reports how many live triangles still carry Ref == 0
// after classification. A non-zero count means the constrained edge set did
// not fully enclose every region the caller expected, and is surfaced as a
// warning rather than a hard failure, mirroring mmg2d's settagtriangles
// behavior of completing even when some triangles remain untagged.
func CountUndetermined(ts *TriSoup) int {
	n := 0
	for i := range ts.Tri {
		if ts.IsDeleted(TriID(i)) {
			continue
		}
		if ts.Tri[i].Ref == 0 {
			n++
		}
	}
	return n
}

// TagAndStripCover is the cover-based alternative to ClassifySubdomains: it
// labels every live triangle that has a bounding-box cover vertex among its
// corners as region 0 (to be stripped) and every other live triangle as
// region 1. It does not flood-fill, does not look at constrained edges and
// does not discover additional interior subdomains; it removes nothing
// itself (Build strips region 0 with StripRegion). A triangle that touches a
// cover vertex is always labeled 0, including one whose only link to the
// cover is a single constrained edge (the findtrianglestate case); nothing
// checks whether that label is right for such a triangle.
func TagAndStripCover(ts *TriSoup, coverVerts []int) {
	cover := make(map[int]bool, len(coverVerts))
	for _, v := range coverVerts {
		cover[v] = true
	}

	for i := range ts.Tri {
		if ts.IsDeleted(TriID(i)) {
			continue
		}
		tri := &ts.Tri[i]
		touchesCover := false
		for _, v := range tri.V {
			if cover[v] {
				touchesCover = true
				break
			}
		}
		if touchesCover {
			tri.Ref = 0
		} else {
			tri.Ref = 1
		}
	}
}

// StripRegion removes every live triangle carrying the given Ref label and
// cleans up the resulting stale neighbor references. It is the companion to
// ClassifySubdomains/TagAndStripCover: callers decide which labels represent
// cover scaffolding or discarded subdomains and strip them after tagging.
func StripRegion(ts *TriSoup, ref int) int {
	removed := 0
	for i := range ts.Tri {
		if ts.IsDeleted(TriID(i)) {
			continue
		}
		if ts.Tri[i].Ref == ref {
			ts.RemoveTri(TriID(i))
			removed++
		}
	}
	CleanStaleNeighborsAfterPrune(ts)
	return removed
}
