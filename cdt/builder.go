package cdt

import (
	"fmt"
	"log"

	"github.com/gomesh2d/triangulate/mesh"
	"github.com/gomesh2d/triangulate/types"
)

// BuildOptions configures the CDT construction process.
type BuildOptions struct {
	// Epsilon tolerance for geometric operations
	Epsilon types.Epsilon

	// CoverMargin controls how much larger the initial bounding cover is
	// relative to the input points (e.g., 0.1 = 10% margin)
	CoverMargin float64

	// RandomSeed is carried in the options but Build does not read it:
	// vertices are always inserted in input order, so builds are
	// deterministic whatever its value.
	RandomSeed int64

	// ScaleToPRECI is carried in the options but Build does not read it:
	// coordinates are triangulated as given, with no rescaling before
	// insertion and none on export. The adaptive-precision predicates in this
	// kernel stay correct without rescaling.
	ScaleToPRECI bool

	// UseFloodFill selects flood-fill classification across non-constrained
	// edges (ClassifySubdomains); when false, triangles are labeled only by
	// whether they touch a cover vertex (TagAndStripCover).
	UseFloodFill bool

	// RenumSubdomain selects which subdomain label survives pruning when the
	// input produces more than one enclosed region:
	//   0  (default) keep every region with Ref != the exterior/cover label
	//   >0 keep only the region with that exact Ref
	//   -10 request mmg2d's periodic-merge renumbering; not implemented, and
	//       Build returns an ErrSubdomainUndetermined KernelError rather than
	//       silently falling back to a different mode.
	RenumSubdomain int

	// Debug enables verbose internal logging during construction.
	Debug bool

	// MemoryCap bounds the live triangle count during construction. 0 means
	// unbounded. Exceeding it surfaces as an ErrAllocation KernelError once
	// the current vertex insertion finishes.
	MemoryCap int

	// MeshOptions are passed to the final mesh constructor
	MeshOptions []mesh.Option
}

// DefaultBuildOptions returns sensible defaults for CDT construction.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Epsilon:      types.DefaultEpsilon(),
		CoverMargin:  0.5,  // 50% margin around bounding box
		RandomSeed:   42,   // Not read by Build; insertion follows input order
		UseFloodFill: true, // More robust classification
		MeshOptions:  nil,
	}
}

// ConstraintEdge is a segment that must survive triangulation unbroken,
// tagged with the subdomain label to apply to the side it encloses.
type ConstraintEdge struct {
	A, B int
	Ref  int
}

// Build constructs a Constrained Delaunay Triangulation from a flat point
// set and constraint-edge list, classifying the resulting triangles into
// subdomains by Ref. This is the Go-native entry point; BuildPSLG below
// preserves the perimeter/holes/extras shape the algorithm is grounded on.
func Build(points []types.Point, edges []ConstraintEdge, opts BuildOptions) (*mesh.Mesh, error) {
	if opts.RenumSubdomain == -10 {
		return nil, newKernelError(ErrSubdomainUndetermined, "periodic-merge renumbering (-10) is not implemented", nil)
	}

	ts, coverVerts, err := SeedTriangulation(points, opts.CoverMargin)
	if err != nil {
		return nil, newKernelError(ErrAllocation, "seed triangulation failed", err)
	}
	if opts.MemoryCap > 0 {
		ts.SetMemoryCap(opts.MemoryCap)
	}

	locator := NewLocator(ts)
	numPoints := len(points)

	for vidx := 0; vidx < numPoints; vidx++ {
		loc, err := locator.LocatePoint(ts.V[vidx])
		if err != nil {
			return nil, newKernelError(ErrLocation, fmt.Sprintf("locating vertex %d", vidx), err)
		}
		_, edgesToLegalize, err := InsertPoint(ts, loc, vidx)
		if err != nil {
			return nil, newKernelError(ErrCavity, fmt.Sprintf("inserting vertex %d", vidx), err)
		}
		LegalizeAround(ts, edgesToLegalize, nil)
		if ts.AllocExceeded() {
			return nil, newKernelError(ErrAllocation, "triangle arena exceeded memory cap during insertion", nil)
		}
	}

	constrained := make(map[EdgeKey]bool)
	edgeRefs := make(map[EdgeKey]int)
	for i, ce := range edges {
		if err := InsertConstraintEdgeRef(ts, ce.A, ce.B, ce.Ref, constrained, edgeRefs); err != nil {
			return nil, newKernelError(ErrEnforcement, fmt.Sprintf("constraint edge %d (%d,%d)", i, ce.A, ce.B), err)
		}
	}

	var allEdges []EdgeToLegalize
	for i := range ts.Tri {
		if ts.IsDeleted(TriID(i)) {
			continue
		}
		for e := 0; e < 3; e++ {
			allEdges = append(allEdges, EdgeToLegalize{T: TriID(i), E: e})
		}
	}
	LegalizeAround(ts, allEdges, constrained)

	var exteriorRef int
	if opts.UseFloodFill {
		exteriorRef = classifyByCoverSeed(ts, coverVerts, constrained)
	} else {
		TagAndStripCover(ts, coverVerts)
		exteriorRef = 0
	}

	if undetermined := CountUndetermined(ts); undetermined > 0 && opts.Debug {
		log.Printf("cdt: %d triangles remain unclassified after subdomain labeling", undetermined)
	}

	StripRegion(ts, exteriorRef)
	if opts.RenumSubdomain > 0 {
		for i := range ts.Tri {
			if ts.IsDeleted(TriID(i)) {
				continue
			}
			if ts.Tri[i].Ref != opts.RenumSubdomain {
				ts.RemoveTri(TriID(i))
			}
		}
		CleanStaleNeighborsAfterPrune(ts)
	}

	RemoveCover(ts, coverVerts)

	if err := ValidateTopology(ts); err != nil {
		return nil, newKernelError(ErrCavity, "topology validation after construction", err)
	}

	m, err := ExportToMesh(ts, opts.MeshOptions...)
	if err != nil {
		return nil, newKernelError(ErrAllocation, "mesh export", err)
	}

	return m, nil
}

// classifyByCoverSeed runs ClassifySubdomains and returns the Ref label
// assigned to the region touching any cover vertex, which is exterior
// material that every caller strips unconditionally.
func classifyByCoverSeed(ts *TriSoup, coverVerts []int, constrained map[EdgeKey]bool) int {
	ClassifySubdomains(ts, constrained)

	coverSet := make(map[int]bool, len(coverVerts))
	for _, v := range coverVerts {
		coverSet[v] = true
	}

	for i := range ts.Tri {
		if ts.IsDeleted(TriID(i)) {
			continue
		}
		tri := &ts.Tri[i]
		for _, v := range tri.V {
			if coverSet[v] {
				return tri.Ref
			}
		}
	}
	return 0
}

// BuildPSLG constructs a Constrained Delaunay Triangulation from a PSLG
// (outer perimeter, holes, and extra constraint segments). It is a thin
// wrapper kept for callers working with polygon loops directly: it
// normalizes and validates the loops, flattens them into the flat
// point/constraint-edge shape Build consumes, and delegates the entire
// insert/legalize/classify/export pipeline to Build rather than running a
// second copy of it.
func BuildPSLG(outer []types.Point, holes [][]types.Point, extras [][2]types.Point, opts BuildOptions) (*mesh.Mesh, error) {
	pslg, err := NormalizePSLG(outer, holes, extras, opts.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("PSLG normalization failed: %w", err)
	}
	if err := ValidatePSLG(pslg); err != nil {
		return nil, fmt.Errorf("PSLG validation failed: %w", err)
	}

	// Ref 1 is the region the outer perimeter and every hole loop enclose;
	// extra constraints don't bound a subdomain of their own, so they carry
	// Ref 0. Build's own cover-seed classification decides what actually gets
	// stripped as exterior; these labels only matter to a caller that reads
	// the exported mesh's per-triangle refs back out.
	const enclosedRef = 1
	edges := make([]ConstraintEdge, 0, len(pslg.Segments))
	seen := make(map[EdgeKey]bool, len(pslg.Segments))
	appendLoopEdges := func(loop []int, ref int) {
		for i := 0; i < len(loop); i++ {
			a, b := loop[i], loop[(i+1)%len(loop)]
			if a == b {
				continue
			}
			seen[NewEdgeKey(a, b)] = true
			edges = append(edges, ConstraintEdge{A: a, B: b, Ref: ref})
		}
	}
	appendLoopEdges(pslg.Outer, enclosedRef)
	for _, hole := range pslg.Holes {
		appendLoopEdges(hole, enclosedRef)
	}
	for _, seg := range pslg.Segments {
		if seen[NewEdgeKey(seg[0], seg[1])] {
			continue
		}
		edges = append(edges, ConstraintEdge{A: seg[0], B: seg[1], Ref: 0})
	}

	return Build(pslg.Vertices, edges, opts)
}

// BuildSimple is a convenience wrapper that uses default options.
func BuildSimple(outer []types.Point, holes [][]types.Point) (*mesh.Mesh, error) {
	return BuildPSLG(outer, holes, nil, DefaultBuildOptions())
}

// BuildWithConstraints includes extra constraint edges beyond the perimeter and holes.
func BuildWithConstraints(outer []types.Point, holes [][]types.Point, constraints [][2]types.Point) (*mesh.Mesh, error) {
	return BuildPSLG(outer, holes, constraints, DefaultBuildOptions())
}

// BuildWithOptions provides full control over the CDT construction process.
func BuildWithOptions(outer []types.Point, holes [][]types.Point, constraints [][2]types.Point, opts BuildOptions) (*mesh.Mesh, error) {
	return BuildPSLG(outer, holes, constraints, opts)
}

// Diagnostics provides information about the CDT construction process.
type Diagnostics struct {
	NumVertices        int
	NumTriangles       int
	NumConstraints     int
	NumBoundaryEdges   int
	IsDelaunay         bool
	ConstraintsRespect bool
}

// GetDiagnostics analyzes a TriSoup and returns diagnostic information.
func GetDiagnostics(ts *TriSoup, constrained map[EdgeKey]bool) Diagnostics {
	return Diagnostics{
		NumVertices:        CountVertices(ts),
		NumTriangles:       CountTriangles(ts),
		NumConstraints:     len(constrained),
		NumBoundaryEdges:   len(GetBoundaryEdges(ts)),
		IsDelaunay:         IsDelaunay(ts, constrained),
		ConstraintsRespect: validateConstraints(ts, constrained),
	}
}

// validateConstraints checks that all constrained edges exist in the triangulation.
func validateConstraints(ts *TriSoup, constrained map[EdgeKey]bool) bool {
	for key := range constrained {
		uses := ts.FindEdgeTriangles(key.A, key.B)
		if len(uses) == 0 {
			return false
		}
	}
	return true
}
