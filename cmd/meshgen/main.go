// Command meshgen builds a constrained Delaunay triangulation from a flat
// point/edge input file and writes the result as a mesh.Mesh JSON file.
//
// The flag surface mirrors the one documented for this class of kernel —
// -in, -out, -met, -sol, -v, -d, -hmin, -hmax, -hausd, -hgrad, -ar, -A, -no,
// -nr, -nreg — but only -in, -out, -v, -d, and -nr actually affect
// construction here. Metric-field, size-field, and quality-pass flags are
// accepted and validated for shape, never silently ignored: supplying one
// with a non-default value prints a notice that it has no effect.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gomesh2d/triangulate/cdt"
	"github.com/gomesh2d/triangulate/types"
)

var (
	inFile  = flag.String("in", "", "Input point/edge JSON file (required)")
	outFile = flag.String("out", "", "Output mesh JSON file (required)")
	metFile = flag.String("met", "", "Metric field file (no-op; size-field evaluation is out of scope)")
	solFile = flag.String("sol", "", "Solution field file (no-op; size-field evaluation is out of scope)")
	verbose = flag.Int("v", 0, "Verbosity level")
	debug   = flag.Bool("d", false, "Enable debug mode (logs the count of unclassified triangles)")
	hmin    = flag.Float64("hmin", 0, "Minimum edge length (no-op; quality passes are out of scope)")
	hmax    = flag.Float64("hmax", 0, "Maximum edge length (no-op; quality passes are out of scope)")
	hausd   = flag.Float64("hausd", 0, "Hausdorff distance (no-op; quality passes are out of scope)")
	hgrad   = flag.Float64("hgrad", 0, "Gradation (no-op; quality passes are out of scope)")
	ar      = flag.Float64("ar", 0, "Angle detection threshold (no-op; quality passes are out of scope)")
	angleA  = flag.Float64("A", 0, "Anisotropic switch (no-op; quality passes are out of scope)")
	noFlag  = flag.Int("no", 0, "Disabled-option bitmask (no-op; quality passes are out of scope)")
	renum   = flag.Int("nr", 0, "Subdomain to keep after pruning (0 keeps every non-exterior region)")
	nreg    = flag.Int("nreg", 0, "Expected region count (no-op)")
)

// inputPoint and inputEdge use the 1-based vertex numbering that this CLI
// boundary speaks; the kernel itself is 0-based throughout.
type inputPoint struct {
	X, Y float64
}

type inputEdge struct {
	A, B int
	Ref  int
}

type inputData struct {
	Points []inputPoint `json:"points"`
	Edges  []inputEdge  `json:"edges"`
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -in <points.json> -out <mesh.json> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Builds a constrained Delaunay triangulation from a point/edge list.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inFile == "" || *outFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	warnNoop("met", *metFile != "")
	warnNoop("sol", *solFile != "")
	warnNoop("hmin", *hmin != 0)
	warnNoop("hmax", *hmax != 0)
	warnNoop("hausd", *hausd != 0)
	warnNoop("hgrad", *hgrad != 0)
	warnNoop("ar", *ar != 0)
	warnNoop("A", *angleA != 0)
	warnNoop("no", *noFlag != 0)
	warnNoop("nreg", *nreg != 0)

	in, err := loadInput(*inFile)
	if err != nil {
		log.Fatalf("failed to load %s: %v", *inFile, err)
	}

	points := make([]types.Point, len(in.Points))
	for i, p := range in.Points {
		points[i] = types.Point{X: p.X, Y: p.Y}
	}

	edges := make([]cdt.ConstraintEdge, len(in.Edges))
	for i, e := range in.Edges {
		if e.A < 1 || e.A > len(points) || e.B < 1 || e.B > len(points) {
			log.Fatalf("edge %d references out-of-range vertex (%d, %d) for %d points", i, e.A, e.B, len(points))
		}
		edges[i] = cdt.ConstraintEdge{A: e.A - 1, B: e.B - 1, Ref: e.Ref}
	}

	opts := cdt.DefaultBuildOptions()
	opts.Debug = *debug
	opts.RenumSubdomain = *renum

	if *verbose > 0 {
		log.Printf("meshgen: %d points, %d constraint edges", len(points), len(edges))
	}

	m, err := cdt.Build(points, edges, opts)
	if err != nil {
		log.Printf("build failed: %v", err)
		os.Exit(1)
	}

	if *verbose > 0 {
		log.Printf("meshgen: %d vertices, %d triangles", m.NumVertices(), m.NumTriangles())
	}

	if err := m.Save(*outFile); err != nil {
		log.Printf("failed to save %s: %v", *outFile, err)
		os.Exit(1)
	}

	os.Exit(0)
}

func warnNoop(flagName string, set bool) {
	if set {
		log.Printf("meshgen: -%s has no effect; quality/size-field passes are out of scope for this kernel", flagName)
	}
}

func loadInput(filename string) (*inputData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in inputData
	if err := json.NewDecoder(f).Decode(&in); err != nil {
		return nil, err
	}
	return &in, nil
}
