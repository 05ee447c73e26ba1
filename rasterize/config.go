package rasterize

import "image/color"

// Config holds options for rasterizing a mesh to an image.
type Config struct {
	Width  int
	Height int

	Background      color.Color
	VertexColor     color.Color
	EdgeColor       color.Color
	TriangleColor   color.Color
	PerimeterColor  color.Color
	HoleColor       color.Color

	FillTriangles  bool
	DrawVertices   bool
	DrawEdges      bool
	DrawPerimeters bool
	DrawHoles      bool

	VertexLabels   bool
	EdgeLabels     bool
	TriangleLabels bool

	// ColorByRef renders each triangle with a palette color keyed by its
	// subdomain Ref instead of the flat TriangleColor, letting a classified
	// mesh's regions be told apart at a glance.
	ColorByRef bool

	DebugElements  []DebugElement
	DebugLocations []DebugLocation
}

// DebugElement is a labeled line segment overlaid on the rasterized image,
// in mesh coordinates, useful for visualizing a single probe edge or swap
// during development.
type DebugElement struct {
	Name             string
	SourceX, SourceY float64
	TargetX, TargetY float64
}

// DebugLocation is a labeled point overlaid on the rasterized image, in mesh
// coordinates, useful for marking a query point or cavity seed.
type DebugLocation struct {
	Name string
	X, Y float64
}

// DefaultConfig returns sensible default rasterization settings.
func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,

		Background:     color.RGBA{R: 255, G: 255, B: 255, A: 255}, // White
		VertexColor:    color.RGBA{R: 0, G: 0, B: 0, A: 255},       // Black
		EdgeColor:      color.RGBA{R: 64, G: 64, B: 64, A: 255},    // Dark gray
		TriangleColor:  color.RGBA{R: 100, G: 100, B: 255, A: 128}, // Semi-transparent blue
		PerimeterColor: color.RGBA{R: 0, G: 128, B: 0, A: 255},     // Green
		HoleColor:      color.RGBA{R: 255, G: 0, B: 0, A: 255},     // Red

		FillTriangles:  true,
		DrawVertices:   true,
		DrawEdges:      true,
		DrawPerimeters: true,
		DrawHoles:      true,

		VertexLabels:   false,
		EdgeLabels:     false,
		TriangleLabels: false,
	}
}
