// Package render holds what the playback engine draws onto: the surface
// capabilities, a headless raster canvas and the frame exporter.
package render

import (
	"image"
	"image/color"
)

// Viewport is the visible world rectangle.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width of the viewport in world units.
func (v Viewport) Width() float64 { return v.MaxX - v.MinX }

// Height of the viewport in world units.
func (v Viewport) Height() float64 { return v.MaxY - v.MinY }

// Segment is a straight line in world coordinates.
type Segment struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Point is one particle drawn as a filled circle. Diameter is in world units.
type Point struct {
	X, Y     float64
	Diameter float64
	Color    color.RGBA
}

// Surface is the set of drawing capabilities the engine needs.
// SetPoints replaces the whole point set.
type Surface interface {
	SetViewport(Viewport)
	DrawBoundary([]Segment)
	SetPoints([]Point)
	SetTitle(string)
	// Flush repaints so the current content is visible before returning.
	Flush() error
}

// Rasterizer is a surface that can hand out its current content as an image.
type Rasterizer interface {
	Snapshot() (image.Image, error)
}

// Colors used by the reference viewer.
var (
	Background    = color.RGBA{0, 0, 0, 255}
	BoundaryColor = color.RGBA{255, 255, 255, 255}
	ParticleColor = color.RGBA{255, 0, 0, 255}
	TitleColor    = color.RGBA{200, 200, 200, 255}
)
