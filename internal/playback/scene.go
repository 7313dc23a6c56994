package playback

import (
	"fmt"

	"github.com/olivierh59500/particle-replay-go/internal/render"
	"github.com/olivierh59500/particle-replay-go/internal/snapshot"
)

// DefaultMargin is the viewport padding as a fraction of each axis length.
const DefaultMargin = 0.01

// NewViewport pads the domain [0, Lx] x [0, Ly] by margin on every side.
func NewViewport(b snapshot.Bounds, margin float64) render.Viewport {
	mx, my := margin*b.Lx, margin*b.Ly
	return render.Viewport{
		MinX: -mx, MaxX: b.Lx + mx,
		MinY: -my, MaxY: b.Ly + my,
	}
}

// Boundary returns the four edges of the domain rectangle.
func Boundary(b snapshot.Bounds) []render.Segment {
	return []render.Segment{
		{X0: 0, Y0: 0, X1: 0, Y1: b.Ly},
		{X0: b.Lx, Y0: 0, X1: b.Lx, Y1: b.Ly},
		{X0: 0, Y0: 0, X1: b.Lx, Y1: 0},
		{X0: 0, Y0: b.Ly, X1: b.Lx, Y1: b.Ly},
	}
}

// Title is the label shown for frame i of n.
func Title(i, n int) string {
	return fmt.Sprintf("%d / %d", i, n)
}

// BuildPoints converts a frame into drawable points. The diameter of
// every point is twice its radius, in domain units.
func BuildPoints(f *snapshot.Frame, pal render.Palette) []render.Point {
	n := f.Len()
	cols := pal.Colors(n, f.VX, f.VY)
	pts := make([]render.Point, n)
	for k := 0; k < n; k++ {
		pts[k] = render.Point{
			X:        f.X[k],
			Y:        f.Y[k],
			Diameter: 2 * f.Radii[k],
			Color:    cols[k],
		}
	}
	return pts
}
