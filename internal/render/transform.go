package render

import (
	"image"
	"math"
)

// TitleBand is the pixel height reserved above the plot for the title.
const TitleBand = 18

// Transform maps world coordinates into a pixel rectangle with a locked
// 1:1 aspect ratio. World y grows upwards, pixel y downwards.
type Transform struct {
	Scale      float64
	offX, offY float64
	vp         Viewport
	plot       image.Rectangle
}

// NewTransform fits vp into plot, centring the slack axis.
func NewTransform(vp Viewport, plot image.Rectangle) Transform {
	t := Transform{vp: vp, plot: plot}
	w, h := float64(plot.Dx()), float64(plot.Dy())
	if vp.Width() <= 0 || vp.Height() <= 0 || w <= 0 || h <= 0 {
		return t
	}
	t.Scale = math.Min(w/vp.Width(), h/vp.Height())
	t.offX = (w - t.Scale*vp.Width()) / 2
	t.offY = (h - t.Scale*vp.Height()) / 2
	return t
}

// PlotRect returns the plot area of a w x h surface, below the title band.
func PlotRect(w, h int) image.Rectangle {
	return image.Rect(0, TitleBand, w, h)
}

// Point maps a world position to pixels.
func (t Transform) Point(x, y float64) (float64, float64) {
	px := float64(t.plot.Min.X) + t.offX + (x-t.vp.MinX)*t.Scale
	py := float64(t.plot.Max.Y) - t.offY - (y-t.vp.MinY)*t.Scale
	return px, py
}

// Length maps a world length to pixels.
func (t Transform) Length(l float64) float64 {
	return l * t.Scale
}
