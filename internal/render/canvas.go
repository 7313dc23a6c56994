package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// minPixelRadius keeps sub-pixel particles visible.
const minPixelRadius = 0.5

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Canvas is a headless Surface backed by an in-memory RGBA image.
type Canvas struct {
	img      *image.RGBA
	ras      *vector.Rasterizer
	tf       Transform
	boundary []Segment
	points   []Point
	title    string
	flushes  int
}

// NewCanvas returns a w x h pixel canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		ras: vector.NewRasterizer(w, h),
	}
}

// SetViewport fits vp into the area below the title band.
func (c *Canvas) SetViewport(vp Viewport) {
	b := c.img.Bounds()
	c.tf = NewTransform(vp, PlotRect(b.Dx(), b.Dy()))
}

// DrawBoundary adds segments redrawn on every flush.
func (c *Canvas) DrawBoundary(segs []Segment) {
	c.boundary = append(c.boundary, segs...)
}

// SetPoints replaces the particles drawn by the next flush.
func (c *Canvas) SetPoints(pts []Point) {
	c.points = pts
}

// SetTitle sets the text drawn above the plot.
func (c *Canvas) SetTitle(s string) {
	c.title = s
}

// Transform returns the current world to pixel mapping.
func (c *Canvas) Transform() Transform { return c.tf }

// Points returns the point set drawn by the last Flush.
func (c *Canvas) Points() []Point { return c.points }

// Title returns the current title.
func (c *Canvas) Title() string { return c.title }

// Flushes counts repaints.
func (c *Canvas) Flushes() int { return c.flushes }

// Flush repaints the whole image from the current state.
func (c *Canvas) Flush() error {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	if len(c.boundary) > 0 {
		c.beginPath()
		for _, s := range c.boundary {
			c.line(s, 1)
		}
		c.fill(BoundaryColor)
	}

	// one pass per colour
	var order []color.RGBA
	groups := make(map[color.RGBA][]Point)
	for _, p := range c.points {
		if _, ok := groups[p.Color]; !ok {
			order = append(order, p.Color)
		}
		groups[p.Color] = append(groups[p.Color], p)
	}
	for _, col := range order {
		c.beginPath()
		for _, p := range groups[col] {
			c.circle(p)
		}
		c.fill(col)
	}

	if c.title != "" {
		d := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(TitleColor),
			Face: basicfont.Face7x13,
		}
		w := d.MeasureString(c.title).Ceil()
		d.Dot = fixed.P((c.img.Bounds().Dx()-w)/2, 13)
		d.DrawString(c.title)
	}

	c.flushes++
	return nil
}

// Snapshot returns a copy of the last flushed image.
func (c *Canvas) Snapshot() (image.Image, error) {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out, nil
}

func (c *Canvas) beginPath() {
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
}

func (c *Canvas) fill(col color.RGBA) {
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// line adds a segment as a quad of the given pixel width.
func (c *Canvas) line(s Segment, width float64) {
	x0, y0 := c.tf.Point(s.X0, s.Y0)
	x1, y1 := c.tf.Point(s.X1, s.Y1)
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.ras.MoveTo(float32(x0+nx), float32(y0+ny))
	c.ras.LineTo(float32(x1+nx), float32(y1+ny))
	c.ras.LineTo(float32(x1-nx), float32(y1-ny))
	c.ras.LineTo(float32(x0-nx), float32(y0-ny))
	c.ras.ClosePath()
}

// circle adds a particle outline built from four cubic arcs.
func (c *Canvas) circle(p Point) {
	cx, cy := c.tf.Point(p.X, p.Y)
	r := math.Max(c.tf.Length(p.Diameter/2), minPixelRadius)
	k := r * kappa
	f := func(v float64) float32 { return float32(v) }

	c.ras.MoveTo(f(cx+r), f(cy))
	c.ras.CubeTo(f(cx+r), f(cy+k), f(cx+k), f(cy+r), f(cx), f(cy+r))
	c.ras.CubeTo(f(cx-k), f(cy+r), f(cx-r), f(cy+k), f(cx-r), f(cy))
	c.ras.CubeTo(f(cx-r), f(cy-k), f(cx-k), f(cy-r), f(cx), f(cy-r))
	c.ras.CubeTo(f(cx+k), f(cy-r), f(cx+r), f(cy-k), f(cx+r), f(cy))
	c.ras.ClosePath()
}
