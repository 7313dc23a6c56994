// Package window shows playback in an Ebitengine window.
package window

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-replay-go/internal/playback"
	"github.com/olivierh59500/particle-replay-go/internal/render"
)

// Window is an ebiten.Game that is also a render surface. Frames are
// drawn into an offscreen image during Update so that they can be read
// back for export, and copied to the screen in Draw.
type Window struct {
	width, height int
	canvas        *ebiten.Image
	pixels        []byte

	tf       render.Transform
	boundary []render.Segment
	points   []render.Point
	title    string

	tick func() (bool, error)

	// OnFinish is called once when the tick function reports done.
	OnFinish func(error)
	// ExitOnFinish ends the game loop when playback is over; otherwise
	// the last frame stays on screen until the window is closed.
	ExitOnFinish bool

	Paused bool
	gate   playback.FrameGate
}

// New returns a width x height window surface.
func New(width, height int) *Window {
	return &Window{
		width:  width,
		height: height,
		canvas: ebiten.NewImage(width, height),
		pixels: make([]byte, 4*width*height),
	}
}

// Bind sets the function run on each tick, usually Engine.Tick.
func (w *Window) Bind(tick func() (bool, error)) {
	w.tick = tick
}

// Run opens the window and blocks until the game loop ends.
// A zero interval ticks once per displayed frame.
func (w *Window) Run(title string, interval time.Duration) error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(title)
	if interval > 0 {
		ebiten.SetTPS(max(1, int(time.Second/interval)))
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}
	return ebiten.RunGame(w)
}

// Update is called each tick by Ebitengine
func (w *Window) Update() error {
	if quit := w.handleInput(); quit {
		return ebiten.Termination
	}
	// the last frame must reach the screen before the loop ends
	if exit, err := w.gate.Exit(w.ExitOnFinish); exit {
		if err != nil {
			return err
		}
		return ebiten.Termination
	}
	// one frame per displayed frame at most, nothing may be skipped on screen
	if w.Paused || !w.gate.Ready() || w.tick == nil {
		return nil
	}

	done, err := w.tick()
	if !done {
		return nil
	}
	w.gate.Finish(err)
	if w.OnFinish != nil {
		w.OnFinish(err)
	}
	return nil
}

// Draw is called each frame by Ebitengine
func (w *Window) Draw(screen *ebiten.Image) {
	screen.DrawImage(w.canvas, nil)
	w.gate.Presented()
}

// Layout returns the screen size
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

// Err returns the error that ended playback, if any.
func (w *Window) Err() error { return w.gate.Err() }

// handleInput processes keyboard input
func (w *Window) handleInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.Paused = !w.Paused
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

// SetViewport maps the world rectangle onto the plot area below the title.
func (w *Window) SetViewport(vp render.Viewport) {
	w.tf = render.NewTransform(vp, render.PlotRect(w.width, w.height))
}

// DrawBoundary adds segments redrawn on every flush.
func (w *Window) DrawBoundary(segs []render.Segment) {
	w.boundary = append(w.boundary, segs...)
}

// SetPoints replaces the particles shown by the next flush.
func (w *Window) SetPoints(pts []render.Point) {
	w.points = pts
}

// SetTitle sets the text drawn above the plot.
func (w *Window) SetTitle(s string) {
	w.title = s
}

// Flush redraws the offscreen frame; Draw presents it on the next frame.
func (w *Window) Flush() error {
	w.canvas.Fill(render.Background)

	for _, s := range w.boundary {
		x0, y0 := w.tf.Point(s.X0, s.Y0)
		x1, y1 := w.tf.Point(s.X1, s.Y1)
		vector.StrokeLine(w.canvas, float32(x0), float32(y0), float32(x1), float32(y1), 1, render.BoundaryColor, false)
	}
	for _, p := range w.points {
		cx, cy := w.tf.Point(p.X, p.Y)
		r := max(w.tf.Length(p.Diameter/2), 0.5)
		vector.DrawFilledCircle(w.canvas, float32(cx), float32(cy), float32(r), p.Color, false)
	}
	if w.title != "" {
		ebitenutil.DebugPrintAt(w.canvas, w.title, (w.width-6*len(w.title))/2, 1)
	}

	w.gate.Flushed()
	return nil
}

// Snapshot reads back the offscreen frame.
func (w *Window) Snapshot() (image.Image, error) {
	w.canvas.ReadPixels(w.pixels)
	img := image.NewRGBA(image.Rect(0, 0, w.width, w.height))
	copy(img.Pix, w.pixels)
	return img, nil
}
