package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/olivierh59500/particle-replay-go/internal/render"
	"github.com/olivierh59500/particle-replay-go/internal/snapshot"
)

// ErrTicksClosed is returned by Run when the tick channel closes before
// playback finished.
var ErrTicksClosed = errors.New("playback: tick channel closed")

// Options configure an Engine.
type Options struct {
	Store      *snapshot.Store
	BoundsPath string
	Surface    render.Surface

	// Exporter, when set, writes every rendered frame; Surface must then
	// also implement render.Rasterizer.
	Exporter *render.Exporter
	Recorder Recorder

	Palette render.Palette
	Margin  float64 // fraction of each axis, used as given; see DefaultMargin

	// SkipCorrupt logs and skips frames that fail to load or export
	// instead of stopping playback.
	SkipCorrupt bool
	// Prefetch loads the next snapshot on a background goroutine.
	Prefetch bool

	Logger *log.Logger
}

// Engine drives a render surface through a snapshot sequence.
// Tick must be called from a single goroutine, the one owning the surface.
type Engine struct {
	opts   Options
	raster render.Rasterizer
	log    *log.Logger

	bounds snapshot.Bounds
	seq    []string
	state  State

	pre *Prefetcher

	done     chan struct{}
	finished bool
	err      error
	skipped  []Skipped
}

// New loads the domain bounds, discovers the sequence and prepares the
// surface. Nothing is rendered until the first Tick. An empty sequence
// yields an engine that is already finished.
func New(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Store == nil || opts.Surface == nil {
		return nil, errors.New("playback: store and surface are required")
	}
	if opts.Margin < 0 {
		return nil, fmt.Errorf("playback: negative margin %v", opts.Margin)
	}
	if opts.Palette.Mode == "" {
		opts.Palette, _ = render.ParsePalette(render.PaletteSolid)
	}
	e := &Engine{
		opts: opts,
		log:  opts.Logger,
		done: make(chan struct{}),
	}
	if e.log == nil {
		e.log = log.Default()
	}
	if opts.Exporter != nil {
		r, ok := opts.Surface.(render.Rasterizer)
		if !ok {
			return nil, fmt.Errorf("playback: export needs a surface that can rasterise, got %T", opts.Surface)
		}
		e.raster = r
	}

	b, err := snapshot.LoadBounds(opts.BoundsPath)
	if err != nil {
		return nil, err
	}
	seq, err := opts.Store.Discover()
	if err != nil {
		return nil, err
	}
	e.bounds = b
	e.seq = seq
	e.state = State{Cursor: 0, Len: len(seq)}

	opts.Surface.SetViewport(NewViewport(b, opts.Margin))
	opts.Surface.DrawBoundary(Boundary(b))

	if opts.Prefetch && len(seq) > 0 {
		e.pre = NewPrefetcher(ctx, e.loadFrame)
		e.pre.Request(0)
	}
	if e.state.Finished() {
		e.finish(nil)
	}
	return e, nil
}

// Bounds returns the domain bounds.
func (e *Engine) Bounds() snapshot.Bounds { return e.bounds }

// Sequence returns the discovered snapshot ids.
func (e *Engine) Sequence() []string { return e.seq }

// Cursor returns the index of the next frame to render.
func (e *Engine) Cursor() int { return e.state.Cursor }

// Len returns the number of snapshots.
func (e *Engine) Len() int { return e.state.Len }

// Done is closed once playback reached its terminal state.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Finished reports whether playback is over.
func (e *Engine) Finished() bool { return e.finished }

// Err returns the error that stopped playback, if any.
func (e *Engine) Err() error { return e.err }

// Skipped lists frames dropped under the skip policy.
func (e *Engine) Skipped() []Skipped { return e.skipped }

// Tick renders the frame under the cursor and advances it. It returns
// done once the sequence is exhausted or a fatal error stopped playback.
func (e *Engine) Tick() (bool, error) {
	if e.finished {
		return true, e.err
	}
	next, step := Advance(e.state)
	if step.Done {
		e.finish(nil)
		return true, nil
	}

	id := e.seq[step.Index]
	if err := e.renderFrame(step.Index, id); err != nil {
		if !e.skippable(err) {
			e.log.Printf("playback: frame %d (%s): %v", step.Index, id, err)
			e.finish(err)
			return true, err
		}
		e.log.Printf("playback: skipping frame %d (%s): %v", step.Index, id, err)
		e.skipped = append(e.skipped, Skipped{Index: step.Index, ID: id, Err: err})
		e.record(FrameRecord{Index: step.Index, ID: id, Status: StatusSkipped, Err: err})
	}

	e.state = next
	if e.state.Finished() {
		e.finish(nil)
		return true, nil
	}
	if e.pre != nil {
		e.pre.Request(e.state.Cursor)
	}
	return false, nil
}

// Run ticks the engine on every value received from ticks until playback
// finishes or ctx is cancelled.
func (e *Engine) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.done:
			return e.err
		case _, ok := <-ticks:
			if !ok {
				return ErrTicksClosed
			}
			if done, err := e.Tick(); done {
				return err
			}
		}
	}
}

// Close releases the background loader.
func (e *Engine) Close() error {
	if e.pre == nil {
		return nil
	}
	err := e.pre.Close()
	e.pre = nil
	return err
}

func (e *Engine) renderFrame(i int, id string) error {
	var (
		f   *snapshot.Frame
		err error
	)
	if e.pre != nil {
		f, err = e.pre.Get(i)
	} else {
		f, err = e.loadFrame(i)
	}
	if err != nil {
		return err
	}

	s := e.opts.Surface
	s.SetPoints(BuildPoints(f, e.opts.Palette))
	s.SetTitle(Title(i, e.state.Len))
	if err := s.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	rec := FrameRecord{Index: i, ID: id, Status: StatusRendered, Particles: f.Len()}
	if e.opts.Exporter != nil {
		path, err := e.opts.Exporter.Export(i, e.raster)
		if err != nil {
			return err
		}
		rec.Status = StatusExported
		rec.Image = path
	}
	e.record(rec)
	return nil
}

func (e *Engine) loadFrame(i int) (*snapshot.Frame, error) {
	return e.opts.Store.LoadFrame(e.seq[i], e.opts.Palette.NeedsVelocity())
}

func (e *Engine) skippable(err error) bool {
	if !e.opts.SkipCorrupt {
		return false
	}
	var ce *snapshot.CorruptSnapshotError
	var ee *render.ExportError
	return errors.As(err, &ce) || errors.As(err, &ee)
}

func (e *Engine) record(r FrameRecord) {
	if e.opts.Recorder == nil {
		return
	}
	if err := e.opts.Recorder.Record(r); err != nil {
		e.log.Printf("playback: record frame %d: %v", r.Index, err)
	}
}

func (e *Engine) finish(err error) {
	if e.finished {
		return
	}
	e.finished = true
	e.err = err
	close(e.done)
}
