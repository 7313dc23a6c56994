package playback

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olivierh59500/particle-replay-go/internal/snapshot"
)

type loaded struct {
	index int
	frame *snapshot.Frame
	err   error
}

// Prefetcher loads the next frame on a background goroutine and hands it
// over through a single slot. At most one request and one result are
// pending; a newer request or result replaces the older one.
type Prefetcher struct {
	load func(int) (*snapshot.Frame, error)
	reqs chan int

	mu   sync.Mutex
	slot *loaded

	cancel context.CancelFunc
	g      *errgroup.Group
}

// NewPrefetcher starts the loader goroutine. Close stops it.
func NewPrefetcher(ctx context.Context, load func(int) (*snapshot.Frame, error)) *Prefetcher {
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	p := &Prefetcher{
		load:   load,
		reqs:   make(chan int, 1),
		cancel: cancel,
		g:      g,
	}
	g.Go(func() error {
		p.loop(ctx)
		return nil
	})
	return p
}

func (p *Prefetcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case i := <-p.reqs:
			f, err := p.load(i)
			p.mu.Lock()
			p.slot = &loaded{index: i, frame: f, err: err}
			p.mu.Unlock()
		}
	}
}

// Request asks for frame i to be loaded ahead of time, dropping any
// request that has not been picked up yet.
func (p *Prefetcher) Request(i int) {
	select {
	case <-p.reqs:
	default:
	}
	select {
	case p.reqs <- i:
	default:
	}
}

// Get returns frame i from the slot, or loads it synchronously on a miss.
func (p *Prefetcher) Get(i int) (*snapshot.Frame, error) {
	p.mu.Lock()
	s := p.slot
	if s != nil && s.index == i {
		p.slot = nil
	}
	p.mu.Unlock()
	if s != nil && s.index == i {
		return s.frame, s.err
	}
	return p.load(i)
}

// Close stops the loader and waits for it to exit.
func (p *Prefetcher) Close() error {
	p.cancel()
	return p.g.Wait()
}
