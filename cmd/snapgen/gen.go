package main

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	"github.com/aquilax/go-perlin"

	"github.com/olivierh59500/particle-replay-go/internal/snapshot"
)

// Noise parameters for the drift field
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOcts  = 3
	noiseScale = 0.5
	maxTries   = 1000
)

type genOptions struct {
	Root     string
	Bounds   string
	Lx, Ly   float64
	N        int
	Radius   float64
	Frames   int
	DT       float64
	Seed     int64
	Compress bool
}

// generate writes the domain bounds and opts.Frames snapshots whose
// particles drift along a Perlin noise field, bouncing off the walls.
func generate(opts genOptions) error {
	if opts.N <= 0 || opts.Frames <= 0 || opts.Radius <= 0 {
		return fmt.Errorf("snapgen: particles, frames and radius must be positive")
	}
	b := snapshot.Bounds{Lx: opts.Lx, Ly: opts.Ly}
	if err := snapshot.WriteBounds(opts.Bounds, b); err != nil {
		return fmt.Errorf("write bounds: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOcts, opts.Seed)

	st, err := place(rng, b, opts.N, opts.Radius)
	if err != nil {
		return err
	}
	for k := range st.Radii {
		st.VX[k], st.VY[k] = flow(noise, st.X[k], st.Y[k])
	}

	for f := 0; f < opts.Frames; f++ {
		st.Iter = uint64(f)
		st.Time = float64(f) * opts.DT
		dir := filepath.Join(opts.Root, snapshot.IterName(st.Iter))
		if err := snapshot.WriteState(dir, st, opts.Compress); err != nil {
			return fmt.Errorf("write %s: %w", dir, err)
		}
		drift(noise, st, b, opts.DT)
	}
	return nil
}

// place scatters n non-overlapping particles of radius r inside b.
func place(rng *rand.Rand, b snapshot.Bounds, n int, r float64) (*snapshot.State, error) {
	if 2*r >= b.Lx || 2*r >= b.Ly {
		return nil, fmt.Errorf("snapgen: radius %g does not fit in %gx%g", r, b.Lx, b.Ly)
	}
	st := &snapshot.State{
		Densities: make([]float64, n),
		Radii:     make([]float64, n),
		X:         make([]float64, n),
		Y:         make([]float64, n),
		VX:        make([]float64, n),
		VY:        make([]float64, n),
	}
	for k := 0; k < n; k++ {
		placed := false
		for try := 0; try < maxTries && !placed; try++ {
			x := r + rng.Float64()*(b.Lx-2*r)
			y := r + rng.Float64()*(b.Ly-2*r)
			placed = true
			for j := 0; j < k; j++ {
				if math.Hypot(x-st.X[j], y-st.Y[j]) < 2*r {
					placed = false
					break
				}
			}
			if placed {
				st.X[k], st.Y[k] = x, y
			}
		}
		if !placed {
			return nil, fmt.Errorf("snapgen: no room for particle %d of %d", k+1, n)
		}
		st.Radii[k] = r
		st.Densities[k] = 1
	}
	return st, nil
}

// flow samples the noise field as a velocity.
func flow(p *perlin.Perlin, x, y float64) (float64, float64) {
	vx := p.Noise2D(x*noiseScale, y*noiseScale)
	vy := p.Noise2D(x*noiseScale+31.7, y*noiseScale-17.3)
	return vx, vy
}

// drift moves every particle by dt along the field, reflecting at the walls.
func drift(p *perlin.Perlin, st *snapshot.State, b snapshot.Bounds, dt float64) {
	for k := range st.Radii {
		vx, vy := flow(p, st.X[k], st.Y[k])
		st.VX[k], st.VY[k] = vx, vy
		st.X[k] = reflect(st.X[k]+vx*dt, st.Radii[k], b.Lx)
		st.Y[k] = reflect(st.Y[k]+vy*dt, st.Radii[k], b.Ly)
	}
}

func reflect(v, r, l float64) float64 {
	lo, hi := r, l-r
	if v < lo {
		return math.Min(2*lo-v, hi)
	}
	if v > hi {
		return math.Max(2*hi-v, lo)
	}
	return v
}
