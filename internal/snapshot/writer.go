package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// State is the full simulation state stored in one snapshot directory.
type State struct {
	Iter      uint64
	Time      float64
	Densities []float64
	Radii     []float64
	X, Y      []float64
	VX, VY    []float64
}

// Validate checks that all particle arrays share one length.
func (s *State) Validate() error {
	n := len(s.Radii)
	for name, v := range map[string][]float64{
		FieldDensities:   s.Densities,
		FieldPositionsX:  s.X,
		FieldPositionsY:  s.Y,
		FieldVelocitiesX: s.VX,
		FieldVelocitiesY: s.VY,
	} {
		if len(v) != n {
			return fmt.Errorf("%s has %d values, radii has %d", name, len(v), n)
		}
	}
	return nil
}

// IterName formats the directory name of iteration it, e.g. iter0000000042.
func IterName(it uint64) string {
	return fmt.Sprintf("%s%010d", DefaultPrefix, it)
}

// WriteState stores s in dir, creating it if needed. Arrays are zstd
// compressed when compress is set.
func WriteState(dir string, s *State, compress bool) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	arrays := []struct {
		field string
		v     any
	}{
		{FieldIter, []uint64{s.Iter}},
		{FieldTime, []float64{s.Time}},
		{FieldNParticles, []uint64{uint64(len(s.Radii))}},
		{FieldDensities, s.Densities},
		{FieldRadii, s.Radii},
		{FieldPositionsX, s.X},
		{FieldPositionsY, s.Y},
		{FieldVelocitiesX, s.VX},
		{FieldVelocitiesY, s.VY},
	}
	for _, a := range arrays {
		if err := writeArray(filepath.Join(dir, a.field), a.v, compress); err != nil {
			return fmt.Errorf("write %s: %w", a.field, err)
		}
	}
	return nil
}

// WriteFloats stores a single float field, used for partial or hand-made snapshots.
func WriteFloats(dir, field string, v []float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return writeArray(filepath.Join(dir, field), v, false)
}

// WriteBounds stores the domain lengths at path.
func WriteBounds(path string, b Bounds) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return writeArray(strings.TrimSuffix(path, npyExt), []float64{b.Lx, b.Ly}, false)
}
