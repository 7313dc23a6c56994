// Package snapshot reads and writes the on-disk state of a particle
// simulation: one directory per instant, one typed array file per field.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPrefix names the snapshot directories under a root.
const DefaultPrefix = "iter"

// Field names of the per-snapshot arrays.
const (
	FieldRadii       = "radii"
	FieldPositionsX  = "positions_0"
	FieldPositionsY  = "positions_1"
	FieldVelocitiesX = "velocities_0"
	FieldVelocitiesY = "velocities_1"
	FieldDensities   = "densities"
	FieldNParticles  = "nparticles"
	FieldTime        = "time"
	FieldIter        = "iter"
)

// Frame is the particle state of one snapshot as needed for drawing.
// VX and VY are nil unless velocities were requested.
type Frame struct {
	ID     string
	Radii  []float64
	X, Y   []float64
	VX, VY []float64
}

// Len returns the particle count.
func (f *Frame) Len() int { return len(f.Radii) }

// Store gives access to the snapshot directories found directly under Root.
type Store struct {
	Root   string
	Prefix string
}

// NewStore returns a store over root using the default "iter" prefix.
func NewStore(root string) *Store {
	return &Store{Root: root, Prefix: DefaultPrefix}
}

// Discover lists the snapshot directories under the root in string order.
// An existing root without any matching entry yields an empty sequence.
func (s *Store) Discover() ([]string, error) {
	fi, err := os.Stat(s.Root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, &NotFoundError{Path: s.Root, Err: err}
	case err != nil:
		return nil, fmt.Errorf("snapshot: stat %s: %w", s.Root, err)
	case !fi.IsDir():
		return nil, &NotFoundError{Path: s.Root, Err: errNotDir}
	}
	ents, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list %s: %w", s.Root, err)
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	ids := make([]string, 0, len(ents))
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Dir returns the directory of snapshot id.
func (s *Store) Dir(id string) string {
	return filepath.Join(s.Root, id)
}

// Load reads one float field of snapshot id.
func (s *Store) Load(id, field string) ([]float64, error) {
	v, err := readFloats(filepath.Join(s.Dir(id), field))
	if err != nil {
		return nil, &CorruptSnapshotError{ID: id, Field: field, Err: err}
	}
	return v, nil
}

// LoadCounts reads one unsigned count field (nparticles, iter) of snapshot id.
func (s *Store) LoadCounts(id, field string) ([]uint64, error) {
	v, err := readCounts(filepath.Join(s.Dir(id), field))
	if err != nil {
		return nil, &CorruptSnapshotError{ID: id, Field: field, Err: err}
	}
	return v, nil
}

// Open returns a reader that checks every field of snapshot id against
// the length of the first one it loaded.
func (s *Store) Open(id string) *Reader {
	return &Reader{store: s, id: id, n: -1}
}

// LoadFrame reads radii and positions of snapshot id, and velocities
// when withVelocities is set.
func (s *Store) LoadFrame(id string, withVelocities bool) (*Frame, error) {
	r := s.Open(id)
	f := &Frame{ID: id}
	var err error
	if f.Radii, err = r.Floats(FieldRadii); err != nil {
		return nil, err
	}
	if f.X, err = r.Floats(FieldPositionsX); err != nil {
		return nil, err
	}
	if f.Y, err = r.Floats(FieldPositionsY); err != nil {
		return nil, err
	}
	if withVelocities {
		if f.VX, err = r.Floats(FieldVelocitiesX); err != nil {
			return nil, err
		}
		if f.VY, err = r.Floats(FieldVelocitiesY); err != nil {
			return nil, err
		}
	}
	if err := r.checkCount(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reader loads the fields of a single snapshot.
type Reader struct {
	store *Store
	id    string
	n     int
}

// Len returns the particle count fixed by the first loaded field, or -1.
func (r *Reader) Len() int { return r.n }

// Floats loads a float field and checks its length.
func (r *Reader) Floats(field string) ([]float64, error) {
	v, err := r.store.Load(r.id, field)
	if err != nil {
		return nil, err
	}
	if err := r.expect(field, len(v)); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Reader) expect(field string, n int) error {
	if r.n < 0 {
		r.n = n
		return nil
	}
	if n != r.n {
		return &CorruptSnapshotError{
			ID:    r.id,
			Field: field,
			Err:   fmt.Errorf("length %d, other fields have %d", n, r.n),
		}
	}
	return nil
}

// checkCount compares the optional nparticles scalar with the loaded length.
func (r *Reader) checkCount() error {
	path := filepath.Join(r.store.Dir(r.id), FieldNParticles)
	if _, err := os.Stat(path + npyExt); err != nil {
		if _, zerr := os.Stat(path + npyExt + zstdExt); zerr != nil {
			return nil
		}
	}
	counts, err := r.store.LoadCounts(r.id, FieldNParticles)
	if err != nil {
		return err
	}
	if len(counts) != 1 {
		return &CorruptSnapshotError{ID: r.id, Field: FieldNParticles, Err: fmt.Errorf("%d values, want 1", len(counts))}
	}
	if int(counts[0]) != r.n {
		return &CorruptSnapshotError{
			ID:    r.id,
			Field: FieldNParticles,
			Err:   fmt.Errorf("count %d, arrays have %d", counts[0], r.n),
		}
	}
	return nil
}
