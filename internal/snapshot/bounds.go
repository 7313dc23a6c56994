package snapshot

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Bounds is the rectangular extent [0, Lx] x [0, Ly] of the simulated domain.
type Bounds struct {
	Lx, Ly float64
}

// LoadBounds reads the 2-element lengths array at path. The ".npy"
// extension is optional.
func LoadBounds(path string) (Bounds, error) {
	base := strings.TrimSuffix(path, npyExt)
	v, err := readFloats(base)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Bounds{}, &NotFoundError{Path: path, Err: err}
		}
		return Bounds{}, &CorruptSnapshotError{ID: path, Err: err}
	}
	if len(v) != 2 {
		return Bounds{}, &CorruptSnapshotError{ID: path, Err: fmt.Errorf("%d lengths, want 2", len(v))}
	}
	b := Bounds{Lx: v[0], Ly: v[1]}
	if !(b.Lx > 0 && b.Ly > 0) {
		return Bounds{}, &CorruptSnapshotError{ID: path, Err: fmt.Errorf("non-positive lengths %v", v)}
	}
	return b, nil
}
