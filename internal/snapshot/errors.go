package snapshot

import (
	"errors"
	"fmt"
)

var errNotDir = errors.New("not a directory")

// NotFoundError reports a missing snapshot root or domain bounds file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snapshot: %s not found: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// CorruptSnapshotError reports an array file that is missing, unreadable,
// of the wrong dtype, or whose length disagrees with the rest of its snapshot.
type CorruptSnapshotError struct {
	ID    string
	Field string
	Err   error
}

func (e *CorruptSnapshotError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("snapshot %s: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("snapshot %s/%s: %v", e.ID, e.Field, e.Err)
}

func (e *CorruptSnapshotError) Unwrap() error { return e.Err }
