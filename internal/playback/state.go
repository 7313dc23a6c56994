// Package playback replays an ordered sequence of particle snapshots onto
// a render surface, one snapshot per tick.
package playback

// State is the playback cursor over a sequence of Len snapshots.
type State struct {
	Cursor int
	Len    int
}

// Finished reports whether the cursor has reached the end of the sequence.
func (s State) Finished() bool { return s.Cursor >= s.Len }

// Step is what a host loop has to do for one tick.
type Step struct {
	Done  bool
	Index int
}

// Advance is the frame scheduler: it returns the frame to render for s and
// the state after that frame, or Done once the sequence is exhausted.
func Advance(s State) (State, Step) {
	if s.Finished() {
		return s, Step{Done: true, Index: s.Len}
	}
	return State{Cursor: s.Cursor + 1, Len: s.Len}, Step{Index: s.Cursor}
}
