package playback

// FrameGate paces a host loop whose ticks and screen presentation run
// separately, as in a game loop. A flushed frame must be presented before
// the next tick runs, and the loop may only exit once the frame rendered
// by the final tick has been presented.
type FrameGate struct {
	pending  bool // flushed but not presented yet
	finished bool
	err      error
}

// Ready reports whether another tick may run.
func (g *FrameGate) Ready() bool {
	return !g.finished && !g.pending
}

// Flushed marks a newly rendered frame as waiting to be presented.
func (g *FrameGate) Flushed() { g.pending = true }

// Presented marks the waiting frame as shown.
func (g *FrameGate) Presented() { g.pending = false }

// Finish records the end of playback and the error that ended it, if any.
// Later calls are ignored.
func (g *FrameGate) Finish(err error) {
	if g.finished {
		return
	}
	g.finished = true
	g.err = err
}

// Finished reports whether Finish has been called.
func (g *FrameGate) Finished() bool { return g.finished }

// Err returns the error passed to Finish.
func (g *FrameGate) Err() error { return g.err }

// Exit reports whether the host loop should stop now: playback is over,
// its last frame has been presented and exiting was requested. The
// returned error is the one playback ended with.
func (g *FrameGate) Exit(exitOnFinish bool) (bool, error) {
	if !exitOnFinish || !g.finished || g.pending {
		return false, nil
	}
	return true, g.err
}
