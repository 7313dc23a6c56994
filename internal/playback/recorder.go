package playback

// Status of a processed frame.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusExported Status = "exported"
	StatusSkipped  Status = "skipped"
)

// FrameRecord describes what happened to one frame.
type FrameRecord struct {
	Index     int
	ID        string
	Status    Status
	Particles int
	Image     string // export path, if any
	Err       error  // reason for a skip
}

// Recorder receives one record per processed frame.
type Recorder interface {
	Record(FrameRecord) error
}

// Skipped is a frame dropped under the skip policy.
type Skipped struct {
	Index int
	ID    string
	Err   error
}
