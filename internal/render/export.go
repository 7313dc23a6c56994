package render

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// ExportError reports a frame that could not be rasterised or written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// FrameName returns the file name of frame i, e.g. img00007.png.
func FrameName(i int) string {
	return fmt.Sprintf("img%05d.png", i)
}

// Exporter writes rendered frames as PNG files into Dir.
type Exporter struct {
	Dir string
}

// NewExporter creates dir if needed.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &ExportError{Path: dir, Err: err}
	}
	return &Exporter{Dir: dir}, nil
}

// Path returns where frame i is written.
func (e *Exporter) Path(i int) string {
	return filepath.Join(e.Dir, FrameName(i))
}

// Export rasterises the current content of r into the file of frame i.
func (e *Exporter) Export(i int, r Rasterizer) (path string, err error) {
	path = e.Path(i)
	img, err := r.Snapshot()
	if err != nil {
		return path, &ExportError{Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return path, &ExportError{Path: path, Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return path, &ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return path, &ExportError{Path: path, Err: err}
	}
	return path, nil
}
