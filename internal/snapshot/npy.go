package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/sbinet/npyio"
)

const (
	npyExt  = ".npy"
	zstdExt = ".zst"

	dtypeFloat = "<f8"
	dtypeCount = "<u8"
)

// openArray opens path+".npy", falling back to a zstd compressed
// path+".npy.zst" when the plain file does not exist.
func openArray(path string) (io.ReadCloser, error) {
	f, err := os.Open(path + npyExt)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	zf, zerr := os.Open(path + npyExt + zstdExt)
	if zerr != nil {
		// report the plain name, that is what callers expect to exist
		return nil, err
	}
	dec, zerr := zstd.NewReader(zf)
	if zerr != nil {
		zf.Close()
		return nil, zerr
	}
	return &zstdFile{dec: dec, f: zf}, nil
}

type zstdFile struct {
	dec *zstd.Decoder
	f   *os.File
}

func (z *zstdFile) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z *zstdFile) Close() error {
	z.dec.Close()
	return z.f.Close()
}

// readArray decodes a 1-D (or 0-D) npy array of the given dtype into ptr.
func readArray(path, dtype string, ptr any) error {
	rc, err := openArray(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	r, err := npyio.NewReader(rc)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if r.Header.Descr.Type != dtype {
		return fmt.Errorf("dtype %q, want %q", r.Header.Descr.Type, dtype)
	}
	if len(r.Header.Descr.Shape) > 1 {
		return fmt.Errorf("shape %v is not one dimensional", r.Header.Descr.Shape)
	}
	if err := r.Read(ptr); err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	return nil
}

func readFloats(path string) ([]float64, error) {
	var v []float64
	if err := readArray(path, dtypeFloat, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func readCounts(path string) ([]uint64, error) {
	var v []uint64
	if err := readArray(path, dtypeCount, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// writeArray encodes v as npy at path+".npy", or path+".npy.zst" when compress is set.
func writeArray(path string, v any, compress bool) (err error) {
	name := path + npyExt
	if compress {
		name += zstdExt
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !compress {
		return npyio.Write(f, v)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if err := npyio.Write(enc, v); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
