/*
Package persist saves and restores built dictionaries as msgpack blobs.

Files are read through a read-only memory mapping; decoding copies everything
it needs, so the mapping is released before LoadFile returns.
*/
package persist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrEmptyBlob is returned when decoding from an empty source.
var ErrEmptyBlob = errors.New("empty dictionary blob")

// Encode writes v to w in msgpack format.
func Encode(w io.Writer, v any) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding dictionary: %w", err)
	}
	return nil
}

// Decode reads one msgpack value from r into v, which must be a pointer.
func Decode(r io.Reader, v any) error {
	if err := msgpack.NewDecoder(r).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBlob
		}
		return fmt.Errorf("decoding dictionary: %w", err)
	}
	return nil
}

// SaveFile encodes v into a newly created file at path.
func SaveFile(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err = Encode(w, v); err != nil {
		return err
	}
	return w.Flush()
}

// LoadFile decodes the file at path into v.
func LoadFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s: %w", path, ErrEmptyBlob)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mapping %s: %w", path, err)
	}
	defer m.Unmap()
	if err := Decode(bytes.NewReader(m), v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
