// Package romloader reads ROM images from disk, transparently unpacking
// the handful of archive formats Game Boy test-ROM suites and public
// ROM dumps are commonly distributed in.
package romloader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// Load reads filename and, for a recognized archive extension, returns
// the first file inside it instead of the raw archive bytes. A plain
// .gb/.gbc image or any other unrecognized extension is returned as is.
func Load(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("romloader: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("romloader: %w", err)
	}

	var decoder io.Reader
	switch filepath.Ext(filename) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		decoder, err = firstZipEntry(data)
	case ".7z":
		decoder, err = first7zEntry(f, int64(len(data)))
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("romloader: %w", err)
	}

	unpacked, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("romloader: %w", err)
	}
	return unpacked, nil
}

func firstZipEntry(data []byte) (io.Reader, error) {
	r, err := zip.NewReader(readerAt{data}, int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("zip archive is empty")
	}
	return r.File[0].Open()
}

func first7zEntry(f *os.File, size int64) (io.Reader, error) {
	r, err := sevenzip.NewReader(f, size)
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("7z archive is empty")
	}
	return r.File[0].Open()
}

// readerAt adapts an in-memory byte slice to io.ReaderAt, so
// zip.NewReader parses the bytes io.ReadAll already returned instead of
// reading the file a second time.
type readerAt struct{ data []byte }

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
