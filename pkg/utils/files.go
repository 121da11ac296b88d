package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("utils: empty archive")

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first regular file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decompress(filename, data)
}

// Decompress decodes data according to the extension of name. Unknown
// extensions are returned as is.
func Decompress(name string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		if r, err = zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
			decoder, err = firstFile(r.File, func(f *zip.File) (bool, func() (io.ReadCloser, error)) {
				return f.FileInfo().IsDir(), f.Open
			})
		}
	case ".7z":
		var r *sevenzip.Reader
		if r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
			decoder, err = firstFile(r.File, func(f *sevenzip.File) (bool, func() (io.ReadCloser, error)) {
				return f.FileInfo().IsDir(), f.Open
			})
		}
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", name, err)
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	out, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", name, err)
	}
	return out, nil
}

// firstFile opens the first entry of an archive that is not a directory.
func firstFile[F any](files []F, entry func(F) (bool, func() (io.ReadCloser, error))) (io.Reader, error) {
	for _, f := range files {
		dir, open := entry(f)
		if dir {
			continue
		}
		return open()
	}
	return nil, ErrEmptyArchive
}
