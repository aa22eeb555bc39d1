package artifact

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// BlobWriter stores artifact payloads as flat files under a single
// directory. Keys are random and carry an extension sniffed from the
// payload so the scratch directory stays readable for operators.
type BlobWriter struct {
	fs  afero.Fs
	dir string
}

// NewBlobWriter creates the blob directory if needed.
func NewBlobWriter(fs afero.Fs, dir string) (*BlobWriter, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Key: dir, Err: err}
	}
	return &BlobWriter{fs: fs, dir: dir}, nil
}

// Store writes data under a fresh key and returns a handle to it. The
// write goes through a temporary file and a rename so a crash never
// leaves a half-written blob under a final key.
func (w *BlobWriter) Store(data []byte, contentType string) (Handle, error) {
	key := uuid.New().String() + mimetype.Detect(data).Extension()
	finalPath := filepath.Join(w.dir, key)
	tmpPath := finalPath + ".tmp"

	if err := afero.WriteFile(w.fs, tmpPath, data, 0o644); err != nil {
		return Handle{}, &StorageError{Op: "write", Key: key, Err: err}
	}
	if err := w.fs.Rename(tmpPath, finalPath); err != nil {
		_ = w.fs.Remove(tmpPath)
		return Handle{}, &StorageError{Op: "rename", Key: key, Err: err}
	}

	return Handle{Key: key, ContentType: contentType, Size: int64(len(data))}, nil
}

// Delete removes the blob. A missing blob counts as success so the two
// eviction paths can race each other safely.
func (w *BlobWriter) Delete(h Handle) error {
	err := w.fs.Remove(filepath.Join(w.dir, h.Key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Op: "delete", Key: h.Key, Err: err}
	}
	return nil
}

// Exists reports whether the blob is present on storage.
func (w *BlobWriter) Exists(h Handle) (bool, error) {
	ok, err := afero.Exists(w.fs, filepath.Join(w.dir, h.Key))
	if err != nil {
		return false, &StorageError{Op: "stat", Key: h.Key, Err: err}
	}
	return ok, nil
}

// Open returns the blob for streaming. The caller owns the returned file.
func (w *BlobWriter) Open(h Handle) (afero.File, error) {
	f, err := w.fs.Open(filepath.Join(w.dir, h.Key))
	if err != nil {
		return nil, &StorageError{Op: "open", Key: h.Key, Err: err}
	}
	return f, nil
}

// Purge removes every file in the blob directory and reports how many it
// removed. Runs at startup: no registry remembers blobs from a previous
// process, so whatever is on disk is unreachable garbage.
func (w *BlobWriter) Purge() (int, error) {
	infos, err := afero.ReadDir(w.fs, w.dir)
	if err != nil {
		return 0, &StorageError{Op: "readdir", Key: w.dir, Err: err}
	}

	removed := 0
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if err := w.fs.Remove(filepath.Join(w.dir, info.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, &StorageError{Op: "purge", Key: info.Name(), Err: err}
		}
		removed++
	}
	return removed, nil
}
