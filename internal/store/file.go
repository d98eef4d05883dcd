package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each key in its own file under a directory. Writes are
// atomic (temp file + rename) so a crash never leaves a torn file.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(key string) string {
	if key == KeyHistory {
		return filepath.Join(f.dir, key+".json")
	}
	return filepath.Join(f.dir, key)
}

// Load reads both keys. Missing files are empty values.
func (f *FileStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	platform, err := f.read(KeyActivePlatform)
	if err != nil {
		return Snapshot{}, err
	}
	history, err := f.read(KeyHistory)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		ActivePlatform: strings.TrimSpace(string(platform)),
		History:        decodeHistory(bytes.TrimSpace(history)),
	}, nil
}

func (f *FileStore) read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Save writes both keys.
func (f *FileStore) Save(ctx context.Context, s Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	history, err := encodeHistory(s.History)
	if err != nil {
		return err
	}
	if err := f.write(KeyHistory, history); err != nil {
		return err
	}
	return f.write(KeyActivePlatform, []byte(s.ActivePlatform))
}

// write replaces the key's file atomically.
func (f *FileStore) write(key string, data []byte) error {
	tmpFile, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", key, err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s file: %w", key, err)
	}

	return nil
}

// Close is a no-op.
func (f *FileStore) Close() error { return nil }
