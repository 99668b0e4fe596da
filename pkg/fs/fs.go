// Package fs provides the file system helpers.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Exists function checks if the file/directory exists.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureDir creates the directory if it doesn't exist yet.
func EnsureDir(path string) error {
	err := os.MkdirAll(path, 0755)
	if err != nil {
		return fmt.Errorf("ensureDir -> cannot create directory: %w; dir=%s", err, path)
	}
	return nil
}

// WriteAtomic writes the data to a temporary file next to the target and renames it over the target.
// Readers never observe a partially written file.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writeAtomic -> cannot create temporary file: %w; dir=%s", err, dir)
	}
	defer os.Remove(tmp.Name())
	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("writeAtomic -> cannot write: %w; file=%s", err, tmp.Name())
	}
	err = tmp.Sync()
	if err != nil {
		tmp.Close()
		return fmt.Errorf("writeAtomic -> cannot sync: %w; file=%s", err, tmp.Name())
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("writeAtomic -> cannot close: %w; file=%s", err, tmp.Name())
	}
	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return fmt.Errorf("writeAtomic -> cannot rename: %w; file=%s", err, path)
	}
	return nil
}
