package utils

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/qian-o/CodeGenerator/internal/errors"
)

// WriteFileAtomic writes content to path through a temporary file in the
// same directory so readers never observe a partial artifact
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".notifygen-*")
	if err != nil {
		return errors.WrapFileSystemError("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapFileSystemError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapFileSystemError("write", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.WrapFileSystemError("chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapFileSystemError("rename", path, err)
	}
	return nil
}

// FileMatches reports whether path exists with exactly content
func FileMatches(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.WrapFileSystemError("read", path, err)
	}
	return bytes.Equal(existing, content), nil
}
