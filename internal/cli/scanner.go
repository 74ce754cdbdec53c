package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/utils"
)

// DirectoryScanner expands directory arguments into package directories
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// splitPattern resolves a directory argument. Go-style patterns like
// "./..." are recursive.
func splitPattern(arg string) (dir string, recursive bool, err error) {
	base := arg
	if base == "..." {
		base, recursive = ".", true
	} else if strings.HasSuffix(base, "/...") {
		base, recursive = strings.TrimSuffix(base, "/..."), true
		if base == "" {
			base = "."
		}
	}

	dir, err = filepath.Abs(base)
	if err != nil {
		return "", false, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", base), err)
	}
	return dir, recursive, nil
}

// ScanDirectories returns the directories holding hand-written Go files, in
// argument order and without duplicates
func (s *DirectoryScanner) ScanDirectories(args []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, arg := range args {
		dir, recursive, err := splitPattern(arg)
		if err != nil {
			return nil, err
		}

		if recursive {
			found, err := s.fileProcessor.ScanDirectoriesWithGoFiles([]string{dir})
			if err != nil {
				return nil, err
			}
			for _, d := range found {
				add(d)
			}
			continue
		}

		ok, err := s.fileProcessor.HasGoFiles(dir)
		if err != nil {
			return nil, errors.WrapFileSystemError("read", dir, err)
		}
		if ok {
			add(dir)
		}
	}

	return dirs, nil
}
