package cli

import (
	"os"

	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// FindGeneratedFiles lists the notifygen artifacts below the directory
// arguments. Files without the generated header are never returned.
func (c *Cleaner) FindGeneratedFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, arg := range args {
		dir, recursive, err := splitPattern(arg)
		if err != nil {
			return nil, err
		}

		var found []string
		if recursive {
			candidates, err := c.fileProcessor.WalkFiles(dir, utils.FileWalkOptions{
				FileFilter:      utils.AutogenFileFilter(),
				DirectoryFilter: utils.DefaultDirectoryFilter(),
			})
			if err != nil {
				return nil, errors.WrapFileSystemError("walk", dir, err)
			}
			for _, path := range candidates {
				ok, err := utils.HasGeneratedHeader(path)
				if err != nil {
					return nil, errors.WrapFileSystemError("read", path, err)
				}
				if ok {
					found = append(found, path)
				}
			}
		} else {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				continue
			}
			found, err = c.fileProcessor.FindGeneratedFiles(dir)
			if err != nil {
				return nil, err
			}
		}

		for _, path := range found {
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}

	return files, nil
}

// CleanGeneratedFiles removes the notifygen artifacts below the directory
// arguments and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(args []string) ([]string, error) {
	files, err := c.FindGeneratedFiles(args)
	if err != nil {
		return nil, err
	}

	return c.fileProcessor.CleanFiles(files)
}
