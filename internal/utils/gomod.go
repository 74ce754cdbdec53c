package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// ModuleInfo describes the module that owns a directory
type ModuleInfo struct {
	Path      string // module path
	GoVersion string
	Root      string   // directory holding go.mod
	Requires  []string // required module paths
}

// GoModParser provides utilities for parsing go.mod files
type GoModParser struct{}

// NewGoModParser creates a new go.mod parser
func NewGoModParser() *GoModParser {
	return &GoModParser{}
}

// ParseModule reads the module declaration of a go.mod file
func (p *GoModParser) ParseModule(goModPath string) (*ModuleInfo, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return nil, fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.ParseLax(cleanPath, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod file: %w", err)
	}

	if modFile.Module == nil {
		return nil, fmt.Errorf("no module declaration found in %s", cleanPath)
	}

	root, err := filepath.Abs(filepath.Dir(cleanPath))
	if err != nil {
		return nil, err
	}
	info := &ModuleInfo{
		Path: modFile.Module.Mod.Path,
		Root: root,
	}
	if modFile.Go != nil {
		info.GoVersion = modFile.Go.Version
	}
	for _, req := range modFile.Require {
		info.Requires = append(info.Requires, req.Mod.Path)
	}
	return info, nil
}

// Reaches reports whether code in the module can import path: the path
// belongs to the module itself or to one of its requirements
func (m *ModuleInfo) Reaches(path string) bool {
	if within(path, m.Path) {
		return true
	}
	for _, req := range m.Requires {
		if within(path, req) {
			return true
		}
	}
	return false
}

func within(path, modPath string) bool {
	return path == modPath || strings.HasPrefix(path, modPath+"/")
}

// ParseModuleName extracts the module path from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	info, err := p.ParseModule(goModPath)
	if err != nil {
		return "", err
	}
	return info.Path, nil
}

// FindGoModFile searches for go.mod file starting from the given directory and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if info, err := os.Stat(goModPath); err == nil && !info.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// FindModule returns the module owning dir
func (p *GoModParser) FindModule(dir string) (*ModuleInfo, error) {
	goModPath, err := p.FindGoModFile(dir)
	if err != nil {
		return nil, err
	}
	return p.ParseModule(goModPath)
}

// PackagePath returns the import path of the package in dir, which must lie
// inside the module
func (m *ModuleInfo) PackagePath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(m.Root, absDir)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside module %s", dir, m.Path)
	}

	path := m.Path
	if rel != "." {
		path = m.Path + "/" + rel
	}
	if err := module.CheckImportPath(path); err != nil {
		return "", err
	}
	return path, nil
}

// CheckImportPath validates an import path such as the runtime package path
func CheckImportPath(path string) error {
	return module.CheckImportPath(path)
}
