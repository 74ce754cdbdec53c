package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qian-o/CodeGenerator/internal/models"
)

// ImportManager handles import generation and deduplication
type ImportManager struct {
	standardImports map[string]bool
	packageImports  map[string]string // alias -> path
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		standardImports: make(map[string]bool),
		packageImports:  make(map[string]string),
	}
}

// AddImport adds an import by path
func (im *ImportManager) AddImport(importPath string) {
	if importPath != "" {
		im.standardImports[importPath] = true
	}
}

// AddTypeImports adds the imports of rendered types, aliased where needed
func (im *ImportManager) AddTypeImports(imports ...models.Import) {
	for _, imp := range imports {
		if imp.Name != "" {
			im.AddPackageImport(imp.Name, imp.Path)
		} else {
			im.AddImport(imp.Path)
		}
	}
}

// AddPackageImport adds a package import with alias
func (im *ImportManager) AddPackageImport(alias, path string) {
	if alias != "" && path != "" {
		im.packageImports[alias] = path
	}
}

// GenerateImports generates the import section
func (im *ImportManager) GenerateImports() string {
	var imports []string

	var paths []string
	for imp := range im.standardImports {
		paths = append(paths, fmt.Sprintf("%q", imp))
	}
	sort.Strings(paths)
	imports = append(imports, paths...)

	var aliases []string
	for alias := range im.packageImports {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		imports = append(imports, fmt.Sprintf("%s %q", alias, im.packageImports[alias]))
	}

	switch len(imports) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("import %s\n", imports[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, imp := range imports {
		result.WriteString(fmt.Sprintf("\t%s\n", imp))
	}
	result.WriteString(")\n")

	return result.String()
}
