package cli

import (
	"sync"

	"github.com/qian-o/CodeGenerator/internal/utils"
	"github.com/qian-o/CodeGenerator/pkg/notify"
)

// ModuleResolver resolves the module owning a package directory. Results
// are cached per go.mod for the lifetime of one command.
type ModuleResolver struct {
	parser *utils.GoModParser

	mu      sync.Mutex
	modules map[string]*utils.ModuleInfo
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		parser:  utils.NewGoModParser(),
		modules: make(map[string]*utils.ModuleInfo),
	}
}

// Resolve returns the module owning dir
func (r *ModuleResolver) Resolve(dir string) (*utils.ModuleInfo, error) {
	goModPath, err := r.parser.FindGoModFile(dir)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok := r.modules[goModPath]; ok {
		return info, nil
	}
	info, err := r.parser.ParseModule(goModPath)
	if err != nil {
		return nil, err
	}
	r.modules[goModPath] = info
	return info, nil
}

// ReachesRuntime reports whether generated code in dir can import the
// runtime package
func (r *ModuleResolver) ReachesRuntime(dir string) (bool, *utils.ModuleInfo, error) {
	info, err := r.Resolve(dir)
	if err != nil {
		return false, nil, err
	}
	return info.Reaches(notify.ImportPath), info, nil
}
