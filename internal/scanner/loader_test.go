package scanner

import (
	"context"
	"go/ast"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files["go.mod"] = "module example.com/tmp\n\ngo 1.21\n"
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"vm.go": `package tmp

import "time"

type VM struct {
	PropertyChangedEvent

	//notify:observable
	_at time.Time
}
`,
		"autogen_vm_notify.go": `package tmp

func (v *VM) At() int { return 0 }
`,
		"vm_test.go": `package tmp
`,
	})

	pkg, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "tmp", pkg.Name)
	assert.Equal(t, "example.com/tmp", pkg.Path)
	require.Len(t, pkg.Files, 1)
	assert.Equal(t, filepath.Join(dir, "vm.go"), pkg.Fset.Position(pkg.Files[0].Pos()).Filename)

	// the embedded runtime type is not declared yet
	assert.NotEmpty(t, pkg.TypeErrors)
	require.NotNil(t, pkg.Types)
	assert.NotNil(t, pkg.Types.Scope().Lookup("VM"))
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestParseSource_Errors(t *testing.T) {
	_, err := ParseSource("example.com/app", map[string]string{
		"a.go": "package a\n",
		"b.go": "package b\n",
	})
	assert.ErrorContains(t, err, "multiple packages")

	_, err = ParseSource("example.com/app", map[string]string{"a.go": "package a\nfunc {"})
	assert.Error(t, err)

	_, err = ParseSource("example.com/app", map[string]string{"a_test.go": "package a\n"})
	assert.Error(t, err)
}

func TestWalk_StackAndOrder(t *testing.T) {
	pkg, err := ParseSource("example.com/app", map[string]string{
		"b.go": "package app\n\ntype B struct{ y int }\n",
		"a.go": "package app\n\ntype A struct{ x int }\n",
	})
	require.NoError(t, err)

	var specs []string
	var fieldDepth int
	Walk(pkg.Files, func(nc NodeContext) bool {
		assert.Same(t, nc.Node, nc.Stack[len(nc.Stack)-1])
		assert.NotNil(t, nc.File)

		switch n := nc.Node.(type) {
		case *ast.TypeSpec:
			specs = append(specs, n.Name.Name)
		case *ast.Field:
			fieldDepth = len(nc.Stack)
			assert.IsType(t, &ast.StructType{}, nc.Parent(2))
		}
		return true
	})

	assert.Equal(t, []string{"A", "B"}, specs)
	// File, GenDecl, TypeSpec, StructType, FieldList, Field
	assert.Equal(t, 6, fieldDepth)
}

func TestWalk_SkipsChildren(t *testing.T) {
	pkg, err := ParseSource("example.com/app", map[string]string{
		"a.go": "package app\n\nfunc f() { type hidden struct{} }\n",
	})
	require.NoError(t, err)

	seen := false
	Walk(pkg.Files, func(nc NodeContext) bool {
		if _, ok := nc.Node.(*ast.TypeSpec); ok {
			seen = true
		}
		_, isFunc := nc.Node.(*ast.FuncDecl)
		return !isFunc
	})
	assert.False(t, seen)
}

func TestResolver_Members(t *testing.T) {
	pkg, err := ParseSource("example.com/app", map[string]string{
		"a.go": `package app

type VM struct {
	Name string
	_name string
}

func (v *VM) Reset() {}
func (v VM) String() string { return "" }
`,
	})
	require.NoError(t, err)

	members := NewResolver(pkg).Members("VM")
	assert.Len(t, members, 4)
	for _, name := range []string{"Name", "_name", "Reset", "String"} {
		assert.Contains(t, members, name)
	}
	assert.Equal(t, 4, members["Name"].Line)

	assert.Empty(t, NewResolver(pkg).Members("Missing"))
}
