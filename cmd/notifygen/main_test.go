package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qian-o/CodeGenerator/internal/models"
)

const viewSource = `package views

type Window struct{}

type MainViewModel struct {
	PropertyChangedEvent
	mainViewModelCommands

	//notify:observable
	_code string
}

//notify:command
func (m *MainViewModel) Loaded(main Window) {}
`

// execute runs the root command in dir and returns stdout and stderr
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	if wd, err := os.Getwd(); err != nil || wd != dir {
		chdir(t, dir)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"go.mod":      "module example.com/app\n\ngo 1.21\n",
		"views/vm.go": viewSource,
	})
}

func TestHelp(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "notifygen")
	for _, sub := range []string{"generate", "check", "clean", "markers"} {
		assert.Contains(t, out, sub)
	}
	assert.Contains(t, out, "--runtime")
}

func TestGenerateRequiresDirectories(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestGenerateThenCheck(t *testing.T) {
	root := newProject(t)

	_, _, err := execute(t, root, "check", "./...")
	require.Error(t, err, "nothing generated yet")

	out, _, err := execute(t, root, "generate", "./...")
	require.NoError(t, err)
	assert.Contains(t, out, "Generation complete")
	assert.FileExists(t, filepath.Join(root, "views", "autogen_main_view_model_notify.go"))
	assert.FileExists(t, filepath.Join(root, "views", "autogen_main_view_model_commands.go"))

	out, _, err = execute(t, root, "check", "./...")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	// a hand edit is drift
	path := filepath.Join(root, "views", "autogen_main_view_model_notify.go")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(content, []byte("\n// edited\n")...), 0644))

	_, errOut, err := execute(t, root, "check", "./...")
	require.Error(t, err)
	assert.Contains(t, errOut, "modified")
}

func TestGenerateDryRunJSON(t *testing.T) {
	root := newProject(t)

	out, _, err := execute(t, root, "generate", "--dry-run", "--format", "json", "./views")
	require.NoError(t, err)
	assert.Contains(t, out, `"autogen_main_view_model_notify.go"`)
	assert.NoFileExists(t, filepath.Join(root, "views", "autogen_main_view_model_notify.go"))
}

func TestGenerateReportsErrors(t *testing.T) {
	root := writeProject(t, map[string]string{
		"go.mod": "module example.com/app\n\ngo 1.21\n",
		"views/vm.go": `package views

type Form struct {
	//notify:observable
	_title string
}

func (f *Form) SetTitle(v string) {}
`,
	})

	_, errOut, err := execute(t, root, "generate", "./...")
	require.Error(t, err)
	assert.Contains(t, errOut, "SetTitle")
	assert.Contains(t, errOut, "no files were written")
	assert.NoFileExists(t, filepath.Join(root, "views", "autogen_form_notify.go"))
}

func TestGenerateFailsWhileWriting(t *testing.T) {
	root := writeProject(t, map[string]string{
		"go.mod":  "module example.com/app\n\ngo 1.21\n",
		"a/vm.go": strings.Replace(viewSource, "package views", "package a", 1),
		"b/vm.go": strings.Replace(viewSource, "package views", "package b", 1),
	})
	// a directory where b's artifact belongs cannot be replaced
	require.NoError(t, os.MkdirAll(filepath.Join(root, "b", "autogen_main_view_model_notify.go"), 0755))

	out, errOut, err := execute(t, root, "generate", "./a", "./b")
	require.Error(t, err)

	assert.Contains(t, errOut, "Generation stopped after writing 3 file(s)")
	assert.NotContains(t, errOut, "no files were written")
	assert.Contains(t, out, filepath.Join(root, "a", "autogen_main_view_model_notify.go"))
	assert.FileExists(t, filepath.Join(root, "a", "autogen_main_view_model_notify.go"))
}

func TestInvalidRuntimeFlag(t *testing.T) {
	_, _, err := execute(t, newProject(t), "generate", "--runtime", "plugin", "./...")
	require.Error(t, err)
}

func TestMarkers(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "markers", "--alias", "mvvm")
	require.NoError(t, err)
	assert.Contains(t, out, "//notify:observable")
	assert.Contains(t, out, "//notify:command")
	assert.Contains(t, out, "namespaces: notify, mvvm")
}

func TestMarkersShim(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "markers", "--shim", "views")
	require.NoError(t, err)
	assert.Contains(t, out, models.GeneratedHeader)
	assert.Contains(t, out, "package views")
	assert.Contains(t, out, "type PropertyChangedEvent struct")
}
