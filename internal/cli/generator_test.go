package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/utils"
)

const viewSource = `package views

type Window struct{}

type MainViewModel struct {
	PropertyChangedEvent
	mainViewModelCommands

	//notify:observable
	_code string

	//notify:observable Username
	_name string
}

//notify:command
func (m *MainViewModel) ChangedData() {}

//notify:command
func (m *MainViewModel) Loaded(main Window) {}
`

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"go.mod":         "module example.com/app\n\ngo 1.21\n",
		"main.go":        "package main\n\nfunc main() {}\n",
		"views/vm.go":    viewSource,
		"plain/plain.go": "package plain\n\ntype Plain struct{}\n",
	})
	return root
}

func newTestGenerator(t *testing.T, cfg Config) (*Generator, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticDebug)
	diagnostics.SetOutput(&out, &errOut)

	g, err := NewGenerator(cfg, diagnostics)
	require.NoError(t, err)
	return g, &errOut
}

func projectConfig(root string) Config {
	cfg := DefaultConfig()
	cfg.Directories = []string{filepath.Join(root, "...")}
	cfg.Jobs = 2
	return cfg
}

func generatedNames(t *testing.T, dir string) []string {
	t.Helper()
	files, err := utils.NewFileProcessor().FindGeneratedFiles(dir)
	require.NoError(t, err)
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return names
}

func TestGenerator_Generate(t *testing.T) {
	root := setupProject(t)
	g, _ := newTestGenerator(t, projectConfig(root))

	require.NoError(t, g.Generate(context.Background()))

	views := filepath.Join(root, "views")
	assert.Equal(t, []string{
		"autogen_main_view_model_commands.go",
		"autogen_main_view_model_notify.go",
		"autogen_notify_shim.go",
	}, generatedNames(t, views))
	assert.Empty(t, generatedNames(t, filepath.Join(root, "plain")))
	assert.Empty(t, generatedNames(t, root))

	summary := g.GetSummary()
	assert.Equal(t, 3, summary.PackagesProcessed)
	assert.Equal(t, 1, summary.PackagesGenerated)
	assert.Equal(t, 4, summary.Candidates)
	assert.Len(t, summary.Written, 3)

	content, err := os.ReadFile(filepath.Join(views, "autogen_main_view_model_notify.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), models.GeneratedHeader))
	assert.Contains(t, string(content), "func (m *MainViewModel) SetUsername(value string)")

	// a second run leaves every file alone
	require.NoError(t, g.Generate(context.Background()))
	assert.Empty(t, g.GetSummary().Written)
	assert.Len(t, g.GetSummary().Unchanged, 3)

	drifts, err := g.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestGenerator_RemovesStaleArtifacts(t *testing.T) {
	root := setupProject(t)
	g, _ := newTestGenerator(t, projectConfig(root))
	require.NoError(t, g.Generate(context.Background()))

	views := filepath.Join(root, "views")
	withoutCommands := strings.Split(viewSource, "//notify:command")[0]
	withoutCommands = strings.Replace(withoutCommands, "\tmainViewModelCommands\n", "", 1)
	writeFiles(t, views, map[string]string{
		"vm.go":            withoutCommands,
		"autogen_other.go": "package views\n",
	})

	drifts, err := g.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Drift{{Path: filepath.Join(views, "autogen_main_view_model_commands.go"), Reason: "stale"}}, drifts)

	require.NoError(t, g.Generate(context.Background()))
	assert.Equal(t, []string{filepath.Join(views, "autogen_main_view_model_commands.go")}, g.GetSummary().Removed)
	assert.Equal(t, []string{"autogen_main_view_model_notify.go", "autogen_notify_shim.go"}, generatedNames(t, views))

	// files without the generated header are never touched
	_, err = os.Stat(filepath.Join(views, "autogen_other.go"))
	assert.NoError(t, err)
}

func TestGenerator_CheckReportsDrift(t *testing.T) {
	root := setupProject(t)
	g, _ := newTestGenerator(t, projectConfig(root))
	require.NoError(t, g.Generate(context.Background()))

	views := filepath.Join(root, "views")
	require.NoError(t, os.Remove(filepath.Join(views, "autogen_notify_shim.go")))
	notifyPath := filepath.Join(views, "autogen_main_view_model_notify.go")
	require.NoError(t, os.WriteFile(notifyPath, []byte(models.GeneratedHeader+"\n\npackage views\n"), 0644))

	drifts, err := g.Check(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []Drift{
		{Path: notifyPath, Reason: "modified"},
		{Path: filepath.Join(views, "autogen_notify_shim.go"), Reason: "missing"},
	}, drifts)
}

func TestGenerator_FailingPackageWritesNothing(t *testing.T) {
	root := setupProject(t)
	writeFiles(t, root, map[string]string{
		"broken/broken.go": `package broken

type VM struct {
	vMCommands
}

//notify:command
func (v *VM) Move(x, y int) {}
`,
	})

	g, _ := newTestGenerator(t, projectConfig(root))
	err := g.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one parameter")

	assert.Empty(t, generatedNames(t, filepath.Join(root, "views")))
	assert.Empty(t, generatedNames(t, filepath.Join(root, "broken")))
}

func TestGenerator_DryRun(t *testing.T) {
	root := setupProject(t)

	cfg := projectConfig(root)
	cfg.Format = FormatJSON
	g, _ := newTestGenerator(t, cfg)

	var buf bytes.Buffer
	require.NoError(t, g.DryRun(context.Background(), &buf))

	var sets []models.ArtifactSet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &sets))
	require.Len(t, sets, 1)
	assert.Equal(t, "example.com/app/views", sets[0].PackagePath)
	assert.Len(t, sets[0].Artifacts, 3)
	assert.Empty(t, generatedNames(t, filepath.Join(root, "views")))

	cfg.Format = FormatMsgpack
	g, _ = newTestGenerator(t, cfg)
	buf.Reset()
	require.NoError(t, g.DryRun(context.Background(), &buf))

	var decoded []models.ArtifactSet
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, sets[0].Artifacts, decoded[0].Artifacts)

	cfg.Format = FormatText
	g, _ = newTestGenerator(t, cfg)
	buf.Reset()
	require.NoError(t, g.DryRun(context.Background(), &buf))
	assert.Contains(t, buf.String(), "// ==> "+filepath.Join(root, "views", "autogen_notify_shim.go"))
}

func TestGenerator_ImportModeWarnsAboutMissingRequirement(t *testing.T) {
	root := setupProject(t)

	cfg := projectConfig(root)
	cfg.Runtime = models.RuntimeImport
	g, errOut := newTestGenerator(t, cfg)

	_, err := g.Plan(context.Background())
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "module example.com/app does not require github.com/qian-o/CodeGenerator/pkg/notify")
	assert.Equal(t, 1, g.Reporter().Warnings())
}

func TestGenerator_Cancelled(t *testing.T) {
	root := setupProject(t)
	g, _ := newTestGenerator(t, projectConfig(root))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Generate(ctx), context.Canceled)
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	_, err := NewGenerator(Config{}, utils.NewQuietDiagnostics())
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Directories = []string{"."}
	cfg.Aliases = []string{"go"}
	_, err = NewGenerator(cfg, utils.NewQuietDiagnostics())
	assert.Error(t, err)
}

func TestEncodeArtifactSets_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeArtifactSets(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())

	assert.Error(t, EncodeArtifactSets(&buf, "yaml", nil))
}
