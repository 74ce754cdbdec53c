package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qian-o/CodeGenerator/internal/models"
)

func TestPropertyName(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		override    string
		hasOverride bool
		want        string
		emit        bool
	}{
		{name: "override", field: "_name", override: "Foo", hasOverride: true, want: "Foo", emit: true},
		{name: "underscore prefix", field: "_name", want: "Name", emit: true},
		{name: "short", field: "_id", want: "Id", emit: true},
		{name: "single rune", field: "_x", want: "X", emit: true},
		{name: "lower without prefix", field: "code", want: "Code", emit: true},
		{name: "only underscore", field: "_", emit: false},
		{name: "already exported", field: "Code", emit: false},
		{name: "strips one underscore", field: "__x", want: "_x", emit: true},
		{name: "override equals field", field: "Title", override: "Title", hasOverride: true, emit: false},
		{name: "unicode", field: "_ñame", want: "Ñame", emit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := PropertyName(tt.field, tt.override, tt.hasOverride)
			require.NoError(t, err)
			assert.Equal(t, tt.emit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPropertyName_InvalidOverride(t *testing.T) {
	for _, override := range []string{"", "42", "user name", "func"} {
		_, ok, err := PropertyName("_name", override, true)
		assert.Error(t, err, override)
		assert.False(t, ok)
	}
}

func TestCommandNames(t *testing.T) {
	field, accessor := CommandNames("ChangedData")
	assert.Equal(t, "changedDataCommand", field)
	assert.Equal(t, "ChangedDataCommand", accessor)

	field, accessor = CommandNames("loaded")
	assert.Equal(t, "loadedCommand", field)
	assert.Equal(t, "LoadedCommand", accessor)
}

func TestMemberNames(t *testing.T) {
	assert.Equal(t, "SetUsername", SetterName("Username"))
	assert.Equal(t, "m", ReceiverName("MainViewModel"))
	assert.Equal(t, "r", ReceiverName(""))
	assert.Equal(t, "mainViewModelCommands", CompanionName("MainViewModel"))
	assert.Equal(t, "itemCommands", CompanionName("item"))
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"MainViewModel": "main_view_model",
		"viewModel":     "view_model",
		"HTTPServer":    "http_server",
		"UserID":        "user_id",
		"Item2Model":    "item2_model",
		"already_snake": "already_snake",
		"X":             "x",
	}

	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), in)
	}
}

func TestArtifactID(t *testing.T) {
	assert.Equal(t, "autogen_main_view_model_notify.go", ArtifactID("MainViewModel", models.PropertyArtifact))
	assert.Equal(t, "autogen_main_view_model_commands.go", ArtifactID("MainViewModel", models.CommandArtifact))
	assert.Equal(t, ShimArtifactID, ArtifactID("MainViewModel", models.ShimArtifact))

	// types differing only in case share an id
	assert.Equal(t, ArtifactID("Foo", models.PropertyArtifact), ArtifactID("foo", models.PropertyArtifact))
}
