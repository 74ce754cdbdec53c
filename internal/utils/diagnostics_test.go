package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	d.SetShowTime(false)
	return d, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		level   DiagnosticLevel
		wantOut []string
		wantErr []string
	}{
		{DiagnosticSilent, nil, nil},
		{DiagnosticError, nil, []string{"[ERROR] e"}},
		{DiagnosticWarn, nil, []string{"[ERROR] e", "[WARN] w"}},
		{DiagnosticInfo, []string{"[INFO] i", "[SUCCESS] s"}, []string{"[ERROR] e", "[WARN] w"}},
		{DiagnosticDebug, []string{"[INFO] i", "[VERBOSE] v", "[DEBUG] d"}, []string{"[WARN] w"}},
	}

	for _, tt := range tests {
		d, out, errOut := newTestDiagnostics(tt.level)
		d.Error("e")
		d.Warn("w")
		d.Info("i")
		d.Success("s")
		d.Verbose("v")
		d.Debug("d")

		for _, want := range tt.wantOut {
			assert.Contains(t, out.String(), want, "level %d", tt.level)
		}
		for _, want := range tt.wantErr {
			assert.Contains(t, errOut.String(), want, "level %d", tt.level)
		}
		if tt.wantOut == nil {
			assert.Empty(t, out.String())
		}
		if tt.wantErr == nil {
			assert.Empty(t, errOut.String())
		}
	}
}

func TestDiagnosticSystem_NoColorsOnBuffers(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.Header("generating")
	d.Progress("vm.go")

	assert.Equal(t, "notifygen: generating\n✓ vm.go\n", out.String())
}

func TestDiagnosticSystem_Indent(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.Indent()
	d.List("one")
	d.Indent()
	d.Info("two")
	d.Unindent()
	d.Unindent()
	d.Unindent()
	d.List("three")

	assert.Equal(t, "  - one\n    [INFO] two\n- three\n", out.String())
}

func TestDiagnosticSystem_SummarySorted(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.Summary("Done", map[string]interface{}{"b": 2, "a": 1})

	assert.Equal(t, "\nDone\n   a: 1\n   b: 2\n\n", out.String())
}

func TestShouldUseColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, ShouldUseColors(nil))

	t.Setenv("NO_COLOR", "")
	assert.True(t, ShouldUseColors(nil))

	t.Setenv("FORCE_COLOR", "")
	assert.False(t, ShouldUseColors(nil))
}
