package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suma737/webharness/internal/scenario"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeScenario(t, `
name: login smoke
steps:
  - action: navigate
    url: https://example.com/login
  - action: fill
    selector: "#username"
    value: alice
  - action: click
    selector: "button[type=submit]"
  - action: assert_text
    selector: h1
    expected: Welcome
  - action: check_visible
    selector: nav
`)

	sc, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "login smoke", sc.Name)
	require.Len(t, sc.Steps, 5)
	assert.Equal(t, scenario.ActionNavigate, sc.Steps[0].Action)
	assert.Equal(t, "alice", sc.Steps[1].Value)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "not yaml",
			content: "{steps: [",
			wantErr: "failed to parse",
		},
		{
			name:    "missing name",
			content: "steps:\n  - action: click\n    selector: a\n",
			wantErr: "name is required",
		},
		{
			name:    "no steps",
			content: "name: empty\n",
			wantErr: "no steps",
		},
		{
			name:    "unknown action",
			content: "name: x\nsteps:\n  - action: drag\n    selector: a\n",
			wantErr: `unknown action "drag"`,
		},
		{
			name:    "navigate without url",
			content: "name: x\nsteps:\n  - action: navigate\n",
			wantErr: "navigate requires url",
		},
		{
			name:    "click without selector",
			content: "name: x\nsteps:\n  - action: click\n",
			wantErr: "click requires selector",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Load(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
