package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_TextOutput(t *testing.T) {
	export := writeExport(t, t.TempDir())

	out, err := execute(t, "search", "api", "--catalog", export)
	require.NoError(t, err)

	assert.Contains(t, out, `Found 2 procedure(s) matching "api":`)
	assert.Contains(t, out, "sp_api_modal_input")
	assert.Contains(t, out, "sp_api_toast")
}

func TestSearch_JSONOutput(t *testing.T) {
	export := writeExport(t, t.TempDir())

	out, err := execute(t, "search", "modal", "--catalog", export, "--format", "json")
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "modal", data["pattern"])
	assert.Equal(t, []interface{}{"sp_api_modal_input"}, data["names"])
}

func TestSearch_NoMatches(t *testing.T) {
	export := writeExport(t, t.TempDir())

	out, err := execute(t, "search", "nonexistent", "--catalog", export)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
}

func TestSearch_MissingCatalog(t *testing.T) {
	_, err := execute(t, "search", "modal")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
