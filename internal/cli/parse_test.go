package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TextOutput(t *testing.T) {
	out, err := execute(t, "parse",
		"https://demo.tsql.app/incoming_invoice?ord=18377d&red=Draft+%2F+Empty&id=142338")
	require.NoError(t, err)

	assert.Contains(t, out, "Card:        incoming_invoice")
	assert.Contains(t, out, "Sort:        18377 DESC")
	assert.Contains(t, out, "Filter:      Draft / Empty")
	assert.Contains(t, out, "Selected ID: 142338")
	assert.NotContains(t, out, "Parent ID")
}

func TestParse_TextOutputChildContext(t *testing.T) {
	out, err := execute(t, "parse", "https://demo.tsql.app/projects/789/tasks")
	require.NoError(t, err)

	assert.Contains(t, out, "Card:        projects")
	assert.Contains(t, out, "Parent ID:   789")
	assert.Contains(t, out, "Child Card:  tasks")
}

func TestParse_JSONOutput(t *testing.T) {
	out, err := execute(t, "parse", "https://host/orders?ord=10,20d&id=7", "--format", "json")
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
	assert.NotEmpty(t, response.TraceID)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "orders", data["card"])
	assert.Equal(t, float64(7), data["selected_id"])

	sortFields, ok := data["sort_fields"].([]interface{})
	require.True(t, ok)
	require.Len(t, sortFields, 2)
}

func TestParse_MalformedURL(t *testing.T) {
	out, err := execute(t, "parse", "https://host/card?id=abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestParse_MalformedURLJSON(t *testing.T) {
	out, err := execute(t, "parse", "https://host/card?id=abc", "--format", "json")
	require.Error(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeDecode, response.Error.Code)
	assert.Contains(t, response.Error.Message, "abc")
}
