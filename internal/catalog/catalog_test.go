package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `ProcedureName,ParameterName,ParameterType,ParameterSize,IsRequired,IsOutput,DefaultValue
sp_api_modal_text,@text,nvarchar,MAX,Yes,No,None
sp_api_modal_text,@title,nvarchar,200,No,No,N'Message'
sp_api_modal_input,@question,nvarchar,MAX,Yes,No,None
sp_api_modal_input,@answer,nvarchar,MAX,Yes,Yes,None
sp_api_modal_input,@timeout,int,None,No,No,30
sp_api_toast,@text,nvarchar,MAX,Yes,No,None
`

func loadSample(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(strings.NewReader(sampleExport))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLoad_NormalizesRecords(t *testing.T) {
	c := loadSample(t)

	params, err := c.FindByExactName(context.Background(), "sp_api_modal_text")
	require.NoError(t, err)
	require.Len(t, params, 2)

	text := params[0]
	assert.Equal(t, "sp_api_modal_text", text.Procedure)
	assert.Equal(t, "text", text.Name, "leading '@' stripped at the boundary")
	assert.Equal(t, "nvarchar", text.Type)
	assert.Equal(t, "MAX", text.Size)
	assert.True(t, text.Required)
	assert.False(t, text.Output)
	assert.Nil(t, text.Default, `"None" becomes absent, not a string`)

	title := params[1]
	assert.False(t, title.Required)
	require.NotNil(t, title.Default)
	assert.Equal(t, "N'Message'", *title.Default)
}

func TestLoad_SizeNoneBecomesEmpty(t *testing.T) {
	c := loadSample(t)

	params, err := c.FindByExactName(context.Background(), "sp_api_modal_input")
	require.NoError(t, err)
	require.Len(t, params, 3)

	timeout := params[2]
	assert.Equal(t, "int", timeout.Type)
	assert.Empty(t, timeout.Size)
	require.NotNil(t, timeout.Default)
	assert.Equal(t, "30", *timeout.Default)
}

func TestFindByExactName_CaseInsensitive(t *testing.T) {
	c := loadSample(t)

	params, err := c.FindByExactName(context.Background(), "SP_API_MODAL_TEXT")
	require.NoError(t, err)
	assert.Len(t, params, 2)
}

func TestFindByExactName_PreservesExportOrder(t *testing.T) {
	c := loadSample(t)

	params, err := c.FindByExactName(context.Background(), "sp_api_modal_input")
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, "question", params[0].Name)
	assert.Equal(t, "answer", params[1].Name)
	assert.Equal(t, "timeout", params[2].Name)
	assert.True(t, params[1].Output)
}

func TestFindByExactName_NotFoundIsEmpty(t *testing.T) {
	c := loadSample(t)

	params, err := c.FindByExactName(context.Background(), "sp_missing")
	require.NoError(t, err, "not found is a result, not an error")
	require.NotNil(t, params)
	assert.Empty(t, params)
}

func TestFindByNameContains(t *testing.T) {
	c := loadSample(t)

	names, err := c.FindByNameContains(context.Background(), "MODAL")
	require.NoError(t, err)
	assert.Equal(t, []string{"sp_api_modal_input", "sp_api_modal_text"}, names,
		"distinct names, sorted, case-insensitive match")
}

func TestFindByNameContains_NoMatches(t *testing.T) {
	c := loadSample(t)

	names, err := c.FindByNameContains(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.NotNil(t, names)
	assert.Empty(t, names)
}

func TestCount(t *testing.T) {
	c := loadSample(t)

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestLoad_Malformed(t *testing.T) {
	testCases := []struct {
		name   string
		export string
	}{
		{
			name:   "empty export",
			export: "",
		},
		{
			name:   "missing required column",
			export: "ProcedureName,ParameterName\nsp_x,@a\n",
		},
		{
			name: "row without procedure name",
			export: "ProcedureName,ParameterName,ParameterType,ParameterSize,IsRequired,IsOutput,DefaultValue\n" +
				",@a,int,None,Yes,No,None\n",
		},
		{
			name: "row without parameter type",
			export: "ProcedureName,ParameterName,ParameterType,ParameterSize,IsRequired,IsOutput,DefaultValue\n" +
				"sp_x,@a,,None,Yes,No,None\n",
		},
		{
			name: "ragged row",
			export: "ProcedureName,ParameterName,ParameterType,ParameterSize,IsRequired,IsOutput,DefaultValue\n" +
				"sp_x,@a,int\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Load(strings.NewReader(tc.export))
			require.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestOpen_MissingFile(t *testing.T) {
	c, err := Open("testdata/does-not-exist.csv")
	require.Error(t, err)
	assert.Nil(t, c)
}

func TestLoad_OlderExportWithoutDefaultColumn(t *testing.T) {
	export := "ProcedureName,ParameterName,ParameterType,ParameterSize,IsRequired,IsOutput\n" +
		"sp_x,@a,int,None,Yes,No\n"

	c, err := Load(strings.NewReader(export))
	require.NoError(t, err)
	defer c.Close()

	params, err := c.FindByExactName(context.Background(), "sp_x")
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Nil(t, params[0].Default)
}
