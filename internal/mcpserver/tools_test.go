package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/netexval/dataset"
	"github.com/erraggy/netexval/internal/testutil"
	"github.com/erraggy/netexval/objectgraph"
	"github.com/erraggy/netexval/reference"
)

var fixtureStops = testutil.Departures("05:00:00", "04:58:00", "05:10:00")

func TestValidateTool_Content(t *testing.T) {
	input := validateInput{
		Codespace: testutil.Codespace,
		Document: documentInput{
			Content: string(testutil.SharedFile(fixtureStops)),
			Name:    testutil.SharedFileName,
		},
	}
	res, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.True(t, output.Valid)
	assert.Zero(t, output.TotalCount)
	assert.Empty(t, output.Entries)
	assert.Regexp(t, `^validate-\d+$`, output.ReportID)
}

func TestValidateTool_LineFileAlone(t *testing.T) {
	path := testutil.WriteTempFile(t, testutil.LineFileName, testutil.LineFile(fixtureStops))
	input := validateInput{
		Codespace: testutil.Codespace,
		Document:  documentInput{File: path},
		Limit:     1,
	}
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.Positive(t, output.CountsByRule[reference.RuleUnresolved.Name])
	require.Len(t, output.Entries, 1)
	assert.Equal(t, 1, output.Returned)
	assert.Equal(t, testutil.LineFileName, output.Entries[0].File)
}

func TestValidateTool_BadInput(t *testing.T) {
	tests := []struct {
		name  string
		input documentInput
	}{
		{name: "no source", input: documentInput{}},
		{name: "two sources", input: documentInput{File: "a.xml", Content: "<a/>"}},
		{name: "missing file", input: documentInput{File: "/nonexistent/line.xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{Document: tt.input})
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
		})
	}
}

func TestValidateDatasetTool_Files(t *testing.T) {
	input := validateDatasetInput{
		Codespace: testutil.Codespace,
		Dataset: datasetInput{
			Files: []documentInput{
				{Name: testutil.LineFileName, Content: string(testutil.LineFile(fixtureStops))},
				{Name: testutil.SharedFileName, Content: string(testutil.SharedFile(fixtureStops))},
			},
			SharedPrefix: "_",
		},
	}
	res, output, err := handleValidateDataset(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, []string{testutil.SharedFileName, testutil.LineFileName}, output.Files)
	assert.Equal(t, 1, output.TotalCount)
	require.Len(t, output.Entries, 1)
	assert.Equal(t, objectgraph.RuleNonIncreasingTime.Code, output.Entries[0].Code)
	assert.Equal(t, "FLB:TimetabledPassingTime:2", output.Entries[0].ObjectID)
	assert.Zero(t, output.Entries[0].Line)
}

func TestValidateDatasetTool_Bundle(t *testing.T) {
	stops := testutil.Departures("05:00:00", "05:10:00")
	ds, err := dataset.New([]dataset.File{
		{Name: testutil.LineFileName, Content: testutil.LineFile(stops)},
		{Name: "common.xml", Content: testutil.SharedFile(stops)},
	}, dataset.WithShared("common.xml"))
	require.NoError(t, err)
	path := testutil.WriteTempFile(t, "flb.txtar", ds.Txtar())

	_, output, err := handleValidateDataset(context.Background(), &mcp.CallToolRequest{}, validateDatasetInput{
		Codespace: testutil.Codespace,
		Dataset:   datasetInput{Bundle: path},
	})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Equal(t, []string{"common.xml", testutil.LineFileName}, output.Files)
}

func TestValidateDatasetTool_BadInput(t *testing.T) {
	res, _, err := handleValidateDataset(context.Background(), &mcp.CallToolRequest{}, validateDatasetInput{
		Dataset: datasetInput{Dir: t.TempDir(), Bundle: "x.txtar"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, _, err = handleValidateDataset(context.Background(), &mcp.CallToolRequest{}, validateDatasetInput{
		Dataset: datasetInput{Dir: t.TempDir(), Shared: []string{"missing.xml"}},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRuleCatalogTool(t *testing.T) {
	_, all, err := handleRuleCatalog(context.Background(), &mcp.CallToolRequest{}, ruleCatalogInput{})
	require.NoError(t, err)
	assert.Equal(t, len(all.Rules), all.Count)
	assert.NotZero(t, all.Count)

	_, ids, err := handleRuleCatalog(context.Background(), &mcp.CallToolRequest{}, ruleCatalogInput{Prefix: "netex_id"})
	require.NoError(t, err)
	assert.Less(t, ids.Count, all.Count)
	for _, r := range ids.Rules {
		assert.Contains(t, r.Code, "NETEX_ID")
	}

	_, errs, err := handleRuleCatalog(context.Background(), &mcp.CallToolRequest{}, ruleCatalogInput{MinSeverity: "error"})
	require.NoError(t, err)
	for _, r := range errs.Rules {
		assert.Contains(t, []string{"error", "critical"}, r.Severity)
	}

	res, _, err := handleRuleCatalog(context.Background(), &mcp.CallToolRequest{}, ruleCatalogInput{MinSeverity: "loud"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
