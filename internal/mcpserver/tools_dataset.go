package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateDatasetInput struct {
	Codespace string       `json:"codespace"        jsonschema:"Codespace of the dataset producer, e.g. FLB"`
	Dataset   datasetInput `json:"dataset"          jsonschema:"The dataset to validate"`
	Offset    int          `json:"offset,omitempty" jsonschema:"Skip the first N entries (for pagination)"`
	Limit     int          `json:"limit,omitempty"  jsonschema:"Maximum number of entries to return (default 100)"`
}

func handleValidateDataset(_ context.Context, _ *mcp.CallToolRequest, input validateDatasetInput) (*mcp.CallToolResult, reportOutput, error) {
	v, err := sharedValidator()
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}
	ds, err := input.Dataset.resolve()
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}

	rep, err := v.ValidateDataset(input.Codespace, nextReportID("dataset"), ds)
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}
	output := makeReportOutput(rep, input.Offset, input.Limit)
	output.Files = ds.Names()
	return nil, output, nil
}
