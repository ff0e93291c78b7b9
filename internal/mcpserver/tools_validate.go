package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/netexval/report"
)

type validateInput struct {
	Codespace string        `json:"codespace"        jsonschema:"Codespace of the dataset producer, e.g. FLB"`
	Document  documentInput `json:"document"         jsonschema:"The NeTEx document to validate"`
	Offset    int           `json:"offset,omitempty" jsonschema:"Skip the first N entries (for pagination)"`
	Limit     int           `json:"limit,omitempty"  jsonschema:"Maximum number of entries to return (default 100)"`
}

type reportEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file"`
	ObjectID string `json:"object_id,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

type reportOutput struct {
	ReportID     string         `json:"report_id"`
	Valid        bool           `json:"valid"`
	TotalCount   int            `json:"total_count"`
	Truncated    bool           `json:"truncated,omitempty"`
	CountsByRule map[string]int `json:"counts_by_rule,omitempty"`
	Returned     int            `json:"returned"`
	Entries      []reportEntry  `json:"entries,omitempty"`
	Files        []string       `json:"files,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, reportOutput, error) {
	v, err := sharedValidator()
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}
	name, content, err := input.Document.resolve()
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}

	reportID := nextReportID("validate")
	defer v.CleanUp(reportID)

	rep, err := v.Validate(input.Codespace, reportID, name, content)
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}
	return nil, makeReportOutput(rep, input.Offset, input.Limit), nil
}

// makeReportOutput converts rep into the tool output, paginating the entries.
func makeReportOutput(rep *report.Report, offset, limit int) reportOutput {
	output := reportOutput{
		ReportID:   rep.ReportID,
		Valid:      rep.Valid(),
		TotalCount: rep.TotalCount(),
		Truncated:  rep.Truncated(),
	}
	if len(rep.CountsByRule) > 0 {
		output.CountsByRule = rep.CountsByRule
	}

	page := paginate(rep.Entries, offset, limit)
	output.Entries = makeSlice[reportEntry](len(page))
	for _, e := range page {
		output.Entries = append(output.Entries, reportEntry{
			Code:     e.Code,
			Name:     e.Name,
			Severity: e.Severity.String(),
			Message:  e.Message,
			File:     e.Location.FileName,
			ObjectID: e.Location.ObjectID,
			Line:     e.Location.Line,
			Column:   e.Location.Column,
		})
	}
	output.Returned = len(output.Entries)
	return output
}
