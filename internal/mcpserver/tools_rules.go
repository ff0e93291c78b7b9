package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/netexval/internal/severity"
)

type ruleCatalogInput struct {
	Prefix      string `json:"prefix,omitempty"       jsonschema:"Only list rules whose code starts with this prefix (case-insensitive)"`
	MinSeverity string `json:"min_severity,omitempty" jsonschema:"Only list rules of at least this severity: INFO, WARNING, ERROR or CRITICAL"`
}

type ruleSummary struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type ruleCatalogOutput struct {
	Count int           `json:"count"`
	Rules []ruleSummary `json:"rules,omitempty"`
}

func handleRuleCatalog(_ context.Context, _ *mcp.CallToolRequest, input ruleCatalogInput) (*mcp.CallToolResult, ruleCatalogOutput, error) {
	v, err := sharedValidator()
	if err != nil {
		return errResult(err), ruleCatalogOutput{}, nil
	}

	minSeverity := severity.SeverityInfo
	if input.MinSeverity != "" {
		minSeverity, err = severity.Parse(input.MinSeverity)
		if err != nil {
			return errResult(err), ruleCatalogOutput{}, nil
		}
	}
	prefix := strings.ToUpper(input.Prefix)

	var output ruleCatalogOutput
	for _, r := range v.RuleCatalog() {
		if !strings.HasPrefix(r.Code, prefix) || !r.Severity.AtLeast(minSeverity) {
			continue
		}
		output.Rules = append(output.Rules, ruleSummary{
			Code:     r.Code,
			Name:     r.Name,
			Severity: r.Severity.String(),
			Message:  r.Message,
		})
	}
	output.Count = len(output.Rules)
	return nil, output, nil
}
