// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes netexval capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/netexval"
	"github.com/erraggy/netexval/ruleconfig"
	"github.com/erraggy/netexval/validator"
)

const serverInstructions = `netexval MCP server: validates NeTEx transit-schedule documents and datasets.

Configuration: All defaults are configurable via NETEXVAL_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- NETEXVAL_SCHEMA: path to the NeTEx XSD entry point; without it the grammar pass is skipped
- NETEXVAL_MAX_SCHEMA_ERRORS (default: 100): grammar issues kept per file
- NETEXVAL_MAX_ENTRIES_PER_RULE (default: 100): report entries kept per rule
- NETEXVAL_RULE_CONFIG: YAML rule configuration overriding names, messages and severities
- NETEXVAL_ENTRY_LIMIT (default: 100): default page size for returned entries

Datasets: shared data files must be validated before the line files referencing them. Declare them with shared or shared_prefix, or use a txtar bundle whose comment lists "shared: name" lines.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if _, err := sharedValidator(); err != nil {
		return err
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "netexval", Version: netexval.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a single NeTEx document. Runs the XSD grammar pass (when NETEXVAL_SCHEMA is set), the structural rule tree, identifier and reference checks, and the business rules. References into shared data files cannot resolve in single-document mode; use validate_dataset for line files. Use offset/limit to paginate through entries.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_dataset",
		Description: "Validate a NeTEx dataset under one report id: shared data files first, then the line files. Provide exactly one of dir (a directory of .xml files), bundle (a txtar archive path) or files (inline documents). Mark shared files with shared or shared_prefix. Use offset/limit to paginate through entries.",
	}, handleValidateDataset)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rule_catalog",
		Description: "List every rule the validator can raise with its code, name, message template and severity, sorted by code. Filter by code prefix or minimum severity.",
	}, handleRuleCatalog)
}

// sharedValidator builds the Validator used by every tool call from cfg.
var sharedValidator = sync.OnceValues(func() (*validator.Validator, error) {
	return newValidator(cfg)
})

func newValidator(c *serverConfig) (*validator.Validator, error) {
	opts := []validator.Option{
		validator.WithMaxEntriesPerRule(c.MaxEntriesPerRule),
	}
	if c.SchemaFile != "" {
		opts = append(opts,
			validator.WithSchemaFile(c.SchemaFile),
			validator.WithMaxSchemaErrors(c.MaxSchemaErrors),
		)
	}
	if c.RuleConfigFile != "" {
		rc, err := ruleconfig.Load(ruleconfig.File(c.RuleConfigFile))
		if err != nil {
			return nil, err
		}
		opts = append(opts, validator.WithRuleConfig(rc))
	}
	return validator.New(opts...)
}

// reportSeq numbers the report ids of tool calls within a session.
var reportSeq atomic.Int64

func nextReportID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, reportSeq.Add(1))
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.EntryLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.EntryLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
