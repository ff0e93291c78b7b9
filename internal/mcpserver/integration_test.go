package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/netexval/internal/testutil"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "netexval-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	// Start server in background; it blocks until the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

// TestIntegration_ListTools tests that every tool is registered with a description.
func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, result.Tools, 3)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"validate", "validate_dataset", "rule_catalog"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

// TestIntegration_CallTool_Validate tests a single inline document and an
// ambiguous document input.
func TestIntegration_CallTool_Validate(t *testing.T) {
	session := startTestSession(t)
	stops := testutil.Departures("06:00:00", "06:07:00", "06:05:00")

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "validate",
		Arguments: map[string]any{
			"codespace": testutil.Codespace,
			"document":  map[string]any{"name": testutil.LineFileName, "content": string(testutil.LineFile(stops))},
			"limit":     1,
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, false, structured["valid"])
	assert.Equal(t, float64(1), structured["returned"])
	assert.GreaterOrEqual(t, structured["total_count"], float64(1))

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "validate",
		Arguments: map[string]any{
			"codespace": testutil.Codespace,
			"document":  map[string]any{"file": "/tmp/line.xml", "content": "<PublicationDelivery/>"},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "exactly one of file or content")
}

// TestIntegration_CallTool_ValidateDataset tests a valid shared plus line dataset.
func TestIntegration_CallTool_ValidateDataset(t *testing.T) {
	session := startTestSession(t)
	stops := testutil.Departures("06:00:00", "06:07:00", "06:15:00")

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "validate_dataset",
		Arguments: map[string]any{
			"codespace": testutil.Codespace,
			"dataset": map[string]any{
				"files": []map[string]any{
					{"name": testutil.LineFileName, "content": string(testutil.LineFile(stops))},
					{"name": testutil.SharedFileName, "content": string(testutil.SharedFile(stops))},
				},
				"shared": []string{testutil.SharedFileName},
			},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, true, structured["valid"])
	assert.Equal(t, float64(0), structured["total_count"])
	assert.Equal(t, []any{testutil.SharedFileName, testutil.LineFileName}, structured["files"])
}

// TestIntegration_CallTool_RuleCatalog tests prefix filtering of the catalog.
func TestIntegration_CallTool_RuleCatalog(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "rule_catalog",
		Arguments: map[string]any{"prefix": "NETEX_SCHEMA"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(1), structured["count"])
}

// unmarshalStructured extracts the structured output of a tool result.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	// Prefer structured content if available.
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	// Fall back to parsing text content.
	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
