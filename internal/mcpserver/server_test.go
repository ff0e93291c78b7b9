package mcpserver

import (
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/netexval/internal/testutil"
	"github.com/erraggy/netexval/netexerrors"
	"github.com/erraggy/netexval/objectgraph"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
	}{
		{name: "default limit returns all when under 100", want: []int{0, 1, 2, 3, 4}},
		{name: "explicit limit", limit: 2, want: []int{0, 1}},
		{name: "offset only", offset: 2, want: []int{2, 3, 4}},
		{name: "offset and limit", offset: 1, limit: 2, want: []int{1, 2}},
		{name: "offset beyond end", offset: 5, limit: 2, want: nil},
		{name: "negative offset", offset: -1, limit: 2, want: nil},
		{name: "limit exceeds remaining", offset: 3, limit: 10, want: []int{3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(items, tt.offset, tt.limit))
		})
	}
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[int](0))
	s := makeSlice[int](3)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	assert.Equal(t,
		"reading <path>: no such file or directory",
		sanitizeError(errors.New("reading /home/ops/export/line.xml: no such file or directory")))
}

func TestErrResult(t *testing.T) {
	res := errResult(errors.New("boom"))
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "boom", res.Content[0].(*mcp.TextContent).Text)
}

func TestNextReportID(t *testing.T) {
	a, b := nextReportID("validate"), nextReportID("validate")
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^validate-\d+$`, a)
}

func TestNewValidator_RuleConfig(t *testing.T) {
	path := testutil.WriteTempYAML(t, map[string]any{
		"rules": map[string]any{
			objectgraph.RuleMissingAssignment.Code: map[string]any{"severity": "CRITICAL"},
		},
	})

	v, err := newValidator(&serverConfig{MaxEntriesPerRule: 10, RuleConfigFile: path})
	require.NoError(t, err)
	for _, r := range v.RuleCatalog() {
		if r.Code == objectgraph.RuleMissingAssignment.Code {
			assert.Equal(t, "critical", r.Severity.String())
		}
	}

	_, err = newValidator(&serverConfig{RuleConfigFile: path + ".missing"})
	assert.ErrorIs(t, err, netexerrors.ErrConfig)

	_, err = newValidator(&serverConfig{SchemaFile: path + ".xsd"})
	assert.True(t, netexerrors.IsFatal(err))
}
