package grammar

import (
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/netexerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsSchema = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://www.netex.org.uk/netex"
           elementFormDefault="qualified">
  <xs:element name="Items">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="Item" type="xs:integer" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func loadItems(t *testing.T, opts ...Option) *XSD {
	t.Helper()
	fsys := fstest.MapFS{"items.xsd": &fstest.MapFile{Data: []byte(itemsSchema)}}
	x, err := Load(fsys, "items.xsd", opts...)
	require.NoError(t, err)
	return x
}

// TestValidateValid tests that a valid document yields no issues.
func TestValidateValid(t *testing.T) {
	x := loadItems(t)
	issues, truncated, err := x.Validate("ok.xml", []byte(`<Items xmlns="http://www.netex.org.uk/netex"><Item>1</Item><Item>2</Item></Items>`))
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.False(t, truncated)
	assert.Equal(t, DefaultMaxErrors, x.MaxErrors())
}

// TestValidateInvalid tests that violations become NETEX_SCHEMA issues.
func TestValidateInvalid(t *testing.T) {
	x := loadItems(t)
	issues, truncated, err := x.Validate("bad.xml", []byte(`<Items xmlns="http://www.netex.org.uk/netex"><Item>one</Item></Items>`))
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	assert.False(t, truncated)
	for _, issue := range issues {
		assert.Equal(t, RuleSchema.Code, issue.Rule.Code)
		assert.Equal(t, "bad.xml", issue.Location.FileName)
		assert.NotEmpty(t, issue.Message())
	}
}

// TestValidateCap tests that the pass stops at the configured cap.
func TestValidateCap(t *testing.T) {
	doc := []byte(`<Items xmlns="http://www.netex.org.uk/netex"><Item>a</Item><Item>b</Item><Item>c</Item><Unknown/></Items>`)

	all, truncated, err := loadItems(t, WithMaxErrors(0)).Validate("bad.xml", doc)
	require.NoError(t, err)
	require.NotEmpty(t, all)
	assert.False(t, truncated)

	capped, truncated, err := loadItems(t, WithMaxErrors(1)).Validate("bad.xml", doc)
	require.NoError(t, err)
	assert.Len(t, capped, 1)
	assert.Equal(t, len(all) > 1, truncated)
	assert.Equal(t, all[0], capped[0], "the cap keeps the first violations in document order")
}

// TestValidateMalformed tests that content which is not XML still yields issues.
func TestValidateMalformed(t *testing.T) {
	issues, _, err := loadItems(t).Validate("broken.xml", []byte(`<Items`))
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	assert.Equal(t, RuleSchema.Code, issues[0].Rule.Code)
}

// TestLoadFailure tests that a missing schema is a fatal configuration error.
func TestLoadFailure(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.xsd"))
	require.Error(t, err)
	assert.True(t, netexerrors.IsFatal(err))
	assert.ErrorIs(t, err, netexerrors.ErrConfig)

	_, err = Load(fstest.MapFS{}, "missing.xsd")
	assert.True(t, netexerrors.IsFatal(err))
}

// TestMalformedIssue tests the conversion of tree parse failures.
func TestMalformedIssue(t *testing.T) {
	_, err := xmltree.Parse("broken.xml", []byte("<a><b></a>"))
	require.Error(t, err)

	issue := MalformedIssue("broken.xml", err)
	assert.Equal(t, RuleSchema.Code, issue.Rule.Code)
	assert.Equal(t, "broken.xml", issue.Location.FileName)
	assert.False(t, issue.Location.HasPosition())
	assert.Contains(t, issue.Message(), "malformed XML")

	issue = MalformedIssue("x.xml", errors.New("boom"))
	assert.Equal(t, "malformed XML: boom", issue.Message())
}
