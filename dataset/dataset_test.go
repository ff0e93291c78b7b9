package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/netexval/netexerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrdered tests that shared files come first and order is otherwise kept.
func TestOrdered(t *testing.T) {
	d, err := New([]File{
		{Name: "b.xml"},
		{Name: "shared2.xml"},
		{Name: "a.xml"},
		{Name: "shared1.xml"},
	}, WithShared("shared2.xml", "shared1.xml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"shared2.xml", "shared1.xml", "b.xml", "a.xml"}, d.Names())
	assert.Equal(t, "b.xml", d.Files[0].Name, "Files keeps insertion order")
}

// TestSharedPrefix tests the opt-in naming heuristic.
func TestSharedPrefix(t *testing.T) {
	files := []File{{Name: "line_1.xml"}, {Name: "_common.xml"}}

	d, err := New(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"line_1.xml", "_common.xml"}, d.Names(), "no heuristic by default")

	d, err = New(files, WithSharedPrefix("_"))
	require.NoError(t, err)
	assert.Equal(t, []string{"_common.xml", "line_1.xml"}, d.Names())
}

// TestUnknownSharedFile tests that the manifest must name existing files.
func TestUnknownSharedFile(t *testing.T) {
	_, err := New([]File{{Name: "a.xml"}}, WithShared("missing.xml"))
	require.Error(t, err)
	assert.True(t, netexerrors.IsFatal(err))
	assert.ErrorIs(t, err, netexerrors.ErrConfig)
}

// TestTxtarRoundTrip tests manifest encoding in txtar bundles.
func TestTxtarRoundTrip(t *testing.T) {
	bundle := []byte(`FLB dataset
shared: common.xml

-- line.xml --
<line/>
-- common.xml --
<common/>
`)
	d, err := FromTxtar(bundle)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"common.xml", "line.xml"}, d.Names())
	assert.Equal(t, "<common/>\n", string(d.Ordered()[0].Content))

	again, err := FromTxtar(d.Txtar())
	require.NoError(t, err)
	assert.Equal(t, d.Files, again.Files)
}

// TestFromDir tests directory loading.
func TestFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.xml"), []byte("<b/>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_a.XML"), []byte("<a/>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xml"), 0o700))

	d, err := FromDir(dir, WithShared("b.xml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b.xml", "_a.XML"}, d.Names())

	_, err = FromDir(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, netexerrors.ErrInput)
	assert.True(t, netexerrors.IsFatal(err))

	_, err = FromTxtarFile(filepath.Join(dir, "missing.txtar"))
	assert.True(t, netexerrors.IsFatal(err))
}
