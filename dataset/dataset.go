// Package dataset assembles the files validated together under one report id.
//
// Files supplying shared data must be validated before the files referencing
// them. The shared files are declared explicitly, either through WithShared or
// through the manifest of a txtar bundle. WithSharedPrefix enables the naming
// convention heuristic for datasets that carry no manifest.
package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/erraggy/netexval/netexerrors"
)

// File is one document of a dataset.
type File struct {
	Name    string
	Content []byte
	Shared  bool
}

// Dataset is an ordered collection of files.
type Dataset struct {
	Files []File
}

type config struct {
	shared []string
	prefix string
}

// Option configures dataset assembly.
type Option func(*config)

// WithShared marks the named files as shared data.
func WithShared(names ...string) Option {
	return func(c *config) {
		c.shared = append(c.shared, names...)
	}
}

// WithSharedPrefix marks every file whose base name starts with prefix as
// shared data.
func WithSharedPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// New assembles a dataset from files.
func New(files []File, opts ...Option) (*Dataset, error) {
	d := &Dataset{Files: slices.Clone(files)}
	if err := d.apply(opts); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dataset) apply(opts []Option) error {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, name := range cfg.shared {
		if err := d.MarkShared(name); err != nil {
			return err
		}
	}
	if cfg.prefix != "" {
		for i := range d.Files {
			if strings.HasPrefix(filepath.Base(d.Files[i].Name), cfg.prefix) {
				d.Files[i].Shared = true
			}
		}
	}
	return nil
}

// MarkShared marks the named file as shared data.
func (d *Dataset) MarkShared(name string) error {
	for i := range d.Files {
		if d.Files[i].Name == name {
			d.Files[i].Shared = true
			return nil
		}
	}
	return netexerrors.Fatalf("dataset.MarkShared", netexerrors.ErrConfig, "shared file %q is not part of the dataset", name)
}

// Ordered returns the files with shared files first. The relative order within
// each group is preserved.
func (d *Dataset) Ordered() []File {
	out := slices.Clone(d.Files)
	slices.SortStableFunc(out, func(a, b File) int {
		switch {
		case a.Shared == b.Shared:
			return 0
		case a.Shared:
			return -1
		default:
			return 1
		}
	})
	return out
}

// Names returns the file names in validation order.
func (d *Dataset) Names() []string {
	ordered := d.Ordered()
	names := make([]string, len(ordered))
	for i, f := range ordered {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of files.
func (d *Dataset) Len() int {
	return len(d.Files)
}

// FromDir reads every .xml file of dir, sorted by name.
func FromDir(dir string, opts ...Option) (*Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, netexerrors.Fatalf("dataset.FromDir", netexerrors.ErrInput, "reading %s: %v", dir, err)
	}
	var files []File
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, netexerrors.Fatalf("dataset.FromDir", netexerrors.ErrInput, "reading %s: %v", e.Name(), err)
		}
		files = append(files, File{Name: e.Name(), Content: content})
	}
	return New(files, opts...)
}

// manifestPrefix introduces a shared file declaration in a txtar comment.
const manifestPrefix = "shared:"

// FromTxtar reads a txtar bundle. Lines of the archive comment of the form
// "shared: name" declare shared files.
func FromTxtar(data []byte, opts ...Option) (*Dataset, error) {
	ar := txtar.Parse(data)
	files := make([]File, 0, len(ar.Files))
	for _, f := range ar.Files {
		files = append(files, File{Name: f.Name, Content: f.Data})
	}

	var shared []string
	sc := bufio.NewScanner(bytes.NewReader(ar.Comment))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if name, ok := strings.CutPrefix(line, manifestPrefix); ok {
			shared = append(shared, strings.TrimSpace(name))
		}
	}
	return New(files, append([]Option{WithShared(shared...)}, opts...)...)
}

// FromTxtarFile reads a txtar bundle from path.
func FromTxtarFile(path string, opts ...Option) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, netexerrors.Fatalf("dataset.FromTxtarFile", netexerrors.ErrInput, "reading %s: %v", path, err)
	}
	return FromTxtar(data, opts...)
}

// Txtar encodes the dataset as a txtar bundle whose comment declares the
// shared files.
func (d *Dataset) Txtar() []byte {
	ar := &txtar.Archive{}
	var comment strings.Builder
	for _, f := range d.Files {
		if f.Shared {
			fmt.Fprintf(&comment, "%s %s\n", manifestPrefix, f.Name)
		}
		ar.Files = append(ar.Files, txtar.File{Name: f.Name, Data: f.Content})
	}
	ar.Comment = []byte(comment.String())
	return txtar.Format(ar)
}
