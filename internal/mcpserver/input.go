package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/netexval/dataset"
	"github.com/erraggy/netexval/internal/options"
)

// documentInput represents the two ways a NeTEx document can be provided to a
// tool. Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a NeTEx XML file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline NeTEx XML content"`
	Name    string `json:"name,omitempty"    jsonschema:"File name used in report locations for inline content (default document.xml)"`
}

// resolve returns the file name and content of the document.
func (d documentInput) resolve() (string, []byte, error) {
	if err := options.ValidateSingleInputSource(
		"one of file or content must be provided",
		"exactly one of file or content must be provided",
		d.File != "", d.Content != "",
	); err != nil {
		return "", nil, err
	}

	if d.File != "" {
		data, err := os.ReadFile(d.File)
		if err != nil {
			return "", nil, fmt.Errorf("reading %s: %w", d.File, err)
		}
		return filepath.Base(d.File), data, nil
	}

	// Enforce inline content size limit.
	if int64(len(d.Content)) > cfg.MaxInlineSize {
		return "", nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set NETEXVAL_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}
	name := d.Name
	if name == "" {
		name = "document.xml"
	}
	return name, []byte(d.Content), nil
}

// datasetInput represents the three ways a dataset can be provided to a tool.
// Exactly one of Dir, Bundle or Files must be set.
type datasetInput struct {
	Dir          string          `json:"dir,omitempty"           jsonschema:"Directory whose .xml files form the dataset"`
	Bundle       string          `json:"bundle,omitempty"        jsonschema:"Path to a txtar bundle; its comment may declare shared files as 'shared: name' lines"`
	Files        []documentInput `json:"files,omitempty"         jsonschema:"Documents forming the dataset"`
	Shared       []string        `json:"shared,omitempty"        jsonschema:"Names of the shared data files"`
	SharedPrefix string          `json:"shared_prefix,omitempty" jsonschema:"Treat files whose name starts with this prefix as shared data"`
}

// resolve assembles the dataset.
func (d datasetInput) resolve() (*dataset.Dataset, error) {
	if err := options.ValidateSingleInputSource(
		"one of dir, bundle or files must be provided",
		"exactly one of dir, bundle or files must be provided",
		d.Dir != "", d.Bundle != "", len(d.Files) > 0,
	); err != nil {
		return nil, err
	}

	opts := []dataset.Option{dataset.WithShared(d.Shared...)}
	if d.SharedPrefix != "" {
		opts = append(opts, dataset.WithSharedPrefix(d.SharedPrefix))
	}

	switch {
	case d.Dir != "":
		return dataset.FromDir(d.Dir, opts...)
	case d.Bundle != "":
		return dataset.FromTxtarFile(d.Bundle, opts...)
	}

	files := make([]dataset.File, 0, len(d.Files))
	for i, doc := range d.Files {
		if doc.Content != "" && doc.Name == "" {
			doc.Name = fmt.Sprintf("document-%d.xml", i+1)
		}
		name, content, err := doc.resolve()
		if err != nil {
			return nil, fmt.Errorf("files[%d]: %w", i, err)
		}
		files = append(files, dataset.File{Name: name, Content: content})
	}
	return dataset.New(files, opts...)
}
