// Package ruleconfig loads layered rule-configuration overrides and applies them
// to issues, turning them into report entries.
//
// Each source yields, per rule code, an optional override of the rule's name,
// message template and severity. Sources are applied in order: a field set by a
// later source replaces the same field from an earlier source, and codes absent
// from every source keep the rule's built-in values.
//
// A YAML source looks like:
//
//	rules:
//	  NETEX_ID_VERSION_ON_REFERENCE:
//	    severity: WARNING
//	  LINE_MISSING_NAME:
//	    name: Line without name
//	    message: "The line has no Name"
package ruleconfig

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"syscall"

	"github.com/erraggy/netexval/internal/severity"
	"github.com/erraggy/netexval/netexerrors"
	"github.com/erraggy/netexval/report"
	"go.yaml.in/yaml/v4"
)

// Override holds the optional replacement values for one rule code.
//
// A Message override must either keep the number of formatting verbs of the
// built-in message or use none at all; any other override is ignored by
// Resolve and the built-in message is kept.
type Override struct {
	Name     *string            `yaml:"name,omitempty"`
	Message  *string            `yaml:"message,omitempty"`
	Severity *severity.Severity `yaml:"severity,omitempty"`
}

// merge returns o with every field set in later replacing the field of o.
func (o Override) merge(later Override) Override {
	if later.Name != nil {
		o.Name = later.Name
	}
	if later.Message != nil {
		o.Message = later.Message
	}
	if later.Severity != nil {
		o.Severity = later.Severity
	}
	return o
}

// Source provides rule overrides keyed by rule code.
type Source interface {
	Overrides() (map[string]Override, error)
}

// MapSource is an in-memory Source.
type MapSource map[string]Override

// Overrides implements Source.
func (m MapSource) Overrides() (map[string]Override, error) {
	return maps.Clone(m), nil
}

// fileFormat is the document layout of a YAML rule-configuration file.
type fileFormat struct {
	Rules map[string]Override `yaml:"rules"`
}

// bytesSource parses YAML content held in memory.
type bytesSource struct {
	name string
	data []byte
}

// Bytes returns a Source reading YAML content. name is used in error messages.
func Bytes(name string, data []byte) Source {
	return bytesSource{name: name, data: data}
}

// Overrides implements Source.
func (b bytesSource) Overrides() (map[string]Override, error) {
	var doc fileFormat
	if err := yaml.Unmarshal(b.data, &doc); err != nil {
		return nil, netexerrors.Fatalf("ruleconfig.Load", netexerrors.ErrConfig, "parsing %s: %v", b.name, err)
	}
	if doc.Rules == nil {
		return map[string]Override{}, nil
	}
	return doc.Rules, nil
}

// fileSource reads a YAML file from disk.
type fileSource struct {
	path string
}

// File returns a Source reading the YAML file at path. Read failures are fatal
// configuration errors unless the operating system reports them as transient.
func File(path string) Source {
	return fileSource{path: path}
}

// Overrides implements Source.
func (f fileSource) Overrides() (map[string]Override, error) {
	data, err := os.ReadFile(f.path) //nolint:gosec // G304: path is operator supplied configuration
	if err != nil {
		if transientReadError(err) {
			return nil, netexerrors.Retryablef("ruleconfig.Load", netexerrors.ErrInput, "reading %s: %v", f.path, err)
		}
		return nil, netexerrors.Fatalf("ruleconfig.Load", netexerrors.ErrConfig, "reading %s: %v", f.path, err)
	}
	return bytesSource{name: f.path, data: data}.Overrides()
}

// transientReadError reports whether a read may succeed when repeated.
func transientReadError(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EIO)
}

// Config is the merged result of all sources.
type Config struct {
	overrides map[string]Override
}

// Load merges sources in order. Later sources win on code collision.
func Load(sources ...Source) (*Config, error) {
	merged := make(map[string]Override)
	for i, src := range sources {
		if src == nil {
			continue
		}
		overrides, err := src.Overrides()
		if err != nil {
			return nil, fmt.Errorf("ruleconfig: source %d: %w", i, err)
		}
		for code, o := range overrides {
			merged[code] = merged[code].merge(o)
		}
	}
	return &Config{overrides: merged}, nil
}

// Empty returns a Config without overrides.
func Empty() *Config {
	return &Config{overrides: map[string]Override{}}
}

// Len returns the number of overridden rule codes.
func (c *Config) Len() int {
	return len(c.overrides)
}

// Resolve returns rule with the configured overrides applied.
func (c *Config) Resolve(rule report.Rule) report.Rule {
	if c == nil {
		return rule
	}
	o, ok := c.overrides[rule.Code]
	if !ok {
		return rule
	}
	if o.Name != nil {
		rule.Name = *o.Name
	}
	if o.Message != nil && compatibleMessage(rule.Message, *o.Message) {
		rule.Message = *o.Message
	}
	if o.Severity != nil {
		rule.Severity = *o.Severity
	}
	return rule
}

// compatibleMessage reports whether override can be rendered with the
// arguments the built-in message is filled with.
func compatibleMessage(builtin, override string) bool {
	n := report.VerbCount(override)
	return n == 0 || n == report.VerbCount(builtin)
}

// Entry converts issue into a report entry, applying the override for its rule.
func (c *Config) Entry(issue report.Issue) report.Entry {
	issue.Rule = c.Resolve(issue.Rule)
	return report.EntryFromIssue(issue)
}

// Entries converts every issue in order.
func (c *Config) Entries(issues []report.Issue) []report.Entry {
	out := make([]report.Entry, 0, len(issues))
	for _, issue := range issues {
		out = append(out, c.Entry(issue))
	}
	return out
}
