package report

import (
	"io"
	"slices"
	"time"

	json "github.com/goccy/go-json"

	"github.com/erraggy/netexval/internal/maputil"
)

// DefaultMaxEntriesPerRule is the number of entries stored per rule name when no
// other limit is configured.
const DefaultMaxEntriesPerRule = 100

// Report aggregates the entries of one validation run. Entries are capped per
// rule name; CountsByRule always holds the exact number of entries added.
type Report struct {
	Codespace    string         `json:"codespace"    yaml:"codespace"`
	ReportID     string         `json:"reportId"     yaml:"reportId"`
	Created      time.Time      `json:"created"      yaml:"created"`
	Entries      []Entry        `json:"entries"      yaml:"entries"`
	CountsByRule map[string]int `json:"countsByRule" yaml:"countsByRule"`

	maxEntriesPerRule int
	stored            map[string]int
}

// Option configures a Report.
type Option func(*Report)

// WithMaxEntriesPerRule sets how many entries are stored for a single rule name.
// A non-positive value means unbounded.
func WithMaxEntriesPerRule(n int) Option {
	return func(r *Report) {
		r.maxEntriesPerRule = n
	}
}

// WithCreated overrides the creation timestamp.
func WithCreated(t time.Time) Option {
	return func(r *Report) {
		r.Created = t
	}
}

// New creates an empty report.
func New(codespace, reportID string, opts ...Option) *Report {
	r := &Report{
		Codespace:         codespace,
		ReportID:          reportID,
		Created:           time.Now().UTC(),
		Entries:           make([]Entry, 0),
		CountsByRule:      make(map[string]int),
		maxEntriesPerRule: DefaultMaxEntriesPerRule,
		stored:            make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add counts entry and stores it unless its rule has reached the entry limit.
// It reports whether the entry was stored.
func (r *Report) Add(entry Entry) bool {
	r.CountsByRule[entry.Name]++
	if r.maxEntriesPerRule > 0 && r.stored[entry.Name] >= r.maxEntriesPerRule {
		return false
	}
	r.stored[entry.Name]++
	r.Entries = append(r.Entries, entry)
	return true
}

// AddAll adds every entry in order.
func (r *Report) AddAll(entries []Entry) {
	for _, e := range entries {
		r.Add(e)
	}
}

// Merge appends the entries of other and adds its counts. Counts stay exact even
// when other dropped entries because of its own limit.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for _, e := range other.Entries {
		if r.maxEntriesPerRule > 0 && r.stored[e.Name] >= r.maxEntriesPerRule {
			continue
		}
		r.stored[e.Name]++
		r.Entries = append(r.Entries, e)
	}
	for name, n := range other.CountsByRule {
		r.CountsByRule[name] += n
	}
}

// Count returns the exact number of entries added for the rule name.
func (r *Report) Count(name string) int {
	return r.CountsByRule[name]
}

// TotalCount returns the exact number of entries added.
func (r *Report) TotalCount() int {
	total := 0
	for _, n := range r.CountsByRule {
		total += n
	}
	return total
}

// Truncated reports whether any entries were dropped by the per-rule limit.
func (r *Report) Truncated() bool {
	return r.TotalCount() > len(r.Entries)
}

// HasAtLeast reports whether a stored entry has severity sev or higher.
func (r *Report) HasAtLeast(sev Severity) bool {
	return slices.ContainsFunc(r.Entries, func(e Entry) bool { return e.Severity.AtLeast(sev) })
}

// Valid reports whether the report holds no error or critical entry.
func (r *Report) Valid() bool {
	return !r.HasAtLeast(SeverityError)
}

// RuleNames returns the names of the counted rules in sorted order.
func (r *Report) RuleNames() []string {
	return maputil.SortedKeys(r.CountsByRule)
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
