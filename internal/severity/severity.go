// Package severity provides severity level constants and utilities
// for issues reported by the grammar, structural and object-graph validators.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

import (
	"fmt"
	"strings"
)

// Severity indicates the severity level of a validation issue.
type Severity int

const (
	// SeverityInfo indicates an informational finding that needs no action.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a best-practice or profile recommendation.
	// The dataset is still accepted.
	SeverityWarning

	// SeverityError indicates a rule violation that makes the dataset invalid.
	SeverityError

	// SeverityCritical indicates a violation that prevents further processing
	// of the dataset by downstream consumers.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Parse converts a case-insensitive severity name into a Severity.
func Parse(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityInfo, fmt.Errorf("severity: unknown level %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToUpper(s.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// AtLeast reports whether s is as severe as, or more severe than, other.
func (s Severity) AtLeast(other Severity) bool {
	return s >= other
}
