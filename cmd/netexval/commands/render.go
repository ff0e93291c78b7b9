package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/erraggy/netexval/report"
)

// Report styles.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94E2D5"))
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

func severityStyle(sev report.Severity) lipgloss.Style {
	switch sev {
	case report.SeverityError, report.SeverityCritical:
		return errorStyle
	case report.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// renderReport renders rep in the given format.
func renderReport(rep *report.Report, format string) ([]byte, error) {
	if format != FormatText {
		return MarshalStructured(rep, format)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("NeTEx validation report %s (%s)", rep.ReportID, rep.Codespace)))
	b.WriteString("\n\n")

	for _, e := range rep.Entries {
		b.WriteString(severityStyle(e.Severity).Render(e.String()))
		b.WriteByte('\n')
	}

	if names := rep.RuleNames(); len(names) > 0 {
		b.WriteString("\nEntries per rule:\n")
		for _, name := range names {
			fmt.Fprintf(&b, "  %-60s %d\n", name, rep.Count(name))
		}
	}
	if rep.Truncated() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d entries shown; raise --max-entries-per-rule to see more",
			len(rep.Entries), rep.TotalCount())))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if rep.Valid() {
		b.WriteString(okStyle.Render("VALID"))
	} else {
		b.WriteString(errorStyle.Render("INVALID"))
	}
	fmt.Fprintf(&b, " %d entries\n", rep.TotalCount())
	return []byte(b.String()), nil
}

// renderRules renders the rule catalog in the given format.
func renderRules(rules []report.Rule, format string) ([]byte, error) {
	if format != FormatText {
		return MarshalStructured(rules, format)
	}

	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{r.Code, strings.ToUpper(r.Severity.String()), r.Name})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("CODE", "SEVERITY", "NAME").
		Rows(rows...)
	return []byte(t.String() + "\n"), nil
}
