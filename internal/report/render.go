// Package report renders interview results for a terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorHeading = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorOK      = lipgloss.Color("42")
	colorFail    = lipgloss.Color("196")
)

// Questions renders grouped questions, one line per question.
func Questions(title string, groups []schema.StageGroup, noColor bool) string {
	var b strings.Builder
	total := 0
	for _, g := range groups {
		total += len(g.Questions)
	}
	b.WriteString(stylize(fmt.Sprintf("%s (%d)", title, total), noColor, colorHeading, true))
	b.WriteString("\n")

	for _, g := range groups {
		stage := g.Stage
		if stage == "" {
			stage = "other"
		}
		b.WriteString("\n")
		b.WriteString(stylize("["+stage+"]", noColor, colorHeading, false))
		b.WriteString("\n")
		for _, q := range g.Questions {
			b.WriteString("  " + q.ID + "  " + q.Prompt)
			if len(q.Options) > 0 {
				b.WriteString(stylize(" ("+strings.Join(q.Options, " | ")+")", noColor, colorMuted, false))
			}
			b.WriteString("\n")
			if q.Help != "" {
				b.WriteString("      " + stylize(q.Help, noColor, colorMuted, false) + "\n")
			}
		}
	}
	return b.String()
}

// Validation renders a validation report.
func Validation(r flow.Report, noColor bool) string {
	var b strings.Builder
	if r.Valid {
		b.WriteString(stylize("VALID", noColor, colorOK, true))
		b.WriteString("  all required fields answered\n")
		return b.String()
	}
	b.WriteString(stylize("INVALID", noColor, colorFail, true))
	b.WriteString(fmt.Sprintf("  %d missing\n", len(r.MissingFields)))
	for _, e := range r.Errors {
		b.WriteString("  - " + e + "\n")
	}
	return b.String()
}

// Triggers renders one trigger pass.
func Triggers(r flow.TriggerResult, noColor bool) string {
	var b strings.Builder
	if len(r.FiredTriggers) == 0 {
		b.WriteString(stylize("No triggers fired", noColor, colorMuted, false) + "\n")
		return b.String()
	}
	b.WriteString(stylize("Fired: ", noColor, colorHeading, true))
	b.WriteString(strings.Join(r.FiredTriggers, ", ") + "\n")
	for _, q := range r.NewlyTriggered {
		b.WriteString("  + " + q.ID + "  " + q.Prompt + "\n")
	}
	return b.String()
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color, bold bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}
