package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/instance-scheduler/internal/runner"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderEvaluation produces a lipgloss-styled evaluate result.
func renderEvaluation(ev evaluation) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  Schedule at %s (%s)", ev.LocalTime, ev.Timezone)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "    Weekday:  %s\n", ev.Weekday)
	fmt.Fprintf(&b, "    Start:    %s\n", segmentLabel(ev.Start))
	fmt.Fprintf(&b, "    Stop:     %s\n", segmentLabel(ev.Stop))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Desired state: "))
	b.WriteString(desiredStyle(ev.Desired).Render(ev.Desired))
	b.WriteString("\n")
	return b.String()
}

// plainEvaluation is the uncolored form for pipes and log collectors.
func plainEvaluation(ev evaluation) string {
	return fmt.Sprintf("timezone=%s local_time=%s weekday=%s start=%s stop=%s desired=%s\n",
		ev.Timezone, ev.LocalTime, ev.Weekday, segmentLabel(ev.Start), segmentLabel(ev.Stop), ev.Desired)
}

func segmentLabel(raw string) string {
	if raw == "" {
		return "(empty)"
	}
	return raw
}

func desiredStyle(desired string) lipgloss.Style {
	switch desired {
	case "running":
		return greenStyle
	case "stopped":
		return redStyle
	}
	return dimStyle
}

// renderRunSummary produces a lipgloss-styled run summary.
func renderRunSummary(s runner.Summary) string {
	var b strings.Builder

	title := fmt.Sprintf("  instance-scheduler run: %s", s.Provider)
	if s.DryRun {
		title += " (dry run)"
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "    Instances:  %d (%d scheduled, %d skipped)\n", s.Total, s.Scheduled, s.Skipped)
	b.WriteString("    Started:    ")
	b.WriteString(greenStyle.Render(fmt.Sprint(s.Started)))
	b.WriteString("\n")
	b.WriteString("    Stopped:    ")
	b.WriteString(redStyle.Render(fmt.Sprint(s.Stopped)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    Unchanged:  %d\n", s.Unchanged)

	if s.Invalid > 0 || s.Failed > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Problems"))
		b.WriteString("\n")
		for _, res := range s.Results {
			if res.Err == nil {
				continue
			}
			fmt.Fprintf(&b, "    %s %-20s %s\n", redStyle.Render("✗"), res.ID, dimStyle.Render(fmt.Sprintf("%s: %v", res.Outcome, res.Err)))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Completed in %s", s.Duration.Round(time.Millisecond))))
	b.WriteString("\n")
	return b.String()
}

// plainRunSummary is the uncolored one-line summary.
func plainRunSummary(s runner.Summary) string {
	return fmt.Sprintf("provider=%s dry_run=%t total=%d scheduled=%d skipped=%d started=%d stopped=%d unchanged=%d invalid=%d failed=%d\n",
		s.Provider, s.DryRun, s.Total, s.Scheduled, s.Skipped, s.Started, s.Stopped, s.Unchanged, s.Invalid, s.Failed)
}
