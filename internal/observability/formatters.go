// Package observability provides Prometheus metrics, OpenTelemetry tracing
// setup and formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillsage/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintQuestions outputs a question batch with numbered options and, when
// given, the recorded answer for each question.
func (p *Printer) PrintQuestions(questions []types.Question, answers map[int]string) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("Q%d. %s\n", q.ID, q.Question))
		for j, opt := range q.Options {
			marker := " "
			if answers[q.ID] == opt {
				marker = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %c) %s\n", marker, 'a'+rune(j), opt))
		}
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ASSESSMENT QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDashboard outputs a human-readable summary of a readiness dashboard.
func (p *Printer) PrintDashboard(d *types.DashboardData) {
	if d == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target role:  %s\n", d.TargetRole))
	sb.WriteString(fmt.Sprintf("Readiness:    %d/100 (%s)\n", d.ReadinessScore, d.ReadinessLabel))
	sb.WriteString(fmt.Sprintf("Skill match:  %d%%\n", d.SkillMatch))
	sb.WriteString(fmt.Sprintf("Time ready:   %s\n", d.TimeToReady))
	if d.WeeklyStudyHours > 0 {
		sb.WriteString(fmt.Sprintf("Study hours:  %d/week\n", d.WeeklyStudyHours))
	}
	sb.WriteString("\n")

	if len(d.Roadmap) > 0 {
		sb.WriteString("Roadmap:\n")
		for _, step := range d.Roadmap {
			sb.WriteString(fmt.Sprintf("  %s %s: %s\n", statusIcon(step.Status), step.Step, step.Description))
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Existing skills", d.ExistingSkills)
	writeList(&sb, "Missing skills", d.MissingSkills)

	if len(d.ProgressionData) > 0 {
		points := make([]string, len(d.ProgressionData))
		for i, pt := range d.ProgressionData {
			points[i] = fmt.Sprintf("%d", pt.Score)
		}
		sb.WriteString(fmt.Sprintf("Progression: %s\n\n", strings.Join(points, " → ")))
	}

	writeList(&sb, "AI suggestions", d.AISuggestions)

	p.printBox("CAREER READINESS DASHBOARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCourses outputs a course list under the given title.
func (p *Printer) PrintCourses(title string, courses []types.Course) {
	if len(courses) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(courses), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := courses[i]
		sb.WriteString(fmt.Sprintf("• %s (%s)\n", c.Title, c.Platform))
		sb.WriteString(fmt.Sprintf("  %s · %s · ★ %.1f\n", c.Difficulty, c.Duration, c.Rating))
	}
	if len(courses) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more courses\n", len(courses)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBranchOptions outputs the candidate skills and interests for a branch.
func (p *Printer) PrintBranchOptions(branch string, opts types.BranchOptions) {
	var sb strings.Builder
	sb.WriteString("Skills:\n")
	for _, s := range opts.Skills {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}
	sb.WriteString("\nInterests:\n")
	for _, s := range opts.Interests {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}

	title := strings.ToUpper(branch)
	if title == "" {
		title = "DEFAULT OPTIONS"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCatalog outputs every selectable branch and academic year.
func (p *Printer) PrintCatalog(c types.CatalogResponse) {
	var sb strings.Builder
	sb.WriteString("Branches:\n")
	for _, b := range c.Branches {
		sb.WriteString(fmt.Sprintf("  • %s\n", b))
	}
	sb.WriteString("\nYears:\n")
	for _, y := range c.Years {
		sb.WriteString(fmt.Sprintf("  • %s\n", y))
	}
	p.printBox("CATALOG", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

func statusIcon(s types.StepStatus) string {
	switch s {
	case types.StepCompleted:
		return "✓"
	case types.StepInProgress:
		return "▶"
	default:
		return "·"
	}
}
