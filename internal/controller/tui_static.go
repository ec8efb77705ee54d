package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/sjv/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Underline(true)
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(6).Align(lipgloss.Right)
)

// renderSources lays out source summaries as aligned columns.
func renderSources(summaries []m.SourceSummary, width int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%6s %6s %6s %6s  %s", "LINES", "METH", "COND", "DEPTH", "PATH")))
	b.WriteString("\n")

	pathWidth := width - 30
	total := 0

	for _, s := range summaries {
		path := pathStyle.Render(truncatePath(string(s.Source.Path), pathWidth))

		if s.Err != nil {
			b.WriteString(fmt.Sprintf("%s %s\n", statusStyles[m.StatusInvalid].Width(27).Render("error"), path))
			b.WriteString(labelStyle.Render("       "+s.Err.Error()) + "\n")

			continue
		}

		total += s.Lines

		b.WriteString(fmt.Sprintf("%s %s %s %s  %s\n",
			countStyle.Render(fmt.Sprint(s.Lines)),
			countStyle.Render(fmt.Sprint(s.Methods)),
			countStyle.Render(fmt.Sprint(s.Conditions)),
			countStyle.Render(fmt.Sprint(s.Depth)),
			path))
	}

	b.WriteString(fmt.Sprintf("\n%s %d files, %d lines\n", labelStyle.Render("Total:"), len(summaries), total))

	return b.String()
}

// renderReports lays out stored verdicts followed by totals.
func renderReports(reports []m.Report, width int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("sjv reports"))
	b.WriteString("\n\n")

	vm := verificationModel{width: width}
	for _, report := range reports {
		vm = vm.handleCompleted(completedVerificationMsg{report: report})
	}

	for _, r := range vm.results {
		b.WriteString(vm.resultLine(r))
		b.WriteString("\n")
	}

	b.WriteString("\n" + totalsLine(m.Summarize(reports)))

	return b.String()
}

func totalsLine(s m.Summary) string {
	return fmt.Sprintf("%s %d  %s  %s  %s\n",
		labelStyle.Render("Total:"), s.Files,
		statusStyles[m.StatusValid].Render(fmt.Sprintf("valid %d", s.Valid)),
		statusStyles[m.StatusInvalid].Render(fmt.Sprintf("invalid %d", s.Invalid)),
		statusStyles[m.StatusIOError].Render(fmt.Sprintf("io %d", s.IOErrors)))
}
