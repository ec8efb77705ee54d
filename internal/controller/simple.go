package controller

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/sjv/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait returns immediately, SimpleUI has nothing to wait for.
func (s *SimpleUI) Wait() {}

// DisplaySources prints the shape of every selected source as a table.
func (s *SimpleUI) DisplaySources(summaries []m.SourceSummary) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Lines", "Methods", "Conditions", "Depth"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	lines := 0

	for _, summary := range summaries {
		if summary.Err != nil {
			table.Append([]string{string(summary.Source.Path), "-", "-", "-", summary.Err.Error()})

			continue
		}

		lines += summary.Lines

		table.Append([]string{
			string(summary.Source.Path),
			fmt.Sprintf("%d", summary.Lines),
			fmt.Sprintf("%d", summary.Methods),
			fmt.Sprintf("%d", summary.Conditions),
			fmt.Sprintf("%d", summary.Depth),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(summaries)),
		fmt.Sprintf("%d", lines),
		"", "", "",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(threads int, count int) {
	s.printf("Verifying %d file(s) with %d worker(s)\n", count, threads)
}

// DisplayStartingVerification is silent, only completed files are reported.
func (s *SimpleUI) DisplayStartingVerification(_ m.Source, _ int) {}

// DisplayCompletedVerification prints the verdict of one source and, when it
// is not valid, its diagnostic.
func (s *SimpleUI) DisplayCompletedVerification(report m.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s %s (%s)\n", statusLabel(report.Verdict.Status), report.Source.Path, report.Verdict.Duration)

	if diag := FormatDefect(report); diag != "" {
		s.printf("%s\n", diag)
	}
}

// DisplaySummary prints a table of all verdicts followed by totals.
func (s *SimpleUI) DisplaySummary(reports []m.Report) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Kind", "Line"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, report := range reports {
		kind, line := "", ""

		if d := report.Verdict.Defect; d != nil {
			kind = d.Kind
			if d.Line > 0 {
				line = fmt.Sprintf("%d", d.Line)
			}
		}

		table.Append([]string{string(report.Source.Path), string(report.Verdict.Status), kind, line})
	}

	summary := m.Summarize(reports)
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", summary.Files),
		fmt.Sprintf("valid %d", summary.Valid),
		fmt.Sprintf("invalid %d", summary.Invalid),
		fmt.Sprintf("io %d", summary.IOErrors),
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
