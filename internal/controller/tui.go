package controller

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "github.com/mouse-blink/sjv/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the interactive program in verify mode. In list mode the
// TUI renders static output and nothing is started.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options)
	if cfg.mode != ModeVerify {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return fmt.Errorf("failed to start UI: already running")
	}

	t.program = tea.NewProgram(newVerificationModel(), tea.WithOutput(t.output), tea.WithInput(os.Stdin))
	t.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)

		_, _ = p.Run()
	}(t.program, t.done)

	return nil
}

// Close asks the program to stop.
func (t *TUI) Close() {
	if p := t.running(); p != nil {
		p.Quit()
	}
}

// Wait blocks until the program exits.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// DisplaySources renders the source list statically.
func (t *TUI) DisplaySources(summaries []m.SourceSummary) error {
	_, err := io.WriteString(t.output, renderSources(summaries, t.width()))

	return err
}

// DisplayConcurrencyInfo shows concurrency settings.
func (t *TUI) DisplayConcurrencyInfo(threads int, count int) {
	t.send(concurrencyMsg{threads: threads, count: count})
}

// DisplayStartingVerification marks source as in progress on workerID.
func (t *TUI) DisplayStartingVerification(source m.Source, workerID int) {
	t.send(startVerificationMsg{worker: workerID, path: string(source.Path)})
}

// DisplayCompletedVerification records the verdict of one source.
func (t *TUI) DisplayCompletedVerification(report m.Report) {
	t.send(completedVerificationMsg{report: report})
}

// DisplaySummary finishes the live view, or renders the reports statically
// when no program is running.
func (t *TUI) DisplaySummary(reports []m.Report) error {
	if p := t.running(); p != nil {
		p.Send(summaryMsg{summary: m.Summarize(reports)})
		t.Wait()

		return t.printDefects(reports)
	}

	if _, err := io.WriteString(t.output, renderReports(reports, t.width())); err != nil {
		return err
	}

	return t.printDefects(reports)
}

func (t *TUI) printDefects(reports []m.Report) error {
	var buf bytes.Buffer

	for _, report := range reports {
		if diag := FormatDefect(report); diag != "" {
			buf.WriteString("\n" + diag)
		}
	}

	_, err := t.output.Write(buf.Bytes())

	return err
}

func (t *TUI) running() *tea.Program {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program
}

func (t *TUI) send(msg tea.Msg) {
	if p := t.running(); p != nil {
		p.Send(msg)
	}
}

func (t *TUI) width() int {
	if f, ok := t.output.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}

	return defaultWidth
}
