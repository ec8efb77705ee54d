package controller

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/sjv/internal/model"
)

const (
	defaultWidth = 80
	// recentResults is how many completed files the live view keeps on screen.
	recentResults = 8
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	workerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	statusStyles = map[m.Status]lipgloss.Style{
		m.StatusValid:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		m.StatusInvalid: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		m.StatusIOError: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	}
)

type fileResult struct {
	path   string
	status m.Status
	detail string
}

// verificationModel is the bubbletea model shown while sources are checked.
type verificationModel struct {
	width       int
	progressBar progress.Model
	threads     int
	total       int
	completed   int
	workers     map[int]string
	results     []fileResult
	summary     *m.Summary
	started     time.Time
	elapsed     time.Duration
}

func newVerificationModel() verificationModel {
	return verificationModel{
		width: defaultWidth,
		progressBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		workers: make(map[int]string),
		started: time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (vm verificationModel) Init() tea.Cmd {
	return tick()
}

func (vm verificationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		vm.width = msg.Width

		return vm, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return vm, tea.Quit
		}

		return vm, nil
	case tickMsg:
		if vm.summary != nil {
			return vm, nil
		}

		vm.elapsed = time.Since(vm.started)

		return vm, tick()
	case concurrencyMsg:
		vm.threads = msg.threads
		vm.total = msg.count

		return vm, nil
	case startVerificationMsg:
		vm.workers[msg.worker] = msg.path

		return vm, nil
	case completedVerificationMsg:
		return vm.handleCompleted(msg), nil
	case summaryMsg:
		summary := msg.summary
		vm.summary = &summary
		vm.elapsed = time.Since(vm.started)

		return vm, tea.Quit
	}

	return vm, nil
}

func (vm verificationModel) handleCompleted(msg completedVerificationMsg) verificationModel {
	path := string(msg.report.Source.Path)

	for worker, current := range vm.workers {
		if current == path {
			delete(vm.workers, worker)
		}
	}

	result := fileResult{path: path, status: msg.report.Verdict.Status}

	switch {
	case msg.report.Verdict.Defect != nil:
		d := msg.report.Verdict.Defect
		result.detail = fmt.Sprintf("%s at line %d: %s", d.Kind, d.Line, d.Message)
	case msg.report.Verdict.Err != "":
		result.detail = msg.report.Verdict.Err
	}

	vm.results = append(vm.results, result)
	vm.completed++

	return vm
}

func (vm verificationModel) percent() float64 {
	if vm.total == 0 {
		return 0
	}

	return float64(vm.completed) / float64(vm.total)
}

func (vm verificationModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sjv verify"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %d / %d  %s %d  %s %s\n",
		labelStyle.Render("Files:"), vm.completed, vm.total,
		labelStyle.Render("Workers:"), vm.threads,
		labelStyle.Render("Elapsed:"), vm.elapsed.Round(time.Millisecond)))
	b.WriteString(vm.progressBar.ViewAs(vm.percent()))
	b.WriteString("\n\n")

	if vm.summary == nil {
		if box := vm.workersView(); box != "" {
			b.WriteString(box)
			b.WriteString("\n")
		}
	}

	results := vm.results
	if vm.summary == nil && len(results) > recentResults {
		results = results[len(results)-recentResults:]
	}

	for _, r := range results {
		b.WriteString(vm.resultLine(r))
		b.WriteString("\n")
	}

	if vm.summary != nil {
		b.WriteString("\n" + totalsLine(*vm.summary))
	}

	return b.String()
}

func (vm verificationModel) workersView() string {
	if len(vm.workers) == 0 {
		return ""
	}

	ids := make([]int, 0, len(vm.workers))
	for id := range vm.workers {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		label := workerStyle.Render(fmt.Sprintf("#%d", id))
		lines = append(lines, label+" "+pathStyle.Render(truncatePath(vm.workers[id], vm.width-12)))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (vm verificationModel) resultLine(r fileResult) string {
	style, ok := statusStyles[r.status]
	if !ok {
		style = labelStyle
	}

	line := style.Width(9).Render(strings.ToUpper(string(r.status))) + " " + pathStyle.Render(r.path)
	if r.detail != "" {
		line += "\n          " + labelStyle.Render(truncatePath(r.detail, vm.width-10))
	}

	return line
}

// truncatePath shortens text to width cells, keeping the tail which holds the
// file name.
func truncatePath(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	ellipsis := "…"
	if width == 1 {
		return ellipsis
	}

	runes := []rune(text)
	keep := width - lipgloss.Width(ellipsis)
	if keep > len(runes) {
		keep = len(runes)
	}

	return ellipsis + string(runes[len(runes)-keep:])
}
