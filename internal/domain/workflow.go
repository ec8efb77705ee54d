// Package domain wires source discovery, verification, report persistence and
// the UI into the sjv workflows.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/sjv/internal/adapter"
	"github.com/mouse-blink/sjv/internal/controller"
	m "github.com/mouse-blink/sjv/internal/model"
)

// Sentinels returned by Verify when at least one source did not pass.
var (
	ErrIllFormed = errors.New("ill-formed source")
	ErrIO        = errors.New("unreadable source")
)

// SourceArgs selects the sources a workflow operates on.
type SourceArgs struct {
	Paths      []m.Path
	Extensions []string
	Exclude    []string
}

// VerifyArgs configures Verify.
type VerifyArgs struct {
	SourceArgs
	Reports m.Path
	Threads int
	// Changed limits verification to sources whose hash differs from the
	// stored report.
	Changed         bool
	ShardIndex      int
	TotalShardCount int
}

// ListArgs configures List.
type ListArgs struct {
	SourceArgs
}

// ViewArgs configures View.
type ViewArgs struct {
	Reports m.Path
}

// WatchArgs configures Watch.
type WatchArgs struct {
	VerifyArgs
	// Debounce is how long to wait after the last event on a file before
	// verifying it again.
	Debounce time.Duration
}

// Workflow defines the sjv operations exposed to the command line.
type Workflow interface {
	Verify(args VerifyArgs) error
	List(args ListArgs) error
	View(args ViewArgs) error
	Watch(ctx context.Context, args WatchArgs) error
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	verifier    Verifier
	logger      *zap.Logger
	now         func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	verifier Verifier,
	logger *zap.Logger,
) Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &workflow{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		ui:          ui,
		verifier:    verifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Verify checks every selected source and persists one report per source.
func (w *workflow) Verify(args VerifyArgs) error {
	sources, err := w.sources(args.SourceArgs)
	if err != nil {
		return err
	}

	sources = shardSources(sources, args.ShardIndex, args.TotalShardCount)

	var unchanged []m.Source

	if args.Changed {
		selected := sources

		sources, err = w.reportStore.CheckUpdates(args.Reports, selected)
		if err != nil {
			return fmt.Errorf("failed to check for changed sources: %w", err)
		}

		unchanged = subtractSources(selected, sources)

		w.logger.Info("skipping unchanged sources", zap.Int("unchanged", len(unchanged)))
	}

	if err := w.ui.Start(controller.WithVerifyMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}

	reports, err := w.verifyAll(context.Background(), sources, args.Threads)
	if err != nil {
		w.ui.Close()
		w.ui.Wait()

		return err
	}

	displayErr := w.ui.DisplaySummary(reports)

	w.ui.Close()
	w.ui.Wait()

	if displayErr != nil {
		return fmt.Errorf("failed to display summary: %w", displayErr)
	}

	if err := w.saveReports(args.Reports, reports); err != nil {
		return err
	}

	stored, err := w.storedReports(args.Reports, unchanged)
	if err != nil {
		return err
	}

	return outcome(append(reports, stored...))
}

// List displays the shape of every selected source without checking it.
func (w *workflow) List(args ListArgs) error {
	sources, err := w.sources(args.SourceArgs)
	if err != nil {
		return err
	}

	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}

	defer func() {
		w.ui.Close()
		w.ui.Wait()
	}()

	summaries := make([]m.SourceSummary, 0, len(sources))

	for _, source := range sources {
		summary := m.SourceSummary{Source: source}

		content, err := w.fsAdapter.ReadFile(source.Path)
		if err != nil {
			summary.Err = err
		} else if stats, err := w.verifier.Inspect(content); err != nil {
			summary.Err = err
		} else {
			summary.Lines = stats.Lines
			summary.Methods = stats.Methods
			summary.Conditions = stats.Conditions
			summary.Depth = stats.Depth
		}

		summaries = append(summaries, summary)
	}

	if err := w.ui.DisplaySources(summaries); err != nil {
		return fmt.Errorf("failed to display sources: %w", err)
	}

	return nil
}

// View displays the reports stored by a previous Verify.
func (w *workflow) View(args ViewArgs) error {
	reports, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}

	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}

	defer func() {
		w.ui.Close()
		w.ui.Wait()
	}()

	if err := w.ui.DisplaySummary(reports); err != nil {
		return fmt.Errorf("failed to display summary: %w", err)
	}

	return nil
}

func (w *workflow) sources(args SourceArgs) ([]m.Source, error) {
	filter, err := adapter.NewSourceFilter(args.Extensions, args.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}

	sources, err := w.fsAdapter.Get(args.Paths, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}

	w.logger.Debug("discovered sources", zap.Int("count", len(sources)), zap.Int("roots", len(args.Paths)))

	return sources, nil
}

// verifyAll checks sources on up to threads workers. Reports keep the order of
// sources.
func (w *workflow) verifyAll(ctx context.Context, sources []m.Source, threads int) ([]m.Report, error) {
	if threads <= 0 {
		threads = 1
	}

	w.ui.DisplayConcurrencyInfo(threads, len(sources))

	reports := make([]m.Report, len(sources))

	// Worker IDs are handed out as tokens so the UI can show what each worker
	// is doing.
	workers := make(chan int, threads)
	for id := 1; id <= threads; id++ {
		workers <- id
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			id := <-workers
			defer func() { workers <- id }()

			w.ui.DisplayStartingVerification(source, id)

			reports[i] = w.verifySource(source)

			w.ui.DisplayCompletedVerification(reports[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to verify sources: %w", err)
	}

	return reports, nil
}

func (w *workflow) verifySource(source m.Source) m.Report {
	report := m.Report{Source: source}

	content, err := w.fsAdapter.ReadFile(source.Path)
	if err != nil {
		w.logger.Warn("failed to read source", zap.String("path", string(source.Path)), zap.Error(err))

		report.Verdict = m.Verdict{Status: m.StatusIOError, Err: err.Error()}
		report.CheckedAt = w.now()

		return report
	}

	report.Verdict = w.verifier.Verify(content)
	report.CheckedAt = w.now()

	w.logger.Debug("verified source",
		zap.String("path", string(source.Path)),
		zap.String("status", string(report.Verdict.Status)),
		zap.Duration("duration", report.Verdict.Duration))

	return report
}

func (w *workflow) saveReports(dir m.Path, reports []m.Report) error {
	if len(reports) == 0 {
		return nil
	}

	if err := w.reportStore.SaveReports(dir, reports); err != nil {
		return fmt.Errorf("failed to save reports: %w", err)
	}

	w.logger.Debug("saved reports", zap.String("dir", string(dir)), zap.Int("count", len(reports)))

	return nil
}

// storedReports returns the saved reports of sources that were skipped as
// unchanged, so their last verdict still counts toward the outcome.
func (w *workflow) storedReports(dir m.Path, sources []m.Source) ([]m.Report, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	all, err := w.reportStore.LoadReports(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored reports: %w", err)
	}

	wanted := make(map[m.Path]struct{}, len(sources))
	for _, source := range sources {
		wanted[source.Path] = struct{}{}
	}

	stored := make([]m.Report, 0, len(sources))

	for _, report := range all {
		if _, ok := wanted[report.Source.Path]; ok {
			stored = append(stored, report)
		}
	}

	return stored, nil
}

// subtractSources returns the sources of all that are not in remove.
func subtractSources(all, remove []m.Source) []m.Source {
	removed := make(map[m.Path]struct{}, len(remove))
	for _, source := range remove {
		removed[source.Path] = struct{}{}
	}

	out := make([]m.Source, 0, len(all)-len(remove))

	for _, source := range all {
		if _, ok := removed[source.Path]; !ok {
			out = append(out, source)
		}
	}

	return out
}

// outcome maps the worst verdict among reports to ErrIO or ErrIllFormed.
func outcome(reports []m.Report) error {
	s := m.Summarize(reports)

	switch s.Worst() {
	case m.StatusIOError:
		return fmt.Errorf("%w: %d of %d file(s)", ErrIO, s.IOErrors, s.Files)
	case m.StatusInvalid:
		return fmt.Errorf("%w: %d of %d file(s)", ErrIllFormed, s.Invalid, s.Files)
	default:
		return nil
	}
}

// shardSources keeps every total-th source starting at index. Out of range
// shard settings select everything.
func shardSources(sources []m.Source, index, total int) []m.Source {
	if total <= 1 || index < 0 || index >= total {
		return sources
	}

	out := make([]m.Source, 0, len(sources)/total+1)

	for i, source := range sources {
		if i%total == index {
			out = append(out, source)
		}
	}

	return out
}
