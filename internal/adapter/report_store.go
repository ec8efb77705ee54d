package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/sjv/internal/model"
)

// IndexFileName is the report directory's summary file.
const IndexFileName = "_index.yaml"

// ReportStore persists and retrieves verification reports.
type ReportStore interface {
	// SaveReports writes one file per report and regenerates the index from
	// every report in dir.
	SaveReports(dir m.Path, reports []m.Report) error
	// LoadReports returns all reports in dir sorted by source path.
	LoadReports(dir m.Path) ([]m.Report, error)
	// CheckUpdates returns the sources whose content differs from the stored
	// report, or that have no report yet.
	CheckUpdates(dir m.Path, sources []m.Source) ([]m.Source, error)
}

// LocalReportStore stores reports as YAML files on disk.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

type reportYAML struct {
	Source    sourceYAML  `yaml:"source"`
	Status    string      `yaml:"status"`
	Defect    *defectYAML `yaml:"defect,omitempty"`
	Error     string      `yaml:"error,omitempty"`
	Duration  string      `yaml:"duration"`
	CheckedAt time.Time   `yaml:"checked_at"`
}

type sourceYAML struct {
	Path string `yaml:"path"`
	Hash string `yaml:"hash"`
}

type defectYAML struct {
	Kind     string `yaml:"kind"`
	Category string `yaml:"category"`
	Message  string `yaml:"message"`
	Line     int    `yaml:"line"`
	Text     string `yaml:"text"`
}

type indexYAML struct {
	Files    int              `yaml:"files"`
	Valid    int              `yaml:"valid"`
	Invalid  int              `yaml:"invalid"`
	IOErrors int              `yaml:"io_errors"`
	Entries  []indexEntryYAML `yaml:"entries"`
}

type indexEntryYAML struct {
	Path   string `yaml:"path"`
	Status string `yaml:"status"`
	Report string `yaml:"report"`
}

// SaveReports implements ReportStore.
func (rs *LocalReportStore) SaveReports(dir m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	for _, report := range reports {
		data, err := yaml.Marshal(toReportYAML(report))
		if err != nil {
			return fmt.Errorf("failed to encode report for %s: %w", report.Source.Path, err)
		}

		path := filepath.Join(string(dir), reportFileName(report.Source.Path))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("failed to write report %s: %w", path, err)
		}
	}

	all, err := rs.LoadReports(dir)
	if err != nil {
		return err
	}

	return rs.writeIndex(dir, all)
}

// LoadReports implements ReportStore.
func (rs *LocalReportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	reports := make([]m.Report, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == IndexFileName || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		report, err := readReport(filepath.Join(string(dir), name))
		if err != nil {
			return nil, err
		}

		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Source.Path < reports[j].Source.Path })

	return reports, nil
}

// CheckUpdates implements ReportStore.
func (rs *LocalReportStore) CheckUpdates(dir m.Path, sources []m.Source) ([]m.Source, error) {
	changed := make([]m.Source, 0, len(sources))

	for _, source := range sources {
		report, err := readReport(filepath.Join(string(dir), reportFileName(source.Path)))

		switch {
		case errors.Is(err, fs.ErrNotExist):
			changed = append(changed, source)
		case err != nil:
			return nil, err
		case source.Hash == "" || report.Source.Hash != source.Hash:
			changed = append(changed, source)
		}
	}

	return changed, nil
}

func (rs *LocalReportStore) writeIndex(dir m.Path, reports []m.Report) error {
	summary := m.Summarize(reports)
	index := indexYAML{
		Files:    summary.Files,
		Valid:    summary.Valid,
		Invalid:  summary.Invalid,
		IOErrors: summary.IOErrors,
		Entries:  make([]indexEntryYAML, 0, len(reports)),
	}

	for _, r := range reports {
		index.Entries = append(index.Entries, indexEntryYAML{
			Path:   string(r.Source.Path),
			Status: string(r.Verdict.Status),
			Report: reportFileName(r.Source.Path),
		})
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to encode report index: %w", err)
	}

	path := filepath.Join(string(dir), IndexFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report index: %w", err)
	}

	return nil
}

// reportFileName derives a stable file name from the source path.
func reportFileName(path m.Path) string {
	sum := sha256.Sum256([]byte(path))

	return fmt.Sprintf("%x.yaml", sum[:8])
}

func readReport(path string) (m.Report, error) {
	// #nosec G304 - path is built from the reports directory
	data, err := os.ReadFile(path)
	if err != nil {
		return m.Report{}, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	var decoded reportYAML
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return m.Report{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return fromReportYAML(decoded), nil
}

func toReportYAML(r m.Report) reportYAML {
	out := reportYAML{
		Source:    sourceYAML{Path: string(r.Source.Path), Hash: r.Source.Hash},
		Status:    string(r.Verdict.Status),
		Error:     r.Verdict.Err,
		Duration:  r.Verdict.Duration.String(),
		CheckedAt: r.CheckedAt.UTC(),
	}

	if d := r.Verdict.Defect; d != nil {
		out.Defect = &defectYAML{
			Kind:     d.Kind,
			Category: d.Category,
			Message:  d.Message,
			Line:     d.Line,
			Text:     d.Text,
		}
	}

	return out
}

func fromReportYAML(r reportYAML) m.Report {
	duration, _ := time.ParseDuration(r.Duration)

	out := m.Report{
		Source: m.Source{Path: m.Path(r.Source.Path), Hash: r.Source.Hash},
		Verdict: m.Verdict{
			Status:   m.Status(r.Status),
			Err:      r.Error,
			Duration: duration,
		},
		CheckedAt: r.CheckedAt,
	}

	if d := r.Defect; d != nil {
		out.Verdict.Defect = &m.Defect{
			Kind:     d.Kind,
			Category: d.Category,
			Message:  d.Message,
			Line:     d.Line,
			Text:     d.Text,
		}
	}

	return out
}
