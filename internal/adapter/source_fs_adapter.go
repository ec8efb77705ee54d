// Package adapter contains the infrastructure adapters of sjv: source discovery,
// report persistence and configuration loading.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "github.com/mouse-blink/sjv/internal/model"
)

// DefaultExtensions lists the file extensions treated as s-Java sources.
var DefaultExtensions = []string{".sjava"}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects, so workflow logic can be tested
// without touching the disk.
type SourceFSAdapter interface {
	// Get collects sources under roots. A root ending in "/..." is scanned
	// recursively; a file root is taken as is if it passes the filter.
	Get(roots []m.Path, filter SourceFilter) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// SourceFilter selects which files are sources.
type SourceFilter struct {
	Extensions []string
	Exclude    []*regexp.Regexp
}

// NewSourceFilter compiles exclude patterns. Empty extensions fall back to
// DefaultExtensions.
func NewSourceFilter(extensions []string, exclude []string) (SourceFilter, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	filter := SourceFilter{Extensions: extensions}

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return SourceFilter{}, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		filter.Exclude = append(filter.Exclude, re)
	}

	return filter, nil
}

// Match reports whether path has a source extension and no exclude pattern
// matches it.
func (f SourceFilter) Match(path string) bool {
	extensions := f.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	ext := filepath.Ext(path)

	matched := false

	for _, e := range extensions {
		if ext == e {
			matched = true

			break
		}
	}

	if !matched {
		return false
	}

	for _, re := range f.Exclude {
		if re.MatchString(path) {
			return false
		}
	}

	return true
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects s-Java sources for the provided roots, sorted by path.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, filter SourceFilter) ([]m.Source, error) {
	if len(roots) == 0 {
		return []m.Source{}, nil
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	add := func(path string) {
		if !filter.Match(path) {
			return
		}

		if _, exists := seen[path]; exists {
			return
		}

		// An unreadable file is still a source; verification reports the I/O error.
		hash, _ := a.HashFile(m.Path(path))

		seen[path] = struct{}{}
		sources = append(sources, m.Source{Path: m.Path(path), Hash: hash})
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(rootPath)

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", rootPath, err)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	return sources, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ParseRootPath splits the "/..." recursion suffix off a root.
func ParseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := ParseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}
