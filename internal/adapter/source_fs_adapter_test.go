package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/sjv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.sjava"), "int a;\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.sjava"), "int b;\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.sjava")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "main.sjava")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.sjava")
		writeTestFile(t, child, "int b;\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child), "Walk() did not visit nested file when recursive")
	})
}

func TestLocalSourceFSAdapter_ReadAndHash(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.sjava")
	content := "int a = 1;\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	hash, err := adapter.HashFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256([]byte(content))), hash)

	_, err = adapter.HashFile(m.Path(filepath.Join(root, "missing.sjava")))
	assert.Error(t, err)
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	root := t.TempDir()
	top := filepath.Join(root, "a.sjava")
	other := filepath.Join(root, "notes.txt")
	nestedDir := filepath.Join(root, "pkg")
	nested := filepath.Join(nestedDir, "b.sjava")
	skipped := filepath.Join(nestedDir, "skip_me.sjava")

	writeTestFile(t, top, "int a;\n")
	writeTestFile(t, other, "hello\n")
	mustMkdir(t, nestedDir)
	writeTestFile(t, nested, "int b;\n")
	writeTestFile(t, skipped, "int c;\n")

	adapter := NewLocalSourceFSAdapter()

	t.Run("non recursive directory", func(t *testing.T) {
		sources, err := adapter.Get([]m.Path{m.Path(root)}, SourceFilter{})

		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, m.Path(top), sources[0].Path)
		assert.NotEmpty(t, sources[0].Hash)
	})

	t.Run("recursive with exclude", func(t *testing.T) {
		filter, err := NewSourceFilter(nil, []string{`skip_`})
		require.NoError(t, err)

		sources, err := adapter.Get([]m.Path{m.Path(root + "/...")}, filter)

		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(top), m.Path(nested)}, paths(sources))
	})

	t.Run("file roots are deduplicated", func(t *testing.T) {
		sources, err := adapter.Get([]m.Path{m.Path(top), m.Path(top), m.Path(root)}, SourceFilter{})

		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(top)}, paths(sources))
	})

	t.Run("custom extensions", func(t *testing.T) {
		filter, err := NewSourceFilter([]string{".txt"}, nil)
		require.NoError(t, err)

		sources, err := adapter.Get([]m.Path{m.Path(root)}, filter)

		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(other)}, paths(sources))
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := adapter.Get([]m.Path{m.Path(filepath.Join(root, "nope"))}, SourceFilter{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("no roots", func(t *testing.T) {
		sources, err := adapter.Get(nil, SourceFilter{})

		require.NoError(t, err)
		assert.Empty(t, sources)
	})
}

func TestNewSourceFilter_InvalidPattern(t *testing.T) {
	_, err := NewSourceFilter(nil, []string{"("})

	assert.Error(t, err)
}

func TestParseRootPath(t *testing.T) {
	tests := []struct {
		in        string
		path      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"src/...", "src", true},
		{"src", "src", false},
		{"a.sjava", "a.sjava", false},
	}

	for _, tt := range tests {
		path, recursive := ParseRootPath(tt.in)
		assert.Equal(t, tt.path, path, tt.in)
		assert.Equal(t, tt.recursive, recursive, tt.in)
	}
}

func paths(sources []m.Source) []m.Path {
	out := make([]m.Path, 0, len(sources))
	for _, s := range sources {
		out = append(out, s.Path)
	}

	return out
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
