package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/sjv/internal/domain/sjava"
	m "github.com/mouse-blink/sjv/internal/model"
)

const validSource = `// counter
int g = 5;
void foo(int a) {
  if (a || true) {
    g = a;
  }
  return;
}
`

const duplicateMethods = `void f() {
  return;
}
void f() {
  return;
}
`

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		opts     sjava.Options
		status   m.Status
		kind     string
		category string
		line     int
		text     string
	}{
		{
			name:    "well formed",
			content: validSource,
			status:  m.StatusValid,
		},
		{
			name:     "type mismatch",
			content:  "// header\n\nint x = 1.5;\n",
			status:   m.StatusInvalid,
			kind:     "AssignmentError",
			category: "variable",
			line:     3,
			text:     "int x = 1.5;",
		},
		{
			name:     "missing terminator",
			content:  "int x = 1\n",
			status:   m.StatusInvalid,
			kind:     "SyntaxError",
			category: "scope",
			line:     1,
			text:     "int x = 1",
		},
		{
			name:     "duplicate method rejected",
			content:  duplicateMethods,
			status:   m.StatusInvalid,
			kind:     "MethodError",
			category: "variable",
		},
		{
			name:    "duplicate method last wins",
			content: duplicateMethods,
			opts:    sjava.Options{MethodShadowing: sjava.ShadowLastWins},
			status:  m.StatusValid,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verdict := NewVerifier(tt.opts).Verify([]byte(tt.content))

			require.Equal(t, tt.status, verdict.Status)

			if tt.status == m.StatusValid {
				assert.Nil(t, verdict.Defect)

				return
			}

			require.NotNil(t, verdict.Defect)
			assert.Equal(t, tt.kind, verdict.Defect.Kind)
			assert.Equal(t, tt.category, verdict.Defect.Category)

			if tt.line > 0 {
				assert.Equal(t, tt.line, verdict.Defect.Line)
				assert.Equal(t, tt.text, verdict.Defect.Text)
			}
		})
	}
}

func TestVerifier_Verify_OversizedLine(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("a", 2<<20) + ";\n"

	verdict := NewVerifier(sjava.Options{}).Verify([]byte(content))

	assert.Equal(t, m.StatusIOError, verdict.Status)
	assert.Contains(t, verdict.Err, "failed to read source")
	assert.Nil(t, verdict.Defect)
}

func TestVerifier_Inspect(t *testing.T) {
	t.Parallel()

	stats, err := NewVerifier(sjava.Options{}).Inspect([]byte(validSource))

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Methods)
	assert.Equal(t, 1, stats.Conditions)
	assert.Equal(t, 2, stats.Depth)
	assert.Positive(t, stats.Lines)
}

func TestVerifier_Inspect_Unbalanced(t *testing.T) {
	t.Parallel()

	_, err := NewVerifier(sjava.Options{}).Inspect([]byte("void f() {\n"))

	require.Error(t, err)
	assert.ErrorIs(t, err, sjava.ErrScope)
}
