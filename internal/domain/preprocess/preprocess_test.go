package preprocess

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/sjv/internal/domain/sjava"
)

func TestNormalize_StripsCommentsAndBlankLines(t *testing.T) {
	t.Parallel()

	// Arrange
	src := `// header comment
int a = 1; // trailing

String s = "http://x";
void foo() {
	return;
}
`

	// Act
	lines, err := Normalize(strings.NewReader(src))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []sjava.Line{
		{No: 2, Text: "int a = 1;"},
		{No: 4, Text: `String s = "http://x";`},
		{No: 5, Text: "void foo() {"},
		{No: 6, Text: "return;"},
		{No: 7, Text: "}"},
	}, lines)
}

func TestNormalize_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		lineNo int
	}{
		{name: "brace not last", src: "void foo() { return;\n}", lineNo: 1},
		{name: "closing brace with code", src: "void foo() {\nreturn; }", lineNo: 2},
		{name: "semicolon in the middle", src: "int a = 1; int b = 2;", lineNo: 1},
		{name: "missing terminator", src: "int a = 1", lineNo: 1},
		{name: "unbalanced parentheses", src: "foo((1);", lineNo: 1},
		{name: "closing parenthesis first", src: "foo)(;", lineNo: 1},
		{name: "unterminated literal", src: `String s = "abc;`, lineNo: 1},
		{name: "stray closing brace", src: "int a;\n}", lineNo: 2},
		{name: "unclosed block", src: "void foo() {\nreturn;", lineNo: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines, err := Normalize(strings.NewReader(tt.src))

			assert.Nil(t, lines)

			serr, ok := sjava.AsError(err)
			require.True(t, ok, "expected *sjava.Error, got %v", err)
			assert.Equal(t, sjava.KindSyntax, serr.Kind)
			assert.Equal(t, tt.lineNo, serr.Line.No)
		})
	}
}

func TestNormalize_LiteralsHideSeparators(t *testing.T) {
	t.Parallel()

	lines, err := Normalize(strings.NewReader(`String s = "a; b { c } // d";` + "\nchar c = '}';"))

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, `String s = "a; b { c } // d";`, lines[0].Text)
	assert.Equal(t, "char c = '}';", lines[1].Text)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestNormalize_ReadError(t *testing.T) {
	t.Parallel()

	_, err := Normalize(failingReader{})

	require.Error(t, err)
	_, isSyntax := sjava.AsError(err)
	assert.False(t, isSyntax)
	assert.Contains(t, err.Error(), "failed to read source")
}

func TestNormalize_Empty(t *testing.T) {
	t.Parallel()

	lines, err := Normalize(strings.NewReader("\n  \n// only a comment\n"))

	require.NoError(t, err)
	assert.Empty(t, lines)
}
