package sjava

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `
int g = 5;
final double PI = 3.14;
String s = "hi", t;
char c = 'x';
boolean b = true;
// comment lines never reach the checker, this one is dropped by the helper
void foo(int a, double d) {
  boolean flag = a;
  if (flag && d || true) {
    while (b) {
      a = 3;
    }
  }
  bar(g);
  return;
}
void bar(int n) {
  foo(n, 2.5);
  return;
}
`

func programLines(src string) []Line {
	var raw []string

	for _, l := range splitOutsideLiterals(src, '\n') {
		if l == "" || strings.HasPrefix(l, "//") {
			continue
		}

		raw = append(raw, l)
	}

	return source(raw...)
}

func TestCheck_WellFormed(t *testing.T) {
	t.Parallel()

	err := Check(programLines(wellFormed), Options{})

	assert.NoError(t, err)
}

func TestCheck_Idempotent(t *testing.T) {
	t.Parallel()

	lines := source("int x;", "void f() {", "int y = x;", "return;", "}")

	first := Check(lines, Options{})
	second := Check(lines, Options{})

	require.Error(t, first)
	assert.Equal(t, first.Error(), second.Error())
}

func TestCheck_Violations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lines  []Line
		kind   Kind
		lineNo int
	}{
		{
			name:   "final assigned twice with the same value",
			lines:  source("final int x = 1;", "x = 1;"),
			kind:   KindAssignment,
			lineNo: 2,
		},
		{
			name:   "final without initializer",
			lines:  source("final int x;"),
			kind:   KindAssignment,
			lineNo: 1,
		},
		{
			name:   "narrowing literal",
			lines:  source("int i = 3.0;"),
			kind:   KindAssignment,
			lineNo: 1,
		},
		{
			name:   "narrowing reference",
			lines:  source("double d = 1.5;", "int i = d;"),
			kind:   KindAssignment,
			lineNo: 2,
		},
		{
			name:   "uninitialized reference",
			lines:  source("int a;", "int b = a;"),
			kind:   KindAssignment,
			lineNo: 2,
		},
		{
			name:   "assignment to unknown name",
			lines:  source("z = 4;"),
			kind:   KindAssignment,
			lineNo: 1,
		},
		{
			name:   "malformed declarator",
			lines:  source("int 5x;"),
			kind:   KindAssignment,
			lineNo: 1,
		},
		{
			name:   "duplicate variable",
			lines:  source("int a;", "char a;"),
			kind:   KindDuplicateName,
			lineNo: 2,
		},
		{
			name:   "comparison in condition",
			lines:  source("void f() {", "int x = 5;", "if (x > 0) {", "}", "return;", "}"),
			kind:   KindCondition,
			lineNo: 3,
		},
		{
			name:   "uninitialized condition operand",
			lines:  source("void f() {", "boolean x;", "while (x) {", "}", "return;", "}"),
			kind:   KindCondition,
			lineNo: 3,
		},
		{
			name:   "string condition operand",
			lines:  source("void f() {", `String x = "a";`, "if (x || true) {", "}", "return;", "}"),
			kind:   KindCondition,
			lineNo: 3,
		},
		{
			name:   "undeclared condition operand",
			lines:  source("void f() {", "if (nope) {", "}", "return;", "}"),
			kind:   KindCondition,
			lineNo: 2,
		},
		{
			name:   "empty condition operand",
			lines:  source("void f() {", "if (true ||) {", "}", "return;", "}"),
			kind:   KindCondition,
			lineNo: 2,
		},
		{
			name:   "unknown method",
			lines:  source("void f() {", "g();", "return;", "}"),
			kind:   KindMethod,
			lineNo: 2,
		},
		{
			name:   "wrong argument count",
			lines:  source("void f(int a) {", "return;", "}", "void g() {", "f(1, 2);", "return;", "}"),
			kind:   KindArity,
			lineNo: 5,
		},
		{
			name: "uninitialized argument",
			lines: source(
				"void foo(int a) {", "return;", "}",
				"void main() {", "int y;", "foo(y);", "return;", "}",
			),
			kind:   KindAssignment,
			lineNo: 6,
		},
		{
			name:   "argument of wrong type",
			lines:  source("void f(char a) {", "return;", "}", "void g() {", "f(1);", "return;", "}"),
			kind:   KindAssignment,
			lineNo: 5,
		},
		{
			name:   "final parameter",
			lines:  source("void f(int a, final int b) {", "return;", "}"),
			kind:   KindAssignment,
			lineNo: 1,
		},
		{
			name:   "parameter with initializer",
			lines:  source("void f(int a = 1) {", "return;", "}"),
			kind:   KindAssignment,
			lineNo: 1,
		},
		{
			name:   "duplicate parameter",
			lines:  source("void f(int a, char a) {", "return;", "}"),
			kind:   KindDuplicateName,
			lineNo: 1,
		},
		{
			name:   "parameter redeclared in body",
			lines:  source("void f(int a) {", "int a;", "return;", "}"),
			kind:   KindDuplicateName,
			lineNo: 2,
		},
		{
			name:   "call in global scope",
			lines:  source("void f() {", "return;", "}", "f();"),
			kind:   KindSyntax,
			lineNo: 4,
		},
		{
			name:   "return in global scope",
			lines:  source("int a;", "return;"),
			kind:   KindReturn,
			lineNo: 2,
		},
		{
			name:   "unknown statement",
			lines:  source("int a = 1;", "a + 1;"),
			kind:   KindSyntax,
			lineNo: 2,
		},
		{
			name:   "error inside nested condition",
			lines:  source("void f() {", "if (true) {", "while (false) {", "q = 1;", "}", "}", "return;", "}"),
			kind:   KindAssignment,
			lineNo: 4,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Check(tt.lines, Options{})

			serr := requireKind(t, err, tt.kind)
			assert.Equal(t, tt.lineNo, serr.Line.No)
		})
	}
}

func TestCheck_Categories(t *testing.T) {
	t.Parallel()

	err := Check(source("int a;", "int a;"), Options{})
	assert.ErrorIs(t, err, ErrVariable)
	assert.NotErrorIs(t, err, ErrScope)

	err = Check(source("return;"), Options{})
	assert.ErrorIs(t, err, ErrScope)
	assert.NotErrorIs(t, err, ErrVariable)
}

func TestCheck_Widening(t *testing.T) {
	t.Parallel()

	lines := source(
		"double d = 3;",
		"int i = 4;",
		"double e = i;",
		"boolean b = e;",
		"boolean f = d;",
		"b = i;",
	)

	assert.NoError(t, Check(lines, Options{}))
}

func TestWalk_ConditionSharesMethodState(t *testing.T) {
	t.Parallel()

	lines := source(
		"void f() {",
		"int x;",
		"boolean t = true;",
		"if (t) {",
		"x = 5;",
		"}",
		"int y = x;",
		"return;",
		"}",
	)

	assert.NoError(t, Check(lines, Options{}))
}

func TestWalk_MethodCopyDoesNotLeak(t *testing.T) {
	t.Parallel()

	// Arrange
	lines := source(
		"int x;",
		"void f() {",
		"x = 5;",
		"return;",
		"}",
		"void g() {",
		"int y = x;",
		"return;",
		"}",
	)
	global, err := Build(lines, Options{})
	require.NoError(t, err)

	// Act
	err = Walk(global)

	// Assert
	serr := requireKind(t, err, KindAssignment)
	assert.Equal(t, 7, serr.Line.No)

	x, ok := global.Lookup("x")
	require.True(t, ok)
	assert.False(t, x.Initialized())

	copied, ok := global.Methods()[0].Lookup("x")
	require.True(t, ok)
	value, _ := copied.Value()
	assert.Equal(t, "5", value)
}

func TestWalk_CallBindsParameters(t *testing.T) {
	t.Parallel()

	lines := source(
		"void callee(int a, String s) {",
		"return;",
		"}",
		"void caller() {",
		"int n = 9;",
		`callee(n, "x");`,
		"return;",
		"}",
	)
	global, err := Build(lines, Options{})
	require.NoError(t, err)

	require.NoError(t, Walk(global))

	callee := global.Methods()[0]
	require.True(t, callee.Bound())
	require.Len(t, callee.Parameters(), 2)

	a, _ := callee.Parameters()[0].Value()
	s, _ := callee.Parameters()[1].Value()
	assert.Equal(t, "9", a)
	assert.Equal(t, `"x"`, s)
}

func TestWalk_ParameterDefaults(t *testing.T) {
	t.Parallel()

	global, err := Build(source("void f(boolean b, char c, String s) {", "return;", "}"), Options{})
	require.NoError(t, err)

	require.NoError(t, Walk(global))

	var got []string
	for _, p := range global.Methods()[0].Parameters() {
		v, ok := p.Value()
		require.True(t, ok)
		got = append(got, v)
	}

	assert.Equal(t, []string{"1", "' '", `""`}, got)
}

func TestWalk_ShadowingResolution(t *testing.T) {
	t.Parallel()

	lines := source(
		"void f(int a) {", "return;", "}",
		"void f() {", "return;", "}",
		"void g() {", "f();", "return;", "}",
	)

	err := Check(lines, Options{MethodShadowing: ShadowLastWins})
	assert.NoError(t, err)

	err = Check(lines, Options{MethodShadowing: ShadowReject})
	requireKind(t, err, KindMethod)
}

func TestWalk_OuterMethodWinsOverNested(t *testing.T) {
	t.Parallel()

	nested := []string{"void f() {", "void g(int a) {", "return;", "}", "g(1);", "return;", "}"}

	assert.NoError(t, Check(source(nested...), Options{}))

	withGlobal := append([]string{"void g() {", "return;", "}"}, nested...)

	err := Check(source(withGlobal...), Options{})
	serr := requireKind(t, err, KindArity)
	assert.Equal(t, 8, serr.Line.No)
}

func TestWalk_SiblingsVisibleRegardlessOfOrder(t *testing.T) {
	t.Parallel()

	lines := source(
		"void first() {", "second(1.5);", "return;", "}",
		"void second(double d) {", "return;", "}",
	)

	assert.NoError(t, Check(lines, Options{}))
}
