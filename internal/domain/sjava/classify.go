package sjava

import "strings"

// StatementKind is the shape of one logical line.
type StatementKind int

// Available StatementKind values, in dispatch priority order.
const (
	StmtUnknown StatementKind = iota
	StmtDeclaration
	StmtAssignment
	StmtCondition
	StmtCall
	StmtReturn
	StmtMethodHeader
	StmtBlockClose
)

func (k StatementKind) String() string {
	switch k {
	case StmtDeclaration:
		return "declaration"
	case StmtAssignment:
		return "assignment"
	case StmtCondition:
		return "condition"
	case StmtCall:
		return "call"
	case StmtReturn:
		return "return"
	case StmtMethodHeader:
		return "method"
	case StmtBlockClose:
		return "close"
	default:
		return "unknown"
	}
}

// Statement is a classified logical line. Only the fields relevant to Kind are set.
type Statement struct {
	Kind StatementKind

	// Declaration.
	Final       bool
	Type        Type
	Declarators []string

	// Name is the assignment target, the called method or the declared method.
	Name string
	// Expr is the assignment right-hand side or the condition expression.
	Expr string
	// Keyword is "if" or "while" for conditions.
	Keyword string
	// Params is the raw parameter text of a method header.
	Params string
	// Args is the raw argument text of a call.
	Args string
}

// Declarator is one "name" or "name = expr" entry of a declaration.
type Declarator struct {
	Name    string
	Expr    string
	HasExpr bool
}

var reserved = map[string]struct{}{
	"boolean": {}, "int": {}, "double": {}, "char": {}, "String": {},
	"void": {}, "final": {}, "if": {}, "while": {}, "true": {}, "false": {}, "return": {},
}

type shapeMatcher func(text string) (Statement, bool)

// matchers are tried in order; the first match wins.
var matchers = []shapeMatcher{
	matchDeclaration,
	matchAssignment,
	matchCondition,
	matchCall,
	matchReturn,
	matchMethodHeader,
	matchBlockClose,
}

// Classify returns the shape of text, or a Statement of kind StmtUnknown.
func Classify(text string) Statement {
	for _, match := range matchers {
		if stmt, ok := match(text); ok {
			return stmt
		}
	}

	return Statement{Kind: StmtUnknown}
}

// IsConditionHeader reports whether text opens (or, brace stripped, names) an
// if/while block.
func IsConditionHeader(text string) bool {
	_, ok := matchCondition(text)

	return ok
}

func matchDeclaration(text string) (Statement, bool) {
	c := newCursor(text)
	c.skipSpaces()

	final := false

	word := c.word()
	if word == "final" {
		if !c.skipSpaces() {
			return Statement{}, false
		}

		final = true
		word = c.word()
	}

	typ, ok := ParseType(word)
	if !ok || !c.skipSpaces() {
		return Statement{}, false
	}

	body := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(c.rest()), ";"))
	if body == "" || len(splitOutsideLiterals(body, ';')) != 1 {
		return Statement{}, false
	}

	return Statement{
		Kind:        StmtDeclaration,
		Final:       final,
		Type:        typ,
		Declarators: splitTopLevel(body),
	}, true
}

func matchAssignment(text string) (Statement, bool) {
	c := newCursor(text)
	c.skipSpaces()

	name := c.word()
	if !isVarName(name) {
		return Statement{}, false
	}

	c.skipSpaces()

	if !c.consume('=') {
		return Statement{}, false
	}

	rest := strings.TrimSpace(c.rest())
	if !strings.HasSuffix(rest, ";") {
		return Statement{}, false
	}

	expr := strings.TrimSpace(strings.TrimSuffix(rest, ";"))
	if expr == "" || len(splitOutsideLiterals(expr, ';')) != 1 || len(splitTopLevel(expr)) != 1 {
		return Statement{}, false
	}

	return Statement{Kind: StmtAssignment, Name: name, Expr: expr}, true
}

func matchCondition(text string) (Statement, bool) {
	c := newCursor(text)
	c.skipSpaces()

	keyword := c.word()
	if keyword != "if" && keyword != "while" {
		return Statement{}, false
	}

	inner, after, ok := c.parenthesized()
	if !ok || (after != "" && after != "{") {
		return Statement{}, false
	}

	expr := strings.TrimSpace(inner)
	if expr == "" {
		return Statement{}, false
	}

	return Statement{Kind: StmtCondition, Keyword: keyword, Expr: expr}, true
}

func matchMethodHeader(text string) (Statement, bool) {
	c := newCursor(text)
	c.skipSpaces()

	if c.word() != "void" || !c.skipSpaces() {
		return Statement{}, false
	}

	name := c.word()
	if !isMethodName(name) {
		return Statement{}, false
	}

	params, after, ok := c.parenthesized()
	if !ok || (after != "" && after != "{") {
		return Statement{}, false
	}

	return Statement{Kind: StmtMethodHeader, Name: name, Params: strings.TrimSpace(params)}, true
}

func matchCall(text string) (Statement, bool) {
	c := newCursor(text)
	c.skipSpaces()

	name := c.word()
	if !isMethodName(name) {
		return Statement{}, false
	}

	args, after, ok := c.parenthesized()
	if !ok || after != ";" {
		return Statement{}, false
	}

	return Statement{Kind: StmtCall, Name: name, Args: strings.TrimSpace(args)}, true
}

func matchReturn(text string) (Statement, bool) {
	c := newCursor(text)
	c.skipSpaces()

	if c.word() != "return" {
		return Statement{}, false
	}

	c.skipSpaces()

	if !c.consume(';') || strings.TrimSpace(c.rest()) != "" {
		return Statement{}, false
	}

	return Statement{Kind: StmtReturn}, true
}

func matchBlockClose(text string) (Statement, bool) {
	if strings.TrimSpace(text) != "}" {
		return Statement{}, false
	}

	return Statement{Kind: StmtBlockClose}, true
}

// ParseDeclarator splits one declarator of a declaration.
func ParseDeclarator(text string) (Declarator, bool) {
	c := newCursor(strings.TrimSpace(text))

	name := c.word()
	if !isVarName(name) {
		return Declarator{}, false
	}

	c.skipSpaces()

	if c.eof() {
		return Declarator{Name: name}, true
	}

	if !c.consume('=') {
		return Declarator{}, false
	}

	expr := strings.TrimSpace(c.rest())
	if expr == "" {
		return Declarator{}, false
	}

	return Declarator{Name: name, Expr: expr, HasExpr: true}, true
}

func isVarName(s string) bool {
	if s == "" {
		return false
	}

	if _, ok := reserved[s]; ok {
		return false
	}

	if !isWord(s) {
		return false
	}

	if s[0] == '_' {
		return len(s) > 1
	}

	return isLetter(s[0])
}

func isMethodName(s string) bool {
	if s == "" || !isLetter(s[0]) || !isWord(s) {
		return false
	}

	_, ok := reserved[s]

	return !ok
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isWordByte(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '_'
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}

	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}

// splitTopLevel splits s on commas that are not inside a string or char literal.
// Every part is trimmed; empty parts are kept.
func splitTopLevel(s string) []string {
	return splitOutsideLiterals(s, ',')
}

func splitOutsideLiterals(s string, sep byte) []string {
	var parts []string

	var quote byte

	start := 0

	for i := 0; i < len(s); i++ {
		b := s[i]

		switch {
		case quote != 0:
			if b == quote {
				quote = 0
			}
		case b == '"' || b == '\'':
			quote = b
		case b == sep:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}

	return append(parts, strings.TrimSpace(s[start:]))
}

// splitCondition splits a boolean expression on && and || operators.
func splitCondition(expr string) []string {
	var operands []string

	start := 0

	for i := 0; i+1 < len(expr); i++ {
		pair := expr[i : i+2]
		if pair == "&&" || pair == "||" {
			operands = append(operands, strings.TrimSpace(expr[start:i]))
			start = i + 2
			i++
		}
	}

	return append(operands, strings.TrimSpace(expr[start:]))
}

// cursor scans a single line left to right.
type cursor struct {
	s   string
	pos int
}

func newCursor(s string) *cursor {
	return &cursor{s: s}
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.s)
}

// skipSpaces advances past whitespace and reports whether any was skipped.
func (c *cursor) skipSpaces() bool {
	start := c.pos
	for !c.eof() && isSpace(c.s[c.pos]) {
		c.pos++
	}

	return c.pos > start
}

// word consumes a run of identifier bytes that does not start with a digit.
func (c *cursor) word() string {
	if c.eof() || (!isLetter(c.s[c.pos]) && c.s[c.pos] != '_') {
		return ""
	}

	start := c.pos
	for !c.eof() && isWordByte(c.s[c.pos]) {
		c.pos++
	}

	return c.s[start:c.pos]
}

func (c *cursor) consume(b byte) bool {
	if c.eof() || c.s[c.pos] != b {
		return false
	}

	c.pos++

	return true
}

func (c *cursor) rest() string {
	return c.s[c.pos:]
}

// parenthesized consumes optional spaces, "(", everything up to the last ")" on
// the line and ")". It returns the text between the parentheses and the trimmed
// remainder after the closing parenthesis.
func (c *cursor) parenthesized() (inner, after string, ok bool) {
	c.skipSpaces()

	if !c.consume('(') {
		return "", "", false
	}

	rest := c.rest()

	end := strings.LastIndexByte(rest, ')')
	if end < 0 {
		return "", "", false
	}

	c.pos = len(c.s)

	return rest[:end], strings.TrimSpace(rest[end+1:]), true
}
