package sjava

import "unicode/utf8"

// Line is one normalized logical line together with its 1-based position in the
// physical file (0 when unknown).
type Line struct {
	No   int
	Text string
}

// Type is a declared variable type.
type Type int

// Available Type values.
const (
	TypeBoolean Type = iota + 1
	TypeInt
	TypeDouble
	TypeChar
	TypeString
)

var typeNames = map[string]Type{
	"boolean": TypeBoolean,
	"int":     TypeInt,
	"double":  TypeDouble,
	"char":    TypeChar,
	"String":  TypeString,
}

// ParseType maps a type keyword to its Type.
func ParseType(s string) (Type, bool) {
	t, ok := typeNames[s]

	return t, ok
}

func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeInt:
		return "int"
	case TypeDouble:
		return "double"
	case TypeChar:
		return "char"
	case TypeString:
		return "String"
	default:
		return "invalid"
	}
}

// literalGrammar describes the literals a type accepts and the literal a
// parameter of that type starts with.
type literalGrammar struct {
	match      func(string) bool
	defaultLit string
}

// grammars is read-only after package initialization.
var grammars = map[Type]literalGrammar{
	TypeInt:     {match: isIntLiteral, defaultLit: "1"},
	TypeDouble:  {match: isDoubleLiteral, defaultLit: "1"},
	TypeBoolean: {match: isBooleanLiteral, defaultLit: "1"},
	TypeChar:    {match: isCharLiteral, defaultLit: "' '"},
	TypeString:  {match: isStringLiteral, defaultLit: `""`},
}

// Accepts reports whether literal is a valid value of type t.
func (t Type) Accepts(literal string) bool {
	g, ok := grammars[t]
	if !ok {
		return false
	}

	return g.match(literal)
}

// DefaultLiteral is the value a parameter of type t holds before any call.
func (t Type) DefaultLiteral() string {
	return grammars[t].defaultLit
}

// Widens reports whether a value of type src may be stored in a variable of type t.
// boolean takes boolean, int and double; double takes int and double; every other
// pair must match exactly.
func (t Type) Widens(src Type) bool {
	if t == src {
		return true
	}

	switch t {
	case TypeBoolean:
		return src == TypeInt || src == TypeDouble
	case TypeDouble:
		return src == TypeInt
	default:
		return false
	}
}

// numeric reports whether t may appear as a condition operand.
func (t Type) numeric() bool {
	return t == TypeBoolean || t == TypeInt || t == TypeDouble
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func isIntLiteral(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}

	return isDigits(s)
}

func isDoubleLiteral(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}

	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return isDigits(s[:i]) && isDigits(s[i+1:])
		}
	}

	return isDigits(s)
}

func isBooleanLiteral(s string) bool {
	return s == "true" || s == "false" || isDoubleLiteral(s)
}

func isCharLiteral(s string) bool {
	if utf8.RuneCountInString(s) != 3 {
		return false
	}

	return s[0] == '\'' && s[len(s)-1] == '\''
}

func isStringLiteral(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}
