package sjava

import (
	"errors"
	"fmt"
)

// Kind identifies the rule a source violates.
type Kind int

// Available Kind values.
const (
	KindSyntax Kind = iota + 1
	KindScopeCreation
	KindCondition
	KindReturn
	KindDuplicateName
	KindAssignment
	KindMethod
	KindArity
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindScopeCreation:
		return "ScopeCreationError"
	case KindCondition:
		return "ConditionError"
	case KindReturn:
		return "ReturnError"
	case KindDuplicateName:
		return "DuplicateNameError"
	case KindAssignment:
		return "AssignmentError"
	case KindMethod:
		return "MethodError"
	case KindArity:
		return "ArityError"
	default:
		return "UnknownError"
	}
}

// Category groups kinds into tree-shape violations and variable violations.
type Category string

// Available Category values.
const (
	CategoryScope    Category = "scope"
	CategoryVariable Category = "variable"
)

// Category reports the super category of k.
func (k Kind) Category() Category {
	switch k {
	case KindDuplicateName, KindAssignment, KindMethod, KindArity:
		return CategoryVariable
	default:
		return CategoryScope
	}
}

// Sentinels matched by errors.Is against any *Error of the corresponding category.
var (
	ErrScope    = errors.New("scope error")
	ErrVariable = errors.New("variable error")
)

// Error is the first rule violation found in a source.
type Error struct {
	Kind   Kind
	Detail string
	// Line is the logical line being checked when the violation was found.
	Line Line
}

func (e *Error) Error() string {
	if e.Line.No > 0 {
		return fmt.Sprintf("line %d: %s", e.Line.No, e.Detail)
	}

	return e.Detail
}

// Is makes errors.Is(err, ErrScope) and errors.Is(err, ErrVariable) work.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrScope:
		return e.Kind.Category() == CategoryScope
	case ErrVariable:
		return e.Kind.Category() == CategoryVariable
	default:
		return false
	}
}

// at attaches line to e unless a more precise line is already set.
func (e *Error) at(line Line) *Error {
	if e.Line.Text == "" {
		e.Line = line
	}

	return e
}

// AsError extracts the *Error carried by err, if any.
func AsError(err error) (*Error, bool) {
	var serr *Error
	if errors.As(err, &serr) {
		return serr, true
	}

	return nil, false
}

// NewSyntaxError reports a line that matches no statement shape.
func NewSyntaxError(line Line) *Error {
	return &Error{Kind: KindSyntax, Detail: fmt.Sprintf("invalid syntax in line: %s", line.Text), Line: line}
}

func errScopeCreation(header Line) *Error {
	return &Error{
		Kind:   KindScopeCreation,
		Detail: fmt.Sprintf("invalid start of scope in %q, failed to create new scope", header.Text),
		Line:   header,
	}
}

func errCondition(cond string) *Error {
	return &Error{Kind: KindCondition, Detail: fmt.Sprintf("invalid condition: %s", cond)}
}

// errReturn reports a missing or misplaced return; where is "method foo" or
// "global scope".
func errReturn(where string) *Error {
	return &Error{Kind: KindReturn, Detail: fmt.Sprintf("invalid return in %s", where)}
}

func errDuplicateName(v *Variable) *Error {
	return &Error{
		Kind:   KindDuplicateName,
		Detail: fmt.Sprintf("variable %s %s already exists in this scope", v.Type(), v.Name()),
	}
}

func errAssignment(name string) *Error {
	return &Error{Kind: KindAssignment, Detail: fmt.Sprintf("invalid assignment in variable: %s", name)}
}

func errMethod(name string) *Error {
	return &Error{Kind: KindMethod, Detail: fmt.Sprintf("invalid call or declaration of method %s", name)}
}

func errArity(name string, want, got int) *Error {
	return &Error{
		Kind:   KindArity,
		Detail: fmt.Sprintf("number of arguments in call to %s differs from signature: want %d, got %d", name, want, got),
	}
}
