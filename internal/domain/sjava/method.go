package sjava

import "strings"

// Method is a method body scope plus its signature. Parameters are bound
// lazily, on the first call or when the body is walked, whichever comes first.
type Method struct {
	Scope

	name      string
	rawParams string
	params    []*Variable
	bound     bool
}

func newMethod(header Line, name, rawParams string, parent *Scope) *Method {
	m := &Method{name: name, rawParams: rawParams}
	m.init(ScopeMethod, header, parent)

	return m
}

// Name returns the declared method name.
func (m *Method) Name() string { return m.name }

// RawParams returns the parameter text between the header parentheses.
func (m *Method) RawParams() string { return m.rawParams }

// Parameters returns the bound parameters, or nil before binding.
func (m *Method) Parameters() []*Variable { return m.params }

// Bound reports whether the parameters have been bound.
func (m *Method) Bound() bool { return m.bound }

// bindParameters turns every "type name" token of the signature into a local
// variable holding its type's default literal. It runs at most once.
func (m *Method) bindParameters() *Error {
	if m.bound {
		return nil
	}

	m.bound = true

	if strings.TrimSpace(m.rawParams) == "" {
		return nil
	}

	for _, token := range splitTopLevel(m.rawParams) {
		v, err := parseParameter(token)
		if err != nil {
			return err.at(m.header)
		}

		if err := v.assign(v.Type().DefaultLiteral()); err != nil {
			return err.at(m.header)
		}

		if err := m.declare(v); err != nil {
			return err.at(m.header)
		}

		m.params = append(m.params, v)
	}

	return nil
}

func parseParameter(token string) (*Variable, *Error) {
	stmt, ok := matchDeclaration(token + ";")
	if !ok || stmt.Final || len(stmt.Declarators) != 1 {
		return nil, errAssignment(token)
	}

	d, ok := ParseDeclarator(stmt.Declarators[0])
	if !ok || d.HasExpr {
		return nil, errAssignment(token)
	}

	return NewVariable(d.Name, stmt.Type), nil
}
