package sjava

// Variable is a declared name with its type, its current literal value (if
// initialized) and whether it has become constant.
type Variable struct {
	name        string
	typ         Type
	value       string
	initialized bool
	constant    bool
}

// NewVariable creates an uninitialized, non-constant variable.
func NewVariable(name string, typ Type) *Variable {
	return &Variable{name: name, typ: typ}
}

// NewInitializedVariable creates a variable holding literal, which must match typ.
func NewInitializedVariable(name string, typ Type, literal string) (*Variable, error) {
	v := NewVariable(name, typ)
	if err := v.Assign(literal); err != nil {
		return nil, err
	}

	return v, nil
}

// Name returns the declared name.
func (v *Variable) Name() string { return v.name }

// Type returns the declared type.
func (v *Variable) Type() Type { return v.typ }

// Value returns the current literal and whether the variable is initialized.
func (v *Variable) Value() (string, bool) { return v.value, v.initialized }

// Initialized reports whether a value has been assigned.
func (v *Variable) Initialized() bool { return v.initialized }

// Constant reports whether further assignments are rejected.
func (v *Variable) Constant() bool { return v.constant }

// MarkConstant freezes the variable.
func (v *Variable) MarkConstant() { v.constant = true }

// Assign stores literal after checking it against the variable's type grammar.
// The variable is left untouched when the literal is rejected.
func (v *Variable) Assign(literal string) error {
	if err := v.assign(literal); err != nil {
		return err
	}

	return nil
}

func (v *Variable) assign(literal string) *Error {
	if v.constant || !v.typ.Accepts(literal) {
		return errAssignment(v.name)
	}

	v.value = literal
	v.initialized = true

	return nil
}

// clone returns an independent variable with the same name, type, value and
// constness.
func (v *Variable) clone() *Variable {
	c := *v

	return &c
}
