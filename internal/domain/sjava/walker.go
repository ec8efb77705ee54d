package sjava

// Check builds the scope tree for lines and walks it.
func Check(lines []Line, opts Options) error {
	global, err := Build(lines, opts)
	if err != nil {
		return err
	}

	return Walk(global)
}

// Walk checks every line of the tree rooted at s, depth first and in source
// order, and returns the first violation. Walking records variable state in the
// tree, so a tree can be walked once.
func Walk(s *Scope) error {
	if err := walkScope(s); err != nil {
		return err
	}

	return nil
}

// walkScope checks s's residual lines, entering each if/while body where its
// header appears, and then walks s's methods in declaration order.
func walkScope(s *Scope) *Error {
	for _, line := range s.lines {
		if err := checkLine(s, line); err != nil {
			return err.at(line)
		}
	}

	for _, m := range s.methods {
		if err := m.bindParameters(); err != nil {
			return err
		}

		if err := walkScope(&m.Scope); err != nil {
			return err
		}
	}

	return nil
}

func checkLine(s *Scope, line Line) *Error {
	stmt := Classify(line.Text)

	switch stmt.Kind {
	case StmtDeclaration:
		return declare(s, stmt)
	case StmtAssignment:
		return assignTo(s, stmt.Name, stmt.Expr)
	case StmtCondition:
		return enterCondition(s, stmt)
	case StmtCall:
		if s.kind == ScopeGlobal {
			return NewSyntaxError(line)
		}

		return call(s, stmt)
	case StmtReturn:
		if s.kind == ScopeGlobal {
			return errReturn("global scope")
		}

		return nil
	case StmtMethodHeader, StmtBlockClose:
		return nil
	default:
		return NewSyntaxError(line)
	}
}

func declare(s *Scope, stmt Statement) *Error {
	for _, text := range stmt.Declarators {
		d, ok := ParseDeclarator(text)
		if !ok {
			return errAssignment(text)
		}

		if stmt.Final && !d.HasExpr {
			return errAssignment(d.Name)
		}

		v := NewVariable(d.Name, stmt.Type)
		if err := s.declare(v); err != nil {
			return err
		}

		if !d.HasExpr {
			continue
		}

		if err := store(s, v, d.Expr); err != nil {
			return err
		}

		if stmt.Final {
			v.MarkConstant()
		}
	}

	return nil
}

func assignTo(s *Scope, name, expr string) *Error {
	dst := s.Resolve(name)
	if dst == nil || dst.Constant() {
		return errAssignment(name)
	}

	return store(s, dst, expr)
}

// store writes expr into dst. A name visible from s is a reference assignment
// and copies the source's value if its type widens to dst's; anything else must
// be a literal of dst's type.
func store(s *Scope, dst *Variable, expr string) *Error {
	if !isVarName(expr) {
		return dst.assign(expr)
	}

	src := s.Resolve(expr)
	if src == nil {
		return dst.assign(expr)
	}

	value, ok := src.Value()
	if !ok || !dst.Type().Widens(src.Type()) {
		return errAssignment(dst.Name())
	}

	return dst.assign(value)
}

func enterCondition(s *Scope, stmt Statement) *Error {
	if s.kind == ScopeGlobal {
		return errCondition(stmt.Expr)
	}

	for _, operand := range splitCondition(stmt.Expr) {
		if !conditionOperand(s, operand) {
			return errCondition(stmt.Expr)
		}
	}

	child, ok := s.popCondition()
	if !ok {
		return errCondition(stmt.Expr)
	}

	return walkScope(child)
}

// conditionOperand accepts a boolean literal or an initialized boolean, int or
// double variable.
func conditionOperand(s *Scope, operand string) bool {
	if isBooleanLiteral(operand) {
		return true
	}

	if !isVarName(operand) {
		return false
	}

	v := s.Resolve(operand)

	return v != nil && v.Initialized() && v.Type().numeric()
}

// call binds the callee's parameters on first use and stores each argument
// into the matching parameter.
func call(s *Scope, stmt Statement) *Error {
	m := s.findMethod(stmt.Name)
	if m == nil {
		return errMethod(stmt.Name)
	}

	if err := m.bindParameters(); err != nil {
		return err
	}

	var args []string
	if stmt.Args != "" {
		args = splitTopLevel(stmt.Args)
	}

	if len(args) != len(m.params) {
		return errArity(stmt.Name, len(m.params), len(args))
	}

	for i, arg := range args {
		if err := store(s, m.params[i], arg); err != nil {
			return err
		}
	}

	return nil
}
