package sjava

// resolution is how a scope finds names it does not declare itself.
type resolution interface {
	resolve(s *Scope, name string) *Variable
}

func resolutionFor(kind ScopeKind) resolution {
	if kind == ScopeMethod {
		return privateCopy{}
	}

	return shared{}
}

// shared hands out the ancestor's live variable, so if/while bodies read and
// write the enclosing block's state.
type shared struct{}

func (shared) resolve(s *Scope, name string) *Variable {
	if v, ok := s.symbols[name]; ok {
		return v
	}

	if s.parent == nil {
		return nil
	}

	return s.parent.Resolve(name)
}

// privateCopy snapshots an ancestor variable into the method on first reference.
// Later lookups from the method, or from blocks nested in it, see only the copy.
type privateCopy struct{}

func (privateCopy) resolve(s *Scope, name string) *Variable {
	if v, ok := s.symbols[name]; ok {
		return v
	}

	if s.parent == nil {
		return nil
	}

	outer := s.parent.Resolve(name)
	if outer == nil {
		return nil
	}

	local := outer.clone()
	s.symbols[name] = local

	return local
}
