package sjava

// ScopeKind distinguishes the three kinds of lexical block.
type ScopeKind int

// Available ScopeKind values.
const (
	ScopeGlobal ScopeKind = iota
	ScopeConditional
	ScopeMethod
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeConditional:
		return "conditional"
	case ScopeMethod:
		return "method"
	default:
		return "invalid"
	}
}

// Scope is a lexical block: its residual lines, its own variables and its child
// blocks. Children are owned; parent is a lookup-only back reference.
type Scope struct {
	kind   ScopeKind
	header Line
	lines  []Line
	parent *Scope

	symbols    map[string]*Variable
	resolution resolution

	conditions []*Scope
	nextCond   int
	methods    []*Method
}

func newScope(kind ScopeKind, header Line, parent *Scope) *Scope {
	s := &Scope{}
	s.init(kind, header, parent)

	return s
}

func (s *Scope) init(kind ScopeKind, header Line, parent *Scope) {
	s.kind = kind
	s.header = header
	s.parent = parent
	s.symbols = make(map[string]*Variable)
	s.resolution = resolutionFor(kind)
}

// Kind returns the kind of block.
func (s *Scope) Kind() ScopeKind { return s.kind }

// Header returns the line that opened the block; zero for the global scope.
func (s *Scope) Header() Line { return s.header }

// Lines returns the residual lines: nested bodies are replaced by their headers
// with the opening brace stripped.
func (s *Scope) Lines() []Line { return s.lines }

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Conditions returns the if/while children in declaration order.
func (s *Scope) Conditions() []*Scope { return s.conditions }

// Methods returns the method children in declaration order.
func (s *Scope) Methods() []*Method { return s.methods }

// Lookup returns a variable declared directly in s.
func (s *Scope) Lookup(name string) (*Variable, bool) {
	v, ok := s.symbols[name]

	return v, ok
}

// Resolve finds name in s or its ancestors using the strategy of s's kind.
// It returns nil when the name is not visible.
func (s *Scope) Resolve(name string) *Variable {
	return s.resolution.resolve(s, name)
}

// Declare adds v to s, rejecting a name already declared in s.
func (s *Scope) Declare(v *Variable) error {
	if err := s.declare(v); err != nil {
		return err
	}

	return nil
}

func (s *Scope) declare(v *Variable) *Error {
	if _, exists := s.symbols[v.Name()]; exists {
		return errDuplicateName(v)
	}

	s.symbols[v.Name()] = v

	return nil
}

// popCondition returns the next if/while child not yet walked.
func (s *Scope) popCondition() (*Scope, bool) {
	if s.nextCond >= len(s.conditions) {
		return nil, false
	}

	child := s.conditions[s.nextCond]
	s.nextCond++

	return child, true
}

// findMethod searches s and then each ancestor for a method called name.
// Within one scope the last declaration wins, and a match in an outer scope
// replaces any found further in, so the outermost declaration is called.
func (s *Scope) findMethod(name string) *Method {
	var found *Method

	for cur := s; cur != nil; cur = cur.parent {
		for _, m := range cur.methods {
			if m.name == name {
				found = m
			}
		}
	}

	return found
}

// Stats counts the blocks and residual lines of a tree.
type Stats struct {
	Lines      int
	Methods    int
	Conditions int
	Depth      int
}

// Stats summarizes s and everything below it.
func (s *Scope) Stats() Stats {
	st := Stats{Lines: len(s.lines)}

	children := make([]*Scope, 0, len(s.conditions)+len(s.methods))
	children = append(children, s.conditions...)

	for _, m := range s.methods {
		children = append(children, &m.Scope)
	}

	for _, child := range children {
		cs := child.Stats()
		st.Lines += cs.Lines
		st.Methods += cs.Methods
		st.Conditions += cs.Conditions

		if cs.Depth+1 > st.Depth {
			st.Depth = cs.Depth + 1
		}
	}

	st.Methods += len(s.methods)
	st.Conditions += len(s.conditions)

	return st
}
