package sjava

import (
	"fmt"
	"strings"
)

// ShadowPolicy decides what happens when one scope declares two methods with
// the same name.
type ShadowPolicy int

// Available ShadowPolicy values.
const (
	// ShadowReject fails the build with a MethodError.
	ShadowReject ShadowPolicy = iota
	// ShadowLastWins keeps both; calls resolve to the later declaration.
	ShadowLastWins
)

func (p ShadowPolicy) String() string {
	switch p {
	case ShadowReject:
		return "reject"
	case ShadowLastWins:
		return "last-wins"
	default:
		return "invalid"
	}
}

// ParseShadowPolicy maps a configuration value to a ShadowPolicy. An empty
// value selects ShadowReject.
func ParseShadowPolicy(s string) (ShadowPolicy, error) {
	switch s {
	case "", "reject":
		return ShadowReject, nil
	case "last-wins":
		return ShadowLastWins, nil
	default:
		return 0, fmt.Errorf("unknown method shadowing policy %q", s)
	}
}

// Options tune how a source is checked.
type Options struct {
	MethodShadowing ShadowPolicy
}

// Build partitions normalized lines into a scope tree rooted at the Global scope.
func Build(lines []Line, opts Options) (*Scope, error) {
	global := newScope(ScopeGlobal, Line{}, nil)

	b := builder{opts: opts}
	if err := b.partition(global, lines); err != nil {
		return nil, err
	}

	return global, nil
}

type builder struct {
	opts Options
}

// partition fills s with its residual lines and creates one child per nested
// block. Each nested header stays in s's lines with its opening brace removed.
func (b builder) partition(s *Scope, lines []Line) *Error {
	for i := 0; i < len(lines); {
		line := lines[i]

		if !opensBlock(line.Text) {
			s.lines = append(s.lines, line)
			i++

			continue
		}

		end, ok := blockEnd(lines, i)
		if !ok {
			return errScopeCreation(line)
		}

		s.lines = append(s.lines, Line{No: line.No, Text: stripBrace(line.Text)})

		if err := b.addChild(s, line, lines[i+1:end]); err != nil {
			return err
		}

		i = end
	}

	return nil
}

// blockEnd returns the index just past the "}" closing the block opened at start.
func blockEnd(lines []Line, start int) (int, bool) {
	depth := 1

	for j := start + 1; j < len(lines); j++ {
		switch {
		case opensBlock(lines[j].Text):
			depth++
		case strings.TrimSpace(lines[j].Text) == "}":
			depth--
		}

		if depth == 0 {
			return j + 1, true
		}
	}

	return 0, false
}

// addChild creates the scope for a nested block. body holds every line after
// the header, ending with the closing brace.
func (b builder) addChild(parent *Scope, header Line, body []Line) *Error {
	if stmt, ok := matchMethodHeader(header.Text); ok {
		return b.addMethod(parent, header, stmt, body)
	}

	if IsConditionHeader(header.Text) {
		if parent.kind == ScopeGlobal {
			return errCondition(stripBrace(header.Text)).at(header)
		}

		child := newScope(ScopeConditional, header, parent)
		if err := b.partition(child, body); err != nil {
			return err
		}

		parent.conditions = append(parent.conditions, child)

		return nil
	}

	return errScopeCreation(header)
}

func (b builder) addMethod(parent *Scope, header Line, stmt Statement, body []Line) *Error {
	if b.opts.MethodShadowing == ShadowReject {
		for _, sibling := range parent.methods {
			if sibling.name == stmt.Name {
				return errMethod(stmt.Name).at(header)
			}
		}
	}

	if len(body) < 2 {
		return errReturn("method " + stmt.Name).at(header)
	}

	if last := body[len(body)-2]; !isReturn(last.Text) {
		return errReturn("method " + stmt.Name).at(last)
	}

	m := newMethod(header, stmt.Name, stmt.Params, parent)
	if err := b.partition(&m.Scope, body); err != nil {
		return err
	}

	parent.methods = append(parent.methods, m)

	return nil
}

func opensBlock(text string) bool {
	return strings.HasSuffix(strings.TrimSpace(text), "{")
}

func stripBrace(text string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "{"))
}

func isReturn(text string) bool {
	_, ok := matchReturn(text)

	return ok
}
