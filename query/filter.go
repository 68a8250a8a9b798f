package query

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dpotapov/go-htmlparser"
)

// Predicate is a compiled boolean expression over an element. The expression sees the
// variables:
//
//	name     element name
//	kind     "tag", "script" or "style"
//	attribs  map of attribute values
//	text     concatenated text of the descendants
//	depth    nesting level, 0 for root-level elements
//
// and the function classes(s) splitting a class attribute into its names, so that
// `name == "a" && "nav" in classes(attribs.class)` is a valid predicate.
type Predicate struct {
	src  string
	prog *vm.Program
	vm   vm.VM
}

func predicateEnv(el *htmlparser.Element, depth int) map[string]any {
	return map[string]any{
		"name":    el.Name,
		"kind":    string(el.Type()),
		"attribs": el.Attribs,
		"text":    el.Text(),
		"depth":   depth,
	}
}

func classesFunction(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("classes: expected 1 argument, got %d", len(params))
	}
	switch v := params[0].(type) {
	case nil:
		return []string{}, nil
	case string:
		return strings.Fields(v), nil
	default:
		return nil, fmt.Errorf("classes: expected string, got %T", v)
	}
}

// Compile compiles a predicate expression.
func Compile(src string) (*Predicate, error) {
	sample := predicateEnv(&htmlparser.Element{Attribs: map[string]string{}}, 0)
	prog, err := expr.Compile(src,
		expr.Env(sample),
		expr.AsBool(),
		expr.Function("classes", classesFunction, new(func(string) []string)),
	)
	if err != nil {
		return nil, fmt.Errorf("compile predicate %q: %w", src, err)
	}
	return &Predicate{src: src, prog: prog}, nil
}

// Match evaluates the predicate for el found at the given depth.
func (p *Predicate) Match(el *htmlparser.Element, depth int) (bool, error) {
	out, err := p.vm.Run(p.prog, predicateEnv(el, depth))
	if err != nil {
		return false, fmt.Errorf("eval predicate %q on <%s>: %w", p.src, el.Name, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Filter returns the elements of the forest, in document order, for which the predicate
// holds. Evaluation stops at the first error. A Predicate must not be used by several
// goroutines at once.
func (p *Predicate) Filter(nodes []htmlparser.Node) ([]*htmlparser.Element, error) {
	var (
		res []*htmlparser.Element
		err error
	)
	htmlparser.Walk(nodes, func(n htmlparser.Node, depth int) bool {
		el, ok := n.(*htmlparser.Element)
		if !ok || err != nil {
			return err == nil
		}
		var match bool
		if match, err = p.Match(el, depth); match {
			res = append(res, el)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Filter compiles src and applies it to the forest.
func Filter(nodes []htmlparser.Node, src string) ([]*htmlparser.Element, error) {
	p, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return p.Filter(nodes)
}
