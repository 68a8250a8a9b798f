package htmlparser

import (
	a "golang.org/x/net/html/atom"
)

// voidElements can never have children and are never closed explicitly.
var voidElements = atomSet(a.Area, a.Base, a.Br, a.Col, a.Embed, a.Hr, a.Img, a.Input,
	a.Link, a.Meta, a.Param, a.Source, a.Track, a.Wbr)

// rawTextElements hold content that is opaque to the tokenizer.
var rawTextElements = map[a.Atom]ElementKind{
	a.Script: KindScript,
	a.Style:  KindStyle,
}

// autoCloseOnStart maps a start tag to the set of tags it implicitly closes when one of
// them is on top of the stack of open elements. This is the minimum of the HTML
// optional end tag rules needed to nest lists, tables and selects.
var autoCloseOnStart = map[a.Atom]map[a.Atom]struct{}{
	a.Li:       atomSet(a.Li),
	a.P:        atomSet(a.P),
	a.Td:       atomSet(a.Td, a.Th),
	a.Th:       atomSet(a.Td, a.Th),
	a.Tr:       atomSet(a.Tr),
	a.Option:   atomSet(a.Option),
	a.Optgroup: atomSet(a.Optgroup),
}

func atomSet(atoms ...a.Atom) map[a.Atom]struct{} {
	m := make(map[a.Atom]struct{}, len(atoms))
	for _, t := range atoms {
		m[t] = struct{}{}
	}
	return m
}

// lookupAtom returns the atom for a tag name regardless of its case, or 0 for
// unknown (custom) names.
func lookupAtom(name string) a.Atom {
	return a.Lookup([]byte(asciiLower(name)))
}

// IsVoidElement reports whether name is a void element (br, img, ...). The comparison is
// case-insensitive.
func IsVoidElement(name string) bool {
	_, ok := voidElements[lookupAtom(name)]
	return ok
}

// IsRawTextElement reports whether the content of the name element is captured verbatim.
func IsRawTextElement(name string) bool {
	_, ok := rawTextElements[lookupAtom(name)]
	return ok
}

// closesOnStart reports whether starting a tag with atom next implicitly closes an open
// element with atom top.
func closesOnStart(next, top a.Atom) bool {
	if next == 0 || top == 0 {
		return false
	}
	_, ok := autoCloseOnStart[next][top]
	return ok
}
