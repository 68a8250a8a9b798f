package htmlparser

import (
	"context"
	"fmt"
	"io"
	"strings"

	a "golang.org/x/net/html/atom"
)

// A frame is an element on the stack of open elements. Its children are appended to the
// element directly, so nothing has to be finalized when the input ends.
type frame struct {
	el   *Element
	atom a.Atom
}

// A parser converts a markup string into a forest of nodes in a single pass. It never
// fails: malformed markup is recovered from by the rules documented on Parse.
type parser struct {
	// s is the input, it is never modified.
	s string
	// pos is the cursor into s.
	pos int
	// root collects the top-level nodes.
	root []Node
	// oe is the stack of open elements.
	oe []frame
	// textStart is the offset of a pending text run, or -1.
	textStart int

	opts Options
}

func newParser(s string, opts Options) *parser {
	return &parser{s: s, opts: opts, textStart: -1}
}

// Parse parses markup with DefaultOptions. See ParseWithOptions.
func Parse(markup string) []Node {
	return ParseWithOptions(markup, DefaultOptions())
}

// ParseWithOptions parses markup into an ordered forest of root-level nodes. It never
// fails and always terminates; the recovery rules are:
//
//   - unterminated tags, comments, directives, attribute values and raw-text bodies run
//     to the end of the input;
//   - a closing tag closes the nearest open element with the same name together with
//     every element opened after it, or is dropped when there is no such element;
//   - a '<' that does not start markup is literal text;
//   - elements left open at the end of the input keep the children added so far.
func ParseWithOptions(markup string, opts Options) []Node {
	p := newParser(markup, opts)
	p.parse()
	return p.root
}

// ParseReader reads r to the end and parses its content.
func ParseReader(ctx context.Context, r io.Reader, opts Options) ([]Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markup: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseWithOptions(string(b), opts), nil
}

// run parses the input, converting a panic into a *ParseError.
func (p *parser) run() (nodes []Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newParseError(p.pos, r)
		}
	}()
	p.parse()
	return p.root, nil
}

func (p *parser) parse() {
	for p.pos < len(p.s) {
		if !p.atMarkup(p.pos) {
			p.scanText()
			continue
		}
		p.flushText()
		switch rest := p.s[p.pos:]; {
		case strings.HasPrefix(rest, "<!--"):
			p.parseComment()
		case strings.HasPrefix(rest, "</"):
			p.parseEndTag()
		case strings.HasPrefix(rest, "<!"):
			p.parseDirective(">")
		case strings.HasPrefix(rest, "<?"):
			p.parseDirective("?>")
		default:
			p.parseStartTag()
		}
	}
	p.flushText()
}

// atMarkup reports whether the '<' at offset i starts a tag, a comment or a directive.
// A tag name must follow '<' directly, so "a < b" is text.
func (p *parser) atMarkup(i int) bool {
	if p.s[i] != '<' || i+1 >= len(p.s) {
		return false
	}
	switch c := p.s[i+1]; c {
	case '/', '!', '?':
		return true
	default:
		return isNameChar(c)
	}
}

// scanText advances the cursor over a maximal run of text. The run is emitted by
// flushText once markup or the end of the input is reached.
func (p *parser) scanText() {
	if p.textStart < 0 {
		p.textStart = p.pos
	}
	p.pos++
	for p.pos < len(p.s) {
		i := strings.IndexByte(p.s[p.pos:], '<')
		if i < 0 {
			p.pos = len(p.s)
			return
		}
		p.pos += i
		if p.atMarkup(p.pos) {
			return
		}
		p.pos++
	}
}

func (p *parser) flushText() {
	if p.textStart < 0 {
		return
	}
	p.addText(p.s[p.textStart:p.pos])
	p.textStart = -1
}

// top returns the innermost open element, or nil at the root level.
func (p *parser) top() *frame {
	if i := len(p.oe); i > 0 {
		return &p.oe[i-1]
	}
	return nil
}

// addChild appends n to the innermost open element.
func (p *parser) addChild(n Node) {
	if f := p.top(); f != nil {
		f.el.Children = append(f.el.Children, n)
		return
	}
	p.root = append(p.root, n)
}

func (p *parser) addText(s string) {
	if s == "" {
		return
	}
	t := &Text{Raw: s, Data: s}
	if p.opts.IgnoreWhitespace && t.IsWhitespace() {
		return
	}
	p.addChild(t)
}

// indexFrom returns the offset of sep at or after i, or -1.
func (p *parser) indexFrom(i int, sep string) int {
	if i > len(p.s) {
		return -1
	}
	if j := strings.Index(p.s[i:], sep); j >= 0 {
		return i + j
	}
	return -1
}

// spanTo returns the end offset of a construct terminated by sep searched from i,
// including sep, or the input length when sep is missing.
func (p *parser) spanTo(i int, sep string) int {
	if j := p.indexFrom(i, sep); j >= 0 {
		return j + len(sep)
	}
	return len(p.s)
}

func (p *parser) skipWhitespace(i int) int {
	for i < len(p.s) && isWhitespace(p.s[i]) {
		i++
	}
	return i
}

func (p *parser) scanName(i int) int {
	for i < len(p.s) && isNameChar(p.s[i]) {
		i++
	}
	return i
}

func (p *parser) parseComment() {
	end := p.spanTo(p.pos+len("<!--"), "-->")
	raw := p.s[p.pos:end]
	p.addChild(&Comment{Raw: raw, Data: raw})
	p.pos = end
}

// parseDirective handles doctype-like declarations and processing instructions.
func (p *parser) parseDirective(closer string) {
	end := p.spanTo(p.pos+2, closer)
	raw := p.s[p.pos:end]
	p.addChild(&Directive{Raw: raw, Data: raw})
	p.pos = end
}

// parseEndTag consumes a closing tag. Anything between the name and '>' is ignored.
func (p *parser) parseEndTag() {
	i := p.skipWhitespace(p.pos + 2)
	j := p.scanName(i)
	name := p.opts.tagName(p.s[i:j])
	p.pos = p.spanTo(j, ">")

	if name == "" {
		return
	}
	p.popUntil(name)
}

// popUntil closes the nearest open element called name and every element opened after
// it. It returns false and leaves the stack unchanged if there is no such element.
//
// Closing a non-innermost element recovers from a missing end tag, e.g. in
// "<div><span>hi</div>" the span is closed together with the div. The price is that a
// mis-nested element cannot be told apart from one that was never closed.
func (p *parser) popUntil(name string) bool {
	for i := len(p.oe) - 1; i >= 0; i-- {
		if p.oe[i].el.Name == name {
			p.oe = p.oe[:i]
			return true
		}
	}
	return false
}

func (p *parser) parseStartTag() {
	start := p.pos + 1
	nameEnd := p.scanName(start)
	name := p.opts.tagName(p.s[start:nameEnd])
	tagAtom := lookupAtom(name)

	if f := p.top(); f != nil && closesOnStart(tagAtom, f.atom) {
		p.oe = p.oe[:len(p.oe)-1]
	}

	attribs, selfClosing, end := p.parseAttrs(nameEnd)
	raw := p.s[start:end]
	el := &Element{
		Name:        name,
		Attribs:     attribs,
		Raw:         raw,
		Data:        raw,
		Kind:        KindTag,
		SelfClosing: selfClosing,
	}
	kind, isRawText := rawTextElements[tagAtom]
	if isRawText {
		el.Kind = kind
	}
	p.addChild(el)

	p.pos = end
	if p.pos < len(p.s) {
		p.pos++ // '>'
	}

	if selfClosing {
		return
	}
	if isRawText {
		p.parseRawText(el)
		return
	}
	if _, ok := voidElements[tagAtom]; ok {
		return
	}
	p.oe = append(p.oe, frame{el: el, atom: tagAtom})
}
