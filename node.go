package htmlparser

// NodeType is the value of the "type" field in the serialized tree.
type NodeType string

const (
	TextNode      NodeType = "text"
	CommentNode   NodeType = "comment"
	DirectiveNode NodeType = "directive"
	TagNode       NodeType = "tag"
	ScriptNode    NodeType = "script"
	StyleNode     NodeType = "style"
)

// Node is one of *Text, *Comment, *Directive or *Element.
type Node interface {
	// Type returns the node type as it appears in the serialized tree.
	Type() NodeType
	// RawString returns the unprocessed source of the node. For elements it is the
	// contents of the start tag between the angle brackets.
	RawString() string

	node()
}

// Text is a run of characters outside any tag, or the body of a raw-text element.
type Text struct {
	Raw  string
	Data string
}

// Comment is a <!-- ... --> block. Raw includes the delimiters.
type Comment struct {
	Raw  string
	Data string
}

// Directive is a doctype-like declaration (<!...>) or a processing instruction (<?...?>).
// Raw includes the delimiters.
type Directive struct {
	Raw  string
	Data string
}

// ElementKind distinguishes ordinary elements from raw-text elements.
type ElementKind int

const (
	KindTag ElementKind = iota
	KindScript
	KindStyle
)

// Element is a start tag and everything up to its resolved closing tag.
type Element struct {
	Name string
	// Attribs maps attribute names to values. Boolean attributes store their own name
	// as the value.
	Attribs map[string]string
	// Children is empty for void and self-closed elements. Raw-text elements have at
	// most one *Text child.
	Children []Node
	// Raw is the source between '<' and the terminating '>' or "/>".
	Raw  string
	Data string
	Kind ElementKind
	// SelfClosing reports whether the start tag ended with "/>".
	SelfClosing bool
}

func (*Text) node()      {}
func (*Comment) node()   {}
func (*Directive) node() {}
func (*Element) node()   {}

func (*Text) Type() NodeType      { return TextNode }
func (*Comment) Type() NodeType   { return CommentNode }
func (*Directive) Type() NodeType { return DirectiveNode }

func (e *Element) Type() NodeType {
	switch e.Kind {
	case KindScript:
		return ScriptNode
	case KindStyle:
		return StyleNode
	default:
		return TagNode
	}
}

func (t *Text) RawString() string      { return t.Raw }
func (c *Comment) RawString() string   { return c.Raw }
func (d *Directive) RawString() string { return d.Raw }
func (e *Element) RawString() string   { return e.Raw }

// IsWhitespace reports whether the text consists of whitespace only.
func (t *Text) IsWhitespace() bool {
	for i := 0; i < len(t.Raw); i++ {
		if !isWhitespace(t.Raw[i]) {
			return false
		}
	}
	return true
}

// Text returns the concatenated raw text of all descendant text nodes.
func (e *Element) Text() string {
	var b []byte
	Walk(e.Children, func(n Node, _ int) bool {
		if t, ok := n.(*Text); ok {
			b = append(b, t.Raw...)
		}
		return true
	})
	return string(b)
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attribs[name]
	return v, ok
}

// Walk visits nodes depth-first in document order. The depth of root-level nodes is 0.
// Children of an element are skipped when fn returns false for it.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if !fn(n, depth) {
			continue
		}
		if el, ok := n.(*Element); ok {
			walk(el.Children, depth+1, fn)
		}
	}
}
