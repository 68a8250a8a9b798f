package htmlparser

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned by UnmarshalNodes for an unknown node type.
var ErrInvalidFormat = errors.New("htmlparser: invalid node format")

// jsonNode is the serialized node shape shared with the legacy JavaScript parser:
//
//	{"type": "tag", "name": "div", "attribs": {...}, "children": [...], "raw": "...", "data": "..."}
type jsonNode struct {
	Type     NodeType          `json:"type"`
	Name     string            `json:"name,omitempty"`
	Attribs  map[string]string `json:"attribs,omitempty"`
	Children []json.RawMessage `json:"children,omitempty"`
	Raw      string            `json:"raw"`
	Data     string            `json:"data"`
}

type jsonText struct {
	Type NodeType `json:"type"`
	Raw  string   `json:"raw"`
	Data string   `json:"data"`
}

type jsonElement struct {
	Type     NodeType          `json:"type"`
	Name     string            `json:"name"`
	Attribs  map[string]string `json:"attribs"`
	Children []Node            `json:"children"`
	Raw      string            `json:"raw"`
	Data     string            `json:"data"`
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonText{Type: TextNode, Raw: t.Raw, Data: t.Data})
}

func (c *Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonText{Type: CommentNode, Raw: c.Raw, Data: c.Data})
}

func (d *Directive) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonText{Type: DirectiveNode, Raw: d.Raw, Data: d.Data})
}

func (e *Element) MarshalJSON() ([]byte, error) {
	v := jsonElement{
		Type:     e.Type(),
		Name:     e.Name,
		Attribs:  e.Attribs,
		Children: e.Children,
		Raw:      e.Raw,
		Data:     e.Data,
	}
	if v.Attribs == nil {
		v.Attribs = map[string]string{}
	}
	if v.Children == nil {
		v.Children = []Node{}
	}
	return json.Marshal(v)
}

// MarshalNodes encodes a forest. An empty forest is encoded as [].
func MarshalNodes(nodes []Node) ([]byte, error) {
	if nodes == nil {
		nodes = []Node{}
	}
	return json.Marshal(nodes)
}

// UnmarshalNodes decodes a forest produced by MarshalNodes.
func UnmarshalNodes(data []byte) ([]Node, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal nodes: %w", err)
	}
	return unmarshalNodes(raw)
}

func unmarshalNodes(raw []json.RawMessage) ([]Node, error) {
	var nodes []Node
	for _, m := range raw {
		var jn jsonNode
		if err := json.Unmarshal(m, &jn); err != nil {
			return nil, fmt.Errorf("unmarshal node: %w", err)
		}
		n, err := jn.node()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (jn *jsonNode) node() (Node, error) {
	switch jn.Type {
	case TextNode:
		return &Text{Raw: jn.Raw, Data: jn.Data}, nil
	case CommentNode:
		return &Comment{Raw: jn.Raw, Data: jn.Data}, nil
	case DirectiveNode:
		return &Directive{Raw: jn.Raw, Data: jn.Data}, nil
	case TagNode, ScriptNode, StyleNode:
		children, err := unmarshalNodes(jn.Children)
		if err != nil {
			return nil, fmt.Errorf("children of %q: %w", jn.Name, err)
		}
		el := &Element{
			Name:     jn.Name,
			Attribs:  jn.Attribs,
			Children: children,
			Raw:      jn.Raw,
			Data:     jn.Data,
		}
		if el.Attribs == nil {
			el.Attribs = map[string]string{}
		}
		switch jn.Type {
		case ScriptNode:
			el.Kind = KindScript
		case StyleNode:
			el.Kind = KindStyle
		}
		el.SelfClosing = isSelfClosingRaw(el.Raw)
		return el, nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrInvalidFormat, jn.Type)
	}
}

// isSelfClosingRaw reports whether the raw start tag content ends with a slash.
func isSelfClosingRaw(raw string) bool {
	i := len(raw) - 1
	for i >= 0 && isWhitespace(raw[i]) {
		i--
	}
	return i >= 0 && raw[i] == '/'
}
