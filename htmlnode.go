package htmlparser

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToHTMLNode converts a forest into a golang.org/x/net/html document so that it can be
// rendered with html.Render or walked with tools built for that package.
//
// Text and attribute values are unescaped because html.Node holds decoded data. The
// bodies of raw-text elements are kept as they are. Doctype directives become
// DoctypeNode; any other directive, like a processing instruction, becomes a comment the
// way browsers treat it.
func ToHTMLNode(nodes []Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	appendHTMLNodes(doc, nodes, false)
	return doc
}

func appendHTMLNodes(dst *html.Node, nodes []Node, rawText bool) {
	for _, n := range nodes {
		if c := toHTMLNode(n, rawText); c != nil {
			dst.AppendChild(c)
		}
	}
}

func toHTMLNode(n Node, rawText bool) *html.Node {
	switch n := n.(type) {
	case *Text:
		data := n.Raw
		if !rawText {
			data = html.UnescapeString(data)
		}
		return &html.Node{Type: html.TextNode, Data: data}
	case *Comment:
		data := strings.TrimPrefix(n.Raw, "<!--")
		data = strings.TrimSuffix(data, "-->")
		return &html.Node{Type: html.CommentNode, Data: data}
	case *Directive:
		if body, ok := doctypeBody(n.Raw); ok {
			return parseDoctype(body)
		}
		data := strings.TrimPrefix(n.Raw, "<")
		data = strings.TrimSuffix(data, ">")
		return &html.Node{Type: html.CommentNode, Data: data}
	case *Element:
		el := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Lookup([]byte(n.Name)),
			Data:     n.Name,
			Attr:     make([]html.Attribute, 0, len(n.Attribs)),
		}
		for k, v := range n.Attribs {
			el.Attr = append(el.Attr, html.Attribute{Key: k, Val: html.UnescapeString(v)})
		}
		sort.Slice(el.Attr, func(i, j int) bool { return el.Attr[i].Key < el.Attr[j].Key })
		appendHTMLNodes(el, n.Children, n.Kind != KindTag)
		return el
	default:
		return nil
	}
}
