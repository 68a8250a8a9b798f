package htmlparser

import (
	"bufio"
	"errors"
	"io"
	"sort"
	"strings"
)

type writer interface {
	io.Writer
	io.ByteWriter
	WriteString(string) (int, error)
}

// Render writes the forest back out as markup. Text, comments and directives are written
// as they appeared in the source. Elements are rebuilt from their name and attributes:
// attributes are sorted by name, boolean attributes are written bare, self-closed
// elements end with "/>" and void elements get no closing tag. Elements left unclosed in
// the source are closed.
func Render(w io.Writer, nodes []Node) error {
	if x, ok := w.(writer); ok {
		return renderNodes(x, nodes)
	}
	buf := bufio.NewWriter(w)
	if err := renderNodes(buf, nodes); err != nil {
		return err
	}
	return buf.Flush()
}

// RenderString is like Render but returns the markup as a string.
func RenderString(nodes []Node) string {
	var b strings.Builder
	_ = renderNodes(&b, nodes)
	return b.String()
}

func renderNodes(w writer, nodes []Node) error {
	for _, n := range nodes {
		if err := render(w, n); err != nil {
			return err
		}
	}
	return nil
}

func render(w writer, n Node) error {
	switch n := n.(type) {
	case *Text:
		_, err := w.WriteString(n.Raw)
		return err
	case *Comment:
		_, err := w.WriteString(n.Raw)
		return err
	case *Directive:
		_, err := w.WriteString(n.Raw)
		return err
	case *Element:
		return renderElement(w, n)
	default:
		return errors.New("htmlparser: unknown node type")
	}
}

func renderElement(w writer, n *Element) error {
	if err := w.WriteByte('<'); err != nil {
		return err
	}
	if _, err := w.WriteString(n.Name); err != nil {
		return err
	}
	keys := make([]string, 0, len(n.Attribs))
	for k := range n.Attribs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := renderAttr(w, k, n.Attribs[k]); err != nil {
			return err
		}
	}
	if n.SelfClosing {
		_, err := w.WriteString("/>")
		return err
	}
	if err := w.WriteByte('>'); err != nil {
		return err
	}
	if IsVoidElement(n.Name) {
		return nil
	}
	if err := renderNodes(w, n.Children); err != nil {
		return err
	}
	if _, err := w.WriteString("</"); err != nil {
		return err
	}
	if _, err := w.WriteString(n.Name); err != nil {
		return err
	}
	return w.WriteByte('>')
}

func renderAttr(w writer, key, val string) error {
	if err := w.WriteByte(' '); err != nil {
		return err
	}
	if _, err := w.WriteString(key); err != nil {
		return err
	}
	if val == key {
		return nil
	}
	quote := byte('"')
	if strings.IndexByte(val, '"') >= 0 {
		if strings.IndexByte(val, '\'') >= 0 {
			val = strings.ReplaceAll(val, `"`, "&quot;")
		} else {
			quote = '\''
		}
	}
	if err := w.WriteByte('='); err != nil {
		return err
	}
	if err := w.WriteByte(quote); err != nil {
		return err
	}
	if _, err := w.WriteString(val); err != nil {
		return err
	}
	return w.WriteByte(quote)
}
