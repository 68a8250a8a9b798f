package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"

	"github.com/dpotapov/go-htmlparser"
)

// ErrEmptyPath is returned by Select for an empty path.
var ErrEmptyPath = errors.New("query: empty path")

// Document is an etree view of a parsed forest. It keeps track of the element each etree
// element was built from, so that search results can be mapped back.
type Document struct {
	*etree.Document

	elements map[*etree.Element]*htmlparser.Element
}

// NewDocument builds an etree document from the forest. Attributes are added in name
// order; comments and directives are kept so that the document can be written out.
// Character references in text and attribute values are decoded, since etree escapes
// them again on output.
func NewDocument(nodes []htmlparser.Node) *Document {
	d := &Document{
		Document: etree.NewDocument(),
		elements: make(map[*etree.Element]*htmlparser.Element),
	}
	d.appendNodes(&d.Document.Element, nodes, false)
	return d
}

func (d *Document) appendNodes(dst *etree.Element, nodes []htmlparser.Node, rawText bool) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *htmlparser.Text:
			if rawText {
				dst.CreateText(n.Raw)
			} else {
				dst.CreateText(html.UnescapeString(n.Raw))
			}
		case *htmlparser.Comment:
			data := strings.TrimPrefix(n.Raw, "<!--")
			dst.CreateComment(strings.TrimSuffix(data, "-->"))
		case *htmlparser.Directive:
			d.appendDirective(dst, n.Raw)
		case *htmlparser.Element:
			el := dst.CreateElement(n.Name)
			keys := make([]string, 0, len(n.Attribs))
			for k := range n.Attribs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				el.CreateAttr(k, html.UnescapeString(n.Attribs[k]))
			}
			d.elements[el] = n
			d.appendNodes(el, n.Children, n.Kind != htmlparser.KindTag)
		}
	}
}

func (d *Document) appendDirective(dst *etree.Element, raw string) {
	if strings.HasPrefix(raw, "<?") {
		s := strings.TrimSuffix(strings.TrimPrefix(raw, "<?"), "?>")
		target, inst, _ := strings.Cut(s, " ")
		dst.CreateProcInst(target, strings.TrimSpace(inst))
		return
	}
	s := strings.TrimSuffix(strings.TrimPrefix(raw, "<!"), ">")
	dst.CreateDirective(s)
}

// Source returns the parsed element an etree element was built from.
func (d *Document) Source(el *etree.Element) (*htmlparser.Element, bool) {
	n, ok := d.elements[el]
	return n, ok
}

// Select returns the elements matching an etree path, e.g. "//ul/li[@class='active']",
// in document order.
func (d *Document) Select(path string) ([]*htmlparser.Element, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil, fmt.Errorf("compile path %q: %w", path, err)
	}
	var res []*htmlparser.Element
	for _, el := range d.FindElementsPath(p) {
		if n, ok := d.elements[el]; ok {
			res = append(res, n)
		}
	}
	return res, nil
}

// Select is a shortcut for NewDocument(nodes).Select(path).
func Select(nodes []htmlparser.Node, path string) ([]*htmlparser.Element, error) {
	return NewDocument(nodes).Select(path)
}
