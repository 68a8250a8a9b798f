package htmlparser

import (
	"strings"
)

// parseRawText captures the body of a script or style element verbatim, up to a closing
// tag of the form "< / name >" with optional whitespace around each part. Without such
// a closer the body runs to the end of the input.
func (p *parser) parseRawText(el *Element) {
	start := p.pos
	body, end := p.s[start:], len(p.s)
	for i := start; i < len(p.s); {
		j := strings.IndexByte(p.s[i:], '<')
		if j < 0 {
			break
		}
		i += j
		if k, ok := p.matchRawTextCloser(i, el.Name); ok {
			body, end = p.s[start:i], k
			break
		}
		i++
	}
	p.pos = end

	if body == "" {
		return
	}
	t := &Text{Raw: body, Data: body}
	if p.opts.IgnoreWhitespace && t.IsWhitespace() {
		return
	}
	el.Children = append(el.Children, t)
}

// matchRawTextCloser reports whether a closing tag for name starts at offset i, and
// returns the offset just past its '>'.
func (p *parser) matchRawTextCloser(i int, name string) (int, bool) {
	i = p.skipWhitespace(i + 1)
	if i >= len(p.s) || p.s[i] != '/' {
		return 0, false
	}
	i = p.skipWhitespace(i + 1)
	j := p.scanName(i)
	if j == i || p.opts.tagName(p.s[i:j]) != name {
		return 0, false
	}
	j = p.skipWhitespace(j)
	if j >= len(p.s) || p.s[j] != '>' {
		return 0, false
	}
	return j + 1, true
}
