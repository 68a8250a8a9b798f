package htmlparser

// parseAttrs scans the attributes of a start tag beginning at offset i, just after the tag
// name. It returns the attributes, whether the tag was self-closed with "/>" and the
// offset of the terminating '>' (the input length if the tag is unterminated).
//
// Duplicate attributes keep the last value. An attribute without '=' is boolean and its
// value is its own name.
func (p *parser) parseAttrs(i int) (attribs map[string]string, selfClosing bool, end int) {
	attribs = map[string]string{}
	n := len(p.s)
	for {
		i = p.skipWhitespace(i)
		if i >= n {
			return attribs, false, n
		}
		switch p.s[i] {
		case '>':
			return attribs, false, i
		case '/':
			if j := p.skipWhitespace(i + 1); j < n && p.s[j] == '>' {
				return attribs, true, j
			}
			// A stray slash between attributes.
			i++
			continue
		}

		nameStart := i
		for i < n && isAttrNameChar(p.s[i]) {
			i++
		}
		if i == nameStart {
			// Nothing can be consumed here (a bare '='); give up on the attributes and
			// look for the end of the tag.
			if j := p.indexFrom(i, ">"); j >= 0 {
				return attribs, false, j
			}
			return attribs, false, n
		}
		name := p.opts.attrName(p.s[nameStart:i])

		j := p.skipWhitespace(i)
		if j >= n || p.s[j] != '=' {
			attribs[name] = name
			continue
		}

		var val string
		val, i = p.scanAttrValue(p.skipWhitespace(j + 1))
		attribs[name] = val
	}
}

// scanAttrValue reads a quoted or unquoted attribute value at offset i and returns it
// together with the offset just past it.
func (p *parser) scanAttrValue(i int) (string, int) {
	n := len(p.s)
	if i >= n {
		return "", n
	}
	if q := p.s[i]; q == '"' || q == '\'' {
		start := i + 1
		for i = start; i < n && p.s[i] != q; i++ {
		}
		if i == n {
			return p.s[start:], n
		}
		return p.s[start:i], i + 1
	}

	start := i
	for i < n && !isWhitespace(p.s[i]) && p.s[i] != '>' {
		// A slash ends the value only when it self-closes the tag, so that unquoted
		// paths like href=/a/b survive.
		if p.s[i] == '/' {
			if j := p.skipWhitespace(i + 1); j >= n || p.s[j] == '>' {
				break
			}
		}
		i++
	}
	return p.s[start:i], i
}
