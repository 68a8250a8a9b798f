package htmlparser

const whitespace = " \t\r\n\f"

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

// isNameChar is deliberately permissive so that custom elements (my-widget) and
// namespaced-looking names (svg:rect, c.x) parse without special-casing.
func isNameChar(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' ||
		c == '_' || c == '-' || c == ':' || c == '.'
}

// isAttrNameChar reports whether c may appear in an attribute name.
func isAttrNameChar(c byte) bool {
	return !isWhitespace(c) && c != '=' && c != '>' && c != '/'
}

// asciiLower returns s with ASCII upper-case letters converted to lower-case. It does not
// allocate when s is already lower-case.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] |= 0x20
				}
			}
			return string(b)
		}
	}
	return s
}
