package htmlparser

// Options configures the parser. The zero value keeps tag and attribute names as they
// appear in the source; use DefaultOptions for the conventional behaviour.
type Options struct {
	// IgnoreWhitespace drops text nodes that consist of whitespace only.
	IgnoreWhitespace bool

	// LowercaseTags normalizes element names (and closing tag names) to lower case before
	// they are compared and stored.
	LowercaseTags bool

	// LowercaseAttrs normalizes attribute names to lower case.
	LowercaseAttrs bool
}

// DefaultOptions returns the options used by Parse: whitespace is kept, tag and attribute
// names are lower-cased.
func DefaultOptions() Options {
	return Options{
		IgnoreWhitespace: false,
		LowercaseTags:    true,
		LowercaseAttrs:   true,
	}
}

func (o Options) tagName(s string) string {
	if o.LowercaseTags {
		return asciiLower(s)
	}
	return s
}

func (o Options) attrName(s string) string {
	if o.LowercaseAttrs {
		return asciiLower(s)
	}
	return s
}
